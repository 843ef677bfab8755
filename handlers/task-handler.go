package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/raymundoht/Task-Manager/models"
	"github.com/raymundoht/Task-Manager/services"

	"github.com/gorilla/mux"
)

type TaskHandler struct {
	service *services.TaskService
}

func NewTaskHandler(service *services.TaskService) *TaskHandler {
	return &TaskHandler{service: service}
}

func (h *TaskHandler) GetAllTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.service.ListTasks(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, newTaskViews(tasks))
}

func (h *TaskHandler) GetStatistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.TaskStatistics(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var input models.TaskInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	task, err := h.service.CreateTask(r.Context(), input)
	if err != nil {
		if errors.Is(err, services.ErrInvalidState) || errors.Is(err, services.ErrInvalidPriority) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, newTaskView(*task))
}

func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var update models.TaskUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	task, err := h.service.UpdateTask(r.Context(), id, update)
	if err != nil {
		if errors.Is(err, services.ErrTaskNotFound) {
			writeError(w, http.StatusNotFound, "No encontrada")
			return
		}
		if errors.Is(err, services.ErrInvalidState) || errors.Is(err, services.ErrInvalidPriority) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, newTaskView(*task))
}

func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	deleted, err := h.service.DeleteTask(r.Context(), id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, "No encontrada")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (h *TaskHandler) SearchTasks(w http.ResponseWriter, r *http.Request) {
	filter := models.TaskFilter{
		Text:      strings.TrimSpace(r.URL.Query().Get("texto")),
		State:     r.URL.Query().Get("estado"),
		Priority:  r.URL.Query().Get("prioridad"),
		ProjectID: r.URL.Query().Get("proyecto_id"),
	}

	tasks, err := h.service.SearchTasks(r.Context(), filter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, newTaskViews(tasks))
}
