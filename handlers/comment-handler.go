package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/raymundoht/Task-Manager/services"

	"github.com/gorilla/mux"
)

type CommentHandler struct {
	service *services.CommentService
}

func NewCommentHandler(service *services.CommentService) *CommentHandler {
	return &CommentHandler{service: service}
}

func (h *CommentHandler) CreateComment(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		TaskID string `json:"task_id"`
		Body   string `json:"comentario"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	taskID := strings.TrimSpace(payload.TaskID)
	if taskID == "" {
		writeError(w, http.StatusBadRequest, "task_id requerido")
		return
	}

	comment, err := h.service.CreateComment(r.Context(), taskID, payload.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, newCommentView(*comment))
}

func (h *CommentHandler) GetCommentsByTask(w http.ResponseWriter, r *http.Request) {
	taskID := mux.Vars(r)["taskID"]

	comments, err := h.service.ForTask(r.Context(), taskID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	views := make([]commentView, 0, len(comments))
	for _, c := range comments {
		views = append(views, newCommentView(c))
	}
	writeJSON(w, http.StatusOK, views)
}
