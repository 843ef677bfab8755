package handlers

import (
	"encoding/csv"
	"net/http"

	"github.com/raymundoht/Task-Manager/logging"
	"github.com/raymundoht/Task-Manager/models"
	"github.com/raymundoht/Task-Manager/services"
)

// ReportHandler serves the raw report dumps and the CSV exports.
type ReportHandler struct {
	tasks    *services.TaskService
	projects *services.ProjectService
	users    *services.UserService
}

func NewReportHandler(tasks *services.TaskService, projects *services.ProjectService, users *services.UserService) *ReportHandler {
	return &ReportHandler{tasks: tasks, projects: projects, users: users}
}

func (h *ReportHandler) TasksReport(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.tasks.ListTasks(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	writeJSON(w, http.StatusOK, tasks)
}

func (h *ReportHandler) ProjectsReport(w http.ResponseWriter, r *http.Request) {
	projects, err := h.projects.ListProjects(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if projects == nil {
		projects = []models.Project{}
	}
	writeJSON(w, http.StatusOK, projects)
}

func (h *ReportHandler) UsersReport(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.ListUsers(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if users == nil {
		users = []models.User{}
	}
	writeJSON(w, http.StatusOK, users)
}

func (h *ReportHandler) ExportTasksCSV(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.tasks.ListTasks(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	setCSVHeaders(w, "tareas.csv")
	cw := csv.NewWriter(w)
	cw.Write([]string{"ID", "Título", "Descripción", "Estado", "Prioridad", "Proyecto ID", "Asignado ID", "Fecha Vencimiento", "Horas Estimadas"})
	for _, t := range tasks {
		cw.Write([]string{
			t.ID.Hex(),
			t.Title,
			t.Description,
			string(t.State),
			string(t.Priority),
			refOrEmpty(t.ProjectID),
			refOrEmpty(t.AssigneeID),
			formatDueDate(t.DueDate),
			t.EstimatedHours,
		})
	}
	flushCSV(cw)
}

func (h *ReportHandler) ExportProjectsCSV(w http.ResponseWriter, r *http.Request) {
	projects, err := h.projects.ListProjects(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	setCSVHeaders(w, "proyectos.csv")
	cw := csv.NewWriter(w)
	cw.Write([]string{"ID", "Nombre", "Descripción"})
	for _, p := range projects {
		cw.Write([]string{p.ID.Hex(), p.Name, p.Description})
	}
	flushCSV(cw)
}

func (h *ReportHandler) ExportUsersCSV(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.ListUsers(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	setCSVHeaders(w, "usuarios.csv")
	cw := csv.NewWriter(w)
	cw.Write([]string{"ID", "Nombre"})
	for _, u := range users {
		cw.Write([]string{u.ID.Hex(), u.Name})
	}
	flushCSV(cw)
}

func setCSVHeaders(w http.ResponseWriter, filename string) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)
}

func flushCSV(cw *csv.Writer) {
	cw.Flush()
	if err := cw.Error(); err != nil {
		logging.Logger.Errorf("Event ID: CSV_EXPORT_FAILED, Description: Failed to write CSV export: %v", err)
	}
}

func refOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
