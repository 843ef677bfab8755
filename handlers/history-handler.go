package handlers

import (
	"net/http"

	"github.com/raymundoht/Task-Manager/models"
	"github.com/raymundoht/Task-Manager/services"
)

type HistoryHandler struct {
	service  *services.HistoryService
	resolver services.TaskResolver
}

func NewHistoryHandler(service *services.HistoryService, resolver services.TaskResolver) *HistoryHandler {
	return &HistoryHandler{service: service, resolver: resolver}
}

// GetHistory returns the audit trail. With a task_id parameter the
// identifier is resolved first and the task's entries come back in
// creation order; without it the whole trail comes back newest first.
func (h *HistoryHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	taskID := r.URL.Query().Get("task_id")

	var entries []models.HistoryEntry
	var err error
	if taskID != "" {
		entries, err = h.service.ForTask(r.Context(), h.resolver.ResolveTaskID(r.Context(), taskID))
	} else {
		entries, err = h.service.All(r.Context())
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	views := make([]historyView, 0, len(entries))
	for _, e := range entries {
		views = append(views, newHistoryView(e))
	}
	writeJSON(w, http.StatusOK, views)
}
