package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/raymundoht/Task-Manager/models"
)

// Boundary date formats. Storage keeps structured UTC times; these
// apply only when shaping a response.
const (
	dateLayout     = "02/01/2006"
	dateTimeLayout = "02/01/2006 15:04"
)

type taskView struct {
	ID             string              `json:"_id"`
	Title          string              `json:"titulo"`
	Description    string              `json:"descripcion"`
	State          models.TaskState    `json:"estado"`
	Priority       models.TaskPriority `json:"prioridad"`
	ProjectID      *string             `json:"proyecto_id"`
	AssigneeID     *string             `json:"asignado_id"`
	EstimatedHours string              `json:"horas_estimadas"`
	DueDate        string              `json:"fecha_vencimiento"`
	CreatedAt      time.Time           `json:"created_at"`
}

func newTaskView(t models.Task) taskView {
	return taskView{
		ID:             t.ID.Hex(),
		Title:          t.Title,
		Description:    t.Description,
		State:          t.State,
		Priority:       t.Priority,
		ProjectID:      t.ProjectID,
		AssigneeID:     t.AssigneeID,
		EstimatedHours: t.EstimatedHours,
		DueDate:        formatDueDate(t.DueDate),
		CreatedAt:      t.CreatedAt,
	}
}

func newTaskViews(tasks []models.Task) []taskView {
	views := make([]taskView, 0, len(tasks))
	for _, t := range tasks {
		views = append(views, newTaskView(t))
	}
	return views
}

func formatDueDate(d *time.Time) string {
	if d == nil {
		return ""
	}
	return d.Format(dateLayout)
}

type commentView struct {
	ID        string `json:"_id"`
	TaskID    string `json:"task_id"`
	Body      string `json:"comentario"`
	CreatedAt string `json:"created_at"`
}

func newCommentView(c models.Comment) commentView {
	return commentView{
		ID:        c.ID.Hex(),
		TaskID:    c.TaskID,
		Body:      c.Body,
		CreatedAt: c.CreatedAt.Format(dateTimeLayout),
	}
}

type historyView struct {
	ID        string                 `json:"_id"`
	TaskID    string                 `json:"task_id"`
	Action    string                 `json:"action"`
	Details   map[string]interface{} `json:"details"`
	CreatedAt string                 `json:"created_at"`
}

func newHistoryView(e models.HistoryEntry) historyView {
	return historyView{
		ID:        e.ID.Hex(),
		TaskID:    e.TaskID,
		Action:    e.Action,
		Details:   e.Details,
		CreatedAt: e.CreatedAt.Format(dateTimeLayout),
	}
}

type notificationView struct {
	ID        string `json:"_id"`
	UserID    string `json:"user_id"`
	Message   string `json:"message"`
	CreatedAt string `json:"created_at"`
}

func newNotificationView(n models.Notification) notificationView {
	return notificationView{
		ID:        n.ID,
		UserID:    n.UserID,
		Message:   n.Message,
		CreatedAt: n.CreatedAt.Format(dateTimeLayout),
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
