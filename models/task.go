package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TaskState string

const (
	StatePending    TaskState = "Pendiente"
	StateInProgress TaskState = "En progreso"
	StateCompleted  TaskState = "Completada"
	StateCancelled  TaskState = "Cancelada"
)

type TaskPriority string

const (
	PriorityLow    TaskPriority = "Baja"
	PriorityMedium TaskPriority = "Media"
	PriorityHigh   TaskPriority = "Alta"
)

// Sentinel values accepted by search filters meaning "no restriction".
const (
	AllStates     = "Todos"
	AllPriorities = "Todas"
	AllProjects   = "Todos"
)

// ValidState reports whether s is one of the enumerated task states.
func ValidState(s TaskState) bool {
	switch s {
	case StatePending, StateInProgress, StateCompleted, StateCancelled:
		return true
	}
	return false
}

// ValidPriority reports whether p is one of the enumerated priorities.
func ValidPriority(p TaskPriority) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

type Task struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title          string             `bson:"titulo" json:"titulo"`
	Description    string             `bson:"descripcion" json:"descripcion"`
	State          TaskState          `bson:"estado" json:"estado"`
	Priority       TaskPriority       `bson:"prioridad" json:"prioridad"`
	ProjectID      *string            `bson:"proyecto_id" json:"proyecto_id"`
	AssigneeID     *string            `bson:"asignado_id" json:"asignado_id"`
	EstimatedHours string             `bson:"horas_estimadas" json:"horas_estimadas"`
	DueDate        *time.Time         `bson:"fecha_vencimiento" json:"fecha_vencimiento"`
	CreatedAt      time.Time          `bson:"created_at" json:"created_at"`
}

// TaskInput is the creation payload. Zero values fall back to the
// documented defaults; the due date is a "2006-01-02" string parsed
// leniently (unparsable input degrades to no due date).
type TaskInput struct {
	Title          string       `json:"titulo"`
	Description    string       `json:"descripcion"`
	State          TaskState    `json:"estado"`
	Priority       TaskPriority `json:"prioridad"`
	ProjectID      string       `json:"proyecto_id"`
	AssigneeID     string       `json:"asignado_id"`
	EstimatedHours string       `json:"horas_estimadas"`
	DueDate        string       `json:"fecha_vencimiento"`
}

// TaskUpdate is the partial-update payload. A nil pointer means the
// field is absent and must be left unchanged. The due date carries a
// third signal: a pointer to the empty string clears the stored date,
// any other value is parsed leniently.
type TaskUpdate struct {
	Title          *string       `json:"titulo"`
	Description    *string       `json:"descripcion"`
	State          *TaskState    `json:"estado"`
	Priority       *TaskPriority `json:"prioridad"`
	ProjectID      *string       `json:"proyecto_id"`
	AssigneeID     *string       `json:"asignado_id"`
	EstimatedHours *string       `json:"horas_estimadas"`
	DueDate        *string       `json:"fecha_vencimiento"`
}

// TaskFilter holds the conjunctive search criteria. Empty fields do not
// restrict the result set.
type TaskFilter struct {
	Text      string
	State     string
	Priority  string
	ProjectID string
}

// StatFilter describes one counting predicate over the task collection.
// Nil fields do not restrict the count.
type StatFilter struct {
	State     *TaskState
	NotState  *TaskState
	Priority  *TaskPriority
	DueBefore *time.Time
}

type TaskStats struct {
	Total        int64 `json:"total"`
	Completed    int64 `json:"completadas"`
	Pending      int64 `json:"pendientes"`
	HighPriority int64 `json:"alta_prioridad"`
	Overdue      int64 `json:"vencidas"`
}
