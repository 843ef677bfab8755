package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/raymundoht/Task-Manager/models"
	"github.com/raymundoht/Task-Manager/repositories"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// canonicalIDLength is the length of a task identifier in its hex
// encoding; shorter inputs are resolved by suffix.
const canonicalIDLength = 24

// dueDateLayout is the accepted input format for due dates.
const dueDateLayout = "2006-01-02"

// Notifier is the side channel task mutations announce themselves on.
// Delivery is best effort.
type Notifier interface {
	Notify(message string)
}

type TaskService struct {
	tasks    repositories.TaskRepository
	history  *HistoryService
	notifier Notifier
}

// NewTaskService wires the task store with its audit logger and an
// optional notifier (nil disables notifications).
func NewTaskService(tasks repositories.TaskRepository, history *HistoryService, notifier Notifier) *TaskService {
	return &TaskService{tasks: tasks, history: history, notifier: notifier}
}

// parseDueDate parses a "2006-01-02" string into a date-only value.
// Empty or unparsable input yields nil rather than an error; that is
// the documented lenient-input policy for due dates.
func parseDueDate(value string) *time.Time {
	if value == "" {
		return nil
	}
	d, err := time.Parse(dueDateLayout, value)
	if err != nil {
		return nil
	}
	return &d
}

func optionalRef(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

func (s *TaskService) notify(message string) {
	if s.notifier != nil {
		s.notifier.Notify(message)
	}
}

// CreateTask applies the field defaults, stamps the creation time and
// persists the task, then records a creation audit entry.
func (s *TaskService) CreateTask(ctx context.Context, input models.TaskInput) (*models.Task, error) {
	if input.State == "" {
		input.State = models.StatePending
	}
	if input.Priority == "" {
		input.Priority = models.PriorityLow
	}
	if !models.ValidState(input.State) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidState, input.State)
	}
	if !models.ValidPriority(input.Priority) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPriority, input.Priority)
	}

	task := &models.Task{
		ID:             primitive.NewObjectID(),
		Title:          input.Title,
		Description:    input.Description,
		State:          input.State,
		Priority:       input.Priority,
		ProjectID:      optionalRef(input.ProjectID),
		AssigneeID:     optionalRef(input.AssigneeID),
		EstimatedHours: input.EstimatedHours,
		DueDate:        parseDueDate(input.DueDate),
		CreatedAt:      time.Now().UTC(),
	}

	if err := s.tasks.Insert(ctx, task); err != nil {
		return nil, err
	}

	s.history.Record(task.ID.Hex(), models.ActionCreated, map[string]interface{}{"titulo": task.Title})
	s.notify(fmt.Sprintf("Tarea '%s' creada", task.Title))
	return task, nil
}

// UpdateTask merges the fields present in the payload into the stored
// task and records the changed-field set as an update audit entry. An
// empty payload changes nothing and writes no history entry. Returns
// ErrTaskNotFound when the task does not exist.
func (s *TaskService) UpdateTask(ctx context.Context, id string, update models.TaskUpdate) (*models.Task, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrTaskNotFound
	}

	fields, err := updateFields(update)
	if err != nil {
		return nil, err
	}

	if len(fields) > 0 {
		matched, err := s.tasks.UpdateFields(ctx, objectID, fields)
		if err != nil {
			return nil, err
		}
		if matched {
			s.history.Record(id, models.ActionUpdated, fields)
			s.notify(fmt.Sprintf("Tarea %s actualizada", id))
		}
	}

	task, err := s.tasks.FindByID(ctx, objectID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, ErrTaskNotFound
	}
	return task, nil
}

// updateFields translates the three-way update payload into the set of
// fields to change. Absent fields stay out of the map; the due date is
// kept as a time.Time or an explicit nil for "clear".
func updateFields(update models.TaskUpdate) (map[string]interface{}, error) {
	fields := map[string]interface{}{}
	if update.Title != nil {
		fields["titulo"] = *update.Title
	}
	if update.Description != nil {
		fields["descripcion"] = *update.Description
	}
	if update.State != nil {
		if !models.ValidState(*update.State) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidState, *update.State)
		}
		fields["estado"] = *update.State
	}
	if update.Priority != nil {
		if !models.ValidPriority(*update.Priority) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidPriority, *update.Priority)
		}
		fields["prioridad"] = *update.Priority
	}
	if update.ProjectID != nil {
		fields["proyecto_id"] = *update.ProjectID
	}
	if update.AssigneeID != nil {
		fields["asignado_id"] = *update.AssigneeID
	}
	if update.EstimatedHours != nil {
		fields["horas_estimadas"] = *update.EstimatedHours
	}
	if update.DueDate != nil {
		if d := parseDueDate(*update.DueDate); d != nil {
			fields["fecha_vencimiento"] = *d
		} else {
			// explicit clear, or an unparsable value degrading to null
			fields["fecha_vencimiento"] = nil
		}
	}
	return fields, nil
}

// DeleteTask removes a task and reports whether a record was removed.
// A deletion audit entry is recorded only on an actual removal.
func (s *TaskService) DeleteTask(ctx context.Context, id string) (bool, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}
	deleted, err := s.tasks.Delete(ctx, objectID)
	if err != nil {
		return false, err
	}
	if deleted {
		s.history.Record(id, models.ActionDeleted, map[string]interface{}{})
		s.notify(fmt.Sprintf("Tarea %s eliminada", id))
	}
	return deleted, nil
}

// ListTasks returns every task, most recently created first.
func (s *TaskService) ListTasks(ctx context.Context) ([]models.Task, error) {
	return s.tasks.FindAllByNewest(ctx)
}

// SearchTasks runs the conjunctive filters over the collection. The
// sentinel values "Todos"/"Todas" mean no restriction, like an empty
// filter.
func (s *TaskService) SearchTasks(ctx context.Context, filter models.TaskFilter) ([]models.Task, error) {
	if filter.State == models.AllStates {
		filter.State = ""
	}
	if filter.Priority == models.AllPriorities {
		filter.Priority = ""
	}
	if filter.ProjectID == models.AllProjects {
		filter.ProjectID = ""
	}
	return s.tasks.Search(ctx, filter)
}

// TaskStatistics computes the five counters. Each is an independent
// full-collection count; the categories overlap. Overdue means the due
// date is strictly before the start of the current UTC day and the
// task is not completed, so a task due today is never overdue.
func (s *TaskService) TaskStatistics(ctx context.Context) (*models.TaskStats, error) {
	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	completed := models.StateCompleted
	pending := models.StatePending
	high := models.PriorityHigh

	stats := &models.TaskStats{}
	counts := []struct {
		dst    *int64
		filter models.StatFilter
	}{
		{&stats.Total, models.StatFilter{}},
		{&stats.Completed, models.StatFilter{State: &completed}},
		{&stats.Pending, models.StatFilter{State: &pending}},
		{&stats.HighPriority, models.StatFilter{Priority: &high}},
		{&stats.Overdue, models.StatFilter{DueBefore: &today, NotState: &completed}},
	}
	for _, c := range counts {
		n, err := s.tasks.Count(ctx, c.filter)
		if err != nil {
			return nil, err
		}
		*c.dst = n
	}
	return stats, nil
}

// ResolveTaskID maps a full or truncated identifier to the canonical
// task identifier. A 24-character input naming an existing task is
// returned unchanged; otherwise the collection is scanned in natural
// order for the first identifier ending with (or equal to) the input.
// When nothing matches the input is echoed back; the caller decides
// what a miss means.
func (s *TaskService) ResolveTaskID(ctx context.Context, input string) string {
	if len(input) == canonicalIDLength {
		if objectID, err := primitive.ObjectIDFromHex(input); err == nil {
			if task, err := s.tasks.FindByID(ctx, objectID); err == nil && task != nil {
				return input
			}
		}
	}
	tasks, err := s.tasks.FindAll(ctx)
	if err != nil {
		return input
	}
	for _, t := range tasks {
		hex := t.ID.Hex()
		if strings.HasSuffix(hex, input) || hex == input {
			return hex
		}
	}
	return input
}
