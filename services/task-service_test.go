package services

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/raymundoht/Task-Manager/models"
	"github.com/raymundoht/Task-Manager/repositories"
)

func newTaskFixture(t *testing.T) (*TaskService, *repositories.InMemoryHistoryRepository) {
	t.Helper()
	historyRepo := repositories.NewInMemoryHistoryRepository()
	svc := NewTaskService(repositories.NewInMemoryTaskRepository(), NewHistoryService(historyRepo), nil)
	return svc, historyRepo
}

func strPtr(s string) *string { return &s }

func TestCreateTask_DefaultsAndListOrder(t *testing.T) {
	svc, _ := newTaskFixture(t)
	ctx := context.Background()

	first, err := svc.CreateTask(ctx, models.TaskInput{Title: "First"})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	if first.State != models.StatePending || first.Priority != models.PriorityLow {
		t.Errorf("defaults not applied: state=%q priority=%q", first.State, first.Priority)
	}
	if first.ProjectID != nil || first.AssigneeID != nil || first.DueDate != nil {
		t.Errorf("optional fields should default to nil: %#v", first)
	}
	if first.CreatedAt.IsZero() {
		t.Error("creation timestamp not set")
	}

	second, err := svc.CreateTask(ctx, models.TaskInput{Title: "Second"})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	tasks, err := svc.ListTasks(ctx)
	if err != nil {
		t.Fatalf("ListTasks: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(tasks))
	}
	if tasks[0].ID != second.ID {
		t.Errorf("newest task should come first, got %q", tasks[0].Title)
	}
}

func TestCreateTask_RejectsUnknownEnums(t *testing.T) {
	svc, _ := newTaskFixture(t)
	ctx := context.Background()

	if _, err := svc.CreateTask(ctx, models.TaskInput{State: "Urgente"}); !errors.Is(err, ErrInvalidState) {
		t.Errorf("expected ErrInvalidState, got %v", err)
	}
	if _, err := svc.CreateTask(ctx, models.TaskInput{Priority: "Extrema"}); !errors.Is(err, ErrInvalidPriority) {
		t.Errorf("expected ErrInvalidPriority, got %v", err)
	}
}

func TestCreateTask_LenientDueDate(t *testing.T) {
	svc, _ := newTaskFixture(t)
	ctx := context.Background()

	task, err := svc.CreateTask(ctx, models.TaskInput{Title: "Bad date", DueDate: "not-a-date"})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	if task.DueDate != nil {
		t.Errorf("unparsable due date should be stored as nil, got %v", task.DueDate)
	}

	task, err = svc.CreateTask(ctx, models.TaskInput{Title: "Good date", DueDate: "2024-01-15"})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	want := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	if task.DueDate == nil || !task.DueDate.Equal(want) {
		t.Errorf("due date = %v, want %v", task.DueDate, want)
	}
}

func TestUpdateTask_PartialMerge(t *testing.T) {
	svc, historyRepo := newTaskFixture(t)
	ctx := context.Background()

	created, err := svc.CreateTask(ctx, models.TaskInput{Title: "Original", Description: "keep me"})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	state := models.StateInProgress
	updated, err := svc.UpdateTask(ctx, created.ID.Hex(), models.TaskUpdate{State: &state})
	if err != nil {
		t.Fatalf("UpdateTask: %v", err)
	}
	if updated.State != models.StateInProgress {
		t.Errorf("state = %q, want %q", updated.State, models.StateInProgress)
	}
	if updated.Title != "Original" || updated.Description != "keep me" {
		t.Errorf("absent fields must stay unchanged: %#v", updated)
	}

	entries, err := historyRepo.FindByTask(ctx, created.ID.Hex())
	if err != nil {
		t.Fatalf("FindByTask: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected creation + update entries, got %d", len(entries))
	}
	wantDetails := map[string]interface{}{"estado": models.StateInProgress}
	if !reflect.DeepEqual(entries[1].Details, wantDetails) {
		t.Errorf("update details = %#v, want %#v", entries[1].Details, wantDetails)
	}
}

func TestUpdateTask_EmptyPayload(t *testing.T) {
	svc, historyRepo := newTaskFixture(t)
	ctx := context.Background()

	created, err := svc.CreateTask(ctx, models.TaskInput{Title: "Untouched"})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	updated, err := svc.UpdateTask(ctx, created.ID.Hex(), models.TaskUpdate{})
	if err != nil {
		t.Fatalf("UpdateTask: %v", err)
	}
	if !reflect.DeepEqual(updated, created) {
		t.Errorf("empty update must leave the record unchanged:\ngot  %#v\nwant %#v", updated, created)
	}

	entries, err := historyRepo.FindByTask(ctx, created.ID.Hex())
	if err != nil {
		t.Fatalf("FindByTask: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("empty update must not append history, got %d entries", len(entries))
	}
}

func TestUpdateTask_DueDateThreeWay(t *testing.T) {
	svc, _ := newTaskFixture(t)
	ctx := context.Background()

	created, err := svc.CreateTask(ctx, models.TaskInput{Title: "Dated", DueDate: "2024-06-01"})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	id := created.ID.Hex()

	// absent field leaves the date alone
	title := "Renamed"
	updated, err := svc.UpdateTask(ctx, id, models.TaskUpdate{Title: &title})
	if err != nil {
		t.Fatalf("UpdateTask: %v", err)
	}
	if updated.DueDate == nil {
		t.Fatal("absent due date field must not clear the stored date")
	}

	// explicit empty string clears it
	updated, err = svc.UpdateTask(ctx, id, models.TaskUpdate{DueDate: strPtr("")})
	if err != nil {
		t.Fatalf("UpdateTask: %v", err)
	}
	if updated.DueDate != nil {
		t.Errorf("explicit clear left due date %v", updated.DueDate)
	}

	// explicit value sets it again
	updated, err = svc.UpdateTask(ctx, id, models.TaskUpdate{DueDate: strPtr("2025-02-03")})
	if err != nil {
		t.Fatalf("UpdateTask: %v", err)
	}
	want := time.Date(2025, 2, 3, 0, 0, 0, 0, time.UTC)
	if updated.DueDate == nil || !updated.DueDate.Equal(want) {
		t.Errorf("due date = %v, want %v", updated.DueDate, want)
	}
}

func TestUpdateTask_NotFound(t *testing.T) {
	svc, _ := newTaskFixture(t)
	ctx := context.Background()

	title := "ghost"
	_, err := svc.UpdateTask(ctx, "653a1b2c3d4e5f6a7b8c9d0e", models.TaskUpdate{Title: &title})
	if !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("expected ErrTaskNotFound, got %v", err)
	}

	_, err = svc.UpdateTask(ctx, "short-id", models.TaskUpdate{Title: &title})
	if !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("expected ErrTaskNotFound for malformed id, got %v", err)
	}
}

func TestDeleteTask(t *testing.T) {
	svc, historyRepo := newTaskFixture(t)
	ctx := context.Background()

	created, err := svc.CreateTask(ctx, models.TaskInput{Title: "Doomed"})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	id := created.ID.Hex()

	deleted, err := svc.DeleteTask(ctx, id)
	if err != nil || !deleted {
		t.Fatalf("DeleteTask = (%v, %v), want (true, nil)", deleted, err)
	}

	tasks, _ := svc.ListTasks(ctx)
	if len(tasks) != 0 {
		t.Errorf("deleted task still listed: %#v", tasks)
	}

	entries, _ := historyRepo.FindByTask(ctx, id)
	if len(entries) != 2 || entries[1].Action != models.ActionDeleted {
		t.Fatalf("expected a deletion entry, got %#v", entries)
	}
	if len(entries[1].Details) != 0 {
		t.Errorf("deletion details must be empty, got %#v", entries[1].Details)
	}

	// deleting again is a negative result, not an error
	deleted, err = svc.DeleteTask(ctx, id)
	if err != nil || deleted {
		t.Errorf("second delete = (%v, %v), want (false, nil)", deleted, err)
	}
	if entries, _ := historyRepo.FindByTask(ctx, id); len(entries) != 2 {
		t.Errorf("missed delete must not append history, got %d entries", len(entries))
	}
}

func TestLifecycleHistoryTrail(t *testing.T) {
	svc, historyRepo := newTaskFixture(t)
	ctx := context.Background()

	created, err := svc.CreateTask(ctx, models.TaskInput{
		Title:    "Fix bug",
		Priority: models.PriorityHigh,
		DueDate:  "2024-01-01",
	})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	id := created.ID.Hex()

	if deleted, err := svc.DeleteTask(ctx, id); err != nil || !deleted {
		t.Fatalf("DeleteTask = (%v, %v)", deleted, err)
	}

	entries, err := historyRepo.FindByTask(ctx, id)
	if err != nil {
		t.Fatalf("FindByTask: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected exactly 2 entries, got %d", len(entries))
	}
	if entries[0].Action != models.ActionCreated || entries[1].Action != models.ActionDeleted {
		t.Errorf("entries out of creation order: %q, %q", entries[0].Action, entries[1].Action)
	}
	if !reflect.DeepEqual(entries[0].Details, map[string]interface{}{"titulo": "Fix bug"}) {
		t.Errorf("creation details = %#v", entries[0].Details)
	}
}

func TestTaskStatistics(t *testing.T) {
	svc, _ := newTaskFixture(t)
	ctx := context.Background()

	now := time.Now().UTC()
	yesterday := now.AddDate(0, 0, -1).Format("2006-01-02")
	today := now.Format("2006-01-02")

	mustCreate := func(input models.TaskInput) {
		t.Helper()
		if _, err := svc.CreateTask(ctx, input); err != nil {
			t.Fatalf("CreateTask: %v", err)
		}
	}

	// overdue: due yesterday, still pending
	mustCreate(models.TaskInput{Title: "late", State: models.StatePending, DueDate: yesterday})
	// not overdue: due yesterday but completed
	mustCreate(models.TaskInput{Title: "done late", State: models.StateCompleted, DueDate: yesterday})
	// not overdue: due today, regardless of state
	mustCreate(models.TaskInput{Title: "due today", State: models.StatePending, DueDate: today})
	// high priority, no due date
	mustCreate(models.TaskInput{Title: "urgent", Priority: models.PriorityHigh})

	stats, err := svc.TaskStatistics(ctx)
	if err != nil {
		t.Fatalf("TaskStatistics: %v", err)
	}
	want := models.TaskStats{Total: 4, Completed: 1, Pending: 3, HighPriority: 1, Overdue: 1}
	if *stats != want {
		t.Errorf("stats = %+v, want %+v", *stats, want)
	}
}

func TestSearchTasks(t *testing.T) {
	svc, _ := newTaskFixture(t)
	ctx := context.Background()

	alpha, err := svc.CreateTask(ctx, models.TaskInput{
		Title:     "Informe mensual",
		State:     models.StatePending,
		Priority:  models.PriorityHigh,
		ProjectID: "proj-1",
	})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	beta, err := svc.CreateTask(ctx, models.TaskInput{
		Title:       "Revisar código",
		Description: "incluye el INFORME de pruebas",
		State:       models.StateCompleted,
		ProjectID:   "proj-2",
	})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	// case-insensitive substring over title OR description, newest first
	tasks, err := svc.SearchTasks(ctx, models.TaskFilter{Text: "informe"})
	if err != nil {
		t.Fatalf("SearchTasks: %v", err)
	}
	if len(tasks) != 2 || tasks[0].ID != beta.ID || tasks[1].ID != alpha.ID {
		t.Fatalf("text search mismatch: %#v", tasks)
	}

	// sentinels mean no restriction
	tasks, err = svc.SearchTasks(ctx, models.TaskFilter{State: models.AllStates, Priority: models.AllPriorities, ProjectID: models.AllProjects})
	if err != nil {
		t.Fatalf("SearchTasks: %v", err)
	}
	if len(tasks) != 2 {
		t.Errorf("sentinel filters should match everything, got %d", len(tasks))
	}

	// conjunctive filters
	tasks, err = svc.SearchTasks(ctx, models.TaskFilter{Text: "informe", State: string(models.StateCompleted)})
	if err != nil {
		t.Fatalf("SearchTasks: %v", err)
	}
	if len(tasks) != 1 || tasks[0].ID != beta.ID {
		t.Errorf("conjunctive search mismatch: %#v", tasks)
	}

	tasks, err = svc.SearchTasks(ctx, models.TaskFilter{ProjectID: "proj-1"})
	if err != nil {
		t.Fatalf("SearchTasks: %v", err)
	}
	if len(tasks) != 1 || tasks[0].ID != alpha.ID {
		t.Errorf("project filter mismatch: %#v", tasks)
	}
}
