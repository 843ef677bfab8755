package repositories

import (
	"bytes"
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/raymundoht/Task-Manager/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory implementations of the repository interfaces. They mirror
// the observable semantics of the Mongo and Cassandra implementations
// (ordering, filter matching, partial updates) against plain slices, so
// the services behave identically regardless of the backing store.

type InMemoryTaskRepository struct {
	mu    sync.RWMutex
	tasks []models.Task
}

func NewInMemoryTaskRepository() *InMemoryTaskRepository {
	return &InMemoryTaskRepository{}
}

func (r *InMemoryTaskRepository) Insert(ctx context.Context, task *models.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if task.ID.IsZero() {
		task.ID = primitive.NewObjectID()
	}
	r.tasks = append(r.tasks, *task)
	return nil
}

func (r *InMemoryTaskRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, t := range r.tasks {
		if t.ID == id {
			task := t
			return &task, nil
		}
	}
	return nil, nil
}

func (r *InMemoryTaskRepository) UpdateFields(ctx context.Context, id primitive.ObjectID, fields map[string]interface{}) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.tasks {
		if r.tasks[i].ID != id {
			continue
		}
		applyTaskFields(&r.tasks[i], fields)
		return true, nil
	}
	return false, nil
}

func applyTaskFields(task *models.Task, fields map[string]interface{}) {
	for key, value := range fields {
		switch key {
		case "titulo":
			task.Title = value.(string)
		case "descripcion":
			task.Description = value.(string)
		case "estado":
			task.State = value.(models.TaskState)
		case "prioridad":
			task.Priority = value.(models.TaskPriority)
		case "proyecto_id":
			s := value.(string)
			task.ProjectID = &s
		case "asignado_id":
			s := value.(string)
			task.AssigneeID = &s
		case "horas_estimadas":
			task.EstimatedHours = value.(string)
		case "fecha_vencimiento":
			if value == nil {
				task.DueDate = nil
			} else {
				d := value.(time.Time)
				task.DueDate = &d
			}
		}
	}
}

func (r *InMemoryTaskRepository) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.tasks {
		if r.tasks[i].ID == id {
			r.tasks = append(r.tasks[:i], r.tasks[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (r *InMemoryTaskRepository) FindAll(ctx context.Context) ([]models.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Task, len(r.tasks))
	copy(out, r.tasks)
	return out, nil
}

func (r *InMemoryTaskRepository) FindAllByNewest(ctx context.Context) ([]models.Task, error) {
	tasks, _ := r.FindAll(ctx)
	sortTasksByNewest(tasks)
	return tasks, nil
}

func sortTasksByNewest(tasks []models.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		return bytes.Compare(tasks[i].ID[:], tasks[j].ID[:]) > 0
	})
}

func (r *InMemoryTaskRepository) Search(ctx context.Context, filter models.TaskFilter) ([]models.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []models.Task
	text := strings.ToLower(filter.Text)
	for _, t := range r.tasks {
		if text != "" &&
			!strings.Contains(strings.ToLower(t.Title), text) &&
			!strings.Contains(strings.ToLower(t.Description), text) {
			continue
		}
		if filter.State != "" && string(t.State) != filter.State {
			continue
		}
		if filter.Priority != "" && string(t.Priority) != filter.Priority {
			continue
		}
		if filter.ProjectID != "" && (t.ProjectID == nil || *t.ProjectID != filter.ProjectID) {
			continue
		}
		out = append(out, t)
	}
	sortTasksByNewest(out)
	return out, nil
}

func (r *InMemoryTaskRepository) Count(ctx context.Context, filter models.StatFilter) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var count int64
	for _, t := range r.tasks {
		if filter.State != nil && t.State != *filter.State {
			continue
		}
		if filter.NotState != nil && t.State == *filter.NotState {
			continue
		}
		if filter.Priority != nil && t.Priority != *filter.Priority {
			continue
		}
		if filter.DueBefore != nil && (t.DueDate == nil || !t.DueDate.Before(*filter.DueBefore)) {
			continue
		}
		count++
	}
	return count, nil
}

type InMemoryProjectRepository struct {
	mu       sync.RWMutex
	projects []models.Project
}

func NewInMemoryProjectRepository() *InMemoryProjectRepository {
	return &InMemoryProjectRepository{}
}

func (r *InMemoryProjectRepository) Insert(ctx context.Context, project *models.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if project.ID.IsZero() {
		project.ID = primitive.NewObjectID()
	}
	r.projects = append(r.projects, *project)
	return nil
}

func (r *InMemoryProjectRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.projects {
		if p.ID == id {
			project := p
			return &project, nil
		}
	}
	return nil, nil
}

func (r *InMemoryProjectRepository) FindAll(ctx context.Context) ([]models.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Project, len(r.projects))
	copy(out, r.projects)
	return out, nil
}

func (r *InMemoryProjectRepository) UpdateFields(ctx context.Context, id primitive.ObjectID, fields map[string]interface{}) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.projects {
		if r.projects[i].ID != id {
			continue
		}
		for key, value := range fields {
			switch key {
			case "nombre":
				r.projects[i].Name = value.(string)
			case "descripcion":
				r.projects[i].Description = value.(string)
			}
		}
		return true, nil
	}
	return false, nil
}

func (r *InMemoryProjectRepository) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.projects {
		if r.projects[i].ID == id {
			r.projects = append(r.projects[:i], r.projects[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

type InMemoryUserRepository struct {
	mu    sync.RWMutex
	users []models.User
}

func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{}
}

func (r *InMemoryUserRepository) Insert(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	r.users = append(r.users, *user)
	return nil
}

func (r *InMemoryUserRepository) FindAll(ctx context.Context) ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.User, len(r.users))
	copy(out, r.users)
	return out, nil
}

type InMemoryCommentRepository struct {
	mu       sync.RWMutex
	comments []models.Comment
}

func NewInMemoryCommentRepository() *InMemoryCommentRepository {
	return &InMemoryCommentRepository{}
}

func (r *InMemoryCommentRepository) Insert(ctx context.Context, comment *models.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if comment.ID.IsZero() {
		comment.ID = primitive.NewObjectID()
	}
	r.comments = append(r.comments, *comment)
	return nil
}

func (r *InMemoryCommentRepository) FindByTask(ctx context.Context, taskID string) ([]models.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []models.Comment
	for _, c := range r.comments {
		if c.TaskID == taskID {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

type InMemoryHistoryRepository struct {
	mu      sync.RWMutex
	entries []models.HistoryEntry
}

func NewInMemoryHistoryRepository() *InMemoryHistoryRepository {
	return &InMemoryHistoryRepository{}
}

func (r *InMemoryHistoryRepository) Insert(ctx context.Context, entry *models.HistoryEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if entry.ID.IsZero() {
		entry.ID = primitive.NewObjectID()
	}
	stored := *entry
	// copy the details map so later caller mutations cannot reach the
	// stored entry
	if entry.Details != nil {
		stored.Details = make(map[string]interface{}, len(entry.Details))
		for k, v := range entry.Details {
			stored.Details[k] = v
		}
	}
	r.entries = append(r.entries, stored)
	return nil
}

func (r *InMemoryHistoryRepository) FindByTask(ctx context.Context, taskID string) ([]models.HistoryEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []models.HistoryEntry
	for _, e := range r.entries {
		if e.TaskID == taskID {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *InMemoryHistoryRepository) FindAll(ctx context.Context) ([]models.HistoryEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.HistoryEntry, len(r.entries))
	copy(out, r.entries)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

type InMemoryNotificationRepository struct {
	mu            sync.RWMutex
	notifications []models.Notification
}

func NewInMemoryNotificationRepository() *InMemoryNotificationRepository {
	return &InMemoryNotificationRepository{}
}

func (r *InMemoryNotificationRepository) Insert(notification *models.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if notification.ID == "" {
		notification.ID = primitive.NewObjectID().Hex()
	}
	r.notifications = append(r.notifications, *notification)
	return nil
}

func (r *InMemoryNotificationRepository) FindRecent(limit int) ([]models.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Notification, len(r.notifications))
	copy(out, r.notifications)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
