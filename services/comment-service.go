package services

import (
	"context"
	"time"

	"github.com/raymundoht/Task-Manager/models"
	"github.com/raymundoht/Task-Manager/repositories"
)

// TaskResolver maps a loosely specified task identifier to the
// canonical one.
type TaskResolver interface {
	ResolveTaskID(ctx context.Context, input string) string
}

type CommentService struct {
	comments repositories.CommentRepository
	resolver TaskResolver
}

func NewCommentService(comments repositories.CommentRepository, resolver TaskResolver) *CommentService {
	return &CommentService{comments: comments, resolver: resolver}
}

// CreateComment resolves the task identifier and stores the comment
// under the canonical one.
func (s *CommentService) CreateComment(ctx context.Context, taskID, body string) (*models.Comment, error) {
	comment := &models.Comment{
		TaskID:    s.resolver.ResolveTaskID(ctx, taskID),
		Body:      body,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.comments.Insert(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// ForTask returns a task's comments, newest first. The identifier is
// resolved first so truncated identifiers find their comments.
func (s *CommentService) ForTask(ctx context.Context, taskID string) ([]models.Comment, error) {
	return s.comments.FindByTask(ctx, s.resolver.ResolveTaskID(ctx, taskID))
}
