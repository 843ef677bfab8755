package services

import (
	"context"
	"time"

	"github.com/raymundoht/Task-Manager/logging"
	"github.com/raymundoht/Task-Manager/models"
	"github.com/raymundoht/Task-Manager/repositories"

	"github.com/sony/gobreaker"
)

// HistoryService appends audit entries for task mutations and reads the
// trail back. Record is a best-effort side channel: a failed append is
// logged and swallowed so it can never fail the mutation that triggered
// it.
type HistoryService struct {
	repo    repositories.HistoryRepository
	breaker *gobreaker.CircuitBreaker
}

func NewHistoryService(repo repositories.HistoryRepository) *HistoryService {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "history-cb",
		MaxRequests: 1,
		Timeout:     5 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Logger.Infof("Event ID: CIRCUIT_BREAKER_STATE_CHANGE, Description: Circuit Breaker '%s' changed from '%s' to '%s'", name, from.String(), to.String())
		},
	})
	return &HistoryService{repo: repo, breaker: breaker}
}

// Record appends one audit entry. It runs on a background context so a
// cancelled request cannot lose the entry of a mutation that already
// happened.
func (s *HistoryService) Record(taskID, action string, details map[string]interface{}) {
	entry := models.HistoryEntry{
		TaskID:    taskID,
		Action:    action,
		Details:   details,
		CreatedAt: time.Now().UTC(),
	}
	_, err := s.breaker.Execute(func() (interface{}, error) {
		return nil, s.repo.Insert(context.Background(), &entry)
	})
	if err != nil {
		logging.Logger.Errorf("Event ID: HISTORY_WRITE_FAILED, Description: Failed to record %s for task %s: %v", action, taskID, err)
	}
}

// ForTask returns a task's audit trail in creation order.
func (s *HistoryService) ForTask(ctx context.Context, taskID string) ([]models.HistoryEntry, error) {
	return s.repo.FindByTask(ctx, taskID)
}

// All returns the whole audit trail, newest first.
func (s *HistoryService) All(ctx context.Context) ([]models.HistoryEntry, error) {
	return s.repo.FindAll(ctx)
}
