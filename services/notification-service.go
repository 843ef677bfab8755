package services

import (
	"time"

	"github.com/raymundoht/Task-Manager/logging"
	"github.com/raymundoht/Task-Manager/models"
	"github.com/raymundoht/Task-Manager/repositories"

	"github.com/sony/gobreaker"
)

// recentNotificationLimit caps the feed at the newest records.
const recentNotificationLimit = 100

type NotificationService struct {
	repo    repositories.NotificationRepository
	breaker *gobreaker.CircuitBreaker
}

func NewNotificationService(repo repositories.NotificationRepository) *NotificationService {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "notifications-cb",
		MaxRequests: 1,
		Timeout:     5 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Logger.Infof("Event ID: CIRCUIT_BREAKER_STATE_CHANGE, Description: Circuit Breaker '%s' changed from '%s' to '%s'", name, from.String(), to.String())
		},
	})
	return &NotificationService{repo: repo, breaker: breaker}
}

// CreateNotification stores a notification for the feed.
func (s *NotificationService) CreateNotification(userID, message string) error {
	notification := models.Notification{
		UserID:    userID,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	}
	_, err := s.breaker.Execute(func() (interface{}, error) {
		return nil, s.repo.Insert(&notification)
	})
	return err
}

// Notify is the fire-and-forget variant used by task mutations: a
// failed delivery is logged, never propagated.
func (s *NotificationService) Notify(message string) {
	if err := s.CreateNotification("", message); err != nil {
		logging.Logger.Errorf("Event ID: NOTIFICATION_FAILED, Description: Failed to store notification %q: %v", message, err)
	}
}

// Recent returns the newest notifications, capped at 100.
func (s *NotificationService) Recent() ([]models.Notification, error) {
	return s.repo.FindRecent(recentNotificationLimit)
}
