package services

import (
	"context"

	"github.com/raymundoht/Task-Manager/models"
	"github.com/raymundoht/Task-Manager/repositories"
)

const defaultUserName = "admin"

// fallbackUserName is shown for user records stored without a name.
const fallbackUserName = "Sin nombre"

type UserService struct {
	users repositories.UserRepository
}

func NewUserService(users repositories.UserRepository) *UserService {
	return &UserService{users: users}
}

// ListUsers returns the raw user records with no side effects; reports
// and exports read through here.
func (s *UserService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.users.FindAll(ctx)
}

// Options returns identifier + name pairs for form select lists. When
// the collection is empty it first seeds a default "admin" user, so
// this read mutates the store on the first call.
func (s *UserService) Options(ctx context.Context) ([]models.Option, error) {
	users, err := s.users.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		if err := s.users.Insert(ctx, &models.User{Name: defaultUserName}); err != nil {
			return nil, err
		}
		users, err = s.users.FindAll(ctx)
		if err != nil {
			return nil, err
		}
	}

	options := make([]models.Option, 0, len(users))
	for _, u := range users {
		name := u.Name
		if name == "" {
			name = fallbackUserName
		}
		options = append(options, models.Option{ID: u.ID.Hex(), Name: name})
	}
	return options, nil
}
