package services

import (
	"context"
	"testing"

	"github.com/raymundoht/Task-Manager/models"
	"github.com/raymundoht/Task-Manager/repositories"
)

func TestUserService_OptionsSeedsDefaultAdmin(t *testing.T) {
	repo := repositories.NewInMemoryUserRepository()
	svc := NewUserService(repo)
	ctx := context.Background()

	options, err := svc.Options(ctx)
	if err != nil {
		t.Fatalf("Options: %v", err)
	}
	if len(options) != 1 || options[0].Name != "admin" {
		t.Fatalf("expected seeded admin option, got %#v", options)
	}

	// the seed happens once, not on every read
	options, err = svc.Options(ctx)
	if err != nil {
		t.Fatalf("Options: %v", err)
	}
	if len(options) != 1 {
		t.Errorf("second read re-seeded: %#v", options)
	}
}

func TestUserService_ListUsersHasNoSideEffects(t *testing.T) {
	repo := repositories.NewInMemoryUserRepository()
	svc := NewUserService(repo)
	ctx := context.Background()

	users, err := svc.ListUsers(ctx)
	if err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	if len(users) != 0 {
		t.Errorf("plain listing must not seed, got %#v", users)
	}
}

func TestUserService_OptionsFallbackName(t *testing.T) {
	repo := repositories.NewInMemoryUserRepository()
	svc := NewUserService(repo)
	ctx := context.Background()

	if err := repo.Insert(ctx, &models.User{Name: ""}); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	options, err := svc.Options(ctx)
	if err != nil {
		t.Fatalf("Options: %v", err)
	}
	if len(options) != 1 || options[0].Name != "Sin nombre" {
		t.Errorf("expected fallback display name, got %#v", options)
	}
}
