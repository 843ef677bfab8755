package services

import (
	"context"
	"testing"

	"github.com/raymundoht/Task-Manager/models"
)

func TestResolveTaskID_CanonicalIdempotence(t *testing.T) {
	svc, _ := newTaskFixture(t)
	ctx := context.Background()

	created, err := svc.CreateTask(ctx, models.TaskInput{Title: "Target"})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	id := created.ID.Hex()

	if got := svc.ResolveTaskID(ctx, id); got != id {
		t.Errorf("ResolveTaskID(%q) = %q, want it unchanged", id, got)
	}
}

func TestResolveTaskID_Suffix(t *testing.T) {
	svc, _ := newTaskFixture(t)
	ctx := context.Background()

	created, err := svc.CreateTask(ctx, models.TaskInput{Title: "Target"})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	if _, err := svc.CreateTask(ctx, models.TaskInput{Title: "Decoy"}); err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	id := created.ID.Hex()
	short := id[len(id)-6:]

	if got := svc.ResolveTaskID(ctx, short); got != id {
		t.Errorf("ResolveTaskID(%q) = %q, want %q", short, got, id)
	}
}

func TestResolveTaskID_MissEchoesInput(t *testing.T) {
	svc, _ := newTaskFixture(t)
	ctx := context.Background()

	if _, err := svc.CreateTask(ctx, models.TaskInput{Title: "Unrelated"}); err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	// no task identifier ends in "zzzzzz": hex alphabet
	if got := svc.ResolveTaskID(ctx, "zzzzzz"); got != "zzzzzz" {
		t.Errorf("ResolveTaskID miss = %q, want the input echoed", got)
	}
}
