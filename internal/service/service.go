// Package service defines the backend-agnostic interfaces the core consumes.
// The app never talks to the transport directly; everything goes through
// these interfaces.
package service

import (
	"context"

	"github.com/sandeepkv93/hearth/internal/model"
)

// TaskService covers the todo endpoints.
// No mutation is idempotent; callers must not resend blindly on timeout.
type TaskService interface {
	// ListTasks returns all tasks in server order.
	ListTasks(ctx context.Context) ([]model.Task, error)

	AddTask(ctx context.Context, draft model.TaskDraft) (model.Task, error)
	UpdateTask(ctx context.Context, id string, draft model.TaskDraft) (model.Task, error)
	CompleteTask(ctx context.Context, id string) error
	DeleteTask(ctx context.Context, id string) error
}

// CollectionService covers the ordered collections: the shopping lists
// themselves (model.ListsCollection) and the items of each list (keyed by
// list id).
type CollectionService interface {
	// ListCollection returns entries in canonical order.
	ListCollection(ctx context.Context, collectionID string) ([]model.Entry, error)

	// ReorderEntry moves one entry steps positions up or down.
	ReorderEntry(ctx context.Context, collectionID, entryID string, direction model.Direction, steps int) error

	AddEntry(ctx context.Context, collectionID, name string) (model.Entry, error)
	ToggleEntry(ctx context.Context, collectionID, entryID string) error
	RemoveEntry(ctx context.Context, collectionID, entryID string) error
}

// Service is everything the terminal client needs from the backend.
type Service interface {
	TaskService
	CollectionService
}
