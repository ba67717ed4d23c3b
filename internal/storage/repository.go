package storage

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("storage: not found")

// Repository caches the last canonical data received from the remote
// service. Every write replaces a whole snapshot; the cache is never a
// source of truth and never queues local edits.
type Repository interface {
	ReplaceTasks(ctx context.Context, in []Task, syncedAt time.Time) error
	ListTasks(ctx context.Context, filter TaskListFilter) ([]Task, error)

	ReplaceCollection(ctx context.Context, collectionID string, in []CollectionEntry, syncedAt time.Time) error
	ListCollection(ctx context.Context, collectionID string) ([]CollectionEntry, error)
	DeleteCollection(ctx context.Context, collectionID string) error

	LastSynced(ctx context.Context, key string) (time.Time, error)
}
