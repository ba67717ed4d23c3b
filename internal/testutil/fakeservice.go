// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/sandeepkv93/hearth/internal/model"
	"github.com/sandeepkv93/hearth/internal/service"
)

// ErrNotFound is returned when a resource is not found.
var ErrNotFound = errors.New("not found")

var _ service.Service = (*FakeService)(nil)

// FakeService is an in-memory implementation of service.Service for testing.
type FakeService struct {
	mu          sync.RWMutex
	tasks       []model.Task
	collections map[string][]model.Entry

	// Calls to ReorderEntry, in order.
	Reorders []model.ReorderRequest

	// Error injection for testing
	ListTasksErr      error
	AddTaskErr        error
	UpdateTaskErr     error
	CompleteTaskErr   error
	DeleteTaskErr     error
	ListCollectionErr map[string]error // collectionID -> error
	ReorderErr        error
	AddEntryErr       error
	ToggleEntryErr    error
	RemoveEntryErr    error
}

// NewFakeService creates an empty FakeService with no shopping lists.
func NewFakeService() *FakeService {
	return &FakeService{
		collections:       map[string][]model.Entry{model.ListsCollection: nil},
		ListCollectionErr: make(map[string]error),
	}
}

// SeedTask adds a task as-is.
func (f *FakeService) SeedTask(task model.Task) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks = append(f.tasks, task)
}

// SeedEntries replaces a collection's entries.
func (f *FakeService) SeedEntries(collectionID string, entries ...model.Entry) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.collections[collectionID] = append([]model.Entry(nil), entries...)
}

// Order returns the ids of a collection in its current order.
func (f *FakeService) Order(collectionID string) []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return model.EntryIDs(f.collections[collectionID])
}

// Task returns a stored task by id.
func (f *FakeService) Task(id string) (model.Task, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	i := f.taskIndex(id)
	if i < 0 {
		return model.Task{}, false
	}
	return f.tasks[i], true
}

// ListTasks implements service.TaskService.
func (f *FakeService) ListTasks(ctx context.Context) ([]model.Task, error) {
	if f.ListTasksErr != nil {
		return nil, f.ListTasksErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]model.Task, len(f.tasks))
	copy(out, f.tasks)
	return out, nil
}

// AddTask implements service.TaskService.
func (f *FakeService) AddTask(ctx context.Context, draft model.TaskDraft) (model.Task, error) {
	if f.AddTaskErr != nil {
		return model.Task{}, f.AddTaskErr
	}
	if err := draft.Validate(); err != nil {
		return model.Task{}, err
	}
	task := taskFromDraft(uuid.NewString(), draft)
	task.Status = model.TaskStatusOpen
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks = append(f.tasks, task)
	return task, nil
}

// UpdateTask implements service.TaskService.
func (f *FakeService) UpdateTask(ctx context.Context, id string, draft model.TaskDraft) (model.Task, error) {
	if f.UpdateTaskErr != nil {
		return model.Task{}, f.UpdateTaskErr
	}
	if err := draft.Validate(); err != nil {
		return model.Task{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.taskIndex(id)
	if i < 0 {
		return model.Task{}, ErrNotFound
	}
	updated := taskFromDraft(id, draft)
	updated.Status = f.tasks[i].Status
	f.tasks[i] = updated
	return updated, nil
}

// CompleteTask implements service.TaskService.
func (f *FakeService) CompleteTask(ctx context.Context, id string) error {
	if f.CompleteTaskErr != nil {
		return f.CompleteTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.taskIndex(id)
	if i < 0 {
		return ErrNotFound
	}
	f.tasks[i].Status = model.TaskStatusCompleted
	return nil
}

// DeleteTask implements service.TaskService.
func (f *FakeService) DeleteTask(ctx context.Context, id string) error {
	if f.DeleteTaskErr != nil {
		return f.DeleteTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.taskIndex(id)
	if i < 0 {
		return ErrNotFound
	}
	f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
	return nil
}

// ListCollection implements service.CollectionService.
func (f *FakeService) ListCollection(ctx context.Context, collectionID string) ([]model.Entry, error) {
	if err := f.ListCollectionErr[collectionID]; err != nil {
		return nil, err
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	entries, ok := f.collections[collectionID]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]model.Entry, len(entries))
	copy(out, entries)
	return out, nil
}

// ReorderEntry implements service.CollectionService. The move is relative,
// like the real backend: steps positions up or down, clamped at the ends.
func (f *FakeService) ReorderEntry(ctx context.Context, collectionID, entryID string, direction model.Direction, steps int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Reorders = append(f.Reorders, model.ReorderRequest{CollectionID: collectionID, EntryID: entryID, Direction: direction, Steps: steps})
	if f.ReorderErr != nil {
		return f.ReorderErr
	}
	entries := f.collections[collectionID]
	from := entryIndex(entries, entryID)
	if from < 0 {
		return ErrNotFound
	}
	to := from + steps
	if direction == model.DirectionUp {
		to = from - steps
	}
	if to < 0 {
		to = 0
	}
	if to > len(entries)-1 {
		to = len(entries) - 1
	}
	moved := entries[from]
	entries = append(entries[:from], entries[from+1:]...)
	entries = append(entries[:to], append([]model.Entry{moved}, entries[to:]...)...)
	f.collections[collectionID] = entries
	return nil
}

// AddEntry implements service.CollectionService. New lists get an empty
// item collection of their own.
func (f *FakeService) AddEntry(ctx context.Context, collectionID, name string) (model.Entry, error) {
	if f.AddEntryErr != nil {
		return model.Entry{}, f.AddEntryErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.collections[collectionID]; !ok {
		return model.Entry{}, ErrNotFound
	}
	entry := model.Entry{ID: uuid.NewString(), Name: name}
	f.collections[collectionID] = append(f.collections[collectionID], entry)
	if collectionID == model.ListsCollection {
		f.collections[entry.ID] = nil
	}
	return entry, nil
}

// ToggleEntry implements service.CollectionService.
func (f *FakeService) ToggleEntry(ctx context.Context, collectionID, entryID string) error {
	if f.ToggleEntryErr != nil {
		return f.ToggleEntryErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	entries := f.collections[collectionID]
	i := entryIndex(entries, entryID)
	if i < 0 {
		return ErrNotFound
	}
	entries[i].Checked = !entries[i].Checked
	return nil
}

// RemoveEntry implements service.CollectionService.
func (f *FakeService) RemoveEntry(ctx context.Context, collectionID, entryID string) error {
	if f.RemoveEntryErr != nil {
		return f.RemoveEntryErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	entries := f.collections[collectionID]
	i := entryIndex(entries, entryID)
	if i < 0 {
		return ErrNotFound
	}
	f.collections[collectionID] = append(entries[:i], entries[i+1:]...)
	if collectionID == model.ListsCollection {
		delete(f.collections, entryID)
	}
	return nil
}

func (f *FakeService) taskIndex(id string) int {
	for i, t := range f.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func entryIndex(entries []model.Entry, id string) int {
	for i, e := range entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}

func taskFromDraft(id string, d model.TaskDraft) model.Task {
	return model.Task{
		ID:         id,
		Text:       d.Text,
		DueDate:    d.DueDate,
		DueTime:    d.DueTime,
		Scope:      d.Scope,
		ScopeYear:  d.ScopeYear,
		ScopeWeek:  d.ScopeWeek,
		ScopeMonth: d.ScopeMonth,
	}
}
