package storage

import (
	"time"

	"github.com/sandeepkv93/hearth/internal/model"
)

// Task is a cached copy of a remote task, kept in server order.
type Task struct {
	ID         string
	Position   int
	Text       string
	Status     string
	DueDate    string
	DueTime    string
	Scope      string
	ScopeYear  *int
	ScopeWeek  *int
	ScopeMonth *int
	SyncedAt   time.Time
}

// CollectionEntry is one row of a cached ordered collection.
type CollectionEntry struct {
	CollectionID string
	Position     int
	EntryID      string
	Name         string
	Checked      bool
	SyncedAt     time.Time
}

type TaskListFilter struct {
	Status string
	Limit  int
	Offset int
}

// TasksSyncKey is the sync mark key for the task cache. Collections use
// their collection id.
const TasksSyncKey = "tasks"

func TaskFromModel(position int, t model.Task, syncedAt time.Time) Task {
	return Task{
		ID:         t.ID,
		Position:   position,
		Text:       t.Text,
		Status:     string(t.Status),
		DueDate:    t.DueDate,
		DueTime:    t.DueTime,
		Scope:      string(t.Scope),
		ScopeYear:  t.ScopeYear,
		ScopeWeek:  t.ScopeWeek,
		ScopeMonth: t.ScopeMonth,
		SyncedAt:   syncedAt,
	}
}

func (t Task) Model() model.Task {
	return model.Task{
		ID:         t.ID,
		Text:       t.Text,
		Status:     model.TaskStatus(t.Status),
		DueDate:    t.DueDate,
		DueTime:    t.DueTime,
		Scope:      model.Scope(t.Scope),
		ScopeYear:  t.ScopeYear,
		ScopeWeek:  t.ScopeWeek,
		ScopeMonth: t.ScopeMonth,
	}
}

func EntryFromModel(collectionID string, position int, e model.Entry, syncedAt time.Time) CollectionEntry {
	return CollectionEntry{
		CollectionID: collectionID,
		Position:     position,
		EntryID:      e.ID,
		Name:         e.Name,
		Checked:      e.Checked,
		SyncedAt:     syncedAt,
	}
}

func (e CollectionEntry) Model() model.Entry {
	return model.Entry{ID: e.EntryID, Name: e.Name, Checked: e.Checked}
}
