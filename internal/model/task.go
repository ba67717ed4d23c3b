package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidStatus = errors.New("model: invalid task status")
	ErrInvalidScope  = errors.New("model: invalid task scope")
)

type TaskStatus string

const (
	TaskStatusOpen      TaskStatus = "OPEN"
	TaskStatusCompleted TaskStatus = "COMPLETED"
)

func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusOpen, TaskStatusCompleted:
		return true
	default:
		return false
	}
}

// Scope is the temporal bucket a task is filed under. The zero value means
// the record carries no explicit scope (legacy data).
type Scope string

const (
	ScopeDay   Scope = "DAY"
	ScopeWeek  Scope = "WEEK"
	ScopeMonth Scope = "MONTH"
	ScopeLater Scope = "LATER"
)

func (s Scope) IsValid() bool {
	switch s {
	case ScopeDay, ScopeWeek, ScopeMonth, ScopeLater:
		return true
	default:
		return false
	}
}

// Task is owned by the remote service; the core only reads it.
type Task struct {
	ID      string
	Text    string
	Status  TaskStatus
	DueDate string
	DueTime string

	Scope      Scope
	ScopeYear  *int
	ScopeWeek  *int
	ScopeMonth *int
}

func (t Task) IsOpen() bool {
	return t.Status != TaskStatusCompleted
}

func (t Task) IsCompleted() bool {
	return t.Status == TaskStatusCompleted
}

// TaskDraft is the payload for add and update calls.
type TaskDraft struct {
	Text    string
	DueDate string
	DueTime string

	Scope      Scope
	ScopeYear  *int
	ScopeWeek  *int
	ScopeMonth *int
}

func (d TaskDraft) Validate() error {
	if strings.TrimSpace(d.Text) == "" {
		return errors.New("model: task text is required")
	}
	if d.Scope == "" {
		return nil
	}
	if !d.Scope.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidScope, d.Scope)
	}
	switch d.Scope {
	case ScopeDay:
		if strings.TrimSpace(d.DueDate) == "" {
			return errors.New("model: DAY scope requires a due date")
		}
	case ScopeWeek:
		if d.ScopeYear == nil || d.ScopeWeek == nil {
			return errors.New("model: WEEK scope requires scope year and week")
		}
		if *d.ScopeWeek < 1 || *d.ScopeWeek > 53 {
			return fmt.Errorf("model: scope week out of range: %d", *d.ScopeWeek)
		}
	case ScopeMonth:
		if d.ScopeYear == nil || d.ScopeMonth == nil {
			return errors.New("model: MONTH scope requires scope year and month")
		}
		if *d.ScopeMonth < 1 || *d.ScopeMonth > 12 {
			return fmt.Errorf("model: scope month out of range: %d", *d.ScopeMonth)
		}
	}
	return nil
}

func DraftForDay(text, dueDate, dueTime string) TaskDraft {
	return TaskDraft{Text: text, DueDate: dueDate, DueTime: dueTime, Scope: ScopeDay}
}

func DraftForWeek(text string, year, week int) TaskDraft {
	return TaskDraft{Text: text, Scope: ScopeWeek, ScopeYear: intPtr(year), ScopeWeek: intPtr(week)}
}

func DraftForMonth(text string, year, month int) TaskDraft {
	return TaskDraft{Text: text, Scope: ScopeMonth, ScopeYear: intPtr(year), ScopeMonth: intPtr(month)}
}

func DraftForLater(text string) TaskDraft {
	return TaskDraft{Text: text, Scope: ScopeLater}
}

func intPtr(v int) *int {
	return &v
}
