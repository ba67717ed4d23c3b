package scheduler

import (
	"testing"
	"time"

	"github.com/sandeepkv93/hearth/internal/calendar"
	"github.com/sandeepkv93/hearth/internal/model"
	"github.com/sandeepkv93/hearth/internal/scope"
)

func TestParseDueTime(t *testing.T) {
	cases := []struct {
		raw     string
		h, m, s int
		ok      bool
	}{
		{"09:30", 9, 30, 0, true},
		{" 18:05:07 ", 18, 5, 7, true},
		{"9am", 0, 0, 0, false},
		{"", 0, 0, 0, false},
	}
	for _, tc := range cases {
		h, m, s, ok := ParseDueTime(tc.raw)
		if ok != tc.ok || h != tc.h || m != tc.m || s != tc.s {
			t.Fatalf("ParseDueTime(%q) = %d:%d:%d %v", tc.raw, h, m, s, ok)
		}
	}
}

func TestDueEventsForOnlyOpenDayTasksWithTime(t *testing.T) {
	day := calendar.New(2026, time.January, 14)
	tasks := scope.ResolveAll([]model.Task{
		{ID: "a", Text: "call", Status: model.TaskStatusOpen, Scope: model.ScopeDay, DueDate: "2026-01-14", DueTime: "10:15"},
		{ID: "b", Text: "done", Status: model.TaskStatusCompleted, Scope: model.ScopeDay, DueDate: "2026-01-14", DueTime: "11:00"},
		{ID: "c", Text: "no time", Status: model.TaskStatusOpen, Scope: model.ScopeDay, DueDate: "2026-01-14"},
		{ID: "d", Text: "tomorrow", Status: model.TaskStatusOpen, Scope: model.ScopeDay, DueDate: "2026-01-15", DueTime: "08:00"},
		{ID: "e", Text: "later", Status: model.TaskStatusOpen, Scope: model.ScopeLater, DueDate: "2026-01-14", DueTime: "08:00"},
	})

	events := DueEventsFor(tasks, day, time.UTC)
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %#v", events)
	}
	want := time.Date(2026, time.January, 14, 10, 15, 0, 0, time.UTC)
	if events[0].TaskID != "a" || !events[0].At.Equal(want) {
		t.Fatalf("unexpected event %#v", events[0])
	}
}
