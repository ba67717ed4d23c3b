package scheduler

import (
	"strings"
	"time"

	"github.com/sandeepkv93/hearth/internal/calendar"
	"github.com/sandeepkv93/hearth/internal/model"
	"github.com/sandeepkv93/hearth/internal/scope"
)

var dueTimeLayouts = []string{"15:04", "15:04:05"}

// ParseDueTime reads an "HH:MM" or "HH:MM:SS" wall-clock time.
func ParseDueTime(raw string) (hour, minute, second int, ok bool) {
	raw = strings.TrimSpace(raw)
	for _, layout := range dueTimeLayouts {
		t, err := time.Parse(layout, raw)
		if err == nil {
			return t.Hour(), t.Minute(), t.Second(), true
		}
	}
	return 0, 0, 0, false
}

// DueEventsFor builds alerts for the open DAY tasks on day that carry a
// parseable due time, in loc.
func DueEventsFor(tasks []scope.ScopedTask, day calendar.Date, loc *time.Location) []DueEvent {
	if loc == nil {
		loc = time.Local
	}
	out := make([]DueEvent, 0)
	for _, t := range tasks {
		if !t.Task.IsOpen() || t.Scope() != model.ScopeDay {
			continue
		}
		d, _ := t.Day()
		if d != day {
			continue
		}
		h, m, s, ok := ParseDueTime(t.Task.DueTime)
		if !ok {
			continue
		}
		out = append(out, DueEvent{
			TaskID: t.Task.ID,
			Text:   t.Task.Text,
			At:     time.Date(d.Year, d.Month, d.Day, h, m, s, 0, loc),
		})
	}
	return out
}
