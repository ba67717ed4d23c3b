// Package scope classifies tasks into a temporal scope: a day, an ISO week,
// a calendar month, or unscheduled.
//
// Resolution never fails. Records with an incomplete or malformed explicit
// scope fall back to their due date, and to LATER when that is missing too.
package scope

import (
	"strings"
	"time"

	"github.com/sandeepkv93/hearth/internal/calendar"
	"github.com/sandeepkv93/hearth/internal/model"
)

// Value is the payload of a resolved scope. Exactly one of DayValue,
// WeekValue, MonthValue or LaterValue.
type Value interface {
	Kind() model.Scope
	isValue()
}

type DayValue struct {
	Date calendar.Date
}

type WeekValue struct {
	Week calendar.ISOWeek
}

type MonthValue struct {
	Month calendar.YearMonth
}

type LaterValue struct{}

func (DayValue) Kind() model.Scope   { return model.ScopeDay }
func (WeekValue) Kind() model.Scope  { return model.ScopeWeek }
func (MonthValue) Kind() model.Scope { return model.ScopeMonth }
func (LaterValue) Kind() model.Scope { return model.ScopeLater }

func (DayValue) isValue()   {}
func (WeekValue) isValue()  {}
func (MonthValue) isValue() {}
func (LaterValue) isValue() {}

// ScopedTask is a task plus its derived scheduling fields. It is recomputed
// from the task on every change and never persisted.
type ScopedTask struct {
	Task model.Task

	// HasDueDate reports whether ParsedDueDate holds a decoded due date.
	HasDueDate       bool
	ParsedDueDate    calendar.Date
	ParsedDueDateKey string

	Value Value
}

func (s ScopedTask) Scope() model.Scope {
	return s.Value.Kind()
}

// Day returns the date of a DAY-scoped task.
func (s ScopedTask) Day() (calendar.Date, bool) {
	v, ok := s.Value.(DayValue)
	return v.Date, ok
}

func (s ScopedTask) Week() (calendar.ISOWeek, bool) {
	v, ok := s.Value.(WeekValue)
	return v.Week, ok
}

func (s ScopedTask) Month() (calendar.YearMonth, bool) {
	v, ok := s.Value.(MonthValue)
	return v.Month, ok
}

// Resolve applies the resolution order: explicit DAY with a due date,
// explicit WEEK with year and week, explicit MONTH with year and month,
// explicit LATER, then the legacy fallback on the due date alone.
func Resolve(task model.Task) ScopedTask {
	out := ScopedTask{Task: task}
	if raw := strings.TrimSpace(task.DueDate); raw != "" {
		if d, err := calendar.ParseDate(raw); err == nil {
			out.HasDueDate = true
			out.ParsedDueDate = d
			out.ParsedDueDateKey = d.Key()
		}
	}
	out.Value = resolveValue(task, out)
	return out
}

func ResolveAll(tasks []model.Task) []ScopedTask {
	out := make([]ScopedTask, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, Resolve(t))
	}
	return out
}

func resolveValue(task model.Task, parsed ScopedTask) Value {
	switch model.Scope(strings.ToUpper(strings.TrimSpace(string(task.Scope)))) {
	case model.ScopeDay:
		if parsed.HasDueDate {
			return DayValue{Date: parsed.ParsedDueDate}
		}
	case model.ScopeWeek:
		if task.ScopeYear != nil && task.ScopeWeek != nil && validWeek(*task.ScopeYear, *task.ScopeWeek) {
			return WeekValue{Week: calendar.ISOWeek{Year: *task.ScopeYear, Week: *task.ScopeWeek}}
		}
	case model.ScopeMonth:
		if task.ScopeYear != nil && task.ScopeMonth != nil && validMonth(*task.ScopeYear, *task.ScopeMonth) {
			return MonthValue{Month: calendar.YearMonth{Year: *task.ScopeYear, Month: time.Month(*task.ScopeMonth)}}
		}
	case model.ScopeLater:
		return LaterValue{}
	}
	if parsed.HasDueDate {
		return DayValue{Date: parsed.ParsedDueDate}
	}
	return LaterValue{}
}

func validWeek(year, week int) bool {
	return year > 0 && week >= 1 && week <= calendar.WeeksInYear(year)
}

func validMonth(year, month int) bool {
	return year > 0 && month >= 1 && month <= 12
}
