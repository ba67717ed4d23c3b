// Package grouping partitions scoped tasks into the daily, weekly and monthly
// view buckets. Every bucket keeps the caller's input order.
package grouping

import (
	"github.com/sandeepkv93/hearth/internal/calendar"
	"github.com/sandeepkv93/hearth/internal/scope"
)

type Daily struct {
	Day     calendar.Date
	OpenDay []scope.ScopedTask
	DoneDay []scope.ScopedTask
	// Later holds open unscheduled tasks regardless of the reference day.
	Later []scope.ScopedTask
}

type WeekRow struct {
	Date      calendar.Date
	OpenCount int
	DoneCount int
}

type Weekly struct {
	Start    calendar.Date
	Week     calendar.ISOWeek
	Rows     []WeekRow
	WeekOpen []scope.ScopedTask
	WeekDone []scope.ScopedTask
}

type DayCount struct {
	Open int
	Done int
}

func (c DayCount) Total() int {
	return c.Open + c.Done
}

type Monthly struct {
	Month calendar.YearMonth
	Cells []calendar.MonthCell
	// Counts maps a date key inside the month to its number of DAY tasks.
	Counts    map[string]int
	DayCounts map[string]DayCount
	MonthOpen []scope.ScopedTask
	MonthDone []scope.ScopedTask
}

type Reference struct {
	Day       calendar.Date
	WeekStart calendar.Date
	Month     calendar.YearMonth
}

// ReferenceFor anchors all three views on the same date.
func ReferenceFor(d calendar.Date) Reference {
	return Reference{
		Day:       d,
		WeekStart: calendar.StartOfWeekMonday(d),
		Month:     calendar.MonthOf(d),
	}
}

type Groups struct {
	Daily   Daily
	Weekly  Weekly
	Monthly Monthly
}

func Group(tasks []scope.ScopedTask, ref Reference) Groups {
	return Groups{
		Daily:   GroupDaily(tasks, ref.Day),
		Weekly:  GroupWeekly(tasks, ref.WeekStart),
		Monthly: GroupMonthly(tasks, ref.Month),
	}
}

func GroupDaily(tasks []scope.ScopedTask, day calendar.Date) Daily {
	out := Daily{Day: day}
	for _, t := range tasks {
		if d, ok := t.Day(); ok {
			if d != day {
				continue
			}
			if t.Task.IsCompleted() {
				out.DoneDay = append(out.DoneDay, t)
			} else {
				out.OpenDay = append(out.OpenDay, t)
			}
			continue
		}
		if _, ok := t.Value.(scope.LaterValue); ok && t.Task.IsOpen() {
			out.Later = append(out.Later, t)
		}
	}
	return out
}

// GroupWeekly normalizes weekStart to its Monday.
func GroupWeekly(tasks []scope.ScopedTask, weekStart calendar.Date) Weekly {
	start := calendar.StartOfWeekMonday(weekStart)
	out := Weekly{
		Start: start,
		Week:  calendar.ISOWeekOf(start),
		Rows:  make([]WeekRow, 0, 7),
	}
	index := make(map[calendar.Date]int, 7)
	for i, d := range calendar.WeekDates(start) {
		index[d] = i
		out.Rows = append(out.Rows, WeekRow{Date: d})
	}
	for _, t := range tasks {
		if d, ok := t.Day(); ok {
			i, inWeek := index[d]
			if !inWeek {
				continue
			}
			if t.Task.IsCompleted() {
				out.Rows[i].DoneCount++
			} else {
				out.Rows[i].OpenCount++
			}
			continue
		}
		if w, ok := t.Week(); ok && w == out.Week {
			if t.Task.IsCompleted() {
				out.WeekDone = append(out.WeekDone, t)
			} else {
				out.WeekOpen = append(out.WeekOpen, t)
			}
		}
	}
	return out
}

func GroupMonthly(tasks []scope.ScopedTask, month calendar.YearMonth) Monthly {
	out := Monthly{
		Month:     month,
		Cells:     calendar.BuildMonthGrid(month.FirstDay()),
		Counts:    make(map[string]int),
		DayCounts: make(map[string]DayCount),
	}
	for _, t := range tasks {
		if d, ok := t.Day(); ok {
			if !month.Contains(d) {
				continue
			}
			key := d.Key()
			out.Counts[key]++
			c := out.DayCounts[key]
			if t.Task.IsCompleted() {
				c.Done++
			} else {
				c.Open++
			}
			out.DayCounts[key] = c
			continue
		}
		if m, ok := t.Month(); ok && m == month {
			if t.Task.IsCompleted() {
				out.MonthDone = append(out.MonthDone, t)
			} else {
				out.MonthOpen = append(out.MonthOpen, t)
			}
		}
	}
	return out
}
