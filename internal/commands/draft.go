package commands

import (
	"github.com/sandeepkv93/hearth/internal/calendar"
	"github.com/sandeepkv93/hearth/internal/model"
)

// Draft builds the task payload for an add command. ref is the day the
// client is looking at; an add without @when lands on it.
func (a AddArgs) Draft(ref calendar.Date) model.TaskDraft {
	switch a.When.Kind {
	case WhenWeek:
		w := calendar.ISOWeekOf(ref)
		return model.DraftForWeek(a.Text, w.Year, w.Week)
	case WhenMonth:
		return model.DraftForMonth(a.Text, ref.Year, int(ref.Month))
	case WhenLater:
		return model.DraftForLater(a.Text)
	case WhenToday:
		ref = calendar.Today()
	case WhenTomorrow:
		ref = calendar.Today().AddDays(1)
	case WhenDate:
		ref = a.When.Date
	}
	return model.DraftForDay(a.Text, ref.Key(), a.When.Time)
}
