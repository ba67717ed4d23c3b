package update

import (
	"fmt"

	"github.com/sandeepkv93/hearth/internal/calendar"
)

// shiftAnchor pages the current task view by one period: a day, a week or
// a month.
func (m *Model) shiftAnchor(delta int) {
	var next calendar.Date
	switch m.CurrentView {
	case ViewWeek:
		next = m.Anchor.AddDays(7 * delta)
	case ViewMonth:
		ym := calendar.MonthOf(m.Anchor).AddMonths(delta)
		day := m.Anchor.Day
		if last := ym.AddMonths(1).FirstDay().AddDays(-1).Day; day > last {
			day = last
		}
		next = calendar.New(ym.Year, ym.Month, day)
	default:
		next = m.Anchor.AddDays(delta)
	}
	m.setAnchor(next)
	m.Status = StatusBar{Text: fmt.Sprintf("%s: %s", m.CurrentView, m.periodLabel())}
}

func (m Model) periodLabel() string {
	switch m.CurrentView {
	case ViewWeek:
		return fmt.Sprintf("%s (from %s)", m.Board.Groups.Weekly.Week, m.Board.Groups.Weekly.Start)
	case ViewMonth:
		return m.Board.Groups.Monthly.Month.String()
	default:
		return m.Anchor.String()
	}
}
