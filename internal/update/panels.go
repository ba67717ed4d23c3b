package update

import (
	"fmt"
	"strings"

	"github.com/sandeepkv93/hearth/internal/model"
	"github.com/sandeepkv93/hearth/internal/reorder"
	"github.com/sandeepkv93/hearth/internal/scope"
	"github.com/sandeepkv93/hearth/internal/views"
)

// taskRowData numbers rows from offset+1 so that the numbers shown across
// all sections of a view match taskRows order.
func (m Model) taskRowData(tasks []scope.ScopedTask, offset int) []views.TaskRowData {
	cursor := m.Cursors[m.CurrentView]
	out := make([]views.TaskRowData, 0, len(tasks))
	for i, t := range tasks {
		out = append(out, views.TaskRowData{
			Index:    offset + i + 1,
			Text:     t.Task.Text,
			Detail:   taskDetail(t),
			Done:     t.Task.IsCompleted(),
			Selected: offset+i == cursor,
		})
	}
	return out
}

func taskDetail(t scope.ScopedTask) string {
	if t.Task.DueTime != "" {
		return "@" + t.Task.DueTime
	}
	return ""
}

func (m Model) renderTodayView() string {
	d := m.Board.Groups.Daily
	open := m.taskRowData(d.OpenDay, 0)
	done := m.taskRowData(d.DoneDay, len(open))
	later := m.taskRowData(d.Later, len(open)+len(done))
	return views.RenderTodayPanel(views.TodayPanelData{
		Day:   d.Day.String(),
		Open:  open,
		Done:  done,
		Later: later,
	})
}

func (m Model) renderWeekView() string {
	w := m.Board.Groups.Weekly
	days := make([]views.WeekDayData, 0, len(w.Rows))
	for _, row := range w.Rows {
		days = append(days, views.WeekDayData{
			Label:    fmt.Sprintf("%s %s", row.Date.Weekday().String()[:3], row.Date.Key()[5:]),
			Open:     row.OpenCount,
			Done:     row.DoneCount,
			IsAnchor: row.Date == m.Anchor,
		})
	}
	open := m.taskRowData(w.WeekOpen, 0)
	return views.RenderWeekPanel(views.WeekPanelData{
		Week:  w.Week.String(),
		Start: w.Start.String(),
		Days:  days,
		Tasks: append(open, m.taskRowData(w.WeekDone, len(open))...),
	})
}

func (m Model) renderMonthView() string {
	mo := m.Board.Groups.Monthly
	cells := make([]views.MonthCellData, 0, len(mo.Cells))
	for _, c := range mo.Cells {
		count := mo.DayCounts[c.Date.Key()]
		cells = append(cells, views.MonthCellData{
			Day:      c.Date.Day,
			InMonth:  c.IsCurrentMonth,
			Open:     count.Open,
			Done:     count.Done,
			IsAnchor: c.Date == m.Anchor,
		})
	}
	open := m.taskRowData(mo.MonthOpen, 0)
	return views.RenderMonthPanel(views.MonthPanelData{
		Month: mo.Month.String(),
		Cells: cells,
		Tasks: append(open, m.taskRowData(mo.MonthDone, len(open))...),
	})
}

func (m Model) renderCollectionView() string {
	data := views.CollectionPanelData{Title: m.collectionTitle()}
	active := ""
	if rec, ok := m.reconciler(); ok {
		data.State = rec.State().String()
		if id, ok := rec.ActiveEntry(); ok && rec.State() == reorder.StateDragging {
			active = id
		}
		if err := rec.LastError(); err != nil {
			data.LastError = err.Error()
		}
	}
	cursor := m.Cursors[m.CurrentView]
	for i, e := range m.entryRows(m.CurrentView) {
		data.Rows = append(data.Rows, views.EntryRowData{
			Name:      e.Name,
			Checked:   e.Checked,
			ShowCheck: m.CurrentView == ViewItems,
			Selected:  i == cursor,
			Dragging:  e.ID == active,
		})
	}
	return views.RenderCollectionPanel(data)
}

func (m Model) collectionTitle() string {
	if m.CurrentView == ViewLists {
		return "lists"
	}
	for _, l := range m.Collections[model.ListsCollection] {
		if l.ID == m.OpenListID {
			return "list: " + views.Truncate(l.Name, 30)
		}
	}
	return "list"
}

func (m Model) renderProgressPane() string {
	r := m.Board.Report
	rows := []views.ProgressRowData{
		{Label: "day", Done: r.Daily.Done, Total: r.Daily.Total, Percent: r.Daily.Percent(), Bar: m.progressBar.ViewAs(r.Daily.Ratio)},
		{Label: "week", Done: r.Weekly.Done, Total: r.Weekly.Total, Percent: r.Weekly.Percent(), Bar: m.progressBar.ViewAs(r.Weekly.Ratio)},
		{Label: "month", Done: r.Monthly.Done, Total: r.Monthly.Total, Percent: r.Monthly.Percent(), Bar: m.progressBar.ViewAs(r.Monthly.Ratio)},
	}
	out := views.RenderProgressPanel(rows)
	if n := len(m.Alerts); n > 0 {
		last := m.Alerts[n-1]
		out += "\n" + views.RenderAlert(last.Text, last.At.Format("15:04"))
	}
	return out
}

func (m Model) renderCommandPalette() string {
	return views.RenderCommandPalette(m.Palette.Active, m.commandInput.View())
}

func (m Model) renderApp(left, right, status string) string {
	footer := fmt.Sprintf("[%s]today [%s]week [%s]month [%s]lists [/]command [r]reload [%s]help [%s]quit",
		m.Keys.Today, m.Keys.Week, m.Keys.Month, m.Keys.Lists, m.Keys.Help, m.Keys.Quit)
	return views.RenderApp(views.AppData{
		Header:     strings.Join([]string{AppName, strings.ToLower(string(m.CurrentView)), m.periodLabel()}, " | "),
		LeftPane:   left,
		RightPane:  right,
		StatusLine: status,
		Footer:     footer,
	})
}
