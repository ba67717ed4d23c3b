package update

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/hearth/internal/scope"
)

func (m Model) handleTaskKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		m.moveCursor(-1)
	case "down", "j":
		m.moveCursor(1)
	case "h", "left":
		m.shiftAnchor(-1)
	case "l", "right":
		m.shiftAnchor(1)
	case "t":
		m.setAnchor(m.today())
		m.Status = StatusBar{Text: fmt.Sprintf("today: %s", m.Anchor)}
	case "x":
		return m.completeRow(m.Cursors[m.CurrentView])
	case "d":
		return m.deleteRow(m.Cursors[m.CurrentView])
	}
	return m, nil
}

// taskRows lists the selectable tasks of a task view, in display order.
func (m Model) taskRows(v View) []scope.ScopedTask {
	g := m.Board.Groups
	var parts [][]scope.ScopedTask
	switch v {
	case ViewToday:
		parts = [][]scope.ScopedTask{g.Daily.OpenDay, g.Daily.DoneDay, g.Daily.Later}
	case ViewWeek:
		parts = [][]scope.ScopedTask{g.Weekly.WeekOpen, g.Weekly.WeekDone}
	case ViewMonth:
		parts = [][]scope.ScopedTask{g.Monthly.MonthOpen, g.Monthly.MonthDone}
	}
	out := make([]scope.ScopedTask, 0)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

func (m Model) currentTask() (scope.ScopedTask, bool) {
	rows := m.taskRows(m.CurrentView)
	i := m.Cursors[m.CurrentView]
	if i < 0 || i >= len(rows) {
		return scope.ScopedTask{}, false
	}
	return rows[i], true
}

func (m Model) taskAt(index int) (scope.ScopedTask, error) {
	rows := m.taskRows(m.CurrentView)
	if index < 0 || index >= len(rows) {
		return scope.ScopedTask{}, fmt.Errorf("no task at row %d", index+1)
	}
	return rows[index], nil
}

func (m Model) completeRow(index int) (Model, tea.Cmd) {
	t, err := m.taskAt(index)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}
	if t.Task.IsCompleted() {
		m.Status = StatusBar{Text: fmt.Sprintf("already done: %s", t.Task.Text)}
		return m, nil
	}
	if m.svc == nil {
		return m, nil
	}
	id := t.Task.ID
	m.Status = StatusBar{Text: fmt.Sprintf("completing: %s", t.Task.Text)}
	return m, taskMutationCmd(m.svc, "completed "+t.Task.Text, func(ctx context.Context) error {
		return m.svc.CompleteTask(ctx, id)
	})
}

func (m Model) deleteRow(index int) (Model, tea.Cmd) {
	t, err := m.taskAt(index)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}
	if m.svc == nil {
		return m, nil
	}
	id := t.Task.ID
	m.Status = StatusBar{Text: fmt.Sprintf("deleting: %s", t.Task.Text)}
	return m, taskMutationCmd(m.svc, "deleted "+t.Task.Text, func(ctx context.Context) error {
		return m.svc.DeleteTask(ctx, id)
	})
}

func (m *Model) moveCursor(delta int) {
	m.Cursors[m.CurrentView] += delta
	m.clampCursor()
}

func (m Model) rowCount(v View) int {
	switch v {
	case ViewLists, ViewItems:
		return len(m.entryRows(v))
	default:
		return len(m.taskRows(v))
	}
}

func (m *Model) clampCursor() {
	if m.Cursors == nil {
		return
	}
	n := m.rowCount(m.CurrentView)
	c := m.Cursors[m.CurrentView]
	if c >= n {
		c = n - 1
	}
	if c < 0 {
		c = 0
	}
	m.Cursors[m.CurrentView] = c
}
