package update

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/hearth/internal/commands"
	"github.com/sandeepkv93/hearth/internal/model"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closePalette()
		m.Status = StatusBar{Text: "command palette closed", IsError: false}
		return m, nil
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		return m.executePaletteCommand()
	default:
		if msg.Type == tea.KeyRunes {
			m.commandInput.SetValue(m.commandInput.Value() + string(msg.Runes))
			m.Palette.Input = m.commandInput.Value()
			return m, nil
		}
		var cmd tea.Cmd
		m.commandInput, cmd = m.commandInput.Update(msg)
		m.Palette.Input = m.commandInput.Value()
		return m, cmd
	}
}

func (m *Model) openPalette() {
	m.Palette.Active = true
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Focus()
	m.Status = StatusBar{Text: "command palette active", IsError: false}
}

func (m *Model) closePalette() {
	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Blur()
}

func (m Model) executePaletteCommand() (Model, tea.Cmd) {
	raw := strings.TrimSpace(m.Palette.Input)
	m.closePalette()

	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}

	var next tea.Cmd
	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			if m.svc == nil {
				return commands.Result{}, errNoService
			}
			draft := a.Draft(m.Anchor)
			if err := draft.Validate(); err != nil {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: err.Error()}
			}
			next = taskMutationCmd(m.svc, "added "+a.Text, func(ctx context.Context) error {
				_, err := m.svc.AddTask(ctx, draft)
				return err
			})
			return commands.Result{Message: fmt.Sprintf("adding: %s (%s)", a.Text, describeDraft(draft))}, nil
		},
		Done: func(a commands.IndexArgs) (commands.Result, error) {
			if !m.isTaskView() {
				return commands.Result{}, errNotTaskView
			}
			t, err := m.taskAt(a.Index - 1)
			if err != nil {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: err.Error()}
			}
			m, next = m.completeRow(a.Index - 1)
			return commands.Result{Message: m.statusOr(fmt.Sprintf("completing: %s", t.Task.Text))}, nil
		},
		Rm: func(a commands.IndexArgs) (commands.Result, error) {
			if m.isTaskView() {
				if _, err := m.taskAt(a.Index - 1); err != nil {
					return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: err.Error()}
				}
				m, next = m.deleteRow(a.Index - 1)
				return commands.Result{Message: m.Status.Text}, nil
			}
			rows := m.entryRows(m.CurrentView)
			if a.Index > len(rows) {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("no entry at row %d", a.Index)}
			}
			m.Cursors[m.CurrentView] = a.Index - 1
			m, next = m.removeCurrentEntry()
			return commands.Result{Message: "removing: " + rows[a.Index-1].Name}, nil
		},
		Goto: func(a commands.GotoArgs) (commands.Result, error) {
			d := a.Date
			if a.Today {
				d = m.today()
			}
			if !m.isTaskView() {
				m.CurrentView = ViewToday
			}
			m.setAnchor(d)
			return commands.Result{Message: fmt.Sprintf("%s: %s", m.CurrentView, m.periodLabel())}, nil
		},
		Item: func(a commands.NameArgs) (commands.Result, error) {
			if m.OpenListID == "" {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "open a list first"}
			}
			next = m.addEntry(m.OpenListID, a.Name)
			return commands.Result{Message: "adding item: " + a.Name}, nil
		},
		List: func(a commands.NameArgs) (commands.Result, error) {
			next = m.addEntry(model.ListsCollection, a.Name)
			return commands.Result{Message: "adding list: " + a.Name}, nil
		},
	})
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}
	m.Status = StatusBar{Text: res.Message, IsError: false}
	return m, next
}

func (m Model) statusOr(fallback string) string {
	if m.Status.Text != "" {
		return m.Status.Text
	}
	return fallback
}

func (m Model) isTaskView() bool {
	switch m.CurrentView {
	case ViewToday, ViewWeek, ViewMonth:
		return true
	default:
		return false
	}
}

func describeDraft(d model.TaskDraft) string {
	switch d.Scope {
	case model.ScopeWeek:
		return fmt.Sprintf("week %d-W%02d", *d.ScopeYear, *d.ScopeWeek)
	case model.ScopeMonth:
		return fmt.Sprintf("month %d-%02d", *d.ScopeYear, *d.ScopeMonth)
	case model.ScopeLater:
		return "later"
	default:
		if d.DueTime != "" {
			return d.DueDate + " " + d.DueTime
		}
		return d.DueDate
	}
}
