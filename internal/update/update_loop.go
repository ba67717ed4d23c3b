package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/hearth/internal/model"
)

func (m Model) Init() tea.Cmd {
	cmds := m.initialLoadCmds()
	if m.scheduler != nil {
		cmds = append(cmds, waitForAlertCmd(m.scheduler.C()))
	}
	if len(cmds) > 0 {
		cmds = append(cmds, m.syncSpinner.Tick)
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		if m.Palette.Active {
			if typed.String() == "ctrl+c" {
				m.Quitting = true
				return m, tea.Quit
			}
			return m.handlePaletteKey(typed)
		}
		if m.dragging() {
			return m.handleCollectionKey(typed)
		}

		switch typed.String() {
		case "/", ":":
			m.openPalette()
			return m, nil
		case m.Keys.Today:
			m.switchView(ViewToday)
			return m, nil
		case m.Keys.Week:
			m.switchView(ViewWeek)
			return m, nil
		case m.Keys.Month:
			m.switchView(ViewMonth)
			return m, nil
		case m.Keys.Lists:
			m.switchView(ViewLists)
			return m, nil
		case m.Keys.Help:
			m.HelpVisible = !m.HelpVisible
			return m, nil
		case "r":
			return m, tea.Batch(m.initialLoadCmds()...)
		case "ctrl+c", m.Keys.Quit:
			m.Quitting = true
			return m, tea.Quit
		}
		if m.isTaskView() {
			return m.handleTaskKey(typed)
		}
		return m.handleCollectionKey(typed)
	case tea.MouseMsg:
		return m.handleMouse(typed)
	case spinner.TickMsg:
		if m.busy() {
			var cmd tea.Cmd
			m.syncSpinner, cmd = m.syncSpinner.Update(typed)
			return m, cmd
		}
		return m, nil
	case SwitchViewMsg:
		if isKnownView(typed.View) {
			m.switchView(typed.View)
		}
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
		}
		return m, nil
	case TasksLoadedMsg:
		m.tasksLoaded = true
		if typed.Err != nil {
			m.LastError = typed.Err
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
			m.logger.Error("task refresh failed", "err", typed.Err)
			return m, nil
		}
		m.setTasks(typed.Tasks)
		m.cacheTasks(typed.Tasks)
		if typed.Note != "" {
			m.Status = StatusBar{Text: typed.Note}
		}
		return m, nil
	case CollectionLoadedMsg:
		if typed.CollectionID == model.ListsCollection {
			m.listsLoaded = true
		}
		return m.applyCollection(typed), nil
	case ReorderDoneMsg:
		return m.applyReorder(typed.Result), nil
	case DueAlertMsg:
		m.recordAlert(typed.Event)
		if m.scheduler != nil {
			return m, waitForAlertCmd(m.scheduler.C())
		}
		return m, nil
	}

	return m, nil
}

func (m *Model) switchView(v View) {
	if v == ViewItems && m.OpenListID == "" {
		v = ViewLists
	}
	m.CurrentView = v
	m.clampCursor()
}

// busy reports whether the first load or a reorder is still in flight.
func (m Model) busy() bool {
	if m.svc == nil {
		return false
	}
	return m.loading > 0 || !m.tasksLoaded || !m.listsLoaded
}

func (m Model) View() string {
	if m.Quitting {
		return ""
	}
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}
	if m.busy() {
		status = m.syncSpinner.View() + " " + status
	}

	var leftPane string
	switch m.CurrentView {
	case ViewWeek:
		leftPane = m.renderWeekView()
	case ViewMonth:
		leftPane = m.renderMonthView()
	case ViewLists, ViewItems:
		leftPane = m.renderCollectionView()
	default:
		leftPane = m.renderTodayView()
	}
	rightPane := m.renderProgressPane() + m.renderCommandPalette() + m.renderHelpIfVisible()

	return m.renderApp(leftPane, rightPane, status)
}

func isKnownView(v View) bool {
	switch v {
	case ViewToday, ViewWeek, ViewMonth, ViewLists, ViewItems:
		return true
	default:
		return false
	}
}
