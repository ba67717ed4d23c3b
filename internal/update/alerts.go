package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/hearth/internal/scheduler"
)

const maxAlerts = 20

func waitForAlertCmd(ch <-chan scheduler.DueEvent) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return DueAlertMsg{Event: ev}
	}
}

// rescheduleAlerts replaces the pending alerts with today's open timed DAY
// tasks. Alerts always follow the real day, not the anchor being viewed.
func (m *Model) rescheduleAlerts() {
	if m.scheduler == nil || !m.cfg.DueAlerts {
		return
	}
	events := scheduler.DueEventsFor(m.Board.Scoped, m.today(), nil)
	n, err := m.scheduler.Replace(events, m.now())
	if err != nil {
		m.logger.Warn("schedule due alerts", "err", err)
		return
	}
	m.logger.Debug("due alerts scheduled", "count", n)
}

func (m *Model) recordAlert(ev scheduler.DueEvent) {
	m.Alerts = append(m.Alerts, ev)
	if len(m.Alerts) > maxAlerts {
		m.Alerts = m.Alerts[len(m.Alerts)-maxAlerts:]
	}
	m.Status = StatusBar{Text: fmt.Sprintf("due now: %s (%s)", ev.Text, ev.At.Format("15:04"))}
}
