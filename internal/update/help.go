package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"

	"github.com/sandeepkv93/hearth/internal/views"
)

type KeyBinding struct {
	Key    string
	Action string
}

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

const paletteHelp = `**commands**

- ` + "`add <text> [@today|@tomorrow|@YYYY-MM-DD|@week|@month|@later] [@HH:MM]`" + `
- ` + "`done <n>`" + `, ` + "`rm <n>`" + `
- ` + "`goto today|YYYY-MM-DD`" + `
- ` + "`list <name>`" + `, ` + "`item <name>`" + `
`

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	return m.renderHelpView()
}

func (m Model) renderHelpView() string {
	bindings := m.helpBindings()
	var plain []string
	for _, kb := range m.viewBindings() {
		plain = append(plain, fmt.Sprintf("- %s: %s", kb.Key, kb.Action))
	}
	return views.RenderHelpPanel(views.HelpPanelData{
		CurrentView: string(m.CurrentView),
		Bindings:    plain,
		HelpView: m.helpModel.View(helpKeyMap{
			short: bindings,
			full:  [][]key.Binding{bindings},
		}) + "\n" + views.RenderMarkdown(paletteHelp),
	})
}

func (m Model) globalBindings() []KeyBinding {
	return []KeyBinding{
		{Key: m.Keys.Today, Action: "switch to Today"},
		{Key: m.Keys.Week, Action: "switch to Week"},
		{Key: m.Keys.Month, Action: "switch to Month"},
		{Key: m.Keys.Lists, Action: "switch to Lists"},
		{Key: "/", Action: "open command palette"},
		{Key: "r", Action: "reload from server"},
		{Key: m.Keys.Help, Action: "toggle help panel"},
		{Key: m.Keys.Quit, Action: "quit app"},
	}
}

func (m Model) viewBindings() []KeyBinding {
	switch m.CurrentView {
	case ViewToday, ViewWeek, ViewMonth:
		return []KeyBinding{
			{Key: "j/k", Action: "move selection"},
			{Key: "h/l", Action: "previous/next period"},
			{Key: "t", Action: "jump to today"},
			{Key: "x", Action: "complete task"},
			{Key: "d", Action: "delete task"},
		}
	case ViewLists:
		return []KeyBinding{
			{Key: "j/k", Action: "move cursor (nudge while moving)"},
			{Key: "m", Action: "pick up / drop list"},
			{Key: "enter", Action: "open list (drop while moving)"},
			{Key: "esc", Action: "cancel move"},
			{Key: "d", Action: "remove list"},
		}
	case ViewItems:
		return []KeyBinding{
			{Key: "j/k", Action: "move cursor (nudge while moving)"},
			{Key: "m", Action: "pick up / drop item"},
			{Key: "enter", Action: "drop item"},
			{Key: "space", Action: "check item"},
			{Key: "d", Action: "remove item"},
			{Key: "esc", Action: "cancel move / back to lists"},
		}
	default:
		return []KeyBinding{{Key: "-", Action: "no contextual bindings"}}
	}
}

func (m Model) helpBindings() []key.Binding {
	out := make([]key.Binding, 0, len(m.globalBindings())+len(m.viewBindings()))
	for _, kb := range m.globalBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	for _, kb := range m.viewBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	return out
}
