package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const rowTextWidth = 44

var (
	doneStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Faint(true)
	selectedStyle = lipgloss.NewStyle().Bold(true)
	dragStyle     = lipgloss.NewStyle().Reverse(true)
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	anchorStyle   = lipgloss.NewStyle().Reverse(true)
)

type TaskRowData struct {
	// Index is the 1-based row number used by palette commands.
	Index    int
	Text     string
	Detail   string
	Done     bool
	Selected bool
}

type TodayPanelData struct {
	Day   string
	Open  []TaskRowData
	Done  []TaskRowData
	Later []TaskRowData
}

type WeekDayData struct {
	Label    string
	Open     int
	Done     int
	IsAnchor bool
}

type WeekPanelData struct {
	Week  string
	Start string
	Days  []WeekDayData
	Tasks []TaskRowData
}

type MonthCellData struct {
	Day      int
	InMonth  bool
	Open     int
	Done     int
	IsAnchor bool
}

type MonthPanelData struct {
	Month string
	Cells []MonthCellData
	Tasks []TaskRowData
}

type EntryRowData struct {
	Name      string
	Checked   bool
	ShowCheck bool
	Selected  bool
	Dragging  bool
}

type CollectionPanelData struct {
	Title     string
	Rows      []EntryRowData
	State     string
	LastError string
}

type ProgressRowData struct {
	Label   string
	Done    int
	Total   int
	Percent int
	Bar     string
}

type HelpPanelData struct {
	CurrentView string
	Bindings    []string
	HelpView    string
}

func RenderTodayPanel(data TodayPanelData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("today: %s\n", data.Day))
	b.WriteString("actions: [j/k]move [x]done [d]delete [h/l]day [t]today\n")
	renderTaskSection(&b, "Open", data.Open)
	renderTaskSection(&b, "Done", data.Done)
	renderTaskSection(&b, "Later", data.Later)
	return strings.TrimSpace(b.String())
}

func RenderWeekPanel(data WeekPanelData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("week: %s (from %s)\n", data.Week, data.Start))
	b.WriteString("actions: [j/k]move [x]done [d]delete [h/l]week [t]today\n\n")
	for _, d := range data.Days {
		line := fmt.Sprintf("%-12s %2d open %2d done", d.Label, d.Open, d.Done)
		if d.IsAnchor {
			line = anchorStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}
	renderTaskSection(&b, "This week", data.Tasks)
	return strings.TrimSpace(b.String())
}

func RenderMonthPanel(data MonthPanelData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("month: %s\n", data.Month))
	b.WriteString("actions: [j/k]move [x]done [d]delete [h/l]month [t]today\n\n")
	b.WriteString(" Mo   Tu   We   Th   Fr   Sa   Su\n")
	for i, c := range data.Cells {
		b.WriteString(renderMonthCell(c))
		if i%7 == 6 {
			b.WriteString("\n")
		} else {
			b.WriteString(" ")
		}
	}
	renderTaskSection(&b, "This month", data.Tasks)
	return strings.TrimSpace(b.String())
}

// renderMonthCell draws a four-column cell: day number plus a marker for
// open (•) or all-done (✓) day tasks.
func renderMonthCell(c MonthCellData) string {
	mark := " "
	switch {
	case c.Open > 0:
		mark = "•"
	case c.Done > 0:
		mark = "✓"
	}
	cell := fmt.Sprintf("%3d%s", c.Day, mark)
	switch {
	case c.IsAnchor:
		return anchorStyle.Render(cell)
	case !c.InMonth:
		return mutedStyle.Render(cell)
	default:
		return cell
	}
}

// RenderCollectionPanel draws the title on the first line and one entry per
// line after it, so screen rows map onto entries (see ListFirstRow).
func RenderCollectionPanel(data CollectionPanelData) string {
	var b strings.Builder
	title := data.Title
	if data.State != "" && data.State != "idle" {
		title += " [" + data.State + "]"
	}
	b.WriteString(title + "\n")
	if len(data.Rows) == 0 {
		b.WriteString("  (empty)\n")
	}
	for _, row := range data.Rows {
		cursor := " "
		if row.Selected {
			cursor = ">"
		}
		name := Truncate(row.Name, rowTextWidth)
		if row.ShowCheck {
			box := "[ ]"
			if row.Checked {
				box = "[x]"
			}
			name = box + " " + name
		}
		line := cursor + " " + name
		switch {
		case row.Dragging:
			line = dragStyle.Render(line)
		case row.Checked:
			line = doneStyle.Render(line)
		case row.Selected:
			line = selectedStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}
	b.WriteString("\nactions: [m]move [enter]open/drop [esc]cancel [space]check [d]remove\n")
	if data.LastError != "" {
		b.WriteString(errorStyle.Render("last move failed: "+data.LastError) + "\n")
	}
	return strings.TrimSpace(b.String())
}

func RenderProgressPanel(rows []ProgressRowData) string {
	var b strings.Builder
	b.WriteString("progress:\n")
	for _, r := range rows {
		b.WriteString(fmt.Sprintf("%-6s %s %3d%% (%d/%d)\n", r.Label, r.Bar, r.Percent, r.Done, r.Total))
	}
	return b.String()
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("\ncommand: %s\n", input)
}

func RenderAlert(text, at string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}
	return fmt.Sprintf("due %s: %s", at, text)
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("\nhelp:\n%s view:\n%s\n%s",
		strings.ToLower(data.CurrentView),
		strings.Join(data.Bindings, "\n"),
		data.HelpView,
	)
}

func renderTaskSection(b *strings.Builder, title string, rows []TaskRowData) {
	b.WriteString(fmt.Sprintf("\n%s:\n", title))
	if len(rows) == 0 {
		b.WriteString("  (none)\n")
		return
	}
	for _, row := range rows {
		cursor := " "
		if row.Selected {
			cursor = ">"
		}
		line := fmt.Sprintf("%s %2d. %s", cursor, row.Index, Truncate(row.Text, rowTextWidth))
		if row.Detail != "" {
			line += " " + mutedStyle.Render(row.Detail)
		}
		if row.Done {
			line = doneStyle.Render(line)
		} else if row.Selected {
			line = selectedStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}
}
