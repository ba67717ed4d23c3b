package views

import (
	"strings"
	"testing"
)

func TestCollectionPanelOneLinePerEntry(t *testing.T) {
	out := RenderCollectionPanel(CollectionPanelData{
		Title: "lists",
		Rows: []EntryRowData{
			{Name: "groceries", Selected: true},
			{Name: strings.Repeat("very long list name ", 10)},
			{Name: "pharmacy"},
		},
	})
	lines := strings.Split(out, "\n")
	if len(lines) < 4 {
		t.Fatalf("expected title plus three rows, got %q", out)
	}
	if lines[0] != "lists" {
		t.Fatalf("expected title on the first line, got %q", lines[0])
	}
	if !strings.Contains(lines[1], "groceries") || !strings.Contains(lines[3], "pharmacy") {
		t.Fatalf("entries are not on consecutive lines: %q", out)
	}
	if !strings.Contains(lines[2], "…") {
		t.Fatalf("expected long name to be truncated, got %q", lines[2])
	}
}

func TestCollectionPanelStateAndError(t *testing.T) {
	out := RenderCollectionPanel(CollectionPanelData{
		Title:     "list: hardware",
		State:     "syncing",
		Rows:      []EntryRowData{{Name: "nails", ShowCheck: true, Checked: true}},
		LastError: "timeout",
	})
	if !strings.HasPrefix(out, "list: hardware [syncing]") {
		t.Fatalf("expected state in the title, got %q", out)
	}
	if !strings.Contains(out, "[x] nails") {
		t.Fatalf("expected a checked item, got %q", out)
	}
	if !strings.Contains(out, "last move failed: timeout") {
		t.Fatalf("expected the last error, got %q", out)
	}
}

func TestTodayPanelSections(t *testing.T) {
	out := RenderTodayPanel(TodayPanelData{
		Day:   "2025-03-12",
		Open:  []TaskRowData{{Index: 1, Text: "water plants", Detail: "@09:00"}},
		Later: []TaskRowData{{Index: 2, Text: "learn piano"}},
	})
	for _, want := range []string{"today: 2025-03-12", "1. water plants", "Done:\n  (none)", "2. learn piano"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in:\n%s", want, out)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("hello", 10); got != "hello" {
		t.Fatalf("unexpected %q", got)
	}
	if got := Truncate("hello world", 6); got != "hello…" {
		t.Fatalf("unexpected %q", got)
	}
	if got := Truncate("héllo", 1); got != "h" {
		t.Fatalf("unexpected %q", got)
	}
}
