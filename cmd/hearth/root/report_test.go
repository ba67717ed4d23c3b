package root

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sandeepkv93/hearth/internal/calendar"
	"github.com/sandeepkv93/hearth/internal/grouping"
	"github.com/sandeepkv93/hearth/internal/model"
	"github.com/sandeepkv93/hearth/internal/progress"
	"github.com/sandeepkv93/hearth/internal/scope"
	"github.com/sandeepkv93/hearth/internal/storage"
)

func TestParseDayDefaultsToToday(t *testing.T) {
	d, err := parseDay("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d != calendar.Today() {
		t.Fatalf("expected today, got %s", d)
	}
	if _, err := parseDay("2025-13-01"); err == nil {
		t.Fatalf("expected an error for a bad date")
	}
}

func TestCacheNote(t *testing.T) {
	at := time.Date(2025, 3, 12, 9, 30, 0, 0, time.Local)
	if got := cacheNote(at, nil); got != "(offline: showing cache from 2025-03-12 09:30)" {
		t.Fatalf("unexpected note for synced cache: %q", got)
	}
	if got := cacheNote(time.Time{}, storage.ErrNotFound); got != "(offline: cache never synced)" {
		t.Fatalf("unexpected note for empty cache: %q", got)
	}
	if got := cacheNote(time.Time{}, errors.New("disk I/O error")); strings.Contains(got, "0001") || !strings.Contains(got, "unknown") {
		t.Fatalf("unexpected note for unreadable sync mark: %q", got)
	}
}

func TestWriteSummary(t *testing.T) {
	var buf bytes.Buffer
	writeSummary(&buf, "day 2025-03-12", progress.Summary{Done: 1, Total: 3, Ratio: 1.0 / 3})
	if got := buf.String(); !strings.Contains(got, " 33%") || !strings.Contains(got, "1/3 done") {
		t.Fatalf("unexpected summary %q", got)
	}
}

func TestWriteWeek(t *testing.T) {
	day := calendar.New(2025, time.March, 12)
	w := calendar.ISOWeekOf(day)
	year, week := w.Year, w.Week
	tasks := []model.Task{
		{ID: "1", Text: "water plants", DueDate: "2025-03-12", Scope: model.ScopeDay},
		{ID: "2", Text: "clean garage", Scope: model.ScopeWeek, ScopeYear: &year, ScopeWeek: &week},
		{ID: "3", Text: "fix bike", Status: model.TaskStatusCompleted, Scope: model.ScopeWeek, ScopeYear: &year, ScopeWeek: &week},
	}
	groups := grouping.Group(scope.ResolveAll(tasks), grouping.ReferenceFor(day))

	var buf bytes.Buffer
	writeWeek(&buf, groups.Weekly)
	out := buf.String()
	for _, want := range []string{"2025-W11", "Wed 2025-03-12  1 open  0 done", "[ ] clean garage", "[x] fix bike"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in:\n%s", want, out)
		}
	}
}

func TestLoadConfigAppliesFlags(t *testing.T) {
	dir := t.TempDir()
	saved := flags
	defer func() { flags = saved }()

	flags = globalFlags{
		configPath: filepath.Join(dir, "missing.toml"),
		apiURL:     "https://todo.example.com/api",
		dbPath:     filepath.Join(dir, "cache.db"),
		logLevel:   "debug",
	}
	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.APIURL != "https://todo.example.com/api" || cfg.DBPath != flags.dbPath || cfg.LogLevel != "debug" {
		t.Fatalf("flags not applied: %+v", cfg)
	}
}
