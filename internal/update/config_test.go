package update

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRuntimeConfigDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	cfg := DefaultRuntimeConfig()
	if cfg.RowHeight != 56 || cfg.DragThreshold != 8 {
		t.Fatalf("unexpected drag defaults: %+v", cfg)
	}
	if !cfg.DueAlerts || cfg.SchedulerBuffer != 64 {
		t.Fatalf("unexpected runtime defaults: %+v", cfg)
	}
	if cfg.DBPath != filepath.Join("/tmp/xdg", "hearth", "cache.db") {
		t.Fatalf("unexpected db path default: %q", cfg.DBPath)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestRuntimeConfigFromEnv(t *testing.T) {
	t.Setenv("HEARTH_API_URL", "https://home.example/api")
	t.Setenv("HEARTH_API_TOKEN", "tok")
	t.Setenv("HEARTH_ROW_HEIGHT", "40")
	t.Setenv("HEARTH_DRAG_THRESHOLD", "4.5")
	t.Setenv("HEARTH_DUE_ALERTS", "off")
	t.Setenv("HEARTH_SCHEDULER_BUFFER", "128")
	t.Setenv("HEARTH_LOG_LEVEL", "debug")

	cfg := RuntimeConfigFromEnv(DefaultRuntimeConfig())
	if cfg.APIURL != "https://home.example/api" || cfg.APIToken != "tok" {
		t.Fatalf("unexpected api overrides: %+v", cfg)
	}
	if cfg.RowHeight != 40 || cfg.DragThreshold != 4.5 {
		t.Fatalf("unexpected drag overrides: %+v", cfg)
	}
	if cfg.DueAlerts || cfg.SchedulerBuffer != 128 || cfg.LogLevel != "debug" {
		t.Fatalf("unexpected config overrides: %+v", cfg)
	}
}

func TestRuntimeConfigIgnoresBadEnv(t *testing.T) {
	t.Setenv("HEARTH_ROW_HEIGHT", "-3")
	t.Setenv("HEARTH_SCHEDULER_BUFFER", "lots")
	cfg := RuntimeConfigFromEnv(DefaultRuntimeConfig())
	if cfg.RowHeight != 56 || cfg.SchedulerBuffer != 64 {
		t.Fatalf("bad env values should be ignored: %+v", cfg)
	}
}

func TestLoadRuntimeConfigPrecedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFile)
	body := strings.Join([]string{
		`api_url = "https://file.example/api"`,
		`row_height = 48.0`,
		`log_file = "/tmp/hearth.log"`,
	}, "\n")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("HEARTH_API_URL", "https://env.example/api")

	cfg, err := LoadRuntimeConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.APIURL != "https://env.example/api" {
		t.Fatalf("env should win over file, got %q", cfg.APIURL)
	}
	if cfg.RowHeight != 48 || cfg.LogFile != "/tmp/hearth.log" {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	if cfg.DragThreshold != 8 {
		t.Fatalf("unset keys keep defaults, got %+v", cfg)
	}
}

func TestLoadRuntimeConfigMissingFile(t *testing.T) {
	cfg, err := LoadRuntimeConfig(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("missing file should not fail: %v", err)
	}
	if cfg.RowHeight != 56 {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestLoadRuntimeConfigRejectsBadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFile)
	if err := os.WriteFile(path, []byte("row_height = 4.0\ndrag_threshold = 10.0\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadRuntimeConfig(path); err == nil {
		t.Fatal("expected validation error")
	}

	if err := os.WriteFile(path, []byte("row_height = ["), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadRuntimeConfig(path); err == nil {
		t.Fatal("expected decode error")
	}
}
