package update

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	AppName    = "hearth"
	ConfigFile = "config.toml"
)

type RuntimeConfig struct {
	APIURL          string  `toml:"api_url"`
	APIToken        string  `toml:"api_token"`
	DBPath          string  `toml:"db_path"`
	RowHeight       float64 `toml:"row_height"`
	DragThreshold   float64 `toml:"drag_threshold"`
	DueAlerts       bool    `toml:"due_alerts"`
	SchedulerBuffer int     `toml:"scheduler_buffer"`
	LogFile         string  `toml:"log_file"`
	LogLevel        string  `toml:"log_level"`
}

func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		APIURL:          "http://localhost:8080/api",
		DBPath:          filepath.Join(DefaultConfigDir(), "cache.db"),
		RowHeight:       56,
		DragThreshold:   8,
		DueAlerts:       true,
		SchedulerBuffer: 64,
		LogLevel:        "info",
	}
}

// DefaultConfigDir returns $XDG_CONFIG_HOME/hearth, falling back to
// ~/.config/hearth.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), ConfigFile)
}

// RuntimeConfigFromFile overlays the TOML file at path on base. A missing
// file is not an error.
func RuntimeConfigFromFile(path string, base RuntimeConfig) (RuntimeConfig, error) {
	cfg := base
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return base, fmt.Errorf("stat config: %w", err)
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return base, fmt.Errorf("decode config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

func (c RuntimeConfig) Validate() error {
	if c.RowHeight <= 0 {
		return fmt.Errorf("row_height must be positive, got %v", c.RowHeight)
	}
	if c.DragThreshold < 0 {
		return fmt.Errorf("drag_threshold must not be negative, got %v", c.DragThreshold)
	}
	if c.DragThreshold >= c.RowHeight {
		return fmt.Errorf("drag_threshold %v must be below row_height %v", c.DragThreshold, c.RowHeight)
	}
	return nil
}

func RuntimeConfigFromEnv(base RuntimeConfig) RuntimeConfig {
	cfg := base
	if v, ok := getEnvString("HEARTH_API_URL"); ok {
		cfg.APIURL = v
	}
	if v, ok := getEnvString("HEARTH_API_TOKEN"); ok {
		cfg.APIToken = v
	}
	if v, ok := getEnvString("HEARTH_DB_PATH"); ok {
		cfg.DBPath = v
	}
	if v, ok := getEnvFloat("HEARTH_ROW_HEIGHT"); ok && v > 0 {
		cfg.RowHeight = v
	}
	if v, ok := getEnvFloat("HEARTH_DRAG_THRESHOLD"); ok && v >= 0 {
		cfg.DragThreshold = v
	}
	if v, ok := getEnvBool("HEARTH_DUE_ALERTS"); ok {
		cfg.DueAlerts = v
	}
	if v, ok := getEnvInt("HEARTH_SCHEDULER_BUFFER"); ok && v > 0 {
		cfg.SchedulerBuffer = v
	}
	if v, ok := getEnvString("HEARTH_LOG_FILE"); ok {
		cfg.LogFile = v
	}
	if v, ok := getEnvString("HEARTH_LOG_LEVEL"); ok {
		cfg.LogLevel = v
	}
	return cfg
}

// LoadRuntimeConfig applies defaults, then the config file, then the
// environment.
func LoadRuntimeConfig(path string) (RuntimeConfig, error) {
	cfg, err := RuntimeConfigFromFile(path, DefaultRuntimeConfig())
	if err != nil {
		return RuntimeConfig{}, err
	}
	cfg = RuntimeConfigFromEnv(cfg)
	return cfg, cfg.Validate()
}

func getEnvString(name string) (string, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	return raw, raw != ""
}

func getEnvInt(name string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvFloat(name string) (float64, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvBool(name string) (bool, bool) {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return false, false
	}
	switch raw {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
