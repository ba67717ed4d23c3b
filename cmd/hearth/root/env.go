package root

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/sandeepkv93/hearth/internal/backend/rest"
	"github.com/sandeepkv93/hearth/internal/logging"
	"github.com/sandeepkv93/hearth/internal/storage"
	"github.com/sandeepkv93/hearth/internal/update"
)

// env is everything a command needs, opened from config and flags.
type env struct {
	Config  update.RuntimeConfig
	Service *rest.Client
	Cache   *storage.SQLiteRepository
	Logger  *log.Logger

	logCloser io.Closer
}

func loadConfig() (update.RuntimeConfig, error) {
	path := flags.configPath
	if path == "" {
		path = update.DefaultConfigPath()
	}
	cfg, err := update.LoadRuntimeConfig(path)
	if err != nil {
		return update.RuntimeConfig{}, err
	}
	if flags.apiURL != "" {
		cfg.APIURL = flags.apiURL
	}
	if flags.dbPath != "" {
		cfg.DBPath = flags.dbPath
	}
	if flags.logFile != "" {
		cfg.LogFile = flags.logFile
	}
	if flags.logLevel != "" {
		cfg.LogLevel = flags.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return update.RuntimeConfig{}, err
	}
	return cfg, nil
}

func openEnv(ctx context.Context) (*env, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	opts := logging.DefaultOptions()
	opts.Path = cfg.LogFile
	opts.Level = cfg.LogLevel
	logger, closer, err := logging.New(opts)
	if err != nil {
		return nil, err
	}

	svc, err := rest.New(ctx, cfg.APIURL, cfg.APIToken)
	if err != nil {
		_ = closer.Close()
		return nil, fmt.Errorf("backend: %w", err)
	}

	if dir := filepath.Dir(cfg.DBPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			_ = closer.Close()
			return nil, fmt.Errorf("create cache dir: %w", err)
		}
	}
	cache, err := storage.OpenSQLite(cfg.DBPath)
	if err != nil {
		_ = closer.Close()
		return nil, fmt.Errorf("cache %s: %w", cfg.DBPath, err)
	}

	return &env{
		Config:    cfg,
		Service:   svc,
		Cache:     cache,
		Logger:    logger,
		logCloser: closer,
	}, nil
}

func (e *env) Close() {
	if err := e.Cache.Close(); err != nil {
		e.Logger.Warn("close cache", "err", err)
	}
	_ = e.logCloser.Close()
}
