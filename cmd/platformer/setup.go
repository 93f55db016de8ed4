package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-platformer/internal/app"
	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/progress"
	"github.com/vovakirdan/tui-platformer/internal/settings"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

// backend is a store for both progress and preferences.
type backend interface {
	progress.Store
	settings.Store
	Close() error
}

// newLogger builds the CLI logger on w at the --log-level level.
func newLogger(w io.Writer) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "platformer",
		Level:           level,
	}), nil
}

// interactiveLogger keeps log output off the game screen: it writes to
// --log-file when set and discards otherwise.
func interactiveLogger() (*log.Logger, func(), error) {
	if flagLogFile == "" {
		return log.New(io.Discard), func() {}, nil
	}
	f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}
	logger, err := newLogger(f)
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return logger, func() { f.Close() }, nil
}

// loadConfig reads .env, the config file and the difficulty flag.
func loadConfig(logger *log.Logger) (config.Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Warn("cannot read .env", "err", err)
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagDifficulty != "" {
		preset, err := config.ParsePreset(flagDifficulty)
		if err != nil {
			return cfg, err
		}
		cfg.Difficulty.Preset = preset
	}
	config.ApplyDifficulty(&cfg)
	if flagDBPath != "" {
		cfg.Storage.Driver = "sqlite"
		cfg.Storage.Path = flagDBPath
	}
	return cfg, nil
}

// openBackend opens the store named by cfg.Storage.Driver. The "none"
// driver returns nil and keeps everything in memory.
func openBackend(ctx context.Context, cfg config.Config) (backend, error) {
	switch cfg.Storage.Driver {
	case "", "sqlite":
		st, err := storage.Open(cfg.Storage.Path)
		if err != nil {
			return nil, err
		}
		return st, nil
	case "redis":
		st, err := storage.OpenRedis(ctx, cfg.Storage.RedisURL)
		if err != nil {
			return nil, err
		}
		return st, nil
	case "none":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

// session is the state shared by the single-player commands.
type session struct {
	cfg    config.Config
	logger *log.Logger
	store  backend
	player *app.Player
}

// openSession loads config, opens the store and builds the player.
// withStore false skips persistence entirely.
func openSession(ctx context.Context, logger *log.Logger, withStore bool) (*session, error) {
	cfg, err := loadConfig(logger)
	if err != nil {
		return nil, err
	}
	s := &session{cfg: cfg, logger: logger}

	if withStore {
		if s.store, err = openBackend(ctx, cfg); err != nil {
			return nil, err
		}
	}

	opts := app.Options{
		Config:  &s.cfg,
		Profile: flagProfile,
		Logger:  logger,
	}
	if s.store != nil {
		opts.Store = s.store
	}
	if s.player, err = app.NewPlayer(ctx, opts); err != nil {
		s.close()
		return nil, err
	}
	return s, nil
}

// loadSettings reads the saved display settings, falling back to the config.
func (s *session) loadSettings(ctx context.Context) settings.Settings {
	if s.store == nil {
		return s.cfg.Settings
	}
	loaded, err := settings.Load(ctx, s.store, s.logger)
	if err != nil {
		s.logger.Warn("using configured settings", "err", err)
		return s.cfg.Settings
	}
	return loaded
}

// prefs returns the store as a preference store, or nil.
func (s *session) prefs() settings.Store {
	if s.store == nil {
		return nil
	}
	return s.store
}

// finish reports the first progress write error.
func (s *session) finish() error {
	if s.player == nil {
		return nil
	}
	if err := s.player.Err(); err != nil {
		return fmt.Errorf("progress not saved: %w", err)
	}
	return nil
}

func (s *session) close() {
	if s.player != nil {
		s.player.Close()
	}
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			s.logger.Warn("closing store", "err", err)
		}
	}
}

// runtimeConfig sizes the viewport to the terminal.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	return cfg
}
