// Package config provides YAML configuration loading for the platformer:
// the ability catalog, unlock conditions, physics, display settings,
// difficulty, storage and the SSH server.
package config

import (
	"time"

	"github.com/vovakirdan/tui-platformer/internal/ability"
	"github.com/vovakirdan/tui-platformer/internal/movement"
	"github.com/vovakirdan/tui-platformer/internal/settings"
	"github.com/vovakirdan/tui-platformer/internal/unlock"
)

// Config is the full platformer configuration.
type Config struct {
	Abilities  []ability.Definition `yaml:"abilities"`
	Conditions []unlock.Condition   `yaml:"conditions"`
	Physics    movement.Config      `yaml:"physics"`
	Settings   settings.Settings    `yaml:"settings"`
	Difficulty DifficultyConfig     `yaml:"difficulty"`
	Game       GameConfig           `yaml:"game"`
	Storage    StorageConfig        `yaml:"storage"`
	Server     ServerConfig         `yaml:"server"`
}

// GameConfig holds gameplay presentation parameters.
type GameConfig struct {
	StartLevel    string  `yaml:"start_level"`
	ToastSeconds  float64 `yaml:"toast_seconds"`  // how long unlock toasts stay up
	RetryFired    bool    `yaml:"retry_fired"`    // cascade retries already-fired keys
	RespawnMargin int     `yaml:"respawn_margin"` // rows below the map before respawn
}

// StorageConfig selects where progress and preferences are kept.
type StorageConfig struct {
	Driver   string `yaml:"driver"` // "sqlite" or "redis"
	Path     string `yaml:"path"`   // sqlite database file
	RedisURL string `yaml:"redis_url"`
	Profile  string `yaml:"profile"` // default profile name
}

// ServerConfig configures "serve".
type ServerConfig struct {
	Address     string        `yaml:"address"`
	HostKeyPath string        `yaml:"host_key_path"`
	MetricsAddr string        `yaml:"metrics_addr"` // empty disables /metrics
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}
