package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-platformer/internal/ability"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := parse(defaultPlatformerYAML)
	require.NoError(t, err)

	def := Default()
	assert.Equal(t, def.Physics, cfg.Physics)
	assert.Equal(t, def.Settings, cfg.Settings)
	assert.Equal(t, def.Difficulty, cfg.Difficulty)
	assert.Equal(t, def.Game, cfg.Game)
	assert.Equal(t, def.Server, cfg.Server)
	assert.Equal(t, def.Conditions, cfg.Conditions)
	assert.Equal(t, def.Abilities, cfg.Abilities)

	_, err = ability.NewCatalog(cfg.Abilities)
	require.NoError(t, err)
}

func TestLoad_CustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
physics:
  gravity: 30
settings:
  target_frame_rate: 144
server:
  idle_timeout: 5m
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 30.0, cfg.Physics.Gravity)
	assert.Equal(t, 5.0, cfg.Physics.MoveSpeed, "unset fields keep defaults")
	assert.Equal(t, 144, cfg.Settings.TargetFrameRate)
	assert.Equal(t, 5*time.Minute, cfg.Server.IdleTimeout)
	assert.Len(t, cfg.Abilities, 4)
}

func TestLoad_CustomPathErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("abilities:\n  - id: teleport\n"), 0o644))
	_, err = Load(path)
	assert.Error(t, err)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv(EnvDB, "/tmp/p.db")
	t.Setenv(EnvRedisURL, "redis://localhost:6379/0")
	t.Setenv(EnvProfile, "alice")

	path := filepath.Join(t.TempDir(), "empty.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{}\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/p.db", cfg.Storage.Path)
	assert.Equal(t, "redis", cfg.Storage.Driver)
	assert.Equal(t, "redis://localhost:6379/0", cfg.Storage.RedisURL)
	assert.Equal(t, "alice", cfg.Storage.Profile)
}

func TestApplyDifficulty(t *testing.T) {
	tests := []struct {
		preset      DifficultyPreset
		wantGravity float64
	}{
		{DifficultyEasy, 20},
		{DifficultyNormal, 23},
		{DifficultyHard, 27},
	}
	for _, tt := range tests {
		t.Run(string(tt.preset), func(t *testing.T) {
			cfg := Default()
			cfg.Difficulty.Preset = tt.preset
			ApplyDifficulty(&cfg)
			assert.InDelta(t, tt.wantGravity, cfg.Physics.Gravity, 1e-9)
		})
	}
}

func TestParsePreset(t *testing.T) {
	p, err := ParsePreset("hard")
	require.NoError(t, err)
	assert.Equal(t, DifficultyHard, p)

	_, err = ParsePreset("nightmare")
	assert.Error(t, err)
}

func TestConditionsRoundTripNames(t *testing.T) {
	out, err := yaml.Marshal(Default().Conditions)
	require.NoError(t, err)
	assert.Contains(t, string(out), "ability: double_jump")
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "a.db"), ExpandPath("~/a.db"))
	assert.Equal(t, "/x/a.db", ExpandPath("/x/a.db"))
}
