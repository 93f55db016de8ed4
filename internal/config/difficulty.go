package config

import (
	"fmt"
	"math"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// DifficultyConfig selects a preset and how strongly presets scale physics.
type DifficultyConfig struct {
	Preset  DifficultyPreset `yaml:"preset"`
	Scaling ScalingConfig    `yaml:"scaling"`
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	GravityMultiplier   float64 `yaml:"gravity_multiplier"`    // added to gravity at max difficulty
	FallSpeedMultiplier float64 `yaml:"fall_speed_multiplier"` // added to max fall speed at max difficulty
}

// ParsePreset validates a preset name. The empty name means "use config".
func ParsePreset(name string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(name); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q", name)
	}
}

// LevelForPreset returns the difficulty level (0.0 to 1.0) of a preset.
func LevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// ApplyDifficulty scales the physics of cfg for its difficulty preset.
// It is applied once, after loading.
func ApplyDifficulty(cfg *Config) {
	level := clampF(LevelForPreset(cfg.Difficulty.Preset), 0.0, 1.0)
	cfg.Physics.Gravity *= 1.0 + level*cfg.Difficulty.Scaling.GravityMultiplier
	cfg.Physics.MaxFallSpeed *= 1.0 + level*cfg.Difficulty.Scaling.FallSpeedMultiplier
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
