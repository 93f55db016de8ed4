package config

import (
	_ "embed"
	"time"

	"github.com/vovakirdan/tui-platformer/internal/ability"
	"github.com/vovakirdan/tui-platformer/internal/movement"
	"github.com/vovakirdan/tui-platformer/internal/settings"
	"github.com/vovakirdan/tui-platformer/internal/unlock"
)

//go:embed defaults/platformer.yaml
var defaultPlatformerYAML []byte

// Default returns the hardcoded configuration used when no file and no
// embedded default can be read.
func Default() Config {
	return Config{
		Abilities: ability.DefaultDefinitions(),
		Conditions: []unlock.Condition{
			{Key: unlock.Key(unlock.EventItemCollected, "feather"), Ability: ability.DoubleJump},
			{Key: unlock.Key(unlock.EventBossDefeated, "golem"), Ability: ability.Dash},
			{Key: "", Ability: ability.WallClimb},
		},
		Physics:  movement.DefaultConfig(),
		Settings: settings.Default(),
		Difficulty: DifficultyConfig{
			Preset: DifficultyNormal,
			Scaling: ScalingConfig{
				GravityMultiplier:   0.5,
				FallSpeedMultiplier: 0.25,
			},
		},
		Game: GameConfig{
			StartLevel:    "meadow",
			ToastSeconds:  2.5,
			RespawnMargin: 4,
		},
		Storage: StorageConfig{
			Driver:  "sqlite",
			Path:    "~/.platformer/progress.db",
			Profile: "player",
		},
		Server: ServerConfig{
			Address:     ":23235",
			MetricsAddr: ":9464",
			IdleTimeout: 30 * time.Minute,
		},
	}
}
