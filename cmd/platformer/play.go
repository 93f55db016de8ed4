package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/level"
	"github.com/vovakirdan/tui-platformer/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play [level]",
	Short: "Play a level",
	Long: `Start playing a level. Without an argument the configured start level
is used. Finishing a level moves on to the next one.

Controls:
  A/D, Left/Right  - Move
  W/Up             - Climb (with Wall Climb)
  Space/K          - Jump
  X/J              - Dash
  Tab              - Ability panel
  P                - Pause
  R                - Restart level
  Esc              - Leave
  Q/Ctrl+C         - Quit
  Ctrl+S           - Screenshot

Examples:
  platformer play
  platformer play summit --difficulty easy
  platformer play --profile alice`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func runPlay(cmd *cobra.Command, args []string) error {
	return runInteractive(cmd.Context(), func(env *tui.Env, s *session) (tui.Model, error) {
		id := s.cfg.Game.StartLevel
		if len(args) == 1 {
			id = args[0]
		}
		return tui.NewPlayModel(env, runtimeConfig(), id)
	})
}

// runInteractive opens a session, builds the model with build and runs it.
func runInteractive(ctx context.Context, build func(*tui.Env, *session) (tui.Model, error)) error {
	if ctx == nil {
		ctx = context.Background()
	}
	logger, closeLog, err := interactiveLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	s, err := openSession(ctx, logger, true)
	if err != nil {
		return err
	}
	defer s.close()

	levels, err := level.LoadEmbedded()
	if err != nil {
		return err
	}
	s.player.CheckLevels(levels)

	current := s.loadSettings(ctx)
	env := &tui.Env{
		Player:   s.player,
		Levels:   levels,
		Settings: &current,
		Prefs:    s.prefs(),
		Logger:   logger,
	}
	if home, err := os.UserHomeDir(); err == nil {
		env.ScreenshotDir = filepath.Join(home, ".platformer", "screenshots")
	}

	model, err := build(env, s)
	if err != nil {
		return err
	}
	if err := tui.Run(model); err != nil {
		return err
	}
	return s.finish()
}
