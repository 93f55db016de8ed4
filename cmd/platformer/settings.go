package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/settings"
)

var (
	flagFPS   string
	flagVSync string
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change frame rate and VSync",
	Long: `Show the saved display settings, or change them.

Frame rates: 30, 60, 120, 144, 240, unlimited
With VSync on the game runs at the terminal refresh rate (60).

Examples:
  platformer settings
  platformer settings --fps 120
  platformer settings --fps unlimited --vsync off
  platformer settings --vsync on`,
	Args: cobra.NoArgs,
	RunE: runSettings,
}

func init() {
	settingsCmd.Flags().StringVar(&flagFPS, "fps", "", "Target frame rate (number or 'unlimited')")
	settingsCmd.Flags().StringVar(&flagVSync, "vsync", "", "VSync: on or off")
}

func parseFPS(s string) (int, error) {
	if strings.EqualFold(s, "unlimited") {
		return settings.Unlimited, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid --fps %q", s)
	}
	return n, nil
}

func runSettings(cmd *cobra.Command, _ []string) error {
	logger, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}
	s, err := openSession(cmd.Context(), logger, true)
	if err != nil {
		return err
	}
	defer s.close()
	if s.store == nil {
		return errors.New("settings need a storage driver")
	}

	ctx := cmd.Context()
	current := s.loadSettings(ctx)
	changed := false

	if flagFPS != "" {
		rate, err := parseFPS(flagFPS)
		if err != nil {
			return err
		}
		if err := current.SetFrameRate(rate); err != nil {
			return err
		}
		changed = true
	}
	switch strings.ToLower(flagVSync) {
	case "":
	case "on", "true", "1":
		current.VSync = true
		changed = true
	case "off", "false", "0":
		current.VSync = false
		changed = true
	default:
		return fmt.Errorf("invalid --vsync %q", flagVSync)
	}

	if changed {
		if err := settings.Save(ctx, s.store, current); err != nil {
			return err
		}
	}

	vsync := "off"
	if current.VSync {
		vsync = "on"
	}
	fmt.Printf("Target frame rate: %s\n", settings.Label(current.TargetFrameRate))
	fmt.Printf("VSync:             %s\n", vsync)
	fmt.Printf("Effective:         %d ticks/s\n", current.TickRate())
	return nil
}
