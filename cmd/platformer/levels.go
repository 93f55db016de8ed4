package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/level"
	"github.com/vovakirdan/tui-platformer/internal/unlock"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List all levels",
	Long: `Shows the built-in levels in play order with the unlock conditions
each one can fire. Conditions that no level fires are reported at the end.`,
	Args: cobra.NoArgs,
	RunE: runLevels,
}

func runLevels(cmd *cobra.Command, _ []string) error {
	logger, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}
	s, err := openSession(cmd.Context(), logger, false)
	if err != nil {
		return err
	}
	defer s.close()

	levels, err := level.LoadEmbedded()
	if err != nil {
		return err
	}
	infos := levels.List()
	if len(infos) == 0 {
		fmt.Println("No levels available.")
		return nil
	}

	maxIDLen := 2 // "ID" header
	for _, info := range infos {
		maxIDLen = max(maxIDLen, len(info.ID))
	}

	fmt.Println("Levels:")
	fmt.Println()
	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Name")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "----")
	for _, info := range infos {
		l, err := levels.Get(info.ID)
		if err != nil {
			return err
		}
		fmt.Printf("  %-*s  %s\n", maxIDLen, info.ID, info.Name)
		for _, m := range l.Markers {
			fmt.Printf("  %-*s    %s (%s)\n", maxIDLen, "", unlock.Key(m.Event, m.Name), m.Label)
		}
		if l.Quest != "" {
			fmt.Printf("  %-*s    %s (exit)\n", maxIDLen, "", unlock.Key(unlock.EventQuestCompleted, l.Quest))
		}
	}

	if missing := s.player.CheckLevels(levels); len(missing) > 0 {
		fmt.Println()
		fmt.Println("Conditions no level fires:")
		for _, k := range missing {
			fmt.Printf("  %s\n", k)
		}
	}

	fmt.Println()
	fmt.Println("Run 'platformer play <id>' to play a level.")
	return nil
}
