package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/platform/tui"
)

var flagFilter string

var abilitiesCmd = &cobra.Command{
	Use:   "abilities",
	Short: "List abilities and their status",
	Long: `Shows every ability with its status for the current profile. Locked
abilities include their prerequisites and unlock condition.

Filters:
  all         - every ability (default)
  unlocked    - abilities you hold
  unlockable  - locked abilities whose prerequisites are met

Examples:
  platformer abilities
  platformer abilities --filter unlockable --profile alice`,
	Args: cobra.NoArgs,
	RunE: runAbilities,
}

func init() {
	abilitiesCmd.Flags().StringVar(&flagFilter, "filter", "all", "all, unlocked or unlockable")
}

func runAbilities(cmd *cobra.Command, _ []string) error {
	filter, err := tui.ParseFilter(flagFilter)
	if err != nil {
		return err
	}
	logger, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}
	s, err := openSession(cmd.Context(), logger, true)
	if err != nil {
		return err
	}
	defer s.close()

	reg := s.player.Registry
	defs := tui.Filtered(reg, filter)
	if len(defs) == 0 {
		fmt.Printf("No %s abilities.\n", filter)
		return s.finish()
	}

	maxNameLen := 4 // "Name" header
	for _, d := range defs {
		maxNameLen = max(maxNameLen, len(d.Name))
	}

	fmt.Printf("Abilities (%s): %d/%d unlocked\n\n", filter, len(reg.UnlockedIDs()), reg.Catalog().Len())
	fmt.Printf("  %-*s  %-10s  %s\n", maxNameLen, "Name", "Status", "Description")
	fmt.Printf("  %-*s  %-10s  %s\n", maxNameLen, "----", "------", "-----------")
	for _, d := range defs {
		desc := d.Description
		if !reg.Has(d.ID) {
			desc = d.FullDescription()
		}
		indent := "\n  " + strings.Repeat(" ", maxNameLen+14)
		desc = strings.ReplaceAll(strings.ReplaceAll(desc, "\n\n", "\n"), "\n", indent)
		fmt.Printf("  %-*s  %-10s  %s\n", maxNameLen, d.Name, tui.Status(reg, d), desc)
	}
	return s.finish()
}
