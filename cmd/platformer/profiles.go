package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "List saved profiles",
	Args:  cobra.NoArgs,
	RunE:  runProfiles,
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Wipe a profile's progress",
	Long: `Delete every unlock and satisfied condition of the current profile.
Starting abilities come back the next time the profile loads.

Examples:
  platformer reset --profile alice`,
	Args: cobra.NoArgs,
	RunE: runReset,
}

func runProfiles(cmd *cobra.Command, _ []string) error {
	logger, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(logger)
	if err != nil {
		return err
	}
	store, err := openBackend(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	if store == nil {
		fmt.Println("No storage configured.")
		return nil
	}
	defer store.Close()

	profiles, err := store.Profiles(cmd.Context())
	if err != nil {
		return err
	}
	if len(profiles) == 0 {
		fmt.Println("No profiles yet.")
		return nil
	}
	for _, p := range profiles {
		snap, err := store.Load(cmd.Context(), p.ID)
		if err != nil {
			return err
		}
		fmt.Printf("  %-16s  %d abilities\n", p.Name, len(snap.Unlocked))
	}
	return nil
}

func runReset(cmd *cobra.Command, _ []string) error {
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
		fmt.Println("No storage configured.")
		return nil
	}

	if err := s.store.Reset(cmd.Context(), s.player.ProfileID); err != nil {
		return err
	}
	fmt.Println("Progress reset.")
	return nil
}
