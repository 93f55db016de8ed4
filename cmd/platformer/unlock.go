package main

import (
	"fmt"
	"math/rand/v2"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/ability"
)

var (
	flagForce  bool
	flagRandom bool
)

var unlockCmd = &cobra.Command{
	Use:   "unlock [ability]",
	Short: "Unlock an ability (testing helper)",
	Long: `Unlock an ability for the current profile. Prerequisites must be met
unless --force is given. With --random a random locked ability is unlocked.

Abilities: jump, double_jump, dash, wall_climb

Examples:
  platformer unlock dash
  platformer unlock wall_climb --force
  platformer unlock --random`,
	Args: func(cmd *cobra.Command, args []string) error {
		if flagRandom {
			return cobra.NoArgs(cmd, args)
		}
		return cobra.ExactArgs(1)(cmd, args)
	},
	RunE: runUnlock,
}

var revokeCmd = &cobra.Command{
	Use:   "revoke <ability>",
	Short: "Revoke an ability (testing helper)",
	Long: `Remove an ability from the current profile. Abilities that depend on it
stay unlocked.`,
	Args: cobra.ExactArgs(1),
	RunE: runRevoke,
}

func init() {
	unlockCmd.Flags().BoolVar(&flagForce, "force", false, "Ignore prerequisites")
	unlockCmd.Flags().BoolVar(&flagRandom, "random", false, "Unlock a random locked ability")
}

// printGranted reports abilities granted while fn ran, cascades included.
func printGranted(reg *ability.Registry, fn func() error) error {
	var granted []ability.Definition
	unsubscribe := reg.Subscribe(func(d ability.Definition) {
		granted = append(granted, d)
	})
	defer unsubscribe()

	if err := fn(); err != nil {
		return err
	}
	for _, d := range granted {
		fmt.Printf("NEW ABILITY UNLOCKED: %s!\n", d.Name)
	}
	return nil
}

func runUnlock(cmd *cobra.Command, args []string) error {
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

	var def ability.Definition
	if flagRandom {
		locked := reg.Locked()
		if len(locked) == 0 {
			fmt.Println("Every ability is already unlocked.")
			return nil
		}
		def = locked[rand.IntN(len(locked))]
	} else {
		id, err := ability.ParseID(args[0])
		if err != nil {
			return err
		}
		var ok bool
		if def, ok = reg.Definition(id); !ok {
			return fmt.Errorf("%s: %w", id, ability.ErrUnknownAbility)
		}
	}

	var outcome ability.Outcome
	err = printGranted(reg, func() error {
		var err error
		if flagForce || flagRandom {
			outcome, err = reg.Unlock(def.ID)
		} else {
			outcome, err = reg.TryUnlock(def.ID)
		}
		return err
	})
	if err != nil {
		return err
	}

	switch outcome {
	case ability.AlreadyUnlocked:
		fmt.Printf("%s is already unlocked.\n", def.Name)
	case ability.Blocked:
		fmt.Printf("Cannot unlock %s: prerequisites not met.\n", def.Name)
		fmt.Println(def.FullDescription())
	}
	return s.finish()
}

func runRevoke(cmd *cobra.Command, args []string) error {
	id, err := ability.ParseID(args[0])
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
	def, ok := reg.Definition(id)
	if !ok {
		return fmt.Errorf("%s: %w", id, ability.ErrUnknownAbility)
	}
	if !reg.Has(id) {
		fmt.Printf("%s is not unlocked.\n", def.Name)
		return nil
	}
	if err := reg.Revoke(id); err != nil {
		return err
	}
	fmt.Printf("Revoked %s.\n", def.Name)
	if def.Starting {
		fmt.Println("Starting abilities come back the next time the profile loads.")
	}
	return s.finish()
}
