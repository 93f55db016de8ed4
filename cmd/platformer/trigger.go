package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/ability"
	"github.com/vovakirdan/tui-platformer/internal/unlock"
)

var (
	flagBoss  string
	flagItem  string
	flagArea  string
	flagQuest string
)

var triggerCmd = &cobra.Command{
	Use:   "trigger [key]",
	Short: "Fire an unlock condition",
	Long: `Fire a condition key as if the game had, unlocking whatever it grants
and anything the cascade grants after it. Give either a raw key or exactly
one of the event flags.

Examples:
  platformer trigger item_collected_feather
  platformer trigger --boss golem
  platformer trigger --quest meadow`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTrigger,
}

func init() {
	triggerCmd.Flags().StringVar(&flagBoss, "boss", "", "Boss defeated")
	triggerCmd.Flags().StringVar(&flagItem, "item", "", "Item collected")
	triggerCmd.Flags().StringVar(&flagArea, "area", "", "Area entered")
	triggerCmd.Flags().StringVar(&flagQuest, "quest", "", "Quest completed")
	triggerCmd.MarkFlagsMutuallyExclusive("boss", "item", "area", "quest")
}

// triggerFor picks the dispatcher call for the arguments.
func triggerFor(d *unlock.Dispatcher, args []string) (func() []ability.Definition, string, error) {
	type event struct {
		name string
		fire func(string) []ability.Definition
		kind string
	}
	events := []event{
		{flagBoss, d.OnBossDefeated, unlock.EventBossDefeated},
		{flagItem, d.OnItemCollected, unlock.EventItemCollected},
		{flagArea, d.OnAreaEntered, unlock.EventAreaEntered},
		{flagQuest, d.OnQuestCompleted, unlock.EventQuestCompleted},
	}
	for _, e := range events {
		if e.name == "" {
			continue
		}
		if len(args) > 0 {
			return nil, "", errors.New("give a key or an event flag, not both")
		}
		return func() []ability.Definition { return e.fire(e.name) }, unlock.Key(e.kind, e.name), nil
	}
	if len(args) == 0 {
		return nil, "", errors.New("a key or one of --boss, --item, --area, --quest is required")
	}
	key := args[0]
	return func() []ability.Definition { return d.Trigger(key) }, key, nil
}

func runTrigger(cmd *cobra.Command, args []string) error {
	logger, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}
	s, err := openSession(cmd.Context(), logger, true)
	if err != nil {
		return err
	}
	defer s.close()

	fire, key, err := triggerFor(s.player.Dispatcher, args)
	if err != nil {
		return err
	}

	var direct []ability.Definition
	err = printGranted(s.player.Registry, func() error {
		direct = fire()
		return nil
	})
	if err != nil {
		return err
	}
	if len(direct) == 0 {
		fmt.Printf("%s: nothing new unlocked.\n", key)
	}
	return s.finish()
}
