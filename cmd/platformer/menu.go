package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Open the level menu",
	Long: `Open the interactive menu: pick a level, browse and unlock abilities in
the ability panel, or change the frame rate and VSync.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runInteractive(cmd.Context(), func(env *tui.Env, _ *session) (tui.Model, error) {
			return tui.NewModel(env, runtimeConfig()), nil
		})
	},
}
