// platformer is a terminal platformer where movement abilities are earned
// by collecting items, defeating bosses and finishing quests.
//
// Usage:
//
//	platformer play [level]        - Play a level
//	platformer menu                - Level menu, ability panel and settings
//	platformer levels              - List levels
//	platformer abilities           - List abilities and their status
//	platformer unlock <ability>    - Unlock an ability (testing helper)
//	platformer revoke <ability>    - Revoke an ability (testing helper)
//	platformer trigger <key>       - Fire an unlock condition
//	platformer settings            - Show or change frame rate and VSync
//	platformer profiles            - List saved profiles
//	platformer reset               - Wipe a profile's progress
//	platformer serve               - Start the SSH server
//
// Global flags:
//
//	--config <path>      - Config file (default: search path)
//	--difficulty <name>  - easy, normal or hard
//	--profile <name>     - Progress profile
//	--db <path>          - SQLite database path
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagConfig     string
	flagDifficulty string
	flagProfile    string
	flagDBPath     string
	flagLogLevel   string
	flagLogFile    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "platformer",
	Short: "A terminal platformer with unlockable abilities",
	Long: `Platformer is a side-scrolling terminal game. You start with a jump;
collecting items, defeating bosses and finishing levels unlock double jump,
dash and wall climb.

Progress is saved per profile in SQLite (default) or Redis.

Examples:
  platformer play
  platformer play caverns --difficulty hard
  platformer abilities --filter unlockable
  platformer trigger --item feather
  platformer settings --fps 120
  platformer serve`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().StringVar(&flagProfile, "profile", "", "Progress profile name")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to progress database (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs of interactive commands to this file")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(abilitiesCmd)
	rootCmd.AddCommand(unlockCmd)
	rootCmd.AddCommand(revokeCmd)
	rootCmd.AddCommand(triggerCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(profilesCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(serveCmd)
}
