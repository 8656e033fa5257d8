package cmd

import (
	"github.com/spf13/cobra"

	"github.com/tahfiz/tahfiz/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "tahfiz",
	Short: "Memorization review in the terminal",
	Long:  "Tahfiz — a terminal game that turns memorization review into page-scoped tests with XP, quests, and achievements.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides TAHFIZ_DB env var)")
	rootCmd.PersistentFlags().String("pack", "", "Path to the corpus pack file (overrides TAHFIZ_PACK env var)")
	rootCmd.PersistentFlags().String("player", "", "Player name (default: current user)")
	rootCmd.PersistentFlags().String("tables", "", "Path to a progression tables override file")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(questsCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then TAHFIZ_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}
