package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var questsCmd = &cobra.Command{
	Use:   "quests",
	Short: "List quest progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := loadGame(cmd)
		if err != nil {
			return err
		}
		defer g.close()

		for _, st := range g.quests.Statuses() {
			state := " "
			switch {
			case st.Claimed:
				state = "claimed"
			case st.Claimable():
				state = "ready"
			}
			fmt.Printf("%-12s %-20s %d/%d  %s\n",
				st.Definition.ID, st.Definition.Title,
				st.Progress, st.Definition.Target, state)
		}
		return nil
	},
}

var questsClaimCmd = &cobra.Command{
	Use:   "claim <quest-id>",
	Short: "Claim a completed quest's reward",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := loadGame(cmd)
		if err != nil {
			return err
		}
		defer g.close()

		ctx := context.Background()
		reward, err := g.quests.Claim(ctx, args[0], g.player)
		if err != nil {
			return err
		}
		if err := g.store.Players().Save(ctx, g.player); err != nil {
			return fmt.Errorf("save player: %w", err)
		}

		fmt.Printf("Claimed %s: +%d XP, +%d diamonds\n", args[0], reward.XP, reward.Diamonds)
		return nil
	},
}

func init() {
	questsCmd.AddCommand(questsClaimCmd)
}
