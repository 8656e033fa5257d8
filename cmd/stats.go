package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show progression statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := loadGame(cmd)
		if err != nil {
			return err
		}
		defer g.close()

		p := g.player
		level := g.calc.LevelFor(p.XP)

		fmt.Printf("Player           %s\n", p.Username)
		fmt.Printf("Level            %d\n", level)
		if next, ok := g.calc.NextLevelXP(p.XP); ok {
			fmt.Printf("XP               %d (next level at %d)\n", p.XP, next)
		} else {
			fmt.Printf("XP               %d (max level)\n", p.XP)
		}
		fmt.Printf("Season XP        %d\n", p.SeasonalXP)
		fmt.Printf("Diamonds         %d\n", p.Diamonds)
		fmt.Printf("Energy stars     %d\n", p.EnergyStars)
		fmt.Printf("Attempts today   %d\n", p.TestAttempts)
		fmt.Printf("Tests finished   %d\n", p.TotalQuizzesCompleted)
		if p.TotalQuestionsAnswered > 0 {
			fmt.Printf("Accuracy         %d%%\n", 100*p.TotalCorrectAnswers/p.TotalQuestionsAnswered)
		}
		fmt.Printf("Achievements     %d\n", len(p.Achievements))

		pages, err := g.store.Results(p.ID).MasteredPages(context.Background())
		if err != nil {
			return fmt.Errorf("load mastery: %w", err)
		}
		if len(pages) > 0 {
			parts := make([]string, len(pages))
			for i, pg := range pages {
				parts[i] = fmt.Sprint(pg)
			}
			fmt.Printf("Mastered pages   %s\n", strings.Join(parts, ", "))
		}
		return nil
	},
}
