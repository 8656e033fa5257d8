// Package stats shows lifetime progression numbers and mastered pages.
package stats

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/tahfiz/tahfiz/internal/player"
	"github.com/tahfiz/tahfiz/internal/progression"
	"github.com/tahfiz/tahfiz/internal/screen"
	"github.com/tahfiz/tahfiz/internal/store"
	"github.com/tahfiz/tahfiz/internal/ui/components"
	"github.com/tahfiz/tahfiz/internal/ui/theme"
)

// StatsScreen is a read-only view over the player record and result store.
type StatsScreen struct {
	player  *player.State
	calc    *progression.Calculator
	results *store.ResultRepo

	mastered []int
	loadErr  error
}

var _ screen.Screen = (*StatsScreen)(nil)

// New builds the stats view. The result repo may be nil when running
// without persistence.
func New(p *player.State, calc *progression.Calculator, results *store.ResultRepo) *StatsScreen {
	return &StatsScreen{player: p, calc: calc, results: results}
}

func (s *StatsScreen) Init() tea.Cmd {
	if s.results != nil {
		s.mastered, s.loadErr = s.results.MasteredPages(context.Background())
	}
	return nil
}

func (s *StatsScreen) Title() string {
	return "Stats"
}

func (s *StatsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	return s, nil
}

func (s *StatsScreen) View(width, height int) string {
	p := s.player
	level := s.calc.LevelFor(p.XP)

	var lines []string
	lines = append(lines,
		lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).
			Render(fmt.Sprintf("%s — level %d", p.Username, level)),
		"")

	if next, ok := s.calc.NextLevelXP(p.XP); ok {
		percent := float64(p.XP) / float64(next)
		bar := components.NewProgressBar(
			fmt.Sprintf("XP %d/%d", p.XP, next), percent, false, width/3)
		lines = append(lines, bar.View())
	} else {
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.Accent).
			Render(fmt.Sprintf("XP %d — top of the ladder", p.XP)))
	}

	accuracy := 0
	if p.TotalQuestionsAnswered > 0 {
		accuracy = 100 * p.TotalCorrectAnswers / p.TotalQuestionsAnswered
	}
	lines = append(lines, "",
		fmt.Sprintf("Season XP        %d", p.SeasonalXP),
		fmt.Sprintf("Diamonds         %d", p.Diamonds),
		fmt.Sprintf("Tests finished   %d", p.TotalQuizzesCompleted),
		fmt.Sprintf("Accuracy         %d%%", accuracy),
		fmt.Sprintf("Play time        %dm", p.TotalPlayTimeSeconds/60),
		fmt.Sprintf("Achievements     %d", len(p.Achievements)),
	)

	lines = append(lines, "")
	switch {
	case s.loadErr != nil:
		lines = append(lines, theme.Hint.Render("mastery records unavailable"))
	case len(s.mastered) == 0:
		lines = append(lines, theme.Hint.Render("No pages mastered yet. A perfect test masters its page."))
	default:
		pages := make([]string, len(s.mastered))
		for i, pg := range s.mastered {
			pages[i] = fmt.Sprintf("%d", pg)
		}
		lines = append(lines,
			lipgloss.NewStyle().Foreground(theme.Success).
				Render("Mastered pages: "+strings.Join(pages, ", ")))
	}

	content := strings.Join(lines, "\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
