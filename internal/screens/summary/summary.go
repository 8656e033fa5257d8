// Package summary shows the end-of-test result. Sessions with mistakes
// route through the error review view before the result itself.
package summary

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/tahfiz/tahfiz/internal/achievements"
	"github.com/tahfiz/tahfiz/internal/quiz"
	"github.com/tahfiz/tahfiz/internal/router"
	"github.com/tahfiz/tahfiz/internal/screen"
	"github.com/tahfiz/tahfiz/internal/ui/theme"
)

// SummaryScreen presents a finalized session.
type SummaryScreen struct {
	result    *quiz.Summary
	unlocked  []achievements.Definition
	reviewing bool
}

var _ screen.Screen = (*SummaryScreen)(nil)

// New builds the screen. When the summary asks for review, the mistake list
// is shown first.
func New(result *quiz.Summary, unlocked []achievements.Definition) *SummaryScreen {
	return &SummaryScreen{
		result:    result,
		unlocked:  unlocked,
		reviewing: result.NeedsReview,
	}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	if s.reviewing {
		return "Review Mistakes"
	}
	return "Result"
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if _, ok := msg.(tea.KeyMsg); !ok {
		return s, nil
	}
	if s.reviewing {
		s.reviewing = false
		return s, nil
	}
	return s, func() tea.Msg { return router.PopScreenMsg{} }
}

func (s *SummaryScreen) View(width, height int) string {
	if s.reviewing {
		return s.viewReview(width, height)
	}
	return s.viewResult(width, height)
}

func (s *SummaryScreen) viewReview(width, height int) string {
	var lines []string
	lines = append(lines,
		lipgloss.NewStyle().Foreground(theme.Error).Bold(true).
			Render(fmt.Sprintf("%d to review", len(s.result.ErrorLog))),
		"")

	for i, e := range s.result.ErrorLog {
		prompt := lipgloss.NewStyle().Foreground(theme.Text).
			Render(fmt.Sprintf("%d. %s", i+1, e.Prompt))
		answer := lipgloss.NewStyle().Foreground(theme.Success).
			Render("   → " + e.CorrectAnswer)
		lines = append(lines, prompt, answer, "")
	}

	lines = append(lines, theme.Hint.Render("press any key for your result"))
	content := strings.Join(lines, "\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (s *SummaryScreen) viewResult(width, height int) string {
	r := s.result
	var lines []string

	headline := "Test complete"
	style := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	if r.IsPerfect {
		headline = "Perfect run!"
		style = lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	}
	lines = append(lines, style.Render(headline), "")

	lines = append(lines,
		fmt.Sprintf("Score      %d / %d", r.Score, r.TotalQuestions),
		fmt.Sprintf("XP earned  %d", r.XPEarned),
		fmt.Sprintf("Time       %s", r.Duration.Round(time.Second)),
	)

	if r.LevelUp != nil {
		lines = append(lines, "",
			lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).
				Render(fmt.Sprintf("Level up! You reached level %d (+%d ◆)",
					r.LevelUp.NewLevel, r.LevelUp.RewardDiamonds)))
	}

	for _, a := range s.unlocked {
		lines = append(lines, "",
			lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).
				Render("Achievement unlocked: "+a.Title))
	}

	lines = append(lines, "", theme.Hint.Render("press any key to go home"))
	content := strings.Join(lines, "\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
