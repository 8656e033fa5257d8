package play

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/tahfiz/tahfiz/internal/quiz"
	"github.com/tahfiz/tahfiz/internal/ui/components"
	"github.com/tahfiz/tahfiz/internal/ui/theme"
)

func (s *PlayScreen) View(width, height int) string {
	if s.errMsg != "" {
		return renderNotice(width, height, s.errMsg)
	}
	if s.picking {
		return s.viewPicker(width, height)
	}
	if s.session == nil {
		return renderNotice(width, height, "Preparing your test...")
	}

	var sections []string

	barWidth := width / 2
	if barWidth < 20 {
		barWidth = 20
	}
	answered := s.session.Index
	percent := float64(answered) / float64(s.session.TotalQuestions)
	bar := components.NewProgressBar(
		fmt.Sprintf("Question %d/%d", min(answered+1, s.session.TotalQuestions), s.session.TotalQuestions),
		percent, false, barWidth,
	)
	sections = append(sections, bar.View())

	scope := fmt.Sprintf("Page %d", s.session.PageNumber)
	if s.event != nil {
		scope = s.event.Title
	}
	score := lipgloss.NewStyle().Foreground(theme.TextDim).
		Render(fmt.Sprintf("%s   Score %d", scope, s.session.Score))
	sections = append(sections, score, "")

	sections = append(sections, s.choice.View())

	if s.feedback != nil {
		sections = append(sections, "", renderFeedback(*s.feedback))
	}

	content := strings.Join(sections, "\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (s *PlayScreen) viewPicker(width, height int) string {
	prompt := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).
		Render("Which page do you want to review?")

	populated := s.deps.Pack.PopulatedPages()
	shown := populated
	if len(shown) > 12 {
		shown = shown[:12]
	}
	parts := make([]string, len(shown))
	for i, pg := range shown {
		parts[i] = fmt.Sprintf("%d", pg)
	}
	hintText := "Reviewable: " + strings.Join(parts, ", ")
	if len(populated) > len(shown) {
		hintText += ", …"
	}

	content := strings.Join([]string{
		prompt,
		"",
		s.pageInput.View(),
		"",
		theme.Hint.Render(hintText),
	}, "\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func renderFeedback(fb quiz.Feedback) string {
	if fb.Correct {
		return lipgloss.NewStyle().Foreground(theme.Success).Bold(true).
			Render("Correct!")
	}
	return lipgloss.NewStyle().Foreground(theme.Error).Bold(true).
		Render("Not quite. The answer was: ") +
		lipgloss.NewStyle().Foreground(theme.Text).Render(fb.CorrectAnswer)
}

func renderNotice(width, height int, msg string) string {
	styled := lipgloss.NewStyle().
		Foreground(theme.Text).
		Align(lipgloss.Center).
		Render(msg)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, styled)
}
