// Package questlog lists quest progress and handles reward claims.
package questlog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/tahfiz/tahfiz/internal/player"
	"github.com/tahfiz/tahfiz/internal/quests"
	"github.com/tahfiz/tahfiz/internal/quiz"
	"github.com/tahfiz/tahfiz/internal/screen"
	"github.com/tahfiz/tahfiz/internal/ui/components"
	"github.com/tahfiz/tahfiz/internal/ui/layout"
	"github.com/tahfiz/tahfiz/internal/ui/theme"
)

// QuestScreen shows the loaded quest set with claim support.
type QuestScreen struct {
	tracker  *quests.Tracker
	player   *player.State
	players  quiz.PlayerSaver
	selected int
	notice   string
}

var _ screen.Screen = (*QuestScreen)(nil)
var _ screen.KeyHintProvider = (*QuestScreen)(nil)

// New builds the quest log for one player.
func New(tracker *quests.Tracker, p *player.State, players quiz.PlayerSaver) *QuestScreen {
	return &QuestScreen{tracker: tracker, player: p, players: players}
}

func (s *QuestScreen) Init() tea.Cmd {
	return nil
}

func (s *QuestScreen) Title() string {
	return "Quests"
}

func (s *QuestScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Claim"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *QuestScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	statuses := s.tracker.Statuses()
	switch kmsg.String() {
	case "up", "k":
		if s.selected > 0 {
			s.selected--
		}
	case "down", "j":
		if s.selected < len(statuses)-1 {
			s.selected++
		}
	case "enter":
		s.claim(statuses)
	}
	return s, nil
}

func (s *QuestScreen) claim(statuses []quests.Status) {
	if s.selected >= len(statuses) {
		return
	}
	st := statuses[s.selected]

	reward, err := s.tracker.Claim(context.Background(), st.Definition.ID, s.player)
	if errors.Is(err, quests.ErrNotClaimable) {
		s.notice = "Nothing to claim there yet."
		return
	}
	if err != nil {
		s.notice = err.Error()
		return
	}

	if s.players != nil {
		// Reward already granted in memory; the save is best effort.
		_ = s.players.Save(context.Background(), s.player)
	}
	s.notice = fmt.Sprintf("Claimed %q: +%d XP, +%d ◆", st.Definition.Title, reward.XP, reward.Diamonds)
}

func (s *QuestScreen) View(width, height int) string {
	statuses := s.tracker.Statuses()
	if len(statuses) == 0 {
		empty := theme.Hint.Render("No quests loaded.")
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, empty)
	}

	barWidth := width / 3
	if barWidth < 16 {
		barWidth = 16
	}

	var lines []string
	for i, st := range statuses {
		cursor := "  "
		titleStyle := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			cursor = "▸ "
			titleStyle = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
		}

		state := ""
		switch {
		case st.Claimed:
			state = lipgloss.NewStyle().Foreground(theme.TextDim).Render("  claimed")
		case st.Claimable():
			state = lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render("  ready to claim!")
		}

		lines = append(lines, cursor+titleStyle.Render(st.Definition.Title)+state)
		lines = append(lines, "    "+theme.Hint.Render(st.Definition.Description))

		percent := float64(st.Progress) / float64(st.Definition.Target)
		bar := components.NewProgressBar(
			fmt.Sprintf("    %d/%d", st.Progress, st.Definition.Target),
			percent, false, barWidth,
		)
		lines = append(lines, bar.View(), "")
	}

	if s.notice != "" {
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.Secondary).Render(s.notice))
	}

	content := strings.Join(lines, "\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
