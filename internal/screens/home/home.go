// Package home is the landing screen: greeting, attempt counter, and the
// main navigation menu.
package home

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/tahfiz/tahfiz/internal/achievements"
	"github.com/tahfiz/tahfiz/internal/content"
	"github.com/tahfiz/tahfiz/internal/player"
	"github.com/tahfiz/tahfiz/internal/progression"
	"github.com/tahfiz/tahfiz/internal/quests"
	"github.com/tahfiz/tahfiz/internal/quiz"
	"github.com/tahfiz/tahfiz/internal/router"
	"github.com/tahfiz/tahfiz/internal/screen"
	"github.com/tahfiz/tahfiz/internal/screens/play"
	"github.com/tahfiz/tahfiz/internal/screens/questlog"
	"github.com/tahfiz/tahfiz/internal/screens/stats"
	"github.com/tahfiz/tahfiz/internal/store"
	"github.com/tahfiz/tahfiz/internal/ui/components"
	"github.com/tahfiz/tahfiz/internal/ui/theme"
)

// Deps is everything the home screen needs to spawn the other screens.
type Deps struct {
	Engine       *quiz.Engine
	Pack         *content.Pack
	Player       *player.State
	Calc         *progression.Calculator
	Quests       *quests.Tracker
	Achievements *achievements.Tracker
	Players      quiz.PlayerSaver
	Results      *store.ResultRepo
	Events       []quiz.LiveEvent
}

// HomeScreen is the root menu.
type HomeScreen struct {
	deps Deps
	menu components.Menu
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates the home screen. Each loaded live event gets its own
// menu entry between the normal test and the quest log.
func New(deps Deps) *HomeScreen {
	h := &HomeScreen{deps: deps}
	items := []components.MenuItem{
		{Label: "Start a test", Action: h.pushPlay},
	}
	for _, ev := range deps.Events {
		items = append(items, components.MenuItem{
			Label:  fmt.Sprintf("Live event: %s (+%d ◆ for a perfect run)", ev.Title, ev.BonusDiamonds),
			Action: h.pushEvent(ev),
		})
	}
	items = append(items,
		components.MenuItem{Label: "Quests", Action: h.pushQuests},
		components.MenuItem{Label: "Stats", Action: h.pushStats},
		components.MenuItem{Label: "Quit", Action: func() tea.Cmd { return tea.Quit }},
	)
	h.menu = components.NewMenu(items)
	return h
}

func (h *HomeScreen) playDeps() play.Deps {
	return play.Deps{
		Engine:       h.deps.Engine,
		Pack:         h.deps.Pack,
		Player:       h.deps.Player,
		Calc:         h.deps.Calc,
		Achievements: h.deps.Achievements,
		Players:      h.deps.Players,
	}
}

func (h *HomeScreen) pushPlay() tea.Cmd {
	s := play.New(h.playDeps())
	return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
}

func (h *HomeScreen) pushEvent(ev quiz.LiveEvent) func() tea.Cmd {
	return func() tea.Cmd {
		s := play.NewEvent(h.playDeps(), ev)
		return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
	}
}

func (h *HomeScreen) pushQuests() tea.Cmd {
	s := questlog.New(h.deps.Quests, h.deps.Player, h.deps.Players)
	return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
}

func (h *HomeScreen) pushStats() tea.Cmd {
	s := stats.New(h.deps.Player, h.deps.Calc, h.deps.Results)
	return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	p := h.deps.Player
	level := h.deps.Calc.LevelFor(p.XP)

	greeting := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).
		Render(fmt.Sprintf("As-salamu alaykum, %s", p.Username))

	status := lipgloss.NewStyle().Foreground(theme.TextDim).
		Render(fmt.Sprintf("Level %d   %d XP   %d attempts left today",
			level, p.XP, p.TestAttempts))

	var claimHint string
	if n := len(h.deps.Quests.Claimables()); n > 0 {
		claimHint = lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).
			Render(fmt.Sprintf("%d quest reward(s) ready to claim", n))
	}

	sections := []string{greeting, status, ""}
	if claimHint != "" {
		sections = append(sections, claimHint, "")
	}
	sections = append(sections, h.menu.View())

	content := strings.Join(sections, "\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
