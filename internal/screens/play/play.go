// Package play hosts the active test screen: page selection, the question
// loop with per-answer feedback, and the summary hand-off.
package play

import (
	"context"
	"errors"
	"math/rand"
	"slices"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/tahfiz/tahfiz/internal/achievements"
	"github.com/tahfiz/tahfiz/internal/content"
	"github.com/tahfiz/tahfiz/internal/player"
	"github.com/tahfiz/tahfiz/internal/progression"
	"github.com/tahfiz/tahfiz/internal/quiz"
	"github.com/tahfiz/tahfiz/internal/router"
	"github.com/tahfiz/tahfiz/internal/screen"
	"github.com/tahfiz/tahfiz/internal/screens/summary"
	"github.com/tahfiz/tahfiz/internal/ui/components"
	"github.com/tahfiz/tahfiz/internal/ui/layout"
)

// Deps carries everything the play screen needs. The screen never persists
// anything itself beyond what the engine does on finalize.
type Deps struct {
	Engine       *quiz.Engine
	Pack         *content.Pack
	Player       *player.State
	Calc         *progression.Calculator
	Achievements *achievements.Tracker
	Players      quiz.PlayerSaver
	Rand         *rand.Rand
}

// PlayScreen runs one session over a chosen page or live-event scope.
type PlayScreen struct {
	deps  Deps
	event *quiz.LiveEvent

	picking   bool
	pageInput components.TextInput

	session  *quiz.Session
	choice   components.MultiChoice
	feedback *quiz.Feedback
	errMsg   string
}

var _ screen.Screen = (*PlayScreen)(nil)
var _ screen.KeyHintProvider = (*PlayScreen)(nil)

// New creates the play screen in the page-selection state.
func New(deps Deps) *PlayScreen {
	if deps.Rand == nil {
		deps.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &PlayScreen{
		deps:      deps,
		picking:   true,
		pageInput: components.NewTextInput("page number, empty for random", true, 4),
	}
}

// NewEvent creates the play screen for a live event. There is no page
// to pick; the session opens over the event's scope on init.
func NewEvent(deps Deps, ev quiz.LiveEvent) *PlayScreen {
	if deps.Rand == nil {
		deps.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &PlayScreen{deps: deps, event: &ev}
}

func (s *PlayScreen) Title() string {
	if s.event != nil {
		return s.event.Title
	}
	return "Test"
}

func (s *PlayScreen) KeyHints() []layout.KeyHint {
	if s.errMsg != "" {
		return []layout.KeyHint{{Key: "any key", Description: "Back"}}
	}
	if s.picking {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Start"},
			{Key: "Esc", Description: "Back"},
		}
	}
	if s.feedback != nil {
		return nil
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Choose"},
		{Key: "Enter", Description: "Answer"},
		{Key: "Esc", Description: "Abandon"},
	}
}

func (s *PlayScreen) Init() tea.Cmd {
	if len(s.deps.Pack.PopulatedPages()) == 0 {
		s.errMsg = "The loaded pack has no reviewable pages."
		return nil
	}
	if s.event != nil {
		s.startEvent(*s.event)
		return nil
	}
	return s.pageInput.Init()
}

// start opens a normal session over the given page.
func (s *PlayScreen) start(page int) {
	window, err := s.deps.Pack.FetchWindow(context.Background(), page)
	if err != nil {
		if errors.Is(err, content.ErrPageEmpty) {
			s.errMsg = "That page has nothing to review. Pick a populated one."
		} else {
			s.errMsg = err.Error()
		}
		return
	}
	s.begin(window, page, quiz.NormalMode())
}

// startEvent opens a session over every populated page in the event's
// scope. A single-page scope keeps its page number so a perfect run
// still counts toward mastery.
func (s *PlayScreen) startEvent(ev quiz.LiveEvent) {
	ctx := context.Background()

	var window []content.Unit
	for _, page := range s.deps.Pack.PopulatedPages() {
		if page < ev.FirstPage || page > ev.LastPage {
			continue
		}
		units, err := s.deps.Pack.FetchWindow(ctx, page)
		if err != nil {
			continue
		}
		window = append(window, units...)
	}
	if len(window) == 0 {
		s.errMsg = "This event's pages are not in the loaded pack."
		return
	}

	page := 0
	if ev.FirstPage == ev.LastPage {
		page = ev.FirstPage
	}
	s.begin(window, page, quiz.LiveEventMode(ev))
}

// begin starts the engine session and only then spends the attempt, so
// a start failure costs the player nothing.
func (s *PlayScreen) begin(window []content.Unit, page int, mode quiz.Mode) {
	ctx := context.Background()

	sess, err := s.deps.Engine.Start(ctx, quiz.StartConfig{
		Window:     window,
		PageNumber: page,
		Mode:       mode,
		Player:     s.deps.Player,
	})
	if err != nil {
		s.errMsg = err.Error()
		return
	}

	if err := s.deps.Player.ConsumeAttempt(); err != nil {
		if errors.Is(err, player.ErrNoAttempts) {
			s.errMsg = "No test attempts left today. Come back tomorrow!"
		} else {
			s.errMsg = err.Error()
		}
		return
	}
	if s.deps.Players != nil {
		// Best effort; the engine saves again on finalize.
		_ = s.deps.Players.Save(ctx, s.deps.Player)
	}

	s.picking = false
	s.session = sess
	s.setQuestion(sess.Current)
}

func (s *PlayScreen) setQuestion(q *quiz.Question) {
	correct := slices.Index(q.Options, q.CorrectText)
	s.choice = components.NewMultiChoice(q.Prompt, q.Options, correct)
	s.feedback = nil
}

func (s *PlayScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case feedbackDoneMsg:
		return s.advance()
	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.picking {
		var cmd tea.Cmd
		s.pageInput, cmd = s.pageInput.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *PlayScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.errMsg != "" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}

	if s.picking {
		if msg.String() == "enter" {
			s.startFromInput()
			return s, nil
		}
		var cmd tea.Cmd
		s.pageInput, cmd = s.pageInput.Update(msg)
		return s, cmd
	}

	if s.session == nil || s.feedback != nil {
		// Feedback dismisses on its own timer.
		return s, nil
	}

	var cmd tea.Cmd
	s.choice, cmd = s.choice.Update(msg)
	if s.choice.Submitted {
		return s.submit()
	}
	return s, cmd
}

func (s *PlayScreen) startFromInput() {
	pages := s.deps.Pack.PopulatedPages()
	if s.pageInput.Value() == "" {
		s.start(pages[s.deps.Rand.Intn(len(pages))])
		return
	}
	page, err := s.pageInput.NumericValue()
	if err != nil || page < 1 || page > s.deps.Pack.PageCount() {
		s.pageInput.Submit(false)
		return
	}
	s.start(page)
}

func (s *PlayScreen) submit() (screen.Screen, tea.Cmd) {
	answer := ""
	if s.choice.ChosenIndex >= 0 && s.choice.ChosenIndex < len(s.choice.Options) {
		answer = s.choice.Options[s.choice.ChosenIndex]
	}

	fb, err := s.deps.Engine.SubmitAnswer(context.Background(), s.session, answer)
	if err != nil {
		s.errMsg = err.Error()
		return s, nil
	}
	s.feedback = &fb

	delay := s.deps.Calc.Rules().FeedbackDelay
	return s, tea.Tick(delay, func(t time.Time) tea.Msg {
		return feedbackDoneMsg(t)
	})
}

// advance moves past the feedback pause: next question, or finalize and
// swap in the summary screen.
func (s *PlayScreen) advance() (screen.Screen, tea.Cmd) {
	if s.session == nil || s.feedback == nil {
		return s, nil
	}

	ctx := context.Background()
	if s.feedback.Done {
		sum, err := s.deps.Engine.Finalize(ctx, s.session)
		if err != nil {
			s.errMsg = err.Error()
			return s, nil
		}
		var unlocked []achievements.Definition
		if s.deps.Achievements != nil {
			unlocked = s.deps.Achievements.TakeUnlocked()
		}
		result := summary.New(sum, unlocked)
		return s, func() tea.Msg {
			return router.ReplaceScreenMsg{Screen: result}
		}
	}

	q, err := s.deps.Engine.NextQuestion(ctx, s.session)
	if err != nil {
		s.errMsg = err.Error()
		return s, nil
	}
	s.setQuestion(q)
	return s, nil
}
