package quiz

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/tahfiz/tahfiz/internal/content"
	"github.com/tahfiz/tahfiz/internal/events"
	"github.com/tahfiz/tahfiz/internal/player"
	"github.com/tahfiz/tahfiz/internal/progression"
)

// MinDistractorUnits is the smallest distractor window worth keeping; a
// thinner one is topped up before the next question.
const MinDistractorUnits = 5

// distractorFetchAttempts bounds the random-page search for distractor
// material. Collisions with the session's own pages retry with a new page.
const distractorFetchAttempts = 8

// PlayerSaver persists the player progression record. Failures are logged
/// and never fatal: in-memory rewards stand and the caller still gets the
// session result.
type PlayerSaver interface {
	Save(ctx context.Context, p *player.State) error
}

// ResultRecord is the per-session summary handed to the result store when
// the session was tied to a concrete page.
type ResultRecord struct {
	SessionID      string
	PageNumber     int
	Score          int
	TotalQuestions int
	XPEarned       int
	DurationSecs   int
	ErrorLog       []ErrorEntry
}

// ResultSink receives session results and mastery records, fire-and-forget
// from the engine's viewpoint.
type ResultSink interface {
	AppendResult(ctx context.Context, rec ResultRecord) error
	RecordMastery(ctx context.Context, page, durationSecs int) error
}

// Options wires an Engine. Registry, Bus, Calc, and Content are required;
// the stores may be nil (persistence is then skipped entirely).
type Options struct {
	Registry    *Registry
	Bus         *events.Bus
	Calc        *progression.Calculator
	Content     content.Provider
	Players     PlayerSaver
	Results     ResultSink
	TypeConfigs []TypeConfig

	// Rand defaults to a time-seeded source.
	Rand *rand.Rand

	// Now defaults to time.Now; tests may pin it.
	Now func() time.Time

	// Logf receives persistence diagnostics; defaults to stderr.
	Logf func(format string, args ...any)
}

// Engine orchestrates quiz sessions: question selection, scoring, reward
// computation, and event propagation. One Engine serves one player context;
// sessions run strictly one at a time.
type Engine struct {
	opts Options
}

// NewEngine creates an engine, filling optional fields with defaults.
func NewEngine(opts Options) *Engine {
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logf == nil {
		opts.Logf = func(format string, args ...any) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		}
	}
	return &Engine{opts: opts}
}

// Phase is the session state machine's current state.
type Phase int

const (
	PhaseAwaitingAnswer Phase = iota // a question is displayed, answer pending
	PhaseScored                      // last answer scored, next question not yet requested
	PhaseCompleted                   // finalized
	PhaseHalted                      // terminal content exhaustion, never finalized
)

// Session is the mutable aggregate for one play-through. It is created by
// Start, mutated only by the engine, and discarded after finalization.
type Session struct {
	ID             string
	Mode           Mode
	PageNumber     int
	TotalQuestions int

	Window      []content.Unit
	Distractors []content.Unit

	Index    int
	Score    int
	ErrorLog []ErrorEntry
	XPEarned int

	StartTime time.Time
	Current   *Question
	Phase     Phase

	player *player.State
}

// StartConfig carries everything a session start needs. The caller fetches
// the primary window itself (it knows which page or event scope to play).
type StartConfig struct {
	Window []content.Unit

	// PageNumber is the concrete page under test, or 0 for multi-page
	// (event-scoped) sessions.
	PageNumber int

	// TotalQuestions defaults to the rules' question count and is always
	// clamped to the player's level cap.
	TotalQuestions int

	Mode   Mode
	Player *player.State
}

// Start validates the window precondition, builds the session, and
// immediately requests the first question. Starting a new session while an
// old one is in memory simply abandons the old one.
func (e *Engine) Start(ctx context.Context, cfg StartConfig) (*Session, error) {
	if len(cfg.Window) == 0 {
		return nil, ErrEmptyWindow
	}

	rules := e.opts.Calc.Rules()
	level := e.opts.Calc.LevelFor(cfg.Player.XP)

	total := cfg.TotalQuestions
	if total <= 0 {
		total = rules.DefaultQuestionCount
	}
	if max := e.opts.Calc.MaxQuestionsForLevel(level); total > max {
		total = max
	}

	s := &Session{
		ID:             uuid.NewString(),
		Mode:           cfg.Mode,
		PageNumber:     cfg.PageNumber,
		TotalQuestions: total,
		Window:         cfg.Window,
		StartTime:      e.opts.Now(),
		player:         cfg.Player,
	}

	if _, err := e.nextQuestion(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// Feedback is the engine's response to one submitted answer.
type Feedback struct {
	Correct       bool
	CorrectAnswer string

	// Done is true when the target question count has been reached and the
	// caller should finalize instead of requesting another question.
	Done bool
}

// SubmitAnswer scores the active question. Correctness is decided by the
// question's own verifier. Either branch advances the question index; the
// caller requests the next question (after its feedback delay) or
// finalizes when Done.
func (e *Engine) SubmitAnswer(ctx context.Context, s *Session, answer string) (Feedback, error) {
	if s.Phase != PhaseAwaitingAnswer || s.Current == nil {
		return Feedback{}, ErrNoActiveQuestion
	}

	q := s.Current
	rules := e.opts.Calc.Rules()
	correct := q.Check(answer)

	if correct {
		s.Score++
		s.XPEarned += rules.XPPerCorrectAnswer
		e.opts.Bus.Dispatch(events.Event{Kind: events.KindQuestionCorrect})
	} else {
		s.ErrorLog = append(s.ErrorLog, ErrorEntry{
			Prompt:        q.Prompt,
			CorrectAnswer: q.CorrectText,
			TypeID:        q.TypeID,
		})
		e.opts.Bus.Dispatch(events.Event{Kind: events.KindQuestionWrong})
	}

	s.Index++
	s.Current = nil
	s.Phase = PhaseScored

	return Feedback{
		Correct:       correct,
		CorrectAnswer: q.CorrectText,
		Done:          s.Index >= s.TotalQuestions,
	}, nil
}

// NextQuestion requests the next question for a scored session. A
// selection failure is terminal: the session is halted, not completed, and
// the error distinguishes exhaustion from eligibility gaps.
func (e *Engine) NextQuestion(ctx context.Context, s *Session) (*Question, error) {
	if s.Phase != PhaseScored || s.Index >= s.TotalQuestions {
		return nil, ErrNoActiveQuestion
	}
	return e.nextQuestion(ctx, s)
}

func (e *Engine) nextQuestion(ctx context.Context, s *Session) (*Question, error) {
	e.ensureDistractors(ctx, s)

	level := e.opts.Calc.LevelFor(s.player.XP)
	paths := e.opts.Calc.AvailablePaths(level)
	candidates := e.opts.Registry.Eligible(level, paths, e.opts.TypeConfigs)

	q, err := e.opts.Registry.Generate(GenerateInput{
		Window:      s.Window,
		Distractors: s.Distractors,
		Rand:        e.opts.Rand,
	}, candidates, e.opts.Rand)
	if err != nil {
		s.Phase = PhaseHalted
		return nil, err
	}

	s.Current = q
	s.Phase = PhaseAwaitingAnswer
	return q, nil
}

// ensureDistractors tops up the auxiliary window from a random page outside
// the session's own pages. Every failure mode degrades to "no distractor
// window"; generators that need one are skipped by selection.
func (e *Engine) ensureDistractors(ctx context.Context, s *Session) {
	if len(s.Distractors) >= MinDistractorUnits {
		return
	}

	own := make(map[int]bool)
	for _, u := range s.Window {
		own[u.Page] = true
	}
	if s.PageNumber > 0 {
		own[s.PageNumber] = true
	}

	total := e.opts.Content.PageCount()
	if total <= len(own) {
		return // nowhere outside the window to draw from
	}

	for attempt := 0; attempt < distractorFetchAttempts; attempt++ {
		page := 1 + e.opts.Rand.Intn(total)
		if own[page] {
			continue // same page cannot serve as its own distractor
		}
		units, err := e.opts.Content.FetchWindow(ctx, page)
		if err != nil || len(units) == 0 {
			continue
		}
		s.Distractors = units
		return
	}
}
