package quiz

import (
	"math/rand"

	"github.com/tahfiz/tahfiz/internal/content"
	"github.com/tahfiz/tahfiz/internal/progression"
)

// TypeConfig is the immutable reference record for one question type,
// loaded once per session initialization from the config provider.
type TypeConfig struct {
	ID            string             `json:"id"`
	RequiredLevel int                `json:"required_level"`
	RequiredPath  progression.PathID `json:"required_path"`
	OptionCount   int                `json:"option_count"`
}

// GenerateInput carries everything a generator may draw on to build one
// question.
type GenerateInput struct {
	// Window is the session's primary content window.
	Window []content.Unit

	// Distractors is the auxiliary window drawn from outside the session's
	// pages. Empty when no distractor material could be fetched; generators
	// that need it must report no result, not fail hard.
	Distractors []content.Unit

	// Config is the type config the generator was resolved from.
	Config TypeConfig

	// Rand is the session's random source.
	Rand *rand.Rand
}

// Generator attempts to produce one question from a content window.
// Returning (nil, nil) means the generator cannot serve this window (for
// example, the page is too short); the selection loop moves on.
type Generator interface {
	Generate(in GenerateInput) (*Question, error)
}

// Question is a generated question owned by the state machine for the
// duration of one turn. The verifier is embedded at construction; the
// engine never inspects how correctness is decided.
type Question struct {
	TypeID      string
	Prompt      string
	Options     []string
	CorrectText string

	verify func(answer string) bool
}

// NewChoiceQuestion builds a multiple-choice question whose verifier
// matches the chosen option text against the correct one.
func NewChoiceQuestion(typeID, prompt string, options []string, correctIndex int) *Question {
	correct := options[correctIndex]
	return &Question{
		TypeID:      typeID,
		Prompt:      prompt,
		Options:     options,
		CorrectText: correct,
		verify:      func(answer string) bool { return answer == correct },
	}
}

// Check runs the embedded verifier against the player's answer.
func (q *Question) Check(answer string) bool {
	return q.verify(answer)
}

// ErrorEntry is one miss in a session's error log, kept for the review
// flow shown after imperfect sessions.
type ErrorEntry struct {
	Prompt        string `json:"prompt"`
	CorrectAnswer string `json:"correct_answer"`
	TypeID        string `json:"type_id"`
}

// ModeType tags a session as a normal test or a special live-event test.
type ModeType string

const (
	ModeNormal    ModeType = "normal_test"
	ModeLiveEvent ModeType = "live_event"
)

// Mode carries the session-mode tag plus mode-specific metadata.
type Mode struct {
	Type       ModeType
	EventID    string
	EventTitle string

	// BonusDiamonds is granted on a perfect run of a live-event session.
	BonusDiamonds int
}

// NormalMode returns the plain single-page test mode.
func NormalMode() Mode {
	return Mode{Type: ModeNormal}
}

// LiveEvent is a special test over a fixed page scope. A perfect run
// grants BonusDiamonds on top of the usual rewards.
type LiveEvent struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	FirstPage     int    `json:"first_page"`
	LastPage      int    `json:"last_page"`
	BonusDiamonds int    `json:"bonus_diamonds"`
}

// LiveEventMode builds the session mode for one live event.
func LiveEventMode(ev LiveEvent) Mode {
	return Mode{
		Type:          ModeLiveEvent,
		EventID:       ev.ID,
		EventTitle:    ev.Title,
		BonusDiamonds: ev.BonusDiamonds,
	}
}
