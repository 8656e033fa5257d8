package quiz

import "errors"

var (
	// ErrEmptyWindow rejects a session start with no primary content.
	// This is a precondition violation, reported before any state exists.
	ErrEmptyWindow = errors.New("quiz: content window is empty")

	// ErrNoEligibleTypes means no question type passes the player's level
	// and path gates. Distinct from generator exhaustion so the caller can
	// tell the player why.
	ErrNoEligibleTypes = errors.New("quiz: no question types available for this level and paths")

	// ErrNoQuestion means every eligible generator was tried and none
	// produced a question. Fatal to the session.
	ErrNoQuestion = errors.New("quiz: no generator produced a question")

	// ErrNoActiveQuestion rejects an answer when no question is awaiting one.
	ErrNoActiveQuestion = errors.New("quiz: no question awaiting an answer")

	// ErrSessionNotFinished rejects finalization before the target question
	// count is reached.
	ErrSessionNotFinished = errors.New("quiz: session has unanswered questions")
)
