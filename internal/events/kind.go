package events

// Kind identifies a gameplay event type. Kinds are enumerated here rather
// than probed as free-form strings so that publishers and subscribers agree
// on the set at compile time.
type Kind string

const (
	// KindLogin fires once per process after the player record is loaded.
	KindLogin Kind = "login"

	// KindQuestionCorrect fires after each correctly answered question.
	KindQuestionCorrect Kind = "question_answered_correctly"

	// KindQuestionWrong fires after each incorrectly answered question.
	KindQuestionWrong Kind = "question_answered_wrongly"

	// KindQuizCompleted fires once per finalized session.
	KindQuizCompleted Kind = "quiz_completed"

	// KindPerfectQuiz fires after KindQuizCompleted when every answer was correct.
	KindPerfectQuiz Kind = "perfect_quiz"

	// KindXPEarned fires after a session that earned a nonzero amount of XP.
	KindXPEarned Kind = "xp_earned"

	// KindLevelUp fires when applying session XP crosses a level threshold.
	KindLevelUp Kind = "level_up"

	// KindMasteryCheck fires on a perfect run over a concrete page.
	KindMasteryCheck Kind = "mastery_check"

	// KindLiveEventCompleted fires when an event-scoped session finalizes.
	KindLiveEventCompleted Kind = "live_event_completed"

	// KindItemPurchased and KindFriendAdded are published by collaborators
	// outside this core; quests may still target them.
	KindItemPurchased Kind = "item_purchased"
	KindFriendAdded   Kind = "friend_added"
)

// Event is a lightweight notification of something that happened during
// play. Events are values; they are not retained after dispatch.
type Event struct {
	Kind Kind

	// Amount is an optional magnitude (e.g. XP earned). Zero means absent.
	Amount int

	// Meta carries free-form payload fields such as "page" or "new_level".
	Meta map[string]any
}

// Value returns Amount, or 1 when no amount was attached. Counters that
// advance once per event use this default.
func (e Event) Value() int {
	if e.Amount > 0 {
		return e.Amount
	}
	return 1
}

// MetaInt reads an integer metadata field, tolerating the numeric types
// that land in Meta depending on how the event was constructed.
func (e Event) MetaInt(key string) (int, bool) {
	v, ok := e.Meta[key]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	}
	return 0, false
}

// MetaBool reads a boolean metadata field.
func (e Event) MetaBool(key string) bool {
	b, _ := e.Meta[key].(bool)
	return b
}

// MetaString reads a string metadata field.
func (e Event) MetaString(key string) string {
	s, _ := e.Meta[key].(string)
	return s
}
