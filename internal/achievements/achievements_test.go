package achievements

import (
	"testing"

	"github.com/tahfiz/tahfiz/internal/events"
	"github.com/tahfiz/tahfiz/internal/player"
)

func testDefs() []Definition {
	return []Definition{
		{
			ID:      "first-quiz",
			Title:   "First Steps",
			Trigger: events.KindQuizCompleted,
			Predicate: func(p *player.State, _ events.Event) bool {
				return p.TotalQuizzesCompleted >= 1
			},
		},
		{
			ID:      "perfectionist",
			Title:   "Perfectionist",
			Trigger: events.KindPerfectQuiz,
		},
		{
			ID:      "level-5",
			Title:   "Climber",
			Trigger: events.KindLevelUp,
			Predicate: func(_ *player.State, e events.Event) bool {
				lvl, ok := e.MetaInt("new_level")
				return ok && lvl >= 5
			},
		},
	}
}

func TestUnlockOnPredicate(t *testing.T) {
	p := &player.State{ID: "p1", TotalQuizzesCompleted: 1}
	tr := NewTracker(p, testDefs())
	bus := events.NewBus()
	tr.Attach(bus)

	bus.Dispatch(events.Event{Kind: events.KindQuizCompleted})

	if !p.HasAchievement("first-quiz") {
		t.Error("first-quiz not unlocked")
	}
	got := tr.TakeUnlocked()
	if len(got) != 1 || got[0].ID != "first-quiz" {
		t.Errorf("TakeUnlocked = %+v, want [first-quiz]", got)
	}
}

func TestNilPredicateFiresOnKind(t *testing.T) {
	p := &player.State{ID: "p1"}
	tr := NewTracker(p, testDefs())
	bus := events.NewBus()
	tr.Attach(bus)

	bus.Dispatch(events.Event{Kind: events.KindPerfectQuiz})

	if !p.HasAchievement("perfectionist") {
		t.Error("perfectionist not unlocked")
	}
}

func TestPredicateGuardsMetadata(t *testing.T) {
	p := &player.State{ID: "p1"}
	tr := NewTracker(p, testDefs())
	bus := events.NewBus()
	tr.Attach(bus)

	bus.Dispatch(events.Event{Kind: events.KindLevelUp, Meta: map[string]any{"new_level": 3}})
	if p.HasAchievement("level-5") {
		t.Error("level-5 unlocked below threshold")
	}

	bus.Dispatch(events.Event{Kind: events.KindLevelUp, Meta: map[string]any{"new_level": 5}})
	if !p.HasAchievement("level-5") {
		t.Error("level-5 not unlocked at threshold")
	}
}

func TestUnlockIsIdempotent(t *testing.T) {
	p := &player.State{ID: "p1", TotalQuizzesCompleted: 1}
	tr := NewTracker(p, testDefs())
	bus := events.NewBus()
	tr.Attach(bus)

	bus.Dispatch(events.Event{Kind: events.KindQuizCompleted})
	tr.TakeUnlocked()
	bus.Dispatch(events.Event{Kind: events.KindQuizCompleted})

	if got := tr.TakeUnlocked(); len(got) != 0 {
		t.Errorf("second dispatch unlocked again: %+v", got)
	}
	count := 0
	for _, id := range p.Achievements {
		if id == "first-quiz" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("achievement recorded %d times", count)
	}
}

func TestPreloadedAchievementsNotRefired(t *testing.T) {
	p := &player.State{ID: "p1", Achievements: []string{"perfectionist"}}
	tr := NewTracker(p, testDefs())
	bus := events.NewBus()
	tr.Attach(bus)

	bus.Dispatch(events.Event{Kind: events.KindPerfectQuiz})

	if got := tr.TakeUnlocked(); len(got) != 0 {
		t.Errorf("already-held achievement refired: %+v", got)
	}
}

func TestTakeUnlockedDrains(t *testing.T) {
	p := &player.State{ID: "p1", TotalQuizzesCompleted: 1}
	tr := NewTracker(p, testDefs())
	bus := events.NewBus()
	tr.Attach(bus)

	bus.Dispatch(events.Event{Kind: events.KindQuizCompleted})
	bus.Dispatch(events.Event{Kind: events.KindPerfectQuiz})

	first := tr.TakeUnlocked()
	if len(first) != 2 {
		t.Fatalf("TakeUnlocked = %d entries, want 2", len(first))
	}
	if got := tr.TakeUnlocked(); len(got) != 0 {
		t.Errorf("drain not empty on second call: %+v", got)
	}
}
