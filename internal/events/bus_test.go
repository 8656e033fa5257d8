package events

import (
	"bytes"
	"strings"
	"testing"
)

func TestDispatchOrder(t *testing.T) {
	bus := NewBus()

	var order []string
	bus.Subscribe(KindQuizCompleted, func(Event) { order = append(order, "first") })
	bus.Subscribe(KindQuizCompleted, func(Event) { order = append(order, "second") })
	bus.Subscribe(KindQuizCompleted, func(Event) { order = append(order, "third") })

	bus.Dispatch(Event{Kind: KindQuizCompleted})

	want := []string{"first", "second", "third"}
	if len(order) != len(want) {
		t.Fatalf("handlers invoked = %d, want %d", len(order), len(want))
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("invocation %d = %q, want %q", i, order[i], want[i])
		}
	}
}

func TestDispatchNoSubscribers(t *testing.T) {
	bus := NewBus()
	// Must be a silent no-op.
	bus.Dispatch(Event{Kind: KindPerfectQuiz})
}

func TestDispatchIsolatesPanics(t *testing.T) {
	bus := NewBus()
	var buf bytes.Buffer
	bus.SetErrorWriter(&buf)

	ran := false
	bus.Subscribe(KindLevelUp, func(Event) { panic("boom") })
	bus.Subscribe(KindLevelUp, func(Event) { ran = true })

	bus.Dispatch(Event{Kind: KindLevelUp})

	if !ran {
		t.Error("handler after a panicking handler did not run")
	}
	if !strings.Contains(buf.String(), "boom") {
		t.Errorf("panic not reported, got %q", buf.String())
	}
}

func TestDispatchOnlyMatchingKind(t *testing.T) {
	bus := NewBus()

	calls := 0
	bus.Subscribe(KindQuestionCorrect, func(Event) { calls++ })

	bus.Dispatch(Event{Kind: KindQuestionWrong})
	bus.Dispatch(Event{Kind: KindQuestionCorrect})

	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestEventValue(t *testing.T) {
	tests := []struct {
		name   string
		amount int
		want   int
	}{
		{"absent amount defaults to one", 0, 1},
		{"explicit amount", 25, 25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := Event{Kind: KindXPEarned, Amount: tt.amount}
			if got := e.Value(); got != tt.want {
				t.Errorf("Value() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMetaAccessors(t *testing.T) {
	e := Event{
		Kind: KindQuizCompleted,
		Meta: map[string]any{
			"page":       float64(42), // JSON round-trips land as float64
			"is_perfect": true,
			"event_id":   "ramadan-sprint",
		},
	}

	if n, ok := e.MetaInt("page"); !ok || n != 42 {
		t.Errorf("MetaInt(page) = %d, %v", n, ok)
	}
	if _, ok := e.MetaInt("missing"); ok {
		t.Error("MetaInt(missing) reported present")
	}
	if !e.MetaBool("is_perfect") {
		t.Error("MetaBool(is_perfect) = false")
	}
	if e.MetaString("event_id") != "ramadan-sprint" {
		t.Errorf("MetaString(event_id) = %q", e.MetaString("event_id"))
	}
}
