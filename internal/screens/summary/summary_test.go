package summary

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/tahfiz/tahfiz/internal/achievements"
	"github.com/tahfiz/tahfiz/internal/quiz"
	"github.com/tahfiz/tahfiz/internal/router"
)

func keyPress(s string) tea.Msg {
	return tea.KeyPressMsg{Code: rune(s[0]), Text: s}
}

func TestReviewShownBeforeResult(t *testing.T) {
	s := New(&quiz.Summary{
		Score:          7,
		TotalQuestions: 10,
		NeedsReview:    true,
		ErrorLog: []quiz.ErrorEntry{
			{Prompt: "What comes first?", CorrectAnswer: "alpha"},
		},
	}, nil)

	if s.Title() != "Review Mistakes" {
		t.Errorf("Title = %q, want review first", s.Title())
	}
	view := s.View(80, 24)
	if !strings.Contains(view, "alpha") {
		t.Error("review view missing the correct answer")
	}

	// Any key moves from review to the result view without popping.
	next, cmd := s.Update(keyPress("x"))
	if cmd != nil {
		t.Error("leaving review must not emit a command")
	}
	if next.Title() != "Result" {
		t.Errorf("Title after review = %q", next.Title())
	}
}

func TestPerfectRunSkipsReview(t *testing.T) {
	s := New(&quiz.Summary{Score: 10, TotalQuestions: 10, IsPerfect: true}, nil)

	if s.Title() != "Result" {
		t.Errorf("Title = %q, want Result", s.Title())
	}
	if !strings.Contains(s.View(80, 24), "Perfect") {
		t.Error("perfect run headline missing")
	}
}

func TestResultKeyPops(t *testing.T) {
	s := New(&quiz.Summary{Score: 10, TotalQuestions: 10}, nil)

	_, cmd := s.Update(keyPress("x"))
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("result key must pop back home")
	}
}

func TestUnlockedAchievementsListed(t *testing.T) {
	s := New(&quiz.Summary{Score: 10, TotalQuestions: 10},
		[]achievements.Definition{{ID: "perfectionist", Title: "Perfectionist"}})

	if !strings.Contains(s.View(80, 24), "Perfectionist") {
		t.Error("unlocked achievement missing from result view")
	}
}
