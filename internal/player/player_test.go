package player

import (
	"errors"
	"testing"
	"time"
)

func TestGrantXP(t *testing.T) {
	s := &State{XP: 100, SeasonalXP: 30}

	s.GrantXP(25)
	if s.XP != 125 || s.SeasonalXP != 55 {
		t.Errorf("after grant: XP=%d SeasonalXP=%d", s.XP, s.SeasonalXP)
	}

	s.GrantXP(-10)
	if s.XP != 125 {
		t.Errorf("negative grant mutated XP to %d", s.XP)
	}
}

func TestApplyDailyReset(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	t.Run("first ever reset", func(t *testing.T) {
		s := &State{}
		if !s.ApplyDailyReset(now, 3) {
			t.Fatal("expected reset")
		}
		if s.TestAttempts != 3 || !s.LastDailyReset.Equal(now) {
			t.Errorf("state after reset: %+v", s)
		}
	})

	t.Run("within the same day", func(t *testing.T) {
		s := &State{TestAttempts: 1, LastDailyReset: now.Add(-2 * time.Hour)}
		if s.ApplyDailyReset(now, 3) {
			t.Error("unexpected reset")
		}
		if s.TestAttempts != 1 {
			t.Errorf("TestAttempts = %d", s.TestAttempts)
		}
	})

	t.Run("after a full day", func(t *testing.T) {
		s := &State{TestAttempts: 0, LastDailyReset: now.Add(-25 * time.Hour)}
		if !s.ApplyDailyReset(now, 3) {
			t.Fatal("expected reset")
		}
		if s.TestAttempts != 3 {
			t.Errorf("TestAttempts = %d", s.TestAttempts)
		}
	})
}

func TestConsumeAttempt(t *testing.T) {
	s := &State{EnergyStars: 1, TestAttempts: 2}

	if err := s.ConsumeAttempt(); err != nil {
		t.Fatal(err)
	}
	if s.EnergyStars != 0 || s.TestAttempts != 2 {
		t.Errorf("stars should be spent first: %+v", s)
	}

	if err := s.ConsumeAttempt(); err != nil {
		t.Fatal(err)
	}
	if s.TestAttempts != 1 {
		t.Errorf("TestAttempts = %d", s.TestAttempts)
	}

	s.TestAttempts = 0
	if err := s.ConsumeAttempt(); !errors.Is(err, ErrNoAttempts) {
		t.Errorf("err = %v, want ErrNoAttempts", err)
	}
}

func TestUnlockAchievementIdempotent(t *testing.T) {
	s := &State{}

	if !s.UnlockAchievement("first_quiz") {
		t.Error("first unlock should report true")
	}
	if s.UnlockAchievement("first_quiz") {
		t.Error("second unlock should be a no-op")
	}
	if len(s.Achievements) != 1 {
		t.Errorf("Achievements = %v", s.Achievements)
	}
	if !s.HasAchievement("first_quiz") {
		t.Error("HasAchievement = false")
	}
}
