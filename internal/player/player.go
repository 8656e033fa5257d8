// Package player holds the progression record the engine reads and
// increments. The record is owned by the caller and passed explicitly into
// every engine call; persistence is the store's concern.
package player

import (
	"errors"
	"slices"
	"time"
)

// ErrNoAttempts is returned when a session start is requested with no
// energy stars and no daily test attempts remaining.
var ErrNoAttempts = errors.New("player: no test attempts remaining")

// State is the player progression record. Level is always derived from XP
// via the progression calculator and is never stored here.
type State struct {
	ID       string
	Username string

	XP         int
	SeasonalXP int
	Diamonds   int

	EnergyStars    int
	TestAttempts   int
	LastDailyReset time.Time

	Achievements []string

	TotalQuizzesCompleted  int
	TotalPlayTimeSeconds   int
	TotalCorrectAnswers    int
	TotalQuestionsAnswered int
}

// GrantXP adds xp to both the lifetime and seasonal totals. Experience only
// increases; negative grants are ignored.
func (s *State) GrantXP(xp int) {
	if xp <= 0 {
		return
	}
	s.XP += xp
	s.SeasonalXP += xp
}

// ApplyDailyReset restores the daily test attempts when more than 24 hours
// have passed since the last reset. Reports whether a reset happened.
func (s *State) ApplyDailyReset(now time.Time, dailyAttempts int) bool {
	if !s.LastDailyReset.IsZero() && now.Sub(s.LastDailyReset) <= 24*time.Hour {
		return false
	}
	s.TestAttempts = dailyAttempts
	s.LastDailyReset = now
	return true
}

// ConsumeAttempt spends one energy star if any are held, falling back to a
// daily test attempt. Stars are spent first so daily attempts carry over.
func (s *State) ConsumeAttempt() error {
	switch {
	case s.EnergyStars > 0:
		s.EnergyStars--
	case s.TestAttempts > 0:
		s.TestAttempts--
	default:
		return ErrNoAttempts
	}
	return nil
}

// HasAchievement reports whether the achievement has been unlocked.
func (s *State) HasAchievement(id string) bool {
	return slices.Contains(s.Achievements, id)
}

// UnlockAchievement records an achievement once. Re-unlocking is a no-op.
func (s *State) UnlockAchievement(id string) bool {
	if s.HasAchievement(id) {
		return false
	}
	s.Achievements = append(s.Achievements, id)
	return true
}
