// Package progression maps accumulated experience to levels, unlocked
// question paths, and level-gated limits. Everything here is pure: the
// calculator is built once from configuration tables and never mutates them.
package progression

import "time"

// PathID names a skill track. Question types declare a required path and
// become eligible only once the player's level unlocks that path.
type PathID string

const (
	PathRecall   PathID = "recall"
	PathSequence PathID = "sequence"
	PathContext  PathID = "context"
	PathMastery  PathID = "mastery"
)

// LevelThreshold is one band of the experience table. Thresholds must be
// strictly increasing in XP.
type LevelThreshold struct {
	Level          int
	XP             int
	RewardDiamonds int
}

// PathUnlock gates a path behind a minimum level.
type PathUnlock struct {
	Path     PathID
	MinLevel int
}

// QuestionCap caps the per-session question count for a minimum level.
type QuestionCap struct {
	MinLevel     int
	MaxQuestions int
}

// Rules holds the scalar game constants. Every consumer goes through the
// calculator so absent overrides always fall back to these defaults.
type Rules struct {
	XPPerCorrectAnswer   int
	XPBonusAllCorrect    int
	DefaultQuestionCount int
	DailyTestAttempts    int
	FeedbackDelay        time.Duration
}

// DefaultRules returns the stock rule set.
func DefaultRules() Rules {
	return Rules{
		XPPerCorrectAnswer:   5,
		XPBonusAllCorrect:    50,
		DefaultQuestionCount: 10,
		DailyTestAttempts:    3,
		FeedbackDelay:        2500 * time.Millisecond,
	}
}

// LevelUp describes a level transition produced by CheckLevelUp.
//
// When one XP grant crosses several thresholds at once, only the final level
// reached and its reward are reported; intermediate per-level rewards are
// not awarded. Callers relying on cumulative rewards must grant XP in
// smaller increments.
type LevelUp struct {
	NewLevel       int
	RewardDiamonds int
}

// Tables bundles the configuration the calculator is built from.
type Tables struct {
	Thresholds   []LevelThreshold
	Unlocks      []PathUnlock
	QuestionCaps []QuestionCap
	Rules        Rules
}

// Calculator answers progression queries against a fixed table set.
type Calculator struct {
	tables Tables
}

// New builds a calculator. Tables are assumed already validated (strictly
// increasing thresholds); config loading enforces that.
func New(tables Tables) *Calculator {
	return &Calculator{tables: tables}
}

// LevelFor returns the highest level whose threshold is at or below xp.
// Level 1 is the floor for experience below the first threshold.
func (c *Calculator) LevelFor(xp int) int {
	level := 1
	for _, t := range c.tables.Thresholds {
		if xp >= t.XP {
			level = t.Level
		} else {
			break
		}
	}
	return level
}

// CheckLevelUp reports a level-up only when newXP reaches a higher level
// than oldXP. The reward is the final level's configured reward.
func (c *Calculator) CheckLevelUp(oldXP, newXP int) *LevelUp {
	oldLevel := c.LevelFor(oldXP)
	newLevel := c.LevelFor(newXP)
	if newLevel <= oldLevel {
		return nil
	}
	return &LevelUp{
		NewLevel:       newLevel,
		RewardDiamonds: c.rewardFor(newLevel),
	}
}

func (c *Calculator) rewardFor(level int) int {
	for _, t := range c.tables.Thresholds {
		if t.Level == level {
			return t.RewardDiamonds
		}
	}
	return 0
}

// AvailablePaths returns the paths unlocked at the given level, in table
// order. The unlock table is monotonic: a path once unlocked stays unlocked.
func (c *Calculator) AvailablePaths(level int) []PathID {
	var paths []PathID
	for _, u := range c.tables.Unlocks {
		if level >= u.MinLevel {
			paths = append(paths, u.Path)
		}
	}
	return paths
}

// NextLevelXP returns the XP threshold of the next level above xp. The
// second result is false at the top of the table.
func (c *Calculator) NextLevelXP(xp int) (int, bool) {
	for _, t := range c.tables.Thresholds {
		if xp < t.XP {
			return t.XP, true
		}
	}
	return 0, false
}

// MaxQuestionsForLevel returns the per-session question cap for a level.
func (c *Calculator) MaxQuestionsForLevel(level int) int {
	max := c.tables.Rules.DefaultQuestionCount
	for _, qc := range c.tables.QuestionCaps {
		if level >= qc.MinLevel {
			max = qc.MaxQuestions
		}
	}
	return max
}

// Rules returns the scalar game constants.
func (c *Calculator) Rules() Rules {
	return c.tables.Rules
}
