// Package config carries the tunable game data: level thresholds, question
// type gating, and the seeded quest and achievement sets. Defaults are
// compiled in; the progression tables can be overridden from a JSON file.
package config

import (
	"github.com/tahfiz/tahfiz/internal/achievements"
	"github.com/tahfiz/tahfiz/internal/events"
	"github.com/tahfiz/tahfiz/internal/player"
	"github.com/tahfiz/tahfiz/internal/progression"
	"github.com/tahfiz/tahfiz/internal/quests"
	"github.com/tahfiz/tahfiz/internal/quiz"
)

// Config bundles the data a session needs beyond the content pack.
type Config struct {
	Tables       progression.Tables
	TypeConfigs  []quiz.TypeConfig
	Quests       []quests.Definition
	Achievements []achievements.Definition
	LiveEvents   []quiz.LiveEvent
}

// Default returns the built-in game data.
func Default() Config {
	return Config{
		Tables:       DefaultTables(),
		TypeConfigs:  DefaultTypeConfigs(),
		Quests:       DefaultQuests(),
		Achievements: DefaultAchievements(),
		LiveEvents:   DefaultLiveEvents(),
	}
}

// DefaultTables is the built-in progression ladder.
func DefaultTables() progression.Tables {
	return progression.Tables{
		Rules: progression.DefaultRules(),
		Thresholds: []progression.LevelThreshold{
			{Level: 1, XP: 0, RewardDiamonds: 0},
			{Level: 2, XP: 100, RewardDiamonds: 10},
			{Level: 3, XP: 250, RewardDiamonds: 15},
			{Level: 4, XP: 500, RewardDiamonds: 20},
			{Level: 5, XP: 850, RewardDiamonds: 25},
			{Level: 6, XP: 1300, RewardDiamonds: 30},
			{Level: 7, XP: 1900, RewardDiamonds: 35},
			{Level: 8, XP: 2700, RewardDiamonds: 40},
			{Level: 9, XP: 3700, RewardDiamonds: 50},
			{Level: 10, XP: 5000, RewardDiamonds: 75},
		},
		Unlocks: []progression.PathUnlock{
			{Path: progression.PathRecall, MinLevel: 1},
			{Path: progression.PathSequence, MinLevel: 2},
			{Path: progression.PathContext, MinLevel: 3},
			{Path: progression.PathMastery, MinLevel: 5},
		},
		QuestionCaps: []progression.QuestionCap{
			{MinLevel: 1, MaxQuestions: 5},
			{MinLevel: 2, MaxQuestions: 7},
			{MinLevel: 3, MaxQuestions: 10},
			{MinLevel: 5, MaxQuestions: 15},
			{MinLevel: 8, MaxQuestions: 20},
		},
	}
}

// DefaultTypeConfigs gates the built-in question types.
func DefaultTypeConfigs() []quiz.TypeConfig {
	return []quiz.TypeConfig{
		{ID: quiz.TypeFirstWord, RequiredLevel: 1, RequiredPath: progression.PathRecall, OptionCount: 4},
		{ID: quiz.TypeMissingWord, RequiredLevel: 1, RequiredPath: progression.PathRecall, OptionCount: 4},
		{ID: quiz.TypeNextUnit, RequiredLevel: 2, RequiredPath: progression.PathSequence, OptionCount: 4},
		{ID: quiz.TypeUnitOrder, RequiredLevel: 3, RequiredPath: progression.PathSequence, OptionCount: 4},
		{ID: quiz.TypeIntruder, RequiredLevel: 3, RequiredPath: progression.PathContext, OptionCount: 4},
	}
}

// DefaultQuests is the seeded quest set.
func DefaultQuests() []quests.Definition {
	return []quests.Definition{
		{
			ID:             "daily-login",
			Title:          "Show Up",
			Description:    "Open the app and review",
			Trigger:        events.KindLogin,
			Target:         1,
			RewardXP:       10,
			RewardDiamonds: 1,
		},
		{
			ID:             "answer-25",
			Title:          "Sharp Memory",
			Description:    "Answer 25 questions correctly",
			Trigger:        events.KindQuestionCorrect,
			Target:         25,
			RewardXP:       50,
			RewardDiamonds: 5,
		},
		{
			ID:             "finish-5",
			Title:          "Steady Pace",
			Description:    "Complete 5 review tests",
			Trigger:        events.KindQuizCompleted,
			Target:         5,
			RewardXP:       75,
			RewardDiamonds: 8,
		},
		{
			ID:             "perfect-3",
			Title:          "Flawless",
			Description:    "Finish 3 tests without a single mistake",
			Trigger:        events.KindPerfectQuiz,
			Target:         3,
			RewardXP:       150,
			RewardDiamonds: 15,
		},
		{
			ID:             "earn-500",
			Title:          "Collector",
			Description:    "Earn 500 XP from tests",
			Trigger:        events.KindXPEarned,
			Target:         500,
			RewardXP:       100,
			RewardDiamonds: 10,
		},
	}
}

// DefaultLiveEvents is the seeded live-event set. An event whose pages
// the loaded pack does not populate simply has nothing to review.
func DefaultLiveEvents() []quiz.LiveEvent {
	return []quiz.LiveEvent{
		{
			ID:            "opening-pages",
			Title:         "Opening Pages Review",
			FirstPage:     1,
			LastPage:      5,
			BonusDiamonds: 20,
		},
		{
			ID:            "long-haul",
			Title:         "Long Haul",
			FirstPage:     1,
			LastPage:      30,
			BonusDiamonds: 50,
		},
	}
}

// DefaultAchievements is the seeded achievement set.
func DefaultAchievements() []achievements.Definition {
	return []achievements.Definition{
		{
			ID:          "first-quiz",
			Title:       "First Steps",
			Description: "Complete your first test",
			Trigger:     events.KindQuizCompleted,
			Predicate: func(p *player.State, _ events.Event) bool {
				return p.TotalQuizzesCompleted >= 1
			},
		},
		{
			ID:          "ten-quizzes",
			Title:       "Regular",
			Description: "Complete 10 tests",
			Trigger:     events.KindQuizCompleted,
			Predicate: func(p *player.State, _ events.Event) bool {
				return p.TotalQuizzesCompleted >= 10
			},
		},
		{
			ID:          "perfectionist",
			Title:       "Perfectionist",
			Description: "Finish a test with every answer correct",
			Trigger:     events.KindPerfectQuiz,
		},
		{
			ID:          "hundred-correct",
			Title:       "Century",
			Description: "Answer 100 questions correctly",
			// The lifetime counters are updated before quiz_completed
			// fires, so the unlock lands in the session that crosses 100.
			Trigger: events.KindQuizCompleted,
			Predicate: func(p *player.State, _ events.Event) bool {
				return p.TotalCorrectAnswers >= 100
			},
		},
		{
			ID:          "level-5",
			Title:       "Climber",
			Description: "Reach level 5",
			Trigger:     events.KindLevelUp,
			Predicate: func(_ *player.State, e events.Event) bool {
				lvl, ok := e.MetaInt("new_level")
				return ok && lvl >= 5
			},
		},
		{
			ID:          "level-10",
			Title:       "Summit",
			Description: "Reach level 10",
			Trigger:     events.KindLevelUp,
			Predicate: func(_ *player.State, e events.Event) bool {
				lvl, ok := e.MetaInt("new_level")
				return ok && lvl >= 10
			},
		},
	}
}
