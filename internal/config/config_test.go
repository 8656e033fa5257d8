package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tahfiz/tahfiz/internal/events"
	"github.com/tahfiz/tahfiz/internal/player"
	"github.com/tahfiz/tahfiz/internal/progression"
	"github.com/tahfiz/tahfiz/internal/quiz"
)

func TestDefaultTablesAreOrdered(t *testing.T) {
	tables := DefaultTables()
	prev := -1
	for _, th := range tables.Thresholds {
		if th.XP <= prev {
			t.Fatalf("threshold for level %d not strictly increasing", th.Level)
		}
		prev = th.XP
	}
}

func TestDefaultTypeConfigsResolve(t *testing.T) {
	r := quiz.DefaultRegistry()
	calc := progression.New(DefaultTables())
	configs := DefaultTypeConfigs()

	// At max level with every path open, every seeded type must resolve.
	cands := r.Eligible(10, calc.AvailablePaths(10), configs)
	if len(cands) != len(configs) {
		t.Errorf("eligible = %d of %d seeded types", len(cands), len(configs))
	}
}

func TestDefaultQuestTargetsPositive(t *testing.T) {
	for _, q := range DefaultQuests() {
		if q.Target < 1 {
			t.Errorf("quest %s: target %d", q.ID, q.Target)
		}
		if q.Trigger == "" {
			t.Errorf("quest %s: no trigger", q.ID)
		}
	}
}

func TestCenturyUnlocksInCrossingSession(t *testing.T) {
	defs := DefaultAchievements()
	idx := -1
	for i := range defs {
		if defs[i].ID == "hundred-correct" {
			idx = i
		}
	}
	if idx < 0 {
		t.Fatal("hundred-correct not seeded")
	}

	// Finalize bumps the lifetime counters before quiz_completed fires,
	// so triggering there unlocks in the session that crosses 100. A
	// per-answer trigger would land one session late.
	if defs[idx].Trigger != events.KindQuizCompleted {
		t.Errorf("trigger = %s, want %s", defs[idx].Trigger, events.KindQuizCompleted)
	}

	p := &player.State{TotalCorrectAnswers: 99}
	if defs[idx].Predicate(p, events.Event{}) {
		t.Error("unlocked below 100 correct answers")
	}
	p.TotalCorrectAnswers = 100
	if !defs[idx].Predicate(p, events.Event{}) {
		t.Error("did not unlock at 100 correct answers")
	}
}

func TestDefaultLiveEventsValid(t *testing.T) {
	seen := map[string]bool{}
	for _, ev := range DefaultLiveEvents() {
		if ev.ID == "" || seen[ev.ID] {
			t.Errorf("event %q: missing or duplicate ID", ev.ID)
		}
		seen[ev.ID] = true
		if ev.FirstPage < 1 || ev.LastPage < ev.FirstPage {
			t.Errorf("event %s: page scope %d..%d", ev.ID, ev.FirstPage, ev.LastPage)
		}
		if ev.BonusDiamonds <= 0 {
			t.Errorf("event %s: bonus %d", ev.ID, ev.BonusDiamonds)
		}
	}
}

func writeTables(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tables.json")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadTablesOverride(t *testing.T) {
	path := writeTables(t, `{
		"levels": [
			{"level": 1, "xp": 0},
			{"level": 2, "xp": 50, "reward_diamonds": 4}
		],
		"question_caps": [
			{"min_level": 1, "max_questions": 3}
		]
	}`)

	tables, err := LoadTables(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(tables.Thresholds) != 2 {
		t.Fatalf("thresholds = %d, want 2", len(tables.Thresholds))
	}
	if tables.Thresholds[1].RewardDiamonds != 4 {
		t.Errorf("reward = %d, want 4", tables.Thresholds[1].RewardDiamonds)
	}

	// Unlocks were absent from the file and keep their defaults.
	if len(tables.Unlocks) != len(DefaultTables().Unlocks) {
		t.Errorf("unlocks = %d, want defaults", len(tables.Unlocks))
	}

	calc := progression.New(tables)
	if got := calc.MaxQuestionsForLevel(1); got != 3 {
		t.Errorf("cap = %d, want 3", got)
	}
	if got := calc.LevelFor(50); got != 2 {
		t.Errorf("level = %d, want 2", got)
	}
}

func TestLoadTablesRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing levels", `{"question_caps": []}`},
		{"unknown field", `{"levels": [{"level": 1, "xp": 0}], "bogus": 1}`},
		{"negative xp", `{"levels": [{"level": 1, "xp": -5}]}`},
		{"not json", `{{{`},
		{"non-increasing", `{"levels": [{"level": 1, "xp": 0}, {"level": 2, "xp": 0}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadTables(writeTables(t, tt.body)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadTablesMissingFile(t *testing.T) {
	_, err := LoadTables(filepath.Join(t.TempDir(), "absent.json"))
	if err == nil || !strings.Contains(err.Error(), "read tables") {
		t.Errorf("err = %v", err)
	}
}
