package progression

import "testing"

func testTables() Tables {
	return Tables{
		Thresholds: []LevelThreshold{
			{Level: 1, XP: 0, RewardDiamonds: 0},
			{Level: 2, XP: 100, RewardDiamonds: 10},
			{Level: 3, XP: 250, RewardDiamonds: 15},
			{Level: 4, XP: 500, RewardDiamonds: 20},
			{Level: 5, XP: 850, RewardDiamonds: 30},
		},
		Unlocks: []PathUnlock{
			{Path: PathRecall, MinLevel: 1},
			{Path: PathSequence, MinLevel: 2},
			{Path: PathContext, MinLevel: 4},
		},
		QuestionCaps: []QuestionCap{
			{MinLevel: 1, MaxQuestions: 10},
			{MinLevel: 3, MaxQuestions: 15},
			{MinLevel: 5, MaxQuestions: 20},
		},
		Rules: DefaultRules(),
	}
}

func TestLevelFor(t *testing.T) {
	calc := New(testTables())

	tests := []struct {
		xp   int
		want int
	}{
		{0, 1},
		{99, 1},
		{100, 2},
		{249, 2},
		{250, 3},
		{500, 4},
		{849, 4},
		{850, 5},
		{100000, 5},
	}
	for _, tt := range tests {
		if got := calc.LevelFor(tt.xp); got != tt.want {
			t.Errorf("LevelFor(%d) = %d, want %d", tt.xp, got, tt.want)
		}
	}
}

func TestLevelForMonotonic(t *testing.T) {
	calc := New(testTables())
	prev := 0
	for xp := 0; xp <= 1000; xp += 7 {
		level := calc.LevelFor(xp)
		if level < prev {
			t.Fatalf("LevelFor(%d) = %d, below previous level %d", xp, level, prev)
		}
		prev = level
	}
}

func TestCheckLevelUp(t *testing.T) {
	calc := New(testTables())

	t.Run("no self level-up", func(t *testing.T) {
		for _, xp := range []int{0, 50, 100, 250, 850} {
			if up := calc.CheckLevelUp(xp, xp); up != nil {
				t.Errorf("CheckLevelUp(%d, %d) = %+v, want nil", xp, xp, up)
			}
		}
	})

	t.Run("single threshold", func(t *testing.T) {
		up := calc.CheckLevelUp(90, 110)
		if up == nil {
			t.Fatal("expected level-up")
		}
		if up.NewLevel != 2 || up.RewardDiamonds != 10 {
			t.Errorf("got %+v, want level 2 reward 10", up)
		}
	})

	t.Run("same band", func(t *testing.T) {
		if up := calc.CheckLevelUp(100, 249); up != nil {
			t.Errorf("got %+v, want nil", up)
		}
	})

	t.Run("multiple thresholds reports final level only", func(t *testing.T) {
		up := calc.CheckLevelUp(0, 600)
		if up == nil {
			t.Fatal("expected level-up")
		}
		if up.NewLevel != 4 || up.RewardDiamonds != 20 {
			t.Errorf("got %+v, want level 4 reward 20", up)
		}
	})
}

func TestAvailablePaths(t *testing.T) {
	calc := New(testTables())

	tests := []struct {
		level int
		want  []PathID
	}{
		{1, []PathID{PathRecall}},
		{2, []PathID{PathRecall, PathSequence}},
		{3, []PathID{PathRecall, PathSequence}},
		{4, []PathID{PathRecall, PathSequence, PathContext}},
	}
	for _, tt := range tests {
		got := calc.AvailablePaths(tt.level)
		if len(got) != len(tt.want) {
			t.Errorf("AvailablePaths(%d) = %v, want %v", tt.level, got, tt.want)
			continue
		}
		for i := range tt.want {
			if got[i] != tt.want[i] {
				t.Errorf("AvailablePaths(%d)[%d] = %s, want %s", tt.level, i, got[i], tt.want[i])
			}
		}
	}
}

func TestNextLevelXP(t *testing.T) {
	calc := New(testTables())

	tests := []struct {
		xp     int
		want   int
		wantOK bool
	}{
		{0, 100, true},
		{99, 100, true},
		{100, 250, true},
		{849, 850, true},
		{850, 0, false},
		{5000, 0, false},
	}
	for _, tt := range tests {
		got, ok := calc.NextLevelXP(tt.xp)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("NextLevelXP(%d) = %d,%v, want %d,%v", tt.xp, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestMaxQuestionsForLevel(t *testing.T) {
	calc := New(testTables())

	tests := []struct {
		level int
		want  int
	}{
		{1, 10},
		{2, 10},
		{3, 15},
		{4, 15},
		{5, 20},
		{9, 20},
	}
	for _, tt := range tests {
		if got := calc.MaxQuestionsForLevel(tt.level); got != tt.want {
			t.Errorf("MaxQuestionsForLevel(%d) = %d, want %d", tt.level, got, tt.want)
		}
	}
}

func TestDefaultRules(t *testing.T) {
	r := DefaultRules()
	if r.XPPerCorrectAnswer != 5 {
		t.Errorf("XPPerCorrectAnswer = %d, want 5", r.XPPerCorrectAnswer)
	}
	if r.XPBonusAllCorrect != 50 {
		t.Errorf("XPBonusAllCorrect = %d, want 50", r.XPBonusAllCorrect)
	}
	if r.DefaultQuestionCount != 10 {
		t.Errorf("DefaultQuestionCount = %d, want 10", r.DefaultQuestionCount)
	}
}
