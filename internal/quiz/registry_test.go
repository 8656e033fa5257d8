package quiz

import (
	"errors"
	"io"
	"math/rand"
	"testing"

	"github.com/tahfiz/tahfiz/internal/progression"
)

// stubGenerator returns a canned question, a nil result, or an error.
type stubGenerator struct {
	q   *Question
	err error
}

func (g stubGenerator) Generate(GenerateInput) (*Question, error) {
	return g.q, g.err
}

func stubQuestion(typeID string) *Question {
	return NewChoiceQuestion(typeID, "prompt", []string{"a", "b", "c", "d"}, 0)
}

func testRNG() *rand.Rand {
	return rand.New(rand.NewSource(1))
}

func TestEligibleFiltersLevelAndPath(t *testing.T) {
	r := NewRegistry()
	r.Register("easy", stubGenerator{q: stubQuestion("easy")}, false)
	r.Register("deep", stubGenerator{q: stubQuestion("deep")}, false)
	r.Register("gated", stubGenerator{q: stubQuestion("gated")}, false)

	configs := []TypeConfig{
		{ID: "easy", RequiredLevel: 1, RequiredPath: progression.PathRecall},
		{ID: "deep", RequiredLevel: 5, RequiredPath: progression.PathRecall},
		{ID: "gated", RequiredLevel: 1, RequiredPath: progression.PathContext},
		{ID: "orphan", RequiredLevel: 1, RequiredPath: progression.PathRecall},
	}

	got := r.Eligible(2, []progression.PathID{progression.PathRecall}, configs)

	if len(got) != 1 || got[0].Config.ID != "easy" {
		t.Fatalf("Eligible = %+v, want only easy", got)
	}
}

func TestEligibleDropsUnresolvableSilently(t *testing.T) {
	r := NewRegistry()
	configs := []TypeConfig{
		{ID: "ghost", RequiredLevel: 1, RequiredPath: progression.PathRecall},
	}
	if got := r.Eligible(10, []progression.PathID{progression.PathRecall}, configs); len(got) != 0 {
		t.Errorf("Eligible = %+v, want empty", got)
	}
}

func TestGenerateFirstSuccessWins(t *testing.T) {
	// One generator that always fails and one that always succeeds: the
	// succeeding one's question must come back regardless of shuffle order.
	for seed := int64(0); seed < 20; seed++ {
		r := NewRegistry()
		r.SetErrorWriter(io.Discard)
		r.Register("broken", stubGenerator{err: errors.New("boom")}, false)
		r.Register("works", stubGenerator{q: stubQuestion("works")}, false)

		configs := []TypeConfig{
			{ID: "broken", RequiredLevel: 1, RequiredPath: progression.PathRecall},
			{ID: "works", RequiredLevel: 1, RequiredPath: progression.PathRecall},
		}
		cands := r.Eligible(1, []progression.PathID{progression.PathRecall}, configs)

		q, err := r.Generate(GenerateInput{}, cands, rand.New(rand.NewSource(seed)))
		if err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		if q.TypeID != "works" {
			t.Fatalf("seed %d: got %s", seed, q.TypeID)
		}
	}
}

func TestGenerateSkipsDistractorFamiliesWithoutWindow(t *testing.T) {
	r := NewRegistry()
	r.Register("needy", stubGenerator{q: stubQuestion("needy")}, true)
	r.Register("plain", stubGenerator{q: stubQuestion("plain")}, false)

	configs := []TypeConfig{
		{ID: "needy", RequiredLevel: 1, RequiredPath: progression.PathRecall},
		{ID: "plain", RequiredLevel: 1, RequiredPath: progression.PathRecall},
	}
	cands := r.Eligible(1, []progression.PathID{progression.PathRecall}, configs)

	for seed := int64(0); seed < 10; seed++ {
		q, err := r.Generate(GenerateInput{}, cands, rand.New(rand.NewSource(seed)))
		if err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		if q.TypeID != "plain" {
			t.Fatalf("seed %d: distractor-requiring generator ran with empty window", seed)
		}
	}
}

func TestGenerateExhaustion(t *testing.T) {
	r := NewRegistry()
	r.SetErrorWriter(io.Discard)
	r.Register("nothing", stubGenerator{}, false)
	r.Register("broken", stubGenerator{err: errors.New("boom")}, false)

	configs := []TypeConfig{
		{ID: "nothing", RequiredLevel: 1, RequiredPath: progression.PathRecall},
		{ID: "broken", RequiredLevel: 1, RequiredPath: progression.PathRecall},
	}
	cands := r.Eligible(1, []progression.PathID{progression.PathRecall}, configs)

	_, err := r.Generate(GenerateInput{}, cands, testRNG())
	if !errors.Is(err, ErrNoQuestion) {
		t.Errorf("err = %v, want ErrNoQuestion", err)
	}
}

func TestGenerateNoCandidates(t *testing.T) {
	r := NewRegistry()
	_, err := r.Generate(GenerateInput{}, nil, testRNG())
	if !errors.Is(err, ErrNoEligibleTypes) {
		t.Errorf("err = %v, want ErrNoEligibleTypes", err)
	}
}
