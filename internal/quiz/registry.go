package quiz

import (
	"fmt"
	"io"
	"math/rand"
	"os"

	"github.com/tahfiz/tahfiz/internal/progression"
)

// registration pairs a generator with its capability flags. Whether a
// generator needs a distractor window is declared here at registration
// time, never inferred from naming.
type registration struct {
	gen                 Generator
	requiresDistractors bool
}

// Registry maps question-type identifiers to generator capabilities. It is
// populated once at initialization; lookups at play time never probe
// unregistered IDs dynamically.
type Registry struct {
	regs map[string]registration
	errw io.Writer
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		regs: make(map[string]registration),
		errw: os.Stderr,
	}
}

// SetErrorWriter redirects generator-failure diagnostics, mainly for tests.
func (r *Registry) SetErrorWriter(w io.Writer) {
	r.errw = w
}

// Register binds a generator to a question-type ID.
func (r *Registry) Register(id string, gen Generator, requiresDistractors bool) {
	r.regs[id] = registration{gen: gen, requiresDistractors: requiresDistractors}
}

// Candidate is an eligible question type resolved to its generator.
type Candidate struct {
	Config              TypeConfig
	gen                 Generator
	requiresDistractors bool
}

// Eligible filters configs to those the player's level and paths allow,
// resolved to registered generators. Configs with no registered generator
// are dropped silently; that is a content-authoring gap, not a runtime
// error.
func (r *Registry) Eligible(level int, paths []progression.PathID, configs []TypeConfig) []Candidate {
	pathSet := make(map[progression.PathID]bool, len(paths))
	for _, p := range paths {
		pathSet[p] = true
	}

	var out []Candidate
	for _, cfg := range configs {
		if cfg.RequiredLevel > level || !pathSet[cfg.RequiredPath] {
			continue
		}
		reg, ok := r.regs[cfg.ID]
		if !ok {
			continue
		}
		out = append(out, Candidate{Config: cfg, gen: reg.gen, requiresDistractors: reg.requiresDistractors})
	}
	return out
}

// Generate tries the candidates in uniformly shuffled order and returns
// the first question produced. A failing generator is skipped, not fatal;
// candidates needing a distractor window are skipped when none is
// populated. Exhausting every candidate yields ErrNoQuestion.
func (r *Registry) Generate(in GenerateInput, candidates []Candidate, rng *rand.Rand) (*Question, error) {
	if len(candidates) == 0 {
		return nil, ErrNoEligibleTypes
	}

	order := rng.Perm(len(candidates))
	for _, idx := range order {
		c := candidates[idx]
		if c.requiresDistractors && len(in.Distractors) == 0 {
			continue
		}

		attempt := in
		attempt.Config = c.Config
		q, err := c.gen.Generate(attempt)
		if err != nil {
			fmt.Fprintf(r.errw, "quiz: generator %s failed: %v\n", c.Config.ID, err)
			continue
		}
		if q == nil {
			continue
		}
		return q, nil
	}
	return nil, ErrNoQuestion
}
