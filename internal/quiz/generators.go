package quiz

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/tahfiz/tahfiz/internal/content"
)

// Question type identifiers. Each pairs with a generator registration in
// DefaultRegistry and a TypeConfig row from the config provider.
const (
	TypeFirstWord   = "first_word"
	TypeMissingWord = "missing_word"
	TypeNextUnit    = "next_unit"
	TypeUnitOrder   = "unit_order"
	TypeIntruder    = "intruder"
)

// DefaultRegistry registers the built-in generator families.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(TypeFirstWord, firstWordGenerator{}, false)
	r.Register(TypeMissingWord, missingWordGenerator{}, false)
	r.Register(TypeNextUnit, nextUnitGenerator{}, false)
	r.Register(TypeUnitOrder, unitOrderGenerator{}, false)
	r.Register(TypeIntruder, intruderGenerator{}, true)
	return r
}

// optionCount applies the default option count when the config omits it.
func optionCount(cfg TypeConfig) int {
	if cfg.OptionCount >= 2 {
		return cfg.OptionCount
	}
	return 4
}

// firstWordGenerator asks which word a given unit opens with. The wrong
// options are opening words of other units in the window.
type firstWordGenerator struct{}

func (firstWordGenerator) Generate(in GenerateInput) (*Question, error) {
	n := optionCount(in.Config)

	firstWords := make(map[string]bool)
	for _, u := range in.Window {
		if w := firstWord(u.Text); w != "" {
			firstWords[w] = true
		}
	}
	if len(firstWords) < n {
		return nil, nil // window too uniform for this family
	}

	target := in.Window[in.Rand.Intn(len(in.Window))]
	correct := firstWord(target.Text)
	if correct == "" {
		return nil, nil
	}

	var wrong []string
	for w := range firstWords {
		if w != correct {
			wrong = append(wrong, w)
		}
	}
	options, correctIdx := assembleOptions(in.Rand, correct, wrong, n)
	if options == nil {
		return nil, nil
	}

	prompt := fmt.Sprintf("Which word opens unit %s?", target.Ref)
	return NewChoiceQuestion(TypeFirstWord, prompt, options, correctIdx), nil
}

// missingWordGenerator blanks one word of a unit and asks for it.
type missingWordGenerator struct{}

func (missingWordGenerator) Generate(in GenerateInput) (*Question, error) {
	n := optionCount(in.Config)

	// Prefer units long enough that the blank is not trivially guessable.
	var candidates []content.Unit
	for _, u := range in.Window {
		if len(strings.Fields(u.Text)) >= 4 {
			candidates = append(candidates, u)
		}
	}
	if len(candidates) == 0 {
		return nil, nil
	}
	target := candidates[in.Rand.Intn(len(candidates))]
	fields := strings.Fields(target.Text)

	// Blank anywhere but the opening word; first_word already covers that.
	hole := 1 + in.Rand.Intn(len(fields)-1)
	correct := fields[hole]

	blanked := make([]string, len(fields))
	copy(blanked, fields)
	blanked[hole] = "____"

	wrongSet := make(map[string]bool)
	for _, u := range in.Window {
		for _, w := range strings.Fields(u.Text) {
			if w != correct {
				wrongSet[w] = true
			}
		}
	}
	var wrong []string
	for w := range wrongSet {
		wrong = append(wrong, w)
	}
	options, correctIdx := assembleOptions(in.Rand, correct, wrong, n)
	if options == nil {
		return nil, nil
	}

	prompt := fmt.Sprintf("Complete unit %s:\n\n%s", target.Ref, strings.Join(blanked, " "))
	return NewChoiceQuestion(TypeMissingWord, prompt, options, correctIdx), nil
}

// nextUnitGenerator asks which unit directly follows a shown one.
type nextUnitGenerator struct{}

func (nextUnitGenerator) Generate(in GenerateInput) (*Question, error) {
	n := optionCount(in.Config)
	if len(in.Window) < n+1 {
		return nil, nil
	}

	i := in.Rand.Intn(len(in.Window) - 1)
	shown := in.Window[i]
	correct := in.Window[i+1].Text

	var wrong []string
	for j, u := range in.Window {
		if j != i && j != i+1 && u.Text != correct {
			wrong = append(wrong, u.Text)
		}
	}
	options, correctIdx := assembleOptions(in.Rand, correct, wrong, n)
	if options == nil {
		return nil, nil
	}

	prompt := fmt.Sprintf("What comes directly after:\n\n%s", shown.Text)
	return NewChoiceQuestion(TypeNextUnit, prompt, options, correctIdx), nil
}

// unitOrderGenerator shows several units from one page and asks which
// appears first.
type unitOrderGenerator struct{}

func (unitOrderGenerator) Generate(in GenerateInput) (*Question, error) {
	n := optionCount(in.Config)

	byPage := make(map[int][]content.Unit)
	for _, u := range in.Window {
		byPage[u.Page] = append(byPage[u.Page], u)
	}
	var pages []int
	for p, units := range byPage {
		if len(units) >= n {
			pages = append(pages, p)
		}
	}
	if len(pages) == 0 {
		return nil, nil
	}
	page := pages[in.Rand.Intn(len(pages))]
	units := byPage[page]

	picked := make([]content.Unit, len(units))
	copy(picked, units)
	in.Rand.Shuffle(len(picked), func(i, j int) { picked[i], picked[j] = picked[j], picked[i] })
	picked = picked[:n]

	first := picked[0]
	for _, u := range picked[1:] {
		if u.Ordinal < first.Ordinal {
			first = u
		}
	}

	options := make([]string, n)
	correctIdx := 0
	for i, u := range picked {
		options[i] = u.Text
		if u.Ref == first.Ref {
			correctIdx = i
		}
	}

	prompt := fmt.Sprintf("Which of these appears first on page %d?", page)
	return NewChoiceQuestion(TypeUnitOrder, prompt, options, correctIdx), nil
}

// intruderGenerator mixes one unit from the distractor window in with
// units from the primary window and asks which does not belong.
type intruderGenerator struct{}

func (intruderGenerator) Generate(in GenerateInput) (*Question, error) {
	n := optionCount(in.Config)
	if len(in.Distractors) == 0 || len(in.Window) < n-1 {
		return nil, nil
	}

	windowTexts := make(map[string]bool, len(in.Window))
	for _, u := range in.Window {
		windowTexts[u.Text] = true
	}

	// The intruder must not coincide with any window unit's text.
	var intruders []content.Unit
	for _, u := range in.Distractors {
		if !windowTexts[u.Text] {
			intruders = append(intruders, u)
		}
	}
	if len(intruders) == 0 {
		return nil, nil
	}
	intruder := intruders[in.Rand.Intn(len(intruders))]

	var wrong []string
	for t := range windowTexts {
		wrong = append(wrong, t)
	}
	options, correctIdx := assembleOptions(in.Rand, intruder.Text, wrong, n)
	if options == nil {
		return nil, nil
	}

	prompt := "Which of these does not belong to this passage?"
	return NewChoiceQuestion(TypeIntruder, prompt, options, correctIdx), nil
}

// firstWord returns the opening word of a unit's text.
func firstWord(text string) string {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// assembleOptions builds a shuffled option list of size n from the correct
// answer plus a sample of distinct wrong answers. Returns (nil, 0) when
// the wrong pool is too small.
func assembleOptions(rng *rand.Rand, correct string, wrong []string, n int) ([]string, int) {
	distinct := wrong[:0:0]
	seen := map[string]bool{correct: true}
	for _, w := range wrong {
		if !seen[w] {
			seen[w] = true
			distinct = append(distinct, w)
		}
	}
	if len(distinct) < n-1 {
		return nil, 0
	}

	rng.Shuffle(len(distinct), func(i, j int) { distinct[i], distinct[j] = distinct[j], distinct[i] })
	options := append([]string{correct}, distinct[:n-1]...)
	rng.Shuffle(len(options), func(i, j int) { options[i], options[j] = options[j], options[i] })

	for i, o := range options {
		if o == correct {
			return options, i
		}
	}
	return nil, 0 // unreachable
}
