package content

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Pack is an in-memory corpus loaded from a pack file. It implements
// Provider for both primary and distractor window fetches.
type Pack struct {
	name  string
	pages int
	byPag map[int][]Unit
}

// packFile mirrors the on-disk pack format.
type packFile struct {
	Name  string `json:"name"`
	Pages int    `json:"pages"`
	Units []Unit `json:"units"`
}

// LoadPack reads, validates, and indexes a corpus pack file.
func LoadPack(path string) (*Pack, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read pack: %w", err)
	}

	if err := validatePack(raw); err != nil {
		return nil, fmt.Errorf("validate pack %s: %w", path, err)
	}

	var pf packFile
	if err := json.Unmarshal(raw, &pf); err != nil {
		return nil, fmt.Errorf("decode pack: %w", err)
	}
	return NewPack(pf.Name, pf.Pages, pf.Units)
}

// NewPack builds a pack from already-decoded units. Units are grouped by
// page and sorted by ordinal.
func NewPack(name string, pages int, units []Unit) (*Pack, error) {
	if pages < 1 {
		return nil, fmt.Errorf("pack %q: page count %d", name, pages)
	}
	byPage := make(map[int][]Unit)
	for _, u := range units {
		if u.Page < 1 || u.Page > pages {
			return nil, fmt.Errorf("pack %q: unit %s on page %d outside 1..%d", name, u.Ref, u.Page, pages)
		}
		byPage[u.Page] = append(byPage[u.Page], u)
	}
	for p := range byPage {
		sort.Slice(byPage[p], func(i, j int) bool {
			return byPage[p][i].Ordinal < byPage[p][j].Ordinal
		})
	}
	return &Pack{name: name, pages: pages, byPag: byPage}, nil
}

// Name returns the pack's display name.
func (p *Pack) Name() string {
	return p.name
}

// PageCount returns the size of the content space, including pages the
// pack carries no units for.
func (p *Pack) PageCount() int {
	return p.pages
}

// PopulatedPages returns the pages that actually carry units, ascending.
func (p *Pack) PopulatedPages() []int {
	pages := make([]int, 0, len(p.byPag))
	for n := range p.byPag {
		pages = append(pages, n)
	}
	sort.Ints(pages)
	return pages
}

// FetchWindow implements Provider.
func (p *Pack) FetchWindow(_ context.Context, page int) ([]Unit, error) {
	units := p.byPag[page]
	if len(units) == 0 {
		return nil, ErrPageEmpty
	}
	out := make([]Unit, len(units))
	copy(out, units)
	return out, nil
}

// validatePack checks raw pack JSON against the pack schema.
func validatePack(raw []byte) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	// The jsonschema library expects a parsed JSON value, so round-trip the
	// schema definition through encoding/json first.
	defBytes, err := json.Marshal(packSchema)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	var defParsed any
	if err := json.Unmarshal(defBytes, &defParsed); err != nil {
		return fmt.Errorf("parse schema: %w", err)
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource("schema://corpus-pack.json", defParsed); err != nil {
		return fmt.Errorf("add resource: %w", err)
	}
	compiled, err := c.Compile("schema://corpus-pack.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	if err := compiled.Validate(parsed); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}
