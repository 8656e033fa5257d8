// Package achievements evaluates one-shot unlock conditions against the
// player record as gameplay events arrive.
package achievements

import (
	"sort"

	"github.com/tahfiz/tahfiz/internal/events"
	"github.com/tahfiz/tahfiz/internal/player"
)

// Definition declares an achievement. Predicate inspects the player record
// and the triggering event; it must be side-effect free, since it can run
// many times before the condition first holds.
type Definition struct {
	ID          string
	Title       string
	Description string
	Trigger     events.Kind
	Predicate   func(p *player.State, e events.Event) bool
}

// Tracker watches the event stream for one player and unlocks achievements
// at most once each. Unlocks accumulate until drained with TakeUnlocked.
type Tracker struct {
	player   *player.State
	defs     map[string]Definition
	unlocked []Definition
}

// NewTracker binds definitions to a player record.
func NewTracker(p *player.State, defs []Definition) *Tracker {
	t := &Tracker{
		player: p,
		defs:   make(map[string]Definition, len(defs)),
	}
	for _, d := range defs {
		t.defs[d.ID] = d
	}
	return t
}

// Attach subscribes the tracker to every event kind referenced by a
// definition.
func (t *Tracker) Attach(bus *events.Bus) {
	kinds := make(map[events.Kind]bool)
	for _, d := range t.defs {
		kinds[d.Trigger] = true
	}
	for kind := range kinds {
		bus.Subscribe(kind, t.handle)
	}
}

func (t *Tracker) handle(e events.Event) {
	var fired []Definition
	for _, d := range t.defs {
		if d.Trigger != e.Kind || t.player.HasAchievement(d.ID) {
			continue
		}
		if d.Predicate != nil && !d.Predicate(t.player, e) {
			continue
		}
		if t.player.UnlockAchievement(d.ID) {
			fired = append(fired, d)
		}
	}
	sort.Slice(fired, func(i, j int) bool { return fired[i].ID < fired[j].ID })
	t.unlocked = append(t.unlocked, fired...)
}

// TakeUnlocked drains and returns the achievements unlocked since the last
// call, in unlock order. Callers use this to surface notifications.
func (t *Tracker) TakeUnlocked() []Definition {
	out := t.unlocked
	t.unlocked = nil
	return out
}

// Definitions returns every loaded definition sorted by ID.
func (t *Tracker) Definitions() []Definition {
	out := make([]Definition, 0, len(t.defs))
	for _, d := range t.defs {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
