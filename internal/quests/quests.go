// Package quests tracks long-lived quest progress driven by the gameplay
// event stream. The tracker never sees quiz internals; it only consumes
// events and exposes claim semantics.
package quests

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/tahfiz/tahfiz/internal/events"
	"github.com/tahfiz/tahfiz/internal/player"
)

// ErrNotClaimable rejects claiming a quest that is not yet complete or was
// already claimed. No state is mutated on rejection.
var ErrNotClaimable = errors.New("quests: quest is not claimable")

// ErrUnknownQuest rejects operations on an unloaded quest ID.
var ErrUnknownQuest = errors.New("quests: unknown quest")

// Definition declares a quest: the event kind that advances it, the target
// value, and the rewards granted on claim.
type Definition struct {
	ID             string      `json:"id"`
	Title          string      `json:"title"`
	Description    string      `json:"description"`
	Trigger        events.Kind `json:"trigger"`
	Target         int         `json:"target"`
	RewardXP       int         `json:"reward_xp"`
	RewardDiamonds int         `json:"reward_diamonds"`
}

// Progress is a player's progress record for one quest. Progress never
// decreases and never exceeds the quest's target; Claimed flips to true at
// most once and never back.
type Progress struct {
	QuestID  string
	Progress int
	Claimed  bool
}

// Update is one row of a batched progress write.
type Update struct {
	QuestID  string
	Progress int
	Claimed  bool
}

// Store persists quest progress. Batched updates cover every quest touched
// by one event in a single call.
type Store interface {
	BatchUpdateProgress(ctx context.Context, playerID string, updates []Update) error
	MarkClaimed(ctx context.Context, playerID, questID string) error
}

// Reward is what a successful claim granted.
type Reward struct {
	XP       int
	Diamonds int
}

// Status pairs a definition with the player's progress, for display.
type Status struct {
	Definition Definition
	Progress   int
	Claimed    bool
}

// Claimable reports whether the quest is complete but not yet claimed.
func (s Status) Claimable() bool {
	return !s.Claimed && s.Progress >= s.Definition.Target
}

// Tracker accumulates quest progress per event. One tracker serves one
// player's loaded quest set.
type Tracker struct {
	playerID string
	defs     map[string]Definition
	progress map[string]*Progress
	store    Store
	errw     io.Writer
}

// NewTracker builds a tracker from loaded definitions and progress rows.
// Quests with no progress row start at zero.
func NewTracker(playerID string, defs []Definition, progress []Progress, store Store) *Tracker {
	t := &Tracker{
		playerID: playerID,
		defs:     make(map[string]Definition, len(defs)),
		progress: make(map[string]*Progress, len(defs)),
		store:    store,
		errw:     os.Stderr,
	}
	for _, d := range defs {
		t.defs[d.ID] = d
		t.progress[d.ID] = &Progress{QuestID: d.ID}
	}
	for _, p := range progress {
		if _, ok := t.defs[p.QuestID]; ok {
			row := p
			t.progress[p.QuestID] = &row
		}
	}
	return t
}

// SetErrorWriter redirects persistence diagnostics, mainly for tests.
func (t *Tracker) SetErrorWriter(w io.Writer) {
	t.errw = w
}

// Attach subscribes the tracker to every event kind referenced by a loaded
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

// handle advances every not-yet-claimed quest triggered by the event,
// clamped to its target, and persists the touched rows as one batch.
func (t *Tracker) handle(e events.Event) {
	value := e.Value()

	var updates []Update
	for id, d := range t.defs {
		row := t.progress[id]
		if row.Claimed || d.Trigger != e.Kind || row.Progress >= d.Target {
			continue
		}
		row.Progress += value
		if row.Progress > d.Target {
			row.Progress = d.Target
		}
		updates = append(updates, Update{QuestID: id, Progress: row.Progress})
	}
	if len(updates) == 0 {
		return
	}
	sort.Slice(updates, func(i, j int) bool { return updates[i].QuestID < updates[j].QuestID })

	if t.store != nil {
		if err := t.store.BatchUpdateProgress(context.Background(), t.playerID, updates); err != nil {
			fmt.Fprintf(t.errw, "quests: batch update for %s: %v\n", e.Kind, err)
		}
	}
}

// Claim marks a completed quest claimed and grants its rewards to the
// player state. Claiming an incomplete or already-claimed quest fails with
// ErrNotClaimable and mutates nothing.
func (t *Tracker) Claim(ctx context.Context, questID string, p *player.State) (*Reward, error) {
	d, ok := t.defs[questID]
	if !ok {
		return nil, ErrUnknownQuest
	}
	row := t.progress[questID]
	if row.Claimed || row.Progress < d.Target {
		return nil, ErrNotClaimable
	}

	if t.store != nil {
		if err := t.store.MarkClaimed(ctx, t.playerID, questID); err != nil {
			return nil, fmt.Errorf("mark claimed: %w", err)
		}
	}

	row.Claimed = true
	p.GrantXP(d.RewardXP)
	p.Diamonds += d.RewardDiamonds

	return &Reward{XP: d.RewardXP, Diamonds: d.RewardDiamonds}, nil
}

// Statuses returns every loaded quest with its progress, sorted by ID for
// stable display.
func (t *Tracker) Statuses() []Status {
	out := make([]Status, 0, len(t.defs))
	for id, d := range t.defs {
		row := t.progress[id]
		out = append(out, Status{Definition: d, Progress: row.Progress, Claimed: row.Claimed})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Definition.ID < out[j].Definition.ID })
	return out
}

// Claimables returns the quests ready to claim, for notification surfaces.
func (t *Tracker) Claimables() []Status {
	var out []Status
	for _, s := range t.Statuses() {
		if s.Claimable() {
			out = append(out, s)
		}
	}
	return out
}
