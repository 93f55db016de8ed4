package progress

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-platformer/internal/ability"
	"github.com/vovakirdan/tui-platformer/internal/unlock"
)

// Registry is the registry surface the tracker needs.
type Registry interface {
	Restore(ids []ability.ID) int
	Subscribe(fn ability.Listener) (unsubscribe func())
	SubscribeRevoke(fn ability.Listener) (unsubscribe func())
}

// Conditions is the dispatcher surface the tracker needs.
type Conditions interface {
	Entries() []unlock.Entry
	MarkSatisfied(key string, id ability.ID) bool
	OnConditionMet(fn func(key string)) (unsubscribe func())
}

// Restore loads the profile's snapshot into the registry and dispatcher.
// Nothing is notified. Call it before the dispatcher's initial sweep.
func Restore(ctx context.Context, store Store, profileID string, reg Registry, conds Conditions) (Snapshot, error) {
	snap, err := store.Load(ctx, profileID)
	if err != nil {
		return Snapshot{}, fmt.Errorf("progress: restore %s: %w", profileID, err)
	}
	reg.Restore(snap.Unlocked)
	for _, c := range snap.Conditions {
		conds.MarkSatisfied(c.Key, c.Ability)
	}
	return snap, nil
}

// Tracker writes unlocks, revokes and satisfied conditions to a Store as
// they happen. Write failures are logged; the first one is kept for Err.
type Tracker struct {
	ctx       context.Context
	store     Store
	profileID string
	conds     Conditions
	logger    *log.Logger

	saved  map[unlock.Condition]bool
	err    error
	unsubs []func()
}

// TrackerOption configures a Tracker.
type TrackerOption func(*Tracker)

// WithLogger sets the tracker logger.
func WithLogger(l *log.Logger) TrackerOption {
	return func(t *Tracker) {
		if l != nil {
			t.logger = l
		}
	}
}

// Track subscribes a tracker to reg and conds. ctx bounds every write the
// tracker makes; it should live as long as the player.
func Track(ctx context.Context, store Store, profileID string, reg Registry, conds Conditions, opts ...TrackerOption) *Tracker {
	t := &Tracker{
		ctx:       ctx,
		store:     store,
		profileID: profileID,
		conds:     conds,
		logger:    log.New(io.Discard),
		saved:     make(map[unlock.Condition]bool),
	}
	for _, opt := range opts {
		opt(t)
	}

	// Conditions restored from the store are already saved.
	for _, e := range conds.Entries() {
		if e.Satisfied {
			t.saved[unlock.Condition{Key: e.Key, Ability: e.Ability}] = true
		}
	}

	t.unsubs = append(t.unsubs,
		reg.Subscribe(t.onUnlock),
		reg.SubscribeRevoke(t.onRevoke),
		conds.OnConditionMet(func(string) { t.Sync() }),
	)
	return t
}

func (t *Tracker) onUnlock(def ability.Definition) {
	if err := t.store.SaveUnlock(t.ctx, t.profileID, def.ID); err != nil {
		t.fail("save unlock", def.ID.String(), err)
	}
	t.Sync()
}

func (t *Tracker) onRevoke(def ability.Definition) {
	if err := t.store.DeleteUnlock(t.ctx, t.profileID, def.ID); err != nil {
		t.fail("delete unlock", def.ID.String(), err)
	}
}

// Sync saves every satisfied condition not written yet. Entries become
// satisfied after the unlock they grant is announced, so the tracker also
// calls it on condition signals and the owner calls it after sweeps.
func (t *Tracker) Sync() {
	for _, e := range t.conds.Entries() {
		c := unlock.Condition{Key: e.Key, Ability: e.Ability}
		if !e.Satisfied || t.saved[c] {
			continue
		}
		if err := t.store.SaveCondition(t.ctx, t.profileID, c); err != nil {
			t.fail("save condition", c.Key, err)
			continue
		}
		t.saved[c] = true
	}
}

func (t *Tracker) fail(op, what string, err error) {
	t.logger.Error("progress write failed", "op", op, "profile", t.profileID, "item", what, "err", err)
	if t.err == nil {
		t.err = fmt.Errorf("progress: %s %s: %w", op, what, err)
	}
}

// Err returns the first write error, if any.
func (t *Tracker) Err() error { return t.err }

// Close stops tracking.
func (t *Tracker) Close() {
	for _, u := range t.unsubs {
		u()
	}
	t.unsubs = nil
}
