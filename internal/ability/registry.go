package ability

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-platformer/internal/observe"
)

// Listener receives a definition when an ability is unlocked or revoked.
type Listener func(Definition)

type subscription struct {
	id int
	fn Listener
}

// Registry tracks the abilities a single player has unlocked.
//
// A Registry belongs to one update loop and is not safe for concurrent use.
// The Catalog it wraps is immutable and may be shared.
type Registry struct {
	catalog  *Catalog
	unlocked map[ID]struct{}

	unlockSubs []subscription
	revokeSubs []subscription
	nextSubID  int

	// Unlock notifications raised while listeners are running are queued so
	// every listener sees events in the order they happened.
	pending   []Definition
	notifying bool

	logger  *log.Logger
	metrics *observe.Metrics
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used for unlock and lookup diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithMetrics records unlocks and revokes on m.
func WithMetrics(m *observe.Metrics) Option {
	return func(r *Registry) {
		r.metrics = m
	}
}

// NewRegistry creates a registry over catalog and unlocks every starting
// ability. Starting abilities do not produce notifications.
func NewRegistry(catalog *Catalog, opts ...Option) *Registry {
	r := &Registry{
		catalog:  catalog,
		unlocked: make(map[ID]struct{}),
		logger:   log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.unlockStarting()
	return r
}

// Load replaces the catalog with one built from defs and resets the
// unlocked set to the starting abilities. Subscriptions are kept.
// On error the registry is left unchanged.
func (r *Registry) Load(defs []Definition) error {
	catalog, err := NewCatalog(defs)
	if err != nil {
		return err
	}
	r.catalog = catalog
	r.unlocked = make(map[ID]struct{})
	r.unlockStarting()
	return nil
}

func (r *Registry) unlockStarting() {
	for _, d := range r.catalog.defs {
		if d.Starting {
			r.unlocked[d.ID] = struct{}{}
			r.logger.Debug("starting ability", "ability", d.ID, "name", d.Name)
		}
	}
}

// Catalog returns the catalog the registry was built from.
func (r *Registry) Catalog() *Catalog {
	return r.catalog
}

// Definition returns the catalog entry for id.
func (r *Registry) Definition(id ID) (Definition, bool) {
	return r.catalog.Get(id)
}

// Has reports whether id is unlocked.
func (r *Registry) Has(id ID) bool {
	_, ok := r.unlocked[id]
	return ok
}

// CanUnlock reports whether id is known, still locked, and has every
// prerequisite unlocked.
func (r *Registry) CanUnlock(id ID) bool {
	if !r.catalog.Contains(id) || r.Has(id) {
		return false
	}
	for _, p := range r.catalog.prerequisites(id) {
		if !r.Has(p) {
			return false
		}
	}
	return true
}

// Unlock grants id without checking prerequisites. It is the administrative
// path used by tooling and by callers that already checked CanUnlock.
//
// Listeners are notified in subscription order before Unlock returns. If
// Unlock is called from inside a listener, the new notification is queued
// behind the current one and still delivered before the outermost Unlock
// returns.
func (r *Registry) Unlock(id ID) (Outcome, error) {
	def, ok := r.catalog.Get(id)
	if !ok {
		r.logger.Warn("unlock of unknown ability", "ability", id)
		return Unknown, fmt.Errorf("ability: unlock %s: %w", id, ErrUnknownAbility)
	}
	if r.Has(id) {
		return AlreadyUnlocked, nil
	}

	r.unlocked[id] = struct{}{}
	r.logger.Info("ability unlocked", "ability", id, "name", def.Name)
	r.metrics.RecordUnlock(context.Background(), id.String())

	r.pending = append(r.pending, def)
	r.drain()
	return Granted, nil
}

// TryUnlock is the gated unlock: it grants id only when CanUnlock holds.
func (r *Registry) TryUnlock(id ID) (Outcome, error) {
	if !r.catalog.Contains(id) {
		return r.Unlock(id)
	}
	if r.Has(id) {
		return AlreadyUnlocked, nil
	}
	if !r.CanUnlock(id) {
		r.logger.Debug("unlock blocked by prerequisites", "ability", id)
		return Blocked, nil
	}
	return r.Unlock(id)
}

// Revoke removes id from the unlocked set. It exists for tooling and tests;
// gameplay never revokes. Abilities that depend on id stay unlocked.
func (r *Registry) Revoke(id ID) error {
	def, ok := r.catalog.Get(id)
	if !ok {
		return fmt.Errorf("ability: revoke %s: %w", id, ErrUnknownAbility)
	}
	if !r.Has(id) {
		return nil
	}

	delete(r.unlocked, id)
	r.logger.Info("ability revoked", "ability", id)
	r.metrics.RecordRevoke(context.Background(), id.String())

	for _, s := range append([]subscription(nil), r.revokeSubs...) {
		s.fn(def)
	}
	return nil
}

// Restore marks ids as unlocked without notifying anyone, for loading saved
// progress. Unknown ids are skipped. It returns how many ids were newly set.
func (r *Registry) Restore(ids []ID) int {
	n := 0
	for _, id := range ids {
		if !r.catalog.Contains(id) {
			r.logger.Warn("skipping unknown saved ability", "ability", id)
			continue
		}
		if r.Has(id) {
			continue
		}
		r.unlocked[id] = struct{}{}
		n++
	}
	return n
}

// Use validates that id can be activated and returns its definition.
func (r *Registry) Use(id ID) (Definition, error) {
	def, ok := r.catalog.Get(id)
	if !ok {
		return Definition{}, fmt.Errorf("ability: use %s: %w", id, ErrUnknownAbility)
	}
	if !r.Has(id) {
		return def, fmt.Errorf("ability: use %s: %w", id, ErrLocked)
	}
	if def.Passive {
		r.logger.Warn("passive ability cannot be used directly", "ability", id)
		return def, fmt.Errorf("ability: use %s: %w", id, ErrPassive)
	}
	return def, nil
}

// Unlocked returns the unlocked abilities in catalog order.
func (r *Registry) Unlocked() []Definition {
	return r.filter(func(d Definition) bool { return r.Has(d.ID) })
}

// Locked returns the abilities not yet unlocked, in catalog order.
func (r *Registry) Locked() []Definition {
	return r.filter(func(d Definition) bool { return !r.Has(d.ID) })
}

// Unlockable returns the locked abilities whose prerequisites are all met.
func (r *Registry) Unlockable() []Definition {
	return r.filter(func(d Definition) bool { return r.CanUnlock(d.ID) })
}

// UnlockedIDs returns a snapshot of the unlocked IDs in catalog order.
func (r *Registry) UnlockedIDs() []ID {
	ids := make([]ID, 0, len(r.unlocked))
	for _, d := range r.catalog.defs {
		if r.Has(d.ID) {
			ids = append(ids, d.ID)
		}
	}
	return ids
}

func (r *Registry) filter(keep func(Definition) bool) []Definition {
	var out []Definition
	for _, d := range r.catalog.defs {
		if keep(d) {
			out = append(out, d.clone())
		}
	}
	return out
}

// Subscribe registers fn for unlock notifications and returns a function
// that removes it.
func (r *Registry) Subscribe(fn Listener) (unsubscribe func()) {
	return r.subscribe(&r.unlockSubs, fn)
}

// SubscribeRevoke registers fn for revoke notifications.
func (r *Registry) SubscribeRevoke(fn Listener) (unsubscribe func()) {
	return r.subscribe(&r.revokeSubs, fn)
}

func (r *Registry) subscribe(subs *[]subscription, fn Listener) func() {
	r.nextSubID++
	id := r.nextSubID
	*subs = append(*subs, subscription{id: id, fn: fn})

	return func() {
		for i, s := range *subs {
			if s.id == id {
				*subs = append((*subs)[:i:i], (*subs)[i+1:]...)
				return
			}
		}
	}
}

// drain delivers queued unlock notifications. Only the outermost caller
// drains; nested calls return immediately after queueing.
func (r *Registry) drain() {
	if r.notifying {
		return
	}
	r.notifying = true
	defer func() { r.notifying = false }()

	for len(r.pending) > 0 {
		def := r.pending[0]
		r.pending = r.pending[1:]
		for _, s := range append([]subscription(nil), r.unlockSubs...) {
			s.fn(def)
		}
	}
}
