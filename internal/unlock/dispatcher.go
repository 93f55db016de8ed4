// Package unlock resolves gameplay events into ability unlocks.
//
// World and quest scripts fire string condition keys ("boss_defeated_golem").
// The Dispatcher maps each key to the abilities it gates and asks the
// ability registry to grant them. Abilities registered under the empty key
// have no trigger of their own: they unlock as soon as their prerequisites
// are met, through a sweep that runs at startup and after every unlock.
package unlock

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-platformer/internal/ability"
	"github.com/vovakirdan/tui-platformer/internal/observe"
)

// Registry is the part of ability.Registry the dispatcher needs.
type Registry interface {
	Definition(id ability.ID) (ability.Definition, bool)
	Has(id ability.ID) bool
	CanUnlock(id ability.ID) bool
	Unlock(id ability.ID) (ability.Outcome, error)
	Subscribe(fn ability.Listener) (unsubscribe func())
}

// Entry binds a condition key to one ability. Satisfied is set once, when
// the entry grants its ability, and never reset.
type Entry struct {
	Key       string
	Ability   ability.ID
	Satisfied bool
}

// Condition is the config form of an entry.
type Condition struct {
	Key     string     `yaml:"key"`
	Ability ability.ID `yaml:"ability"`
}

// Dispatcher owns the condition table for one player.
// Like the registry it serves, it is not safe for concurrent use.
type Dispatcher struct {
	registry Registry

	entries []Entry
	byKey   map[string][]int
	keys    []string // registration order
	bound   map[ability.ID]string
	fired   map[string]bool

	condSubs  []func(key string)
	condIDs   []int
	nextSubID int

	retryFired  bool
	sweeping    bool
	unsubscribe func()

	logger  *log.Logger
	metrics *observe.Metrics
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the dispatcher logger.
func WithLogger(l *log.Logger) Option {
	return func(d *Dispatcher) {
		if l != nil {
			d.logger = l
		}
	}
}

// WithMetrics records triggers on m.
func WithMetrics(m *observe.Metrics) Option {
	return func(d *Dispatcher) {
		d.metrics = m
	}
}

// WithRetryFired makes the cascade also retry pending entries under keys
// that have already been triggered once. Without it a keyed entry whose
// prerequisites were missing at trigger time waits for the key to fire again.
func WithRetryFired() Option {
	return func(d *Dispatcher) {
		d.retryFired = true
	}
}

// New creates a dispatcher over registry and subscribes to its unlock
// notifications for the cascade.
func New(registry Registry, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		registry: registry,
		byKey:    make(map[string][]int),
		bound:    make(map[ability.ID]string),
		fired:    make(map[string]bool),
		logger:   log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.unsubscribe = registry.Subscribe(d.onUnlock)
	return d
}

// Close detaches the dispatcher from the registry.
func (d *Dispatcher) Close() {
	if d.unsubscribe != nil {
		d.unsubscribe()
		d.unsubscribe = nil
	}
}

// RegisterCondition binds key to id. The empty key registers a keyless
// condition. Errors wrap ability.ErrConfig.
func (d *Dispatcher) RegisterCondition(key string, id ability.ID) error {
	if !ValidKey(key) {
		return fmt.Errorf("unlock: malformed condition key %q: %w", key, ability.ErrConfig)
	}
	if _, ok := d.registry.Definition(id); !ok {
		return fmt.Errorf("unlock: condition %q names unknown ability %s: %w", key, id, ability.ErrConfig)
	}
	if prev, ok := d.bound[id]; ok {
		return fmt.Errorf("unlock: %s is already bound to condition %q: %w", id, prev, ability.ErrConfig)
	}

	if _, ok := d.byKey[key]; !ok {
		d.keys = append(d.keys, key)
	}
	d.byKey[key] = append(d.byKey[key], len(d.entries))
	d.entries = append(d.entries, Entry{Key: key, Ability: id})
	d.bound[id] = key

	d.logger.Debug("condition registered", "key", key, "ability", id)
	return nil
}

// Load registers every condition in order and stops at the first error.
func (d *Dispatcher) Load(conds []Condition) error {
	for _, c := range conds {
		if err := d.RegisterCondition(c.Key, c.Ability); err != nil {
			return err
		}
	}
	return nil
}

// Start runs the initial keyless sweep. Call it once after loading the
// conditions and restoring saved progress.
func (d *Dispatcher) Start() []ability.Definition {
	return d.SweepKeyless()
}

// Trigger resolves every pending entry under key. Entries whose ability
// cannot be unlocked yet stay pending. Condition listeners are notified
// whether or not anything unlocked, including for keys nobody registered.
//
// It returns the abilities granted directly by key's entries; further
// abilities granted by the cascade are reported through the registry's
// notifications.
func (d *Dispatcher) Trigger(key string) []ability.Definition {
	d.fired[key] = true

	idx, ok := d.byKey[key]
	if !ok {
		d.logger.Warn("trigger for unregistered condition", "key", key)
	}

	granted := d.resolve(idx)
	d.metrics.RecordTrigger(context.Background(), key, ok)

	for _, fn := range append([]func(string){}, d.condSubs...) {
		fn(key)
	}
	return granted
}

// SweepKeyless grants keyless abilities until no more can be granted.
// With WithRetryFired it also retries pending entries under fired keys.
func (d *Dispatcher) SweepKeyless() []ability.Definition {
	if d.sweeping {
		return nil
	}
	d.sweeping = true
	defer func() { d.sweeping = false }()
	return d.settle()
}

// settle repeats the keyless pass until it reaches a fixpoint. Unlocks made
// here notify onUnlock, which returns early while sweeping is set.
func (d *Dispatcher) settle() []ability.Definition {
	var granted []ability.Definition
	for {
		n := d.resolve(d.byKey[""])
		if d.retryFired {
			for _, key := range d.keys {
				if key != "" && d.fired[key] {
					n = append(n, d.resolve(d.byKey[key])...)
				}
			}
		}
		if len(n) == 0 {
			return granted
		}
		granted = append(granted, n...)
	}
}

func (d *Dispatcher) resolve(idx []int) []ability.Definition {
	var granted []ability.Definition
	for _, i := range idx {
		e := &d.entries[i]
		if e.Satisfied {
			continue
		}
		if !d.registry.CanUnlock(e.Ability) {
			if d.registry.Has(e.Ability) {
				d.logger.Debug("condition target already unlocked", "key", e.Key, "ability", e.Ability)
			} else {
				d.logger.Debug("condition pending on prerequisites", "key", e.Key, "ability", e.Ability)
			}
			continue
		}

		out, err := d.registry.Unlock(e.Ability)
		if err != nil {
			d.logger.Error("condition unlock failed", "key", e.Key, "ability", e.Ability, "err", err)
			continue
		}
		e.Satisfied = true
		if out == ability.Granted {
			def, _ := d.registry.Definition(e.Ability)
			granted = append(granted, def)
		}
	}
	return granted
}

// onUnlock is the cascade: every unlock, from any path, may complete the
// prerequisites of a keyless ability.
func (d *Dispatcher) onUnlock(ability.Definition) {
	d.SweepKeyless()
}

// IsConditionMet reports whether any entry under key has been satisfied.
func (d *Dispatcher) IsConditionMet(key string) bool {
	for _, i := range d.byKey[key] {
		if d.entries[i].Satisfied {
			return true
		}
	}
	return false
}

// ConditionFor returns the key bound to id.
func (d *Dispatcher) ConditionFor(id ability.ID) (string, bool) {
	key, ok := d.bound[id]
	return key, ok
}

// MarkSatisfied flags the entry binding key to id as satisfied without
// unlocking anything. It is used when restoring saved progress and reports
// whether such an entry exists.
func (d *Dispatcher) MarkSatisfied(key string, id ability.ID) bool {
	for _, i := range d.byKey[key] {
		if d.entries[i].Ability == id {
			d.entries[i].Satisfied = true
			return true
		}
	}
	return false
}

// Entries returns a copy of the condition table in registration order.
func (d *Dispatcher) Entries() []Entry {
	return append([]Entry(nil), d.entries...)
}

// Keys returns the registered keys in registration order.
func (d *Dispatcher) Keys() []string {
	return append([]string(nil), d.keys...)
}

// OnConditionMet registers fn for ConditionMet signals.
func (d *Dispatcher) OnConditionMet(fn func(key string)) (unsubscribe func()) {
	d.nextSubID++
	id := d.nextSubID
	d.condSubs = append(d.condSubs, fn)
	d.condIDs = append(d.condIDs, id)

	return func() {
		for i, sid := range d.condIDs {
			if sid == id {
				d.condSubs = append(d.condSubs[:i:i], d.condSubs[i+1:]...)
				d.condIDs = append(d.condIDs[:i:i], d.condIDs[i+1:]...)
				return
			}
		}
	}
}

// OnBossDefeated triggers "boss_defeated_<name>".
func (d *Dispatcher) OnBossDefeated(name string) []ability.Definition {
	return d.Trigger(Key(EventBossDefeated, name))
}

// OnItemCollected triggers "item_collected_<name>".
func (d *Dispatcher) OnItemCollected(name string) []ability.Definition {
	return d.Trigger(Key(EventItemCollected, name))
}

// OnAreaEntered triggers "area_entered_<name>".
func (d *Dispatcher) OnAreaEntered(name string) []ability.Definition {
	return d.Trigger(Key(EventAreaEntered, name))
}

// OnQuestCompleted triggers "quest_completed_<name>".
func (d *Dispatcher) OnQuestCompleted(name string) []ability.Definition {
	return d.Trigger(Key(EventQuestCompleted, name))
}
