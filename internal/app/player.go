// Package app assembles a player: the ability registry, the condition
// dispatcher and, when a store is configured, progress tracking. Every CLI
// command and every SSH session builds its own Player here.
package app

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-platformer/internal/ability"
	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/game"
	"github.com/vovakirdan/tui-platformer/internal/level"
	"github.com/vovakirdan/tui-platformer/internal/movement"
	"github.com/vovakirdan/tui-platformer/internal/observe"
	"github.com/vovakirdan/tui-platformer/internal/progress"
	"github.com/vovakirdan/tui-platformer/internal/unlock"
)

// Options are the dependencies of a player.
type Options struct {
	Config  *config.Config
	Catalog *ability.Catalog // shared between players; built from Config when nil
	Store   progress.Store   // nil disables persistence
	Profile string           // profile name; Config.Storage.Profile when empty
	Logger  *log.Logger
	Metrics *observe.Metrics
}

// Player is one player's ability state.
type Player struct {
	ProfileID  string
	Registry   *ability.Registry
	Dispatcher *unlock.Dispatcher
	Tracker    *progress.Tracker

	cfg     *config.Config
	logger  *log.Logger
	metrics *observe.Metrics
}

// NewCatalog validates the abilities of cfg.
func NewCatalog(cfg *config.Config) (*ability.Catalog, error) {
	catalog, err := ability.NewCatalog(cfg.Abilities)
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}
	return catalog, nil
}

// NewPlayer builds a player, restores saved progress and runs the initial
// keyless sweep. Abilities granted by that sweep are saved like any other.
func NewPlayer(ctx context.Context, opts Options) (*Player, error) {
	if opts.Config == nil {
		return nil, fmt.Errorf("app: missing config")
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	catalog := opts.Catalog
	if catalog == nil {
		var err error
		if catalog, err = NewCatalog(opts.Config); err != nil {
			return nil, err
		}
	}

	reg := ability.NewRegistry(catalog,
		ability.WithLogger(logger.WithPrefix("ability")),
		ability.WithMetrics(opts.Metrics),
	)

	dopts := []unlock.Option{
		unlock.WithLogger(logger.WithPrefix("unlock")),
		unlock.WithMetrics(opts.Metrics),
	}
	if opts.Config.Game.RetryFired {
		dopts = append(dopts, unlock.WithRetryFired())
	}
	d := unlock.New(reg, dopts...)
	if err := d.Load(opts.Config.Conditions); err != nil {
		d.Close()
		return nil, fmt.Errorf("app: %w", err)
	}

	p := &Player{
		Registry:   reg,
		Dispatcher: d,
		cfg:        opts.Config,
		logger:     logger,
		metrics:    opts.Metrics,
	}

	if opts.Store != nil {
		name := opts.Profile
		if name == "" {
			name = opts.Config.Storage.Profile
		}
		id, err := opts.Store.EnsureProfile(ctx, name)
		if err != nil {
			d.Close()
			return nil, fmt.Errorf("app: %w", err)
		}
		p.ProfileID = id

		snap, err := progress.Restore(ctx, opts.Store, id, reg, d)
		if err != nil {
			d.Close()
			return nil, fmt.Errorf("app: %w", err)
		}
		logger.Debug("progress restored", "profile", name, "unlocked", len(snap.Unlocked), "conditions", len(snap.Conditions))

		p.Tracker = progress.Track(ctx, opts.Store, id, reg, d,
			progress.WithLogger(logger.WithPrefix("progress")))
	}

	d.Start()
	if p.Tracker != nil {
		p.Tracker.Sync()
	}
	return p, nil
}

// NewGame creates a game for this player.
func (p *Player) NewGame() *game.Game {
	return game.New(p.Registry, p.Dispatcher, p.cfg.Physics,
		game.WithLogger(p.logger.WithPrefix("game")),
		game.WithToastSeconds(p.cfg.Game.ToastSeconds),
		game.WithRespawnMargin(p.cfg.Game.RespawnMargin),
		game.WithMovementOptions(movement.WithMetrics(p.metrics)),
	)
}

// CheckLevels warns about condition keys that no level can fire. Such
// abilities can only be unlocked by tooling.
func (p *Player) CheckLevels(levels *level.Catalog) []string {
	fired := make(map[string]bool)
	for _, k := range levels.Keys(unlock.Key) {
		fired[k] = true
	}

	var unreachable []string
	for _, k := range p.Dispatcher.Keys() {
		if k != "" && !fired[k] {
			unreachable = append(unreachable, k)
			p.logger.Warn("no level fires condition", "key", k)
		}
	}
	return unreachable
}

// Err returns the first progress write error.
func (p *Player) Err() error {
	if p.Tracker == nil {
		return nil
	}
	return p.Tracker.Err()
}

// Close detaches every subscriber.
func (p *Player) Close() {
	if p.Tracker != nil {
		p.Tracker.Close()
	}
	p.Dispatcher.Close()
}
