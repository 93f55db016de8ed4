// Package game runs one player through a level: it feeds input to the
// movement controller, fires condition keys when the player reaches level
// markers and announces new abilities on the HUD.
package game

import (
	"fmt"
	"io"
	"math"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-platformer/internal/ability"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/level"
	"github.com/vovakirdan/tui-platformer/internal/movement"
	"github.com/vovakirdan/tui-platformer/internal/unlock"
)

// Abilities is the registry surface the game consumes.
type Abilities interface {
	movement.Abilities
	Subscribe(fn ability.Listener) (unsubscribe func())
	UnlockedIDs() []ability.ID
}

// Conditions fires condition keys.
type Conditions interface {
	Trigger(key string) []ability.Definition
}

// stompBounce is the upward speed after defeating a boss.
const stompBounce = 7

type toast struct {
	text string
	left float64
}

// Game is a level in progress. It is driven by one update loop.
type Game struct {
	abilities  Abilities
	conditions Conditions
	physics    movement.Config
	moveOpts   []movement.Option
	logger     *log.Logger

	toastSeconds  float64
	respawnMargin int

	level   *level.Level
	runtime core.RuntimeConfig
	body    *movement.Controller
	reached map[int]bool // marker index

	deaths   int
	complete bool
	paused   bool
	ticks    int
	toasts   []toast

	unsubscribe func()
}

// Option configures a Game.
type Option func(*Game)

// WithLogger sets the game logger.
func WithLogger(l *log.Logger) Option {
	return func(g *Game) {
		if l != nil {
			g.logger = l
		}
	}
}

// WithToastSeconds sets how long unlock announcements stay on screen.
func WithToastSeconds(s float64) Option {
	return func(g *Game) {
		if s > 0 {
			g.toastSeconds = s
		}
	}
}

// WithRespawnMargin sets how many rows below the map the player may fall
// before respawning.
func WithRespawnMargin(rows int) Option {
	return func(g *Game) {
		if rows >= 0 {
			g.respawnMargin = rows
		}
	}
}

// WithMovementOptions passes options to every controller the game creates.
func WithMovementOptions(opts ...movement.Option) Option {
	return func(g *Game) {
		g.moveOpts = append(g.moveOpts, opts...)
	}
}

// New creates a game and subscribes to unlock notifications for the HUD.
// Call Close to detach it.
func New(abilities Abilities, conditions Conditions, physics movement.Config, opts ...Option) *Game {
	g := &Game{
		abilities:     abilities,
		conditions:    conditions,
		physics:       physics,
		logger:        log.New(io.Discard),
		toastSeconds:  2.5,
		respawnMargin: 4,
	}
	for _, opt := range opts {
		opt(g)
	}
	g.unsubscribe = abilities.Subscribe(g.announce)
	return g
}

// Close detaches the game from the registry.
func (g *Game) Close() {
	if g.unsubscribe != nil {
		g.unsubscribe()
		g.unsubscribe = nil
	}
}

func (g *Game) announce(def ability.Definition) {
	g.toasts = append(g.toasts, toast{
		text: fmt.Sprintf("NEW ABILITY UNLOCKED: %s!", def.Name),
		left: g.toastSeconds,
	})
}

// Load starts l from its spawn point.
func (g *Game) Load(l *level.Level, runtime core.RuntimeConfig) {
	g.level = l
	g.runtime = runtime
	g.Reset()
}

// Reset restarts the current level. Markers become reachable again;
// abilities already earned are kept.
func (g *Game) Reset() {
	if g.level == nil {
		return
	}
	g.body = movement.New(g.abilities, g.physics, float64(g.level.SpawnX), float64(g.level.SpawnY), g.moveOpts...)
	g.reached = make(map[int]bool, len(g.level.Markers))
	g.deaths = 0
	g.complete = false
	g.paused = false
	g.ticks = 0
	g.logger.Debug("level started", "level", g.level.ID)
}

// Level returns the level being played.
func (g *Game) Level() *level.Level { return g.level }

// Body returns the player controller.
func (g *Game) Body() *movement.Controller { return g.body }

// Toasts returns the announcements currently on screen, oldest first.
func (g *Game) Toasts() []string {
	out := make([]string, len(g.toasts))
	for i, t := range g.toasts {
		out[i] = t.text
	}
	return out
}

func (g *Game) dt() float64 {
	if g.runtime.TickRate <= 0 {
		return 1.0 / 60
	}
	return 1 / float64(g.runtime.TickRate)
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.GameState {
	if g.level == nil {
		return g.State()
	}
	if in.Has(core.ActionPause) && !g.complete {
		g.paused = !g.paused
	}
	if g.paused {
		return g.State()
	}

	dt := g.dt()
	g.ticks++
	g.expireToasts(dt)
	if g.complete {
		return g.State()
	}

	prevY := g.body.Y
	g.body.Step(movement.Input{
		Move: in.Axis(),
		Up:   in.Has(core.ActionUp),
		Down: in.Has(core.ActionDown),
		Jump: in.Has(core.ActionJump),
		Dash: in.Has(core.ActionDash),
	}, g.level, dt)

	if g.body.Y > float64(g.level.Height+g.respawnMargin) {
		g.die("fell")
		return g.State()
	}
	if g.touches(level.TileSpikes) {
		g.die("spikes")
		return g.State()
	}

	g.checkMarkers(prevY)

	if g.touches(level.TileExit) {
		g.complete = true
		g.logger.Info("level complete", "level", g.level.ID, "deaths", g.deaths)
		if g.level.Quest != "" {
			g.conditions.Trigger(unlock.Key(unlock.EventQuestCompleted, g.level.Quest))
		}
	}
	return g.State()
}

func (g *Game) expireToasts(dt float64) {
	kept := g.toasts[:0]
	for _, t := range g.toasts {
		t.left -= dt
		if t.left > 0 {
			kept = append(kept, t)
		}
	}
	g.toasts = kept
}

func (g *Game) die(cause string) {
	g.deaths++
	g.logger.Debug("player died", "level", g.level.ID, "cause", cause)
	g.body.Teleport(float64(g.level.SpawnX), float64(g.level.SpawnY))
}

// checkMarkers fires every marker the body overlaps for the first time.
// Bosses are defeated only by landing on them; touching one otherwise kills.
func (g *Game) checkMarkers(prevY float64) {
	for i, m := range g.level.Markers {
		if g.reached[i] || !g.overlapsCell(m.X, m.Y) {
			continue
		}
		if m.Boss() {
			if prevY+1 > float64(m.Y)+0.5 {
				g.die("boss " + m.Name)
				return
			}
			g.body.VY = -stompBounce
		}

		g.reached[i] = true
		key := unlock.Key(m.Event, m.Name)
		g.logger.Debug("marker reached", "level", g.level.ID, "key", key)
		g.conditions.Trigger(key)
	}
}

// span returns the tiles covered by the body.
func (g *Game) span() core.Rect {
	const eps = 1e-6
	x0, x1 := int(math.Floor(g.body.X)), int(math.Floor(g.body.X+1-eps))
	y0, y1 := int(math.Floor(g.body.Y)), int(math.Floor(g.body.Y+1-eps))
	return core.NewRect(x0, y0, x1-x0+1, y1-y0+1)
}

func (g *Game) overlapsCell(x, y int) bool {
	return g.span().Intersects(core.NewRect(x, y, 1, 1))
}

func (g *Game) touches(t level.Tile) bool {
	r := g.span()
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			if g.level.TileAt(x, y) == t {
				return true
			}
		}
	}
	return false
}

// State returns the status shown around the game.
func (g *Game) State() core.GameState {
	st := core.GameState{
		Deaths:   g.deaths,
		Unlocked: len(g.abilities.UnlockedIDs()),
		Complete: g.complete,
		Paused:   g.paused,
	}
	if g.level != nil {
		st.Level = g.level.ID
	}
	return st
}
