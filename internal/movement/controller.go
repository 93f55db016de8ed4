// Package movement integrates player physics on a tile grid and gates each
// action on the abilities the player holds.
//
// Coordinates are in tiles with Y growing downward. The player body is one
// tile wide and one tile tall; X, Y is its top-left corner.
package movement

import (
	"context"
	"math"

	"github.com/vovakirdan/tui-platformer/internal/ability"
	"github.com/vovakirdan/tui-platformer/internal/observe"
)

// Abilities is what movement needs from the ability registry.
type Abilities interface {
	Has(id ability.ID) bool
	Definition(id ability.ID) (ability.Definition, bool)
}

// World answers collision queries for tile (x, y).
type World interface {
	Solid(x, y int) bool
}

// Config holds the physics constants. Speeds are tiles per second,
// accelerations tiles per second squared.
type Config struct {
	MoveSpeed           float64 `yaml:"move_speed"`
	Gravity             float64 `yaml:"gravity"`
	FallSpeedMultiplier float64 `yaml:"fall_speed_multiplier"` // scales gravity while falling
	MaxFallSpeed        float64 `yaml:"max_fall_speed"`
	WallJumpPush        float64 `yaml:"wall_jump_push"` // seconds of horizontal push after a wall jump
}

// DefaultConfig returns the stock physics constants.
func DefaultConfig() Config {
	return Config{
		MoveSpeed:           5,
		Gravity:             20,
		FallSpeedMultiplier: 1,
		MaxFallSpeed:        20,
		WallJumpPush:        0.15,
	}
}

// Input is one tick of player intent. Jump and Dash are presses, not holds.
type Input struct {
	Move float64 // -1 left, 0 none, 1 right
	Up   bool
	Down bool
	Jump bool
	Dash bool
}

// Result reports what happened during a Step.
type Result struct {
	Jumped       bool
	DoubleJumped bool
	Dashed       bool
	WallJumped   bool
	Landed       bool
}

// Action names used for metrics.
const (
	ActionJump       = "jump"
	ActionDoubleJump = "double_jump"
	ActionDash       = "dash"
	ActionWallJump   = "wall_jump"
)

const (
	// maxDelta bounds a single step so a stalled frame cannot tunnel.
	maxDelta = 1.0 / 20
	// maxTravel is the furthest the body moves per collision sub-step.
	maxTravel = 0.45
	epsilon   = 1e-6
)

// Controller is the player body. It is owned by one game loop.
type Controller struct {
	abilities Abilities
	cfg       Config
	metrics   *observe.Metrics

	X, Y   float64
	VX, VY float64

	Grounded     bool
	CurrentJumps int
	Facing       int // -1 left, 1 right
	Wall         int // side of an adjacent wall: -1, 1, or 0
	Clinging     bool

	dashLeft     float64
	dashDir      int
	dashCooldown float64
	pushLeft     float64
	pushDir      int
}

// Option configures a Controller.
type Option func(*Controller)

// WithMetrics counts movement actions on m.
func WithMetrics(m *observe.Metrics) Option {
	return func(c *Controller) {
		c.metrics = m
	}
}

// New creates a controller at (x, y) facing right.
func New(abilities Abilities, cfg Config, x, y float64, opts ...Option) *Controller {
	c := &Controller{
		abilities: abilities,
		cfg:       cfg,
		X:         x,
		Y:         y,
		Facing:    1,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Teleport moves the body to (x, y) and clears its motion state.
func (c *Controller) Teleport(x, y float64) {
	c.X, c.Y = x, y
	c.VX, c.VY = 0, 0
	c.Grounded = false
	c.CurrentJumps = 0
	c.Clinging = false
	c.dashLeft, c.pushLeft = 0, 0
}

// SetGrounded records ground contact. The transition from airborne to
// grounded resets the jump counter.
func (c *Controller) SetGrounded(grounded bool) bool {
	landed := !c.Grounded && grounded
	c.Grounded = grounded
	if landed {
		c.CurrentJumps = 0
	}
	return landed
}

// Dashing reports whether a dash is in progress.
func (c *Controller) Dashing() bool { return c.dashLeft > 0 }

// DashCooldown returns the seconds left before the next dash.
func (c *Controller) DashCooldown() float64 { return c.dashCooldown }

// CanJump reports whether a jump is legal right now, ignoring whether the
// player holds Jump at all.
//
// An airborne player who has not jumped yet (walked off a ledge) may still
// jump once. The second airborne jump needs DoubleJump.
func (c *Controller) CanJump() bool {
	if c.Grounded {
		return true
	}
	if c.CurrentJumps == 0 {
		return true
	}
	if c.CurrentJumps == 1 {
		return c.abilities.Has(ability.DoubleJump)
	}
	return false
}

// Jump performs a jump if the player holds Jump and CanJump allows it.
// The airborne second jump uses the double jump parameters.
func (c *Controller) Jump() (double bool, ok bool) {
	if !c.abilities.Has(ability.Jump) || !c.CanJump() {
		return false, false
	}
	if !c.Grounded && c.CurrentJumps == 1 {
		apply(c.kind(ability.DoubleJump), c)
		c.metrics.RecordMove(context.Background(), ActionDoubleJump)
		return true, true
	}
	apply(c.kind(ability.Jump), c)
	c.metrics.RecordMove(context.Background(), ActionJump)
	return false, true
}

// Dash starts a dash along the sign of move, or to the right when move is
// zero.
func (c *Controller) Dash(move float64) bool {
	if !c.abilities.Has(ability.Dash) || c.dashCooldown > 0 || c.dashLeft > 0 {
		return false
	}
	c.dashDir = 1
	if move < 0 {
		c.dashDir = -1
	}
	c.Facing = c.dashDir
	apply(c.kind(ability.Dash), c)
	c.metrics.RecordMove(context.Background(), ActionDash)
	return true
}

// WallJump kicks off the wall the player is clinging to.
func (c *Controller) WallJump() bool {
	if !c.Clinging || !c.abilities.Has(ability.WallClimb) {
		return false
	}
	apply(c.kind(ability.WallClimb), c)
	c.metrics.RecordMove(context.Background(), ActionWallJump)
	return true
}

// kind returns the parameters for id from the catalog, or the stock ones.
func (c *Controller) kind(id ability.ID) ability.Kind {
	if def, ok := c.abilities.Definition(id); ok && def.Kind != nil {
		return def.Kind
	}
	return ability.DefaultKind(id)
}

// apply performs the effect of one ability on the body.
func apply(k ability.Kind, c *Controller) {
	switch k := k.(type) {
	case ability.JumpKind:
		c.VY = -k.Force
		c.CurrentJumps++
		c.Grounded = false

	case ability.DoubleJumpKind:
		c.VY = -k.Force
		c.CurrentJumps++

	case ability.DashKind:
		cooldown := k.Cooldown
		if cooldown == 0 {
			if def, ok := c.abilities.Definition(ability.Dash); ok {
				cooldown = def.Cooldown
			}
		}
		c.dashLeft = k.Duration
		c.dashCooldown = cooldown
		c.VX = float64(c.dashDir) * k.Force
		c.VY = 0

	case ability.WallClimbKind:
		c.pushDir = -c.Wall
		c.pushLeft = c.cfg.WallJumpPush
		c.Facing = c.pushDir
		c.VY = -k.WallJumpForce
		c.Clinging = false
		// A wall jump counts as the first jump; double jump stays available.
		c.CurrentJumps = 1
	}
}

// Step advances the body by dt seconds.
func (c *Controller) Step(in Input, w World, dt float64) Result {
	var res Result
	if dt > maxDelta {
		dt = maxDelta
	}

	if in.Move > 0 {
		c.Facing = 1
	} else if in.Move < 0 {
		c.Facing = -1
	}

	c.dashCooldown = math.Max(0, c.dashCooldown-dt)
	c.pushLeft = math.Max(0, c.pushLeft-dt)

	c.Clinging = c.Wall != 0 && !c.Grounded && !c.Dashing() &&
		c.abilities.Has(ability.WallClimb) &&
		(in.Up || in.Down || in.Move == float64(c.Wall))

	if in.Jump {
		if c.Clinging {
			res.WallJumped = c.WallJump()
		} else if double, ok := c.Jump(); ok {
			res.Jumped = true
			res.DoubleJumped = double
		}
	}
	if in.Dash {
		res.Dashed = c.Dash(in.Move)
	}

	c.velocity(in, dt)
	if c.dashLeft > 0 {
		c.dashLeft = math.Max(0, c.dashLeft-dt)
	}

	c.move(w, dt)

	res.Landed = c.SetGrounded(c.overlaps(w, c.X, c.Y+epsilon*10))
	c.Wall = 0
	if c.overlaps(w, c.X-epsilon*10, c.Y) {
		c.Wall = -1
	} else if c.overlaps(w, c.X+epsilon*10, c.Y) {
		c.Wall = 1
	}
	return res
}

func (c *Controller) velocity(in Input, dt float64) {
	if c.dashLeft > 0 {
		c.VY = 0
		return
	}

	switch {
	case c.pushLeft > 0:
		c.VX = float64(c.pushDir) * c.cfg.MoveSpeed
	default:
		c.VX = in.Move * c.cfg.MoveSpeed
	}

	if c.Clinging {
		climb := ability.DefaultKind(ability.WallClimb).(ability.WallClimbKind).ClimbSpeed
		if k, ok := c.kind(ability.WallClimb).(ability.WallClimbKind); ok {
			climb = k.ClimbSpeed
		}
		switch {
		case in.Up:
			c.VY = -climb
		case in.Down:
			c.VY = climb
		default:
			c.VY = 0
		}
		return
	}

	g := c.cfg.Gravity
	if c.VY > 0 && !c.Grounded {
		g *= c.cfg.FallSpeedMultiplier
	}
	c.VY += g * dt
	if c.VY > c.cfg.MaxFallSpeed {
		c.VY = c.cfg.MaxFallSpeed
	}
}

// move integrates velocity in sub-steps, resolving each axis separately.
func (c *Controller) move(w World, dt float64) {
	dx, dy := c.VX*dt, c.VY*dt
	steps := int(math.Ceil(math.Max(math.Abs(dx), math.Abs(dy)) / maxTravel))
	if steps < 1 {
		steps = 1
	}
	sx, sy := dx/float64(steps), dy/float64(steps)

	for i := 0; i < steps; i++ {
		if sx != 0 {
			nx := c.X + sx
			if c.overlaps(w, nx, c.Y) {
				if sx > 0 {
					nx = math.Floor(nx+1-epsilon) - 1
				} else {
					nx = math.Floor(nx) + 1
				}
				sx = 0
				c.VX = 0
				c.dashLeft = 0
			}
			c.X = nx
		}
		if sy != 0 {
			ny := c.Y + sy
			if c.overlaps(w, c.X, ny) {
				if sy > 0 {
					ny = math.Floor(ny+1-epsilon) - 1
				} else {
					ny = math.Floor(ny) + 1
				}
				sy = 0
				c.VY = 0
			}
			c.Y = ny
		}
	}
}

// overlaps reports whether a body at (x, y) intersects a solid tile.
func (c *Controller) overlaps(w World, x, y float64) bool {
	x0, x1 := int(math.Floor(x)), int(math.Floor(x+1-epsilon))
	y0, y1 := int(math.Floor(y)), int(math.Floor(y+1-epsilon))
	for ty := y0; ty <= y1; ty++ {
		for tx := x0; tx <= x1; tx++ {
			if w.Solid(tx, ty) {
				return true
			}
		}
	}
	return false
}
