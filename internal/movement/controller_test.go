package movement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-platformer/internal/ability"
)

// fakeAbilities is a fixed ability set backed by the stock definitions.
type fakeAbilities map[ability.ID]bool

func (f fakeAbilities) Has(id ability.ID) bool { return f[id] }

func (f fakeAbilities) Definition(id ability.ID) (ability.Definition, bool) {
	for _, d := range ability.DefaultDefinitions() {
		if d.ID == id {
			return d, true
		}
	}
	return ability.Definition{}, false
}

// grid is a World built from rows of text; '#' is solid.
type grid []string

func (g grid) Solid(x, y int) bool {
	if y < 0 || y >= len(g) || x < 0 || x >= len(g[y]) {
		return false
	}
	return g[y][x] == '#'
}

var flat = grid{
	"..........",
	"..........",
	"..........",
	"..........",
	"..........",
	"##########",
}

const dt = 1.0 / 60

func settle(t *testing.T, c *Controller, w World) {
	t.Helper()
	for i := 0; i < 120; i++ {
		c.Step(Input{}, w, dt)
		if c.Grounded && c.VY == 0 {
			return
		}
	}
	require.FailNow(t, "controller never landed")
}

func TestJumpCounter(t *testing.T) {
	c := New(fakeAbilities{ability.Jump: true, ability.DoubleJump: true}, DefaultConfig(), 2, 4)
	c.SetGrounded(true)
	require.Equal(t, 0, c.CurrentJumps)

	double, ok := c.Jump()
	require.True(t, ok)
	assert.False(t, double)
	assert.Equal(t, 1, c.CurrentJumps)
	assert.False(t, c.Grounded)

	double, ok = c.Jump()
	require.True(t, ok)
	assert.True(t, double)
	assert.Equal(t, 2, c.CurrentJumps)

	_, ok = c.Jump()
	assert.False(t, ok, "no third jump")

	assert.True(t, c.SetGrounded(true))
	assert.Equal(t, 0, c.CurrentJumps)
}

func TestCanJump(t *testing.T) {
	tests := []struct {
		name     string
		has      fakeAbilities
		grounded bool
		jumps    int
		want     bool
	}{
		{"grounded", fakeAbilities{}, true, 0, true},
		{"grounded after a jump", fakeAbilities{}, true, 1, true},
		{"airborne without jumping", fakeAbilities{}, false, 0, true},
		{"airborne second jump without double jump", fakeAbilities{}, false, 1, false},
		{"airborne second jump with double jump", fakeAbilities{ability.DoubleJump: true}, false, 1, true},
		{"airborne third jump", fakeAbilities{ability.DoubleJump: true}, false, 2, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(tt.has, DefaultConfig(), 0, 0)
			c.Grounded = tt.grounded
			c.CurrentJumps = tt.jumps
			assert.Equal(t, tt.want, c.CanJump())
		})
	}
}

func TestJumpRequiresAbility(t *testing.T) {
	c := New(fakeAbilities{}, DefaultConfig(), 2, 4)
	c.SetGrounded(true)

	_, ok := c.Jump()
	assert.False(t, ok)
	assert.Equal(t, 0, c.CurrentJumps)
}

func TestJumpForces(t *testing.T) {
	c := New(fakeAbilities{ability.Jump: true, ability.DoubleJump: true}, DefaultConfig(), 2, 4)
	c.SetGrounded(true)

	c.Jump()
	assert.Equal(t, -10.0, c.VY)
	c.Jump()
	assert.Equal(t, -8.0, c.VY)
}

func TestStep_JumpAndLand(t *testing.T) {
	c := New(fakeAbilities{ability.Jump: true}, DefaultConfig(), 2, 4)
	settle(t, c, flat)
	require.Equal(t, 4.0, c.Y)

	res := c.Step(Input{Jump: true}, flat, dt)
	assert.True(t, res.Jumped)
	assert.Less(t, c.Y, 4.0)
	assert.Equal(t, 1, c.CurrentJumps)

	res = c.Step(Input{Jump: true}, flat, dt)
	assert.False(t, res.Jumped, "no double jump without the ability")

	landed := false
	for i := 0; i < 240 && !landed; i++ {
		landed = c.Step(Input{}, flat, dt).Landed
	}
	require.True(t, landed)
	assert.Equal(t, 0, c.CurrentJumps)
	assert.Equal(t, 4.0, c.Y)
}

func TestStep_WalkOffLedgeStillJumps(t *testing.T) {
	w := grid{
		"..........",
		"..........",
		"..........",
		"..........",
		"..........",
		"###.......",
		"..........",
		"..........",
		"..........",
		"##########",
	}
	c := New(fakeAbilities{ability.Jump: true}, DefaultConfig(), 1, 4)
	settle(t, c, w)

	for i := 0; i < 60 && c.Grounded; i++ {
		c.Step(Input{Move: 1}, w, dt)
	}
	require.False(t, c.Grounded)
	require.Equal(t, 0, c.CurrentJumps)

	res := c.Step(Input{Jump: true}, w, dt)
	assert.True(t, res.Jumped)
	assert.Equal(t, 1, c.CurrentJumps)
}

func TestStep_FallSpeedClamped(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FallSpeedMultiplier = 3
	c := New(fakeAbilities{}, cfg, 0, 0)

	for i := 0; i < 30; i++ {
		c.Step(Input{}, grid{}, dt)
	}
	assert.Equal(t, cfg.MaxFallSpeed, c.VY)
}

func TestStep_HorizontalCollision(t *testing.T) {
	w := grid{
		"..........",
		"..........",
		"..........",
		"..........",
		".....#....",
		"##########",
	}
	c := New(fakeAbilities{}, DefaultConfig(), 1, 4)
	settle(t, c, w)

	for i := 0; i < 120; i++ {
		c.Step(Input{Move: 1}, w, dt)
	}
	assert.Equal(t, 4.0, c.X)
	assert.Equal(t, 1, c.Wall)
}

func TestDash(t *testing.T) {
	c := New(fakeAbilities{ability.Jump: true}, DefaultConfig(), 1, 4)
	settle(t, c, flat)

	res := c.Step(Input{Dash: true}, flat, dt)
	assert.False(t, res.Dashed, "dash is locked")

	c.abilities = fakeAbilities{ability.Jump: true, ability.Dash: true}
	c.X = 8
	res = c.Step(Input{Dash: true, Move: -1}, flat, dt)
	require.True(t, res.Dashed)
	assert.True(t, c.Dashing())
	assert.Equal(t, -15.0, c.VX)
	assert.Equal(t, 1.0, c.DashCooldown(), "cooldown from the dash parameters")

	res = c.Step(Input{Dash: true}, flat, dt)
	assert.False(t, res.Dashed, "cooling down")

	for i := 0; i < 70; i++ {
		c.Step(Input{}, flat, dt)
	}
	assert.False(t, c.Dashing())
	assert.Zero(t, c.DashCooldown())
	assert.True(t, c.Dash(0))
}

func TestDash_DefaultsToRight(t *testing.T) {
	c := New(fakeAbilities{ability.Dash: true}, DefaultConfig(), 1, 4)
	c.Facing = -1
	require.True(t, c.Dash(0), "no horizontal input")
	assert.Equal(t, 15.0, c.VX)
	assert.Equal(t, 1, c.Facing)
}

func TestDash_FollowsInput(t *testing.T) {
	c := New(fakeAbilities{ability.Dash: true}, DefaultConfig(), 1, 4)
	require.True(t, c.Dash(-0.5))
	assert.Equal(t, -15.0, c.VX)
	assert.Equal(t, -1, c.Facing)
}

func TestDash_SuspendsGravity(t *testing.T) {
	c := New(fakeAbilities{ability.Dash: true}, DefaultConfig(), 0, 0)
	c.Step(Input{Dash: true}, grid{}, dt)
	assert.Zero(t, c.VY)
	assert.Zero(t, c.Y)
}

func TestWallClimb(t *testing.T) {
	w := grid{
		"....#.....",
		"....#.....",
		"....#.....",
		"....#.....",
		"....#.....",
		"....#.....",
		"....#.....",
		"##########",
	}
	has := fakeAbilities{ability.Jump: true, ability.WallClimb: true}
	c := New(has, DefaultConfig(), 2, 6)
	settle(t, c, w)

	for i := 0; i < 30; i++ {
		c.Step(Input{Move: 1}, w, dt)
	}
	require.Equal(t, 1, c.Wall)

	c.Step(Input{Jump: true}, w, dt)
	require.False(t, c.Grounded)

	startY := c.Y
	for i := 0; i < 10; i++ {
		c.Step(Input{Up: true, Move: 1}, w, dt)
	}
	assert.True(t, c.Clinging)
	assert.Less(t, c.Y, startY)

	res := c.Step(Input{Jump: true, Move: 1}, w, dt)
	assert.True(t, res.WallJumped)
	assert.Equal(t, -1, c.Facing)
	assert.Less(t, c.VX, 0.0)
	assert.Equal(t, 1, c.CurrentJumps)
}

func TestWallClimb_RequiresAbility(t *testing.T) {
	w := grid{
		"....#.....",
		"....#.....",
		"....#.....",
		"##########",
	}
	c := New(fakeAbilities{ability.Jump: true}, DefaultConfig(), 3, 0)
	c.Wall = 1

	c.Step(Input{Up: true, Move: 1}, w, dt)
	assert.False(t, c.Clinging)
	assert.Greater(t, c.VY, 0.0)
}

func TestTeleport(t *testing.T) {
	c := New(fakeAbilities{ability.Jump: true}, DefaultConfig(), 0, 0)
	c.VX, c.VY, c.CurrentJumps = 3, 4, 2

	c.Teleport(5, 1)
	assert.Equal(t, 5.0, c.X)
	assert.Equal(t, 1.0, c.Y)
	assert.Zero(t, c.VX)
	assert.Zero(t, c.CurrentJumps)
}
