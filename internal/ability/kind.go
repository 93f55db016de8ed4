package ability

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Kind carries the gameplay parameters of one ability. It is a closed set:
// every ID has exactly one Kind implementation, and consumers switch on the
// concrete type.
type Kind interface {
	// Ability returns the ID this kind belongs to.
	Ability() ID
	isKind()
}

// JumpKind is the basic jump.
type JumpKind struct {
	Force    float64 `yaml:"force"`
	MaxJumps int     `yaml:"max_jumps"`
}

// DoubleJumpKind is the airborne second jump.
type DoubleJumpKind struct {
	Force float64 `yaml:"force"`
}

// DashKind is a short horizontal burst.
type DashKind struct {
	Force    float64 `yaml:"force"`
	Duration float64 `yaml:"duration"` // seconds
	Cooldown float64 `yaml:"cooldown"` // seconds
}

// WallClimbKind lets the player climb walls and jump off them.
type WallClimbKind struct {
	ClimbSpeed    float64 `yaml:"climb_speed"`
	WallJumpForce float64 `yaml:"wall_jump_force"`
}

func (JumpKind) Ability() ID       { return Jump }
func (DoubleJumpKind) Ability() ID { return DoubleJump }
func (DashKind) Ability() ID       { return Dash }
func (WallClimbKind) Ability() ID  { return WallClimb }

func (JumpKind) isKind()       {}
func (DoubleJumpKind) isKind() {}
func (DashKind) isKind()       {}
func (WallClimbKind) isKind()  {}

// DefaultKind returns the stock parameters for id, or nil for unknown ids.
func DefaultKind(id ID) Kind {
	switch id {
	case Jump:
		return JumpKind{Force: 10, MaxJumps: 1}
	case DoubleJump:
		return DoubleJumpKind{Force: 8}
	case Dash:
		return DashKind{Force: 15, Duration: 0.2, Cooldown: 1}
	case WallClimb:
		return WallClimbKind{ClimbSpeed: 3, WallJumpForce: 12}
	default:
		return nil
	}
}

// decodeKind decodes a params node on top of the defaults for id.
// A nil or empty node yields the defaults.
func decodeKind(id ID, node *yaml.Node) (Kind, error) {
	if node == nil || node.Kind == 0 {
		return DefaultKind(id), nil
	}

	switch id {
	case Jump:
		k := DefaultKind(id).(JumpKind)
		err := node.Decode(&k)
		return k, err
	case DoubleJump:
		k := DefaultKind(id).(DoubleJumpKind)
		err := node.Decode(&k)
		return k, err
	case Dash:
		k := DefaultKind(id).(DashKind)
		err := node.Decode(&k)
		return k, err
	case WallClimb:
		k := DefaultKind(id).(WallClimbKind)
		err := node.Decode(&k)
		return k, err
	default:
		return nil, fmt.Errorf("ability: no parameters for %s: %w", id, ErrUnknownAbility)
	}
}
