// Package ability holds the player ability catalog and the registry that
// tracks which abilities a player has unlocked.
//
// The package has no knowledge of physics, input or rendering. Movement code
// asks the Registry whether an ability is held; presentation code subscribes
// to unlock notifications and reads the derived views.
package ability

import (
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// ID identifies an ability. The set is closed: only the constants below
// are valid in a catalog.
type ID int

const (
	Jump ID = iota + 1
	DoubleJump
	Dash
	WallClimb
)

var idNames = map[ID]string{
	Jump:       "jump",
	DoubleJump: "double_jump",
	Dash:       "dash",
	WallClimb:  "wall_climb",
}

// AllIDs returns every known ability ID in declaration order.
func AllIDs() []ID {
	return []ID{Jump, DoubleJump, Dash, WallClimb}
}

// String returns the config name of the ability (e.g. "double_jump").
func (id ID) String() string {
	if name, ok := idNames[id]; ok {
		return name
	}
	return "ability(" + strconv.Itoa(int(id)) + ")"
}

// Valid reports whether id is one of the known ability constants.
func (id ID) Valid() bool {
	_, ok := idNames[id]
	return ok
}

// ParseID converts a config name back into an ID.
func ParseID(name string) (ID, error) {
	for id, n := range idNames {
		if n == name {
			return id, nil
		}
	}
	return 0, fmt.Errorf("ability: unknown ability name %q: %w", name, ErrUnknownAbility)
}

// UnmarshalYAML accepts ability names ("dash").
func (id *ID) UnmarshalYAML(node *yaml.Node) error {
	var name string
	if err := node.Decode(&name); err != nil {
		return err
	}
	parsed, err := ParseID(name)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*id = parsed
	return nil
}

// MarshalYAML writes the ability name.
func (id ID) MarshalYAML() (any, error) {
	return id.String(), nil
}
