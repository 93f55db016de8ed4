package ability

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Definition is the static description of one ability.
// Definitions are owned by a Catalog and never change after load.
type Definition struct {
	ID            ID
	Name          string
	Description   string
	Prerequisites []ID
	Starting      bool    // unlocked at initialization without notification
	Passive       bool    // cannot be used directly
	Cooldown      float64 // seconds
	EnergyCost    float64
	UnlockHint    string // human-readable unlock condition, e.g. "Defeat the Golem"
	Kind          Kind
}

// definitionYAML is the on-disk shape of a Definition.
type definitionYAML struct {
	ID            ID        `yaml:"id"`
	Name          string    `yaml:"name"`
	Description   string    `yaml:"description"`
	Prerequisites []ID      `yaml:"prerequisites"`
	Starting      bool      `yaml:"starting"`
	Passive       bool      `yaml:"passive"`
	Cooldown      float64   `yaml:"cooldown"`
	EnergyCost    float64   `yaml:"energy_cost"`
	UnlockHint    string    `yaml:"unlock_hint"`
	Params        yaml.Node `yaml:"params"`
}

// UnmarshalYAML decodes a definition and its kind-specific params block.
func (d *Definition) UnmarshalYAML(node *yaml.Node) error {
	var raw definitionYAML
	if err := node.Decode(&raw); err != nil {
		return err
	}
	if !raw.ID.Valid() {
		return fmt.Errorf("line %d: ability definition without id: %w", node.Line, ErrConfig)
	}

	kind, err := decodeKind(raw.ID, &raw.Params)
	if err != nil {
		return fmt.Errorf("ability %s params: %w", raw.ID, err)
	}

	*d = Definition{
		ID:            raw.ID,
		Name:          raw.Name,
		Description:   raw.Description,
		Prerequisites: raw.Prerequisites,
		Starting:      raw.Starting,
		Passive:       raw.Passive,
		Cooldown:      raw.Cooldown,
		EnergyCost:    raw.EnergyCost,
		UnlockHint:    raw.UnlockHint,
		Kind:          kind,
	}
	return nil
}

// FullDescription returns the description followed by the prerequisite list
// and unlock hint, as shown for locked abilities.
func (d Definition) FullDescription() string {
	var sb strings.Builder
	sb.WriteString(d.Description)

	if len(d.Prerequisites) > 0 {
		sb.WriteString("\n\nRequires: ")
		for i, p := range d.Prerequisites {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(p.String())
		}
	}

	if d.UnlockHint != "" {
		sb.WriteString("\nUnlock Condition: ")
		sb.WriteString(d.UnlockHint)
	}

	return sb.String()
}

// clone returns a copy that does not share the prerequisite slice.
func (d Definition) clone() Definition {
	if d.Prerequisites != nil {
		d.Prerequisites = append([]ID(nil), d.Prerequisites...)
	}
	return d
}
