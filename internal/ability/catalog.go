package ability

import (
	"fmt"
)

// Catalog is the validated, immutable set of ability definitions.
// It is safe to share between players and goroutines.
type Catalog struct {
	defs  []Definition
	index map[ID]int
}

// NewCatalog validates defs and builds the lookup index.
//
// It fails with ErrConfig when an ID repeats, when a prerequisite names an
// ability that is not in defs (or the ability itself), when cooldown or
// energy cost is negative, or when prerequisites form a cycle.
// Definitions without a Kind get the default parameters for their ID.
func NewCatalog(defs []Definition) (*Catalog, error) {
	c := &Catalog{
		defs:  make([]Definition, 0, len(defs)),
		index: make(map[ID]int, len(defs)),
	}

	for _, d := range defs {
		if !d.ID.Valid() {
			return nil, fmt.Errorf("ability: catalog entry %q has invalid id %s: %w", d.Name, d.ID, ErrConfig)
		}
		if _, exists := c.index[d.ID]; exists {
			return nil, fmt.Errorf("ability: duplicate ability id %s: %w", d.ID, ErrConfig)
		}
		if d.Cooldown < 0 || d.EnergyCost < 0 {
			return nil, fmt.Errorf("ability: %s has negative cooldown or energy cost: %w", d.ID, ErrConfig)
		}
		if d.Kind == nil {
			d.Kind = DefaultKind(d.ID)
		} else if d.Kind.Ability() != d.ID {
			return nil, fmt.Errorf("ability: %s carries parameters for %s: %w", d.ID, d.Kind.Ability(), ErrConfig)
		}
		if d.Name == "" {
			d.Name = d.ID.String()
		}

		c.index[d.ID] = len(c.defs)
		c.defs = append(c.defs, d.clone())
	}

	for _, d := range c.defs {
		for _, p := range d.Prerequisites {
			if p == d.ID {
				return nil, fmt.Errorf("ability: %s requires itself: %w", d.ID, ErrConfig)
			}
			if _, ok := c.index[p]; !ok {
				return nil, fmt.Errorf("ability: %s requires unknown ability %s: %w", d.ID, p, ErrConfig)
			}
		}
	}

	if cycle := c.findCycle(); cycle != nil {
		return nil, fmt.Errorf("ability: prerequisite cycle %v: %w", cycle, ErrConfig)
	}

	return c, nil
}

// findCycle returns the IDs of a prerequisite cycle, or nil if there is none.
func (c *Catalog) findCycle() []ID {
	const (
		unvisited = iota
		visiting
		done
	)
	state := make(map[ID]int, len(c.defs))
	var stack []ID

	var visit func(id ID) []ID
	visit = func(id ID) []ID {
		switch state[id] {
		case visiting:
			for i, s := range stack {
				if s == id {
					return append(append([]ID(nil), stack[i:]...), id)
				}
			}
			return []ID{id}
		case done:
			return nil
		}

		state[id] = visiting
		stack = append(stack, id)
		for _, p := range c.defs[c.index[id]].Prerequisites {
			if cycle := visit(p); cycle != nil {
				return cycle
			}
		}
		stack = stack[:len(stack)-1]
		state[id] = done
		return nil
	}

	for _, d := range c.defs {
		if cycle := visit(d.ID); cycle != nil {
			return cycle
		}
	}
	return nil
}

// Get returns a copy of the definition for id.
func (c *Catalog) Get(id ID) (Definition, bool) {
	i, ok := c.index[id]
	if !ok {
		return Definition{}, false
	}
	return c.defs[i].clone(), true
}

// Contains reports whether id is in the catalog.
func (c *Catalog) Contains(id ID) bool {
	_, ok := c.index[id]
	return ok
}

// All returns copies of every definition in catalog order.
func (c *Catalog) All() []Definition {
	out := make([]Definition, len(c.defs))
	for i, d := range c.defs {
		out[i] = d.clone()
	}
	return out
}

// Len returns the number of abilities in the catalog.
func (c *Catalog) Len() int {
	return len(c.defs)
}

// prerequisites returns the stored slice without copying; callers must not
// modify it.
func (c *Catalog) prerequisites(id ID) []ID {
	return c.defs[c.index[id]].Prerequisites
}
