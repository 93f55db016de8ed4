package level

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
)

//go:embed levels/*.yaml
var embedded embed.FS

// Info is the summary shown in level lists.
type Info struct {
	ID    string
	Name  string
	Order int
}

// Catalog is a set of levels keyed by ID.
type Catalog struct {
	levels map[string]*Level
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{levels: make(map[string]*Level)}
}

// Register adds l. IDs must be unique.
func (c *Catalog) Register(l *Level) error {
	if _, exists := c.levels[l.ID]; exists {
		return fmt.Errorf("level: %q already registered", l.ID)
	}
	c.levels[l.ID] = l
	return nil
}

// List returns every level ordered by Order, then ID.
func (c *Catalog) List() []Info {
	result := make([]Info, 0, len(c.levels))
	for _, l := range c.levels {
		result = append(result, Info{ID: l.ID, Name: l.Name, Order: l.Order})
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Order != result[j].Order {
			return result[i].Order < result[j].Order
		}
		return result[i].ID < result[j].ID
	})
	return result
}

// Get returns the level with the given ID.
func (c *Catalog) Get(id string) (*Level, error) {
	l, ok := c.levels[id]
	if !ok {
		return nil, fmt.Errorf("level: unknown level %q", id)
	}
	return l, nil
}

// Exists checks if a level with the given ID is registered.
func (c *Catalog) Exists(id string) bool {
	_, ok := c.levels[id]
	return ok
}

// Keys returns every condition key the catalog's markers and quests fire.
func (c *Catalog) Keys(key func(event, name string) string) []string {
	seen := make(map[string]bool)
	var out []string
	add := func(k string) {
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	for _, info := range c.List() {
		l := c.levels[info.ID]
		for _, m := range l.Markers {
			add(key(m.Event, m.Name))
		}
		if l.Quest != "" {
			add(key("quest_completed", l.Quest))
		}
	}
	return out
}

// Load parses every *.yaml file at the root of fsys.
func Load(fsys fs.FS) (*Catalog, error) {
	c := NewCatalog()
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("level: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != ".yaml" {
			continue
		}
		data, err := fs.ReadFile(fsys, e.Name())
		if err != nil {
			return nil, fmt.Errorf("level: %w", err)
		}
		l, err := Parse(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", e.Name(), err)
		}
		if err := c.Register(l); err != nil {
			return nil, err
		}
	}
	for _, l := range c.levels {
		if l.Next != "" && !c.Exists(l.Next) {
			return nil, fmt.Errorf("level %s: next level %q does not exist", l.ID, l.Next)
		}
	}
	return c, nil
}

// LoadEmbedded loads the levels built into the binary.
func LoadEmbedded() (*Catalog, error) {
	sub, err := fs.Sub(embedded, "levels")
	if err != nil {
		return nil, fmt.Errorf("level: %w", err)
	}
	return Load(sub)
}
