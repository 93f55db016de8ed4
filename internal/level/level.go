// Package level loads ASCII tile levels. Levels are immutable once parsed
// and may be shared by every player on a server.
package level

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Tile is the static content of one cell.
type Tile uint8

const (
	TileEmpty Tile = iota
	TileSolid
	TileSpikes
	TileExit
)

// Map characters. Any other non-space rune must be declared as a marker.
const (
	charEmpty  = '.'
	charSolid  = '#'
	charSpikes = '^'
	charExit   = 'E'
	charSpawn  = 'S'
)

// Marker is a cell that fires a condition key when the player reaches it.
type Marker struct {
	X, Y  int
	Rune  rune
	Event string // boss_defeated, item_collected, area_entered, quest_completed
	Name  string
	Label string
}

// Boss reports whether the marker must be stomped from above.
func (m Marker) Boss() bool { return m.Event == "boss_defeated" }

// Item reports whether the marker disappears once reached.
func (m Marker) Item() bool { return m.Event == "item_collected" }

// Level is a parsed tile map.
type Level struct {
	ID     string
	Name   string
	Order  int
	Next   string
	Quest  string // quest completed when the exit is reached
	Width  int
	Height int

	SpawnX, SpawnY int
	Markers        []Marker

	tiles [][]Tile
}

type markerYAML struct {
	Event string `yaml:"event"`
	Name  string `yaml:"name"`
	Label string `yaml:"label"`
}

type levelYAML struct {
	ID      string                `yaml:"id"`
	Name    string                `yaml:"name"`
	Order   int                   `yaml:"order"`
	Next    string                `yaml:"next"`
	Quest   string                `yaml:"quest"`
	Tiles   string                `yaml:"tiles"`
	Markers map[string]markerYAML `yaml:"markers"`
}

var events = map[string]bool{
	"boss_defeated":   true,
	"item_collected":  true,
	"area_entered":    true,
	"quest_completed": true,
}

// Parse decodes a level from YAML.
func Parse(data []byte) (*Level, error) {
	var raw levelYAML
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("level: %w", err)
	}
	if raw.ID == "" {
		return nil, fmt.Errorf("level: missing id")
	}

	markers := make(map[rune]markerYAML, len(raw.Markers))
	for k, m := range raw.Markers {
		r := []rune(k)
		if len(r) != 1 {
			return nil, fmt.Errorf("level %s: marker key %q must be one character", raw.ID, k)
		}
		if !events[m.Event] {
			return nil, fmt.Errorf("level %s: marker %q has unknown event %q", raw.ID, k, m.Event)
		}
		if m.Name == "" {
			return nil, fmt.Errorf("level %s: marker %q has no name", raw.ID, k)
		}
		markers[r[0]] = m
	}

	rows := strings.Split(strings.TrimRight(raw.Tiles, "\n"), "\n")
	l := &Level{
		ID:     raw.ID,
		Name:   raw.Name,
		Order:  raw.Order,
		Next:   raw.Next,
		Quest:  raw.Quest,
		Height: len(rows),
		SpawnX: -1,
	}
	if l.Name == "" {
		l.Name = l.ID
	}
	for _, row := range rows {
		l.Width = max(l.Width, len([]rune(row)))
	}
	if l.Width == 0 {
		return nil, fmt.Errorf("level %s: empty map", l.ID)
	}

	l.tiles = make([][]Tile, l.Height)
	for y, row := range rows {
		l.tiles[y] = make([]Tile, l.Width)
		for x, r := range []rune(row) {
			switch r {
			case charEmpty, ' ':
			case charSolid:
				l.tiles[y][x] = TileSolid
			case charSpikes:
				l.tiles[y][x] = TileSpikes
			case charExit:
				l.tiles[y][x] = TileExit
			case charSpawn:
				if l.SpawnX >= 0 {
					return nil, fmt.Errorf("level %s: more than one spawn", l.ID)
				}
				l.SpawnX, l.SpawnY = x, y
			default:
				m, ok := markers[r]
				if !ok {
					return nil, fmt.Errorf("level %s: undeclared map character %q at %d,%d", l.ID, r, x, y)
				}
				l.Markers = append(l.Markers, Marker{
					X: x, Y: y, Rune: r,
					Event: m.Event, Name: m.Name, Label: m.Label,
				})
			}
		}
	}
	if l.SpawnX < 0 {
		return nil, fmt.Errorf("level %s: no spawn point", l.ID)
	}
	return l, nil
}

// TileAt returns the tile at (x, y); outside the map is empty.
func (l *Level) TileAt(x, y int) Tile {
	if x < 0 || x >= l.Width || y < 0 || y >= l.Height {
		return TileEmpty
	}
	return l.tiles[y][x]
}

// Solid reports whether (x, y) blocks movement. The left and right edges of
// the map are walls; above and below are open.
func (l *Level) Solid(x, y int) bool {
	if x < 0 || x >= l.Width {
		return true
	}
	return l.TileAt(x, y) == TileSolid
}
