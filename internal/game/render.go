package game

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-platformer/internal/ability"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/level"
)

// Glyphs
const (
	GlyphPlayer = '●'
	GlyphCling  = '◐'
	GlyphDash   = '◆'
	GlyphSolid  = '█'
	GlyphSpikes = '▲'
	GlyphExit   = '⌂'
	GlyphItem   = '✦'
	GlyphBoss   = 'Ω'
	GlyphArea   = '░'
	GlyphQuest  = '?'
	hudRows     = 1
	abilityGap  = 2
)

// Render draws the level around the player, the HUD and any overlays.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.level == nil {
		dst.DrawTextCentered(dst.Height()/2, "No level loaded", core.ColorGray)
		return
	}

	view := g.viewport(dst)
	g.drawTiles(dst, view)
	g.drawMarkers(dst, view)
	g.drawPlayer(dst, view)
	g.drawHUD(dst)

	for i, t := range g.toasts {
		dst.DrawTextCentered(hudRows+1+i, " "+t.text+" ", core.ColorYellow)
	}

	switch {
	case g.complete:
		next := "Enter: next level  R: restart"
		if g.level.Next == "" {
			next = "Enter: menu  R: restart"
		}
		dst.Message("LEVEL COMPLETE", core.ColorGreen,
			fmt.Sprintf("%s cleared with %d deaths", g.level.Name, g.deaths), next)
	case g.paused:
		dst.Message("PAUSED", core.ColorYellow, "Press P to resume")
	}
}

func (g *Game) viewport(dst *core.Screen) core.Rect {
	h := dst.Height() - hudRows
	return core.Follow(int(g.body.X), int(g.body.Y), dst.Width(), h, g.level.Width, g.level.Height)
}

func (g *Game) drawTiles(dst *core.Screen, view core.Rect) {
	for sy := 0; sy < view.H; sy++ {
		for sx := 0; sx < view.W; sx++ {
			wx, wy := view.X+sx, view.Y+sy
			switch g.level.TileAt(wx, wy) {
			case level.TileSolid:
				dst.SetColored(sx, sy+hudRows, GlyphSolid, core.ColorGray)
			case level.TileSpikes:
				dst.SetColored(sx, sy+hudRows, GlyphSpikes, core.ColorRed)
			case level.TileExit:
				dst.SetColored(sx, sy+hudRows, GlyphExit, core.ColorGreen)
			}
		}
	}
}

func (g *Game) drawMarkers(dst *core.Screen, view core.Rect) {
	for i, m := range g.level.Markers {
		if !view.Contains(m.X, m.Y) {
			continue
		}
		sx, sy := m.X-view.X, m.Y-view.Y+hudRows
		switch m.Event {
		case "item_collected":
			if !g.reached[i] {
				dst.SetColored(sx, sy, GlyphItem, core.ColorYellow)
			}
		case "boss_defeated":
			if !g.reached[i] {
				dst.SetColored(sx, sy, GlyphBoss, core.ColorMagenta)
			}
		case "area_entered":
			c := core.ColorBlue
			if g.reached[i] {
				c = core.ColorGray
			}
			dst.SetColored(sx, sy, GlyphArea, c)
		default:
			dst.SetColored(sx, sy, GlyphQuest, core.ColorOrange)
		}
	}
}

func (g *Game) drawPlayer(dst *core.Screen, view core.Rect) {
	px, py := int(g.body.X+0.5), int(g.body.Y+0.5)
	if !view.Contains(px, py) {
		return
	}
	glyph := GlyphPlayer
	switch {
	case g.body.Dashing():
		glyph = GlyphDash
	case g.body.Clinging:
		glyph = GlyphCling
	}
	dst.SetColored(px-view.X, py-view.Y+hudRows, glyph, core.ColorCyan)
}

// drawHUD writes the level name, death count and ability strip on row 0.
func (g *Game) drawHUD(dst *core.Screen) {
	left := fmt.Sprintf(" %s  Deaths: %d", g.level.Name, g.deaths)
	dst.DrawTextColored(0, 0, left, core.ColorWhite)

	var names []string
	var colors []core.Color
	for _, id := range ability.AllIDs() {
		def, ok := g.abilities.Definition(id)
		if !ok {
			continue
		}
		label := def.Name
		c := core.ColorGray
		if g.abilities.Has(id) {
			c = core.ColorGreen
			if id == ability.Dash && g.body.DashCooldown() > 0 {
				label = fmt.Sprintf("%s %.1fs", def.Name, g.body.DashCooldown())
				c = core.ColorOrange
			}
		}
		names = append(names, label)
		colors = append(colors, c)
	}

	width := len([]rune(strings.Join(names, strings.Repeat(" ", abilityGap)))) + 1
	x := dst.Width() - width
	if x <= len([]rune(left)) {
		return
	}
	for i, n := range names {
		dst.DrawTextColored(x, 0, n, colors[i])
		x += len([]rune(n)) + abilityGap
	}
}
