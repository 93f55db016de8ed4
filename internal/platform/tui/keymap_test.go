package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMapKey(t *testing.T) {
	keys := DefaultKeyMap()
	tests := []struct {
		name   string
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{"a moves left", runes("a"), core.ActionLeft, false},
		{"left arrow", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft, false},
		{"d moves right", runes("d"), core.ActionRight, false},
		{"w climbs", runes("w"), core.ActionUp, false},
		{"space jumps", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")}, core.ActionJump, false},
		{"x dashes", runes("x"), core.ActionDash, false},
		{"shift+left dashes", tea.KeyMsg{Type: tea.KeyShiftLeft}, core.ActionDash, false},
		{"tab opens the panel", tea.KeyMsg{Type: tea.KeyTab}, core.ActionPanel, false},
		{"enter confirms", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionConfirm, false},
		{"esc goes back", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack, false},
		{"r restarts", runes("r"), core.ActionRestart, false},
		{"p pauses", runes("p"), core.ActionPause, false},
		{"q quits", runes("q"), core.ActionQuit, true},
		{"ctrl+c quits", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"unbound key", runes("z"), core.ActionNone, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, quit := keys.MapKey(tt.msg)
			assert.Equal(t, tt.action, action)
			assert.Equal(t, tt.quit, quit)
		})
	}
}

func TestDashDirection(t *testing.T) {
	keys := DefaultKeyMap()
	assert.Equal(t, core.ActionLeft, keys.DashDirection(tea.KeyMsg{Type: tea.KeyShiftLeft}))
	assert.Equal(t, core.ActionRight, keys.DashDirection(tea.KeyMsg{Type: tea.KeyShiftRight}))
	assert.Equal(t, core.ActionNone, keys.DashDirection(runes("x")))
}

func TestInput_DirectionsHoldUntilTimeout(t *testing.T) {
	in := NewInput(DefaultHoldTime)
	t0 := time.Unix(100, 0)

	in.Press(core.ActionLeft, t0)
	f := in.Frame(t0.Add(50 * time.Millisecond))
	assert.True(t, f.Has(core.ActionLeft))

	f = in.Frame(t0.Add(DefaultHoldTime / 2))
	assert.True(t, f.Has(core.ActionLeft), "still held between key repeats")

	f = in.Frame(t0.Add(DefaultHoldTime + time.Millisecond))
	assert.False(t, f.Has(core.ActionLeft))
}

func TestInput_OppositeDirectionReleases(t *testing.T) {
	in := NewInput(DefaultHoldTime)
	t0 := time.Unix(100, 0)

	in.Press(core.ActionLeft, t0)
	in.Press(core.ActionRight, t0)
	f := in.Frame(t0)
	assert.False(t, f.Has(core.ActionLeft))
	assert.True(t, f.Has(core.ActionRight))
	assert.Equal(t, 1.0, f.Axis())
}

func TestInput_TapsLastOneFrame(t *testing.T) {
	in := NewInput(DefaultHoldTime)
	t0 := time.Unix(100, 0)

	in.Press(core.ActionJump, t0)
	in.Press(core.ActionNone, t0)
	assert.True(t, in.Frame(t0).Has(core.ActionJump))
	assert.False(t, in.Frame(t0).Has(core.ActionJump))
}

func TestInput_Release(t *testing.T) {
	in := NewInput(DefaultHoldTime)
	t0 := time.Unix(100, 0)

	in.Press(core.ActionRight, t0)
	in.Press(core.ActionDash, t0)
	in.Release()
	f := in.Frame(t0)
	assert.False(t, f.Has(core.ActionRight))
	assert.False(t, f.Has(core.ActionDash))
}
