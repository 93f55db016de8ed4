package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

// KeyMap holds the key bindings shared by every screen.
type KeyMap struct {
	Left  key.Binding
	Right key.Binding
	Up    key.Binding
	Down  key.Binding
	Jump  key.Binding
	Dash  key.Binding
	// DashLeft and DashRight dash with a direction in one key.
	DashLeft  key.Binding
	DashRight key.Binding
	Panel     key.Binding
	Confirm   key.Binding
	Back      key.Binding
	Restart   key.Binding
	Pause     key.Binding
	Quit      key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left:      key.NewBinding(key.WithKeys("left", "a", "h"), key.WithHelp("←/a", "left")),
		Right:     key.NewBinding(key.WithKeys("right", "d", "l"), key.WithHelp("→/d", "right")),
		Up:        key.NewBinding(key.WithKeys("up", "w"), key.WithHelp("↑/w", "climb")),
		Down:      key.NewBinding(key.WithKeys("down", "s"), key.WithHelp("↓/s", "down")),
		Jump:      key.NewBinding(key.WithKeys(" ", "k"), key.WithHelp("space", "jump")),
		Dash:      key.NewBinding(key.WithKeys("x", "j"), key.WithHelp("x", "dash")),
		DashLeft:  key.NewBinding(key.WithKeys("shift+left"), key.WithHelp("⇧←", "dash left")),
		DashRight: key.NewBinding(key.WithKeys("shift+right"), key.WithHelp("⇧→", "dash right")),
		Panel:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "abilities")),
		Confirm:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		Back:      key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),
		Restart:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "restart")),
		Pause:     key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pause")),
		Quit:      key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Jump, k.Dash, k.Panel, k.Pause, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Up, k.Down},
		{k.Jump, k.Dash, k.DashLeft, k.DashRight},
		{k.Panel, k.Pause, k.Restart, k.Back, k.Quit},
	}
}

// MapKey translates a key message to a game action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (k KeyMap) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit, true
	case key.Matches(msg, k.Left):
		return core.ActionLeft, false
	case key.Matches(msg, k.Right):
		return core.ActionRight, false
	case key.Matches(msg, k.Up):
		return core.ActionUp, false
	case key.Matches(msg, k.Down):
		return core.ActionDown, false
	case key.Matches(msg, k.Jump):
		return core.ActionJump, false
	case key.Matches(msg, k.Dash, k.DashLeft, k.DashRight):
		return core.ActionDash, false
	case key.Matches(msg, k.Panel):
		return core.ActionPanel, false
	case key.Matches(msg, k.Confirm):
		return core.ActionConfirm, false
	case key.Matches(msg, k.Back):
		return core.ActionBack, false
	case key.Matches(msg, k.Restart):
		return core.ActionRestart, false
	case key.Matches(msg, k.Pause):
		return core.ActionPause, false
	}
	return core.ActionNone, false
}

// DashDirection returns the direction a directional dash key implies, or
// ActionNone for every other key.
func (k KeyMap) DashDirection(msg tea.KeyMsg) core.Action {
	switch {
	case key.Matches(msg, k.DashLeft):
		return core.ActionLeft
	case key.Matches(msg, k.DashRight):
		return core.ActionRight
	}
	return core.ActionNone
}

// DefaultHoldTime is how long a direction stays held after its last key
// event. Terminals report presses and auto-repeats, never releases.
const DefaultHoldTime = 180 * time.Millisecond

// Input turns key presses into per-tick input frames. Directions are held
// until they time out or the opposite direction is pressed; every other
// action lasts one tick.
type Input struct {
	holdFor time.Duration
	held    map[core.Action]time.Time
	taps    []core.Action
}

// NewInput creates an input tracker.
func NewInput(holdFor time.Duration) *Input {
	return &Input{holdFor: holdFor, held: make(map[core.Action]time.Time)}
}

var opposite = map[core.Action]core.Action{
	core.ActionLeft:  core.ActionRight,
	core.ActionRight: core.ActionLeft,
	core.ActionUp:    core.ActionDown,
	core.ActionDown:  core.ActionUp,
}

// Press records a at time now.
func (in *Input) Press(a core.Action, now time.Time) {
	if a == core.ActionNone {
		return
	}
	if o, ok := opposite[a]; ok {
		in.held[a] = now
		delete(in.held, o)
		return
	}
	in.taps = append(in.taps, a)
}

// Frame returns the actions active at now and consumes the taps.
func (in *Input) Frame(now time.Time) core.InputFrame {
	f := core.NewInputFrame()
	for a, at := range in.held {
		if now.Sub(at) > in.holdFor {
			delete(in.held, a)
			continue
		}
		f.Set(a)
	}
	for _, a := range in.taps {
		f.Set(a)
	}
	in.taps = in.taps[:0]
	return f
}

// Release drops every held direction and pending tap.
func (in *Input) Release() {
	clear(in.held)
	in.taps = in.taps[:0]
}
