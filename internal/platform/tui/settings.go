package tui

import (
	"context"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-platformer/internal/settings"
)

const (
	rowFrameRate = iota
	rowVSync
	rowPresets
	settingsRows
)

// presetRates are the quick choices bound to the number keys.
var presetRates = []int{60, 120, 240, settings.Unlimited}

// SettingsModel edits the frame rate and VSync. Every change is applied to
// the shared settings at once and saved when a store is attached.
type SettingsModel struct {
	current *settings.Settings
	store   settings.Store // nil keeps changes in memory
	logger  *log.Logger

	cursor int
	index  int // position in settings.FrameRates
	err    error
	done   bool
}

// NewSettingsModel edits current in place.
func NewSettingsModel(current *settings.Settings, store settings.Store, logger *log.Logger) *SettingsModel {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &SettingsModel{
		current: current,
		store:   store,
		logger:  logger,
		index:   settings.IndexOf(current.TargetFrameRate),
	}
}

// Done reports whether the player left the screen.
func (m *SettingsModel) Done() bool { return m.done }

// Open readies the screen for display.
func (m *SettingsModel) Open() {
	m.done = false
	m.err = nil
	m.index = settings.IndexOf(m.current.TargetFrameRate)
}

// Err is the last save error.
func (m *SettingsModel) Err() error { return m.err }

// cycle moves the frame rate choice by delta.
func (m *SettingsModel) cycle(delta int) {
	n := len(settings.FrameRates)
	m.index = ((m.index+delta)%n + n) % n
	m.apply(func(s *settings.Settings) error {
		return s.SetFrameRate(settings.FrameRates[m.index])
	})
}

// ToggleVSync flips VSync.
func (m *SettingsModel) ToggleVSync() {
	m.apply(func(s *settings.Settings) error {
		s.VSync = !s.VSync
		return nil
	})
}

// Preset selects one of the preset rates and turns VSync off.
func (m *SettingsModel) Preset(rate int) {
	m.apply(func(s *settings.Settings) error { return s.Preset(rate) })
	m.index = settings.IndexOf(m.current.TargetFrameRate)
}

// EnableVSync is the "Enable VSync" preset.
func (m *SettingsModel) EnableVSync() {
	m.apply(func(s *settings.Settings) error {
		s.VSync = true
		return nil
	})
}

func (m *SettingsModel) apply(change func(*settings.Settings) error) {
	next := *m.current
	if err := change(&next); err != nil {
		m.err = err
		return
	}
	*m.current = next
	m.err = nil
	if m.store == nil {
		return
	}
	if err := settings.Save(context.Background(), m.store, next); err != nil {
		m.err = err
		m.logger.Error("saving settings", "err", err)
	}
}

// Update handles settings keys.
func (m *SettingsModel) Update(msg tea.Msg) tea.Cmd {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	keys := DefaultKeyMap()
	switch {
	case key.Matches(km, keys.Back), key.Matches(km, keys.Quit):
		m.done = true
	case key.Matches(km, keys.Up):
		m.cursor = (m.cursor - 1 + settingsRows) % settingsRows
	case key.Matches(km, keys.Down):
		m.cursor = (m.cursor + 1) % settingsRows
	case key.Matches(km, keys.Left):
		if m.cursor == rowFrameRate {
			m.cycle(-1)
		}
	case key.Matches(km, keys.Right):
		if m.cursor == rowFrameRate {
			m.cycle(1)
		}
	case key.Matches(km, keys.Confirm), key.Matches(km, keys.Jump):
		switch m.cursor {
		case rowFrameRate:
			m.cycle(1)
		case rowVSync:
			m.ToggleVSync()
		}
	case km.String() == "v":
		m.EnableVSync()
	default:
		s := km.String()
		if len(s) == 1 && s[0] >= '1' && int(s[0]-'1') < len(presetRates) {
			m.Preset(presetRates[s[0]-'1'])
		}
	}
	return nil
}

// View renders the settings screen.
func (m *SettingsModel) View() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("SETTINGS"))
	sb.WriteString("\n\n")

	rate := "< " + settings.Label(settings.FrameRates[m.index]) + " >"
	if m.current.VSync {
		rate += dimStyle.Render("  (VSync overrides)")
	}
	vsync := "Off"
	if m.current.VSync {
		vsync = "On"
	}

	presets := make([]string, 0, len(presetRates)+1)
	for i, r := range presetRates {
		presets = append(presets, string(rune('1'+i))+") "+settings.Label(r))
	}
	presets = append(presets, "v) Enable VSync")

	rows := [settingsRows]string{
		"Frame rate: " + rate,
		"VSync:      " + vsync,
		"Presets:    " + strings.Join(presets, "  "),
	}
	for i, r := range rows {
		if i == m.cursor {
			sb.WriteString(okStyle.Render("> " + r))
		} else {
			sb.WriteString("  " + r)
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render("Running at " + m.current.String()))
	sb.WriteString("\n")
	if m.err != nil {
		sb.WriteString(warnStyle.Render("Error: " + m.err.Error()))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render("↑/↓ select  ←/→ change  enter toggle  esc back"))
	return boxStyle.Render(sb.String())
}
