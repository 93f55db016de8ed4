package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-platformer/internal/settings"
)

type memPrefs struct {
	values map[string]string
	err    error
}

func newMemPrefs() *memPrefs { return &memPrefs{values: make(map[string]string)} }

func (m *memPrefs) GetPreference(_ context.Context, key string) (string, bool, error) {
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *memPrefs) SetPreference(_ context.Context, key, value string) error {
	if m.err != nil {
		return m.err
	}
	m.values[key] = value
	return nil
}

func TestSettings_CycleFrameRate(t *testing.T) {
	s := settings.Default()
	prefs := newMemPrefs()
	m := NewSettingsModel(&s, prefs, nil)

	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 120, s.TargetFrameRate)
	assert.Equal(t, "120", prefs.values[settings.KeyTargetFrameRate])
	assert.Equal(t, "0", prefs.values[settings.KeyVSync])

	m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, 30, s.TargetFrameRate)

	m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, settings.Unlimited, s.TargetFrameRate, "wraps to the last choice")
	assert.Contains(t, m.View(), "< Unlimited >")
}

func TestSettings_VSyncAndPresets(t *testing.T) {
	s := settings.Default()
	prefs := newMemPrefs()
	m := NewSettingsModel(&s, prefs, nil)

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, s.VSync)
	assert.Equal(t, "1", prefs.values[settings.KeyVSync])
	assert.Equal(t, 60, s.TickRate())

	m.Update(runes("3"))
	assert.Equal(t, 240, s.TargetFrameRate)
	assert.False(t, s.VSync, "presets turn VSync off")

	m.Update(runes("4"))
	assert.Equal(t, settings.Unlimited, s.TargetFrameRate)

	m.Update(runes("v"))
	assert.True(t, s.VSync)
	assert.Equal(t, settings.Unlimited, s.TargetFrameRate, "enable vsync keeps the target")

	loaded, err := settings.Load(context.Background(), prefs, nil)
	require.NoError(t, err)
	assert.Equal(t, s, loaded)
}

func TestSettings_SaveErrorKeepsChange(t *testing.T) {
	s := settings.Default()
	prefs := newMemPrefs()
	prefs.err = errors.New("disk full")
	m := NewSettingsModel(&s, prefs, nil)

	m.ToggleVSync()
	assert.True(t, s.VSync)
	require.Error(t, m.Err())
	assert.Contains(t, m.View(), "disk full")
}

func TestSettings_WithoutStore(t *testing.T) {
	s := settings.Settings{TargetFrameRate: 75}
	m := NewSettingsModel(&s, nil, nil)
	assert.Contains(t, m.View(), "< 60 FPS >", "unknown saved rate shows the 60 FPS choice")

	m.Preset(120)
	assert.Equal(t, 120, s.TargetFrameRate)
	assert.NoError(t, m.Err())

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, m.Done())
	m.Open()
	assert.False(t, m.Done())
}
