package tui

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-platformer/internal/app"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/game"
	"github.com/vovakirdan/tui-platformer/internal/level"
	"github.com/vovakirdan/tui-platformer/internal/observe"
	"github.com/vovakirdan/tui-platformer/internal/settings"
)

// Env is everything a session uses. Player and Settings belong to the
// session; Levels, Prefs and Metrics may be shared.
type Env struct {
	Player        *app.Player
	Levels        *level.Catalog
	Settings      *settings.Settings
	Prefs         settings.Store // nil keeps settings in memory
	Logger        *log.Logger
	Metrics       *observe.Metrics
	ScreenshotDir string // empty disables ctrl+s
}

type view int

const (
	viewMenu view = iota
	viewGame
	viewPanel
	viewSettings
)

// Model is the Bubble Tea model of one session. It owns the menu, the
// running game, the ability panel and the settings screen.
type Model struct {
	env     *Env
	runtime core.RuntimeConfig
	keys    KeyMap

	view       view
	returnTo   view // where the panel goes back to
	menu       MenuModel
	panel      *Panel
	settings   *SettingsModel
	standalone bool // leaving the game quits

	game     *game.Game
	screen   *core.Screen
	input    *Input
	state    core.GameState
	ticking  bool
	lastTick time.Time

	status   string
	quitting bool
}

// NewModel creates a session that starts at the level menu.
func NewModel(env *Env, runtime core.RuntimeConfig) Model {
	if env.Logger == nil {
		env.Logger = log.New(io.Discard)
	}
	if env.Settings == nil {
		s := settings.Default()
		env.Settings = &s
	}
	runtime.TickRate = env.Settings.TickRate()

	reg := env.Player.Registry
	return Model{
		env:      env,
		runtime:  runtime,
		keys:     DefaultKeyMap(),
		menu:     NewMenuModel(env.Levels),
		panel:    NewPanel(reg, env.Player.Dispatcher),
		settings: NewSettingsModel(env.Settings, env.Prefs, env.Logger.WithPrefix("settings")),
		game:     env.Player.NewGame(),
		screen:   core.NewScreen(runtime.ScreenW, runtime.ScreenH),
		input:    NewInput(DefaultHoldTime),
	}
}

// NewPlayModel creates a session that starts directly in levelID. Leaving
// the game ends the program.
func NewPlayModel(env *Env, runtime core.RuntimeConfig, levelID string) (Model, error) {
	m := NewModel(env, runtime)
	if err := m.startLevel(levelID); err != nil {
		return m, err
	}
	m.standalone = true
	m.ticking = true // Init starts the loop
	return m, nil
}

// Init starts the tick loop when the session opens in a game.
func (m Model) Init() tea.Cmd {
	if m.view == viewGame {
		return tickCmd(m.env.Settings.TickInterval())
	}
	return nil
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.runtime.ScreenW = msg.Width
		m.runtime.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m.quit()
	}

	switch m.view {
	case viewMenu:
		var item *MenuItem
		m.menu, item = m.menu.Update(msg)
		if item != nil {
			return m.choose(*item)
		}
		return m, nil

	case viewPanel:
		cmd := m.panel.Update(msg)
		if m.panel.Done() {
			m.view = m.returnTo
		}
		return m, cmd

	case viewSettings:
		m.settings.Update(msg)
		if m.settings.Done() {
			m.runtime.TickRate = m.env.Settings.TickRate()
			m.view = viewMenu
		}
		return m, nil
	}

	return m.handleGameKey(msg)
}

func (m Model) handleGameKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keys.MapKey(msg)
	if isQuit {
		return m.quit()
	}

	switch action {
	case core.ActionPanel:
		m.input.Release()
		m.panel.Open()
		m.returnTo = viewGame
		m.view = viewPanel
	case core.ActionBack:
		return m.leaveGame()
	case core.ActionRestart:
		m.game.Reset()
		m.state = m.game.State()
	case core.ActionConfirm:
		if m.state.Complete {
			return m.advance()
		}
	default:
		now := time.Now()
		m.input.Press(m.keys.DashDirection(msg), now)
		m.input.Press(action, now)
	}
	return m, nil
}

func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	playing := m.view == viewGame || (m.view == viewPanel && m.returnTo == viewGame)
	if !playing {
		m.ticking = false
		m.lastTick = time.Time{}
		return m, nil
	}

	if !m.lastTick.IsZero() {
		m.env.Metrics.RecordFrame(context.Background(), now.Sub(m.lastTick).Seconds())
	}
	m.lastTick = now

	frame := m.input.Frame(now)
	if m.view == viewGame {
		m.state = m.game.Step(frame)
	}
	return m, tickCmd(m.env.Settings.TickInterval())
}

func (m Model) choose(item MenuItem) (tea.Model, tea.Cmd) {
	switch item.Choice {
	case ChoiceQuit:
		return m.quit()
	case ChoiceAbilities:
		m.panel.Open()
		m.returnTo = viewMenu
		m.view = viewPanel
	case ChoiceSettings:
		m.settings.Open()
		m.view = viewSettings
	case ChoiceLevel:
		if err := m.startLevel(item.LevelID); err != nil {
			m.status = err.Error()
			return m, nil
		}
		return m, m.startTicking()
	}
	return m, nil
}

// startLevel loads id into a fresh game.
func (m *Model) startLevel(id string) error {
	l, err := m.env.Levels.Get(id)
	if err != nil {
		return err
	}
	m.runtime.TickRate = m.env.Settings.TickRate()
	m.game.Load(l, m.runtime)
	m.state = m.game.State()
	m.input.Release()
	m.status = ""
	m.view = viewGame
	m.env.Logger.Info("level started", "level", id, "fps", m.env.Settings.String())
	return nil
}

func (m *Model) startTicking() tea.Cmd {
	if m.ticking {
		return nil
	}
	m.ticking = true
	return tickCmd(m.env.Settings.TickInterval())
}

// advance moves to the next level, or back to the menu after the last one.
func (m Model) advance() (tea.Model, tea.Cmd) {
	next := m.game.Level().Next
	if next == "" {
		m.status = fmt.Sprintf("%s cleared. Abilities: %d/%d",
			m.game.Level().Name, m.state.Unlocked, m.env.Player.Registry.Catalog().Len())
		return m.leaveGame()
	}
	if err := m.startLevel(next); err != nil {
		m.status = err.Error()
		return m.leaveGame()
	}
	return m, m.startTicking()
}

func (m Model) leaveGame() (tea.Model, tea.Cmd) {
	if m.standalone {
		return m.quit()
	}
	m.input.Release()
	m.view = viewMenu
	return m, nil
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	return m, tea.Quit
}

// saveScreenshot writes the current frame as text under ScreenshotDir.
func (m *Model) saveScreenshot() {
	if m.env.ScreenshotDir == "" || m.game.Level() == nil {
		return
	}
	m.game.Render(m.screen)

	if err := os.MkdirAll(m.env.ScreenshotDir, 0o755); err != nil {
		m.env.Logger.Warn("screenshot", "err", err)
		return
	}
	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(m.env.ScreenshotDir, fmt.Sprintf("%s_%s.txt", m.state.Level, timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.env.Logger.Warn("screenshot", "err", err)
	}
}

// View renders the current screen.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	switch m.view {
	case viewMenu:
		status := m.status
		if status == "" {
			status = fmt.Sprintf("Abilities: %d/%d  ·  %s",
				len(m.env.Player.Registry.UnlockedIDs()),
				m.env.Player.Registry.Catalog().Len(),
				m.env.Settings.String())
		}
		return m.menu.View(m.runtime.ScreenW, m.runtime.ScreenH, status)
	case viewPanel:
		return center(m.runtime.ScreenW, m.runtime.ScreenH, m.panel.View())
	case viewSettings:
		return center(m.runtime.ScreenW, m.runtime.ScreenH, m.settings.View())
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// Quitting reports whether the session has ended.
func (m Model) Quitting() bool { return m.quitting }

// Player returns the session's player.
func (m Model) Player() *app.Player { return m.env.Player }

// Close detaches the game and the panel from the player. The player itself
// stays open.
func (m Model) Close() {
	m.game.Close()
	m.panel.Close()
}

// Run starts the Bubble Tea program with m and closes it afterwards.
func Run(m Model, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)
	p := tea.NewProgram(m, opts...)

	final, err := p.Run()
	if fm, ok := final.(Model); ok {
		fm.Close()
	} else {
		m.Close()
	}
	return err
}
