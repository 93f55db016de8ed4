package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-platformer/internal/level"
)

// MenuChoice is what a menu entry leads to.
type MenuChoice int

const (
	ChoiceNone MenuChoice = iota
	ChoiceLevel
	ChoiceAbilities
	ChoiceSettings
	ChoiceQuit
)

// MenuItem is one selectable menu line.
type MenuItem struct {
	Title   string
	Choice  MenuChoice
	LevelID string // set for ChoiceLevel
}

// MenuModel is the level picker. Levels come first in catalog order,
// followed by the ability panel, settings and quit.
type MenuModel struct {
	items  []MenuItem
	cursor int
	keys   KeyMap
}

// NewMenuModel lists the levels of levels.
func NewMenuModel(levels *level.Catalog) MenuModel {
	infos := levels.List()
	items := make([]MenuItem, 0, len(infos)+3)
	for i, info := range infos {
		items = append(items, MenuItem{
			Title:   fmt.Sprintf("%d. %s", i+1, info.Name),
			Choice:  ChoiceLevel,
			LevelID: info.ID,
		})
	}
	items = append(items,
		MenuItem{Title: "Abilities", Choice: ChoiceAbilities},
		MenuItem{Title: "Settings", Choice: ChoiceSettings},
		MenuItem{Title: "Quit", Choice: ChoiceQuit},
	)
	return MenuModel{items: items, keys: DefaultKeyMap()}
}

// Items returns the menu entries.
func (m MenuModel) Items() []MenuItem { return m.items }

// Cursor returns the highlighted entry index.
func (m MenuModel) Cursor() int { return m.cursor }

// Update moves the cursor. The selected item is returned when the player
// confirms; quitting returns a ChoiceQuit item.
func (m MenuModel) Update(msg tea.KeyMsg) (MenuModel, *MenuItem) {
	switch {
	case key.Matches(msg, m.keys.Quit), key.Matches(msg, m.keys.Back):
		return m, &MenuItem{Choice: ChoiceQuit}
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Panel):
		return m, &MenuItem{Choice: ChoiceAbilities}
	case key.Matches(msg, m.keys.Confirm), key.Matches(msg, m.keys.Jump):
		if len(m.items) > 0 {
			item := m.items[m.cursor]
			return m, &item
		}
	}
	return m, nil
}

// View renders the menu. status is shown under the title.
func (m MenuModel) View(width, height int, status string) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("  P L A T F O R M E R  "))
	b.WriteString("\n\n")
	if status != "" {
		b.WriteString(dimStyle.Render(status))
		b.WriteString("\n\n")
	}

	for i, item := range m.items {
		line := "  " + item.Title
		if i == m.cursor {
			line = okStyle.Render("> " + item.Title)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("↑/↓: navigate  enter: select  tab: abilities  q: quit"))
	return center(width, height, b.String())
}
