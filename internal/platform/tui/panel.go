package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-platformer/internal/ability"
)

// Filter selects which abilities the panel lists.
type Filter int

const (
	FilterAll Filter = iota
	FilterUnlocked
	FilterUnlockable
)

// String returns the filter name used by the CLI flag.
func (f Filter) String() string {
	switch f {
	case FilterUnlocked:
		return "unlocked"
	case FilterUnlockable:
		return "unlockable"
	default:
		return "all"
	}
}

// ParseFilter parses "all", "unlocked" or "unlockable".
func ParseFilter(s string) (Filter, error) {
	switch strings.ToLower(s) {
	case "", "all":
		return FilterAll, nil
	case "unlocked":
		return FilterUnlocked, nil
	case "unlockable":
		return FilterUnlockable, nil
	}
	return FilterAll, fmt.Errorf("tui: unknown filter %q", s)
}

// Filtered returns the abilities of reg that f lists, in catalog order.
func Filtered(reg *ability.Registry, f Filter) []ability.Definition {
	switch f {
	case FilterUnlocked:
		return reg.Unlocked()
	case FilterUnlockable:
		return reg.Unlockable()
	default:
		return reg.Catalog().All()
	}
}

// Status is the panel status column for def.
func Status(reg *ability.Registry, def ability.Definition) string {
	switch {
	case reg.Has(def.ID):
		return "unlocked"
	case reg.CanUnlock(def.ID):
		return "unlockable"
	default:
		return "locked"
	}
}

// ConditionSource reports the condition key registered for an ability.
type ConditionSource interface {
	ConditionFor(id ability.ID) (string, bool)
}

type panelKeys struct {
	Up             key.Binding
	Down           key.Binding
	Unlock         key.Binding
	Use            key.Binding
	All            key.Binding
	UnlockedOnly   key.Binding
	UnlockableOnly key.Binding
	Close          key.Binding
}

func defaultPanelKeys() panelKeys {
	return panelKeys{
		Up:             key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑", "up")),
		Down:           key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓", "down")),
		Unlock:         key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "unlock")),
		Use:            key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "use")),
		All:            key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "all")),
		UnlockedOnly:   key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "unlocked only")),
		UnlockableOnly: key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "unlockable only")),
		Close:          key.NewBinding(key.WithKeys("esc", "tab"), key.WithHelp("esc", "close")),
	}
}

func (k panelKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Unlock, k.Use, k.All, k.UnlockedOnly, k.UnlockableOnly, k.Close}
}

func (k panelKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, k.ShortHelp()}
}

// Panel lists abilities in a table and lets the player unlock or use them.
// It rebuilds its rows whenever the registry reports an unlock or a revoke.
type Panel struct {
	reg        *ability.Registry
	conditions ConditionSource

	table table.Model
	help  help.Model
	keys  panelKeys

	filter  Filter
	items   []ability.Definition
	stale   bool
	message string
	closed  bool

	unsubs []func()
}

// NewPanel creates a panel over reg. conditions may be nil.
func NewPanel(reg *ability.Registry, conditions ConditionSource) *Panel {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Ability", Width: 14},
			{Title: "Status", Width: 11},
			{Title: "Unlock condition", Width: 28},
		}),
		table.WithFocused(true),
		table.WithHeight(6),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("0")).
		Background(lipgloss.Color("14"))
	t.SetStyles(styles)

	p := &Panel{
		reg:        reg,
		conditions: conditions,
		table:      t,
		help:       help.New(),
		keys:       defaultPanelKeys(),
		stale:      true,
	}
	markStale := func(ability.Definition) { p.stale = true }
	p.unsubs = append(p.unsubs, reg.Subscribe(markStale), reg.SubscribeRevoke(markStale))
	p.refresh()
	return p
}

// Close detaches the panel from the registry.
func (p *Panel) Close() {
	for _, unsub := range p.unsubs {
		unsub()
	}
	p.unsubs = nil
}

// Filter returns the active filter.
func (p *Panel) Filter() Filter { return p.filter }

// SetFilter switches the listing. The two "only" filters exclude each other.
func (p *Panel) SetFilter(f Filter) {
	if f == p.filter {
		return
	}
	p.filter = f
	p.stale = true
	p.refresh()
}

// toggle turns f on, or back to FilterAll when it is already on.
func (p *Panel) toggle(f Filter) {
	if p.filter == f {
		p.SetFilter(FilterAll)
		return
	}
	p.SetFilter(f)
}

// Items returns the listed abilities.
func (p *Panel) Items() []ability.Definition {
	p.refresh()
	return p.items
}

// Selected returns the ability under the cursor.
func (p *Panel) Selected() (ability.Definition, bool) {
	p.refresh()
	i := p.table.Cursor()
	if i < 0 || i >= len(p.items) {
		return ability.Definition{}, false
	}
	return p.items[i], true
}

// Message is the result line of the last action.
func (p *Panel) Message() string { return p.message }

// Done reports whether the player closed the panel. It resets on Open.
func (p *Panel) Done() bool { return p.closed }

// Open readies the panel for display.
func (p *Panel) Open() {
	p.closed = false
	p.message = ""
	p.stale = true
	p.refresh()
}

func (p *Panel) refresh() {
	if !p.stale {
		return
	}
	p.stale = false
	p.items = Filtered(p.reg, p.filter)

	rows := make([]table.Row, 0, len(p.items))
	for _, def := range p.items {
		rows = append(rows, table.Row{def.Name, Status(p.reg, def), p.condition(def)})
	}
	cursor := p.table.Cursor()
	p.table.SetRows(rows)
	if cursor >= len(rows) {
		cursor = len(rows) - 1
	}
	if cursor < 0 {
		cursor = 0
	}
	p.table.SetCursor(cursor)
}

func (p *Panel) condition(def ability.Definition) string {
	switch {
	case def.Starting:
		return "starting ability"
	case def.UnlockHint != "":
		return def.UnlockHint
	case p.conditions != nil:
		if k, ok := p.conditions.ConditionFor(def.ID); ok && k != "" {
			return k
		}
	}
	return "prerequisites only"
}

// UnlockSelected runs a gated unlock on the selected ability.
func (p *Panel) UnlockSelected() {
	def, ok := p.Selected()
	if !ok {
		return
	}
	outcome, err := p.reg.TryUnlock(def.ID)
	switch {
	case err != nil:
		p.message = err.Error()
	case outcome == ability.Granted:
		p.message = fmt.Sprintf("Unlocked %s", def.Name)
	case outcome == ability.AlreadyUnlocked:
		p.message = fmt.Sprintf("%s is already unlocked", def.Name)
	default:
		p.message = fmt.Sprintf("Cannot unlock %s: prerequisites not met", def.Name)
	}
	p.refresh()
}

// UseSelected activates the selected ability.
func (p *Panel) UseSelected() {
	def, ok := p.Selected()
	if !ok {
		return
	}
	_, err := p.reg.Use(def.ID)
	switch {
	case err == nil:
		p.message = fmt.Sprintf("Used %s", def.Name)
	case errors.Is(err, ability.ErrPassive):
		p.message = fmt.Sprintf("%s is passive", def.Name)
	case errors.Is(err, ability.ErrLocked):
		p.message = fmt.Sprintf("%s is locked", def.Name)
	default:
		p.message = err.Error()
	}
}

// Update handles panel keys.
func (p *Panel) Update(msg tea.Msg) tea.Cmd {
	p.refresh()
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch {
	case key.Matches(km, p.keys.Close):
		p.closed = true
		return nil
	case key.Matches(km, p.keys.Unlock):
		p.UnlockSelected()
		return nil
	case key.Matches(km, p.keys.Use):
		p.UseSelected()
		return nil
	case key.Matches(km, p.keys.All):
		p.SetFilter(FilterAll)
		return nil
	case key.Matches(km, p.keys.UnlockedOnly):
		p.toggle(FilterUnlocked)
		return nil
	case key.Matches(km, p.keys.UnlockableOnly):
		p.toggle(FilterUnlockable)
		return nil
	}

	var cmd tea.Cmd
	p.table, cmd = p.table.Update(msg)
	return cmd
}

func checkbox(on bool, label string) string {
	if on {
		return okStyle.Render("[x] " + label)
	}
	return dimStyle.Render("[ ] " + label)
}

// View renders the panel.
func (p *Panel) View() string {
	p.refresh()

	var sb strings.Builder
	sb.WriteString(titleStyle.Render("ABILITIES"))
	sb.WriteString("  ")
	sb.WriteString(checkbox(p.filter == FilterUnlocked, "Unlocked only"))
	sb.WriteString("  ")
	sb.WriteString(checkbox(p.filter == FilterUnlockable, "Unlockable only"))
	sb.WriteString("\n\n")

	if len(p.items) == 0 {
		sb.WriteString(dimStyle.Render("No abilities match this filter."))
		sb.WriteString("\n")
	} else {
		sb.WriteString(p.table.View())
		sb.WriteString("\n\n")
		if def, ok := p.Selected(); ok {
			desc := def.Description
			if !p.reg.Has(def.ID) {
				desc = def.FullDescription()
			}
			sb.WriteString(lipgloss.NewStyle().Width(56).Render(desc))
			sb.WriteString("\n")
		}
	}

	if p.message != "" {
		sb.WriteString("\n")
		sb.WriteString(warnStyle.Render(p.message))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	sb.WriteString(p.help.View(p.keys))
	return boxStyle.Render(sb.String())
}
