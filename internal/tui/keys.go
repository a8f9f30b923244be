package tui

import (
	"github.com/arthur-debert/nanorecipes/nanorecipes/view"
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap holds every key binding of the recipe TUI
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Open     key.Binding
	New      key.Binding
	Edit     key.Binding
	Delete   key.Binding
	Search   key.Binding
	NextTab  key.Binding
	PrevTab  key.Binding
	Back     key.Binding
	Help     key.Binding
	Quit     key.Binding
	Confirm  key.Binding
	Decline  key.Binding
	Save     key.Binding
	Cancel   key.Binding
	NextItem key.Binding
	PrevItem key.Binding
	AddRow   key.Binding
	DelRow   key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		New: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next category"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("shift+tab", "prev category"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "backspace"),
			key.WithHelp("esc", "back"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("y", "Y"),
			key.WithHelp("y", "yes"),
		),
		Decline: key.NewBinding(
			key.WithKeys("n", "N", "esc"),
			key.WithHelp("n", "no"),
		),
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		NextItem: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next field"),
		),
		PrevItem: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev field"),
		),
		AddRow: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("ctrl+n", "add ingredient"),
		),
		DelRow: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("ctrl+d", "remove ingredient"),
		),
	}
}

// stateKeys adapts the key map to help.KeyMap for one view
type stateKeys struct {
	keys  KeyMap
	state view.State
}

// ShortHelp implements help.KeyMap
func (s stateKeys) ShortHelp() []key.Binding {
	k := s.keys
	switch s.state {
	case view.StateDetail:
		return []key.Binding{k.Back, k.Edit, k.Delete, k.Quit}
	case view.StateForm:
		return []key.Binding{k.Save, k.Cancel, k.NextItem, k.AddRow}
	default:
		return []key.Binding{k.Open, k.New, k.Search, k.NextTab, k.Help, k.Quit}
	}
}

// FullHelp implements help.KeyMap
func (s stateKeys) FullHelp() [][]key.Binding {
	k := s.keys
	switch s.state {
	case view.StateDetail:
		return [][]key.Binding{{k.Up, k.Down}, {k.Back, k.Edit, k.Delete}, {k.Quit}}
	case view.StateForm:
		return [][]key.Binding{{k.NextItem, k.PrevItem}, {k.AddRow, k.DelRow}, {k.Save, k.Cancel}}
	default:
		return [][]key.Binding{
			{k.Up, k.Down, k.Open},
			{k.New, k.Edit, k.Delete},
			{k.Search, k.NextTab, k.PrevTab},
			{k.Help, k.Quit},
		}
	}
}
