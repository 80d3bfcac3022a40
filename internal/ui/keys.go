package ui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/fragmede/threadwatch/internal/ui/threadview"
)

// KeyMap holds the bindings handled by the app. Panel holds the ones the
// focused threadview handles.
type KeyMap struct {
	Quit        key.Binding
	Help        key.Binding
	SwitchPanel key.Binding
	EditURL     key.Binding
	Load        key.Binding
	Cancel      key.Binding
	Refresh     key.Binding
	AutoRefresh key.Binding
	Faster      key.Binding
	Slower      key.Binding
	Dismiss     key.Binding
	Panel       threadview.KeyMap
}

var Keys = KeyMap{
	Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	SwitchPanel: key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "switch panel")),
	EditURL:     key.NewBinding(key.WithKeys("/", "i"), key.WithHelp("/", "enter url")),
	Load:        key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "load")),
	Cancel:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	Refresh:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh both")),
	AutoRefresh: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "auto-refresh")),
	Faster:      key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "interval -5s")),
	Slower:      key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "interval +5s")),
	Dismiss:     key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "dismiss error")),
	Panel:       threadview.DefaultKeyMap(),
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.SwitchPanel, k.EditURL, k.Panel.Collapse, k.Refresh, k.AutoRefresh, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Panel.Up, k.Panel.Down, k.Panel.Parent, k.Panel.NextSib, k.Panel.Top, k.Panel.Bottom},
		{k.Panel.Collapse, k.Panel.Replies, k.Panel.FoldAll},
		{k.SwitchPanel, k.EditURL, k.Load, k.Cancel},
		{k.Refresh, k.AutoRefresh, k.Slower, k.Faster, k.Dismiss},
		{k.Help, k.Quit},
	}
}
