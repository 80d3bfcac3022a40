package threadview

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the bindings a focused panel handles.
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Collapse key.Binding
	Replies  key.Binding
	FoldAll  key.Binding
	Parent   key.Binding
	NextSib  key.Binding
	Top      key.Binding
	Bottom   key.Binding
	HalfDown key.Binding
	HalfUp   key.Binding
}

// DefaultKeyMap returns the panel bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:       key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/up", "up")),
		Down:     key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/down", "down")),
		Collapse: key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "collapse/expand")),
		Replies:  key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "show/hide replies")),
		FoldAll:  key.NewBinding(key.WithKeys("z"), key.WithHelp("z", "fold/unfold all")),
		Parent:   key.NewBinding(key.WithKeys("[", "p"), key.WithHelp("[", "parent")),
		NextSib:  key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "next sibling")),
		Top:      key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "top")),
		Bottom:   key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "bottom")),
		HalfDown: key.NewBinding(key.WithKeys("ctrl+d", "pgdown"), key.WithHelp("ctrl+d", "half page down")),
		HalfUp:   key.NewBinding(key.WithKeys("ctrl+u", "pgup"), key.WithHelp("ctrl+u", "half page up")),
	}
}
