package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up           key.Binding
	Down         key.Binding
	Open         key.Binding
	Close        key.Binding
	NextCategory key.Binding
	PrevCategory key.Binding
	NextYear     key.Binding
	PrevYear     key.Binding
	Clear        key.Binding
	Theme        key.Binding
	Reload       key.Binding
	Quit         key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Up:           key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:         key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Open:         key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "details")),
		Close:        key.NewBinding(key.WithKeys("esc", "backspace"), key.WithHelp("esc", "close")),
		NextCategory: key.NewBinding(key.WithKeys("c"), key.WithHelp("c/C", "category")),
		PrevCategory: key.NewBinding(key.WithKeys("C")),
		NextYear:     key.NewBinding(key.WithKeys("y"), key.WithHelp("y/Y", "year")),
		PrevYear:     key.NewBinding(key.WithKeys("Y")),
		Clear:        key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "clear filters")),
		Theme:        key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
		Reload:       key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Quit:         key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Open, k.NextCategory, k.NextYear, k.Clear, k.Theme, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Open, k.Close},
		{k.NextCategory, k.NextYear, k.Clear},
		{k.Theme, k.Reload, k.Quit},
	}
}
