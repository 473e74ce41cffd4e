package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit  key.Binding
	Send  key.Binding
	Prev  key.Binding
	Next  key.Binding
	Pick  key.Binding
	Clear key.Binding
}

var keys = keyMap{
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
	Send: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "send"),
	),
	Prev: key.NewBinding(
		key.WithKeys("up", "shift+tab"),
		key.WithHelp("↑", "previous option"),
	),
	Next: key.NewBinding(
		key.WithKeys("down", "tab"),
		key.WithHelp("↓", "next option"),
	),
	Pick: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "pick option"),
	),
	Clear: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "clear input"),
	),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Send, k.Next, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Send, k.Prev, k.Next},
		{k.Pick, k.Clear, k.Quit},
	}
}
