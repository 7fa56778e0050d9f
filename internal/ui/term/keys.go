package term

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Split      key.Binding
	Precision  key.Binding
	ToggleHelp key.Binding
	Quit       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Split: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "split"),
		),
		Precision: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "hundredths"),
		),
		ToggleHelp: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (keys keyMap) ShortHelp() []key.Binding {
	return []key.Binding{keys.Split, keys.Quit, keys.ToggleHelp}
}

// FullHelp implements help.KeyMap.
func (keys keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{keys.Split, keys.Precision},
		{keys.ToggleHelp, keys.Quit},
	}
}
