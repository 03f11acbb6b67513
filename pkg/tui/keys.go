package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Prev      key.Binding
	Next      key.Binding
	Up        key.Binding
	Down      key.Binding
	Open      key.Binding
	Sidebar   key.Binding
	Search    key.Binding
	Escape    key.Binding
	FontUp    key.Binding
	FontDown  key.Binding
	FontReset key.Binding
	Reload    key.Binding
	Home      key.Binding
	Back      key.Binding
	Quit      key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Prev: key.NewBinding(
			key.WithKeys("alt+left", "["),
			key.WithHelp("[", "prev"),
		),
		Next: key.NewBinding(
			key.WithKeys("alt+right", "]"),
			key.WithHelp("]", "next"),
		),
		Up: key.NewBinding(
			key.WithKeys("k"),
			key.WithHelp("k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j"),
			key.WithHelp("j", "down"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Sidebar: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "sidebar"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
		FontUp: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "larger"),
		),
		FontDown: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "smaller"),
		),
		FontReset: key.NewBinding(
			key.WithKeys("0"),
			key.WithHelp("0", "reset size"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Home: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("h", "home"),
		),
		Back: key.NewBinding(
			key.WithKeys("backspace"),
			key.WithHelp("⌫", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Sidebar, k.Search, k.FontUp, k.FontDown, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Prev, k.Next, k.Back, k.Home},
		{k.Up, k.Down, k.Open, k.Sidebar, k.Search, k.Escape},
		{k.FontUp, k.FontDown, k.FontReset, k.Reload, k.Quit},
	}
}
