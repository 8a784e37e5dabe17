package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the explorer key bindings.
type KeyMap struct {
	Left     key.Binding
	Right    key.Binding
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Widen    key.Binding
	Narrow   key.Binding
	Zero     key.Binding
	Sweep    key.Binding
	Help     key.Binding
	Quit     key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left:     key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "coarser digit")),
		Right:    key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "finer digit")),
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "digit +1")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "digit -1")),
		PageUp:   key.NewBinding(key.WithKeys("pgup", "K"), key.WithHelp("pgup", "digit +780")),
		PageDown: key.NewBinding(key.WithKeys("pgdown", "J"), key.WithHelp("pgdn", "digit -780")),
		Widen:    key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "add finer digit")),
		Narrow:   key.NewBinding(key.WithKeys("-", "_"), key.WithHelp("-", "drop finest digit")),
		Zero:     key.NewBinding(key.WithKeys("0"), key.WithHelp("0", "reset")),
		Sweep:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sweep")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Up, k.Down, k.Sweep, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Up, k.Down},
		{k.PageUp, k.PageDown, k.Widen, k.Narrow},
		{k.Zero, k.Sweep, k.Help, k.Quit},
	}
}
