package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings for the board.
type KeyMap struct {
	Left  key.Binding
	Right key.Binding
	Up    key.Binding
	Down  key.Binding

	// Keyboard alternative to dragging: move the selected card one
	// column left or right.
	MoveLeft  key.Binding
	MoveRight key.Binding

	Refresh key.Binding
	Cancel  key.Binding // abort an active drag
	Quit    key.Binding
}

// DefaultKeyMap is the built-in key binding set.
var DefaultKeyMap = KeyMap{
	Left: key.NewBinding(
		key.WithKeys("h", "left"),
		key.WithHelp("h/←", "column"),
	),
	Right: key.NewBinding(
		key.WithKeys("l", "right"),
		key.WithHelp("l/→", "column"),
	),
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	MoveLeft: key.NewBinding(
		key.WithKeys("<", "H", "shift+left"),
		key.WithHelp("<", "move left"),
	),
	MoveRight: key.NewBinding(
		key.WithKeys(">", "L", "shift+right"),
		key.WithHelp(">", "move right"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "refresh"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel drag"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// helpBindings are shown in the status line when no toast is visible.
func (k KeyMap) helpBindings() []key.Binding {
	return []key.Binding{k.Left, k.Up, k.MoveLeft, k.MoveRight, k.Refresh, k.Quit}
}
