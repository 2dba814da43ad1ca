package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the console key bindings.
type KeyMap struct {
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding // Detail pane: previous group column.
	Right key.Binding // Detail pane: next group column.

	Select      key.Binding
	FocusToggle key.Binding

	NewProject    key.Binding
	NewPermission key.Binding
	NewGroup      key.Binding
	Edit          key.Binding
	Toggle        key.Binding
	Delete        key.Binding
	DeleteGroup   key.Binding
	ShowKey       key.Binding
	Reload        key.Binding

	// Prompts.
	Yes    key.Binding
	No     key.Binding
	Submit key.Binding
	Cancel key.Binding
	Next   key.Binding

	Quit key.Binding
}

var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Left: key.NewBinding(
		key.WithKeys("h", "left"),
		key.WithHelp("h/←", "prev group"),
	),
	Right: key.NewBinding(
		key.WithKeys("l", "right"),
		key.WithHelp("l/→", "next group"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("Enter", "open project"),
	),
	FocusToggle: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("Tab", "switch pane"),
	),
	NewProject: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new project"),
	),
	NewPermission: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "new permission"),
	),
	NewGroup: key.NewBinding(
		key.WithKeys("g"),
		key.WithHelp("g", "new group"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "edit permission"),
	),
	Toggle: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("Space", "toggle"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "delete"),
	),
	DeleteGroup: key.NewBinding(
		key.WithKeys("D"),
		key.WithHelp("D", "delete group"),
	),
	ShowKey: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "api key"),
	),
	Reload: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reload"),
	),
	Yes: key.NewBinding(
		key.WithKeys("y", "Y"),
		key.WithHelp("y", "yes"),
	),
	No: key.NewBinding(
		key.WithKeys("n", "N", "esc"),
		key.WithHelp("n", "no"),
	),
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("Enter", "save"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("Esc", "cancel"),
	),
	Next: key.NewBinding(
		key.WithKeys("tab", "shift+tab"),
		key.WithHelp("Tab", "next field"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
