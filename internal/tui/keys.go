package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the card's key bindings.
type KeyMap struct {
	// Login form.
	Submit    key.Binding
	NextField key.Binding
	PrevField key.Binding
	Reset     key.Binding
	Dismiss   key.Binding

	// Greeting.
	Yes      key.Binding
	No       key.Binding
	Cards    key.Binding
	Memories key.Binding
	Draw     key.Binding
	Left     key.Binding
	Right    key.Binding
	Jump     key.Binding
	Back     key.Binding

	Quit      key.Binding
	ForceQuit key.Binding
}

var DefaultKeyMap = KeyMap{
	Submit:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
	NextField: key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
	PrevField: key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "previous field")),
	Reset:     key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "reset")),
	Dismiss:   key.NewBinding(key.WithKeys("esc", "enter"), key.WithHelp("esc", "okay, I'll wait")),

	Yes:      key.NewBinding(key.WithKeys("y", "enter"), key.WithHelp("y", "yes")),
	No:       key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "no")),
	Cards:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "truth or dare")),
	Memories: key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "memory garden")),
	Draw:     key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "shuffle / flip")),
	Left:     key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "previous")),
	Right:    key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→", "next")),
	Jump:     key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"), key.WithHelp("1-9", "jump")),
	Back:     key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),

	Quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	ForceQuit: key.NewBinding(key.WithKeys("ctrl+c")),
}
