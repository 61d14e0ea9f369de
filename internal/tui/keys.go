package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings of the focus screen.
type KeyMap struct {
	// Timer
	Toggle    key.Binding // Play or pause the countdown
	Skip      key.Binding // Skip the current work session
	SkipBreak key.Binding // Skip the current break

	// Plan
	Complete key.Binding // Mark the plan complete
	Abandon  key.Binding // Drop the plan

	// General
	Help    key.Binding
	Quit    key.Binding // Leave the screen; the plan stays saved
	Confirm key.Binding // Confirm action (in confirm mode)
	Cancel  key.Binding // Cancel action (in confirm mode)
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Toggle: key.NewBinding(
			key.WithKeys(" ", "p"),
			key.WithHelp("space", "play/pause"),
		),
		Skip: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "skip session"),
		),
		SkipBreak: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "skip break"),
		),
		Complete: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "complete"),
		),
		Abandon: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "abandon"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("y", "Y"),
			key.WithHelp("y", "confirm"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("n", "N", "esc"),
			key.WithHelp("n", "cancel"),
		),
	}
}

// ShortHelp returns keybindings to show in the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Skip, k.SkipBreak, k.Complete, k.Help, k.Quit}
}

// FullHelp returns keybindings for the expanded help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Toggle, k.Skip, k.SkipBreak}, // Timer
		{k.Complete, k.Abandon},         // Plan
		{k.Help, k.Quit},                // General
	}
}
