// Package tui provides the terminal focus screen for g2g.
package tui

import "github.com/runoshun/g2g/internal/domain"

// Mode represents the current UI mode.
type Mode int

const (
	ModeNormal  Mode = iota // Timer view
	ModeConfirm             // Confirmation prompt
)

// String returns the string representation of the mode.
func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeConfirm:
		return "confirm"
	default:
		return "unknown"
	}
}

// ConfirmAction represents the type of action requiring confirmation.
type ConfirmAction int

const (
	ConfirmNone     ConfirmAction = iota
	ConfirmComplete               // Mark the plan complete
	ConfirmAbandon                // Drop the plan
)

// String returns a human-readable description of the action.
func (a ConfirmAction) String() string {
	switch a {
	case ConfirmNone:
		return ""
	case ConfirmComplete:
		return "complete"
	case ConfirmAbandon:
		return "abandon"
	}
	return ""
}

// Command returns the focus command the action confirms.
func (a ConfirmAction) Command() domain.FocusCommand {
	switch a {
	case ConfirmComplete:
		return domain.CompleteFocus{}
	case ConfirmAbandon:
		return domain.AbandonFocus{}
	case ConfirmNone:
	}
	return nil
}
