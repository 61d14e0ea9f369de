package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/runoshun/g2g/internal/domain"
)

// Colors defines the color palette for the TUI.
var Colors = struct {
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Muted     lipgloss.Color
	Error     lipgloss.Color
	Success   lipgloss.Color
	Warning   lipgloss.Color
	Text      lipgloss.Color

	// Phase colors
	Work  lipgloss.Color
	Break lipgloss.Color
	Done  lipgloss.Color
}{
	Primary:   lipgloss.Color("#6C5CE7"), // Purple
	Secondary: lipgloss.Color("#A29BFE"), // Lavender
	Muted:     lipgloss.Color("#636E72"), // Gray
	Error:     lipgloss.Color("#D63031"), // Red
	Success:   lipgloss.Color("#00B894"), // Green
	Warning:   lipgloss.Color("#FDCB6E"), // Yellow
	Text:      lipgloss.Color("#DFE6E9"), // Light gray

	Work:  lipgloss.Color("#FF7675"), // Tomato
	Break: lipgloss.Color("#74B9FF"), // Light blue
	Done:  lipgloss.Color("#00B894"), // Green
}

// Styles contains all the lipgloss styles for the TUI.
type Styles struct {
	App lipgloss.Style

	// Header
	Header    lipgloss.Style
	TaskTitle lipgloss.Style
	TaskMeta  lipgloss.Style

	// Timer
	PhaseWork  lipgloss.Style
	PhaseBreak lipgloss.Style
	PhaseDone  lipgloss.Style
	PhaseIdle  lipgloss.Style
	Timer      lipgloss.Style
	Paused     lipgloss.Style

	// Session checklist
	SessionDone    lipgloss.Style
	SessionCurrent lipgloss.Style
	SessionPending lipgloss.Style

	// Messages
	Notice   lipgloss.Style
	ErrorMsg lipgloss.Style

	// Dialog
	Dialog       lipgloss.Style
	DialogPrompt lipgloss.Style

	Help lipgloss.Style
}

// DefaultStyles returns the default styles for the TUI.
func DefaultStyles() Styles {
	return Styles{
		App: lipgloss.NewStyle().
			Padding(1, 2),

		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.Primary).
			MarginBottom(1),

		TaskTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.Text),

		TaskMeta: lipgloss.NewStyle().
			Foreground(Colors.Muted),

		PhaseWork: lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.Work),

		PhaseBreak: lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.Break),

		PhaseDone: lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.Done),

		PhaseIdle: lipgloss.NewStyle().
			Foreground(Colors.Muted),

		Timer: lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.Text).
			Padding(1, 0),

		Paused: lipgloss.NewStyle().
			Italic(true).
			Foreground(Colors.Warning),

		SessionDone: lipgloss.NewStyle().
			Foreground(Colors.Success),

		SessionCurrent: lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.Secondary),

		SessionPending: lipgloss.NewStyle().
			Foreground(Colors.Muted),

		Notice: lipgloss.NewStyle().
			Foreground(Colors.Success),

		ErrorMsg: lipgloss.NewStyle().
			Foreground(Colors.Error),

		Dialog: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Colors.Warning).
			Padding(0, 1),

		DialogPrompt: lipgloss.NewStyle().
			Foreground(Colors.Warning),

		Help: lipgloss.NewStyle().
			MarginTop(1),
	}
}

// PhaseStyle returns the style for a focus mode label.
func (s Styles) PhaseStyle(mode domain.FocusMode) lipgloss.Style {
	switch mode {
	case domain.ModeWorkRunning, domain.ModeWorkPaused:
		return s.PhaseWork
	case domain.ModeBreakRunning, domain.ModeBreakPaused:
		return s.PhaseBreak
	case domain.ModeAllComplete:
		return s.PhaseDone
	case domain.ModeIdle:
		return s.PhaseIdle
	default:
		return s.PhaseIdle
	}
}
