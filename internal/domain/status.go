package domain

// FocusMode is the effective mode of the focus scheduler derived from FocusState.
type FocusMode string

const (
	ModeIdle         FocusMode = "idle"          // No plan installed
	ModeWorkRunning  FocusMode = "work_running"  // Counting down a work interval
	ModeWorkPaused   FocusMode = "work_paused"   // Work interval waiting for play
	ModeBreakRunning FocusMode = "break_running" // Counting down a break
	ModeBreakPaused  FocusMode = "break_paused"  // Break frozen by the user
	ModeAllComplete  FocusMode = "all_complete"  // Every session's work is done
)

// AllFocusModes returns all valid mode values.
func AllFocusModes() []FocusMode {
	return []FocusMode{
		ModeIdle,
		ModeWorkRunning,
		ModeWorkPaused,
		ModeBreakRunning,
		ModeBreakPaused,
		ModeAllComplete,
	}
}

// IsTerminal returns true if no further countdown is possible without a new plan.
func (m FocusMode) IsTerminal() bool {
	return m == ModeAllComplete
}

// IsRunning returns true if the countdown advances in this mode.
func (m FocusMode) IsRunning() bool {
	return m == ModeWorkRunning || m == ModeBreakRunning
}

// Allows reports whether cmd can have an effect in this mode.
// Used by front ends to grey out actions; ApplyFocus remains the authority.
func (m FocusMode) Allows(cmd FocusCommand) bool {
	switch cmd.(type) {
	case StartFocus:
		return true
	case CompleteFocus, AbandonFocus, ClearFocus:
		return m != ModeIdle
	case Tick, Pause:
		return m.IsRunning()
	case Play:
		return m == ModeWorkPaused || m == ModeBreakPaused
	case SkipSession:
		return m == ModeWorkRunning || m == ModeWorkPaused
	case SkipBreak:
		return m == ModeBreakRunning || m == ModeBreakPaused
	default:
		return false
	}
}

// Display returns a human-readable representation of the mode.
func (m FocusMode) Display() string {
	switch m {
	case ModeIdle:
		return "Idle"
	case ModeWorkRunning:
		return "Focus"
	case ModeWorkPaused:
		return "Focus (paused)"
	case ModeBreakRunning:
		return "Break"
	case ModeBreakPaused:
		return "Break (paused)"
	case ModeAllComplete:
		return "All sessions complete"
	default:
		return string(m)
	}
}
