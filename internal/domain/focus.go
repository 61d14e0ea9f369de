package domain

import (
	"slices"
	"time"
)

// FocusPhase is whether the countdown covers a work interval or a break.
type FocusPhase string

const (
	PhaseWork  FocusPhase = "work"
	PhaseBreak FocusPhase = "break"
)

// IsValid returns true if the phase is a known value.
func (p FocusPhase) IsValid() bool {
	return p == PhaseWork || p == PhaseBreak
}

// FocusState is the complete state of the focus scheduler.
// The zero value is the Idle state. It is only ever changed through ApplyFocus.
// Fields are ordered to minimize memory padding.
type FocusState struct {
	StartedAt        time.Time           `json:"startedAt,omitempty"`
	PausedAt         time.Time           `json:"pausedAt,omitempty"`
	ActiveTask       *TaskRef            `json:"activeTask"`
	PlanID           string              `json:"planId,omitempty"`
	Phase            FocusPhase          `json:"phase,omitempty"`
	Sessions         []SessionDescriptor `json:"sessions"`
	CompletedIndices []int               `json:"completedIndices"`
	CurrentIndex     int                 `json:"currentIndex"`
	SecondsRemaining int                 `json:"secondsRemaining"`
	Running          bool                `json:"running"`
}

// IsActive returns true if a plan is installed.
func (s FocusState) IsActive() bool {
	return s.ActiveTask != nil
}

// AllComplete returns true once every session's work has been finished or skipped.
func (s FocusState) AllComplete() bool {
	return len(s.Sessions) > 0 && len(s.CompletedIndices) == len(s.Sessions)
}

// IsCompleted reports whether the work of session index has been marked done.
func (s FocusState) IsCompleted(index int) bool {
	return slices.Contains(s.CompletedIndices, index)
}

// Current returns the descriptor at CurrentIndex.
func (s FocusState) Current() (SessionDescriptor, bool) {
	if s.CurrentIndex < 0 || s.CurrentIndex >= len(s.Sessions) {
		return SessionDescriptor{}, false
	}
	return s.Sessions[s.CurrentIndex], true
}

// PhaseTotal returns the full length in seconds of the current phase.
func (s FocusState) PhaseTotal() int {
	cur, ok := s.Current()
	if !ok {
		return 0
	}
	if s.Phase == PhaseBreak {
		return cur.BreakSeconds
	}
	return cur.WorkSeconds
}

// Mode collapses the state into one of the effective scheduler modes.
func (s FocusState) Mode() FocusMode {
	switch {
	case !s.IsActive():
		return ModeIdle
	case s.AllComplete() && !s.Running:
		return ModeAllComplete
	case s.Phase == PhaseBreak && s.Running:
		return ModeBreakRunning
	case s.Phase == PhaseBreak:
		return ModeBreakPaused
	case s.Running:
		return ModeWorkRunning
	default:
		return ModeWorkPaused
	}
}

// Clone returns a deep copy so snapshots never alias scheduler-owned slices.
func (s FocusState) Clone() FocusState {
	out := s
	if s.ActiveTask != nil {
		ref := *s.ActiveTask
		out.ActiveTask = &ref
	}
	out.Sessions = slices.Clone(s.Sessions)
	out.CompletedIndices = slices.Clone(s.CompletedIndices)
	return out
}

// Validate checks the structural invariants of an active state.
// The Idle state is always valid.
func (s FocusState) Validate() error {
	if !s.IsActive() {
		return nil
	}
	if len(s.Sessions) == 0 {
		return ErrCorruptState
	}
	if s.CurrentIndex < 0 || s.CurrentIndex >= len(s.Sessions) {
		return ErrCorruptState
	}
	if !s.Phase.IsValid() || s.SecondsRemaining < 0 {
		return ErrCorruptState
	}
	if s.Phase == PhaseBreak && !s.Sessions[s.CurrentIndex].HasBreak {
		return ErrCorruptState
	}
	if len(s.CompletedIndices) > len(s.Sessions) {
		return ErrCorruptState
	}
	seen := make(map[int]bool, len(s.CompletedIndices))
	for _, idx := range s.CompletedIndices {
		if idx < 0 || idx >= len(s.Sessions) || seen[idx] {
			return ErrCorruptState
		}
		seen[idx] = true
	}
	for i, desc := range s.Sessions {
		if desc.SessionNumber != i+1 || desc.WorkSeconds <= 0 || desc.BreakSeconds < 0 {
			return ErrCorruptState
		}
		if desc.HasBreak != (desc.BreakSeconds > 0) || (desc.BreakKind == BreakNone) != (desc.BreakSeconds == 0) {
			return ErrCorruptState
		}
	}
	return nil
}

// FocusCommand is the sealed set of inputs accepted by ApplyFocus.
//
// go-sumtype:decl FocusCommand
type FocusCommand interface {
	focusCommand()
	Name() string
}

// StartFocus installs a new plan for Task.
type StartFocus struct {
	Task   TaskRef
	PlanID string
}

// Tick is one second of countdown delivered by the driving clock.
type Tick struct{}

// Play resumes the countdown.
type Play struct{}

// Pause freezes the countdown.
type Pause struct{}

// SkipSession ends the current work interval early. The break still plays.
type SkipSession struct{}

// SkipBreak ends the current break and waits at the next work session.
type SkipBreak struct{}

// CompleteFocus ends the plan because the task is done.
type CompleteFocus struct{}

// AbandonFocus ends the plan without completing the task.
type AbandonFocus struct{}

// ClearFocus discards the plan.
type ClearFocus struct{}

func (StartFocus) focusCommand()    {}
func (Tick) focusCommand()          {}
func (Play) focusCommand()          {}
func (Pause) focusCommand()         {}
func (SkipSession) focusCommand()   {}
func (SkipBreak) focusCommand()     {}
func (CompleteFocus) focusCommand() {}
func (AbandonFocus) focusCommand()  {}
func (ClearFocus) focusCommand()    {}

func (StartFocus) Name() string    { return "start" }
func (Tick) Name() string          { return "tick" }
func (Play) Name() string          { return "play" }
func (Pause) Name() string         { return "pause" }
func (SkipSession) Name() string   { return "skip" }
func (SkipBreak) Name() string     { return "skip-break" }
func (CompleteFocus) Name() string { return "complete" }
func (AbandonFocus) Name() string  { return "abandon" }
func (ClearFocus) Name() string    { return "clear" }

// FocusOutcome is the result of applying a command.
// Applied is false when the command had no meaning in the prior state;
// State is then identical to the input.
type FocusOutcome struct {
	State             FocusState
	Notices           []Notice
	Applied           bool
	RequestPermission bool
}

// ApplyFocus is the focus state machine. It is pure: the input state is never
// modified and the only clock input is now, used for display timestamps.
//
// StartFocus with an unusable estimate returns ErrInvalidDuration or
// ErrCannotSchedule and leaves the state untouched. Every other command that
// is meaningless in the current mode returns Applied == false and no error.
func ApplyFocus(state FocusState, cmd FocusCommand, now time.Time) (FocusOutcome, error) {
	if start, ok := cmd.(StartFocus); ok {
		return applyStart(state, start, now)
	}

	noop := FocusOutcome{State: state}
	if !state.IsActive() {
		return noop, nil
	}

	switch cmd.(type) {
	case CompleteFocus, AbandonFocus, ClearFocus:
		return FocusOutcome{State: FocusState{}, Applied: true}, nil
	}

	// Terminal: nothing but the reset commands above has an effect.
	if state.AllComplete() && !state.Running {
		return noop, nil
	}

	next := state.Clone()
	var notices []Notice

	switch cmd.(type) {
	case Tick:
		if !next.Running {
			return noop, nil
		}
		next.SecondsRemaining = max(0, next.SecondsRemaining-1)
		if next.SecondsRemaining == 0 {
			notices = next.evaluateTransition(now)
		}

	case Play:
		if next.Running {
			return noop, nil
		}
		next.Running = true
		next.PausedAt = time.Time{}
		if next.StartedAt.IsZero() {
			next.StartedAt = now
		}

	case Pause:
		if !next.Running {
			return noop, nil
		}
		next.Running = false
		next.PausedAt = now

	case SkipSession:
		if next.Phase != PhaseWork {
			return noop, nil
		}
		notices = next.skipSession(now)

	case SkipBreak:
		if next.Phase != PhaseBreak || next.CurrentIndex+1 >= len(next.Sessions) {
			return noop, nil
		}
		next.advanceToWork(now)

	default:
		return noop, nil
	}

	return FocusOutcome{State: next, Notices: notices, Applied: true}, nil
}

func applyStart(state FocusState, cmd StartFocus, now time.Time) (FocusOutcome, error) {
	if !ValidDuration(cmd.Task.DurationHours) {
		return FocusOutcome{State: state}, ErrInvalidDuration
	}
	sessions := PlanSessions(cmd.Task.DurationHours)
	if len(sessions) == 0 {
		return FocusOutcome{State: state}, ErrCannotSchedule
	}

	ref := cmd.Task
	next := FocusState{
		ActiveTask:       &ref,
		PlanID:           cmd.PlanID,
		Sessions:         sessions,
		CurrentIndex:     0,
		Phase:            PhaseWork,
		Running:          true,
		SecondsRemaining: sessions[0].WorkSeconds,
		CompletedIndices: []int{},
		StartedAt:        now,
	}
	return FocusOutcome{State: next, Applied: true, RequestPermission: true}, nil
}

// evaluateTransition runs when a running countdown reaches exactly zero.
func (s *FocusState) evaluateTransition(now time.Time) []Notice {
	title := s.ActiveTask.Title

	if s.Phase == PhaseBreak {
		notices := []Notice{{Kind: NoticeBreakComplete, TaskTitle: title}}
		if s.CurrentIndex+1 < len(s.Sessions) {
			s.advanceToWork(now)
		} else {
			s.finish(now)
		}
		return notices
	}

	notices := []Notice{{Kind: NoticeWorkSessionComplete, TaskTitle: title}}
	s.markCompleted(s.CurrentIndex)

	cur := s.Sessions[s.CurrentIndex]
	switch {
	case s.CurrentIndex == len(s.Sessions)-1:
		notices = append(notices, Notice{Kind: NoticeTaskComplete, TaskTitle: title})
		s.finish(now)
	case cur.HasBreak:
		s.Phase = PhaseBreak
		s.Running = true
		s.SecondsRemaining = cur.BreakSeconds
		s.StartedAt = now
	default:
		s.advanceToWork(now)
	}
	return notices
}

func (s *FocusState) skipSession(now time.Time) []Notice {
	s.markCompleted(s.CurrentIndex)

	if s.AllComplete() {
		s.finish(now)
		return []Notice{{Kind: NoticeTaskComplete, TaskTitle: s.ActiveTask.Title}}
	}

	cur := s.Sessions[s.CurrentIndex]
	if cur.HasBreak {
		s.Phase = PhaseBreak
		s.Running = true
		s.SecondsRemaining = cur.BreakSeconds
		s.PausedAt = time.Time{}
		s.StartedAt = now
		return nil
	}
	if s.CurrentIndex+1 < len(s.Sessions) {
		s.advanceToWork(now)
		return nil
	}
	// The last session is complete but an earlier one is not; wait in place.
	s.Running = false
	s.SecondsRemaining = 0
	s.PausedAt = now
	return nil
}

// advanceToWork moves to the next session and waits for the user to press play.
func (s *FocusState) advanceToWork(now time.Time) {
	s.CurrentIndex++
	s.Phase = PhaseWork
	s.Running = false
	s.SecondsRemaining = s.Sessions[s.CurrentIndex].WorkSeconds
	s.PausedAt = now
}

func (s *FocusState) finish(now time.Time) {
	s.Running = false
	s.SecondsRemaining = 0
	s.PausedAt = now
}

func (s *FocusState) markCompleted(index int) {
	if !slices.Contains(s.CompletedIndices, index) {
		s.CompletedIndices = append(s.CompletedIndices, index)
	}
}
