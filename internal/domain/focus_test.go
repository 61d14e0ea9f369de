package domain

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func mustApply(t *testing.T, state FocusState, cmd FocusCommand) FocusOutcome {
	t.Helper()
	out, err := ApplyFocus(state, cmd, testNow)
	require.NoError(t, err)
	return out
}

func startedState(t *testing.T, hours float64) FocusState {
	t.Helper()
	out := mustApply(t, FocusState{}, StartFocus{Task: TaskRef{ID: 7, Title: "Write report", DurationHours: hours}, PlanID: "plan-1"})
	require.True(t, out.Applied)
	return out.State
}

func noticeKinds(notices []Notice) []NoticeKind {
	kinds := make([]NoticeKind, 0, len(notices))
	for _, n := range notices {
		kinds = append(kinds, n.Kind)
	}
	return kinds
}

func TestApplyFocus_Start(t *testing.T) {
	out := mustApply(t, FocusState{}, StartFocus{Task: TaskRef{ID: 1, Title: "T", DurationHours: 1}, PlanID: "p"})

	require.True(t, out.Applied)
	assert.True(t, out.RequestPermission)
	s := out.State
	require.NotNil(t, s.ActiveTask)
	assert.Equal(t, 1, s.ActiveTask.ID)
	assert.Equal(t, "p", s.PlanID)
	assert.Len(t, s.Sessions, 3)
	assert.Equal(t, 0, s.CurrentIndex)
	assert.Equal(t, PhaseWork, s.Phase)
	assert.True(t, s.Running)
	assert.Equal(t, 1500, s.SecondsRemaining)
	assert.Empty(t, s.CompletedIndices)
	assert.Equal(t, testNow, s.StartedAt)
	assert.Equal(t, ModeWorkRunning, s.Mode())
}

func TestApplyFocus_StartRejectsInvalidDuration(t *testing.T) {
	for _, hours := range []float64{0, -2, 1e13, MaxDurationHours + 1} {
		out, err := ApplyFocus(FocusState{}, StartFocus{Task: TaskRef{Title: "T", DurationHours: hours}}, testNow)
		require.ErrorIs(t, err, ErrInvalidDuration)
		assert.False(t, out.Applied)
		assert.False(t, out.State.IsActive())
	}

	// Rounds to zero seconds: valid number, empty plan.
	out, err := ApplyFocus(FocusState{}, StartFocus{Task: TaskRef{Title: "T", DurationHours: 1e-9}}, testNow)
	require.ErrorIs(t, err, ErrCannotSchedule)
	assert.Equal(t, FocusState{}, out.State)
}

func TestApplyFocus_StartRejectionKeepsExistingPlan(t *testing.T) {
	s := startedState(t, 1)
	out, err := ApplyFocus(s, StartFocus{Task: TaskRef{Title: "bad"}}, testNow)
	require.ErrorIs(t, err, ErrInvalidDuration)
	assert.Equal(t, s, out.State)
}

func TestApplyFocus_IdleCommandsAreNoops(t *testing.T) {
	cmds := []FocusCommand{Tick{}, Play{}, Pause{}, SkipSession{}, SkipBreak{}, CompleteFocus{}, AbandonFocus{}, ClearFocus{}}
	for _, cmd := range cmds {
		t.Run(cmd.Name(), func(t *testing.T) {
			out := mustApply(t, FocusState{}, cmd)
			assert.False(t, out.Applied)
			assert.Empty(t, out.Notices)
			assert.Equal(t, FocusState{}, out.State)
		})
	}
}

func TestApplyFocus_TickDecrements(t *testing.T) {
	s := startedState(t, 1)
	out := mustApply(t, s, Tick{})
	assert.Equal(t, 1499, out.State.SecondsRemaining)
	assert.Empty(t, out.Notices)
	// Input state is not modified.
	assert.Equal(t, 1500, s.SecondsRemaining)
}

func TestApplyFocus_TickWhilePausedIsNoop(t *testing.T) {
	s := mustApply(t, startedState(t, 1), Pause{}).State
	out := mustApply(t, s, Tick{})
	assert.False(t, out.Applied)
	assert.Equal(t, 1500, out.State.SecondsRemaining)
}

func TestApplyFocus_PlayPause(t *testing.T) {
	s := startedState(t, 1)

	paused := mustApply(t, s, Pause{})
	require.True(t, paused.Applied)
	assert.False(t, paused.State.Running)
	assert.Equal(t, testNow, paused.State.PausedAt)
	assert.Equal(t, ModeWorkPaused, paused.State.Mode())

	again := mustApply(t, paused.State, Pause{})
	assert.False(t, again.Applied)

	played := mustApply(t, paused.State, Play{})
	require.True(t, played.Applied)
	assert.True(t, played.State.Running)
	assert.True(t, played.State.PausedAt.IsZero())

	assert.False(t, mustApply(t, played.State, Play{}).Applied)
}

func TestApplyFocus_WorkEndAutoStartsBreak(t *testing.T) {
	s := startedState(t, 1)
	s.SecondsRemaining = 1

	out := mustApply(t, s, Tick{})
	assert.Equal(t, []NoticeKind{NoticeWorkSessionComplete}, noticeKinds(out.Notices))
	assert.Equal(t, PhaseBreak, out.State.Phase)
	assert.True(t, out.State.Running)
	assert.Equal(t, ShortBreakSeconds, out.State.SecondsRemaining)
	assert.Equal(t, []int{0}, out.State.CompletedIndices)
	assert.Equal(t, 0, out.State.CurrentIndex)
	assert.Equal(t, ModeBreakRunning, out.State.Mode())
}

func TestApplyFocus_BreakEndPausesAtNextSession(t *testing.T) {
	s := startedState(t, 1)
	s.SecondsRemaining = 1
	s = mustApply(t, s, Tick{}).State
	s.SecondsRemaining = 1

	out := mustApply(t, s, Tick{})
	assert.Equal(t, []NoticeKind{NoticeBreakComplete}, noticeKinds(out.Notices))
	assert.Equal(t, 1, out.State.CurrentIndex)
	assert.Equal(t, PhaseWork, out.State.Phase)
	assert.False(t, out.State.Running)
	assert.Equal(t, 1500, out.State.SecondsRemaining)
	assert.Equal(t, testNow, out.State.PausedAt)
	assert.Equal(t, ModeWorkPaused, out.State.Mode())
}

func TestApplyFocus_LastWorkCompletesTask(t *testing.T) {
	s := startedState(t, 0.5)
	s.CurrentIndex = 1
	s.CompletedIndices = []int{0}
	s.SecondsRemaining = 1

	out := mustApply(t, s, Tick{})
	assert.Equal(t, []NoticeKind{NoticeWorkSessionComplete, NoticeTaskComplete}, noticeKinds(out.Notices))
	assert.Equal(t, "Write report", out.Notices[1].TaskTitle)
	assert.True(t, out.State.AllComplete())
	assert.False(t, out.State.Running)
	assert.Equal(t, ModeAllComplete, out.State.Mode())
}

func TestApplyFocus_SkipSessionRunsBreak(t *testing.T) {
	s := startedState(t, 1)
	s.SecondsRemaining = 700

	out := mustApply(t, s, SkipSession{})
	require.True(t, out.Applied)
	assert.Empty(t, out.Notices)
	assert.Equal(t, PhaseBreak, out.State.Phase)
	assert.True(t, out.State.Running)
	assert.Equal(t, 300, out.State.SecondsRemaining)
	assert.Equal(t, []int{0}, out.State.CompletedIndices)
}

func TestApplyFocus_SkipSessionFromPausedWork(t *testing.T) {
	s := mustApply(t, startedState(t, 1), Pause{}).State
	out := mustApply(t, s, SkipSession{})
	assert.Equal(t, ModeBreakRunning, out.State.Mode())
}

func TestApplyFocus_SkipLastSessionCompletesTask(t *testing.T) {
	s := startedState(t, 25.0/60.0)

	out := mustApply(t, s, SkipSession{})
	assert.Equal(t, []NoticeKind{NoticeTaskComplete}, noticeKinds(out.Notices))
	assert.Equal(t, ModeAllComplete, out.State.Mode())
	assert.Equal(t, []int{0}, out.State.CompletedIndices)
}

func TestApplyFocus_SkipSessionDuringBreakIsNoop(t *testing.T) {
	s := mustApply(t, startedState(t, 1), SkipSession{}).State
	out := mustApply(t, s, SkipSession{})
	assert.False(t, out.Applied)
	assert.Equal(t, s, out.State)
}

func TestApplyFocus_SkipBreak(t *testing.T) {
	s := mustApply(t, startedState(t, 1), SkipSession{}).State

	out := mustApply(t, s, SkipBreak{})
	require.True(t, out.Applied)
	assert.Empty(t, out.Notices)
	assert.Equal(t, 1, out.State.CurrentIndex)
	assert.Equal(t, PhaseWork, out.State.Phase)
	assert.False(t, out.State.Running)
	assert.Equal(t, 1500, out.State.SecondsRemaining)
}

func TestApplyFocus_SkipBreakDuringWorkIsNoop(t *testing.T) {
	s := startedState(t, 1)
	out := mustApply(t, s, SkipBreak{})
	assert.False(t, out.Applied)
}

func TestApplyFocus_ResetCommands(t *testing.T) {
	for _, cmd := range []FocusCommand{CompleteFocus{}, AbandonFocus{}, ClearFocus{}} {
		t.Run(cmd.Name(), func(t *testing.T) {
			out := mustApply(t, startedState(t, 2), cmd)
			assert.True(t, out.Applied)
			assert.Equal(t, FocusState{}, out.State)
			assert.Equal(t, ModeIdle, out.State.Mode())
		})
	}
}

func TestApplyFocus_TerminalIdempotence(t *testing.T) {
	s := mustApply(t, startedState(t, 25.0/60.0), SkipSession{}).State
	require.Equal(t, ModeAllComplete, s.Mode())

	for _, cmd := range []FocusCommand{Tick{}, Play{}, Pause{}, SkipSession{}, SkipBreak{}} {
		out := mustApply(t, s, cmd)
		assert.False(t, out.Applied, cmd.Name())
		assert.Equal(t, s, out.State, cmd.Name())
	}

	// Reset commands still leave the terminal state.
	assert.Equal(t, ModeIdle, mustApply(t, s, CompleteFocus{}).State.Mode())
}

func TestApplyFocus_FullRunThroughTicks(t *testing.T) {
	s := startedState(t, 2.2)
	var notices []NoticeKind

	for steps := 0; steps < 100000 && !s.AllComplete(); steps++ {
		out := mustApply(t, s, Tick{})
		if !out.Applied {
			// Paused after a break: acknowledge and continue.
			out = mustApply(t, s, Play{})
			require.True(t, out.Applied)
		}
		notices = append(notices, noticeKinds(out.Notices)...)
		s = out.State
	}

	require.True(t, s.AllComplete())
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5}, s.CompletedIndices)

	count := func(kind NoticeKind) int {
		n := 0
		for _, k := range notices {
			if k == kind {
				n++
			}
		}
		return n
	}
	assert.Equal(t, 6, count(NoticeWorkSessionComplete))
	assert.Equal(t, 5, count(NoticeBreakComplete))
	assert.Equal(t, 1, count(NoticeTaskComplete))
	assert.Equal(t, NoticeTaskComplete, notices[len(notices)-1])
}

func TestApplyFocus_RandomCommandSequences(t *testing.T) {
	cmds := []FocusCommand{Tick{}, Tick{}, Tick{}, Tick{}, Play{}, Pause{}, SkipSession{}, SkipBreak{}}
	rng := rand.New(rand.NewSource(42))

	for run := 0; run < 200; run++ {
		s := startedState(t, float64(rng.Intn(20)+1)/8)
		// Short countdowns so transitions happen often.
		s.SecondsRemaining = 3

		for step := 0; step < 400; step++ {
			cmd := cmds[rng.Intn(len(cmds))]
			prev := s
			out := mustApply(t, s, cmd)
			s = out.State

			require.NoError(t, s.Validate())
			require.GreaterOrEqual(t, s.SecondsRemaining, 0)
			require.LessOrEqual(t, len(s.CompletedIndices), len(s.Sessions))

			if _, isTick := cmd.(Tick); isTick && prev.Running && len(out.Notices) == 0 {
				require.Equal(t, prev.SecondsRemaining-1, s.SecondsRemaining, "tick must decrement by one")
			}
			if !out.Applied {
				require.Equal(t, prev, s)
			}
			if s.SecondsRemaining > 3 && s.Running {
				s.SecondsRemaining = 3
			}
		}
	}
}

func TestFocusState_Validate(t *testing.T) {
	valid := startedState(t, 1)
	require.NoError(t, valid.Validate())
	require.NoError(t, FocusState{}.Validate())

	tests := []struct {
		name   string
		mutate func(*FocusState)
	}{
		{"empty plan", func(s *FocusState) { s.Sessions = nil }},
		{"index out of range", func(s *FocusState) { s.CurrentIndex = 3 }},
		{"negative remaining", func(s *FocusState) { s.SecondsRemaining = -1 }},
		{"bad phase", func(s *FocusState) { s.Phase = "nap" }},
		{"break on last session", func(s *FocusState) { s.CurrentIndex = 2; s.Phase = PhaseBreak }},
		{"duplicate completion", func(s *FocusState) { s.CompletedIndices = []int{0, 0} }},
		{"completion out of range", func(s *FocusState) { s.CompletedIndices = []int{9} }},
		{"bad descriptor", func(s *FocusState) { s.Sessions[1].WorkSeconds = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid.Clone()
			tt.mutate(&s)
			assert.ErrorIs(t, s.Validate(), ErrCorruptState)
		})
	}
}

func TestFocusState_CloneDoesNotAlias(t *testing.T) {
	s := startedState(t, 1)
	c := s.Clone()
	c.Sessions[0].WorkSeconds = 1
	c.ActiveTask.Title = "changed"
	c.CompletedIndices = append(c.CompletedIndices, 1)

	assert.Equal(t, 1500, s.Sessions[0].WorkSeconds)
	assert.Equal(t, "Write report", s.ActiveTask.Title)
	assert.Empty(t, s.CompletedIndices)
}
