package tui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/g2g/internal/app"
	"github.com/runoshun/g2g/internal/domain"
	"github.com/runoshun/g2g/internal/focus"
	"github.com/runoshun/g2g/internal/testutil"
	"github.com/runoshun/g2g/internal/usecase"
)

var testNow = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

type screenFixture struct {
	repo  *testutil.MockTaskRepository
	ticks *testutil.FakeTickSource
	loop  *focus.Loop
	model *Model
}

// newScreen hosts a loop with task #3 started and builds the screen on it.
func newScreen(t *testing.T, hours float64) *screenFixture {
	t.Helper()
	f := &screenFixture{
		repo:  testutil.NewMockTaskRepository(),
		ticks: &testutil.FakeTickSource{},
	}
	f.repo.Tasks[3] = &domain.Task{ID: 3, Title: "Write report", DurationHours: hours}

	logger := &testutil.MockLogger{}
	clock := &testutil.MockClock{NowTime: testNow}
	c := app.NewWithDeps(app.Config{}, f.repo, &testutil.MockStoreInitializer{}, clock, logger)

	sched := focus.New(&testutil.MockFocusStateStore{}, &testutil.MockNotifier{}, logger, clock)
	f.loop = focus.NewLoop(sched, f.ticks)
	stop := f.loop.Start(context.Background())
	t.Cleanup(func() { _ = stop() })

	if hours > 0 {
		_, err := f.loop.Do(context.Background(), domain.StartFocus{Task: f.repo.Tasks[3].Ref(), PlanID: "plan-1"})
		require.NoError(t, err)
	}

	f.model = New(c, f.loop)
	f.model.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return f
}

// press sends a key and runs the resulting command, feeding its message back.
func (f *screenFixture) press(t *testing.T, keys string) tea.Cmd {
	t.Helper()
	var msg tea.KeyMsg
	if keys == " " {
		msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	} else {
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(keys)}
	}
	_, cmd := f.model.Update(msg)
	if cmd == nil {
		return nil
	}
	result := cmd()
	if done, ok := result.(MsgCommandDone); ok {
		_, next := f.model.Update(done)
		f.receive()
		return next
	}
	return cmd
}

// receive feeds the latest published state to the screen, if there is one.
// The loop publishes before a command returns, so it is already waiting.
func (f *screenFixture) receive() {
	select {
	case state := <-f.loop.Updates():
		f.model.Update(MsgStateUpdated{State: state})
	default:
	}
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestModel_ToggleKey(t *testing.T) {
	f := newScreen(t, 1)
	require.Equal(t, domain.ModeWorkRunning, f.model.State().Mode())

	f.press(t, " ")
	assert.Equal(t, domain.ModeWorkPaused, f.model.State().Mode())
	assert.Nil(t, f.ticks.Armed())

	f.press(t, " ")
	assert.Equal(t, domain.ModeWorkRunning, f.model.State().Mode())
	assert.NotNil(t, f.ticks.Armed())
}

func TestModel_SkipKeys(t *testing.T) {
	f := newScreen(t, 1)

	f.press(t, "s")
	assert.Equal(t, domain.ModeBreakRunning, f.model.State().Mode())
	assert.True(t, f.model.keys.SkipBreak.Enabled())
	assert.False(t, f.model.keys.Skip.Enabled())

	f.press(t, "b")
	assert.Equal(t, domain.ModeWorkPaused, f.model.State().Mode())
	assert.Equal(t, 1, f.model.State().CurrentIndex)
}

func TestModel_DisabledKeyDoesNothing(t *testing.T) {
	f := newScreen(t, 1)

	cmd := f.press(t, "b")

	assert.Nil(t, cmd)
	assert.Equal(t, domain.ModeWorkRunning, f.model.State().Mode())
}

func TestModel_CompleteAsksForConfirmation(t *testing.T) {
	f := newScreen(t, 1)

	f.press(t, "c")
	assert.Equal(t, ModeConfirm, f.model.mode)
	assert.Contains(t, f.model.View(), "Mark task #3 complete? (y/n)")

	cmd := f.press(t, "y")
	assert.True(t, isQuit(cmd))
	assert.Equal(t, "Task #3 marked complete: Write report", f.model.Result())
	assert.True(t, f.repo.Tasks[3].Completed)
	assert.Equal(t, domain.ModeIdle, f.model.State().Mode())
}

func TestModel_ConfirmationCancelled(t *testing.T) {
	f := newScreen(t, 1)

	f.press(t, "a")
	require.Equal(t, ConfirmAbandon, f.model.confirmAction)
	cmd := f.press(t, "n")

	assert.Nil(t, cmd)
	assert.Equal(t, ModeNormal, f.model.mode)
	assert.Equal(t, domain.ModeWorkRunning, f.model.State().Mode())
}

func TestModel_Abandon(t *testing.T) {
	f := newScreen(t, 1)

	f.press(t, "a")
	cmd := f.press(t, "y")

	assert.True(t, isQuit(cmd))
	assert.Equal(t, "Focus plan abandoned.", f.model.Result())
	assert.False(t, f.repo.Tasks[3].Completed)
}

func TestModel_QuitLeavesPlan(t *testing.T) {
	f := newScreen(t, 1)

	_, cmd := f.model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})

	assert.True(t, isQuit(cmd))
	assert.Empty(t, f.model.Result())
	assert.True(t, f.loop.Snapshot().IsActive())
}

func TestModel_TicksReachScreen(t *testing.T) {
	f := newScreen(t, 1)
	wait := f.model.Init()

	require.True(t, f.ticks.Armed().Fire(time.Second))

	// The buffered start state may come first.
	var seen bool
	for iter := 0; iter < 2; iter++ {
		msg, ok := wait().(MsgStateUpdated)
		require.True(t, ok)
		_, wait = f.model.Update(msg)
		if msg.State.SecondsRemaining == domain.WorkSessionSeconds-1 {
			seen = true
			break
		}
	}
	require.True(t, seen, "tick was not published")

	assert.Contains(t, f.model.View(), "24:59")
}

func TestModel_CommandDoneKeepsNewerState(t *testing.T) {
	f := newScreen(t, 1)
	f.press(t, " ")
	paused := f.model.State()
	require.Equal(t, domain.ModeWorkPaused, paused.Mode())

	// A later state is already on screen when a command's result arrives.
	newer := paused.Clone()
	newer.Running = true
	newer.SecondsRemaining = paused.SecondsRemaining - 1
	f.model.Update(MsgStateUpdated{State: newer})

	stale := &usecase.FocusControlOutput{State: paused, Previous: paused, Applied: true}
	f.model.Update(MsgCommandDone{Command: domain.Pause{}, Output: stale})

	assert.Equal(t, newer.SecondsRemaining, f.model.State().SecondsRemaining)
	assert.Equal(t, domain.ModeWorkRunning, f.model.State().Mode())
}

func TestModel_LoopStoppedQuits(t *testing.T) {
	f := newScreen(t, 1)

	_, cmd := f.model.Update(MsgLoopStopped{})

	assert.True(t, isQuit(cmd))
}

func TestModel_CommandError(t *testing.T) {
	f := newScreen(t, 0) // no plan

	_, _ = f.model.Update(MsgCommandDone{Command: domain.Play{}, Err: domain.ErrNoActiveFocus})

	assert.Contains(t, f.model.View(), "Error: no active focus plan")
}

func TestModel_Notice(t *testing.T) {
	f := newScreen(t, 1)

	_, _ = f.model.Update(MsgNotice{Text: "Break Over! Ready to get back to work?"})

	assert.Contains(t, f.model.View(), "Break Over!")
}
