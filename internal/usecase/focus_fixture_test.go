package usecase

import (
	"testing"

	"github.com/runoshun/g2g/internal/focus"
	"github.com/runoshun/g2g/internal/testutil"
)

// focusFixture wires a real scheduler to in-memory collaborators.
type focusFixture struct {
	repo     *testutil.MockTaskRepository
	store    *testutil.MockFocusStateStore
	notifier *testutil.MockNotifier
	logger   *testutil.MockLogger
	clock    *testutil.MockClock
	ticks    *testutil.FakeTickSource
	lock     *testutil.MockFocusLock
	sched    *focus.Scheduler
}

func newFocusFixture(t *testing.T) *focusFixture {
	t.Helper()
	f := &focusFixture{
		repo:     testutil.NewMockTaskRepository(),
		store:    &testutil.MockFocusStateStore{},
		notifier: &testutil.MockNotifier{},
		logger:   &testutil.MockLogger{},
		clock:    &testutil.MockClock{NowTime: testNow},
		ticks:    &testutil.FakeTickSource{},
		lock:     &testutil.MockFocusLock{},
	}
	f.sched = focus.New(f.store, f.notifier, f.logger, f.clock)
	return f
}

func (f *focusFixture) startUseCase() *StartFocus {
	uc := NewStartFocus(f.repo, testutil.NewMockConfigLoader(), f.logger)
	uc.newPlanID = func() string { return "plan-test" }
	return uc
}

func (f *focusFixture) controlUseCase() *FocusControl {
	return NewFocusControl(f.repo, f.clock, f.logger)
}

func (f *focusFixture) openUseCase() *OpenFocus {
	return NewOpenFocus(func() *focus.Scheduler { return f.sched }, f.ticks, f.lock, f.logger)
}
