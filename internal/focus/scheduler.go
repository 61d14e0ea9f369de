// Package focus hosts the focus scheduler and the loop that drives it.
package focus

import (
	"context"
	"fmt"
	"sync"

	"github.com/runoshun/g2g/internal/domain"
)

// deliveryBuffer bounds the notifications waiting for the notifier.
const deliveryBuffer = 16

// Scheduler owns the single focus state. Commands are applied one at a time
// through domain.ApplyFocus; every applied command is persisted before its
// notifications are queued. Notifications go out on a separate goroutine so
// a slow notifier never holds up the caller.
// Fields are ordered to minimize memory padding.
type Scheduler struct {
	store      domain.FocusStateStore
	notifier   domain.Notifier
	logger     domain.Logger
	clock      domain.Clock
	deliveries chan delivery
	delivered  chan struct{}
	state      domain.FocusState
	mu         sync.Mutex
	closed     bool
}

// delivery is the notification work produced by one applied command.
type delivery struct {
	notices           []domain.Notice
	taskID            int
	requestPermission bool
}

// New creates a Scheduler rehydrated from store. Close must be called to stop
// notification delivery.
func New(store domain.FocusStateStore, notifier domain.Notifier, logger domain.Logger, clock domain.Clock) *Scheduler {
	s := &Scheduler{
		store:      store,
		notifier:   notifier,
		logger:     logger,
		clock:      clock,
		deliveries: make(chan delivery, deliveryBuffer),
		delivered:  make(chan struct{}),
	}
	s.state = store.Load(clock.Now())
	go s.deliver()
	return s
}

// Snapshot returns a copy of the current state.
func (s *Scheduler) Snapshot() domain.FocusState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Mode returns the effective mode of the current state.
func (s *Scheduler) Mode() domain.FocusMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Mode()
}

// Dispatch applies cmd. A command that has no meaning in the current state is
// reported with Applied == false and a nil error. Only an invalid start or a
// closed scheduler return errors.
func (s *Scheduler) Dispatch(_ context.Context, cmd domain.FocusCommand) (domain.FocusOutcome, error) {
	s.mu.Lock()
	if s.closed {
		state := s.state.Clone()
		s.mu.Unlock()
		return domain.FocusOutcome{State: state}, domain.ErrSchedulerClosed
	}

	out, err := domain.ApplyFocus(s.state, cmd, s.clock.Now())
	if err != nil || !out.Applied {
		out.State = s.state.Clone()
		s.mu.Unlock()
		return out, err
	}

	prev := s.state
	s.state = out.State
	if err := s.store.Save(s.state); err != nil {
		s.logger.Error(taskIDOf(prev, s.state), logCategory, fmt.Sprintf("persist after %s: %v", cmd.Name(), err))
	}
	out.State = s.state.Clone()
	if out.RequestPermission || len(out.Notices) > 0 {
		s.enqueue(delivery{
			notices:           out.Notices,
			taskID:            taskIDOf(prev, out.State),
			requestPermission: out.RequestPermission,
		})
	}
	s.mu.Unlock()

	s.logTransition(prev, out, cmd)
	return out, nil
}

// enqueue hands d to the delivery goroutine without blocking. Callers hold mu.
func (s *Scheduler) enqueue(d delivery) {
	select {
	case s.deliveries <- d:
	default:
		s.logger.Warn(d.taskID, logCategory, fmt.Sprintf("notifier is behind; dropped %d notices", len(d.notices)))
	}
}

// deliver runs the notifier until Close. Permission granted at the start of a
// plan governs every notice that follows it.
func (s *Scheduler) deliver() {
	defer close(s.delivered)

	ctx := context.Background()
	allowed := true
	for d := range s.deliveries {
		if d.requestPermission {
			allowed = s.notifier.RequestPermission(ctx)
			if !allowed {
				s.logger.Warn(d.taskID, logCategory, "notification permission denied; notifications disabled for this plan")
			}
		}
		if !allowed {
			continue
		}
		for _, n := range d.notices {
			s.notifier.Notify(ctx, n)
		}
	}
}

// Do is Dispatch. It lets a Scheduler stand in for a Loop when nothing needs
// to tick, as in one-shot commands.
func (s *Scheduler) Do(ctx context.Context, cmd domain.FocusCommand) (domain.FocusOutcome, error) {
	return s.Dispatch(ctx, cmd)
}

// Close ends the scheduler's lifecycle. Later commands fail with
// domain.ErrSchedulerClosed. The last applied state is already persisted;
// Close returns once the queued notifications have been delivered.
func (s *Scheduler) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		<-s.delivered
		return nil
	}
	s.closed = true
	close(s.deliveries)
	s.mu.Unlock()

	<-s.delivered
	return nil
}

func (s *Scheduler) logTransition(prev domain.FocusState, out domain.FocusOutcome, cmd domain.FocusCommand) {
	id := taskIDOf(prev, out.State)
	if _, isTick := cmd.(domain.Tick); !isTick {
		s.logger.Info(id, logCategory, fmt.Sprintf("%s: %s -> %s", cmd.Name(), prev.Mode(), out.State.Mode()))
	}
	for _, n := range out.Notices {
		s.logger.Info(id, logCategory, fmt.Sprintf("%s (session %d)", n.Kind, out.State.CurrentIndex+1))
	}
}

// taskIDOf returns the stored task ID involved in a transition, or 0 for the global log.
func taskIDOf(prev, next domain.FocusState) int {
	switch {
	case next.ActiveTask != nil:
		return next.ActiveTask.ID
	case prev.ActiveTask != nil:
		return prev.ActiveTask.ID
	default:
		return 0
	}
}
