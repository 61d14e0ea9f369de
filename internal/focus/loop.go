package focus

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/runoshun/g2g/internal/domain"
)

// TickInterval is the countdown resolution.
const TickInterval = time.Second

// Loop drives a Scheduler from one goroutine. It is the only owner of the
// ticker: the ticker is armed while the state is running and stopped on the
// loop goroutine as soon as it is not, so a tick can never follow a pause.
type Loop struct {
	scheduler *Scheduler
	ticks     domain.TickSource
	ticker    domain.Ticker
	requests  chan loopRequest
	updates   chan domain.FocusState
	done      chan struct{}
}

type loopRequest struct {
	cmd   domain.FocusCommand
	reply chan loopReply
}

type loopReply struct {
	err error
	out domain.FocusOutcome
}

// NewLoop creates a Loop for scheduler.
func NewLoop(scheduler *Scheduler, ticks domain.TickSource) *Loop {
	return &Loop{
		scheduler: scheduler,
		ticks:     ticks,
		requests:  make(chan loopRequest),
		updates:   make(chan domain.FocusState, 1),
		done:      make(chan struct{}),
	}
}

// Updates delivers the state after every applied command or tick.
// Only the latest state is kept; the channel is closed when Run returns.
func (l *Loop) Updates() <-chan domain.FocusState {
	return l.updates
}

// Snapshot returns a copy of the scheduler's current state.
func (l *Loop) Snapshot() domain.FocusState {
	return l.scheduler.Snapshot()
}

// Run processes commands and ticks until ctx is cancelled or the scheduler is closed.
// It must be called exactly once.
func (l *Loop) Run(ctx context.Context) error {
	defer close(l.updates)
	defer close(l.done)
	defer l.disarm()

	l.publish(l.scheduler.Snapshot())
	l.sync()

	for {
		var tickC <-chan time.Time
		if l.ticker != nil {
			tickC = l.ticker.C()
		}

		select {
		case <-ctx.Done():
			return nil

		case req := <-l.requests:
			out, err := l.scheduler.Dispatch(ctx, req.cmd)
			// Publish before replying so a caller that reads Updates after Do
			// never sees a state older than its own command.
			if out.Applied {
				l.publish(out.State)
			}
			l.sync()
			req.reply <- loopReply{out: out, err: err}
			if errors.Is(err, domain.ErrSchedulerClosed) {
				return err
			}

		case <-tickC:
			out, err := l.scheduler.Dispatch(ctx, domain.Tick{})
			if err != nil {
				return err
			}
			if out.Applied {
				l.publish(out.State)
			}
			l.sync()
		}
	}
}

// Start runs the loop on a new goroutine. stop cancels it, waits for Run to
// return and reports Run's error.
func (l *Loop) Start(ctx context.Context) (stop func() error) {
	ctx, cancel := context.WithCancel(ctx)
	errc := make(chan error, 1)
	go func() { errc <- l.Run(ctx) }()

	var (
		once sync.Once
		err  error
	)
	return func() error {
		once.Do(func() {
			cancel()
			err = <-errc
		})
		return err
	}
}

// Do sends cmd to the loop and waits for it to be applied.
func (l *Loop) Do(ctx context.Context, cmd domain.FocusCommand) (domain.FocusOutcome, error) {
	req := loopRequest{cmd: cmd, reply: make(chan loopReply, 1)}
	select {
	case l.requests <- req:
	case <-l.done:
		return domain.FocusOutcome{}, domain.ErrLoopStopped
	case <-ctx.Done():
		return domain.FocusOutcome{}, ctx.Err()
	}

	select {
	case r := <-req.reply:
		return r.out, r.err
	case <-ctx.Done():
		return domain.FocusOutcome{}, ctx.Err()
	}
}

// armed is only read on the loop goroutine.
func (l *Loop) armed() bool {
	return l.ticker != nil
}

// sync arms or stops the ticker to match the scheduler's running flag.
func (l *Loop) sync() {
	running := l.scheduler.Snapshot().Running
	switch {
	case running && !l.armed():
		l.ticker = l.ticks.NewTicker(TickInterval)
	case !running && l.armed():
		l.disarm()
	}
}

func (l *Loop) disarm() {
	if l.ticker != nil {
		l.ticker.Stop()
		l.ticker = nil
	}
}

func (l *Loop) publish(state domain.FocusState) {
	select {
	case <-l.updates:
	default:
	}
	select {
	case l.updates <- state:
	default:
	}
}
