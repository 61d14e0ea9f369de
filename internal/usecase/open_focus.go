package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/g2g/internal/domain"
	"github.com/runoshun/g2g/internal/focus"
)

// OpenFocusInput contains the parameters for taking control of the focus plan.
type OpenFocusInput struct {
	Host bool // Drive the countdown with a ticking loop
}

// OpenFocusOutput holds the driver for the focus plan.
// Release must be called once the caller is done; it stops the loop, closes
// the scheduler and drops the lock.
type OpenFocusOutput struct {
	Driver  FocusDriver
	Loop    *focus.Loop // Running loop, set when Host is true
	Release func()
}

// OpenFocus takes the cross-process focus lock and hands out a driver.
type OpenFocus struct {
	newScheduler func() *focus.Scheduler
	ticks        domain.TickSource
	lock         domain.FocusLock
	logger       domain.Logger
}

// NewOpenFocus creates a new OpenFocus use case. newScheduler is called once
// the lock is held, so the scheduler loads the state the previous owner left.
func NewOpenFocus(newScheduler func() *focus.Scheduler, ticks domain.TickSource, lock domain.FocusLock, logger domain.Logger) *OpenFocus {
	return &OpenFocus{
		newScheduler: newScheduler,
		ticks:        ticks,
		lock:         lock,
		logger:       logger,
	}
}

// Execute fails with domain.ErrFocusBusy while another process drives the plan.
// With Host set the loop runs until Release is called or ctx is done.
func (uc *OpenFocus) Execute(ctx context.Context, in OpenFocusInput) (*OpenFocusOutput, error) {
	release, err := uc.lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("open focus plan: %w", err)
	}

	scheduler := uc.newScheduler()
	closeAll := func() {
		_ = scheduler.Close()
		release()
	}

	out := &OpenFocusOutput{
		Driver:  scheduler,
		Release: closeAll,
	}
	if !in.Host {
		return out, nil
	}

	loop := focus.NewLoop(scheduler, uc.ticks)
	stop := loop.Start(ctx)
	uc.logger.Debug(0, "focus", "hosting focus loop")

	out.Loop = loop
	out.Driver = loop
	out.Release = func() {
		if err := stop(); err != nil {
			uc.logger.Warn(0, "focus", fmt.Sprintf("focus loop stopped: %v", err))
		}
		closeAll()
	}
	return out, nil
}
