package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/runoshun/g2g/internal/domain"
)

// ShowFocusInput contains the parameters for showing the focus plan.
type ShowFocusInput struct{}

// ShowFocusOutput describes the persisted plan.
// Fields are ordered to minimize memory padding.
type ShowFocusOutput struct {
	Mode  domain.FocusMode
	State domain.FocusState
	Live  bool // Another process is counting the plan down
}

// ShowFocus reads the focus plan without taking control of it.
type ShowFocus struct {
	states FocusStateReader
	lock   domain.FocusLock
}

// NewShowFocus creates a new ShowFocus use case.
func NewShowFocus(states FocusStateReader, lock domain.FocusLock) *ShowFocus {
	return &ShowFocus{
		states: states,
		lock:   lock,
	}
}

// Execute returns the persisted state. Without a live driver the plan is
// reported paused, which is how it resumes on the next load.
func (uc *ShowFocus) Execute(_ context.Context, _ ShowFocusInput) (*ShowFocusOutput, error) {
	live := false
	release, err := uc.lock.TryLock()
	switch {
	case err == nil:
		release()
	case errors.Is(err, domain.ErrFocusBusy):
		live = true
	default:
		return nil, fmt.Errorf("check focus lock: %w", err)
	}

	state := uc.states.Peek()
	if !live {
		state.Running = false
	}
	return &ShowFocusOutput{
		State: state,
		Mode:  state.Mode(),
		Live:  live && state.IsActive(),
	}, nil
}

// WatchFocusInput contains the parameters for following the focus plan.
type WatchFocusInput struct {
	OnChange func(*ShowFocusOutput) // Called with the initial state and after every change (required)
}

// WatchFocus follows the persisted plan as another process updates it.
type WatchFocus struct {
	show    *ShowFocus
	watcher FileWatcher
}

// NewWatchFocus creates a new WatchFocus use case.
func NewWatchFocus(show *ShowFocus, watcher FileWatcher) *WatchFocus {
	return &WatchFocus{
		show:    show,
		watcher: watcher,
	}
}

// Execute blocks until ctx is done.
func (uc *WatchFocus) Execute(ctx context.Context, in WatchFocusInput) error {
	report := func() error {
		out, err := uc.show.Execute(ctx, ShowFocusInput{})
		if err != nil {
			return err
		}
		in.OnChange(out)
		return nil
	}
	if err := report(); err != nil {
		return err
	}

	var reportErr error
	err := uc.watcher.Run(ctx, func() {
		if err := report(); err != nil && reportErr == nil {
			reportErr = err
		}
	})
	if err != nil {
		return fmt.Errorf("watch focus state: %w", err)
	}
	return reportErr
}
