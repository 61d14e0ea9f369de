package usecase

import (
	"context"
	"errors"

	"github.com/runoshun/g2g/internal/domain"
	"github.com/runoshun/g2g/internal/focus"
)

// RunFocusInput contains the parameters for a headless focus run.
type RunFocusInput struct {
	Loop     *focus.Loop              // Running loop from OpenFocus with Host set (required)
	OnUpdate func(domain.FocusState) // Called with every published state (optional)
	Continue bool                     // Start the next work session when a break ends
}

// RunFocusOutput contains the state the run stopped in.
type RunFocusOutput struct {
	State domain.FocusState
}

// RunFocus counts the active plan down without a terminal UI.
type RunFocus struct {
	logger domain.Logger
}

// NewRunFocus creates a new RunFocus use case.
func NewRunFocus(logger domain.Logger) *RunFocus {
	return &RunFocus{logger: logger}
}

// Execute resumes the plan and blocks until it reaches AllComplete, waits for
// the user after a break (unless Continue is set) or ctx is done. Stopping
// leaves the plan persisted; it is paused on the next load.
func (uc *RunFocus) Execute(ctx context.Context, in RunFocusInput) (*RunFocusOutput, error) {
	last := in.Loop.Snapshot()
	if !last.IsActive() {
		return nil, domain.ErrNoActiveFocus
	}

	if !last.Running && !last.AllComplete() {
		out, err := in.Loop.Do(ctx, domain.Play{})
		if err != nil {
			return nil, err
		}
		last = out.State
	}

	for {
		select {
		case <-ctx.Done():
			return &RunFocusOutput{State: last}, nil

		case state, ok := <-in.Loop.Updates():
			if !ok {
				return &RunFocusOutput{State: last}, nil
			}
			last = state
			if in.OnUpdate != nil {
				in.OnUpdate(state)
			}

			switch state.Mode() {
			case domain.ModeIdle, domain.ModeAllComplete:
				return &RunFocusOutput{State: state}, nil
			case domain.ModeWorkPaused, domain.ModeBreakPaused:
				if !in.Continue {
					return &RunFocusOutput{State: state}, nil
				}
				uc.logger.Debug(state.ActiveTask.ID, "focus", "continuing with the next session")
				if _, err := in.Loop.Do(ctx, domain.Play{}); err != nil {
					if errors.Is(err, context.Canceled) {
						return &RunFocusOutput{State: last}, nil
					}
					return nil, err
				}
			}
		}
	}
}
