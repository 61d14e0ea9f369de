package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/runoshun/g2g/internal/domain"
)

// ErrUnsupportedCommand is returned for commands FocusControl does not forward.
var ErrUnsupportedCommand = errors.New("unsupported focus command")

// FocusControlInput contains a user command for the active plan.
type FocusControlInput struct {
	Driver  FocusDriver         // Driver from OpenFocus (required)
	Command domain.FocusCommand // Play, Pause, SkipSession, SkipBreak, CompleteFocus, AbandonFocus or ClearFocus
}

// FocusControlOutput contains the state after the command.
// Fields are ordered to minimize memory padding.
type FocusControlOutput struct {
	CompletedTask *domain.Task // Stored task marked done by CompleteFocus
	Previous      domain.FocusState
	State         domain.FocusState
	Applied       bool // False when the command had no effect in the current mode
}

// FocusControl applies user commands to the active plan.
// CompleteFocus additionally marks the stored task completed.
type FocusControl struct {
	tasks  domain.TaskRepository
	clock  domain.Clock
	logger domain.Logger
}

// NewFocusControl creates a new FocusControl use case.
func NewFocusControl(tasks domain.TaskRepository, clock domain.Clock, logger domain.Logger) *FocusControl {
	return &FocusControl{
		tasks:  tasks,
		clock:  clock,
		logger: logger,
	}
}

// Execute fails with domain.ErrNoActiveFocus when no plan is installed.
// A command that does not apply to the current mode is not an error.
func (uc *FocusControl) Execute(ctx context.Context, in FocusControlInput) (*FocusControlOutput, error) {
	switch in.Command.(type) {
	case domain.Play, domain.Pause, domain.SkipSession, domain.SkipBreak,
		domain.CompleteFocus, domain.AbandonFocus, domain.ClearFocus:
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedCommand, in.Command.Name())
	}

	prev := in.Driver.Snapshot()
	if !prev.IsActive() {
		return nil, domain.ErrNoActiveFocus
	}

	outcome, err := in.Driver.Do(ctx, in.Command)
	if err != nil {
		return nil, err
	}

	// The task is only marked done once the plan has really ended.
	var completed *domain.Task
	if _, ok := in.Command.(domain.CompleteFocus); ok && outcome.Applied {
		task, err := uc.completeStoredTask(*prev.ActiveTask)
		if err != nil {
			id := prev.ActiveTask.ID
			return nil, fmt.Errorf("focus ended but task #%d was not marked complete (run 'g2g done %d'): %w", id, id, err)
		}
		completed = task
	}

	if _, ok := in.Command.(domain.AbandonFocus); ok && outcome.Applied {
		uc.logger.Info(prev.ActiveTask.ID, "focus", fmt.Sprintf("abandoned %q after %d of %d sessions",
			prev.ActiveTask.Title, len(prev.CompletedIndices), len(prev.Sessions)))
	}

	return &FocusControlOutput{
		CompletedTask: completed,
		Previous:      prev,
		State:         outcome.State,
		Applied:       outcome.Applied,
	}, nil
}

// completeStoredTask marks the task behind ref done. Quick timers and tasks
// deleted since the plan started have nothing to mark.
func (uc *FocusControl) completeStoredTask(ref domain.TaskRef) (*domain.Task, error) {
	if ref.Quick || ref.ID == 0 {
		return nil, nil
	}
	task, err := uc.tasks.Get(ref.ID)
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}
	if task == nil {
		uc.logger.Warn(ref.ID, "focus", "task deleted during focus; nothing to mark completed")
		return nil, nil
	}
	if task.Completed {
		return task, nil
	}
	task.MarkCompleted(uc.clock.Now())
	if err := uc.tasks.Save(task); err != nil {
		return nil, fmt.Errorf("save task: %w", err)
	}
	uc.logger.Info(task.ID, "task", "completed via focus")
	return task, nil
}
