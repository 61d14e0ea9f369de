package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/g2g/internal/domain"
	"github.com/runoshun/g2g/internal/usecase/shared"
)

// DeleteTaskInput contains the parameters for deleting a task.
type DeleteTaskInput struct {
	TaskID int // Task ID to delete
}

// DeleteTaskOutput contains the result of deleting a task.
type DeleteTaskOutput struct {
	Task *domain.Task // The deleted task
}

// DeleteTask is the use case for deleting a task.
type DeleteTask struct {
	tasks  domain.TaskRepository
	states FocusStateReader
	logger domain.Logger
}

// NewDeleteTask creates a new DeleteTask use case.
func NewDeleteTask(tasks domain.TaskRepository, states FocusStateReader, logger domain.Logger) *DeleteTask {
	return &DeleteTask{
		tasks:  tasks,
		states: states,
		logger: logger,
	}
}

// Execute deletes a task with the given ID.
// The task that owns the active focus plan cannot be deleted until the plan ends.
func (uc *DeleteTask) Execute(_ context.Context, in DeleteTaskInput) (*DeleteTaskOutput, error) {
	task, err := shared.GetTask(uc.tasks, in.TaskID)
	if err != nil {
		return nil, err
	}

	if uc.states != nil {
		state := uc.states.Peek()
		if state.IsActive() && !state.ActiveTask.Quick && state.ActiveTask.ID == task.ID {
			return nil, fmt.Errorf("task #%d is in focus: abandon or complete the plan first: %w", task.ID, domain.ErrFocusActive)
		}
	}

	if err := uc.tasks.Delete(in.TaskID); err != nil {
		return nil, fmt.Errorf("delete task: %w", err)
	}

	uc.logger.Info(task.ID, "task", fmt.Sprintf("deleted: %q", task.Title))

	return &DeleteTaskOutput{Task: task}, nil
}
