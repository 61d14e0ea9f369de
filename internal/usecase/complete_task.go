package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/g2g/internal/domain"
	"github.com/runoshun/g2g/internal/usecase/shared"
)

// CompleteTaskInput contains the parameters for completing a task.
type CompleteTaskInput struct {
	TaskID int // Task ID to complete
}

// CompleteTaskOutput contains the result of completing a task.
type CompleteTaskOutput struct {
	Task *domain.Task // The completed task
}

// CompleteTask marks a task as done without running a focus plan.
type CompleteTask struct {
	tasks  domain.TaskRepository
	clock  domain.Clock
	logger domain.Logger
}

// NewCompleteTask creates a new CompleteTask use case.
func NewCompleteTask(tasks domain.TaskRepository, clock domain.Clock, logger domain.Logger) *CompleteTask {
	return &CompleteTask{
		tasks:  tasks,
		clock:  clock,
		logger: logger,
	}
}

// Execute marks the task completed. Completing it twice is an error.
func (uc *CompleteTask) Execute(_ context.Context, in CompleteTaskInput) (*CompleteTaskOutput, error) {
	task, err := shared.GetOpenTask(uc.tasks, in.TaskID)
	if err != nil {
		return nil, err
	}

	task.MarkCompleted(uc.clock.Now())
	if err := uc.tasks.Save(task); err != nil {
		return nil, fmt.Errorf("save task: %w", err)
	}

	uc.logger.Info(task.ID, "task", "completed")

	return &CompleteTaskOutput{Task: task}, nil
}
