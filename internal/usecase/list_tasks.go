package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/g2g/internal/domain"
)

// ListTasksInput contains the parameters for listing tasks.
type ListTasksInput struct {
	Category         string   // Filter by category (empty = all)
	Tags             []string // Filter by tags (AND condition)
	IncludeCompleted bool     // Include completed tasks
}

// ListTasksOutput contains the result of listing tasks.
type ListTasksOutput struct {
	Tasks       []*domain.Task // Tasks matching the filter, ordered by ID
	FocusTaskID int            // ID of the task in focus (0 = none)
}

// ListTasks is the use case for listing tasks.
type ListTasks struct {
	tasks  domain.TaskRepository
	states FocusStateReader
}

// NewListTasks creates a new ListTasks use case.
func NewListTasks(tasks domain.TaskRepository, states FocusStateReader) *ListTasks {
	return &ListTasks{
		tasks:  tasks,
		states: states,
	}
}

// Execute lists tasks matching the given input criteria.
func (uc *ListTasks) Execute(_ context.Context, in ListTasksInput) (*ListTasksOutput, error) {
	tasks, err := uc.tasks.List(domain.TaskFilter{
		Category:         in.Category,
		Tags:             in.Tags,
		IncludeCompleted: in.IncludeCompleted,
	})
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	out := &ListTasksOutput{Tasks: tasks}
	if uc.states != nil {
		if state := uc.states.Peek(); state.IsActive() && !state.ActiveTask.Quick {
			out.FocusTaskID = state.ActiveTask.ID
		}
	}
	return out, nil
}
