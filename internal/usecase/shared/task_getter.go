// Package shared provides shared utilities for use cases.
package shared

import (
	"fmt"

	"github.com/runoshun/g2g/internal/domain"
)

// GetTask retrieves a task by ID and returns domain.ErrTaskNotFound if not found.
// This centralizes the common pattern of:
//
//	task, err := repo.Get(taskID)
//	if err != nil { return nil, fmt.Errorf("get task: %w", err) }
//	if task == nil { return nil, domain.ErrTaskNotFound }
func GetTask(repo domain.TaskRepository, taskID int) (*domain.Task, error) {
	task, err := repo.Get(taskID)
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}
	if task == nil {
		return nil, domain.ErrTaskNotFound
	}
	return task, nil
}

// GetOpenTask is GetTask that also rejects completed tasks with domain.ErrTaskCompleted.
func GetOpenTask(repo domain.TaskRepository, taskID int) (*domain.Task, error) {
	task, err := GetTask(repo, taskID)
	if err != nil {
		return nil, err
	}
	if task.Completed {
		return nil, fmt.Errorf("task #%d: %w", taskID, domain.ErrTaskCompleted)
	}
	return task, nil
}
