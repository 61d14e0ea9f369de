package usecase

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/runoshun/g2g/internal/domain"
	"github.com/runoshun/g2g/internal/usecase/shared"
)

// EditTaskInput contains the parameters for editing a task.
// All fields except TaskID are optional. Only non-nil/non-empty fields will be updated.
// Fields are ordered to minimize memory padding.
type EditTaskInput struct {
	Title         *string  // New title (nil = no change)
	Description   *string  // New description (nil = no change)
	Category      *string  // New category (nil = no change)
	DurationHours *float64 // New estimate (nil = no change)
	AddTags       []string // Tags to add
	RemoveTags    []string // Tags to remove
	TaskID        int      // Task ID to edit (required)
}

// EditTaskOutput contains the result of editing a task.
type EditTaskOutput struct {
	Task *domain.Task // The updated task
}

// EditTask is the use case for editing an existing task.
type EditTask struct {
	tasks  domain.TaskRepository
	logger domain.Logger
}

// NewEditTask creates a new EditTask use case.
func NewEditTask(tasks domain.TaskRepository, logger domain.Logger) *EditTask {
	return &EditTask{
		tasks:  tasks,
		logger: logger,
	}
}

// Execute edits a task with the given input.
// A plan already running for the task keeps its sessions; the new estimate
// applies the next time focus is started.
func (uc *EditTask) Execute(_ context.Context, in EditTaskInput) (*EditTaskOutput, error) {
	if in.Title == nil && in.Description == nil && in.Category == nil && in.DurationHours == nil &&
		len(in.AddTags) == 0 && len(in.RemoveTags) == 0 {
		return nil, domain.ErrNoFieldsToUpdate
	}

	if in.Title != nil && strings.TrimSpace(*in.Title) == "" {
		return nil, domain.ErrEmptyTitle
	}
	if in.DurationHours != nil && !domain.ValidDuration(*in.DurationHours) {
		return nil, domain.ErrInvalidDuration
	}

	task, err := shared.GetTask(uc.tasks, in.TaskID)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		task.Title = strings.TrimSpace(*in.Title)
	}
	if in.Description != nil {
		task.Description = *in.Description
	}
	if in.Category != nil {
		task.Category = strings.TrimSpace(*in.Category)
	}
	if in.DurationHours != nil {
		task.DurationHours = *in.DurationHours
	}
	if len(in.AddTags) > 0 || len(in.RemoveTags) > 0 {
		task.Tags = updateTags(task.Tags, in.AddTags, in.RemoveTags)
	}

	if err := uc.tasks.Save(task); err != nil {
		return nil, fmt.Errorf("save task: %w", err)
	}

	uc.logger.Info(task.ID, "task", "edited")

	return &EditTaskOutput{Task: task}, nil
}

// updateTags adds and removes tags from the current set, comparing
// case-insensitively. The result is sorted and free of duplicates.
func updateTags(current, add, remove []string) []string {
	removeSet := make(map[string]bool, len(remove))
	for _, tag := range remove {
		removeSet[strings.ToLower(strings.TrimSpace(tag))] = true
	}

	var kept []string
	for _, tag := range domain.NormalizeTags(append(slices.Clone(current), add...)) {
		if !removeSet[strings.ToLower(tag)] {
			kept = append(kept, tag)
		}
	}
	if len(kept) == 0 {
		return nil
	}

	slices.SortFunc(kept, func(a, b string) int {
		return strings.Compare(strings.ToLower(a), strings.ToLower(b))
	})
	return kept
}
