package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/g2g/internal/domain"
)

// CreateTasksFromFileInput contains the parameters for creating tasks from a file.
type CreateTasksFromFileInput struct {
	Content string // File content (Markdown with frontmatter)
	DryRun  bool   // If true, parse and validate without creating tasks
}

// CreateTasksFromFileOutput contains the result of creating tasks from a file.
type CreateTasksFromFileOutput struct {
	Tasks []*domain.Task // Created tasks (or tasks that would be created in dry-run mode)
}

// CreateTasksFromFile is the use case for creating tasks from a file.
type CreateTasksFromFile struct {
	tasks        domain.TaskRepository
	configLoader domain.ConfigLoader
	clock        domain.Clock
	logger       domain.Logger
}

// NewCreateTasksFromFile creates a new CreateTasksFromFile use case.
func NewCreateTasksFromFile(
	tasks domain.TaskRepository,
	configLoader domain.ConfigLoader,
	clock domain.Clock,
	logger domain.Logger,
) *CreateTasksFromFile {
	return &CreateTasksFromFile{
		tasks:        tasks,
		configLoader: configLoader,
		clock:        clock,
		logger:       logger,
	}
}

// Execute creates tasks from the given file content. Every block is
// validated before the first task is saved.
func (uc *CreateTasksFromFile) Execute(_ context.Context, in CreateTasksFromFileInput) (*CreateTasksFromFileOutput, error) {
	drafts, err := domain.ParseTaskDrafts(in.Content)
	if err != nil {
		return nil, err
	}

	defaults, err := loadTaskDefaults(uc.configLoader)
	if err != nil {
		return nil, err
	}

	now := uc.clock.Now()
	result := &CreateTasksFromFileOutput{
		Tasks: make([]*domain.Task, 0, len(drafts)),
	}
	for i, draft := range drafts {
		task := &domain.Task{
			ID:            i + 1, // pseudo-ID in dry-run
			Title:         draft.Title,
			Description:   draft.Description,
			Category:      draft.Category,
			Tags:          draft.Tags,
			DurationHours: draft.DurationHours,
			Created:       now,
		}
		if task.Category == "" {
			task.Category = defaults.DefaultCategory
		}
		if task.DurationHours == 0 {
			task.DurationHours = defaults.DefaultDuration
		}
		result.Tasks = append(result.Tasks, task)
	}

	if in.DryRun {
		return result, nil
	}

	for i, task := range result.Tasks {
		id, err := uc.tasks.NextID()
		if err != nil {
			return nil, fmt.Errorf("task %d: generate task ID: %w", i+1, err)
		}
		task.ID = id

		if err := uc.tasks.Save(task); err != nil {
			return nil, fmt.Errorf("task %d: save task: %w", i+1, err)
		}

		uc.logger.Info(id, "task", fmt.Sprintf("created from file: %q", task.Title))
	}

	return result, nil
}
