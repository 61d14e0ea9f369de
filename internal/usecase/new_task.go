package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/runoshun/g2g/internal/domain"
)

// NewTaskInput contains the parameters for creating a new task.
// Fields are ordered to minimize memory padding.
type NewTaskInput struct {
	DurationHours *float64 // Estimate in hours (nil = configured default)
	Title         string   // Task title (required)
	Description   string   // Task description (optional)
	Category      string   // Category (empty = configured default)
	Tags          []string // Tags (optional)
}

// NewTaskOutput contains the result of creating a new task.
type NewTaskOutput struct {
	Task *domain.Task // The created task
}

// NewTask is the use case for creating a new task.
type NewTask struct {
	tasks        domain.TaskRepository
	configLoader domain.ConfigLoader
	clock        domain.Clock
	logger       domain.Logger
}

// NewNewTask creates a new NewTask use case.
func NewNewTask(tasks domain.TaskRepository, configLoader domain.ConfigLoader, clock domain.Clock, logger domain.Logger) *NewTask {
	return &NewTask{
		tasks:        tasks,
		configLoader: configLoader,
		clock:        clock,
		logger:       logger,
	}
}

// Execute creates a new task with the given input.
func (uc *NewTask) Execute(_ context.Context, in NewTaskInput) (*NewTaskOutput, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, domain.ErrEmptyTitle
	}

	defaults, err := loadTaskDefaults(uc.configLoader)
	if err != nil {
		return nil, err
	}

	duration := defaults.DefaultDuration
	if in.DurationHours != nil {
		duration = *in.DurationHours
	}
	if !domain.ValidDuration(duration) {
		return nil, domain.ErrInvalidDuration
	}

	category := strings.TrimSpace(in.Category)
	if category == "" {
		category = defaults.DefaultCategory
	}

	id, err := uc.tasks.NextID()
	if err != nil {
		return nil, fmt.Errorf("generate task ID: %w", err)
	}

	task := &domain.Task{
		ID:            id,
		Title:         title,
		Description:   in.Description,
		Category:      category,
		Tags:          domain.NormalizeTags(in.Tags),
		DurationHours: duration,
		Created:       uc.clock.Now(),
	}
	if err := uc.tasks.Save(task); err != nil {
		return nil, fmt.Errorf("save task: %w", err)
	}

	uc.logger.Info(id, "task", fmt.Sprintf("created: %q (%gh)", title, duration))

	return &NewTaskOutput{Task: task}, nil
}

// loadTaskDefaults returns the [tasks] section, falling back to built-in defaults.
func loadTaskDefaults(loader domain.ConfigLoader) (domain.TasksConfig, error) {
	defaults := domain.NewDefaultConfig().Tasks
	if loader == nil {
		return defaults, nil
	}
	cfg, err := loader.Load()
	if err != nil {
		return defaults, fmt.Errorf("load config: %w", err)
	}
	if cfg.Tasks.DefaultCategory != "" {
		defaults.DefaultCategory = cfg.Tasks.DefaultCategory
	}
	if domain.ValidDuration(cfg.Tasks.DefaultDuration) {
		defaults.DefaultDuration = cfg.Tasks.DefaultDuration
	}
	return defaults, nil
}
