package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/g2g/internal/domain"
	"github.com/runoshun/g2g/internal/usecase/shared"
)

// ShowTaskInput contains the parameters for showing a task.
type ShowTaskInput struct {
	TaskID int // Task ID (required)
}

// ShowTaskOutput contains the result of showing a task.
// Fields are ordered to minimize memory padding.
type ShowTaskOutput struct {
	Task     *domain.Task               // The task details
	Preview  string                     // One-line plan description
	Sessions []domain.SessionDescriptor // Focus plan for the estimate
	Summary  domain.PlanSummary         // Plan totals and long-task warning
	InFocus  bool                       // The task owns the active focus plan
}

// ShowTask is the use case for displaying task details.
type ShowTask struct {
	tasks        domain.TaskRepository
	configLoader domain.ConfigLoader
	states       FocusStateReader
}

// NewShowTask creates a new ShowTask use case.
func NewShowTask(tasks domain.TaskRepository, configLoader domain.ConfigLoader, states FocusStateReader) *ShowTask {
	return &ShowTask{
		tasks:        tasks,
		configLoader: configLoader,
		states:       states,
	}
}

// Execute returns the task together with its focus plan.
func (uc *ShowTask) Execute(_ context.Context, in ShowTaskInput) (*ShowTaskOutput, error) {
	task, err := shared.GetTask(uc.tasks, in.TaskID)
	if err != nil {
		return nil, err
	}

	warnHours, err := loadWarnHours(uc.configLoader)
	if err != nil {
		return nil, err
	}

	out := &ShowTaskOutput{
		Task:     task,
		Sessions: domain.PlanSessions(task.DurationHours),
		Summary:  domain.SummarizePlan(task.DurationHours, warnHours),
		Preview:  domain.PlanPreview(task.DurationHours),
	}
	if uc.states != nil {
		state := uc.states.Peek()
		out.InFocus = state.IsActive() && !state.ActiveTask.Quick && state.ActiveTask.ID == task.ID
	}
	return out, nil
}

func loadWarnHours(loader domain.ConfigLoader) (float64, error) {
	if loader == nil {
		return domain.DefaultWarnHours, nil
	}
	cfg, err := loader.Load()
	if err != nil {
		return 0, fmt.Errorf("load config: %w", err)
	}
	return cfg.Focus.WarnHours, nil
}
