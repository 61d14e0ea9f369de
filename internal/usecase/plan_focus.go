package usecase

import (
	"context"

	"github.com/runoshun/g2g/internal/domain"
	"github.com/runoshun/g2g/internal/usecase/shared"
)

// PlanFocusInput contains the parameters for previewing a focus plan.
// Either TaskID or Hours is used; TaskID takes precedence.
type PlanFocusInput struct {
	Hours  float64 // Estimate to plan
	TaskID int     // Plan this task's estimate instead (0 = use Hours)
}

// PlanFocusOutput contains the planned sessions.
// Fields are ordered to minimize memory padding.
type PlanFocusOutput struct {
	Task     *domain.Task // Source task (nil when planning raw hours)
	Preview  string
	Sessions []domain.SessionDescriptor
	Summary  domain.PlanSummary
	Hours    float64
}

// PlanFocus previews the sessions a focus plan would contain. It never
// touches the active plan.
type PlanFocus struct {
	tasks        domain.TaskRepository
	configLoader domain.ConfigLoader
}

// NewPlanFocus creates a new PlanFocus use case.
func NewPlanFocus(tasks domain.TaskRepository, configLoader domain.ConfigLoader) *PlanFocus {
	return &PlanFocus{
		tasks:        tasks,
		configLoader: configLoader,
	}
}

// Execute plans the estimate.
func (uc *PlanFocus) Execute(_ context.Context, in PlanFocusInput) (*PlanFocusOutput, error) {
	out := &PlanFocusOutput{Hours: in.Hours}
	if in.TaskID > 0 {
		task, err := shared.GetTask(uc.tasks, in.TaskID)
		if err != nil {
			return nil, err
		}
		out.Task = task
		out.Hours = task.DurationHours
	}

	if !domain.ValidDuration(out.Hours) {
		return nil, domain.ErrInvalidDuration
	}
	out.Sessions = domain.PlanSessions(out.Hours)
	if len(out.Sessions) == 0 {
		return nil, domain.ErrCannotSchedule
	}

	warnHours, err := loadWarnHours(uc.configLoader)
	if err != nil {
		return nil, err
	}
	out.Summary = domain.SummarizePlan(out.Hours, warnHours)
	out.Preview = domain.PlanPreview(out.Hours)
	return out, nil
}
