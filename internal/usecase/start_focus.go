package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/runoshun/g2g/internal/domain"
	"github.com/runoshun/g2g/internal/usecase/shared"
)

// DefaultQuickTitle names quick timers started without a title.
const DefaultQuickTitle = "Quick focus"

// StartFocusInput contains the parameters for starting a focus plan.
// Fields are ordered to minimize memory padding.
type StartFocusInput struct {
	Driver     FocusDriver // Driver from OpenFocus (required)
	QuickTitle string      // Title of a quick timer
	Minutes    float64     // Quick timer length; > 0 starts a quick timer instead of TaskID
	TaskID     int         // Task to focus on
	Force      bool        // Replace an active plan
}

// StartFocusOutput contains the installed plan.
// Fields are ordered to minimize memory padding.
type StartFocusOutput struct {
	Task    *domain.Task // Stored task (nil for quick timers)
	State   domain.FocusState
	Summary domain.PlanSummary
}

// StartFocus installs a focus plan for a stored task or a quick timer.
type StartFocus struct {
	tasks        domain.TaskRepository
	configLoader domain.ConfigLoader
	logger       domain.Logger
	newPlanID    func() string
}

// NewStartFocus creates a new StartFocus use case.
func NewStartFocus(tasks domain.TaskRepository, configLoader domain.ConfigLoader, logger domain.Logger) *StartFocus {
	return &StartFocus{
		tasks:        tasks,
		configLoader: configLoader,
		logger:       logger,
		newPlanID:    uuid.NewString,
	}
}

// Execute starts counting down the first work session.
// An active plan is only replaced when Force is set.
func (uc *StartFocus) Execute(ctx context.Context, in StartFocusInput) (*StartFocusOutput, error) {
	var (
		task *domain.Task
		ref  domain.TaskRef
	)
	if in.Minutes > 0 || in.TaskID == 0 {
		title := strings.TrimSpace(in.QuickTitle)
		if title == "" {
			title = DefaultQuickTitle
		}
		ref = domain.TaskRef{Title: title, DurationHours: in.Minutes / 60, Quick: true}
	} else {
		var err error
		task, err = shared.GetOpenTask(uc.tasks, in.TaskID)
		if err != nil {
			return nil, err
		}
		ref = task.Ref()
	}

	if current := in.Driver.Snapshot(); current.IsActive() && !in.Force {
		return nil, fmt.Errorf("%q is in focus: %w", current.ActiveTask.Title, domain.ErrFocusActive)
	}

	warnHours, err := loadWarnHours(uc.configLoader)
	if err != nil {
		return nil, err
	}

	planID := uc.newPlanID()
	outcome, err := in.Driver.Do(ctx, domain.StartFocus{Task: ref, PlanID: planID})
	if err != nil {
		return nil, err
	}

	uc.logger.Info(ref.ID, "focus", fmt.Sprintf("plan %s started: %d sessions for %gh", planID, len(outcome.State.Sessions), ref.DurationHours))

	return &StartFocusOutput{
		Task:    task,
		State:   outcome.State,
		Summary: domain.SummarizePlan(ref.DurationHours, warnHours),
	}, nil
}
