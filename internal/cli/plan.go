package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/runoshun/g2g/internal/app"
	"github.com/runoshun/g2g/internal/domain"
	"github.com/runoshun/g2g/internal/usecase"
)

// newPlanCommand creates the plan command for previewing focus sessions.
func newPlanCommand(c *app.Container) *cobra.Command {
	var taskID int

	cmd := &cobra.Command{
		Use:   "plan [hours]",
		Short: "Preview the focus sessions for an estimate",
		Long: `Show how an estimate is split into focus sessions.

Every session is 25 minutes of work except possibly the last one.
Sessions are followed by a 5-minute break, every fourth by a 15-minute
break. The last session has no break.

The active focus plan is not changed.

Examples:
  # Preview a 2-hour estimate
  g2g plan 2

  # Preview the plan for task #3
  g2g plan --task 3`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := usecase.PlanFocusInput{TaskID: taskID}
			switch {
			case len(args) == 1 && taskID > 0:
				return fmt.Errorf("give either hours or --task, not both")
			case len(args) == 1:
				hours, err := strconv.ParseFloat(args[0], 64)
				if err != nil {
					return fmt.Errorf("invalid hours %q: %w", args[0], domain.ErrInvalidDuration)
				}
				input.Hours = hours
			case taskID == 0:
				return fmt.Errorf("give an estimate in hours or --task")
			}

			uc := c.PlanFocusUseCase()
			out, err := uc.Execute(cmd.Context(), input)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if out.Task != nil {
				_, _ = fmt.Fprintf(w, "Task #%d: %s\n", out.Task.ID, out.Task.Title)
			}
			_, _ = fmt.Fprintln(w, out.Preview)
			printSessions(w, out.Sessions)
			_, _ = fmt.Fprintf(w, "\nWork: %s  Breaks: %s  Total: %s\n",
				domain.FormatDuration(out.Summary.WorkSeconds),
				domain.FormatDuration(out.Summary.BreakSeconds),
				domain.FormatDuration(out.Summary.EstimatedCompletion))
			if out.Summary.Warning != "" {
				_, _ = fmt.Fprintf(w, "Warning: %s\n", out.Summary.Warning)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&taskID, "task", 0, "Plan the estimate of this task")

	return cmd
}
