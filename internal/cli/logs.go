package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/runoshun/g2g/internal/app"
	"github.com/runoshun/g2g/internal/usecase"
)

// newLogsCommand creates the logs command for reading the activity log.
func newLogsCommand(c *app.Container) *cobra.Command {
	var lines int

	cmd := &cobra.Command{
		Use:   "logs [task-id]",
		Short: "Show the activity log",
		Long: `Show the end of the global activity log, or of one task's log.

Use -n -1 to print the whole log.

Examples:
  g2g logs
  g2g logs 3 -n 100`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := usecase.ShowLogsInput{Lines: lines}
			if len(args) == 1 {
				taskID, err := parseTaskID(args[0])
				if err != nil {
					return fmt.Errorf("invalid task ID: %w", err)
				}
				input.TaskID = taskID
			}

			uc := c.ShowLogsUseCase()
			out, err := uc.Execute(cmd.Context(), input)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			for _, line := range out.Lines {
				_, _ = fmt.Fprintln(w, line)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&lines, "lines", "n", usecase.DefaultLogLines, "Number of lines to show (-1 for all)")

	return cmd
}
