// Package cli provides the command-line interface for g2g.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/runoshun/g2g/internal/app"
	"github.com/runoshun/g2g/internal/tui"
)

// Command group IDs.
const (
	groupSetup = "setup"
	groupTask  = "task"
	groupFocus = "focus"
)

// launchFocusTUIFunc shows the focus screen, allowing it to be mocked in tests.
var launchFocusTUIFunc = tui.Run

// NewRootCommand creates the root command for g2g.
// It receives the container for dependency injection and version for display.
func NewRootCommand(c *app.Container, version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "g2g",
		Short: "Task tracker with focus sessions",
		Long: `g2g keeps a list of tasks with time estimates and turns an estimate
into a plan of 25-minute focus sessions separated by short breaks,
with a long break after every fourth session.

Start a plan with 'g2g focus start <id>' or 'g2g focus quick' and
control it from the focus screen or the 'g2g focus' subcommands.`,
		Version: version,
		// SilenceUsage prevents usage from being printed on errors
		SilenceUsage: true,
		// SilenceErrors prevents Cobra from printing errors (we handle it in main)
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip if container is nil (e.g. in tests)
			if c == nil || c.ConfigLoader == nil {
				return nil
			}

			cfg, err := c.ConfigLoader.Load()
			if err != nil {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", err)
				return nil
			}

			for _, w := range cfg.Warnings {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", w)
			}
			return nil
		},
	}

	// Define command groups
	root.AddGroup(
		&cobra.Group{ID: groupSetup, Title: "Setup Commands:"},
		&cobra.Group{ID: groupTask, Title: "Task Management:"},
		&cobra.Group{ID: groupFocus, Title: "Focus Sessions:"},
	)

	// Setup commands
	initCmd := newInitCommand(c)
	initCmd.GroupID = groupSetup

	configCmd := newConfigCommand(c)
	configCmd.GroupID = groupSetup

	logsCmd := newLogsCommand(c)
	logsCmd.GroupID = groupSetup

	// Task management commands
	newCmd := newNewCommand(c)
	newCmd.GroupID = groupTask

	listCmd := newListCommand(c)
	listCmd.GroupID = groupTask

	showCmd := newShowCommand(c)
	showCmd.GroupID = groupTask

	editCmd := newEditCommand(c)
	editCmd.GroupID = groupTask

	deleteCmd := newDeleteCommand(c)
	deleteCmd.GroupID = groupTask

	doneCmd := newDoneCommand(c)
	doneCmd.GroupID = groupTask

	importCmd := newImportCommand(c)
	importCmd.GroupID = groupTask

	// Focus commands
	planCmd := newPlanCommand(c)
	planCmd.GroupID = groupFocus

	focusCmd := newFocusCommand(c)
	focusCmd.GroupID = groupFocus

	// Add subcommands
	root.AddCommand(
		initCmd,
		configCmd,
		logsCmd,
		newCmd,
		listCmd,
		showCmd,
		editCmd,
		deleteCmd,
		doneCmd,
		importCmd,
		planCmd,
		focusCmd,
	)

	return root
}
