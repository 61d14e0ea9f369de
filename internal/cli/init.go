package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/runoshun/g2g/internal/app"
	"github.com/runoshun/g2g/internal/usecase"
)

// newInitCommand creates the init command.
func newInitCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize the g2g data directory",
		Long: `Initialize the g2g data directory.

The data directory is $G2G_HOME, else $XDG_DATA_HOME/g2g, else
~/.local/share/g2g. This command creates:
- the task store (tasks.json, or tasks.db with [tasks] store = "sqlite")
- logs/: global and per-task log files
- state/: the saved focus plan

Running init again is harmless.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			uc := c.InitStoreUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.InitStoreInput{
				DataDir: c.Config.DataDir,
			})
			if err != nil {
				return err
			}

			if out.AlreadyInitialized {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "g2g already initialized in %s\n", out.DataDir)
				return nil
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Initialized g2g in %s\n", out.DataDir)
			return nil
		},
	}
}
