package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/runoshun/g2g/internal/app"
	"github.com/runoshun/g2g/internal/domain"
	"github.com/runoshun/g2g/internal/tui"
	"github.com/runoshun/g2g/internal/usecase"
)

// DefaultQuickMinutes is the length of a quick timer started without --minutes.
const DefaultQuickMinutes = 25

// newFocusCommand creates the focus command group.
// Without a subcommand it opens the focus screen on the active plan.
func newFocusCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "focus",
		Short: "Run and control focus sessions",
		Long: `Open the focus screen for the active plan.

A plan is a sequence of 25-minute work sessions with breaks in between.
Only one plan exists at a time. It is saved after every change and
resumes paused the next time it is opened.

Keys on the focus screen:
  space/p  play or pause
  s        skip the current work session
  b        skip the current break
  c        complete the task
  a        abandon the plan
  q        quit (the plan is kept)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return showFocusScreen(cmd, c, nil)
		},
	}

	cmd.AddCommand(
		newFocusStartCommand(c),
		newFocusQuickCommand(c),
		newFocusRunCommand(c),
		newFocusStatusCommand(c),
		newFocusControlCommand(c, "skip", "Skip the current work session", domain.SkipSession{}),
		newFocusControlCommand(c, "skip-break", "Skip the current break", domain.SkipBreak{}),
		newFocusControlCommand(c, "complete", "Complete the task in focus and end the plan", domain.CompleteFocus{}),
		newFocusControlCommand(c, "abandon", "End the plan without completing the task", domain.AbandonFocus{}),
		newFocusControlCommand(c, "clear", "Remove the plan", domain.ClearFocus{}),
	)

	return cmd
}

// showFocusScreen hosts the plan on a ticking loop and shows the focus screen.
// start, when set, installs a new plan before the screen opens.
func showFocusScreen(cmd *cobra.Command, c *app.Container, start *usecase.StartFocusInput) error {
	notices := tui.NewNoticeWriter(cmd.ErrOrStderr())
	c.SetBellOutput(notices)

	open, err := c.OpenFocusUseCase().Execute(cmd.Context(), usecase.OpenFocusInput{Host: true})
	if err != nil {
		return err
	}
	defer open.Release()

	if start != nil {
		start.Driver = open.Driver
		if _, err := c.StartFocusUseCase().Execute(cmd.Context(), *start); err != nil {
			return err
		}
	}

	if !open.Loop.Snapshot().IsActive() {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No active focus plan. Start one with 'g2g focus start <id>' or 'g2g focus quick'.")
		return nil
	}

	model := tui.New(c, open.Loop)
	if err := launchFocusTUIFunc(model, notices); err != nil {
		return err
	}
	if result := model.Result(); result != "" {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), result)
	}
	return nil
}

// startDetached installs a plan without a driver. The plan is left paused.
func startDetached(cmd *cobra.Command, c *app.Container, in usecase.StartFocusInput) error {
	open, err := c.OpenFocusUseCase().Execute(cmd.Context(), usecase.OpenFocusInput{})
	if err != nil {
		return err
	}
	defer open.Release()

	in.Driver = open.Driver
	out, err := c.StartFocusUseCase().Execute(cmd.Context(), in)
	if err != nil {
		return err
	}
	if _, err := open.Driver.Do(cmd.Context(), domain.Pause{}); err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	printStarted(w, out)
	_, _ = fmt.Fprintln(w, "Plan is paused. Run 'g2g focus' or 'g2g focus run' to begin.")
	return nil
}

// printStarted prints the plan installed by StartFocus.
func printStarted(w io.Writer, out *usecase.StartFocusOutput) {
	ref := out.State.ActiveTask
	if out.Task != nil {
		_, _ = fmt.Fprintf(w, "Focus on task #%d: %s\n", out.Task.ID, out.Task.Title)
	} else {
		_, _ = fmt.Fprintf(w, "Quick timer: %s\n", ref.Title)
	}
	if preview := domain.PlanPreview(ref.DurationHours); preview != "" {
		_, _ = fmt.Fprintf(w, "  %s\n", preview)
	}
	if out.Summary.Warning != "" {
		_, _ = fmt.Fprintf(w, "Warning: %s\n", out.Summary.Warning)
	}
}

// newFocusStartCommand creates the focus start subcommand.
func newFocusStartCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Force  bool
		Detach bool
	}

	cmd := &cobra.Command{
		Use:   "start <id>",
		Short: "Start a focus plan for a task",
		Long: `Split the task's estimate into focus sessions and start the first one.

The focus screen opens and counts the plan down. With --detach the plan
is saved paused and no screen is shown.

An active plan is only replaced with --force.

Examples:
  g2g focus start 3
  g2g focus start 3 --force
  g2g focus start 3 --detach`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			taskID, err := parseTaskID(args[0])
			if err != nil {
				return fmt.Errorf("invalid task ID: %w", err)
			}

			in := usecase.StartFocusInput{TaskID: taskID, Force: opts.Force}
			if opts.Detach {
				return startDetached(cmd, c, in)
			}
			return showFocusScreen(cmd, c, &in)
		},
	}

	cmd.Flags().BoolVarP(&opts.Force, "force", "f", false, "Replace the active plan")
	cmd.Flags().BoolVarP(&opts.Detach, "detach", "d", false, "Save the plan paused without opening the focus screen")

	return cmd
}

// newFocusQuickCommand creates the focus quick subcommand.
func newFocusQuickCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Title   string
		Minutes float64
		Force   bool
		Detach  bool
	}

	cmd := &cobra.Command{
		Use:   "quick",
		Short: "Start a quick timer not tied to a task",
		Long: `Start a focus plan that is not backed by a stored task.

Completing a quick timer does not change any task.

Examples:
  g2g focus quick
  g2g focus quick --minutes 50 --title "Inbox zero"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !domain.ValidDuration(opts.Minutes) {
				return fmt.Errorf("invalid --minutes %g: %w", opts.Minutes, domain.ErrInvalidDuration)
			}

			in := usecase.StartFocusInput{
				QuickTitle: opts.Title,
				Minutes:    opts.Minutes,
				Force:      opts.Force,
			}
			if opts.Detach {
				return startDetached(cmd, c, in)
			}
			return showFocusScreen(cmd, c, &in)
		},
	}

	cmd.Flags().StringVar(&opts.Title, "title", "", "Timer title (default: \""+usecase.DefaultQuickTitle+"\")")
	cmd.Flags().Float64VarP(&opts.Minutes, "minutes", "m", DefaultQuickMinutes, "Timer length in minutes")
	cmd.Flags().BoolVarP(&opts.Force, "force", "f", false, "Replace the active plan")
	cmd.Flags().BoolVarP(&opts.Detach, "detach", "d", false, "Save the plan paused without opening the focus screen")

	return cmd
}

// newFocusRunCommand creates the focus run subcommand.
func newFocusRunCommand(c *app.Container) *cobra.Command {
	var keepGoing bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Count the active plan down without the focus screen",
		Long: `Resume the active plan and print each phase as it starts.

The run stops when every session is complete or when a break ends,
so you can decide when to start the next session. With --continue the
next session starts on its own.

Interrupting the run keeps the plan; it resumes paused.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Setup signal handling for graceful shutdown
			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			open, err := c.OpenFocusUseCase().Execute(ctx, usecase.OpenFocusInput{Host: true})
			if err != nil {
				return err
			}
			defer open.Release()

			w := cmd.OutOrStdout()
			progress := &phaseReporter{w: w}
			out, err := c.RunFocusUseCase().Execute(ctx, usecase.RunFocusInput{
				Loop:     open.Loop,
				Continue: keepGoing,
				OnUpdate: progress.report,
			})
			if err != nil {
				return err
			}

			switch out.State.Mode() {
			case domain.ModeAllComplete:
				_, _ = fmt.Fprintln(w, "All sessions complete. Run 'g2g focus complete' to mark the task done.")
			case domain.ModeWorkPaused:
				_, _ = fmt.Fprintln(w, "Break over. Run 'g2g focus run' to start the next session.")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&keepGoing, "continue", false, "Start the next session when a break ends")

	return cmd
}

// phaseReporter prints one line per phase rather than one per tick.
type phaseReporter struct {
	w     io.Writer
	mode  domain.FocusMode
	index int
}

func (r *phaseReporter) report(state domain.FocusState) {
	mode := state.Mode()
	if mode == r.mode && state.CurrentIndex == r.index {
		return
	}
	r.mode, r.index = mode, state.CurrentIndex

	if mode == domain.ModeIdle || mode == domain.ModeAllComplete {
		_, _ = fmt.Fprintln(r.w, mode.Display())
		return
	}
	_, _ = fmt.Fprintf(r.w, "%s · session %d of %d · %s\n",
		mode.Display(), state.CurrentIndex+1, len(state.Sessions), domain.FormatTimer(state.SecondsRemaining))
}

// newFocusStatusCommand creates the focus status subcommand.
func newFocusStatusCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Watch bool
		JSON  bool
	}

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the active plan",
		Long: `Show the active plan without taking control of it.

With --watch the status is printed again whenever the plan changes,
for example while another terminal is running the focus screen.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := cmd.OutOrStdout()
			show := func(out *usecase.ShowFocusOutput) error {
				if opts.JSON {
					return printFocusStatusJSON(w, out)
				}
				printFocusStatus(w, out)
				return nil
			}

			if !opts.Watch {
				out, err := c.ShowFocusUseCase().Execute(cmd.Context(), usecase.ShowFocusInput{})
				if err != nil {
					return err
				}
				return show(out)
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			var printErr error
			err := c.WatchFocusUseCase().Execute(ctx, usecase.WatchFocusInput{
				OnChange: func(out *usecase.ShowFocusOutput) {
					if err := show(out); err != nil && printErr == nil {
						printErr = err
					}
					if !opts.JSON {
						_, _ = fmt.Fprintln(w)
					}
				},
			})
			if err != nil {
				return err
			}
			return printErr
		},
	}

	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "Print the status again whenever it changes")
	cmd.Flags().BoolVar(&opts.JSON, "json", false, "Output as JSON")

	return cmd
}

// printFocusStatus prints the plan in a human-readable form.
func printFocusStatus(w io.Writer, out *usecase.ShowFocusOutput) {
	state := out.State
	if !state.IsActive() {
		_, _ = fmt.Fprintln(w, "No active focus plan.")
		return
	}

	ref := state.ActiveTask
	if ref.Quick {
		_, _ = fmt.Fprintf(w, "Task: %s (quick timer)\n", ref.Title)
	} else {
		_, _ = fmt.Fprintf(w, "Task: #%d %s\n", ref.ID, ref.Title)
	}
	_, _ = fmt.Fprintf(w, "Mode: %s\n", out.Mode.Display())
	if !out.Mode.IsTerminal() {
		_, _ = fmt.Fprintf(w, "Session: %d of %d\n", state.CurrentIndex+1, len(state.Sessions))
		_, _ = fmt.Fprintf(w, "Remaining: %s\n", domain.FormatTimer(state.SecondsRemaining))
	}
	_, _ = fmt.Fprintf(w, "Completed: %d of %d\n", len(state.CompletedIndices), len(state.Sessions))
	if out.Live {
		_, _ = fmt.Fprintln(w, "Driven by another g2g process")
	}
}

// focusStatusJSON is the --json shape of focus status.
type focusStatusJSON struct {
	Task             *domain.TaskRef `json:"task"`
	PlanID           string          `json:"planId,omitempty"`
	Mode             string          `json:"mode"`
	Session          int             `json:"session,omitempty"`
	Sessions         int             `json:"sessions"`
	Completed        int             `json:"completed"`
	SecondsRemaining int             `json:"secondsRemaining"`
	Live             bool            `json:"live"`
}

// printFocusStatusJSON prints the plan as one JSON object.
func printFocusStatusJSON(w io.Writer, out *usecase.ShowFocusOutput) error {
	state := out.State
	status := focusStatusJSON{
		Task:             state.ActiveTask,
		PlanID:           state.PlanID,
		Mode:             string(out.Mode),
		Sessions:         len(state.Sessions),
		Completed:        len(state.CompletedIndices),
		SecondsRemaining: state.SecondsRemaining,
		Live:             out.Live,
	}
	if state.IsActive() && !out.Mode.IsTerminal() {
		status.Session = state.CurrentIndex + 1
	}

	data, err := json.Marshal(status)
	if err != nil {
		return fmt.Errorf("encode status: %w", err)
	}
	_, _ = fmt.Fprintln(w, string(data))
	return nil
}

// newFocusControlCommand creates a subcommand that applies command to the saved plan.
// Play and pause have no one-shot form: a plan only counts down while hosted.
func newFocusControlCommand(c *app.Container, use, short string, command domain.FocusCommand) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Long: short + `.

Fails while the focus screen or 'g2g focus run' is driving the plan;
use the keys there instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			open, err := c.OpenFocusUseCase().Execute(cmd.Context(), usecase.OpenFocusInput{})
			if err != nil {
				return err
			}
			defer open.Release()

			out, err := c.FocusControlUseCase().Execute(cmd.Context(), usecase.FocusControlInput{
				Driver:  open.Driver,
				Command: command,
			})
			if err != nil {
				return err
			}

			printControlResult(cmd.OutOrStdout(), command, out)
			return nil
		},
	}
}

// printControlResult describes the effect of a focus command.
func printControlResult(w io.Writer, command domain.FocusCommand, out *usecase.FocusControlOutput) {
	if !out.Applied {
		_, _ = fmt.Fprintf(w, "Nothing to %s: focus is %s.\n", command.Name(), out.Previous.Mode().Display())
		return
	}

	switch command.(type) {
	case domain.CompleteFocus:
		if out.CompletedTask != nil {
			_, _ = fmt.Fprintf(w, "Task #%d marked complete: %s\n", out.CompletedTask.ID, out.CompletedTask.Title)
		} else {
			_, _ = fmt.Fprintf(w, "Focus complete: %s\n", out.Previous.ActiveTask.Title)
		}
	case domain.AbandonFocus:
		_, _ = fmt.Fprintln(w, "Focus plan abandoned.")
	case domain.ClearFocus:
		_, _ = fmt.Fprintln(w, "Focus plan cleared.")
	default:
		state := out.State
		mode := state.Mode()
		if mode.IsTerminal() {
			_, _ = fmt.Fprintln(w, mode.Display())
			return
		}
		_, _ = fmt.Fprintf(w, "%s · session %d of %d · %s\n",
			mode.Display(), state.CurrentIndex+1, len(state.Sessions), domain.FormatTimer(state.SecondsRemaining))
	}
}
