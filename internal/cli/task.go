package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/runoshun/g2g/internal/app"
	"github.com/runoshun/g2g/internal/domain"
	"github.com/runoshun/g2g/internal/usecase"
)

// listTitleWidth is the display width titles are cut to in task lists.
const listTitleWidth = 48

// newNewCommand creates the new command for creating tasks.
func newNewCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Title       string
		Description string
		Category    string
		Tags        []string
		Hours       float64
	}

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create a new task",
		Long: `Create a new task with a time estimate.

The estimate decides how many 25-minute focus sessions the task gets.
Without --hours the configured default estimate is used.

Examples:
  # Create a one-hour task in the default category
  g2g new --title "Write report"

  # Create a task with an estimate, category and tags
  g2g new --title "Quarterly review" --hours 2.5 --category Work --tag q3 --tag writing

  # Create a task with body using HEREDOC
  g2g new --title "Refactor parser" --body "$(cat <<'EOF'
- split lexer
- add tests
EOF
)"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			input := usecase.NewTaskInput{
				Title:       opts.Title,
				Description: opts.Description,
				Category:    opts.Category,
				Tags:        opts.Tags,
			}

			// Set the estimate only if the flag was explicitly provided
			if cmd.Flags().Changed("hours") {
				input.DurationHours = &opts.Hours
			}

			uc := c.NewTaskUseCase()
			out, err := uc.Execute(cmd.Context(), input)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(w, "Created task #%d\n", out.Task.ID)
			if preview := domain.PlanPreview(out.Task.DurationHours); preview != "" {
				_, _ = fmt.Fprintf(w, "  %s\n", preview)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Title, "title", "", "Task title (required)")
	cmd.Flags().StringVar(&opts.Description, "body", "", "Task description")
	cmd.Flags().StringVar(&opts.Category, "category", "", "Category (default: configured default category)")
	cmd.Flags().StringArrayVar(&opts.Tags, "tag", nil, "Tags (can specify multiple)")
	cmd.Flags().Float64Var(&opts.Hours, "hours", 0, "Estimate in hours (default: configured default duration)")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}

// newImportCommand creates the import command for creating tasks from a file.
func newImportCommand(c *app.Container) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Create tasks from a Markdown file",
		Long: `Create one or more tasks from a Markdown file.

Each task starts with a YAML frontmatter block:
  ---
  title: Write report
  category: Work
  tags: [writing, q3]
  duration: 2.5
  ---
  Description here.

Use --dry-run to validate the file without creating anything.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read file: %w", err)
			}

			uc := c.CreateTasksFromFileUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.CreateTasksFromFileInput{
				Content: string(content),
				DryRun:  dryRun,
			})
			if err != nil {
				return err
			}

			printImportedTasks(cmd.OutOrStdout(), out.Tasks, dryRun)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Preview tasks without creating")

	return cmd
}

// printImportedTasks prints the tasks created (or planned) by import.
func printImportedTasks(w io.Writer, tasks []*domain.Task, dryRun bool) {
	if dryRun {
		_, _ = fmt.Fprintln(w, "Dry run - tasks that would be created:")
		_, _ = fmt.Fprintln(w, "")
	}

	for i, task := range tasks {
		if dryRun {
			_, _ = fmt.Fprintf(w, "Task %d:\n", i+1)
		} else {
			_, _ = fmt.Fprintf(w, "Created task #%d:\n", task.ID)
		}
		_, _ = fmt.Fprintf(w, "  Title: %s\n", task.Title)
		_, _ = fmt.Fprintf(w, "  Category: %s\n", task.Category)
		_, _ = fmt.Fprintf(w, "  Estimate: %gh\n", task.DurationHours)
		if len(task.Tags) > 0 {
			_, _ = fmt.Fprintf(w, "  Tags: [%s]\n", strings.Join(task.Tags, ", "))
		}
		if task.Description != "" {
			lines := strings.Split(task.Description, "\n")
			preview := truncateWidth(lines[0], 50)
			if len(lines) > 1 {
				preview += " ..."
			}
			_, _ = fmt.Fprintf(w, "  Description: %s\n", preview)
		}
		if i < len(tasks)-1 {
			_, _ = fmt.Fprintln(w, "")
		}
	}

	if !dryRun {
		_, _ = fmt.Fprintf(w, "\nCreated %d task(s)\n", len(tasks))
	}
}

// newListCommand creates the list command for listing tasks.
func newListCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Category string
		Tags     []string
		All      bool
	}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks",
		Long: `Display a list of tasks.

By default, completed tasks are hidden.
Use --all to show all tasks including completed ones.

Output columns:
  ID, STATUS, CATEGORY, ESTIMATE, SESSIONS, TAGS, TITLE

The task in focus is marked with '*' after its ID.

Examples:
  # List open tasks
  g2g list

  # List all tasks including completed
  g2g list -a

  # List tasks in a category with specific tags
  g2g list --category Work --tag q3`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			uc := c.ListTasksUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.ListTasksInput{
				Category:         opts.Category,
				Tags:             opts.Tags,
				IncludeCompleted: opts.All,
			})
			if err != nil {
				return err
			}

			if len(out.Tasks) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No tasks.")
				return nil
			}
			printTaskList(cmd.OutOrStdout(), out.Tasks, out.FocusTaskID)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Category, "category", "", "Filter by category")
	cmd.Flags().StringArrayVar(&opts.Tags, "tag", nil, "Filter by tags (AND condition)")
	cmd.Flags().BoolVarP(&opts.All, "all", "a", false, "Show all tasks including completed")

	return cmd
}

// printTaskList prints tasks as an aligned table.
func printTaskList(w io.Writer, tasks []*domain.Task, focusTaskID int) {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	defer func() { _ = tw.Flush() }()

	_, _ = fmt.Fprintln(tw, "ID\tSTATUS\tCATEGORY\tESTIMATE\tSESSIONS\tTAGS\tTITLE")

	for _, task := range tasks {
		idStr := fmt.Sprintf("%d", task.ID)
		if task.ID == focusTaskID {
			idStr += "*"
		}

		statusStr := "open"
		if task.Completed {
			statusStr = "done"
		}

		tagsStr := "-"
		if len(task.Tags) > 0 {
			tagsStr = "[" + strings.Join(task.Tags, ",") + "]"
		}

		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%gh\t%d\t%s\t%s\n",
			idStr,
			statusStr,
			task.Category,
			task.DurationHours,
			len(domain.PlanSessions(task.DurationHours)),
			tagsStr,
			truncateWidth(task.Title, listTitleWidth),
		)
	}
}

// truncateWidth cuts s to at most width terminal cells.
func truncateWidth(s string, width int) string {
	return runewidth.Truncate(s, width, "...")
}

// newShowCommand creates the show command for displaying task details.
func newShowCommand(c *app.Container) *cobra.Command {
	var asYAML bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show task details",
		Long: `Display detailed information about a task, including the focus
sessions its estimate would be split into.

Use --yaml to print the stored task as YAML.

Examples:
  g2g show 1
  g2g show 1 --yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			taskID, err := parseTaskID(args[0])
			if err != nil {
				return fmt.Errorf("invalid task ID: %w", err)
			}

			uc := c.ShowTaskUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.ShowTaskInput{TaskID: taskID})
			if err != nil {
				return err
			}

			if asYAML {
				text, err := out.Task.ToYAML()
				if err != nil {
					return fmt.Errorf("encode task: %w", err)
				}
				_, _ = fmt.Fprint(cmd.OutOrStdout(), text)
				return nil
			}

			printTaskDetails(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asYAML, "yaml", false, "Output as YAML")

	return cmd
}

// printTaskDetails prints a task and its session plan.
func printTaskDetails(w io.Writer, out *usecase.ShowTaskOutput) {
	task := out.Task

	_, _ = fmt.Fprintf(w, "# Task %d: %s\n\n", task.ID, task.Title)

	if task.Description != "" {
		_, _ = fmt.Fprintf(w, "%s\n\n", task.Description)
	}

	if task.Completed {
		_, _ = fmt.Fprintf(w, "Status: done (%s)\n", task.CompletedAt.Format(time.RFC3339))
	} else {
		_, _ = fmt.Fprintln(w, "Status: open")
	}
	_, _ = fmt.Fprintf(w, "Category: %s\n", task.Category)

	if len(task.Tags) > 0 {
		_, _ = fmt.Fprintf(w, "Tags: [%s]\n", strings.Join(task.Tags, ", "))
	} else {
		_, _ = fmt.Fprintln(w, "Tags: none")
	}

	_, _ = fmt.Fprintf(w, "Estimate: %gh\n", task.DurationHours)
	_, _ = fmt.Fprintf(w, "Created: %s\n", task.Created.Format(time.RFC3339))
	if out.InFocus {
		_, _ = fmt.Fprintln(w, "Focus: active")
	}

	if len(out.Sessions) == 0 {
		return
	}

	_, _ = fmt.Fprintf(w, "\nPlan: %s\n", out.Preview)
	printSessions(w, out.Sessions)
	if out.Summary.Warning != "" {
		_, _ = fmt.Fprintf(w, "\nWarning: %s\n", out.Summary.Warning)
	}
}

// printSessions lists session descriptors one per line.
func printSessions(w io.Writer, sessions []domain.SessionDescriptor) {
	for _, s := range sessions {
		line := fmt.Sprintf("  %d. %s work", s.SessionNumber, domain.FormatDuration(s.WorkSeconds))
		switch s.BreakKind {
		case domain.BreakShort:
			line += fmt.Sprintf(" + %s break", domain.FormatDuration(s.BreakSeconds))
		case domain.BreakLong:
			line += fmt.Sprintf(" + %s long break", domain.FormatDuration(s.BreakSeconds))
		}
		_, _ = fmt.Fprintln(w, line)
	}
}

// parseTaskID parses a task ID string to int.
func parseTaskID(s string) (int, error) {
	// Remove leading # if present
	s = strings.TrimPrefix(s, "#")
	var id int
	_, err := fmt.Sscanf(s, "%d", &id)
	if err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, fmt.Errorf("task ID must be positive")
	}
	return id, nil
}

// newEditCommand creates the edit command for editing task information.
func newEditCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Title       string
		Description string
		Category    string
		AddTags     []string
		RemoveTags  []string
		Hours       float64
	}

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit task information",
		Long: `Edit an existing task.

Only the flags you pass are changed.

Examples:
  # Change the title
  g2g edit 1 --title "New title"

  # Change the estimate
  g2g edit 1 --hours 3

  # Add and remove tags
  g2g edit 1 --add-tag urgent --remove-tag someday`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			taskID, err := parseTaskID(args[0])
			if err != nil {
				return fmt.Errorf("invalid task ID: %w", err)
			}

			input := usecase.EditTaskInput{
				TaskID:     taskID,
				AddTags:    opts.AddTags,
				RemoveTags: opts.RemoveTags,
			}
			if cmd.Flags().Changed("title") {
				input.Title = &opts.Title
			}
			if cmd.Flags().Changed("body") {
				input.Description = &opts.Description
			}
			if cmd.Flags().Changed("category") {
				input.Category = &opts.Category
			}
			if cmd.Flags().Changed("hours") {
				input.DurationHours = &opts.Hours
			}

			uc := c.EditTaskUseCase()
			out, err := uc.Execute(cmd.Context(), input)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Updated task #%d: %s\n", out.Task.ID, out.Task.Title)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Title, "title", "", "New task title")
	cmd.Flags().StringVar(&opts.Description, "body", "", "New task description")
	cmd.Flags().StringVar(&opts.Category, "category", "", "New category")
	cmd.Flags().Float64Var(&opts.Hours, "hours", 0, "New estimate in hours")
	cmd.Flags().StringArrayVar(&opts.AddTags, "add-tag", nil, "Tags to add")
	cmd.Flags().StringArrayVar(&opts.RemoveTags, "remove-tag", nil, "Tags to remove")

	return cmd
}

// newDeleteCommand creates the delete command for removing a task.
func newDeleteCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a task",
		Long: `Delete a task permanently.

A task that owns the active focus plan cannot be deleted; abandon or
clear the plan first.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			taskID, err := parseTaskID(args[0])
			if err != nil {
				return fmt.Errorf("invalid task ID: %w", err)
			}

			uc := c.DeleteTaskUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.DeleteTaskInput{TaskID: taskID})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted task #%d: %s\n", out.Task.ID, out.Task.Title)
			return nil
		},
	}

	return cmd
}

// newDoneCommand creates the done command for completing a task without focus.
func newDoneCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "done <id>",
		Short: "Mark a task as completed",
		Long: `Mark a task as completed without running a focus plan.

To complete the task you are focusing on, use 'g2g focus complete'.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			taskID, err := parseTaskID(args[0])
			if err != nil {
				return fmt.Errorf("invalid task ID: %w", err)
			}

			uc := c.CompleteTaskUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.CompleteTaskInput{TaskID: taskID})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Completed task #%d: %s\n", out.Task.ID, out.Task.Title)
			return nil
		},
	}

	return cmd
}
