package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/g2g/internal/app"
	"github.com/runoshun/g2g/internal/domain"
	"github.com/runoshun/g2g/internal/testutil"
)

var testNow = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

// testEnv bundles a container with the mocks behind it.
type testEnv struct {
	c      *app.Container
	repo   *testutil.MockTaskRepository
	states *testutil.MockFocusStateStore
	lock   *testutil.MockFocusLock
	ticks  *testutil.FakeTickSource
	logger *testutil.MockLogger
}

// newTestContainer creates an app.Container with mock dependencies.
func newTestContainer(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		repo:   testutil.NewMockTaskRepository(),
		states: &testutil.MockFocusStateStore{},
		lock:   &testutil.MockFocusLock{},
		ticks:  &testutil.FakeTickSource{},
		logger: &testutil.MockLogger{},
	}
	container := app.NewWithDeps(
		app.Config{DataDir: t.TempDir()},
		env.repo,
		&testutil.MockStoreInitializer{},
		&testutil.MockClock{NowTime: testNow},
		env.logger,
	)
	container.ConfigLoader = testutil.NewMockConfigLoader()
	container.ConfigManager = testutil.NewMockConfigManager()
	container.FocusStates = env.states
	container.FocusLock = env.lock
	container.Ticks = env.ticks
	env.c = container
	return env
}

// addTask stores an open task.
func (env *testEnv) addTask(id int, title string, hours float64) *domain.Task {
	task := &domain.Task{
		ID:            id,
		Title:         title,
		Category:      domain.DefaultCategory,
		DurationHours: hours,
		Created:       testNow,
	}
	env.repo.Tasks[id] = task
	if env.repo.NextIDN <= id {
		env.repo.NextIDN = id + 1
	}
	return task
}

// focusOn stores an active, paused plan for task.
func (env *testEnv) focusOn(t *testing.T, task *domain.Task) {
	t.Helper()
	out, err := domain.ApplyFocus(domain.FocusState{}, domain.StartFocus{Task: task.Ref(), PlanID: "plan-1"}, testNow)
	require.NoError(t, err)
	state := out.State
	state.Running = false
	env.states.State = state
}

// =============================================================================
// New Command Tests
// =============================================================================

func TestNewNewCommand_CreateTask(t *testing.T) {
	env := newTestContainer(t)

	cmd := newNewCommand(env.c)
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"--title", "Write report", "--hours", "2", "--category", "Work", "--tag", "q3"})

	err := cmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Created task #1")
	assert.Contains(t, buf.String(), "2h task = 5 × 25min sessions (2h 30m total)")

	task := env.repo.Tasks[1]
	require.NotNil(t, task)
	assert.Equal(t, "Write report", task.Title)
	assert.Equal(t, "Work", task.Category)
	assert.Equal(t, []string{"q3"}, task.Tags)
	assert.InDelta(t, 2.0, task.DurationHours, 1e-9)
}

func TestNewNewCommand_Defaults(t *testing.T) {
	env := newTestContainer(t)

	cmd := newNewCommand(env.c)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"--title", "Inbox"})

	require.NoError(t, cmd.Execute())

	task := env.repo.Tasks[1]
	assert.Equal(t, domain.DefaultCategory, task.Category)
	assert.InDelta(t, domain.DefaultDurationHours, task.DurationHours, 1e-9)
}

func TestNewNewCommand_RequiresTitle(t *testing.T) {
	env := newTestContainer(t)

	cmd := newNewCommand(env.c)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--hours", "1"})

	err := cmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "title")
	assert.Empty(t, env.repo.Tasks)
}

func TestNewNewCommand_RejectsInvalidHours(t *testing.T) {
	env := newTestContainer(t)

	cmd := newNewCommand(env.c)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--title", "Broken", "--hours", "0"})

	err := cmd.Execute()

	assert.ErrorIs(t, err, domain.ErrInvalidDuration)
}

// =============================================================================
// Import Command Tests
// =============================================================================

const importFile = `---
title: Write report
category: Work
tags: [writing]
duration: 2.5
---
First line
Second line

---
title: Call bank
---
`

func writeImportFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tasks.md")
	require.NoError(t, os.WriteFile(path, []byte(importFile), 0o600))
	return path
}

func TestNewImportCommand_CreatesTasks(t *testing.T) {
	env := newTestContainer(t)

	cmd := newImportCommand(env.c)
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{writeImportFile(t)})

	require.NoError(t, cmd.Execute())

	out := buf.String()
	assert.Contains(t, out, "Created task #1:")
	assert.Contains(t, out, "Created task #2:")
	assert.Contains(t, out, "Description: First line ...")
	assert.Contains(t, out, "Created 2 task(s)")
	assert.Len(t, env.repo.Tasks, 2)
	assert.InDelta(t, 2.5, env.repo.Tasks[1].DurationHours, 1e-9)
}

func TestNewImportCommand_DryRun(t *testing.T) {
	env := newTestContainer(t)

	cmd := newImportCommand(env.c)
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{writeImportFile(t), "--dry-run"})

	require.NoError(t, cmd.Execute())

	assert.Contains(t, buf.String(), "Dry run - tasks that would be created:")
	assert.Contains(t, buf.String(), "Task 2:")
	assert.Empty(t, env.repo.Tasks)
}

func TestNewImportCommand_MissingFile(t *testing.T) {
	env := newTestContainer(t)

	cmd := newImportCommand(env.c)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{filepath.Join(t.TempDir(), "missing.md")})

	err := cmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "read file")
}

// =============================================================================
// List Command Tests
// =============================================================================

func TestNewListCommand_MarksFocusTask(t *testing.T) {
	env := newTestContainer(t)
	report := env.addTask(1, "Write report", 2)
	env.addTask(2, "Call bank", 0.25)
	done := env.addTask(3, "Old task", 1)
	done.MarkCompleted(testNow)
	env.focusOn(t, report)

	cmd := newListCommand(env.c)
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.Execute())

	out := buf.String()
	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "SESSIONS")
	assert.Regexp(t, `1\*\s+open\s+General\s+2h\s+5\s+-\s+Write report`, out)
	assert.Regexp(t, `2\s+open\s+General\s+0.25h\s+1\s+-\s+Call bank`, out)
	assert.NotContains(t, out, "Old task")
}

func TestNewListCommand_All(t *testing.T) {
	env := newTestContainer(t)
	env.addTask(1, "Open task", 1)
	env.addTask(2, "Done task", 1).MarkCompleted(testNow)

	cmd := newListCommand(env.c)
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"-a"})

	require.NoError(t, cmd.Execute())

	assert.Regexp(t, `2\s+done`, buf.String())
}

func TestNewListCommand_Empty(t *testing.T) {
	env := newTestContainer(t)

	cmd := newListCommand(env.c)
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "No tasks.\n", buf.String())
}

func TestTruncateWidth(t *testing.T) {
	assert.Equal(t, "short", truncateWidth("short", 10))
	assert.Equal(t, "abcdefg...", truncateWidth("abcdefghijklmnop", 10))
	assert.Equal(t, "日本...", truncateWidth("日本語のタイトル", 8))
}

// =============================================================================
// Show Command Tests
// =============================================================================

func TestNewShowCommand_PrintsPlan(t *testing.T) {
	env := newTestContainer(t)
	task := env.addTask(1, "Write report", 5)
	task.Description = "Quarterly numbers"
	task.Tags = []string{"work"}

	cmd := newShowCommand(env.c)
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"#1"})

	require.NoError(t, cmd.Execute())

	out := buf.String()
	assert.Contains(t, out, "# Task 1: Write report")
	assert.Contains(t, out, "Quarterly numbers")
	assert.Contains(t, out, "Status: open")
	assert.Contains(t, out, "Tags: [work]")
	assert.Contains(t, out, "Estimate: 5h")
	assert.Contains(t, out, "Plan: 5h task = 12 × 25min sessions")
	assert.Contains(t, out, "  1. 25m work + 5m break")
	assert.Contains(t, out, "  4. 25m work + 15m long break")
	assert.Contains(t, out, "  12. 25m work\n")
	assert.Contains(t, out, "Warning: This task is 5h long.")
	assert.NotContains(t, out, "Focus: active")
}

func TestNewShowCommand_InFocus(t *testing.T) {
	env := newTestContainer(t)
	task := env.addTask(1, "Write report", 1)
	env.focusOn(t, task)

	cmd := newShowCommand(env.c)
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"1"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "Focus: active")
}

func TestNewShowCommand_YAML(t *testing.T) {
	env := newTestContainer(t)
	env.addTask(1, "Write report", 1.5)

	cmd := newShowCommand(env.c)
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"1", "--yaml"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "title: Write report")
	assert.Contains(t, buf.String(), "duration_hours: 1.5")
	assert.Contains(t, buf.String(), "id: 1")
}

func TestNewShowCommand_Errors(t *testing.T) {
	tests := []struct {
		name string
		arg  string
		want error
	}{
		{"not found", "9", domain.ErrTaskNotFound},
		{"invalid id", "abc", nil},
		{"zero id", "0", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestContainer(t)
			cmd := newShowCommand(env.c)
			cmd.SetOut(&bytes.Buffer{})
			cmd.SetErr(&bytes.Buffer{})
			cmd.SetArgs([]string{tt.arg})

			err := cmd.Execute()

			require.Error(t, err)
			if tt.want != nil {
				assert.ErrorIs(t, err, tt.want)
			} else {
				assert.Contains(t, err.Error(), "invalid task ID")
			}
		})
	}
}

func TestParseTaskID(t *testing.T) {
	id, err := parseTaskID("#12")
	require.NoError(t, err)
	assert.Equal(t, 12, id)

	_, err = parseTaskID("-3")
	assert.Error(t, err)

	_, err = parseTaskID("x")
	assert.Error(t, err)
}

// =============================================================================
// Edit Command Tests
// =============================================================================

func TestNewEditCommand_ChangesOnlyGivenFields(t *testing.T) {
	env := newTestContainer(t)
	task := env.addTask(1, "Write report", 1)
	task.Tags = []string{"someday"}

	cmd := newEditCommand(env.c)
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"1", "--hours", "3", "--add-tag", "urgent", "--remove-tag", "someday"})

	require.NoError(t, cmd.Execute())

	assert.Contains(t, buf.String(), "Updated task #1: Write report")
	got := env.repo.Tasks[1]
	assert.Equal(t, "Write report", got.Title)
	assert.InDelta(t, 3.0, got.DurationHours, 1e-9)
	assert.Equal(t, []string{"urgent"}, got.Tags)
}

func TestNewEditCommand_NoFields(t *testing.T) {
	env := newTestContainer(t)
	env.addTask(1, "Write report", 1)

	cmd := newEditCommand(env.c)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"1"})

	assert.ErrorIs(t, cmd.Execute(), domain.ErrNoFieldsToUpdate)
}

// =============================================================================
// Delete / Done Command Tests
// =============================================================================

func TestNewDeleteCommand(t *testing.T) {
	env := newTestContainer(t)
	env.addTask(1, "Write report", 1)

	cmd := newDeleteCommand(env.c)
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"1"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "Deleted task #1: Write report")
	assert.Empty(t, env.repo.Tasks)
}

func TestNewDeleteCommand_RefusesTaskInFocus(t *testing.T) {
	env := newTestContainer(t)
	task := env.addTask(1, "Write report", 1)
	env.focusOn(t, task)

	cmd := newDeleteCommand(env.c)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"1"})

	assert.ErrorIs(t, cmd.Execute(), domain.ErrFocusActive)
	assert.Contains(t, env.repo.Tasks, 1)
}

func TestNewDoneCommand(t *testing.T) {
	env := newTestContainer(t)
	env.addTask(1, "Write report", 1)

	cmd := newDoneCommand(env.c)
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"1"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "Completed task #1: Write report")
	assert.True(t, env.repo.Tasks[1].Completed)
	assert.Equal(t, testNow, env.repo.Tasks[1].CompletedAt)
}
