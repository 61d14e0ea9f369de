package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/g2g/internal/domain"
	"github.com/runoshun/g2g/internal/testutil"
)

// stubStates is a FocusStateReader returning a fixed state.
type stubStates struct {
	state domain.FocusState
}

func (s stubStates) Peek() domain.FocusState { return s.state }

func seedTasks(repo *testutil.MockTaskRepository) {
	repo.Tasks[1] = &domain.Task{ID: 1, Title: "Report", Category: "Work", Tags: []string{"writing"}, DurationHours: 2}
	repo.Tasks[2] = &domain.Task{ID: 2, Title: "Laundry", Category: "Home", DurationHours: 0.5}
	repo.Tasks[3] = &domain.Task{ID: 3, Title: "Slides", Category: "Work", DurationHours: 1, Completed: true}
}

func TestListTasks_Execute(t *testing.T) {
	tests := []struct {
		name string
		in   ListTasksInput
		want []int
	}{
		{"open tasks", ListTasksInput{}, []int{1, 2}},
		{"all tasks", ListTasksInput{IncludeCompleted: true}, []int{1, 2, 3}},
		{"by category", ListTasksInput{Category: "Work", IncludeCompleted: true}, []int{1, 3}},
		{"by tag", ListTasksInput{Tags: []string{"WRITING"}}, []int{1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := testutil.NewMockTaskRepository()
			seedTasks(repo)
			uc := NewListTasks(repo, nil)

			out, err := uc.Execute(context.Background(), tt.in)

			require.NoError(t, err)
			got := make([]int, 0, len(out.Tasks))
			for _, task := range out.Tasks {
				got = append(got, task.ID)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestListTasks_Execute_MarksFocusTask(t *testing.T) {
	repo := testutil.NewMockTaskRepository()
	seedTasks(repo)
	state := domain.FocusState{ActiveTask: &domain.TaskRef{ID: 2, Title: "Laundry", DurationHours: 0.5}}
	uc := NewListTasks(repo, stubStates{state: state})

	out, err := uc.Execute(context.Background(), ListTasksInput{})

	require.NoError(t, err)
	assert.Equal(t, 2, out.FocusTaskID)
}

func TestListTasks_Execute_QuickTimerIsNotATask(t *testing.T) {
	state := domain.FocusState{ActiveTask: &domain.TaskRef{Title: "Quick", DurationHours: 0.25, Quick: true}}
	uc := NewListTasks(testutil.NewMockTaskRepository(), stubStates{state: state})

	out, err := uc.Execute(context.Background(), ListTasksInput{})

	require.NoError(t, err)
	assert.Zero(t, out.FocusTaskID)
}

func TestListTasks_Execute_Error(t *testing.T) {
	repo := testutil.NewMockTaskRepository()
	repo.ListErr = errors.New("locked")
	uc := NewListTasks(repo, nil)

	_, err := uc.Execute(context.Background(), ListTasksInput{})

	assert.ErrorContains(t, err, "list tasks: locked")
}
