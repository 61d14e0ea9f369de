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

func TestDeleteTask_Execute_Success(t *testing.T) {
	repo := testutil.NewMockTaskRepository()
	repo.Tasks[1] = &domain.Task{ID: 1, Title: "Old"}
	uc := NewDeleteTask(repo, stubStates{}, &testutil.MockLogger{})

	out, err := uc.Execute(context.Background(), DeleteTaskInput{TaskID: 1})

	require.NoError(t, err)
	assert.Equal(t, "Old", out.Task.Title)
	assert.NotContains(t, repo.Tasks, 1)
}

func TestDeleteTask_Execute_InFocus(t *testing.T) {
	repo := testutil.NewMockTaskRepository()
	repo.Tasks[1] = &domain.Task{ID: 1, Title: "Busy", DurationHours: 1}
	state := domain.FocusState{ActiveTask: &domain.TaskRef{ID: 1, Title: "Busy", DurationHours: 1}}
	uc := NewDeleteTask(repo, stubStates{state: state}, &testutil.MockLogger{})

	_, err := uc.Execute(context.Background(), DeleteTaskInput{TaskID: 1})

	assert.ErrorIs(t, err, domain.ErrFocusActive)
	assert.Contains(t, repo.Tasks, 1)
}

func TestDeleteTask_Execute_NotFound(t *testing.T) {
	uc := NewDeleteTask(testutil.NewMockTaskRepository(), nil, &testutil.MockLogger{})

	_, err := uc.Execute(context.Background(), DeleteTaskInput{TaskID: 1})

	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
}

func TestDeleteTask_Execute_DeleteError(t *testing.T) {
	repo := testutil.NewMockTaskRepository()
	repo.Tasks[1] = &domain.Task{ID: 1, Title: "Old"}
	repo.DeleteErr = errors.New("locked")
	uc := NewDeleteTask(repo, nil, &testutil.MockLogger{})

	_, err := uc.Execute(context.Background(), DeleteTaskInput{TaskID: 1})

	assert.ErrorContains(t, err, "delete task: locked")
}
