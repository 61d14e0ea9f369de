package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/g2g/internal/domain"
	"github.com/runoshun/g2g/internal/testutil"
)

func TestCompleteTask_Execute(t *testing.T) {
	// Setup
	repo := testutil.NewMockTaskRepository()
	repo.Tasks[1] = &domain.Task{ID: 1, Title: "Report"}
	uc := NewCompleteTask(repo, &testutil.MockClock{NowTime: testNow}, &testutil.MockLogger{})

	// Execute
	out, err := uc.Execute(context.Background(), CompleteTaskInput{TaskID: 1})

	// Assert
	require.NoError(t, err)
	assert.True(t, out.Task.Completed)
	assert.Equal(t, testNow, out.Task.CompletedAt)

	// A second completion is rejected.
	_, err = uc.Execute(context.Background(), CompleteTaskInput{TaskID: 1})
	assert.ErrorIs(t, err, domain.ErrTaskCompleted)
}

func TestCompleteTask_Execute_NotFound(t *testing.T) {
	uc := NewCompleteTask(testutil.NewMockTaskRepository(), &testutil.MockClock{NowTime: testNow}, &testutil.MockLogger{})

	_, err := uc.Execute(context.Background(), CompleteTaskInput{TaskID: 1})

	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
}
