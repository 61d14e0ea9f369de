package testutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/g2g/internal/domain"
)

// TaskStore is a repository backend under test.
type TaskStore interface {
	domain.TaskRepository
	domain.StoreInitializer
}

// RunTaskRepositoryTests exercises behaviour every TaskRepository backend shares.
// newStore must return an initialized, empty store.
func RunTaskRepositoryTests(t *testing.T, newStore func(t *testing.T) TaskStore) {
	t.Helper()

	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	t.Run("NextID is sequential", func(t *testing.T) {
		store := newStore(t)
		for want := 1; want <= 3; want++ {
			id, err := store.NextID()
			require.NoError(t, err)
			assert.Equal(t, want, id)
		}
	})

	t.Run("Save and Get", func(t *testing.T) {
		store := newStore(t)
		task := &domain.Task{
			ID:            1,
			Title:         "Write report",
			Description:   "Quarterly numbers",
			Category:      "Work",
			Tags:          []string{"writing", "q3"},
			DurationHours: 2.5,
			Created:       created,
		}
		require.NoError(t, store.Save(task))

		got, err := store.Get(1)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, 1, got.ID)
		assert.Equal(t, "Write report", got.Title)
		assert.Equal(t, "Quarterly numbers", got.Description)
		assert.Equal(t, "Work", got.Category)
		assert.Equal(t, []string{"writing", "q3"}, got.Tags)
		assert.InDelta(t, 2.5, got.DurationHours, 1e-9)
		assert.True(t, created.Equal(got.Created))
		assert.False(t, got.Completed)
	})

	t.Run("Get missing returns nil", func(t *testing.T) {
		store := newStore(t)
		got, err := store.Get(42)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("Save updates", func(t *testing.T) {
		store := newStore(t)
		task := &domain.Task{ID: 1, Title: "Draft", DurationHours: 1, Created: created}
		require.NoError(t, store.Save(task))

		done := created.Add(time.Hour)
		task.Title = "Final"
		task.MarkCompleted(done)
		require.NoError(t, store.Save(task))

		got, err := store.Get(1)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "Final", got.Title)
		assert.True(t, got.Completed)
		assert.True(t, done.Equal(got.CompletedAt))
	})

	t.Run("List filters and orders by ID", func(t *testing.T) {
		store := newStore(t)
		tasks := []*domain.Task{
			{ID: 3, Title: "c", Category: "Home", DurationHours: 1, Created: created},
			{ID: 1, Title: "a", Category: "Work", Tags: []string{"deep"}, DurationHours: 1, Created: created},
			{ID: 2, Title: "b", Category: "Work", DurationHours: 1, Created: created, Completed: true, CompletedAt: created},
		}
		for _, task := range tasks {
			require.NoError(t, store.Save(task))
		}

		open, err := store.List(domain.TaskFilter{})
		require.NoError(t, err)
		assert.Equal(t, []int{1, 3}, ids(open))

		all, err := store.List(domain.TaskFilter{IncludeCompleted: true})
		require.NoError(t, err)
		assert.Equal(t, []int{1, 2, 3}, ids(all))

		work, err := store.List(domain.TaskFilter{Category: "Work", IncludeCompleted: true})
		require.NoError(t, err)
		assert.Equal(t, []int{1, 2}, ids(work))

		deep, err := store.List(domain.TaskFilter{Tags: []string{"deep"}})
		require.NoError(t, err)
		assert.Equal(t, []int{1}, ids(deep))
	})

	t.Run("Delete", func(t *testing.T) {
		store := newStore(t)
		require.NoError(t, store.Save(&domain.Task{ID: 1, Title: "a", DurationHours: 1, Created: created}))
		require.NoError(t, store.Delete(1))

		got, err := store.Get(1)
		require.NoError(t, err)
		assert.Nil(t, got)

		// Deleting a missing task is not an error.
		require.NoError(t, store.Delete(99))
	})

	t.Run("Initialize is idempotent", func(t *testing.T) {
		store := newStore(t)
		require.NoError(t, store.Save(&domain.Task{ID: 1, Title: "keep", DurationHours: 1, Created: created}))
		require.NoError(t, store.Initialize())
		assert.True(t, store.IsInitialized())

		got, err := store.Get(1)
		require.NoError(t, err)
		assert.NotNil(t, got)
	})
}

func ids(tasks []*domain.Task) []int {
	out := make([]int, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.ID)
	}
	return out
}
