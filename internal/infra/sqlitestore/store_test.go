package sqlitestore

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/g2g/internal/domain"
	"github.com/runoshun/g2g/internal/testutil"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store := New(filepath.Join(t.TempDir(), "tasks.db"))
	require.NoError(t, store.Initialize())
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStore_Contract(t *testing.T) {
	testutil.RunTaskRepositoryTests(t, func(t *testing.T) testutil.TaskStore {
		return newTestStore(t)
	})
}

func TestStore_NotInitialized(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "tasks.db"))
	assert.False(t, store.IsInitialized())

	_, err := store.Get(1)
	assert.True(t, errors.Is(err, domain.ErrNotInitialized))
	assert.False(t, store.IsInitialized(), "reads must not create the database")
}

func TestStore_NilTagsRoundTrip(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Save(&domain.Task{ID: 1, Title: "x", DurationHours: 1}))

	got, err := store.Get(1)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Empty(t, got.Tags)
	assert.True(t, got.Created.IsZero())
}

func TestStore_ReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.db")
	first := New(path)
	require.NoError(t, first.Initialize())
	id, err := first.NextID()
	require.NoError(t, err)
	require.NoError(t, first.Save(&domain.Task{ID: id, Title: "persisted", DurationHours: 1}))
	require.NoError(t, first.Close())

	second := New(path)
	t.Cleanup(func() { _ = second.Close() })
	require.NoError(t, second.Initialize())

	got, err := second.Get(id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "persisted", got.Title)

	next, err := second.NextID()
	require.NoError(t, err)
	assert.Equal(t, id+1, next)
}
