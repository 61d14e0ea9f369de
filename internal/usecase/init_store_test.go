package usecase

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/g2g/internal/domain"
	"github.com/runoshun/g2g/internal/testutil"
)

func TestInitStore_Execute_CreatesDirectories(t *testing.T) {
	// Setup
	dataDir := filepath.Join(t.TempDir(), "g2g")
	storeInit := &testutil.MockStoreInitializer{}
	uc := NewInitStore(storeInit)

	// Execute
	out, err := uc.Execute(context.Background(), InitStoreInput{DataDir: dataDir})

	// Assert
	require.NoError(t, err)
	assert.False(t, out.AlreadyInitialized)
	assert.True(t, storeInit.Initialized)
	assert.DirExists(t, filepath.Join(dataDir, "logs"))
	assert.DirExists(t, domain.StateDir(dataDir))
}

func TestInitStore_Execute_AlreadyInitialized(t *testing.T) {
	storeInit := &testutil.MockStoreInitializer{Initialized: true}
	uc := NewInitStore(storeInit)

	out, err := uc.Execute(context.Background(), InitStoreInput{DataDir: t.TempDir()})

	require.NoError(t, err)
	assert.True(t, out.AlreadyInitialized)
}

func TestInitStore_Execute_InitializeError(t *testing.T) {
	storeInit := &testutil.MockStoreInitializer{InitErr: errors.New("read-only")}
	uc := NewInitStore(storeInit)

	_, err := uc.Execute(context.Background(), InitStoreInput{DataDir: t.TempDir()})

	assert.ErrorContains(t, err, "initialize task store: read-only")
}
