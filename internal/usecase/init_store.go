// Package usecase contains the application use cases.
package usecase

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/runoshun/g2g/internal/domain"
)

// InitStoreInput contains the input parameters for InitStore.
type InitStoreInput struct {
	DataDir string // Path to the g2g data directory
}

// InitStoreOutput contains the output from InitStore.
type InitStoreOutput struct {
	DataDir            string // Path to the data directory
	AlreadyInitialized bool   // True if the task store already existed
}

// InitStore prepares the data directory and the task store.
type InitStore struct {
	storeInit domain.StoreInitializer
}

// NewInitStore creates a new InitStore use case.
func NewInitStore(storeInit domain.StoreInitializer) *InitStore {
	return &InitStore{storeInit: storeInit}
}

// Execute creates the data, log and state directories and an empty task store.
// Running it again is harmless.
func (uc *InitStore) Execute(_ context.Context, in InitStoreInput) (*InitStoreOutput, error) {
	alreadyInitialized := uc.storeInit.IsInitialized()

	for _, dir := range []string{
		in.DataDir,
		filepath.Join(in.DataDir, "logs"),
		domain.StateDir(in.DataDir),
	} {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("create %s: %w", dir, err)
		}
	}

	if err := uc.storeInit.Initialize(); err != nil {
		return nil, fmt.Errorf("initialize task store: %w", err)
	}

	return &InitStoreOutput{
		DataDir:            in.DataDir,
		AlreadyInitialized: alreadyInitialized,
	}, nil
}
