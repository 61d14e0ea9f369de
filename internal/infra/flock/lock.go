// Package flock provides the cross-process focus driver lock.
package flock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"syscall"

	"github.com/runoshun/g2g/internal/domain"
)

// Lock is an advisory exclusive lock on a file.
type Lock struct {
	path string
}

// Ensure Lock implements domain.FocusLock.
var _ domain.FocusLock = (*Lock)(nil)

// New creates a Lock on path. The file is created on first use.
func New(path string) *Lock {
	return &Lock{path: path}
}

// TryLock takes the lock without blocking. It fails with domain.ErrFocusBusy
// while another open file description holds it.
func (l *Lock) TryLock() (func(), error) {
	if err := os.MkdirAll(filepath.Dir(l.path), 0o750); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}

	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open lock file: %w", err)
	}

	if err := syscall.Flock(int(f.Fd()), syscall.LOCK_EX|syscall.LOCK_NB); err != nil {
		_ = f.Close()
		if errors.Is(err, syscall.EWOULDBLOCK) {
			return nil, domain.ErrFocusBusy
		}
		return nil, fmt.Errorf("acquire lock: %w", err)
	}

	release := func() {
		_ = syscall.Flock(int(f.Fd()), syscall.LOCK_UN)
		_ = f.Close()
	}
	return release, nil
}
