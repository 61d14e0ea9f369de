// Package watch reports changes to a single file.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/runoshun/g2g/internal/domain"
)

const (
	logCategory     = "watch"
	defaultDebounce = 50 * time.Millisecond
)

// Watcher watches the parent directory of a file, since fsnotify cannot
// watch a file that does not exist yet and atomic writes replace the inode.
// Fields are ordered to minimize memory padding.
type Watcher struct {
	logger     domain.Logger
	targetPath string
	parentPath string
	debounce   time.Duration
}

// New creates a Watcher for targetPath.
func New(targetPath string, logger domain.Logger) *Watcher {
	target := filepath.Clean(targetPath)
	return &Watcher{
		logger:     logger,
		targetPath: target,
		parentPath: filepath.Dir(target),
		debounce:   defaultDebounce,
	}
}

// Run calls onChange after the target is created, written, renamed or removed.
// Bursts of events within the debounce window produce one call. Run blocks
// until ctx is done.
func (w *Watcher) Run(ctx context.Context, onChange func()) error {
	if err := os.MkdirAll(w.parentPath, 0o750); err != nil {
		return fmt.Errorf("create watch directory: %w", err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer func() { _ = fsw.Close() }()

	if err := fsw.Add(w.parentPath); err != nil {
		return fmt.Errorf("watch %s: %w", w.parentPath, err)
	}

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.targetPath {
				continue
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			onChange()

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn(0, logCategory, fmt.Sprintf("watcher error: %v", err))
		}
	}
}
