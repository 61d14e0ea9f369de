package usecase

import (
	"context"

	"github.com/runoshun/g2g/internal/domain"
)

// FocusDriver applies focus commands to the live plan.
// *focus.Loop drives a ticking plan; *focus.Scheduler serves one-shot commands.
type FocusDriver interface {
	Do(ctx context.Context, cmd domain.FocusCommand) (domain.FocusOutcome, error)
	Snapshot() domain.FocusState
}

// FocusStateReader reads the persisted focus state without taking ownership of it.
type FocusStateReader interface {
	// Peek returns the state as last written, including the running flag.
	Peek() domain.FocusState
}

// LogTailer reads the end of a log file.
type LogTailer interface {
	// Tail returns the last n lines of the task log, or the global log for taskID 0.
	Tail(taskID, n int) ([]string, error)
}

// FileWatcher reports changes to a watched file until ctx is done.
type FileWatcher interface {
	Run(ctx context.Context, onChange func()) error
}
