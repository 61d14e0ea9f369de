package domain

import "errors"

// Domain errors.
var (
	ErrTaskNotFound       = errors.New("task not found")
	ErrTaskCompleted      = errors.New("task already completed")
	ErrEmptyTitle         = errors.New("title cannot be empty")
	ErrInvalidDuration    = errors.New("duration must be a positive number of hours, at most 1000")
	ErrCannotSchedule     = errors.New("cannot schedule focus sessions for this task")
	ErrNoActiveFocus      = errors.New("no active focus plan")
	ErrFocusActive        = errors.New("a focus plan is already active (use --force to replace it)")
	ErrFocusBusy          = errors.New("focus plan is being driven by another g2g process")
	ErrCorruptState       = errors.New("corrupt focus state")
	ErrKeyNotFound        = errors.New("key not found")
	ErrInvalidKey         = errors.New("invalid key")
	ErrNotInitialized     = errors.New("g2g not initialized (run 'g2g init' first)")
	ErrAlreadyInitialized = errors.New("g2g already initialized")
	ErrNoFieldsToUpdate   = errors.New("no fields to update")
	ErrConfigExists       = errors.New("config file already exists")
	ErrUnknownStore       = errors.New("unknown task store")
	ErrEmptyFile          = errors.New("file is empty")
	ErrNoTasksInFile      = errors.New("no tasks found in file")
	ErrLoopStopped        = errors.New("focus loop is not running")
	ErrSchedulerClosed    = errors.New("focus scheduler is closed")
)
