package domain

import (
	"context"
	"time"
)

// StoreInitializer initializes the data store.
type StoreInitializer interface {
	// Initialize creates the store if it doesn't exist.
	Initialize() error

	// IsInitialized reports whether the store exists.
	IsInitialized() bool
}

// TaskRepository manages task persistence.
type TaskRepository interface {
	// Get retrieves a task by ID. Returns nil if not found.
	Get(id int) (*Task, error)

	// List retrieves tasks matching the filter, ordered by ID.
	List(filter TaskFilter) ([]*Task, error)

	// Save creates or updates a task.
	Save(task *Task) error

	// Delete removes a task by ID.
	Delete(id int) error

	// NextID returns the next available task ID.
	NextID() (int, error)
}

// TaskFilter specifies criteria for listing tasks.
// Fields are ordered to minimize memory padding.
type TaskFilter struct {
	Category         string   // Empty = any category
	Tags             []string // Filter by tags (AND condition)
	IncludeCompleted bool     // Include completed tasks
}

// Match reports whether task satisfies the filter.
func (f TaskFilter) Match(task *Task) bool {
	if !f.IncludeCompleted && task.Completed {
		return false
	}
	if f.Category != "" && task.Category != f.Category {
		return false
	}
	for _, tag := range f.Tags {
		if !task.HasTag(tag) {
			return false
		}
	}
	return true
}

// KeyValueStore is a durable slot store. Get returns ErrKeyNotFound for absent keys;
// Delete of an absent key is not an error.
type KeyValueStore interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Delete(key string) error
}

// FocusStateStore persists the focus scheduler state.
type FocusStateStore interface {
	// Save writes state, or clears the slot when no plan is active.
	Save(state FocusState) error

	// Load returns the persisted state, always paused. Missing or corrupt
	// records yield the Idle state.
	Load(now time.Time) FocusState
}

// Notifier delivers focus notifications. Delivery is best-effort.
type Notifier interface {
	// RequestPermission asks for permission to notify and reports whether it was granted.
	RequestPermission(ctx context.Context) bool

	// Notify shows a notification. Failures are swallowed by the implementation.
	Notify(ctx context.Context, notice Notice)
}

// TickSource creates repeating tickers. It is the only source of time for the focus loop.
type TickSource interface {
	NewTicker(d time.Duration) Ticker
}

// Ticker is a cancellable repeating handle.
type Ticker interface {
	// C delivers one value per period.
	C() <-chan time.Time

	// Stop disarms the ticker. No value is delivered on C after Stop returns.
	Stop()
}

// FocusLock guards a focus plan against concurrent drivers in other processes.
type FocusLock interface {
	// TryLock acquires the lock without blocking. It returns ErrFocusBusy if
	// another process holds it.
	TryLock() (release func(), err error)
}

// CommandExecutor runs external commands.
type CommandExecutor interface {
	// Execute runs the command and returns its combined output.
	Execute(ctx context.Context, cmd *ExecCommand) ([]byte, error)

	// LookPath reports the resolved path of a program.
	LookPath(program string) (string, error)
}

// Logger writes to the global and per-task log files.
type Logger interface {
	Info(taskID int, category, msg string)
	Debug(taskID int, category, msg string)
	Warn(taskID int, category, msg string)
	Error(taskID int, category, msg string)
}

// ConfigLoader loads configuration from files.
type ConfigLoader interface {
	// Load returns the merged configuration (default <- global <- local).
	Load() (*Config, error)

	// LoadGlobal returns only the global configuration.
	LoadGlobal() (*Config, error)
}

// ConfigManager inspects and creates configuration files.
type ConfigManager interface {
	GetLocalConfigInfo() ConfigInfo
	GetGlobalConfigInfo() ConfigInfo
	InitLocalConfig() error
	InitGlobalConfig() error
}

// ConfigInfo describes a configuration file.
type ConfigInfo struct {
	Path    string
	Content string
	Exists  bool
}

// Clock provides time operations for testability.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// RealClock implements Clock using the system clock.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time {
	return time.Now()
}
