// Package app provides the dependency injection container for the application.
package app

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/runoshun/g2g/internal/domain"
	"github.com/runoshun/g2g/internal/focus"
	"github.com/runoshun/g2g/internal/infra/config"
	"github.com/runoshun/g2g/internal/infra/executor"
	"github.com/runoshun/g2g/internal/infra/flock"
	"github.com/runoshun/g2g/internal/infra/jsonstore"
	"github.com/runoshun/g2g/internal/infra/kvstore"
	"github.com/runoshun/g2g/internal/infra/logging"
	"github.com/runoshun/g2g/internal/infra/notify"
	"github.com/runoshun/g2g/internal/infra/sqlitestore"
	"github.com/runoshun/g2g/internal/infra/ticker"
	"github.com/runoshun/g2g/internal/infra/watch"
	"github.com/runoshun/g2g/internal/usecase"
)

// Config holds the application paths.
type Config struct {
	DataDir   string // Root data directory
	StorePath string // Path to tasks.json or tasks.db
	StateDir  string // Directory of key-value slots
	LockPath  string // Path to the focus driver lock
}

// newConfig derives the paths below dataDir for the given store backend.
func newConfig(dataDir, store string) Config {
	return Config{
		DataDir:   dataDir,
		StorePath: domain.TasksStorePath(dataDir, store),
		StateDir:  domain.StateDir(dataDir),
		LockPath:  domain.FocusLockPath(dataDir),
	}
}

// FocusStateStore is the persisted focus slot, readable without ownership.
type FocusStateStore interface {
	domain.FocusStateStore
	usecase.FocusStateReader
}

// Container provides dependency injection for the application.
// It holds all port implementations and provides factory methods for use cases.
type Container struct {
	// Ports (interfaces bound to implementations)
	Tasks            domain.TaskRepository
	StoreInitializer domain.StoreInitializer
	Clock            domain.Clock
	ConfigLoader     domain.ConfigLoader
	ConfigManager    domain.ConfigManager
	Logger           domain.Logger
	FocusStates      FocusStateStore
	Notifier         domain.Notifier
	Ticks            domain.TickSource
	FocusLock        domain.FocusLock
	StateWatcher     usecase.FileWatcher
	Logs             usecase.LogTailer

	// Pointer fields
	SLog *slog.Logger

	closers      []io.Closer
	executor     domain.CommandExecutor
	notifyConfig *domain.NotifyConfig

	// Configuration
	Config Config
}

// New creates a new Container rooted at the resolved data directory.
func New() (*Container, error) {
	dataDir, err := config.ResolveDataDir()
	if err != nil {
		return nil, fmt.Errorf("resolve data directory: %w", err)
	}
	return NewAt(dataDir)
}

// NewAt creates a new Container rooted at dataDir.
func NewAt(dataDir string) (*Container, error) {
	slogger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))

	configLoader := config.NewLoader(dataDir)
	appConfig, err := configLoader.Load()
	if err != nil {
		slogger.Warn("using default configuration", "error", err)
		appConfig = domain.NewDefaultConfig()
	}

	cfg := newConfig(dataDir, appConfig.Tasks.Store)
	clock := domain.RealClock{}

	var (
		taskRepo  domain.TaskRepository
		storeInit domain.StoreInitializer
		closers   []io.Closer
	)
	switch appConfig.Tasks.Store {
	case "", domain.StoreJSON:
		jsonStore := jsonstore.New(cfg.StorePath)
		taskRepo, storeInit = jsonStore, jsonStore
	case domain.StoreSQLite:
		sqliteStore := sqlitestore.New(cfg.StorePath)
		taskRepo, storeInit = sqliteStore, sqliteStore
		closers = append(closers, sqliteStore)
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownStore, appConfig.Tasks.Store)
	}

	logger := logging.New(dataDir, logging.ParseLevel(appConfig.Log.Level), clock)
	closers = append(closers, logger)

	slots := kvstore.New(cfg.StateDir)
	states := focus.NewPersistence(slots, logger)
	exec := executor.NewClient()

	return &Container{
		Tasks:            taskRepo,
		StoreInitializer: storeInit,
		Clock:            clock,
		ConfigLoader:     configLoader,
		ConfigManager:    config.NewManager(dataDir),
		Logger:           logger,
		FocusStates:      states,
		Notifier:         newNotifier(appConfig.Notify, exec, logger, slogger, os.Stderr),
		Ticks:            ticker.Source{},
		FocusLock:        flock.New(cfg.LockPath),
		StateWatcher:     watch.New(slots.Path(domain.FocusStateKey), logger),
		Logs:             logger,
		SLog:             slogger,
		closers:          closers,
		executor:         exec,
		notifyConfig:     &appConfig.Notify,
		Config:           cfg,
	}, nil
}

// newNotifier builds the notifier chain from the [notify] section.
// An unusable command template is reported and skipped.
func newNotifier(cfg domain.NotifyConfig, exec domain.CommandExecutor, logger domain.Logger, slogger *slog.Logger, bell io.Writer) domain.Notifier {
	if !cfg.Enabled {
		return notify.Nop{}
	}

	var children []domain.Notifier
	if cfg.Command != "" {
		cmd, err := notify.NewCommand(cfg.Command, exec, logger)
		if err != nil {
			slogger.Warn("notify command disabled", "error", err)
		} else {
			children = append(children, cmd)
		}
	}
	if cfg.Bell {
		children = append(children, notify.NewBell(bell))
	}
	if len(children) == 0 {
		return notify.Nop{}
	}
	return notify.NewMulti(children...)
}

// SetBellOutput rebuilds the notifier so the bell writes to w.
// Schedulers created afterwards use the new notifier.
func (c *Container) SetBellOutput(w io.Writer) {
	if c.notifyConfig == nil {
		return
	}
	c.Notifier = newNotifier(*c.notifyConfig, c.executor, c.Logger, c.SLog, w)
}

// NewWithDeps creates a new Container with custom dependencies for testing.
// Focus ports default to inert implementations and can be replaced afterwards.
func NewWithDeps(cfg Config, tasks domain.TaskRepository, storeInit domain.StoreInitializer, clock domain.Clock, logger domain.Logger) *Container {
	return &Container{
		Tasks:            tasks,
		StoreInitializer: storeInit,
		Clock:            clock,
		Logger:           logger,
		Notifier:         notify.Nop{},
		Ticks:            ticker.Source{},
		SLog:             slog.New(slog.NewTextHandler(io.Discard, nil)),
		Config:           cfg,
	}
}

// Close releases the task store and log files.
func (c *Container) Close() error {
	var errs []error
	for _, closer := range c.closers {
		if err := closer.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NewFocusScheduler creates a scheduler rehydrated from the focus slot.
func (c *Container) NewFocusScheduler() *focus.Scheduler {
	return focus.New(c.FocusStates, c.Notifier, c.Logger, c.Clock)
}

// UseCase factory methods

// InitStoreUseCase returns a new InitStore use case.
func (c *Container) InitStoreUseCase() *usecase.InitStore {
	return usecase.NewInitStore(c.StoreInitializer)
}

// NewTaskUseCase returns a new NewTask use case.
func (c *Container) NewTaskUseCase() *usecase.NewTask {
	return usecase.NewNewTask(c.Tasks, c.ConfigLoader, c.Clock, c.Logger)
}

// ListTasksUseCase returns a new ListTasks use case.
func (c *Container) ListTasksUseCase() *usecase.ListTasks {
	return usecase.NewListTasks(c.Tasks, c.FocusStates)
}

// ShowTaskUseCase returns a new ShowTask use case.
func (c *Container) ShowTaskUseCase() *usecase.ShowTask {
	return usecase.NewShowTask(c.Tasks, c.ConfigLoader, c.FocusStates)
}

// EditTaskUseCase returns a new EditTask use case.
func (c *Container) EditTaskUseCase() *usecase.EditTask {
	return usecase.NewEditTask(c.Tasks, c.Logger)
}

// DeleteTaskUseCase returns a new DeleteTask use case.
func (c *Container) DeleteTaskUseCase() *usecase.DeleteTask {
	return usecase.NewDeleteTask(c.Tasks, c.FocusStates, c.Logger)
}

// CompleteTaskUseCase returns a new CompleteTask use case.
func (c *Container) CompleteTaskUseCase() *usecase.CompleteTask {
	return usecase.NewCompleteTask(c.Tasks, c.Clock, c.Logger)
}

// CreateTasksFromFileUseCase returns a new CreateTasksFromFile use case.
func (c *Container) CreateTasksFromFileUseCase() *usecase.CreateTasksFromFile {
	return usecase.NewCreateTasksFromFile(c.Tasks, c.ConfigLoader, c.Clock, c.Logger)
}

// PlanFocusUseCase returns a new PlanFocus use case.
func (c *Container) PlanFocusUseCase() *usecase.PlanFocus {
	return usecase.NewPlanFocus(c.Tasks, c.ConfigLoader)
}

// OpenFocusUseCase returns a new OpenFocus use case.
func (c *Container) OpenFocusUseCase() *usecase.OpenFocus {
	return usecase.NewOpenFocus(c.NewFocusScheduler, c.Ticks, c.FocusLock, c.Logger)
}

// StartFocusUseCase returns a new StartFocus use case.
func (c *Container) StartFocusUseCase() *usecase.StartFocus {
	return usecase.NewStartFocus(c.Tasks, c.ConfigLoader, c.Logger)
}

// FocusControlUseCase returns a new FocusControl use case.
func (c *Container) FocusControlUseCase() *usecase.FocusControl {
	return usecase.NewFocusControl(c.Tasks, c.Clock, c.Logger)
}

// RunFocusUseCase returns a new RunFocus use case.
func (c *Container) RunFocusUseCase() *usecase.RunFocus {
	return usecase.NewRunFocus(c.Logger)
}

// ShowFocusUseCase returns a new ShowFocus use case.
func (c *Container) ShowFocusUseCase() *usecase.ShowFocus {
	return usecase.NewShowFocus(c.FocusStates, c.FocusLock)
}

// WatchFocusUseCase returns a new WatchFocus use case.
func (c *Container) WatchFocusUseCase() *usecase.WatchFocus {
	return usecase.NewWatchFocus(c.ShowFocusUseCase(), c.StateWatcher)
}

// ShowConfigUseCase returns a new ShowConfig use case.
func (c *Container) ShowConfigUseCase() *usecase.ShowConfig {
	return usecase.NewShowConfig(c.ConfigManager, c.ConfigLoader)
}

// InitConfigUseCase returns a new InitConfig use case.
func (c *Container) InitConfigUseCase() *usecase.InitConfig {
	return usecase.NewInitConfig(c.ConfigManager)
}

// ShowLogsUseCase returns a new ShowLogs use case.
func (c *Container) ShowLogsUseCase() *usecase.ShowLogs {
	return usecase.NewShowLogs(c.Logs)
}
