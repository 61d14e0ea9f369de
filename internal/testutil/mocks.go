// Package testutil provides shared test utilities and mock implementations.
package testutil

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/runoshun/g2g/internal/domain"
)

// MockClock is a test double for domain.Clock.
type MockClock struct {
	NowTime time.Time
}

// Now returns the configured time.
func (m *MockClock) Now() time.Time {
	return m.NowTime
}

// MockTaskRepository is a test double for domain.TaskRepository.
// Fields are ordered to minimize memory padding.
type MockTaskRepository struct {
	Tasks     map[int]*domain.Task
	SaveErr   error
	GetErr    error
	ListErr   error
	DeleteErr error
	NextIDErr error
	NextIDN   int
}

// NewMockTaskRepository creates a new MockTaskRepository with initialized maps.
func NewMockTaskRepository() *MockTaskRepository {
	return &MockTaskRepository{
		Tasks:   make(map[int]*domain.Task),
		NextIDN: 1,
	}
}

// Get retrieves a task by ID.
func (m *MockTaskRepository) Get(id int) (*domain.Task, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	task, ok := m.Tasks[id]
	if !ok {
		return nil, nil
	}
	return task, nil
}

// List returns tasks matching the filter, ordered by ID.
func (m *MockTaskRepository) List(filter domain.TaskFilter) ([]*domain.Task, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	tasks := make([]*domain.Task, 0, len(m.Tasks))
	for _, t := range m.Tasks {
		if filter.Match(t) {
			tasks = append(tasks, t)
		}
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].ID < tasks[j].ID })
	return tasks, nil
}

// Save saves a task.
func (m *MockTaskRepository) Save(task *domain.Task) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Tasks[task.ID] = task
	return nil
}

// Delete deletes a task.
func (m *MockTaskRepository) Delete(id int) error {
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	delete(m.Tasks, id)
	return nil
}

// NextID returns the next task ID.
func (m *MockTaskRepository) NextID() (int, error) {
	if m.NextIDErr != nil {
		return 0, m.NextIDErr
	}
	id := m.NextIDN
	m.NextIDN++
	return id, nil
}

// MockStoreInitializer is a test double for domain.StoreInitializer.
type MockStoreInitializer struct {
	InitErr     error
	Initialized bool
}

// Initialize marks the store as initialized.
func (m *MockStoreInitializer) Initialize() error {
	if m.InitErr != nil {
		return m.InitErr
	}
	m.Initialized = true
	return nil
}

// IsInitialized returns the configured state.
func (m *MockStoreInitializer) IsInitialized() bool {
	return m.Initialized
}

// MockKeyValueStore is an in-memory domain.KeyValueStore.
type MockKeyValueStore struct {
	Data      map[string][]byte
	SetErr    error
	GetErr    error
	DeleteErr error
	SetCalls  int
	mu        sync.Mutex
}

// NewMockKeyValueStore creates an empty store.
func NewMockKeyValueStore() *MockKeyValueStore {
	return &MockKeyValueStore{Data: make(map[string][]byte)}
}

// Get returns the value for key or domain.ErrKeyNotFound.
func (m *MockKeyValueStore) Get(key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	v, ok := m.Data[key]
	if !ok {
		return nil, domain.ErrKeyNotFound
	}
	return append([]byte(nil), v...), nil
}

// Set stores a copy of value.
func (m *MockKeyValueStore) Set(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SetCalls++
	if m.SetErr != nil {
		return m.SetErr
	}
	m.Data[key] = append([]byte(nil), value...)
	return nil
}

// Delete removes key.
func (m *MockKeyValueStore) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	delete(m.Data, key)
	return nil
}

// Has reports whether key holds a value.
func (m *MockKeyValueStore) Has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.Data[key]
	return ok
}

// MockFocusStateStore is an in-memory domain.FocusStateStore.
type MockFocusStateStore struct {
	SaveErr error
	Saved   []domain.FocusState
	State   domain.FocusState
	mu      sync.Mutex
}

// Save records the state.
func (m *MockFocusStateStore) Save(state domain.FocusState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Saved = append(m.Saved, state.Clone())
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.State = state.Clone()
	return nil
}

// Load returns the stored state paused at now.
func (m *MockFocusStateStore) Load(now time.Time) domain.FocusState {
	m.mu.Lock()
	defer m.mu.Unlock()
	state := m.State.Clone()
	if state.IsActive() {
		state.Running = false
		state.PausedAt = now
	}
	return state
}

// Peek returns the stored state as written.
func (m *MockFocusStateStore) Peek() domain.FocusState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.State.Clone()
}

// SaveCount returns the number of Save calls.
func (m *MockFocusStateStore) SaveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Saved)
}

// MockNotifier records notifications.
type MockNotifier struct {
	Notices          []domain.Notice
	PermissionCalls  int
	PermissionDenied bool
	mu               sync.Mutex
}

// RequestPermission returns !PermissionDenied.
func (m *MockNotifier) RequestPermission(_ context.Context) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PermissionCalls++
	return !m.PermissionDenied
}

// Notify records the notice.
func (m *MockNotifier) Notify(_ context.Context, notice domain.Notice) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Notices = append(m.Notices, notice)
}

// Permissions returns the number of RequestPermission calls.
func (m *MockNotifier) Permissions() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.PermissionCalls
}

// Kinds returns the kinds of all recorded notices.
func (m *MockNotifier) Kinds() []domain.NoticeKind {
	m.mu.Lock()
	defer m.mu.Unlock()
	kinds := make([]domain.NoticeKind, 0, len(m.Notices))
	for _, n := range m.Notices {
		kinds = append(kinds, n.Kind)
	}
	return kinds
}

// MockLogger records log lines as "LEVEL category: msg".
type MockLogger struct {
	Lines []string
	mu    sync.Mutex
}

func (m *MockLogger) record(level string, taskID int, category, msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Lines = append(m.Lines, fmt.Sprintf("%s [%d] %s: %s", level, taskID, category, msg))
}

// Info records an info line.
func (m *MockLogger) Info(taskID int, category, msg string) { m.record("INFO", taskID, category, msg) }

// Debug records a debug line.
func (m *MockLogger) Debug(taskID int, category, msg string) { m.record("DEBUG", taskID, category, msg) }

// Warn records a warn line.
func (m *MockLogger) Warn(taskID int, category, msg string) { m.record("WARN", taskID, category, msg) }

// Error records an error line.
func (m *MockLogger) Error(taskID int, category, msg string) { m.record("ERROR", taskID, category, msg) }

// Snapshot returns a copy of the recorded lines.
func (m *MockLogger) Snapshot() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.Lines...)
}

// FakeTickSource hands out FakeTickers that fire only when told to.
type FakeTickSource struct {
	tickers []*FakeTicker
	mu      sync.Mutex
}

// NewTicker creates a FakeTicker.
func (f *FakeTickSource) NewTicker(d time.Duration) domain.Ticker {
	f.mu.Lock()
	defer f.mu.Unlock()
	t := &FakeTicker{Period: d, ch: make(chan time.Time)}
	f.tickers = append(f.tickers, t)
	return t
}

// Created returns the number of tickers created so far.
func (f *FakeTickSource) Created() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.tickers)
}

// Armed returns the ticker that is currently not stopped, if any.
func (f *FakeTickSource) Armed() *FakeTicker {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.tickers) - 1; i >= 0; i-- {
		if !f.tickers[i].Stopped() {
			return f.tickers[i]
		}
	}
	return nil
}

// FakeTicker is a domain.Ticker driven by Fire.
type FakeTicker struct {
	ch      chan time.Time
	Period  time.Duration
	mu      sync.Mutex
	stopped bool
}

// C returns the tick channel.
func (t *FakeTicker) C() <-chan time.Time { return t.ch }

// Stop marks the ticker stopped.
func (t *FakeTicker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopped = true
}

// Stopped reports whether Stop was called.
func (t *FakeTicker) Stopped() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stopped
}

// Fire delivers one tick. It returns false if nobody received it within timeout.
func (t *FakeTicker) Fire(timeout time.Duration) bool {
	select {
	case t.ch <- time.Now():
		return true
	case <-time.After(timeout):
		return false
	}
}

// MockFocusLock is a test double for domain.FocusLock.
type MockFocusLock struct {
	Busy     bool
	Held     bool
	Released int
}

// TryLock acquires the lock unless Busy.
func (m *MockFocusLock) TryLock() (func(), error) {
	if m.Busy || m.Held {
		return nil, domain.ErrFocusBusy
	}
	m.Held = true
	return func() {
		m.Held = false
		m.Released++
	}, nil
}

// MockExecutor is a test double for domain.CommandExecutor.
type MockExecutor struct {
	ExecuteErr    error
	LookPathErr   error
	Commands      []*domain.ExecCommand
	ExecuteOutput []byte
	mu            sync.Mutex
}

// Execute records the command.
func (m *MockExecutor) Execute(_ context.Context, cmd *domain.ExecCommand) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Commands = append(m.Commands, cmd)
	return m.ExecuteOutput, m.ExecuteErr
}

// LookPath resolves every program to /usr/bin/<program> unless LookPathErr is set.
func (m *MockExecutor) LookPath(program string) (string, error) {
	if m.LookPathErr != nil {
		return "", m.LookPathErr
	}
	return "/usr/bin/" + program, nil
}

// Executed returns the recorded commands.
func (m *MockExecutor) Executed() []*domain.ExecCommand {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*domain.ExecCommand(nil), m.Commands...)
}

// MockConfigLoader is a test double for domain.ConfigLoader.
type MockConfigLoader struct {
	Config       *domain.Config
	GlobalConfig *domain.Config
	LoadErr      error
	GlobalErr    error
}

// NewMockConfigLoader returns a loader serving default configs.
func NewMockConfigLoader() *MockConfigLoader {
	return &MockConfigLoader{
		Config:       domain.NewDefaultConfig(),
		GlobalConfig: domain.NewDefaultConfig(),
	}
}

// Load returns the merged config.
func (m *MockConfigLoader) Load() (*domain.Config, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	return m.Config, nil
}

// LoadGlobal returns the global config.
func (m *MockConfigLoader) LoadGlobal() (*domain.Config, error) {
	if m.GlobalErr != nil {
		return nil, m.GlobalErr
	}
	return m.GlobalConfig, nil
}

// MockConfigManager is a test double for domain.ConfigManager.
type MockConfigManager struct {
	LocalConfigInfo  domain.ConfigInfo
	GlobalConfigInfo domain.ConfigInfo
	InitLocalErr     error
	InitGlobalErr    error
	InitLocalCalled  bool
	InitGlobalCalled bool
}

// NewMockConfigManager returns a manager reporting missing files.
func NewMockConfigManager() *MockConfigManager {
	return &MockConfigManager{
		LocalConfigInfo:  domain.ConfigInfo{Path: "/data/g2g/config.toml"},
		GlobalConfigInfo: domain.ConfigInfo{Path: "/home/user/.config/g2g/config.toml"},
	}
}

// GetLocalConfigInfo returns the local config info.
func (m *MockConfigManager) GetLocalConfigInfo() domain.ConfigInfo {
	return m.LocalConfigInfo
}

// GetGlobalConfigInfo returns the global config info.
func (m *MockConfigManager) GetGlobalConfigInfo() domain.ConfigInfo {
	return m.GlobalConfigInfo
}

// InitLocalConfig records the call.
func (m *MockConfigManager) InitLocalConfig() error {
	m.InitLocalCalled = true
	return m.InitLocalErr
}

// InitGlobalConfig records the call.
func (m *MockConfigManager) InitGlobalConfig() error {
	m.InitGlobalCalled = true
	return m.InitGlobalErr
}
