// Package jsonstore provides a JSON file-based implementation of TaskRepository.
package jsonstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"syscall"

	"github.com/runoshun/g2g/internal/domain"
)

// fileVersion is the layout version written to new store files.
const fileVersion = 1

// storeFile is the on-disk layout. Tasks are kept sorted by ID.
type storeFile struct {
	Tasks   []taskRecord `json:"tasks"`
	Version int          `json:"version"`
	NextID  int          `json:"nextId"`
}

// taskRecord adds the ID, which domain.Task leaves out of its JSON form.
type taskRecord struct {
	domain.Task
	ID int `json:"id"`
}

func (r taskRecord) toTask() *domain.Task {
	task := r.Task
	task.ID = r.ID
	return &task
}

// Store implements domain.TaskRepository on a single JSON file.
// Readers take a shared flock, writers an exclusive one, so several g2g
// processes can use the same file.
type Store struct {
	path     string
	lockPath string
}

var (
	_ domain.TaskRepository   = (*Store)(nil)
	_ domain.StoreInitializer = (*Store)(nil)
)

// New creates a Store for path. Initialize creates the file.
func New(path string) *Store {
	return &Store{
		path:     path,
		lockPath: path + ".lock",
	}
}

// Get returns the task with id, or nil if there is none.
func (s *Store) Get(id int) (*domain.Task, error) {
	var task *domain.Task
	err := s.view(func(f *storeFile) error {
		if i, ok := f.find(id); ok {
			task = f.Tasks[i].toTask()
		}
		return nil
	})
	return task, err
}

// List returns the tasks matching filter in ID order.
func (s *Store) List(filter domain.TaskFilter) ([]*domain.Task, error) {
	var tasks []*domain.Task
	err := s.view(func(f *storeFile) error {
		for _, r := range f.Tasks {
			if t := r.toTask(); filter.Match(t) {
				tasks = append(tasks, t)
			}
		}
		return nil
	})
	return tasks, err
}

// Save creates or replaces the task with task.ID.
func (s *Store) Save(task *domain.Task) error {
	return s.update(func(f *storeFile) error {
		rec := taskRecord{Task: *task, ID: task.ID}
		i, ok := f.find(task.ID)
		if ok {
			f.Tasks[i] = rec
		} else {
			f.Tasks = slices.Insert(f.Tasks, i, rec)
		}
		// Tasks imported with explicit IDs must not be handed out again.
		f.NextID = max(f.NextID, task.ID+1)
		return nil
	})
}

// Delete removes the task with id. Deleting a missing task is not an error.
func (s *Store) Delete(id int) error {
	return s.update(func(f *storeFile) error {
		if i, ok := f.find(id); ok {
			f.Tasks = slices.Delete(f.Tasks, i, i+1)
		}
		return nil
	})
}

// NextID reserves and returns the next task ID.
func (s *Store) NextID() (int, error) {
	var id int
	err := s.update(func(f *storeFile) error {
		id = f.NextID
		f.NextID++
		return nil
	})
	return id, err
}

// IsInitialized reports whether the store file exists.
func (s *Store) IsInitialized() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Initialize creates an empty store file. An existing file is left alone.
func (s *Store) Initialize() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o750); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	if s.IsInitialized() {
		return nil
	}

	unlock, err := s.lock(syscall.LOCK_EX)
	if err != nil {
		return err
	}
	defer unlock()

	return s.write(&storeFile{Version: fileVersion, NextID: 1, Tasks: []taskRecord{}})
}

// find returns the index of id, or the index it would be inserted at.
func (f *storeFile) find(id int) (int, bool) {
	return slices.BinarySearchFunc(f.Tasks, id, func(r taskRecord, id int) int {
		return r.ID - id
	})
}

// view runs fn on the current file contents under a shared lock.
func (s *Store) view(fn func(*storeFile) error) error {
	unlock, err := s.lock(syscall.LOCK_SH)
	if err != nil {
		return err
	}
	defer unlock()

	f, err := s.read()
	if err != nil {
		return err
	}
	return fn(f)
}

// update runs fn under an exclusive lock and writes the result back.
func (s *Store) update(fn func(*storeFile) error) error {
	unlock, err := s.lock(syscall.LOCK_EX)
	if err != nil {
		return err
	}
	defer unlock()

	f, err := s.read()
	if err != nil {
		return err
	}
	if err := fn(f); err != nil {
		return err
	}
	return s.write(f)
}

func (s *Store) lock(how int) (unlock func(), err error) {
	if err := os.MkdirAll(filepath.Dir(s.lockPath), 0o750); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}
	file, err := os.OpenFile(s.lockPath, os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open lock file: %w", err)
	}
	if err := syscall.Flock(int(file.Fd()), how); err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	return func() {
		_ = syscall.Flock(int(file.Fd()), syscall.LOCK_UN)
		_ = file.Close()
	}, nil
}

func (s *Store) read() (*storeFile, error) {
	content, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrNotInitialized
		}
		return nil, fmt.Errorf("read store file: %w", err)
	}

	var f storeFile
	if err := json.Unmarshal(content, &f); err != nil {
		return nil, fmt.Errorf("parse store file: %w", err)
	}
	if f.Version > fileVersion {
		return nil, fmt.Errorf("store file version %d is newer than this g2g supports (%d)", f.Version, fileVersion)
	}
	f.Version = fileVersion

	slices.SortFunc(f.Tasks, func(a, b taskRecord) int { return a.ID - b.ID })
	next := 1
	if n := len(f.Tasks); n > 0 {
		next = f.Tasks[n-1].ID + 1
	}
	f.NextID = max(f.NextID, next)
	return &f, nil
}

// write replaces the store file atomically. Callers hold the exclusive lock.
func (s *Store) write(f *storeFile) error {
	content, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal store file: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	name := tmp.Name()
	defer func() { _ = os.Remove(name) }()

	if _, err := tmp.Write(content); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(name, s.path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
