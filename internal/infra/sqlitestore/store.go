// Package sqlitestore provides a SQLite implementation of TaskRepository.
package sqlitestore

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/runoshun/g2g/internal/domain"

	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

const schema = `
CREATE TABLE IF NOT EXISTS tasks (
	id             INTEGER PRIMARY KEY,
	title          TEXT    NOT NULL,
	description    TEXT    NOT NULL DEFAULT '',
	category       TEXT    NOT NULL DEFAULT '',
	tags           TEXT    NOT NULL DEFAULT '[]',
	duration_hours REAL    NOT NULL,
	completed      INTEGER NOT NULL DEFAULT 0,
	completed_at   TEXT    NOT NULL DEFAULT '',
	created        TEXT    NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_tasks_category ON tasks(category);
CREATE TABLE IF NOT EXISTS meta (
	key   TEXT PRIMARY KEY,
	value INTEGER NOT NULL
);
INSERT OR IGNORE INTO meta(key, value) VALUES ('next_task_id', 1);
`

const taskColumns = `id, title, description, category, tags, duration_hours, completed, completed_at, created`

// Store implements domain.TaskRepository on a SQLite database file.
// The connection is opened lazily so that a missing database reports
// domain.ErrNotInitialized instead of being created implicitly.
type Store struct {
	db   *sql.DB
	path string
}

// Ensure Store implements the domain interfaces.
var (
	_ domain.TaskRepository   = (*Store)(nil)
	_ domain.StoreInitializer = (*Store)(nil)
)

// New creates a Store for the database at path.
func New(path string) *Store {
	return &Store{path: path}
}

// IsInitialized checks if the database file exists.
func (s *Store) IsInitialized() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Initialize creates the database and schema if they don't exist.
func (s *Store) Initialize() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o750); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	db, err := s.open()
	if err != nil {
		return err
	}
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// Get retrieves a task by ID.
func (s *Store) Get(id int) (*domain.Task, error) {
	db, err := s.conn()
	if err != nil {
		return nil, err
	}
	row := db.QueryRow(`SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	task, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get task %d: %w", id, err)
	}
	return task, nil
}

// List retrieves tasks matching the filter, ordered by ID.
func (s *Store) List(filter domain.TaskFilter) ([]*domain.Task, error) {
	db, err := s.conn()
	if err != nil {
		return nil, err
	}

	var (
		where []string
		args  []any
	)
	if !filter.IncludeCompleted {
		where = append(where, "completed = 0")
	}
	if filter.Category != "" {
		where = append(where, "category = ?")
		args = append(args, filter.Category)
	}
	query := `SELECT ` + taskColumns + ` FROM tasks`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY id"

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var tasks []*domain.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		// Tags are stored as JSON; match them in Go.
		if filter.Match(task) {
			tasks = append(tasks, task)
		}
	}
	return tasks, rows.Err()
}

// Save creates or updates a task.
func (s *Store) Save(task *domain.Task) error {
	db, err := s.conn()
	if err != nil {
		return err
	}
	tags, err := json.Marshal(task.Tags)
	if err != nil {
		return fmt.Errorf("encode tags: %w", err)
	}
	_, err = db.Exec(`
INSERT INTO tasks (`+taskColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	title = excluded.title,
	description = excluded.description,
	category = excluded.category,
	tags = excluded.tags,
	duration_hours = excluded.duration_hours,
	completed = excluded.completed,
	completed_at = excluded.completed_at,
	created = excluded.created`,
		task.ID, task.Title, task.Description, task.Category, string(tags), task.DurationHours,
		task.Completed, formatTime(task.CompletedAt), formatTime(task.Created),
	)
	if err != nil {
		return fmt.Errorf("save task %d: %w", task.ID, err)
	}
	return nil
}

// Delete removes a task by ID.
func (s *Store) Delete(id int) error {
	db, err := s.conn()
	if err != nil {
		return err
	}
	if _, err := db.Exec(`DELETE FROM tasks WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete task %d: %w", id, err)
	}
	return nil
}

// NextID returns the next available task ID.
func (s *Store) NextID() (int, error) {
	db, err := s.conn()
	if err != nil {
		return 0, err
	}
	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var id int
	if err := tx.QueryRow(`SELECT value FROM meta WHERE key = 'next_task_id'`).Scan(&id); err != nil {
		return 0, fmt.Errorf("read next id: %w", err)
	}
	if _, err := tx.Exec(`UPDATE meta SET value = ? WHERE key = 'next_task_id'`, id+1); err != nil {
		return 0, fmt.Errorf("bump next id: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return id, nil
}

func (s *Store) conn() (*sql.DB, error) {
	if s.db != nil {
		return s.db, nil
	}
	if !s.IsInitialized() {
		return nil, domain.ErrNotInitialized
	}
	return s.open()
}

func (s *Store) open() (*sql.DB, error) {
	if s.db != nil {
		return s.db, nil
	}
	db, err := sql.Open("sqlite", s.path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// One writer at a time keeps NextID and upserts serialised.
	db.SetMaxOpenConns(1)
	s.db = db
	return db, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(row scanner) (*domain.Task, error) {
	var (
		task                 domain.Task
		tags                 string
		completedAt, created string
	)
	if err := row.Scan(&task.ID, &task.Title, &task.Description, &task.Category, &tags,
		&task.DurationHours, &task.Completed, &completedAt, &created); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(tags), &task.Tags); err != nil {
		return nil, fmt.Errorf("decode tags: %w", err)
	}
	var err error
	if task.CompletedAt, err = parseTime(completedAt); err != nil {
		return nil, err
	}
	if task.Created, err = parseTime(created); err != nil {
		return nil, err
	}
	return &task, nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse time %q: %w", s, err)
	}
	return t, nil
}
