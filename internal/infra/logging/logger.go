// Package logging provides file-based logging for g2g.
// Every entry goes to the global log (<data>/logs/g2g.log); entries about a
// stored task are also appended to that task's log (<data>/logs/task-N.log).
package logging

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/runoshun/g2g/internal/domain"
)

// Ensure Logger implements domain.Logger interface.
var _ domain.Logger = (*Logger)(nil)

// globalKey is the files map key of the global log.
const globalKey = 0

// Logger writes formatted entries to the log files under a data directory.
// Fields are ordered to minimize memory padding.
type Logger struct {
	clock   domain.Clock
	files   map[int]*os.File
	dataDir string
	mu      sync.Mutex
	level   slog.Level
}

// New creates a Logger writing below dataDir.
// If dataDir is empty, logging is disabled.
func New(dataDir string, level slog.Level, clock domain.Clock) *Logger {
	if clock == nil {
		clock = domain.RealClock{}
	}
	return &Logger{
		clock:   clock,
		dataDir: dataDir,
		level:   level,
		files:   make(map[int]*os.File),
	}
}

// ParseLevel parses a log level string into slog.Level.
func ParseLevel(levelStr string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(levelStr)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// Info logs an info message.
func (l *Logger) Info(taskID int, category, msg string) {
	l.log(slog.LevelInfo, taskID, category, msg)
}

// Debug logs a debug message.
func (l *Logger) Debug(taskID int, category, msg string) {
	l.log(slog.LevelDebug, taskID, category, msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(taskID int, category, msg string) {
	l.log(slog.LevelWarn, taskID, category, msg)
}

// Error logs an error message.
func (l *Logger) Error(taskID int, category, msg string) {
	l.log(slog.LevelError, taskID, category, msg)
}

// Close closes all open log files.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	var errs []error
	for key, f := range l.files {
		errs = append(errs, f.Close())
		delete(l.files, key)
	}
	return errors.Join(errs...)
}

// Tail returns up to n trailing lines of the log for taskID (0 = global).
// A missing log file yields no lines.
func (l *Logger) Tail(taskID, n int) ([]string, error) {
	if l.dataDir == "" {
		return nil, nil
	}
	f, err := os.Open(l.pathFor(taskID))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer func() { _ = f.Close() }()

	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		lines = append(lines, sc.Text())
		if n > 0 && len(lines) > n {
			lines = lines[1:]
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}
	return lines, nil
}

// log writes one entry. taskID 0 writes to the global log only.
func (l *Logger) log(level slog.Level, taskID int, category, msg string) {
	if l.dataDir == "" || level < l.level {
		return
	}

	entry := formatLog(l.clock, level, taskID, category, msg)

	l.mu.Lock()
	defer l.mu.Unlock()

	if f, err := l.fileFor(globalKey); err == nil {
		_, _ = io.WriteString(f, entry)
	}
	if taskID > 0 {
		if f, err := l.fileFor(taskID); err == nil {
			_, _ = io.WriteString(f, entry)
		}
	}
}

// fileFor opens or returns the log file for key. Callers hold l.mu.
func (l *Logger) fileFor(key int) (*os.File, error) {
	if f, ok := l.files[key]; ok {
		return f, nil
	}

	path := l.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("create logs directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o640) //nolint:gosec // Log file readable by owner and group
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	l.files[key] = f
	return f, nil
}

func (l *Logger) pathFor(key int) string {
	if key == globalKey {
		return domain.GlobalLogPath(l.dataDir)
	}
	return domain.TaskLogPath(l.dataDir, key)
}

// formatLog formats an entry as:
// [2026-03-01 09:32:51] [INFO] [task-1] [focus] message
func formatLog(clock domain.Clock, level slog.Level, taskID int, category, msg string) string {
	scope := "global"
	if taskID > 0 {
		scope = fmt.Sprintf("task-%d", taskID)
	}
	return fmt.Sprintf("[%s] [%s] [%s] [%s] %s\n",
		clock.Now().Format("2006-01-02 15:04:05"),
		level.String(),
		scope,
		category,
		msg,
	)
}
