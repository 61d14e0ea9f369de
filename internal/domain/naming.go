package domain

import (
	"fmt"
	"path/filepath"
)

// Directory and file names for g2g.
const (
	AppDirName      = "g2g"         // Directory name under XDG config/data homes
	ConfigFileName  = "config.toml" // Config file name
	TasksJSONFile   = "tasks.json"  // JSON task store
	TasksSQLiteFile = "tasks.db"    // SQLite task store
	FocusLockFile   = "focus.lock"  // Held by the process driving the focus countdown
	FocusStateKey   = "g2g.focus.state"
)

// GlobalConfigDir returns the global config directory.
// configHome is typically XDG_CONFIG_HOME or ~/.config (resolved by caller).
func GlobalConfigDir(configHome string) string {
	return filepath.Join(configHome, AppDirName)
}

// GlobalConfigPath returns the global config path.
func GlobalConfigPath(configHome string) string {
	return filepath.Join(GlobalConfigDir(configHome), ConfigFileName)
}

// LocalConfigPath returns the data-dir config path.
func LocalConfigPath(dataDir string) string {
	return filepath.Join(dataDir, ConfigFileName)
}

// TasksStorePath returns the task store path for the given backend.
func TasksStorePath(dataDir, store string) string {
	if store == StoreSQLite {
		return filepath.Join(dataDir, TasksSQLiteFile)
	}
	return filepath.Join(dataDir, TasksJSONFile)
}

// StateDir returns the directory holding key-value slots.
func StateDir(dataDir string) string {
	return filepath.Join(dataDir, "state")
}

// FocusLockPath returns the path of the focus driver lock.
func FocusLockPath(dataDir string) string {
	return filepath.Join(dataDir, FocusLockFile)
}

// TaskLogPath returns the path to the task log file.
func TaskLogPath(dataDir string, taskID int) string {
	return filepath.Join(dataDir, "logs", fmt.Sprintf("task-%d.log", taskID))
}

// GlobalLogPath returns the path to the global log file.
func GlobalLogPath(dataDir string) string {
	return filepath.Join(dataDir, "logs", "g2g.log")
}
