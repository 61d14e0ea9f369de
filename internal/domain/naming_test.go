package domain

import "testing"

func TestGlobalConfigPath(t *testing.T) {
	got := GlobalConfigPath("/home/user/.config")
	want := "/home/user/.config/g2g/config.toml"
	if got != want {
		t.Errorf("GlobalConfigPath() = %q, want %q", got, want)
	}
}

func TestLocalConfigPath(t *testing.T) {
	got := LocalConfigPath("/data/g2g")
	want := "/data/g2g/config.toml"
	if got != want {
		t.Errorf("LocalConfigPath() = %q, want %q", got, want)
	}
}

func TestTasksStorePath(t *testing.T) {
	tests := []struct {
		store string
		want  string
	}{
		{StoreJSON, "/data/tasks.json"},
		{StoreSQLite, "/data/tasks.db"},
		{"", "/data/tasks.json"},
	}
	for _, tt := range tests {
		if got := TasksStorePath("/data", tt.store); got != tt.want {
			t.Errorf("TasksStorePath(%q) = %q, want %q", tt.store, got, tt.want)
		}
	}
}

func TestStatePaths(t *testing.T) {
	if got := StateDir("/data"); got != "/data/state" {
		t.Errorf("StateDir() = %q", got)
	}
	if got := FocusLockPath("/data"); got != "/data/focus.lock" {
		t.Errorf("FocusLockPath() = %q", got)
	}
	if got := TaskLogPath("/data", 3); got != "/data/logs/task-3.log" {
		t.Errorf("TaskLogPath() = %q", got)
	}
	if got := GlobalLogPath("/data"); got != "/data/logs/g2g.log" {
		t.Errorf("GlobalLogPath() = %q", got)
	}
}
