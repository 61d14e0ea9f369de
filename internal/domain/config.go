package domain

import (
	"bytes"
	_ "embed"
	"fmt"
	"text/template"
)

//go:embed config_template.toml
var configTemplateContent string

// Config represents the application configuration.
// Fields are ordered to minimize memory padding.
type Config struct {
	Warnings []string     `toml:"-"`
	Tasks    TasksConfig  `toml:"tasks"`
	Notify   NotifyConfig `toml:"notify"`
	Log      LogConfig    `toml:"log"`
	Focus    FocusConfig  `toml:"focus"`
}

// TasksConfig holds settings for task storage from [tasks] section.
type TasksConfig struct {
	Store           string  `toml:"store,omitempty"`            // Storage backend: "json" (default) or "sqlite"
	DefaultCategory string  `toml:"default_category,omitempty"` // Category for new tasks
	DefaultDuration float64 `toml:"default_duration,omitempty"` // Estimate in hours for new tasks
}

// FocusConfig holds focus settings from [focus] section.
type FocusConfig struct {
	WarnHours float64 `toml:"warn_hours,omitempty"` // Estimate above which plans carry a split warning
}

// NotifyConfig holds notification settings from [notify] section.
type NotifyConfig struct {
	Command string `toml:"command,omitempty"` // Shell command template run for each notification
	Enabled bool   `toml:"enabled"`           // Master switch
	Bell    bool   `toml:"bell"`              // Ring the terminal bell in the TUI
}

// LogConfig holds logging settings from [log] section.
type LogConfig struct {
	Level string `toml:"level,omitempty"` // Log level: debug, info, warn, error
}

// Store backends.
const (
	StoreJSON   = "json"
	StoreSQLite = "sqlite"
)

// Default configuration values.
const (
	DefaultLogLevel      = "info"
	DefaultNotifyCommand = "notify-send --app-name=g2g {{.Title}} {{.Body}}"
)

// NewDefaultConfig returns a Config with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Tasks: TasksConfig{
			Store:           StoreJSON,
			DefaultCategory: DefaultCategory,
			DefaultDuration: DefaultDurationHours,
		},
		Focus: FocusConfig{
			WarnHours: DefaultWarnHours,
		},
		Notify: NotifyConfig{
			Enabled: true,
			Bell:    true,
			Command: DefaultNotifyCommand,
		},
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
	}
}

// RenderConfigTemplate renders the commented config file written by 'g2g config init'.
func RenderConfigTemplate(cfg *Config) string {
	tmpl, err := template.New("config").Delims("<<", ">>").Parse(configTemplateContent)
	if err != nil {
		// Should never happen with embedded template
		panic(fmt.Sprintf("failed to parse config template: %v", err))
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, cfg); err != nil {
		panic(fmt.Sprintf("failed to execute config template: %v", err))
	}
	return buf.String()
}
