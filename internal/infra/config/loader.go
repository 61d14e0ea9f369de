// Package config provides configuration loading functionality.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/pelletier/go-toml/v2"

	"github.com/runoshun/g2g/internal/domain"
)

// Ensure Loader implements domain.ConfigLoader.
var _ domain.ConfigLoader = (*Loader)(nil)

// Loader loads configuration from TOML files.
type Loader struct {
	dataDir       string // Holds the local config.toml
	globalConfDir string // Path to global config directory (e.g., ~/.config/g2g)
}

// NewLoader creates a new Loader.
func NewLoader(dataDir string) *Loader {
	return &Loader{
		dataDir:       dataDir,
		globalConfDir: defaultGlobalConfigDir(),
	}
}

// NewLoaderWithGlobalDir creates a new Loader with a custom global config directory.
// This is useful for testing.
func NewLoaderWithGlobalDir(dataDir, globalConfDir string) *Loader {
	return &Loader{
		dataDir:       dataDir,
		globalConfDir: globalConfDir,
	}
}

// Load returns the merged configuration (default <- global <- local).
func (l *Loader) Load() (*domain.Config, error) {
	global, err := l.loadOverlay(l.globalPath())
	if err != nil {
		return nil, err
	}
	local, err := l.loadOverlay(domain.LocalConfigPath(l.dataDir))
	if err != nil {
		return nil, err
	}

	cfg := domain.NewDefaultConfig()
	global.applyTo(cfg)
	local.applyTo(cfg)
	return cfg, nil
}

// LoadGlobal returns the defaults merged with the global configuration only.
// It returns os.ErrNotExist when there is no global config file.
func (l *Loader) LoadGlobal() (*domain.Config, error) {
	path := l.globalPath()
	if path == "" {
		return nil, os.ErrNotExist
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	ov, err := parseOverlay(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	cfg := domain.NewDefaultConfig()
	ov.applyTo(cfg)
	return cfg, nil
}

func (l *Loader) globalPath() string {
	if l.globalConfDir == "" {
		return ""
	}
	return filepath.Join(l.globalConfDir, domain.ConfigFileName)
}

// loadOverlay reads one config file. A missing file yields an empty overlay.
func (l *Loader) loadOverlay(path string) (*overlay, error) {
	if path == "" {
		return &overlay{}, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return &overlay{}, nil
	}
	if err != nil {
		return nil, err
	}
	ov, err := parseOverlay(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ov, nil
}

// overlay holds the values present in one config file. Nil means "not set",
// so that an explicit false or zero still overrides a lower layer.
type overlay struct {
	store           *string
	defaultCategory *string
	defaultDuration *float64
	warnHours       *float64
	notifyEnabled   *bool
	notifyBell      *bool
	notifyCommand   *string
	logLevel        *string
	warnings        []string
}

func (o *overlay) applyTo(cfg *domain.Config) {
	setIf(&cfg.Tasks.Store, o.store)
	setIf(&cfg.Tasks.DefaultCategory, o.defaultCategory)
	setIf(&cfg.Tasks.DefaultDuration, o.defaultDuration)
	setIf(&cfg.Focus.WarnHours, o.warnHours)
	setIf(&cfg.Notify.Enabled, o.notifyEnabled)
	setIf(&cfg.Notify.Bell, o.notifyBell)
	setIf(&cfg.Notify.Command, o.notifyCommand)
	setIf(&cfg.Log.Level, o.logLevel)
	cfg.Warnings = append(cfg.Warnings, o.warnings...)
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

// parseOverlay converts a TOML document into an overlay and collects warnings
// for unknown sections, unknown keys and values of the wrong type.
func parseOverlay(data []byte) (*overlay, error) {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	ov := &overlay{}
	var warnings []string
	warnf := func(format string, args ...any) {
		warnings = append(warnings, fmt.Sprintf(format, args...))
	}

	for section, value := range raw {
		m, ok := value.(map[string]any)
		if !ok || !knownSections[section] {
			warnf("unknown section: %s", section)
			continue
		}
		for k, v := range m {
			var okType bool
			switch section + "." + k {
			case "tasks.store":
				ov.store, okType = stringValue(v)
				if okType && *ov.store != domain.StoreJSON && *ov.store != domain.StoreSQLite {
					warnf("invalid value in [tasks]: store = %q (want %q or %q)", *ov.store, domain.StoreJSON, domain.StoreSQLite)
					ov.store = nil
				}
			case "tasks.default_category":
				ov.defaultCategory, okType = stringValue(v)
			case "tasks.default_duration":
				ov.defaultDuration, okType = floatValue(v)
				if okType && !domain.ValidDuration(*ov.defaultDuration) {
					warnf("invalid value in [tasks]: default_duration = %v", *ov.defaultDuration)
					ov.defaultDuration = nil
				}
			case "focus.warn_hours":
				ov.warnHours, okType = floatValue(v)
			case "notify.enabled":
				ov.notifyEnabled, okType = boolValue(v)
			case "notify.bell":
				ov.notifyBell, okType = boolValue(v)
			case "notify.command":
				ov.notifyCommand, okType = stringValue(v)
			case "log.level":
				ov.logLevel, okType = stringValue(v)
			default:
				warnf("unknown key in [%s]: %s", section, k)
				continue
			}
			if !okType {
				warnf("invalid type in [%s]: %s", section, k)
			}
		}
	}

	sort.Strings(warnings)
	ov.warnings = warnings
	return ov, nil
}

var knownSections = map[string]bool{
	"tasks":  true,
	"focus":  true,
	"notify": true,
	"log":    true,
}

func stringValue(v any) (*string, bool) {
	s, ok := v.(string)
	if !ok {
		return nil, false
	}
	return &s, true
}

func boolValue(v any) (*bool, bool) {
	b, ok := v.(bool)
	if !ok {
		return nil, false
	}
	return &b, true
}

func floatValue(v any) (*float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case int64:
		f = float64(n)
	default:
		return nil, false
	}
	return &f, true
}
