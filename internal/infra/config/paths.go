package config

import (
	"os"
	"path/filepath"

	"github.com/runoshun/g2g/internal/domain"
)

// DataDirEnv overrides the data directory.
const DataDirEnv = "G2G_HOME"

// ResolveDataDir returns the data directory: $G2G_HOME, else
// $XDG_DATA_HOME/g2g, else ~/.local/share/g2g.
func ResolveDataDir() (string, error) {
	if dir := os.Getenv(DataDirEnv); dir != "" {
		return filepath.Abs(dir)
	}
	if dataHome := os.Getenv("XDG_DATA_HOME"); dataHome != "" {
		return filepath.Join(dataHome, domain.AppDirName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", domain.AppDirName), nil
}

// defaultGlobalConfigDir returns the default global config directory.
func defaultGlobalConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return domain.GlobalConfigDir(configHome)
}
