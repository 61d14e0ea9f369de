package usecase

import (
	"context"

	"github.com/runoshun/g2g/internal/domain"
)

// InitConfigInput contains the input for the InitConfig use case.
type InitConfigInput struct {
	Global bool // If true, initialize global config; otherwise the data-dir config
}

// InitConfigOutput contains the output of the InitConfig use case.
type InitConfigOutput struct {
	Path string // Path to the created config file
}

// InitConfig generates a configuration file template.
type InitConfig struct {
	configManager domain.ConfigManager
}

// NewInitConfig creates a new InitConfig use case.
func NewInitConfig(configManager domain.ConfigManager) *InitConfig {
	return &InitConfig{
		configManager: configManager,
	}
}

// Execute creates the config file. An existing file is never overwritten.
func (uc *InitConfig) Execute(_ context.Context, in InitConfigInput) (*InitConfigOutput, error) {
	info := uc.configManager.GetLocalConfigInfo()
	initFn := uc.configManager.InitLocalConfig
	if in.Global {
		info = uc.configManager.GetGlobalConfigInfo()
		initFn = uc.configManager.InitGlobalConfig
	}

	if info.Exists {
		return nil, domain.ErrConfigExists
	}
	if err := initFn(); err != nil {
		return nil, err
	}

	return &InitConfigOutput{Path: info.Path}, nil
}
