package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/fredcamaral/decksmith/internal/domain/entities"
	"github.com/fredcamaral/decksmith/internal/domain/ports"
)

// ConfigService resolves the effective configuration for a command run.
// Precedence, lowest to highest: defaults, config files, environment
// variables, CLI flags.
type ConfigService struct {
	loader ports.ConfigLoader
	merger ports.ConfigMerger
}

// NewConfigService creates a new configuration service.
func NewConfigService(loader ports.ConfigLoader, merger ports.ConfigMerger) *ConfigService {
	return &ConfigService{
		loader: loader,
		merger: merger,
	}
}

// LoadConfig loads the complete configuration with hierarchy and overrides.
// When configFile is non-empty it names an explicit config file that replaces
// the global and local files entirely; otherwise the usual hierarchy applies
// (global config, then a decksmith.toml next to the source document).
func (s *ConfigService) LoadConfig(ctx context.Context, workingDir, configFile string, flags map[string]interface{}) (*entities.Config, error) {
	configs := []*entities.Config{s.GetDefaultConfig()}

	if configFile != "" {
		explicit, err := s.loader.LoadFile(ctx, configFile)
		if err != nil {
			return nil, fmt.Errorf("loading config file: %w", err)
		}
		configs = append(configs, explicit)
	} else {
		globalConfig, err := s.loader.LoadGlobal(ctx)
		if err != nil {
			return nil, fmt.Errorf("loading global config: %w", err)
		}
		if globalConfig != nil {
			configs = append(configs, globalConfig)
		}

		localConfig, err := s.loader.LoadLocal(ctx, workingDir)
		if err != nil {
			return nil, fmt.Errorf("loading local config: %w", err)
		}
		if localConfig != nil {
			configs = append(configs, localConfig)
		}
	}

	mergedConfig := s.merger.Merge(configs...)

	// Environment variables override files; flags override everything.
	envConfig := s.merger.ApplyEnvVars(mergedConfig)
	finalConfig := s.merger.ApplyFlags(envConfig, flags)

	if err := s.ValidateConfig(finalConfig); err != nil {
		return nil, fmt.Errorf("final config validation: %w", err)
	}

	return finalConfig, nil
}

// GetDefaultConfig returns the default configuration.
func (s *ConfigService) GetDefaultConfig() *entities.Config {
	// Merge with no arguments returns the defaults; delegating avoids a
	// dependency on the defaults package from the domain layer.
	return s.merger.Merge()
}

// ValidateConfig validates a configuration.
func (s *ConfigService) ValidateConfig(config *entities.Config) error {
	if config == nil {
		return errors.New("config cannot be nil")
	}

	return config.Validate()
}

// CreateGlobalConfig creates the global configuration file with defaults.
func (s *ConfigService) CreateGlobalConfig(ctx context.Context) error {
	globalPath := s.loader.GetGlobalPath()
	return s.loader.CreateDefaults(ctx, globalPath)
}
