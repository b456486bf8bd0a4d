package config

import (
	"os"
	"strconv"

	"github.com/fredcamaral/decksmith/internal/domain/entities"
	"github.com/fredcamaral/decksmith/internal/domain/ports"
)

// ConfigMerger implements the ConfigMerger interface
type ConfigMerger struct{}

// NewConfigMerger creates a new configuration merger
func NewConfigMerger() *ConfigMerger {
	return &ConfigMerger{}
}

// Merge merges multiple configurations with later configs taking precedence
func (m *ConfigMerger) Merge(configs ...*entities.Config) *entities.Config {
	if len(configs) == 0 {
		return GetDefaultConfig()
	}

	result := deepCopy(configs[0])

	for i := 1; i < len(configs); i++ {
		if configs[i] != nil {
			m.mergeInto(result, configs[i])
		}
	}

	return result
}

// ApplyFlags applies CLI flag overrides to a configuration
func (m *ConfigMerger) ApplyFlags(config *entities.Config, flags map[string]interface{}) *entities.Config {
	result := deepCopy(config)

	if port, ok := flags["port"].(int); ok && port > 0 {
		result.Server.Port = port
	}

	if host, ok := flags["host"].(string); ok && host != "" {
		result.Server.Host = host
	}

	if maxSlides, ok := flags["max-free-slides"].(int); ok && maxSlides > 0 {
		result.Limiter.MaxFreeSlides = maxSlides
	}

	if licensed, ok := flags["licensed"].(bool); ok && licensed {
		result.Limiter.Licensed = true
	}

	if format, ok := flags["format"].(string); ok && format != "" {
		result.Export.Format = format
	}

	if output, ok := flags["output"].(string); ok && output != "" {
		result.Export.OutputDir = output
	}

	if verbose, ok := flags["verbose"].(bool); ok && verbose {
		result.Logging.Verbose = true
		result.Logging.Level = string(entities.LogLevelDebug)
	}

	return result
}

// ApplyEnvVars applies environment variable overrides to a configuration
func (m *ConfigMerger) ApplyEnvVars(config *entities.Config) *entities.Config {
	result := deepCopy(config)

	if host := os.Getenv("DECKSMITH_HOST"); host != "" {
		result.Server.Host = host
	}

	if portStr := os.Getenv("DECKSMITH_PORT"); portStr != "" {
		if port, err := strconv.Atoi(portStr); err == nil && port > 0 {
			result.Server.Port = port
		}
	}

	if maxStr := os.Getenv("DECKSMITH_MAX_FREE_SLIDES"); maxStr != "" {
		if maxSlides, err := strconv.Atoi(maxStr); err == nil && maxSlides > 0 {
			result.Limiter.MaxFreeSlides = maxSlides
		}
	}

	if licensedStr := os.Getenv("DECKSMITH_LICENSED"); licensedStr != "" {
		if licensed, err := strconv.ParseBool(licensedStr); err == nil {
			result.Limiter.Licensed = licensed
		}
	}

	if key := os.Getenv("DECKSMITH_LICENSE_KEY"); key != "" {
		result.Limiter.LicenseKey = key
	}

	if format := os.Getenv("DECKSMITH_EXPORT_FORMAT"); format != "" {
		result.Export.Format = format
	}

	if dir := os.Getenv("DECKSMITH_EXPORT_DIR"); dir != "" {
		result.Export.OutputDir = dir
	}

	if intervalStr := os.Getenv("DECKSMITH_WATCH_INTERVAL"); intervalStr != "" {
		if interval, err := strconv.Atoi(intervalStr); err == nil && interval > 0 {
			result.Watcher.IntervalMs = interval
		}
	}

	if debounceStr := os.Getenv("DECKSMITH_WATCH_DEBOUNCE"); debounceStr != "" {
		if debounce, err := strconv.Atoi(debounceStr); err == nil && debounce >= 0 {
			result.Watcher.DebounceMs = debounce
		}
	}

	if level := os.Getenv("DECKSMITH_LOG_LEVEL"); level != "" {
		result.Logging.Level = level
	}

	return result
}

// mergeInto merges source configuration into target configuration. Booleans
// merge one-way (false cannot override true): TOML cannot distinguish an
// explicit false from an unset field.
func (m *ConfigMerger) mergeInto(target, source *entities.Config) {
	// Server config
	if source.Server.Host != "" {
		target.Server.Host = source.Server.Host
	}
	if source.Server.Port != 0 {
		target.Server.Port = source.Server.Port
	}
	if source.Server.ReadTimeout != 0 {
		target.Server.ReadTimeout = source.Server.ReadTimeout
	}
	if source.Server.WriteTimeout != 0 {
		target.Server.WriteTimeout = source.Server.WriteTimeout
	}
	if source.Server.ShutdownTimeout != 0 {
		target.Server.ShutdownTimeout = source.Server.ShutdownTimeout
	}
	if len(source.Server.CORSOrigins) > 0 {
		target.Server.CORSOrigins = make([]string, len(source.Server.CORSOrigins))
		copy(target.Server.CORSOrigins, source.Server.CORSOrigins)
	}

	// Limiter config
	if source.Limiter.MaxFreeSlides != 0 {
		target.Limiter.MaxFreeSlides = source.Limiter.MaxFreeSlides
	}
	if source.Limiter.Licensed {
		target.Limiter.Licensed = true
	}
	if source.Limiter.LicenseKey != "" {
		target.Limiter.LicenseKey = source.Limiter.LicenseKey
	}

	// Export config
	if source.Export.Format != "" {
		target.Export.Format = source.Export.Format
	}
	if source.Export.OutputDir != "" {
		target.Export.OutputDir = source.Export.OutputDir
	}

	// Watcher config
	if source.Watcher.IntervalMs != 0 {
		target.Watcher.IntervalMs = source.Watcher.IntervalMs
	}
	if source.Watcher.DebounceMs != 0 {
		target.Watcher.DebounceMs = source.Watcher.DebounceMs
	}

	// Logging config
	if source.Logging.Level != "" {
		target.Logging.Level = source.Logging.Level
	}
	if source.Logging.Verbose {
		target.Logging.Verbose = true
	}
}

// deepCopy creates a deep copy of a configuration
func deepCopy(src *entities.Config) *entities.Config {
	if src == nil {
		return nil
	}

	dst := &entities.Config{
		Server: entities.ServerConfig{
			Host:            src.Server.Host,
			Port:            src.Server.Port,
			ReadTimeout:     src.Server.ReadTimeout,
			WriteTimeout:    src.Server.WriteTimeout,
			ShutdownTimeout: src.Server.ShutdownTimeout,
		},
		Limiter: entities.LimiterConfig{
			MaxFreeSlides: src.Limiter.MaxFreeSlides,
			Licensed:      src.Limiter.Licensed,
			LicenseKey:    src.Limiter.LicenseKey,
		},
		Export: entities.ExportConfig{
			Format:    src.Export.Format,
			OutputDir: src.Export.OutputDir,
		},
		Watcher: entities.WatcherConfig{
			IntervalMs: src.Watcher.IntervalMs,
			DebounceMs: src.Watcher.DebounceMs,
		},
		Logging: entities.LoggingConfig{
			Level:   src.Logging.Level,
			Verbose: src.Logging.Verbose,
		},
	}

	if src.Server.CORSOrigins != nil {
		dst.Server.CORSOrigins = make([]string, len(src.Server.CORSOrigins))
		copy(dst.Server.CORSOrigins, src.Server.CORSOrigins)
	}

	return dst
}

// Ensure ConfigMerger implements ports.ConfigMerger
var _ ports.ConfigMerger = (*ConfigMerger)(nil)
