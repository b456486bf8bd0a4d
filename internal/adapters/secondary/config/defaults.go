package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/fredcamaral/decksmith/internal/domain/entities"
)

// GetDefaultConfig returns the default configuration with environment overrides
func GetDefaultConfig() *entities.Config {
	return &entities.Config{
		Server: entities.ServerConfig{
			Host:            getEnvOrDefault("DECKSMITH_HOST", "localhost"),
			Port:            getEnvIntOrDefault("DECKSMITH_PORT", 4000),
			ReadTimeout:     getEnvIntOrDefault("DECKSMITH_READ_TIMEOUT", 30),
			WriteTimeout:    getEnvIntOrDefault("DECKSMITH_WRITE_TIMEOUT", 30),
			ShutdownTimeout: getEnvIntOrDefault("DECKSMITH_SHUTDOWN_TIMEOUT", 5),
			CORSOrigins: getEnvSliceOrDefault("DECKSMITH_CORS_ORIGINS", []string{
				"http://localhost:3000",
				"http://127.0.0.1:3000",
				"http://localhost:4000",
				"http://127.0.0.1:4000",
			}),
		},
		Limiter: entities.LimiterConfig{
			MaxFreeSlides: getEnvIntOrDefault("DECKSMITH_MAX_FREE_SLIDES", entities.DefaultMaxFreeSlides),
			Licensed:      getEnvBoolOrDefault("DECKSMITH_LICENSED", false),
			LicenseKey:    getEnvOrDefault("DECKSMITH_LICENSE_KEY", ""),
		},
		Export: entities.ExportConfig{
			Format:    getEnvOrDefault("DECKSMITH_EXPORT_FORMAT", "markdown"),
			OutputDir: getEnvOrDefault("DECKSMITH_EXPORT_DIR", "."),
		},
		Watcher: entities.WatcherConfig{
			IntervalMs: getEnvIntOrDefault("DECKSMITH_WATCH_INTERVAL", 200),
			DebounceMs: getEnvIntOrDefault("DECKSMITH_WATCH_DEBOUNCE", 500),
		},
		Logging: entities.LoggingConfig{
			Level:   getEnvOrDefault("DECKSMITH_LOG_LEVEL", "info"),
			Verbose: getEnvBoolOrDefault("DECKSMITH_LOG_VERBOSE", false),
		},
	}
}

// getEnvOrDefault returns environment variable value or default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvIntOrDefault returns environment variable as int or default
func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvBoolOrDefault returns environment variable as bool or default
func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvSliceOrDefault returns environment variable as comma-separated slice or default
func getEnvSliceOrDefault(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		result := make([]string, 0, len(parts))
		for _, part := range parts {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return defaultValue
}
