package entities

import (
	"errors"
	"fmt"
	"net"
	"strings"
	"time"
)

// DefaultMaxFreeSlides is the free-tier slide cap applied when the limiter
// section does not override it.
const DefaultMaxFreeSlides = 6

// Config represents the complete application configuration
type Config struct {
	Server  ServerConfig  `toml:"server"`
	Limiter LimiterConfig `toml:"limiter"`
	Export  ExportConfig  `toml:"export"`
	Watcher WatcherConfig `toml:"watcher"`
	Logging LoggingConfig `toml:"logging"`
}

// Validate validates the entire configuration
func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("server config: %w", err)
	}

	if err := c.Limiter.Validate(); err != nil {
		return fmt.Errorf("limiter config: %w", err)
	}

	if err := c.Export.Validate(); err != nil {
		return fmt.Errorf("export config: %w", err)
	}

	if err := c.Watcher.Validate(); err != nil {
		return fmt.Errorf("watcher config: %w", err)
	}

	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging config: %w", err)
	}

	return nil
}

// ServerConfig contains HTTP preview server configuration
type ServerConfig struct {
	Host            string   `toml:"host"`
	Port            int      `toml:"port"`
	ReadTimeout     int      `toml:"read_timeout"`
	WriteTimeout    int      `toml:"write_timeout"`
	ShutdownTimeout int      `toml:"shutdown_timeout"`
	CORSOrigins     []string `toml:"cors_origins"`
}

// Validate validates server configuration
func (s ServerConfig) Validate() error {
	if s.Port < 0 || s.Port > 65535 {
		return errors.New("port must be between 0 and 65535")
	}

	if s.Host != "" {
		if ip := net.ParseIP(s.Host); ip == nil {
			if s.Host != "localhost" && strings.Contains(s.Host, " ") {
				return fmt.Errorf("invalid host: %s", s.Host)
			}
		}
	}

	if s.ReadTimeout < 0 {
		return errors.New("read timeout must be non-negative")
	}

	if s.WriteTimeout < 0 {
		return errors.New("write timeout must be non-negative")
	}

	if s.ShutdownTimeout < 0 {
		return errors.New("shutdown timeout must be non-negative")
	}

	for _, origin := range s.CORSOrigins {
		if origin == "" {
			return errors.New("CORS origin cannot be empty")
		}
		if origin == "*" {
			continue
		}
		if !strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://") {
			return fmt.Errorf("invalid CORS origin format: %s (must start with http:// or https://)", origin)
		}
	}

	return nil
}

// GetReadTimeout returns the read timeout as a duration
func (s ServerConfig) GetReadTimeout() time.Duration {
	if s.ReadTimeout <= 0 {
		return 30 * time.Second
	}
	return time.Duration(s.ReadTimeout) * time.Second
}

// GetWriteTimeout returns the write timeout as a duration
func (s ServerConfig) GetWriteTimeout() time.Duration {
	if s.WriteTimeout <= 0 {
		return 30 * time.Second
	}
	return time.Duration(s.WriteTimeout) * time.Second
}

// GetShutdownTimeout returns the shutdown timeout as a duration
func (s ServerConfig) GetShutdownTimeout() time.Duration {
	if s.ShutdownTimeout <= 0 {
		return 5 * time.Second
	}
	return time.Duration(s.ShutdownTimeout) * time.Second
}

// GetCORSOrigins returns CORS origins with defaults if empty
func (s ServerConfig) GetCORSOrigins() []string {
	if len(s.CORSOrigins) == 0 {
		return []string{
			"http://localhost:3000",
			"http://127.0.0.1:3000",
			"http://localhost:4000",
			"http://127.0.0.1:4000",
		}
	}
	return s.CORSOrigins
}

// LimiterConfig contains free-tier limiter configuration. Licensed short
// circuits the entitlement check entirely; LicenseKey feeds the static
// entitlement checker.
type LimiterConfig struct {
	MaxFreeSlides int    `toml:"max_free_slides"`
	Licensed      bool   `toml:"licensed"`
	LicenseKey    string `toml:"license_key"`
}

// Validate validates limiter configuration. Zero means "use the default
// cap" so partial config files stay valid.
func (l LimiterConfig) Validate() error {
	if l.MaxFreeSlides < 0 {
		return errors.New("max free slides cannot be negative")
	}
	return nil
}

// GetMaxFreeSlides returns the configured cap, falling back to the default.
func (l LimiterConfig) GetMaxFreeSlides() int {
	if l.MaxFreeSlides < 1 {
		return DefaultMaxFreeSlides
	}
	return l.MaxFreeSlides
}

// ExportConfig contains deck export configuration
type ExportConfig struct {
	Format    string `toml:"format"`
	OutputDir string `toml:"output_dir"`
}

// Validate validates export configuration
func (e ExportConfig) Validate() error {
	switch e.Format {
	case "", "markdown", "json", "pdf":
		return nil
	default:
		return fmt.Errorf("unsupported export format: %s", e.Format)
	}
}

// WatcherConfig contains file watcher configuration
type WatcherConfig struct {
	IntervalMs int `toml:"interval_ms"`
	DebounceMs int `toml:"debounce_ms"`
}

// Validate validates watcher configuration
func (w WatcherConfig) Validate() error {
	if w.IntervalMs != 0 && w.IntervalMs < 50 {
		return errors.New("watcher interval must be at least 50ms")
	}

	if w.DebounceMs < 0 {
		return errors.New("debounce time must be non-negative")
	}

	return nil
}

// GetInterval returns the watcher poll interval as a duration
func (w WatcherConfig) GetInterval() time.Duration {
	if w.IntervalMs <= 0 {
		return 200 * time.Millisecond
	}
	return time.Duration(w.IntervalMs) * time.Millisecond
}

// GetDebounce returns the watcher debounce window as a duration
func (w WatcherConfig) GetDebounce() time.Duration {
	if w.DebounceMs <= 0 {
		return 500 * time.Millisecond
	}
	return time.Duration(w.DebounceMs) * time.Millisecond
}

// LogLevel represents logging level
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level   string `toml:"level"`
	Verbose bool   `toml:"verbose"`
}

// Validate validates logging configuration
func (l LoggingConfig) Validate() error {
	switch LogLevel(l.Level) {
	case "", LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
		return nil
	default:
		return fmt.Errorf("invalid log level: %s", l.Level)
	}
}

// GetLevel returns the configured level, defaulting to info.
func (l LoggingConfig) GetLevel() LogLevel {
	if l.Level == "" {
		return LogLevelInfo
	}
	return LogLevel(l.Level)
}
