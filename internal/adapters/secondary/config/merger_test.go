package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fredcamaral/decksmith/internal/domain/entities"
)

func TestConfigMerger_Merge(t *testing.T) {
	merger := NewConfigMerger()

	t.Run("later configs take precedence", func(t *testing.T) {
		global := &entities.Config{
			Server:  entities.ServerConfig{Host: "localhost", Port: 4000},
			Limiter: entities.LimiterConfig{MaxFreeSlides: 6},
			Export:  entities.ExportConfig{Format: "markdown", OutputDir: "."},
		}
		local := &entities.Config{
			Server: entities.ServerConfig{Port: 9000},
			Export: entities.ExportConfig{Format: "pdf"},
		}

		merged := merger.Merge(global, local)

		assert.Equal(t, "localhost", merged.Server.Host, "unset local values keep the global")
		assert.Equal(t, 9000, merged.Server.Port)
		assert.Equal(t, 6, merged.Limiter.MaxFreeSlides)
		assert.Equal(t, "pdf", merged.Export.Format)
		assert.Equal(t, ".", merged.Export.OutputDir)
	})

	t.Run("nil configs are skipped", func(t *testing.T) {
		base := &entities.Config{Server: entities.ServerConfig{Port: 4000}}

		merged := merger.Merge(base, nil)

		assert.Equal(t, 4000, merged.Server.Port)
	})

	t.Run("merge does not mutate inputs", func(t *testing.T) {
		global := &entities.Config{Server: entities.ServerConfig{Port: 4000}}
		local := &entities.Config{Server: entities.ServerConfig{Port: 9000}}

		_ = merger.Merge(global, local)

		assert.Equal(t, 4000, global.Server.Port)
	})

	t.Run("licensed merges one-way", func(t *testing.T) {
		licensed := &entities.Config{Limiter: entities.LimiterConfig{Licensed: true}}
		sparse := &entities.Config{Server: entities.ServerConfig{Port: 9000}}

		merged := merger.Merge(licensed, sparse)

		assert.True(t, merged.Limiter.Licensed, "a sparse local file must not revoke the license")
	})

	t.Run("cors origins replaced wholesale", func(t *testing.T) {
		global := &entities.Config{Server: entities.ServerConfig{
			CORSOrigins: []string{"http://localhost:3000"},
		}}
		local := &entities.Config{Server: entities.ServerConfig{
			CORSOrigins: []string{"https://deck.example.com"},
		}}

		merged := merger.Merge(global, local)

		assert.Equal(t, []string{"https://deck.example.com"}, merged.Server.CORSOrigins)
	})

	t.Run("no configs yield defaults", func(t *testing.T) {
		merged := merger.Merge()

		require.NotNil(t, merged)
		assert.Equal(t, "localhost", merged.Server.Host)
	})
}

func TestConfigMerger_ApplyFlags(t *testing.T) {
	merger := NewConfigMerger()
	base := &entities.Config{
		Server:  entities.ServerConfig{Host: "localhost", Port: 4000},
		Limiter: entities.LimiterConfig{MaxFreeSlides: 6},
		Export:  entities.ExportConfig{Format: "markdown"},
		Logging: entities.LoggingConfig{Level: "info"},
	}

	t.Run("flags override config", func(t *testing.T) {
		result := merger.ApplyFlags(base, map[string]interface{}{
			"port":            8080,
			"host":            "0.0.0.0",
			"format":          "json",
			"max-free-slides": 10,
		})

		assert.Equal(t, 8080, result.Server.Port)
		assert.Equal(t, "0.0.0.0", result.Server.Host)
		assert.Equal(t, "json", result.Export.Format)
		assert.Equal(t, 10, result.Limiter.MaxFreeSlides)
		assert.Equal(t, 4000, base.Server.Port, "base config is untouched")
	})

	t.Run("zero and empty flags are ignored", func(t *testing.T) {
		result := merger.ApplyFlags(base, map[string]interface{}{
			"port": 0,
			"host": "",
		})

		assert.Equal(t, 4000, result.Server.Port)
		assert.Equal(t, "localhost", result.Server.Host)
	})

	t.Run("verbose raises the log level", func(t *testing.T) {
		result := merger.ApplyFlags(base, map[string]interface{}{"verbose": true})

		assert.True(t, result.Logging.Verbose)
		assert.Equal(t, string(entities.LogLevelDebug), result.Logging.Level)
	})
}

func TestConfigMerger_ApplyEnvVars(t *testing.T) {
	merger := NewConfigMerger()
	base := &entities.Config{
		Server:  entities.ServerConfig{Host: "localhost", Port: 4000},
		Limiter: entities.LimiterConfig{MaxFreeSlides: 6},
	}

	t.Run("environment overrides config", func(t *testing.T) {
		t.Setenv("DECKSMITH_PORT", "9090")
		t.Setenv("DECKSMITH_MAX_FREE_SLIDES", "8")
		t.Setenv("DECKSMITH_LICENSE_KEY", "DS-TEST")

		result := merger.ApplyEnvVars(base)

		assert.Equal(t, 9090, result.Server.Port)
		assert.Equal(t, 8, result.Limiter.MaxFreeSlides)
		assert.Equal(t, "DS-TEST", result.Limiter.LicenseKey)
	})

	t.Run("malformed numbers are ignored", func(t *testing.T) {
		t.Setenv("DECKSMITH_PORT", "not-a-number")

		result := merger.ApplyEnvVars(base)

		assert.Equal(t, 4000, result.Server.Port)
	})
}
