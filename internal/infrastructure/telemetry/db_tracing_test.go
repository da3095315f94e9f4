package telemetry_test

import (
	"testing"
	"time"

	"github.com/maxwelladwale/coltech/internal/infrastructure/config"
	"github.com/maxwelladwale/coltech/internal/infrastructure/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestDBTracingConfigFrom(t *testing.T) {
	t.Run("requires telemetry to be enabled", func(t *testing.T) {
		cfg := telemetry.DBTracingConfigFrom(
			config.TelemetryConfig{Enabled: false, DBTraceEnabled: true},
			config.DatabaseConfig{Driver: "sqlite"},
		)
		assert.False(t, cfg.Enabled)
		assert.Equal(t, "sqlite", cfg.DBSystem)
		assert.Equal(t, 200*time.Millisecond, cfg.SlowQueryThresh)
	})

	t.Run("maps postgres and threshold", func(t *testing.T) {
		cfg := telemetry.DBTracingConfigFrom(
			config.TelemetryConfig{Enabled: true, DBTraceEnabled: true, DBSlowQueryThresh: time.Second},
			config.DatabaseConfig{Driver: "postgres"},
		)
		assert.True(t, cfg.Enabled)
		assert.Equal(t, "postgresql", cfg.DBSystem)
		assert.Equal(t, time.Second, cfg.SlowQueryThresh)
	})
}

func TestDBTracingPlugin_RegisterOtelGorm(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	t.Run("disabled is a no-op", func(t *testing.T) {
		plugin := telemetry.NewDBTracingPlugin(telemetry.DefaultDBTracingConfig(), zaptest.NewLogger(t))
		require.NoError(t, plugin.RegisterOtelGorm(db))
		assert.Nil(t, db.Callback().Query().Get("otel_timing:before_query"))
	})

	t.Run("enabled registers callbacks", func(t *testing.T) {
		cfg := telemetry.DefaultDBTracingConfig()
		cfg.Enabled = true
		plugin := telemetry.NewDBTracingPlugin(cfg, zaptest.NewLogger(t))
		require.NoError(t, plugin.RegisterOtelGorm(db))

		assert.NotNil(t, db.Callback().Query().Get("otel_timing:before_query"))
		assert.NotNil(t, db.Callback().Create().Get("otel_timing:after_create"))

		var one int
		require.NoError(t, db.Raw("SELECT 1").Scan(&one).Error)
		assert.Equal(t, 1, one)
	})
}
