package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "maintenance-engine", cfg.App.Name)
	assert.Equal(t, "0.0.0.0:8080", cfg.App.Addr())
	assert.Equal(t, 30*time.Second, cfg.App.RequestTimeout())
	assert.Equal(t, "main-campus", cfg.Engine.FacilityID)
	assert.Equal(t, 30, cfg.Engine.ForecastHorizonDays)
	assert.Equal(t, 60*time.Second, cfg.Engine.AnalyticsCacheTTL())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("ENGINE_FACILITY_ID", "north-campus")
	t.Setenv("ENGINE_FORECAST_HORIZON_DAYS", "90")
	t.Setenv("POSTGRES_MAX_CONNS", "25")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:9090", cfg.App.Addr())
	assert.Equal(t, "north-campus", cfg.Engine.FacilityID)
	assert.Equal(t, 90, cfg.Engine.ForecastHorizonDays)
	assert.Equal(t, int32(25), cfg.Postgres.MaxConns)
}

func TestInvalidIntFallsBack(t *testing.T) {
	t.Setenv("ENGINE_FORECAST_HORIZON_DAYS", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.Engine.ForecastHorizonDays)
}

func TestInvalidRedisDBFails(t *testing.T) {
	t.Setenv("REDIS_DB", "banana")

	_, err := Load()
	assert.Error(t, err)
}
