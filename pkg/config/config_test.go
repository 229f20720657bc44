package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Shifts-api/pkg/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 24*60, cfg.JWT.Expiration, "sessions last 24h by default")
	assert.Equal(t, "0.0.0.0:5000", cfg.HTTP.Addr())
	assert.Equal(t, config.StorePostgres, cfg.App.StoreDriver)
	assert.Equal(t, "http://localhost:5173", cfg.HTTP.FrontendURL)
	assert.False(t, cfg.Redis.Enabled())
	assert.Equal(t, 5*time.Minute, cfg.Redis.CacheTTL)
	assert.EqualValues(t, 10, cfg.DB.MaxConns)
	assert.EqualValues(t, 1, cfg.DB.MinConns)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("STORE_DRIVER", "MEMORY")
	t.Setenv("REDIS_ADDR", "localhost:6379")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, config.StoreMemory, cfg.App.StoreDriver)
	assert.True(t, cfg.Redis.Enabled())
}

func TestLoad_RequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestLoad_RejectsUnknownStore(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("STORE_DRIVER", "mongo")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestDBConfig_DSNEscapesPassword(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss/word", DBName: "shifts", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%2Fword@db:5432/shifts?sslmode=disable", c.DSN())

	c.DatabaseURL = "postgres://override"
	assert.Equal(t, "postgres://override", c.ConnectionString())
}
