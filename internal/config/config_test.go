package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "JWT_SECRET", "APP_URL",
		"STORAGE_DRIVER", "SQLITE_PATH",
		"DB_USER", "DB_PASSWORD", "DB_HOST", "DB_PORT", "DB_NAME",
		"REDIS_ADDR",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadRequiresJWTSecret(t *testing.T) {
	clearEnv(t)
	_, err := Load()
	assert.Error(t, err)
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "sqlite", cfg.StorageDriver)
	assert.Equal(t, "smatico.db", cfg.SQLitePath)
	assert.Equal(t, "http://localhost:8080", cfg.AppURL)
	assert.Empty(t, cfg.RedisAddr)
}

func TestLoadPostgresRequiresDBVars(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("STORAGE_DRIVER", "postgres")

	_, err := Load()
	assert.Error(t, err)

	t.Setenv("DB_USER", "smatico")
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_NAME", "smatico")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "5432", cfg.DBPort)
	assert.Equal(t, "postgres://smatico:@localhost:5432/smatico", cfg.PostgresDSN())
}
