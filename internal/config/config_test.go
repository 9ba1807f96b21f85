package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"ECOSTATS_DB", "ECOSTATS_DATASET", "ECOSTATS_STATION_STORE", "DATABASE_URL",
	"ECOSTATS_SESSION_STORE", "REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB", "ECOSTATS_SESSION_TTL",
	"PORT", "API_BEARER_TOKEN", "ECOSTATS_LOG_LEVEL", "ECOSTATS_LOG_FORMAT", "ECOSTATS_STRICT_STATS",
}

// cleanEnv clears every variable Load reads and runs the test from an empty
// directory so a stray .env cannot leak in.
func cleanEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
}

func TestLoad_Defaults(t *testing.T) {
	cleanEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, StoreSQLite, cfg.StationStore)
	assert.Equal(t, StoreMemory, cfg.SessionStore)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, ":8080", cfg.ListenAddr())
	assert.Equal(t, "info", cfg.LogLevel)
	assert.True(t, cfg.StrictStats)
	assert.Equal(t, filepath.Join(os.Getenv("HOME"), ".ecostats", "ecostats.db"), cfg.DBPath)
}

func TestLoad_Overrides(t *testing.T) {
	cleanEnv(t)
	t.Setenv("ECOSTATS_DB", "/tmp/x.db")
	t.Setenv("ECOSTATS_SESSION_STORE", "REDIS")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("ECOSTATS_SESSION_TTL", "90m")
	t.Setenv("PORT", "9000")
	t.Setenv("ECOSTATS_STRICT_STATS", "false")
	t.Setenv("ECOSTATS_LOG_FORMAT", "JSON")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/x.db", cfg.DBPath)
	assert.Equal(t, StoreRedis, cfg.SessionStore)
	assert.Equal(t, 2, cfg.RedisDB)
	assert.Equal(t, 90*time.Minute, cfg.SessionTTL)
	assert.Equal(t, ":9000", cfg.ListenAddr())
	assert.False(t, cfg.StrictStats)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoad_ReadsDotEnv(t *testing.T) {
	cleanEnv(t)
	require.NoError(t, os.Unsetenv("API_BEARER_TOKEN"))
	require.NoError(t, os.WriteFile(".env", []byte("API_BEARER_TOKEN=secret\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("API_BEARER_TOKEN") })

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "secret", cfg.BearerToken)
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string]map[string]string{
		"port":          {"PORT": "http"},
		"port range":    {"PORT": "70000"},
		"ttl":           {"ECOSTATS_SESSION_TTL": "soon"},
		"negative ttl":  {"ECOSTATS_SESSION_TTL": "-1m"},
		"redis db":      {"REDIS_DB": "-1"},
		"strict":        {"ECOSTATS_STRICT_STATS": "maybe"},
		"session store": {"ECOSTATS_SESSION_STORE": "disk"},
		"station store": {"ECOSTATS_STATION_STORE": "mongo"},
		"redis addr":    {"ECOSTATS_SESSION_STORE": "redis"},
		"postgres url":  {"ECOSTATS_STATION_STORE": "postgres"},
	}
	for name, vars := range cases {
		t.Run(name, func(t *testing.T) {
			cleanEnv(t)
			for k, v := range vars {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
