// Package config reads runtime settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Backends for the station and session stores.
const (
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
	StoreMemory   = "memory"
	StoreRedis    = "redis"
)

const (
	defaultPort       = "8080"
	defaultSessionTTL = 24 * time.Hour
	defaultLogLevel   = "info"
	defaultLogFormat  = "console"
)

// Config holds runtime configuration for the CLI and the HTTP server.
type Config struct {
	DBPath       string
	DatasetPath  string
	StationStore string
	DatabaseURL  string

	SessionStore  string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	SessionTTL    time.Duration

	Port        string
	BearerToken string

	LogLevel    string
	LogFormat   string
	StrictStats bool
}

// Default returns the configuration used when no variable is set. DBPath
// is resolved by Load since it depends on the home directory.
func Default() Config {
	return Config{
		StationStore: StoreSQLite,
		SessionStore: StoreMemory,
		SessionTTL:   defaultSessionTTL,
		Port:         defaultPort,
		LogLevel:     defaultLogLevel,
		LogFormat:    defaultLogFormat,
		StrictStats:  true,
	}
}

// Load reads configuration from environment variables (optionally .env).
// Variables already set in the environment win over the file.
func Load() (Config, error) {
	_ = godotenv.Load(".env")

	cfg := Default()

	cfg.DBPath = env("ECOSTATS_DB")
	if cfg.DBPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return cfg, fmt.Errorf("finding home directory: %w", err)
		}
		cfg.DBPath = filepath.Join(home, ".ecostats", "ecostats.db")
	}
	cfg.DatasetPath = env("ECOSTATS_DATASET")
	cfg.DatabaseURL = env("DATABASE_URL")
	cfg.RedisAddr = env("REDIS_ADDR")
	cfg.RedisPassword = os.Getenv("REDIS_PASSWORD")
	cfg.BearerToken = env("API_BEARER_TOKEN")

	if v := strings.ToLower(env("ECOSTATS_STATION_STORE")); v != "" {
		cfg.StationStore = v
	}
	switch cfg.StationStore {
	case StoreSQLite:
	case StorePostgres:
		if cfg.DatabaseURL == "" {
			return cfg, errors.New("DATABASE_URL is required for the postgres station store")
		}
	default:
		return cfg, fmt.Errorf("invalid ECOSTATS_STATION_STORE %q", cfg.StationStore)
	}

	if v := strings.ToLower(env("ECOSTATS_SESSION_STORE")); v != "" {
		cfg.SessionStore = v
	}
	switch cfg.SessionStore {
	case StoreMemory:
	case StoreRedis:
		if cfg.RedisAddr == "" {
			return cfg, errors.New("REDIS_ADDR is required for the redis session store")
		}
	default:
		return cfg, fmt.Errorf("invalid ECOSTATS_SESSION_STORE %q", cfg.SessionStore)
	}

	if v := env("REDIS_DB"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return cfg, fmt.Errorf("invalid REDIS_DB %q", v)
		}
		cfg.RedisDB = n
	}

	if v := env("ECOSTATS_SESSION_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return cfg, fmt.Errorf("invalid ECOSTATS_SESSION_TTL: %w", err)
		}
		if d < 0 {
			return cfg, fmt.Errorf("invalid ECOSTATS_SESSION_TTL: negative duration %s", d)
		}
		cfg.SessionTTL = d
	}

	if v := env("PORT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > 65535 {
			return cfg, fmt.Errorf("invalid PORT %q", v)
		}
		cfg.Port = v
	}

	if v := env("ECOSTATS_LOG_LEVEL"); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v := env("ECOSTATS_LOG_FORMAT"); v != "" {
		cfg.LogFormat = strings.ToLower(v)
	}

	if v := env("ECOSTATS_STRICT_STATS"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return cfg, fmt.Errorf("invalid ECOSTATS_STRICT_STATS: %w", err)
		}
		cfg.StrictStats = b
	}

	return cfg, nil
}

// ListenAddr is the address the HTTP server binds to.
func (c Config) ListenAddr() string {
	return ":" + c.Port
}

func env(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}
