package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// OpenPool connects to PostgreSQL, verifies the connection and applies the
// station schema.
func OpenPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("opening postgres pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging postgres: %w", err)
	}
	if err := MigratePostgres(ctx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("running postgres migrations: %w", err)
	}
	return pool, nil
}

// MigratePostgres creates the ecostats schema and its tables.
func MigratePostgres(ctx context.Context, pool *pgxpool.Pool) error {
	for i, stmt := range pgMigrations {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("postgres migration %d: %w", i, err)
		}
	}
	return nil
}

var pgMigrations = []string{
	`CREATE SCHEMA IF NOT EXISTS ecostats`,

	`CREATE TABLE IF NOT EXISTS ecostats.stations (
		name       TEXT PRIMARY KEY,
		latitude   DOUBLE PRECISION NOT NULL,
		longitude  DOUBLE PRECISION NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS ecostats.station_stats (
		station_name TEXT NOT NULL REFERENCES ecostats.stations(name) ON DELETE CASCADE,
		variable     TEXT NOT NULL,
		max_value    DOUBLE PRECISION NOT NULL,
		min_value    DOUBLE PRECISION NOT NULL,
		mean_value   DOUBLE PRECISION NOT NULL,
		sum_value    DOUBLE PRECISION,
		unit         TEXT NOT NULL,
		sample_count INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (station_name, variable)
	)`,

	`CREATE TABLE IF NOT EXISTS ecostats.dataset_imports (
		id          TEXT PRIMARY KEY,
		source      TEXT NOT NULL,
		stations    INTEGER NOT NULL,
		readings    INTEGER NOT NULL,
		imported_at TIMESTAMPTZ NOT NULL
	)`,
}
