package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Statements are idempotent so the full
// list is replayed on every open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE ADD COLUMN has no IF NOT EXISTS in SQLite.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS stations (
		name       TEXT PRIMARY KEY,
		latitude   REAL NOT NULL,
		longitude  REAL NOT NULL,
		created_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS station_stats (
		station_name TEXT NOT NULL REFERENCES stations(name) ON DELETE CASCADE,
		variable     TEXT NOT NULL,
		max_value    REAL NOT NULL,
		min_value    REAL NOT NULL,
		mean_value   REAL NOT NULL,
		sum_value    REAL,
		unit         TEXT NOT NULL,
		PRIMARY KEY (station_name, variable)
	)`,

	`ALTER TABLE station_stats ADD COLUMN sample_count INTEGER NOT NULL DEFAULT 0`,

	`CREATE INDEX IF NOT EXISTS idx_station_stats_variable ON station_stats(variable)`,

	`CREATE TABLE IF NOT EXISTS dataset_imports (
		id          TEXT PRIMARY KEY,
		source      TEXT NOT NULL,
		stations    INTEGER NOT NULL,
		readings    INTEGER NOT NULL,
		imported_at TEXT NOT NULL
	)`,
}
