package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/alexanderramin/ecostats/internal/domain"
)

const pgSelectProfilesSQL = `
SELECT s.name, s.latitude, s.longitude,
       st.variable, st.max_value, st.min_value, st.mean_value, st.sum_value, st.unit, st.sample_count
FROM ecostats.stations s
LEFT JOIN ecostats.station_stats st ON st.station_name = s.name`

const pgUpsertStationSQL = `INSERT INTO ecostats.stations (name, latitude, longitude, created_at)
VALUES ($1,$2,$3,NOW())
ON CONFLICT (name) DO UPDATE
SET latitude = EXCLUDED.latitude,
    longitude = EXCLUDED.longitude`

const pgUpsertStatSQL = `INSERT INTO ecostats.station_stats (station_name, variable, max_value, min_value, mean_value, sum_value, unit, sample_count)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
ON CONFLICT (station_name, variable) DO UPDATE
SET max_value = EXCLUDED.max_value,
    min_value = EXCLUDED.min_value,
    mean_value = EXCLUDED.mean_value,
    sum_value = EXCLUDED.sum_value,
    unit = EXCLUDED.unit,
    sample_count = EXCLUDED.sample_count`

// PostgresStationRepo implements StationRepo on a pgx pool.
type PostgresStationRepo struct {
	pool *pgxpool.Pool
}

// NewPostgresStationRepo creates a PostgresStationRepo.
func NewPostgresStationRepo(pool *pgxpool.Pool) *PostgresStationRepo {
	return &PostgresStationRepo{pool: pool}
}

func (r *PostgresStationRepo) ReplaceAll(ctx context.Context, profiles []domain.StationProfile, imp domain.DatasetImport) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	if _, err := tx.Exec(ctx, `DELETE FROM ecostats.stations`); err != nil {
		return fmt.Errorf("clearing stations: %w", err)
	}

	batch := &pgx.Batch{}
	for _, p := range profiles {
		batch.Queue(pgUpsertStationSQL, p.Name, p.Latitude, p.Longitude)
		for _, key := range sortedStats(p) {
			s := p.Stats[key]
			batch.Queue(pgUpsertStatSQL, p.Name, string(key), s.Max, s.Min, s.Mean, s.Sum, s.Unit, s.Count)
		}
	}
	batch.Queue(`INSERT INTO ecostats.dataset_imports (id, source, stations, readings, imported_at) VALUES ($1,$2,$3,$4,$5)`,
		imp.ID, imp.Source, imp.Stations, imp.Readings, imp.ImportedAt.UTC())

	res := tx.SendBatch(ctx, batch)
	for i := 0; i < batch.Len(); i++ {
		if _, err := res.Exec(); err != nil {
			res.Close()
			return fmt.Errorf("writing station batch item %d: %w", i, err)
		}
	}
	if err := res.Close(); err != nil {
		return fmt.Errorf("closing station batch: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

func (r *PostgresStationRepo) List(ctx context.Context) ([]domain.StationProfile, error) {
	rows, err := r.pool.Query(ctx, pgSelectProfilesSQL+` ORDER BY s.name`)
	if err != nil {
		return nil, fmt.Errorf("listing stations: %w", err)
	}
	defer rows.Close()
	return scanPgProfiles(rows)
}

func (r *PostgresStationRepo) GetByName(ctx context.Context, name string) (*domain.StationProfile, error) {
	rows, err := r.pool.Query(ctx, pgSelectProfilesSQL+` WHERE s.name = $1`, name)
	if err != nil {
		return nil, fmt.Errorf("getting station: %w", err)
	}
	defer rows.Close()

	profiles, err := scanPgProfiles(rows)
	if err != nil {
		return nil, err
	}
	if len(profiles) == 0 {
		return nil, fmt.Errorf("station %s: %w", name, ErrNotFound)
	}
	return &profiles[0], nil
}

func (r *PostgresStationRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM ecostats.stations`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting stations: %w", err)
	}
	return n, nil
}

func (r *PostgresStationRepo) LastImport(ctx context.Context) (*domain.DatasetImport, error) {
	var imp domain.DatasetImport
	err := r.pool.QueryRow(ctx,
		`SELECT id, source, stations, readings, imported_at FROM ecostats.dataset_imports ORDER BY imported_at DESC LIMIT 1`,
	).Scan(&imp.ID, &imp.Source, &imp.Stations, &imp.Readings, &imp.ImportedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("dataset import: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning dataset import: %w", err)
	}
	return &imp, nil
}

func scanPgProfiles(rows pgx.Rows) ([]domain.StationProfile, error) {
	a := newProfileAssembler()
	for rows.Next() {
		var r statRow
		if err := rows.Scan(&r.Name, &r.Latitude, &r.Longitude,
			&r.Variable, &r.Max, &r.Min, &r.Mean, &r.Sum, &r.Unit, &r.Count); err != nil {
			return nil, fmt.Errorf("scanning station row: %w", err)
		}
		a.add(r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating station rows: %w", err)
	}
	return a.profiles(), nil
}
