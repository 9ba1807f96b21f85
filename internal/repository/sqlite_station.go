package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/ecostats/internal/db"
	"github.com/alexanderramin/ecostats/internal/domain"
)

const selectProfilesSQL = `SELECT s.name, s.latitude, s.longitude,
		st.variable, st.max_value, st.min_value, st.mean_value, st.sum_value, st.unit, st.sample_count
	FROM stations s
	LEFT JOIN station_stats st ON st.station_name = s.name`

// SQLiteStationRepo implements StationRepo using a SQLite database.
type SQLiteStationRepo struct {
	db  db.DBTX
	uow db.UnitOfWork
}

// NewSQLiteStationRepo creates a SQLiteStationRepo whose writes run in
// transactions on database.
func NewSQLiteStationRepo(database *sql.DB) *SQLiteStationRepo {
	return &SQLiteStationRepo{db: database, uow: db.NewSQLiteUnitOfWork(database)}
}

// NewSQLiteStationRepoWithUoW lets callers supply the transaction boundary.
func NewSQLiteStationRepoWithUoW(conn db.DBTX, uow db.UnitOfWork) *SQLiteStationRepo {
	return &SQLiteStationRepo{db: conn, uow: uow}
}

func (r *SQLiteStationRepo) ReplaceAll(ctx context.Context, profiles []domain.StationProfile, imp domain.DatasetImport) error {
	return r.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM stations`); err != nil {
			return fmt.Errorf("clearing stations: %w", err)
		}

		now := nowUTC()
		for _, p := range profiles {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO stations (name, latitude, longitude, created_at) VALUES (?, ?, ?, ?)`,
				p.Name, p.Latitude, p.Longitude, now,
			); err != nil {
				return fmt.Errorf("inserting station %s: %w", p.Name, err)
			}

			for _, key := range sortedStats(p) {
				s := p.Stats[key]
				if _, err := tx.ExecContext(ctx,
					`INSERT INTO station_stats (station_name, variable, max_value, min_value, mean_value, sum_value, unit, sample_count)
					VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
					p.Name, string(key), s.Max, s.Min, s.Mean, nullableFloat(s.Sum), s.Unit, s.Count,
				); err != nil {
					return fmt.Errorf("inserting %s stats for %s: %w", key, p.Name, err)
				}
			}
		}

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO dataset_imports (id, source, stations, readings, imported_at) VALUES (?, ?, ?, ?, ?)`,
			imp.ID, imp.Source, imp.Stations, imp.Readings, imp.ImportedAt.UTC().Format(time.RFC3339),
		); err != nil {
			return fmt.Errorf("recording import: %w", err)
		}
		return nil
	})
}

func (r *SQLiteStationRepo) List(ctx context.Context) ([]domain.StationProfile, error) {
	rows, err := r.db.QueryContext(ctx, selectProfilesSQL+` ORDER BY s.name`)
	if err != nil {
		return nil, fmt.Errorf("listing stations: %w", err)
	}
	defer rows.Close()
	return scanProfiles(rows)
}

func (r *SQLiteStationRepo) GetByName(ctx context.Context, name string) (*domain.StationProfile, error) {
	rows, err := r.db.QueryContext(ctx, selectProfilesSQL+` WHERE s.name = ?`, name)
	if err != nil {
		return nil, fmt.Errorf("getting station: %w", err)
	}
	defer rows.Close()

	profiles, err := scanProfiles(rows)
	if err != nil {
		return nil, err
	}
	if len(profiles) == 0 {
		return nil, fmt.Errorf("station %s: %w", name, ErrNotFound)
	}
	return &profiles[0], nil
}

func (r *SQLiteStationRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM stations`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting stations: %w", err)
	}
	return n, nil
}

func (r *SQLiteStationRepo) LastImport(ctx context.Context) (*domain.DatasetImport, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, source, stations, readings, imported_at FROM dataset_imports ORDER BY imported_at DESC, rowid DESC LIMIT 1`)

	var imp domain.DatasetImport
	var importedAt string
	if err := row.Scan(&imp.ID, &imp.Source, &imp.Stations, &imp.Readings, &importedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("dataset import: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning dataset import: %w", err)
	}
	t, err := time.Parse(time.RFC3339, importedAt)
	if err != nil {
		return nil, fmt.Errorf("parsing import time: %w", err)
	}
	imp.ImportedAt = t
	return &imp, nil
}

func scanProfiles(rows *sql.Rows) ([]domain.StationProfile, error) {
	a := newProfileAssembler()
	for rows.Next() {
		var r statRow
		var variable, unit sql.NullString
		var maxV, minV, meanV, sumV sql.NullFloat64
		var count sql.NullInt64
		if err := rows.Scan(&r.Name, &r.Latitude, &r.Longitude,
			&variable, &maxV, &minV, &meanV, &sumV, &unit, &count); err != nil {
			return nil, fmt.Errorf("scanning station row: %w", err)
		}
		r.Variable = nullString(variable)
		r.Unit = nullString(unit)
		r.Max = nullFloat(maxV)
		r.Min = nullFloat(minV)
		r.Mean = nullFloat(meanV)
		r.Sum = nullFloat(sumV)
		if count.Valid {
			c := int(count.Int64)
			r.Count = &c
		}
		a.add(r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating station rows: %w", err)
	}
	return a.profiles(), nil
}

// nullableFloat converts a *float64 to a value suitable for SQLite storage.
func nullableFloat(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

func nullFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

func nullString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}
