package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alexanderramin/ecostats/internal/domain"
	"github.com/alexanderramin/ecostats/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStationRepo_ReplaceAllAndList(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteStationRepo(database)
	ctx := context.Background()

	profiles := []domain.StationProfile{
		testutil.NewTestProfile("Zeta", testutil.WithRainfall(2.4, 0, 1.05, 4.2)),
		testutil.NewTestProfile("Alfa", testutil.WithCoordinates(7.1393, -73.121), testutil.WithStats(domain.VarPM25, 58.3, 15.4, 32.3)),
		{Name: "Vacía", Latitude: 1, Longitude: 2},
	}
	require.NoError(t, repo.ReplaceAll(ctx, profiles, testutil.NewTestImport("test.csv", profiles)))

	got, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "Alfa", got[0].Name, "listed by name")
	assert.InDelta(t, 7.1393, got[0].Latitude, 1e-9)
	assert.InDelta(t, 58.3, got[0].Stats[domain.VarPM25].Max, 1e-9)
	assert.Nil(t, got[0].Stats[domain.VarTemperature].Sum)

	zeta := got[2]
	require.NotNil(t, zeta.Stats[domain.VarPrecipitation].Sum)
	assert.InDelta(t, 4.2, *zeta.Stats[domain.VarPrecipitation].Sum, 1e-9)
	assert.Equal(t, 4, zeta.Stats[domain.VarPrecipitation].Count)

	assert.Empty(t, got[1].Stats, "station without readings keeps an empty stats map")

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestStationRepo_ReplaceAllDropsOldStations(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteStationRepo(database)
	ctx := context.Background()

	first := []domain.StationProfile{testutil.NewTestProfile("Old")}
	require.NoError(t, repo.ReplaceAll(ctx, first, testutil.NewTestImport("a.csv", first)))

	second := []domain.StationProfile{testutil.NewTestProfile("New")}
	require.NoError(t, repo.ReplaceAll(ctx, second, testutil.NewTestImport("b.csv", second)))

	_, err := repo.GetByName(ctx, "Old")
	assert.ErrorIs(t, err, ErrNotFound)

	p, err := repo.GetByName(ctx, "New")
	require.NoError(t, err)
	assert.Equal(t, "°C", p.Stats[domain.VarTemperature].Unit)

	var orphans int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM station_stats WHERE station_name = 'Old'`).Scan(&orphans))
	assert.Zero(t, orphans, "stats cascade with their station")
}

func TestStationRepo_ReplaceAllRollsBack(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	seed := []domain.StationProfile{testutil.NewTestProfile("Keep")}
	require.NoError(t, NewSQLiteStationRepo(database).ReplaceAll(ctx, seed, testutil.NewTestImport("seed.csv", seed)))

	boom := errors.New("disk full")
	uow := &testutil.FailingUoW{DB: database, FailOn: 3, Err: boom}
	repo := NewSQLiteStationRepoWithUoW(database, uow)

	next := []domain.StationProfile{testutil.NewTestProfile("A"), testutil.NewTestProfile("B")}
	err := repo.ReplaceAll(ctx, next, testutil.NewTestImport("next.csv", next))
	require.ErrorIs(t, err, boom)

	got, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Keep", got[0].Name)

	imp, err := repo.LastImport(ctx)
	require.NoError(t, err)
	assert.Equal(t, "seed.csv", imp.Source)
}

func TestStationRepo_LastImport(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteStationRepo(database)
	ctx := context.Background()

	_, err := repo.LastImport(ctx)
	assert.ErrorIs(t, err, ErrNotFound)

	profiles := testutil.DefaultProfiles(t)
	imp := testutil.NewTestImport("racimo.csv", profiles)
	imp.ImportedAt = time.Date(2025, 11, 6, 8, 0, 0, 0, time.UTC)
	require.NoError(t, repo.ReplaceAll(ctx, profiles, imp))

	got, err := repo.LastImport(ctx)
	require.NoError(t, err)
	assert.Equal(t, imp.ID, got.ID)
	assert.Equal(t, 11, got.Stations)
	assert.True(t, imp.ImportedAt.Equal(got.ImportedAt))
}

func TestStationRepo_RoundTripsDefaultDataset(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteStationRepo(database)
	ctx := context.Background()

	profiles := testutil.DefaultProfiles(t)
	require.NoError(t, repo.ReplaceAll(ctx, profiles, testutil.NewTestImport("default", profiles)))

	got, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, len(profiles))
	for i := range profiles {
		assert.Equal(t, profiles[i].Name, got[i].Name)
		assert.Len(t, got[i].Stats, len(profiles[i].Stats), profiles[i].Name)
	}

	halley, err := repo.GetByName(ctx, "Halley UIS")
	require.NoError(t, err)
	assert.InDelta(t, 31.17, halley.Stats[domain.VarTemperature].Max, 1e-9)
}
