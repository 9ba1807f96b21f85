package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/ecostats/internal/dataset"
	"github.com/alexanderramin/ecostats/internal/domain"
	"github.com/alexanderramin/ecostats/internal/knowledge"
	"github.com/alexanderramin/ecostats/internal/repository"
)

// EmbeddedSource names the dataset compiled into the binary.
const EmbeddedSource = "embedded"

type stationService struct {
	stations    repository.StationRepo
	datasetPath string
	strict      bool
	observer    UseCaseObserver
}

// NewStationService creates a StationService. An empty datasetPath uses the
// embedded dataset; strict turns on statistics validation.
func NewStationService(
	stations repository.StationRepo,
	datasetPath string,
	strict bool,
	observers ...UseCaseObserver,
) StationService {
	return &stationService{
		stations:    stations,
		datasetPath: datasetPath,
		strict:      strict,
		observer:    useCaseObserverOrNoop(observers),
	}
}

func (s *stationService) Load(ctx context.Context) (profiles []domain.StationProfile, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{}
	defer func() { observe(ctx, s.observer, "load-stations", startedAt, fields, err) }()

	n, err := s.stations.Count(ctx)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		fields["seeded"] = true
		if _, err = s.replaceFrom(ctx, s.datasetPath); err != nil {
			return nil, fmt.Errorf("seeding stations: %w", err)
		}
	}

	profiles, err = s.stations.List(ctx)
	if err != nil {
		return nil, err
	}
	fields["stations"] = len(profiles)
	return profiles, nil
}

func (s *stationService) Knowledge(ctx context.Context) (*knowledge.Base, error) {
	profiles, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	return knowledge.New(profiles, knowledge.WithStrictValidation(s.strict))
}

func (s *stationService) Import(ctx context.Context, path string) (imp *domain.DatasetImport, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"source": path}
	defer func() { observe(ctx, s.observer, "import-dataset", startedAt, fields, err) }()

	imp, err = s.replaceFrom(ctx, path)
	if err != nil {
		return nil, err
	}
	fields["stations"] = imp.Stations
	fields["readings"] = imp.Readings
	return imp, nil
}

// replaceFrom computes profiles from a dataset and swaps them into the store.
func (s *stationService) replaceFrom(ctx context.Context, path string) (*domain.DatasetImport, error) {
	ds, source, err := loadDataset(path)
	if err != nil {
		return nil, err
	}

	byName := dataset.ComputeStationStatistics(ds)
	if len(byName) == 0 {
		return nil, ErrEmptyDataset
	}
	// Building the base validates names and, when strict, the statistics.
	kb, err := knowledge.FromMap(byName, knowledge.WithStrictValidation(s.strict))
	if err != nil {
		return nil, err
	}

	profiles := make([]domain.StationProfile, 0, kb.StationCount())
	for _, p := range kb.Profiles() {
		profiles = append(profiles, *p)
	}

	imp := domain.DatasetImport{
		ID:         uuid.NewString(),
		Source:     source,
		Stations:   len(profiles),
		Readings:   len(ds.Readings),
		ImportedAt: time.Now().UTC().Truncate(time.Second),
	}
	if err := s.stations.ReplaceAll(ctx, profiles, imp); err != nil {
		return nil, fmt.Errorf("storing station statistics: %w", err)
	}
	return &imp, nil
}

func (s *stationService) MonthlyProfile(ctx context.Context, station string, month time.Month) (*domain.StationProfile, error) {
	var ds *dataset.Dataset
	if last, err := s.stations.LastImport(ctx); err == nil && last.Source != EmbeddedSource {
		// The imported file may have moved since; fall back to the configured dataset.
		ds, _, _ = loadDataset(last.Source)
	}
	if ds == nil {
		var err error
		if ds, _, err = loadDataset(s.datasetPath); err != nil {
			return nil, err
		}
	}
	profiles := dataset.ComputeStationStatistics(ds.Filter(station, month))
	p, ok := profiles[station]
	if !ok {
		if _, known := dataset.ComputeStationStatistics(ds.Filter(station, 0))[station]; !known {
			return nil, fmt.Errorf("%w: %s", knowledge.ErrStationNotFound, station)
		}
		return nil, fmt.Errorf("%w: %s in %s", knowledge.ErrNoData, station, dataset.MonthName(month))
	}
	return &p, nil
}

func (s *stationService) LastImport(ctx context.Context) (*domain.DatasetImport, error) {
	return s.stations.LastImport(ctx)
}

func (s *stationService) HasData(ctx context.Context) (bool, error) {
	n, err := s.stations.Count(ctx)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func loadDataset(path string) (*dataset.Dataset, string, error) {
	if path == "" || path == EmbeddedSource {
		ds, err := dataset.Default()
		if err != nil {
			return nil, "", fmt.Errorf("loading embedded dataset: %w", err)
		}
		return ds, EmbeddedSource, nil
	}
	ds, err := dataset.LoadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("loading dataset %s: %w", path, err)
	}
	return ds, path, nil
}

// IsNotFound reports whether err is any lookup miss from the stores or the
// knowledge base.
func IsNotFound(err error) bool {
	return errors.Is(err, repository.ErrNotFound) || errors.Is(err, knowledge.ErrNotFound)
}
