package testutil

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/ecostats/internal/dataset"
	"github.com/alexanderramin/ecostats/internal/domain"
	"github.com/alexanderramin/ecostats/internal/knowledge"
)

// ProfileOption customizes a test station profile.
type ProfileOption func(*domain.StationProfile)

// WithCoordinates sets the station location.
func WithCoordinates(lat, lon float64) ProfileOption {
	return func(p *domain.StationProfile) {
		p.Latitude, p.Longitude = lat, lon
	}
}

// WithStats sets the aggregates of one variable.
func WithStats(key domain.VariableKey, max, min, mean float64) ProfileOption {
	return func(p *domain.StationProfile) {
		p.Stats[key] = domain.VariableStats{Max: max, Min: min, Mean: mean, Unit: key.DefaultUnit(), Count: 4}
	}
}

// WithRainfall sets precipitation aggregates including the accumulated total.
func WithRainfall(max, min, mean, sum float64) ProfileOption {
	return func(p *domain.StationProfile) {
		p.Stats[domain.VarPrecipitation] = domain.VariableStats{
			Max: max, Min: min, Mean: mean, Sum: &sum,
			Unit: domain.VarPrecipitation.DefaultUnit(), Count: 4,
		}
	}
}

// NewTestProfile builds a station with a plausible temperature record.
func NewTestProfile(name string, opts ...ProfileOption) domain.StationProfile {
	p := domain.StationProfile{
		Name:      name,
		Latitude:  7.12,
		Longitude: -73.12,
		Stats: map[domain.VariableKey]domain.VariableStats{
			domain.VarTemperature: {Max: 30, Min: 18, Mean: 24, Unit: "°C", Count: 4},
		},
	}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

// NewTestImport builds an import record for the given profiles.
func NewTestImport(source string, profiles []domain.StationProfile) domain.DatasetImport {
	return domain.DatasetImport{
		ID:         uuid.NewString(),
		Source:     source,
		Stations:   len(profiles),
		Readings:   4 * len(profiles),
		ImportedAt: time.Now().UTC().Truncate(time.Second),
	}
}

// DefaultProfiles returns the statistics of the bundled dataset, sorted by name.
func DefaultProfiles(t *testing.T) []domain.StationProfile {
	t.Helper()
	kb := NewTestKnowledge(t)
	out := make([]domain.StationProfile, 0, kb.StationCount())
	for _, p := range kb.Profiles() {
		out = append(out, *p)
	}
	return out
}

// NewTestKnowledge builds a strict knowledge base from the bundled dataset.
func NewTestKnowledge(t *testing.T) *knowledge.Base {
	t.Helper()
	ds, err := dataset.Default()
	if err != nil {
		t.Fatalf("loading default dataset: %v", err)
	}
	kb, err := knowledge.FromMap(dataset.ComputeStationStatistics(ds), knowledge.WithStrictValidation(true))
	if err != nil {
		t.Fatalf("building knowledge base: %v", err)
	}
	return kb
}
