// Package knowledge holds the read-only station and variable reference data
// consulted by the chatbot. A Base is immutable after construction and safe
// to share across sessions without locking.
package knowledge

import (
	"errors"
	"fmt"
	"sort"

	"github.com/alexanderramin/ecostats/internal/domain"
)

var (
	// ErrNotFound is the root of every lookup miss.
	ErrNotFound = errors.New("not found")

	ErrStationNotFound        = fmt.Errorf("station %w", ErrNotFound)
	ErrVariableNotFound       = fmt.Errorf("variable %w", ErrNotFound)
	ErrNoData                 = fmt.Errorf("no data: %w", ErrNotFound)
	ErrStatisticNotApplicable = fmt.Errorf("statistic not applicable: %w", ErrNotFound)
)

// Base is the static knowledge base.
type Base struct {
	stations map[string]*domain.StationProfile
	names    []string
}

// Option configures a Base.
type Option func(*options)

type options struct {
	strict bool
}

// WithStrictValidation rejects profiles whose statistics are inconsistent.
func WithStrictValidation(strict bool) Option {
	return func(o *options) { o.strict = strict }
}

// New builds a Base from station profiles. Duplicate names are rejected.
func New(profiles []domain.StationProfile, opts ...Option) (*Base, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	if o.strict {
		if errs := ValidateProfiles(profiles); len(errs) > 0 {
			return nil, fmt.Errorf("invalid station statistics: %w", errors.Join(errs...))
		}
	}

	b := &Base{stations: make(map[string]*domain.StationProfile, len(profiles))}
	for i := range profiles {
		p := profiles[i]
		if p.Name == "" {
			return nil, fmt.Errorf("station %d has no name", i+1)
		}
		if _, dup := b.stations[p.Name]; dup {
			return nil, fmt.Errorf("duplicate station %q", p.Name)
		}
		if p.Stats == nil {
			p.Stats = map[domain.VariableKey]domain.VariableStats{}
		}
		b.stations[p.Name] = &p
		b.names = append(b.names, p.Name)
	}
	sort.Strings(b.names)
	return b, nil
}

// FromMap builds a Base from the output of dataset.ComputeStationStatistics.
func FromMap(profiles map[string]domain.StationProfile, opts ...Option) (*Base, error) {
	list := make([]domain.StationProfile, 0, len(profiles))
	for _, p := range profiles {
		list = append(list, p)
	}
	return New(list, opts...)
}

// GetStation looks a station up by its exact, case-sensitive name.
func (b *Base) GetStation(name string) (*domain.StationProfile, error) {
	p, ok := b.stations[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrStationNotFound)
	}
	return p, nil
}

// GetStationByOrdinal returns the n-th station (1-based) of ListStations.
func (b *Base) GetStationByOrdinal(n int) (*domain.StationProfile, error) {
	if n < 1 || n > len(b.names) {
		return nil, fmt.Errorf("ordinal %d: %w", n, ErrStationNotFound)
	}
	return b.stations[b.names[n-1]], nil
}

// ListStations returns the station names in lexicographic order. This order
// defines station ordinals everywhere they are shown or parsed.
func (b *Base) ListStations() []string {
	out := make([]string, len(b.names))
	copy(out, b.names)
	return out
}

// StationCount returns the number of known stations.
func (b *Base) StationCount() int {
	return len(b.names)
}

// Profiles returns every station profile in ListStations order.
func (b *Base) Profiles() []*domain.StationProfile {
	out := make([]*domain.StationProfile, len(b.names))
	for i, n := range b.names {
		out[i] = b.stations[n]
	}
	return out
}

// GetVariableDescription returns the plain-language explanation of a variable.
func (b *Base) GetVariableDescription(key domain.VariableKey) (domain.VariableDescription, error) {
	d, ok := variableDescriptions[key]
	if !ok {
		return domain.VariableDescription{}, fmt.Errorf("%q: %w", key, ErrVariableNotFound)
	}
	return d, nil
}

// Variables returns the variable descriptions in menu order.
func (b *Base) Variables() []domain.VariableDescription {
	out := make([]domain.VariableDescription, 0, len(domain.Variables))
	for _, k := range domain.Variables {
		out = append(out, variableDescriptions[k])
	}
	return out
}

// GetStatistic resolves one number. A miss is always an error wrapping
// ErrNotFound, never a zero value.
func (b *Base) GetStatistic(station string, variable domain.VariableKey, stat domain.Statistic) (domain.StatValue, error) {
	p, err := b.GetStation(station)
	if err != nil {
		return domain.StatValue{}, err
	}
	if !variable.IsValid() {
		return domain.StatValue{}, fmt.Errorf("%q: %w", variable, ErrVariableNotFound)
	}
	vs, ok := p.Stats[variable]
	if !ok {
		return domain.StatValue{}, fmt.Errorf("%s at %s: %w", variable, station, ErrNoData)
	}
	v, ok := vs.Value(stat)
	if !ok {
		return domain.StatValue{}, fmt.Errorf("%s of %s: %w", stat, variable, ErrStatisticNotApplicable)
	}
	return domain.StatValue{Value: v, Unit: vs.Unit}, nil
}
