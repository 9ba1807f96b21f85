package repository

import (
	"sort"
	"time"

	"github.com/alexanderramin/ecostats/internal/domain"
)

// nowUTC returns the current UTC time formatted as RFC3339.
func nowUTC() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// statRow is one row of the stations LEFT JOIN station_stats query. Variable
// is nil for a station without statistics.
type statRow struct {
	Name      string
	Latitude  float64
	Longitude float64
	Variable  *string
	Max       *float64
	Min       *float64
	Mean      *float64
	Sum       *float64
	Unit      *string
	Count     *int
}

// profileAssembler folds joined rows back into station profiles.
type profileAssembler struct {
	byName map[string]*domain.StationProfile
	order  []string
}

func newProfileAssembler() *profileAssembler {
	return &profileAssembler{byName: make(map[string]*domain.StationProfile)}
}

func (a *profileAssembler) add(r statRow) {
	p, ok := a.byName[r.Name]
	if !ok {
		p = &domain.StationProfile{
			Name:      r.Name,
			Latitude:  r.Latitude,
			Longitude: r.Longitude,
			Stats:     make(map[domain.VariableKey]domain.VariableStats),
		}
		a.byName[r.Name] = p
		a.order = append(a.order, r.Name)
	}
	if r.Variable == nil {
		return
	}

	vs := domain.VariableStats{Sum: r.Sum}
	if r.Max != nil {
		vs.Max = *r.Max
	}
	if r.Min != nil {
		vs.Min = *r.Min
	}
	if r.Mean != nil {
		vs.Mean = *r.Mean
	}
	if r.Unit != nil {
		vs.Unit = *r.Unit
	}
	if r.Count != nil {
		vs.Count = *r.Count
	}
	p.Stats[domain.VariableKey(*r.Variable)] = vs
}

// profiles returns the assembled profiles sorted by name.
func (a *profileAssembler) profiles() []domain.StationProfile {
	sort.Strings(a.order)
	out := make([]domain.StationProfile, 0, len(a.order))
	for _, name := range a.order {
		out = append(out, *a.byName[name])
	}
	return out
}

// sortedStats returns the variables of a profile in menu order so writes are
// deterministic.
func sortedStats(p domain.StationProfile) []domain.VariableKey {
	keys := make([]domain.VariableKey, 0, len(p.Stats))
	for _, k := range domain.Variables {
		if _, ok := p.Stats[k]; ok {
			keys = append(keys, k)
		}
	}
	return keys
}
