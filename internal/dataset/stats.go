package dataset

import (
	"math"

	"github.com/alexanderramin/ecostats/internal/domain"
)

type accumulator struct {
	min, max, sum float64
	n             int
}

func (a *accumulator) add(v float64) {
	if a.n == 0 {
		a.min, a.max = v, v
	} else {
		a.min = math.Min(a.min, v)
		a.max = math.Max(a.max, v)
	}
	a.sum += v
	a.n++
}

// ComputeStationStatistics aggregates every numeric variable per station.
// Variables with no readings at a station are left out of its Stats map, so a
// missing entry always means "no data" rather than zero. Coordinates are taken
// from the station's first row.
func ComputeStationStatistics(ds *Dataset) map[string]domain.StationProfile {
	acc := make(map[string]map[domain.VariableKey]*accumulator)
	profiles := make(map[string]domain.StationProfile)

	for _, r := range ds.Readings {
		if _, ok := profiles[r.Station]; !ok {
			profiles[r.Station] = domain.StationProfile{
				Name:      r.Station,
				Latitude:  r.Latitude,
				Longitude: r.Longitude,
			}
			acc[r.Station] = make(map[domain.VariableKey]*accumulator)
		}
		for key, v := range r.Values {
			if !key.Numeric() {
				continue
			}
			a, ok := acc[r.Station][key]
			if !ok {
				a = &accumulator{}
				acc[r.Station][key] = a
			}
			a.add(v)
		}
	}

	for name, p := range profiles {
		p.Stats = make(map[domain.VariableKey]domain.VariableStats, len(acc[name]))
		for key, a := range acc[name] {
			vs := domain.VariableStats{
				Max:   a.max,
				Min:   a.min,
				Mean:  a.sum / float64(a.n),
				Unit:  key.DefaultUnit(),
				Count: a.n,
			}
			if key.Accumulates() {
				sum := a.sum
				vs.Sum = &sum
			}
			p.Stats[key] = vs
		}
		profiles[name] = p
	}

	return profiles
}
