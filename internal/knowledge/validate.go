package knowledge

import (
	"fmt"
	"slices"

	"github.com/alexanderramin/ecostats/internal/domain"
)

// meanTolerance absorbs float rounding when every reading is identical.
const meanTolerance = 1e-9

// ValidateProfiles checks every variable entry for a unit and, for
// non-accumulating variables, for min <= mean <= max. It returns all problems
// found rather than stopping at the first.
func ValidateProfiles(profiles []domain.StationProfile) []error {
	var errs []error
	for _, p := range profiles {
		for _, key := range domain.Variables {
			vs, ok := p.Stats[key]
			if !ok {
				continue
			}
			if vs.Unit == "" {
				errs = append(errs, fmt.Errorf("%s: %s has no unit", p.Name, key))
			}
			if key.Accumulates() {
				if vs.Sum != nil && *vs.Sum < vs.Max {
					errs = append(errs, fmt.Errorf("%s: %s total %.2f is below its maximum %.2f", p.Name, key, *vs.Sum, vs.Max))
				}
				continue
			}
			if vs.Min > vs.Mean+meanTolerance || vs.Mean > vs.Max+meanTolerance {
				errs = append(errs, fmt.Errorf("%s: %s expected min <= mean <= max, got %.2f / %.2f / %.2f",
					p.Name, key, vs.Min, vs.Mean, vs.Max))
			}
		}
		var unknown []domain.VariableKey
		for key := range p.Stats {
			if !key.IsValid() {
				unknown = append(unknown, key)
			}
		}
		slices.Sort(unknown)
		for _, key := range unknown {
			errs = append(errs, fmt.Errorf("%s: unknown variable %q", p.Name, key))
		}
	}
	return errs
}
