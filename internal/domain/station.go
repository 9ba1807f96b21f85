package domain

import "fmt"

// VariableKey names a measured variable. Keys double as detail stage tags.
type VariableKey string

const (
	VarTemperature   VariableKey = "temperatura"
	VarHumidity      VariableKey = "humedad"
	VarPrecipitation VariableKey = "precipitacion"
	VarPM25          VariableKey = "pm2_5"
	VarAQI           VariableKey = "ica"
	VarWindSpeed     VariableKey = "viento_velocidad"
	VarWindDirection VariableKey = "viento_direccion"
	VarPressure      VariableKey = "presion"
)

// Variables is the fixed 1-based menu order used for ordinal lookups.
var Variables = []VariableKey{
	VarTemperature,
	VarHumidity,
	VarPrecipitation,
	VarPM25,
	VarAQI,
	VarWindSpeed,
	VarWindDirection,
	VarPressure,
}

var variableIndex = func() map[VariableKey]int {
	m := make(map[VariableKey]int, len(Variables))
	for i, v := range Variables {
		m[v] = i + 1
	}
	return m
}()

// IsValid reports whether k is a known variable key.
func (k VariableKey) IsValid() bool {
	_, ok := variableIndex[k]
	return ok
}

// Accumulates reports whether the variable is summed over time rather than averaged.
func (k VariableKey) Accumulates() bool {
	return k == VarPrecipitation
}

// Numeric reports whether the variable carries numeric statistics.
func (k VariableKey) Numeric() bool {
	return k.IsValid() && k != VarWindDirection
}

// DefaultUnit returns the display unit for a variable.
func (k VariableKey) DefaultUnit() string {
	switch k {
	case VarTemperature:
		return "°C"
	case VarHumidity:
		return "%"
	case VarPrecipitation:
		return "mm"
	case VarPM25:
		return "µg/m³"
	case VarAQI:
		return "puntos ICA"
	case VarWindSpeed:
		return "m/s"
	case VarWindDirection:
		return "°"
	case VarPressure:
		return "hPa"
	default:
		return ""
	}
}

// PM25HarmfulLimit is the PM2.5 concentration, in µg/m³, above which air is
// considered harmful.
const PM25HarmfulLimit = 56.0

// Statistic names one aggregate of a variable.
type Statistic string

const (
	StatMax  Statistic = "max"
	StatMin  Statistic = "min"
	StatMean Statistic = "mean"
	StatSum  Statistic = "sum"
)

// ParseStatistic validates a statistic key.
func ParseStatistic(s string) (Statistic, error) {
	switch Statistic(s) {
	case StatMax, StatMin, StatMean, StatSum:
		return Statistic(s), nil
	}
	return "", fmt.Errorf("unknown statistic %q", s)
}

// VariableStats holds the aggregates of one variable at one station.
// Sum is only set for accumulating variables.
type VariableStats struct {
	Max   float64  `json:"max"`
	Min   float64  `json:"min"`
	Mean  float64  `json:"mean"`
	Sum   *float64 `json:"sum,omitempty"`
	Unit  string   `json:"unit"`
	Count int      `json:"count"`
}

// Value returns the requested aggregate, or false when it does not apply.
func (s VariableStats) Value(stat Statistic) (float64, bool) {
	switch stat {
	case StatMax:
		return s.Max, true
	case StatMin:
		return s.Min, true
	case StatMean:
		return s.Mean, true
	case StatSum:
		if s.Sum == nil {
			return 0, false
		}
		return *s.Sum, true
	}
	return 0, false
}

// StatValue is a single resolved number with its unit.
type StatValue struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

// String renders the value with two decimals, e.g. "31.17 °C".
func (v StatValue) String() string {
	return fmt.Sprintf("%.2f %s", v.Value, v.Unit)
}

// StationProfile is the read-only reference record for one monitoring station.
type StationProfile struct {
	Name      string                        `json:"name"`
	Latitude  float64                       `json:"latitude"`
	Longitude float64                       `json:"longitude"`
	Stats     map[VariableKey]VariableStats `json:"stats"`
}

// Has reports whether the station has readings for the variable.
func (p *StationProfile) Has(key VariableKey) bool {
	_, ok := p.Stats[key]
	return ok
}

// VariableDescription explains a variable in plain language.
type VariableDescription struct {
	Key         VariableKey `json:"key"`
	DisplayName string      `json:"display_name"`
	Explanation string      `json:"explanation"`
}
