// Package dataset reads citizen weather-station CSV exports and derives the
// per-station statistics served by the knowledge base.
package dataset

import (
	"bytes"
	_ "embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/ecostats/internal/domain"
)

//go:embed data/racimo_santander.csv
var defaultCSV []byte

// Column names after normalization.
const (
	ColStation   = "estacion"
	ColLatitude  = "latitud"
	ColLongitude = "longitud"
	ColTimestamp = "timestamp"
)

// ErrMissingColumn is returned when a required column is absent from the header.
var ErrMissingColumn = errors.New("missing required column")

// columnAliases maps raw, lowercased header names to canonical column names.
var columnAliases = map[string]string{
	"nombre_estacion":   ColStation,
	"estacion":          ColStation,
	"station":           ColStation,
	"station_name":      ColStation,
	"latitud":           ColLatitude,
	"lat":               ColLatitude,
	"latitude":          ColLatitude,
	"longitud":          ColLongitude,
	"lon":               ColLongitude,
	"lng":               ColLongitude,
	"longitude":         ColLongitude,
	"timestamp":         ColTimestamp,
	"fecha":             ColTimestamp,
	"fecha_hora":        ColTimestamp,
	"temp_ext_media_c":  string(domain.VarTemperature),
	"temperatura":       string(domain.VarTemperature),
	"temperature":       string(domain.VarTemperature),
	"hum_ext_ult":       string(domain.VarHumidity),
	"humedad":           string(domain.VarHumidity),
	"humidity":          string(domain.VarHumidity),
	"lluvia_mm":         string(domain.VarPrecipitation),
	"precipitacion":     string(domain.VarPrecipitation),
	"precipitation":     string(domain.VarPrecipitation),
	"pm_2p5_media_ugm3": string(domain.VarPM25),
	"pm2_5":             string(domain.VarPM25),
	"pm25":              string(domain.VarPM25),
	"ica":               string(domain.VarAQI),
	"aqi":               string(domain.VarAQI),
	"viento_velocidad":  string(domain.VarWindSpeed),
	"wind_speed":        string(domain.VarWindSpeed),
	"viento_direccion":  string(domain.VarWindDirection),
	"wind_direction":    string(domain.VarWindDirection),
	"presion":           string(domain.VarPressure),
	"pressure":          string(domain.VarPressure),
}

var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
}

// Reading is one CSV row. Values only holds cells that parsed to a real number.
type Reading struct {
	Station   string
	Latitude  float64
	Longitude float64
	Timestamp time.Time
	Values    map[domain.VariableKey]float64
}

// Dataset is a validated, in-memory table of readings.
type Dataset struct {
	Readings []Reading
	// Variables lists the measurement columns present in the source header.
	Variables []domain.VariableKey
}

// Default returns the dataset bundled with the binary.
func Default() (*Dataset, error) {
	return Load(bytes.NewReader(defaultCSV))
}

// LoadFile reads a dataset from a CSV file on disk.
func LoadFile(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening dataset: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Load parses a CSV stream. Headers are trimmed, lowercased and mapped through
// the alias table; unknown columns are ignored.
func Load(r io.Reader) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("reading header: empty dataset")
		}
		return nil, fmt.Errorf("reading header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, raw := range header {
		name := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(raw, "\ufeff")))
		if canonical, ok := columnAliases[name]; ok {
			name = canonical
		}
		if _, dup := index[name]; !dup {
			index[name] = i
		}
	}
	for _, col := range []string{ColStation, ColLatitude, ColLongitude, ColTimestamp} {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, col)
		}
	}

	ds := &Dataset{}
	for _, v := range domain.Variables {
		if _, ok := index[string(v)]; ok {
			ds.Variables = append(ds.Variables, v)
		}
	}

	line := 1
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		reading, ok, err := parseRecord(record, index, ds.Variables)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if ok {
			ds.Readings = append(ds.Readings, reading)
		}
	}

	return ds, nil
}

// parseRecord converts one CSV record. Rows without a station name are skipped.
func parseRecord(record []string, index map[string]int, vars []domain.VariableKey) (Reading, bool, error) {
	station := cell(record, index[ColStation])
	if station == "" {
		return Reading{}, false, nil
	}

	lat, err := strconv.ParseFloat(cell(record, index[ColLatitude]), 64)
	if err != nil {
		return Reading{}, false, fmt.Errorf("invalid latitude for %s: %w", station, err)
	}
	lon, err := strconv.ParseFloat(cell(record, index[ColLongitude]), 64)
	if err != nil {
		return Reading{}, false, fmt.Errorf("invalid longitude for %s: %w", station, err)
	}
	ts, err := parseTimestamp(cell(record, index[ColTimestamp]))
	if err != nil {
		return Reading{}, false, fmt.Errorf("invalid timestamp for %s: %w", station, err)
	}

	reading := Reading{
		Station:   station,
		Latitude:  lat,
		Longitude: lon,
		Timestamp: ts,
		Values:    make(map[domain.VariableKey]float64, len(vars)),
	}
	for _, v := range vars {
		if val, ok := normalizeValue(cell(record, index[string(v)])); ok {
			reading.Values[v] = val
		}
	}
	return reading, true, nil
}

func cell(record []string, i int) string {
	if i < 0 || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

func parseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

// normalizeValue coerces a cell to a number. Empty cells, garbage and the
// -999 logger sentinel are treated as missing.
func normalizeValue(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil {
		return 0, false
	}
	if v <= -900 {
		return 0, false
	}
	return v, true
}

// Stations returns the distinct station names in first-seen order.
func (d *Dataset) Stations() []string {
	seen := make(map[string]bool)
	var names []string
	for _, r := range d.Readings {
		if !seen[r.Station] {
			seen[r.Station] = true
			names = append(names, r.Station)
		}
	}
	return names
}

// Filter returns the readings of one station in one calendar month.
// An empty station or a zero month disables that filter.
func (d *Dataset) Filter(station string, month time.Month) *Dataset {
	out := &Dataset{Variables: d.Variables}
	for _, r := range d.Readings {
		if station != "" && r.Station != station {
			continue
		}
		if month != 0 && r.Timestamp.Month() != month {
			continue
		}
		out.Readings = append(out.Readings, r)
	}
	return out
}

// Months returns the distinct months present, in ascending order.
func (d *Dataset) Months() []time.Month {
	var present [13]bool
	for _, r := range d.Readings {
		present[r.Timestamp.Month()] = true
	}
	var months []time.Month
	for m := time.January; m <= time.December; m++ {
		if present[m] {
			months = append(months, m)
		}
	}
	return months
}

var monthNames = [...]string{
	"", "Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}

// MonthName returns the Spanish month label used in reports.
func MonthName(m time.Month) string {
	if m < time.January || m > time.December {
		return "Mes desconocido"
	}
	return monthNames[m]
}
