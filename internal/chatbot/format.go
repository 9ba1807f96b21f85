package chatbot

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/alexanderramin/ecostats/internal/domain"
	"github.com/alexanderramin/ecostats/internal/knowledge"
)

type noun struct {
	article  string
	name     string
	feminine bool
}

var variableNouns = map[domain.VariableKey]noun{
	domain.VarTemperature:   {"la", "temperatura", true},
	domain.VarHumidity:      {"la", "humedad", true},
	domain.VarPrecipitation: {"la", "precipitación", true},
	domain.VarPM25:          {"el", "PM2.5", false},
	domain.VarAQI:           {"el", "ICA", false},
	domain.VarWindSpeed:     {"la", "velocidad del viento", true},
	domain.VarWindDirection: {"la", "dirección del viento", true},
	domain.VarPressure:      {"la", "presión atmosférica", true},
}

func nounFor(key domain.VariableKey) noun {
	if n, ok := variableNouns[key]; ok {
		return n
	}
	return noun{article: "la", name: string(key), feminine: true}
}

// statLabel names a statistic for a variable. Precipitation is sampled every
// 15 minutes, so its maximum is the wettest interval and its mean is per reading.
func statLabel(stat domain.Statistic, key domain.VariableKey) string {
	fem := nounFor(key).feminine
	pick := func(f, m string) string {
		if fem {
			return f
		}
		return m
	}
	switch stat {
	case domain.StatMax:
		if key == domain.VarPrecipitation {
			return "máxima en 15 min"
		}
		return pick("máxima", "máximo")
	case domain.StatMin:
		return pick("mínima", "mínimo")
	case domain.StatMean:
		if key == domain.VarPrecipitation {
			return "media por registro"
		}
		return pick("media", "promedio")
	case domain.StatSum:
		return pick("total acumulada", "total acumulado")
	}
	return string(stat)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r, n := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[n:]
}

func pm25Warning(key domain.VariableKey, stat domain.Statistic, v float64) string {
	if key != domain.VarPM25 || stat == domain.StatMin || v <= domain.PM25HarmfulLimit {
		return ""
	}
	return fmt.Sprintf("\n⚠️ Este valor supera el límite perjudicial de %.0f µg/m³.", domain.PM25HarmfulLimit)
}

func noDataText(key domain.VariableKey, station string) string {
	if key == domain.VarWindDirection {
		return fmt.Sprintf("La dirección del viento no tiene estadísticas numéricas en **%s**; "+
			"consulta la rosa de vientos en la sección de gráficos.", station)
	}
	return fmt.Sprintf("No hay datos de %s para la estación **%s**.", nounFor(key).name, station)
}

// statisticText answers one station, variable and statistic.
func statisticText(kb Knowledge, station string, key domain.VariableKey, stat domain.Statistic) string {
	v, err := kb.GetStatistic(station, key, stat)
	switch {
	case errors.Is(err, knowledge.ErrStatisticNotApplicable):
		n := nounFor(key)
		return fmt.Sprintf("No calculo un valor %s para %s %s; prueba con máxima, mínima o media.",
			statLabel(stat, key), n.article, n.name)
	case err != nil:
		return noDataText(key, station)
	}

	n := nounFor(key)
	return fmt.Sprintf("%s %s %s en **%s** fue de **%s**.", capitalize(n.article), n.name,
		statLabel(stat, key), station, v) + pm25Warning(key, stat, v.Value)
}

var reportStats = []domain.Statistic{domain.StatMax, domain.StatMin, domain.StatMean, domain.StatSum}

// statLines lists every applicable statistic of a variable, or false when the
// station has no readings for it.
func statLines(kb Knowledge, station string, key domain.VariableKey) ([]string, float64, bool) {
	var lines []string
	var worst float64
	for _, stat := range reportStats {
		v, err := kb.GetStatistic(station, key, stat)
		if errors.Is(err, knowledge.ErrStatisticNotApplicable) {
			continue
		}
		if err != nil {
			return nil, 0, false
		}
		if stat == domain.StatMax {
			worst = v.Value
		}
		lines = append(lines, fmt.Sprintf("%s %s", statLabel(stat, key), v))
	}
	return lines, worst, len(lines) > 0
}

func displayName(kb Knowledge, key domain.VariableKey) string {
	if d, err := kb.GetVariableDescription(key); err == nil {
		return d.DisplayName
	}
	return capitalize(nounFor(key).name)
}

// variableAtStationText reports all statistics of one variable at one station.
func variableAtStationText(kb Knowledge, station string, key domain.VariableKey) string {
	lines, worst, ok := statLines(kb, station, key)
	if !ok {
		return noDataText(key, station)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "**%s** en **%s**\n", displayName(kb, key), station)
	for _, l := range lines {
		fmt.Fprintf(&b, "- %s\n", capitalize(l))
	}
	return strings.TrimRight(b.String(), "\n") + pm25Warning(key, domain.StatMax, worst)
}

// stationSummaryText reports every variable with data at a station and names
// those without.
func stationSummaryText(kb Knowledge, p *domain.StationProfile) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📊 **Estadísticas de %s** (%.4f, %.4f)\n", p.Name, p.Latitude, p.Longitude)

	var missing []string
	for _, key := range domain.Variables {
		if !key.Numeric() {
			continue
		}
		lines, _, ok := statLines(kb, p.Name, key)
		if !ok {
			missing = append(missing, nounFor(key).name)
			continue
		}
		fmt.Fprintf(&b, "- **%s**: %s\n", displayName(kb, key), strings.Join(lines, " · "))
	}
	if len(missing) > 0 {
		fmt.Fprintf(&b, "Sin datos de: %s.", strings.Join(missing, ", "))
	}
	return strings.TrimRight(b.String(), "\n")
}

func explanationText(d domain.VariableDescription) string {
	return fmt.Sprintf("**%s**\n%s", d.DisplayName, d.Explanation)
}
