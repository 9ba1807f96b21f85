package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/ecostats/internal/domain"
)

// StationLister is the read side of the knowledge base the station views need.
type StationLister interface {
	ListStations() []string
	GetStation(name string) (*domain.StationProfile, error)
	Variables() []domain.VariableDescription
}

// FormatStationTable lists every station with its ordinal and coordinates.
func FormatStationTable(kb StationLister) string {
	names := kb.ListStations()
	rows := make([][]string, 0, len(names))
	for i, name := range names {
		p, err := kb.GetStation(name)
		if err != nil {
			continue
		}
		measured := 0
		for _, key := range domain.Variables {
			if p.Has(key) {
				measured++
			}
		}
		rows = append(rows, []string{
			Dim(fmt.Sprintf("%d", i+1)),
			Bold(p.Name),
			fmt.Sprintf("%.4f", p.Latitude),
			fmt.Sprintf("%.4f", p.Longitude),
			fmt.Sprintf("%d/%d", measured, len(domain.Variables)),
		})
	}

	cols := []Column{
		{Title: "#", Align: AlignRight},
		{Title: "ESTACIÓN"},
		{Title: "LATITUD", Align: AlignRight},
		{Title: "LONGITUD", Align: AlignRight},
		{Title: "VARIABLES", Align: AlignRight},
	}
	return Header(fmt.Sprintf("Estaciones RACiMo (%d)", len(names))) + "\n" + RenderTable(cols, rows)
}

var statOrder = []domain.Statistic{domain.StatMax, domain.StatMin, domain.StatMean, domain.StatSum}

var statTitles = map[domain.Statistic]string{
	domain.StatMax:  "MÁX",
	domain.StatMin:  "MÍN",
	domain.StatMean: "MEDIA",
	domain.StatSum:  "TOTAL",
}

// FormatStationProfile renders one station's statistics as a table. label
// names the period, e.g. a month, and may be empty.
func FormatStationProfile(p *domain.StationProfile, names map[domain.VariableKey]string, label string) string {
	title := p.Name
	if label != "" {
		title += " · " + label
	}

	cols := []Column{{Title: "VARIABLE"}}
	for _, s := range statOrder {
		cols = append(cols, Column{Title: statTitles[s], Align: AlignRight})
	}
	cols = append(cols, Column{Title: "N", Align: AlignRight})

	var rows [][]string
	var missing []string
	for _, key := range domain.Variables {
		if !key.Numeric() {
			continue
		}
		name := names[key]
		if name == "" {
			name = string(key)
		}
		vs, ok := p.Stats[key]
		if !ok {
			missing = append(missing, name)
			continue
		}
		row := []string{name}
		for _, s := range statOrder {
			v, ok := vs.Value(s)
			if !ok {
				row = append(row, Dim("–"))
				continue
			}
			row = append(row, StatValue(key, domain.StatValue{Value: v, Unit: vs.Unit}))
		}
		row = append(row, Dim(fmt.Sprintf("%d", vs.Count)))
		rows = append(rows, row)
	}

	var b strings.Builder
	b.WriteString(Header(title) + "\n")
	b.WriteString(Coordinates(p.Latitude, p.Longitude) + "\n\n")
	if len(rows) > 0 {
		b.WriteString(RenderTable(cols, rows))
	}
	if len(missing) > 0 {
		b.WriteString("\n" + Dim("Sin datos de: "+strings.Join(missing, ", ")) + "\n")
	}
	return b.String()
}

// FormatVariables lists each variable with its explanation and how many
// stations report it.
func FormatVariables(kb StationLister) string {
	names := kb.ListStations()
	var b strings.Builder
	b.WriteString(Header("Variables") + "\n")
	for i, d := range kb.Variables() {
		with := 0
		for _, name := range names {
			if p, err := kb.GetStation(name); err == nil && p.Has(d.Key) {
				with++
			}
		}
		fmt.Fprintf(&b, "\n%s %s  %s\n", Dim(fmt.Sprintf("%d.", i+1)), Bold(d.DisplayName), RenderCoverage(with, len(names), 11))
		b.WriteString(indent(PlainMarkdown(d.Explanation), "   ") + "\n")
	}
	return b.String()
}

// FormatImport summarizes a finished dataset import.
func FormatImport(imp *domain.DatasetImport) string {
	return fmt.Sprintf("%s %d estaciones, %d lecturas desde %s %s\n",
		StyleGreen.Render("✔ Importado:"), imp.Stations, imp.Readings,
		Bold(imp.Source), TruncID(imp.ID))
}

// FormatDatasetInfo boxes the provenance of the loaded statistics.
func FormatDatasetInfo(imp *domain.DatasetImport) string {
	lines := []string{
		Dim("Origen:    ") + imp.Source,
		Dim("Lecturas:  ") + fmt.Sprintf("%d en %d estaciones", imp.Readings, imp.Stations),
		Dim("Importado: ") + HumanTimestamp(imp.ImportedAt),
	}
	return RenderBox("Fuente de datos", strings.Join(lines, "\n")) + "\n"
}

// VariableNames maps variable keys to display names.
func VariableNames(kb StationLister) map[domain.VariableKey]string {
	out := make(map[domain.VariableKey]string)
	for _, d := range kb.Variables() {
		out[d.Key] = d.DisplayName
	}
	return out
}
