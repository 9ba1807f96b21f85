package chatbot

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/ecostats/internal/domain"
)

// Button is one clickable option. Tag is the stage it leads to.
type Button struct {
	Label string       `json:"label"`
	Tag   domain.Stage `json:"tag"`
}

// Content is what a stage renders: a text block, its options and the
// navigation row.
type Content struct {
	Stage      domain.Stage `json:"stage"`
	Title      string       `json:"title"`
	Text       string       `json:"text"`
	Options    []Button     `json:"options,omitempty"`
	Navigation []Button     `json:"navigation,omitempty"`
}

var (
	homeButton = Button{Label: "🏠 Menú principal", Tag: domain.StageRoot}

	rootOptions = []Button{
		{Label: "🧭 Cómo navegar", Tag: domain.StageNavigationHelp},
		{Label: "📈 Gráficos", Tag: domain.StageChartGuide},
		{Label: "🔬 Variables", Tag: domain.StageVariableMenu},
		{Label: "📍 Estaciones", Tag: domain.StageStationInfo},
		{Label: "🔗 Fuente de datos", Tag: domain.StageDataSource},
	}

	stationOptions = []Button{
		{Label: "Sí", Tag: domain.StageStatsSummary},
		{Label: "No", Tag: domain.StageRoot},
	}
)

// Router maps stage tags to rendered content. Unknown tags fall back to the
// main menu.
type Router struct {
	kb     Knowledge
	labels map[domain.Stage]string
}

// NewRouter builds a router over kb.
func NewRouter(kb Knowledge) *Router {
	r := &Router{kb: kb, labels: map[domain.Stage]string{domain.StageRoot: homeButton.Label}}
	for _, b := range rootOptions {
		r.labels[b.Tag] = b.Label
	}
	for _, b := range r.chartOptions() {
		r.labels[b.Tag] = b.Label
	}
	for _, b := range r.variableOptions() {
		r.labels[b.Tag] = b.Label
	}
	r.labels[domain.StageStatsSummary] = "📊 Resumen de estadísticas"
	return r
}

// Parent returns the stage "back" leads to. Variable details go back to the
// variable menu, chart details to the chart guide, the statistics summary to
// the station list and everything else to the main menu.
func (r *Router) Parent(stage domain.Stage) domain.Stage {
	switch {
	case stage.IsVariable():
		return domain.StageVariableMenu
	case stage.IsChart():
		return domain.StageChartGuide
	case stage == domain.StageStatsSummary:
		return domain.StageStationInfo
	default:
		return domain.StageRoot
	}
}

// Label returns the button label that leads to tag, or the raw tag.
func (r *Router) Label(tag string) string {
	if l, ok := r.labels[domain.NormalizeStage(tag)]; ok {
		return l
	}
	return strings.TrimSpace(tag)
}

// Known reports whether tag names a stage the router can render.
func (r *Router) Known(tag string) bool {
	return r.Route(tag).Stage == domain.NormalizeStage(tag)
}

// Route renders the content of a stage tag.
func (r *Router) Route(tag string) Content {
	stage := domain.NormalizeStage(tag)

	var c Content
	switch {
	case stage == domain.StageNavigationHelp:
		c = Content{Title: "Cómo navegar", Text: navigationText}
	case stage == domain.StageChartGuide:
		c = Content{Title: "Gráficos", Text: chartGuideText, Options: r.chartOptions()}
	case stage.IsChart():
		c = r.chartContent(stage)
	case stage == domain.StageVariableMenu:
		c = Content{Title: "Variables", Text: variableMenuText, Options: r.variableOptions()}
	case stage.IsVariable():
		c = r.variableContent(domain.VariableKey(stage))
	case stage == domain.StageStationInfo:
		c = Content{Title: "Estaciones", Text: r.stationListText(), Options: stationOptions}
	case stage == domain.StageStatsSummary:
		c = Content{Title: "Resumen de estadísticas", Text: r.statsSummaryText()}
	case stage == domain.StageDataSource:
		c = Content{Title: "Fuente de datos", Text: dataSourceText}
	default:
		return Content{Stage: domain.StageRoot, Title: "Menú principal", Text: rootText, Options: rootOptions}
	}

	c.Stage = stage
	c.Navigation = r.navigation(stage)
	return c
}

func (r *Router) navigation(stage domain.Stage) []Button {
	parent := r.Parent(stage)
	back := Button{Label: "⬅️ Volver", Tag: parent}
	if parent == domain.StageRoot {
		return []Button{back}
	}
	return []Button{back, homeButton}
}

func (r *Router) chartOptions() []Button {
	out := make([]Button, 0, len(chartGuides))
	for _, g := range chartGuides {
		out = append(out, Button{Label: g.label, Tag: g.stage})
	}
	return out
}

func (r *Router) chartContent(stage domain.Stage) Content {
	for _, g := range chartGuides {
		if g.stage == stage {
			return Content{Title: g.label, Text: g.text}
		}
	}
	return Content{}
}

func (r *Router) variableOptions() []Button {
	vars := r.kb.Variables()
	out := make([]Button, 0, len(vars))
	for _, v := range vars {
		out = append(out, Button{Label: v.DisplayName, Tag: domain.Stage(v.Key)})
	}
	return out
}

func (r *Router) variableContent(key domain.VariableKey) Content {
	d, err := r.kb.GetVariableDescription(key)
	if err != nil {
		return Content{Title: string(key), Text: HelpMessage}
	}

	text := d.Explanation
	if key.Numeric() {
		with := 0
		for _, name := range r.kb.ListStations() {
			if p, err := r.kb.GetStation(name); err == nil && p.Has(key) {
				with++
			}
		}
		text += fmt.Sprintf("\n\n📍 Estaciones con datos: %d de %d.", with, r.kb.StationCount())
	}
	return Content{Title: d.DisplayName, Text: text}
}

func (r *Router) stationListText() string {
	var b strings.Builder
	fmt.Fprintf(&b, "📍 La red RACiMo en Santander tiene %d estaciones:\n", r.kb.StationCount())
	for i, name := range r.kb.ListStations() {
		fmt.Fprintf(&b, "%d. %s\n", i+1, name)
	}
	b.WriteString("\n¿Quieres ver un resumen de estadísticas de todas?")
	return b.String()
}

func (r *Router) statsSummaryText() string {
	var b strings.Builder
	b.WriteString("📊 **Resumen de estadísticas por estación**\n")
	for _, name := range r.kb.ListStations() {
		fmt.Fprintf(&b, "\n**%s**: ", name)

		if t, ok := r.triple(name, domain.VarTemperature); ok {
			fmt.Fprintf(&b, "🌡️ máx %s · mín %s · media %s", t[0], t[1], t[2])
		} else {
			b.WriteString("🌡️ sin datos")
		}

		if pm, err := r.kb.GetStatistic(name, domain.VarPM25, domain.StatMean); err == nil {
			fmt.Fprintf(&b, " | PM2.5 media %s", pm)
		} else {
			b.WriteString(" | PM2.5 sin datos")
		}
	}
	return b.String()
}

// triple returns the formatted max, min and mean of a variable at a station.
func (r *Router) triple(station string, key domain.VariableKey) ([3]string, bool) {
	var out [3]string
	for i, stat := range []domain.Statistic{domain.StatMax, domain.StatMin, domain.StatMean} {
		v, err := r.kb.GetStatistic(station, key, stat)
		if err != nil {
			return out, false
		}
		out[i] = v.String()
	}
	return out, true
}
