package domain

import "strings"

// Stage tags the menu or detail view a conversation is currently showing.
type Stage string

const (
	StageRoot           Stage = "root"
	StageNavigationHelp Stage = "navegacion"
	StageChartGuide     Stage = "graficos"
	StageVariableMenu   Stage = "variables"
	StageStationInfo    Stage = "estaciones"
	StageDataSource     Stage = "fuente_datos"
	StageStatsSummary   Stage = "resumen_estadisticas"
)

// Chart detail stages.
const (
	StageChartLine    Stage = "grafico_lineas"
	StageChartScatter Stage = "grafico_dispersion"
	StageChartArea    Stage = "grafico_area"
	StageChartHeatmap Stage = "mapa_calor"
)

// ChartStages lists the chart detail stages in menu order.
var ChartStages = []Stage{StageChartLine, StageChartScatter, StageChartArea, StageChartHeatmap}

// NormalizeStage lowercases and trims a raw tag so "ROOT" and "root" compare equal.
func NormalizeStage(tag string) Stage {
	return Stage(strings.ToLower(strings.TrimSpace(tag)))
}

// IsChart reports whether s is one of the chart detail stages.
func (s Stage) IsChart() bool {
	for _, c := range ChartStages {
		if s == c {
			return true
		}
	}
	return false
}

// IsVariable reports whether s is a per-variable detail stage.
func (s Stage) IsVariable() bool {
	_, ok := variableIndex[VariableKey(s)]
	return ok
}
