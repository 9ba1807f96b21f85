package domain

// Topic tags non-statistical queries.
type Topic string

const (
	TopicNone       Topic = ""
	TopicGreeting   Topic = "saludo"
	TopicFarewell   Topic = "despedida"
	TopicThanks     Topic = "agradecimiento"
	TopicMap        Topic = "mapa"
	TopicAnimation  Topic = "animacion"
	TopicCharts     Topic = "graficos"
	TopicNavigation Topic = "navegacion"
	TopicDataSource Topic = "fuente_datos"
	TopicStations   Topic = "estaciones"
)

// IntentMatch is the transient result of resolving one user utterance.
type IntentMatch struct {
	Station   *StationProfile `json:"station,omitempty"`
	Variable  VariableKey     `json:"variable,omitempty"`
	Statistic Statistic       `json:"statistic,omitempty"`
	Topic     Topic           `json:"topic,omitempty"`

	StationByOrdinal  bool `json:"station_by_ordinal,omitempty"`
	VariableByOrdinal bool `json:"variable_by_ordinal,omitempty"`
	SummaryTrigger    bool `json:"summary_trigger,omitempty"`
	ExplainTrigger    bool `json:"explain_trigger,omitempty"`
}

// HasStation reports whether a station was bound.
func (m IntentMatch) HasStation() bool { return m.Station != nil }

// HasVariable reports whether a variable was bound.
func (m IntentMatch) HasVariable() bool { return m.Variable != "" }

// HasStatistic reports whether a statistic was bound.
func (m IntentMatch) HasStatistic() bool { return m.Statistic != "" }
