package chatbot

import (
	"sort"

	"github.com/alexanderramin/ecostats/internal/domain"
)

// Knowledge is the read-only reference data the chatbot consults.
// *knowledge.Base satisfies it.
type Knowledge interface {
	ListStations() []string
	StationCount() int
	GetStation(name string) (*domain.StationProfile, error)
	GetStationByOrdinal(n int) (*domain.StationProfile, error)
	GetVariableDescription(key domain.VariableKey) (domain.VariableDescription, error)
	Variables() []domain.VariableDescription
	GetStatistic(station string, variable domain.VariableKey, stat domain.Statistic) (domain.StatValue, error)
}

type variableRule struct {
	key      domain.VariableKey
	keywords []keyword
}

// variableRules is scanned in order; direction must precede plain wind.
var variableRules = []variableRule{
	{domain.VarWindDirection, []keyword{sub("rosa de"), word("rosa"), sub("direccion")}},
	{domain.VarTemperature, []keyword{sub("temperatura"), word("temp"), sub("termic"), word("calor")}},
	{domain.VarHumidity, []keyword{sub("humed")}},
	{domain.VarPrecipitation, []keyword{sub("precipitac"), sub("lluvi"), sub("llueve"), sub("llovi")}},
	{domain.VarPM25, []keyword{sub("pm2.5"), sub("pm2,5"), sub("pm 2.5"), sub("pm25"), word("pm"), sub("particula")}},
	{domain.VarAQI, []keyword{word("ica"), word("aqi"), sub("calidad del aire"), sub("indice de calidad"), sub("contamina")}},
	{domain.VarWindSpeed, []keyword{sub("viento"), sub("anemometr"), sub("velocidad")}},
	{domain.VarPressure, []keyword{sub("presion"), sub("barometr"), word("hpa")}},
}

type statisticRule struct {
	stat     domain.Statistic
	keywords []keyword
}

// No bare "min": it would match "15 min".
var statisticRules = []statisticRule{
	{domain.StatMax, []keyword{sub("maxim"), sub("mayor"), word("max"), sub("mas alta"), sub("mas alto")}},
	{domain.StatMin, []keyword{sub("minim"), sub("menor"), sub("mas baja"), sub("mas bajo")}},
	{domain.StatMean, []keyword{sub("media"), sub("promedio"), word("medio")}},
	{domain.StatSum, []keyword{word("total"), sub("sumatoria"), sub("acumulad"), word("suma")}},
}

type topicRule struct {
	topic    domain.Topic
	keywords []keyword
}

var topicRules = []topicRule{
	{domain.TopicGreeting, []keyword{word("hola"), word("holi"), sub("buenos dias"), sub("buenas tardes"), sub("buenas noches"), word("buenas"), word("saludos"), word("hey"), word("que tal")}},
	{domain.TopicThanks, []keyword{sub("gracias"), sub("agradec")}},
	{domain.TopicFarewell, []keyword{sub("adios"), word("chao"), word("chau"), sub("hasta luego"), sub("hasta pronto"), sub("nos vemos"), word("bye")}},
	{domain.TopicCharts, []keyword{sub("mapa de calor"), sub("analisis"), sub("grafic"), sub("visualiza")}},
	{domain.TopicMap, []keyword{word("mapa"), sub("ubicacion"), sub("donde queda"), sub("donde esta")}},
	{domain.TopicAnimation, []keyword{sub("animaci"), sub("animad")}},
	{domain.TopicNavigation, []keyword{sub("ayuda"), sub("navega"), sub("como uso"), sub("como funciona"), word("menu"), sub("que puedes hacer")}},
	{domain.TopicDataSource, []keyword{sub("fuente"), sub("racimo"), sub("de donde vienen"), sub("origen de los datos")}},
	{domain.TopicStations, []keyword{word("estaciones"), word("stations")}},
}

var (
	summaryTriggers = []keyword{sub("estadistica"), sub("datos de"), sub("resumen"), sub("informacion de"), word("info")}
	explainTriggers = []keyword{word("que es"), word("que son"), sub("explica"), sub("que significa"), sub("que mide"), sub("para que sirve"), sub("definicion"), word("define")}
)

type stationName struct {
	folded string
	name   string
}

// Resolver maps free text to an IntentMatch with ordered keyword rules.
// It never fails: slots it cannot fill are left empty.
type Resolver struct {
	kb    Knowledge
	names []stationName
}

// NewResolver precomputes folded station names, longest first, so a name that
// contains another name is tried before it.
func NewResolver(kb Knowledge) *Resolver {
	list := kb.ListStations()
	names := make([]stationName, 0, len(list))
	for _, n := range list {
		names = append(names, stationName{folded: fold(n), name: n})
	}
	sort.SliceStable(names, func(i, j int) bool {
		return len(names[i].folded) > len(names[j].folded)
	})
	return &Resolver{kb: kb, names: names}
}

// Resolve fills station, variable, statistic and topic slots in that priority.
func (r *Resolver) Resolve(text string) domain.IntentMatch {
	u := newUtterance(text)

	m := domain.IntentMatch{
		SummaryTrigger: anyIn(u, summaryTriggers),
		ExplainTrigger: anyIn(u, explainTriggers),
	}

	u = r.bindStation(&m, u)
	// "mapa de calor" names a chart, not the temperature variable.
	bindVariable(&m, u.without("mapa de calor"))

	for _, rule := range statisticRules {
		if anyIn(u, rule.keywords) {
			m.Statistic = rule.stat
			break
		}
	}
	for _, rule := range topicRules {
		if anyIn(u, rule.keywords) {
			m.Topic = rule.topic
			break
		}
	}
	return m
}

// bindStation tries a name match, then an ordinal next to the word "estación".
// The returned utterance has the matched name blanked out.
func (r *Resolver) bindStation(m *domain.IntentMatch, u utterance) utterance {
	for _, n := range r.names {
		if n.folded == "" || !sub(n.folded).in(u) {
			continue
		}
		p, err := r.kb.GetStation(n.name)
		if err != nil {
			continue
		}
		m.Station = p
		return u.without(n.folded)
	}

	if !u.hasToken("estacion") && !u.hasToken("station") {
		return u
	}
	n, ok := firstOrdinal(u.tokens, r.kb.StationCount())
	if !ok {
		return u
	}
	p, err := r.kb.GetStationByOrdinal(n)
	if err != nil {
		return u
	}
	m.Station = p
	m.StationByOrdinal = true
	return u
}

func bindVariable(m *domain.IntentMatch, u utterance) {
	for _, rule := range variableRules {
		if anyIn(u, rule.keywords) {
			m.Variable = rule.key
			return
		}
	}

	if !u.hasToken("variable") {
		return
	}
	if n, ok := firstOrdinal(u.tokens, len(domain.Variables)); ok {
		m.Variable = domain.Variables[n-1]
		m.VariableByOrdinal = true
	}
}
