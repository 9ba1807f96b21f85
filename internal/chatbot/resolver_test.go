package chatbot

import (
	"testing"

	"github.com/alexanderramin/ecostats/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	kb := testKnowledge(t)
	r := NewResolver(kb)

	tests := []struct {
		text      string
		station   string
		variable  domain.VariableKey
		statistic domain.Statistic
		topic     domain.Topic
	}{
		{"temperatura máxima de Halley UIS", "Halley UIS", domain.VarTemperature, domain.StatMax, ""},
		{"TEMPERATURA MAXIMA DE HALLEY UIS", "Halley UIS", domain.VarTemperature, domain.StatMax, ""},
		{"¿cuál fue la lluvia total en Girón Centro?", "Girón Centro", domain.VarPrecipitation, domain.StatSum, ""},
		{"humedad mínima en canaveral", "Cañaveral", domain.VarHumidity, domain.StatMin, ""},
		{"promedio del pm2.5 en Provenza", "Provenza", domain.VarPM25, domain.StatMean, ""},
		{"rosa de los vientos de la estación 1", "Barrancabermeja", domain.VarWindDirection, "", ""},
		{"dirección del viento en San Gil", "San Gil", domain.VarWindDirection, "", ""},
		{"velocidad máxima del viento en Cañaveral", "Cañaveral", domain.VarWindSpeed, domain.StatMax, ""},
		{"estadísticas de UIS Guatiguará", "UIS Guatiguará", "", "", ""},
		{"hola", "", "", "", domain.TopicGreeting},
		{"muchas gracias", "", "", "", domain.TopicThanks},
		{"adiós", "", "", "", domain.TopicFarewell},
		{"¿dónde está el mapa?", "", "", "", domain.TopicMap},
		{"explícame el mapa de calor", "", "", "", domain.TopicCharts},
		{"quiero ver la animación", "", "", "", domain.TopicAnimation},
		{"necesito ayuda para navegar", "", "", "", domain.TopicNavigation},
		{"¿de dónde vienen los datos?", "", "", "", domain.TopicDataSource},
		{"¿cuántas estaciones hay?", "", "", "", domain.TopicStations},
		{"xyzzy", "", "", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			m := r.Resolve(tt.text)
			if tt.station == "" {
				assert.Nil(t, m.Station)
			} else {
				require.NotNil(t, m.Station)
				assert.Equal(t, tt.station, m.Station.Name)
			}
			assert.Equal(t, tt.variable, m.Variable)
			assert.Equal(t, tt.statistic, m.Statistic)
			assert.Equal(t, tt.topic, m.Topic)
		})
	}
}

func TestResolve_StatisticsWordDoesNotBindAQI(t *testing.T) {
	r := NewResolver(testKnowledge(t))

	m := r.Resolve("estadísticas de Halley UIS")
	assert.False(t, m.HasVariable())
	assert.True(t, m.SummaryTrigger)

	m = r.Resolve("ica en Halley UIS")
	assert.Equal(t, domain.VarAQI, m.Variable)
}

func TestResolve_CalorMeansTemperatureOutsideHeatmap(t *testing.T) {
	r := NewResolver(testKnowledge(t))

	m := r.Resolve("calor máximo en Halley UIS")
	require.NotNil(t, m.Station)
	assert.Equal(t, "Halley UIS", m.Station.Name)
	assert.Equal(t, domain.VarTemperature, m.Variable)
	assert.Equal(t, domain.StatMax, m.Statistic)

	m = r.Resolve("explícame el mapa de calor")
	assert.False(t, m.HasVariable())
	assert.Equal(t, domain.TopicCharts, m.Topic)
}

func TestResolve_StationByOrdinal(t *testing.T) {
	kb := testKnowledge(t)
	r := NewResolver(kb)

	for n := 1; n <= kb.StationCount(); n++ {
		m := r.Resolve("dame la estación " + OrdinalWord(n))
		require.NotNil(t, m.Station, OrdinalWord(n))
		assert.Equal(t, kb.ListStations()[n-1], m.Station.Name)
		assert.True(t, m.StationByOrdinal)
	}

	m := r.Resolve("la estación 3")
	require.NotNil(t, m.Station)
	assert.Equal(t, "Cañaveral", m.Station.Name)
}

func TestResolve_OrdinalNeedsKeywordAndRange(t *testing.T) {
	kb := testKnowledge(t)
	r := NewResolver(kb)

	assert.Nil(t, r.Resolve("dame la tercera").Station, "no station keyword")
	assert.Nil(t, r.Resolve("la estación 40").Station, "out of range")
	assert.Nil(t, r.Resolve("la estación doce").Station, "only eleven stations")
}

func TestResolve_VariableByOrdinal(t *testing.T) {
	r := NewResolver(testKnowledge(t))

	m := r.Resolve("explícame la variable 3")
	assert.Equal(t, domain.VarPrecipitation, m.Variable)
	assert.True(t, m.VariableByOrdinal)
	assert.True(t, m.ExplainTrigger)

	m = r.Resolve("la octava variable")
	assert.Equal(t, domain.VarPressure, m.Variable)

	m = r.Resolve("la variable 9")
	assert.False(t, m.HasVariable())
}

func TestResolve_StationNameBlanked(t *testing.T) {
	r := NewResolver(testKnowledge(t))

	m := r.Resolve("estadísticas de Lagos del Cacique")
	require.NotNil(t, m.Station)
	assert.Equal(t, "Lagos del Cacique", m.Station.Name)
	assert.False(t, m.HasVariable())
	assert.Equal(t, domain.TopicNone, m.Topic)
}
