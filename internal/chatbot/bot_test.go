package chatbot

import (
	"testing"

	"github.com/alexanderramin/ecostats/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleText_SpecificStatistic(t *testing.T) {
	bot, _ := testBot(t)
	st := seededState(t)

	r := bot.HandleText(st, "temperatura máxima de Halley UIS")
	assert.Equal(t, KindStatistic, r.Kind)
	assert.Contains(t, r.Message.Text, "31.17 °C")
	assert.Equal(t, domain.RoleAssistant, r.Message.Role)
	require.NotNil(t, r.Intent)
	assert.Equal(t, domain.StatMax, r.Intent.Statistic)
}

func TestHandleText_CalorAsTemperature(t *testing.T) {
	bot, _ := testBot(t)

	a := bot.Answer("calor máximo en Halley UIS")
	assert.Equal(t, KindStatistic, a.Kind)
	assert.Contains(t, a.Text, "31.17 °C")
}

func TestHandleText_PrecipitationPhrasing(t *testing.T) {
	bot, _ := testBot(t)

	a := bot.Answer("lluvia máxima en Halley UIS")
	assert.Contains(t, a.Text, "máxima en 15 min")
	assert.Contains(t, a.Text, "2.40 mm")

	a = bot.Answer("lluvia total en Halley UIS")
	assert.Contains(t, a.Text, "total acumulada")
	assert.Contains(t, a.Text, "4.20 mm")
}

func TestHandleText_StatisticNotApplicable(t *testing.T) {
	bot, _ := testBot(t)

	a := bot.Answer("temperatura total en Halley UIS")
	assert.Equal(t, KindStatistic, a.Kind)
	assert.Contains(t, a.Text, "prueba con máxima, mínima o media")
}

func TestHandleText_MissingWindAtAirStation(t *testing.T) {
	bot, _ := testBot(t)

	for _, station := range []string{"Cañaveral", "Provenza", "Real de Minas"} {
		a := bot.Answer("velocidad máxima del viento en " + station)
		assert.Equal(t, KindStatistic, a.Kind)
		assert.Contains(t, a.Text, "No hay datos")
		assert.Contains(t, a.Text, station)
		assert.NotContains(t, a.Text, "0.00")
	}
}

func TestHandleText_PM25Warning(t *testing.T) {
	bot, _ := testBot(t)

	a := bot.Answer("pm2.5 máximo en Provenza")
	assert.Contains(t, a.Text, "58.30 µg/m³")
	assert.Contains(t, a.Text, "límite perjudicial de 56")

	a = bot.Answer("pm2.5 máximo en Halley UIS")
	assert.NotContains(t, a.Text, "límite perjudicial")
}

func TestHandleText_VariableAtStation(t *testing.T) {
	bot, _ := testBot(t)

	a := bot.Answer("humedad en Halley UIS")
	assert.Equal(t, KindVariableAtStation, a.Kind)
	assert.Contains(t, a.Text, "91.00 %")
	assert.Contains(t, a.Text, "52.00 %")

	a = bot.Answer("presión en Provenza")
	assert.Contains(t, a.Text, "No hay datos")
}

func TestHandleText_StationSummary(t *testing.T) {
	bot, kb := testBot(t)

	for _, name := range kb.ListStations() {
		a := bot.Answer("estadísticas de " + name)
		require.Equal(t, KindStationSummary, a.Kind, name)
		assert.Contains(t, a.Text, name)
		for _, stat := range []domain.Statistic{domain.StatMax, domain.StatMin, domain.StatMean} {
			v, err := kb.GetStatistic(name, domain.VarTemperature, stat)
			require.NoError(t, err)
			assert.Contains(t, a.Text, v.String())
		}
	}

	a := bot.Answer("estadísticas de Cañaveral")
	assert.Contains(t, a.Text, "Sin datos de: precipitación")
}

func TestHandleText_StationOrdinalSummarizes(t *testing.T) {
	bot, kb := testBot(t)

	a := bot.Answer("dame la estación " + OrdinalWord(5))
	assert.Equal(t, KindStationSummary, a.Kind)
	assert.Contains(t, a.Text, kb.ListStations()[4])
}

func TestHandleText_BareStationFallsToHelp(t *testing.T) {
	bot, _ := testBot(t)

	a := bot.Answer("Halley UIS")
	assert.Equal(t, KindHelp, a.Kind)
	assert.Equal(t, HelpMessage, a.Text)
}

func TestHandleText_Explanation(t *testing.T) {
	bot, _ := testBot(t)
	st := seededState(t)

	r := bot.HandleText(st, "¿qué es el PM2.5?")
	assert.Equal(t, KindExplanation, r.Kind)
	assert.Contains(t, r.Message.Text, "56 µg/m³")
	assert.Equal(t, domain.Stage(domain.VarPM25), st.Stage)
	assert.Equal(t, domain.Stage(domain.VarPM25), r.Content.Stage)

	r = bot.HandleText(st, "variable 7")
	assert.Equal(t, KindExplanation, r.Kind)
	assert.Equal(t, domain.Stage(domain.VarWindDirection), st.Stage)
}

func TestHandleText_GreetingKeepsStage(t *testing.T) {
	bot, _ := testBot(t)
	st := seededState(t)
	bot.HandleButton(st, "variables")

	r := bot.HandleText(st, "hola")
	assert.Equal(t, KindTopic, r.Kind)
	assert.Contains(t, r.Message.Text, "Hola")
	assert.Equal(t, domain.StageVariableMenu, st.Stage)
}

func TestHandleText_MenuTopicMovesStage(t *testing.T) {
	bot, _ := testBot(t)
	st := seededState(t)

	r := bot.HandleText(st, "¿de dónde vienen los datos?")
	assert.Equal(t, domain.StageDataSource, st.Stage)
	assert.Contains(t, r.Message.Text, RacimoURL)
}

func TestHandleText_NeverEmpty(t *testing.T) {
	bot, _ := testBot(t)
	for _, in := range []string{"", "   ", "???", "xyzzy", "la estación 99"} {
		assert.NotEmpty(t, bot.Answer(in).Text, in)
	}
}

func TestTranscriptGrowsByTwoPerTurn(t *testing.T) {
	bot, _ := testBot(t)
	st := seededState(t)

	queries := []string{"hola", "temperatura máxima de Halley UIS", "xyz", "gracias"}
	for k, q := range queries {
		bot.HandleText(st, q)
		assert.Len(t, st.Transcript, 1+2*(k+1))
	}

	bot.HandleButton(st, "graficos")
	assert.Len(t, st.Transcript, 1+2*(len(queries)+1))

	last := st.Transcript[len(st.Transcript)-2:]
	assert.Equal(t, domain.RoleUser, last[0].Role)
	assert.Equal(t, domain.RoleAssistant, last[1].Role)
}

func TestHandleText_SeedsFreshState(t *testing.T) {
	bot, _ := testBot(t)
	st := NewConversationState("fresh")

	bot.HandleText(st, "hola")
	assert.Len(t, st.Transcript, 3)
	assert.Equal(t, Greeting, st.Transcript[0].Text)
}

func TestHandleButton(t *testing.T) {
	bot, _ := testBot(t)
	st := seededState(t)

	r := bot.HandleButton(st, "variables")
	assert.Equal(t, KindButton, r.Kind)
	assert.Len(t, r.Content.Options, 8)
	assert.Equal(t, domain.StageVariableMenu, st.Stage)
	assert.Equal(t, "🔬 Variables", st.Transcript[1].Text)
	assert.Equal(t, r.Content.Text, st.Transcript[2].Text)

	r = bot.HandleButton(st, string(domain.VarTemperature))
	assert.Equal(t, domain.StageVariableMenu, r.Content.Navigation[0].Tag)
}

func TestHandleButton_UnknownTagResetsToRoot(t *testing.T) {
	bot, _ := testBot(t)
	st := seededState(t)

	r := bot.HandleButton(st, "xyz")
	assert.Equal(t, domain.StageRoot, st.Stage)
	assert.Equal(t, bot.Router().Route("root"), r.Content)
}

func TestRender_ResetsUnknownStage(t *testing.T) {
	bot, _ := testBot(t)
	st := seededState(t)

	st.SetStage("xyz")
	c := bot.Render(st)
	assert.Equal(t, domain.StageRoot, c.Stage)
	assert.Equal(t, domain.StageRoot, st.Stage)

	st.SetStage("ROOT")
	bot.Render(st)
	assert.Equal(t, domain.StageRoot, st.Stage)
}
