package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/ecostats/internal/chatbot"
	"github.com/alexanderramin/ecostats/internal/config"
	"github.com/alexanderramin/ecostats/internal/knowledge"
	"github.com/alexanderramin/ecostats/internal/repository"
	"github.com/alexanderramin/ecostats/internal/service"
	"github.com/alexanderramin/ecostats/internal/testutil"
)

// testApp wires a full App backed by an in-memory DB seeded from the
// bundled dataset.
func testApp(t *testing.T) *App {
	t.Helper()
	stations := service.NewStationService(repository.NewSQLiteStationRepo(testutil.NewTestDB(t)), "", true)
	kb, err := stations.Knowledge(context.Background())
	require.NoError(t, err)

	return &App{
		Config:    config.Default(),
		Knowledge: kb,
		Stations:  stations,
		Chat:      service.NewChatService(chatbot.NewBot(kb), repository.NewMemorySessionRepo(0), nil),
	}
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, stdin string, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return stripANSI(buf.String()), err
}

func TestRootCmd_HelpWhenNotInteractive(t *testing.T) {
	out, err := executeCmd(t, testApp(t), "")
	require.NoError(t, err)
	assert.Contains(t, out, "ecostats")
	assert.Contains(t, out, "stations")
}

func TestAskCmd(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "", "ask", "temperatura", "máxima", "de", "Halley", "UIS")
	require.NoError(t, err)
	assert.Contains(t, out, "31.17 °C")

	out, err = executeCmd(t, app, "", "ask", "-v", "velocidad del viento máxima de Provenza")
	require.NoError(t, err)
	assert.Contains(t, out, "No hay datos")
	assert.Contains(t, out, "[estadistica] estación=Provenza variable=viento_velocidad")
}

func TestAskCmd_RequiresQuestion(t *testing.T) {
	_, err := executeCmd(t, testApp(t), "", "ask")
	assert.Error(t, err)
}

func TestStationsCmd(t *testing.T) {
	out, err := executeCmd(t, testApp(t), "", "stations")
	require.NoError(t, err)
	assert.Contains(t, out, "ESTACIONES RACIMO (11)")
	assert.Contains(t, out, "Barrancabermeja")
	assert.Contains(t, out, "Halley UIS")
	assert.Contains(t, out, "44 en 11 estaciones")
}

func TestStationCmd(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "", "station", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "HALLEY UIS")
	assert.Contains(t, out, "31.17 °C")

	out, err = executeCmd(t, app, "", "station", "halley", "uis")
	require.NoError(t, err)
	assert.Contains(t, out, "HALLEY UIS")

	out, err = executeCmd(t, app, "", "station", "Halley UIS", "--month", "10")
	require.NoError(t, err)
	assert.Contains(t, out, "HALLEY UIS · OCTUBRE")
}

func TestStationCmd_Errors(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "", "station", "99")
	assert.ErrorIs(t, err, knowledge.ErrStationNotFound)

	_, err = executeCmd(t, app, "", "station", "Atlantis")
	assert.ErrorIs(t, err, knowledge.ErrStationNotFound)

	_, err = executeCmd(t, app, "", "station", "1", "--month", "13")
	assert.Error(t, err)

	_, err = executeCmd(t, app, "", "station", "Halley UIS", "--month", "2")
	assert.ErrorIs(t, err, knowledge.ErrNoData)
}

func TestVariablesCmd(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "", "variables")
	require.NoError(t, err)
	assert.Contains(t, out, "1. 🌡️ Temperatura")
	assert.Contains(t, out, "8. 🎈 Presión atmosférica")

	out, err = executeCmd(t, app, "", "variables", "PM2_5")
	require.NoError(t, err)
	assert.Contains(t, out, "PM2.5")

	_, err = executeCmd(t, app, "", "variables", "ozono")
	assert.ErrorIs(t, err, knowledge.ErrVariableNotFound)
}

func TestImportCmd(t *testing.T) {
	app := testApp(t)
	path := filepath.Join(t.TempDir(), "mini.csv")
	require.NoError(t, os.WriteFile(path, []byte(
		"nombre_estacion,latitud,longitud,timestamp,temp_ext_media_C\n"+
			"Alfa,7.1,-73.1,2025-10-01 10:00:00,21.5\n"), 0o644))

	_, err := executeCmd(t, app, "", "import", path)
	require.Error(t, err, "existing data needs --yes when not interactive")
	assert.Contains(t, err.Error(), "--yes")

	out, err := executeCmd(t, app, "", "import", path, "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "✔ Importado: 1 estaciones, 1 lecturas")

	last, err := app.Stations.LastImport(context.Background())
	require.NoError(t, err)
	assert.Equal(t, path, last.Source)
}

func TestImportCmd_BadFile(t *testing.T) {
	_, err := executeCmd(t, testApp(t), "", "import", "/does/not/exist.csv", "--yes")
	assert.Error(t, err)
}

func TestChatCmd_Plain(t *testing.T) {
	input := strings.Join([]string{
		"hola",
		"/3",
		"temperatura máxima de Halley UIS",
		"/menu",
		"/salir",
		"this line is never read",
	}, "\n")

	out, err := executeCmd(t, testApp(t), input, "chat", "--plain")
	require.NoError(t, err)

	assert.Contains(t, out, "Soy EcoBot")
	assert.Contains(t, out, "/3 🔬 Variables")
	assert.Contains(t, out, "🌡️ Temperatura", "pressing /3 lists the variables")
	assert.Contains(t, out, "31.17 °C")
	assert.NotContains(t, out, "never read")
}

func TestChatCmd_PlainEndsAtEOF(t *testing.T) {
	out, err := executeCmd(t, testApp(t), "gracias", "chat", "--plain")
	require.NoError(t, err)
	assert.Contains(t, out, "Con gusto")
}

func TestButtonTag(t *testing.T) {
	c := chatbot.Content{
		Options:    []chatbot.Button{{Label: "Sí", Tag: "resumen_estadisticas"}},
		Navigation: []chatbot.Button{{Label: "⬅️ Volver", Tag: "root"}},
	}
	assert.Equal(t, "resumen_estadisticas", buttonTag(c, "1"))
	assert.Equal(t, "root", buttonTag(c, "2"))
	assert.Equal(t, "3", buttonTag(c, "3"))
	assert.Equal(t, "graficos", buttonTag(c, "graficos"))
}

func TestFlagValidation(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "", "station", "1", "--month", "0")
	assert.ErrorContains(t, err, "expected 1-12")

	_, err = executeCmd(t, app, "", "station", "1", "--month", "octubre")
	assert.ErrorContains(t, err, "expected 1-12")

	_, err = executeCmd(t, app, "", "serve", "--port", "70000")
	assert.ErrorContains(t, err, "expected 1-65535")
}

func TestMonthValue(t *testing.T) {
	var m monthValue
	require.NoError(t, m.Set("11"))
	assert.Equal(t, "11", m.String())
	assert.Equal(t, "mes", m.Type())
	assert.Error(t, m.Set("13"))
	assert.Equal(t, monthValue(11), m, "a rejected value leaves the flag unchanged")
}
