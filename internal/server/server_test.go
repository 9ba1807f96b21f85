package server

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/ecostats/internal/chatbot"
	"github.com/alexanderramin/ecostats/internal/config"
	"github.com/alexanderramin/ecostats/internal/domain"
	"github.com/alexanderramin/ecostats/internal/service"
)

func TestHealthz(t *testing.T) {
	s := newTestServer(t, config.Default())
	rec := do(t, s, http.MethodGet, "/healthz", nil)
	requireStatus(t, rec, http.StatusOK)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestListStations(t *testing.T) {
	s := newTestServer(t, config.Default())
	rec := do(t, s, http.MethodGet, "/api/v1/stations", nil)
	requireStatus(t, rec, http.StatusOK)

	list := decode[[]stationEntry](t, rec)
	require.Len(t, list, 11)
	assert.Equal(t, "Barrancabermeja", list[0].Name)
	assert.Equal(t, 1, list[0].Ordinal)
	assert.Equal(t, "UIS Guatiguará", list[10].Name)
	assert.NotContains(t, list[7].Variables, string(domain.VarWindSpeed), "Provenza measures air quality only")
}

func TestGetStation(t *testing.T) {
	s := newTestServer(t, config.Default())

	rec := do(t, s, http.MethodGet, "/api/v1/stations/Halley%20UIS", nil)
	requireStatus(t, rec, http.StatusOK)
	p := decode[domain.StationProfile](t, rec)
	assert.InDelta(t, 31.17, p.Stats[domain.VarTemperature].Max, 1e-9)

	rec = do(t, s, http.MethodGet, "/api/v1/stations/5", nil)
	requireStatus(t, rec, http.StatusOK)
	assert.Equal(t, "Halley UIS", decode[domain.StationProfile](t, rec).Name)

	rec = do(t, s, http.MethodGet, "/api/v1/stations/Atlantis", nil)
	requireStatus(t, rec, http.StatusNotFound)

	rec = do(t, s, http.MethodGet, "/api/v1/stations/99", nil)
	requireStatus(t, rec, http.StatusNotFound)
}

func TestGetStation_Month(t *testing.T) {
	s := newTestServer(t, config.Default())

	rec := do(t, s, http.MethodGet, "/api/v1/stations/Halley%20UIS?month=10", nil)
	requireStatus(t, rec, http.StatusOK)
	p := decode[domain.StationProfile](t, rec)
	assert.Equal(t, 2, p.Stats[domain.VarTemperature].Count)

	rec = do(t, s, http.MethodGet, "/api/v1/stations/Halley%20UIS?month=13", nil)
	requireStatus(t, rec, http.StatusBadRequest)

	rec = do(t, s, http.MethodGet, "/api/v1/stations/Halley%20UIS?month=1", nil)
	requireStatus(t, rec, http.StatusNotFound)
}

func TestGetStatistic(t *testing.T) {
	s := newTestServer(t, config.Default())

	rec := do(t, s, http.MethodGet, "/api/v1/stations/Halley%20UIS/stats/temperatura/max", nil)
	requireStatus(t, rec, http.StatusOK)
	assert.Contains(t, rec.Body.String(), `"text":"31.17 °C"`)

	cases := map[string]int{
		"/api/v1/stations/Provenza/stats/viento_velocidad/max": http.StatusNotFound,
		"/api/v1/stations/Provenza/stats/humo/max":             http.StatusNotFound,
		"/api/v1/stations/Halley%20UIS/stats/temperatura/p99":  http.StatusBadRequest,
		"/api/v1/stations/Halley%20UIS/stats/temperatura/sum":  http.StatusBadRequest,
		"/api/v1/stations/Nowhere/stats/temperatura/max":       http.StatusNotFound,
	}
	for path, status := range cases {
		t.Run(path, func(t *testing.T) {
			requireStatus(t, do(t, s, http.MethodGet, path, nil), status)
		})
	}
}

func TestVariables(t *testing.T) {
	s := newTestServer(t, config.Default())

	rec := do(t, s, http.MethodGet, "/api/v1/variables", nil)
	requireStatus(t, rec, http.StatusOK)
	assert.Len(t, decode[[]domain.VariableDescription](t, rec), 8)

	rec = do(t, s, http.MethodGet, "/api/v1/variables/PM2_5", nil)
	requireStatus(t, rec, http.StatusOK)
	assert.Equal(t, domain.VarPM25, decode[domain.VariableDescription](t, rec).Key)

	requireStatus(t, do(t, s, http.MethodGet, "/api/v1/variables/ozono", nil), http.StatusNotFound)
}

func TestSessionLifecycle(t *testing.T) {
	s := newTestServer(t, config.Default())

	rec := do(t, s, http.MethodPost, "/api/v1/sessions", nil)
	requireStatus(t, rec, http.StatusCreated)
	view := decode[service.SessionView](t, rec)
	require.Len(t, view.State.Transcript, 1)
	id := view.State.ID

	rec = do(t, s, http.MethodPost, "/api/v1/sessions/"+id+"/messages", messageRequest{Text: "temperatura máxima de Halley UIS"})
	requireStatus(t, rec, http.StatusOK)
	reply := decode[chatbot.Reply](t, rec)
	assert.Equal(t, chatbot.KindStatistic, reply.Kind)
	assert.Contains(t, reply.Message.Text, "31.17 °C")

	rec = do(t, s, http.MethodPost, "/api/v1/sessions/"+id+"/buttons", buttonRequest{Tag: "variables"})
	requireStatus(t, rec, http.StatusOK)
	assert.Len(t, decode[chatbot.Reply](t, rec).Content.Options, 8)

	rec = do(t, s, http.MethodGet, "/api/v1/sessions/"+id, nil)
	requireStatus(t, rec, http.StatusOK)
	assert.Len(t, decode[service.SessionView](t, rec).State.Transcript, 5)

	requireStatus(t, do(t, s, http.MethodDelete, "/api/v1/sessions/"+id, nil), http.StatusNoContent)
	requireStatus(t, do(t, s, http.MethodGet, "/api/v1/sessions/"+id, nil), http.StatusNotFound)
}

func TestSessionErrors(t *testing.T) {
	s := newTestServer(t, config.Default())

	requireStatus(t, do(t, s, http.MethodPost, "/api/v1/sessions/nope/messages", messageRequest{Text: "hola"}), http.StatusNotFound)
	requireStatus(t, do(t, s, http.MethodPost, "/api/v1/sessions/nope/messages", messageRequest{Text: "  "}), http.StatusBadRequest)
	requireStatus(t, do(t, s, http.MethodPost, "/api/v1/sessions/nope/buttons", buttonRequest{}), http.StatusBadRequest)
	requireStatus(t, do(t, s, http.MethodDelete, "/api/v1/sessions/nope", nil), http.StatusNotFound)
}

func TestBearerToken(t *testing.T) {
	cfg := config.Default()
	cfg.BearerToken = "s3cret"
	s := newTestServer(t, cfg)

	requireStatus(t, do(t, s, http.MethodGet, "/healthz", nil), http.StatusOK)
	requireStatus(t, do(t, s, http.MethodGet, "/api/v1/variables", nil), http.StatusUnauthorized)
	requireStatus(t, do(t, s, http.MethodGet, "/api/v1/variables", nil, "Authorization", "Bearer nope"), http.StatusUnauthorized)
	requireStatus(t, do(t, s, http.MethodGet, "/api/v1/variables", nil, "Authorization", "Bearer s3cret"), http.StatusOK)
	requireStatus(t, do(t, s, http.MethodGet, "/api/v1/variables?access_token=s3cret", nil), http.StatusUnauthorized)
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t, config.Default())
	rec := do(t, s, http.MethodOptions, "/api/v1/sessions", nil)
	requireStatus(t, rec, http.StatusNoContent)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRecovery(t *testing.T) {
	s := newTestServer(t, config.Default())
	s.Engine().GET("/boom", func(*gin.Context) { panic("boom") })
	requireStatus(t, do(t, s, http.MethodGet, "/boom", nil), http.StatusInternalServerError)
}
