package server

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/ecostats/internal/chatbot"
	"github.com/alexanderramin/ecostats/internal/config"
	"github.com/alexanderramin/ecostats/internal/repository"
	"github.com/alexanderramin/ecostats/internal/service"
	"github.com/alexanderramin/ecostats/internal/testutil"
)

func newTestServer(t *testing.T, cfg config.Config) *Server {
	t.Helper()
	kb := testutil.NewTestKnowledge(t)
	stations := service.NewStationService(repository.NewSQLiteStationRepo(testutil.NewTestDB(t)), "", true)
	chat := service.NewChatService(chatbot.NewBot(kb), repository.NewMemorySessionRepo(0), nil)
	return New(cfg, kb, stations, chat, nil)
}

func do(t *testing.T, s *Server, method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	s.Engine().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out struct {
		Data T `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out.Data
}

func requireStatus(t *testing.T, rec *httptest.ResponseRecorder, status int) {
	t.Helper()
	require.Equal(t, status, rec.Code, rec.Body.String())
}

