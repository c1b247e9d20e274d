package main

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Brownie44l1/bank-marketing-api/internal/handlers"
	"github.com/Brownie44l1/bank-marketing-api/internal/middleware"
	"github.com/Brownie44l1/bank-marketing-api/internal/model/modeltest"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cors := &middleware.CORSConfig{Enabled: true, Origins: []string{"*"}}
	cors.LoadDefaults()

	srv := httptest.NewServer(routes(handlers.NewHandler(modeltest.NewPredictor(t), logger), cors, logger))
	t.Cleanup(srv.Close)
	return srv
}

func TestRoutesHealth(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok"}`, string(body))
	assert.NotEmpty(t, resp.Header.Get(middleware.RequestIDHeader))
}

func TestRoutesPredict(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/predict", "application/json", strings.NewReader(modeltest.ValidPayload))
	require.NoError(t, err)
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"prediction":"no"}`, string(body))
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestRoutesHealthWrongMethod(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/health", "application/json", nil)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestRoutesUnknownPath(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/docs")
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
