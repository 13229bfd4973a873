package app

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/rsudist/config"
	"github.com/kilianp07/rsudist/core/calculator"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.SetDefaults()
	return cfg
}

func TestNewAndHandler(t *testing.T) {
	svc, err := New(testConfig())
	require.NoError(t, err)

	res, err := svc.Calculator.Calculate(calculator.Request{Source: "test", Args: []any{16, "2020-01-01"}})
	require.NoError(t, err)
	assert.Len(t, res.Schedule, 16)

	h := svc.Handler()
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/schedule", strings.NewReader(`{"args":[32,"2020-01-01"]}`)))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `[2,"2020-04-01"]`)
}

func TestNewRejectsBadLevel(t *testing.T) {
	cfg := testConfig()
	cfg.Logging.Level = "chatty"
	_, err := New(cfg)
	assert.Error(t, err)
}

func TestNewWithSinks(t *testing.T) {
	cfg := testConfig()
	cfg.Metrics.PrometheusEnabled = true
	cfg.Metrics.LogEnabled = true
	svc, err := New(cfg)
	require.NoError(t, err)
	res, err := svc.Calculator.Calculate(calculator.Request{Source: "test", Args: []any{16, "2020-01-01"}})
	require.NoError(t, err)
	assert.Equal(t, 16, res.Schedule.Total())
}
