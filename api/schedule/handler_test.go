package schedule

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	_ "time/tzdata"

	"github.com/kilianp07/rsudist/core/calculator"
	"github.com/kilianp07/rsudist/core/logger"
)

func newTestHandler(t *testing.T, token string) http.Handler {
	t.Helper()
	calc, err := calculator.New(calculator.Config{Timezone: "UTC"}, nil, nil)
	if err != nil {
		t.Fatalf("calculator: %v", err)
	}
	return NewHandler(calc, token, "2006-01-02", logger.Nop{})
}

func TestHandler_AuthAndMethod(t *testing.T) {
	h := newTestHandler(t, "tok")

	req := httptest.NewRequest(http.MethodPost, "/api/schedule", strings.NewReader(`{"args":[16,"2020-01-01"]}`))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rr.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/schedule", nil)
	req.Header.Set("Authorization", "Bearer tok")
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405 got %d", rr.Code)
	}
}

func TestHandler_ScenarioC(t *testing.T) {
	h := newTestHandler(t, "")
	body := `{"grants":[[16,"2020-01-01"],["2020-01-01",16]]}`
	req := httptest.NewRequest(http.MethodPost, "/api/schedule", strings.NewReader(body))
	req.Header.Set("X-Request-ID", "req-1")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rr.Code, rr.Body.String())
	}
	var resp struct {
		RunID    string  `json:"run_id"`
		Timezone string  `json:"timezone"`
		Rows     [][]any `json:"rows"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.RunID != "req-1" || resp.Timezone != "UTC" {
		t.Fatalf("unexpected metadata %+v", resp)
	}
	if len(resp.Rows) != 16 {
		t.Fatalf("expected 16 rows got %d", len(resp.Rows))
	}
	if resp.Rows[0][0] != float64(2) || resp.Rows[0][1] != "2020-04-01" {
		t.Fatalf("unexpected first row %v", resp.Rows[0])
	}
	if resp.Rows[15][1] != "2024-01-01" {
		t.Fatalf("unexpected last row %v", resp.Rows[15])
	}
}

func TestHandler_NestedArgsRange(t *testing.T) {
	h := newTestHandler(t, "")
	body := `{"timezone":"America/New_York","args":[[[10,"1/1/2020"]]]}`
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/schedule", strings.NewReader(body)))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rr.Code, rr.Body.String())
	}
	var resp Response
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Rows) != 16 || resp.Timezone != "America/New_York" {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestHandler_Errors(t *testing.T) {
	h := newTestHandler(t, "")
	cases := []struct {
		body string
		code int
	}{
		{`{"args":["2020-01-01","x"]}`, http.StatusBadRequest},
		{`{"timezone":"Bad/Zone","args":[16,"2020-01-01"]}`, http.StatusBadRequest},
		{`{"args":[16,"someday"]}`, http.StatusUnprocessableEntity},
		{`not json`, http.StatusBadRequest},
	}
	for _, c := range cases {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/schedule", strings.NewReader(c.body)))
		if rr.Code != c.code {
			t.Errorf("%s: expected %d got %d", c.body, c.code, rr.Code)
		}
	}
}

func TestHandler_EmptyShape(t *testing.T) {
	h := newTestHandler(t, "")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/schedule", strings.NewReader(`{"args":[16]}`)))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rr.Code)
	}
	var resp Response
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Rows) != 0 {
		t.Fatalf("expected no rows got %d", len(resp.Rows))
	}
}
