package schedule

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/kilianp07/rsudist/core/calculator"
	"github.com/kilianp07/rsudist/core/logger"
	"github.com/kilianp07/rsudist/pkg/export"
)

// Calculator computes schedules for the handler.
type Calculator interface {
	Calculate(req calculator.Request) (calculator.Result, error)
}

// Request is the JSON body of POST /api/schedule. Grants is a range of
// [shares, date] pairs in either column order; Args holds two positional
// scalars instead. Grants wins when both are set.
type Request struct {
	Timezone string  `json:"timezone"`
	Grants   [][]any `json:"grants"`
	Args     []any   `json:"args"`
}

// Response carries the schedule grid as [quantity, date] rows.
type Response struct {
	RunID    string   `json:"run_id"`
	Timezone string   `json:"timezone"`
	Rows     [][2]any `json:"rows"`
}

const maxBodyBytes = 1 << 20

// NewHandler returns an HTTP handler computing schedules via POST /api/schedule.
// Requests must include an Authorization header with "Bearer <token>" when token is non-empty.
func NewHandler(calc Calculator, token, dateLayout string, log logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if token != "" {
			auth := r.Header.Get("Authorization")
			if auth != "Bearer "+token {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
		}
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", http.MethodPost)
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var body Request
		dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
		dec.UseNumber()
		if err := dec.Decode(&body); err != nil {
			http.Error(w, fmt.Sprintf("invalid request body: %v", err), http.StatusBadRequest)
			return
		}

		runID := r.Header.Get("X-Request-ID")
		if runID == "" {
			runID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", runID)

		res, err := calc.Calculate(calculator.Request{
			RunID:    runID,
			Source:   "api",
			Timezone: body.Timezone,
			Args:     body.args(),
		})
		if err != nil {
			http.Error(w, err.Error(), statusFor(err))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		resp := Response{RunID: res.RunID, Timezone: res.Timezone, Rows: export.Rows(res.Schedule, dateLayout)}
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			log.Errorf("encode response: %v", err)
		}
	})
}

func (b Request) args() []any {
	if b.Grants != nil {
		return []any{b.Grants}
	}
	// a single nested array in args is a range too
	if len(b.Args) == 1 {
		if rows, ok := nestedRange(b.Args[0]); ok {
			return []any{rows}
		}
	}
	return b.Args
}

func nestedRange(v any) ([][]any, bool) {
	outer, ok := v.([]any)
	if !ok {
		return nil, false
	}
	rows := make([][]any, len(outer))
	for i, r := range outer {
		row, ok := r.([]any)
		if !ok {
			return nil, false
		}
		rows[i] = row
	}
	return rows, true
}

func statusFor(err error) int {
	switch calculator.Reason(err) {
	case "invalid_argument", "timezone":
		return http.StatusBadRequest
	}
	// malformed dates and other input problems
	return http.StatusUnprocessableEntity
}
