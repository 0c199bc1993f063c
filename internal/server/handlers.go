package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/alexshd/rootfind"
	"github.com/alexshd/rootfind/internal/history"
	"github.com/alexshd/rootfind/internal/metrics"
)

const maxBodyBytes = 1 << 16

// SolveResponse is returned by POST /api/solve.
type SolveResponse struct {
	Entry  history.Entry   `json:"entry"`
	Result rootfind.Result `json:"result"`
}

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Error    string   `json:"error"`
	Code     string   `json:"code"`
	Step     int      `json:"step,omitempty"`
	Estimate *float64 `json:"estimate,omitempty"`
}

// writeJSON encodes v before touching the response, so an encoding failure
// still reaches the client as a 500 with a JSON body.
func writeJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		buf.Reset()
		status = http.StatusInternalServerError
		_ = json.NewEncoder(&buf).Encode(ErrorResponse{Error: "encode response: " + err.Error(), Code: "internal"})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

// writeSolveError maps solver failures onto 422 with the outcome code, and
// everything else onto 400.
func writeSolveError(w http.ResponseWriter, err error) {
	resp := ErrorResponse{Error: err.Error(), Code: metrics.Outcome(err)}

	var se *rootfind.SolveError
	if errors.As(err, &se) {
		resp.Step = se.Step
		if !math.IsNaN(se.Estimate) && !math.IsInf(se.Estimate, 0) {
			est := se.Estimate
			resp.Estimate = &est
		}
		writeJSON(w, http.StatusUnprocessableEntity, resp)
		return
	}

	writeJSON(w, http.StatusBadRequest, resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":   "ok",
		"equation": s.eq.Name,
	})
}

// handleSolve accepts rootfind.Params as JSON. Fields left out fall back to
// the configured defaults for the chosen method.
func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: "bad_request"})
		return
	}

	var head struct {
		Method string `json:"method"`
	}
	if err := json.Unmarshal(body, &head); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid JSON: " + err.Error(), Code: "bad_request"})
		return
	}
	method, err := rootfind.ParseMethod(head.Method)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: "unknown_method"})
		return
	}

	p := s.cfg.Params(method)
	if err := json.Unmarshal(body, &p); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid JSON: " + err.Error(), Code: "bad_request"})
		return
	}
	p.Method = method

	start := time.Now()
	res, err := rootfind.Solve(s.eq, p, s.cfg.Limits())
	s.metrics.ObserveSolve(method, res, err, time.Since(start))
	entry := s.history.Record(p, res, err)

	if err != nil {
		s.logger.Warn("solve failed",
			"id", entry.ID,
			"method", method,
			"outcome", metrics.Outcome(err),
			"error", err)
		writeSolveError(w, err)
		return
	}

	s.logger.Info("solve converged",
		"id", entry.ID,
		"method", method,
		"root", res.Root,
		"iterations", res.Iterations)
	writeJSON(w, http.StatusOK, SolveResponse{Entry: entry, Result: res})
}

func (s *Server) sampleGrid(r *http.Request) (rootfind.SampleConfig, error) {
	grid := s.cfg.SampleGrid()
	q := r.URL.Query()

	for _, f := range []struct {
		key string
		dst *float64
	}{{"from", &grid.From}, {"to", &grid.To}} {
		if v := q.Get(f.key); v != "" {
			x, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return grid, fmt.Errorf("invalid %s: %w", f.key, err)
			}
			*f.dst = x
		}
	}
	if v := q.Get("points"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 2 || n > 10000 {
			return grid, fmt.Errorf("points must be an integer in [2, 10000], got %q", v)
		}
		grid.Points = n
	}
	if !(grid.From < grid.To) {
		return grid, errors.New("from must be below to")
	}

	return grid, nil
}

func (s *Server) handleSample(w http.ResponseWriter, r *http.Request) {
	grid, err := s.sampleGrid(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: "bad_request"})
		return
	}
	writeJSON(w, http.StatusOK, rootfind.Sample(s.eq, grid))
}

func (s *Server) handleBrackets(w http.ResponseWriter, r *http.Request) {
	grid, err := s.sampleGrid(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: "bad_request"})
		return
	}
	writeJSON(w, http.StatusOK, rootfind.ScanBrackets(s.eq, grid))
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.history.Entries())
}

func (s *Server) handleClearHistory(w http.ResponseWriter, r *http.Request) {
	s.history.Reset()
	w.WriteHeader(http.StatusNoContent)
}
