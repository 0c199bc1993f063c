package server

import (
	"bytes"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/alexshd/rootfind"
	"github.com/alexshd/rootfind/internal/config"
	"github.com/alexshd/rootfind/internal/history"
	"github.com/alexshd/rootfind/internal/logging"
)

const lowerRoot = 0.8329920038610219

// ServerSuite exercises the HTTP layer against the real solvers.
type ServerSuite struct {
	suite.Suite
	server *Server
	router http.Handler
}

func (s *ServerSuite) SetupTest() {
	s.server = New(rootfind.LogEquation(), config.Default(), logging.Discard())
	s.router = s.server.Routes()
}

func TestServerSuite(t *testing.T) {
	suite.Run(t, new(ServerSuite))
}

func (s *ServerSuite) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *ServerSuite) TestHealth() {
	rec := s.do(http.MethodGet, "/health", "")
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), "ln(5x-3)")
}

func (s *ServerSuite) TestSolve_AllMethods() {
	for _, body := range []string{
		`{"method":"bisection","a":0.7,"b":1,"tolerance":1e-9}`,
		`{"method":"newton","x0":1,"tolerance":1e-9}`,
		`{"method":"iterative","x0":1,"tolerance":1e-9}`,
	} {
		rec := s.do(http.MethodPost, "/api/solve", body)
		require.Equal(s.T(), http.StatusOK, rec.Code, rec.Body.String())

		var resp SolveResponse
		require.NoError(s.T(), json.NewDecoder(rec.Body).Decode(&resp))
		s.InDelta(lowerRoot, resp.Result.Root, 1e-8)
		s.NotEmpty(resp.Result.History)
		s.Equal(resp.Result.Root, resp.Entry.Root)
	}

	s.Len(s.server.history.Entries(), 3)
}

func (s *ServerSuite) TestSolve_DefaultsFromConfig() {
	rec := s.do(http.MethodPost, "/api/solve", `{"method":"Newton"}`)
	require.Equal(s.T(), http.StatusOK, rec.Code, rec.Body.String())

	var resp SolveResponse
	require.NoError(s.T(), json.NewDecoder(rec.Body).Decode(&resp))
	s.Equal(rootfind.MethodNewton, resp.Entry.Method)
	s.Equal(1.0, resp.Entry.Params.X0)
	s.Equal(rootfind.DefaultTolerance, resp.Entry.Params.Tolerance)
}

func (s *ServerSuite) TestSolve_InvalidBracket() {
	rec := s.do(http.MethodPost, "/api/solve", `{"method":"bisection","a":1,"b":2}`)
	s.Equal(http.StatusUnprocessableEntity, rec.Code)

	var resp ErrorResponse
	require.NoError(s.T(), json.NewDecoder(rec.Body).Decode(&resp))
	s.Equal("invalid_bracket", resp.Code)
	s.Nil(resp.Estimate)

	// Failures still land in the results table.
	entries := s.server.history.Entries()
	require.Len(s.T(), entries, 1)
	s.NotEmpty(entries[0].Error)
}

func (s *ServerSuite) TestSolve_MaxIterationsCarriesEstimate() {
	rec := s.do(http.MethodPost, "/api/solve", `{"method":"iterative","x0":1,"tolerance":1e-15,"max_iterations":3}`)
	s.Equal(http.StatusUnprocessableEntity, rec.Code)

	var resp ErrorResponse
	require.NoError(s.T(), json.NewDecoder(rec.Body).Decode(&resp))
	s.Equal("max_iterations", resp.Code)
	s.Equal(3, resp.Step)
	require.NotNil(s.T(), resp.Estimate)
	s.InDelta(lowerRoot, *resp.Estimate, 1e-3)
}

func (s *ServerSuite) TestSolve_DomainError() {
	rec := s.do(http.MethodPost, "/api/solve", `{"method":"newton","x0":0.5}`)
	s.Equal(http.StatusUnprocessableEntity, rec.Code)
	s.Contains(rec.Body.String(), `"code":"domain"`)
}

func (s *ServerSuite) TestSolve_BadRequests() {
	s.Equal(http.StatusBadRequest, s.do(http.MethodPost, "/api/solve", "not json").Code)
	s.Equal(http.StatusBadRequest, s.do(http.MethodPost, "/api/solve", `{"method":"secant"}`).Code)
	s.Equal(http.StatusBadRequest, s.do(http.MethodPost, "/api/solve", `{"method":"newton","x0":"one"}`).Code)
	s.Equal(http.StatusMethodNotAllowed, s.do(http.MethodGet, "/api/solve", "").Code)
	s.Empty(s.server.history.Entries())
}

func (s *ServerSuite) TestSample() {
	rec := s.do(http.MethodGet, "/api/sample", "")
	require.Equal(s.T(), http.StatusOK, rec.Code)

	var points []rootfind.Point
	require.NoError(s.T(), json.NewDecoder(rec.Body).Decode(&points))
	s.Len(points, 100)
	s.False(points[0].Defined)
	s.True(points[99].Defined)

	rec = s.do(http.MethodGet, "/api/sample?from=1&to=2&points=11", "")
	require.Equal(s.T(), http.StatusOK, rec.Code)
	require.NoError(s.T(), json.NewDecoder(rec.Body).Decode(&points))
	s.Len(points, 11)
	s.Equal(1.0, points[0].X)

	s.Equal(http.StatusBadRequest, s.do(http.MethodGet, "/api/sample?points=1", "").Code)
	s.Equal(http.StatusBadRequest, s.do(http.MethodGet, "/api/sample?from=3&to=2", "").Code)
	s.Equal(http.StatusBadRequest, s.do(http.MethodGet, "/api/sample?from=x", "").Code)
}

func (s *ServerSuite) TestSolve_OverflowingEndpointIsDomainError() {
	rec := s.do(http.MethodPost, "/api/solve", `{"method":"bisection","a":1,"b":1e200,"tolerance":1e-8}`)
	s.Equal(http.StatusUnprocessableEntity, rec.Code)
	require.NotEmpty(s.T(), rec.Body.String())

	var resp ErrorResponse
	require.NoError(s.T(), json.NewDecoder(rec.Body).Decode(&resp))
	s.Equal("domain", resp.Code)
	s.Equal(0, resp.Step)
}

func (s *ServerSuite) TestSample_OverflowingPointsUndefined() {
	rec := s.do(http.MethodGet, "/api/sample?from=1&to=1e200&points=3", "")
	require.Equal(s.T(), http.StatusOK, rec.Code)
	require.NotEmpty(s.T(), rec.Body.String())

	var points []rootfind.Point
	require.NoError(s.T(), json.NewDecoder(rec.Body).Decode(&points))
	require.Len(s.T(), points, 3)
	s.True(points[0].Defined)
	s.False(points[1].Defined)
	s.False(points[2].Defined)
}

func TestWriteJSON_EncodeFailure(t *testing.T) {
	rec := httptest.NewRecorder()
	writeJSON(rec, http.StatusOK, map[string]float64{"y": math.Inf(-1)})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "internal", resp.Code)
	assert.Contains(t, resp.Error, "encode response")
}

func (s *ServerSuite) TestBrackets() {
	rec := s.do(http.MethodGet, "/api/brackets", "")
	require.Equal(s.T(), http.StatusOK, rec.Code)

	var brackets []rootfind.Bracket
	require.NoError(s.T(), json.NewDecoder(rec.Body).Decode(&brackets))
	require.Len(s.T(), brackets, 2)
	s.InDelta(0.8, brackets[0].A, 1e-9)
	s.InDelta(5.2, brackets[1].B, 1e-9)
}

func (s *ServerSuite) TestHistoryLifecycle() {
	s.do(http.MethodPost, "/api/solve", `{"method":"newton","x0":1}`)
	s.do(http.MethodPost, "/api/solve", `{"method":"bisection","a":1,"b":2}`)

	rec := s.do(http.MethodGet, "/api/history", "")
	require.Equal(s.T(), http.StatusOK, rec.Code)

	var entries []history.Entry
	require.NoError(s.T(), json.NewDecoder(rec.Body).Decode(&entries))
	require.Len(s.T(), entries, 2)
	s.Equal(rootfind.MethodNewton, entries[0].Method)
	s.Equal(rootfind.MethodBisection, entries[1].Method)

	s.Equal(http.StatusNoContent, s.do(http.MethodDelete, "/api/history", "").Code)
	s.Empty(s.server.history.Entries())
}

func (s *ServerSuite) TestMetrics() {
	s.do(http.MethodPost, "/api/solve", `{"method":"newton","x0":1}`)
	s.do(http.MethodPost, "/api/solve", `{"method":"bisection","a":1,"b":2}`)

	rec := s.do(http.MethodGet, "/metrics", "")
	require.Equal(s.T(), http.StatusOK, rec.Code)

	body := rec.Body.String()
	s.Contains(body, `rootfind_solve_outcomes_total{method="newton",outcome="converged"} 1`)
	s.Contains(body, `rootfind_solve_outcomes_total{method="bisection",outcome="invalid_bracket"} 1`)
	s.True(strings.Contains(body, "rootfind_solve_iterations_bucket"))
}

func TestHTTPServer(t *testing.T) {
	cfg := config.Default()
	cfg.Server.Port = 9191

	srv := New(rootfind.LogEquation(), cfg, logging.Discard()).HTTPServer()
	assert.Equal(t, "127.0.0.1:9191", srv.Addr)
	assert.Equal(t, cfg.Server.ReadHeaderTimeout.Duration, srv.ReadHeaderTimeout)
	assert.NotNil(t, srv.Handler)
}
