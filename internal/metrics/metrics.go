package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/alexshd/rootfind"
)

// Metrics provides observability for solve requests.
type Metrics struct {
	// Solve outcomes by method and outcome
	SolveOutcome *prometheus.CounterVec

	// Iterations per solve by method
	Iterations *prometheus.HistogramVec

	// Wall-clock duration per solve by method
	SolveLatency *prometheus.HistogramVec
}

// New creates a Metrics instance registered on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		SolveOutcome: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "rootfind_solve_outcomes_total",
			Help: "Total solve outcomes by method and outcome",
		}, []string{"method", "outcome"}),

		Iterations: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "rootfind_solve_iterations",
			Help:    "Iterations performed per solve",
			Buckets: []float64{1, 2, 5, 10, 20, 50, 100, 200, 500, 1000},
		}, []string{"method"}),

		SolveLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "rootfind_solve_duration_seconds",
			Help:    "Duration of a single solve",
			Buckets: []float64{1e-6, 5e-6, 1e-5, 5e-5, 1e-4, 5e-4, 1e-3, 5e-3, 1e-2},
		}, []string{"method"}),
	}
}

// Outcome classifies a solve error into a low-cardinality label.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "converged"
	case errors.Is(err, rootfind.ErrDomain):
		return "domain"
	case errors.Is(err, rootfind.ErrInvalidBracket):
		return "invalid_bracket"
	case errors.Is(err, rootfind.ErrDerivativeZero):
		return "derivative_zero"
	case errors.Is(err, rootfind.ErrDivergence):
		return "divergence"
	case errors.Is(err, rootfind.ErrMaxIterations):
		return "max_iterations"
	case errors.Is(err, rootfind.ErrInvalidTolerance):
		return "invalid_tolerance"
	default:
		return "error"
	}
}

// ObserveSolve records one finished solve.
func (m *Metrics) ObserveSolve(method rootfind.Method, res rootfind.Result, err error, d time.Duration) {
	if m == nil {
		return
	}
	m.SolveOutcome.WithLabelValues(string(method), Outcome(err)).Inc()
	m.Iterations.WithLabelValues(string(method)).Observe(float64(res.Iterations))
	m.SolveLatency.WithLabelValues(string(method)).Observe(d.Seconds())
}
