package rootfind

import (
	"fmt"
	"math"
	"strings"
)

// Defaults shared by the three solvers.
const (
	DefaultTolerance       = 1e-4
	DefaultMaxIterations   = 1000
	DefaultDerivativeFloor = 1e-12
	DefaultDivergenceBound = 1e10
)

// Method names a solving algorithm.
type Method string

const (
	MethodBisection Method = "bisection"
	MethodNewton    Method = "newton"
	MethodIterative Method = "iterative"
)

// Methods lists the supported algorithms in display order.
func Methods() []Method {
	return []Method{MethodBisection, MethodNewton, MethodIterative}
}

// ParseMethod maps a user-supplied name onto a Method.
func ParseMethod(s string) (Method, error) {
	switch m := Method(strings.ToLower(strings.TrimSpace(s))); m {
	case MethodBisection, MethodNewton, MethodIterative:
		return m, nil
	case "dichotomy":
		return MethodBisection, nil
	case "fixed-point", "fixedpoint":
		return MethodIterative, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMethod, s)
	}
}

// Step is one entry of the iteration record.
//
// For bisection A and B hold the bracket after the step, X the midpoint and
// FX = f(X). For Newton and fixed-point iteration X is the iterate xₙ the
// step started from, FX is f(xₙ) and A, B are zero.
type Step struct {
	K     int     `json:"k"`
	A     float64 `json:"a,omitempty"`
	B     float64 `json:"b,omitempty"`
	X     float64 `json:"x"`
	FX    float64 `json:"fx"`
	Delta float64 `json:"delta"` // Half-width for bisection, |xₙ₊₁ − xₙ| otherwise
}

// Result is a converged root plus the iteration record that produced it.
// A Result is created per call and never mutated by the solver afterwards.
type Result struct {
	Method     Method  `json:"method"`
	Root       float64 `json:"root"`
	Iterations int     `json:"iterations"`
	History    []Step  `json:"history,omitempty"`
}

// Residual returns |FX| of the last recorded step, or NaN for an empty record.
func (r Result) Residual() float64 {
	if len(r.History) == 0 {
		return math.NaN()
	}
	return math.Abs(r.History[len(r.History)-1].FX)
}

func checkTolerance(m Method, tolerance float64) error {
	if math.IsNaN(tolerance) || math.IsInf(tolerance, 0) || tolerance < 0 {
		return failure(m, 0, math.NaN(), fmt.Errorf("%w: %g", ErrInvalidTolerance, tolerance))
	}
	return nil
}

func iterationBudget(maxIterations int) int {
	if maxIterations <= 0 {
		return DefaultMaxIterations
	}
	return maxIterations
}
