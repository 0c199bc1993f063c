package rootfind

import (
	"errors"
	"fmt"
)

// Failure modes reported by the solvers. Every solver failure is returned as a
// *SolveError wrapping one of these, so callers match with errors.Is.
var (
	// ErrDomain indicates an evaluation outside the equation's defined domain
	// (5x−3 ≤ 0 for the log equation). Never clamped.
	ErrDomain = errors.New("rootfind: argument outside equation domain")

	// ErrInvalidBracket indicates a ≥ b or f(a)·f(b) ≥ 0.
	ErrInvalidBracket = errors.New("rootfind: interval does not bracket a root")

	// ErrDerivativeZero indicates |f′(x)| fell below the derivative floor.
	ErrDerivativeZero = errors.New("rootfind: derivative vanished")

	// ErrDivergence indicates the sequence left the sanity bound.
	ErrDivergence = errors.New("rootfind: sequence diverged")

	// ErrMaxIterations indicates the iteration budget ran out before the
	// stopping tolerance was met. The last estimate is on the SolveError.
	ErrMaxIterations = errors.New("rootfind: iteration budget exhausted")

	// ErrInvalidTolerance indicates a negative, NaN or infinite tolerance.
	ErrInvalidTolerance = errors.New("rootfind: invalid tolerance")

	// ErrNoFixedPointMap indicates the equation carries no g(x).
	ErrNoFixedPointMap = errors.New("rootfind: equation has no fixed-point map")

	// ErrUnknownMethod indicates a method name that is not one of the three solvers.
	ErrUnknownMethod = errors.New("rootfind: unknown method")
)

// SolveError wraps a failure with the solver context at the point it happened.
type SolveError struct {
	Method   Method
	Step     int     // Iteration index when the failure occurred (0 = before iterating)
	Estimate float64 // Last estimate; for bisection the current midpoint
	Err      error
}

func (e *SolveError) Error() string {
	return fmt.Sprintf("%s: step %d (x=%g): %v", e.Method, e.Step, e.Estimate, e.Err)
}

func (e *SolveError) Unwrap() error {
	return e.Err
}

// LastEstimate extracts the estimate attached to a solver failure.
// The second return is false when err is not a *SolveError.
func LastEstimate(err error) (float64, bool) {
	var se *SolveError
	if errors.As(err, &se) {
		return se.Estimate, true
	}
	return 0, false
}

func failure(m Method, step int, x float64, err error) *SolveError {
	return &SolveError{Method: m, Step: step, Estimate: x, Err: err}
}
