package rootfind

import (
	"errors"
	"math"
)

// SolveFunc runs one solver at the given tolerance.
// Implementations must be pure so a sweep is reproducible.
type SolveFunc func(tolerance float64) (Result, error)

// SweepPoint contains measurements from a single tolerance level.
type SweepPoint struct {
	Tolerance  float64 // ε passed to the solver
	Root       float64 // Returned root (last estimate on failure)
	Iterations int     // Iterations performed
	Error      float64 // |Root − reference|; NaN when no reference was given
	Err        error   // Solver failure, nil when converged
}

// DefaultTolerances returns ε = 1e-2 … 1e-10, shrinking by a decade per level.
func DefaultTolerances() []float64 {
	levels := make([]float64, 0, 9)
	for p := 2; p <= 10; p++ {
		levels = append(levels, math.Pow(10, -float64(p)))
	}
	return levels
}

// ToleranceSweep runs solve once per tolerance level, in the order given, and
// records how the error against reference evolves. Pass math.NaN() as
// reference when the true root is unknown.
func ToleranceSweep(solve SolveFunc, tolerances []float64, reference float64) []SweepPoint {
	points := make([]SweepPoint, 0, len(tolerances))

	for _, eps := range tolerances {
		res, err := solve(eps)
		root := res.Root
		if err != nil {
			if last, ok := LastEstimate(err); ok && errors.Is(err, ErrMaxIterations) {
				root = last
			}
		}

		p := SweepPoint{
			Tolerance:  eps,
			Root:       root,
			Iterations: res.Iterations,
			Error:      math.NaN(),
			Err:        err,
		}
		if !math.IsNaN(reference) {
			p.Error = math.Abs(root - reference)
		}
		points = append(points, p)
	}

	return points
}

// CorrectDigits estimates the number of correct leading decimal digits of an
// absolute error. Zero error maps to 16, the limit of float64.
func CorrectDigits(absErr float64) int {
	if absErr == 0 {
		return 16
	}
	if math.IsNaN(absErr) || math.IsInf(absErr, 0) || absErr >= 1 {
		return 0
	}
	d := int(math.Floor(-math.Log10(absErr)))
	if d > 16 {
		d = 16
	}
	return d
}
