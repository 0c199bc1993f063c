package rootfind

import (
	"fmt"
	"math"
)

// BisectionSolver halves a sign-changing bracket until its half-width drops
// below the tolerance. After k iterations the error is at most (b₀−a₀)/2^(k+1).
type BisectionSolver struct {
	Equation Equation
}

// NewBisectionSolver returns a bisection solver for eq.
func NewBisectionSolver(eq Equation) *BisectionSolver {
	return &BisectionSolver{Equation: eq}
}

// Solve finds a root of f inside [a, b].
//
// The bracket is validated before any iteration: a < b, both ends defined
// and f(a)·f(b) < 0. The search stops when (b−a)/2 < tolerance and returns
// the midpoint of the final bracket; an exact zero at a midpoint returns
// immediately.
// maxIterations ≤ 0 selects DefaultMaxIterations.
func (s *BisectionSolver) Solve(a, b, tolerance float64, maxIterations int) (Result, error) {
	res := Result{Method: MethodBisection}

	if err := checkTolerance(MethodBisection, tolerance); err != nil {
		return res, err
	}
	if !(a < b) {
		return res, failure(MethodBisection, 0, math.NaN(),
			fmt.Errorf("%w: a=%g is not below b=%g", ErrInvalidBracket, a, b))
	}

	// An undefined endpoint is both a domain failure and a broken bracket.
	fa, err := s.Equation.Eval(a)
	if err != nil {
		return res, failure(MethodBisection, 0, a, fmt.Errorf("%w: %w", ErrInvalidBracket, err))
	}
	fb, err := s.Equation.Eval(b)
	if err != nil {
		return res, failure(MethodBisection, 0, b, fmt.Errorf("%w: %w", ErrInvalidBracket, err))
	}
	if !opposite(fa, fb) {
		// A root sitting on an endpoint does not count as a bracket.
		return res, failure(MethodBisection, 0, math.NaN(),
			fmt.Errorf("%w: f(%g)=%g and f(%g)=%g share a sign", ErrInvalidBracket, a, fa, b, fb))
	}

	budget := iterationBudget(maxIterations)
	for k := 1; k <= budget; k++ {
		m := (a + b) / 2
		fm, err := s.Equation.Eval(m)
		if err != nil {
			return res, failure(MethodBisection, k, m, err)
		}

		if fm == 0 {
			res.History = append(res.History, Step{K: k, A: a, B: b, X: m, FX: fm, Delta: 0})
			res.Root, res.Iterations = m, k
			return res, nil
		}

		if opposite(fa, fm) {
			b = m
		} else {
			a, fa = m, fm
		}

		half := (b - a) / 2
		res.History = append(res.History, Step{K: k, A: a, B: b, X: m, FX: fm, Delta: half})
		res.Iterations = k

		if half < tolerance {
			res.Root = (a + b) / 2
			return res, nil
		}
	}

	res.Root = (a + b) / 2
	return res, failure(MethodBisection, budget, res.Root, ErrMaxIterations)
}

// opposite reports f(a)·f(b) < 0 without forming the product, which can
// underflow to zero for tiny residuals.
func opposite(fa, fb float64) bool {
	return fa != 0 && fb != 0 && math.Signbit(fa) != math.Signbit(fb)
}
