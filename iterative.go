package rootfind

import (
	"fmt"
	"math"
)

// IterativeSolver runs fixed-point iteration xₙ₊₁ = g(xₙ).
//
// The caller picks a g with |g′| < 1 near the root; the solver does not check
// this analytically, it notices divergence when |xₙ| passes DivergenceBound.
type IterativeSolver struct {
	Equation        Equation
	DivergenceBound float64
}

// NewIterativeSolver returns a fixed-point solver for eq.
func NewIterativeSolver(eq Equation) *IterativeSolver {
	return &IterativeSolver{Equation: eq, DivergenceBound: DefaultDivergenceBound}
}

// Solve iterates g from x0 until |xₙ₊₁ − xₙ| < tolerance and returns xₙ₊₁.
// maxIterations ≤ 0 selects DefaultMaxIterations.
func (s *IterativeSolver) Solve(x0, tolerance float64, maxIterations int) (Result, error) {
	res := Result{Method: MethodIterative}

	if err := checkTolerance(MethodIterative, tolerance); err != nil {
		return res, err
	}
	if s.Equation.G == nil {
		return res, failure(MethodIterative, 0, x0, ErrNoFixedPointMap)
	}

	bound := s.DivergenceBound
	if bound <= 0 {
		bound = DefaultDivergenceBound
	}

	x := x0
	budget := iterationBudget(maxIterations)
	for k := 1; k <= budget; k++ {
		fx, err := s.Equation.Eval(x)
		if err != nil {
			return res, failure(MethodIterative, k-1, x, err)
		}
		next, err := s.Equation.Map(x)
		if err != nil {
			return res, failure(MethodIterative, k-1, x, err)
		}

		delta := math.Abs(next - x)
		res.History = append(res.History, Step{K: k, X: x, FX: fx, Delta: delta})
		res.Iterations = k

		if math.IsNaN(next) || math.IsInf(next, 0) || math.Abs(next) > bound {
			return res, failure(MethodIterative, k, x, fmt.Errorf("%w: |x|=%g", ErrDivergence, math.Abs(next)))
		}
		if !s.Equation.InDomain(next) {
			return res, failure(MethodIterative, k, next, fmt.Errorf("%w: iterate left domain at x=%g", ErrDomain, next))
		}

		x = next
		if delta < tolerance {
			res.Root = x
			return res, nil
		}
	}

	res.Root = x
	return res, failure(MethodIterative, budget, x, ErrMaxIterations)
}
