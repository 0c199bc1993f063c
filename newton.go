package rootfind

import (
	"fmt"
	"math"
)

// NewtonSolver iterates xₙ₊₁ = xₙ − f(xₙ)/f′(xₙ).
//
// There is no global convergence guarantee: a poor x₀ may oscillate, run out
// of the domain or diverge. Those outcomes are reported as errors, not fixed.
type NewtonSolver struct {
	Equation        Equation
	DerivativeFloor float64 // |f′| below this fails with ErrDerivativeZero
	DivergenceBound float64 // |x| above this fails with ErrDivergence
}

// NewNewtonSolver returns a Newton solver for eq with default floors.
func NewNewtonSolver(eq Equation) *NewtonSolver {
	return &NewtonSolver{
		Equation:        eq,
		DerivativeFloor: DefaultDerivativeFloor,
		DivergenceBound: DefaultDivergenceBound,
	}
}

// Solve runs Newton's method from x0 until |xₙ₊₁ − xₙ| < tolerance and
// returns xₙ₊₁. maxIterations ≤ 0 selects DefaultMaxIterations.
func (s *NewtonSolver) Solve(x0, tolerance float64, maxIterations int) (Result, error) {
	res := Result{Method: MethodNewton}

	if err := checkTolerance(MethodNewton, tolerance); err != nil {
		return res, err
	}

	floor := s.DerivativeFloor
	if floor <= 0 {
		floor = DefaultDerivativeFloor
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
			return res, failure(MethodNewton, k-1, x, err)
		}
		dfx, err := s.Equation.Derivative(x)
		if err != nil {
			return res, failure(MethodNewton, k-1, x, err)
		}
		if math.Abs(dfx) < floor {
			return res, failure(MethodNewton, k-1, x,
				fmt.Errorf("%w: |f'(%g)|=%g", ErrDerivativeZero, x, math.Abs(dfx)))
		}

		next := x - fx/dfx
		delta := math.Abs(next - x)
		res.History = append(res.History, Step{K: k, X: x, FX: fx, Delta: delta})
		res.Iterations = k

		if math.IsNaN(next) || math.IsInf(next, 0) || math.Abs(next) > bound {
			return res, failure(MethodNewton, k, x, fmt.Errorf("%w: |x|=%g", ErrDivergence, math.Abs(next)))
		}
		if !s.Equation.InDomain(next) {
			return res, failure(MethodNewton, k, next, fmt.Errorf("%w: step left domain at x=%g", ErrDomain, next))
		}

		x = next
		if delta < tolerance {
			res.Root = x
			return res, nil
		}
	}

	res.Root = x
	return res, failure(MethodNewton, budget, x, ErrMaxIterations)
}
