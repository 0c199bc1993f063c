package rootfind

import "fmt"

// Params selects a method and carries its inputs. A and B are read by
// bisection only, X0 by Newton and fixed-point iteration only.
type Params struct {
	Method        Method  `json:"method" toml:"method" yaml:"method"`
	A             float64 `json:"a" toml:"a" yaml:"a"`
	B             float64 `json:"b" toml:"b" yaml:"b"`
	X0            float64 `json:"x0" toml:"x0" yaml:"x0"`
	Tolerance     float64 `json:"tolerance" toml:"tolerance" yaml:"tolerance"`
	MaxIterations int     `json:"max_iterations" toml:"max_iterations" yaml:"max_iterations"`
}

// Limits holds the safety floors applied by Newton and fixed-point iteration.
type Limits struct {
	DerivativeFloor float64
	DivergenceBound float64
}

// DefaultLimits returns the package defaults.
func DefaultLimits() Limits {
	return Limits{
		DerivativeFloor: DefaultDerivativeFloor,
		DivergenceBound: DefaultDivergenceBound,
	}
}

// Solve dispatches p to the matching solver on eq.
func Solve(eq Equation, p Params, lim Limits) (Result, error) {
	switch p.Method {
	case MethodBisection:
		return NewBisectionSolver(eq).Solve(p.A, p.B, p.Tolerance, p.MaxIterations)
	case MethodNewton:
		s := NewNewtonSolver(eq)
		s.DerivativeFloor, s.DivergenceBound = lim.DerivativeFloor, lim.DivergenceBound
		return s.Solve(p.X0, p.Tolerance, p.MaxIterations)
	case MethodIterative:
		s := NewIterativeSolver(eq)
		s.DivergenceBound = lim.DivergenceBound
		return s.Solve(p.X0, p.Tolerance, p.MaxIterations)
	default:
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownMethod, p.Method)
	}
}

// deployed is the compiled-in equation behind the three entry points below.
var deployed = LogEquation()

// BisectionMethod solves ln(5x−3) = 0.1x(1+x) on [a, b].
func BisectionMethod(a, b, tolerance float64) (float64, error) {
	res, err := NewBisectionSolver(deployed).Solve(a, b, tolerance, DefaultMaxIterations)
	return res.Root, err
}

// NewtonMethod solves ln(5x−3) = 0.1x(1+x) from x0.
func NewtonMethod(x0, tolerance float64) (float64, error) {
	res, err := NewNewtonSolver(deployed).Solve(x0, tolerance, DefaultMaxIterations)
	return res.Root, err
}

// IterativeMethod solves ln(5x−3) = 0.1x(1+x) by fixed-point iteration from x0.
func IterativeMethod(x0, tolerance float64) (float64, error) {
	res, err := NewIterativeSolver(deployed).Solve(x0, tolerance, DefaultMaxIterations)
	return res.Root, err
}
