package rootfind

import (
	"fmt"
	"math"
)

// DerivativeStep is the central-difference step used when no f′ is supplied.
const DerivativeStep = 1e-6

// Func is a real function of one variable.
type Func func(x float64) float64

// Equation is the target f(x) = 0, optionally paired with f′ and a
// fixed-point map g where g(x) = x ⇔ f(x) = 0.
//
// An Equation is immutable once built and safe to share between goroutines.
type Equation struct {
	Name   string
	F      Func
	DF     Func                 // Optional; nil selects central differences
	G      Func                 // Optional; required by the iterative solver
	Domain func(x float64) bool // Optional; nil means all of ℝ
}

// EquationOption configures NewEquation.
type EquationOption func(*Equation)

// WithDerivative supplies an analytic f′.
func WithDerivative(df Func) EquationOption {
	return func(e *Equation) { e.DF = df }
}

// WithFixedPointMap supplies g for the iterative solver.
func WithFixedPointMap(g Func) EquationOption {
	return func(e *Equation) { e.G = g }
}

// WithDomain restricts where f, f′ and g may be evaluated.
func WithDomain(in func(x float64) bool) EquationOption {
	return func(e *Equation) { e.Domain = in }
}

// NewEquation builds an Equation around f.
func NewEquation(name string, f Func, opts ...EquationOption) Equation {
	eq := Equation{Name: name, F: f}
	for _, opt := range opts {
		opt(&eq)
	}
	return eq
}

// LogEquation returns ln(5x−3) = 0.1x(1+x) rewritten as
//
//	f(x) = ln(5x−3) − 0.1x(1+x)
//
// with its analytic derivative and the contraction
//
//	g(x) = (exp(0.1x(1+x)) + 3) / 5
//
// obtained by solving f(x) = 0 for the x inside the logarithm.
// |g′| ≈ 0.06 at the smaller root x ≈ 0.83299; the second root near 5.1028 is
// repelling under g and only reachable by bisection or Newton.
func LogEquation() Equation {
	return NewEquation("ln(5x-3) - 0.1x(1+x)",
		func(x float64) float64 {
			return math.Log(5*x-3) - 0.1*x*(1+x)
		},
		WithDerivative(func(x float64) float64 {
			return 5/(5*x-3) - 0.1 - 0.2*x
		}),
		WithFixedPointMap(func(x float64) float64 {
			return (math.Exp(0.1*x*(1+x)) + 3) / 5
		}),
		WithDomain(func(x float64) bool {
			return 5*x-3 > 0
		}),
	)
}

// InDomain reports whether x may be evaluated.
func (e Equation) InDomain(x float64) bool {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return false
	}
	return e.Domain == nil || e.Domain(x)
}

// Eval computes f(x). A NaN or infinite value counts as undefined, so
// every value Eval returns is finite.
func (e Equation) Eval(x float64) (float64, error) {
	if !e.InDomain(x) {
		return 0, fmt.Errorf("%w: f(%g)", ErrDomain, x)
	}
	y := e.F(x)
	if math.IsNaN(y) || math.IsInf(y, 0) {
		return 0, fmt.Errorf("%w: f(%g) is not finite", ErrDomain, x)
	}
	return y, nil
}

// Derivative computes f′(x), analytically when DF is set and by central
// differences with step DerivativeStep otherwise.
func (e Equation) Derivative(x float64) (float64, error) {
	if !e.InDomain(x) {
		return 0, fmt.Errorf("%w: f'(%g)", ErrDomain, x)
	}
	if e.DF != nil {
		return e.DF(x), nil
	}

	// Both difference points must lie in the domain.
	lo, err := e.Eval(x - DerivativeStep)
	if err != nil {
		return 0, err
	}
	hi, err := e.Eval(x + DerivativeStep)
	if err != nil {
		return 0, err
	}
	return (hi - lo) / (2 * DerivativeStep), nil
}

// Map computes g(x).
func (e Equation) Map(x float64) (float64, error) {
	if e.G == nil {
		return 0, ErrNoFixedPointMap
	}
	if !e.InDomain(x) {
		return 0, fmt.Errorf("%w: g(%g)", ErrDomain, x)
	}
	return e.G(x), nil
}
