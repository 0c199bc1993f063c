package rootfind

import (
	"math"
	"testing"
)

// quadraticFixedPoint rewrites x² − 3x + 2 = 0 as x = (x² + 2)/3, which
// contracts near x = 1 (|g′(1)| = 2/3) and repels from x = 2.
func quadraticFixedPoint() Equation {
	return NewEquation("x^2-3x+2",
		func(x float64) float64 { return x*x - 3*x + 2 },
		WithFixedPointMap(func(x float64) float64 { return (x*x + 2) / 3 }),
	)
}

func TestIterative_QuadraticFixedPoint(t *testing.T) {
	res, err := NewIterativeSolver(quadraticFixedPoint()).Solve(0.5, 1e-6, 0)
	AssertConverges(t, res, err, 1.0, 1e-5)

	// Contraction: steps shrink monotonically.
	for i := 1; i < len(res.History); i++ {
		if res.History[i].Delta > res.History[i-1].Delta {
			t.Errorf("step %d grew: %g > %g", res.History[i].K, res.History[i].Delta, res.History[i-1].Delta)
		}
	}
}

func TestIterative_LogEquation(t *testing.T) {
	res, err := NewIterativeSolver(LogEquation()).Solve(1, 1e-12, 0)
	AssertConverges(t, res, err, lowerRoot, 1e-11)

	if res.Iterations > 20 {
		t.Errorf("|g'| ≈ 0.06 should converge quickly, took %d iterations", res.Iterations)
	}
}

// TestIterative_RepellingRoot starts beside the root g pushes away from.
func TestIterative_RepellingRoot(t *testing.T) {
	res, err := NewIterativeSolver(LogEquation()).Solve(6, 1e-8, 0)
	AssertFailsWith(t, err, ErrDivergence)
	t.Logf("  diverged after %d iterations", res.Iterations)
}

func TestIterative_Divergence(t *testing.T) {
	doubling := NewEquation("x",
		func(x float64) float64 { return x },
		WithFixedPointMap(func(x float64) float64 { return 2 * x }),
	)

	res, err := NewIterativeSolver(doubling).Solve(1, 1e-8, 0)
	AssertFailsWith(t, err, ErrDivergence)

	// 2^34 is the first power of two above 1e10.
	if res.Iterations != 34 {
		t.Errorf("expected divergence on iteration 34, got %d", res.Iterations)
	}
}

func TestIterative_LeavesDomain(t *testing.T) {
	shift := NewEquation("1",
		func(x float64) float64 { return 1 },
		WithFixedPointMap(func(x float64) float64 { return x - 1 }),
		WithDomain(func(x float64) bool { return x > 0 }),
	)

	_, err := NewIterativeSolver(shift).Solve(0.5, 1e-8, 0)
	AssertFailsWith(t, err, ErrDomain)

	if last, ok := LastEstimate(err); !ok || last != -0.5 {
		t.Errorf("expected out-of-domain iterate -0.5, got %v", last)
	}
}

func TestIterative_MaxIterations(t *testing.T) {
	res, err := NewIterativeSolver(quadraticFixedPoint()).Solve(0.5, 1e-15, 5)
	AssertFailsWith(t, err, ErrMaxIterations)

	if res.Iterations != 5 {
		t.Errorf("expected 5 iterations, got %d", res.Iterations)
	}
	if last, _ := LastEstimate(err); math.Abs(last-1) > 0.2 {
		t.Errorf("last estimate %v should be approaching 1", last)
	}
}

func TestIterative_NoFixedPointMap(t *testing.T) {
	_, err := NewIterativeSolver(squareMinusTwo()).Solve(1, 1e-8, 0)
	AssertFailsWith(t, err, ErrNoFixedPointMap)
}

func TestIterative_Idempotent(t *testing.T) {
	s := NewIterativeSolver(LogEquation())
	AssertIdempotent(t, func(eps float64) (Result, error) { return s.Solve(1, eps, 0) }, 1e-10)
}
