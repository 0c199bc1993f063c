package rootfind

import (
	"math"
	"testing"
)

// TestToleranceSweep_BoundedError: shrinking ε never makes a convergent case worse.
func TestToleranceSweep_BoundedError(t *testing.T) {
	eq := LogEquation()
	tolerances := DefaultTolerances()

	t.Run("bisection", func(t *testing.T) {
		s := NewBisectionSolver(eq)
		sweep := ToleranceSweep(func(eps float64) (Result, error) {
			return s.Solve(0.8, 0.9, eps, 0)
		}, tolerances, lowerRoot)
		AssertBoundedError(t, sweep, 1e-2)

		for _, p := range sweep {
			if p.Error > p.Tolerance {
				t.Errorf("ε=%g: error %g exceeds tolerance", p.Tolerance, p.Error)
			}
		}
	})

	t.Run("newton", func(t *testing.T) {
		s := NewNewtonSolver(eq)
		sweep := ToleranceSweep(func(eps float64) (Result, error) {
			return s.Solve(1, eps, 0)
		}, tolerances, lowerRoot)
		AssertBoundedError(t, sweep, 1e-2)
	})

	t.Run("iterative", func(t *testing.T) {
		s := NewIterativeSolver(eq)
		sweep := ToleranceSweep(func(eps float64) (Result, error) {
			return s.Solve(1, eps, 0)
		}, tolerances, lowerRoot)
		AssertBoundedError(t, sweep, 1e-2)
	})
}

// TestToleranceSweep_IterationsGrow: bisection needs more steps for every extra decade.
func TestToleranceSweep_IterationsGrow(t *testing.T) {
	s := NewBisectionSolver(squareMinusTwo())
	sweep := ToleranceSweep(func(eps float64) (Result, error) {
		return s.Solve(0, 2, eps, 0)
	}, DefaultTolerances(), math.Sqrt2)

	for i := 1; i < len(sweep); i++ {
		if sweep[i].Iterations <= sweep[i-1].Iterations {
			t.Errorf("ε=%g took %d iterations, not more than %d at ε=%g",
				sweep[i].Tolerance, sweep[i].Iterations, sweep[i-1].Iterations, sweep[i-1].Tolerance)
		}
	}
}

func TestToleranceSweep_KeepsLastEstimateOnBudget(t *testing.T) {
	s := NewBisectionSolver(squareMinusTwo())
	sweep := ToleranceSweep(func(eps float64) (Result, error) {
		return s.Solve(0, 2, eps, 3)
	}, []float64{1e-12}, math.NaN())

	if sweep[0].Err == nil {
		t.Fatalf("expected budget failure")
	}
	if sweep[0].Root == 0 || !math.IsNaN(sweep[0].Error) {
		t.Errorf("expected last estimate and NaN error, got %+v", sweep[0])
	}
}

func TestCorrectDigits(t *testing.T) {
	tests := []struct {
		err  float64
		want int
	}{
		{0, 16},
		{1e-20, 16},
		{5e-7, 6},
		{0.04, 1},
		{1.5, 0},
		{math.NaN(), 0},
	}
	for _, tt := range tests {
		if got := CorrectDigits(tt.err); got != tt.want {
			t.Errorf("CorrectDigits(%g) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
