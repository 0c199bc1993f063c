package rootfind

import (
	"errors"
	"math"
	"testing"
)

// AssertConverges verifies a solve succeeded and landed within within of want.
func AssertConverges(t *testing.T, res Result, err error, want, within float64) {
	t.Helper()

	if err != nil {
		t.Fatalf("%s failed: %v", res.Method, err)
	}

	if got := math.Abs(res.Root - want); got > within {
		t.Errorf("%s root %.12f is %.3g away from %.12f (allowed %.3g)",
			res.Method, res.Root, got, want, within)
		return
	}

	t.Logf("✓ %s converged to %.12f in %d iterations", res.Method, res.Root, res.Iterations)
}

// AssertFailsWith verifies err matches target via errors.Is.
func AssertFailsWith(t *testing.T, err, target error) {
	t.Helper()

	if err == nil {
		t.Fatalf("expected failure %v, got success", target)
	}
	if !errors.Is(err, target) {
		t.Fatalf("expected %v, got %v", target, err)
	}

	t.Logf("✓ failed as expected: %v", err)
}

// AssertIdempotent verifies two solves with identical inputs agree exactly.
func AssertIdempotent(t *testing.T, solve SolveFunc, tolerance float64) {
	t.Helper()

	first, err1 := solve(tolerance)
	second, err2 := solve(tolerance)

	if (err1 == nil) != (err2 == nil) {
		t.Fatalf("outcome changed between calls: %v vs %v", err1, err2)
	}
	if first.Root != second.Root || first.Iterations != second.Iterations {
		t.Errorf("non-deterministic solve: (%v, %d) vs (%v, %d)",
			first.Root, first.Iterations, second.Root, second.Iterations)
	}
	if len(first.History) != len(second.History) {
		t.Errorf("history length changed: %d vs %d", len(first.History), len(second.History))
	}
}

// AssertBoundedError verifies that shrinking ε never lets a previously
// convergent case diverge: every level converges and no level's error exceeds
// the coarsest level's error (or slack, whichever is larger).
//
// Mathematical property:
//
//	ε₀ > εₖ ⇒ err(εₖ) ≤ max(err(ε₀), slack)
func AssertBoundedError(t *testing.T, points []SweepPoint, slack float64) {
	t.Helper()

	if len(points) == 0 {
		t.Fatalf("empty sweep")
	}

	bound := math.Inf(1)
	for i, p := range points {
		if p.Err != nil {
			t.Errorf("level %d (ε=%g) failed: %v", i, p.Tolerance, p.Err)
			continue
		}
		if math.IsNaN(p.Error) {
			t.Fatalf("level %d (ε=%g) has no reference error", i, p.Tolerance)
		}
		if math.IsInf(bound, 1) {
			bound = math.Max(p.Error, slack)
		} else if p.Error > bound {
			t.Errorf("error grew at ε=%g: %.3g > %.3g", p.Tolerance, p.Error, bound)
		}

		t.Logf("  ε=%-8.0e iterations=%-4d error=%.3e digits=%d",
			p.Tolerance, p.Iterations, p.Error, CorrectDigits(p.Error))
	}
}
