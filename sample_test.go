package rootfind

import (
	"math"
	"testing"
)

// TestSample_ChartGrid reproduces the 100-point chart grid x = i/10.
func TestSample_ChartGrid(t *testing.T) {
	points := Sample(LogEquation(), DefaultSampleConfig())

	if len(points) != 100 {
		t.Fatalf("expected 100 points, got %d", len(points))
	}

	for i, p := range points {
		if math.Abs(p.X-float64(i)/10) > 1e-12 {
			t.Errorf("point %d at x=%v, want %v", i, p.X, float64(i)/10)
		}
		if p.X < 0.6 && p.Defined {
			t.Errorf("x=%v is outside 5x − 3 > 0 but was evaluated", p.X)
		}
		if p.X > 0.61 && !p.Defined {
			t.Errorf("x=%v should be defined", p.X)
		}
		if !p.Defined {
			continue
		}
		want := math.Log(5*p.X-3) - 0.1*p.X*(1+p.X)
		if math.Abs(p.Y-want) > 1e-12 {
			t.Errorf("f(%v) = %v, want %v", p.X, p.Y, want)
		}
	}
}

func TestSample_DegenerateCount(t *testing.T) {
	points := Sample(squareMinusTwo(), SampleConfig{From: -1, To: 1, Points: 0})
	if len(points) != 2 || points[0].X != -1 || points[1].X != 1 {
		t.Errorf("expected the two endpoints, got %+v", points)
	}
}

// TestScanBrackets_LogEquation finds both roots and each bracket solves.
func TestScanBrackets_LogEquation(t *testing.T) {
	eq := LogEquation()
	brackets := ScanBrackets(eq, DefaultSampleConfig())

	if len(brackets) != 2 {
		t.Fatalf("expected 2 brackets, got %d: %+v", len(brackets), brackets)
	}

	for i, want := range []float64{lowerRoot, upperRoot} {
		br := brackets[i]
		if want < br.A || want > br.B {
			t.Errorf("bracket %d [%v, %v] misses root %v", i, br.A, br.B, want)
		}

		res, err := NewBisectionSolver(eq).Solve(br.A, br.B, 1e-10, 0)
		AssertConverges(t, res, err, want, 1e-10)
	}
}

func TestScanBrackets_NoRoot(t *testing.T) {
	noRoot := NewEquation("x^2+1", func(x float64) float64 { return x*x + 1 })
	if got := ScanBrackets(noRoot, SampleConfig{From: -5, To: 5, Points: 50}); len(got) != 0 {
		t.Errorf("expected no brackets, got %+v", got)
	}
}

// TestScanBrackets_ReversedGrid keeps A < B when the grid runs right to left.
func TestScanBrackets_ReversedGrid(t *testing.T) {
	eq := LogEquation()
	brackets := ScanBrackets(eq, SampleConfig{From: 9.9, To: 0, Points: 100})

	if len(brackets) != 2 {
		t.Fatalf("expected 2 brackets, got %d: %+v", len(brackets), brackets)
	}
	for _, br := range brackets {
		if !(br.A < br.B) {
			t.Errorf("bracket [%v, %v] is reversed", br.A, br.B)
		}
		res, err := NewBisectionSolver(eq).Solve(br.A, br.B, 1e-8, 0)
		if err != nil {
			t.Errorf("bracket [%v, %v] does not solve: %v", br.A, br.B, err)
			continue
		}
		t.Logf("✓ [%.2f, %.2f] → %.8f", br.A, br.B, res.Root)
	}
}
