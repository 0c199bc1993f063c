package rootfind

// Point is one sample of the curve y = f(x).
type Point struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Defined bool    `json:"defined"` // False when x is outside the domain; Y is then zero
}

// Bracket is a sign-changing interval found on a sampled grid.
type Bracket struct {
	A  float64 `json:"a"`
	B  float64 `json:"b"`
	FA float64 `json:"fa"`
	FB float64 `json:"fb"`
}

// SampleConfig controls curve sampling.
type SampleConfig struct {
	From   float64 // First abscissa
	To     float64 // Last abscissa (inclusive)
	Points int     // Number of samples, at least 2
}

// DefaultSampleConfig returns the chart grid:
// 100 points at x = 0, 0.1, …, 9.9.
func DefaultSampleConfig() SampleConfig {
	return SampleConfig{
		From:   0,
		To:     9.9,
		Points: 100,
	}
}

// Sample evaluates f on an evenly spaced grid. It is pure and can be called by
// any renderer, test or CLI independently of solving.
func Sample(eq Equation, cfg SampleConfig) []Point {
	n := cfg.Points
	if n < 2 {
		n = 2
	}

	points := make([]Point, 0, n)
	span := cfg.To - cfg.From
	for i := 0; i < n; i++ {
		x := cfg.From + span*float64(i)/float64(n-1)
		y, err := eq.Eval(x)
		points = append(points, Point{X: x, Y: y, Defined: err == nil})
	}

	return points
}

// ScanBrackets walks the sampled grid and returns every pair of adjacent
// defined samples across which f changes sign. Each result has A < B and is a
// valid input for BisectionSolver.Solve, also on a grid running right to left.
func ScanBrackets(eq Equation, cfg SampleConfig) []Bracket {
	points := Sample(eq, cfg)
	brackets := make([]Bracket, 0)

	for i := 1; i < len(points); i++ {
		prev, cur := points[i-1], points[i]
		if !prev.Defined || !cur.Defined {
			continue
		}
		if !opposite(prev.Y, cur.Y) {
			continue
		}
		if prev.X > cur.X {
			prev, cur = cur, prev
		}
		brackets = append(brackets, Bracket{A: prev.X, B: cur.X, FA: prev.Y, FB: cur.Y})
	}

	return brackets
}
