// Package rootfind solves a scalar nonlinear equation f(x) = 0.
//
// # Overview
//
// Three independent algorithms share one contract: take an Equation plus
// starting data, return a Result (root and iteration record) or a typed error.
//
//   - BisectionSolver - bracketing, needs a sign-changing [a, b]
//   - NewtonSolver    - derivative based, needs x₀
//   - IterativeSolver - fixed-point xₙ₊₁ = g(xₙ), needs x₀ and a contraction g
//
// The deployed equation is
//
//	ln(5x − 3) = 0.1x(1 + x)  ⇔  f(x) = ln(5x − 3) − 0.1x(1 + x) = 0
//
// defined for 5x − 3 > 0, with real roots near 0.83299 and 5.10280.
//
// # Quick Start
//
//	root, err := rootfind.BisectionMethod(0.8, 0.9, 1e-6)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("x = %.6f\n", root)
//
// Any other equation works through the solver types:
//
//	eq := rootfind.NewEquation("x^2-2",
//	    func(x float64) float64 { return x*x - 2 },
//	    rootfind.WithDerivative(func(x float64) float64 { return 2 * x }),
//	)
//	res, err := rootfind.NewNewtonSolver(eq).Solve(1, 1e-8, 0)
//
// # Stopping Criteria
//
//   - Bisection: half-width (b − a)/2 < ε. After k steps the error is at most
//     (b₀ − a₀)/2^(k+1), so at most ⌈log₂((b₀ − a₀)/ε)⌉ steps are needed.
//   - Newton and fixed-point: step size |xₙ₊₁ − xₙ| < ε.
//
// Every method stops after maxIterations (default 1000) with ErrMaxIterations.
//
// # Errors
//
// Failures come back as *SolveError wrapping one of:
//
//   - ErrDomain          - evaluation outside 5x − 3 > 0
//   - ErrInvalidBracket  - a ≥ b or f(a)·f(b) ≥ 0, reported before iterating
//   - ErrDerivativeZero  - |f′(xₙ)| < 1e-12
//   - ErrDivergence      - |xₙ| > 1e10
//   - ErrMaxIterations   - budget exhausted; the last estimate is attached
//
//	_, err := rootfind.NewtonMethod(x0, 1e-8)
//	switch {
//	case errors.Is(err, rootfind.ErrMaxIterations):
//	    last, _ := rootfind.LastEstimate(err)
//	    // accept last or relax ε
//	case errors.Is(err, rootfind.ErrDomain):
//	    // ask for another x₀
//	}
//
// # Concurrency
//
// Solvers keep all iteration state on the stack and Equation values are
// immutable, so concurrent calls need no locking.
//
// # Sampling
//
// Sample evaluates f on a grid independently of solving, and ScanBrackets
// turns that grid into candidate brackets for bisection:
//
//	for _, br := range rootfind.ScanBrackets(rootfind.LogEquation(), rootfind.DefaultSampleConfig()) {
//	    root, _ := rootfind.BisectionMethod(br.A, br.B, 1e-8)
//	}
//
// # Testing
//
// Assertion helpers check convergence properties:
//
//	func TestMySolver(t *testing.T) {
//	    res, err := solver.Solve(1, 1e-8, 0)
//	    rootfind.AssertConverges(t, res, err, math.Sqrt2, 1e-8)
//
//	    sweep := rootfind.ToleranceSweep(solve, rootfind.DefaultTolerances(), math.Sqrt2)
//	    rootfind.AssertBoundedError(t, sweep, 1e-2)
//	}
package rootfind
