package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/alexshd/rootfind"
	"github.com/alexshd/rootfind/internal/report"
)

type solveFlags struct {
	a, b, x0  float64
	tolerance float64
	maxIter   int
	asJSON    bool
	quiet     bool
}

func newSolveCommand(a *app) *cobra.Command {
	var f solveFlags

	cmd := &cobra.Command{
		Use:   "solve <bisection|newton|iterative>",
		Short: "Solve the equation with one method",
		Long: `Solve the equation with one method and print the root with its
iteration history.

Unset flags fall back to the config file, then to the built-in defaults:
bracket [0.8, 0.9], x0 = 1, tolerance 1e-4.`,
		Example: `  rootfind solve bisection --a 0.7 --b 1 --tol 1e-8
  rootfind solve newton --x0 6
  rootfind solve iterative --json`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: methodNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			method, err := rootfind.ParseMethod(args[0])
			if err != nil {
				return err
			}

			p := a.cfg.Params(method)
			if cmd.Flags().Changed("a") {
				p.A = f.a
			}
			if cmd.Flags().Changed("b") {
				p.B = f.b
			}
			if cmd.Flags().Changed("x0") {
				p.X0 = f.x0
			}
			if cmd.Flags().Changed("tol") {
				p.Tolerance = f.tolerance
			}
			if cmd.Flags().Changed("max-iter") {
				p.MaxIterations = f.maxIter
			}

			return a.solve(cmd, p, f)
		},
	}

	cmd.Flags().Float64Var(&f.a, "a", 0, "left end of the bracket (bisection)")
	cmd.Flags().Float64Var(&f.b, "b", 0, "right end of the bracket (bisection)")
	cmd.Flags().Float64Var(&f.x0, "x0", 0, "initial guess (newton, iterative)")
	cmd.Flags().Float64Var(&f.tolerance, "tol", 0, "stopping tolerance ε")
	cmd.Flags().IntVar(&f.maxIter, "max-iter", 0, "iteration budget")
	cmd.Flags().BoolVar(&f.asJSON, "json", false, "print the result as JSON")
	cmd.Flags().BoolVarP(&f.quiet, "quiet", "q", false, "print only the root")

	return cmd
}

func (a *app) solve(cmd *cobra.Command, p rootfind.Params, f solveFlags) error {
	out := cmd.OutOrStdout()

	start := time.Now()
	res, err := rootfind.Solve(a.eq, p, a.cfg.Limits())
	a.logger.Debug("solve finished",
		"method", p.Method,
		"iterations", res.Iterations,
		"duration", time.Since(start))

	switch {
	case f.asJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err != nil {
			body := map[string]any{"method": p.Method, "error": err.Error()}
			if last, ok := rootfind.LastEstimate(err); ok && errors.Is(err, rootfind.ErrMaxIterations) {
				body["estimate"] = last
			}
			if encErr := enc.Encode(body); encErr != nil {
				return encErr
			}
			return err
		}
		return enc.Encode(res)

	case f.quiet:
		if err != nil {
			return err
		}
		_, werr := fmt.Fprintf(out, "%.15g\n", res.Root)
		return werr

	default:
		report.Result(out, a.eq, res, err)
		if errors.Is(err, rootfind.ErrInvalidBracket) {
			for _, br := range rootfind.ScanBrackets(a.eq, a.cfg.SampleGrid()) {
				a.logger.Info("candidate bracket", "a", br.A, "b", br.B)
			}
		}
		return err
	}
}

func methodNames() []string {
	var names []string
	for _, m := range rootfind.Methods() {
		names = append(names, string(m))
	}
	return names
}
