package cmd

import (
	"math"

	"github.com/spf13/cobra"

	"github.com/alexshd/rootfind"
	"github.com/alexshd/rootfind/internal/report"
)

func newSweepCommand(a *app) *cobra.Command {
	var reference float64

	cmd := &cobra.Command{
		Use:       "sweep <bisection|newton|iterative>",
		Short:     "Run one method at ε = 1e-2 … 1e-10 and compare errors",
		Args:      cobra.ExactArgs(1),
		ValidArgs: methodNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			method, err := rootfind.ParseMethod(args[0])
			if err != nil {
				return err
			}

			ref := reference
			if !cmd.Flags().Changed("reference") {
				ref = a.referenceRoot(method)
			}

			base := a.cfg.Params(method)
			limits := a.cfg.Limits()
			sweep := rootfind.ToleranceSweep(func(eps float64) (rootfind.Result, error) {
				p := base
				p.Tolerance = eps
				return rootfind.Solve(a.eq, p, limits)
			}, rootfind.DefaultTolerances(), ref)

			report.Sweep(cmd.OutOrStdout(), method, sweep)
			return nil
		},
	}

	cmd.Flags().Float64Var(&reference, "reference", 0, "true root to measure errors against (default: a tight Newton solve)")

	return cmd
}

// referenceRoot solves tightly with Newton from the method's own start so the
// sweep compares against the root that method is heading for.
func (a *app) referenceRoot(m rootfind.Method) float64 {
	p := a.cfg.Params(m)
	start := p.X0
	if m == rootfind.MethodBisection {
		start = (p.A + p.B) / 2
	}

	res, err := rootfind.Solve(a.eq, rootfind.Params{
		Method:    rootfind.MethodNewton,
		X0:        start,
		Tolerance: 1e-14,
	}, a.cfg.Limits())
	if err != nil {
		a.logger.Warn("no reference root, errors left blank", "error", err)
		return math.NaN()
	}
	return res.Root
}
