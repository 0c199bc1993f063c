package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexshd/rootfind"
	"github.com/alexshd/rootfind/internal/report"
)

type gridFlags struct {
	from, to float64
	points   int
	asJSON   bool
}

func (f *gridFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.from, "from", 0, "first abscissa")
	cmd.Flags().Float64Var(&f.to, "to", 0, "last abscissa")
	cmd.Flags().IntVar(&f.points, "points", 0, "number of samples")
	cmd.Flags().BoolVar(&f.asJSON, "json", false, "print JSON")
}

func (f *gridFlags) grid(cmd *cobra.Command, a *app) (rootfind.SampleConfig, error) {
	g := a.cfg.SampleGrid()
	if cmd.Flags().Changed("from") {
		g.From = f.from
	}
	if cmd.Flags().Changed("to") {
		g.To = f.to
	}
	if cmd.Flags().Changed("points") {
		g.Points = f.points
	}
	if !(g.From < g.To) {
		return g, fmt.Errorf("--from must be below --to, got [%g, %g]", g.From, g.To)
	}
	return g, nil
}

func newSampleCommand(a *app) *cobra.Command {
	var f gridFlags

	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Evaluate f(x) on an even grid (the chart data)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			grid, err := f.grid(cmd, a)
			if err != nil {
				return err
			}
			points := rootfind.Sample(a.eq, grid)
			if f.asJSON {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(points)
			}
			report.Samples(cmd.OutOrStdout(), points)
			return nil
		},
	}
	f.register(cmd)

	return cmd
}

func newBracketsCommand(a *app) *cobra.Command {
	var f gridFlags

	cmd := &cobra.Command{
		Use:   "brackets",
		Short: "List sign-changing intervals usable with bisection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			grid, err := f.grid(cmd, a)
			if err != nil {
				return err
			}
			brackets := rootfind.ScanBrackets(a.eq, grid)
			if f.asJSON {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(brackets)
			}
			report.Brackets(cmd.OutOrStdout(), brackets)
			return nil
		},
	}
	f.register(cmd)

	return cmd
}
