package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/alexshd/rootfind"
	"github.com/alexshd/rootfind/internal/config"
	"github.com/alexshd/rootfind/internal/logging"
)

// app carries state shared by every subcommand once flags are parsed.
type app struct {
	cfgFile   string
	verbose   bool
	logFormat string

	cfg    *config.Config
	logger *slog.Logger
	eq     rootfind.Equation
}

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	a := &app{eq: rootfind.LogEquation()}

	root := &cobra.Command{
		Use:   "rootfind",
		Short: "Numerical solution of ln(5x-3) = 0.1x(1+x)",
		Long: `rootfind solves f(x) = ln(5x-3) - 0.1x(1+x) = 0.

Methods:
  bisection  - halves a sign-changing bracket [a, b]
  newton     - Newton's method from x0
  iterative  - fixed-point iteration x = (exp(0.1x(1+x)) + 3)/5 from x0`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd.ErrOrStderr())
		},
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default: $ROOTFIND_CONFIG or ./rootfind.toml)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "debug logging")
	root.PersistentFlags().StringVar(&a.logFormat, "log-format", "", "log format: text or json (overrides config)")

	root.AddCommand(
		newSolveCommand(a),
		newSweepCommand(a),
		newSampleCommand(a),
		newBracketsCommand(a),
		newServeCommand(a),
		newHistoryCommand(a),
	)

	return root
}

// Execute runs the root command against os.Args.
func Execute() error {
	root := NewRootCommand()
	if err := root.Execute(); err != nil {
		printError(root.ErrOrStderr(), err)
		return err
	}
	return nil
}

func (a *app) init(logOut io.Writer) error {
	var err error
	if a.cfgFile != "" {
		a.cfg, err = config.Load(a.cfgFile)
	} else {
		a.cfg, err = config.LoadFromEnv()
	}
	if err != nil {
		return err
	}

	level, err := logging.ParseLevel(a.cfg.Log.Level)
	if err != nil {
		return err
	}
	if a.verbose {
		level = slog.LevelDebug
	}

	format := logging.Format(a.cfg.Log.Format)
	if a.logFormat != "" {
		format = logging.Format(a.logFormat)
	}

	a.logger = logging.New(logOut, level, format)
	a.logger.Debug("config loaded",
		"tolerance", a.cfg.Solver.Tolerance,
		"max_iterations", a.cfg.Solver.MaxIterations)
	return nil
}

func printError(w io.Writer, err error) {
	if w == nil {
		w = os.Stderr
	}
	fmt.Fprintf(w, "Error: %v\n", err)
}
