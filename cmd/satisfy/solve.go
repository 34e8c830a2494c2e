package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/hartsolve/satisfy/internal/dimacs"
	"github.com/hartsolve/satisfy/internal/sat"
)

var (
	flagMaxConflicts int64
	flagTimeout      time.Duration
	flagMetricsAddr  string
	flagGzip         bool
	flagClauseDecay  = decayValue(sat.DefaultOptions.ClauseDecay)
	flagVarDecay     = decayValue(sat.DefaultOptions.VariableDecay)
)

// decayValue is a pflag.Value that only accepts floats in (0, 1), the valid
// range for a clause or variable activity decay factor.
type decayValue float64

func (d *decayValue) String() string { return fmt.Sprintf("%g", float64(*d)) }
func (d *decayValue) Type() string   { return "decay" }

func (d *decayValue) Set(s string) error {
	var v float64
	if _, err := fmt.Sscanf(s, "%g", &v); err != nil {
		return fmt.Errorf("invalid decay %q: %w", s, err)
	}
	if v <= 0 || v >= 1 {
		return fmt.Errorf("decay %g out of range: must be strictly between 0 and 1", v)
	}
	*d = decayValue(v)
	return nil
}

var solveCmd = &cobra.Command{
	Use:   "solve <instance.cnf>",
	Short: "Solve a DIMACS CNF instance and print the result",
	Args:  cobra.ExactArgs(1),
	RunE:  runSolve,
}

func init() {
	solveCmd.Flags().Int64Var(&flagMaxConflicts, "max-conflicts", -1, "give up after this many conflicts (-1: unbounded)")
	solveCmd.Flags().DurationVar(&flagTimeout, "timeout", -1, "give up after this long (-1: unbounded)")
	solveCmd.Flags().StringVar(&flagMetricsAddr, "metrics-addr", "", "if set, serve Prometheus metrics on this address while solving")
	solveCmd.Flags().BoolVar(&flagGzip, "gzip", false, "the instance file is gzip-compressed")
	solveCmd.Flags().Var(&flagClauseDecay, "clause-decay", "clause activity decay factor, in (0,1)")
	solveCmd.Flags().Var(&flagVarDecay, "variable-decay", "variable activity decay factor, in (0,1)")
}

var _ pflag.Value = (*decayValue)(nil)

func runSolve(cmd *cobra.Command, args []string) error {
	opts := sat.DefaultOptions
	opts.MaxConflicts = flagMaxConflicts
	opts.Timeout = flagTimeout
	opts.Verbose = verbose
	opts.ClauseDecay = float64(flagClauseDecay)
	opts.VariableDecay = float64(flagVarDecay)
	if verbose {
		opts.OnProgress = newProgressLine()
	}

	s := sat.NewSolver(opts)
	if err := dimacs.LoadDIMACS(args[0], flagGzip, s); err != nil {
		return fmt.Errorf("loading %s: %w", args[0], err)
	}

	log.WithFields(logFields(s)).Info("instance loaded")

	if flagMetricsAddr != "" {
		registerMetrics()
		go serveMetrics(flagMetricsAddr)
	}

	start := time.Now()
	status := s.Solve()
	elapsed := time.Since(start)

	if flagMetricsAddr != "" {
		publishMetrics(s)
	}

	log.WithFields(map[string]any{
		"status":       status.String(),
		"elapsed_sec":  elapsed.Seconds(),
		"conflicts":    s.TotalConflicts,
		"decisions":    s.TotalDecisions,
		"propagations": s.TotalPropagations,
		"restarts":     s.TotalRestarts,
	}).Info("solve finished")

	fmt.Println(status.String())
	if status == sat.True {
		printModel(s)
	}
	return nil
}

func logFields(s *sat.Solver) map[string]any {
	return map[string]any{
		"variables":   s.NumVariables(),
		"constraints": s.NumConstraints(),
	}
}

func printModel(s *sat.Solver) {
	for v := 0; v < s.NumVariables(); v++ {
		if s.VarValue(v) == sat.True {
			fmt.Printf("%d ", v+1)
		} else {
			fmt.Printf("-%d ", v+1)
		}
	}
	fmt.Println("0")
}
