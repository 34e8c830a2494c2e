package main

import (
	"fmt"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"

	"github.com/hartsolve/satisfy/internal/dimacs"
	"github.com/hartsolve/satisfy/internal/sat"
)

var checkCmd = &cobra.Command{
	Use:   "check <instance.cnf> <instance.cnf.models>",
	Short: "Verify that solving an instance finds exactly the given set of models",
	Args:  cobra.ExactArgs(2),
	RunE:  runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	instanceFile, modelsFile := args[0], args[1]

	want, err := dimacs.ParseModels(modelsFile)
	if err != nil {
		return fmt.Errorf("parsing models: %w", err)
	}

	s := sat.NewDefaultSolver()
	if err := dimacs.LoadDIMACS(instanceFile, false, s); err != nil {
		return fmt.Errorf("loading instance: %w", err)
	}

	got := solveAll(s)

	if diff := cmp.Diff(toSet(want), toSet(got)); diff != "" {
		fmt.Println("MISMATCH")
		fmt.Println(diff)
		return fmt.Errorf("found %d models, want %d", len(got), len(want))
	}

	fmt.Printf("OK: %d model(s) match\n", len(got))
	return nil
}

// solveAll returns every model of s, blocking each one found so the next
// Solve call looks for a different assignment.
func solveAll(s *sat.Solver) [][]bool {
	for s.Solve() == sat.True {
		modelClause := make([]sat.Literal, s.NumVariables())
		for i, b := range s.Models[len(s.Models)-1] {
			if b {
				modelClause[i] = sat.NegativeLiteral(i)
			} else {
				modelClause[i] = sat.PositiveLiteral(i)
			}
		}
		s.AddClause(modelClause)
	}
	return s.Models
}

func toString(model []bool) string {
	b := make([]byte, len(model))
	for i, v := range model {
		if v {
			b[i] = '1'
		} else {
			b[i] = '0'
		}
	}
	return string(b)
}

func toSet(models [][]bool) map[string]struct{} {
	set := make(map[string]struct{}, len(models))
	for _, m := range models {
		set[toString(m)] = struct{}{}
	}
	return set
}
