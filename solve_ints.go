package satisfy

import (
	"strconv"

	"github.com/hartsolve/satisfy/internal/sat"
)

// SolveDIMACSInts solves a CNF problem expressed the DIMACS way: each clause
// is a slice of non-zero signed 1-based variable numbers, and nVars is the
// number of distinct variables (1..nVars). It returns a signed assignment
// (assignment[i] is either i+1 or -(i+1), the value chosen for variable
// i+1), solver statistics keyed the way a caller might print them, and
// whether the problem is satisfiable.
func SolveDIMACSInts(nVars int, problem [][]int) (assignment []int, stats map[string]any, sat bool) {
	s := NewDefault()
	for i := 1; i <= nVars; i++ {
		s.varID(strconv.Itoa(i))
	}
	for _, clause := range problem {
		terms := make([]string, len(clause))
		for i, l := range clause {
			if l < 0 {
				terms[i] = "-" + strconv.Itoa(-l)
			} else {
				terms[i] = strconv.Itoa(l)
			}
		}
		if err := s.AddClause(terms...); err != nil {
			return nil, nil, false
		}
	}

	model, ok := s.Solve()

	stats = map[string]any{
		"conflicts":    s.core.TotalConflicts,
		"decisions":    s.core.TotalDecisions,
		"propagations": s.core.TotalPropagations,
		"restarts":     s.core.TotalRestarts,
	}

	if !ok {
		return nil, stats, false
	}

	assignment = make([]int, nVars)
	for i := 1; i <= nVars; i++ {
		symbol := strconv.Itoa(i)
		if model[symbol] {
			assignment[i-1] = i
		} else {
			assignment[i-1] = -i
		}
	}
	return assignment, stats, true
}
