// Package satisfy is a symbol-keyed facade over the CDCL SAT engine in
// internal/sat: callers name variables with ordinary strings instead of
// juggling dense integer ids and literal encodings themselves.
package satisfy

import (
	"fmt"
	"strings"
	"time"

	"github.com/hartsolve/satisfy/internal/sat"
	"github.com/hartsolve/satisfy/internal/vars"
)

// Model maps a variable symbol to the truth value the solver assigned it.
// Symbols never interned in a satisfiable instance default to false, per the
// engine's own unassigned-resolves-to-false convention.
type Model map[string]bool

// Options configures a Solver. The zero value is not valid: its zero
// MaxConflicts and Timeout stop the search immediately. Start from
// DefaultOptions, which matches sat.DefaultOptions.
type Options struct {
	ClauseDecay   float64
	VariableDecay float64
	PhaseSaving   bool
	MaxConflicts  int64
	Timeout       time.Duration
	Verbose       bool
}

// DefaultOptions mirrors sat.DefaultOptions.
var DefaultOptions = Options{
	ClauseDecay:   sat.DefaultOptions.ClauseDecay,
	VariableDecay: sat.DefaultOptions.VariableDecay,
	MaxConflicts:  sat.DefaultOptions.MaxConflicts,
	Timeout:       sat.DefaultOptions.Timeout,
}

func (o Options) toCore() sat.Options {
	return sat.Options{
		ClauseDecay:   o.ClauseDecay,
		VariableDecay: o.VariableDecay,
		PhaseSaving:   o.PhaseSaving,
		MaxConflicts:  o.MaxConflicts,
		Timeout:       o.Timeout,
		Verbose:       o.Verbose,
	}
}

// Solver is a CNF instance under construction: a symbol table in front of a
// core sat.Solver.
type Solver struct {
	table *vars.Table
	core  *sat.Solver
}

// New returns an empty Solver configured with opts.
func New(opts Options) *Solver {
	return &Solver{
		table: vars.NewTable(),
		core:  sat.NewSolver(opts.toCore()),
	}
}

// NewDefault returns an empty Solver configured with DefaultOptions.
func NewDefault() *Solver {
	return New(DefaultOptions)
}

// Core exposes the underlying dense-id solver, for callers that need direct
// access (to its search counters or DumpState, for instance).
func (s *Solver) Core() *sat.Solver { return s.core }

func (s *Solver) varID(symbol string) int {
	id, created := s.table.Intern(symbol)
	if created {
		if got := s.core.AddVariable(); got != id {
			panic(fmt.Sprintf("satisfy: table/solver id drift: table gave %d, solver gave %d", id, got))
		}
	}
	return id
}

func (s *Solver) literal(term string) sat.Literal {
	negated := strings.HasPrefix(term, "-")
	symbol := term
	if negated {
		symbol = term[1:]
	}
	v := s.varID(symbol)
	if negated {
		return sat.NegativeLiteral(v)
	}
	return sat.PositiveLiteral(v)
}

// AddClause adds a disjunctive clause given as signed variable symbols, e.g.
// AddClause("a", "-b", "c") for (a ∨ ¬b ∨ c). A symbol is interned the first
// time it is mentioned, by either polarity.
func (s *Solver) AddClause(literals ...string) error {
	lits := make([]sat.Literal, len(literals))
	for i, term := range literals {
		lits[i] = s.literal(term)
	}
	return s.core.AddClause(lits)
}

// Solve searches for a satisfying assignment. On success it returns the
// model and true; on a proof of unsatisfiability or a budget cutoff it
// returns nil and false. The return values do not tell those two cases apart.
func (s *Solver) Solve() (Model, bool) {
	if s.core.Solve() != sat.True {
		return nil, false
	}
	return s.lastModel(), true
}

func (s *Solver) toModel(bits []bool) Model {
	m := make(Model, len(bits))
	for _, symbol := range s.table.Symbols() {
		id, _ := s.table.Lookup(symbol)
		m[symbol] = bits[id]
	}
	return m
}

func (s *Solver) lastModel() Model {
	return s.toModel(s.core.Models[len(s.core.Models)-1])
}

// Models returns every model accumulated so far, most recent last, in the
// same symbol-keyed form as Solve.
func (s *Solver) Models() []Model {
	out := make([]Model, len(s.core.Models))
	for i, bits := range s.core.Models {
		out[i] = s.toModel(bits)
	}
	return out
}

// BlockModel adds a clause forbidding the given model from being found
// again: the classic blocking-clause trick used to enumerate every solution
// of a satisfiable instance one at a time.
func (s *Solver) BlockModel(m Model) error {
	lits := make([]sat.Literal, 0, len(m))
	for symbol, value := range m {
		id, ok := s.table.Lookup(symbol)
		if !ok {
			return fmt.Errorf("satisfy: symbol %q never interned", symbol)
		}
		if value {
			lits = append(lits, sat.NegativeLiteral(id))
		} else {
			lits = append(lits, sat.PositiveLiteral(id))
		}
	}
	return s.core.AddClause(lits)
}

// SolveAll enumerates every model of the instance by repeatedly solving and
// blocking the model just found, as in the solve-all verification pattern.
// It stops as soon as Solve returns false (either UNSAT, meaning every model
// has now been found, or a budget cutoff was hit).
func (s *Solver) SolveAll() []Model {
	for {
		m, ok := s.Solve()
		if !ok {
			break
		}
		if err := s.BlockModel(m); err != nil {
			break
		}
	}
	return s.Models()
}

// Verify reports whether m satisfies every one of the given clauses, each
// expressed the same way as AddClause's arguments. A symbol present in a
// clause but absent from m is treated as false, matching the solver's own
// unassigned-resolves-to-false convention.
func Verify(m Model, clauses [][]string) bool {
	for _, clause := range clauses {
		satisfied := false
		for _, term := range clause {
			negated := strings.HasPrefix(term, "-")
			symbol := term
			if negated {
				symbol = term[1:]
			}
			if m[symbol] != negated {
				satisfied = true
				break
			}
		}
		if !satisfied {
			return false
		}
	}
	return true
}
