// Package parsers loads DIMACS CNF instances using the external
// github.com/rhartert/dimacs reader, interning each DIMACS variable number as
// a string symbol in a vars.Table alongside the solver's own dense id. It is
// for callers that want that symbol table, as opposed to internal/dimacs's
// hand-rolled reader, which the CLI uses directly since it has no need for
// symbol interning.
package parsers

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/rhartert/dimacs"

	"github.com/hartsolve/satisfy/internal/sat"
	"github.com/hartsolve/satisfy/internal/vars"
)

func reader(filename string, gzipped bool) (io.ReadCloser, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	rc := io.ReadCloser(file)
	if gzipped {
		rc, err = gzip.NewReader(rc)
		if err != nil {
			return nil, err
		}
	}
	return rc, nil
}

// LoadDIMACS parses the DIMACS CNF file and loads its formula into solver,
// interning each 1-based DIMACS variable number (as its decimal string) into
// table. It returns an error if table already has variables interned
// under those symbols, since a solver's dense ids and a fresh table's ids
// must stay in lockstep.
func LoadDIMACS(filename string, gzipped bool, table *vars.Table, solver *sat.Solver) error {
	rc, err := reader(filename, gzipped)
	if err != nil {
		return fmt.Errorf("error reading file %q: %s", filename, err)
	}
	defer rc.Close()

	b := &builder{table: table, solver: solver}
	return dimacs.ReadBuilder(rc, b)
}

type builder struct {
	table  *vars.Table
	solver *sat.Solver
}

func (b *builder) Problem(problem string, nVars int, nClauses int) error {
	if problem != "cnf" {
		return fmt.Errorf("not a CNF problem: %q", problem)
	}
	for i := 1; i <= nVars; i++ {
		id, created := b.table.Intern(strconv.Itoa(i))
		if !created {
			return fmt.Errorf("variable %d already interned as id %d", i, id)
		}
		if got := b.solver.AddVariable(); got != id {
			return fmt.Errorf("solver/table id mismatch: solver gave %d, table gave %d", got, id)
		}
	}
	return nil
}

func (b *builder) Clause(tmpClause []int) error {
	clause := make([]sat.Literal, len(tmpClause))
	for i, l := range tmpClause {
		if l < 0 {
			clause[i] = sat.NegativeLiteral(-l - 1)
		} else {
			clause[i] = sat.PositiveLiteral(l - 1)
		}
	}
	return b.solver.AddClause(clause)
}

func (b *builder) Comment(_ string) error {
	return nil
}

// ReadModels returns the models (if any) listed in a ".cnf.models" file, one
// per line, using the same 1-based DIMACS literal convention as instance
// files. It is used to validate the solver against pre-computed results from
// trusted reference solvers.
func ReadModels(filename string) ([][]bool, error) {
	rc, err := reader(filename, false)
	if err != nil {
		return nil, fmt.Errorf("error reading file %q: %s", filename, err)
	}
	defer rc.Close()

	b := &modelBuilder{}
	if err := dimacs.ReadBuilder(rc, b); err != nil {
		return nil, err
	}
	return b.models, nil
}

type modelBuilder struct {
	models [][]bool
}

func (b *modelBuilder) Problem(problem string, nVars int, nClauses int) error {
	return fmt.Errorf("model files should not have a problem line")
}

func (b *modelBuilder) Comment(_ string) error {
	return nil
}

func (b *modelBuilder) Clause(tmpClause []int) error {
	model := make([]bool, len(tmpClause))
	for i, l := range tmpClause {
		model[i] = l > 0
	}
	b.models = append(b.models, model)
	return nil
}
