package dimacs

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/hartsolve/satisfy/internal/sat"
)

type instance struct {
	Variables int
	Clauses   [][]sat.Literal
}

func (i *instance) AddVariable() int {
	i.Variables++
	return i.Variables - 1
}

func (i *instance) AddClause(tmpClause []sat.Literal) error {
	clause := make([]sat.Literal, len(tmpClause))
	copy(clause, tmpClause)
	i.Clauses = append(i.Clauses, clause)
	return nil
}

var want = instance{
	Variables: 3,
	Clauses: [][]sat.Literal{
		{0, 2, 4},
		{0, 2, 5},
		{0, 3, 4},
		{1, 2, 4},
		{1, 3, 4},
		{1, 2, 5},
		{0, 3, 5},
		{1, 3, 5},
	},
}

func TestLoadDIMACS_cnf(t *testing.T) {
	got := instance{}
	if err := LoadDIMACS("testdata/test_instance.cnf", false, &got); err != nil {
		t.Fatalf("LoadDIMACS(): want no error, got %s", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("LoadDIMACS(): mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadDIMACS_gzip(t *testing.T) {
	got := instance{}
	if err := LoadDIMACS("testdata/test_instance.cnf.gz", true, &got); err != nil {
		t.Fatalf("LoadDIMACS(): want no error, got %s", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("LoadDIMACS(): mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadDIMACS_noFile(t *testing.T) {
	got := instance{}
	if err := LoadDIMACS("", false, &got); err == nil {
		t.Error("LoadDIMACS(): want error, got none")
	}
}

func TestLoadDIMACS_gzip_notGzipFile(t *testing.T) {
	got := instance{}
	if err := LoadDIMACS("testdata/test_instance.cnf", true, &got); err == nil {
		t.Error("LoadDIMACS(): want error, got none")
	}
}

func TestParseModels(t *testing.T) {
	got, err := ParseModels("testdata/test_instance.cnf.models")
	if err != nil {
		t.Fatalf("ParseModels(): want no error, got %s", err)
	}
	want := [][]bool{
		{true, true, true},
		{false, true, false},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParseModels(): mismatch (-want +got):\n%s", diff)
	}
}
