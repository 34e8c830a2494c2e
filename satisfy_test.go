package satisfy

import "testing"

func TestSolver_SolveAndVerify(t *testing.T) {
	tests := []struct {
		name    string
		clauses [][]string
		want    bool // satisfiable?
	}{
		{
			name: "S1 chained units",
			clauses: [][]string{
				{"a"},
				{"-a", "b"},
				{"-b", "c"},
			},
			want: true,
		},
		{
			name: "S2 full 2-var contradiction",
			clauses: [][]string{
				{"a", "b"},
				{"-a", "b"},
				{"a", "-b"},
				{"-a", "-b"},
			},
			want: false,
		},
		{
			name: "S3 forced equality and inequality",
			clauses: [][]string{
				{"e", "-b", "c"},
				{"a", "-d"},
				{"-a", "d"},
				{"-a", "-d"},
				{"a", "d"},
			},
			want: false,
		},
		{
			name: "S4 unit-forced contradiction",
			clauses: [][]string{
				{"x", "y", "z"},
				{"-x", "y"},
				{"-y", "z"},
				{"-z"},
			},
			want: false,
		},
		{
			name: "S5 two units resolved",
			clauses: [][]string{
				{"p", "q"},
				{"-p", "q"},
				{"p", "-q"},
			},
			want: true,
		},
		{
			name: "S6 exactly one of three",
			clauses: [][]string{
				{"a", "b", "c"},
				{"-a", "-b"},
				{"-b", "-c"},
				{"-a", "-c"},
			},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewDefault()
			for _, c := range tt.clauses {
				if err := s.AddClause(c...); err != nil {
					t.Fatalf("AddClause(%v): %s", c, err)
				}
			}

			model, ok := s.Solve()
			if ok != tt.want {
				t.Fatalf("Solve() ok = %v, want %v", ok, tt.want)
			}
			if !ok {
				return
			}
			if !Verify(model, tt.clauses) {
				t.Errorf("model %v does not satisfy clauses %v", model, tt.clauses)
			}
		})
	}
}

func TestSolver_SolveAll_EnumeratesEveryModel(t *testing.T) {
	s := NewDefault()
	// Exactly one of a, b, c: three distinct models.
	clauses := [][]string{
		{"a", "b", "c"},
		{"-a", "-b"},
		{"-b", "-c"},
		{"-a", "-c"},
	}
	for _, c := range clauses {
		if err := s.AddClause(c...); err != nil {
			t.Fatalf("AddClause(%v): %s", c, err)
		}
	}

	models := s.SolveAll()
	if len(models) != 3 {
		t.Fatalf("SolveAll() returned %d models, want 3", len(models))
	}

	seen := map[string]bool{}
	for _, m := range models {
		if !Verify(m, clauses) {
			t.Errorf("model %v does not satisfy the clauses", m)
		}
		key := fmt3(m)
		if seen[key] {
			t.Errorf("model %v was returned more than once", m)
		}
		seen[key] = true
	}
}

func fmt3(m Model) string {
	s := ""
	for _, v := range []string{"a", "b", "c"} {
		if m[v] {
			s += "1"
		} else {
			s += "0"
		}
	}
	return s
}

func TestSolver_EmptyInstanceIsSat(t *testing.T) {
	s := NewDefault()
	model, ok := s.Solve()
	if !ok {
		t.Fatal("Solve() on an empty instance returned unsat")
	}
	if len(model) != 0 {
		t.Errorf("model = %v, want empty", model)
	}
}

func TestSolver_BlockModel_ForbidsRediscovery(t *testing.T) {
	s := NewDefault()
	if err := s.AddClause("a", "b"); err != nil {
		t.Fatal(err)
	}

	model, ok := s.Solve()
	if !ok {
		t.Fatal("Solve() returned unsat")
	}
	if err := s.BlockModel(model); err != nil {
		t.Fatalf("BlockModel: %s", err)
	}

	second, ok := s.Solve()
	if ok && equalModels(second, model) {
		t.Error("BlockModel did not prevent the same model from being found again")
	}
}

func equalModels(a, b Model) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if b[k] != v {
			return false
		}
	}
	return true
}
