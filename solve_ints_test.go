package satisfy

import "testing"

func TestSolveDIMACSInts(t *testing.T) {
	// a v b, -a v b, a v -b -> a=b=true.
	assignment, stats, ok := SolveDIMACSInts(2, [][]int{
		{1, 2},
		{-1, 2},
		{1, -2},
	})
	if !ok {
		t.Fatal("SolveDIMACSInts() returned sat = false, want true")
	}
	if len(assignment) != 2 {
		t.Fatalf("len(assignment) = %d, want 2", len(assignment))
	}
	if assignment[0] != 1 || assignment[1] != 2 {
		t.Errorf("assignment = %v, want [1 2]", assignment)
	}
	if stats["conflicts"] == nil {
		t.Error(`stats["conflicts"] missing`)
	}
}

func TestSolveDIMACSInts_Unsat(t *testing.T) {
	_, _, ok := SolveDIMACSInts(1, [][]int{{1}, {-1}})
	if ok {
		t.Error("SolveDIMACSInts() returned sat = true, want false")
	}
}
