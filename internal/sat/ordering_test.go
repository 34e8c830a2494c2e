package sat

import "testing"

func TestVarOrder_NextDecision_PicksHighestActivity(t *testing.T) {
	vo := NewVarOrder(0.95, false)
	for i := 0; i < 3; i++ {
		vo.NewVar()
	}

	vo.BumpScore(1)
	vo.BumpScore(1)
	vo.BumpScore(2)

	s := &Solver{assigns: make([]LBool, 6)} // all Unknown

	got := vo.NextDecision(s)
	if got.VarID() != 1 {
		t.Errorf("NextDecision() picked variable %d, want 1 (highest activity)", got.VarID())
	}
}

func TestVarOrder_NextDecision_SkipsAssignedVariables(t *testing.T) {
	vo := NewVarOrder(0.95, false)
	for i := 0; i < 2; i++ {
		vo.NewVar()
	}
	vo.BumpScore(1)

	s := &Solver{assigns: make([]LBool, 4)}
	s.assigns[PositiveLiteral(1)] = True // variable 1 already assigned

	got := vo.NextDecision(s)
	if got.VarID() != 0 {
		t.Errorf("NextDecision() = var %d, want 0 (1 is assigned)", got.VarID())
	}
}

func TestVarOrder_PhaseSaving_RemembersLastValue(t *testing.T) {
	vo := NewVarOrder(0.95, true)
	vo.NewVar()

	vo.Unassigned(0, False)

	s := &Solver{assigns: make([]LBool, 2)}
	got := vo.NextDecision(s)
	if got.IsPositive() {
		t.Errorf("NextDecision() = %s, want the negative literal (phase saving)", got)
	}
}

func TestVarOrder_NoPhaseSaving_DefaultsPositive(t *testing.T) {
	vo := NewVarOrder(0.95, false)
	vo.NewVar()

	vo.Unassigned(0, False)

	s := &Solver{assigns: make([]LBool, 2)}
	got := vo.NextDecision(s)
	if !got.IsPositive() {
		t.Errorf("NextDecision() = %s, want the positive literal (no phase saving)", got)
	}
}

func TestVarOrder_DecayScores_ShrinksFutureBumps(t *testing.T) {
	vo := NewVarOrder(0.5, false)
	vo.NewVar()

	vo.BumpScore(0)
	first := vo.scores[0]

	vo.DecayScores()
	vo.BumpScore(0)
	second := vo.scores[0] - first

	if second >= first {
		t.Errorf("bump after decay grew the score delta from %v to %v, want smaller", first, second)
	}
}
