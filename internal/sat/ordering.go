package sat

import (
	"log"

	"github.com/rhartert/yagh"
)

// BranchHeuristic selects the next branch literal and is kept informed of
// variable-activity bumps, decay events, and unassignments. It is the
// solver's one dynamic-dispatch seam: a caller may supply a different
// heuristic than the activity-driven default below.
type BranchHeuristic interface {
	NewVar()
	BumpScore(v int)
	DecayScores()
	Unassigned(v int, lastValue LBool)
	NextDecision(s *Solver) Literal
}

// VarOrder is the default BranchHeuristic: an activity-max heap over
// unassigned variables with geometric decay and optional
// phase saving. Ties are broken by yagh's insertion order, i.e. the order in
// which variables were first interned.
type VarOrder struct {
	heap *yagh.IntMap[float64]

	scores   []float64 // non-negative, rescaled before overflow
	scoreInc float64
	decay    float64

	phases      []LBool // last/assumed polarity per variable
	phaseSaving bool
}

// NewVarOrder returns an empty VarOrder. decay must be in (0,1);
// phaseSaving, when true, remembers a variable's last assigned value and
// proposes it again instead of always defaulting to the positive literal.
func NewVarOrder(decay float64, phaseSaving bool) *VarOrder {
	return &VarOrder{
		heap:        yagh.New[float64](0),
		scoreInc:    1,
		decay:       decay,
		phaseSaving: phaseSaving,
	}
}

func (vo *VarOrder) NewVar() {
	v := len(vo.scores)
	vo.scores = append(vo.scores, 0)
	vo.phases = append(vo.phases, Unknown)
	vo.heap.GrowBy(1)
	vo.heap.Put(v, 0)
}

// Unassigned reinserts v into the set of decision candidates. Must be called
// whenever v becomes unassigned, e.g. by undoOne during backjumping.
func (vo *VarOrder) Unassigned(v int, lastValue LBool) {
	if vo.phaseSaving {
		vo.phases[v] = lastValue
	}
	vo.heap.Put(v, -vo.scores[v])
}

// BumpScore additively bumps v's activity and rescales every score if the
// bump pushed it past the overflow threshold.
func (vo *VarOrder) BumpScore(v int) {
	newScore := vo.scores[v] + vo.scoreInc
	vo.scores[v] = newScore
	if vo.heap.Contains(v) {
		vo.heap.Put(v, -newScore)
	}
	if newScore > 1e100 {
		vo.rescale()
	}
}

// DecayScores shrinks the bump applied by future BumpScore calls, so that
// more recently active variables keep a higher relative score.
func (vo *VarOrder) DecayScores() {
	vo.scoreInc *= vo.decay
}

func (vo *VarOrder) rescale() {
	vo.scoreInc *= 1e-100
	for v, s := range vo.scores {
		rescaled := s * 1e-100
		vo.scores[v] = rescaled
		if vo.heap.Contains(v) {
			vo.heap.Put(v, -rescaled)
		}
	}
}

// NextDecision pops the unassigned variable with the highest activity and
// returns the literal of it to assume. The default, not-phase-saved polarity
// is the positive literal (see DESIGN.md for why).
func (vo *VarOrder) NextDecision(s *Solver) Literal {
	for {
		v, ok := vo.heap.Pop()
		if !ok {
			log.Panic("sat: NextDecision called with no unassigned variable left")
		}
		if s.VarValue(v.Elem) != Unknown {
			continue // stale entry: assigned since it was pushed
		}
		if vo.phases[v.Elem] == False {
			return NegativeLiteral(v.Elem)
		}
		return PositiveLiteral(v.Elem)
	}
}
