// Package sat implements the core of a CDCL SAT solver: two-watched-literal
// unit propagation, first-UIP conflict analysis with non-chronological
// backjumping, an activity-driven learnt clause database with periodic
// reduction, and activity-driven variable branching with geometric decay.
//
// The package works over dense integer variable ids; symbol interning lives
// one layer up, in package vars.
package sat

import (
	"errors"
	"fmt"
	"log"
	"os"
	"sort"
	"time"
)

// ErrRootLevelOnly is returned by AddClause when called after the search has
// started branching: new clauses may only be added at decision level 0.
var ErrRootLevelOnly = errors.New("sat: called above decision level 0")

// Options configures a Solver. The zero value is not valid; use
// DefaultOptions or NewDefaultSolver.
type Options struct {
	ClauseDecay   float64
	VariableDecay float64
	PhaseSaving   bool

	// MaxConflicts bounds the number of conflicts Solve will process before
	// giving up and returning Unknown; negative means unbounded. A
	// wall-clock/iteration cap checked between loop iterations.
	MaxConflicts int64
	Timeout      time.Duration

	// Verbose makes Solve print MiniSat-style search-progress banners.
	// Library embedders generally want this off; the CLI collaborator turns
	// it on.
	Verbose bool

	// OnProgress, if set, is called once after every restart iteration of
	// Solve's outer loop with a snapshot of the search counters taken so
	// far, letting a caller report progress on instances that need more
	// than one growth of the conflict/learnt budget.
	OnProgress func(Stats)

	// CheckInvariants makes Search verify watch-list, trail, and reason
	// bookkeeping before every decision, panicking with a state dump
	// (DumpState) on the first violation found. It is O(clauses+trail) per
	// decision, so it is meant for tests and debugging, not production use.
	CheckInvariants bool
}

// DefaultOptions holds the conventional MiniSat-style decay constants.
var DefaultOptions = Options{
	ClauseDecay:   0.999,
	VariableDecay: 0.95,
	MaxConflicts:  -1,
	Timeout:       -1,
}

// Solver is a single-threaded, synchronous CDCL search state. No method
// suspends, blocks, or yields; every mutation goes through a Solver method.
type Solver struct {
	opts Options

	// Clause database.
	constraints []*Clause
	learnts     []*Clause
	clauseInc   float64

	// Variable ordering / activity manager, injected so
	// a caller may supply a custom heuristic.
	order BranchHeuristic

	// Watch index: per-variable list of clauses currently watching that
	// variable.
	watches   [][]*Clause
	propQueue *Queue[int]

	// assigns is indexed by Literal (2 slots per variable): the truth value,
	// if any, currently assigned to that literal.
	assigns []LBool

	// Trail and level stack.
	trail    []Literal
	trailLim []int
	reason   []*Clause
	level    []int

	unsat bool

	TotalConflicts      int64
	TotalDecisions      int64
	TotalPropagations   int64
	TotalRestarts       int64
	TotalLearntsDeleted int64
	startTime           time.Time

	seenVar *ResetSet

	// Reusable scratch buffers, to keep Propagate/analyze allocation-free on
	// the hot path.
	tmpWatchers []*Clause
	tmpLearnts  []Literal
	tmpReason   []Literal

	// Models accumulates one entry per successful Solve call, letting a
	// caller block the last model found and search for another (see
	// satisfy's Solver.BlockModel and Solver.SolveAll).
	Models [][]bool
}

// NewDefaultSolver returns a Solver configured with DefaultOptions.
func NewDefaultSolver() *Solver {
	return NewSolver(DefaultOptions)
}

// NewSolver returns an empty Solver configured with opts.
func NewSolver(opts Options) *Solver {
	return &Solver{
		opts:      opts,
		clauseInc: 1,
		order:     NewVarOrder(opts.VariableDecay, opts.PhaseSaving),
		propQueue: NewQueue[int](128),
		seenVar:   &ResetSet{},
	}
}

// Stats is a point-in-time snapshot of a Solver's plain search counters, for
// a caller that wants one value to log or export rather than five separate
// fields.
type Stats struct {
	Conflicts      int64
	Decisions      int64
	Propagations   int64
	Restarts       int64
	LearntsDeleted int64
}

// Stats snapshots the solver's search counters.
func (s *Solver) Stats() Stats {
	return Stats{
		Conflicts:      s.TotalConflicts,
		Decisions:      s.TotalDecisions,
		Propagations:   s.TotalPropagations,
		Restarts:       s.TotalRestarts,
		LearntsDeleted: s.TotalLearntsDeleted,
	}
}

func (s *Solver) shouldStop() bool {
	if s.opts.MaxConflicts >= 0 && s.TotalConflicts >= s.opts.MaxConflicts {
		return true
	}
	if s.opts.Timeout >= 0 && time.Since(s.startTime) >= s.opts.Timeout {
		return true
	}
	return false
}

// NumVariables returns the number of variables known to the solver.
func (s *Solver) NumVariables() int { return len(s.level) }

// NumAssigns returns the number of currently assigned variables.
func (s *Solver) NumAssigns() int { return len(s.trail) }

// NumConstraints returns the number of original (non-learnt) clauses.
func (s *Solver) NumConstraints() int { return len(s.constraints) }

// NumLearnts returns the number of learnt clauses currently retained.
func (s *Solver) NumLearnts() int { return len(s.learnts) }

// VarValue returns the current value of variable v.
func (s *Solver) VarValue(v int) LBool { return s.assigns[PositiveLiteral(v)] }

// LitValue returns the current value of literal l.
func (s *Solver) LitValue(l Literal) LBool { return s.assigns[l] }

// AddVariable allocates a new variable and returns its dense id.
func (s *Solver) AddVariable() int {
	id := len(s.level)
	s.watches = append(s.watches, nil)
	s.reason = append(s.reason, nil)
	s.level = append(s.level, -1)
	s.assigns = append(s.assigns, Unknown, Unknown)
	s.seenVar.Grow()
	s.order.NewVar()
	return id
}

// watch registers c as watching the variable v.
func (s *Solver) watch(v int, c *Clause) {
	s.watches[v] = append(s.watches[v], c)
}

// unwatch removes c from v's watch list.
func (s *Solver) unwatch(v int, c *Clause) {
	list := s.watches[v]
	j := 0
	for i := range list {
		if list[i] != c {
			list[j] = list[i]
			j++
		}
	}
	s.watches[v] = list[:j]
}

// AddClause adds an original clause given as a slice of literals. It may
// only be called at decision level 0. A trivially true clause
// is silently absorbed; an empty clause marks the problem unsatisfiable,
// surfaced the next time Solve is called.
func (s *Solver) AddClause(literals []Literal) error {
	if s.decisionLevel() != 0 {
		return fmt.Errorf("sat: AddClause at decision level %d: %w", s.decisionLevel(), ErrRootLevelOnly)
	}
	c, ok := NewClause(s, literals, false)
	if !ok {
		s.unsat = true
		return nil
	}
	if c != nil {
		s.constraints = append(s.constraints, c)
	}
	return nil
}

// Simplify performs the one-shot top-level simplification: it propagates
// any pending root-level facts and then drops clauses already
// satisfied at the root level. It must only be called at decision level 0.
func (s *Solver) Simplify() bool {
	if s.decisionLevel() != 0 {
		log.Panicf("sat: Simplify called at decision level %d, want 0", s.decisionLevel())
	}
	if s.propQueue.Size() != 0 {
		log.Panic("sat: Simplify called with a non-empty propagation queue")
	}
	if s.unsat || s.Propagate() != nil {
		s.unsat = true
		return false
	}
	s.simplifyStored(&s.learnts)
	s.simplifyStored(&s.constraints)
	return true
}

func (s *Solver) simplifyStored(clauses *[]*Clause) {
	cs := *clauses
	j := 0
	for i := range cs {
		if cs[i].simplify(s) {
			if cs[i].locked(s) {
				s.reason[cs[i].literals[0].VarID()] = nil
			}
			cs[i].unwatch(s)
		} else {
			cs[j] = cs[i]
			j++
		}
	}
	*clauses = cs[:j]
}

// ReduceDB culls low-activity, unlocked learnt clauses.
func (s *Solver) ReduceDB() {
	if len(s.learnts) == 0 {
		return
	}
	lim := s.clauseInc / float64(len(s.learnts))

	sort.Slice(s.learnts, func(i, j int) bool {
		return s.learnts[i].activity < s.learnts[j].activity
	})

	j := 0
	half := len(s.learnts) / 2
	for i := 0; i < half; i++ {
		if s.learnts[i].locked(s) {
			s.learnts[j] = s.learnts[i]
			j++
		} else {
			s.learnts[i].unwatch(s)
			s.TotalLearntsDeleted++
		}
	}
	for i := half; i < len(s.learnts); i++ {
		if !s.learnts[i].locked(s) && s.learnts[i].activity < lim {
			s.learnts[i].unwatch(s)
			s.TotalLearntsDeleted++
		} else {
			s.learnts[j] = s.learnts[i]
			j++
		}
	}
	s.learnts = s.learnts[:j]
}

func (s *Solver) decisionLevel() int { return len(s.trailLim) }

// BumpClauseActivity additively bumps c's activity, rescaling every learnt
// clause's activity (and the increment) if it has grown past the overflow
// threshold.
func (s *Solver) BumpClauseActivity(c *Clause) {
	c.activity += s.clauseInc
	if c.activity > 1e100 {
		s.clauseInc *= 1e-100
		for _, l := range s.learnts {
			l.activity *= 1e-100
		}
	}
}

// DecayClauseActivity shrinks the bump applied by future BumpClauseActivity
// calls.
func (s *Solver) DecayClauseActivity() {
	s.clauseInc *= s.opts.ClauseDecay
}

// Propagate drains the propagation queue, returning the clause that
// conflicted or nil if propagation reached quiescence.
func (s *Solver) Propagate() *Clause {
	for s.propQueue.Size() > 0 {
		v := s.propQueue.Pop()
		s.TotalPropagations++

		s.tmpWatchers = append(s.tmpWatchers[:0], s.watches[v]...)
		s.watches[v] = s.watches[v][:0]

		for i, c := range s.tmpWatchers {
			if c.propagate(s, v) {
				continue
			}
			// Conflict: reinsert the not-yet-examined watchers and bail.
			s.watches[v] = append(s.watches[v], s.tmpWatchers[i+1:]...)
			s.propQueue.Clear()
			return c
		}
	}
	return nil
}

// enqueue assigns l true (recording level and reason) unless its variable is
// already assigned, in which case it reports whether l already evaluates
// true.
func (s *Solver) enqueue(l Literal, from *Clause) bool {
	switch s.LitValue(l) {
	case False:
		return false
	case True:
		return true
	default:
		v := l.VarID()
		s.assigns[l] = True
		s.assigns[l.Opposite()] = False
		s.level[v] = s.decisionLevel()
		s.reason[v] = from
		s.trail = append(s.trail, l)
		s.propQueue.Push(v)
		return true
	}
}

// undoOne unassigns the most recently assigned variable and reinserts it
// into the branch-order candidates.
func (s *Solver) undoOne() {
	l := s.trail[len(s.trail)-1]
	s.trail = s.trail[:len(s.trail)-1]

	v := l.VarID()
	lastValue := s.assigns[l]
	s.assigns[l] = Unknown
	s.assigns[l.Opposite()] = Unknown
	s.reason[v] = nil
	s.level[v] = -1
	s.order.Unassigned(v, lastValue)
}

func (s *Solver) assume(l Literal) bool {
	s.trailLim = append(s.trailLim, len(s.trail))
	s.TotalDecisions++
	return s.enqueue(l, nil)
}

func (s *Solver) cancel() {
	c := len(s.trail) - s.trailLim[len(s.trailLim)-1]
	for ; c > 0; c-- {
		s.undoOne()
	}
	s.trailLim = s.trailLim[:len(s.trailLim)-1]
}

// cancelUntil backjumps to level, undoing every assignment made at a deeper
// decision level.
func (s *Solver) cancelUntil(level int) {
	for s.decisionLevel() > level {
		s.cancel()
	}
}

// explain returns, into s.tmpReason, the reason literals of c relative to
// pivot l. l == -1 denotes "no pivot yet", i.e. c is
// itself the conflict clause.
func (s *Solver) explain(c *Clause, l Literal) []Literal {
	if l == noLiteral {
		c.explainFailure(s, &s.tmpReason)
	} else {
		c.explainAssign(s, &s.tmpReason)
	}
	return s.tmpReason
}

// noLiteral is the "no pivot yet" sentinel used by analyze.
const noLiteral Literal = -1

// analyze performs first-UIP conflict analysis: starting from
// the conflict clause confl, it resolves backward through the implication
// graph until exactly one literal assigned at the current decision level
// remains, returning the learnt clause (asserting literal first) and the
// backjump level.
func (s *Solver) analyze(confl *Clause) ([]Literal, int) {
	counter := 0
	d := s.decisionLevel()

	s.tmpLearnts = append(s.tmpLearnts[:0], noLiteral) // reserve slot 0
	s.seenVar.Clear()
	backjumpLevel := 0

	p := noLiteral

	for {
		for _, q := range s.explain(confl, p) {
			v := q.VarID()
			if s.seenVar.Contains(v) {
				continue
			}
			s.seenVar.Add(v)
			s.order.BumpScore(v)

			switch {
			case s.level[v] == d:
				counter++
			case s.level[v] > 0:
				s.tmpLearnts = append(s.tmpLearnts, q.Opposite())
				if s.level[v] > backjumpLevel {
					backjumpLevel = s.level[v]
				}
			}
			// Level-0 literals are permanently assigned and dropped.
		}

		// Select the next pivot: walk the trail backward, undoing each
		// assignment as it is visited, until landing on a seen variable.
		// Reading the reason before undoOne clears it matters: undoOne
		// resets s.reason[v] to nil.
		var v int
		for {
			p = s.trail[len(s.trail)-1]
			v = p.VarID()
			confl = s.reason[v]
			s.undoOne()
			if s.seenVar.Contains(v) {
				break
			}
		}

		counter--
		if counter == 0 {
			break
		}
	}

	s.tmpLearnts[0] = p.Opposite()
	return s.tmpLearnts, backjumpLevel
}

// record builds the learnt clause from the literals analyze produced and
// enqueues its asserting literal at the backjump level the caller already
// moved to.
func (s *Solver) record(literals []Literal) {
	c, _ := NewClause(s, literals, true)
	s.enqueue(literals[0], c)
	if c != nil {
		s.learnts = append(s.learnts, c)
	}
}

// Search runs the decide/propagate/analyze/backjump loop
// until a model is found, the formula is refuted, or more than maxConflicts
// conflicts occur in this call or the Options ceiling is reached (returning
// Unknown so an outer restart loop can retune and resume). nLearnts does not
// end the search: it is the learnt-database size above which ReduceDB runs.
func (s *Solver) Search(maxConflicts, nLearnts int) LBool {
	if s.unsat {
		return False
	}

	s.TotalRestarts++
	conflicts := 0

	for {
		if conflict := s.Propagate(); conflict != nil {
			conflicts++
			s.TotalConflicts++

			if s.decisionLevel() == 0 {
				s.unsat = true
				return False
			}

			learnt, backjumpLevel := s.analyze(conflict)
			s.cancelUntil(backjumpLevel)
			s.record(learnt)

			s.DecayClauseActivity()
			s.order.DecayScores()
			continue
		}

		if s.decisionLevel() == 0 {
			s.Simplify()
		}

		if len(s.learnts)-s.NumAssigns() >= nLearnts {
			s.ReduceDB()
		}

		if s.modelFound() {
			s.saveModel()
			s.cancelUntil(0)
			return True
		}

		if maxConflicts >= 0 && conflicts > maxConflicts {
			s.cancelUntil(0)
			return Unknown
		}
		if s.shouldStop() {
			s.cancelUntil(0)
			return Unknown
		}

		if s.opts.CheckInvariants {
			if err := s.checkInvariants(); err != nil {
				s.DumpState(os.Stderr)
				log.Panicf("sat: invariant violated: %v", err)
			}
		}

		lit := s.order.NextDecision(s)
		s.assume(lit)
	}
}

// modelFound reports whether the search is over: either every variable is
// assigned, or every original clause already has a true literal.
func (s *Solver) modelFound() bool {
	if s.NumAssigns() == s.NumVariables() {
		return true
	}
	for _, c := range s.constraints {
		satisfied := false
		for _, l := range c.literals {
			if s.LitValue(l) == True {
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

func (s *Solver) saveModel() {
	model := make([]bool, s.NumVariables())
	for v := range model {
		lb := s.VarValue(v)
		model[v] = lb == True // a variable never branched on defaults to false
	}
	s.Models = append(s.Models, model)
}

// Solve orchestrates the top-level loop: a one-shot simplification, then
// Search with a growing conflict/learnt budget until a definite answer is
// reached. Every Search call that exhausts its conflict budget ends in a
// restart, so with any options an instance that needs more than the initial
// 100 conflicts is restarted at least once.
func (s *Solver) Solve() LBool {
	if !s.unsat {
		s.Simplify()
	}
	if s.unsat {
		return False
	}

	s.startTime = time.Now()
	maxConflicts := 100
	nLearnts := s.NumConstraints() / 3
	if nLearnts == 0 {
		nLearnts = 1
	}

	if s.opts.Verbose {
		s.printSeparator()
		s.printSearchHeader()
	}

	status := Unknown
	for status == Unknown {
		status = s.Search(maxConflicts, nLearnts)
		if s.opts.Verbose {
			s.printSearchStats()
		}
		if s.opts.OnProgress != nil {
			s.opts.OnProgress(s.Stats())
		}
		if s.shouldStop() {
			break
		}
		maxConflicts += maxConflicts / 10
		nLearnts += nLearnts / 20
	}

	if s.opts.Verbose {
		s.printSeparator()
	}

	s.cancelUntil(0)
	return status
}

func (s *Solver) printSeparator() {
	fmt.Println("c ---------------------------------------------------------------------------")
}

func (s *Solver) printSearchHeader() {
	fmt.Println("c       time     conflicts     decisions   propagations       learnts")
}

func (s *Solver) printSearchStats() {
	fmt.Printf(
		"c %9.3fs %13d %13d %14d %13d\n",
		time.Since(s.startTime).Seconds(),
		s.TotalConflicts,
		s.TotalDecisions,
		s.TotalPropagations,
		len(s.learnts))
}
