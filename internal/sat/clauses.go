package sat

import "strings"

// Clause is an ordered, duplicate-free sequence of literals. The
// first two positions are the clause's watched literals: for a non-unit
// clause they are watched by the variable table (the clause appears in the
// watch list of var(literals[0]) and var(literals[1])); a unit clause is
// watched once, by the variable of its sole literal.
type Clause struct {
	literals []Literal
	activity float64
	learnt   bool
}

// newClause builds a clause directly from already-simplified, non-empty
// literals without touching the solver. Used both for genuinely new clauses
// and to rebuild one inside NewClause once size has been trimmed.
func newClause(lits []Literal, learnt bool) *Clause {
	c := &Clause{
		literals: make([]Literal, len(lits)),
		learnt:   learnt,
	}
	copy(c.literals, lits)
	return c
}

// NewClause constructs a clause from tmpLiterals (which may be mutated in
// place) and registers it with the solver. It returns (clause, ok):
//
//   - (nil, false) if the clause is the empty clause (formula is
//     unsatisfiable at this point).
//   - (nil, true) if the clause was absorbed: it was trivially true (a
//     tautology, or already satisfied at the root level), or it was a
//     non-learnt unit clause that was enqueued directly rather than stored.
//   - (c, true) for a genuine multi-literal clause, already registered in the
//     two relevant watch lists, or for a learnt unit clause, registered once
//     in its sole variable's watch list.
//
// Non-learnt clauses are simplified against the current (root-level, by
// invariant of AddClause) assignment and de-duplicated first; learnt
// clauses are assumed already resolved down to their final literals by
// conflict analysis and are not simplified again.
func NewClause(s *Solver, tmpLiterals []Literal, learnt bool) (*Clause, bool) {
	size := len(tmpLiterals)

	if !learnt {
		seen := make(map[Literal]struct{}, size)
		for i := size - 1; i >= 0; i-- {
			if _, ok := seen[tmpLiterals[i].Opposite()]; ok {
				return nil, true // tautology: p and !p both present
			}
			if _, ok := seen[tmpLiterals[i]]; ok {
				size--
				tmpLiterals[i], tmpLiterals[size] = tmpLiterals[size], tmpLiterals[i]
				continue
			}
			seen[tmpLiterals[i]] = struct{}{}

			switch s.LitValue(tmpLiterals[i]) {
			case True:
				return nil, true // already satisfied at the root level
			case False:
				size--
				tmpLiterals[i], tmpLiterals[size] = tmpLiterals[size], tmpLiterals[i]
			}
		}
		tmpLiterals = tmpLiterals[:size]
	}

	switch size {
	case 0:
		return nil, false
	case 1:
		if !learnt {
			// A root-level unit fact: enqueue it directly, no clause object
			// or watch entry needed.
			return nil, s.enqueue(tmpLiterals[0], nil)
		}
		// A unit learnt clause still gets entered into the watch index once,
		// so that it has a home to be scrubbed from if it is ever
		// (hypothetically) removed, and so integrity checks hold uniformly
		// for every clause.
		c := newClause(tmpLiterals, true)
		s.watch(c.literals[0].VarID(), c)
		s.order.BumpScore(c.literals[0].VarID())
		s.BumpClauseActivity(c)
		return c, true
	default:
		c := newClause(tmpLiterals, learnt)

		if learnt {
			// The asserting literal (already placed at index 0 by conflict
			// analysis) stays put; move the literal with the highest level
			// among the rest into position 1 so the clause is asserting
			// immediately after backjumping to that level.
			maxLevel, at := -1, 1
			for i := 1; i < len(c.literals); i++ {
				if lv := s.level[c.literals[i].VarID()]; lv > maxLevel {
					maxLevel, at = lv, i
				}
			}
			c.literals[1], c.literals[at] = c.literals[at], c.literals[1]
		}

		s.watch(c.literals[0].VarID(), c)
		s.watch(c.literals[1].VarID(), c)

		// Variable activity is bumped for at least the literals of any new
		// clause; a learnt clause additionally bumps its own activity and
		// every one of its other literals.
		s.order.BumpScore(c.literals[0].VarID())
		if learnt {
			s.BumpClauseActivity(c)
			for _, l := range c.literals[1:] {
				s.order.BumpScore(l.VarID())
			}
		}
		return c, true
	}
}

// locked reports whether c is currently the reason its first literal's
// variable was assigned, i.e. whether Reduce-DB must leave it alone.
func (c *Clause) locked(s *Solver) bool {
	return s.reason[c.literals[0].VarID()] == c
}

// unwatch removes c from the watch lists it was registered in. Learnt and
// original clauses alike must be scrubbed this way before being dropped,
// since the watch lists hold non-owning references.
func (c *Clause) unwatch(s *Solver) {
	s.unwatch(c.literals[0].VarID(), c)
	if len(c.literals) > 1 {
		s.unwatch(c.literals[1].VarID(), c)
	}
}

// simplify drops literals that are false at the root level and reports
// whether the clause is now trivially true (and can be dropped outright).
// Called only at decision level 0.
func (c *Clause) simplify(s *Solver) bool {
	k := 0
	for _, l := range c.literals {
		switch s.LitValue(l) {
		case True:
			return true
		case False:
			// drop
		default:
			c.literals[k] = l
			k++
		}
	}
	c.literals = c.literals[:k]
	return false
}

// propagate is invoked once per watching variable v whenever v is dequeued
// from the propagation queue. It returns false exactly when
// the clause has become a conflict.
func (c *Clause) propagate(s *Solver, v int) bool {
	if s.LitValue(c.literals[0]) == True {
		s.watch(v, c)
		return true
	}
	if len(c.literals) == 1 {
		s.watch(v, c)
		return s.LitValue(c.literals[0]) != False
	}

	// Normalize so that the watched literal that just became false sits at
	// literals[1]; if instead the variable just satisfied literals[1], move
	// it to literals[0] so future propagate calls short-circuit on the first
	// check above.
	if c.literals[0].VarID() == v && s.LitValue(c.literals[0]) == False {
		c.literals[0], c.literals[1] = c.literals[1], c.literals[0]
	} else if c.literals[1].VarID() == v && s.LitValue(c.literals[1]) == True {
		c.literals[0], c.literals[1] = c.literals[1], c.literals[0]
		s.watch(v, c)
		return true
	}

	for i := 2; i < len(c.literals); i++ {
		if s.LitValue(c.literals[i]) != False {
			c.literals[1], c.literals[i] = c.literals[i], c.literals[1]
			s.watch(c.literals[1].VarID(), c)
			if s.LitValue(c.literals[1]) == True {
				c.literals[0], c.literals[1] = c.literals[1], c.literals[0]
			}
			return true
		}
	}

	// literals[0] is the sole candidate left; it must become true.
	s.watch(v, c)
	return s.enqueue(c.literals[0], c)
}

// explainFailure returns, into out, the negation of every literal in c: used
// when c is itself the conflict clause.
func (c *Clause) explainFailure(s *Solver, out *[]Literal) {
	exp := (*out)[:0]
	for _, l := range c.literals {
		exp = append(exp, l.Opposite())
	}
	*out = exp
	if c.learnt {
		s.BumpClauseActivity(c)
	}
}

// explainAssign returns, into out, the negation of every literal of c except
// literals[0] (the literal c forced true): used when c is the reason of the
// current pivot.
func (c *Clause) explainAssign(s *Solver, out *[]Literal) {
	exp := (*out)[:0]
	for _, l := range c.literals[1:] {
		exp = append(exp, l.Opposite())
	}
	*out = exp
	if c.learnt {
		s.BumpClauseActivity(c)
	}
}

func (c *Clause) String() string {
	if len(c.literals) == 0 {
		return "Clause[]"
	}
	var sb strings.Builder
	sb.WriteString("Clause[")
	sb.WriteString(c.literals[0].String())
	for _, l := range c.literals[1:] {
		sb.WriteByte(' ')
		sb.WriteString(l.String())
	}
	sb.WriteByte(']')
	return sb.String()
}
