package sat

import (
	"fmt"
	"io"

	"github.com/kr/pretty"
)

// DumpState writes a human-readable snapshot of the solver's trail, decision
// levels, and clause database to w. It is meant for debugging a stuck search,
// not for machine consumption. Search calls it when checkInvariants reports a
// violation (with Options.CheckInvariants set), and a caller chasing down a
// suspected bug can call it directly at any point.
func (s *Solver) DumpState(w io.Writer) {
	fmt.Fprintf(w, "decision level: %d\n", s.decisionLevel())
	fmt.Fprintf(w, "trail (%d): %v\n", len(s.trail), s.trail)
	fmt.Fprintf(w, "trailLim: %v\n", s.trailLim)
	fmt.Fprintf(w, "constraints (%d):\n", len(s.constraints))
	for _, c := range s.constraints {
		fmt.Fprintf(w, "  %s\n", c)
	}
	fmt.Fprintf(w, "learnts (%d):\n", len(s.learnts))
	for _, c := range s.learnts {
		pretty.Fprintf(w, "  %# v  activity=%v\n", c.literals, c.activity)
	}
}

// checkInvariants verifies the bookkeeping every solver method is expected to
// maintain: every clause is watched exactly where it should be, the trail and
// the per-variable assignment/level state agree, and every recorded reason is
// still a live clause. It does O(n) work over the whole clause database and
// trail, so it is only ever called when Options.CheckInvariants is set.
func (s *Solver) checkInvariants() error {
	if err := s.checkWatchIntegrity(); err != nil {
		return err
	}
	if err := s.checkTrailIntegrity(); err != nil {
		return err
	}
	return s.checkReasonIntegrity()
}

func (s *Solver) checkWatchIntegrity() error {
	check := func(c *Clause) error {
		if !watches(s.watches[c.literals[0].VarID()], c) {
			return fmt.Errorf("clause %s not watched by its first literal's variable", c)
		}
		if len(c.literals) > 1 && !watches(s.watches[c.literals[1].VarID()], c) {
			return fmt.Errorf("clause %s not watched by its second literal's variable", c)
		}
		return nil
	}
	for _, c := range s.constraints {
		if err := check(c); err != nil {
			return err
		}
	}
	for _, c := range s.learnts {
		if err := check(c); err != nil {
			return err
		}
	}
	return nil
}

func watches(list []*Clause, c *Clause) bool {
	for _, w := range list {
		if w == c {
			return true
		}
	}
	return false
}

func (s *Solver) checkTrailIntegrity() error {
	for i, lim := range s.trailLim {
		if lim > len(s.trail) {
			return fmt.Errorf("trailLim[%d]=%d exceeds trail length %d", i, lim, len(s.trail))
		}
		if i > 0 && lim < s.trailLim[i-1] {
			return fmt.Errorf("trailLim not non-decreasing at index %d", i)
		}
	}
	for _, l := range s.trail {
		if s.assigns[l] != True || s.assigns[l.Opposite()] != False {
			return fmt.Errorf("trail literal %s not reflected in assigns", l)
		}
	}
	return nil
}

func (s *Solver) checkReasonIntegrity() error {
	for v, c := range s.reason {
		if c == nil {
			continue
		}
		if !watches(s.constraints, c) && !watches(s.learnts, c) {
			return fmt.Errorf("reason of variable %d points to a clause no longer in the database", v)
		}
	}
	return nil
}
