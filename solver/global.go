package solver

import (
	"sort"
	"time"
)

// GlobalPreprocess runs the exhaustive conditional probing pass: every
// candidate literal is assumed as a probe, each literal touched by the
// resulting assignment is assumed on top of it, and the conditional
// derivation is attempted on the two-decision assignment. Probes that fail
// outright yield root units instead. Returns Unsat when the pass refuted
// the formula, Indet otherwise.
func (s *Solver) GlobalPreprocess() Status {
	s.initRand()
	s.armGlobalBudget()
	defer s.disarmGlobalBudget()

	var sorted []Lit
	if s.Options.GlobalOrder == GlobalOrderFrequency {
		sorted = s.sortedLiterals()
	}

	derived := s.Stats.NbBlocked
	for count := 0; count < s.nbVars; count++ {
		if s.globalBudgetExceeded() {
			break
		}
		var probe Lit
		switch s.Options.GlobalOrder {
		case GlobalOrderFrequency:
			if count >= len(sorted) {
				count = s.nbVars
				continue
			}
			probe = sorted[count]
		case GlobalOrderAscending:
			probe = Var(count).Lit()
		default:
			probe = Var(s.rng.Intn(s.nbVars)).SignedLit(s.rng.Intn(2) == 1)
		}
		s.backtrack(0)
		if s.vflags[probe.Var()] == Fixed || s.vals[probe] != 0 {
			continue
		}
		s.assumeDecision(probe)
		if s.propagate() != nil {
			if !s.resolveConflicts() {
				return Unsat
			}
			continue
		}

		for _, j := range s.touchedLiterals() {
			if s.globalBudgetExceeded() {
				break
			}
			pols := []bool{false}
			if s.Options.GlobalBothPolarities {
				pols = []bool{true, false}
			}
			for _, negate := range pols {
				// The probe itself may have become a root fact inside this
				// loop, which ends the whole round for it.
				if s.vflags[probe.Var()] == Fixed {
					break
				}
				second := j
				if negate {
					second = j.Negation()
				}
				if s.vflags[second.Var()] == Fixed {
					continue
				}
				s.backtrack(0)
				if !s.resolveConflicts() {
					return Unsat
				}
				if s.vals[probe] != 0 {
					continue
				}
				s.assumeDecision(probe)
				if s.propagate() != nil {
					if !s.resolveConflicts() {
						return Unsat
					}
					continue
				}
				if s.vals[second] != 0 {
					continue
				}
				s.assumeDecision(second)
				if s.propagate() != nil {
					if !s.resolveConflicts() {
						return Unsat
					}
					continue
				}
				s.leastConditionalPart(nil)
				s.backtrack(0)
				if s.unsat {
					return Unsat
				}
			}
			if s.vflags[probe.Var()] == Fixed {
				break
			}
		}
		if s.unsat {
			return Unsat
		}

		// End the round with a failed literal check on both polarities.
		s.backtrack(0)
		if s.vflags[probe.Var()] == Fixed {
			continue
		}
		if !s.failedProbe(probe) || s.unsat {
			if s.unsat {
				return Unsat
			}
			continue
		}
		if !s.failedProbe(probe.Negation()) || s.unsat {
			if s.unsat {
				return Unsat
			}
			continue
		}
	}
	s.backtrack(0)
	if s.unsat {
		return Unsat
	}
	s.report("global preprocess", map[string]interface{}{"blocked": s.Stats.NbBlocked - derived, "derivations": s.Stats.NbDerivations})
	return Indet
}

func (s *Solver) armGlobalBudget() {
	if s.Options.GlobalTimeBudget > 0 {
		s.globalDeadline = time.Now().Add(s.Options.GlobalTimeBudget)
	}
}

func (s *Solver) disarmGlobalBudget() {
	s.globalDeadline = time.Time{}
}

func (s *Solver) globalBudgetExceeded() bool {
	if s.terminated.Load() {
		return true
	}
	return !s.globalDeadline.IsZero() && time.Now().After(s.globalDeadline)
}

// resolveConflicts analyzes pending conflicts until propagation reaches a
// clean fixpoint. Returns false when the formula became unsat.
func (s *Solver) resolveConflicts() bool {
	for !s.unsat && s.propagate() != nil {
		s.handleConflict()
	}
	return !s.unsat
}

// failedProbe assumes l at the root; when propagation conflicts the probe
// failed and the conflict is turned into learned facts. The root level is
// restored either way.
func (s *Solver) failedProbe(l Lit) bool {
	if s.vals[l] != 0 {
		return true
	}
	s.assumeDecision(l)
	if s.propagate() != nil {
		s.resolveConflicts()
		s.backtrack(0)
		return false
	}
	s.backtrack(0)
	return true
}

// touchedLiterals returns the unassigned literals of clauses that the
// current assignment touches without satisfying. They are the natural
// second-probe candidates: assuming one of them forces the clause to be
// repaired by the rest of the assignment.
func (s *Solver) touchedLiterals() []Lit {
	if !s.Options.GlobalTouch {
		res := make([]Lit, 0, s.nbVars)
		for v := 0; v < s.nbVars; v++ {
			res = append(res, Var(v).Lit())
		}
		return res
	}
	var res []Lit
	for _, c := range s.wl.clauses {
		if c.Garbage() {
			continue
		}
		touchedClause, satisfied := false, false
		var consider []Lit
		for i := 0; i < c.Len(); i++ {
			l := c.Get(i)
			if s.vals[l] > 0 {
				satisfied = true
				break
			} else if s.vals[l] < 0 {
				touchedClause = true
			} else if !s.touchMarked(l) && s.vflags[l.Var()] != Fixed {
				consider = append(consider, l)
			}
		}
		if touchedClause && !satisfied {
			for _, l := range consider {
				res = append(res, l)
				s.setTouchMark(l)
			}
		}
	}
	for _, l := range res {
		s.clearTouchMark(l)
	}
	s.assertTouchMarksClear()
	return res
}

func (s *Solver) setTouchMark(l Lit) {
	if !s.touchMarks[l] {
		s.touchMarks[l] = true
		s.touchMarksSet++
	}
}

func (s *Solver) clearTouchMark(l Lit) {
	if s.touchMarks[l] {
		s.touchMarks[l] = false
		s.touchMarksSet--
	}
}

func (s *Solver) touchMarked(l Lit) bool {
	return s.touchMarks[l]
}

func (s *Solver) assertTouchMarksClear() {
	if s.touchMarksSet != 0 {
		panic("touch marks leaked")
	}
}

// sortedLiterals returns the active variables as positive literals, sorted
// by decreasing number of clause occurrences.
func (s *Solver) sortedLiterals() []Lit {
	counts := make([]int, s.nbVars)
	for _, c := range s.wl.clauses {
		if c.Garbage() {
			continue
		}
		for i := 0; i < c.Len(); i++ {
			counts[c.Get(i).Var()]++
		}
	}
	vars := make([]Var, 0, s.nbVars)
	for v := 0; v < s.nbVars; v++ {
		if s.active(Var(v)) {
			vars = append(vars, Var(v))
		}
	}
	sort.SliceStable(vars, func(i, j int) bool { return counts[vars[i]] > counts[vars[j]] })
	res := make([]Lit, len(vars))
	for i, v := range vars {
		res[i] = v.Lit()
	}
	return res
}
