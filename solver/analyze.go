package solver

import "sort"

// learnClause analyzes the current conflict, learns the first-UIP clause,
// backjumps and asserts it. The caller must ensure the conflict happened at
// a decision level > 0.
func (s *Solver) learnClause() {
	confl := s.conflict
	s.conflict = nil
	s.varDecayActivity()
	s.clauseDecayActivity()

	learnt := make([]Lit, 1, 8) // learnt[0] is reserved for the asserting literal.
	pathC := 0
	idx := len(s.trail) - 1
	reason := confl
	var p Lit
	for {
		s.clauseBumpActivity(reason)
		for i := 0; i < reason.Len(); i++ {
			q := reason.Get(i)
			v := q.Var()
			if s.vals[q] >= 0 { // Skip the asserted literal of the reason
				continue
			}
			if s.analyzeSeen[v] || s.levels[v] == 0 {
				continue
			}
			s.analyzeSeen[v] = true
			s.seenToClear = append(s.seenToClear, v)
			s.varBumpActivity(v)
			if int(s.levels[v]) == s.level() {
				pathC++
			} else {
				learnt = append(learnt, q)
			}
		}
		for !s.analyzeSeen[s.trail[idx].Var()] {
			idx--
		}
		p = s.trail[idx]
		idx--
		pathC--
		if pathC == 0 {
			break
		}
		reason = s.reason[p.Var()]
	}
	learnt[0] = p.Negation()
	learnt = learnt[:s.minimizeLearned(learnt)]
	for _, v := range s.seenToClear {
		s.analyzeSeen[v] = false
	}
	s.seenToClear = s.seenToClear[:0]

	if len(learnt) == 1 {
		s.backtrack(0)
		s.learnUnit(learnt[0])
		return
	}
	// Sort by decreasing level so positions 0 and 1 are the right watches.
	sort.Slice(learnt, func(i, j int) bool {
		return s.levels[learnt[i].Var()] > s.levels[learnt[j].Var()]
	})
	btLevel := int(s.levels[learnt[1].Var()])
	lbd := s.computeLbd(learnt)
	s.updateGlue(lbd)
	s.backtrack(btLevel)
	c := NewLearnedClause(learnt)
	c.setLbd(lbd)
	s.addLearned(c)
	s.assign(c.First(), c)
}

// minimizeLearned removes literals whose reason clause is entirely covered
// by the rest of the learned clause. Returns the new length.
func (s *Solver) minimizeLearned(learnt []Lit) int {
	sz := 1
	for i := 1; i < len(learnt); i++ {
		v := learnt[i].Var()
		reason := s.reason[v]
		if reason == nil {
			learnt[sz] = learnt[i]
			sz++
			continue
		}
		for k := 0; k < reason.Len(); k++ {
			lit := reason.Get(k)
			if !s.analyzeSeen[lit.Var()] && s.levels[lit.Var()] > 0 {
				learnt[sz] = learnt[i]
				sz++
				break
			}
		}
	}
	return sz
}

// computeLbd counts the number of distinct decision levels among lits.
func (s *Solver) computeLbd(lits []Lit) int {
	found := make(map[int32]struct{}, len(lits))
	for _, l := range lits {
		found[s.levels[l.Var()]] = struct{}{}
	}
	return len(found)
}

// learnUnit asserts l at the root level. The solver becomes unsat if the
// negation was already a root fact.
func (s *Solver) learnUnit(l Lit) {
	switch s.vals[l] {
	case -1:
		s.setUnsat()
		return
	case 0:
		s.assign(l, nil)
	}
	s.Stats.NbUnitLearned++
	s.iterating = true
	s.lastUnit = l
	if s.OnUnit != nil {
		s.OnUnit(l)
	}
}

// handleConflict counts the conflict and either learns from it or declares
// the formula unsatisfiable when the conflict is at the root level.
func (s *Solver) handleConflict() {
	s.Stats.NbConflicts++
	if s.level() == 0 {
		s.conflict = nil
		s.setUnsat()
		return
	}
	s.learnClause()
}

// iterate reports root-level units learned since the last call and clears
// the flag.
func (s *Solver) iterate() {
	s.iterating = false
	s.report("unit", map[string]interface{}{"lit": s.lastUnit.Int(), "trail": len(s.trail)})
}
