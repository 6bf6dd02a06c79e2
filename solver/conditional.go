package solver

import "sort"

// The conditional derivation splits the current assignment alpha into a
// conditional part alpha_c and an antecedent part alpha_a: a clause is
// "touched" when one of its literals is falsified, and the negations of
// those falsified literals form neg(alpha_c). Touched-but-unsatisfied
// clauses must be repaired, so for every literal of alpha that satisfies
// clauses without sitting in the conditional part, the clause
// neg(alpha_c) ∨ lit is globally blocked and can be learned. Shrinking
// then tries to replace neg(alpha_c) by a small set of antecedent literals
// whose negations propagate all of it.

/* Mark bitsets */

func (s *Solver) setCondMark(l Lit) {
	if !s.condMarks[l] {
		s.condMarks[l] = true
		s.condMarksSet++
	}
}

func (s *Solver) clearCondMark(l Lit) {
	if s.condMarks[l] {
		s.condMarks[l] = false
		s.condMarksSet--
	}
}

func (s *Solver) condMarked(l Lit) bool {
	return s.condMarks[l]
}

func (s *Solver) assertCondMarksClear() {
	if s.condMarksSet != 0 {
		panic("conditional marks leaked")
	}
}

/* Derivation */

// leastConditionalPart derives globally blocked clauses from the current
// assignment. It must be called at a decision level > 0 with propagation at
// a fixpoint and no pending conflict. prefer is the preferred antecedent
// list of a schedule batch, nil outside scheduled runs. Returns true when
// at least one clause was submitted (trivial ones may still be dropped).
func (s *Solver) leastConditionalPart(prefer []Lit) bool {
	s.Stats.NbDerivations++

	var negAlphaC []Lit
	touched := make(map[Lit]int)

	// Redundant clauses are only scanned when their derivations end up in
	// an audit stream; they never have to be repaired for correctness.
	dbs := [][]*Clause{s.wl.clauses}
	if s.rec != nil {
		dbs = append(dbs, s.wl.learned)
	}
	for _, db := range dbs {
		for _, c := range db {
			if c.Garbage() || s.rootSatisfied(c) {
				continue
			}
			satisfied := false
			var touches []Lit
			for i := 0; i < c.Len(); i++ {
				l := c.Get(i)
				switch {
				case s.vals[l] > 0:
					satisfied = true
					touched[l]++
				case s.vals[l] < 0:
					if s.vflags[l.Var()] == Fixed {
						continue
					}
					if !s.condMarked(l) {
						touches = append(touches, l)
					}
				}
			}
			if !satisfied {
				for _, l := range touches {
					s.setCondMark(l)
				}
				negAlphaC = append(negAlphaC, touches...)
			}
		}
	}

	// The antecedent part: literals that satisfy clauses and are not part
	// of the conditional part. Candidate clauses skip decision literals;
	// those blocked clauses would only reproduce the decision itself.
	keys := make([]Lit, 0, len(touched))
	for l := range touched {
		keys = append(keys, l)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Int() < keys[j].Int() })

	var alphaA []Lit
	var candidates [][]Lit
	for _, key := range keys {
		if s.condMarked(key) {
			continue
		}
		if !s.isDecision(key.Var()) {
			cand := make([]Lit, 0, len(negAlphaC)+1)
			cand = append(cand, negAlphaC...)
			cand = append(cand, key)
			candidates = append(candidates, cand)
		}
		alphaA = append(alphaA, key)
	}
	for _, l := range negAlphaC {
		s.clearCondMark(l)
	}
	s.assertCondMarksClear()

	s.orderAntecedents(alphaA)

	var useful []Lit
	residual := append([]Lit(nil), negAlphaC...)
	switch {
	case s.Options.GlobalGreedy && prefer != nil:
		useful, residual = s.scheduledCover(prefer, alphaA, negAlphaC)
		if s.unsat {
			return false
		}
	case s.Options.GlobalGreedy:
		var ok bool
		useful, residual, ok = s.greedyCover(alphaA, negAlphaC)
		if !ok {
			return false
		}
	case s.Options.GlobalBCPShrink:
		useful, residual = s.bcpShrink(alphaA, residual)
	default:
		var ok bool
		useful, residual, ok = s.propagateShrink(alphaA, residual)
		if !ok {
			return false
		}
	}

	added := false
	if len(useful) == 0 || s.Options.GlobalNoShrink {
		max := s.Options.GlobalMaxClauses
		if len(candidates) < max {
			max = len(candidates)
		}
		for i := 0; i < max; i++ {
			if s.globalBudgetExceeded() {
				return false
			}
			added = true
			cand := candidates[i]
			if s.Options.GlobalFilterTrivial && s.clauseTrivial(cand) {
				continue
			}
			if s.unsat {
				return false
			}
			s.addDerived(cand, cand[len(cand)-1], cand, alphaA)
		}
	} else {
		added = true
		clause := make([]Lit, 0, len(residual)+len(useful))
		clause = append(clause, residual...)
		clause = append(clause, useful...)
		if !(s.Options.GlobalFilterTrivial && s.clauseTrivial(clause)) && !s.unsat {
			s.addDerived(clause, useful[len(useful)-1], clause, alphaA)
		}
	}
	return added
}

// rootSatisfied is true when c contains a literal fixed to true at the root
// level. Such clauses can never be touched again.
func (s *Solver) rootSatisfied(c *Clause) bool {
	for i := 0; i < c.Len(); i++ {
		l := c.Get(i)
		if s.vals[l] > 0 && s.vflags[l.Var()] == Fixed {
			return true
		}
	}
	return false
}

/* Antecedent orderings */

func (s *Solver) orderAntecedents(alphaA []Lit) {
	switch s.Options.GlobalAntecedents {
	case AntecedentOrderImplication:
		s.impSortAntecedents(alphaA)
	case AntecedentOrderRandom:
		s.initRand()
		s.rng.Shuffle(len(alphaA), func(i, j int) {
			alphaA[i], alphaA[j] = alphaA[j], alphaA[i]
		})
	}
}

// impSortAntecedents moves a literal before another whenever assuming the
// first propagates the second. An approximate topological sort by pairwise
// swaps.
func (s *Solver) impSortAntecedents(alphaA []Lit) {
	for i := 0; i < len(alphaA); i++ {
		for j := i + 1; j < len(alphaA); j++ {
			if s.implies(alphaA[j], alphaA[i]) {
				alphaA[i], alphaA[j] = alphaA[j], alphaA[i]
			}
		}
	}
	s.backtrack(0)
}

// implies reports whether assuming a at the root propagates b.
func (s *Solver) implies(a, b Lit) bool {
	s.backtrack(0)
	if s.vals[a] != 0 {
		return false
	}
	s.assumeDecision(a)
	if s.propagate() != nil {
		s.conflict = nil
		s.backtrack(0)
		return false
	}
	return s.val(b) > 0
}

/* Shrink strategies */

// propagateShrink assumes the negation of each antecedent literal in turn
// and removes from the residual conditional part everything the assumption
// propagates. Antecedents that removed at least one literal are kept.
// ok is false when a conflict cascade cut the derivation short.
func (s *Solver) propagateShrink(alphaA, residual []Lit) (useful, rem []Lit, ok bool) {
	rem = residual
	for _, a := range alphaA {
		if s.vflags[a.Var()] == Fixed {
			continue
		}
		s.backtrack(0)
		if s.vals[a.Negation()] != 0 {
			continue
		}
		s.assumeDecision(a.Negation())
		if s.propagate() != nil {
			s.handleConflict()
			if s.unsat {
				return nil, nil, false
			}
			if s.propagate() != nil {
				s.handleConflict()
				return nil, nil, false
			}
			continue
		}
		keep := false
		j := 0
		for _, c := range rem {
			if s.val(c) < 0 {
				keep = true
			} else {
				rem[j] = c
				j++
			}
		}
		rem = rem[:j]
		if keep {
			useful = append(useful, a)
		}
	}
	s.backtrack(0)
	return useful, rem, true
}

// bcpShrink is the cheap variant: only binary clauses are considered, so no
// propagation or backtracking is needed. An antecedent a removes a residual
// literal c when the binary clause a ∨ ¬c exists.
func (s *Solver) bcpShrink(alphaA, residual []Lit) (useful, rem []Lit) {
	rem = residual
	for _, a := range alphaA {
		if s.vflags[a.Var()] == Fixed {
			continue
		}
		keep := false
		for _, w := range s.wl.wlistBin[a.Negation()] {
			if w.clause.Garbage() {
				continue
			}
			for j, c := range rem {
				if w.other == c.Negation() {
					rem = append(rem[:j], rem[j+1:]...)
					keep = true
					break
				}
			}
		}
		if keep {
			useful = append(useful, a)
		}
	}
	return useful, rem
}

// greedyCover propagates the negation of every antecedent separately,
// records which residual literals each one reaches, and then picks a small
// covering subset greedily.
func (s *Solver) greedyCover(alphaA, negAlphaC []Lit) (useful, residual []Lit, ok bool) {
	var subsets [][]Lit
	var kept []Lit
	for _, a := range alphaA {
		if s.vflags[a.Var()] == Fixed {
			continue
		}
		s.backtrack(0)
		if s.vals[a.Negation()] != 0 {
			continue
		}
		s.assumeDecision(a.Negation())
		if s.propagate() != nil {
			s.handleConflict()
			if s.unsat {
				return nil, nil, false
			}
			if s.propagate() != nil {
				s.handleConflict()
				return nil, nil, false
			}
			continue
		}
		var propagated []Lit
		for _, c := range negAlphaC {
			if s.val(c) < 0 {
				propagated = append(propagated, c)
			}
		}
		if len(propagated) > 0 {
			kept = append(kept, a)
			subsets = append(subsets, propagated)
		}
	}
	s.backtrack(0)
	chosen, uncovered := greedySetCover(subsets, negAlphaC)
	for _, idx := range chosen {
		useful = append(useful, kept[idx])
	}
	return useful, uncovered, true
}

// scheduledCover follows a schedule batch: the preferred antecedents are
// assumed negated cumulatively and must between them propagate the whole
// conditional part. On a conflict, or when coverage is incomplete, it
// reports no useful antecedents so the caller falls back to the raw
// candidates.
func (s *Solver) scheduledCover(prefer, alphaA, negAlphaC []Lit) (useful, residual []Lit) {
	s.backtrack(0)
	for _, learn := range prefer {
		if containsLit(alphaA, learn) {
			useful = append(useful, learn)
		}
		if s.vflags[learn.Var()] == Fixed {
			continue
		}
		if s.vals[learn.Negation()] > 0 {
			continue
		}
		s.assumeDecision(learn.Negation())
		if s.propagate() != nil {
			for !s.unsat && s.propagate() != nil {
				s.handleConflict()
			}
			s.backtrack(0)
			return nil, nil
		}
	}
	covered := 0
	for _, c := range negAlphaC {
		if s.val(c) < 0 {
			covered++
		}
	}
	s.backtrack(0)
	if covered != len(negAlphaC) {
		s.report("scheduled cover incomplete", map[string]interface{}{"covered": covered, "conditional": len(negAlphaC)})
		return nil, nil
	}
	return useful, nil
}

// greedySetCover picks subsets until the universe is covered or no subset
// adds a new element. It returns the chosen indices and the uncovered rest.
func greedySetCover(subsets [][]Lit, universe []Lit) (chosen []int, uncovered []Lit) {
	covered := make(map[Lit]bool, len(universe))
	for len(covered) < len(universe) {
		best := -1
		bestNew := 0
		for i, sub := range subsets {
			fresh := 0
			for _, l := range sub {
				if !covered[l] {
					fresh++
				}
			}
			if fresh > bestNew {
				bestNew = fresh
				best = i
			}
		}
		if best < 0 {
			break
		}
		chosen = append(chosen, best)
		for _, l := range subsets[best] {
			covered[l] = true
		}
	}
	for _, l := range universe {
		if !covered[l] {
			uncovered = append(uncovered, l)
		}
	}
	return chosen, uncovered
}

func containsLit(lits []Lit, l Lit) bool {
	for _, x := range lits {
		if x == l {
			return true
		}
	}
	return false
}

/* Clause recording and application */

// addDerived applies one derived clause: the literals are ordered by
// descending decision level (levels survive backtracking, which is what
// makes this ordering meaningful here), learned as a redundant blocked
// clause or a root unit, and streamed to the recorder if one is attached.
func (s *Solver) addDerived(lits []Lit, witness Lit, negConditional, antecedents []Lit) {
	s.backtrack(0)
	negCopy := withoutLit(negConditional, witness)
	antCopy := withoutLit(antecedents, witness)

	clause := append([]Lit(nil), lits...)
	sort.SliceStable(clause, func(i, j int) bool {
		return s.levels[clause[i].Var()] > s.levels[clause[j].Var()]
	})

	if s.Options.GlobalLearn {
		s.learnDerived(clause, antCopy)
	}
	if s.rec != nil {
		if err := s.rec.record(witness, negCopy, antCopy); err != nil {
			s.report("record failed", map[string]interface{}{"err": err.Error()})
		}
	}
}

// learnDerived adds the clause to the database, respecting root facts so
// the watch invariants stay intact.
func (s *Solver) learnDerived(clause []Lit, antecedents []Lit) {
	lits := make([]Lit, 0, len(clause))
	for _, l := range clause {
		switch s.vals[l] {
		case 1:
			return // already satisfied at the root
		case 0:
			lits = append(lits, l)
		}
	}
	switch len(lits) {
	case 0:
		s.setUnsat()
	case 1:
		s.learnUnit(lits[0])
		s.Stats.NbBlocked++
	default:
		c := newBlockedClause(lits, antecedents)
		c.setLbd(s.computeLbd(lits))
		s.addLearned(c)
		s.Stats.NbBlocked++
	}
}

func withoutLit(lits []Lit, l Lit) []Lit {
	res := make([]Lit, 0, len(lits))
	for _, x := range lits {
		if x != l {
			res = append(res, x)
		}
	}
	return res
}
