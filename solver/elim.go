package solver

// A witnessEntry remembers the clauses removed when a variable was
// eliminated, so models can be extended back over it.
type witnessEntry struct {
	lit     Lit
	clauses [][]Lit
}

// elim performs bounded variable elimination at the root level. A variable
// is eliminated when resolving all its positive occurrences against all its
// negative ones does not grow the formula.
func (s *Solver) elim() {
	s.backtrack(0)
	occ := s.buildOccLists()
	// The growth bound doubles on every round, up to its cap.
	bound := s.Options.ElimBoundMin << uint(s.elims)
	if bound > s.Options.ElimBoundMax || bound <= 0 {
		bound = s.Options.ElimBoundMax
	}
	eliminated := 0
	for v := 0; v < s.nbVars && !s.unsat; v++ {
		vr := Var(v)
		if s.vals[vr.Lit()] != 0 || !s.active(vr) {
			continue
		}
		if s.tryEliminate(vr, occ, bound) {
			eliminated++
		}
	}
	s.collectGarbage()
	if eliminated > 0 {
		s.rebuildOrderHeap()
	}
	s.Stats.NbEliminated += eliminated
	s.elims++
	s.lim.elim = s.Stats.NbConflicts + s.Options.ElimInterval*(s.elims+1)
	s.report("elim", map[string]interface{}{"eliminated": eliminated, "total": s.numEliminated})
	if !s.unsat && s.propagate() != nil {
		s.conflict = nil
		s.setUnsat()
	}
}

func (s *Solver) tryEliminate(v Var, occ occLists, bound int) bool {
	pos := liveOcc(occ[v.Lit()])
	neg := liveOcc(occ[v.Lit().Negation()])
	if len(pos)+len(neg) > bound ||
		len(pos) > s.Options.ElimOccLimit || len(neg) > s.Options.ElimOccLimit {
		return false
	}
	var resolvents [][]Lit
	for _, cp := range pos {
		for _, cn := range neg {
			res, tautology := resolve(cp, cn, v)
			if tautology {
				continue
			}
			resolvents = append(resolvents, res)
			if len(resolvents) > len(pos)+len(neg) {
				return false
			}
		}
	}
	// Eliminate: record the positive side for model extension, drop both
	// sides, add the resolvents.
	w := witnessEntry{lit: v.Lit()}
	for _, c := range pos {
		saved := make([]Lit, c.Len())
		for i := 0; i < c.Len(); i++ {
			saved[i] = c.Get(i)
		}
		w.clauses = append(w.clauses, saved)
		c.markGarbage()
	}
	for _, c := range neg {
		c.markGarbage()
	}
	for _, c := range s.wl.learned {
		if !c.Garbage() && containsVar(c, v) {
			c.markGarbage()
		}
	}
	s.witness = append(s.witness, w)
	s.vflags[v] = Eliminated
	s.numEliminated++
	for _, res := range resolvents {
		switch len(res) {
		case 0:
			s.setUnsat()
			return true
		case 1:
			s.learnUnit(res[0])
			if s.unsat {
				return true
			}
		default:
			c := NewClause(res)
			s.appendClause(c)
			for _, l := range res {
				occ[l] = append(occ[l], c)
			}
		}
	}
	return true
}

func liveOcc(clauses []*Clause) []*Clause {
	res := make([]*Clause, 0, len(clauses))
	for _, c := range clauses {
		if !c.Garbage() {
			res = append(res, c)
		}
	}
	return res
}

func containsVar(c *Clause, v Var) bool {
	for i := 0; i < c.Len(); i++ {
		if c.Get(i).Var() == v {
			return true
		}
	}
	return false
}

// resolve returns the resolvent of cp (containing v) and cn (containing ¬v)
// on v, and whether it is a tautology.
func resolve(cp, cn *Clause, v Var) ([]Lit, bool) {
	seen := make(map[Lit]struct{}, cp.Len()+cn.Len())
	res := make([]Lit, 0, cp.Len()+cn.Len()-2)
	for _, c := range []*Clause{cp, cn} {
		for i := 0; i < c.Len(); i++ {
			l := c.Get(i)
			if l.Var() == v {
				continue
			}
			if _, ok := seen[l.Negation()]; ok {
				return nil, true
			}
			if _, ok := seen[l]; ok {
				continue
			}
			seen[l] = struct{}{}
			res = append(res, l)
		}
	}
	return res, false
}

// extendModel walks the witness stack backwards, choosing a value for each
// eliminated variable that satisfies all the clauses its elimination
// removed.
func (s *Solver) extendModel() {
	for i := len(s.witness) - 1; i >= 0; i-- {
		w := s.witness[i]
		needed := false
		for _, cl := range w.clauses {
			satisfied := false
			for _, l := range cl {
				if l == w.lit {
					continue
				}
				if val := s.model[l.Var()]; (val > 0) == l.IsPositive() && val != 0 {
					satisfied = true
					break
				}
			}
			if !satisfied {
				needed = true
				break
			}
		}
		if needed == w.lit.IsPositive() {
			s.model[w.lit.Var()] = 1
		} else {
			s.model[w.lit.Var()] = -1
		}
	}
}
