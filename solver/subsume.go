package solver

import "sort"

// occLists maps each literal to the irredundant clauses containing it.
type occLists [][]*Clause

func (s *Solver) buildOccLists() occLists {
	occ := make(occLists, s.nbVars*2)
	for _, c := range s.wl.clauses {
		if c.Garbage() {
			continue
		}
		for i := 0; i < c.Len(); i++ {
			occ[c.Get(i)] = append(occ[c.Get(i)], c)
		}
	}
	return occ
}

// subsume removes irredundant clauses subsumed by shorter ones and
// strengthens clauses by self-subsuming resolution. Runs at the root level.
func (s *Solver) subsume() {
	s.backtrack(0)
	occ := s.buildOccLists()
	marks := make([]bool, s.nbVars*2)
	clauses := append([]*Clause(nil), s.wl.clauses...)
	sort.Slice(clauses, func(i, j int) bool { return clauses[i].Len() < clauses[j].Len() })
	removed, strengthened := 0, 0
	for _, c := range clauses {
		if c.Garbage() {
			continue
		}
		for i := 0; i < c.Len(); i++ {
			marks[c.Get(i)] = true
		}
		// Scan candidates through c's least occurring literal.
		pivot := c.First()
		for i := 1; i < c.Len(); i++ {
			if len(occ[c.Get(i)]) < len(occ[pivot]) {
				pivot = c.Get(i)
			}
		}
		if len(occ[pivot]) <= s.Options.ElimOccLimit {
			for _, d := range occ[pivot] {
				if d == c || d.Garbage() || d.Len() < c.Len() {
					continue
				}
				covered, negHits := 0, 0
				negated := Lit(-1)
				for k := 0; k < d.Len(); k++ {
					l := d.Get(k)
					if marks[l] {
						covered++
					} else if marks[l.Negation()] {
						negHits++
						negated = l
					}
				}
				if covered == c.Len() {
					d.markGarbage()
					removed++
				} else if covered == c.Len()-1 && negHits == 1 {
					// Self-subsuming resolution: resolving c and d on the
					// negated literal yields d without it.
					s.strengthen(d, negated, occ)
					strengthened++
				}
			}
		}
		for i := 0; i < c.Len(); i++ {
			marks[c.Get(i)] = false
		}
	}
	s.collectGarbage()
	s.Stats.NbSubsumed += removed
	s.Stats.NbStrengthened += strengthened
	s.subsumes++
	s.lim.subsume = s.Stats.NbConflicts + s.Options.SubsumeInterval*(s.subsumes+1)
	s.report("subsume", map[string]interface{}{"removed": removed, "strengthened": strengthened})
	if s.propagate() != nil {
		s.conflict = nil
		s.setUnsat()
	}
}

// strengthen removes lit from d, rewatching or turning it into a unit as
// needed.
func (s *Solver) strengthen(d *Clause, lit Lit, occ occLists) {
	s.unwatchClause(d)
	for k := 0; k < d.Len(); k++ {
		if d.Get(k) == lit {
			d.Set(k, d.Get(d.Len()-1))
			d.Shrink(d.Len() - 1)
			break
		}
	}
	ws := occ[lit]
	for i, o := range ws {
		if o == d {
			last := len(ws) - 1
			ws[i] = ws[last]
			occ[lit] = ws[:last]
			break
		}
	}
	if d.Len() == 1 {
		d.markGarbage()
		s.learnUnit(d.First())
		return
	}
	s.watchClause(d)
}
