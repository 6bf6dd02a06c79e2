package solver

// propagate performs unit propagation until fixpoint or conflict.
// It returns the conflicting clause, or nil if no conflict arose.
// A conflict found earlier and not yet resolved is returned as is.
func (s *Solver) propagate() *Clause {
	if s.conflict != nil {
		return s.conflict
	}
	for s.qhead < len(s.trail) {
		lit := s.trail[s.qhead]
		s.qhead++
		if confl := s.propagateLit(lit); confl != nil {
			s.conflict = confl
			return confl
		}
	}
	if s.Propagator != nil {
		if confl := s.Propagator.Propagate(s); confl != nil {
			s.conflict = confl
			return confl
		}
		if s.qhead < len(s.trail) { // The external engine assigned literals
			return s.propagate()
		}
	}
	return nil
}

// propagateLit visits all clauses in which lit's negation is watched.
func (s *Solver) propagateLit(lit Lit) *Clause {
	for _, w := range s.wl.wlistBin[lit] {
		if w.clause.Garbage() {
			continue
		}
		switch s.vals[w.other] {
		case 0:
			s.assign(w.other, w.clause)
		case -1:
			return w.clause
		}
	}
	ws := s.wl.wlist[lit]
	j := 0
	for i := 0; i < len(ws); i++ {
		c := ws[i]
		if c.Garbage() {
			continue
		}
		if c.First() == lit.Negation() {
			c.swap(0, 1)
		}
		// c.Second() is now the falsified watch.
		if s.vals[c.First()] == 1 {
			ws[j] = c
			j++
			continue
		}
		moved := false
		for k := 2; k < c.Len(); k++ {
			if s.vals[c.Get(k)] >= 0 {
				c.swap(1, k)
				neg := c.Second().Negation()
				s.wl.wlist[neg] = append(s.wl.wlist[neg], c)
				moved = true
				break
			}
		}
		if moved {
			continue
		}
		ws[j] = c
		j++
		if s.vals[c.First()] == -1 {
			for i++; i < len(ws); i++ {
				ws[j] = ws[i]
				j++
			}
			s.wl.wlist[lit] = ws[:j]
			return c
		}
		s.assign(c.First(), c)
	}
	s.wl.wlist[lit] = ws[:j]
	return nil
}
