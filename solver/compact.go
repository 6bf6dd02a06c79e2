package solver

// compact reclaims memory: garbage clauses are collected and oversized
// watch lists are reallocated to their live size. The assignment itself is
// untouched.
func (s *Solver) compact() {
	s.collectGarbage()
	for lit := range s.wl.wlist {
		if ws := s.wl.wlist[lit]; cap(ws) > 4*len(ws) && cap(ws) > 8 {
			s.wl.wlist[lit] = append(make([]*Clause, 0, len(ws)), ws...)
		}
		if ws := s.wl.wlistBin[lit]; cap(ws) > 4*len(ws) && cap(ws) > 8 {
			s.wl.wlistBin[lit] = append(make([]watcher, 0, len(ws)), ws...)
		}
	}
	s.lim.compact = s.Stats.NbConflicts + s.Options.CompactInterval
	s.report("compact", map[string]interface{}{"clauses": len(s.wl.clauses), "learned": len(s.wl.learned)})
}
