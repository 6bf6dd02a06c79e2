package solver

// clauseTrivial reports whether the derived clause is already implied by
// unit propagation: either a literal is a root fact, or assuming all its
// negations conflicts. Clauses over the configured maximum length are also
// deemed trivial. Runs at the root level and restores it before returning;
// units learned from conflicts met along the way are kept.
func (s *Solver) clauseTrivial(c []Lit) bool {
	if len(c) > s.Options.GlobalMaxLen {
		return true
	}
	s.backtrack(0)
	trivial := false
	for _, lit := range c {
		if v := s.val(lit); v > 0 {
			trivial = true
			break
		} else if v < 0 {
			continue
		}
		s.assumeDecision(lit.Negation())
		if s.propagate() != nil {
			s.handleConflict()
			for !s.unsat && s.propagate() != nil {
				s.handleConflict()
			}
			trivial = true
			break
		}
	}
	s.backtrack(0)
	return trivial
}
