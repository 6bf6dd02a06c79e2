package solver

// probe performs one round of failed literal probing: each active unassigned
// variable is assumed in its saved phase; if propagation conflicts, the
// negation is a root-level fact.
func (s *Solver) probe() {
	s.backtrack(0)
	if s.propagate() != nil {
		s.conflict = nil
		s.setUnsat()
		return
	}
	found := 0
	for v := 0; v < s.nbVars && !s.unsat; v++ {
		vr := Var(v)
		if s.vals[vr.Lit()] != 0 || !s.active(vr) {
			continue
		}
		lit := vr.SignedLit(!s.polarity[vr])
		s.assumeDecision(lit)
		if s.propagate() != nil {
			s.conflict = nil
			s.backtrack(0)
			found++
			s.learnUnit(lit.Negation())
			if s.unsat {
				break
			}
			if s.propagate() != nil {
				s.conflict = nil
				s.setUnsat()
				break
			}
		} else {
			s.backtrack(0)
		}
	}
	s.Stats.NbProbed += found
	s.probes++
	s.lim.probe = s.Stats.NbConflicts + s.Options.ProbeInterval*(s.probes+1)
	s.report("probe", map[string]interface{}{"failed": found, "fixed": len(s.trail)})
}
