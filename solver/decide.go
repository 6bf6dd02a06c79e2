package solver

// decide picks the unassigned active variable with the highest activity and
// assumes it with its saved phase. It is only called when the assignment is
// not yet total.
func (s *Solver) decide() {
	v := Var(-1)
	for !s.varQueue.empty() {
		cand := Var(s.varQueue.removeMin())
		if s.vals[cand.Lit()] == 0 && s.active(cand) {
			v = cand
			break
		}
	}
	if v < 0 {
		return
	}
	s.Stats.NbDecisions++
	s.assumeDecision(v.SignedLit(!s.polarity[v]))
}

// rephasing is true when enough conflicts happened since the last phase
// reset.
func (s *Solver) rephasing() bool {
	return s.Stats.NbConflicts >= s.lim.rephase
}

// rephase resets all saved phases, cycling through inverted, all-false and
// random phases.
func (s *Solver) rephase() {
	s.rephased++
	switch s.rephased % 3 {
	case 1:
		for v := range s.polarity {
			s.polarity[v] = !s.polarity[v]
		}
	case 2:
		for v := range s.polarity {
			s.polarity[v] = false
		}
	default:
		s.initRand()
		for v := range s.polarity {
			s.polarity[v] = s.rng.Intn(2) == 0
		}
	}
	s.lim.rephase = s.Stats.NbConflicts + s.Options.RephaseInterval*int64(s.rephased+1)
	s.report("rephase", map[string]interface{}{"mode": s.rephased % 3, "conflicts": s.Stats.NbConflicts})
}

// luckyPhases tries a handful of trivial assignments (all true, all false,
// saved phases) before real search starts. Returns codeSat on a hit, 0
// otherwise.
func (s *Solver) luckyPhases() int {
	for _, mode := range []int{0, 1, 2} {
		if s.tryPhases(mode) {
			return codeSat
		}
	}
	return 0
}

// tryPhases assigns every free variable according to mode (0: false,
// 1: true, 2: saved phase) and propagates. On conflict the attempt is
// abandoned.
func (s *Solver) tryPhases(mode int) bool {
	s.backtrack(0)
	for v := 0; v < s.nbVars; v++ {
		vr := Var(v)
		if s.vals[vr.Lit()] != 0 || !s.active(vr) {
			continue
		}
		var l Lit
		switch mode {
		case 0:
			l = vr.SignedLit(true)
		case 1:
			l = vr.Lit()
		default:
			l = vr.SignedLit(!s.polarity[vr])
		}
		s.assumeDecision(l)
		if s.propagate() != nil {
			s.conflict = nil
			s.backtrack(0)
			return false
		}
	}
	if !s.satisfied() || !s.checkAssignment() {
		s.backtrack(0)
		return false
	}
	return true
}
