package solver

// localSearch runs the configured number of random walk rounds over the
// irredundant clauses, starting from the saved phases. On success the
// problem is satisfied outright; otherwise the improved phases guide the
// upcoming CDCL search.
func (s *Solver) localSearch() int {
	s.backtrack(0)
	s.initRand()
	for round := 0; round < s.Options.LocalSearchRounds; round++ {
		if s.walkRound(s.Options.WalkMinEff) {
			if s.tryPhases(2) {
				return codeSat
			}
		}
		if s.terminated.Load() {
			return codeIndet
		}
	}
	return 0
}

// walkRound flips variables until all clauses are satisfied or the effort
// budget runs out. Returns true when a satisfying phase vector was found.
// Root-level facts are never flipped.
func (s *Solver) walkRound(maxFlips int64) bool {
	asg := make([]bool, s.nbVars)
	for v := 0; v < s.nbVars; v++ {
		if s.vals[Var(v).Lit()] != 0 {
			asg[v] = s.vals[Var(v).Lit()] > 0
		} else {
			asg[v] = s.polarity[v]
		}
	}
	satLit := func(l Lit) bool { return asg[l.Var()] == l.IsPositive() }
	for flips := int64(0); flips < maxFlips; flips++ {
		var unsat []*Clause
		for _, c := range s.wl.clauses {
			if c.Garbage() {
				continue
			}
			ok := false
			for i := 0; i < c.Len(); i++ {
				if satLit(c.Get(i)) {
					ok = true
					break
				}
			}
			if !ok {
				unsat = append(unsat, c)
			}
		}
		if len(unsat) == 0 {
			for v := 0; v < s.nbVars; v++ {
				if s.vals[Var(v).Lit()] == 0 {
					s.polarity[v] = asg[v]
				}
			}
			return true
		}
		c := unsat[s.rng.Intn(len(unsat))]
		var flippable []Var
		for i := 0; i < c.Len(); i++ {
			v := c.Get(i).Var()
			if s.vals[v.Lit()] == 0 && s.active(v) {
				flippable = append(flippable, v)
			}
		}
		if len(flippable) == 0 {
			return false // Clause falsified by root facts; let CDCL handle it
		}
		v := flippable[s.rng.Intn(len(flippable))]
		asg[v] = !asg[v]
	}
	// Keep the last phases anyway, they satisfy at least as much as before.
	for v := 0; v < s.nbVars; v++ {
		if s.vals[Var(v).Lit()] == 0 {
			s.polarity[v] = asg[v]
		}
	}
	return false
}
