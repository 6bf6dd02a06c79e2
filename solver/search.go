package solver

import "time"

// Solve solves the problem associated with the solver and returns the
// appropriate status: Sat, Unsat or Indet (the latter only when a limit or
// an external termination cut the search short).
func (s *Solver) Solve() Status {
	start := time.Now()
	s.initRand()
	s.terminated.Store(false)
	res := s.alreadySolved()
	if res == 0 {
		res = s.restoreClauses()
	}
	s.initSearchLimits()
	if res == 0 && s.Options.PreprocessRounds > 0 {
		res = s.preprocess()
	}
	if res == 0 && s.Options.GlobalPreprocess {
		if len(s.Schedule) > 0 {
			s.GlobalPreprocessSchedule(s.Schedule)
		} else {
			s.GlobalPreprocess()
		}
		s.backtrack(0)
		if s.unsat {
			res = codeUnsat
		}
	}
	if res == 0 && s.Options.LocalSearchRounds > 0 {
		res = s.localSearch()
	}
	if res == 0 {
		res = s.luckyPhases()
	}
	if res == 0 {
		res = s.cdclLoop()
	}
	s.status = statusFromCode(res)
	if s.status == Sat {
		s.saveModel()
	}
	s.report("done", map[string]interface{}{
		"status":    s.status.String(),
		"conflicts": s.Stats.NbConflicts,
		"decisions": s.Stats.NbDecisions,
		"restarts":  s.Stats.NbRestarts,
		"elapsed":   time.Since(start).String(),
	})
	return s.status
}

// SolveTimeout solves the problem but gives up after the given duration,
// returning Indet in that case.
func (s *Solver) SolveTimeout(timeout time.Duration) Status {
	timer := time.AfterFunc(timeout, s.Terminate)
	defer timer.Stop()
	return s.Solve()
}

// alreadySolved deals with the cases a previous call or the input problem
// already settled: a known unsat formula, or a formula whose root
// propagation assigns everything.
func (s *Solver) alreadySolved() int {
	if s.unsat {
		return codeUnsat
	}
	s.backtrack(0)
	if s.propagate() != nil {
		s.conflict = nil
		s.setUnsat()
		return codeUnsat
	}
	if s.satisfied() {
		return codeSat
	}
	return 0
}

// restoreClauses reinserts clauses a previous inprocessing run removed and
// that the next call needs again. With the current single-shot elimination
// strategy nothing is ever tainted, so there is nothing to restore.
func (s *Solver) restoreClauses() int {
	return 0
}

// preprocess runs the configured number of full simplification rounds
// before search starts.
func (s *Solver) preprocess() int {
	for round := 0; round < s.Options.PreprocessRounds && !s.unsat; round++ {
		before := s.numAssigned + s.numEliminated
		if s.Options.Probe {
			s.probe()
		}
		if !s.unsat && s.Options.Subsume {
			s.subsume()
		}
		if !s.unsat && s.Options.Elim {
			s.elim()
		}
		s.report("preprocess", map[string]interface{}{"round": round, "fixed": s.numAssigned, "eliminated": s.numEliminated})
		if s.numAssigned+s.numEliminated == before {
			break
		}
	}
	if s.unsat {
		return codeUnsat
	}
	if s.satisfied() {
		return codeSat
	}
	return 0
}

// cdclLoop is the main solving loop: propagate, and on a fixpoint pick the
// highest-priority pending action, from conflict analysis down to a fresh
// decision.
func (s *Solver) cdclLoop() int {
	for {
		if s.propagate() != nil {
			s.handleConflict()
			if s.unsat {
				return codeUnsat
			}
			continue
		}
		switch {
		case s.unsat:
			return codeUnsat
		case s.iterating:
			s.iterate()
		case s.satisfied():
			if s.checkAssignment() {
				return codeSat
			}
			return codeIndet
		case s.searchLimitsHit():
			return codeIndet
		case s.stabilizing():
			s.stabilize()
		case s.restarting():
			s.restart()
		case s.rephasing():
			s.rephase()
		case s.reducing():
			s.reduceLearned()
		case s.probing():
			s.probe()
		case s.subsuming():
			s.subsume()
		case s.eliminating():
			s.elim()
		case s.compacting():
			s.compact()
		case s.conditioning():
			s.condition()
		default:
			s.decide()
		}
		if s.unsat {
			return codeUnsat
		}
	}
}

// checkAssignment vets a total assignment with the external checker, when
// one is plugged in.
func (s *Solver) checkAssignment() bool {
	if s.Checker == nil {
		return true
	}
	model := make([]bool, s.nbVars)
	for v := 0; v < s.nbVars; v++ {
		model[v] = s.vals[Var(v).Lit()] > 0
	}
	if s.Checker.Check(model) {
		return true
	}
	s.report("checker rejected assignment", map[string]interface{}{"trail": len(s.trail)})
	return false
}
