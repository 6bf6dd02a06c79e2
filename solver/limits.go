package solver

import "time"

// ema is an exponential moving average of learned clause glue values.
type ema struct {
	value float64
	alpha float64
}

func (e *ema) update(x float64) {
	e.value += e.alpha * (x - e.value)
}

// searchLimits gathers the conflict counts at which the next periodic
// actions fire, plus the hard budgets of the current Solve call.
type searchLimits struct {
	conflicts int64 // Hard conflict budget; negative means unlimited.
	decisions int64 // Hard decision budget; negative means unlimited.
	deadline  time.Time

	restart   int64
	rephase   int64
	reduce    int64
	probe     int64
	subsume   int64
	elim      int64
	compact   int64
	condition int64
	stabilize int64
}

// increments tracks how much each periodic interval grows every time the
// corresponding action fires. They persist across Solve calls.
type increments struct {
	initialized bool
	stabilize   int64
}

// initSearchLimits arms the limits for one Solve call. Hard budgets are
// reset from the options on every call. The inprocessing schedules are
// armed once and then kept across calls, so that incremental solving does
// not restart every schedule from scratch. The restart, rephase and mode
// switching schedules start over on every call, and a resumed search
// always begins in focused mode.
func (s *Solver) initSearchLimits() {
	opts := &s.Options
	confl := s.Stats.NbConflicts
	if opts.ConflictLimit >= 0 {
		s.lim.conflicts = confl + opts.ConflictLimit
	} else {
		s.lim.conflicts = -1
	}
	if opts.DecisionLimit >= 0 {
		s.lim.decisions = s.Stats.NbDecisions + opts.DecisionLimit
	} else {
		s.lim.decisions = -1
	}
	s.lim.deadline = time.Time{}

	if !s.incLimits.initialized {
		s.incLimits.initialized = true
		s.lim.reduce = confl + opts.ReduceInterval
		s.lim.probe = confl + opts.ProbeInterval
		s.lim.subsume = confl + opts.SubsumeInterval
		s.lim.elim = confl + opts.ElimInterval
		s.lim.condition = confl + opts.ConditionInterval
		s.fastGlue = ema{alpha: 3e-2}
		s.slowGlue = ema{alpha: 1e-5}
		s.savedFast = ema{alpha: 3e-2}
		s.savedSlow = ema{alpha: 1e-5}
	}

	if s.stable {
		s.stable = false
		s.fastGlue, s.savedFast = s.savedFast, s.fastGlue
		s.slowGlue, s.savedSlow = s.savedSlow, s.slowGlue
	}
	s.incLimits.stabilize = opts.StabilizeInterval
	s.lim.stabilize = confl + opts.StabilizeInterval
	s.lim.restart = confl + opts.RestartInterval
	s.lim.rephase = confl + opts.RephaseInterval
	s.lim.compact = confl + opts.CompactInterval
	s.reluctant.enable(opts.Reluctant, opts.ReluctantMax)
}

func (s *Solver) updateGlue(lbd int) {
	s.fastGlue.update(float64(lbd))
	s.slowGlue.update(float64(lbd))
}

// searchLimitsHit is true when the current Solve call exhausted one of its
// hard budgets or was terminated from outside.
func (s *Solver) searchLimitsHit() bool {
	if s.terminated.Load() {
		return true
	}
	if s.lim.conflicts >= 0 && s.Stats.NbConflicts >= s.lim.conflicts {
		return true
	}
	if s.lim.decisions >= 0 && s.Stats.NbDecisions >= s.lim.decisions {
		return true
	}
	if !s.lim.deadline.IsZero() && time.Now().After(s.lim.deadline) {
		return true
	}
	return false
}

/* Mode switching */

// stabilizing is true when it is time to toggle between the focused and
// stable search modes.
func (s *Solver) stabilizing() bool {
	return s.Options.Stabilize && s.Stats.NbConflicts >= s.lim.stabilize
}

// stabilize toggles the mode. Each mode keeps its own pair of glue
// averages, swapped on every toggle, and its stint doubles each time.
func (s *Solver) stabilize() {
	s.stable = !s.stable
	s.fastGlue, s.savedFast = s.savedFast, s.fastGlue
	s.slowGlue, s.savedSlow = s.savedSlow, s.slowGlue
	s.incLimits.stabilize *= 2
	s.lim.stabilize = s.Stats.NbConflicts + s.incLimits.stabilize
	if s.stable {
		s.lim.restart = s.Stats.NbConflicts + s.reluctant.next()
	} else {
		s.lim.restart = s.Stats.NbConflicts + s.focusedRestartInc()
	}
	s.backtrack(0)
	s.report("stabilize", map[string]interface{}{"stable": s.stable, "conflicts": s.Stats.NbConflicts})
}

/* Restarts */

// restarting decides whether to restart now. In focused mode restarts are
// frequent and glue-driven; in stable mode they follow reluctant doubling.
func (s *Solver) restarting() bool {
	if s.level() == 0 || s.Stats.NbConflicts < s.lim.restart {
		return false
	}
	if s.stable {
		return true
	}
	return s.fastGlue.value > 1.25*s.slowGlue.value
}

func (s *Solver) restart() {
	s.Stats.NbRestarts++
	s.backtrack(0)
	if s.stable {
		s.lim.restart = s.Stats.NbConflicts + s.reluctant.next()
	} else {
		s.lim.restart = s.Stats.NbConflicts + s.focusedRestartInc()
	}
}

// focusedRestartInc is the conflict interval until the next focused-mode
// restart, following the Luby sequence scaled by the base interval.
func (s *Solver) focusedRestartInc() int64 {
	return s.Options.RestartInterval * int64(luby(int(s.Stats.NbRestarts%1024)+1))
}

/* Periodic inprocessing predicates */

func (s *Solver) reducing() bool {
	return len(s.wl.learned) > s.wl.nbMax && s.Stats.NbConflicts >= s.lim.reduce
}

func (s *Solver) probing() bool {
	return s.Options.Probe && s.Stats.NbConflicts >= s.lim.probe
}

func (s *Solver) subsuming() bool {
	return s.Options.Subsume && s.Stats.NbConflicts >= s.lim.subsume
}

func (s *Solver) eliminating() bool {
	return s.Options.Elim && s.Stats.NbConflicts >= s.lim.elim
}

func (s *Solver) compacting() bool {
	return s.Stats.NbConflicts >= s.lim.compact
}

func (s *Solver) conditioning() bool {
	return s.Options.Condition && s.Stats.NbConflicts >= s.lim.condition
}
