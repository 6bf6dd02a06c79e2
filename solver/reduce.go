package solver

import "sort"

// reduceLearned deletes about half of the learned clauses, keeping the ones
// most likely to be useful again: low LBD, high activity, or currently
// acting as a reason.
func (s *Solver) reduceLearned() {
	learned := s.wl.learned
	sort.Slice(learned, func(i, j int) bool {
		if learned[i].lbd() != learned[j].lbd() {
			return learned[i].lbd() > learned[j].lbd()
		}
		return learned[i].activity < learned[j].activity
	})
	target := len(learned) / 2
	deleted := 0
	for _, c := range learned {
		if deleted >= target {
			break
		}
		if c.isLocked() || c.Len() == 2 || c.lbd() <= 2 {
			continue
		}
		c.markGarbage()
		deleted++
	}
	s.collectGarbage()
	s.Stats.NbDeleted += deleted
	s.wl.nbMax += incrNbMaxClauses
	s.idxReduce++
	s.lim.reduce = s.Stats.NbConflicts + s.Options.ReduceInterval*s.idxReduce
	s.report("reduce", map[string]interface{}{"deleted": deleted, "learned": len(s.wl.learned)})
}
