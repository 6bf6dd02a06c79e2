package solver

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// A Batch is one step of a preprocessing schedule: the literals to assume
// together, and the antecedent literals a derived clause should preferably
// be built from.
type Batch struct {
	Assume []Lit
	Prefer []Lit
}

// A Schedule is a fixed list of assumption batches driving the scheduled
// preprocessing variant.
type Schedule []Batch

// LoadSchedule parses a schedule from r. Batches are pairs of lines of
// whitespace-separated DIMACS literals: first the assumptions, then the
// preferred antecedents. Blank lines and lines starting with '#' are
// skipped.
func LoadSchedule(r io.Reader) (Schedule, error) {
	var (
		sched       Schedule
		pending     []Lit
		havePending bool
	)
	scanner := bufio.NewScanner(r)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		var lits []Lit
		for _, field := range strings.Fields(line) {
			val, err := strconv.Atoi(field)
			if err != nil {
				return nil, errors.Wrapf(err, "invalid literal %q at line %d", field, lineno)
			}
			if val == 0 {
				return nil, errors.Errorf("null literal at line %d", lineno)
			}
			lits = append(lits, IntToLit(val))
		}
		if !havePending {
			pending = lits
			havePending = true
		} else {
			sched = append(sched, Batch{Assume: pending, Prefer: lits})
			pending = nil
			havePending = false
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "could not read schedule")
	}
	if havePending {
		return nil, errors.New("schedule ends with an unpaired assumption line")
	}
	return sched, nil
}

// MaxVar returns the largest variable index mentioned by the schedule,
// 0-based, or -1 for an empty schedule.
func (sched Schedule) MaxVar() int {
	max := -1
	for _, b := range sched {
		for _, group := range [][]Lit{b.Assume, b.Prefer} {
			for _, l := range group {
				if v := int(l.Var()); v > max {
					max = v
				}
			}
		}
	}
	return max
}

// GlobalPreprocessSchedule runs the scheduled preprocessing variant: each
// batch's assumptions are assumed together and a single derivation is
// attempted on the combined assignment, steering the antecedent choice
// towards the batch's preferred literals. An empty schedule is a no-op.
// Returns Unsat when a batch refuted the formula, Indet otherwise.
func (s *Solver) GlobalPreprocessSchedule(sched Schedule) Status {
	s.armGlobalBudget()
	defer s.disarmGlobalBudget()
	for _, batch := range sched {
		if s.globalBudgetExceeded() {
			break
		}
		s.backtrack(0)
		tryLearn := true
		for _, ass := range batch.Assume {
			if int(ass.Var()) >= s.nbVars {
				s.report("schedule literal out of range", map[string]interface{}{"lit": ass.Int()})
				tryLearn = false
				break
			}
			if s.vflags[ass.Var()] == Fixed || s.vals[ass] != 0 {
				continue
			}
			s.assumeDecision(ass)
			if s.propagate() != nil {
				if !s.resolveConflicts() {
					return Unsat
				}
				tryLearn = false
				break
			}
		}
		if tryLearn && s.level() > 0 {
			prefer := batch.Prefer
			if prefer == nil {
				prefer = []Lit{}
			}
			s.leastConditionalPart(prefer)
		}
		s.backtrack(0)
		if !s.resolveConflicts() {
			return Unsat
		}
	}
	s.backtrack(0)
	if s.unsat {
		return Unsat
	}
	return Indet
}

// condition is the in-search counterpart of the global pass: a short,
// bounded round probing only the most active variables, so it can be
// interleaved with CDCL without stalling it.
func (s *Solver) condition() {
	s.backtrack(0)
	s.initRand()
	const maxProbes = 8
	type scored struct {
		v Var
		a float64
	}
	var top []scored
	for v := 0; v < s.nbVars; v++ {
		vr := Var(v)
		if s.vals[vr.Lit()] != 0 || !s.active(vr) {
			continue
		}
		top = append(top, scored{vr, s.activity[v]})
	}
	for i := 0; i < len(top) && i < maxProbes; i++ {
		best := i
		for j := i + 1; j < len(top); j++ {
			if top[j].a > top[best].a {
				best = j
			}
		}
		top[i], top[best] = top[best], top[i]
		probe := top[i].v.SignedLit(!s.polarity[top[i].v])
		s.backtrack(0)
		if s.vals[probe] != 0 || s.vflags[probe.Var()] == Fixed {
			continue
		}
		s.assumeDecision(probe)
		if s.propagate() != nil {
			if !s.resolveConflicts() {
				return
			}
			continue
		}
		s.leastConditionalPart(nil)
		s.backtrack(0)
		if s.unsat {
			return
		}
	}
	s.backtrack(0)
	s.conds++
	s.lim.condition = s.Stats.NbConflicts + s.Options.ConditionInterval*(s.conds+1)
	s.report("condition", map[string]interface{}{"blocked": s.Stats.NbBlocked})
}
