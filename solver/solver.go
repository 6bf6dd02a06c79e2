package solver

import (
	"fmt"
	"io"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	initNbMaxClauses = 2000  // Maximum # of learned clauses, at first.
	incrNbMaxClauses = 300   // By how much # of learned clauses is incremented at each reduction.
	clauseDecay      = 0.999 // By how much clause bumping decays over time.
	defaultVarDecay  = 0.8   // On each var decay, how much the varInc should be decayed at startup.
)

// Stats are statistics about the resolution of the problem.
// They are provided for information purpose only.
type Stats struct {
	NbRestarts      int
	NbConflicts     int64
	NbDecisions     int64
	NbUnitLearned   int   // How many unit clauses were learned
	NbBinaryLearned int   // How many binary clauses were learned
	NbLearned       int   // How many clauses were learned
	NbDeleted       int   // How many clauses were deleted
	NbBlocked       int   // How many globally blocked clauses were derived
	NbProbed        int   // How many failed literals were found by probing
	NbSubsumed      int   // How many clauses were removed by subsumption
	NbStrengthened  int   // How many clauses were strengthened
	NbEliminated    int   // How many variables were eliminated
	NbDerivations   int64 // How many conditional derivations were attempted
}

// An ExternalPropagator can deduce further assignments after unit
// propagation reached a fixpoint. It returns a conflicting clause, or nil.
type ExternalPropagator interface {
	Propagate(s *Solver) *Clause
}

// A SolutionChecker vets a total assignment before the solver declares SAT.
type SolutionChecker interface {
	Check(model []bool) bool
}

// A Solver solves a given problem. It is the main data structure.
type Solver struct {
	Options Options            // Configuration. Must not be mutated once Solve was called.
	Verbose bool               // Indicates whether the solver should log information during solving. False by default.
	Logger  logrus.FieldLogger // Where verbose information is sent. Defaults to a discard logger.

	Propagator ExternalPropagator // Optional external propagation engine.
	Checker    SolutionChecker    // Optional external solution checker.
	OnUnit     func(Lit)          // Called whenever a root-level unit is learned, if non-nil.

	Schedule Schedule // Optional assumption schedule for the fixed-schedule preprocessing variant.

	nbVars int
	status Status
	unsat  bool

	vals   []int8    // Current value, indexed by Lit. vals[l] == -vals[l.Negation()].
	levels []int32   // Decision level a var was assigned at. Stale once unassigned.
	reason []*Clause // For each var, the clause that propagated it, or nil.
	vflags []VarStatus
	trail  []Lit // Current assignment stack, in assignment order.
	limits []int // For each open decision level, the trail height when it was opened.
	qhead  int   // Propagation queue head inside trail.

	conflict *Clause // Conflicting clause found by propagate and not analyzed yet.

	numAssigned   int
	numEliminated int

	activity  []float64 // How often each var is involved in conflicts.
	polarity  []bool    // Preferred sign for each var (true = positive).
	varQueue  queue
	varInc    float64
	varDecay  float64
	clauseInc float32

	wl watcherList

	lim       searchLimits
	incLimits increments
	stable    bool
	fastGlue  ema
	slowGlue  ema
	savedFast ema
	savedSlow ema
	reluctant reluctant
	idxReduce int64
	rephased  int
	probes    int64
	subsumes  int64
	elims     int64
	conds     int64

	iterating bool
	lastUnit  Lit

	terminated atomic.Bool

	rng *rand.Rand

	// Scratch mark bitsets for the conditional derivation. Must be clear
	// between derivations; the counters make leak checks cheap.
	condMarks     []bool
	condMarksSet  int
	touchMarks    []bool
	touchMarksSet int

	analyzeSeen []bool
	seenToClear []Var

	clauseID       uint64
	rec            *Recorder
	globalDeadline time.Time

	Stats Stats

	model   []int8
	witness []witnessEntry
}

// New makes a solver, given a problem.
func New(problem *Problem) *Solver {
	if problem.Status == Unsat {
		return &Solver{status: Unsat, unsat: true, Options: DefaultOptions(), Logger: discardLogger()}
	}
	nbVars := problem.NbVars
	s := &Solver{
		Options:     DefaultOptions(),
		Logger:      discardLogger(),
		nbVars:      nbVars,
		status:      problem.Status,
		vals:        make([]int8, nbVars*2),
		levels:      make([]int32, nbVars),
		reason:      make([]*Clause, nbVars),
		vflags:      make([]VarStatus, nbVars),
		activity:    make([]float64, nbVars),
		polarity:    make([]bool, nbVars),
		varInc:      1.0,
		varDecay:    defaultVarDecay,
		clauseInc:   1.0,
		condMarks:   make([]bool, nbVars*2),
		touchMarks:  make([]bool, nbVars*2),
		analyzeSeen: make([]bool, nbVars),
	}
	s.initWatcherList(problem.Clauses)
	s.varQueue = newQueue(s.activity)
	for _, lit := range problem.Units {
		if s.vals[lit] == 0 {
			s.assign(lit, nil)
		}
	}
	return s
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func (s *Solver) initRand() {
	if s.rng != nil {
		return
	}
	seed := s.Options.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	s.rng = rand.New(rand.NewSource(seed))
}

// NbVars returns the number of variables of the underlying problem.
func (s *Solver) NbVars() int {
	return s.nbVars
}

// Terminate asks the solver to stop as soon as possible. It is safe to call
// from another goroutine; the solver will return Indet from the current
// Solve call.
func (s *Solver) Terminate() {
	s.terminated.Store(true)
}

/* Assignment & trail */

// level is the current decision level.
func (s *Solver) level() int {
	return len(s.limits)
}

func (s *Solver) val(l Lit) int8 {
	return s.vals[l]
}

// lvl returns the decision level v was assigned at.
// Only meaningful while v is assigned.
func (s *Solver) lvl(v Var) int {
	return int(s.levels[v])
}

func (s *Solver) isDecision(v Var) bool {
	return s.vals[v.Lit()] != 0 && s.reason[v] == nil && s.levels[v] > 0
}

// assign makes l true at the current decision level, with the given reason
// clause (nil for decisions and root facts). Assigning a literal is atomic
// with assigning its negation.
func (s *Solver) assign(l Lit, from *Clause) {
	v := l.Var()
	s.vals[l] = 1
	s.vals[l.Negation()] = -1
	s.levels[v] = int32(s.level())
	if from != nil {
		from.lock()
	}
	s.reason[v] = from
	s.trail = append(s.trail, l)
	s.numAssigned++
	if s.level() == 0 && s.vflags[v] == Active {
		s.vflags[v] = Fixed
	}
}

func (s *Solver) unassign(l Lit) {
	v := l.Var()
	s.vals[l] = 0
	s.vals[l.Negation()] = 0
	if r := s.reason[v]; r != nil {
		r.unlock()
		s.reason[v] = nil
	}
	s.polarity[v] = l.IsPositive()
	s.numAssigned--
	if !s.varQueue.contains(int(v)) {
		s.varQueue.insert(int(v))
	}
}

// assumeDecision opens a new decision level and assigns l there.
func (s *Solver) assumeDecision(l Lit) {
	s.limits = append(s.limits, len(s.trail))
	s.assign(l, nil)
}

// backtrack truncates the trail and assignment back to the given decision
// level. backtrack(0) restores the root level.
func (s *Solver) backtrack(lvl int) {
	if lvl >= s.level() {
		return
	}
	bound := s.limits[lvl]
	for i := len(s.trail) - 1; i >= bound; i-- {
		s.unassign(s.trail[i])
	}
	s.trail = s.trail[:bound]
	s.limits = s.limits[:lvl]
	if s.qhead > len(s.trail) {
		s.qhead = len(s.trail)
	}
}

/* Activity bookkeeping */

func (s *Solver) varDecayActivity() {
	s.varInc *= 1 / s.varDecay
}

func (s *Solver) varBumpActivity(v Var) {
	s.activity[v] += s.varInc
	if s.activity[v] > 1e100 { // Rescaling is needed to avoid overflowing
		for i := range s.activity {
			s.activity[i] *= 1e-100
		}
		s.varInc *= 1e-100
	}
	if s.varQueue.contains(int(v)) {
		s.varQueue.decrease(int(v))
	}
}

func (s *Solver) clauseDecayActivity() {
	s.clauseInc *= 1 / clauseDecay
}

func (s *Solver) clauseBumpActivity(c *Clause) {
	if c.Learned() {
		c.activity += s.clauseInc
		if c.activity > 1e30 { // Rescale to avoid overflow
			for _, c2 := range s.wl.learned {
				c2.activity *= 1e-30
			}
			s.clauseInc *= 1e-30
		}
	}
}

func (s *Solver) rebuildOrderHeap() {
	ints := make([]int, 0, s.nbVars)
	for v := 0; v < s.nbVars; v++ {
		if s.vals[Var(v).Lit()] == 0 && s.active(Var(v)) {
			ints = append(ints, v)
		}
	}
	s.varQueue.build(ints)
}

/* Model handling */

func (s *Solver) setUnsat() {
	s.unsat = true
	s.status = Unsat
}

// satisfied is true when every non-eliminated variable is assigned.
func (s *Solver) satisfied() bool {
	return s.numAssigned+s.numEliminated == s.nbVars
}

// saveModel copies the current total assignment, extending it over
// eliminated variables using the witness stack.
func (s *Solver) saveModel() {
	s.model = make([]int8, s.nbVars)
	for v := 0; v < s.nbVars; v++ {
		s.model[v] = s.vals[Var(v).Lit()]
	}
	s.extendModel()
}

// Model returns a slice that associates, to each variable, its binding.
// If s's status is not Sat, the method will panic.
func (s *Solver) Model() []bool {
	if s.model == nil {
		panic("cannot call Model() on a non-Sat solver")
	}
	res := make([]bool, s.nbVars)
	for i, v := range s.model {
		res[i] = v > 0
	}
	return res
}

// OutputModel outputs the model for the problem on stdout.
func (s *Solver) OutputModel() {
	switch s.status {
	case Sat:
		fmt.Printf("s SATISFIABLE\nv ")
		for i, val := range s.model {
			if val < 0 {
				fmt.Printf("%d ", -i-1)
			} else {
				fmt.Printf("%d ", i+1)
			}
		}
		fmt.Printf("\n")
	case Unsat:
		fmt.Printf("s UNSATISFIABLE\n")
	default:
		fmt.Printf("s INDETERMINATE\n")
	}
}

func (s *Solver) report(phase string, fields logrus.Fields) {
	if !s.Verbose {
		return
	}
	s.Logger.WithFields(fields).Info(phase)
}
