package solver

import "time"

// GlobalOrder selects the candidate ordering policy of the exhaustive
// conditional probing pass.
type GlobalOrder byte

const (
	// GlobalOrderAscending probes variables in ascending index order.
	GlobalOrderAscending = GlobalOrder(iota)
	// GlobalOrderFrequency probes variables sorted by descending occurrence count.
	GlobalOrderFrequency
	// GlobalOrderRandom probes uniformly random variables with random polarity.
	GlobalOrderRandom
)

// AntecedentOrder selects how antecedent candidates are reordered before
// shrinking the conditional part.
type AntecedentOrder byte

const (
	// AntecedentOrderNone keeps the natural collection order.
	AntecedentOrderNone = AntecedentOrder(iota)
	// AntecedentOrderImplication reorders so that a literal whose assumption
	// propagates another comes first. An approximate topological sort.
	AntecedentOrderImplication
	// AntecedentOrderRandom shuffles uniformly.
	AntecedentOrderRandom
)

// Options is the configuration surface of the solver. The zero value is not
// usable; start from DefaultOptions.
type Options struct {
	// Search limits. Negative increments mean "unlimited".
	ConflictLimit int64
	DecisionLimit int64

	// Inprocessing intervals, in conflicts.
	RestartInterval   int64
	RephaseInterval   int64
	ReduceInterval    int64
	ProbeInterval     int64
	SubsumeInterval   int64
	ElimInterval      int64
	CompactInterval   int64
	ConditionInterval int64
	StabilizeInterval int64

	// Inprocessing toggles.
	Probe     bool
	Subsume   bool
	Elim      bool
	Condition bool
	Stabilize bool

	// Reluctant doubling restart scheduling, used in stable mode.
	Reluctant    int64
	ReluctantMax int64

	// Elimination bounds.
	ElimBoundMin int
	ElimBoundMax int
	ElimOccLimit int

	// Preprocessing and local search round counts for one Solve call.
	PreprocessRounds  int
	LocalSearchRounds int
	WalkMinEff        int64

	// Global (conditional probing) preprocessing.
	GlobalPreprocess     bool            // Run the global pass before search.
	GlobalOrder          GlobalOrder     // Candidate literal ordering policy.
	GlobalBothPolarities bool            // Probe both j and -j in the inner loop.
	GlobalTouch          bool            // Restrict inner candidates to touched literals.
	GlobalGreedy         bool            // Select antecedents by greedy set cover.
	GlobalBCPShrink      bool            // Shrink via binary clauses only, no propagation.
	GlobalNoShrink       bool            // Disable shrinking, emit raw candidates.
	GlobalAntecedents    AntecedentOrder // Antecedent reordering policy.
	GlobalMaxLen         int             // Clauses longer than this are trivially discarded.
	GlobalMaxClauses     int             // Cap on raw candidates emitted per derivation.
	GlobalFilterTrivial  bool            // Drop clauses already implied by unit propagation.
	GlobalLearn          bool            // Actually add derived clauses to the database.
	GlobalTimeBudget     time.Duration   // Wall-clock budget for one global pass.

	// Seed for all randomized policies. Zero picks a time-based seed.
	Seed int64
}

// DefaultOptions returns the default solver configuration.
func DefaultOptions() Options {
	return Options{
		ConflictLimit: -1,
		DecisionLimit: -1,

		RestartInterval:   2,
		RephaseInterval:   1000,
		ReduceInterval:    300,
		ProbeInterval:     5000,
		SubsumeInterval:   10000,
		ElimInterval:      2000,
		CompactInterval:   2000,
		ConditionInterval: 10000,
		StabilizeInterval: 1000,

		Probe:     true,
		Subsume:   true,
		Elim:      true,
		Condition: false,
		Stabilize: true,

		Reluctant:    1024,
		ReluctantMax: 1 << 20,

		ElimBoundMin: 16,
		ElimBoundMax: 32,
		ElimOccLimit: 100,

		PreprocessRounds:  0,
		LocalSearchRounds: 0,
		WalkMinEff:        10000,

		GlobalPreprocess:     false,
		GlobalOrder:          GlobalOrderAscending,
		GlobalBothPolarities: false,
		GlobalTouch:          true,
		GlobalGreedy:         false,
		GlobalBCPShrink:      false,
		GlobalNoShrink:       false,
		GlobalAntecedents:    AntecedentOrderNone,
		GlobalMaxLen:         50,
		GlobalMaxClauses:     10,
		GlobalFilterTrivial:  true,
		GlobalLearn:          true,
		GlobalTimeBudget:     10 * time.Second,
	}
}
