package solver

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// The global pass must preserve the verdict whatever its configuration.
func TestGlobalPreprocessPreservesStatus(t *testing.T) {
	configs := map[string]func(*Options){
		"default":         func(o *Options) {},
		"frequency":       func(o *Options) { o.GlobalOrder = GlobalOrderFrequency },
		"random":          func(o *Options) { o.GlobalOrder = GlobalOrderRandom; o.Seed = 7 },
		"both-polarities": func(o *Options) { o.GlobalBothPolarities = true },
		"no-touch":        func(o *Options) { o.GlobalTouch = false },
		"greedy":          func(o *Options) { o.GlobalGreedy = true },
		"bcp":             func(o *Options) { o.GlobalBCPShrink = true },
		"no-shrink":       func(o *Options) { o.GlobalNoShrink = true },
		"no-learn":        func(o *Options) { o.GlobalLearn = false },
		"no-filter":       func(o *Options) { o.GlobalFilterTrivial = false },
		"implication":     func(o *Options) { o.GlobalAntecedents = AntecedentOrderImplication },
		"tiny-budget":     func(o *Options) { o.GlobalTimeBudget = time.Nanosecond },
	}
	for name, tweak := range configs {
		t.Run(name, func(t *testing.T) {
			for _, tt := range statusTests {
				s := New(ParseSlice(tt.cnf))
				s.Options.GlobalPreprocess = true
				tweak(&s.Options)
				status := s.Solve()
				require.Equal(t, tt.expected, status, "formula %v", tt.cnf)
				if tt.expected == Sat {
					checkModel(t, tt.cnf, s)
				}
			}
		})
	}
}

func TestGlobalPreprocessDerives(t *testing.T) {
	s := New(ParseSlice(condCNF))
	require.Equal(t, Indet, s.GlobalPreprocess())
	require.Positive(t, s.Stats.NbDerivations)
}

func TestGlobalPreprocessRefutes(t *testing.T) {
	s := New(ParseSlice([][]int{{1, 2}, {-1, 2}, {1, -2}, {-1, -2}}))
	require.Equal(t, Unsat, s.GlobalPreprocess())
}

func TestTouchedLiterals(t *testing.T) {
	s := New(ParseSlice([][]int{{1, 2}, {-1, 3}, {-3, 4, 5}}))
	s.assumeDecision(IntToLit(1))
	require.Nil(t, s.propagate())
	lits := s.touchedLiterals()
	require.ElementsMatch(t, []Lit{IntToLit(4), IntToLit(5)}, lits)
	require.Equal(t, 0, s.touchMarksSet)
}

func TestTouchedLiteralsAllVariables(t *testing.T) {
	s := New(ParseSlice([][]int{{1, 2}, {-1, 3}, {-3, 4, 5}}))
	s.Options.GlobalTouch = false
	lits := s.touchedLiterals()
	require.Len(t, lits, s.NbVars())
}

func TestSortedLiterals(t *testing.T) {
	s := New(ParseSlice([][]int{{1, 2}, {2, 3}, {2, 4, 3}}))
	lits := s.sortedLiterals()
	require.Len(t, lits, 4)
	require.Equal(t, IntToLit(2), lits[0])
	require.Equal(t, IntToLit(3), lits[1])
}

func TestConditionInSearch(t *testing.T) {
	cnf := pigeonhole(3, 3)
	s := New(ParseSlice(cnf))
	s.Options.Condition = true
	s.Options.ConditionInterval = 1
	require.Equal(t, Sat, s.Solve())
	checkModel(t, cnf, s)
}
