package solver

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadSchedule(t *testing.T) {
	text := `# probe 1 and -2, prefer 3
1 -2
3

# a second batch
4 5
-6
`
	sched, err := LoadSchedule(strings.NewReader(text))
	require.NoError(t, err)
	require.Len(t, sched, 2)
	require.Equal(t, []Lit{IntToLit(1), IntToLit(-2)}, sched[0].Assume)
	require.Equal(t, []Lit{IntToLit(3)}, sched[0].Prefer)
	require.Equal(t, []Lit{IntToLit(4), IntToLit(5)}, sched[1].Assume)
	require.Equal(t, []Lit{IntToLit(-6)}, sched[1].Prefer)
	require.Equal(t, 5, sched.MaxVar())
}

func TestLoadScheduleErrors(t *testing.T) {
	for name, text := range map[string]string{
		"null literal": "1 0\n2\n",
		"unpaired":     "1 -2\n3\n4\n",
		"not a number": "1\nx\n",
	} {
		_, err := LoadSchedule(strings.NewReader(text))
		require.Error(t, err, name)
	}
}

func TestMaxVarEmpty(t *testing.T) {
	require.Equal(t, -1, Schedule{}.MaxVar())
}

func TestScheduleEmptyIsNoOp(t *testing.T) {
	s := New(ParseSlice(condCNF))
	require.Equal(t, Indet, s.GlobalPreprocessSchedule(nil))
	require.Empty(t, s.wl.learned)
	require.Equal(t, 0, s.level())
	require.Zero(t, s.Stats.NbDerivations)
}

func TestScheduleDerivesUnit(t *testing.T) {
	sched := Schedule{{Assume: []Lit{IntToLit(1)}, Prefer: []Lit{IntToLit(4)}}}
	for name, greedy := range map[string]bool{"propagate": false, "scheduled-cover": true} {
		t.Run(name, func(t *testing.T) {
			s := New(ParseSlice(condCNF))
			s.Options.GlobalGreedy = greedy
			require.Equal(t, Indet, s.GlobalPreprocessSchedule(sched))
			require.Equal(t, int8(1), s.val(IntToLit(4)))
			require.Equal(t, 1, s.Stats.NbBlocked)
			require.Equal(t, 0, s.level())
		})
	}
}

func TestScheduleRefutes(t *testing.T) {
	s := New(ParseSlice([][]int{{1, 2}, {-1, 2}, {1, -2}, {-1, -2}}))
	sched := Schedule{{Assume: []Lit{IntToLit(1)}}}
	require.Equal(t, Unsat, s.GlobalPreprocessSchedule(sched))
}

func TestScheduleOutOfRangeLiteral(t *testing.T) {
	s := New(ParseSlice(condCNF))
	sched := Schedule{{Assume: []Lit{IntToLit(99)}}}
	require.Equal(t, Indet, s.GlobalPreprocessSchedule(sched))
	require.Empty(t, s.wl.learned)
}

func TestSolveWithSchedule(t *testing.T) {
	s := New(ParseSlice(condCNF))
	s.Schedule = Schedule{{Assume: []Lit{IntToLit(1)}, Prefer: []Lit{IntToLit(4)}}}
	s.Options.GlobalPreprocess = true
	s.Options.GlobalGreedy = true
	require.Equal(t, Sat, s.Solve())
	checkModel(t, condCNF, s)
	model := s.Model()
	require.True(t, model[IntToVar(4)], "the derived unit must hold in the model")
}
