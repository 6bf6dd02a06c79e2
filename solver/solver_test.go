package solver

import (
	"strings"
	"testing"
	"time"
)

// pigeonhole encodes the pigeonhole principle for the given numbers of
// pigeons and holes: satisfiable iff pigeons <= holes.
func pigeonhole(pigeons, holes int) [][]int {
	v := func(p, h int) int { return (p-1)*holes + h }
	var cnf [][]int
	for p := 1; p <= pigeons; p++ {
		var clause []int
		for h := 1; h <= holes; h++ {
			clause = append(clause, v(p, h))
		}
		cnf = append(cnf, clause)
	}
	for h := 1; h <= holes; h++ {
		for p1 := 1; p1 <= pigeons; p1++ {
			for p2 := p1 + 1; p2 <= pigeons; p2++ {
				cnf = append(cnf, []int{-v(p1, h), -v(p2, h)})
			}
		}
	}
	return cnf
}

// checkModel fails the test if s's model does not satisfy cnf.
func checkModel(t *testing.T, cnf [][]int, s *Solver) {
	t.Helper()
	model := s.Model()
	for _, clause := range cnf {
		sat := false
		for _, l := range clause {
			if (l > 0 && model[l-1]) || (l < 0 && !model[-l-1]) {
				sat = true
				break
			}
		}
		if !sat {
			t.Errorf("model does not satisfy clause %v", clause)
		}
	}
}

var statusTests = []struct {
	name     string
	cnf      [][]int
	expected Status
}{
	{"empty", [][]int{}, Sat},
	{"units", [][]int{{1}, {-2}}, Sat},
	{"contradiction", [][]int{{1}, {-1}}, Unsat},
	{"chain", [][]int{{1}, {-2, 3}, {-2, 4}, {-5, 3}, {-5, 6}, {-7, 3}, {-7, 8}, {-9, 10}, {-9, 4}, {-1, 10}, {-1, 6}, {3, 10}, {-3, -10}, {4, 6, 8}}, Sat},
	{"all-binary-unsat", [][]int{{1, 2}, {-1, 2}, {1, -2}, {-1, -2}}, Unsat},
	{"forced-by-up", [][]int{{1, 2, 3}, {-1}, {-2}, {-3}}, Unsat},
	{"php-3-2", pigeonhole(3, 2), Unsat},
	{"php-4-3", pigeonhole(4, 3), Unsat},
	{"php-3-3", pigeonhole(3, 3), Sat},
}

func TestSolveStatus(t *testing.T) {
	for _, tt := range statusTests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(ParseSlice(tt.cnf))
			status := s.Solve()
			if status != tt.expected {
				t.Fatalf("expected %v for %v, got %v", tt.expected, tt.cnf, status)
			}
			if tt.expected == Sat {
				checkModel(t, tt.cnf, s)
			}
			// A second call must reach the same verdict.
			if again := s.Solve(); again != tt.expected {
				t.Fatalf("second call: expected %v, got %v", tt.expected, again)
			}
		})
	}
}

func TestExitCodes(t *testing.T) {
	if code := Sat.ExitCode(); code != 10 {
		t.Errorf("expected exit code 10 for Sat, got %d", code)
	}
	if code := Unsat.ExitCode(); code != 20 {
		t.Errorf("expected exit code 20 for Unsat, got %d", code)
	}
	if code := Indet.ExitCode(); code != 0 {
		t.Errorf("expected exit code 0 for Indet, got %d", code)
	}
}

func TestParseCNF(t *testing.T) {
	f := strings.NewReader("c example\np cnf 3 2\n1 -3 0\n2 3 -1 0\n")
	pb, err := ParseCNF(f)
	if err != nil {
		t.Fatal(err.Error())
	}
	s := New(pb)
	if status := s.Solve(); status != Sat {
		t.Fatalf("expected sat, got %v", status)
	}
}

func TestParseCNFContradiction(t *testing.T) {
	f := strings.NewReader("p cnf 1 2\n1 0\n-1 0\n")
	pb, err := ParseCNF(f)
	if err != nil {
		t.Fatal(err.Error())
	}
	if status := New(pb).Solve(); status != Unsat {
		t.Fatalf("expected unsat, got %v", status)
	}
}

func TestModelOnUnits(t *testing.T) {
	s := New(ParseSlice([][]int{{1}, {-2}}))
	if status := s.Solve(); status != Sat {
		t.Fatalf("expected sat, got %v", status)
	}
	model := s.Model()
	if !model[0] || model[1] {
		t.Fatalf("expected model [true false], got %v", model)
	}
}

func TestConflictBudget(t *testing.T) {
	s := New(ParseSlice(pigeonhole(4, 3)))
	s.Options.ConflictLimit = 0
	if status := s.Solve(); status != Indet {
		t.Fatalf("expected indet under a zero conflict budget, got %v", status)
	}
	// The budget is re-armed on every call.
	if status := s.Solve(); status != Indet {
		t.Fatalf("expected indet on the second call too, got %v", status)
	}
}

func TestDecisionBudget(t *testing.T) {
	s := New(ParseSlice(pigeonhole(4, 3)))
	s.Options.DecisionLimit = 0
	if status := s.Solve(); status != Indet {
		t.Fatalf("expected indet under a zero decision budget, got %v", status)
	}
}

func TestSolveTimeoutGenerous(t *testing.T) {
	s := New(ParseSlice(pigeonhole(4, 3)))
	if status := s.SolveTimeout(time.Minute); status != Unsat {
		t.Fatalf("expected unsat well within the timeout, got %v", status)
	}
}

// stopper terminates the solver from the external propagation hook.
type stopper struct{}

func (stopper) Propagate(s *Solver) *Clause {
	s.Terminate()
	return nil
}

func TestTerminate(t *testing.T) {
	s := New(ParseSlice(pigeonhole(4, 3)))
	s.Propagator = stopper{}
	if status := s.Solve(); status != Indet {
		t.Fatalf("expected indet after termination, got %v", status)
	}
}

func TestOnUnit(t *testing.T) {
	s := New(ParseSlice([][]int{{1, 2}, {1, -2}}))
	var units []int
	s.OnUnit = func(l Lit) { units = append(units, l.Int()) }
	s.probe()
	if s.Stats.NbProbed != 1 {
		t.Fatalf("expected 1 failed literal, got %d", s.Stats.NbProbed)
	}
	if len(units) != 1 || units[0] != 1 {
		t.Fatalf("expected unit callback for 1, got %v", units)
	}
	if s.val(IntToLit(1)) != 1 {
		t.Errorf("expected 1 to be a root fact")
	}
	if s.Flags(IntToLit(1)) != Fixed {
		t.Errorf("expected var 1 to be fixed, got %v", s.Flags(IntToLit(1)))
	}
}

func TestLocalSearch(t *testing.T) {
	cnf := [][]int{{1, 2}, {-1, 3}, {-2, 3}, {3, 4}, {-3, -4, 1}}
	s := New(ParseSlice(cnf))
	s.Options.LocalSearchRounds = 5
	s.Options.Seed = 1
	if status := s.Solve(); status != Sat {
		t.Fatalf("expected sat, got %v", status)
	}
	checkModel(t, cnf, s)
}

func TestCheckerRejects(t *testing.T) {
	s := New(ParseSlice([][]int{{1, 2}}))
	s.Checker = rejectAll{}
	if status := s.Solve(); status != Indet {
		t.Fatalf("expected indet when the checker rejects every model, got %v", status)
	}
}

type rejectAll struct{}

func (rejectAll) Check([]bool) bool { return false }
