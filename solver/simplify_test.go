package solver

import "testing"

func TestSubsumeRemoves(t *testing.T) {
	s := New(ParseSlice([][]int{{1, 2}, {1, 2, 3}}))
	s.subsume()
	if s.Stats.NbSubsumed != 1 {
		t.Fatalf("expected 1 subsumed clause, got %d", s.Stats.NbSubsumed)
	}
	if len(s.wl.clauses) != 1 {
		t.Fatalf("expected 1 clause left, got %d", len(s.wl.clauses))
	}
	if status := s.Solve(); status != Sat {
		t.Fatalf("expected sat, got %v", status)
	}
}

func TestSubsumeStrengthens(t *testing.T) {
	cnf := [][]int{{1, 2}, {-1, 2, 3}, {1, 4}, {1, 5}}
	s := New(ParseSlice(cnf))
	s.subsume()
	if s.Stats.NbStrengthened != 1 {
		t.Fatalf("expected 1 strengthened clause, got %d", s.Stats.NbStrengthened)
	}
	// Resolving {1,2} against {-1,2,3} must have shortened the latter.
	found := false
	for _, c := range s.wl.clauses {
		if c.Len() == 2 && (c.First() == IntToLit(3) || c.Second() == IntToLit(3)) {
			found = true
		}
	}
	if !found {
		t.Fatal("expected a binary clause containing 3")
	}
	if status := s.Solve(); status != Sat {
		t.Fatalf("expected sat, got %v", status)
	}
	checkModel(t, cnf, s)
}

func TestElim(t *testing.T) {
	cnf := [][]int{{1, 2}, {-2, 3}}
	s := New(ParseSlice(cnf))
	s.elim()
	if s.Stats.NbEliminated != 3 {
		t.Fatalf("expected 3 eliminated variables, got %d", s.Stats.NbEliminated)
	}
	if !s.varQueue.empty() {
		t.Error("expected eliminated variables to leave the decision heap")
	}
	// The model must be reconstructed over the eliminated variables.
	if status := s.Solve(); status != Sat {
		t.Fatalf("expected sat, got %v", status)
	}
	checkModel(t, cnf, s)
}

func TestElimThenSolve(t *testing.T) {
	cnf := pigeonhole(3, 3)
	s := New(ParseSlice(cnf))
	s.Options.PreprocessRounds = 2
	if status := s.Solve(); status != Sat {
		t.Fatalf("expected sat, got %v", status)
	}
	checkModel(t, cnf, s)
}

func TestPreprocessRefutes(t *testing.T) {
	s := New(ParseSlice(pigeonhole(3, 2)))
	s.Options.PreprocessRounds = 3
	if status := s.Solve(); status != Unsat {
		t.Fatalf("expected unsat, got %v", status)
	}
}

func TestReduceLearned(t *testing.T) {
	s := New(ParseSlice([][]int{{1, 2, 3}, {4, 5, 6}}))
	lits := [][]int{{1, 2, 4}, {1, 3, 5}, {2, 3, 6}, {4, 5, 1}}
	for i, ls := range lits {
		c := NewLearnedClause([]Lit{IntToLit(ls[0]), IntToLit(ls[1]), IntToLit(ls[2])})
		c.setLbd(3 + i)
		s.addLearned(c)
	}
	s.reduceLearned()
	if s.Stats.NbDeleted != 2 {
		t.Fatalf("expected 2 deleted clauses, got %d", s.Stats.NbDeleted)
	}
	if len(s.wl.learned) != 2 {
		t.Fatalf("expected 2 learned clauses left, got %d", len(s.wl.learned))
	}
	for _, c := range s.wl.learned {
		if c.lbd() > 4 {
			t.Errorf("high-glue clause with lbd %d should have been deleted", c.lbd())
		}
	}
}

func TestCompact(t *testing.T) {
	s := New(ParseSlice([][]int{{1, 2, 3}, {-1, 2}, {-2, 3}}))
	s.compact()
	if status := s.Solve(); status != Sat {
		t.Fatalf("expected sat after compaction, got %v", status)
	}
}

func TestWalkRound(t *testing.T) {
	s := New(ParseSlice([][]int{{1, 2}, {-1, 2}}))
	s.Options.Seed = 11
	s.initRand()
	if !s.walkRound(1000) {
		t.Fatal("expected the walk to satisfy the formula")
	}
	if !s.polarity[IntToLit(2).Var()] {
		t.Error("expected the walk to save phase 2=true")
	}
}
