package solver

import "testing"

func TestClauseTrivialByConflict(t *testing.T) {
	s := New(ParseSlice([][]int{{1, 2}, {-1, 2}}))
	// Assuming -2 conflicts, so {2} is already implied by propagation.
	if !s.clauseTrivial([]Lit{IntToLit(2)}) {
		t.Fatal("expected {2} to be trivial")
	}
	if s.level() != 0 {
		t.Fatalf("expected the root level to be restored, got level %d", s.level())
	}
	// The conflict along the way made 2 a root fact.
	if s.val(IntToLit(2)) != 1 {
		t.Error("expected 2 to be learned as a unit")
	}
}

func TestClauseTrivialRootFact(t *testing.T) {
	s := New(ParseSlice([][]int{{1}, {2, 3}}))
	if !s.clauseTrivial([]Lit{IntToLit(1), IntToLit(2)}) {
		t.Fatal("expected a clause containing a root fact to be trivial")
	}
	if s.level() != 0 {
		t.Fatalf("expected level 0, got %d", s.level())
	}
}

func TestClauseTrivialTooLong(t *testing.T) {
	s := New(ParseSlice([][]int{{1, 2, 3}}))
	s.Options.GlobalMaxLen = 2
	if !s.clauseTrivial([]Lit{IntToLit(1), IntToLit(2), IntToLit(3)}) {
		t.Fatal("expected an over-length clause to be trivial")
	}
}

func TestClauseNotTrivial(t *testing.T) {
	s := New(ParseSlice([][]int{{1, 2, 3}}))
	if s.clauseTrivial([]Lit{IntToLit(1), IntToLit(2)}) {
		t.Fatal("expected {1,2} not to be trivial")
	}
	if s.level() != 0 {
		t.Fatalf("expected level 0, got %d", s.level())
	}
}
