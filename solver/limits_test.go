package solver

import "testing"

func TestEma(t *testing.T) {
	e := ema{alpha: 0.5}
	e.update(4)
	if e.value != 2 {
		t.Errorf("expected 2, got %f", e.value)
	}
	e.update(4)
	if e.value != 3 {
		t.Errorf("expected 3, got %f", e.value)
	}
}

func TestSearchLimitsKeptAcrossCalls(t *testing.T) {
	s := New(ParseSlice(pigeonhole(3, 3)))
	s.initSearchLimits()
	reduceAt := s.lim.reduce
	s.lim.reduce = 42
	// Periodic schedules survive; only hard budgets are re-armed.
	s.initSearchLimits()
	if s.lim.reduce != 42 {
		t.Errorf("expected the reduce schedule to be kept, got %d (initial %d)", s.lim.reduce, reduceAt)
	}
	if s.lim.conflicts != -1 {
		t.Errorf("expected an unlimited conflict budget, got %d", s.lim.conflicts)
	}
	s.Options.ConflictLimit = 5
	s.initSearchLimits()
	if s.lim.conflicts != s.Stats.NbConflicts+5 {
		t.Errorf("expected the conflict budget to be re-armed, got %d", s.lim.conflicts)
	}
}

func TestSearchLimitsRearmedEachCall(t *testing.T) {
	s := New(ParseSlice(pigeonhole(3, 3)))
	s.initSearchLimits()
	// Simulate a previous call that left its schedules behind.
	s.Stats.NbConflicts = 7
	s.lim.restart = 2
	s.lim.rephase = 1000
	s.lim.stabilize = 3
	s.incLimits.stabilize = 4096
	s.stable = true
	s.fastGlue.value = 7
	s.initSearchLimits()
	if s.lim.restart != 7+s.Options.RestartInterval {
		t.Errorf("restart limit not re-armed: got %d, want %d", s.lim.restart, 7+s.Options.RestartInterval)
	}
	if s.lim.rephase != 7+s.Options.RephaseInterval {
		t.Errorf("rephase limit not re-armed: got %d, want %d", s.lim.rephase, 7+s.Options.RephaseInterval)
	}
	if s.lim.stabilize != 7+s.Options.StabilizeInterval {
		t.Errorf("stabilize limit not re-armed: got %d, want %d", s.lim.stabilize, 7+s.Options.StabilizeInterval)
	}
	if s.incLimits.stabilize != s.Options.StabilizeInterval {
		t.Errorf("stabilize increment not reset: got %d, want %d", s.incLimits.stabilize, s.Options.StabilizeInterval)
	}
	if s.stable {
		t.Error("expected a resumed search to start in focused mode")
	}
	if s.fastGlue.value == 7 {
		t.Error("expected the glue averages to be swapped back with the mode")
	}
}

func TestStabilizeSwapsAverages(t *testing.T) {
	s := New(ParseSlice(pigeonhole(3, 3)))
	s.initSearchLimits()
	s.fastGlue.value = 7
	s.stabilize()
	if !s.stable {
		t.Fatal("expected stable mode after the first toggle")
	}
	if s.fastGlue.value == 7 {
		t.Error("expected the glue averages to be swapped")
	}
	s.stabilize()
	if s.stable {
		t.Fatal("expected focused mode after the second toggle")
	}
	if s.fastGlue.value != 7 {
		t.Error("expected the original glue average back")
	}
}
