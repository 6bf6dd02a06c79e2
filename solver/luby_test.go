package solver

import "testing"

func TestLuby(t *testing.T) {
	vals := []int{1, 1, 2, 1, 1, 2, 4, 1, 1, 2, 1, 1, 2, 4, 8, 1, 1, 2, 1, 1, 2, 4}
	for i, val := range vals {
		if got := luby(i + 1); got != val {
			t.Errorf("invalid luby term luby(%d): expected %d, got %d", i+1, val, got)
		}
	}
}

func TestReluctant(t *testing.T) {
	var r reluctant
	r.enable(1, 8)
	expected := []int64{1, 2, 1, 1, 2, 4, 1}
	for i, val := range expected {
		if got := r.next(); got != val {
			t.Errorf("invalid reluctant term %d: expected %d, got %d", i, val, got)
		}
	}
}

func TestReluctantScalesWithPeriod(t *testing.T) {
	var r reluctant
	r.enable(100, 1<<20)
	if got := r.next(); got != 100 {
		t.Errorf("expected 100, got %d", got)
	}
	if got := r.next(); got != 200 {
		t.Errorf("expected 200, got %d", got)
	}
}
