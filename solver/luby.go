package solver

// luby returns the i-th element of the Luby sequence
// (1 1 2 1 1 2 4 1 1 2 1 1 2 4 8...). i starts at 1.
func luby(i int) int {
	for k := 1; k < 32; k++ {
		if i == 1<<uint(k)-1 {
			return 1 << uint(k-1)
		}
	}
	k := 1
	for {
		if 1<<uint(k-1) <= i && i < 1<<uint(k)-1 {
			return luby(i - 1<<uint(k-1) + 1)
		}
		k++
	}
}

// reluctant implements the reluctant doubling sequence of Knuth
// (1 1 2 1 2 4 1 1 2 4 8...), used to schedule restarts in stable mode.
type reluctant struct {
	period int64
	limit  int64
	u, v   int64
}

func (r *reluctant) enable(period, limit int64) {
	r.period = period
	r.limit = limit
	r.u, r.v = 1, 1
}

// next advances the sequence and returns the conflict interval until the
// next restart.
func (r *reluctant) next() int64 {
	if r.u&-r.u == r.v {
		r.u++
		r.v = 1
	} else {
		r.v *= 2
	}
	if r.v*r.period > r.limit {
		r.u, r.v = 1, 1
	}
	return r.v * r.period
}
