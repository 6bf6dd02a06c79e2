package solver

// VarStatus is the lifecycle state of a variable.
type VarStatus byte

const (
	// Active variables take part in search and probing.
	Active = VarStatus(iota)
	// Fixed variables were assigned at the root level and never change again.
	Fixed
	// Eliminated variables were removed by variable elimination; their value
	// is reconstructed from the witness stack when a model is extracted.
	Eliminated
)

func (vs VarStatus) String() string {
	switch vs {
	case Active:
		return "ACTIVE"
	case Fixed:
		return "FIXED"
	case Eliminated:
		return "ELIMINATED"
	default:
		panic("invalid variable status")
	}
}

// Flags returns the status of the variable underlying l.
func (s *Solver) Flags(l Lit) VarStatus {
	return s.vflags[l.Var()]
}

func (s *Solver) active(v Var) bool {
	return s.vflags[v] == Active
}
