package solver

import "fmt"

// A Problem is a list of clauses & a nb of vars.
type Problem struct {
	NbVars  int       // Total nb of vars
	Clauses []*Clause // List of non-empty, non-unit clauses
	Status  Status    // Status of the problem. Can be trivially UNSAT (if an empty clause was met or inferred by UP) or Indet.
	Units   []Lit     // List of unit literals found in the problem.
	Model   []int8    // For each var, its inferred binding. 0 means unbound, 1 bound to true, -1 bound to false.
}

// CNF returns a DIMACS CNF representation of the problem.
func (pb *Problem) CNF() string {
	res := fmt.Sprintf("p cnf %d %d\n", pb.NbVars, len(pb.Clauses)+len(pb.Units))
	for _, unit := range pb.Units {
		res += fmt.Sprintf("%d 0\n", unit.Int())
	}
	for _, clause := range pb.Clauses {
		res += fmt.Sprintf("%s\n", clause.CNF())
	}
	return res
}

func (pb *Problem) addUnit(lit Lit) {
	v := lit.Var()
	old := pb.Model[v]
	if lit.IsPositive() {
		if old == -1 {
			pb.Status = Unsat
			return
		}
		pb.Model[v] = 1
	} else {
		if old == 1 {
			pb.Status = Unsat
			return
		}
		pb.Model[v] = -1
	}
	if old == 0 {
		pb.Units = append(pb.Units, lit)
	}
}

// simplify runs unit propagation on the problem until fixpoint.
func (pb *Problem) simplify() {
	modified := true
	for modified && pb.Status != Unsat {
		modified = false
		i := 0
		for i < len(pb.Clauses) {
			c := pb.Clauses[i]
			nbLits := c.Len()
			sat := false
			j := 0
			for j < nbLits {
				lit := c.Get(j)
				switch pb.Model[lit.Var()] {
				case 0:
					j++
				default:
					if (pb.Model[lit.Var()] == 1) == lit.IsPositive() {
						sat = true
						j = nbLits
					} else {
						nbLits--
						c.Set(j, c.Get(nbLits))
					}
				}
			}
			if sat {
				last := len(pb.Clauses) - 1
				pb.Clauses[i] = pb.Clauses[last]
				pb.Clauses = pb.Clauses[:last]
				modified = true
				continue
			}
			switch nbLits {
			case 0:
				pb.Status = Unsat
				return
			case 1:
				pb.addUnit(c.Get(0))
				if pb.Status == Unsat {
					return
				}
				last := len(pb.Clauses) - 1
				pb.Clauses[i] = pb.Clauses[last]
				pb.Clauses = pb.Clauses[:last]
				modified = true
			default:
				if c.Len() != nbLits {
					c.Shrink(nbLits)
				}
				i++
			}
		}
	}
	if pb.Status == Indet && len(pb.Clauses) == 0 {
		pb.Status = Sat
	}
}
