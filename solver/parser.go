package solver

import (
	"bufio"
	"fmt"
	"io"
)

// ParseSlice parses a slice of slices of lits and returns the equivalent
// problem. The argument is supposed to be a well-formed CNF.
func ParseSlice(cnf [][]int) *Problem {
	var pb Problem
	for _, line := range cnf {
		if len(line) == 0 {
			pb.Status = Unsat
			return &pb
		}
		lits := make([]Lit, len(line))
		for j, val := range line {
			if val == 0 {
				panic("null literal in clause")
			}
			lits[j] = IntToLit(val)
			if v := int(lits[j].Var()); v >= pb.NbVars {
				pb.NbVars = v + 1
			}
		}
		if len(lits) == 1 {
			pb.Units = append(pb.Units, lits[0])
		} else {
			pb.Clauses = append(pb.Clauses, NewClause(lits))
		}
	}
	pb.Model = make([]int8, pb.NbVars)
	for _, unit := range pb.Units {
		v := unit.Var()
		if pb.Model[v] == 0 {
			if unit.IsPositive() {
				pb.Model[v] = 1
			} else {
				pb.Model[v] = -1
			}
		} else if pb.Model[v] > 0 != unit.IsPositive() {
			pb.Status = Unsat
			return &pb
		}
	}
	pb.simplify()
	return &pb
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

// readInt reads an int from r.
// 'b' is the last read byte. It can be a space, a '-' or a digit.
// All spaces before the int value are ignored. Can return EOF.
func readInt(b *byte, r *bufio.Reader) (res int, err error) {
	for err == nil && isSpace(*b) {
		*b, err = r.ReadByte()
	}
	if err == io.EOF {
		return res, io.EOF
	}
	if err != nil {
		return res, fmt.Errorf("could not read digit: %v", err)
	}
	neg := 1
	if *b == '-' {
		neg = -1
		*b, err = r.ReadByte()
		if err != nil {
			return 0, fmt.Errorf("cannot read int: %v", err)
		}
	}
	for err == nil {
		if *b < '0' || *b > '9' {
			break
		}
		res = 10*res + int(*b-'0')
		*b, err = r.ReadByte()
	}
	if err != nil && err != io.EOF {
		return res, err
	}
	return res * neg, nil
}

// ParseCNF parses a CNF file in DIMACS format and returns the corresponding
// problem.
func ParseCNF(f io.Reader) (*Problem, error) {
	r := bufio.NewReader(f)
	var (
		pb     Problem
		lits   []Lit
		b      byte
		err    error
		inComm bool
	)
	b, err = r.ReadByte()
	for err == nil {
		if inComm {
			if b == '\n' {
				inComm = false
			}
			b, err = r.ReadByte()
			continue
		}
		switch {
		case b == 'c':
			inComm = true
			b, err = r.ReadByte()
		case b == 'p':
			// Header line; sizes are recomputed from the clauses anyway.
			for err == nil && b != '\n' {
				b, err = r.ReadByte()
			}
		case isSpace(b):
			b, err = r.ReadByte()
		default:
			var val int
			val, err = readInt(&b, r)
			if err != nil && err != io.EOF {
				return nil, fmt.Errorf("could not parse clause: %v", err)
			}
			if val == 0 {
				switch len(lits) {
				case 0:
					pb.Status = Unsat
				case 1:
					pb.Units = append(pb.Units, lits[0])
				default:
					pb.Clauses = append(pb.Clauses, NewClause(lits))
				}
				lits = nil
			} else {
				lit := IntToLit(val)
				if v := int(lit.Var()); v >= pb.NbVars {
					pb.NbVars = v + 1
				}
				lits = append(lits, lit)
			}
		}
	}
	if err != io.EOF {
		return nil, err
	}
	if len(lits) > 0 { // Last clause was not 0-terminated
		if len(lits) == 1 {
			pb.Units = append(pb.Units, lits[0])
		} else {
			pb.Clauses = append(pb.Clauses, NewClause(lits))
		}
	}
	pb.Model = make([]int8, pb.NbVars)
	for _, unit := range pb.Units {
		v := unit.Var()
		if pb.Model[v] == 0 {
			if unit.IsPositive() {
				pb.Model[v] = 1
			} else {
				pb.Model[v] = -1
			}
		} else if pb.Model[v] > 0 != unit.IsPositive() {
			pb.Status = Unsat
			return &pb, nil
		}
	}
	pb.simplify()
	return &pb, nil
}
