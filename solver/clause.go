package solver

import "fmt"

// A Clause is a list of Lit, associated with metadata for learned clauses.
type Clause struct {
	lits []Lit
	// meta's bits are as follows:
	// bit 31: learned (redundant) flag.
	// bit 30: locked flag (clause is the reason of a propagation).
	// bit 29: garbage flag (logically deleted, awaiting collection).
	// bit 28: globally blocked flag (derived by conditional probing).
	// last 28 bits: LBD value (if learned).
	meta     uint32
	activity float32
	id       uint64
	// Antecedent literals justifying a globally blocked clause. Kept for the
	// audit recorder only; the search never reads them.
	antecedents []Lit
}

const (
	learnedMask uint32 = 1 << 31
	lockedMask  uint32 = 1 << 30
	garbageMask uint32 = 1 << 29
	blockedMask uint32 = 1 << 28
	lbdMask     uint32 = (1 << 28) - 1
	bothMasks   uint32 = learnedMask | lockedMask
)

// NewClause returns a clause whose lits are given as an argument.
func NewClause(lits []Lit) *Clause {
	return &Clause{lits: lits}
}

// NewLearnedClause returns a new clause marked as learned.
func NewLearnedClause(lits []Lit) *Clause {
	return &Clause{lits: lits, meta: learnedMask}
}

// newBlockedClause returns a learned clause tagged as globally blocked,
// carrying the antecedent set that justifies it.
func newBlockedClause(lits []Lit, antecedents []Lit) *Clause {
	return &Clause{lits: lits, meta: learnedMask | blockedMask, antecedents: antecedents}
}

// Learned returns true iff c is a learned (redundant) clause.
func (c *Clause) Learned() bool {
	return c.meta&learnedMask == learnedMask
}

// Blocked returns true iff c was derived as a globally blocked clause.
func (c *Clause) Blocked() bool {
	return c.meta&blockedMask == blockedMask
}

// Garbage returns true iff c is logically deleted.
func (c *Clause) Garbage() bool {
	return c.meta&garbageMask == garbageMask
}

func (c *Clause) markGarbage() {
	c.meta |= garbageMask
}

func (c *Clause) lock() {
	c.meta |= lockedMask
}

func (c *Clause) unlock() {
	c.meta &= ^lockedMask
}

func (c *Clause) isLocked() bool {
	return c.meta&bothMasks == bothMasks
}

func (c *Clause) lbd() int {
	return int(c.meta & lbdMask)
}

func (c *Clause) setLbd(lbd int) {
	c.meta = (c.meta & ^lbdMask) | (uint32(lbd) & lbdMask)
}

// Len returns the nb of lits in the clause.
func (c *Clause) Len() int {
	return len(c.lits)
}

// First returns the first lit from the clause.
func (c *Clause) First() Lit {
	return c.lits[0]
}

// Second returns the second lit from the clause.
func (c *Clause) Second() Lit {
	return c.lits[1]
}

// Get returns the ith literal from the clause.
func (c *Clause) Get(i int) Lit {
	return c.lits[i]
}

// Set sets the ith literal of the clause.
func (c *Clause) Set(i int, l Lit) {
	c.lits[i] = l
}

// swap swaps the ith and jth lits from the clause.
func (c *Clause) swap(i, j int) {
	c.lits[i], c.lits[j] = c.lits[j], c.lits[i]
}

// Shrink reduces the length of the clause, by removing all lits
// starting from position newLen.
func (c *Clause) Shrink(newLen int) {
	c.lits = c.lits[:newLen]
}

// CNF returns a DIMACS representation of the clause.
func (c *Clause) CNF() string {
	res := ""
	for _, lit := range c.lits {
		res += fmt.Sprintf("%d ", lit.Int())
	}
	return fmt.Sprintf("%s0", res)
}
