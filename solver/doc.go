// Package solver provides a CDCL SAT solver with global preprocessing.
//
// The solver reads a problem in DIMACS CNF format (or from a slice of
// slices of integers) and decides its satisfiability through
// conflict-driven clause learning, interleaved with inprocessing: failed
// literal probing, subsumption, bounded variable elimination and database
// reduction.
//
// Its distinctive feature is the conditional probing pass, which derives
// globally blocked clauses before search starts: assignments built from one
// or two probes are split into a conditional part and an antecedent part,
// and the clauses blocked by that split are learned as redundant clauses or
// root units. The pass exists in an exhaustive variant (GlobalPreprocess)
// and a scheduled variant (GlobalPreprocessSchedule) driven by a fixed
// assumption schedule, and every derived clause can be streamed to a
// Recorder for external auditing.
package solver
