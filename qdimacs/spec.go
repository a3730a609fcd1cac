// Package qdimacs parses QDIMACS 2QBF specifications and exposes an
// immutable view of the resulting matrix and quantifier blocks.
//
// QDIMACS extends DIMACS CNF with quantifier prefix lines: a header
// "p cnf V C", then any number of "a v1 v2 … 0" / "e v1 v2 … 0" lines,
// then C clause lines of space-separated nonzero ints terminated by 0.
// Comment lines start with 'c'; blank lines and extra whitespace are
// tolerated.
//
// Errors:
//
//	ErrSpecParse - malformed QDIMACS input (fatal, no recovery)
package qdimacs

import (
	"errors"

	"github.com/katalvlaran/skolemize/literal"
)

// ErrSpecParse indicates malformed QDIMACS input. It is always wrapped
// with additional detail via fmt.Errorf("%w: ...").
var ErrSpecParse = errors.New("qdimacs: malformed specification")

// Spec is an immutable view over a parsed 2QBF specification: a matrix
// of clauses over [1, NumVars], a set of universal variables X, and an
// ordered (file-appearance order) sequence of existential variables Y.
//
// Invariants (enforced by Parse, never by the caller):
//   - Universals and Existentials are disjoint.
//   - Every literal in every clause references a variable in [1, NumVars].
type Spec struct {
	NumVars      int
	Universals   map[literal.Variable]bool
	Existentials []literal.Variable
	Matrix       []literal.Clause

	existentialSet map[literal.Variable]bool
}

// HasExistential reports whether v is one of the declared existentials.
func (s *Spec) HasExistential(v literal.Variable) bool {
	return s.existentialSet[v]
}

// HasUniversal reports whether v is one of the declared universals.
func (s *Spec) HasUniversal(v literal.Variable) bool {
	return s.Universals[v]
}

// NextFreeVar returns the smallest variable identifier guaranteed not to
// collide with any variable used by the matrix, universals, or
// existentials. Callers allocate fresh ids (the per-output g_y
// bookkeeping, Tseitin auxiliaries, …) starting here.
func (s *Spec) NextFreeVar() literal.Variable {
	return s.NumVars + 1
}

// CNF returns the matrix as a flat clause slice, matching the
// Sampler/Oracle collaborator interfaces' add_clauses contract.
func (s *Spec) CNF() []literal.Clause {
	out := make([]literal.Clause, len(s.Matrix))
	copy(out, s.Matrix)
	return out
}
