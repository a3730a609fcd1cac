// Package literal defines the integer-literal algebra shared by every
// synthesis component: variables, signed literals, clauses (disjunctions)
// and cubes (conjunctions), plus the Tseitin helpers used to flatten a
// cube/clause list down to plain CNF.
//
// A Variable is a positive integer identifier. A Literal is a signed
// nonzero integer: +v means v is asserted true, -v means v is asserted
// false. A Clause is an OR of literals; a Cube is an AND of literals.
package literal

import (
	"errors"
	"fmt"
	"sort"
)

// ErrZeroLiteral is returned whenever a 0 literal is encountered; 0 is not
// a valid signed literal (DIMACS reserves it as the clause terminator).
var ErrZeroLiteral = errors.New("literal: zero is not a valid literal")

// ErrInconsistentSet is returned when a literal set contains both v and
// ¬v: every cube and clause in this package is required to be internally
// consistent and non-tautological.
var ErrInconsistentSet = errors.New("literal: set contains both v and -v")

// Variable is a positive integer variable identifier.
type Variable = int

// Literal is a signed nonzero integer: positive asserts the variable
// true, negative asserts it false.
type Literal = int

// Var returns the variable underlying a literal (its absolute value).
func Var(l Literal) Variable {
	if l < 0 {
		return -l
	}
	return l
}

// Neg returns the negation of a literal.
func Neg(l Literal) Literal {
	return -l
}

// IsPositive reports whether l asserts its variable true.
func IsPositive(l Literal) bool {
	return l > 0
}

// Clause is a disjunction (OR) of literals. An empty Clause is the
// contradiction "false".
type Clause []Literal

// Cube is a conjunction (AND) of literals. An empty Cube is the
// tautology "true" when used alone, but a SymbolicBasis with no cubes at
// all is defined to mean "false" — see package basis.
type Cube []Literal

// Normalize deduplicates literals, sorts them by variable for
// deterministic output, and reports ErrInconsistentSet if both v and -v
// appear. It never drops a tautological literal pair silently — callers
// that can tolerate tautologies should not call Normalize.
func Normalize(lits []Literal) ([]Literal, error) {
	seen := make(map[Literal]bool, len(lits))
	out := make([]Literal, 0, len(lits))
	for _, l := range lits {
		if l == 0 {
			return nil, ErrZeroLiteral
		}
		if seen[Neg(l)] {
			return nil, fmt.Errorf("%w: variable %d", ErrInconsistentSet, Var(l))
		}
		if seen[l] {
			continue
		}
		seen[l] = true
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return Var(out[i]) < Var(out[j]) })
	return out, nil
}

// Satisfies reports whether assignment satisfies clause c (OR-semantics):
// true iff at least one literal evaluates true. Variables missing from
// assignment default to false, matching SymbolicBasis.Evaluate.
func (c Clause) Satisfies(assignment map[Variable]bool) bool {
	for _, l := range c {
		if evalLiteral(l, assignment) {
			return true
		}
	}
	return false
}

// Satisfies reports whether assignment satisfies cube k (AND-semantics):
// true iff every literal evaluates true.
func (k Cube) Satisfies(assignment map[Variable]bool) bool {
	for _, l := range k {
		if !evalLiteral(l, assignment) {
			return false
		}
	}
	return true
}

// Blocks reports whether cube k forces clause c false, i.e. k ⇒ ¬c: for
// every literal in c, its negation is present in k. This is the
// conflict test SymbolicBasis.AddCube uses to purge incompatible
// clauses.
func (k Cube) Blocks(c Clause) bool {
	present := make(map[Literal]bool, len(k))
	for _, l := range k {
		present[l] = true
	}
	for _, cl := range c {
		if !present[Neg(cl)] {
			return false
		}
	}
	return true
}

// AsAssumptions renders a cube as a flat literal slice suitable for an
// assumption-based SAT query (they are the same representation; this
// exists to make call sites self-documenting).
func (k Cube) AsAssumptions() []Literal {
	out := make([]Literal, len(k))
	copy(out, k)
	return out
}

func evalLiteral(l Literal, assignment map[Variable]bool) bool {
	v := assignment[Var(l)] // missing => false
	if l < 0 {
		return !v
	}
	return v
}

// CubeFromAssignment builds a cube asserting exactly the given
// variables' current values in assignment, in ascending variable order.
// Used by the repairer to synthesize the "current X, Y_<y values" cube
// identifying one failing evaluation point.
func CubeFromAssignment(vars []Variable, assignment map[Variable]bool) Cube {
	k := make(Cube, 0, len(vars))
	for _, v := range vars {
		if assignment[v] {
			k = append(k, v)
		} else {
			k = append(k, -v)
		}
	}
	return k
}
