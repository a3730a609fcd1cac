// Package basis implements SymbolicBasis, the dual DNF∧CNF container
// used to represent each candidate's Must-1 (A_y) and Must-0 (C_y)
// approximation:
//
//	F = (⋁ cubes) ∧ (⋀ clauses)
//
// The DNF part (cubes) grows F's true-set (expansion); the CNF part
// (clauses) shrinks it (constraint). An empty cubes list means F ≡
// false, regardless of any stored clauses.
//
// Invariants:
//   - After AddCube(K), no stored clause C is wholly negated by K
//     (K ⇒ ¬C holds for none of them); AddCube purges every clause
//     that would violate this. Clauses merely not implied by K are kept.
//   - Stored cubes and clauses are each deduplicated, internally
//     consistent (no v and ¬v together) and non-tautological — enforced
//     by literal.Normalize at insertion time.
package basis

import (
	"fmt"

	"github.com/katalvlaran/skolemize/literal"
)

// SymbolicBasis is a named dual DNF/CNF Boolean function container.
// The zero value is not usable; construct with New.
type SymbolicBasis struct {
	Name    string
	Cubes   []literal.Cube
	Clauses []literal.Clause
}

// New returns an empty SymbolicBasis (≡ false, no constraints) named
// name. name is purely diagnostic (used in String/debug output).
func New(name string) *SymbolicBasis {
	return &SymbolicBasis{Name: name}
}

// AddCube expands F by OR-ing in cube K. It first
// normalizes K (dedup literals, reject inconsistent sets) then purges
// every stored clause C such that K ⇒ ¬C, preserving the invariant that
// all remaining clauses are compatible with every stored cube.
//
// Complexity: O(|clauses|·|C|·|K|).
func (b *SymbolicBasis) AddCube(lits []literal.Literal) error {
	k, err := literal.Normalize(lits)
	if err != nil {
		return fmt.Errorf("basis: AddCube on %s: %w", b.Name, err)
	}

	kept := b.Clauses[:0:0]
	for _, clause := range b.Clauses {
		if literal.Cube(k).Blocks(clause) {
			continue // purge: K => !clause
		}
		kept = append(kept, clause)
	}
	b.Clauses = kept
	b.Cubes = append(b.Cubes, literal.Cube(k))
	return nil
}

// AddClause shrinks F by AND-ing in clause C. Callers (the repairer)
// must uphold the precondition that some existing cube
// falsifies C at the current failing point, or the added clause does
// not actually restrict F.
func (b *SymbolicBasis) AddClause(lits []literal.Literal) error {
	c, err := literal.Normalize(lits)
	if err != nil {
		return fmt.Errorf("basis: AddClause on %s: %w", b.Name, err)
	}
	b.Clauses = append(b.Clauses, literal.Clause(c))
	return nil
}

// Evaluate computes F(assignment): false if no cube is satisfied,
// otherwise the AND of every stored clause. Variables missing from
// assignment default to false.
func (b *SymbolicBasis) Evaluate(assignment map[literal.Variable]bool) bool {
	dnf := false
	for _, k := range b.Cubes {
		if k.Satisfies(assignment) {
			dnf = true
			break
		}
	}
	if !dnf {
		return false
	}
	for _, c := range b.Clauses {
		if !c.Satisfies(assignment) {
			return false
		}
	}
	return true
}

// Empty reports whether F ≡ false, i.e. no cubes have ever been added.
func (b *SymbolicBasis) Empty() bool {
	return len(b.Cubes) == 0
}

// String renders a human-readable fragment for this basis: cube and
// clause counts.
func (b *SymbolicBasis) String() string {
	return fmt.Sprintf("%d cubes, %d clauses", len(b.Cubes), len(b.Clauses))
}
