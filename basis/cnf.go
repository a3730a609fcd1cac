package basis

import "github.com/katalvlaran/skolemize/literal"

// encodeDNF encodes every cube behind a fresh k_i ↔ AND(cube) auxiliary,
// then a fresh d ↔ OR(k_1..k_n), appending all defining clauses to
// *out*. d is forced false when there are no cubes. Shared by ToCNF and
// GetCNFConstraints.
func encodeDNF(cubes []literal.Cube, fc *literal.FreshCounter, out *[]literal.Clause) literal.Literal {
	cubeLits := make([]literal.Literal, 0, len(cubes))
	for _, k := range cubes {
		ki := fc.Next()
		*out = append(*out, literal.EncodeAND(ki, []literal.Literal(k))...)
		cubeLits = append(cubeLits, ki)
	}
	d := fc.Next()
	*out = append(*out, literal.EncodeOR(d, cubeLits)...)
	return d
}

// encodeClauses encodes each stored clause C_j behind a fresh
// q_j ↔ OR(C_j) auxiliary, appending its defining clauses to *out*, and
// returns the q_j literals.
func encodeClauses(stored []literal.Clause, fc *literal.FreshCounter, out *[]literal.Clause) []literal.Literal {
	lits := make([]literal.Literal, 0, len(stored))
	for _, c := range stored {
		qj := fc.Next()
		*out = append(*out, literal.EncodeOR(qj, []literal.Literal(c))...)
		lits = append(lits, qj)
	}
	return lits
}

// ToCNF converts F into pure CNF clauses, allocating fresh variables
// starting at startFresh. It returns the clause set, the next unused
// fresh variable, and the literal that is equivalent to F (out ↔ F).
func (b *SymbolicBasis) ToCNF(startFresh literal.Variable) ([]literal.Clause, literal.Variable, literal.Literal) {
	fc := literal.NewFreshCounter(startFresh)
	var clauses []literal.Clause

	d := encodeDNF(b.Cubes, fc, &clauses)
	clauseLits := encodeClauses(b.Clauses, fc, &clauses)

	final := fc.Next()
	conjuncts := append([]literal.Literal{d}, clauseLits...)
	clauses = append(clauses, literal.EncodeAND(final, conjuncts)...)

	return clauses, fc.Peek(), final
}

// GetCNFConstraints generates clauses enforcing outLit ↔ F(X), mirroring
// ToCNF but binding the equivalence to a caller-supplied literal instead
// of allocating its own. This is the form the Verifier uses to wire a
// candidate's A_y/C_y into the combined verification instance, since
// outLit there is the pre-allocated a_y/c_y variable.
func (b *SymbolicBasis) GetCNFConstraints(outLit literal.Literal, startFresh literal.Variable) ([]literal.Clause, literal.Variable) {
	fc := literal.NewFreshCounter(startFresh)
	var clauses []literal.Clause

	d := encodeDNF(b.Cubes, fc, &clauses)
	clauseLits := encodeClauses(b.Clauses, fc, &clauses)

	conjuncts := append([]literal.Literal{d}, clauseLits...)
	clauses = append(clauses, literal.EncodeAND(outLit, conjuncts)...)

	return clauses, fc.Peek()
}
