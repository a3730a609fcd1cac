package literal

// FreshCounter hands out strictly increasing fresh variable identifiers,
// starting above every variable already in use. It is the single source
// of "the next fresh var" threaded through basis.ToCNF, verifier
// construction, and the combined verification instance, so two
// components never collide on the same fresh id.
type FreshCounter struct {
	next Variable
}

// NewFreshCounter returns a counter whose first Next() is start.
func NewFreshCounter(start Variable) *FreshCounter {
	return &FreshCounter{next: start}
}

// Next returns the next fresh variable and advances the counter.
func (f *FreshCounter) Next() Variable {
	v := f.next
	f.next++
	return v
}

// Peek returns the variable Next() would return, without advancing.
func (f *FreshCounter) Peek() Variable {
	return f.next
}

// EncodeAND emits clauses enforcing out ↔ (l1 ∧ l2 ∧ … ∧ ln):
//
//	¬out ∨ l_i   for each i
//	(¬l1 ∨ ¬l2 ∨ … ∨ ¬ln) ∨ out
//
// An empty conjunct list is the tautology "true": out is forced via a
// unit clause [out].
func EncodeAND(out Literal, lits []Literal) []Clause {
	if len(lits) == 0 {
		return []Clause{{out}}
	}
	clauses := make([]Clause, 0, len(lits)+1)
	for _, l := range lits {
		clauses = append(clauses, Clause{-out, l})
	}
	tail := make(Clause, 0, len(lits)+1)
	for _, l := range lits {
		tail = append(tail, -l)
	}
	tail = append(tail, out)
	clauses = append(clauses, tail)
	return clauses
}

// EncodeOR emits clauses enforcing out ↔ (l1 ∨ l2 ∨ … ∨ ln):
//
//	¬out ∨ l1 ∨ l2 ∨ … ∨ ln
//	¬l_i ∨ out   for each i
//
// An empty disjunct list is the contradiction "false": out is forced
// false via a unit clause [¬out].
func EncodeOR(out Literal, lits []Literal) []Clause {
	if len(lits) == 0 {
		return []Clause{{-out}}
	}
	clauses := make([]Clause, 0, len(lits)+1)
	head := make(Clause, 0, len(lits)+1)
	head = append(head, -out)
	head = append(head, lits...)
	clauses = append(clauses, head)
	for _, l := range lits {
		clauses = append(clauses, Clause{-l, out})
	}
	return clauses
}
