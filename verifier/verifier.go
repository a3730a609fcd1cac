// Package verifier implements the Verifier: given the current candidate
// map and one auxiliary g_y per output, it builds a single combined SAT
// instance and either confirms the candidates form a valid Skolem basis
// ("safe") or extracts a counterexample.
//
// Construction:
//
//  1. The y ↦ g_y substitution: every output variable y in the matrix
//     and in the candidates' own features (which may reference earlier
//     outputs Y_<y) is replaced by its auxiliary g_y, so both agree on
//     which signal represents "the value actually produced for y". The
//     substituted matrix itself is not asserted; only its negation (3).
//  2. For each y: a_y ↔ A_y(X, g_{Y_<y}), c_y ↔ C_y(X, g_{Y_<y}) via
//     Tseitin, then g_y ↔ a_y ∧ ¬c_y.
//  3. The negation of the substituted matrix, encoded as "some clause
//     is wholly falsified": one blame_k auxiliary per original clause,
//     blame_k ↔ AND(¬l for l in clause_k after substitution), and the
//     assertion OR(blame_1, …, blame_m).
//
// SAT on (1)-(3) together means some universal assignment breaks the
// current candidates; UNSAT means they are a valid Skolem basis.
package verifier

import (
	"errors"

	"github.com/katalvlaran/skolemize/basis"
	"github.com/katalvlaran/skolemize/learner"
	"github.com/katalvlaran/skolemize/literal"
	"github.com/katalvlaran/skolemize/qdimacs"
)

// ErrSpecNil is returned when New is called with a nil Spec.
var ErrSpecNil = errors.New("verifier: spec is nil")

// Solver is a one-shot, non-incremental CNF SAT solve — the same shape
// as sampler.Generator (AddClauses/Solve/GetModel), reused here since
// the Verifier needs exactly that capability: load a clause set, solve
// it, read back a model. The sampler/oracle collaborators are treated
// as capability sets rather than concrete types, so the Verifier is
// free to reuse the identical shape for its own SAT need.
type Solver interface {
	AddClauses(clauses []literal.Clause) error
	Solve() (bool, error)
	GetModel() []literal.Literal
}

// CounterExample carries everything the Repairer needs to localize and
// repair a failing candidate set.
type CounterExample struct {
	// X is the violating universal assignment.
	X map[literal.Variable]bool
	// GValues holds, for every output y (in Order), the g_y value the
	// candidates actually produced under X.
	GValues map[literal.Variable]bool
	// BlameClauses holds the index (into Spec.Matrix) of every clause
	// that is wholly falsified by this assignment (after y ↦ g_y
	// substitution); any nonempty subset is an acceptable choice of blame.
	BlameClauses []int
}

// Verifier builds and solves the combined verification instance for a
// fixed Spec/Order/GVars triple across many candidate iterations — the
// candidates themselves are rebuilt fresh each call, and the Verifier
// carries no state across iterations beyond this fixed triple.
type Verifier struct {
	Spec  *qdimacs.Spec
	Order []literal.Variable
	GVars map[literal.Variable]literal.Variable // y -> g_y
}

// New constructs a Verifier. gVars must contain one fresh variable per
// entry in order; the driver allocates these once and reuses them
// across every iteration.
func New(spec *qdimacs.Spec, order []literal.Variable, gVars map[literal.Variable]literal.Variable) (*Verifier, error) {
	if spec == nil {
		return nil, ErrSpecNil
	}
	return &Verifier{Spec: spec, Order: order, GVars: gVars}, nil
}

// Verify builds the combined instance for the given candidates, solves
// it with solver, and reports (true, nil, nil) if safe, or (false, cex,
// nil) with an extracted counterexample otherwise.
func (v *Verifier) Verify(candidates map[literal.Variable]*learner.Candidate, solver Solver) (bool, *CounterExample, error) {
	clauses, fresh := v.buildInstance(candidates)

	if err := solver.AddClauses(clauses); err != nil {
		return false, nil, err
	}
	sat, err := solver.Solve()
	if err != nil {
		return false, nil, err
	}
	if !sat {
		return true, nil, nil
	}

	model := solver.GetModel()
	_ = fresh
	cex := v.extractCounterExample(model)
	return false, cex, nil
}

// substituteLits rewrites a literal slice, replacing every output
// variable y with its g_y (sign-preserving), leaving every other
// variable untouched. Used both for matrix clauses and for a
// candidate's own cube/clause literals: a tree split on an earlier
// output y_j is a feature over that output's *produced* value, which in
// the combined instance is g_j, never the bare y_j (which never
// appears anywhere in the instance once substituted).
func (v *Verifier) substituteLits(lits []literal.Literal) []literal.Literal {
	out := make([]literal.Literal, len(lits))
	for i, l := range lits {
		vr := literal.Var(l)
		if g, ok := v.GVars[vr]; ok {
			if l < 0 {
				out[i] = -g
			} else {
				out[i] = g
			}
			continue
		}
		out[i] = l
	}
	return out
}

// substitute rewrites a clause, replacing every output variable y with
// its g_y (sign-preserving), leaving every other variable untouched.
func (v *Verifier) substitute(c literal.Clause) literal.Clause {
	return literal.Clause(v.substituteLits([]literal.Literal(c)))
}

// substituteBasis returns a copy of b with every cube/clause literal
// rewritten y ↦ g_y, so GetCNFConstraints wires a_y/c_y to the g_{Y_<y}
// signals the rest of the instance actually constrains, instead of to
// the free, unconstrained raw output variables the learner's cubes were
// originally expressed over.
func (v *Verifier) substituteBasis(b *basis.SymbolicBasis) *basis.SymbolicBasis {
	out := &basis.SymbolicBasis{Name: b.Name}
	for _, k := range b.Cubes {
		out.Cubes = append(out.Cubes, literal.Cube(v.substituteLits([]literal.Literal(k))))
	}
	for _, c := range b.Clauses {
		out.Clauses = append(out.Clauses, literal.Clause(v.substituteLits([]literal.Literal(c))))
	}
	return out
}

// buildInstance assembles the clauses described in the package doc.
func (v *Verifier) buildInstance(candidates map[literal.Variable]*learner.Candidate) ([]literal.Clause, literal.Variable) {
	fc := literal.NewFreshCounter(v.Spec.NextFreeVar())
	// Reserve the g_y ids already allocated by the driver: bump the
	// counter clear of them so Tseitin auxiliaries never collide.
	for _, g := range v.GVars {
		if g >= fc.Peek() {
			fc = literal.NewFreshCounter(g + 1)
		}
	}

	var clauses []literal.Clause

	for _, y := range v.Order {
		cand := candidates[y]
		g := v.GVars[y]

		aOut := fc.Next()
		aClauses, next := v.substituteBasis(cand.A).GetCNFConstraints(aOut, fc.Peek())
		fc = literal.NewFreshCounter(next)
		clauses = append(clauses, aClauses...)

		cOut := fc.Next()
		cClauses, next2 := v.substituteBasis(cand.C).GetCNFConstraints(cOut, fc.Peek())
		fc = literal.NewFreshCounter(next2)
		clauses = append(clauses, cClauses...)

		// g_y <-> a_y AND NOT c_y
		clauses = append(clauses, literal.EncodeAND(g, []literal.Literal{aOut, -cOut})...)
	}

	// Negation of the substituted matrix: OR over clauses of "clause k
	// wholly falsified".
	var blameLits []literal.Literal
	for _, c := range v.Spec.Matrix {
		sc := v.substitute(c)
		blame := fc.Next()
		negs := make([]literal.Literal, len(sc))
		for i, l := range sc {
			negs[i] = -l
		}
		clauses = append(clauses, literal.EncodeAND(blame, negs)...)
		blameLits = append(blameLits, blame)
	}
	if len(blameLits) > 0 {
		clauses = append(clauses, literal.Clause(blameLits))
	} else {
		// An empty matrix is vacuously valid for all X; there is nothing
		// to falsify, so force UNSAT on this branch.
		unsat := fc.Next()
		clauses = append(clauses, literal.Clause{unsat}, literal.Clause{-unsat})
	}

	return clauses, fc.Peek()
}

// extractCounterExample projects a satisfying model of the combined
// instance down to X, the per-y g_y values, and which original matrix
// clauses are wholly falsified under the (substituted) assignment.
func (v *Verifier) extractCounterExample(model []literal.Literal) *CounterExample {
	assignment := make(map[literal.Variable]bool, len(model))
	for _, l := range model {
		assignment[literal.Var(l)] = l > 0
	}

	cex := &CounterExample{
		X:       make(map[literal.Variable]bool, len(v.Spec.Universals)),
		GValues: make(map[literal.Variable]bool, len(v.Order)),
	}
	for x := range v.Spec.Universals {
		cex.X[x] = assignment[x]
	}
	for _, y := range v.Order {
		cex.GValues[y] = assignment[v.GVars[y]]
	}

	for idx, c := range v.Spec.Matrix {
		sc := v.substitute(c)
		if !sc.Satisfies(assignment) {
			cex.BlameClauses = append(cex.BlameClauses, idx)
		}
	}
	return cex
}
