package satstub

import "github.com/katalvlaran/skolemize/literal"

// Generator is a sampler.Generator backed by the package's DPLL solver.
// Each GetModel call blocks the model it returns (adds its negation as
// a clause) before the next Solve call, so a loop of Solve/GetModel
// calls enumerates distinct models until the (now
// further-constrained) instance is exhausted, at which point Solve
// returns false and sampling halts.
type Generator struct {
	clauses []literal.Clause
	numVars int
	model   []literal.Literal
}

// NewGenerator returns an empty Generator; load its instance via
// AddClauses before the first Solve.
func NewGenerator() *Generator {
	return &Generator{}
}

// AddClauses loads additional clauses into the generator's instance.
func (g *Generator) AddClauses(clauses []literal.Clause) error {
	g.clauses = append(g.clauses, clauses...)
	if v := maxVar(clauses); v > g.numVars {
		g.numVars = v
	}
	return nil
}

// Solve finds a model distinct from every previously-returned one.
func (g *Generator) Solve() (bool, error) {
	ok, model := solve(g.clauses, g.numVars)
	if !ok {
		g.model = nil
		return false, nil
	}
	g.model = model
	return true, nil
}

// GetModel returns the most recent model and blocks it so the next
// Solve call must find a different one.
func (g *Generator) GetModel() []literal.Literal {
	model := make([]literal.Literal, len(g.model))
	copy(model, g.model)

	blocker := make(literal.Clause, len(g.model))
	for i, l := range g.model {
		blocker[i] = -l
	}
	g.clauses = append(g.clauses, blocker)

	return model
}

// Oracle is a sampler.Oracle backed by the package's DPLL solver. Each
// Solve call re-solves the fixed base CNF plus the given assumption
// literals (added as unit clauses); the base instance itself is never
// mutated between calls.
type Oracle struct {
	base    []literal.Clause
	numVars int
}

// NewOracle returns an Oracle fixed to base (typically the spec's
// matrix).
func NewOracle(base []literal.Clause) *Oracle {
	numVars := maxVar(base)
	b := make([]literal.Clause, len(base))
	copy(b, base)
	return &Oracle{base: b, numVars: numVars}
}

// Solve reports whether base ∪ {unit(l) : l ∈ assumptions} is
// satisfiable.
func (o *Oracle) Solve(assumptions []literal.Literal) (bool, error) {
	clauses := make([]literal.Clause, 0, len(o.base)+len(assumptions))
	clauses = append(clauses, o.base...)
	numVars := o.numVars
	for _, l := range assumptions {
		clauses = append(clauses, literal.Clause{l})
		if v := literal.Var(l); v > numVars {
			numVars = v
		}
	}
	ok, _ := solve(clauses, numVars)
	return ok, nil
}
