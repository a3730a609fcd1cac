// Package repairer implements the Repairer: given a counterexample from
// the Verifier, it localizes blame on the earliest mismatching output in
// synthesis order and applies an expand (add_cube) or shrink
// (add_clause) repair action to that output's candidate.
//
// Localization. A blamed matrix clause is wholly falsified under the
// counterexample; for every output y appearing in that clause (after
// the y ↦ g_y substitution — see package verifier), the value that
// would have satisfied the clause is exactly ¬g_y (flipping the single
// literal the clause blames). The repair target is the earliest such y
// in synthesis order.
//
// Repair policy:
//   - g_y=0, y*=1 (Must-1 too small): add_cube(K) to A_y.
//   - g_y=1, y*=0 (Must-0 too small): first add_cube(K) to C_y; if a
//     later iteration fails again at the same (X, Y_<y) point, escalate
//     to add_clause(¬K) on A_y instead. This requires remembering, across
//     iterations, which points have already been given the opposing-cube
//     treatment — the Repairer is therefore stateful even though the
//     Verifier is rebuilt fresh every iteration.
package repairer

import (
	"errors"
	"strconv"
	"strings"

	"github.com/katalvlaran/skolemize/learner"
	"github.com/katalvlaran/skolemize/literal"
	"github.com/katalvlaran/skolemize/verifier"
)

// ErrNoRepairTarget is returned when a counterexample's blame clauses
// reference no output variable in order — an internal invariant
// violation, since every matrix clause touching no existential at all
// could never be falsified by a candidate swap.
var ErrNoRepairTarget = errors.New("repairer: counterexample names no output in synthesis order")

// pointKey identifies one (X, Y_<y) evaluation point for escalation
// bookkeeping: the repair target y, plus the feature values it was
// repaired under.
type pointKey struct {
	y      literal.Variable
	prefix string
}

// Repairer applies the expand/shrink policy across many iterations,
// remembering which points have already received the first-pass
// opposing-cube treatment so a repeat failure at the same point
// escalates to a clause instead of looping forever on the same cube.
type Repairer struct {
	Order     []literal.Variable
	InputVars []literal.Variable
	Matrix    []literal.Clause
	outputSet map[literal.Variable]bool
	triedOnce map[pointKey]bool
}

// New constructs a Repairer over the fixed synthesis order, input
// (universal) variables, and original matrix (used only to determine
// which outputs a blamed clause references — the matrix itself is never
// re-solved here).
func New(order, inputVars []literal.Variable, matrix []literal.Clause) *Repairer {
	outputSet := make(map[literal.Variable]bool, len(order))
	for _, y := range order {
		outputSet[y] = true
	}
	return &Repairer{
		Order:     order,
		InputVars: inputVars,
		Matrix:    matrix,
		outputSet: outputSet,
		triedOnce: make(map[pointKey]bool),
	}
}

// Repair localizes blame in cex and mutates the offending candidate in
// place (expand or shrink, per the policy above), returning the
// repaired y so the caller can log which output changed.
func (r *Repairer) Repair(candidates map[literal.Variable]*learner.Candidate, cex *verifier.CounterExample) (literal.Variable, error) {
	blamedVars := r.blamedOutputVars(cex)

	for _, y := range r.Order {
		if !blamedVars[y] {
			continue
		}
		// Every y referenced by a blamed clause has y* = ¬g_y by
		// construction (the clause is wholly falsified, so flipping any
		// one of its literals' controlling signal would satisfy it); the
		// earliest such y in order is the repair target.
		actual := cex.GValues[y]
		desired := !actual

		featureVars := prefixVars(r.InputVars, r.Order, y)
		point := literal.CubeFromAssignment(featureVars, mergedAssignment(cex, featureVars))
		key := pointKey{y: y, prefix: cubeKey(point)}

		cand := candidates[y]
		if err := r.apply(cand, key, desired, point); err != nil {
			return y, err
		}
		return y, nil
	}

	return 0, ErrNoRepairTarget
}

// apply performs the expand/shrink action for one repair target.
func (r *Repairer) apply(cand *learner.Candidate, key pointKey, desired bool, point literal.Cube) error {
	if desired {
		// g_y=0, y*=1: Must-1 side too small. Always expand A_y.
		return cand.A.AddCube([]literal.Literal(point))
	}

	// g_y=1, y*=0: Must-0 side too small.
	if !r.triedOnce[key] {
		r.triedOnce[key] = true
		return cand.C.AddCube([]literal.Literal(point))
	}
	// Escalate: block the offending point directly on A_y.
	negated := make([]literal.Literal, len(point))
	for i, l := range point {
		negated[i] = -l
	}
	return cand.A.AddClause(negated)
}

// blamedOutputVars collects every output variable referenced by any
// clause in cex.BlameClauses.
func (r *Repairer) blamedOutputVars(cex *verifier.CounterExample) map[literal.Variable]bool {
	out := make(map[literal.Variable]bool)
	for _, idx := range cex.BlameClauses {
		if idx < 0 || idx >= len(r.Matrix) {
			continue
		}
		for _, l := range r.Matrix[idx] {
			if v := literal.Var(l); r.outputSet[v] {
				out[v] = true
			}
		}
	}
	return out
}

// prefixVars returns inputVars ++ the outputs strictly before y in
// order — the same feature pool the learner used for y.
func prefixVars(inputVars, order []literal.Variable, y literal.Variable) []literal.Variable {
	out := make([]literal.Variable, 0, len(inputVars)+len(order))
	out = append(out, inputVars...)
	for _, o := range order {
		if o == y {
			break
		}
		out = append(out, o)
	}
	return out
}

// mergedAssignment builds the combined X ∪ g-projected-Y assignment a
// counterexample carries, keyed by plain variable id (not g_y), so
// CubeFromAssignment can read off each feature's current value.
func mergedAssignment(cex *verifier.CounterExample, vars []literal.Variable) map[literal.Variable]bool {
	out := make(map[literal.Variable]bool, len(vars))
	for _, v := range vars {
		if val, ok := cex.X[v]; ok {
			out[v] = val
			continue
		}
		out[v] = cex.GValues[v]
	}
	return out
}

func cubeKey(k literal.Cube) string {
	var sb strings.Builder
	for _, l := range k {
		sb.WriteString(strconv.Itoa(l))
		sb.WriteByte(',')
	}
	return sb.String()
}
