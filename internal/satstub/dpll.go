// Package satstub is an in-memory reference SAT backend: a small DPLL
// solver with unit propagation, exposed as both a sampler.Generator
// (auto-blocking each returned model so repeated Solve calls enumerate
// distinct models) and a sampler.Oracle (assumption-based queries
// against a fixed base CNF). It exists so the rest of the module — and
// its own tests — never depend on an external solver process;
// production deployments are expected to swap in a real incremental
// SAT backend behind the same two interfaces.
package satstub

import (
	"github.com/katalvlaran/skolemize/literal"
)

// unknown/true/false track one variable's current trail assignment.
type value int8

const (
	unknown value = 0
	vTrue   value = 1
	vFalse  value = -1
)

// solve runs DPLL with unit propagation over clauses, addressing
// variables [1, numVars]. It returns (true, model) on success, or
// (false, nil) if the instance is unsatisfiable. Variables left
// unconstrained by the search default to false in the returned model,
// matching the "missing means false" convention used throughout
// package literal.
func solve(clauses []literal.Clause, numVars int) (bool, []literal.Literal) {
	assign := make([]value, numVars+1)
	if !search(clauses, assign, 1, numVars) {
		return false, nil
	}
	return true, modelFromAssign(assign, numVars)
}

// modelFromAssign expands the tri-state trail into the signed-literal
// slice the Solver/Generator/Oracle interfaces require. A variable left
// unknown by the search (never branched on or propagated) defaults to
// false, matching "missing means false".
func modelFromAssign(assign []value, numVars int) []literal.Literal {
	model := make([]literal.Literal, 0, numVars)
	for v := 1; v <= numVars; v++ {
		if assign[v] == vTrue {
			model = append(model, v)
		} else {
			model = append(model, -v)
		}
	}
	return model
}

// search tries to extend assign into a full satisfying assignment,
// propagating units before branching on the next unassigned variable at
// or after from. On success it leaves every binding it made (at this
// level and below) intact in assign; on failure it undoes exactly its
// own bindings before returning, so the caller's assign is unchanged.
func search(clauses []literal.Clause, assign []value, from, numVars int) bool {
	trail, ok := propagate(clauses, assign)
	if !ok {
		return false // propagate already undid its own trail
	}

	switch evalAll(clauses, assign) {
	case satisfied:
		return true
	case conflict:
		undo(assign, trail)
		return false
	}

	next := from
	for next <= numVars && assign[next] != unknown {
		next++
	}
	if next > numVars {
		return true // every variable bound, no conflict left
	}

	for _, v := range [2]value{vTrue, vFalse} {
		assign[next] = v
		if search(clauses, assign, next+1, numVars) {
			return true
		}
		assign[next] = unknown
	}
	undo(assign, trail)
	return false
}

// propagate repeatedly assigns forced units until fixpoint or conflict,
// returning the variables it bound (for undo) and whether it succeeded.
// On conflict it undoes its own trail before returning.
func propagate(clauses []literal.Clause, assign []value) ([]int, bool) {
	var trail []int
	changed := true
	for changed {
		changed = false
		for _, c := range clauses {
			unassignedLit := 0
			satisfiedClause := false
			unassignedCount := 0
			for _, l := range c {
				v := literal.Var(l)
				switch assign[v] {
				case unknown:
					unassignedCount++
					unassignedLit = l
				case vTrue:
					if l > 0 {
						satisfiedClause = true
					}
				case vFalse:
					if l < 0 {
						satisfiedClause = true
					}
				}
				if satisfiedClause {
					break
				}
			}
			if satisfiedClause {
				continue
			}
			if unassignedCount == 0 {
				undo(assign, trail)
				return nil, false // clause wholly falsified
			}
			if unassignedCount == 1 {
				v := literal.Var(unassignedLit)
				if unassignedLit > 0 {
					assign[v] = vTrue
				} else {
					assign[v] = vFalse
				}
				trail = append(trail, v)
				changed = true
			}
		}
	}
	return trail, true
}

func undo(assign []value, trail []int) {
	for _, v := range trail {
		assign[v] = unknown
	}
}

type clauseStatus int

const (
	undetermined clauseStatus = iota
	satisfied
	conflict
)

// evalAll reports whether every clause is already satisfied, some
// clause is already wholly falsified, or neither (some clause still has
// an unassigned literal and is not yet satisfied).
func evalAll(clauses []literal.Clause, assign []value) clauseStatus {
	allSat := true
	for _, c := range clauses {
		satisfiedClause := false
		hasUnknown := false
		for _, l := range c {
			v := literal.Var(l)
			switch assign[v] {
			case vTrue:
				if l > 0 {
					satisfiedClause = true
				}
			case vFalse:
				if l < 0 {
					satisfiedClause = true
				}
			case unknown:
				hasUnknown = true
			}
		}
		if satisfiedClause {
			continue
		}
		if !hasUnknown {
			return conflict
		}
		allSat = false
	}
	if allSat {
		return satisfied
	}
	return undetermined
}

// maxVar returns the largest variable id appearing in clauses.
func maxVar(clauses []literal.Clause) int {
	m := 0
	for _, c := range clauses {
		for _, l := range c {
			if v := literal.Var(l); v > m {
				m = v
			}
		}
	}
	return m
}
