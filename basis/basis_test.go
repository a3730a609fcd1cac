package basis_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/skolemize/basis"
	"github.com/katalvlaran/skolemize/literal"
)

func TestSymbolicBasis_EmptyIsFalse(t *testing.T) {
	b := basis.New("F")
	assert.True(t, b.Empty())
	assert.False(t, b.Evaluate(map[literal.Variable]bool{1: true}))
}

func TestAddCube_PurgesConflictingClause(t *testing.T) {
	// clause {-1,-2} is falsified by any assignment satisfying {1,2}.
	b := basis.New("F")
	require.NoError(t, b.AddClause([]literal.Literal{-1, -2}))
	require.NoError(t, b.AddCube([]literal.Literal{1, 2}))

	assert.Empty(t, b.Clauses)
	require.Len(t, b.Cubes, 1)
	assert.Equal(t, literal.Cube{1, 2}, b.Cubes[0])
}

func TestAddCube_KeepsNonConflictingClause(t *testing.T) {
	b := basis.New("F")
	require.NoError(t, b.AddClause([]literal.Literal{-1, 3})) // not blocked by {1,2}
	require.NoError(t, b.AddCube([]literal.Literal{1, 2}))
	assert.Len(t, b.Clauses, 1)
}

func TestAddCube_InconsistentRejected(t *testing.T) {
	b := basis.New("F")
	err := b.AddCube([]literal.Literal{1, -1})
	assert.ErrorIs(t, err, literal.ErrInconsistentSet)
}

func TestEvaluate_DNFThenCNF(t *testing.T) {
	b := basis.New("F")
	require.NoError(t, b.AddCube([]literal.Literal{1, 2}))
	require.NoError(t, b.AddClause([]literal.Literal{1, 3}))

	// Satisfies the cube and the clause (var 3 absent/false, but lit 1 is true).
	assert.True(t, b.Evaluate(map[literal.Variable]bool{1: true, 2: true}))

	// Cube unsatisfied entirely.
	assert.False(t, b.Evaluate(map[literal.Variable]bool{1: true, 2: false}))
}

func TestEvaluate_ClauseBlocksEvenIfCubeSatisfied(t *testing.T) {
	b := basis.New("F")
	require.NoError(t, b.AddCube([]literal.Literal{2}))
	require.NoError(t, b.AddClause([]literal.Literal{1})) // requires var1 true
	assert.False(t, b.Evaluate(map[literal.Variable]bool{2: true, 1: false}))
}

// allAssignments enumerates every 0/1 assignment to vars.
func allAssignments(vars []literal.Variable) []map[literal.Variable]bool {
	if len(vars) == 0 {
		return []map[literal.Variable]bool{{}}
	}
	rest := allAssignments(vars[1:])
	var out []map[literal.Variable]bool
	for _, v := range []bool{false, true} {
		for _, r := range rest {
			m := map[literal.Variable]bool{vars[0]: v}
			for k, val := range r {
				m[k] = val
			}
			out = append(out, m)
		}
	}
	return out
}

// satCNF checks a full assignment (over all referenced vars) against a
// clause set, including fresh Tseitin auxiliaries.
func satCNF(clauses []literal.Clause, assignment map[literal.Variable]bool) bool {
	for _, c := range clauses {
		if !c.Satisfies(assignment) {
			return false
		}
	}
	return true
}

func TestToCNF_TseitinFaithfulness(t *testing.T) {
	// The projection of any satisfying extension onto the base variables
	// must yield out = F(assignment).
	b := basis.New("F")
	require.NoError(t, b.AddCube([]literal.Literal{1, 2}))
	require.NoError(t, b.AddCube([]literal.Literal{-3}))
	require.NoError(t, b.AddClause([]literal.Literal{1, 3}))

	clauses, _, out := b.ToCNF(10)
	baseVars := []literal.Variable{1, 2, 3}
	fresh := freshVarsOf(clauses, baseVars)

	for _, base := range allAssignments(baseVars) {
		want := b.Evaluate(base)
		sawSatisfyingExtension := false
		for _, ext := range allAssignments(fresh) {
			full := merge(base, ext)
			if !satCNF(clauses, full) {
				continue
			}
			sawSatisfyingExtension = true
			assert.Equal(t, want, literal.Clause{out}.Satisfies(full),
				"base=%v: satisfying extension disagrees with F", base)
		}
		// The encoding is total: every base assignment to the original
		// variables extends to at least one satisfying assignment of the
		// auxiliaries (out is simply fixed to F(base)).
		assert.True(t, sawSatisfyingExtension, "base=%v: no satisfying extension found", base)
	}
}

// freshVarsOf collects every variable referenced by clauses that is not
// already in base.
func freshVarsOf(clauses []literal.Clause, base []literal.Variable) []literal.Variable {
	baseSet := map[literal.Variable]bool{}
	for _, v := range base {
		baseSet[v] = true
	}
	seen := map[literal.Variable]bool{}
	var out []literal.Variable
	for _, c := range clauses {
		for _, l := range c {
			v := literal.Var(l)
			if baseSet[v] || seen[v] {
				continue
			}
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

func merge(maps ...map[literal.Variable]bool) map[literal.Variable]bool {
	out := map[literal.Variable]bool{}
	for _, m := range maps {
		for k, v := range m {
			out[k] = v
		}
	}
	return out
}

func TestGetCNFConstraints_BindsCallerLiteral(t *testing.T) {
	b := basis.New("F")
	require.NoError(t, b.AddCube([]literal.Literal{1}))
	clauses, next := b.GetCNFConstraints(50, 100)
	assert.Greater(t, next, 100)
	assert.NotEmpty(t, clauses)
	for _, c := range clauses {
		for _, l := range c {
			assert.NotEqual(t, 0, l)
		}
	}
}
