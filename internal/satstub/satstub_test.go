package satstub

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/skolemize/literal"
)

func modelAsMap(model []literal.Literal) map[literal.Variable]bool {
	m := make(map[literal.Variable]bool, len(model))
	for _, l := range model {
		m[literal.Var(l)] = l > 0
	}
	return m
}

func TestSolve_TrivialExistential(t *testing.T) {
	ok, model := solve([]literal.Clause{{1, -2}}, 2)
	require.True(t, ok)
	assignment := modelAsMap(model)
	assert.True(t, literal.Clause{1, -2}.Satisfies(assignment))
}

func TestSolve_UnsatisfiableIsDetected(t *testing.T) {
	ok, _ := solve([]literal.Clause{{1}, {-1}}, 1)
	assert.False(t, ok)
}

func TestSolve_EmptyClauseIsUnsat(t *testing.T) {
	ok, _ := solve([]literal.Clause{{}}, 1)
	assert.False(t, ok)
}

func TestSolve_NoClausesIsTriviallySat(t *testing.T) {
	ok, model := solve(nil, 3)
	require.True(t, ok)
	assert.Len(t, model, 3)
}

func TestGenerator_EnumeratesDistinctModelsThenExhausts(t *testing.T) {
	g := NewGenerator()
	require.NoError(t, g.AddClauses([]literal.Clause{{1, -2}}))

	// (1 ∨ ¬2) has exactly 3 models over {1,2}: (1,0) (1,1) (0,0).
	seen := map[string]bool{}
	for i := 0; i < 3; i++ {
		ok, err := g.Solve()
		require.NoError(t, err)
		require.True(t, ok, "expected a model on attempt %d", i+1)
		model := g.GetModel()
		assignment := modelAsMap(model)
		assert.True(t, literal.Clause{1, -2}.Satisfies(assignment))
		key := assignmentKey(assignment)
		assert.False(t, seen[key], "model %v repeated", assignment)
		seen[key] = true
	}

	ok, err := g.Solve()
	require.NoError(t, err)
	assert.False(t, ok, "the 4th call should exhaust all 3 models")
}

func assignmentKey(m map[literal.Variable]bool) string {
	return string([]byte{boolByte(m[1]), boolByte(m[2])})
}

func boolByte(b bool) byte {
	if b {
		return '1'
	}
	return '0'
}

func TestOracle_AssumptionQueries(t *testing.T) {
	o := NewOracle([]literal.Clause{{1, -2}})

	sat, err := o.Solve([]literal.Literal{-1, 2}) // x1=0, y2=1 violates the clause
	require.NoError(t, err)
	assert.False(t, sat)

	sat, err = o.Solve([]literal.Literal{-1, -2}) // x1=0, y2=0 satisfies it
	require.NoError(t, err)
	assert.True(t, sat)
}

func TestOracle_BaseInstanceIsNotMutatedAcrossCalls(t *testing.T) {
	o := NewOracle([]literal.Clause{{1, -2}})
	_, _ = o.Solve([]literal.Literal{1})
	sat, err := o.Solve([]literal.Literal{-1, -2})
	require.NoError(t, err)
	assert.True(t, sat, "an earlier assumption-only query must not persist")
}
