package literal_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/katalvlaran/skolemize/literal"
)

func TestNormalize_DedupAndSort(t *testing.T) {
	out, err := literal.Normalize([]literal.Literal{3, -1, 3, 2})
	assert.NoError(t, err)
	assert.Equal(t, []literal.Literal{-1, 2, 3}, out)
}

func TestNormalize_ZeroLiteral(t *testing.T) {
	_, err := literal.Normalize([]literal.Literal{0, 1})
	assert.ErrorIs(t, err, literal.ErrZeroLiteral)
}

func TestNormalize_Inconsistent(t *testing.T) {
	_, err := literal.Normalize([]literal.Literal{1, -1})
	assert.ErrorIs(t, err, literal.ErrInconsistentSet)
}

func TestClauseSatisfies_MissingVarDefaultsFalse(t *testing.T) {
	c := literal.Clause{-5}
	assert.True(t, c.Satisfies(map[literal.Variable]bool{}))

	c2 := literal.Clause{5}
	assert.False(t, c2.Satisfies(map[literal.Variable]bool{}))
}

func TestCubeSatisfies(t *testing.T) {
	k := literal.Cube{1, -2}
	assert.True(t, k.Satisfies(map[literal.Variable]bool{1: true, 2: false}))
	assert.False(t, k.Satisfies(map[literal.Variable]bool{1: true, 2: true}))
}

func TestCubeBlocks(t *testing.T) {
	// K = {1, 2} blocks clause {-1, -2} since both negations are in K.
	k := literal.Cube{1, 2}
	assert.True(t, k.Blocks(literal.Clause{-1, -2}))
	// K = {1} does not block {-1, -2}: literal -2's negation (2) is absent.
	assert.False(t, literal.Cube{1}.Blocks(literal.Clause{-1, -2}))
}

func TestCubeFromAssignment(t *testing.T) {
	k := literal.CubeFromAssignment([]literal.Variable{1, 2, 3}, map[literal.Variable]bool{1: true, 2: false, 3: true})
	assert.Equal(t, literal.Cube{1, -2, 3}, k)
}

func TestEncodeAND_Empty(t *testing.T) {
	cs := literal.EncodeAND(10, nil)
	assert.Equal(t, []literal.Clause{{10}}, cs)
}

func TestEncodeOR_Empty(t *testing.T) {
	cs := literal.EncodeOR(10, nil)
	assert.Equal(t, []literal.Clause{{-10}}, cs)
}

func TestFreshCounter(t *testing.T) {
	fc := literal.NewFreshCounter(100)
	assert.Equal(t, 100, fc.Peek())
	assert.Equal(t, 100, fc.Next())
	assert.Equal(t, 101, fc.Next())
	assert.Equal(t, 102, fc.Peek())
}
