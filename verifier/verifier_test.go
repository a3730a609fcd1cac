package verifier_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/skolemize/basis"
	"github.com/katalvlaran/skolemize/learner"
	"github.com/katalvlaran/skolemize/literal"
	"github.com/katalvlaran/skolemize/qdimacs"
	"github.com/katalvlaran/skolemize/verifier"
)

// trivialSpec is the trivial ∀x1∃y2.(x1 ∨ ¬y2): p cnf 2 1 / a1 / e2 / 1 -2 0.
func trivialSpec(t *testing.T) *qdimacs.Spec {
	t.Helper()
	spec, err := qdimacs.Parse(strings.NewReader("p cnf 2 1\na 1 0\ne 2 0\n1 -2 0\n"))
	require.NoError(t, err)
	return spec
}

// memSolver is a brute-force Solver over a fixed variable universe; it
// tries every assignment in ascending order, standing in for the
// internal SAT backend without depending on it.
type memSolver struct {
	clauses []literal.Clause
	numVars int
	model   []literal.Literal
}

func (m *memSolver) AddClauses(clauses []literal.Clause) error {
	m.clauses = append(m.clauses, clauses...)
	for _, c := range clauses {
		for _, l := range c {
			if v := literal.Var(l); v > m.numVars {
				m.numVars = v
			}
		}
	}
	return nil
}

func (m *memSolver) Solve() (bool, error) {
	n := m.numVars
	for mask := 0; mask < (1 << uint(n)); mask++ {
		assignment := make(map[literal.Variable]bool, n)
		for v := 1; v <= n; v++ {
			assignment[v] = mask&(1<<uint(v-1)) != 0
		}
		if m.satisfiesAll(assignment) {
			model := make([]literal.Literal, 0, n)
			for v := 1; v <= n; v++ {
				if assignment[v] {
					model = append(model, v)
				} else {
					model = append(model, -v)
				}
			}
			m.model = model
			return true, nil
		}
	}
	return false, nil
}

func (m *memSolver) satisfiesAll(assignment map[literal.Variable]bool) bool {
	for _, c := range m.clauses {
		if !literal.Clause(c).Satisfies(assignment) {
			return false
		}
	}
	return true
}

func (m *memSolver) GetModel() []literal.Literal { return m.model }

// correctCandidates reproduces what BasisLearner produces for the
// trivial existential from the samples of
// TestGenerateSamples_TrivialExistential: A_2 empty (no Must-1 evidence
// was ever observed), C_2={-1}. Under
// g_y ↔ a_y ∧ ¬c_y, a_2 is constant-false (A_2 empty), so g_2 is
// constant-false — which happens to satisfy (1 ∨ ¬2) for every x1.
func correctCandidates() map[literal.Variable]*learner.Candidate {
	c := basis.New("C_2")
	_ = c.AddCube([]literal.Literal{-1})
	return map[literal.Variable]*learner.Candidate{
		2: {A: basis.New("A_2"), C: c},
	}
}

// wrongCandidates forces g_2 constant-true (A_2 holds the tautological
// empty cube, so a_2 is constant-true; C_2 stays empty, so c_2 is
// constant-false): g_2 = true ∧ ¬false = true for every x1, which
// violates (1 ∨ ¬2) whenever x1 = false.
func wrongCandidates() map[literal.Variable]*learner.Candidate {
	a := basis.New("A_2")
	_ = a.AddCube(nil) // empty cube => A always true => g_2 = true ∧ ¬false = true
	return map[literal.Variable]*learner.Candidate{
		2: {A: a, C: basis.New("C_2")},
	}
}

func TestVerify_CorrectCandidatesAreSafe(t *testing.T) {
	spec := trivialSpec(t)
	gVars := map[literal.Variable]literal.Variable{2: spec.NextFreeVar()}
	v, err := verifier.New(spec, []literal.Variable{2}, gVars)
	require.NoError(t, err)

	safe, cex, err := v.Verify(correctCandidates(), &memSolver{})
	require.NoError(t, err)
	assert.True(t, safe)
	assert.Nil(t, cex)
}

func TestVerify_WrongCandidatesYieldCounterExample(t *testing.T) {
	spec := trivialSpec(t)
	gVars := map[literal.Variable]literal.Variable{2: spec.NextFreeVar()}
	v, err := verifier.New(spec, []literal.Variable{2}, gVars)
	require.NoError(t, err)

	safe, cex, err := v.Verify(wrongCandidates(), &memSolver{})
	require.NoError(t, err)
	assert.False(t, safe)
	require.NotNil(t, cex)
	assert.False(t, cex.X[1], "the only violating assignment has x1=false")
	assert.True(t, cex.GValues[2], "the broken candidate always outputs g_2=true")
	require.NotEmpty(t, cex.BlameClauses)
	assert.Equal(t, 0, cex.BlameClauses[0])
}

func TestNew_NilSpec(t *testing.T) {
	_, err := verifier.New(nil, nil, nil)
	assert.ErrorIs(t, err, verifier.ErrSpecNil)
}
