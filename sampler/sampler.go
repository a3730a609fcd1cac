// Package sampler implements OracleSampler, the oracle-sampling and
// labelling component: it produces satisfying assignments via a
// Generator collaborator and classifies each output variable under its
// prefix as Must-1, Must-0, or Don't-Care via an Oracle collaborator.
//
// Errors:
//
//	ErrGeneratorNil / ErrOracleNil - required collaborator missing
package sampler

import (
	"errors"

	"github.com/katalvlaran/skolemize/literal"
)

// ErrGeneratorNil is returned when New is called with a nil Generator.
var ErrGeneratorNil = errors.New("sampler: generator is nil")

// ErrOracleNil is returned when New is called with a nil Oracle.
var ErrOracleNil = errors.New("sampler: oracle is nil")

// Label classifies an output variable's value under a prefix.
type Label int

const (
	// DontCare means both y=0 and y=1 are consistent with the prefix.
	DontCare Label = 0
	// Must1 means the prefix forces y=1 (y=0 is UNSAT under it).
	Must1 Label = 1
	// Must0 means the prefix forces y=0 (y=1 is UNSAT under it).
	Must0 Label = 2
)

// Generator produces satisfying models of a CNF, ideally with
// uniform-ish distribution over the solution space.
type Generator interface {
	// AddClauses loads additional clauses into the generator's instance.
	AddClauses(clauses []literal.Clause) error
	// Solve attempts to produce a (possibly randomized) satisfying model.
	// It returns false if no model could be produced.
	Solve() (bool, error)
	// GetModel returns the most recent model as a signed-literal slice.
	// Valid only after a Solve() that returned true.
	GetModel() []literal.Literal
}

// Oracle is an incremental SAT solver over the matrix, supporting
// repeated assumption-based queries without rebuilding.
type Oracle interface {
	// Solve reports whether the matrix is satisfiable under the given
	// assumption literals.
	Solve(assumptions []literal.Literal) (bool, error)
}

// Progress, if non-nil, is invoked after every sample to report
// generated-vs-target progress, for an every-N-samples progress log.
type Progress func(generated, target int)

// OracleSampler generates labelled training data for the learner by
// combining a Generator (models) with an Oracle (Must-1/Must-0/
// Don't-Care classification under a prefix).
type OracleSampler struct {
	Generator Generator
	Oracle    Oracle

	InputVars  []literal.Variable // X, in any fixed order
	OutputVars []literal.Variable // Y, in synthesis order (orderer.Order)

	OnProgress Progress
}

// New constructs an OracleSampler over the given matrix, loading it
// into generator via AddClauses. inputVars and outputVars are typically
// spec.Universals (as a slice) and orderer.Order's result, respectively.
func New(matrix []literal.Clause, generator Generator, oracle Oracle, inputVars, outputVars []literal.Variable) (*OracleSampler, error) {
	if generator == nil {
		return nil, ErrGeneratorNil
	}
	if oracle == nil {
		return nil, ErrOracleNil
	}
	if len(matrix) > 0 {
		if err := generator.AddClauses(matrix); err != nil {
			return nil, err
		}
	}
	return &OracleSampler{
		Generator:  generator,
		Oracle:     oracle,
		InputVars:  inputVars,
		OutputVars: outputVars,
	}, nil
}

// Sample is one generated satisfying assignment, with all variable
// values the learner may need as features: the generator's model
// restricted to bits, indexed by variable. Retaining the full model
// (rather than only the universal inputs) is required so the learner
// can build Y_<i features from earlier outputs.
type Sample struct {
	Assignment map[literal.Variable]bool
}

// Value returns the 0/1 bit of variable v in this sample (0 if v is
// absent from the model, matching the Generator's convention that an
// absent variable defaults to false/negative).
func (s Sample) Value(v literal.Variable) int {
	if s.Assignment[v] {
		return 1
	}
	return 0
}

// GenerateSamples produces up to n labelled samples. It never returns
// an error for generator exhaustion: if the generator yields no model,
// sampling halts early and whatever was accumulated so far is returned
// (the caller treats a zero-length result as the UNSAT diagnostic).
//
// labels[y] is a slice parallel to samples, one Label per generated
// sample, for each y in OutputVars.
func (s *OracleSampler) GenerateSamples(n int) ([]Sample, map[literal.Variable][]Label) {
	samples := make([]Sample, 0, n)
	labels := make(map[literal.Variable][]Label, len(s.OutputVars))
	for _, y := range s.OutputVars {
		labels[y] = make([]Label, 0, n)
	}

	for generated := 0; generated < n; generated++ {
		found, err := s.Generator.Solve()
		if err != nil || !found {
			break
		}
		model := s.Generator.GetModel()
		sampleMap := modelMap(model)

		sample := Sample{Assignment: make(map[literal.Variable]bool, len(s.InputVars)+len(s.OutputVars))}
		for _, x := range s.InputVars {
			sample.Assignment[x] = literal.IsPositive(signedOrDefaultNegative(sampleMap, x))
		}
		for _, y := range s.OutputVars {
			sample.Assignment[y] = literal.IsPositive(signedOrDefaultNegative(sampleMap, y))
		}
		samples = append(samples, sample)

		prefix := make([]literal.Literal, 0, len(s.InputVars)+len(s.OutputVars))
		for _, x := range s.InputVars {
			prefix = append(prefix, signedOrDefaultNegative(sampleMap, x))
		}

		for i, y := range s.OutputVars {
			yPrefix := make([]literal.Literal, len(prefix), len(prefix)+i)
			copy(yPrefix, prefix)
			for _, prevY := range s.OutputVars[:i] {
				yPrefix = append(yPrefix, signedOrDefaultNegative(sampleMap, prevY))
			}

			label := s.classify(yPrefix, y)
			labels[y] = append(labels[y], label)
		}

		if s.OnProgress != nil {
			s.OnProgress(generated+1, n)
		}
	}

	return samples, labels
}

// classify queries the oracle twice under the given prefix — once with
// ¬y, once with y — and derives the Must-1/Must-0/Don't-Care label.
// Both-UNSAT is unreachable when the originating model is itself a
// model (the prefix is then trivially SAT with y fixed to its model
// value), but is defensively classified as Don't-Care and is not fatal.
// The returned label is the same DontCare as the both-SAT case, so the
// caller cannot tell an oracle inconsistency apart and it is not logged.
func (s *OracleSampler) classify(prefix []literal.Literal, y literal.Variable) Label {
	assumeZero := append(append([]literal.Literal{}, prefix...), -y)
	assumeOne := append(append([]literal.Literal{}, prefix...), y)

	canBeZero, errZero := s.Oracle.Solve(assumeZero)
	canBeOne, errOne := s.Oracle.Solve(assumeOne)
	if errZero != nil || errOne != nil {
		return DontCare
	}

	switch {
	case canBeZero && canBeOne:
		return DontCare
	case !canBeZero && canBeOne:
		return Must1
	case canBeZero && !canBeOne:
		return Must0
	default:
		return DontCare // both assumptions UNSAT: oracle inconsistency
	}
}

func modelMap(model []literal.Literal) map[literal.Variable]literal.Literal {
	m := make(map[literal.Variable]literal.Literal, len(model))
	for _, l := range model {
		m[literal.Var(l)] = l
	}
	return m
}

// signedOrDefaultNegative returns the model's signed literal for v, or
// -v if v is absent from the model.
func signedOrDefaultNegative(m map[literal.Variable]literal.Literal, v literal.Variable) literal.Literal {
	if l, ok := m[v]; ok {
		return l
	}
	return -v
}
