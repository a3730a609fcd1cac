// Package learner implements BasisLearner: it fits one axis-aligned
// Boolean decision tree per output variable over features X ∪ Y_<i
// (dependency-respecting, per the synthesis order) and extracts
// root-to-leaf paths into the Must-1 (A) / Must-0 (C) cubes of a
// SymbolicBasis candidate pair.
//
// The tree itself is a hand-rolled CART-style classifier (balanced
// class weights, bounded depth, deterministic tie-breaking).
package learner

import (
	"strconv"

	"github.com/katalvlaran/skolemize/basis"
	"github.com/katalvlaran/skolemize/literal"
	"github.com/katalvlaran/skolemize/sampler"
)

// Candidate holds the Must-1 (A) and Must-0 (C) approximations for one
// output variable.
type Candidate struct {
	A *basis.SymbolicBasis
	C *basis.SymbolicBasis
}

// DefaultMaxDepth and DefaultSeed configure a balanced-class-weight,
// depth-bounded classifier with deterministic tie-breaking.
const (
	DefaultMaxDepth = 10
	DefaultSeed     = 42
)

// Option configures a BasisLearner.
type Option func(*BasisLearner)

// WithMaxDepth bounds tree depth (default DefaultMaxDepth).
func WithMaxDepth(depth int) Option {
	return func(l *BasisLearner) { l.MaxDepth = depth }
}

// WithSeed sets the tie-breaking seed (default DefaultSeed). Output is
// deterministic for any fixed seed; the seed only documents intent,
// since ties are broken structurally (ascending feature/class index)
// rather than via any randomized step.
func WithSeed(seed int64) Option {
	return func(l *BasisLearner) { l.Seed = seed }
}

// BasisLearner learns a Candidate map from labelled samples.
type BasisLearner struct {
	InputVars  []literal.Variable
	OutputVars []literal.Variable
	MaxDepth   int
	Seed       int64
}

// New constructs a BasisLearner over the synthesis order outputVars,
// with inputVars as the universal (X) feature pool.
func New(inputVars, outputVars []literal.Variable, opts ...Option) *BasisLearner {
	l := &BasisLearner{
		InputVars:  inputVars,
		OutputVars: outputVars,
		MaxDepth:   DefaultMaxDepth,
		Seed:       DefaultSeed,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Learn fits one tree per output variable (in synthesis order, so Y_<i
// features are available) and extracts its Must-1/Must-0 paths into a
// Candidate. Pre-repair invariant: A and C contain only cubes, never
// clauses.
func (l *BasisLearner) Learn(samples []sampler.Sample, labels map[literal.Variable][]sampler.Label) map[literal.Variable]*Candidate {
	candidates := make(map[literal.Variable]*Candidate, len(l.OutputVars))

	for i, y := range l.OutputVars {
		featureVars := make([]literal.Variable, 0, len(l.InputVars)+i)
		featureVars = append(featureVars, l.InputVars...)
		featureVars = append(featureVars, l.OutputVars[:i]...)

		rows := make([]row, len(samples))
		for s, sample := range samples {
			features := make([]int, len(featureVars))
			for f, v := range featureVars {
				features[f] = sample.Value(v)
			}
			rows[s] = row{features: features, label: int(labels[y][s])}
		}

		t := fitTree(rows, len(featureVars), l.MaxDepth, l.Seed)

		aBasis := basis.New(candidateName("A", y))
		cBasis := basis.New(candidateName("C", y))

		t.extractPaths(featureVars, classMust1, func(cube []literal.Literal) {
			_ = aBasis.AddCube(cube) // path literals are always consistent by construction
		})
		t.extractPaths(featureVars, classMust0, func(cube []literal.Literal) {
			_ = cBasis.AddCube(cube)
		})

		candidates[y] = &Candidate{A: aBasis, C: cBasis}
	}

	return candidates
}

func candidateName(kind string, y literal.Variable) string {
	return kind + "_" + strconv.Itoa(y)
}
