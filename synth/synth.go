// Package synth is the top-level driver: it wires Spec → VariableOrderer
// → OracleSampler → BasisLearner → (Verifier ⇄ Repairer)* into the full
// counterexample-guided synthesis loop.
package synth

import (
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/katalvlaran/skolemize/internal/xlog"
	"github.com/katalvlaran/skolemize/learner"
	"github.com/katalvlaran/skolemize/literal"
	"github.com/katalvlaran/skolemize/orderer"
	"github.com/katalvlaran/skolemize/qdimacs"
	"github.com/katalvlaran/skolemize/repairer"
	"github.com/katalvlaran/skolemize/sampler"
	"github.com/katalvlaran/skolemize/verifier"
)

// ErrSpecNil is returned when Run is called with a nil Spec.
var ErrSpecNil = errors.New("synth: spec is nil")

// ErrSamplerExhausted means the generator yielded zero samples, so there
// is no training data to learn from at all.
var ErrSamplerExhausted = errors.New("synth: sampler produced zero samples (UNSAT specification or exhausted generator)")

// ErrIterationBudgetExhausted means the repair loop reached
// RunConfig.Iterations without reaching a safe candidate set. The last
// candidates are intentionally not returned as a solution — the caller
// must treat this as synthesis failure.
var ErrIterationBudgetExhausted = errors.New("synth: repair loop exhausted its iteration budget")

// RunConfig configures one synthesis run. It is loadable from a YAML
// file so large runs are reproducible without a long command line.
type RunConfig struct {
	Samples    int   `yaml:"samples"`
	Iterations int   `yaml:"iterations"`
	Seed       int64 `yaml:"seed"`
	MaxDepth   int   `yaml:"max_depth"`
	TopoSort   bool  `yaml:"topo_sort"`
	Debug      bool  `yaml:"debug"`
}

// DefaultConfig returns the conservative defaults used when no
// RunConfig file is supplied.
func DefaultConfig() RunConfig {
	return RunConfig{
		Samples:    500,
		Iterations: 50,
		Seed:       learner.DefaultSeed,
		MaxDepth:   learner.DefaultMaxDepth,
		TopoSort:   true,
		Debug:      false,
	}
}

// SolverFactory returns a fresh, empty verifier.Solver. The driver asks
// for a new one every iteration since the combined verification
// instance changes shape as candidates are repaired, and a stub/real
// solver's internal clause set must not leak across runs.
type SolverFactory func() verifier.Solver

// CollaboratorFactory returns a fresh Generator/Oracle pair for the
// sampling phase, which (unlike the verifier's solver) runs exactly
// once per Run call.
type CollaboratorFactory func() (sampler.Generator, sampler.Oracle)

// Result is the outcome of one synthesis run.
type Result struct {
	Candidates map[literal.Variable]*learner.Candidate
	Order      []literal.Variable
	Iterations int
}

// Run executes the full Spec → Order → Sample → Learn →
// (Verify ⇄ Repair)* pipeline.
func Run(spec *qdimacs.Spec, collab CollaboratorFactory, solverFactory SolverFactory, cfg RunConfig, log *xlog.Logger) (*Result, error) {
	if spec == nil {
		return nil, ErrSpecNil
	}
	if log == nil {
		log = xlog.Default(cfg.Debug)
	}

	order, err := computeOrder(spec, cfg)
	if err != nil {
		return nil, fmt.Errorf("synth: computing order: %w", err)
	}
	inputVars := sortedUniversals(spec)

	generator, oracle := collab()
	s, err := sampler.New(spec.CNF(), generator, oracle, inputVars, order)
	if err != nil {
		return nil, fmt.Errorf("synth: constructing sampler: %w", err)
	}
	s.OnProgress = func(generated, target int) {
		log.Debugf("sampled %d/%d", generated, target)
	}

	log.Phase("sampling %d", cfg.Samples)
	samples, labels := s.GenerateSamples(cfg.Samples)
	if len(samples) == 0 {
		return nil, ErrSamplerExhausted
	}
	if len(samples) < cfg.Samples {
		log.Debugf("generator exhausted early: got %d/%d samples, proceeding with shortfall", len(samples), cfg.Samples)
	}
	log.Phase("sampled %d", len(samples))

	l := learner.New(inputVars, order, learner.WithMaxDepth(cfg.MaxDepth), learner.WithSeed(cfg.Seed))
	log.Phase("learning")
	candidates := l.Learn(samples, labels)

	gVars := allocateGVars(spec, order)
	v, err := verifier.New(spec, order, gVars)
	if err != nil {
		return nil, fmt.Errorf("synth: constructing verifier: %w", err)
	}
	rep := repairer.New(order, inputVars, spec.Matrix)

	for iter := 0; iter < cfg.Iterations; iter++ {
		log.Phase("verify iteration %d/%d", iter+1, cfg.Iterations)
		safe, cex, err := v.Verify(candidates, solverFactory())
		if err != nil {
			return nil, fmt.Errorf("synth: verify: %w", err)
		}
		if safe {
			log.Phase("safe after %d repair iteration(s)", iter)
			return &Result{Candidates: candidates, Order: order, Iterations: iter}, nil
		}

		log.Dump("counterexample", cex)
		before := FormatCandidates(order, candidates)
		y, err := rep.Repair(candidates, cex)
		if err != nil {
			return nil, fmt.Errorf("synth: repair: %w", err)
		}
		after := FormatCandidates(order, candidates)
		log.Diff(fmt.Sprintf("candidates after repairing y_%d", y), before, after)
		log.Debugf("repaired y_%d", y)
	}

	return nil, ErrIterationBudgetExhausted
}

// computeOrder honors cfg.TopoSort: true runs the VariableOrderer's VIG
// BFS, false keeps the existentials in file-declaration order (a
// cheaper, non-dependency-aware fallback).
func computeOrder(spec *qdimacs.Spec, cfg RunConfig) ([]literal.Variable, error) {
	if !cfg.TopoSort {
		order := make([]literal.Variable, len(spec.Existentials))
		copy(order, spec.Existentials)
		return order, nil
	}
	return orderer.Order(spec)
}

func sortedUniversals(spec *qdimacs.Spec) []literal.Variable {
	vars := make([]literal.Variable, 0, len(spec.Universals))
	for v := range spec.Universals {
		vars = append(vars, v)
	}
	sort.Ints(vars)
	return vars
}

// allocateGVars assigns one fresh g_y per output, starting just past the
// matrix's own variables — allocated once and reused across every
// verify iteration.
func allocateGVars(spec *qdimacs.Spec, order []literal.Variable) map[literal.Variable]literal.Variable {
	next := spec.NextFreeVar()
	gVars := make(map[literal.Variable]literal.Variable, len(order))
	for _, y := range order {
		gVars[y] = next
		next++
	}
	return gVars
}

// FormatCandidates renders a human-readable candidate listing, in
// synthesis order.
func FormatCandidates(order []literal.Variable, candidates map[literal.Variable]*learner.Candidate) string {
	out := ""
	for _, y := range order {
		cand := candidates[y]
		out += "y_" + strconv.Itoa(y) + ":\n"
		out += "  Must-1 (A): " + cand.A.String() + "\n"
		out += "  Must-0 (C): " + cand.C.String() + "\n"
	}
	return out
}
