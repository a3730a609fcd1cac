// Package skolemize synthesizes Skolem functions for 2QBF
// specifications (∀X∃Y.φ) given in QDIMACS form.
//
// 🚀 What is skolemize?
//
//	A data-driven, counterexample-guided synthesizer that builds one
//	Boolean function g_y per existential variable y, witnessing that
//	φ[y ↦ g_y(X, Y_<y)] holds for every universal assignment X.
//
// The pipeline, one subpackage per stage:
//
//	qdimacs/   — parse a QDIMACS 2QBF spec into an immutable Spec
//	literal/   — Variable/Literal/Clause/Cube algebra and Tseitin encoding
//	orderer/   — VariableOrderer: a dependency-respecting synthesis order
//	basis/     — SymbolicBasis: the dual DNF/CNF Must-1 / Must-0 container
//	sampler/   — OracleSampler: generate models, classify each y under its prefix
//	learner/   — BasisLearner: fit a decision tree per output, extract cubes
//	verifier/  — Verifier: one combined SAT check for the whole candidate set
//	repairer/  — Repairer: localize blame, expand or shrink the failing candidate
//	synth/     — the driver wiring every stage into the repair loop
//
// Quick sketch of one synthesis step:
//
//	sample → learn → verify ⇄ repair
//
// until the Verifier reports the candidates safe, or the repair
// iteration budget runs out.
//
// See cmd/skolemize for the command-line entry point and SPEC_FULL.md
// for the full module-by-module specification.
package skolemize
