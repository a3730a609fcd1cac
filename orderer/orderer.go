// Package orderer computes the dependency-respecting synthesis order
// over a Spec's existential variables: a deterministic,
// variable-interaction-BFS order in which variables "closer" to the
// universals are Skolemized first, so later outputs may depend on
// earlier ones as additional features.
//
// Errors:
//
//	ErrSpecNil - a nil *qdimacs.Spec was passed to Order
package orderer

import (
	"context"
	"errors"
	"sort"

	"github.com/katalvlaran/skolemize/internal/bitset"
	"github.com/katalvlaran/skolemize/literal"
	"github.com/katalvlaran/skolemize/qdimacs"
)

// ErrSpecNil is returned when Order is called with a nil Spec.
var ErrSpecNil = errors.New("orderer: spec is nil")

// Option configures optional behavior of Order.
type Option func(*options)

type options struct {
	ctx context.Context
}

func defaultOptions() options {
	return options{ctx: context.Background()}
}

// WithContext sets the cancellation context for Order's BFS traversal.
// A nil context has no effect.
func WithContext(ctx context.Context) Option {
	return func(o *options) {
		if ctx != nil {
			o.ctx = ctx
		}
	}
}

// graph is the variable-interaction graph (VIG): node v's neighbors are
// every variable that co-occurs with v in some clause of the matrix.
type graph map[literal.Variable]map[literal.Variable]bool

func buildGraph(matrix []literal.Clause) graph {
	g := make(graph)
	for _, clause := range matrix {
		vars := make([]literal.Variable, len(clause))
		for i, l := range clause {
			vars[i] = literal.Var(l)
		}
		for i := 0; i < len(vars); i++ {
			for j := i + 1; j < len(vars); j++ {
				u, v := vars[i], vars[j]
				if u == v {
					continue
				}
				edge(g, u, v)
				edge(g, v, u)
			}
		}
	}
	return g
}

func edge(g graph, u, v literal.Variable) {
	if g[u] == nil {
		g[u] = make(map[literal.Variable]bool)
	}
	g[u][v] = true
}

// sortedNeighbors returns v's neighbors in ascending numeric order, for
// deterministic BFS traversal.
func sortedNeighbors(g graph, v literal.Variable) []literal.Variable {
	neighbors := make([]literal.Variable, 0, len(g[v]))
	for n := range g[v] {
		neighbors = append(neighbors, n)
	}
	sort.Ints(neighbors)
	return neighbors
}

// Order computes the deterministic synthesis order over spec's
// existentials:
//
//  1. Build the variable-interaction graph over the whole matrix.
//  2. Seed the BFS frontier with universals, sorted ascending.
//  3. If there are no universals but existentials exist, seed with the
//     existential of maximum VIG degree.
//  4. BFS, visiting neighbors in ascending order; each newly-visited
//     existential is appended to the order.
//  5. Append any existential never reached, in file-declaration order.
//
// The result is a total permutation of spec.Existentials.
func Order(spec *qdimacs.Spec, opts ...Option) ([]literal.Variable, error) {
	if spec == nil {
		return nil, ErrSpecNil
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	g := buildGraph(spec.Matrix)
	visited := bitset.New(spec.NumVars + 1)

	var universalsSorted []literal.Variable
	for v := range spec.Universals {
		universalsSorted = append(universalsSorted, v)
	}
	sort.Ints(universalsSorted)

	var order []literal.Variable
	queue := make([]literal.Variable, 0, len(universalsSorted))
	for _, u := range universalsSorted {
		visited.Set(u)
		queue = append(queue, u)
	}

	if len(queue) == 0 && len(spec.Existentials) > 0 {
		start := maxDegreeExistential(g, spec.Existentials)
		visited.Set(start)
		order = append(order, start)
		queue = append(queue, start)
	}

	for len(queue) > 0 {
		select {
		case <-o.ctx.Done():
			return nil, o.ctx.Err()
		default:
		}

		u := queue[0]
		queue = queue[1:]

		for _, v := range sortedNeighbors(g, u) {
			if visited.Test(v) {
				continue
			}
			visited.Set(v)
			queue = append(queue, v)
			if spec.HasExistential(v) {
				order = append(order, v)
			}
		}
	}

	for _, y := range spec.Existentials {
		if !visited.Test(y) {
			order = append(order, y)
		}
	}

	return order, nil
}

// maxDegreeExistential returns the existential with the highest VIG
// degree, breaking ties by the smallest variable id for determinism.
func maxDegreeExistential(g graph, existentials []literal.Variable) literal.Variable {
	best := existentials[0]
	bestDeg := len(g[best])
	for _, y := range existentials[1:] {
		d := len(g[y])
		if d > bestDeg || (d == bestDeg && y < best) {
			best = y
			bestDeg = d
		}
	}
	return best
}
