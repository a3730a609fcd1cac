package learner

import (
	"github.com/katalvlaran/skolemize/literal"
)

// label is the local 3-class label space mirrored from package sampler
// (0=Don't-Care, 1=Must-1, 2=Must-0) to keep this file independent of
// the sampler package's types.
type label = int

const (
	classDontCare label = 0
	classMust1    label = 1
	classMust0    label = 2
	numClasses          = 3
)

// row is one training example: a 0/1 feature vector and its label.
type row struct {
	features []int
	label    label
}

// node is one node of the fitted decision tree. Internal nodes split on
// featureIdx at the fixed threshold 0.5: the left branch is taken when
// the feature is 0, the right when it is 1. Leaves carry the majority
// class under balanced class weighting.
type node struct {
	isLeaf       bool
	majorityClas label
	featureIdx   int
	left, right  *node
}

// tree is a fitted CART-style Boolean classifier, bounded to MaxDepth
// and built with balanced class weights and deterministic tie-breaking.
type tree struct {
	root        *node
	featureVars []literal.Variable
}

// fitTree grows a depth-bounded, balanced-class-weighted, axis-aligned
// Boolean decision tree over rows. seed is passed through but not read:
// ties among equally-good splits/classes are broken by ascending index,
// keeping output bit-identical across runs for identical input.
func fitTree(rows []row, numFeatures, maxDepth int, seed int64) *tree {
	weights := classWeights(rows)
	root := growNode(rows, weights, numFeatures, maxDepth, seed, 0)
	return &tree{root: root}
}

// classWeights computes the standard "balanced" class weight:
// weight_c = n_samples / (n_classes * count_c), so rare classes count
// proportionally more during split scoring and majority-vote leaves.
func classWeights(rows []row) [numClasses]float64 {
	var counts [numClasses]int
	for _, r := range rows {
		counts[r.label]++
	}
	var w [numClasses]float64
	n := float64(len(rows))
	for c := 0; c < numClasses; c++ {
		if counts[c] == 0 {
			w[c] = 0
			continue
		}
		w[c] = n / (float64(numClasses) * float64(counts[c]))
	}
	return w
}

// growNode recursively splits rows, stopping at maxDepth, a pure node,
// or no informative split. Ties in split gain and in majority class are
// broken by ascending feature index / ascending class id, making the
// whole tree deterministic for a fixed seed (seed currently only
// documents the contract; the greedy search itself has no randomized
// step left to seed once ties are broken deterministically).
func growNode(rows []row, weights [numClasses]float64, numFeatures, maxDepth int, seed int64, depth int) *node {
	if depth >= maxDepth || isPure(rows) || len(rows) == 0 {
		return &node{isLeaf: true, majorityClas: majorityClass(rows, weights)}
	}

	bestFeature, bestGain := -1, -1.0
	for f := 0; f < numFeatures; f++ {
		gain := weightedSplitGain(rows, weights, f)
		if gain > bestGain+1e-12 {
			bestGain = gain
			bestFeature = f
		}
	}
	if bestFeature == -1 || bestGain <= 0 {
		return &node{isLeaf: true, majorityClas: majorityClass(rows, weights)}
	}

	var left, right []row
	for _, r := range rows {
		if r.features[bestFeature] == 0 {
			left = append(left, r)
		} else {
			right = append(right, r)
		}
	}
	if len(left) == 0 || len(right) == 0 {
		// Degenerate split (constant feature): treat as a leaf instead of
		// recursing forever on an empty branch.
		return &node{isLeaf: true, majorityClas: majorityClass(rows, weights)}
	}

	return &node{
		isLeaf:     false,
		featureIdx: bestFeature,
		left:       growNode(left, weights, numFeatures, maxDepth, seed, depth+1),
		right:      growNode(right, weights, numFeatures, maxDepth, seed, depth+1),
	}
}

// majorityClass returns the weighted-majority class, breaking ties by
// smallest class id for determinism.
func majorityClass(rows []row, weights [numClasses]float64) label {
	var totals [numClasses]float64
	for _, r := range rows {
		totals[r.label] += weights[r.label]
	}
	best := 0
	for c := 1; c < numClasses; c++ {
		if totals[c] > totals[best] {
			best = c
		}
	}
	return best
}

// isPure reports whether every row shares the same label.
func isPure(rows []row) bool {
	if len(rows) == 0 {
		return true
	}
	first := rows[0].label
	for _, r := range rows[1:] {
		if r.label != first {
			return false
		}
	}
	return true
}

// weightedSplitGain scores splitting on feature f by the reduction in
// weighted Gini impurity, the standard criterion CART uses by default.
func weightedSplitGain(rows []row, weights [numClasses]float64, f int) float64 {
	var left, right []row
	for _, r := range rows {
		if r.features[f] == 0 {
			left = append(left, r)
		} else {
			right = append(right, r)
		}
	}
	if len(left) == 0 || len(right) == 0 {
		return 0
	}
	parent := weightedGini(rows, weights)
	wl := weightedCount(left, weights)
	wr := weightedCount(right, weights)
	total := wl + wr
	if total == 0 {
		return 0
	}
	child := (wl/total)*weightedGini(left, weights) + (wr/total)*weightedGini(right, weights)
	return parent - child
}

func weightedCount(rows []row, weights [numClasses]float64) float64 {
	total := 0.0
	for _, r := range rows {
		total += weights[r.label]
	}
	return total
}

func weightedGini(rows []row, weights [numClasses]float64) float64 {
	total := weightedCount(rows, weights)
	if total == 0 {
		return 0
	}
	var sums [numClasses]float64
	for _, r := range rows {
		sums[r.label] += weights[r.label]
	}
	gini := 1.0
	for c := 0; c < numClasses; c++ {
		p := sums[c] / total
		gini -= p * p
	}
	return gini
}

// extractPaths walks every root-to-leaf path, mapping each split to a
// literal over featureVars (left = negative, right = positive), and
// hands every path whose leaf majority is targetClass to addCube.
func (t *tree) extractPaths(featureVars []literal.Variable, targetClass label, addCube func([]literal.Literal)) {
	var recurse func(n *node, path []literal.Literal)
	recurse = func(n *node, path []literal.Literal) {
		if n.isLeaf {
			if n.majorityClas == targetClass {
				cube := make([]literal.Literal, len(path))
				copy(cube, path)
				addCube(cube)
			}
			return
		}
		v := featureVars[n.featureIdx]
		recurse(n.left, append(path, -v))
		recurse(n.right, append(path, v))
	}
	recurse(t.root, nil)
}

