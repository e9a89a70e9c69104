package model

import (
	"math/rand"
	"sort"
)

// node is one decision-tree node. Internal nodes route on
// row[feature] <= threshold; leaves carry the win fraction of the training
// rows that reached them.
type node struct {
	leaf      bool
	prob      float64
	feature   int
	threshold float64
	left      *node
	right     *node
}

func (n *node) predict(row []float64) float64 {
	for !n.leaf {
		if row[n.feature] <= n.threshold {
			n = n.left
		} else {
			n = n.right
		}
	}
	return n.prob
}

// treeBuilder grows one fully-grown CART tree over a bootstrap sample,
// considering a random subset of features at every split.
type treeBuilder struct {
	x    [][]float64
	y    []bool
	mtry int
	rng  *rand.Rand

	// Impurity decrease accumulated per feature, weighted by node size.
	importances []float64
	total       int
}

func (b *treeBuilder) build(idx []int) *node {
	wins := 0
	for _, i := range idx {
		if b.y[i] {
			wins++
		}
	}
	prob := float64(wins) / float64(len(idx))

	if wins == 0 || wins == len(idx) || len(idx) < 2 {
		return &node{leaf: true, prob: prob}
	}

	feature, threshold, gain, ok := b.bestSplit(idx)
	if !ok {
		return &node{leaf: true, prob: prob}
	}

	b.importances[feature] += float64(len(idx)) / float64(b.total) * gain

	var leftIdx, rightIdx []int
	for _, i := range idx {
		if b.x[i][feature] <= threshold {
			leftIdx = append(leftIdx, i)
		} else {
			rightIdx = append(rightIdx, i)
		}
	}

	return &node{
		feature:   feature,
		threshold: threshold,
		left:      b.build(leftIdx),
		right:     b.build(rightIdx),
	}
}

// bestSplit searches mtry randomly chosen features for the threshold with the
// largest gini decrease. Returns ok=false when no candidate separates the
// node (e.g. all sampled features are constant).
func (b *treeBuilder) bestSplit(idx []int) (feature int, threshold, gain float64, ok bool) {
	parent := gini(b.y, idx)

	bestGain := 1e-12
	for _, f := range b.sampleFeatures() {
		values := make([]float64, 0, len(idx))
		for _, i := range idx {
			values = append(values, b.x[i][f])
		}
		sort.Float64s(values)

		for v := 1; v < len(values); v++ {
			if values[v] == values[v-1] {
				continue
			}
			t := (values[v] + values[v-1]) / 2

			leftWins, leftN, rightWins, rightN := 0, 0, 0, 0
			for _, i := range idx {
				if b.x[i][f] <= t {
					leftN++
					if b.y[i] {
						leftWins++
					}
				} else {
					rightN++
					if b.y[i] {
						rightWins++
					}
				}
			}

			weighted := (float64(leftN)*giniCounts(leftWins, leftN) +
				float64(rightN)*giniCounts(rightWins, rightN)) / float64(len(idx))

			if g := parent - weighted; g > bestGain {
				bestGain, feature, threshold, ok = g, f, t, true
			}
		}
	}

	return feature, threshold, bestGain, ok
}

// sampleFeatures draws mtry distinct feature indices.
func (b *treeBuilder) sampleFeatures() []int {
	p := len(b.x[0])
	if b.mtry >= p {
		all := make([]int, p)
		for i := range all {
			all[i] = i
		}
		return all
	}
	return b.rng.Perm(p)[:b.mtry]
}

func gini(y []bool, idx []int) float64 {
	wins := 0
	for _, i := range idx {
		if y[i] {
			wins++
		}
	}
	return giniCounts(wins, len(idx))
}

func giniCounts(wins, n int) float64 {
	if n == 0 {
		return 0
	}
	p := float64(wins) / float64(n)
	return 2 * p * (1 - p)
}
