// Package model implements the win/loss classifier: a bagged ensemble of
// fully-grown decision trees with per-split feature subsampling, fitted from
// scratch on every analysis run.
package model

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
)

const (
	// DefaultTrees is the ensemble size.
	DefaultTrees = 100

	// Seed fixes the bootstrap and feature sampling so a run over identical
	// input trains an identical model.
	Seed = 42
)

var (
	ErrNotFitted  = errors.New("model: forest is not fitted")
	ErrEmptyInput = errors.New("model: empty training set")
)

// Forest is a random-forest binary classifier for the positive class "win".
type Forest struct {
	numTrees int
	seed     int64

	trees       []*node
	nFeatures   int
	importances []float64
}

// NewForest creates an unfitted forest. numTrees <= 0 falls back to the
// default ensemble size.
func NewForest(numTrees int, seed int64) *Forest {
	if numTrees <= 0 {
		numTrees = DefaultTrees
	}
	return &Forest{numTrees: numTrees, seed: seed}
}

// Fit trains the ensemble on the encoded feature matrix. Each tree grows on a
// bootstrap sample of the rows, evaluating sqrt(p) random features per split.
func (f *Forest) Fit(x [][]float64, y []bool) error {
	if len(x) == 0 {
		return ErrEmptyInput
	}
	if len(x) != len(y) {
		return fmt.Errorf("model: %d rows but %d labels", len(x), len(y))
	}

	f.nFeatures = len(x[0])
	f.trees = make([]*node, 0, f.numTrees)
	f.importances = make([]float64, f.nFeatures)

	mtry := int(math.Sqrt(float64(f.nFeatures)))
	if mtry < 1 {
		mtry = 1
	}

	rng := rand.New(rand.NewSource(f.seed))

	for t := 0; t < f.numTrees; t++ {
		treeRng := rand.New(rand.NewSource(rng.Int63()))

		idx := make([]int, len(x))
		for i := range idx {
			idx[i] = treeRng.Intn(len(x))
		}

		builder := &treeBuilder{
			x:           x,
			y:           y,
			mtry:        mtry,
			rng:         treeRng,
			importances: f.importances,
			total:       len(idx),
		}
		f.trees = append(f.trees, builder.build(idx))
	}

	// Normalize accumulated impurity decreases so the vector sums to 1.
	var sum float64
	for _, v := range f.importances {
		sum += v
	}
	if sum > 0 {
		for i := range f.importances {
			f.importances[i] /= sum
		}
	}

	return nil
}

// PredictProba returns the estimated probability of the positive ("win")
// class for one schema-aligned feature row: the mean of the trees' leaf
// probabilities.
func (f *Forest) PredictProba(row []float64) (float64, error) {
	if len(f.trees) == 0 {
		return 0, ErrNotFitted
	}
	if len(row) != f.nFeatures {
		return 0, fmt.Errorf("model: row has %d features, forest was fitted on %d", len(row), f.nFeatures)
	}

	var sum float64
	for _, t := range f.trees {
		sum += t.predict(row)
	}
	return sum / float64(len(f.trees)), nil
}

// Predict returns the point win/loss prediction for one feature row.
func (f *Forest) Predict(row []float64) (bool, error) {
	p, err := f.PredictProba(row)
	if err != nil {
		return false, err
	}
	return p >= 0.5, nil
}

// FeatureImportances returns per-feature gini importances aligned to the
// training column order, normalized to sum to 1.
func (f *Forest) FeatureImportances() []float64 {
	out := make([]float64, len(f.importances))
	copy(out, f.importances)
	return out
}

// NumFeatures returns the width of the column schema the forest was fitted
// on; inference input must match it exactly.
func (f *Forest) NumFeatures() int {
	return f.nFeatures
}
