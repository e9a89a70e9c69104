package frame

import (
	"math"
	"math/rand"
)

// SplitSeed fixes the shuffle so repeated runs on identical input produce an
// identical partition.
const SplitSeed = 42

// DefaultTestRatio is the evaluation share of the split.
const DefaultTestRatio = 0.2

// Split is the train/test partition of an encoded frame.
type Split struct {
	XTrain [][]float64
	XTest  [][]float64
	YTrain []bool
	YTest  []bool
}

// NewSplit partitions the frame's rows with a seeded shuffle. The test subset
// gets ceil(ratio*n) rows, the rest train. No stratification: with the small
// per-player datasets this tool sees, class balance in the test subset is
// whatever the shuffle yields.
func NewSplit(f *Frame, testRatio float64, seed int64) *Split {
	n := len(f.Rows)
	testSize := int(math.Ceil(float64(n) * testRatio))
	if testSize > n {
		testSize = n
	}

	perm := rand.New(rand.NewSource(seed)).Perm(n)

	s := &Split{
		XTrain: make([][]float64, 0, n-testSize),
		XTest:  make([][]float64, 0, testSize),
		YTrain: make([]bool, 0, n-testSize),
		YTest:  make([]bool, 0, testSize),
	}

	for i, idx := range perm {
		if i < testSize {
			s.XTest = append(s.XTest, f.Rows[idx])
			s.YTest = append(s.YTest, f.Labels[idx])
		} else {
			s.XTrain = append(s.XTrain, f.Rows[idx])
			s.YTrain = append(s.YTrain, f.Labels[idx])
		}
	}

	return s
}
