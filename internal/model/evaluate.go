package model

// Evaluation summarizes classifier performance over the held-out subset. It
// backs the dashboard's model-evaluation panel.
type Evaluation struct {
	Accuracy       float64 `json:"accuracy"`
	TruePositives  int     `json:"truePositives"`
	TrueNegatives  int     `json:"trueNegatives"`
	FalsePositives int     `json:"falsePositives"`
	FalseNegatives int     `json:"falseNegatives"`
}

// Evaluate scores the fitted forest against a labeled test subset.
func (f *Forest) Evaluate(x [][]float64, y []bool) (*Evaluation, error) {
	ev := &Evaluation{}

	for i, row := range x {
		pred, err := f.Predict(row)
		if err != nil {
			return nil, err
		}
		switch {
		case pred && y[i]:
			ev.TruePositives++
		case !pred && !y[i]:
			ev.TrueNegatives++
		case pred && !y[i]:
			ev.FalsePositives++
		default:
			ev.FalseNegatives++
		}
	}

	if len(x) > 0 {
		ev.Accuracy = float64(ev.TruePositives+ev.TrueNegatives) / float64(len(x))
	}
	return ev, nil
}
