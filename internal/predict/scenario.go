package predict

import (
	"sort"

	"github.com/Blimabru/league-of-legends-predictor/internal/dataset"
	"github.com/Blimabru/league-of-legends-predictor/internal/frame"
	"github.com/Blimabru/league-of-legends-predictor/internal/model"
)

const (
	topChampionCount = 3
	topRoleCount     = 2
)

// Scenario is one synthetic champion/role pairing scored for win probability.
type Scenario struct {
	Champion              string  `json:"champion"`
	RoleName              string  `json:"roleName"`
	WinProbabilityPercent float64 `json:"winProbabilityPercent"`
}

// ByMostPlayed scores every pairing of the player's 3 most-played champions
// and 2 most-played roles, holding kda and duration at their dataset-wide
// means. A champion or role absent from the fitted schema simply leaves its
// indicator unset - the model scores the row without that signal. Output
// order is champions outer, roles inner.
func ByMostPlayed(forest *model.Forest, f *frame.Frame, ds dataset.Dataset) ([]Scenario, error) {
	champions := topByCount(ds.Champions(), ds.ChampionCounts(), topChampionCount)
	roles := topByCount(ds.Roles(), ds.RoleCounts(), topRoleCount)

	meanKDA := ds.MeanKDA()
	meanDuration := ds.MeanDuration()

	scenarios := make([]Scenario, 0, len(champions)*len(roles))
	for _, champ := range champions {
		for _, role := range roles {
			row := buildSyntheticRow(f, map[string]float64{
				"kda":               meanKDA,
				"duration":          meanDuration,
				"champion_" + champ: 1,
				"role_" + role:      1,
			})

			prob, err := forest.PredictProba(row)
			if err != nil {
				return nil, err
			}

			scenarios = append(scenarios, Scenario{
				Champion:              champ,
				RoleName:              RoleName(role),
				WinProbabilityPercent: prob * 100,
			})
		}
	}

	return scenarios, nil
}

// buildSyntheticRow starts from an all-zero schema-aligned row and sets the
// named columns. Overrides naming columns outside the schema are dropped;
// that is the defined fallback for values never seen at fit time.
func buildSyntheticRow(f *frame.Frame, overrides map[string]float64) []float64 {
	row := f.ZeroRow()
	for name, value := range overrides {
		if i, ok := f.ColumnIndex(name); ok {
			row[i] = value
		}
	}
	return row
}

// topByCount returns up to n values ordered by descending occurrence count,
// ties broken by first observation so the result is deterministic.
func topByCount(ordered []string, counts map[string]int, n int) []string {
	top := make([]string, len(ordered))
	copy(top, ordered)

	sort.SliceStable(top, func(i, j int) bool {
		return counts[top[i]] > counts[top[j]]
	})

	if len(top) > n {
		top = top[:n]
	}
	return top
}
