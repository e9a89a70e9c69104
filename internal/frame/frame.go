// Package frame turns a feature dataset into the numeric matrix the
// classifier consumes: categorical columns expanded to binary indicators,
// the win column split off as the label vector.
package frame

import (
	"sort"

	"github.com/Blimabru/league-of-legends-predictor/internal/dataset"
)

// Numeric feature columns, in their fixed position ahead of the indicator
// columns. The fitted model is bound to this exact ordering.
var numericColumns = []string{
	"kills", "deaths", "assists", "kda", "duration",
	"gold", "damage", "farm", "vision", "first_blood",
}

// Frame is an encoded dataset: one float row per input row, a stable column
// list, and the extracted win labels.
type Frame struct {
	Columns []string
	Rows    [][]float64
	Labels  []bool

	index map[string]int
}

// Encode one-hot expands champion and role over the values observed in ds.
// Indicator columns are named champion_<value> / role_<value> and sorted
// lexicographically within each group, so the column order is identical for
// identical input. The vocabulary comes strictly from ds - there is no
// external champion or role list.
func Encode(ds dataset.Dataset) *Frame {
	champions := sortedKeys(ds.ChampionCounts())
	roles := sortedKeys(ds.RoleCounts())

	columns := make([]string, 0, len(numericColumns)+len(champions)+len(roles))
	columns = append(columns, numericColumns...)
	for _, c := range champions {
		columns = append(columns, "champion_"+c)
	}
	for _, r := range roles {
		columns = append(columns, "role_"+r)
	}

	f := &Frame{
		Columns: columns,
		Rows:    make([][]float64, 0, len(ds)),
		Labels:  make([]bool, 0, len(ds)),
		index:   make(map[string]int, len(columns)),
	}
	for i, c := range columns {
		f.index[c] = i
	}

	for _, r := range ds {
		row := f.ZeroRow()
		row[f.index["kills"]] = float64(r.Kills)
		row[f.index["deaths"]] = float64(r.Deaths)
		row[f.index["assists"]] = float64(r.Assists)
		row[f.index["kda"]] = r.KDA
		row[f.index["duration"]] = r.DurationMinutes
		row[f.index["gold"]] = float64(r.Gold)
		row[f.index["damage"]] = float64(r.Damage)
		row[f.index["farm"]] = float64(r.Farm)
		row[f.index["vision"]] = float64(r.Vision)
		row[f.index["first_blood"]] = float64(r.FirstBlood)
		row[f.index["champion_"+r.Champion]] = 1
		row[f.index["role_"+r.Role]] = 1

		f.Rows = append(f.Rows, row)
		f.Labels = append(f.Labels, r.Win)
	}

	return f
}

// ColumnIndex returns the position of a column, or false when the column was
// not observed at encode time. Unseen values simply have no indicator.
func (f *Frame) ColumnIndex(name string) (int, bool) {
	i, ok := f.index[name]
	return i, ok
}

// ZeroRow returns an all-zero row aligned to the frame's column schema.
func (f *Frame) ZeroRow() []float64 {
	return make([]float64, len(f.Columns))
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
