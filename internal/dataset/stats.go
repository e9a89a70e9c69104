package dataset

// Aggregate views over a dataset. These back the dashboard's general-stats
// panels and feed the scenario predictor's mean features; rendering lives
// outside the core.

// WinRate returns the fraction of rows won, 0 for an empty dataset.
func (d Dataset) WinRate() float64 {
	if len(d) == 0 {
		return 0
	}
	wins := 0
	for _, r := range d {
		if r.Win {
			wins++
		}
	}
	return float64(wins) / float64(len(d))
}

// MeanKDA returns the mean of the kda column, 0 for an empty dataset.
func (d Dataset) MeanKDA() float64 {
	if len(d) == 0 {
		return 0
	}
	var sum float64
	for _, r := range d {
		sum += r.KDA
	}
	return sum / float64(len(d))
}

// MeanDuration returns the mean match duration in minutes, 0 for an empty
// dataset.
func (d Dataset) MeanDuration() float64 {
	if len(d) == 0 {
		return 0
	}
	var sum float64
	for _, r := range d {
		sum += r.DurationMinutes
	}
	return sum / float64(len(d))
}

// ChampionCounts returns how many rows each champion appears in.
func (d Dataset) ChampionCounts() map[string]int {
	counts := make(map[string]int)
	for _, r := range d {
		counts[r.Champion]++
	}
	return counts
}

// RoleCounts returns how many rows each role appears in.
func (d Dataset) RoleCounts() map[string]int {
	counts := make(map[string]int)
	for _, r := range d {
		counts[r.Role]++
	}
	return counts
}

// ChampionWinRates returns the per-champion win fraction.
func (d Dataset) ChampionWinRates() map[string]float64 {
	wins := make(map[string]int)
	total := make(map[string]int)
	for _, r := range d {
		total[r.Champion]++
		if r.Win {
			wins[r.Champion]++
		}
	}
	rates := make(map[string]float64, len(total))
	for champ, n := range total {
		rates[champ] = float64(wins[champ]) / float64(n)
	}
	return rates
}

// Champions returns the distinct champions in first-observation order.
func (d Dataset) Champions() []string {
	return distinct(d, func(r Row) string { return r.Champion })
}

// Roles returns the distinct roles in first-observation order.
func (d Dataset) Roles() []string {
	return distinct(d, func(r Row) string { return r.Role })
}

func distinct(d Dataset, key func(Row) string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range d {
		k := key(r)
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	return out
}
