package server

import (
	"github.com/Blimabru/league-of-legends-predictor/internal/analysis"
	"github.com/Blimabru/league-of-legends-predictor/internal/dataset"
	"github.com/Blimabru/league-of-legends-predictor/internal/model"
	"github.com/Blimabru/league-of-legends-predictor/internal/predict"
)

// AnalysisResponse is the JSON view of one analysis run: everything the
// dashboard panels draw from, nothing about how they draw it.
type AnalysisResponse struct {
	Player           PlayerView            `json:"player"`
	Summary          SummaryView           `json:"summary"`
	Rows             dataset.Dataset       `json:"rows"`
	Columns          []string              `json:"columns"`
	Split            SplitView             `json:"split"`
	Evaluation       *model.Evaluation     `json:"evaluation"`
	Importances      []analysis.Importance `json:"importances"`
	ChampionWinRates map[string]float64    `json:"championWinRates"`
	RoleDistribution map[string]int        `json:"roleDistribution"`
	Scenarios        []predict.Scenario    `json:"scenarios"`
}

type PlayerView struct {
	GameName string `json:"gameName"`
	TagLine  string `json:"tagLine"`
	PUUID    string `json:"puuid"`
}

type SummaryView struct {
	Matches             int     `json:"matches"`
	WinRate             float64 `json:"winRate"`
	MeanKDA             float64 `json:"meanKda"`
	MeanDurationMinutes float64 `json:"meanDurationMinutes"`
	SkippedFetch        int     `json:"skippedFetchFailures"`
	SkippedPlayer       int     `json:"skippedPlayerMissing"`
	SkippedDuplicates   int     `json:"skippedDuplicateIds"`
}

type SplitView struct {
	TrainSize int `json:"trainSize"`
	TestSize  int `json:"testSize"`
}

func NewAnalysisResponse(r *analysis.Result) *AnalysisResponse {
	return &AnalysisResponse{
		Player: PlayerView{
			GameName: r.Player.GameName,
			TagLine:  r.Player.TagLine,
			PUUID:    r.Player.PUUID,
		},
		Summary: SummaryView{
			Matches:             len(r.Dataset),
			WinRate:             r.Dataset.WinRate(),
			MeanKDA:             r.Dataset.MeanKDA(),
			MeanDurationMinutes: r.Dataset.MeanDuration(),
			SkippedFetch:        r.SkippedFetchFailures,
			SkippedPlayer:       r.SkippedPlayerMissing,
			SkippedDuplicates:   r.SkippedDuplicateIDs,
		},
		Rows:             r.Dataset,
		Columns:          r.Frame.Columns,
		Split:            SplitView{TrainSize: len(r.Split.XTrain), TestSize: len(r.Split.XTest)},
		Evaluation:       r.Evaluation,
		Importances:      r.Importances,
		ChampionWinRates: r.Dataset.ChampionWinRates(),
		RoleDistribution: r.Dataset.RoleCounts(),
		Scenarios:        r.Scenarios,
	}
}
