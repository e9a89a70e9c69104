// Package dataset reduces raw match records into the flat per-match feature
// table the model is trained on.
package dataset

import (
	"github.com/Blimabru/league-of-legends-predictor/internal/riot"
)

// Row is one match's worth of gameplay statistics for the target player.
type Row struct {
	Champion        string  `json:"champion"`
	Win             bool    `json:"win"`
	Kills           int     `json:"kills"`
	Deaths          int     `json:"deaths"`
	Assists         int     `json:"assists"`
	KDA             float64 `json:"kda"`
	Role            string  `json:"role"`
	DurationMinutes float64 `json:"durationMinutes"`
	Gold            int     `json:"gold"`
	Damage          int     `json:"damage"`
	Farm            int     `json:"farm"`
	Vision          int     `json:"vision"`
	FirstBlood      int     `json:"firstBlood"` // 1 if the player drew first blood, else 0
}

// Dataset is an ordered sequence of feature rows, one per match in which the
// target player was found.
type Dataset []Row

// UnknownRole buckets position codes the upstream leaves empty (arena and
// other non-standard modes) so raw API blanks never reach encoding or display.
const UnknownRole = "UNKNOWN"

// NewRow reduces one participant line plus match-level metadata to a feature
// row. Deaths of zero count as one in the KDA so the ratio is always defined.
func NewRow(p riot.MatchParticipant, gameDurationSeconds int) Row {
	deaths := p.Deaths
	if deaths == 0 {
		deaths = 1
	}

	role := p.TeamPosition
	if role == "" {
		role = UnknownRole
	}

	firstBlood := 0
	if p.FirstBloodKill {
		firstBlood = 1
	}

	return Row{
		Champion:        p.ChampionName,
		Win:             p.Win,
		Kills:           p.Kills,
		Deaths:          p.Deaths,
		Assists:         p.Assists,
		KDA:             float64(p.Kills+p.Assists) / float64(deaths),
		Role:            role,
		DurationMinutes: float64(gameDurationSeconds) / 60,
		Gold:            p.GoldEarned,
		Damage:          p.TotalDamage,
		Farm:            p.MinionsKilled,
		Vision:          p.VisionScore,
		FirstBlood:      firstBlood,
	}
}
