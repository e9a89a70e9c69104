package riot

// Account represents the response from /riot/account/v1/accounts/by-riot-id.
// PUUID is the stable player identifier every later call is keyed on.
type Account struct {
	PUUID    string `json:"puuid"`
	GameName string `json:"gameName"`
	TagLine  string `json:"tagLine"`
}

// Match represents the response from /lol/match/v5/matches/{matchId},
// trimmed to the fields the feature extractor consumes.
type Match struct {
	Metadata MatchMetadata `json:"metadata"`
	Info     MatchInfo     `json:"info"`
}

type MatchMetadata struct {
	MatchID string `json:"matchId"`
}

type MatchInfo struct {
	GameDuration int                `json:"gameDuration"` // seconds
	Participants []MatchParticipant `json:"participants"`
}

// MatchParticipant carries one player's line from a match record. Stat fields
// absent from the upstream payload decode to their zero value, which is the
// documented default for every one of them.
type MatchParticipant struct {
	PUUID          string `json:"puuid"`
	ChampionName   string `json:"championName"`
	TeamPosition   string `json:"teamPosition"` // TOP, JUNGLE, MIDDLE, BOTTOM, UTILITY, or ""
	Win            bool   `json:"win"`
	Kills          int    `json:"kills"`
	Deaths         int    `json:"deaths"`
	Assists        int    `json:"assists"`
	GoldEarned     int    `json:"goldEarned"`
	TotalDamage    int    `json:"totalDamageDealtToChampions"`
	MinionsKilled  int    `json:"totalMinionsKilled"`
	VisionScore    int    `json:"visionScore"`
	FirstBloodKill bool   `json:"firstBloodKill"`
}
