package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Riot API metrics
var (
	RiotRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "riot_requests_total",
			Help: "Total requests issued against the Riot API, by endpoint.",
		},
		[]string{"endpoint"},
	)

	RiotRequestFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "riot_request_failures_total",
			Help: "Riot API requests that ended in a transport or HTTP error.",
		},
		[]string{"endpoint"},
	)
)

// Pipeline metrics
var (
	MatchesProcessed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "matches_processed_total",
			Help: "Match records reduced to feature rows.",
		},
	)

	// Matches that contributed zero rows: fetch failed or the target player
	// was not present in the participant list.
	MatchesSkipped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "matches_skipped_total",
			Help: "Matches that produced no feature row, by reason.",
		},
		[]string{"reason"},
	)

	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Lookups served from the keyed response cache, by layer.",
		},
		[]string{"layer"},
	)

	AnalysesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analyses_total",
			Help: "Completed analysis runs, by outcome.",
		},
		[]string{"outcome"},
	)
)

// Skip reasons for MatchesSkipped.
const (
	SkipReasonFetchFailed    = "fetch_failed"
	SkipReasonPlayerNotFound = "player_not_in_match"
	SkipReasonDuplicate      = "duplicate_id"
)
