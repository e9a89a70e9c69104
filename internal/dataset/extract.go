package dataset

import (
	"context"
	"errors"

	"github.com/bits-and-blooms/bloom/v3"
	"go.uber.org/zap"

	"github.com/Blimabru/league-of-legends-predictor/internal/metrics"
	"github.com/Blimabru/league-of-legends-predictor/internal/riot"
)

// MatchFetcher is the slice of the riot client the extractor needs.
type MatchFetcher interface {
	Match(ctx context.Context, matchID string) (*riot.Match, error)
}

// Extractor reduces a list of match ids to a Dataset, one row per match in
// which the target player appears. Fetching is strictly sequential; the
// fetcher's inter-request delay is the pipeline's rate limiter.
type Extractor struct {
	fetcher MatchFetcher
	logger  *zap.SugaredLogger

	// Counters for the last Extract call.
	skippedFetch     int
	skippedNotFound  int
	skippedDuplicate int
}

func NewExtractor(fetcher MatchFetcher, logger *zap.SugaredLogger) *Extractor {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Extractor{fetcher: fetcher, logger: logger}
}

// Skipped returns how many matches contributed zero rows in the last Extract
// call, split by cause (failed fetches, player absent from the participant
// list, duplicate ids).
func (e *Extractor) Skipped() (fetchFailures, playerNotFound, duplicates int) {
	return e.skippedFetch, e.skippedNotFound, e.skippedDuplicate
}

// Extract walks matchIDs in order, fetches each record and appends one row
// when a participant matches puuid. A failed fetch or an absent player skips
// that match and continues; a single bad record never aborts the batch. The
// sink is reported after every match and reaches exactly 1.0 at the end
// regardless of how many rows were produced.
func (e *Extractor) Extract(ctx context.Context, puuid string, matchIDs []string, sink ProgressSink) (Dataset, error) {
	if sink == nil {
		sink = NopProgress
	}
	e.skippedFetch, e.skippedNotFound, e.skippedDuplicate = 0, 0, 0

	ds := make(Dataset, 0, len(matchIDs))
	if len(matchIDs) == 0 {
		sink.Report(1.0)
		return ds, nil
	}

	// The upstream listing should already be unique, but callers can feed
	// arbitrary id lists; a fetch costs a full rate-limit delay, so duplicates
	// are filtered the same way the match spider dedupes crawled ids.
	seen := bloom.NewWithEstimates(uint(len(matchIDs))*2, 0.0001)

	for i, matchID := range matchIDs {
		if err := ctx.Err(); err != nil {
			return ds, err
		}

		if seen.TestString(matchID) {
			e.skippedDuplicate++
			metrics.MatchesSkipped.WithLabelValues(metrics.SkipReasonDuplicate).Inc()
			sink.Report(float64(i+1) / float64(len(matchIDs)))
			continue
		}
		seen.AddString(matchID)

		match, err := e.fetcher.Match(ctx, matchID)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return ds, err
			}
			e.skippedFetch++
			metrics.MatchesSkipped.WithLabelValues(metrics.SkipReasonFetchFailed).Inc()
			e.logger.Warnw("skipping match after failed fetch", "matchId", matchID, "error", err)
			sink.Report(float64(i+1) / float64(len(matchIDs)))
			continue
		}

		found := false
		for _, p := range match.Info.Participants {
			if p.PUUID == puuid {
				ds = append(ds, NewRow(p, match.Info.GameDuration))
				metrics.MatchesProcessed.Inc()
				found = true
				break
			}
		}
		if !found {
			e.skippedNotFound++
			metrics.MatchesSkipped.WithLabelValues(metrics.SkipReasonPlayerNotFound).Inc()
			e.logger.Warnw("player not present in match", "matchId", matchID)
		}

		sink.Report(float64(i+1) / float64(len(matchIDs)))
	}

	return ds, nil
}
