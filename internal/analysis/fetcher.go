package analysis

import (
	"context"
	"encoding/json"

	"github.com/Blimabru/league-of-legends-predictor/internal/cache"
	"github.com/Blimabru/league-of-legends-predictor/internal/metrics"
	"github.com/Blimabru/league-of-legends-predictor/internal/riot"
)

// cachedFetcher layers the session memo and the on-disk store in front of the
// riot client's match-detail call. A hit on either layer skips the network
// request and, with it, the rate-limit delay.
type cachedFetcher struct {
	session *Session
}

func (f *cachedFetcher) Match(ctx context.Context, matchID string) (*riot.Match, error) {
	s := f.session
	key := cache.MatchKey(matchID)

	if v, ok := s.memo.Get(key); ok {
		metrics.CacheHits.WithLabelValues("match_memo").Inc()
		return v.(*riot.Match), nil
	}

	if s.store != nil {
		body, ok, err := s.store.Get(ctx, matchID)
		if err != nil {
			s.logger.Warnw("match store read failed", "matchId", matchID, "error", err)
		} else if ok {
			var match riot.Match
			if uerr := json.Unmarshal(body, &match); uerr != nil {
				s.logger.Warnw("discarding corrupt match cache entry", "matchId", matchID, "error", uerr)
			} else {
				metrics.CacheHits.WithLabelValues("match_store").Inc()
				s.memo.Set(key, &match)
				return &match, nil
			}
		}
	}

	match, err := s.client.Match(ctx, matchID)
	if err != nil {
		return nil, err
	}

	s.memo.Set(key, match)

	if s.store != nil {
		if body, err := json.Marshal(match); err == nil {
			if err := s.store.Put(ctx, matchID, body); err != nil {
				s.logger.Warnw("match store write failed", "matchId", matchID, "error", err)
			}
		}
	}

	return match, nil
}
