// Package analysis wires the pipeline together: resolve the player, list
// matches, extract features, encode, split, fit, and build the scenario
// predictions. One Session per analysis run.
package analysis

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Blimabru/league-of-legends-predictor/internal/cache"
	"github.com/Blimabru/league-of-legends-predictor/internal/dataset"
	"github.com/Blimabru/league-of-legends-predictor/internal/frame"
	"github.com/Blimabru/league-of-legends-predictor/internal/metrics"
	"github.com/Blimabru/league-of-legends-predictor/internal/model"
	"github.com/Blimabru/league-of-legends-predictor/internal/predict"
	"github.com/Blimabru/league-of-legends-predictor/internal/riot"
)

var (
	// ErrPlayerNotFound is the only run-halting condition: the Riot ID did
	// not resolve to a player. Reported to the caller, never panicked.
	ErrPlayerNotFound = errors.New("analysis: player not found")

	// ErrInsufficientData means too few usable matches survived extraction
	// to train on.
	ErrInsufficientData = errors.New("analysis: not enough usable matches")
)

// Progress checkpoints mirroring the stages the operator watches: resolving
// the account, downloading the id list, per-match extraction, then encoding
// and training.
const (
	progressResolved  = 0.15
	progressListed    = 0.30
	progressExtracted = 0.45
	progressEncoded   = 0.70
)

// Session owns everything one analysis run needs. The memo cache is
// constructed with the session and shared by every stage; it is never global.
type Session struct {
	client *riot.Client
	memo   *cache.Memo
	store  *cache.MatchStore
	logger *zap.SugaredLogger
	trees  int
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithMatchStore attaches the on-disk match cache.
func WithMatchStore(store *cache.MatchStore) SessionOption {
	return func(s *Session) { s.store = store }
}

// WithLogger sets the logger.
func WithLogger(l *zap.SugaredLogger) SessionOption {
	return func(s *Session) { s.logger = l }
}

// WithForestSize sets the ensemble size.
func WithForestSize(trees int) SessionOption {
	return func(s *Session) { s.trees = trees }
}

func NewSession(client *riot.Client, opts ...SessionOption) *Session {
	s := &Session{
		client: client,
		memo:   cache.NewMemo(),
		logger: zap.NewNop().Sugar(),
		trees:  model.DefaultTrees,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Importance pairs a feature column with its fitted importance score.
type Importance struct {
	Column string  `json:"column"`
	Value  float64 `json:"value"`
}

// Result is everything the presentation layer consumes from one run.
type Result struct {
	Player      riot.Account
	Dataset     dataset.Dataset
	Frame       *frame.Frame
	Split       *frame.Split
	Forest      *model.Forest
	Evaluation  *model.Evaluation
	Importances []Importance
	Scenarios   []predict.Scenario

	// Matches that contributed zero rows, for observability.
	SkippedFetchFailures int
	SkippedPlayerMissing int
	SkippedDuplicateIDs  int
}

// Run executes the full pipeline for one Riot ID. count matches are requested
// (fewer may exist). The sink receives staged progress from 0 to exactly 1.
func (s *Session) Run(ctx context.Context, gameName, tagLine string, count int, sink dataset.ProgressSink) (*Result, error) {
	if sink == nil {
		sink = dataset.NopProgress
	}

	account, err := s.resolveAccount(ctx, gameName, tagLine)
	if err != nil {
		metrics.AnalysesTotal.WithLabelValues("not_found").Inc()
		return nil, err
	}
	s.logger.Infow("player resolved", "gameName", account.GameName, "tagLine", account.TagLine)
	sink.Report(progressResolved)

	matchIDs, err := s.listMatches(ctx, account.PUUID, count)
	if err != nil {
		metrics.AnalysesTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("list matches: %w", err)
	}
	s.logger.Infow("match history listed", "matches", len(matchIDs))
	sink.Report(progressListed)

	extractor := dataset.NewExtractor(&cachedFetcher{session: s}, s.logger)
	ds, err := extractor.Extract(ctx, account.PUUID, matchIDs, stageSink(sink, progressListed, progressExtracted))
	if err != nil {
		metrics.AnalysesTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("extract features: %w", err)
	}
	fetchFailures, playerMissing, duplicates := extractor.Skipped()

	if len(ds) < 2 {
		metrics.AnalysesTotal.WithLabelValues("no_data").Inc()
		return nil, fmt.Errorf("%w: %d rows from %d matches", ErrInsufficientData, len(ds), len(matchIDs))
	}

	encoded := frame.Encode(ds)
	split := frame.NewSplit(encoded, frame.DefaultTestRatio, frame.SplitSeed)
	sink.Report(progressEncoded)

	forest := model.NewForest(s.trees, model.Seed)
	if err := forest.Fit(split.XTrain, split.YTrain); err != nil {
		metrics.AnalysesTotal.WithLabelValues("no_data").Inc()
		return nil, fmt.Errorf("%w: %v", ErrInsufficientData, err)
	}

	evaluation, err := forest.Evaluate(split.XTest, split.YTest)
	if err != nil {
		metrics.AnalysesTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("evaluate model: %w", err)
	}

	scenarios, err := predict.ByMostPlayed(forest, encoded, ds)
	if err != nil {
		metrics.AnalysesTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("scenario predictions: %w", err)
	}
	sink.Report(1.0)

	importances := make([]Importance, 0, len(encoded.Columns))
	for i, v := range forest.FeatureImportances() {
		importances = append(importances, Importance{Column: encoded.Columns[i], Value: v})
	}

	metrics.AnalysesTotal.WithLabelValues("ok").Inc()
	return &Result{
		Player:               *account,
		Dataset:              ds,
		Frame:                encoded,
		Split:                split,
		Forest:               forest,
		Evaluation:           evaluation,
		Importances:          importances,
		Scenarios:            scenarios,
		SkippedFetchFailures: fetchFailures,
		SkippedPlayerMissing: playerMissing,
		SkippedDuplicateIDs:  duplicates,
	}, nil
}

// resolveAccount looks up the player, memoized for the session. An upstream
// 404 or a response without a puuid both mean "player not found".
func (s *Session) resolveAccount(ctx context.Context, gameName, tagLine string) (*riot.Account, error) {
	key := cache.AccountKey(gameName, tagLine)
	if v, ok := s.memo.Get(key); ok {
		metrics.CacheHits.WithLabelValues("account").Inc()
		return v.(*riot.Account), nil
	}

	account, err := s.client.AccountByRiotID(ctx, gameName, tagLine)
	if errors.Is(err, riot.ErrNotFound) {
		return nil, ErrPlayerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("resolve account: %w", err)
	}
	if account.PUUID == "" {
		return nil, ErrPlayerNotFound
	}

	s.memo.Set(key, account)
	return account, nil
}

func (s *Session) listMatches(ctx context.Context, puuid string, count int) ([]string, error) {
	key := cache.MatchListKey(puuid, count)
	if v, ok := s.memo.Get(key); ok {
		metrics.CacheHits.WithLabelValues("match_list").Inc()
		return v.([]string), nil
	}

	ids, err := s.client.MatchIDs(ctx, puuid, count)
	if err != nil {
		return nil, err
	}

	s.memo.Set(key, ids)
	return ids, nil
}

// stageSink rescales a sub-stage's 0..1 reports into the [lo,hi] slice of the
// overall run.
func stageSink(sink dataset.ProgressSink, lo, hi float64) dataset.ProgressSink {
	return dataset.ProgressFunc(func(fraction float64) {
		sink.Report(lo + fraction*(hi-lo))
	})
}
