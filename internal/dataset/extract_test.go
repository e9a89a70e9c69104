package dataset

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Blimabru/league-of-legends-predictor/internal/riot"
)

const targetPUUID = "target-puuid"

// fakeFetcher serves canned matches and records call order.
type fakeFetcher struct {
	matches map[string]*riot.Match
	failing map[string]bool
	calls   []string
}

func (f *fakeFetcher) Match(ctx context.Context, matchID string) (*riot.Match, error) {
	f.calls = append(f.calls, matchID)
	if f.failing[matchID] {
		return nil, fmt.Errorf("simulated transport failure for %s", matchID)
	}
	m, ok := f.matches[matchID]
	if !ok {
		return nil, errors.New("no such match")
	}
	return m, nil
}

func matchWith(puuid, champion string, win bool) *riot.Match {
	return &riot.Match{
		Info: riot.MatchInfo{
			GameDuration: 1800,
			Participants: []riot.MatchParticipant{
				{PUUID: "someone-else", ChampionName: "Garen", Win: !win},
				{PUUID: puuid, ChampionName: champion, Win: win, Kills: 3, Deaths: 1, Assists: 4},
			},
		},
	}
}

func TestExtract_OneRowPerMatch(t *testing.T) {
	fetcher := &fakeFetcher{matches: map[string]*riot.Match{
		"m1": matchWith(targetPUUID, "Ahri", true),
		"m2": matchWith(targetPUUID, "Lux", false),
	}}

	ex := NewExtractor(fetcher, nil)
	ds, err := ex.Extract(context.Background(), targetPUUID, []string{"m1", "m2"}, nil)

	require.NoError(t, err)
	require.Len(t, ds, 2)
	assert.Equal(t, "Ahri", ds[0].Champion)
	assert.Equal(t, "Lux", ds[1].Champion)
	assert.True(t, ds[0].Win)
	assert.False(t, ds[1].Win)
}

func TestExtract_FailedFetchSkipsMatchAndContinues(t *testing.T) {
	fetcher := &fakeFetcher{
		matches: map[string]*riot.Match{
			"m1": matchWith(targetPUUID, "Ahri", true),
			"m3": matchWith(targetPUUID, "Zed", true),
		},
		failing: map[string]bool{"m2": true},
	}

	ex := NewExtractor(fetcher, nil)
	ds, err := ex.Extract(context.Background(), targetPUUID, []string{"m1", "m2", "m3"}, nil)

	require.NoError(t, err)
	require.Len(t, ds, 2)
	assert.Equal(t, []string{"m1", "m2", "m3"}, fetcher.calls, "failure must not abort the batch")

	fetchFailures, playerMissing, duplicates := ex.Skipped()
	assert.Equal(t, 1, fetchFailures)
	assert.Equal(t, 0, playerMissing)
	assert.Equal(t, 0, duplicates)
}

func TestExtract_PlayerNotInMatchProducesZeroRows(t *testing.T) {
	fetcher := &fakeFetcher{matches: map[string]*riot.Match{
		"m1": matchWith("other-puuid", "Ahri", true),
	}}

	ex := NewExtractor(fetcher, nil)
	ds, err := ex.Extract(context.Background(), targetPUUID, []string{"m1"}, nil)

	require.NoError(t, err)
	assert.Empty(t, ds)

	_, playerMissing, _ := ex.Skipped()
	assert.Equal(t, 1, playerMissing)
}

func TestExtract_DuplicateIDsFetchedOnce(t *testing.T) {
	fetcher := &fakeFetcher{matches: map[string]*riot.Match{
		"m1": matchWith(targetPUUID, "Ahri", true),
	}}

	ex := NewExtractor(fetcher, nil)
	ds, err := ex.Extract(context.Background(), targetPUUID, []string{"m1", "m1", "m1"}, nil)

	require.NoError(t, err)
	assert.Len(t, ds, 1)
	assert.Equal(t, []string{"m1"}, fetcher.calls)
}

func TestExtract_ProgressReachesOne(t *testing.T) {
	fetcher := &fakeFetcher{
		matches: map[string]*riot.Match{"m1": matchWith("other-puuid", "Ahri", true)},
		failing: map[string]bool{"m2": true},
	}

	var reports []float64
	sink := ProgressFunc(func(f float64) { reports = append(reports, f) })

	ex := NewExtractor(fetcher, nil)
	_, err := ex.Extract(context.Background(), targetPUUID, []string{"m1", "m2"}, sink)

	require.NoError(t, err)
	require.NotEmpty(t, reports)
	assert.Equal(t, 1.0, reports[len(reports)-1], "progress reaches 1.0 even when zero rows were produced")
	for i := 1; i < len(reports); i++ {
		assert.GreaterOrEqual(t, reports[i], reports[i-1], "progress is monotonic")
	}
}

func TestExtract_EmptyListReportsDone(t *testing.T) {
	var reports []float64
	sink := ProgressFunc(func(f float64) { reports = append(reports, f) })

	ex := NewExtractor(&fakeFetcher{}, nil)
	ds, err := ex.Extract(context.Background(), targetPUUID, nil, sink)

	require.NoError(t, err)
	assert.Empty(t, ds)
	assert.Equal(t, []float64{1.0}, reports)
}

func TestExtract_Idempotent(t *testing.T) {
	build := func() *fakeFetcher {
		return &fakeFetcher{matches: map[string]*riot.Match{
			"m1": matchWith(targetPUUID, "Ahri", true),
			"m2": matchWith(targetPUUID, "Lux", false),
		}}
	}

	ds1, err := NewExtractor(build(), nil).Extract(context.Background(), targetPUUID, []string{"m1", "m2"}, nil)
	require.NoError(t, err)
	ds2, err := NewExtractor(build(), nil).Extract(context.Background(), targetPUUID, []string{"m1", "m2"}, nil)
	require.NoError(t, err)

	assert.Equal(t, ds1, ds2)
}

func TestExtract_ContextCancellationAborts(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ex := NewExtractor(&fakeFetcher{}, nil)
	_, err := ex.Extract(ctx, targetPUUID, []string{"m1"}, nil)

	assert.ErrorIs(t, err, context.Canceled)
}
