package analysis

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Blimabru/league-of-legends-predictor/internal/cache"
	"github.com/Blimabru/league-of-legends-predictor/internal/dataset"
	"github.com/Blimabru/league-of-legends-predictor/internal/riot"
)

const testPUUID = "puuid-target"

// fakeRiot serves a minimal but complete upstream: one account, a match-id
// list, and per-id match records. It counts requests per endpoint so tests
// can assert cache behavior.
type fakeRiot struct {
	mux          *http.ServeMux
	accountHits  int
	listHits     int
	matchHits    map[string]int
	failMatchIDs map[string]bool
}

func newFakeRiot(matchIDs []string) *fakeRiot {
	f := &fakeRiot{
		mux:          http.NewServeMux(),
		matchHits:    make(map[string]int),
		failMatchIDs: make(map[string]bool),
	}

	f.mux.HandleFunc("/riot/account/v1/accounts/by-riot-id/", func(w http.ResponseWriter, r *http.Request) {
		f.accountHits++
		if strings.Contains(r.URL.Path, "Nobody") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		fmt.Fprintf(w, `{"puuid":%q,"gameName":"Player","tagLine":"BR1"}`, testPUUID)
	})

	f.mux.HandleFunc("/lol/match/v5/matches/by-puuid/", func(w http.ResponseWriter, r *http.Request) {
		f.listHits++
		quoted := make([]string, len(matchIDs))
		for i, id := range matchIDs {
			quoted[i] = fmt.Sprintf("%q", id)
		}
		fmt.Fprintf(w, "[%s]", strings.Join(quoted, ","))
	})

	f.mux.HandleFunc("/lol/match/v5/matches/", func(w http.ResponseWriter, r *http.Request) {
		id := r.URL.Path[strings.LastIndex(r.URL.Path, "/")+1:]
		f.matchHits[id]++
		if f.failMatchIDs[id] {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		// Alternate champion and outcome by id suffix so the dataset has
		// more than one class and more than one indicator column.
		champ, win := "Yasuo", "true"
		if strings.HasSuffix(id, "2") || strings.HasSuffix(id, "4") {
			champ, win = "Ahri", "false"
		}
		fmt.Fprintf(w, `{
			"metadata": {"matchId": %q},
			"info": {
				"gameDuration": 1800,
				"participants": [
					{"puuid": "someone-else", "championName": "Garen", "teamPosition": "TOP", "win": false},
					{"puuid": %q, "championName": %q, "teamPosition": "MIDDLE", "win": %s,
					 "kills": 4, "deaths": 2, "assists": 6, "goldEarned": 11000,
					 "totalDamageDealtToChampions": 15000, "totalMinionsKilled": 160,
					 "visionScore": 14, "firstBloodKill": false}
				]
			}
		}`, id, testPUUID, champ, win)
	})

	return f
}

func newTestSession(t *testing.T, f *fakeRiot, opts ...SessionOption) (*Session, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(f.mux)
	t.Cleanup(server.Close)

	client, err := riot.NewClient("RGAPI-test-key", "americas",
		riot.WithBaseURL(server.URL),
		riot.WithRequestDelay(0),
	)
	require.NoError(t, err)

	return NewSession(client, opts...), server
}

func TestRun_FullPipeline(t *testing.T) {
	f := newFakeRiot([]string{"m1", "m2", "m3", "m4", "m5", "m6", "m7", "m8"})
	session, _ := newTestSession(t, f, WithForestSize(20))

	var reports []float64
	sink := dataset.ProgressFunc(func(fr float64) { reports = append(reports, fr) })

	result, err := session.Run(context.Background(), "Player", "BR1", 8, sink)
	require.NoError(t, err)

	assert.Len(t, result.Dataset, 8)
	assert.Equal(t, "Player", result.Player.GameName)
	assert.NotNil(t, result.Evaluation)
	assert.Len(t, result.Importances, len(result.Frame.Columns))
	assert.NotEmpty(t, result.Scenarios)
	assert.LessOrEqual(t, len(result.Scenarios), 6)

	// Train and test partition the whole dataset.
	assert.Equal(t, len(result.Dataset), len(result.Split.XTrain)+len(result.Split.XTest))

	// Progress is monotone and ends at exactly 1.
	require.NotEmpty(t, reports)
	assert.Equal(t, 1.0, reports[len(reports)-1])
	for i := 1; i < len(reports); i++ {
		assert.GreaterOrEqual(t, reports[i], reports[i-1])
	}
}

func TestRun_PlayerNotFound(t *testing.T) {
	f := newFakeRiot(nil)
	session, _ := newTestSession(t, f)

	_, err := session.Run(context.Background(), "Nobody", "XX", 10, nil)
	assert.ErrorIs(t, err, ErrPlayerNotFound)
	assert.Equal(t, 0, f.listHits, "no further stage runs after a failed resolve")
}

func TestRun_FailedMatchesSkippedNotFatal(t *testing.T) {
	f := newFakeRiot([]string{"m1", "m2", "m3", "m4", "m5", "m6"})
	f.failMatchIDs["m3"] = true
	session, _ := newTestSession(t, f, WithForestSize(20))

	result, err := session.Run(context.Background(), "Player", "BR1", 6, nil)
	require.NoError(t, err)

	assert.Len(t, result.Dataset, 5)
	assert.Equal(t, 1, result.SkippedFetchFailures)
}

func TestRun_InsufficientData(t *testing.T) {
	f := newFakeRiot([]string{"m1"})
	f.failMatchIDs["m1"] = true
	session, _ := newTestSession(t, f)

	_, err := session.Run(context.Background(), "Player", "BR1", 1, nil)
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestRun_MemoizesWithinSession(t *testing.T) {
	f := newFakeRiot([]string{"m1", "m2", "m3", "m4"})
	session, _ := newTestSession(t, f, WithForestSize(20))

	_, err := session.Run(context.Background(), "Player", "BR1", 4, nil)
	require.NoError(t, err)
	_, err = session.Run(context.Background(), "Player", "BR1", 4, nil)
	require.NoError(t, err)

	assert.Equal(t, 1, f.accountHits, "account lookup served from memo on the second run")
	assert.Equal(t, 1, f.listHits, "match listing served from memo on the second run")
	for id, hits := range f.matchHits {
		assert.Equal(t, 1, hits, "match %s fetched once", id)
	}
}

func TestRun_MatchStoreSurvivesSessions(t *testing.T) {
	store, err := cache.OpenMatchStore(filepath.Join(t.TempDir(), "matches.db"))
	require.NoError(t, err)
	defer store.Close()

	f := newFakeRiot([]string{"m1", "m2", "m3", "m4"})

	first, _ := newTestSession(t, f, WithForestSize(20), WithMatchStore(store))
	_, err = first.Run(context.Background(), "Player", "BR1", 4, nil)
	require.NoError(t, err)

	second, _ := newTestSession(t, f, WithForestSize(20), WithMatchStore(store))
	_, err = second.Run(context.Background(), "Player", "BR1", 4, nil)
	require.NoError(t, err)

	for id, hits := range f.matchHits {
		assert.Equal(t, 1, hits, "match %s served from the store for the second session", id)
	}
}
