package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Blimabru/league-of-legends-predictor/internal/analysis"
	"github.com/Blimabru/league-of-legends-predictor/internal/dataset"
	"github.com/Blimabru/league-of-legends-predictor/internal/frame"
	"github.com/Blimabru/league-of-legends-predictor/internal/model"
	"github.com/Blimabru/league-of-legends-predictor/internal/riot"
)

// stubService records the last call and returns a canned result or error.
type stubService struct {
	result    *analysis.Result
	err       error
	lastCount int
}

func (s *stubService) Analyze(ctx context.Context, gameName, tagLine string, count int) (*analysis.Result, error) {
	s.lastCount = count
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func sampleResult() *analysis.Result {
	ds := dataset.Dataset{
		{Champion: "Yasuo", Win: true, Kills: 5, Deaths: 1, Assists: 5, KDA: 10, Role: "MIDDLE", DurationMinutes: 30},
		{Champion: "Ahri", Win: false, Kills: 1, Deaths: 4, Assists: 2, KDA: 0.75, Role: "MIDDLE", DurationMinutes: 25},
	}
	f := frame.Encode(ds)
	return &analysis.Result{
		Player:     riot.Account{PUUID: "puuid-123", GameName: "Player", TagLine: "BR1"},
		Dataset:    ds,
		Frame:      f,
		Split:      &frame.Split{XTrain: f.Rows[:1], XTest: f.Rows[1:], YTrain: f.Labels[:1], YTest: f.Labels[1:]},
		Evaluation: &model.Evaluation{Accuracy: 1, TruePositives: 1},
	}
}

func postAnalysis(t *testing.T, h *Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/analysis", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.Analyze(rec, req)
	return rec
}

func TestAnalyze_Success(t *testing.T) {
	svc := &stubService{result: sampleResult()}
	h := NewHandler(svc, zap.NewNop())

	rec := postAnalysis(t, h, `{"gameName":"Player","tagLine":"BR1","count":30}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 30, svc.lastCount)

	var resp AnalysisResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "Player", resp.Player.GameName)
	assert.Equal(t, 2, resp.Summary.Matches)
	assert.Equal(t, 0.5, resp.Summary.WinRate)
	assert.Equal(t, 1, resp.Split.TrainSize)
	assert.Equal(t, 1, resp.Split.TestSize)
	assert.Equal(t, sampleResult().Frame.Columns, resp.Columns)
}

func TestAnalyze_DefaultCount(t *testing.T) {
	svc := &stubService{result: sampleResult()}
	h := NewHandler(svc, zap.NewNop())

	rec := postAnalysis(t, h, `{"gameName":"Player","tagLine":"BR1"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, DefaultMatchCount, svc.lastCount)
}

func TestAnalyze_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"invalid JSON", `{not json`},
		{"missing gameName", `{"tagLine":"BR1"}`},
		{"missing tagLine", `{"gameName":"Player"}`},
		{"count above bound", `{"gameName":"Player","tagLine":"BR1","count":500}`},
		{"negative count", `{"gameName":"Player","tagLine":"BR1","count":-5}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&stubService{result: sampleResult()}, zap.NewNop())
			rec := postAnalysis(t, h, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestAnalyze_PlayerNotFound(t *testing.T) {
	h := NewHandler(&stubService{err: analysis.ErrPlayerNotFound}, zap.NewNop())

	rec := postAnalysis(t, h, `{"gameName":"Nobody","tagLine":"XX"}`)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Player not found")
}

func TestAnalyze_InsufficientData(t *testing.T) {
	h := NewHandler(&stubService{err: analysis.ErrInsufficientData}, zap.NewNop())

	rec := postAnalysis(t, h, `{"gameName":"Player","tagLine":"BR1"}`)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestAnalyze_InternalError(t *testing.T) {
	h := NewHandler(&stubService{err: assert.AnError}, zap.NewNop())

	rec := postAnalysis(t, h, `{"gameName":"Player","tagLine":"BR1"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), assert.AnError.Error(),
		"internal error detail must not leak to clients")
}

func TestRouter_Health(t *testing.T) {
	router := NewRouter(&stubService{result: sampleResult()}, zap.NewNop(), []string{"*"})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "ok"))
}

func TestRouter_Metrics(t *testing.T) {
	router := NewRouter(&stubService{result: sampleResult()}, zap.NewNop(), []string{"*"})

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
