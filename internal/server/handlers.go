// Package server exposes the analysis pipeline to the dashboard over HTTP.
// It owns routing, validation and JSON shaping; all rendering lives in the
// dashboard itself.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/Blimabru/league-of-legends-predictor/internal/analysis"
)

// MaxBodySize limits request bodies to 64KB; analysis requests are tiny.
const MaxBodySize = 65536

// AnalysisRequest is the body of POST /api/v1/analysis.
type AnalysisRequest struct {
	GameName string `json:"gameName" validate:"required"`
	TagLine  string `json:"tagLine" validate:"required"`
	Count    int    `json:"count" validate:"gte=0,lte=100"`
}

// DefaultMatchCount is used when the request omits count.
const DefaultMatchCount = 20

// Service is the pipeline entry point the handler calls. Satisfied by
// SessionService; mocked in tests.
type Service interface {
	Analyze(ctx context.Context, gameName, tagLine string, count int) (*analysis.Result, error)
}

type Handler struct {
	service  Service
	logger   *zap.SugaredLogger
	validate *validator.Validate
}

func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{
		service:  service,
		logger:   logger.Sugar(),
		validate: validator.New(),
	}
}

// Analyze runs the full pipeline for one Riot ID and returns the dataset,
// model evaluation and scenario predictions the dashboard renders. A run of
// N uncached matches takes roughly N seconds; callers should size their
// request timeout accordingly.
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodySize)

	var req AnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if req.Count == 0 {
		req.Count = DefaultMatchCount
	}
	if err := h.validate.Struct(req); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	result, err := h.service.Analyze(r.Context(), req.GameName, req.TagLine, req.Count)
	switch {
	case errors.Is(err, analysis.ErrPlayerNotFound):
		h.errorResponse(w, http.StatusNotFound, "Player not found")
		return
	case errors.Is(err, analysis.ErrInsufficientData):
		h.errorResponse(w, http.StatusUnprocessableEntity, "Not enough usable matches to train on")
		return
	case err != nil:
		h.logger.Errorw("analysis failed", "gameName", req.GameName, "error", err)
		h.errorResponse(w, http.StatusInternalServerError, "Analysis failed")
		return
	}

	h.jsonResponse(w, http.StatusOK, NewAnalysisResponse(result))
}

// Health is the liveness endpoint.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) jsonResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (h *Handler) errorResponse(w http.ResponseWriter, status int, message string) {
	h.jsonResponse(w, status, map[string]string{"error": message})
}
