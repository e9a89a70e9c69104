package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/Blimabru/league-of-legends-predictor/internal/analysis"
	"github.com/Blimabru/league-of-legends-predictor/internal/dataset"
)

// SessionService adapts the analysis session to the handler's Service
// interface. Each request gets a fresh session so its memo cache is scoped to
// the run; the match store persists across requests.
type SessionService struct {
	NewSession func() *analysis.Session
}

func (s *SessionService) Analyze(ctx context.Context, gameName, tagLine string, count int) (*analysis.Result, error) {
	return s.NewSession().Run(ctx, gameName, tagLine, count, dataset.NopProgress)
}

// NewRouter builds the presentation API: the analysis endpoint, liveness and
// Prometheus metrics.
func NewRouter(service Service, logger *zap.Logger, allowedOrigins []string) http.Handler {
	h := NewHandler(service, logger)

	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Use(requestLogger(logger.Sugar()))

	r.Get("/healthz", h.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/analysis", h.Analyze)
	})

	return r
}

// NewServer wraps the router in an http.Server with timeouts sized for the
// pipeline's fetch cadence: a 100-match uncached run takes on the order of
// 100 seconds, so the write timeout must comfortably exceed it.
func NewServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      5 * time.Minute,
		IdleTimeout:       120 * time.Second,
	}
}

func requestLogger(logger *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			logger.Infow("request",
				"method", r.Method,
				"path", r.URL.Path,
				"duration", time.Since(start),
			)
		})
	}
}
