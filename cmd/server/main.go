package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/Blimabru/league-of-legends-predictor/internal/analysis"
	"github.com/Blimabru/league-of-legends-predictor/internal/cache"
	"github.com/Blimabru/league-of-legends-predictor/internal/config"
	"github.com/Blimabru/league-of-legends-predictor/internal/riot"
	"github.com/Blimabru/league-of-legends-predictor/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	var logger *zap.Logger
	if cfg.Env == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	client, err := riot.NewClient(cfg.APIKey, cfg.Continent,
		riot.WithRequestDelay(cfg.FetchDelay),
		riot.WithLogger(sugar),
	)
	if err != nil {
		sugar.Fatalw("riot client", "error", err)
	}

	var store *cache.MatchStore
	if cfg.MatchCachePath != "" {
		store, err = cache.OpenMatchStore(cfg.MatchCachePath)
		if err != nil {
			sugar.Warnw("match cache disabled", "error", err)
			store = nil
		} else {
			defer store.Close()
		}
	}

	service := &server.SessionService{
		NewSession: func() *analysis.Session {
			opts := []analysis.SessionOption{
				analysis.WithLogger(sugar),
				analysis.WithForestSize(cfg.ForestTrees),
			}
			if store != nil {
				opts = append(opts, analysis.WithMatchStore(store))
			}
			return analysis.NewSession(client, opts...)
		},
	}

	router := server.NewRouter(service, logger, cfg.AllowedOrigins)
	srv := server.NewServer(fmt.Sprintf(":%d", cfg.Port), router)

	go func() {
		sugar.Infow("server listening", "port", cfg.Port, "continent", cfg.Continent)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			sugar.Fatalw("server failed", "error", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	sugar.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		sugar.Errorw("shutdown", "error", err)
	}
}
