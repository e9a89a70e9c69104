package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Riot API
	APIKey    string
	Continent string

	// Server
	Port int
	Env  string

	// CORS
	AllowedOrigins []string

	// Fetch cadence - a floor on the delay after every match-detail request.
	// The upstream dev-key rate limit makes this mandatory, not tunable to zero.
	FetchDelay time.Duration

	// Match detail cache (sqlite). Empty disables on-disk caching.
	MatchCachePath string

	// Model
	ForestTrees int
}

// Load loads configuration from the environment, reading a .env file first
// when one is present. It returns an error if critical configuration is missing.
func Load() (*Config, error) {
	// .env takes priority over inherited environment, matching how the
	// analyzer is run during development.
	_ = godotenv.Overload()

	cfg := &Config{
		Port: getEnvInt("PORT", 8080),
		Env:  getEnv("ENV", "development"),

		Continent:      getEnv("CONTINENT", "americas"),
		FetchDelay:     getEnvDuration("FETCH_DELAY", 1*time.Second),
		MatchCachePath: getEnv("MATCH_CACHE_PATH", "matches.db"),
		ForestTrees:    getEnvInt("FOREST_TREES", 100),
	}

	// CORS
	origins := getEnv("ALLOWED_ORIGINS", "http://localhost:8501")
	for _, o := range strings.Split(origins, ",") {
		if trimmed := strings.TrimSpace(o); trimmed != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, trimmed)
		}
	}

	var err error
	if cfg.APIKey, err = getEnvRequired("RIOT_API_KEY"); err != nil {
		return nil, err
	}

	if cfg.FetchDelay < 0 {
		return nil, fmt.Errorf("FETCH_DELAY must not be negative")
	}
	if cfg.ForestTrees <= 0 {
		return nil, fmt.Errorf("FOREST_TREES must be positive")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvRequired(key string) (string, error) {
	if value := os.Getenv(key); value != "" {
		return value, nil
	}
	return "", fmt.Errorf("missing required environment variable: %s", key)
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
