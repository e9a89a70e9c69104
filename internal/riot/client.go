package riot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/Blimabru/league-of-legends-predictor/internal/metrics"
)

const (
	// Default delay enforced after every match-detail request. The dev-key
	// rate limit allows bursts, but one request per second keeps a 100-match
	// run safely under the two-minute window without tracking it.
	DefaultRequestDelay = 1 * time.Second

	defaultTimeout = 30 * time.Second
)

// ErrNotFound is returned when the upstream answers 404 - the player or match
// does not exist. Callers treat it as an empty result, not a failure.
var ErrNotFound = errors.New("riot: not found")

// StatusError is returned for any other non-200 response.
type StatusError struct {
	Endpoint string
	Code     int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("riot: %s returned status %d", e.Endpoint, e.Code)
}

// Client is a sequential Riot API client. Every call is a single attempt -
// no retries - and match-detail calls are followed by a fixed delay so the
// whole pipeline stays under the upstream rate limit.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	delay      time.Duration
	sleep      func(time.Duration)
	logger     *zap.SugaredLogger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the regional base URL (useful for testing).
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpClient = h }
}

// WithRequestDelay sets the post-request delay floor for match-detail calls.
func WithRequestDelay(d time.Duration) Option {
	return func(c *Client) { c.delay = d }
}

// WithLogger sets the logger.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(c *Client) { c.logger = l }
}

// NewClient creates a client routed to the given continent (americas, europe,
// asia, sea).
func NewClient(apiKey, continent string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("riot: API key is required")
	}
	if continent == "" {
		continent = "americas"
	}

	c := &Client{
		apiKey:     apiKey,
		baseURL:    fmt.Sprintf("https://%s.api.riotgames.com", continent),
		httpClient: &http.Client{Timeout: defaultTimeout},
		delay:      DefaultRequestDelay,
		sleep:      time.Sleep,
		logger:     zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// AccountByRiotID resolves a Riot ID (gameName#tagLine) to an account record.
// A 404 maps to ErrNotFound so callers can surface "player not found" without
// treating it as a system error.
func (c *Client) AccountByRiotID(ctx context.Context, gameName, tagLine string) (*Account, error) {
	u := fmt.Sprintf("%s/riot/account/v1/accounts/by-riot-id/%s/%s",
		c.baseURL, url.PathEscape(gameName), url.PathEscape(tagLine))

	var account Account
	if err := c.doRequest(ctx, "account", u, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

// MatchIDs returns up to count recent match IDs for a player, most recent
// first. The count is passed through unclamped; the upstream enforces its own
// bounds.
func (c *Client) MatchIDs(ctx context.Context, puuid string, count int) ([]string, error) {
	u := fmt.Sprintf("%s/lol/match/v5/matches/by-puuid/%s/ids?start=0&count=%d",
		c.baseURL, url.PathEscape(puuid), count)

	var ids []string
	if err := c.doRequest(ctx, "match_ids", u, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

// Match fetches one full match record. The configured delay runs after the
// request whether it succeeded or not; this is the pipeline's throughput
// ceiling and must not be removed.
func (c *Client) Match(ctx context.Context, matchID string) (*Match, error) {
	u := fmt.Sprintf("%s/lol/match/v5/matches/%s", c.baseURL, url.PathEscape(matchID))

	var match Match
	err := c.doRequest(ctx, "match", u, &match)
	if c.delay > 0 {
		c.sleep(c.delay)
	}
	if err != nil {
		return nil, err
	}
	return &match, nil
}

// doRequest makes a single authenticated GET and decodes the JSON body into
// result. Exactly one network attempt per call.
func (c *Client) doRequest(ctx context.Context, endpoint, u string, result interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("X-Riot-Token", c.apiKey)

	metrics.RiotRequestsTotal.WithLabelValues(endpoint).Inc()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.RiotRequestFailures.WithLabelValues(endpoint).Inc()
		c.logger.Warnw("riot request failed", "endpoint", endpoint, "error", err)
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		return json.NewDecoder(resp.Body).Decode(result)
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	default:
		metrics.RiotRequestFailures.WithLabelValues(endpoint).Inc()
		c.logger.Warnw("riot request rejected", "endpoint", endpoint, "status", resp.StatusCode)
		return &StatusError{Endpoint: endpoint, Code: resp.StatusCode}
	}
}
