package nbastats

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"

	"github.com/atticusobp/nba-trends/internal/domain/gamelog"
	"github.com/atticusobp/nba-trends/internal/platform/cache"
	"github.com/atticusobp/nba-trends/internal/platform/logging"
	"github.com/atticusobp/nba-trends/internal/platform/resilience"
)

const (
	defaultBaseURL = "https://stats.nba.com/stats"
	defaultTimeout = 30 * time.Second

	resourceCommonAllPlayers = "commonallplayers"
	resourcePlayerGameLogs   = "playergamelogs"

	maxResponseBytes = 6 << 20
	maxErrorBodyLen  = 512
)

// UpstreamError is a non-success answer from stats.nba.com. Body is a
// truncated excerpt, safe to log and to put in an error response.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("nba stats status=%d body=%s", e.StatusCode, e.Body)
}

type ClientConfig struct {
	HTTPClient *http.Client
	BaseURL    string
	Timeout    time.Duration
	Cache      *cache.Store
	Logger     *logging.Logger
}

// Client talks to stats.nba.com with the spoofed browser headers the site
// requires, caching raw payloads per full request URL.
type Client struct {
	httpClient *http.Client
	baseURL    string
	cache      *cache.Store
	logger     *logging.Logger
	flight     resilience.SingleFlight
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = defaultTimeout
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		cache:      cfg.Cache,
		logger:     logger,
	}
}

// CommonAllPlayers fetches the current-season league roster.
func (c *Client) CommonAllPlayers(ctx context.Context, season string) ([]gamelog.Row, error) {
	raw, err := c.Get(ctx, resourceCommonAllPlayers, map[string]string{
		"LeagueID":            "00",
		"Season":              season,
		"IsOnlyCurrentSeason": "1",
	})
	if err != nil {
		return nil, fmt.Errorf("fetch %s season=%s: %w", resourceCommonAllPlayers, season, err)
	}
	return Normalize(raw, "CommonAllPlayers"), nil
}

// PlayerGameLogs fetches per-game rows for one player and season. A zero
// playerID fetches league-wide logs, which callers guard against upstream.
func (c *Client) PlayerGameLogs(ctx context.Context, playerID int64, season, seasonType string) ([]gamelog.Row, error) {
	params := map[string]string{
		"SeasonYear": season,
		"SeasonType": seasonType,
	}
	if playerID > 0 {
		params["PlayerID"] = strconv.FormatInt(playerID, 10)
	}

	raw, err := c.Get(ctx, resourcePlayerGameLogs, params)
	if err != nil {
		return nil, fmt.Errorf("fetch %s player_id=%d season=%s: %w", resourcePlayerGameLogs, playerID, season, err)
	}
	return Normalize(raw, "PlayerGameLogs"), nil
}

// Get issues GET {base}/{resource}?{params} and returns the raw body.
// Blank-valued params are dropped rather than serialized. Responses are
// served from cache when present; on a miss, concurrent callers for the
// same URL are collapsed into one upstream request and the fresh body is
// cached without blocking the response.
func (c *Client) Get(ctx context.Context, resource string, params map[string]string) ([]byte, error) {
	resource = strings.Trim(strings.TrimSpace(resource), "/")
	if resource == "" {
		return nil, crerr.New("nbastats: resource is required")
	}

	values := url.Values{}
	for key, value := range params {
		if strings.TrimSpace(value) == "" {
			continue
		}
		values.Set(key, value)
	}

	fullURL := c.baseURL + "/" + resource
	if encoded := values.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}
	cacheKey := http.MethodGet + " " + fullURL

	if c.cache != nil {
		if cached, ok := c.cache.Get(ctx, cacheKey); ok {
			if raw, ok := cached.([]byte); ok {
				return raw, nil
			}
		}
	}

	out, err, _ := c.flight.Do(cacheKey, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if reqErr != nil {
			return nil, reqErr
		}
		if c.cache != nil {
			go c.cache.Set(context.WithoutCancel(ctx), cacheKey, raw)
		}
		return raw, nil
	})
	if err != nil {
		return nil, err
	}

	raw, ok := out.([]byte)
	if !ok {
		return nil, crerr.Newf("nbastats: unexpected payload type %T", out)
	}
	return raw, nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, crerr.Wrap(err, "build request")
	}
	applyStatsHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.WarnContext(ctx, "nba stats request failed", "url", fullURL, "error", err)
		return nil, crerr.Wrap(err, "send request")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, crerr.Wrap(err, "read response body")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		upErr := &UpstreamError{StatusCode: resp.StatusCode, Body: abbreviateBody(raw)}
		c.logger.WarnContext(ctx, "nba stats returned non-success status",
			"url", fullURL,
			"status", resp.StatusCode,
		)
		return nil, upErr
	}

	return raw, nil
}

func abbreviateBody(raw []byte) string {
	body := strings.TrimSpace(string(raw))
	if len(body) > maxErrorBodyLen {
		body = body[:maxErrorBodyLen] + "..."
	}
	return body
}
