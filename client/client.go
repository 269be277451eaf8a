// Package client is a Go client for the trends API. It probes a prioritized
// list of origins so callers keep working when the primary deployment is down
// and a local instance is running.
package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/atticusobp/nba-trends/internal/domain/gamelog"
	"github.com/atticusobp/nba-trends/internal/domain/player"
	"github.com/atticusobp/nba-trends/internal/platform/failover"
	"github.com/atticusobp/nba-trends/internal/platform/logging"
)

type Config struct {
	// OriginOverride, when set, is tried before every other origin.
	OriginOverride string
	// Origins are the configured deployment origins, in priority order.
	Origins []string
	// RuntimeOrigins are origins discovered at runtime, tried after Origins.
	RuntimeOrigins []string

	HTTPClient     *http.Client
	AttemptTimeout time.Duration
	Logger         *logging.Logger
}

type Client struct {
	fetcher *failover.Fetcher
}

// New builds a client whose origin list always ends with the local loopback
// fallback. The list is fixed for the lifetime of the client.
func New(cfg Config) (*Client, error) {
	fetcher, err := failover.New(failover.Config{
		HTTPClient:     cfg.HTTPClient,
		Origins:        failover.Origins(cfg.OriginOverride, cfg.Origins, cfg.RuntimeOrigins),
		AttemptTimeout: cfg.AttemptTimeout,
		Logger:         cfg.Logger,
	})
	if err != nil {
		return nil, err
	}
	return &Client{fetcher: fetcher}, nil
}

func (c *Client) OriginList() []string {
	return c.fetcher.OriginList()
}

type Health struct {
	OK            bool   `json:"ok"`
	Mode          string `json:"mode"`
	DefaultSeason string `json:"default_season"`
	Note          string `json:"note"`
}

func (c *Client) Health(ctx context.Context) (Health, error) {
	var out Health
	if err := c.fetcher.GetJSON(ctx, "/api/health", nil, &out); err != nil {
		return Health{}, err
	}
	return out, nil
}

type PlayersResponse struct {
	Season  string          `json:"season"`
	Count   int             `json:"count"`
	Players []player.Player `json:"players"`
}

func (c *Client) Players(ctx context.Context, season string) (PlayersResponse, error) {
	query := url.Values{}
	if season != "" {
		query.Set("season", season)
	}

	var out PlayersResponse
	if err := c.fetcher.GetJSON(ctx, "/api/players", query, &out); err != nil {
		return PlayersResponse{}, err
	}
	return out, nil
}

type TrendsQuery struct {
	PlayerID   int64
	Season     string
	SeasonType string
	Source     string
}

type TrendsResponse struct {
	PlayerID   int64         `json:"player_id"`
	Source     string        `json:"source"`
	Season     string        `json:"season"`
	SeasonType string        `json:"season_type"`
	Count      int           `json:"count"`
	Rows       []gamelog.Row `json:"rows"`
	StatFields []string      `json:"stat_fields"`
}

func (c *Client) PlayerTrends(ctx context.Context, q TrendsQuery) (TrendsResponse, error) {
	query := url.Values{}
	query.Set("player_id", strconv.FormatInt(q.PlayerID, 10))
	if q.Season != "" {
		query.Set("season", q.Season)
	}
	if q.SeasonType != "" {
		query.Set("season_type", q.SeasonType)
	}
	if q.Source != "" {
		query.Set("source", q.Source)
	}

	var out TrendsResponse
	if err := c.fetcher.GetJSON(ctx, "/api/trends/player", query, &out); err != nil {
		return TrendsResponse{}, err
	}
	return out, nil
}
