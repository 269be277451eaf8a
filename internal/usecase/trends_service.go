package usecase

import (
	"context"
	"strings"

	crerr "github.com/cockroachdb/errors"

	"github.com/atticusobp/nba-trends/internal/domain/gamelog"
	"github.com/atticusobp/nba-trends/internal/platform/logging"
)

const (
	sourceOverall = "overall"

	defaultSeasonType = "Regular Season"
)

type TrendQuery struct {
	PlayerID   int64
	Source     string
	Season     string
	SeasonType string
}

type TrendsResult struct {
	PlayerID   int64         `json:"player_id"`
	Source     string        `json:"source"`
	Season     string        `json:"season"`
	SeasonType string        `json:"season_type"`
	Count      int           `json:"count"`
	Rows       []gamelog.Row `json:"rows"`
	StatFields []string      `json:"stat_fields"`
}

// TrendsService serves per-game stat series for one player.
type TrendsService struct {
	provider      StatsProvider
	headshots     *HeadshotResolver
	defaultSeason string
	logger        *logging.Logger
}

func NewTrendsService(provider StatsProvider, headshots *HeadshotResolver, defaultSeason string, logger *logging.Logger) *TrendsService {
	if logger == nil {
		logger = logging.Default()
	}
	return &TrendsService{
		provider:      provider,
		headshots:     headshots,
		defaultSeason: defaultSeason,
		logger:        logger,
	}
}

// PlayerTrends fetches, orders, and classifies the game-log series for one
// player. Only the "overall" source is accepted.
func (s *TrendsService) PlayerTrends(ctx context.Context, q TrendQuery) (TrendsResult, error) {
	if q.PlayerID <= 0 {
		return TrendsResult{}, crerr.Mark(crerr.New("player_id is required"), ErrInvalidInput)
	}

	source := strings.ToLower(strings.TrimSpace(q.Source))
	if source == "" {
		source = sourceOverall
	}
	if source != sourceOverall {
		return TrendsResult{}, crerr.Mark(crerr.New("source must be 'overall'"), ErrInvalidInput)
	}

	season := strings.TrimSpace(q.Season)
	if season == "" {
		season = s.defaultSeason
	}
	seasonType := strings.TrimSpace(q.SeasonType)
	if seasonType == "" {
		seasonType = defaultSeasonType
	}

	rows, err := s.provider.PlayerGameLogs(ctx, q.PlayerID, season, seasonType)
	if err != nil {
		return TrendsResult{}, crerr.Mark(crerr.Wrapf(err, "NBA API request failed for player %d", q.PlayerID), ErrUpstreamUnavailable)
	}

	gamelog.SortByGameDate(rows)

	headshot := s.headshots.Resolve(ctx, q.PlayerID)
	out := make([]gamelog.Row, 0, len(rows))
	for _, row := range rows {
		item := row.Clone()
		item["headshot_url"] = headshot
		out = append(out, item)
	}

	s.logger.DebugContext(ctx, "trends fetched",
		"player_id", q.PlayerID,
		"season", season,
		"season_type", seasonType,
		"rows", len(out),
	)

	return TrendsResult{
		PlayerID:   q.PlayerID,
		Source:     source,
		Season:     season,
		SeasonType: seasonType,
		Count:      len(out),
		Rows:       out,
		StatFields: gamelog.NumericFields(out),
	}, nil
}
