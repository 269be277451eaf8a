package usecase

import (
	"context"
	"strings"

	crerr "github.com/cockroachdb/errors"

	"github.com/atticusobp/nba-trends/internal/domain/gamelog"
	"github.com/atticusobp/nba-trends/internal/domain/player"
	"github.com/atticusobp/nba-trends/internal/platform/logging"
)

// StatsProvider is the slice of the upstream client the services need.
type StatsProvider interface {
	CommonAllPlayers(ctx context.Context, season string) ([]gamelog.Row, error)
	PlayerGameLogs(ctx context.Context, playerID int64, season, seasonType string) ([]gamelog.Row, error)
}

type RosterResult struct {
	Season  string          `json:"season"`
	Count   int             `json:"count"`
	Players []player.Player `json:"players"`
}

// RosterService serves the league roster for a season.
type RosterService struct {
	provider      StatsProvider
	headshots     *HeadshotResolver
	defaultSeason string
	logger        *logging.Logger
}

func NewRosterService(provider StatsProvider, headshots *HeadshotResolver, defaultSeason string, logger *logging.Logger) *RosterService {
	if logger == nil {
		logger = logging.Default()
	}
	return &RosterService{
		provider:      provider,
		headshots:     headshots,
		defaultSeason: defaultSeason,
		logger:        logger,
	}
}

func (s *RosterService) DefaultSeason() string {
	return s.defaultSeason
}

// Players fetches the roster for season, defaulting to the configured
// current season when blank.
func (s *RosterService) Players(ctx context.Context, season string) (RosterResult, error) {
	season = strings.TrimSpace(season)
	if season == "" {
		season = s.defaultSeason
	}

	rows, err := s.provider.CommonAllPlayers(ctx, season)
	if err != nil {
		return RosterResult{}, crerr.Mark(crerr.Wrapf(err, "NBA API request failed for season %s", season), ErrUpstreamUnavailable)
	}
	if len(rows) == 0 {
		return RosterResult{}, crerr.Mark(crerr.New("no data returned from NBA API"), ErrUpstreamUnavailable)
	}

	index := s.headshots.Index(ctx)
	players := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		pid, ok := row.Int("PERSON_ID")
		if !ok || pid <= 0 {
			continue
		}

		teamID, _ := row.Int("TEAM_ID")
		rosterStatus, _ := row.Int("ROSTERSTATUS")

		headshot := ResolveHeadshot(index, pid)
		if raw := row.String("HEADSHOT_URL"); player.WellFormedImageURL(raw) {
			headshot = strings.TrimSpace(raw)
		}

		players = append(players, player.Player{
			PlayerID:    pid,
			Name:        row.String("DISPLAY_FIRST_LAST"),
			TeamID:      teamID,
			Team:        row.String("TEAM_ABBREVIATION"),
			IsActive:    rosterStatus == player.ActiveRosterStatus,
			HeadshotURL: headshot,
		})
	}

	s.logger.DebugContext(ctx, "roster fetched", "season", season, "players", len(players))

	return RosterResult{
		Season:  season,
		Count:   len(players),
		Players: players,
	}, nil
}
