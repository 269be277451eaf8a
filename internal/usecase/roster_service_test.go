package usecase

import (
	"context"
	"errors"
	"testing"

	crerr "github.com/cockroachdb/errors"

	"github.com/atticusobp/nba-trends/internal/domain/gamelog"
)

type fakeStatsProvider struct {
	rosterRows   []gamelog.Row
	rosterErr    error
	rosterSeason string

	gameLogRows  []gamelog.Row
	gameLogErr   error
	gameLogCall  TrendQuery
	gameLogCalls int
}

func (f *fakeStatsProvider) CommonAllPlayers(_ context.Context, season string) ([]gamelog.Row, error) {
	f.rosterSeason = season
	return f.rosterRows, f.rosterErr
}

func (f *fakeStatsProvider) PlayerGameLogs(_ context.Context, playerID int64, season, seasonType string) ([]gamelog.Row, error) {
	f.gameLogCall = TrendQuery{PlayerID: playerID, Season: season, SeasonType: seasonType}
	f.gameLogCalls++
	return f.gameLogRows, f.gameLogErr
}

func newTestRosterService(provider StatsProvider, dir string) *RosterService {
	return NewRosterService(provider, NewHeadshotResolver(dir, nil, nil), "2025-26", nil)
}

func TestRosterService_MapsUpstreamRows(t *testing.T) {
	t.Parallel()

	provider := &fakeStatsProvider{
		rosterRows: []gamelog.Row{
			{
				"PERSON_ID":          float64(203507),
				"DISPLAY_FIRST_LAST": "Giannis Antetokounmpo",
				"TEAM_ID":            float64(1610612749),
				"TEAM_ABBREVIATION":  "MIL",
				"ROSTERSTATUS":       float64(1),
			},
			{
				"PERSON_ID":          float64(1713),
				"DISPLAY_FIRST_LAST": "Vince Carter",
				"ROSTERSTATUS":       float64(0),
			},
			{"DISPLAY_FIRST_LAST": "No Id Row"},
		},
	}

	service := newTestRosterService(provider, t.TempDir())
	result, err := service.Players(context.Background(), "2025-26")
	if err != nil {
		t.Fatalf("Players: %v", err)
	}

	if result.Season != "2025-26" || result.Count != 2 || len(result.Players) != 2 {
		t.Fatalf("unexpected result envelope: %+v", result)
	}

	first := result.Players[0]
	if first.PlayerID != 203507 || first.Team != "MIL" || !first.IsActive {
		t.Fatalf("unexpected first player: %+v", first)
	}
	if first.HeadshotURL != "https://cdn.nba.com/headshots/nba/latest/260x190/203507.png" {
		t.Fatalf("unexpected headshot: %q", first.HeadshotURL)
	}
	if result.Players[1].IsActive {
		t.Fatalf("roster status 0 must map to inactive")
	}
}

func TestRosterService_UpstreamHeadshotURLPassthrough(t *testing.T) {
	t.Parallel()

	provider := &fakeStatsProvider{
		rosterRows: []gamelog.Row{
			{
				"PERSON_ID":    float64(2544),
				"HEADSHOT_URL": "https://ak-static.cms.nba.com/wp-content/uploads/headshots/2544.png",
			},
			{
				"PERSON_ID":    float64(203507),
				"HEADSHOT_URL": "ak-static.cms.nba.com/no-scheme.png",
			},
			{
				"PERSON_ID":    float64(1629029),
				"HEADSHOT_URL": "  http://cdn.example.com/1629029.png ",
			},
		},
	}
	service := newTestRosterService(provider, t.TempDir())

	result, err := service.Players(context.Background(), "2025-26")
	if err != nil {
		t.Fatalf("Players: %v", err)
	}

	if got := result.Players[0].HeadshotURL; got != "https://ak-static.cms.nba.com/wp-content/uploads/headshots/2544.png" {
		t.Fatalf("well-formed upstream URL must pass through, got %q", got)
	}
	if got := result.Players[1].HeadshotURL; got != "https://cdn.nba.com/headshots/nba/latest/260x190/203507.png" {
		t.Fatalf("scheme-less upstream URL must fall back to CDN, got %q", got)
	}
	if got := result.Players[2].HeadshotURL; got != "http://cdn.example.com/1629029.png" {
		t.Fatalf("http URL must pass through trimmed, got %q", got)
	}
}

func TestRosterService_BlankSeasonUsesDefault(t *testing.T) {
	t.Parallel()

	provider := &fakeStatsProvider{
		rosterRows: []gamelog.Row{{"PERSON_ID": float64(1)}},
	}
	service := newTestRosterService(provider, t.TempDir())

	result, err := service.Players(context.Background(), "   ")
	if err != nil {
		t.Fatalf("Players: %v", err)
	}
	if provider.rosterSeason != "2025-26" || result.Season != "2025-26" {
		t.Fatalf("expected default season, provider got %q, result %q", provider.rosterSeason, result.Season)
	}
}

func TestRosterService_MissingRosterStatusIsInactive(t *testing.T) {
	t.Parallel()

	provider := &fakeStatsProvider{
		rosterRows: []gamelog.Row{{"PERSON_ID": float64(42)}},
	}
	service := newTestRosterService(provider, t.TempDir())

	result, err := service.Players(context.Background(), "")
	if err != nil {
		t.Fatalf("Players: %v", err)
	}
	if result.Players[0].IsActive {
		t.Fatalf("missing ROSTERSTATUS must map to inactive")
	}
}

func TestRosterService_UpstreamFailure(t *testing.T) {
	t.Parallel()

	provider := &fakeStatsProvider{rosterErr: errors.New("connection refused")}
	service := newTestRosterService(provider, t.TempDir())

	_, err := service.Players(context.Background(), "")
	if !crerr.Is(err, ErrUpstreamUnavailable) {
		t.Fatalf("expected ErrUpstreamUnavailable, got %v", err)
	}
}

func TestRosterService_EmptyUpstreamIsFailure(t *testing.T) {
	t.Parallel()

	provider := &fakeStatsProvider{}
	service := newTestRosterService(provider, t.TempDir())

	_, err := service.Players(context.Background(), "")
	if !crerr.Is(err, ErrUpstreamUnavailable) {
		t.Fatalf("expected ErrUpstreamUnavailable for empty roster, got %v", err)
	}
}
