package httpapi

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bytedance/sonic"

	"github.com/atticusobp/nba-trends/internal/domain/gamelog"
	"github.com/atticusobp/nba-trends/internal/platform/cache"
	"github.com/atticusobp/nba-trends/internal/usecase"
)

type stubProvider struct {
	rosterRows  []gamelog.Row
	rosterErr   error
	gameLogRows []gamelog.Row
	gameLogErr  error
}

func (s *stubProvider) CommonAllPlayers(context.Context, string) ([]gamelog.Row, error) {
	return s.rosterRows, s.rosterErr
}

func (s *stubProvider) PlayerGameLogs(context.Context, int64, string, string) ([]gamelog.Row, error) {
	return s.gameLogRows, s.gameLogErr
}

func newTestRouter(t *testing.T, provider usecase.StatsProvider, store *cache.Store) http.Handler {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	headshots := usecase.NewHeadshotResolver(t.TempDir(), nil, nil)
	handler := NewHandler(
		usecase.NewRosterService(provider, headshots, "2025-26", nil),
		usecase.NewTrendsService(provider, headshots, "2025-26", nil),
		headshots,
		store,
		"2025-26",
		logger,
	)
	return NewRouter(handler, logger, []string{"*"}, "")
}

func doRequest(t *testing.T, router http.Handler, method, target string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var body map[string]any
	if len(rec.Body.Bytes()) > 0 {
		if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode response %q: %v", rec.Body.String(), err)
		}
	}
	return rec, body
}

func TestHealthEndpoint(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, &stubProvider{}, cache.NewStore(time.Minute))
	rec, body := doRequest(t, router, http.MethodGet, "/api/health")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if body["ok"] != true || body["mode"] != "live" {
		t.Fatalf("unexpected health body: %v", body)
	}
	if body["default_season"] != "2025-26" {
		t.Fatalf("default_season = %v", body["default_season"])
	}
}

func TestPlayersEndpoint_Success(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{
		rosterRows: []gamelog.Row{
			{
				"PERSON_ID":          float64(203507),
				"DISPLAY_FIRST_LAST": "Giannis Antetokounmpo",
				"TEAM_ABBREVIATION":  "MIL",
				"ROSTERSTATUS":       float64(1),
			},
		},
	}
	router := newTestRouter(t, provider, cache.NewStore(time.Minute))
	rec, body := doRequest(t, router, http.MethodGet, "/api/players?season=2025-26")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body.String())
	}
	if body["season"] != "2025-26" || body["count"] != float64(1) {
		t.Fatalf("unexpected body: %v", body)
	}
	players, ok := body["players"].([]any)
	if !ok || len(players) != 1 {
		t.Fatalf("players = %v", body["players"])
	}
}

func TestPlayersEndpoint_UpstreamFailureIs502(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{rosterErr: errors.New("connection refused")}
	router := newTestRouter(t, provider, cache.NewStore(time.Minute))
	rec, body := doRequest(t, router, http.MethodGet, "/api/players")

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d", rec.Code)
	}
	detail, _ := body["detail"].(string)
	if detail == "" {
		t.Fatalf("expected detail message, got %v", body)
	}
}

func TestTrendsEndpoint_MissingPlayerIDIs400(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, &stubProvider{}, cache.NewStore(time.Minute))
	rec, body := doRequest(t, router, http.MethodGet, "/api/trends/player")

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	if body["detail"] != "player_id is required" {
		t.Fatalf("detail = %v", body["detail"])
	}
}

func TestTrendsEndpoint_NonNumericPlayerIDIs400(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, &stubProvider{}, cache.NewStore(time.Minute))
	rec, body := doRequest(t, router, http.MethodGet, "/api/trends/player?player_id=lebron")

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	if body["detail"] != "player_id must be an integer" {
		t.Fatalf("detail = %v", body["detail"])
	}
}

func TestTrendsEndpoint_UnknownSourceIs400(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, &stubProvider{}, cache.NewStore(time.Minute))
	rec, body := doRequest(t, router, http.MethodGet, "/api/trends/player?player_id=203507&source=tracking")

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	if body["detail"] != "source must be 'overall'" {
		t.Fatalf("detail = %v", body["detail"])
	}
}

func TestTrendsEndpoint_SuccessIsSorted(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{
		gameLogRows: []gamelog.Row{
			{"GAME_DATE": "2025-01-10", "PTS": float64(30)},
			{"GAME_DATE": "2025-01-05", "PTS": float64(12)},
			{"GAME_DATE": "2025-01-08", "PTS": float64(21)},
		},
	}
	router := newTestRouter(t, provider, cache.NewStore(time.Minute))
	rec, body := doRequest(t, router, http.MethodGet, "/api/trends/player?player_id=203507")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body.String())
	}
	rows, ok := body["rows"].([]any)
	if !ok || len(rows) != 3 {
		t.Fatalf("rows = %v", body["rows"])
	}
	want := []string{"2025-01-05", "2025-01-08", "2025-01-10"}
	for i, date := range want {
		row, _ := rows[i].(map[string]any)
		if row["GAME_DATE"] != date {
			t.Fatalf("row %d GAME_DATE = %v, want %s", i, row["GAME_DATE"], date)
		}
	}
	fields, ok := body["stat_fields"].([]any)
	if !ok || len(fields) != 1 || fields[0] != "PTS" {
		t.Fatalf("stat_fields = %v", body["stat_fields"])
	}
}

func TestCacheClearEndpoint(t *testing.T) {
	t.Parallel()

	store := cache.NewStore(time.Minute)
	store.Set(context.Background(), "k", "v")

	router := newTestRouter(t, &stubProvider{}, store)
	rec, body := doRequest(t, router, http.MethodPost, "/api/cache/clear")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if body["ok"] != true || body["cleared"] != float64(1) {
		t.Fatalf("unexpected body: %v", body)
	}
	if store.Len(context.Background()) != 0 {
		t.Fatalf("store not flushed")
	}
}
