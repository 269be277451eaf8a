// Command staticdata snapshots the API into static JSON files so the
// dashboard can be served without a live backend. It can also mirror CDN
// headshots into a local directory.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/panjf2000/ants/v2"

	apiclient "github.com/atticusobp/nba-trends/client"
	"github.com/atticusobp/nba-trends/internal/domain/gamelog"
	"github.com/atticusobp/nba-trends/internal/domain/player"
	"github.com/atticusobp/nba-trends/internal/platform/logging"
)

var seasonTypes = []string{"Regular Season", "Playoffs"}

type options struct {
	output            string
	seasons           []string
	defaultSeason     string
	originOverride    string
	origins           []string
	concurrency       int
	attemptTimeout    time.Duration
	downloadHeadshots bool
	headshotDir       string
	headshotSize      string
}

func main() {
	var (
		output         = flag.String("output", "data", "output data directory")
		seasons        = flag.String("seasons", "", "comma-separated seasons, e.g. 2024-25,2025-26")
		defaultSeason  = flag.String("default-season", envOr("DEFAULT_SEASON", "2025-26"), "season the manifest marks as default")
		origin         = flag.String("origin", envOr("API_ORIGIN", ""), "origin tried before all others")
		origins        = flag.String("origins", envOr("API_ORIGINS", ""), "comma-separated API origins")
		concurrency    = flag.Int("concurrency", 4, "concurrent per-player requests")
		attemptTimeout = flag.Duration("attempt-timeout", 30*time.Second, "per-origin request timeout")
		downloadHS     = flag.Bool("download-headshots", false, "download player headshots instead of building data files")
		headshotDir    = flag.String("headshot-dir", "headshots", "directory for downloaded headshots")
		headshotSize   = flag.String("headshot-size", "260x190", "CDN headshot size path, e.g. 260x190 or 1040x760")
	)
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	opts := options{
		output:            *output,
		seasons:           splitCSV(*seasons),
		defaultSeason:     *defaultSeason,
		originOverride:    *origin,
		origins:           splitCSV(*origins),
		concurrency:       *concurrency,
		attemptTimeout:    *attemptTimeout,
		downloadHeadshots: *downloadHS,
		headshotDir:       *headshotDir,
		headshotSize:      *headshotSize,
	}
	if len(opts.seasons) == 0 {
		opts.seasons = []string{opts.defaultSeason}
	}
	if opts.concurrency < 1 {
		opts.concurrency = 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, opts, logger); err != nil {
		logger.Error("staticdata failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options, logger *slog.Logger) error {
	c, err := apiclient.New(apiclient.Config{
		OriginOverride: opts.originOverride,
		Origins:        opts.origins,
		AttemptTimeout: opts.attemptTimeout,
		Logger:         logging.Default(),
	})
	if err != nil {
		return err
	}
	logger.Info("using origins", "origins", strings.Join(c.OriginList(), ","))

	if opts.downloadHeadshots {
		return downloadHeadshots(ctx, c, opts, logger)
	}
	return buildSnapshot(ctx, c, opts, logger)
}

type playersPayload struct {
	Season  string          `json:"season"`
	Count   int             `json:"count"`
	Players []player.Player `json:"players"`
}

type gamelogsPayload struct {
	Season     string        `json:"season"`
	SeasonType string        `json:"season_type"`
	Count      int           `json:"count"`
	StatFields []string      `json:"stat_fields"`
	Rows       []gamelog.Row `json:"rows"`
}

type manifest struct {
	GeneratedAt string        `json:"generated_at"`
	Default     string        `json:"default_season"`
	Seasons     []string      `json:"seasons"`
	SeasonTypes []string      `json:"season_types"`
	Files       manifestFiles `json:"files"`
}

type manifestFiles struct {
	Players  map[string]string            `json:"players"`
	Gamelogs map[string]map[string]string `json:"gamelogs"`
}

func buildSnapshot(ctx context.Context, c *apiclient.Client, opts options, logger *slog.Logger) error {
	files := manifestFiles{
		Players:  make(map[string]string),
		Gamelogs: make(map[string]map[string]string),
	}

	for _, season := range opts.seasons {
		logger.Info("loading players", "season", season)
		resp, err := c.Players(ctx, season)
		if err != nil {
			return fmt.Errorf("players %s: %w", season, err)
		}

		active := activePlayers(resp.Players)
		logger.Info("active players", "season", season, "count", len(active))

		files.Gamelogs[season] = make(map[string]string)
		for _, seasonType := range seasonTypes {
			payload, err := buildGamelogs(ctx, c, season, seasonType, active, opts.concurrency, logger)
			if err != nil {
				return err
			}
			rel := filepath.Join("gamelogs", season, seasonTypeSlug(seasonType)+".json")
			if err := writeJSON(filepath.Join(opts.output, rel), payload); err != nil {
				return err
			}
			files.Gamelogs[season][seasonTypeSlug(seasonType)] = rel
		}

		rel := filepath.Join("players", season+".json")
		if err := writeJSON(filepath.Join(opts.output, rel), playersPayload{
			Season:  season,
			Count:   len(active),
			Players: active,
		}); err != nil {
			return err
		}
		files.Players[season] = rel
	}

	defaultSeason := opts.seasons[0]
	for _, s := range opts.seasons {
		if s == opts.defaultSeason {
			defaultSeason = s
			break
		}
	}

	return writeJSON(filepath.Join(opts.output, "manifest.json"), manifest{
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Default:     defaultSeason,
		Seasons:     opts.seasons,
		SeasonTypes: seasonTypes,
		Files:       files,
	})
}

func buildGamelogs(
	ctx context.Context,
	c *apiclient.Client,
	season, seasonType string,
	active []player.Player,
	concurrency int,
	logger *slog.Logger,
) (gamelogsPayload, error) {
	pool, err := ants.NewPool(concurrency)
	if err != nil {
		return gamelogsPayload{}, err
	}
	defer pool.Release()

	var (
		mu       sync.Mutex
		rows     []gamelog.Row
		failures int
		wg       sync.WaitGroup
	)

	for _, p := range active {
		playerID := p.PlayerID
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			resp, err := c.PlayerTrends(ctx, apiclient.TrendsQuery{
				PlayerID:   playerID,
				Season:     season,
				SeasonType: seasonType,
			})
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failures++
				logger.Warn("player fetch failed", "player_id", playerID, "error", err)
				return
			}
			rows = append(rows, resp.Rows...)
		})
		if submitErr != nil {
			wg.Done()
			return gamelogsPayload{}, submitErr
		}
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return gamelogsPayload{}, err
	}

	rows = gamelog.DedupeByGame(gamelog.FilterReal(rows))
	gamelog.SortByGameDateThenPlayer(rows)

	logger.Info("built gamelogs",
		"season", season,
		"season_type", seasonType,
		"rows", len(rows),
		"failures", failures,
	)
	if failures > 25 {
		return gamelogsPayload{}, fmt.Errorf("too many per-player failures for %s %s: %d", season, seasonType, failures)
	}

	return gamelogsPayload{
		Season:     season,
		SeasonType: seasonType,
		Count:      len(rows),
		StatFields: gamelog.NumericFields(rows),
		Rows:       rows,
	}, nil
}

func downloadHeadshots(ctx context.Context, c *apiclient.Client, opts options, logger *slog.Logger) error {
	season := opts.defaultSeason
	if len(opts.seasons) > 0 {
		season = opts.seasons[0]
	}
	resp, err := c.Players(ctx, season)
	if err != nil {
		return fmt.Errorf("players %s: %w", season, err)
	}

	if err := os.MkdirAll(opts.headshotDir, 0o755); err != nil {
		return err
	}

	httpClient := &http.Client{Timeout: 30 * time.Second}
	ok, failed := 0, 0
	for _, p := range resp.Players {
		if p.PlayerID <= 0 {
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		target := filepath.Join(opts.headshotDir, fmt.Sprintf("%d.png", p.PlayerID))
		if info, statErr := os.Stat(target); statErr == nil && info.Size() > 0 {
			ok++
			continue
		}
		url := fmt.Sprintf("https://cdn.nba.com/headshots/nba/latest/%s/%d.png", opts.headshotSize, p.PlayerID)
		if err := downloadFile(ctx, httpClient, url, target); err != nil {
			failed++
			logger.Warn("headshot download failed", "player_id", p.PlayerID, "error", err)
			continue
		}
		ok++
	}

	logger.Info("headshot download complete", "ok", ok, "failed", failed, "dir", opts.headshotDir)
	return nil
}

func downloadFile(ctx context.Context, httpClient *http.Client, url, target string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if len(body) == 0 {
		return fmt.Errorf("empty body for %s", url)
	}
	return os.WriteFile(target, body, 0o644)
}

func activePlayers(players []player.Player) []player.Player {
	out := make([]player.Player, 0, len(players))
	for _, p := range players {
		if p.IsActive {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].PlayerID < out[j].PlayerID
	})
	return out
}

var slugSpaces = regexp.MustCompile(`\s+`)

func seasonTypeSlug(seasonType string) string {
	return slugSpaces.ReplaceAllString(strings.ToLower(strings.TrimSpace(seasonType)), "-")
}

func writeJSON(path string, v any) error {
	raw, err := sonic.Marshal(v)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0o644)
}

func splitCSV(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
