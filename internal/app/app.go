package app

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/atticusobp/nba-trends/external/nbastats"
	"github.com/atticusobp/nba-trends/internal/config"
	"github.com/atticusobp/nba-trends/internal/interfaces/httpapi"
	"github.com/atticusobp/nba-trends/internal/platform/cache"
	"github.com/atticusobp/nba-trends/internal/platform/logging"
	"github.com/atticusobp/nba-trends/internal/usecase"
)

func NewHTTPServer(cfg config.Config, logger *slog.Logger) (*http.Server, error) {
	zlog := logging.Default()

	store := cache.NewStore(cfg.CacheTTL)

	statsClient := nbastats.NewClient(nbastats.ClientConfig{
		BaseURL: cfg.NBAStatsBaseURL,
		Timeout: cfg.NBAStatsTimeout,
		Cache:   store,
		Logger:  zlog,
	})

	headshots := usecase.NewHeadshotResolver(cfg.HeadshotDir, store, zlog)
	rosterSvc := usecase.NewRosterService(statsClient, headshots, cfg.DefaultSeason, zlog)
	trendsSvc := usecase.NewTrendsService(statsClient, headshots, cfg.DefaultSeason, zlog)

	handler := httpapi.NewHandler(rosterSvc, trendsSvc, headshots, store, cfg.DefaultSeason, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, cfg.HeadshotDir)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, nil
}
