package httpapi

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	crerr "github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"

	"github.com/atticusobp/nba-trends/internal/platform/cache"
	"github.com/atticusobp/nba-trends/internal/usecase"
)

type Handler struct {
	rosterService *usecase.RosterService
	trendsService *usecase.TrendsService
	headshots     *usecase.HeadshotResolver
	cacheStore    *cache.Store
	defaultSeason string
	logger        *slog.Logger
	validator     *validator.Validate
}

func NewHandler(
	rosterService *usecase.RosterService,
	trendsService *usecase.TrendsService,
	headshots *usecase.HeadshotResolver,
	cacheStore *cache.Store,
	defaultSeason string,
	logger *slog.Logger,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		rosterService: rosterService,
		trendsService: trendsService,
		headshots:     headshots,
		cacheStore:    cacheStore,
		defaultSeason: defaultSeason,
		logger:        logger,
		validator:     validator.New(),
	}
}

type healthDTO struct {
	OK                bool   `json:"ok"`
	Mode              string `json:"mode"`
	DefaultSeason     string `json:"default_season"`
	Note              string `json:"note"`
	HeadshotDir       string `json:"headshot_dir"`
	HeadshotsDetected int    `json:"headshots_detected"`
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Health")
	defer span.End()

	writeJSON(ctx, w, http.StatusOK, healthDTO{
		OK:                true,
		Mode:              "live",
		DefaultSeason:     h.defaultSeason,
		Note:              "proxying stats.nba.com with a short-lived response cache",
		HeadshotDir:       h.headshots.Dir(),
		HeadshotsDetected: len(h.headshots.Index(ctx)),
	})
}

func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayers")
	defer span.End()

	result, err := h.rosterService.Players(ctx, r.URL.Query().Get("season"))
	if err != nil {
		h.logger.ErrorContext(ctx, "list players failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, result)
}

type trendsRequest struct {
	PlayerID   int64  `validate:"required,gt=0"`
	Source     string `validate:"omitempty,oneof=overall"`
	Season     string
	SeasonType string
}

func (h *Handler) PlayerTrends(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PlayerTrends")
	defer span.End()

	query := r.URL.Query()
	req := trendsRequest{
		Source:     strings.ToLower(strings.TrimSpace(query.Get("source"))),
		Season:     query.Get("season"),
		SeasonType: query.Get("season_type"),
	}

	if raw := strings.TrimSpace(query.Get("player_id")); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeError(ctx, w, crerr.Mark(crerr.New("player_id must be an integer"), usecase.ErrInvalidInput))
			return
		}
		req.PlayerID = id
	}

	if err := h.validator.StructCtx(ctx, req); err != nil {
		writeError(ctx, w, mapTrendsValidationError(err))
		return
	}

	result, err := h.trendsService.PlayerTrends(ctx, usecase.TrendQuery{
		PlayerID:   req.PlayerID,
		Source:     req.Source,
		Season:     req.Season,
		SeasonType: req.SeasonType,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "player trends failed", "player_id", req.PlayerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, result)
}

func mapTrendsValidationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		for _, fieldErr := range fieldErrs {
			switch fieldErr.Field() {
			case "PlayerID":
				return crerr.Mark(crerr.New("player_id is required"), usecase.ErrInvalidInput)
			case "Source":
				return crerr.Mark(crerr.New("source must be 'overall'"), usecase.ErrInvalidInput)
			}
		}
	}
	return crerr.Mark(err, usecase.ErrInvalidInput)
}

type cacheClearDTO struct {
	OK      bool `json:"ok"`
	Cleared int  `json:"cleared"`
}

func (h *Handler) ClearCache(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ClearCache")
	defer span.End()

	cleared := h.cacheStore.Flush(ctx)
	h.logger.InfoContext(ctx, "cache cleared", "entries", cleared)

	writeJSON(ctx, w, http.StatusOK, cacheClearDTO{OK: true, Cleared: cleared})
}
