package httpapi

import (
	"log/slog"
	"net/http"
	"os"
)

func NewRouter(
	handler *Handler,
	logger *slog.Logger,
	corsAllowedOrigins []string,
	headshotDir string,
) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler)
	registerAPIRoutes(mux, handler)
	registerHeadshotRoutes(mux, headshotDir)

	return RequestTracing(RequestLogging(logger, CORS(corsAllowedOrigins, recoverPanic(logger, mux))))
}

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /api/health", handler.Health)
}

func registerAPIRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /api/players", handler.ListPlayers)
	mux.HandleFunc("GET /api/trends/player", handler.PlayerTrends)
	mux.HandleFunc("POST /api/cache/clear", handler.ClearCache)
}

func registerHeadshotRoutes(mux *http.ServeMux, headshotDir string) {
	if headshotDir == "" {
		return
	}
	if info, err := os.Stat(headshotDir); err != nil || !info.IsDir() {
		return
	}
	mux.Handle("GET /headshots/", http.StripPrefix("/headshots/", http.FileServer(http.Dir(headshotDir))))
}

func recoverPanic(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := startSpan(r.Context(), "httpapi.recoverPanic")
		defer span.End()

		defer func() {
			if rec := recover(); rec != nil {
				logger.ErrorContext(ctx, "panic recovered", "panic", rec)
				writeInternalError(ctx, w)
			}
		}()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
