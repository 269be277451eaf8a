package httpapi

import (
	"context"
	"net/http"

	"github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"

	"github.com/atticusobp/nba-trends/internal/usecase"
)

// errorBody is the failure shape the dashboard consumes: a single
// human-readable detail message.
type errorBody struct {
	Detail string `json:"detail"`
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	ctx, span := startSpan(ctx, "httpapi.writeJSON")
	defer span.End()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(payload)
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	ctx, span := startSpan(ctx, "httpapi.writeError")
	defer span.End()

	writeJSON(ctx, w, mapErrorStatus(err), errorBody{Detail: err.Error()})
}

func writeInternalError(ctx context.Context, w http.ResponseWriter) {
	ctx, span := startSpan(ctx, "httpapi.writeInternalError")
	defer span.End()

	writeJSON(ctx, w, http.StatusInternalServerError, errorBody{Detail: "internal server error"})
}

// mapErrorStatus matches with crerr.Is because the usecase layer attaches
// its sentinels via crerr.Mark; mark references are invisible to the
// standard library's unwrap chain.
func mapErrorStatus(err error) int {
	switch {
	case crerr.Is(err, usecase.ErrInvalidInput):
		return http.StatusBadRequest
	case crerr.Is(err, usecase.ErrUpstreamUnavailable):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
