package httpapi

import (
	"net/http"
	"testing"

	crerr "github.com/cockroachdb/errors"

	"github.com/atticusobp/nba-trends/internal/usecase"
)

func TestMapErrorStatus_SeesMarkedSentinels(t *testing.T) {
	t.Parallel()

	// The usecase layer attaches sentinels with crerr.Mark so the detail
	// message stays clean; the mark must still drive the status code.
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantDetail string
	}{
		{
			name:       "marked validation error",
			err:        crerr.Mark(crerr.New("player_id is required"), usecase.ErrInvalidInput),
			wantStatus: http.StatusBadRequest,
			wantDetail: "player_id is required",
		},
		{
			name:       "marked source gate",
			err:        crerr.Mark(crerr.New("source must be 'overall'"), usecase.ErrInvalidInput),
			wantStatus: http.StatusBadRequest,
			wantDetail: "source must be 'overall'",
		},
		{
			name:       "marked wrapped upstream error",
			err:        crerr.Mark(crerr.Wrapf(crerr.New("status=503"), "NBA API request failed for season %s", "2025-26"), usecase.ErrUpstreamUnavailable),
			wantStatus: http.StatusBadGateway,
			wantDetail: "NBA API request failed for season 2025-26: status=503",
		},
		{
			name:       "unmarked error",
			err:        crerr.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantDetail: "boom",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := mapErrorStatus(tc.err); got != tc.wantStatus {
				t.Fatalf("mapErrorStatus = %d, want %d", got, tc.wantStatus)
			}
			if got := tc.err.Error(); got != tc.wantDetail {
				t.Fatalf("detail = %q, want %q", got, tc.wantDetail)
			}
		})
	}
}
