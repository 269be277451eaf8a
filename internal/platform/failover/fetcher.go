package failover

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"

	"github.com/atticusobp/nba-trends/internal/platform/logging"
)

const (
	defaultAttemptTimeout = 5 * time.Second
	maxResponseBytes      = 6 << 20
)

// AttemptError records a single failed origin probe.
type AttemptError struct {
	Origin string
	Err    error
}

// AllOriginsError aggregates the per-origin failures of one fetch.
type AllOriginsError struct {
	Attempts []AttemptError
}

func (e *AllOriginsError) Error() string {
	var b strings.Builder
	b.WriteString("all origins failed")
	for _, attempt := range e.Attempts {
		fmt.Fprintf(&b, "; %s: %v", attempt.Origin, attempt.Err)
	}
	return b.String()
}

func (e *AllOriginsError) Unwrap() []error {
	errs := make([]error, 0, len(e.Attempts))
	for _, attempt := range e.Attempts {
		errs = append(errs, attempt.Err)
	}
	return errs
}

type Config struct {
	HTTPClient     *http.Client
	Origins        []string
	AttemptTimeout time.Duration
	Logger         *logging.Logger
}

// Fetcher probes a fixed, ordered list of origins until one answers.
type Fetcher struct {
	httpClient     *http.Client
	origins        []string
	attemptTimeout time.Duration
	logger         *logging.Logger
}

func New(cfg Config) (*Fetcher, error) {
	if len(cfg.Origins) == 0 {
		return nil, crerr.New("failover: at least one origin is required")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	attemptTimeout := cfg.AttemptTimeout
	if attemptTimeout <= 0 {
		attemptTimeout = defaultAttemptTimeout
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	return &Fetcher{
		httpClient:     httpClient,
		origins:        append([]string(nil), cfg.Origins...),
		attemptTimeout: attemptTimeout,
		logger:         logger,
	}, nil
}

func (f *Fetcher) OriginList() []string {
	return append([]string(nil), f.origins...)
}

// GetJSON issues GET {origin}{path}?{query} against each origin in order and
// decodes the first successful body into out. Later origins are never
// contacted once one succeeds.
func (f *Fetcher) GetJSON(ctx context.Context, path string, query url.Values, out any) error {
	body, origin, err := f.Get(ctx, path, query)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := sonic.Unmarshal(body, out); err != nil {
		return crerr.Wrapf(err, "failover: decode response from %s", origin)
	}
	return nil
}

// Get returns the raw body and the origin that served it.
func (f *Fetcher) Get(ctx context.Context, path string, query url.Values) ([]byte, string, error) {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	attempts := make([]AttemptError, 0, len(f.origins))
	for _, origin := range f.origins {
		body, err := f.attempt(ctx, origin, path, query)
		if err == nil {
			return body, origin, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, "", crerr.Wrap(ctxErr, "failover: fetch canceled")
		}
		f.logger.WarnContext(ctx, "origin attempt failed",
			"origin", origin,
			"path", path,
			"error", err,
		)
		attempts = append(attempts, AttemptError{Origin: origin, Err: err})
	}

	return nil, "", &AllOriginsError{Attempts: attempts}
}

func (f *Fetcher) attempt(ctx context.Context, origin, path string, query url.Values) ([]byte, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, f.attemptTimeout)
	defer cancel()

	endpoint := origin + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(attemptCtx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, crerr.Wrap(err, "build request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, crerr.Wrap(err, "read response body")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, crerr.Newf("unexpected status %d", resp.StatusCode)
	}

	return body, nil
}
