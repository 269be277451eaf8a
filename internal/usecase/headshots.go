package usecase

import (
	"context"
	"os"
	"regexp"
	"strconv"

	"github.com/atticusobp/nba-trends/internal/domain/player"
	"github.com/atticusobp/nba-trends/internal/platform/cache"
	"github.com/atticusobp/nba-trends/internal/platform/logging"
)

const headshotIndexKey = "headshot_index_v1"

var headshotFileRegex = regexp.MustCompile(`^player_(\d+)_26\.jpg$`)

// HeadshotResolver maps player ids to headshot URLs, preferring locally
// downloaded files served under /headshots and falling back to the league
// CDN. The directory scan is cached alongside upstream payloads so a fresh
// download batch shows up after one TTL window.
type HeadshotResolver struct {
	dir    string
	cache  *cache.Store
	logger *logging.Logger
}

func NewHeadshotResolver(dir string, store *cache.Store, logger *logging.Logger) *HeadshotResolver {
	if logger == nil {
		logger = logging.Default()
	}
	return &HeadshotResolver{
		dir:    dir,
		cache:  store,
		logger: logger,
	}
}

// Dir reports the directory being scanned.
func (r *HeadshotResolver) Dir() string {
	return r.dir
}

// Index returns the player-id to local-path mapping for downloaded
// headshots. An unreadable or absent directory yields an empty index.
func (r *HeadshotResolver) Index(ctx context.Context) map[int64]string {
	if r.cache != nil {
		if cached, ok := r.cache.Get(ctx, headshotIndexKey); ok {
			if index, ok := cached.(map[int64]string); ok {
				return index
			}
		}
	}

	index := r.scan(ctx)
	if r.cache != nil {
		r.cache.Set(ctx, headshotIndexKey, index)
	}
	return index
}

// Resolve returns the headshot URL for playerID using a fresh index.
func (r *HeadshotResolver) Resolve(ctx context.Context, playerID int64) string {
	return ResolveHeadshot(r.Index(ctx), playerID)
}

// ResolveHeadshot picks the local file when the index has one, otherwise
// the deterministic CDN location. Callers that loop over many players
// fetch the index once and use this directly.
func ResolveHeadshot(index map[int64]string, playerID int64) string {
	if local, ok := index[playerID]; ok && local != "" {
		return local
	}
	return player.CDNHeadshotURL(playerID)
}

func (r *HeadshotResolver) scan(ctx context.Context) map[int64]string {
	index := make(map[int64]string)
	if r.dir == "" {
		return index
	}

	entries, err := os.ReadDir(r.dir)
	if err != nil {
		if !os.IsNotExist(err) {
			r.logger.WarnContext(ctx, "headshot directory scan failed", "dir", r.dir, "error", err)
		}
		return index
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		m := headshotFileRegex.FindStringSubmatch(entry.Name())
		if m == nil {
			continue
		}
		id, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			continue
		}
		index[id] = "/headshots/" + entry.Name()
	}

	return index
}
