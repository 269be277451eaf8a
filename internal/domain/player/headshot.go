package player

import (
	"fmt"
	"strings"
)

const cdnHeadshotTemplate = "https://cdn.nba.com/headshots/nba/latest/260x190/%d.png"

// CDNHeadshotURL derives the league CDN headshot location for a player id.
func CDNHeadshotURL(playerID int64) string {
	return fmt.Sprintf(cdnHeadshotTemplate, playerID)
}

// WellFormedImageURL reports whether raw is an absolute URL with a
// recognized protocol. Upstream-supplied values that fail this check are
// ignored in favor of the derived CDN location.
func WellFormedImageURL(raw string) bool {
	raw = strings.TrimSpace(raw)
	return strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://")
}
