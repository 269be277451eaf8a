package nbastats

import "net/http"

// stats.nba.com rejects requests that do not look like they came from the
// official site. This is the documented, static header set the site itself
// sends; none of it is secret.
var statsHeaders = map[string]string{
	"Accept":             "application/json, text/plain, */*",
	"Accept-Language":    "en-US,en;q=0.9",
	"Referer":            "https://stats.nba.com/",
	"Origin":             "https://www.nba.com",
	"User-Agent":         "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36",
	"x-nba-stats-origin": "stats",
	"x-nba-stats-token":  "true",
}

func applyStatsHeaders(req *http.Request) {
	for key, value := range statsHeaders {
		req.Header.Set(key, value)
	}
}
