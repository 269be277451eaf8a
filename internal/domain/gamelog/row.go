package gamelog

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Row is one player-game observation keyed by upstream column name. The
// column set is upstream-declared, so values stay loosely typed.
type Row map[string]any

// FieldGameDate is the primary game-date column on stats.nba.com rows.
const FieldGameDate = "GAME_DATE"

// Clone returns a shallow copy so callers can inject fields without
// mutating cached rows.
func (r Row) Clone() Row {
	out := make(Row, len(r)+1)
	for k, v := range r {
		out[k] = v
	}
	return out
}

func (r Row) Int(key string) (int64, bool) {
	switch v := r[key].(type) {
	case int:
		return int64(v), true
	case int64:
		return v, true
	case float64:
		return int64(v), true
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

func (r Row) String(key string) string {
	s, _ := r[key].(string)
	return s
}

// NumericValue reports whether v is a finite number or a non-empty string
// that parses to one. String-encoded stats count because several upstream
// columns arrive as strings.
func NumericValue(v any) bool {
	switch n := v.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return true
	case float32:
		return !math.IsNaN(float64(n)) && !math.IsInf(float64(n), 0)
	case float64:
		return !math.IsNaN(n) && !math.IsInf(n, 0)
	case string:
		trimmed := strings.TrimSpace(n)
		if trimmed == "" {
			return false
		}
		parsed, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return false
		}
		return !math.IsNaN(parsed) && !math.IsInf(parsed, 0)
	default:
		return false
	}
}

var gameDateLayouts = []string{
	"2006-01-02",
	"Jan 02, 2006",
	"2006-01-02 15:04:05",
}

// ParseGameDate parses the formats stats.nba.com is known to emit. Missing
// or unparseable values yield the zero time so rows still sort
// deterministically to the front.
func ParseGameDate(value any) time.Time {
	if value == nil {
		return time.Time{}
	}
	text := strings.TrimSpace(toString(value))
	if text == "" {
		return time.Time{}
	}

	if strings.Contains(text, "T") {
		if t, err := time.Parse("2006-01-02T15:04:05", strings.TrimSuffix(text, "Z")); err == nil {
			return t
		}
	}
	for _, layout := range gameDateLayouts {
		if t, err := time.Parse(layout, text); err == nil {
			return t
		}
	}

	return time.Time{}
}

// DateKey renders value as YYYY-MM-DD, or "" when it cannot be parsed.
func DateKey(value any) string {
	t := ParseGameDate(value)
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

// SortByGameDate orders rows ascending by parsed GAME_DATE. The sort is
// stable so equal (including unparseable) dates keep their upstream order.
func SortByGameDate(rows []Row) {
	sort.SliceStable(rows, func(i, j int) bool {
		return ParseGameDate(rows[i][FieldGameDate]).Before(ParseGameDate(rows[j][FieldGameDate]))
	})
}

func toString(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case time.Time:
		return v.Format("2006-01-02")
	default:
		return ""
	}
}
