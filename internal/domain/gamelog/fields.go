package gamelog

import (
	"sort"
	"strings"
)

const rankSuffix = "_RANK"

// Identifier and bookkeeping columns that hold numbers but are useless for
// charting. Game-date columns ride along because some season types emit
// them as epoch-style numerics.
var fieldBlacklist = map[string]struct{}{
	"PLAYER_ID":      {},
	"TEAM_ID":        {},
	"GAME_ID":        {},
	"GAME_DATE":      {},
	"GAME_DATE_EST":  {},
	"AVAILABLE_FLAG": {},
	"TEAM_COUNT":     {},
}

// NumericFields classifies the chartable stat columns of a row set: the
// union of all field names whose value is numeric in at least one row,
// minus blacklisted identifiers and rank columns. Output is sorted by name
// so identical inputs always classify identically.
func NumericFields(rows []Row) []string {
	if len(rows) == 0 {
		return []string{}
	}

	names := make(map[string]struct{})
	for _, row := range rows {
		for name := range row {
			names[name] = struct{}{}
		}
	}

	out := make([]string, 0, len(names))
	for name := range names {
		if _, excluded := fieldBlacklist[name]; excluded {
			continue
		}
		if strings.HasSuffix(name, rankSuffix) {
			continue
		}
		for _, row := range rows {
			if value, ok := row[name]; ok && NumericValue(value) {
				out = append(out, name)
				break
			}
		}
	}

	sort.Strings(out)
	return out
}
