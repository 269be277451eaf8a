package gamelog

import (
	"sort"
	"strings"
)

// IsPlaceholder reports rows the upstream fabricates for players with no
// games yet. They carry IS_PLACEHOLDER=1, a NO_GAME_ game id, or a
// "NO GAMES YET" matchup.
func IsPlaceholder(row Row) bool {
	if flag, ok := row.Int("IS_PLACEHOLDER"); ok && flag == 1 {
		return true
	}
	if strings.HasPrefix(row.String("GAME_ID"), "NO_GAME_") {
		return true
	}
	return strings.Contains(strings.ToUpper(row.String("MATCHUP")), "NO GAMES YET")
}

// FilterReal drops placeholder rows, preserving order.
func FilterReal(rows []Row) []Row {
	out := make([]Row, 0, len(rows))
	for _, row := range rows {
		if IsPlaceholder(row) {
			continue
		}
		out = append(out, row)
	}
	return out
}

type gameKey struct {
	playerID int64
	gameID   string
}

// DedupeByGame removes duplicate (player, game) rows, keeping the first
// occurrence. Rows missing either key are always kept.
func DedupeByGame(rows []Row) []Row {
	seen := make(map[gameKey]struct{}, len(rows))
	out := make([]Row, 0, len(rows))
	for _, row := range rows {
		playerID, ok := row.Int("PLAYER_ID")
		gameID := row.String("GAME_ID")
		if !ok || playerID <= 0 || gameID == "" {
			out = append(out, row)
			continue
		}
		key := gameKey{playerID: playerID, gameID: gameID}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, row)
	}
	return out
}

// SortByGameDateThenPlayer orders rows by raw game date string, then player
// id, for stable snapshot output.
func SortByGameDateThenPlayer(rows []Row) {
	sort.SliceStable(rows, func(i, j int) bool {
		di, dj := rows[i].String(FieldGameDate), rows[j].String(FieldGameDate)
		if di != dj {
			return di < dj
		}
		pi, _ := rows[i].Int("PLAYER_ID")
		pj, _ := rows[j].Int("PLAYER_ID")
		return pi < pj
	})
}
