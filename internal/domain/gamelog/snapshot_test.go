package gamelog

import "testing"

func TestIsPlaceholder(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		row  Row
		want bool
	}{
		{"flag set", Row{"IS_PLACEHOLDER": float64(1)}, true},
		{"synthetic game id", Row{"GAME_ID": "NO_GAME_203507"}, true},
		{"matchup marker", Row{"MATCHUP": "no games yet"}, true},
		{"real row", Row{"GAME_ID": "0022500001", "MATCHUP": "MIL vs. BOS"}, false},
		{"empty row", Row{}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsPlaceholder(tc.row); got != tc.want {
				t.Fatalf("IsPlaceholder(%v) = %v, want %v", tc.row, got, tc.want)
			}
		})
	}
}

func TestDedupeByGame(t *testing.T) {
	t.Parallel()

	rows := []Row{
		{"PLAYER_ID": float64(1), "GAME_ID": "a", "PTS": float64(10)},
		{"PLAYER_ID": float64(1), "GAME_ID": "a", "PTS": float64(99)},
		{"PLAYER_ID": float64(2), "GAME_ID": "a"},
		{"PLAYER_ID": float64(1), "GAME_ID": "b"},
		{"GAME_ID": "orphan"},
	}

	out := DedupeByGame(rows)
	if len(out) != 4 {
		t.Fatalf("expected 4 rows after dedupe, got %d", len(out))
	}
	if pts, _ := out[0]["PTS"].(float64); pts != 10 {
		t.Fatalf("dedupe should keep the first occurrence, got PTS=%v", out[0]["PTS"])
	}
}

func TestSortByGameDateThenPlayer(t *testing.T) {
	t.Parallel()

	rows := []Row{
		{"GAME_DATE": "2025-01-10", "PLAYER_ID": float64(2)},
		{"GAME_DATE": "2025-01-05", "PLAYER_ID": float64(9)},
		{"GAME_DATE": "2025-01-10", "PLAYER_ID": float64(1)},
	}

	SortByGameDateThenPlayer(rows)

	if rows[0].String(FieldGameDate) != "2025-01-05" {
		t.Fatalf("expected earliest date first, got %v", rows[0])
	}
	if id, _ := rows[1].Int("PLAYER_ID"); id != 1 {
		t.Fatalf("expected player 1 before player 2 on equal dates, got %v", rows[1])
	}
}
