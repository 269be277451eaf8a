package player

// Player is one roster entry as served to the dashboard. Built fresh on
// every roster fetch and never mutated afterwards.
type Player struct {
	PlayerID    int64  `json:"player_id"`
	Name        string `json:"name"`
	TeamID      int64  `json:"team_id"`
	Team        string `json:"team"`
	IsActive    bool   `json:"is_active"`
	HeadshotURL string `json:"headshot_url"`
}

// ActiveRosterStatus is the upstream ROSTERSTATUS code for a rostered
// player. Anything else, including a missing code, means inactive.
const ActiveRosterStatus = 1
