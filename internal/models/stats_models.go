package models

// CombinedStat is the derived per-player aggregate of goals and assists
// across all played matches. It is never persisted.
type CombinedStat struct {
	PlayerID int64  `json:"player_id"`
	Name     string `json:"name"`
	Goals    int    `json:"goals"`
	Assists  int    `json:"assists"`
}
