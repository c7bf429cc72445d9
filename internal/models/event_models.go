package models

import "time"

// Event types
const (
	EventTypeMatch    = "match"
	EventTypeTraining = "training"
	EventTypeMeeting  = "meeting"
	EventTypeOther    = "other"
)

// Stat kinds recorded against a match.
const (
	StatKindGoal   = "goal"
	StatKindAssist = "assist"
)

// StatEvent attributes a goal or assist count to a player for one match.
type StatEvent struct {
	ID       int64  `json:"id"`
	EventID  int64  `json:"event_id" db:"event_id"`
	PlayerID int64  `json:"player_id" db:"player_id" binding:"required"`
	Kind     string `json:"kind" db:"kind"`
	Count    int    `json:"count" db:"count" binding:"required"`
}

// ClubEvent is a scheduled occurrence: match, training, meeting or other.
// Opponent, Result, Scorers and Assists are only meaningful for matches.
type ClubEvent struct {
	ID          int64       `json:"id"`
	TeamID      int64       `json:"team_id" db:"team_id"`
	EventType   string      `json:"event_type" db:"event_type" binding:"required"`
	Date        string      `json:"date" db:"date" binding:"required"` // Format YYYY-MM-DD
	Time        *string     `json:"time,omitempty" db:"time"`          // Format HH:MM
	Location    *string     `json:"location,omitempty" db:"location"`
	Category    *string     `json:"category,omitempty" db:"category"`
	Description *string     `json:"description,omitempty" db:"description"`
	Opponent    *string     `json:"opponent,omitempty" db:"opponent"`
	Result      *string     `json:"result,omitempty" db:"result"` // free-text score, e.g. "3-1"
	Scorers     []StatEvent `json:"scorers,omitempty"`
	Assists     []StatEvent `json:"assists,omitempty"`
	CreatedAt   time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at" db:"updated_at"`
}

// IsPlayedMatch reports whether the event is a match that has a recorded
// result. Only played matches contribute to statistics.
func (e *ClubEvent) IsPlayedMatch() bool {
	return e.EventType == EventTypeMatch && e.Result != nil && *e.Result != ""
}
