// Package types contains the rendered record shapes handed to the
// presentation layer.
package types

import "time"

// StarterCard is one starter's scoreboard line. ProjectedPoints is nil when
// no projection exists for the player; renderers show a placeholder, never a
// numeric zero.
type StarterCard struct {
	PlayerID        string   `json:"player_id"`
	Name            string   `json:"name"`
	Position        string   `json:"position"`
	Team            string   `json:"team"`
	StatusText      string   `json:"status_text"`
	ActualPoints    float64  `json:"actual_points"`
	ProjectedPoints *float64 `json:"projected_points"`
}

// TeamSide is one side of the head-to-head scoreboard.
type TeamSide struct {
	RosterID  int           `json:"roster_id"`
	Name      string        `json:"name"`
	Record    string        `json:"record"`
	AvatarURL string        `json:"avatar_url,omitempty"`
	Points    float64       `json:"points"`
	Starters  []StarterCard `json:"starters"`
}

// Scoreboard is the assembled head-to-head matchup view, rebuilt each
// refresh cycle. TeamA is the configured user's team.
type Scoreboard struct {
	Season    int       `json:"season"`
	Week      int       `json:"week"`
	TeamA     TeamSide  `json:"team_a"`
	TeamB     TeamSide  `json:"team_b"`
	UpdatedAt time.Time `json:"updated_at"`
}

// WeekLine is one historical week in the player detail table.
type WeekLine struct {
	Week   int                `json:"week"`
	Stats  map[string]float64 `json:"stats"`
	Points float64            `json:"points"`
}

// ExpectedLine carries the recency-weighted projection: Points is the
// unadjusted Expected figure, AdjustedPoints the status-adjusted Expected*.
type ExpectedLine struct {
	Stats          map[string]float64 `json:"stats"`
	Points         float64            `json:"points"`
	AdjustedPoints float64            `json:"adjusted_points"`
	Multiplier     float64            `json:"multiplier"`
	Note           string             `json:"note,omitempty"`
}

// PlayerDetail is the per-player detail view. Expected is nil when no weekly
// data matched the player; that is "no data", not zero.
type PlayerDetail struct {
	PlayerID   string        `json:"player_id"`
	ExternalID string        `json:"external_id,omitempty"`
	Name       string        `json:"name"`
	Position   string        `json:"position"`
	Team       string        `json:"team"`
	Headshot   string        `json:"headshot,omitempty"`
	Weeks      []WeekLine    `json:"weeks"`
	Expected   *ExpectedLine `json:"expected,omitempty"`
}
