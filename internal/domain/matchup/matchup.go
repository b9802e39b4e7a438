// Package matchup joins platform matchup, roster and user records into two
// opposing team views for the scoreboard.
package matchup

import (
	"fmt"
	"sort"
)

// Row is one roster's side of a weekly head-to-head matchup as the platform
// reports it. Rows sharing a MatchupID face each other.
type Row struct {
	RosterID  int      `json:"roster_id"`
	MatchupID int      `json:"matchup_id"`
	Points    float64  `json:"points"`
	Starters  []string `json:"starters"`
	// PlayersPoints is the platform's authoritative per-player actual score.
	PlayersPoints map[string]float64 `json:"players_points"`
}

// Roster is a league roster record.
type Roster struct {
	RosterID int      `json:"roster_id"`
	OwnerID  string   `json:"owner_id"`
	Starters []string `json:"starters"`
	Metadata struct {
		TeamName string `json:"team_name"`
	} `json:"metadata"`
	Settings struct {
		Wins   int `json:"wins"`
		Losses int `json:"losses"`
		Ties   int `json:"ties"`
	} `json:"settings"`
}

// User is a league member record.
type User struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	Avatar      string `json:"avatar"`
}

// TeamView is one side of the assembled matchup. Recomputed every poll cycle
// and never persisted.
type TeamView struct {
	RosterID      int
	Name          string
	Record        string
	Avatar        string
	Starters      []string
	StarterPoints map[string]float64
	Points        float64
}

// Pair holds the two opposing team views. TeamA is the caller's team when the
// caller's roster is part of the selected group, otherwise the lower roster id.
type Pair struct {
	TeamA TeamView
	TeamB TeamView
}

// Option applies a configuration option to Assemble.
type Option func(*assembleConfig)

type assembleConfig struct {
	groupOverride    int
	hasGroupOverride bool
}

// WithGroup selects an explicit matchup group instead of the one containing
// the caller's roster.
func WithGroup(matchupID int) Option {
	return func(c *assembleConfig) {
		c.groupOverride = matchupID
		c.hasGroupOverride = true
	}
}

// Assemble groups the week's matchup rows, selects the group containing
// userRosterID (or an explicit override group), and builds the two opposing
// team views. It returns ErrMatchupNotFound when the roster appears in no
// group for the week and ErrIncompleteGroup when the selected group has fewer
// than two rows; both are ambiguous upstream states distinct from a fetch
// failure.
func Assemble(rows []Row, rosters []Roster, users []User, userRosterID int, opts ...Option) (Pair, error) {
	var cfg assembleConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	groups := make(map[int][]Row)
	for _, row := range rows {
		groups[row.MatchupID] = append(groups[row.MatchupID], row)
	}

	groupID := cfg.groupOverride
	if !cfg.hasGroupOverride {
		found := false
		for id, group := range groups {
			for _, row := range group {
				if row.RosterID == userRosterID {
					groupID = id
					found = true
					break
				}
			}
			if found {
				break
			}
		}
		if !found {
			return Pair{}, fmt.Errorf("roster %d: %w", userRosterID, ErrMatchupNotFound)
		}
	}

	group := groups[groupID]
	if len(group) < 2 {
		return Pair{}, fmt.Errorf("matchup group %d has %d rows: %w", groupID, len(group), ErrIncompleteGroup)
	}

	// Consistent ordering, then put the caller's team first when present.
	sort.Slice(group, func(i, j int) bool { return group[i].RosterID < group[j].RosterID })
	a, b := group[0], group[1]
	if b.RosterID == userRosterID {
		a, b = b, a
	}

	return Pair{
		TeamA: teamView(a, rosters, users),
		TeamB: teamView(b, rosters, users),
	}, nil
}

func teamView(row Row, rosters []Roster, users []User) TeamView {
	view := TeamView{
		RosterID:      row.RosterID,
		Name:          fmt.Sprintf("Roster %d", row.RosterID),
		Starters:      row.Starters,
		StarterPoints: row.PlayersPoints,
		Points:        row.Points,
	}

	for _, roster := range rosters {
		if roster.RosterID != row.RosterID {
			continue
		}
		view.Record = recordString(roster.Settings.Wins, roster.Settings.Losses, roster.Settings.Ties)
		if len(view.Starters) == 0 {
			view.Starters = roster.Starters
		}
		if roster.Metadata.TeamName != "" {
			view.Name = roster.Metadata.TeamName
		}
		for _, user := range users {
			if user.UserID != roster.OwnerID {
				continue
			}
			view.Avatar = user.Avatar
			if roster.Metadata.TeamName == "" && user.DisplayName != "" {
				view.Name = user.DisplayName
			}
			break
		}
		break
	}
	return view
}

// recordString formats "{wins}-{losses}" with a "-{ties}" suffix only when
// ties > 0.
func recordString(wins, losses, ties int) string {
	s := fmt.Sprintf("%d-%d", wins, losses)
	if ties > 0 {
		s = fmt.Sprintf("%s-%d", s, ties)
	}
	return s
}
