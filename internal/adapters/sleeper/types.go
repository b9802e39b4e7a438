// Package sleeper is the platform fetch client: NFL state, the player
// directory, league users/rosters/matchups, weekly projections and the
// schedule. All payloads are externally imposed and parsed defensively.
package sleeper

import (
	"strconv"
	"strings"
	"time"

	"github.com/cwilhelm/gridiron/internal/domain/model"
)

// NFLState is the platform's season/week state record.
type NFLState struct {
	Week        int    `json:"week"`
	DisplayWeek int    `json:"display_week"`
	Season      string `json:"season"`
	SeasonType  string `json:"season_type"`
}

// SeasonYear returns the season as a number, 0 when unparseable.
func (s NFLState) SeasonYear() int {
	n, err := strconv.Atoi(strings.TrimSpace(s.Season))
	if err != nil {
		return 0
	}
	return n
}

// LeagueUser is a platform user record resolved by username.
type LeagueUser struct {
	UserID      string `json:"user_id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Avatar      string `json:"avatar"`
}

// playerRecord is the wire shape of one entry in the player directory.
type playerRecord struct {
	PlayerID              string `json:"player_id"`
	FirstName             string `json:"first_name"`
	LastName              string `json:"last_name"`
	FullName              string `json:"full_name"`
	Team                  string `json:"team"`
	Position              string `json:"position"`
	Status                string `json:"status"`
	InjuryStatus          string `json:"injury_status"`
	PracticeParticipation string `json:"practice_participation"`
	GSISID                string `json:"gsis_id"`
}

func (r playerRecord) toModel(id string) model.Player {
	p := model.Player{
		ID:                    id,
		FirstName:             r.FirstName,
		LastName:              r.LastName,
		FullName:              r.FullName,
		Team:                  r.Team,
		Position:              r.Position,
		Status:                r.Status,
		InjuryStatus:          r.InjuryStatus,
		PracticeParticipation: r.PracticeParticipation,
		GSISID:                strings.TrimSpace(r.GSISID),
	}
	if p.FullName == "" {
		p.FullName = strings.TrimSpace(r.FirstName + " " + r.LastName)
	}
	return p
}

// Directory is the full player directory keyed by platform id. Both string
// and numeric platform ids resolve to the same entity; lookups normalize
// through Get.
type Directory map[string]model.Player

// Get returns the player for a platform id in either string or numeric form.
func (d Directory) Get(id string) (model.Player, bool) {
	p, ok := d[id]
	if ok {
		return p, true
	}
	// Numeric ids sometimes arrive with surrounding whitespace or as
	// float-formatted strings ("4046.0").
	trimmed := strings.TrimSpace(id)
	if p, ok := d[trimmed]; ok {
		return p, true
	}
	if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
		if p, ok := d[strconv.Itoa(int(f))]; ok {
			return p, true
		}
	}
	return model.Player{}, false
}

// Schedule field aliases. Different snapshots of the upstream feed rename
// these; first present wins.
var (
	homeAliases     = []string{"home", "home_team", "h"}
	awayAliases     = []string{"away", "away_team", "a"}
	statusAliases   = []string{"status", "game_status", "state"}
	kickoffAliases  = []string{"kickoff", "start_time", "date"}
	gameWeekAliases = []string{"week", "wk"}
)

// parseGame builds a model.Game from one raw schedule record; ok is false
// when neither team can be determined.
func parseGame(obj map[string]any, week int) (model.Game, bool) {
	g := model.Game{Week: week}
	g.Home, _ = firstString(obj, homeAliases)
	g.Away, _ = firstString(obj, awayAliases)
	if g.Home == "" && g.Away == "" {
		return model.Game{}, false
	}
	g.Status, _ = firstString(obj, statusAliases)
	if w, ok := firstInt(obj, gameWeekAliases); ok && w > 0 {
		g.Week = w
	}
	if raw, ok := firstString(obj, kickoffAliases); ok {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			g.Kickoff = t
		}
	} else if ms, ok := firstFloat(obj, kickoffAliases); ok {
		g.Kickoff = time.UnixMilli(int64(ms))
	}
	return g, true
}

func firstString(obj map[string]any, keys []string) (string, bool) {
	for _, key := range keys {
		if s, ok := obj[key].(string); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s), true
		}
	}
	return "", false
}

func firstFloat(obj map[string]any, keys []string) (float64, bool) {
	for _, key := range keys {
		switch v := obj[key].(type) {
		case float64:
			return v, true
		case string:
			if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
				return f, true
			}
		}
	}
	return 0, false
}

func firstInt(obj map[string]any, keys []string) (int, bool) {
	f, ok := firstFloat(obj, keys)
	if !ok {
		return 0, false
	}
	return int(f), true
}
