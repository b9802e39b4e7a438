// Package statstore normalizes raw weekly statistics payloads into an
// immutable week -> external id -> StatRow view and caches it for the
// session.
package statstore

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/cwilhelm/gridiron/internal/domain/model"
)

// Season is the normalized season snapshot. Weeks may be incomplete; a
// missing week means "not yet played" or "data unavailable", which is never
// the same thing as zero production.
type Season struct {
	Season  int
	MaxWeek int
	Weeks   map[int]map[string]model.StatRow
}

// Rows returns the week's rows, nil when the week is absent.
func (s *Season) Rows(week int) map[string]model.StatRow {
	if s == nil {
		return nil
	}
	return s.Weeks[week]
}

// Row returns one player's row for a week. ok is false when the week or the
// player is absent from the dataset.
func (s *Season) Row(week int, externalID string) (model.StatRow, bool) {
	row, ok := s.Rows(week)[externalID]
	return row, ok
}

// Alias lists for the identity and metadata fields. Upstream snapshots have
// renamed these repeatedly; first present wins.
var (
	idAliases       = []string{"gsis_id", "player_id", "gsis", "id"}
	weekAliases     = []string{"week", "wk", "game_week"}
	nameAliases     = []string{"name", "player_name", "full_name", "player_display_name"}
	teamAliases     = []string{"team", "team_abbr", "recent_team"}
	positionAliases = []string{"position", "pos"}
	pointsAliases   = []string{"fantasy_points", "pts_ppr", "fpts"}
	headshotAliases = []string{"headshot", "headshot_url"}
)

// statAliases folds upstream stat field names onto the canonical keys. Keys
// listed for the same canonical name are summed, which is what the
// fumble-lost categories require and harmless elsewhere since providers emit
// one spelling per snapshot.
var statAliases = map[string][]string{
	model.StatPassYards:  {"pass_yd", "passing_yards", "pass_yds"},
	model.StatPassTD:     {"pass_td", "passing_tds"},
	model.StatPass2Pt:    {"pass_2pt", "passing_2pt_conversions"},
	model.StatPassInt:    {"pass_int", "interceptions", "passing_interceptions"},
	model.StatRushYards:  {"rush_yd", "rushing_yards", "rush_yds"},
	model.StatRushTD:     {"rush_td", "rushing_tds"},
	model.StatRush2Pt:    {"rush_2pt", "rushing_2pt_conversions"},
	model.StatReceptions: {"rec", "receptions"},
	model.StatRecYards:   {"rec_yd", "receiving_yards", "rec_yds"},
	model.StatRecTD:      {"rec_td", "receiving_tds"},
	model.StatRec2Pt:     {"rec_2pt", "receiving_2pt_conversions"},
	model.StatFGMade:     {"fgm", "fg_made"},
	model.StatFGMade0019: {"fgm_0_19", "fg_made_0_19"},
	model.StatFGMade2029: {"fgm_20_29", "fg_made_20_29"},
	model.StatFGMade3039: {"fgm_30_39", "fg_made_30_39"},
	model.StatFGMade4049: {"fgm_40_49", "fg_made_40_49"},
	model.StatFGMiss:     {"fgmiss", "fg_missed"},
	model.StatFGMiss0019: {"fgmiss_0_19", "fg_missed_0_19"},
	model.StatFGMiss2029: {"fgmiss_20_29", "fg_missed_20_29"},
	model.StatFGMiss3039: {"fgmiss_30_39", "fg_missed_30_39"},
	model.StatFGMiss4049: {"fgmiss_40_49", "fg_missed_40_49"},
	model.StatXPMade:     {"xpm", "pat_made"},
	model.StatXPMiss:     {"xpmiss", "pat_missed"},
	model.StatFumbleLost: {"fum_lost", "fumbles_lost", "rushing_fumbles_lost", "receiving_fumbles_lost", "sack_fumbles_lost"},
	model.StatFumRecTD:   {"fum_rec_td", "fumble_recovery_tds"},
	model.StatSpecialTD:  {"st_td", "special_teams_tds"},
}

// Normalize parses a raw statistics payload into a Season. Two upstream
// shapes are supported: a flat array of self-describing rows, and a payload
// pre-bucketed as weeks[week][externalId] = row. Unknown shapes fail closed
// to an empty season. Rows lacking a resolvable external id or a positive
// numeric week are dropped silently; they are malformed upstream records, not
// invariant violations.
func Normalize(raw []byte) Season {
	season := Season{Weeks: make(map[int]map[string]model.StatRow)}
	if len(raw) == 0 {
		return season
	}

	var payload any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return season
	}

	switch v := payload.(type) {
	case []any:
		normalizeFlat(&season, v)
	case map[string]any:
		normalizeNested(&season, v)
	}
	return season
}

// normalizeFlat handles the array-of-rows shape.
func normalizeFlat(season *Season, rows []any) {
	for _, item := range rows {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		week, ok := firstInt(obj, weekAliases)
		if !ok || week <= 0 {
			continue
		}
		addRow(season, week, obj, "")
	}
}

// normalizeNested handles the {season, weeks: {week: {id: row}}} shape.
func normalizeNested(season *Season, payload map[string]any) {
	if n, ok := asInt(payload["season"]); ok {
		season.Season = n
	}
	weeks, ok := payload["weeks"].(map[string]any)
	if !ok {
		return
	}
	for weekKey, bucket := range weeks {
		week, err := strconv.Atoi(strings.TrimSpace(weekKey))
		if err != nil || week <= 0 {
			continue
		}
		rows, ok := bucket.(map[string]any)
		if !ok {
			continue
		}
		for externalID, item := range rows {
			obj, ok := item.(map[string]any)
			if !ok {
				continue
			}
			addRow(season, week, obj, externalID)
		}
	}
	// Provider metadata is authoritative when it claims more weeks than the
	// rows show; those weeks exist with as-yet-unprocessed rows.
	if n, ok := asInt(payload["max_week"]); ok && n > season.MaxWeek {
		season.MaxWeek = n
	}
}

func addRow(season *Season, week int, obj map[string]any, externalID string) {
	if externalID == "" {
		externalID, _ = firstString(obj, idAliases)
	}
	externalID = strings.TrimSpace(externalID)
	if externalID == "" {
		return
	}

	row := model.StatRow{
		Week:     week,
		PlayerID: externalID,
		Stats:    make(map[string]float64),
	}
	row.Name, _ = firstString(obj, nameAliases)
	row.Team, _ = firstString(obj, teamAliases)
	row.Position, _ = firstString(obj, positionAliases)
	row.Headshot, _ = firstString(obj, headshotAliases)
	if pts, ok := firstFloat(obj, pointsAliases); ok {
		row.FantasyPoints = &pts
	}

	for canonical, aliases := range statAliases {
		var sum float64
		found := false
		for _, alias := range aliases {
			if v, ok := asFloat(obj[alias]); ok {
				sum += v
				found = true
			}
		}
		if found {
			row.Stats[canonical] = sum
		}
	}

	bucket := season.Weeks[week]
	if bucket == nil {
		bucket = make(map[string]model.StatRow)
		season.Weeks[week] = bucket
	}
	bucket[externalID] = row
	if week > season.MaxWeek {
		season.MaxWeek = week
	}
}

// Defensive value extraction. Upstream JSON mixes numbers and numeric
// strings.

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

func asInt(v any) (int, bool) {
	f, ok := asFloat(v)
	if !ok {
		return 0, false
	}
	return int(f), true
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
		if f, ok := asFloat(obj[key]); ok {
			return f, true
		}
	}
	return 0, false
}

func firstInt(obj map[string]any, keys []string) (int, bool) {
	for _, key := range keys {
		if n, ok := asInt(obj[key]); ok {
			return n, true
		}
	}
	return 0, false
}
