// Package model contains domain models passed between layers.
package model

import "time"

// Canonical stat keys. Upstream payloads use a variety of aliases for these;
// the adapters fold everything onto this set so the scoring and projection
// packages only ever see canonical keys.
const (
	StatPassYards  = "pass_yd"
	StatPassTD     = "pass_td"
	StatPass2Pt    = "pass_2pt"
	StatPassInt    = "pass_int"
	StatRushYards  = "rush_yd"
	StatRushTD     = "rush_td"
	StatRush2Pt    = "rush_2pt"
	StatReceptions = "rec"
	StatRecYards   = "rec_yd"
	StatRecTD      = "rec_td"
	StatRec2Pt     = "rec_2pt"
	StatFGMade     = "fgm"
	StatFGMade0019 = "fgm_0_19"
	StatFGMade2029 = "fgm_20_29"
	StatFGMade3039 = "fgm_30_39"
	StatFGMade4049 = "fgm_40_49"
	StatFGMiss     = "fgmiss"
	StatFGMiss0019 = "fgmiss_0_19"
	StatFGMiss2029 = "fgmiss_20_29"
	StatFGMiss3039 = "fgmiss_30_39"
	StatFGMiss4049 = "fgmiss_40_49"
	StatXPMade     = "xpm"
	StatXPMiss     = "xpmiss"
	StatFumbleLost = "fum_lost"
	StatFumRecTD   = "fum_rec_td"
	StatSpecialTD  = "st_td"
)

// StatRow is one player's full statistical line for one week, keyed by
// (Week, PlayerID) where PlayerID is the statistics provider's external id.
// Immutable once loaded. A missing stat key reads as zero; a missing week is
// not a zero row and must never be synthesized as one.
type StatRow struct {
	Week     int
	PlayerID string // external (stat provider) id
	Name     string
	Team     string
	Position string
	Stats    map[string]float64
	// FantasyPoints is the provider's own precomputed total, when present.
	// Nil means the provider did not report one.
	FantasyPoints *float64
	Headshot      string
}

// Stat returns the value for a canonical stat key, zero when absent.
func (r StatRow) Stat(key string) float64 {
	if r.Stats == nil {
		return 0
	}
	return r.Stats[key]
}

// Player is an immutable snapshot of a platform player record, fetched once
// per session and keyed by the platform-assigned id.
type Player struct {
	ID        string // platform id, numeric ids normalized to their decimal string
	FullName  string
	FirstName string
	LastName  string
	Team      string
	Position  string
	// Status is the roster status reported by the platform, e.g. "Active",
	// "Inactive", "Injured Reserve".
	Status string
	// InjuryStatus is the game-status designation: "Out", "Doubtful",
	// "Questionable", or empty.
	InjuryStatus string
	// PracticeParticipation is the latest practice report: "DNP", "Limited",
	// "Full", or empty.
	PracticeParticipation string
	// GSISID is the statistics provider's id when the platform record embeds
	// it. Empty means the resolver has to fall back to fuzzy matching.
	GSISID string
}

// Game is one scheduled NFL game for a week, parsed defensively from the
// schedule payload.
type Game struct {
	Week    int
	Home    string
	Away    string
	Status  string
	Kickoff time.Time
}

// Opponent returns the opposing team abbreviation for team, or empty when the
// team is not part of this game.
func (g Game) Opponent(team string) string {
	switch team {
	case g.Home:
		return g.Away
	case g.Away:
		return g.Home
	default:
		return ""
	}
}
