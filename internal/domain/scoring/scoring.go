// Package scoring computes fantasy point totals from weekly stat lines under
// a configurable league ruleset.
package scoring

import (
	"github.com/cwilhelm/gridiron/internal/domain/model"
)

// Ruleset enumerates a league's scoring configuration. Every field defaults
// to zero, so a partial ruleset is always safe to score with; absent values
// simply contribute nothing.
type Ruleset struct {
	// Yards-per-point divisors. A zero divisor disables yardage scoring for
	// that category rather than dividing by zero.
	PassYardsPerPoint float64 `koanf:"pass_yards_per_point"`
	RushYardsPerPoint float64 `koanf:"rush_yards_per_point"`
	RecYardsPerPoint  float64 `koanf:"rec_yards_per_point"`

	PassTD       float64 `koanf:"pass_td"`
	RushTD       float64 `koanf:"rush_td"`
	RecTD        float64 `koanf:"rec_td"`
	TwoPoint     float64 `koanf:"two_point"`
	Interception float64 `koanf:"interception"`
	FumbleLost   float64 `koanf:"fumble_lost"`
	Reception    float64 `koanf:"reception"`

	// Milestone bonuses. Higher tier is exclusive of the lower one.
	Pass300Bonus float64 `koanf:"pass_300_bonus"`
	Pass400Bonus float64 `koanf:"pass_400_bonus"`
	Rush100Bonus float64 `koanf:"rush_100_bonus"`
	Rush200Bonus float64 `koanf:"rush_200_bonus"`
	Rec100Bonus  float64 `koanf:"rec_100_bonus"`
	Rec200Bonus  float64 `koanf:"rec_200_bonus"`

	// Field goal makes by distance band. Buckets below 50 are individually
	// reported upstream; 50+ is only inferable as a remainder.
	FGMade0019   float64 `koanf:"fg_made_0_19"`
	FGMade2029   float64 `koanf:"fg_made_20_29"`
	FGMade3039   float64 `koanf:"fg_made_30_39"`
	FGMade4049   float64 `koanf:"fg_made_40_49"`
	FGMade50Plus float64 `koanf:"fg_made_50_plus"`

	// Field goal misses by distance band, plus a base penalty applied to any
	// miss that cannot be attributed to a reported bucket.
	FGMiss0019 float64 `koanf:"fg_miss_0_19"`
	FGMiss2029 float64 `koanf:"fg_miss_20_29"`
	FGMiss3039 float64 `koanf:"fg_miss_30_39"`
	FGMiss4049 float64 `koanf:"fg_miss_40_49"`
	FGMissBase float64 `koanf:"fg_miss_base"`

	XPMade float64 `koanf:"xp_made"`
	XPMiss float64 `koanf:"xp_miss"`

	FumbleRecoveryTD float64 `koanf:"fumble_recovery_td"`
	SpecialTeamsTD   float64 `koanf:"special_teams_td"`
}

// DefaultRuleset returns a common PPR-style ruleset.
func DefaultRuleset() Ruleset {
	return Ruleset{
		PassYardsPerPoint: 25,
		RushYardsPerPoint: 10,
		RecYardsPerPoint:  10,
		PassTD:            4,
		RushTD:            6,
		RecTD:             6,
		TwoPoint:          2,
		Interception:      -2,
		FumbleLost:        -2,
		Reception:         1,
		Pass300Bonus:      1,
		Pass400Bonus:      2,
		Rush100Bonus:      1,
		Rush200Bonus:      2,
		Rec100Bonus:       1,
		Rec200Bonus:       2,
		FGMade0019:        3,
		FGMade2029:        3,
		FGMade3039:        3,
		FGMade4049:        4,
		FGMade50Plus:      5,
		FGMiss0019:        -2,
		FGMiss2029:        -1,
		FGMiss3039:        -1,
		FGMiss4049:        -0.5,
		FGMissBase:        -1,
		XPMade:            1,
		XPMiss:            -1,
		FumbleRecoveryTD:  6,
		SpecialTeamsTD:    6,
	}
}

// Score computes the fantasy point total for one stat row under rs. It is a
// pure function: missing stats read as zero, nothing panics, and the result
// is the unconditioned sum of all categories (it can be negative).
func Score(row model.StatRow, rs Ruleset) float64 {
	return passing(row, rs) +
		rushing(row, rs) +
		receiving(row, rs) +
		kicking(row, rs) +
		misc(row, rs)
}

func passing(row model.StatRow, rs Ruleset) float64 {
	yards := row.Stat(model.StatPassYards)
	pts := yardagePoints(yards, rs.PassYardsPerPoint) +
		row.Stat(model.StatPassTD)*rs.PassTD +
		row.Stat(model.StatPass2Pt)*rs.TwoPoint +
		row.Stat(model.StatPassInt)*rs.Interception
	switch {
	case yards >= 400:
		pts += rs.Pass400Bonus
	case yards >= 300:
		pts += rs.Pass300Bonus
	}
	return pts
}

func rushing(row model.StatRow, rs Ruleset) float64 {
	yards := row.Stat(model.StatRushYards)
	pts := yardagePoints(yards, rs.RushYardsPerPoint) +
		row.Stat(model.StatRushTD)*rs.RushTD +
		row.Stat(model.StatRush2Pt)*rs.TwoPoint
	switch {
	case yards >= 200:
		pts += rs.Rush200Bonus
	case yards >= 100:
		pts += rs.Rush100Bonus
	}
	return pts
}

func receiving(row model.StatRow, rs Ruleset) float64 {
	yards := row.Stat(model.StatRecYards)
	pts := row.Stat(model.StatReceptions)*rs.Reception +
		yardagePoints(yards, rs.RecYardsPerPoint) +
		row.Stat(model.StatRecTD)*rs.RecTD +
		row.Stat(model.StatRec2Pt)*rs.TwoPoint
	switch {
	case yards >= 200:
		pts += rs.Rec200Bonus
	case yards >= 100:
		pts += rs.Rec100Bonus
	}
	return pts
}

func kicking(row model.StatRow, rs Ruleset) float64 {
	madeBucketed := row.Stat(model.StatFGMade0019) +
		row.Stat(model.StatFGMade2029) +
		row.Stat(model.StatFGMade3039) +
		row.Stat(model.StatFGMade4049)
	pts := row.Stat(model.StatFGMade0019)*rs.FGMade0019 +
		row.Stat(model.StatFGMade2029)*rs.FGMade2029 +
		row.Stat(model.StatFGMade3039)*rs.FGMade3039 +
		row.Stat(model.StatFGMade4049)*rs.FGMade4049
	// Any made total beyond the reported buckets belongs to the 50+ band.
	if remainder := row.Stat(model.StatFGMade) - madeBucketed; remainder > 0 {
		pts += remainder * rs.FGMade50Plus
	}

	missBucketed := row.Stat(model.StatFGMiss0019) +
		row.Stat(model.StatFGMiss2029) +
		row.Stat(model.StatFGMiss3039) +
		row.Stat(model.StatFGMiss4049)
	pts += row.Stat(model.StatFGMiss0019)*rs.FGMiss0019 +
		row.Stat(model.StatFGMiss2029)*rs.FGMiss2029 +
		row.Stat(model.StatFGMiss3039)*rs.FGMiss3039 +
		row.Stat(model.StatFGMiss4049)*rs.FGMiss4049
	// Unbucketed misses take the base, less specific, penalty.
	if remainder := row.Stat(model.StatFGMiss) - missBucketed; remainder > 0 {
		pts += remainder * rs.FGMissBase
	}

	pts += row.Stat(model.StatXPMade)*rs.XPMade +
		row.Stat(model.StatXPMiss)*rs.XPMiss
	return pts
}

func misc(row model.StatRow, rs Ruleset) float64 {
	return row.Stat(model.StatFumbleLost)*rs.FumbleLost +
		row.Stat(model.StatFumRecTD)*rs.FumbleRecoveryTD +
		row.Stat(model.StatSpecialTD)*rs.SpecialTeamsTD
}

func yardagePoints(yards, divisor float64) float64 {
	if divisor == 0 {
		return 0
	}
	return yards / divisor
}
