// Package projection computes recency-weighted expected production from a
// player's recent weekly stat lines.
package projection

import (
	"github.com/cwilhelm/gridiron/internal/domain/model"
	"github.com/cwilhelm/gridiron/internal/domain/scoring"
)

// DefaultWindow is how many completed weeks feed the expectation when the
// season-to-date history is long enough.
const DefaultWindow = 6

// Expected is a synthetic StatRow-shaped record whose fields are the
// recency-weighted averages of the input rows. Valid is false when no rows
// carried data; callers must render that as "no data", never as a numeric
// zero, since zero is a real score.
type Expected struct {
	Valid bool
	Stats map[string]float64
	// Weeks lists the week numbers that contributed, oldest to newest.
	Weeks []int
}

// Aggregate computes the linearly recency-weighted average of each stat field
// across rows. Rows must be ordered oldest to newest and contain only weeks
// with actual data; missing weeks are excluded upstream, never zero-filled.
// Weight for the row at index i is i+1, so the newest row weighs the most.
func Aggregate(rows []model.StatRow) Expected {
	if len(rows) == 0 {
		return Expected{}
	}

	sums := make(map[string]float64)
	var totalWeight float64
	weeks := make([]int, 0, len(rows))
	for i, row := range rows {
		weight := float64(i + 1)
		totalWeight += weight
		weeks = append(weeks, row.Week)
		for key, val := range row.Stats {
			sums[key] += val * weight
		}
	}
	if totalWeight == 0 {
		return Expected{}
	}

	avg := make(map[string]float64, len(sums))
	for key, sum := range sums {
		avg[key] = sum / totalWeight
	}
	return Expected{Valid: true, Stats: avg, Weeks: weeks}
}

// Points scores an expected row under a league ruleset by piping it through
// the scoring engine. Returns 0, false for an invalid expectation.
func Points(e Expected, rs scoring.Ruleset) (float64, bool) {
	if !e.Valid {
		return 0, false
	}
	row := model.StatRow{Stats: e.Stats}
	return scoring.Score(row, rs), true
}
