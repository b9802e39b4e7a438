// Package status maps a player's injury, practice and roster status to a
// scalar multiplier applied to expected production.
package status

import (
	"strings"

	"github.com/cwilhelm/gridiron/internal/domain/model"
)

// Multipliers for each designation. Rules are mutually exclusive; only the
// first matching one applies.
const (
	outMultiplier          = 0.0
	doubtfulMultiplier     = 0.40
	questionableMultiplier = 0.85
	dnpMultiplier          = 0.80
	limitedMultiplier      = 0.90
)

// Adjustment carries the multiplier applied to an expectation and a
// human-readable note explaining it.
type Adjustment struct {
	Multiplier float64
	Note       string
}

// Adjuster evaluates status rules, honoring manual per-player overrides.
type Adjuster struct {
	overrides map[string]float64
}

// Option applies a configuration option to the Adjuster.
type Option func(*Adjuster)

// WithOverrides sets manual multiplier overrides keyed by platform player id.
// An override always wins over any derived rule.
func WithOverrides(overrides map[string]float64) Option {
	return func(a *Adjuster) {
		a.overrides = make(map[string]float64, len(overrides))
		for id, m := range overrides {
			a.overrides[id] = m
		}
	}
}

// NewAdjuster creates an Adjuster with configuration options.
func NewAdjuster(opts ...Option) *Adjuster {
	a := &Adjuster{}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Adjust returns the multiplier and note for a player. Evaluation order:
// manual override, out/inactive, doubtful, questionable, practice DNP,
// practice limited, then the 1.0 default with an empty note.
func (a *Adjuster) Adjust(playerID string, p model.Player) Adjustment {
	if m, ok := a.overrides[playerID]; ok {
		return Adjustment{Multiplier: m, Note: "manual override"}
	}

	injury := strings.ToLower(strings.TrimSpace(p.InjuryStatus))
	roster := strings.ToLower(strings.TrimSpace(p.Status))
	practice := strings.ToLower(strings.TrimSpace(p.PracticeParticipation))

	switch {
	case injury == "out", roster == "inactive", roster == "injured reserve":
		return Adjustment{Multiplier: outMultiplier, Note: "ruled out"}
	case injury == "doubtful":
		return Adjustment{Multiplier: doubtfulMultiplier, Note: "doubtful"}
	case injury == "questionable":
		return Adjustment{Multiplier: questionableMultiplier, Note: "questionable"}
	case practice == "dnp":
		return Adjustment{Multiplier: dnpMultiplier, Note: "did not practice"}
	case practice == "limited":
		return Adjustment{Multiplier: limitedMultiplier, Note: "limited practice"}
	}
	return Adjustment{Multiplier: 1.0}
}
