// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults; Load layers file and env.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"github.com/cwilhelm/gridiron/internal/domain/projection"
	"github.com/cwilhelm/gridiron/internal/domain/resolve"
	"github.com/cwilhelm/gridiron/internal/domain/scoring"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// LeagueID and Username identify the league and the viewing user on the
	// platform. Both are required.
	LeagueID string `koanf:"league_id"`
	Username string `koanf:"username"`

	// RefreshIntervalSec is the scoreboard poll interval in seconds.
	RefreshIntervalSec int `koanf:"refresh_interval_sec"`

	// StatsFile is the path to the raw weekly statistics dataset. Optional;
	// an absent file disables raw-stat projections, not the dashboard.
	StatsFile string `koanf:"stats_file"`

	// ExpectationWeeks is how many completed weeks feed the recency-weighted
	// expectation.
	ExpectationWeeks int `koanf:"expectation_weeks"`

	// ResolverIndexWeeks is how many recent stat weeks feed the fuzzy
	// identifier index.
	ResolverIndexWeeks int `koanf:"resolver_index_weeks"`

	// DisplayWeek pins the dashboard to a specific week. 0 follows the
	// platform's current week.
	DisplayWeek int `koanf:"display_week"`

	// StatusOverrides maps platform player ids to manual expectation
	// multipliers that win over any injury-derived rule.
	StatusOverrides map[string]float64 `koanf:"status_overrides"`

	// Scoring is the league scoring ruleset. Absent fields score as zero.
	Scoring scoring.Ruleset `koanf:"scoring"`
}

// New creates a Config with defaults. The 30 second refresh matches the
// upstream dashboard's cadence.
func New() *Config {
	return &Config{
		LogLevel:           "info",
		Addr:               ":9080",
		RefreshIntervalSec: 30,
		ExpectationWeeks:   projection.DefaultWindow,
		ResolverIndexWeeks: resolve.DefaultIndexWeeks,
		StatusOverrides:    map[string]float64{},
		Scoring:            scoring.DefaultRuleset(),
	}
}
