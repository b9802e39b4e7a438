package matchup

import "errors"

// Sentinel kinds for matchup assembly errors. Both denote ambiguous upstream
// state (bye week, unscheduled week, misconfiguration) and must be surfaced
// distinctly from transient fetch failures.
var (
	ErrMatchupNotFound = errors.New("matchup not found for roster")
	ErrIncompleteGroup = errors.New("matchup group incomplete")
)
