package sleeper

import "errors"

// Sentinel kinds for platform client errors. ErrRequestFailed marks
// transient fetch failures: callers skip the cycle and let the next tick
// retry.
var (
	ErrRequestFailed = errors.New("platform request failed")
)
