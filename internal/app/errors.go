package app

import "errors"

// Sentinel kinds for service errors. ErrUserNotFound is a configuration
// error and fatal to initialization; the others are request-scoped.
var (
	ErrUserNotFound   = errors.New("configured user not found in league")
	ErrPlayerNotFound = errors.New("player not found in directory")
	ErrNoSnapshot     = errors.New("no scoreboard snapshot yet")
	ErrNotStarted     = errors.New("service not started")
)
