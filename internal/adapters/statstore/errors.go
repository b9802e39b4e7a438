package statstore

import "errors"

// Sentinel kinds for stat store errors.
var (
	ErrUnknownShape = errors.New("unrecognized stats payload shape")
)
