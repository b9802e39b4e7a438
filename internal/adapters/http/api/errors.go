package api

import (
	"errors"

	"github.com/cwilhelm/gridiron/pkg/metrics"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest = errors.New("bad request")
)

// recordRequest forwards one request observation to the metrics package.
func recordRequest(endpoint, method, status string, elapsedMs float64) {
	metrics.RecordHTTPRequest(endpoint, method, status)
	metrics.RecordHTTPRequestDuration(endpoint, method, status, elapsedMs)
}
