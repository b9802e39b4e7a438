// Package metrics provides Prometheus metrics for the gridiron dashboard service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Default metrics configuration constants.
const (
	defaultRefreshInterval = 10 * time.Second
)

// Manager manages all Prometheus metrics for the gridiron service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	refreshInterval  time.Duration
	registry         prometheus.Registerer

	// Refresh cycle metrics
	refreshCycles   prometheus.Counter
	refreshErrors   prometheus.Counter
	refreshDuration prometheus.Histogram

	// Upstream fetch metrics, labeled by data source
	fetchLatency *prometheus.HistogramVec
	fetchErrors  *prometheus.CounterVec

	// Identifier resolution metrics
	resolverHits   *prometheus.CounterVec
	resolverMisses prometheus.Counter

	// Projection metrics
	projectionsComputed prometheus.Counter

	// Snapshot health
	snapshotAgeSeconds prometheus.Gauge
	unresolvedStarters prometheus.Gauge
	trackedPlayers     prometheus.Gauge
	statWeeksLoaded    prometheus.Gauge

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// Registry returns the registry the global manager registers on, for exposing
// via promhttp.
func Registry() *prometheus.Registry {
	return customRegistry
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "gridiron",
		subsystem:        "dashboard",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		refreshInterval:  defaultRefreshInterval,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.refreshCycles = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "refresh_cycles_total",
		Help:      "Total number of completed dashboard refresh cycles",
	})

	m.refreshErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "refresh_errors_total",
		Help:      "Total number of refresh cycles that failed and were skipped",
	})

	m.refreshDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "refresh_duration_milliseconds",
		Help:      "Histogram of full refresh cycle duration in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.fetchLatency = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "fetch_latency_milliseconds",
			Help:      "Upstream fetch latency in milliseconds by data source",
			Buckets:   m.histogramBuckets,
		},
		[]string{"source"},
	)

	m.fetchErrors = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "fetch_errors_total",
			Help:      "Total number of upstream fetch failures by data source",
		},
		[]string{"source"},
	)

	m.resolverHits = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "resolver_hits_total",
			Help:      "Total successful external-id resolutions by strategy",
		},
		[]string{"strategy"},
	)

	m.resolverMisses = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "resolver_misses_total",
		Help:      "Total platform players with no resolvable external id",
	})

	m.projectionsComputed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "projections_computed_total",
		Help:      "Total number of expected-production projections computed",
	})

	m.snapshotAgeSeconds = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "snapshot_age_seconds",
		Help:      "Age of the currently served matchup snapshot in seconds",
	})

	m.unresolvedStarters = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "unresolved_starters",
		Help:      "Starters in the current matchup with no external stat data",
	})

	m.trackedPlayers = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "tracked_players",
		Help:      "Size of the cached platform player directory",
	})

	m.statWeeksLoaded = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "stat_weeks_loaded",
		Help:      "Number of weekly stat buckets loaded from the stats dataset",
	})

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by endpoint, method and status",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_request_duration_milliseconds",
			Help:      "HTTP request duration in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)
}

// Package-level helpers recording on the global manager.

// RecordRefreshCycle increments the completed refresh cycle counter.
func RecordRefreshCycle() {
	if globalManager.enabled {
		globalManager.refreshCycles.Inc()
	}
}

// RecordRefreshError increments the failed refresh cycle counter.
func RecordRefreshError() {
	if globalManager.enabled {
		globalManager.refreshErrors.Inc()
	}
}

// RecordRefreshDuration records a full cycle duration in milliseconds.
func RecordRefreshDuration(ms float64) {
	if globalManager.enabled {
		globalManager.refreshDuration.Observe(ms)
	}
}

// RecordFetchLatency records an upstream fetch latency for a data source.
func RecordFetchLatency(source string, ms float64) {
	if globalManager.enabled {
		globalManager.fetchLatency.WithLabelValues(source).Observe(ms)
	}
}

// RecordFetchError increments the fetch error counter for a data source.
func RecordFetchError(source string) {
	if globalManager.enabled {
		globalManager.fetchErrors.WithLabelValues(source).Inc()
	}
}

// RecordResolverHit increments the resolution counter for a strategy
// ("explicit", "name_team_pos", "name_pos", "initial_team").
func RecordResolverHit(strategy string) {
	if globalManager.enabled {
		globalManager.resolverHits.WithLabelValues(strategy).Inc()
	}
}

// RecordResolverMiss increments the unresolved player counter.
func RecordResolverMiss() {
	if globalManager.enabled {
		globalManager.resolverMisses.Inc()
	}
}

// RecordProjection increments the computed projection counter.
func RecordProjection() {
	if globalManager.enabled {
		globalManager.projectionsComputed.Inc()
	}
}

// UpdateSnapshotAge sets the served snapshot age in seconds.
func UpdateSnapshotAge(seconds float64) {
	if globalManager.enabled {
		globalManager.snapshotAgeSeconds.Set(seconds)
	}
}

// UpdateUnresolvedStarters sets the unresolved starter gauge.
func UpdateUnresolvedStarters(n int) {
	if globalManager.enabled {
		globalManager.unresolvedStarters.Set(float64(n))
	}
}

// UpdateTrackedPlayers sets the player directory size gauge.
func UpdateTrackedPlayers(n int) {
	if globalManager.enabled {
		globalManager.trackedPlayers.Set(float64(n))
	}
}

// UpdateStatWeeksLoaded sets the loaded stat week gauge.
func UpdateStatWeeksLoaded(n int) {
	if globalManager.enabled {
		globalManager.statWeeksLoaded.Set(float64(n))
	}
}

// RecordHTTPRequest counts an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	if globalManager.enabled {
		globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
	}
}

// RecordHTTPRequestDuration records an HTTP request duration in milliseconds.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, ms float64) {
	if globalManager.enabled {
		globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(ms)
	}
}
