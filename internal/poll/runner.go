// Package poll provides the recurring refresh scheduler: an interval task
// with overlap prevention and per-tick error isolation.
package poll

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/cwilhelm/gridiron/pkg/logger"
	"github.com/cwilhelm/gridiron/pkg/metrics"
)

// Default runner configuration constants.
const (
	defaultInterval = 30 * time.Second
)

// Task is one refresh cycle. A returned error is logged and isolated; it
// never halts subsequent ticks.
type Task func(ctx context.Context) error

// Runner executes a task on a fixed interval. Ticks run inline on the runner
// goroutine, so a new cycle can never begin before the previous one
// completes; a tick that fires while the task is still running is simply the
// next channel receive.
type Runner struct {
	interval time.Duration
	task     Task
	name     string

	shutdown chan struct{}
	done     chan struct{}

	logger logger.Logger
}

// Option applies a configuration option to the Runner.
type Option func(*Runner)

// WithName names the runner for log attribution.
func WithName(name string) Option {
	return func(r *Runner) {
		if name != "" {
			r.name = name
		}
	}
}

// WithLogger sets a custom logger for the runner.
func WithLogger(l logger.Logger) Option {
	return func(r *Runner) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewRunner creates a Runner executing task every interval.
func NewRunner(interval time.Duration, task Task, opts ...Option) *Runner {
	r := &Runner{
		interval: interval,
		task:     task,
		name:     "poll",
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
	}
	if r.interval <= 0 {
		r.interval = defaultInterval
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = logger.Get().Named(r.name)
	}
	return r
}

// Run executes an immediate first tick and then one tick per interval until
// ctx is canceled or Shutdown is called.
func (r *Runner) Run(ctx context.Context) {
	defer close(r.done)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.tick(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-r.shutdown:
			return
		case <-ticker.C:
			r.tick(ctx)
		}
	}
}

// Shutdown stops the runner after the in-flight tick, if any, completes.
func (r *Runner) Shutdown(ctx context.Context) error {
	select {
	case <-r.shutdown:
	default:
		close(r.shutdown)
	}

	select {
	case <-r.done:
		return nil
	case <-ctx.Done():
		r.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

// tick runs one cycle with panic and error isolation.
func (r *Runner) tick(ctx context.Context) {
	cycleID := uuid.NewString()
	start := time.Now()

	defer func() {
		if rec := recover(); rec != nil {
			metrics.RecordRefreshError()
			r.logger.Error(ctx, "refresh cycle panicked",
				logger.String("cycle", cycleID),
				logger.Any("panic", rec),
			)
		}
	}()

	if err := r.task(ctx); err != nil {
		metrics.RecordRefreshError()
		r.logger.Warn(ctx, "refresh cycle failed; retrying on next tick",
			logger.String("cycle", cycleID),
			logger.Error(err),
		)
		return
	}

	metrics.RecordRefreshCycle()
	metrics.RecordRefreshDuration(float64(time.Since(start).Milliseconds()))
	r.logger.Debug(ctx, "refresh cycle complete",
		logger.String("cycle", cycleID),
		logger.Float64("elapsedMs", float64(time.Since(start).Milliseconds())),
	)
}
