package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cwilhelm/gridiron/internal/adapters/http/api"
	"github.com/cwilhelm/gridiron/internal/app"
	"github.com/cwilhelm/gridiron/internal/config"
	"github.com/cwilhelm/gridiron/internal/poll"
	"github.com/cwilhelm/gridiron/pkg/logger"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 10 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
)

func main() {
	// Initialize logging
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	// Create and start the service with configuration options
	svc := app.New(
		app.WithLogger(log),
		app.WithLeague(cfg.LeagueID, cfg.Username),
		app.WithStatsPath(cfg.StatsFile),
		app.WithExpectationWeeks(cfg.ExpectationWeeks),
		app.WithResolverIndexWeeks(cfg.ResolverIndexWeeks),
		app.WithDisplayWeek(cfg.DisplayWeek),
		app.WithRuleset(cfg.Scoring),
		app.WithStatusOverrides(cfg.StatusOverrides),
	)
	if err := svc.Start(ctx); err != nil {
		// Configuration errors are fatal to initialization; no retry.
		log.Error(ctx, "failed to start service", logger.Error(err))
		return
	}
	defer svc.Stop()

	// Start the refresh scheduler.
	runner := poll.NewRunner(
		time.Duration(cfg.RefreshIntervalSec)*time.Second,
		svc.Refresh,
		poll.WithName("refresh"),
		poll.WithLogger(log.Named("refresh")),
	)
	go runner.Run(ctx)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           api.NewServer(svc).Router(),
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error(ctx, "HTTP server failed", logger.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	log.Info(context.Background(), "shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := runner.Shutdown(shutdownCtx); err != nil {
		log.Warn(shutdownCtx, "refresh runner shutdown", logger.Error(err))
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn(shutdownCtx, "HTTP server shutdown", logger.Error(err))
	}
}
