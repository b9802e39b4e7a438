// Package app provides the core service that joins platform data, the stat
// dataset and the projection engine into the dashboard views served by the
// HTTP API.
package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/cwilhelm/gridiron/internal/adapters/sleeper"
	"github.com/cwilhelm/gridiron/internal/adapters/statstore"
	"github.com/cwilhelm/gridiron/internal/domain/matchup"
	"github.com/cwilhelm/gridiron/internal/domain/model"
	"github.com/cwilhelm/gridiron/internal/domain/projection"
	"github.com/cwilhelm/gridiron/internal/domain/resolve"
	"github.com/cwilhelm/gridiron/internal/domain/scoring"
	"github.com/cwilhelm/gridiron/internal/domain/status"
	"github.com/cwilhelm/gridiron/internal/domain/types"
	"github.com/cwilhelm/gridiron/pkg/logger"
	"github.com/cwilhelm/gridiron/pkg/metrics"
)

// PlatformClient abstracts the platform fetch client so tests can substitute
// a fake.
type PlatformClient interface {
	State(ctx context.Context) (sleeper.NFLState, error)
	Players(ctx context.Context) (sleeper.Directory, error)
	UserByName(ctx context.Context, username string) (sleeper.LeagueUser, error)
	LeagueUsers(ctx context.Context, leagueID string) ([]matchup.User, error)
	LeagueRosters(ctx context.Context, leagueID string) ([]matchup.Roster, error)
	Matchups(ctx context.Context, leagueID string, week int) ([]matchup.Row, error)
	Projections(ctx context.Context, season, week int) (map[string]float64, error)
	Schedule(ctx context.Context, season, week int) ([]model.Game, error)
	AvatarURL(avatarID string) string
}

// Service owns the session caches and serves the assembled views. The player
// directory and stat store load once per session; the scoreboard snapshot is
// rebuilt every refresh cycle, last write wins.
type Service struct {
	mu sync.RWMutex

	client   PlatformClient
	stats    *statstore.Store
	resolver *resolve.Resolver
	adjuster *status.Adjuster
	ruleset  scoring.Ruleset

	// Configuration
	leagueID           string
	username           string
	expectationWeeks   int
	resolverIndexWeeks int
	displayWeek        int
	statusOverrides    map[string]float64
	statsPath          string

	// Session state, loaded once at Start
	state        sleeper.NFLState
	directory    sleeper.Directory
	users        []matchup.User
	rosters      []matchup.Roster
	userRosterID int

	// Latest assembled snapshot, plus the error that prevented one when no
	// snapshot has been produced yet
	snapshot *types.Scoreboard
	lastErr  error

	started bool

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithClient sets the platform client.
func WithClient(c PlatformClient) Option {
	return func(s *Service) {
		if c != nil {
			s.client = c
		}
	}
}

// WithLeague sets the league id and viewing username.
func WithLeague(leagueID, username string) Option {
	return func(s *Service) {
		s.leagueID = leagueID
		s.username = username
	}
}

// WithStatsPath sets the raw weekly statistics file path.
func WithStatsPath(path string) Option {
	return func(s *Service) {
		s.statsPath = path
	}
}

// WithExpectationWeeks sets the projection window.
func WithExpectationWeeks(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.expectationWeeks = n
		}
	}
}

// WithResolverIndexWeeks sets the fuzzy index window.
func WithResolverIndexWeeks(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.resolverIndexWeeks = n
		}
	}
}

// WithDisplayWeek pins the dashboard to a week; 0 follows the platform.
func WithDisplayWeek(week int) Option {
	return func(s *Service) {
		if week > 0 {
			s.displayWeek = week
		}
	}
}

// WithRuleset sets the league scoring ruleset.
func WithRuleset(rs scoring.Ruleset) Option {
	return func(s *Service) {
		s.ruleset = rs
	}
}

// WithStatusOverrides sets manual expectation multiplier overrides keyed by
// platform player id.
func WithStatusOverrides(overrides map[string]float64) Option {
	return func(s *Service) {
		s.statusOverrides = overrides
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		expectationWeeks:   projection.DefaultWindow,
		resolverIndexWeeks: resolve.DefaultIndexWeeks,
		ruleset:            scoring.DefaultRuleset(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start loads the session context: NFL state, the player directory, the
// league structure and the stat dataset. The three network loads fan out
// concurrently and must all complete before the service is usable. A
// username that maps to no league roster is a configuration error and fatal.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("app")
	}
	if s.client == nil {
		s.client = sleeper.NewClient()
	}
	if s.stats == nil {
		s.stats = statstore.NewStore(s.statsPath, statstore.WithLogger(s.logger.Named("statstore")))
	}
	s.resolver = resolve.NewResolver(s.stats, resolve.WithIndexWeeks(s.resolverIndexWeeks))
	s.adjuster = status.NewAdjuster(status.WithOverrides(s.statusOverrides))

	s.logger.Info(ctx, "starting dashboard service",
		logger.String("league", s.leagueID),
		logger.String("username", s.username),
	)

	var (
		user    sleeper.LeagueUser
		users   []matchup.User
		rosters []matchup.Roster
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		state, err := s.client.State(gctx)
		if err != nil {
			return fmt.Errorf("nfl state: %w", err)
		}
		s.state = state
		return nil
	})
	g.Go(func() error {
		dir, err := s.client.Players(gctx)
		if err != nil {
			return fmt.Errorf("player directory: %w", err)
		}
		s.directory = dir
		return nil
	})
	g.Go(func() error {
		var err error
		if user, err = s.client.UserByName(gctx, s.username); err != nil {
			return fmt.Errorf("user %q: %w", s.username, err)
		}
		inner, ictx := errgroup.WithContext(gctx)
		inner.Go(func() error {
			var err error
			users, err = s.client.LeagueUsers(ictx, s.leagueID)
			return err
		})
		inner.Go(func() error {
			var err error
			rosters, err = s.client.LeagueRosters(ictx, s.leagueID)
			return err
		})
		return inner.Wait()
	})
	if err := g.Wait(); err != nil {
		return err
	}

	s.users = users
	s.rosters = rosters
	s.userRosterID = 0
	for _, roster := range rosters {
		if roster.OwnerID == user.UserID {
			s.userRosterID = roster.RosterID
			break
		}
	}
	if s.userRosterID == 0 {
		return fmt.Errorf("user %q has no roster in league %s: %w", s.username, s.leagueID, ErrUserNotFound)
	}

	// The stat file is optional; loading it here keeps the first refresh
	// cheap. Failure degrades to "no raw stats", not a startup error.
	if _, err := s.stats.Load(ctx); err != nil {
		s.logger.Warn(ctx, "stat dataset unavailable", logger.Error(err))
	}

	metrics.UpdateTrackedPlayers(len(s.directory))
	s.started = true
	s.logger.Info(ctx, "dashboard service started",
		logger.Int("rosterID", s.userRosterID),
		logger.Int("week", s.state.Week),
		logger.String("season", s.state.Season),
		logger.Int("players", len(s.directory)),
	)
	return nil
}

// Refresh is one poll cycle: fetch the week's dynamic data, assemble the
// scoreboard and publish it. A failed matchup fetch skips the cycle; failed
// projections or schedule degrade to empty for that source only.
func (s *Service) Refresh(ctx context.Context) error {
	s.mu.RLock()
	if !s.started {
		s.mu.RUnlock()
		return ErrNotStarted
	}
	state := s.state
	s.mu.RUnlock()

	week := s.week(state)
	season := state.SeasonYear()

	var (
		rows        []matchup.Row
		projections map[string]float64
		schedule    []model.Game
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		rows, err = s.client.Matchups(gctx, s.leagueID, week)
		if err != nil {
			return fmt.Errorf("matchups week %d: %w", week, err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if projections, err = s.client.Projections(gctx, season, week); err != nil {
			s.logger.Warn(gctx, "projections unavailable", logger.Int("week", week), logger.Error(err))
			projections = nil
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if schedule, err = s.client.Schedule(gctx, season, week); err != nil {
			s.logger.Warn(gctx, "schedule unavailable", logger.Int("week", week), logger.Error(err))
			schedule = nil
		}
		return nil
	})
	g.Go(func() error {
		fresh, err := s.client.State(gctx)
		if err != nil {
			// Keep the cached state; week transitions catch up next cycle.
			return nil
		}
		s.mu.Lock()
		s.state = fresh
		s.mu.Unlock()
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	pair, err := matchup.Assemble(rows, s.rosters, s.users, s.userRosterID)
	if err != nil {
		s.mu.Lock()
		s.lastErr = err
		s.mu.Unlock()
		return err
	}

	unresolved := 0
	board := &types.Scoreboard{
		Season:    season,
		Week:      week,
		TeamA:     s.teamSide(ctx, pair.TeamA, projections, schedule, &unresolved),
		TeamB:     s.teamSide(ctx, pair.TeamB, projections, schedule, &unresolved),
		UpdatedAt: time.Now(),
	}

	s.mu.Lock()
	s.snapshot = board
	s.lastErr = nil
	s.mu.Unlock()

	metrics.UpdateUnresolvedStarters(unresolved)
	metrics.UpdateSnapshotAge(0)
	return nil
}

// teamSide builds the rendered view of one matchup side.
func (s *Service) teamSide(ctx context.Context, team matchup.TeamView, projections map[string]float64, schedule []model.Game, unresolved *int) types.TeamSide {
	side := types.TeamSide{
		RosterID:  team.RosterID,
		Name:      team.Name,
		Record:    team.Record,
		AvatarURL: s.client.AvatarURL(team.Avatar),
		Points:    team.Points,
		Starters:  make([]types.StarterCard, 0, len(team.Starters)),
	}

	for _, starterID := range team.Starters {
		card := types.StarterCard{PlayerID: starterID, Name: "Unknown Player"}
		player, ok := s.directory.Get(starterID)
		if ok {
			card.Name = player.FullName
			card.Position = player.Position
			card.Team = player.Team
			if s.resolver.Resolve(ctx, player) == "" {
				*unresolved++
			}
		}
		card.ActualPoints = team.StarterPoints[starterID]
		if pts, ok := projections[starterID]; ok {
			card.ProjectedPoints = &pts
		}
		card.StatusText = statusText(player.Team, opponentFor(schedule, player.Team), card.ActualPoints, card.ProjectedPoints)
		side.Starters = append(side.Starters, card)
	}
	return side
}

// statusText mirrors the scoreboard's in-game status bar: team and opponent
// first, then the play state.
func statusText(team, opponent string, actual float64, projected *float64) string {
	text := team
	if opponent != "" {
		text += " vs " + opponent
	}
	switch {
	case projected == nil || *projected == 0:
		text += " - BYE/POST"
	case actual > 0.01:
		text += " - LIVE"
	default:
		text += " - YET TO PLAY"
	}
	return text
}

func opponentFor(schedule []model.Game, team string) string {
	if team == "" {
		return ""
	}
	for _, game := range schedule {
		if opp := game.Opponent(team); opp != "" {
			return opp
		}
	}
	return ""
}

// Scoreboard returns the latest assembled snapshot.
func (s *Service) Scoreboard(ctx context.Context) (types.Scoreboard, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snapshot == nil {
		if s.lastErr != nil {
			return types.Scoreboard{}, s.lastErr
		}
		return types.Scoreboard{}, ErrNoSnapshot
	}
	metrics.UpdateSnapshotAge(time.Since(s.snapshot.UpdatedAt).Seconds())
	return *s.snapshot, nil
}

// PlayerDetail builds the per-player detail view: the recent completed-week
// table plus the Expected and Expected* projection. A player with no
// matching external rows gets a nil Expected, which renderers surface as an
// explicit no-data indicator.
func (s *Service) PlayerDetail(ctx context.Context, playerID string) (types.PlayerDetail, error) {
	s.mu.RLock()
	if !s.started {
		s.mu.RUnlock()
		return types.PlayerDetail{}, ErrNotStarted
	}
	state := s.state
	s.mu.RUnlock()

	player, ok := s.directory.Get(playerID)
	if !ok {
		return types.PlayerDetail{}, fmt.Errorf("player %s: %w", playerID, ErrPlayerNotFound)
	}

	detail := types.PlayerDetail{
		PlayerID: player.ID,
		Name:     player.FullName,
		Position: player.Position,
		Team:     player.Team,
	}

	externalID := s.resolver.Resolve(ctx, player)
	if externalID == "" {
		return detail, nil
	}
	detail.ExternalID = externalID

	history := s.stats.History(ctx, externalID, s.completedWeek(state), s.expectationWeeks)
	for _, row := range history {
		if row.Headshot != "" {
			detail.Headshot = row.Headshot
		}
		detail.Weeks = append(detail.Weeks, types.WeekLine{
			Week:   row.Week,
			Stats:  row.Stats,
			Points: scoring.Score(row, s.ruleset),
		})
	}

	expected := projection.Aggregate(history)
	if pts, ok := projection.Points(expected, s.ruleset); ok {
		adj := s.adjuster.Adjust(player.ID, player)
		detail.Expected = &types.ExpectedLine{
			Stats:          expected.Stats,
			Points:         pts,
			AdjustedPoints: pts * adj.Multiplier,
			Multiplier:     adj.Multiplier,
			Note:           adj.Note,
		}
		metrics.RecordProjection()
	}
	return detail, nil
}

// week returns the week the dashboard is following.
func (s *Service) week(state sleeper.NFLState) int {
	if s.displayWeek > 0 {
		return s.displayWeek
	}
	if state.Week > 0 {
		return state.Week
	}
	return 1
}

// completedWeek is the latest week whose data can feed the expectation:
// min(current week - 1, latest week present in the dataset, configured
// display week - 1).
func (s *Service) completedWeek(state sleeper.NFLState) int {
	week := state.Week - 1
	if maxWeek := s.stats.Season().MaxWeek; maxWeek < week {
		week = maxWeek
	}
	if s.displayWeek > 0 && s.displayWeek-1 < week {
		week = s.displayWeek - 1
	}
	return week
}

// Stop marks the service stopped. Session caches are discarded with the
// process; there is nothing to flush.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "dashboard service stopped")
}

// Stats returns service statistics for monitoring.
func (s *Service) Stats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":      s.started,
		"league_id":    s.leagueID,
		"roster_id":    s.userRosterID,
		"players":      len(s.directory),
		"display_week": s.displayWeek,
	}
	if s.stats != nil {
		stats["stat_weeks"] = len(s.stats.Season().Weeks)
	}
	if s.snapshot != nil {
		stats["snapshot_week"] = s.snapshot.Week
		stats["snapshot_age_sec"] = time.Since(s.snapshot.UpdatedAt).Seconds()
	}
	return stats
}
