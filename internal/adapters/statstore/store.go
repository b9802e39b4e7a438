package statstore

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"sort"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/cwilhelm/gridiron/internal/domain/model"
	"github.com/cwilhelm/gridiron/pkg/logger"
	"github.com/cwilhelm/gridiron/pkg/metrics"
)

// Store loads the season stat file at most once per session. Concurrent
// callers of a not-yet-loaded store share a single in-flight load.
type Store struct {
	path string

	group  singleflight.Group
	mu     sync.RWMutex
	season *Season

	logger logger.Logger
}

// Option applies a configuration option to the Store.
type Option func(*Store)

// WithLogger sets a custom logger for the store.
func WithLogger(l logger.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewStore creates a Store reading the stats dataset from path. An empty
// path means no raw stats source is configured.
func NewStore(path string, opts ...Option) *Store {
	s := &Store{path: path}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load reads and normalizes the stat file, once. Repeat calls return the
// cached season. An absent file is "no raw stats available", not fatal: the
// store stays loaded and empty.
func (s *Store) Load(ctx context.Context) (*Season, error) {
	s.mu.RLock()
	if s.season != nil {
		season := s.season
		s.mu.RUnlock()
		return season, nil
	}
	s.mu.RUnlock()

	v, err, _ := s.group.Do("load", func() (any, error) {
		return s.load(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.(*Season), nil
}

func (s *Store) load(ctx context.Context) (*Season, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.season != nil {
		return s.season, nil
	}

	season := Season{Weeks: make(map[int]map[string]model.StatRow)}
	if s.path != "" {
		raw, err := os.ReadFile(s.path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			s.log().Warn(ctx, "stats file absent; continuing without raw stats",
				logger.String("path", s.path))
		case err != nil:
			return nil, err
		default:
			season = Normalize(raw)
			if len(season.Weeks) == 0 && season.Season == 0 {
				s.log().Warn(ctx, "stats file yielded no rows",
					logger.String("path", s.path),
					logger.Error(ErrUnknownShape),
				)
			} else {
				s.log().Info(ctx, "stats dataset loaded",
					logger.String("path", s.path),
					logger.Int("weeks", len(season.Weeks)),
					logger.Int("maxWeek", season.MaxWeek),
				)
			}
		}
	}

	metrics.UpdateStatWeeksLoaded(len(season.Weeks))
	s.season = &season
	return s.season, nil
}

// Season returns the loaded season, or an empty one when the store has not
// been loaded yet.
func (s *Store) Season() *Season {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.season == nil {
		return &Season{Weeks: map[int]map[string]model.StatRow{}}
	}
	return s.season
}

// RecentRows returns all rows from the most recent n weeks present in the
// dataset. It satisfies the resolver's row source contract.
func (s *Store) RecentRows(ctx context.Context, n int) []model.StatRow {
	season, err := s.Load(ctx)
	if err != nil {
		s.log().Warn(ctx, "stat load failed; fuzzy index will be empty", logger.Error(err))
		return nil
	}

	weeks := make([]int, 0, len(season.Weeks))
	for week := range season.Weeks {
		weeks = append(weeks, week)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(weeks)))
	if n > 0 && len(weeks) > n {
		weeks = weeks[:n]
	}

	var rows []model.StatRow
	for _, week := range weeks {
		for _, row := range season.Weeks[week] {
			rows = append(rows, row)
		}
	}
	return rows
}

// History returns up to n rows for one external id from weeks at or below
// upToWeek, ordered oldest to newest. Weeks with no row for the player are
// skipped entirely rather than zero-filled.
func (s *Store) History(ctx context.Context, externalID string, upToWeek, n int) []model.StatRow {
	if externalID == "" || n <= 0 {
		return nil
	}
	season, err := s.Load(ctx)
	if err != nil {
		return nil
	}

	var rows []model.StatRow
	for week := upToWeek; week >= 1 && len(rows) < n; week-- {
		if row, ok := season.Row(week, externalID); ok {
			rows = append(rows, row)
		}
	}
	// Collected newest-first; callers want oldest-first.
	for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
		rows[i], rows[j] = rows[j], rows[i]
	}
	return rows
}

func (s *Store) log() logger.Logger {
	if s.logger == nil {
		s.logger = logger.Get().Named("statstore")
	}
	return s.logger
}
