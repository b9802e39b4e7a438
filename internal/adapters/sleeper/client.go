package sleeper

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/cwilhelm/gridiron/internal/domain/matchup"
	"github.com/cwilhelm/gridiron/internal/domain/model"
	"github.com/cwilhelm/gridiron/pkg/metrics"
)

// Default client configuration constants.
const (
	defaultBaseURL    = "https://api.sleeper.app/v1"
	defaultAvatarBase = "https://sleepercdn.com/avatars/thumbs/"
	defaultTimeout    = 15 * time.Second
)

// Client performs HTTP requests against the platform API.
type Client struct {
	baseURL    string
	avatarBase string
	httpClient *http.Client
}

// Option applies a configuration option to the Client.
type Option func(*Client)

// WithBaseURL overrides the API base URL (used by tests).
func WithBaseURL(url string) Option {
	return func(c *Client) {
		if url != "" {
			c.baseURL = url
		}
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.httpClient = h
		}
	}
}

// NewClient creates a platform API client with configuration options.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:    defaultBaseURL,
		avatarBase: defaultAvatarBase,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// AvatarURL synthesizes the CDN thumbnail URL for an avatar id, empty in for
// empty out.
func (c *Client) AvatarURL(avatarID string) string {
	if avatarID == "" {
		return ""
	}
	return c.avatarBase + avatarID
}

// State fetches the current NFL season and week.
func (c *Client) State(ctx context.Context) (NFLState, error) {
	var state NFLState
	err := c.get(ctx, "state", fmt.Sprintf("%s/state/nfl", c.baseURL), &state)
	return state, err
}

// Players fetches the full player directory. This is a large payload and is
// intended to be fetched once per session.
func (c *Client) Players(ctx context.Context) (Directory, error) {
	var raw map[string]playerRecord
	if err := c.get(ctx, "players", fmt.Sprintf("%s/players/nfl", c.baseURL), &raw); err != nil {
		return nil, err
	}
	dir := make(Directory, len(raw))
	for id, rec := range raw {
		dir[id] = rec.toModel(id)
	}
	return dir, nil
}

// UserByName resolves a username to a platform user record.
func (c *Client) UserByName(ctx context.Context, username string) (LeagueUser, error) {
	var user LeagueUser
	err := c.get(ctx, "user", fmt.Sprintf("%s/user/%s", c.baseURL, username), &user)
	return user, err
}

// LeagueUsers fetches all members of a league.
func (c *Client) LeagueUsers(ctx context.Context, leagueID string) ([]matchup.User, error) {
	var users []matchup.User
	err := c.get(ctx, "league_users", fmt.Sprintf("%s/league/%s/users", c.baseURL, leagueID), &users)
	return users, err
}

// LeagueRosters fetches all rosters of a league.
func (c *Client) LeagueRosters(ctx context.Context, leagueID string) ([]matchup.Roster, error) {
	var rosters []matchup.Roster
	err := c.get(ctx, "league_rosters", fmt.Sprintf("%s/league/%s/rosters", c.baseURL, leagueID), &rosters)
	return rosters, err
}

// Matchups fetches the league's matchup rows for a week.
func (c *Client) Matchups(ctx context.Context, leagueID string, week int) ([]matchup.Row, error) {
	var rows []matchup.Row
	err := c.get(ctx, "matchups", fmt.Sprintf("%s/league/%s/matchups/%d", c.baseURL, leagueID, week), &rows)
	return rows, err
}

// Projections fetches the weekly projection payload and reduces it to
// projected points per platform player id. The payload arrives either as an
// id-keyed map or as an array of row objects; unknown shapes reduce to an
// empty map.
func (c *Client) Projections(ctx context.Context, season, week int) (map[string]float64, error) {
	var payload any
	url := fmt.Sprintf("%s/projections/nfl/%d/%d", c.baseURL, season, week)
	if err := c.get(ctx, "projections", url, &payload); err != nil {
		return nil, err
	}

	points := make(map[string]float64)
	switch v := payload.(type) {
	case map[string]any:
		for id, item := range v {
			if obj, ok := item.(map[string]any); ok {
				if pts, ok := projectedPoints(obj); ok {
					points[id] = pts
				}
			}
		}
	case []any:
		for _, item := range v {
			obj, ok := item.(map[string]any)
			if !ok {
				continue
			}
			id, ok := firstString(obj, []string{"player_id", "id"})
			if !ok {
				continue
			}
			if pts, ok := projectedPoints(obj); ok {
				points[id] = pts
			}
		}
	}
	return points, nil
}

// projectedPoints digs the projected point total out of a projection row,
// looking at the row itself and at a nested stats object.
func projectedPoints(obj map[string]any) (float64, bool) {
	aliases := []string{"pts_ppr", "fantasy_points", "fpts", "pts_std"}
	if pts, ok := firstFloat(obj, aliases); ok {
		return pts, true
	}
	if stats, ok := obj["stats"].(map[string]any); ok {
		return firstFloat(stats, aliases)
	}
	return 0, false
}

// Schedule fetches the week's game records. Records that cannot name either
// team are dropped; everything else is parsed with field-name fallbacks.
func (c *Client) Schedule(ctx context.Context, season, week int) ([]model.Game, error) {
	var payload []any
	url := fmt.Sprintf("%s/schedule/nfl/regular/%d", c.baseURL, season)
	if err := c.get(ctx, "schedule", url, &payload); err != nil {
		return nil, err
	}

	var games []model.Game
	for _, item := range payload {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		game, ok := parseGame(obj, week)
		if !ok || game.Week != week {
			continue
		}
		games = append(games, game)
	}
	return games, nil
}

// get performs one GET request and decodes the JSON response into out,
// recording fetch latency and errors per data source.
func (c *Client) get(ctx context.Context, source, url string, out any) error {
	start := time.Now()
	defer func() {
		metrics.RecordFetchLatency(source, float64(time.Since(start).Milliseconds()))
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		metrics.RecordFetchError(source)
		return fmt.Errorf("creating %s request: %w", source, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.RecordFetchError(source)
		return fmt.Errorf("%s: %v: %w", source, err, ErrRequestFailed)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.RecordFetchError(source)
		return fmt.Errorf("%s: status %d for %s: %w", source, resp.StatusCode, url, ErrRequestFailed)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		metrics.RecordFetchError(source)
		return fmt.Errorf("decoding %s response: %w", source, err)
	}
	return nil
}
