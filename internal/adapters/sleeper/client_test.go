package sleeper_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cwilhelm/gridiron/internal/adapters/sleeper"
	. "github.com/smartystreets/goconvey/convey"
)

// newAPIServer serves canned JSON per path, 404 for anything unrouted.
func newAPIServer(routes map[string]string) *httptest.Server {
	mux := http.NewServeMux()
	for path, body := range routes {
		payload := body
		mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(payload))
		})
	}
	return httptest.NewServer(mux)
}

func TestClient(t *testing.T) {
	ctx := context.Background()

	Convey("Given a platform API serving the usual endpoints", t, func() {
		srv := newAPIServer(map[string]string{
			"/state/nfl": `{"week": 9, "display_week": 9, "season": "2025", "season_type": "regular"}`,
			"/players/nfl": `{
				"4034": {"player_id": "4034", "first_name": "Patrick", "last_name": "Mahomes",
				         "team": "KC", "position": "QB", "gsis_id": " 00-0033873 "},
				"6786": {"player_id": "6786", "full_name": "Justin Jefferson", "team": "MIN", "position": "WR"}
			}`,
			"/user/carl": `{"user_id": "u1", "username": "carl", "display_name": "Carl", "avatar": "abc"}`,
			"/league/L1/matchups/9": `[
				{"roster_id": 1, "matchup_id": 3, "points": 55.5,
				 "starters": ["4034"], "players_points": {"4034": 22.1}}
			]`,
		})
		defer srv.Close()
		client := sleeper.NewClient(sleeper.WithBaseURL(srv.URL))

		Convey("When fetching the NFL state", func() {
			state, err := client.State(ctx)

			Convey("Then the season parses to a year", func() {
				So(err, ShouldBeNil)
				So(state.Week, ShouldEqual, 9)
				So(state.SeasonYear(), ShouldEqual, 2025)
			})
		})

		Convey("When fetching the player directory", func() {
			dir, err := client.Players(ctx)

			Convey("Then records normalize into players", func() {
				So(err, ShouldBeNil)
				p, ok := dir.Get("4034")
				So(ok, ShouldBeTrue)
				So(p.FullName, ShouldEqual, "Patrick Mahomes")
				So(p.GSISID, ShouldEqual, "00-0033873")
			})

			Convey("Then numeric id variants resolve to the same player", func() {
				_, ok := dir.Get("4034.0")
				So(ok, ShouldBeTrue)
				_, ok = dir.Get(" 6786 ")
				So(ok, ShouldBeTrue)
				_, ok = dir.Get("9999")
				So(ok, ShouldBeFalse)
			})
		})

		Convey("When fetching matchups", func() {
			rows, err := client.Matchups(ctx, "L1", 9)

			Convey("Then the week's rows decode", func() {
				So(err, ShouldBeNil)
				So(len(rows), ShouldEqual, 1)
				So(rows[0].MatchupID, ShouldEqual, 3)
				So(rows[0].PlayersPoints["4034"], ShouldAlmostEqual, 22.1)
			})
		})

		Convey("When an endpoint returns a non-200", func() {
			_, err := client.Matchups(ctx, "L2", 9)

			Convey("Then the failure wraps the request sentinel", func() {
				So(errors.Is(err, sleeper.ErrRequestFailed), ShouldBeTrue)
			})
		})
	})

	Convey("Given projections served as an id-keyed map", t, func() {
		srv := newAPIServer(map[string]string{
			"/projections/nfl/2025/9": `{
				"4034": {"pts_ppr": 24.3},
				"6786": {"stats": {"pts_ppr": 19.9}},
				"1234": {"gp": 1}
			}`,
		})
		defer srv.Close()
		client := sleeper.NewClient(sleeper.WithBaseURL(srv.URL))

		Convey("When reducing projections", func() {
			points, err := client.Projections(ctx, 2025, 9)

			Convey("Then points surface from the row or its nested stats", func() {
				So(err, ShouldBeNil)
				So(points["4034"], ShouldAlmostEqual, 24.3)
				So(points["6786"], ShouldAlmostEqual, 19.9)
			})

			Convey("Then rows with no point total are left out", func() {
				_, ok := points["1234"]
				So(ok, ShouldBeFalse)
			})
		})
	})

	Convey("Given projections served as an array", t, func() {
		srv := newAPIServer(map[string]string{
			"/projections/nfl/2025/9": `[
				{"player_id": "4034", "fantasy_points": 21.0},
				{"no_id_here": true, "pts_ppr": 9.9}
			]`,
		})
		defer srv.Close()
		client := sleeper.NewClient(sleeper.WithBaseURL(srv.URL))

		Convey("When reducing projections", func() {
			points, err := client.Projections(ctx, 2025, 9)

			Convey("Then only identifiable rows contribute", func() {
				So(err, ShouldBeNil)
				So(points, ShouldResemble, map[string]float64{"4034": 21.0})
			})
		})
	})

	Convey("Given a season schedule feed", t, func() {
		srv := newAPIServer(map[string]string{
			"/schedule/nfl/regular/2025": `[
				{"week": 9, "home": "KC", "away": "BUF", "status": "in_game"},
				{"week": 9, "home_team": "MIN", "away_team": "DET"},
				{"week": 8, "home": "PHI", "away": "DAL"},
				{"week": 9, "status": "pre_game"}
			]`,
		})
		defer srv.Close()
		client := sleeper.NewClient(sleeper.WithBaseURL(srv.URL))

		Convey("When fetching one week", func() {
			games, err := client.Schedule(ctx, 2025, 9)

			Convey("Then only that week's parseable games survive", func() {
				So(err, ShouldBeNil)
				So(len(games), ShouldEqual, 2)
				So(games[0].Opponent("KC"), ShouldEqual, "BUF")
				So(games[1].Home, ShouldEqual, "MIN")
			})
		})
	})

	Convey("Given an avatar id", t, func() {
		client := sleeper.NewClient()

		Convey("When building the thumbnail URL", func() {
			Convey("Then empty in means empty out", func() {
				So(client.AvatarURL("abc"), ShouldEqual, "https://sleepercdn.com/avatars/thumbs/abc")
				So(client.AvatarURL(""), ShouldEqual, "")
			})
		})
	})
}
