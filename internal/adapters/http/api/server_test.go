package api_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cwilhelm/gridiron/internal/adapters/http/api"
	"github.com/cwilhelm/gridiron/internal/app"
	"github.com/cwilhelm/gridiron/internal/domain/matchup"
	"github.com/cwilhelm/gridiron/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

// stubDeps fakes the service layer behind the handlers.
type stubDeps struct {
	board    types.Scoreboard
	boardErr error
	details  map[string]types.PlayerDetail
}

func (d *stubDeps) Scoreboard(context.Context) (types.Scoreboard, error) {
	return d.board, d.boardErr
}

func (d *stubDeps) PlayerDetail(_ context.Context, playerID string) (types.PlayerDetail, error) {
	if detail, ok := d.details[playerID]; ok {
		return detail, nil
	}
	return types.PlayerDetail{}, fmt.Errorf("player %s: %w", playerID, app.ErrPlayerNotFound)
}

func (d *stubDeps) Stats() map[string]interface{} {
	return map[string]interface{}{"started": true}
}

func get(handler http.Handler, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestRouter(t *testing.T) {
	Convey("Given an API over a healthy service", t, func() {
		deps := &stubDeps{
			board: types.Scoreboard{
				Season:    2025,
				Week:      9,
				TeamA:     types.TeamSide{RosterID: 1, Name: "Carl"},
				TeamB:     types.TeamSide{RosterID: 2, Name: "Dana"},
				UpdatedAt: time.Now(),
			},
			details: map[string]types.PlayerDetail{
				"4034": {PlayerID: "4034", Name: "Patrick Mahomes"},
			},
		}
		router := api.NewServer(deps).Router()

		Convey("When hitting the health endpoint", func() {
			rec := get(router, "/healthz")

			Convey("Then the service reports ok", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
			})
		})

		Convey("When fetching the matchup", func() {
			rec := get(router, "/api/matchup")

			Convey("Then the scoreboard serializes", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				var board types.Scoreboard
				So(json.Unmarshal(rec.Body.Bytes(), &board), ShouldBeNil)
				So(board.Week, ShouldEqual, 9)
				So(board.TeamA.Name, ShouldEqual, "Carl")
			})
		})

		Convey("When fetching a known player", func() {
			rec := get(router, "/api/players/4034")

			Convey("Then the detail serializes", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				var detail types.PlayerDetail
				So(json.Unmarshal(rec.Body.Bytes(), &detail), ShouldBeNil)
				So(detail.Name, ShouldEqual, "Patrick Mahomes")
			})
		})

		Convey("When fetching an unknown player", func() {
			rec := get(router, "/api/players/777")

			Convey("Then the API answers 404 with a stable code", func() {
				So(rec.Code, ShouldEqual, http.StatusNotFound)
				var body map[string]string
				So(json.Unmarshal(rec.Body.Bytes(), &body), ShouldBeNil)
				So(body["code"], ShouldEqual, "player_not_found")
			})
		})

		Convey("When scraping metrics", func() {
			rec := get(router, "/metrics")

			Convey("Then the registry serves", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
			})
		})
	})

	Convey("Given a service that has not produced a snapshot", t, func() {
		deps := &stubDeps{boardErr: app.ErrNoSnapshot}
		router := api.NewServer(deps).Router()

		Convey("When fetching the matchup", func() {
			rec := get(router, "/api/matchup")

			Convey("Then the API answers 503 not_ready", func() {
				So(rec.Code, ShouldEqual, http.StatusServiceUnavailable)
				var body map[string]string
				So(json.Unmarshal(rec.Body.Bytes(), &body), ShouldBeNil)
				So(body["code"], ShouldEqual, "not_ready")
			})
		})
	})

	Convey("Given a week with no matchup for the roster", t, func() {
		deps := &stubDeps{boardErr: fmt.Errorf("roster 3: %w", matchup.ErrMatchupNotFound)}
		router := api.NewServer(deps).Router()

		Convey("When fetching the matchup", func() {
			rec := get(router, "/api/matchup")

			Convey("Then the ambiguity gets its own 404 code", func() {
				So(rec.Code, ShouldEqual, http.StatusNotFound)
				var body map[string]string
				So(json.Unmarshal(rec.Body.Bytes(), &body), ShouldBeNil)
				So(body["code"], ShouldEqual, "no_matchup")
			})
		})
	})
}
