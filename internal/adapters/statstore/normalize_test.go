package statstore_test

import (
	"testing"

	"github.com/cwilhelm/gridiron/internal/adapters/statstore"
	"github.com/cwilhelm/gridiron/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestNormalize(t *testing.T) {
	Convey("Given a flat array payload", t, func() {
		raw := []byte(`[
			{"player_id": "00-0000100", "week": 1, "player_name": "Justin Jefferson",
			 "recent_team": "MIN", "position": "WR",
			 "receptions": 8, "receiving_yards": "110", "receiving_tds": 1,
			 "rushing_fumbles_lost": 1, "receiving_fumbles_lost": 1,
			 "fantasy_points": 25.0},
			{"player_id": "00-0000100", "week": "2", "receiving_yards": 40},
			{"week": 3, "receiving_yards": 70},
			{"player_id": "00-0000200", "week": 0, "receiving_yards": 70},
			"not an object"
		]`)

		Convey("When normalizing", func() {
			season := statstore.Normalize(raw)

			Convey("Then stat aliases fold onto canonical keys", func() {
				row, ok := season.Row(1, "00-0000100")
				So(ok, ShouldBeTrue)
				So(row.Stat(model.StatReceptions), ShouldEqual, 8)
				So(row.Stat(model.StatRecYards), ShouldEqual, 110)
				So(row.Stat(model.StatRecTD), ShouldEqual, 1)
				So(row.Name, ShouldEqual, "Justin Jefferson")
				So(row.Team, ShouldEqual, "MIN")
				So(*row.FantasyPoints, ShouldEqual, 25.0)
			})

			Convey("Then fumble-lost categories sum into one key", func() {
				row, _ := season.Row(1, "00-0000100")
				So(row.Stat(model.StatFumbleLost), ShouldEqual, 2)
			})

			Convey("Then numeric strings parse as numbers", func() {
				row, ok := season.Row(2, "00-0000100")
				So(ok, ShouldBeTrue)
				So(row.Stat(model.StatRecYards), ShouldEqual, 40)
			})

			Convey("Then rows without a usable id or week are dropped silently", func() {
				So(season.Rows(3), ShouldBeEmpty)
				So(season.Rows(0), ShouldBeEmpty)
				So(season.MaxWeek, ShouldEqual, 2)
			})
		})
	})

	Convey("Given a nested weeks payload", t, func() {
		raw := []byte(`{
			"season": 2025,
			"max_week": 12,
			"weeks": {
				"4": {"00-0000300": {"pass_yd": 301, "pass_td": 2}},
				"5": {"00-0000300": {"pass_yd": 188}},
				"junk": {"00-0000300": {"pass_yd": 999}}
			}
		}`)

		Convey("When normalizing", func() {
			season := statstore.Normalize(raw)

			Convey("Then the map key is the external id", func() {
				row, ok := season.Row(4, "00-0000300")
				So(ok, ShouldBeTrue)
				So(row.PlayerID, ShouldEqual, "00-0000300")
				So(row.Stat(model.StatPassYards), ShouldEqual, 301)
			})

			Convey("Then non-numeric week keys are skipped", func() {
				So(len(season.Weeks), ShouldEqual, 2)
			})

			Convey("Then provider metadata wins when it claims more weeks", func() {
				So(season.Season, ShouldEqual, 2025)
				So(season.MaxWeek, ShouldEqual, 12)
			})
		})
	})

	Convey("Given garbage input", t, func() {
		Convey("When normalizing", func() {
			Convey("Then the season fails closed to empty", func() {
				So(statstore.Normalize(nil).Weeks, ShouldBeEmpty)
				So(statstore.Normalize([]byte(`{{{`)).Weeks, ShouldBeEmpty)
				So(statstore.Normalize([]byte(`"just a string"`)).Weeks, ShouldBeEmpty)
			})
		})
	})
}
