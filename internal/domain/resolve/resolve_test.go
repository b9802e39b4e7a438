package resolve_test

import (
	"context"
	"testing"

	"github.com/cwilhelm/gridiron/internal/domain/model"
	"github.com/cwilhelm/gridiron/internal/domain/resolve"
	. "github.com/smartystreets/goconvey/convey"
)

// spySource counts how often the fuzzy index pulls rows, so tests can assert
// which resolution paths touch it at all.
type spySource struct {
	rows  []model.StatRow
	calls int
}

func (s *spySource) RecentRows(_ context.Context, _ int) []model.StatRow {
	s.calls++
	return s.rows
}

func TestNormalizeName(t *testing.T) {
	Convey("Given assorted raw player names", t, func() {
		Convey("When normalizing", func() {
			Convey("Then punctuation, case and suffixes are gone", func() {
				So(resolve.NormalizeName("A.J. Brown"), ShouldEqual, "aj brown")
				So(resolve.NormalizeName("Ja'Marr Chase"), ShouldEqual, "jamarr chase")
				So(resolve.NormalizeName("Odell Beckham Jr."), ShouldEqual, "odell beckham")
				So(resolve.NormalizeName("Marvin Harrison II"), ShouldEqual, "marvin harrison")
				So(resolve.NormalizeName("  Amon-Ra   St. Brown "), ShouldEqual, "amonra st brown")
			})

			Convey("Then normalizing twice changes nothing", func() {
				for _, name := range []string{"A.J. Brown", "Odell Beckham Jr.", "amonra st brown", ""} {
					once := resolve.NormalizeName(name)
					So(resolve.NormalizeName(once), ShouldEqual, once)
				}
			})
		})
	})
}

func TestResolve(t *testing.T) {
	ctx := context.Background()

	rows := []model.StatRow{
		{Week: 9, PlayerID: "00-0000100", Name: "Justin Jefferson", Team: "MIN", Position: "WR"},
		{Week: 9, PlayerID: "00-0000200", Name: "Saquon Barkley", Team: "PHI", Position: "RB"},
		{Week: 9, PlayerID: "00-0000300", Name: "Jake Elliott", Team: "PHI", Position: "K"},
	}

	Convey("Given a player whose record embeds the external id", t, func() {
		src := &spySource{rows: rows}
		r := resolve.NewResolver(src)
		p := model.Player{ID: "4034", GSISID: "00-0000999", FullName: "Anyone At All"}

		Convey("When resolving", func() {
			id := r.Resolve(ctx, p)

			Convey("Then the embedded id wins verbatim and the index is never built", func() {
				So(id, ShouldEqual, "00-0000999")
				So(src.calls, ShouldEqual, 0)
			})
		})
	})

	Convey("Given a resolver over recent stat rows", t, func() {
		src := &spySource{rows: rows}
		r := resolve.NewResolver(src)

		Convey("When name, team and position all line up", func() {
			id := r.Resolve(ctx, model.Player{
				ID: "1", FullName: "Justin Jefferson", Team: "MIN", Position: "WR",
			})

			Convey("Then the exact key matches", func() {
				So(id, ShouldEqual, "00-0000100")
			})
		})

		Convey("When the platform lists a stale team", func() {
			id := r.Resolve(ctx, model.Player{
				ID: "2", FullName: "Saquon Barkley", Team: "NYG", Position: "RB",
			})

			Convey("Then name plus position still matches", func() {
				So(id, ShouldEqual, "00-0000200")
			})
		})

		Convey("When only a mangled name is available", func() {
			id := r.Resolve(ctx, model.Player{
				ID: "3", FirstName: "Jacob", LastName: "Elliott", Team: "PHI", Position: "PK",
			})

			Convey("Then the last-initial-plus-team fallback matches", func() {
				So(id, ShouldEqual, "00-0000300")
			})
		})

		Convey("When nothing matches", func() {
			id := r.Resolve(ctx, model.Player{
				ID: "4", FullName: "Total Unknown", Team: "SEA", Position: "TE",
			})

			Convey("Then the result is empty, meaning no data rather than failure", func() {
				So(id, ShouldEqual, "")
			})
		})

		Convey("When the same player is resolved twice", func() {
			first := r.Resolve(ctx, model.Player{
				ID: "5", FullName: "Justin Jefferson", Team: "MIN", Position: "WR",
			})
			second := r.Resolve(ctx, model.Player{
				ID: "5", FullName: "Justin Jefferson", Team: "MIN", Position: "WR",
			})

			Convey("Then the index is built once and the answer is cached", func() {
				So(first, ShouldEqual, second)
				So(src.calls, ShouldEqual, 1)
			})
		})
	})

	Convey("Given two index rows colliding on every fuzzy key", t, func() {
		src := &spySource{rows: []model.StatRow{
			{Week: 9, PlayerID: "00-0000400", Name: "Josh Allen", Team: "BUF", Position: "QB"},
			{Week: 9, PlayerID: "00-0000500", Name: "Josh Allen", Team: "BUF", Position: "QB"},
		}}
		r := resolve.NewResolver(src)

		Convey("When resolving the shared identity", func() {
			id := r.Resolve(ctx, model.Player{
				ID: "6", FullName: "Josh Allen", Team: "BUF", Position: "QB",
			})

			Convey("Then the later row wins", func() {
				So(id, ShouldEqual, "00-0000500")
			})
		})
	})
}
