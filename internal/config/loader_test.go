package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/cwilhelm/gridiron/internal/config"
	. "github.com/smartystreets/goconvey/convey"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("GRIDIRON_LEAGUE_ID", "123456789")
	t.Setenv("GRIDIRON_USERNAME", "carl")

	Convey("Given only the required identifiers in the environment", t, func() {
		Convey("When loading", func() {
			cfg, err := config.Load(context.Background())

			Convey("Then defaults fill everything else", func() {
				So(err, ShouldBeNil)
				So(cfg.LeagueID, ShouldEqual, "123456789")
				So(cfg.Username, ShouldEqual, "carl")
				So(cfg.Addr, ShouldEqual, ":9080")
				So(cfg.RefreshIntervalSec, ShouldEqual, 30)
				So(cfg.ExpectationWeeks, ShouldEqual, 6)
				So(cfg.Scoring.PassTD, ShouldEqual, 4)
			})
		})
	})
}

func TestLoadLayering(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	file := `
addr: ":7070"
league_id: "file-league"
username: "file-user"
refresh_interval_sec: 15
scoring:
  pass_td: 6
`
	if err := os.WriteFile(path, []byte(file), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("GRIDIRON_CONFIG", path)
	t.Setenv("GRIDIRON_USERNAME", "env-user")

	Convey("Given a config file plus overriding environment", t, func() {
		Convey("When loading", func() {
			cfg, err := config.Load(context.Background())

			Convey("Then env beats file beats defaults", func() {
				So(err, ShouldBeNil)
				So(cfg.Username, ShouldEqual, "env-user")
				So(cfg.Addr, ShouldEqual, ":7070")
				So(cfg.LeagueID, ShouldEqual, "file-league")
				So(cfg.RefreshIntervalSec, ShouldEqual, 15)
				So(cfg.Scoring.PassTD, ShouldEqual, 6)
				So(cfg.Scoring.RushTD, ShouldEqual, 6)
			})
		})
	})
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv("GRIDIRON_CONFIG", filepath.Join(t.TempDir(), "absent.yaml"))

	Convey("Given a config file path that does not exist", t, func() {
		Convey("When loading", func() {
			_, err := config.Load(context.Background())

			Convey("Then a load error is returned", func() {
				So(errors.Is(err, config.ErrLoadConfig), ShouldBeTrue)
			})
		})
	})
}

func TestLoadMissingLeague(t *testing.T) {
	t.Setenv("GRIDIRON_USERNAME", "carl")

	Convey("Given a configuration without a league id", t, func() {
		Convey("When loading", func() {
			_, err := config.Load(context.Background())

			Convey("Then validation fails fatally", func() {
				So(errors.Is(err, config.ErrInvalidConfig), ShouldBeTrue)
			})
		})
	})
}

func TestLoadBadInterval(t *testing.T) {
	t.Setenv("GRIDIRON_LEAGUE_ID", "123456789")
	t.Setenv("GRIDIRON_USERNAME", "carl")
	t.Setenv("GRIDIRON_REFRESH_INTERVAL_SEC", "-5")

	Convey("Given a non-positive refresh interval", t, func() {
		Convey("When loading", func() {
			_, err := config.Load(context.Background())

			Convey("Then validation fails fatally", func() {
				So(errors.Is(err, config.ErrInvalidConfig), ShouldBeTrue)
			})
		})
	})
}
