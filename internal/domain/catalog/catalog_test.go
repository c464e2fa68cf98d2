package catalog_test

import (
	"context"
	"errors"
	"testing"

	"github.com/okian/arcade/internal/domain/catalog"
	"github.com/okian/arcade/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestCatalog(t *testing.T) {
	Convey("Given a default catalog", t, func() {
		ctx := context.Background()
		c := catalog.New()

		Convey("Then it lists the arcade games in order", func() {
			games := c.Games(ctx)
			So(games, ShouldHaveLength, len(catalog.DefaultGames))
			So(games[0], ShouldResemble, model.Game{Name: "AI Mind Reader"})
			So(games[6].Name, ShouldEqual, "AR Treasure Hunt")
			So(c.Strict(), ShouldBeFalse)
		})

		Convey("Then any game passes the check", func() {
			So(c.Check("Pinball"), ShouldBeNil)
			So(c.Known("Pinball"), ShouldBeFalse)
			So(c.Known(" Code Roulette "), ShouldBeTrue)
		})

		Convey("Then callers cannot mutate it", func() {
			games := c.Games(ctx)
			games[0].Name = "changed"
			So(c.Games(ctx)[0].Name, ShouldEqual, "AI Mind Reader")
		})
	})

	Convey("Given a strict catalog with a custom list", t, func() {
		ctx := context.Background()
		c := catalog.New(
			catalog.WithGames([]string{" Quiz ", "Maze", "", "Quiz"}),
			catalog.WithStrict(true),
		)

		Convey("Then names are trimmed and deduplicated", func() {
			So(c.Games(ctx), ShouldResemble, []model.Game{{Name: "Quiz"}, {Name: "Maze"}})
		})

		Convey("Then listed games pass", func() {
			So(c.Check("Quiz"), ShouldBeNil)
			So(c.Check(" Maze"), ShouldBeNil)
		})

		Convey("Then unlisted games are rejected", func() {
			err := c.Check("Pinball")
			So(errors.Is(err, catalog.ErrUnknownGame), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "Pinball")
		})
	})
}
