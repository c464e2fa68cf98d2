package service_test

import (
	"fmt"
	"sync"
	"testing"

	service "github.com/okian/arcade/internal/app"
	"github.com/okian/arcade/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func TestServiceIntegration(t *testing.T) {
	Convey("Given a running arcade", t, func() {
		svc, ctx := startedService(service.WithDedupeSize(500))
		defer svc.Stop()

		alex, err := svc.Register(ctx, "Alex Chen", "alex@example.com", "")
		So(err, ShouldBeNil)
		jamie, err := svc.Register(ctx, "Jamie Smith", "jamie@example.com", "")
		So(err, ShouldBeNil)

		Convey("When two players play two games", func() {
			submit := func(playerID, game string, score float64) {
				_, err := svc.SubmitScore(ctx, types.Submission{PlayerID: playerID, Game: game, Score: score})
				So(err, ShouldBeNil)
			}
			submit(alex.ID, "Code Roulette", 10)
			submit(jamie.ID, "Code Roulette", 30)
			submit(alex.ID, "AR Treasure Hunt", 5)

			Convey("Then the game board ranks within the game", func() {
				rows, err := svc.Leaderboard(ctx, "Code Roulette")
				So(err, ShouldBeNil)
				So(rows, ShouldHaveLength, 2)
				So(rows[0].Name, ShouldEqual, "Jamie Smith")
				So(rows[0].Score, ShouldEqual, int64(30))
				So(rows[0].ID, ShouldEqual, jamie.ID)
				So(rows[1].Name, ShouldEqual, "Alex Chen")
				So(rows[1].ID, ShouldEqual, alex.ID)
			})

			Convey("Then the overall board ranks everything", func() {
				rows, err := svc.Leaderboard(ctx, "")
				So(err, ShouldBeNil)
				So(rows, ShouldHaveLength, 3)
				So(rows[2].Game, ShouldEqual, "AR Treasure Hunt")
			})

			Convey("Then the login flow returns the same player", func() {
				u, err := svc.Login(ctx, "jamie@example.com", jamie.ID)
				So(err, ShouldBeNil)
				So(u.Name, ShouldEqual, "Jamie Smith")
			})
		})

		Convey("When many stations submit concurrently", func() {
			const stations, perStation = 8, 50
			var wg sync.WaitGroup
			for st := 0; st < stations; st++ {
				wg.Add(1)
				go func(st int) {
					defer wg.Done()
					for i := 0; i < perStation; i++ {
						sub := types.Submission{
							PlayerID:     alex.ID,
							Game:         "Code Roulette",
							Score:        float64(st*perStation + i),
							SubmissionID: fmt.Sprintf("sub-%d", i),
						}
						_, _ = svc.SubmitScore(ctx, sub)
					}
				}(st)
			}
			wg.Wait()

			Convey("Then each submission id is recorded once", func() {
				So(svc.GetStats()["entries"], ShouldEqual, perStation)
				So(svc.Size(), ShouldEqual, int64(perStation))

				rows, err := svc.Leaderboard(ctx, "Code Roulette")
				So(err, ShouldBeNil)
				So(rows, ShouldHaveLength, 15)
				for i := 1; i < len(rows); i++ {
					So(rows[i-1].Score, ShouldBeGreaterThanOrEqualTo, rows[i].Score)
				}
			})
		})
	})
}
