package service_test

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	service "github.com/okian/arcade/internal/app"
	"github.com/okian/arcade/internal/domain/types"
	"github.com/okian/arcade/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	// Initialize logging for tests
	err := logger.Init()
	if err != nil {
		panic(err)
	}
}

func startedService(opts ...service.Option) (*service.Service, context.Context) {
	ctx := context.Background()
	svc := service.New(opts...)
	if err := svc.Start(ctx); err != nil {
		panic(err)
	}
	return svc, ctx
}

func TestService_New(t *testing.T) {
	Convey("Given a new service with default options", t, func() {
		svc := service.New()

		Convey("Then it should not be started", func() {
			So(svc, ShouldNotBeNil)
			So(svc.GetStats()["started"], ShouldEqual, false)
			So(svc.GetStats()["leaderboardSize"], ShouldEqual, 15)
		})
	})

	Convey("Given a new service with custom options", t, func() {
		svc := service.New(
			service.WithLeaderboardSize(5),
			service.WithDedupeSize(100),
			service.WithStrictGames(true),
			service.WithLogger(logger.Nop()),
		)

		Convey("Then the options should be reflected in stats", func() {
			stats := svc.GetStats()
			So(stats["leaderboardSize"], ShouldEqual, 5)
			So(stats["dedupeSize"], ShouldEqual, 100)
			So(stats["strictGames"], ShouldEqual, true)
		})
	})
}

func TestService_Lifecycle(t *testing.T) {
	Convey("Given a new service", t, func() {
		svc := service.New()
		ctx := context.Background()

		Convey("When used before Start", func() {
			_, err := svc.Leaderboard(ctx, "")
			_, subErr := svc.SubmitScore(ctx, types.Submission{PlayerID: "P1", Game: "Quiz", Score: 1})

			Convey("Then calls fail with ErrNotStarted", func() {
				So(errors.Is(err, types.ErrNotStarted), ShouldBeTrue)
				So(errors.Is(subErr, types.ErrNotStarted), ShouldBeTrue)
				So(svc.Size(), ShouldEqual, int64(0))
			})
		})

		Convey("When started twice and stopped", func() {
			So(svc.Start(ctx), ShouldBeNil)
			So(svc.Start(ctx), ShouldBeNil)
			So(svc.GetStats()["started"], ShouldEqual, true)
			svc.Stop()
			svc.Stop()

			Convey("Then it should be marked as stopped", func() {
				So(svc.GetStats()["started"], ShouldEqual, false)
				_, _, err := svc.Games(ctx)
				So(errors.Is(err, types.ErrNotStarted), ShouldBeTrue)
			})
		})
	})
}

func TestService_SubmitScore(t *testing.T) {
	Convey("Given a started service", t, func() {
		at := time.Date(2025, 4, 19, 10, 30, 0, 0, time.UTC)
		svc, ctx := startedService(service.WithClock(func() time.Time { return at }))
		defer svc.Stop()

		Convey("When submitting a valid score", func() {
			res, err := svc.SubmitScore(ctx, types.Submission{PlayerID: "P123456", Game: "Code Roulette", Score: 950})

			Convey("Then it is recorded and listed", func() {
				So(err, ShouldBeNil)
				So(res.ID, ShouldNotBeEmpty)
				So(res.Duplicate, ShouldBeFalse)

				rows, err := svc.Leaderboard(ctx, "Code Roulette")
				So(err, ShouldBeNil)
				So(rows, ShouldHaveLength, 1)
				So(rows[0], ShouldResemble, types.Row{
					ID:    "P123456",
					Name:  "Unknown Player",
					Score: 950,
					Game:  "Code Roulette",
					Date:  "2025-04-19T10:30:00.000Z",
				})
			})
		})

		Convey("When submitting invalid scores", func() {
			bad := []types.Submission{
				{PlayerID: "", Game: "Quiz", Score: 1},
				{PlayerID: "P1", Game: " ", Score: 1},
				{PlayerID: "P1", Game: "Quiz", Score: -5},
				{PlayerID: "P1", Game: "Quiz", Score: 1.5},
			}

			Convey("Then each is rejected as invalid input", func() {
				for _, sub := range bad {
					_, err := svc.SubmitScore(ctx, sub)
					So(errors.Is(err, types.ErrInvalidInput), ShouldBeTrue)
				}
				rows, _ := svc.Leaderboard(ctx, "")
				So(rows, ShouldBeEmpty)
			})
		})

		Convey("When the same submission id is sent twice", func() {
			sub := types.Submission{PlayerID: "P1", Game: "Quiz", Score: 10, SubmissionID: "sub-1"}
			first, err1 := svc.SubmitScore(ctx, sub)
			second, err2 := svc.SubmitScore(ctx, sub)

			Convey("Then only the first is recorded", func() {
				So(err1, ShouldBeNil)
				So(err2, ShouldBeNil)
				So(first.Duplicate, ShouldBeFalse)
				So(second.Duplicate, ShouldBeTrue)
				So(second.ID, ShouldBeEmpty)
				rows, _ := svc.Leaderboard(ctx, "")
				So(rows, ShouldHaveLength, 1)
				So(svc.Size(), ShouldEqual, int64(1))
			})
		})

		Convey("When an accepted submission id is reused with invalid input", func() {
			_, err := svc.SubmitScore(ctx, types.Submission{PlayerID: "P1", Game: "Quiz", Score: 10, SubmissionID: "sub-3"})
			So(err, ShouldBeNil)

			bad := []types.Submission{
				{PlayerID: "P1", Game: "Quiz", Score: -5, SubmissionID: "sub-3"},
				{PlayerID: "P1", Game: "Quiz", Score: 2.5, SubmissionID: "sub-3"},
				{PlayerID: "P1", Game: "Quiz", Score: math.NaN(), SubmissionID: "sub-3"},
				{PlayerID: "", Game: "Quiz", Score: 10, SubmissionID: "sub-3"},
				{PlayerID: "P1", Game: "", Score: 10, SubmissionID: "sub-3"},
			}

			Convey("Then it is rejected rather than acknowledged as a duplicate", func() {
				for _, sub := range bad {
					res, err := svc.SubmitScore(ctx, sub)
					So(errors.Is(err, types.ErrInvalidInput), ShouldBeTrue)
					So(res.Duplicate, ShouldBeFalse)
				}
				So(svc.Size(), ShouldEqual, int64(1))
			})
		})

		Convey("When a submission id fails validation", func() {
			_, err := svc.SubmitScore(ctx, types.Submission{PlayerID: "P1", Game: "Quiz", Score: -1, SubmissionID: "sub-2"})
			So(err, ShouldNotBeNil)

			Convey("Then the id can be retried", func() {
				res, err := svc.SubmitScore(ctx, types.Submission{PlayerID: "P1", Game: "Quiz", Score: 1, SubmissionID: "sub-2"})
				So(err, ShouldBeNil)
				So(res.Duplicate, ShouldBeFalse)
			})
		})
	})

	Convey("Given a strict service", t, func() {
		svc, ctx := startedService(service.WithGames([]string{"Quiz", "Maze"}), service.WithStrictGames(true))
		defer svc.Stop()

		Convey("Then listed games are accepted and others rejected", func() {
			_, err := svc.SubmitScore(ctx, types.Submission{PlayerID: "P1", Game: "Quiz", Score: 1})
			So(err, ShouldBeNil)

			_, err = svc.SubmitScore(ctx, types.Submission{PlayerID: "P1", Game: "Pinball", Score: 1})
			So(errors.Is(err, types.ErrInvalidInput), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "unknown game")

			_, err = svc.SubmitScore(ctx, types.Submission{PlayerID: "P1", Game: "Maze", Score: 1, SubmissionID: "s-strict"})
			So(err, ShouldBeNil)
			res, err := svc.SubmitScore(ctx, types.Submission{PlayerID: "P1", Game: "Pinball", Score: 1, SubmissionID: "s-strict"})
			So(errors.Is(err, types.ErrInvalidInput), ShouldBeTrue)
			So(res.Duplicate, ShouldBeFalse)

			games, strict, err := svc.Games(ctx)
			So(err, ShouldBeNil)
			So(strict, ShouldBeTrue)
			So(games, ShouldResemble, []types.Game{{Name: "Quiz"}, {Name: "Maze"}})
		})
	})
}

func TestService_Players(t *testing.T) {
	Convey("Given a started service with deterministic ids", t, func() {
		svc, ctx := startedService(
			service.WithRandom(func(int) int { return 23_456 }),
			service.WithPlayerIDPrefix("P"),
		)
		defer svc.Stop()

		Convey("When registering a player", func() {
			u, err := svc.Register(ctx, "Alex Chen", "alex@example.com", "555-0100")

			Convey("Then the player gets an id and can log in", func() {
				So(err, ShouldBeNil)
				So(u, ShouldResemble, types.User{ID: "P123456", Name: "Alex Chen", Email: "alex@example.com", Phone: "555-0100"})

				got, err := svc.Login(ctx, "ALEX@example.com", "P123456")
				So(err, ShouldBeNil)
				So(got, ShouldResemble, u)
			})

			Convey("And the leaderboard shows the registered name", func() {
				_, _ = svc.SubmitScore(ctx, types.Submission{PlayerID: u.ID, Game: "Quiz", Score: 3})
				rows, _ := svc.Leaderboard(ctx, "Quiz")
				So(rows[0].Name, ShouldEqual, "Alex Chen")
			})

			Convey("And wrong credentials are rejected", func() {
				_, err := svc.Login(ctx, "alex@example.com", "P999999")
				So(errors.Is(err, types.ErrInvalidCredentials), ShouldBeTrue)
			})
		})

		Convey("When registering without a name", func() {
			_, err := svc.Register(ctx, "", "alex@example.com", "")

			Convey("Then it is invalid input", func() {
				So(errors.Is(err, types.ErrInvalidInput), ShouldBeTrue)
			})
		})

		Convey("When logging in without an email", func() {
			_, err := svc.Login(ctx, "", "P123456")

			Convey("Then it is invalid input", func() {
				So(errors.Is(err, types.ErrInvalidInput), ShouldBeTrue)
			})
		})
	})
}

func TestService_GetStats(t *testing.T) {
	Convey("Given a started service with activity", t, func() {
		svc, ctx := startedService()
		defer svc.Stop()

		_, _ = svc.Register(ctx, "Alex", "a@example.com", "")
		_, _ = svc.SubmitScore(ctx, types.Submission{PlayerID: "P1", Game: "Quiz", Score: 1, SubmissionID: "s1"})
		_, _ = svc.SubmitScore(ctx, types.Submission{PlayerID: "P1", Game: "Quiz", Score: 2})

		Convey("Then stats report the counts", func() {
			stats := svc.GetStats()
			So(stats["started"], ShouldEqual, true)
			So(stats["entries"], ShouldEqual, 2)
			So(stats["players"], ShouldEqual, 1)
			So(stats["submissionIds"], ShouldEqual, int64(1))
			So(stats["games"], ShouldEqual, 7)
		})
	})
}
