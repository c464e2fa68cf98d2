package ledger_test

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/okian/arcade/internal/domain/ledger"
	. "github.com/smartystreets/goconvey/convey"
)

type mapDirectory map[string]string

func (d mapDirectory) Name(_ context.Context, id string) (string, bool) {
	name, ok := d[id]
	return name, ok
}

func scores(rows []ledger.Standing) []int64 {
	out := make([]int64, len(rows))
	for i, r := range rows {
		out[i] = r.Entry.Score
	}
	return out
}

func players(rows []ledger.Standing) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Entry.PlayerID
	}
	return out
}

func TestLedgerRecord(t *testing.T) {
	Convey("Given an empty ledger with a fixed clock", t, func() {
		ctx := context.Background()
		at := time.Date(2025, 4, 19, 10, 30, 0, 0, time.UTC)
		l := ledger.New(mapDirectory{}, ledger.WithClock(func() time.Time { return at }))

		Convey("When recording a valid score", func() {
			e, err := l.Record(ctx, "p1", "Quiz", 10)

			Convey("Then the entry is appended with id and timestamp", func() {
				So(err, ShouldBeNil)
				So(e.ID, ShouldNotBeEmpty)
				So(e.PlayerID, ShouldEqual, "p1")
				So(e.Game, ShouldEqual, "Quiz")
				So(e.Score, ShouldEqual, int64(10))
				So(e.RecordedAt, ShouldEqual, at)
				So(l.Len(ctx), ShouldEqual, 1)
			})
		})

		Convey("When recording a zero score", func() {
			_, err := l.Record(ctx, "p1", "Quiz", 0)

			Convey("Then it is accepted", func() {
				So(err, ShouldBeNil)
			})
		})

		Convey("When recording invalid input", func() {
			cases := []struct {
				player, game string
				score        int64
			}{
				{"", "Quiz", 1},
				{"  ", "Quiz", 1},
				{"p1", "", 1},
				{"p1", "\t", 1},
				{"p1", "Quiz", -1},
				{"p1", "Quiz", ledger.MaxScore + 1},
			}

			Convey("Then every case fails with ErrInvalidInput and nothing is appended", func() {
				for _, c := range cases {
					_, err := l.Record(ctx, c.player, c.game, c.score)
					So(errors.Is(err, ledger.ErrInvalidInput), ShouldBeTrue)
				}
				So(l.Len(ctx), ShouldEqual, 0)
			})
		})

		Convey("When fields carry surrounding whitespace", func() {
			e, err := l.Record(ctx, " p1 ", " Quiz ", 3)

			Convey("Then they are trimmed", func() {
				So(err, ShouldBeNil)
				So(e.PlayerID, ShouldEqual, "p1")
				So(e.Game, ShouldEqual, "Quiz")
				So(l.Leaderboard(ctx, "Quiz"), ShouldHaveLength, 1)
			})
		})
	})
}

func TestLedgerLeaderboard(t *testing.T) {
	Convey("Given a ledger with registered players", t, func() {
		ctx := context.Background()
		dir := mapDirectory{"p1": "Alex Chen", "p2": "Jamie Smith"}
		l := ledger.New(dir)

		Convey("When recording the Quiz/Maze scenario", func() {
			_, _ = l.Record(ctx, "p1", "Quiz", 10)
			_, _ = l.Record(ctx, "p2", "Quiz", 30)
			_, _ = l.Record(ctx, "p1", "Maze", 5)

			Convey("Then the Quiz board holds p2 then p1", func() {
				rows := l.Leaderboard(ctx, "Quiz")
				So(players(rows), ShouldResemble, []string{"p2", "p1"})
				So(scores(rows), ShouldResemble, []int64{30, 10})
				So(rows[0].Name, ShouldEqual, "Jamie Smith")
				So(rows[1].Name, ShouldEqual, "Alex Chen")
			})

			Convey("And the unfiltered board holds all three sorted", func() {
				So(scores(l.Leaderboard(ctx, "")), ShouldResemble, []int64{30, 10, 5})
			})

			Convey("And an unknown game yields an empty board", func() {
				So(l.Leaderboard(ctx, "Racing"), ShouldBeEmpty)
			})
		})

		Convey("When scores tie", func() {
			_, _ = l.Record(ctx, "a", "Quiz", 50)
			_, _ = l.Record(ctx, "b", "Quiz", 70)
			_, _ = l.Record(ctx, "c", "Quiz", 50)
			_, _ = l.Record(ctx, "d", "Quiz", 50)

			Convey("Then ties keep insertion order", func() {
				So(players(l.Leaderboard(ctx, "")), ShouldResemble, []string{"b", "a", "c", "d"})
			})
		})

		Convey("When a score belongs to an unregistered player", func() {
			_, _ = l.Record(ctx, "ghost", "Quiz", 99)

			Convey("Then the row is kept with the placeholder name", func() {
				rows := l.Leaderboard(ctx, "Quiz")
				So(rows, ShouldHaveLength, 1)
				So(rows[0].Name, ShouldEqual, ledger.DefaultPlaceholder)
			})
		})

		Convey("When the player registers after scoring", func() {
			_, _ = l.Record(ctx, "p3", "Quiz", 1)
			dir["p3"] = "Late Joiner"

			Convey("Then the join uses the name at read time", func() {
				So(l.Leaderboard(ctx, "Quiz")[0].Name, ShouldEqual, "Late Joiner")
			})
		})

		Convey("When a sixteenth score is recorded for one game", func() {
			for i := 1; i <= 16; i++ {
				_, _ = l.Record(ctx, fmt.Sprintf("p%d", i), "Quiz", int64(i*10))
			}
			_, _ = l.Record(ctx, "p1", "Maze", 1000)

			Convey("Then the game board still holds exactly 15 rows without the lowest", func() {
				rows := l.Leaderboard(ctx, "Quiz")
				So(rows, ShouldHaveLength, ledger.DefaultSize)
				So(rows[0].Entry.Score, ShouldEqual, int64(160))
				So(rows[14].Entry.Score, ShouldEqual, int64(20))
				for _, r := range rows {
					So(r.Entry.Game, ShouldEqual, "Quiz")
				}
			})

			Convey("And the unfiltered board is also capped at 15", func() {
				rows := l.Leaderboard(ctx, "")
				So(rows, ShouldHaveLength, ledger.DefaultSize)
				So(rows[0].Entry.Game, ShouldEqual, "Maze")
			})
		})

		Convey("When querying twice without writes in between", func() {
			for i := 0; i < 20; i++ {
				_, _ = l.Record(ctx, "p1", "Quiz", int64(i%4))
			}

			Convey("Then both results are identical", func() {
				So(l.Leaderboard(ctx, "Quiz"), ShouldResemble, l.Leaderboard(ctx, "Quiz"))
				So(l.Leaderboard(ctx, ""), ShouldResemble, l.Leaderboard(ctx, ""))
			})
		})
	})
}

func TestLedgerOptions(t *testing.T) {
	Convey("Given a ledger with custom size, placeholder and ids", t, func() {
		ctx := context.Background()
		n := 0
		l := ledger.New(nil,
			ledger.WithSize(2),
			ledger.WithPlaceholder("Mystery"),
			ledger.WithIDGenerator(func() string { n++; return fmt.Sprintf("e%d", n) }),
		)

		e1, _ := l.Record(ctx, "p1", "Quiz", 1)
		_, _ = l.Record(ctx, "p2", "Quiz", 2)
		_, _ = l.Record(ctx, "p3", "Quiz", 3)

		Convey("Then the options apply", func() {
			rows := l.Leaderboard(ctx, "")
			So(e1.ID, ShouldEqual, "e1")
			So(rows, ShouldHaveLength, 2)
			So(rows[0].Name, ShouldEqual, "Mystery")
			So(scores(rows), ShouldResemble, []int64{3, 2})
		})

		Convey("And invalid option values are ignored", func() {
			l2 := ledger.New(nil, ledger.WithSize(0), ledger.WithPlaceholder(""), ledger.WithClock(nil), ledger.WithIDGenerator(nil))
			e, err := l2.Record(ctx, "p1", "Quiz", 1)
			So(err, ShouldBeNil)
			So(e.ID, ShouldNotBeEmpty)
			So(e.RecordedAt.IsZero(), ShouldBeFalse)
			So(l2.Leaderboard(ctx, "")[0].Name, ShouldEqual, ledger.DefaultPlaceholder)
		})
	})
}

func TestLedgerConcurrency(t *testing.T) {
	Convey("Given concurrent writers and readers", t, func() {
		ctx := context.Background()
		l := ledger.New(mapDirectory{})
		const writers, perWriter = 16, 200

		var wg sync.WaitGroup
		for w := 0; w < writers; w++ {
			wg.Add(2)
			go func(w int) {
				defer wg.Done()
				for i := 0; i < perWriter; i++ {
					_, _ = l.Record(ctx, fmt.Sprintf("p%d", w), "Quiz", int64(i))
				}
			}(w)
			go func() {
				defer wg.Done()
				for i := 0; i < perWriter/10; i++ {
					rows := l.Leaderboard(ctx, "Quiz")
					for j := 1; j < len(rows); j++ {
						if rows[j-1].Entry.Score < rows[j].Entry.Score {
							panic("leaderboard out of order")
						}
					}
				}
			}()
		}
		wg.Wait()

		Convey("Then no write is lost", func() {
			So(l.Len(ctx), ShouldEqual, writers*perWriter)
			So(scores(l.Leaderboard(ctx, "Quiz"))[0], ShouldEqual, int64(perWriter-1))
		})
	})
}

func TestValidateScore(t *testing.T) {
	Convey("Given wire score values", t, func() {
		Convey("Then finite non-negative integers are accepted", func() {
			for _, v := range []float64{0, 1, 950, ledger.MaxScore} {
				got, err := ledger.ValidateScore(v)
				So(err, ShouldBeNil)
				So(got, ShouldEqual, int64(v))
			}
		})

		Convey("Then everything else is invalid input", func() {
			for _, v := range []float64{-1, 0.5, 99.99, math.NaN(), math.Inf(1), math.Inf(-1), ledger.MaxScore + 2} {
				_, err := ledger.ValidateScore(v)
				So(errors.Is(err, ledger.ErrInvalidInput), ShouldBeTrue)
			}
		})
	})
}
