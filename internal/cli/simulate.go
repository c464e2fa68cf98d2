package cli

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/okian/arcade/pkg/logger"
)

// Simulation defaults.
const (
	defaultSimPlayers   = 20
	defaultSimScores    = 500
	defaultSimWorkers   = 8
	defaultSimMaxScore  = 10_000
	defaultSimDuplicate = 0.1
	defaultBoardSize    = 15
	progressInterval    = time.Second
)

// SimulationConfig controls a simulate run.
type SimulationConfig struct {
	Players       int
	Scores        int
	Workers       int
	MaxScore      int64
	DuplicateRate float64
	Seed          uint64

	// BoardSize bounds every leaderboard. Zero reads it from /stats.
	BoardSize int
}

// SimulationReport summarizes a simulate run.
type SimulationReport struct {
	Players       int           `json:"players"`
	Submitted     int           `json:"submitted"`
	Recorded      int           `json:"recorded"`
	Duplicates    int           `json:"duplicates"`
	Failed        int           `json:"failed"`
	BoardsChecked int           `json:"boardsChecked"`
	Duration      time.Duration `json:"durationNs"`
	Problems      []string      `json:"problems,omitempty"`
}

// ErrSimulationFailed is returned when verification finds problems.
var ErrSimulationFailed = errors.New("simulation verification failed")

func newSimulateCmd() *cobra.Command {
	sc := SimulationConfig{
		Players:       defaultSimPlayers,
		Scores:        defaultSimScores,
		Workers:       defaultSimWorkers,
		MaxScore:      defaultSimMaxScore,
		DuplicateRate: defaultSimDuplicate,
	}

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Register players, submit random scores concurrently and verify the leaderboards",
		RunE: func(cmd *cobra.Command, args []string) error {
			if sc.Seed == 0 {
				sc.Seed = uint64(time.Now().UnixNano())
			}
			report, err := Simulate(cmd.Context(), client, sc)
			if err != nil && !errors.Is(err, ErrSimulationFailed) {
				return err
			}
			output(cmd).Print(report)
			return err
		},
	}

	cmd.Flags().IntVar(&sc.Players, "players", sc.Players, "Players to register")
	cmd.Flags().IntVar(&sc.Scores, "scores", sc.Scores, "Scores to submit")
	cmd.Flags().IntVar(&sc.Workers, "workers", sc.Workers, "Concurrent submitters")
	cmd.Flags().Int64Var(&sc.MaxScore, "max-score", sc.MaxScore, "Upper bound of generated scores")
	cmd.Flags().Float64Var(&sc.DuplicateRate, "duplicates", sc.DuplicateRate, "Fraction of submissions sent twice")
	cmd.Flags().Uint64Var(&sc.Seed, "seed", 0, "Random seed (0 picks one)")
	cmd.Flags().IntVar(&sc.BoardSize, "board-size", 0, "Expected leaderboard rows (0 asks the server)")

	return cmd
}

// submission is one planned POST /scores call. resend marks a replay of an
// earlier submission id.
type submission struct {
	req    scoreRequest
	resend bool
}

// Simulate drives the API and checks that every leaderboard is ordered,
// bounded and filter-correct.
func Simulate(ctx context.Context, c *Client, sc SimulationConfig) (SimulationReport, error) {
	if sc.Players < 1 || sc.Scores < 1 || sc.Workers < 1 || sc.MaxScore < 0 {
		return SimulationReport{}, errors.New("players, scores and workers must be positive")
	}
	log := logger.Named("simulate")
	start := time.Now()
	report := SimulationReport{}

	var health HealthResult
	if err := c.Get(ctx, "/healthz", &health); err != nil {
		return report, fmt.Errorf("service health check failed: %w", err)
	}

	var catalog GamesResult
	if err := c.Get(ctx, "/games", &catalog); err != nil {
		return report, fmt.Errorf("fetch games: %w", err)
	}
	if len(catalog.Games) == 0 {
		return report, fmt.Errorf("server lists no games")
	}
	games := make([]string, len(catalog.Games))
	for i, g := range catalog.Games {
		games[i] = g.Name
	}

	size := boardSize(ctx, c, sc.BoardSize)

	players, err := registerPlayers(ctx, c, sc.Players)
	if err != nil {
		return report, err
	}
	report.Players = len(players)
	log.Info(ctx, "players registered", logger.Int("count", len(players)))

	rng := rand.New(rand.NewPCG(sc.Seed, sc.Seed^0x9e3779b97f4a7c15))
	plan := planSubmissions(rng, players, games, sc)

	submitted, recorded, duplicates, failed := submitAll(ctx, c, plan, sc.Workers)
	report.Submitted = submitted
	report.Recorded = recorded
	report.Duplicates = duplicates
	report.Failed = failed

	expectedDup := 0
	best := make(map[string]int64)
	for _, s := range plan {
		if s.resend {
			expectedDup++
			continue
		}
		if s.req.Score > best[s.req.Game] {
			best[s.req.Game] = s.req.Score
		}
	}
	if failed == 0 && duplicates != expectedDup {
		report.Problems = append(report.Problems,
			fmt.Sprintf("expected %d duplicate acknowledgements, got %d", expectedDup, duplicates))
	}

	for _, game := range append([]string{""}, games...) {
		var board LeaderboardResult
		if err := c.Get(ctx, leaderboardPath(game), &board); err != nil {
			return report, fmt.Errorf("fetch leaderboard %q: %w", game, err)
		}
		report.BoardsChecked++
		report.Problems = append(report.Problems, verifyBoard(game, board, best, size)...)
	}

	report.Duration = time.Since(start)
	log.Info(ctx, "simulation finished",
		logger.Int("submitted", report.Submitted),
		logger.Int("recorded", report.Recorded),
		logger.Int("duplicates", report.Duplicates),
		logger.Int("failed", report.Failed),
		logger.Int("problems", len(report.Problems)),
		logger.Duration("duration", report.Duration),
	)

	if len(report.Problems) > 0 {
		return report, fmt.Errorf("%w: %d problem(s)", ErrSimulationFailed, len(report.Problems))
	}
	return report, nil
}

// boardSize returns want when set, else the server's configured
// leaderboardSize, else defaultBoardSize.
func boardSize(ctx context.Context, c *Client, want int) int {
	if want > 0 {
		return want
	}
	var stats struct {
		LeaderboardSize int `json:"leaderboardSize"`
	}
	if err := c.Get(ctx, "/stats", &stats); err != nil || stats.LeaderboardSize <= 0 {
		logger.Named("simulate").Warn(ctx, "leaderboard size unknown, assuming default",
			logger.Int("size", defaultBoardSize), logger.Error(err))
		return defaultBoardSize
	}
	return stats.LeaderboardSize
}

func registerPlayers(ctx context.Context, c *Client, n int) ([]string, error) {
	ids := make([]string, 0, n)
	for i := 0; i < n; i++ {
		req := map[string]string{
			"name":  fmt.Sprintf("Sim Player %d", i+1),
			"email": fmt.Sprintf("sim%d@arcade.test", i+1),
		}
		var res UserResult
		if err := c.Post(ctx, "/register", req, &res); err != nil {
			return nil, fmt.Errorf("register player %d: %w", i+1, err)
		}
		ids = append(ids, res.User.ID)
	}
	return ids, nil
}

// planSubmissions draws sc.Scores fresh submissions and replays about
// DuplicateRate of them.
func planSubmissions(rng *rand.Rand, players, games []string, sc SimulationConfig) []submission {
	plan := make([]submission, 0, sc.Scores+int(float64(sc.Scores)*sc.DuplicateRate)+1)
	for i := 0; i < sc.Scores; i++ {
		req := scoreRequest{
			UserID:       players[rng.IntN(len(players))],
			Game:         games[rng.IntN(len(games))],
			Score:        rng.Int64N(sc.MaxScore + 1),
			SubmissionID: uuid.NewString(),
		}
		plan = append(plan, submission{req: req})
		if rng.Float64() < sc.DuplicateRate {
			plan = append(plan, submission{req: req, resend: true})
		}
	}
	return plan
}

// submitAll posts the plan through a pool of workers.
func submitAll(ctx context.Context, c *Client, plan []submission, workers int) (submitted, recorded, duplicates, failed int) {
	log := logger.Named("simulate")

	var (
		nSubmitted  atomic.Int64
		nRecorded   atomic.Int64
		nDuplicates atomic.Int64
		nFailed     atomic.Int64
		lastReport  atomic.Int64
	)

	ch := make(chan scoreRequest, workers*2)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for req := range ch {
				var res ScoreResult
				err := c.Post(ctx, "/scores", req, &res)
				nSubmitted.Add(1)
				switch {
				case err != nil:
					nFailed.Add(1)
					log.Debug(ctx, "submission failed", logger.String("submissionId", req.SubmissionID), logger.Error(err))
				case res.Duplicate:
					nDuplicates.Add(1)
				default:
					nRecorded.Add(1)
				}

				now := time.Now().UnixNano()
				last := lastReport.Load()
				if now-last >= int64(progressInterval) && lastReport.CompareAndSwap(last, now) {
					log.Info(ctx, "progress",
						logger.Int64("submitted", nSubmitted.Load()),
						logger.Int("total", len(plan)),
					)
				}
			}
		}()
	}

	go func() {
		defer close(ch)
		for _, s := range plan {
			select {
			case <-ctx.Done():
				return
			case ch <- s.req:
			}
		}
	}()

	wg.Wait()
	return int(nSubmitted.Load()), int(nRecorded.Load()), int(nDuplicates.Load()), int(nFailed.Load())
}

// verifyBoard checks one leaderboard of at most size rows. best holds the
// highest score this run submitted per game.
func verifyBoard(game string, board LeaderboardResult, best map[string]int64, size int) []string {
	label := game
	if label == "" {
		label = "all games"
	}
	var problems []string

	rows := board.Leaderboard
	if len(rows) > size {
		problems = append(problems, fmt.Sprintf("%s: %d rows exceeds %d", label, len(rows), size))
	}
	for i, r := range rows {
		if game != "" && r.Game != game {
			problems = append(problems, fmt.Sprintf("%s: row %d belongs to %q", label, i+1, r.Game))
		}
		if i > 0 && rows[i-1].Score < r.Score {
			problems = append(problems, fmt.Sprintf("%s: row %d (%d) outranks row %d (%d)", label, i+1, r.Score, i, rows[i-1].Score))
		}
		if r.Name == "" {
			problems = append(problems, fmt.Sprintf("%s: row %d has no name", label, i+1))
		}
	}

	want := int64(-1)
	if game == "" {
		for _, s := range best {
			want = max(want, s)
		}
	} else if s, ok := best[game]; ok {
		want = s
	}
	switch {
	case want < 0:
	case len(rows) == 0:
		problems = append(problems, fmt.Sprintf("%s: empty board after submitting scores", label))
	case rows[0].Score < want:
		problems = append(problems, fmt.Sprintf("%s: top score %d is below submitted %d", label, rows[0].Score, want))
	}
	return problems
}
