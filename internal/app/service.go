// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	repository "github.com/okian/arcade/internal/adapters/repository"
	"github.com/okian/arcade/internal/domain/catalog"
	"github.com/okian/arcade/internal/domain/dedupe"
	"github.com/okian/arcade/internal/domain/ledger"
	"github.com/okian/arcade/internal/domain/model"
	"github.com/okian/arcade/internal/domain/types"
	"github.com/okian/arcade/pkg/logger"
	"github.com/okian/arcade/pkg/metrics"
)

// Service implements the API dependencies for the arcade leaderboard.
type Service struct {
	mu sync.RWMutex

	// Core components
	ledger  *ledger.Ledger
	players repository.Store
	catalog *catalog.Catalog
	deduper dedupe.Deduper

	// Configuration
	leaderboardSize int
	dedupeSize      int
	games           []string
	strictGames     bool
	idPrefix        string
	placeholder     string
	now             func() time.Time
	intn            func(n int) int

	// State
	started   bool
	startedAt time.Time

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLeaderboardSize sets how many rows a leaderboard query returns.
func WithLeaderboardSize(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.leaderboardSize = n
		}
	}
}

// WithDedupeSize bounds the submission-id cache. Zero or negative is unbounded.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		s.dedupeSize = size
	}
}

// WithGames sets the game catalog. An empty list keeps the default games.
func WithGames(games []string) Option {
	return func(s *Service) {
		if len(games) > 0 {
			s.games = append([]string(nil), games...)
		}
	}
}

// WithStrictGames rejects scores for games outside the catalog.
func WithStrictGames(strict bool) Option {
	return func(s *Service) {
		s.strictGames = strict
	}
}

// WithPlayerIDPrefix sets the prefix of issued player ids.
func WithPlayerIDPrefix(prefix string) Option {
	return func(s *Service) {
		s.idPrefix = prefix
	}
}

// WithUnknownPlayerName sets the name shown for unregistered players.
func WithUnknownPlayerName(name string) Option {
	return func(s *Service) {
		if strings.TrimSpace(name) != "" {
			s.placeholder = name
		}
	}
}

// WithClock overrides the time source for scores and registrations.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithRandom overrides the source of player id digits.
func WithRandom(intn func(n int) int) Option {
	return func(s *Service) {
		if intn != nil {
			s.intn = intn
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		leaderboardSize: ledger.DefaultSize,
		dedupeSize:      dedupe.DefaultMaxSize,
		games:           append([]string(nil), catalog.DefaultGames...),
		idPrefix:        "P",
		placeholder:     ledger.DefaultPlaceholder,
		now:             time.Now,
		logger:          nil, // resolved on Start
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start builds empty components. State from a previous run is discarded.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting arcade service...")

	storeOpts := []repository.Option{
		repository.WithIDPrefix(s.idPrefix),
		repository.WithClock(s.now),
	}
	if s.intn != nil {
		storeOpts = append(storeOpts, repository.WithRandom(s.intn))
	}
	s.players = repository.NewMemoryStore(storeOpts...)
	s.ledger = ledger.New(s.players,
		ledger.WithSize(s.leaderboardSize),
		ledger.WithPlaceholder(s.placeholder),
		ledger.WithClock(s.now),
	)
	s.catalog = catalog.New(
		catalog.WithGames(s.games),
		catalog.WithStrict(s.strictGames),
	)
	s.deduper = dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(s.dedupeSize))

	metrics.UpdateLedgerEntries(0)
	metrics.UpdatePlayers(0)

	s.started = true
	s.startedAt = s.now()
	s.logger.Info(ctx, "arcade service started",
		logger.Int("leaderboardSize", s.leaderboardSize),
		logger.Int("dedupeSize", s.dedupeSize),
		logger.Int("games", len(s.catalog.Games(ctx))),
		logger.Bool("strictGames", s.strictGames),
	)
	return nil
}

// Stop marks the service stopped. Subsequent calls fail with ErrNotStarted.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "arcade service stopped")
}

// components returns the live components or ErrNotStarted.
func (s *Service) components() (*ledger.Ledger, repository.Store, *catalog.Catalog, dedupe.Deduper, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return nil, nil, nil, nil, types.ErrNotStarted
	}
	return s.ledger, s.players, s.catalog, s.deduper, nil
}

// SubmitScore validates and records a score. A repeated SubmissionID is
// acknowledged as a duplicate without touching the ledger, but only once the
// submission itself is valid.
func (s *Service) SubmitScore(ctx context.Context, sub types.Submission) (types.SubmitResult, error) {
	l, _, c, d, err := s.components()
	if err != nil {
		return types.SubmitResult{}, err
	}

	score, err := s.validate(ctx, c, sub)
	if err != nil {
		return types.SubmitResult{}, err
	}

	subID := strings.TrimSpace(sub.SubmissionID)
	if subID != "" && d.SeenAndRecord(ctx, subID) {
		metrics.RecordScoreDuplicate()
		s.logger.Debug(ctx, "duplicate submission skipped",
			logger.String("submissionId", subID),
			logger.String("playerId", sub.PlayerID),
		)
		return types.SubmitResult{Duplicate: true}, nil
	}

	entry, err := l.Record(ctx, sub.PlayerID, sub.Game, score)
	if err != nil {
		if subID != "" {
			d.Unrecord(ctx, subID)
		}
		return types.SubmitResult{}, s.reject(ctx, "missing_field", err)
	}

	metrics.RecordScoreRecorded()
	metrics.UpdateLedgerEntries(l.Len(ctx))
	s.logger.Debug(ctx, "score recorded",
		logger.String("id", entry.ID),
		logger.String("playerId", entry.PlayerID),
		logger.String("game", entry.Game),
		logger.Int64("score", entry.Score),
	)
	return types.SubmitResult{ID: entry.ID}, nil
}

// validate applies every check the ledger and catalog would, returning the
// integral score.
func (s *Service) validate(ctx context.Context, c *catalog.Catalog, sub types.Submission) (int64, error) {
	score, err := ledger.ValidateScore(sub.Score)
	if err != nil {
		return 0, s.reject(ctx, "score", err)
	}
	game := strings.TrimSpace(sub.Game)
	switch {
	case strings.TrimSpace(sub.PlayerID) == "":
		return 0, s.reject(ctx, "missing_field", fmt.Errorf("%w: player id is required", ledger.ErrInvalidInput))
	case game == "":
		return 0, s.reject(ctx, "missing_field", fmt.Errorf("%w: game is required", ledger.ErrInvalidInput))
	}
	if err := c.Check(game); err != nil {
		return 0, s.reject(ctx, "unknown_game", err)
	}
	return score, nil
}

func (s *Service) reject(ctx context.Context, reason string, err error) error {
	metrics.RecordScoreRejected(reason)
	s.logger.Warn(ctx, "score rejected", logger.String("reason", reason), logger.Error(err))
	return types.Tag(types.ErrInvalidInput, err)
}

// Leaderboard returns the ranked rows, optionally restricted to one game.
func (s *Service) Leaderboard(ctx context.Context, game string) ([]types.Row, error) {
	l, _, _, _, err := s.components()
	if err != nil {
		return nil, err
	}

	start := time.Now()
	standings := l.Leaderboard(ctx, game)
	metrics.RecordLeaderboardQuery(strings.TrimSpace(game) != "", float64(time.Since(start).Microseconds())/1000)

	rows := make([]types.Row, len(standings))
	for i, st := range standings {
		rows[i] = types.Row{
			ID:    st.Entry.PlayerID,
			Name:  st.Name,
			Score: st.Entry.Score,
			Game:  st.Entry.Game,
			Date:  types.FormatDate(st.Entry.RecordedAt),
		}
	}
	return rows, nil
}

// Register creates a player and returns its public view.
func (s *Service) Register(ctx context.Context, name, email, phone string) (types.User, error) {
	_, players, _, _, err := s.components()
	if err != nil {
		return types.User{}, err
	}

	p, err := players.Register(ctx, name, email, phone)
	switch {
	case errors.Is(err, repository.ErrInvalidInput):
		return types.User{}, types.Tag(types.ErrInvalidInput, err)
	case err != nil:
		s.logger.Error(ctx, "player registration failed", logger.Error(err))
		return types.User{}, fmt.Errorf("register player: %w", err)
	}

	metrics.RecordPlayerRegistered()
	s.logger.Info(ctx, "player registered", logger.String("playerId", p.ID))
	return toUser(p), nil
}

// Login checks an email and player id pair.
func (s *Service) Login(ctx context.Context, email, playerID string) (types.User, error) {
	_, players, _, _, err := s.components()
	if err != nil {
		return types.User{}, err
	}

	p, err := players.Authenticate(ctx, email, playerID)
	switch {
	case errors.Is(err, repository.ErrInvalidInput):
		metrics.RecordLogin("invalid_input")
		return types.User{}, types.Tag(types.ErrInvalidInput, err)
	case errors.Is(err, repository.ErrInvalidCredentials):
		metrics.RecordLogin("rejected")
		s.logger.Debug(ctx, "login rejected", logger.String("playerId", playerID))
		return types.User{}, types.Tag(types.ErrInvalidCredentials, err)
	case err != nil:
		return types.User{}, fmt.Errorf("login: %w", err)
	}

	metrics.RecordLogin("success")
	return toUser(p), nil
}

// Games returns the catalog and whether it is enforced.
func (s *Service) Games(ctx context.Context) ([]types.Game, bool, error) {
	_, _, c, _, err := s.components()
	if err != nil {
		return nil, false, err
	}

	games := c.Games(ctx)
	out := make([]types.Game, len(games))
	for i, g := range games {
		out[i] = types.Game{Name: g.Name}
	}
	return out, c.Strict(), nil
}

func toUser(p model.Player) types.User {
	return types.User{ID: p.ID, Name: p.Name, Email: p.Email, Phone: p.Phone}
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":         s.started,
		"leaderboardSize": s.leaderboardSize,
		"dedupeSize":      s.dedupeSize,
		"strictGames":     s.strictGames,
	}

	if s.started {
		entries := s.ledger.Len(ctx)
		players := s.players.Count(ctx)

		stats["entries"] = entries
		stats["players"] = players
		stats["submissionIds"] = s.deduper.Size()
		stats["games"] = len(s.catalog.Games(ctx))
		stats["uptimeSeconds"] = int64(s.now().Sub(s.startedAt).Seconds())

		metrics.UpdateLedgerEntries(entries)
		metrics.UpdatePlayers(players)
	}

	return stats
}

// SeenAndRecord reports whether a submission id was already seen and records it if not.
func (s *Service) SeenAndRecord(ctx context.Context, id string) bool {
	_, _, _, d, err := s.components()
	if err != nil {
		return false
	}
	seen := d.SeenAndRecord(ctx, id)
	if seen {
		metrics.RecordScoreDuplicate()
	}
	return seen
}

// Unrecord forgets a submission id so it can be retried.
func (s *Service) Unrecord(ctx context.Context, id string) {
	if _, _, _, d, err := s.components(); err == nil {
		d.Unrecord(ctx, id)
	}
}

// Size returns the number of submission ids currently remembered.
func (s *Service) Size() int64 {
	_, _, _, d, err := s.components()
	if err != nil {
		return 0
	}
	return d.Size()
}
