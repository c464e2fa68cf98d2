// Package ledger implements the score ledger: an append-only, in-memory record
// of game-completion scores answering ranked, optionally game-filtered queries.
package ledger

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/okian/arcade/internal/domain/model"
)

const (
	// DefaultSize is the number of rows a leaderboard query returns.
	DefaultSize = 15

	// DefaultPlaceholder names entries whose player is not registered.
	DefaultPlaceholder = "Unknown Player"

	// MaxScore is the largest score a JSON client can represent exactly.
	MaxScore = 1<<53 - 1
)

// Directory resolves player ids to display names.
type Directory interface {
	Name(ctx context.Context, playerID string) (string, bool)
}

// Standing is one leaderboard line: an entry and the name it is shown with.
type Standing struct {
	Entry model.ScoreEntry
	Name  string
}

// Ledger is safe for concurrent use. Record and Leaderboard are atomic with
// respect to each other.
type Ledger struct {
	mu      sync.RWMutex
	entries []model.ScoreEntry

	dir         Directory
	size        int
	placeholder string
	now         func() time.Time
	newID       func() string
}

// New creates an empty ledger joined against dir. A nil dir shows every
// entry with the placeholder name.
func New(dir Directory, opts ...Option) *Ledger {
	l := &Ledger{
		dir:         dir,
		size:        DefaultSize,
		placeholder: DefaultPlaceholder,
		now:         time.Now,
		newID:       uuid.NewString,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Record appends a score for playerID in game, stamped with the current time.
func (l *Ledger) Record(ctx context.Context, playerID, game string, score int64) (model.ScoreEntry, error) {
	playerID = strings.TrimSpace(playerID)
	game = strings.TrimSpace(game)

	switch {
	case playerID == "":
		return model.ScoreEntry{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	case game == "":
		return model.ScoreEntry{}, fmt.Errorf("%w: game is required", ErrInvalidInput)
	case score < 0:
		return model.ScoreEntry{}, fmt.Errorf("%w: score must be non-negative, got %d", ErrInvalidInput, score)
	case score > MaxScore:
		return model.ScoreEntry{}, fmt.Errorf("%w: score %d exceeds %d", ErrInvalidInput, score, int64(MaxScore))
	}

	e := model.ScoreEntry{
		ID:       l.newID(),
		PlayerID: playerID,
		Game:     game,
		Score:    score,
	}

	l.mu.Lock()
	e.RecordedAt = l.now()
	l.entries = append(l.entries, e)
	l.mu.Unlock()

	return e, nil
}

// Leaderboard returns the top entries by score, highest first. Ties keep
// insertion order. A non-empty game restricts the result to that game.
func (l *Ledger) Leaderboard(ctx context.Context, game string) []Standing {
	game = strings.TrimSpace(game)

	l.mu.RLock()
	selected := make([]model.ScoreEntry, 0, len(l.entries))
	for _, e := range l.entries {
		if game == "" || e.Game == game {
			selected = append(selected, e)
		}
	}
	l.mu.RUnlock()

	sort.SliceStable(selected, func(i, j int) bool {
		return selected[i].Score > selected[j].Score
	})
	if len(selected) > l.size {
		selected = selected[:l.size]
	}

	out := make([]Standing, len(selected))
	for i, e := range selected {
		out[i] = Standing{Entry: e, Name: l.nameOf(ctx, e.PlayerID)}
	}
	return out
}

// Len returns the number of recorded entries.
func (l *Ledger) Len(_ context.Context) int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

func (l *Ledger) nameOf(ctx context.Context, playerID string) string {
	if l.dir == nil {
		return l.placeholder
	}
	if name, ok := l.dir.Name(ctx, playerID); ok {
		return name
	}
	return l.placeholder
}

// ValidateScore converts a wire number into a ledger score. It must be a
// finite, non-negative integer no larger than MaxScore.
func ValidateScore(v float64) (int64, error) {
	switch {
	case math.IsNaN(v) || math.IsInf(v, 0):
		return 0, fmt.Errorf("%w: score must be a finite number", ErrInvalidInput)
	case v < 0:
		return 0, fmt.Errorf("%w: score must be non-negative", ErrInvalidInput)
	case v != math.Trunc(v):
		return 0, fmt.Errorf("%w: score must be an integer", ErrInvalidInput)
	case v > MaxScore:
		return 0, fmt.Errorf("%w: score is too large", ErrInvalidInput)
	}
	return int64(v), nil
}
