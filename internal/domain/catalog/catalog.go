// Package catalog holds the list of arcade games shown to clients and,
// in strict mode, enforced on score submission.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/okian/arcade/internal/domain/model"
)

// ErrUnknownGame is returned by Check in strict mode for unlisted games.
var ErrUnknownGame = errors.New("unknown game")

// DefaultGames are the stations of the arcade floor.
var DefaultGames = []string{
	"AI Mind Reader",
	"Gesture-Controlled Racing",
	"Cybersecurity Escape Room",
	"AI vs Human Drawing",
	"Code Roulette",
	"VR Maze Challenge",
	"AR Treasure Hunt",
}

// Option applies a configuration option to the Catalog.
type Option func(*Catalog)

// WithGames replaces the game list. Blank and duplicate names are dropped.
func WithGames(names []string) Option {
	return func(c *Catalog) {
		c.games = normalize(names)
	}
}

// WithStrict makes Check reject games that are not listed.
func WithStrict(strict bool) Option {
	return func(c *Catalog) {
		c.strict = strict
	}
}

// Catalog is immutable after construction and safe for concurrent use.
type Catalog struct {
	games  []string
	index  map[string]struct{}
	strict bool
}

// New creates a catalog of DefaultGames unless WithGames is given.
func New(opts ...Option) *Catalog {
	c := &Catalog{games: normalize(DefaultGames)}
	for _, opt := range opts {
		opt(c)
	}

	c.index = make(map[string]struct{}, len(c.games))
	for _, g := range c.games {
		c.index[g] = struct{}{}
	}
	return c
}

// Games returns the listed games in configured order.
func (c *Catalog) Games(_ context.Context) []model.Game {
	out := make([]model.Game, len(c.games))
	for i, g := range c.games {
		out[i] = model.Game{Name: g}
	}
	return out
}

// Known reports whether name is listed.
func (c *Catalog) Known(name string) bool {
	_, ok := c.index[strings.TrimSpace(name)]
	return ok
}

// Strict reports whether unlisted games are rejected.
func (c *Catalog) Strict() bool { return c.strict }

// Check validates a submitted game name. Outside strict mode every
// non-empty name passes.
func (c *Catalog) Check(name string) error {
	if !c.strict || c.Known(name) {
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownGame, strings.TrimSpace(name))
}

func normalize(names []string) []string {
	out := make([]string, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}
