// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - New() builds a Config with defaults; Load layers file and env on top.
// - Validation errors wrap ErrInvalidConfig, provider errors wrap ErrLoadConfig.
package config

import (
	"fmt"
	"strings"

	"github.com/okian/arcade/internal/domain/catalog"
)

// DefaultGames is the arcade game catalog used when none is configured.
var DefaultGames = catalog.DefaultGames

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the slog handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// LeaderboardSize caps the number of rows returned by GET /leaderboard.
	LeaderboardSize int `koanf:"leaderboard_size"`

	// UnknownPlayerName labels rows whose player id is not registered.
	UnknownPlayerName string `koanf:"unknown_player_name"`

	// PlayerIDPrefix is prepended to the six digits of issued player ids.
	PlayerIDPrefix string `koanf:"player_id_prefix"`

	// DedupeSize bounds the submission-id cache. Zero or negative is unbounded.
	DedupeSize int `koanf:"dedupe_size"`

	// Games lists the arcade game catalog.
	Games []string `koanf:"games"`

	// StrictGames rejects scores for games outside the catalog.
	StrictGames bool `koanf:"strict_games"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:          "info",
		LogFormat:         "text",
		Addr:              ":9080",
		LeaderboardSize:   15,
		UnknownPlayerName: "Unknown Player",
		PlayerIDPrefix:    "P",
		DedupeSize:        10_000,
		Games:             append([]string(nil), DefaultGames...),
		StrictGames:       false,
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Addr) == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.LeaderboardSize < 1:
		return fmt.Errorf("%w: leaderboard_size must be positive, got %d", ErrInvalidConfig, c.LeaderboardSize)
	case strings.TrimSpace(c.UnknownPlayerName) == "":
		return fmt.Errorf("%w: unknown_player_name must not be empty", ErrInvalidConfig)
	case c.StrictGames && len(c.Games) == 0:
		return fmt.Errorf("%w: strict_games requires a non-empty games list", ErrInvalidConfig)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log_format must be text or json, got %q", ErrInvalidConfig, c.LogFormat)
	}
	return nil
}
