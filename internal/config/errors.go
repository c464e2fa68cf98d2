package config

import "errors"

var (
	// ErrInvalidConfig wraps every Validate failure, such as an empty listen
	// address, a non-positive leaderboard size or strict games with no catalog.
	ErrInvalidConfig = errors.New("invalid arcade config")

	// ErrLoadConfig wraps failures reading the YAML file or environment.
	ErrLoadConfig = errors.New("load arcade config")
)
