package repository

import "time"

// Option applies a configuration option to the MemoryStore.
type Option func(*MemoryStore)

// WithIDPrefix sets the prefix of issued ids, "P" by default.
func WithIDPrefix(prefix string) Option {
	return func(s *MemoryStore) {
		s.prefix = prefix
	}
}

// WithRandom replaces the source of id digits. intn must return a value in [0, n).
func WithRandom(intn func(n int) int) Option {
	return func(s *MemoryStore) {
		if intn != nil {
			s.intn = intn
		}
	}
}

// WithClock sets the registration clock.
func WithClock(now func() time.Time) Option {
	return func(s *MemoryStore) {
		if now != nil {
			s.now = now
		}
	}
}

// WithMaxAttempts bounds how many random ids are tried before giving up.
func WithMaxAttempts(n int) Option {
	return func(s *MemoryStore) {
		if n > 0 {
			s.maxAttempts = n
		}
	}
}
