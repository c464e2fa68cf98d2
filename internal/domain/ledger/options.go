package ledger

import "time"

// Option applies a configuration option to the Ledger.
type Option func(*Ledger)

// WithSize sets how many rows a leaderboard query returns.
func WithSize(n int) Option {
	return func(l *Ledger) {
		if n > 0 {
			l.size = n
		}
	}
}

// WithPlaceholder sets the name shown for entries whose player is unknown.
func WithPlaceholder(name string) Option {
	return func(l *Ledger) {
		if name != "" {
			l.placeholder = name
		}
	}
}

// WithClock overrides the timestamp source for new entries.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) {
		if now != nil {
			l.now = now
		}
	}
}

// WithIDGenerator overrides how entry ids are generated.
func WithIDGenerator(gen func() string) Option {
	return func(l *Ledger) {
		if gen != nil {
			l.newID = gen
		}
	}
}
