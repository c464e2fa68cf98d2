// Package model contains domain models passed between layers.
package model

import "time"

// Player is a registered arcade participant. Players are never mutated or
// deleted for the lifetime of the process.
type Player struct {
	ID           string    // opaque token issued at registration, e.g. "P123456"
	Name         string    // display name shown on the leaderboard
	Email        string    // contact address, also used to log in
	Phone        string    // optional
	RegisteredAt time.Time // registration time
}
