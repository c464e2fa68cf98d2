package model

import "time"

// ScoreEntry is one game-completion event recorded in the ledger.
type ScoreEntry struct {
	ID         string    // uuid assigned on append
	PlayerID   string    // reference to Player.ID; may be unknown at read time
	Game       string    // game label, e.g. "Code Roulette"
	Score      int64     // non-negative
	RecordedAt time.Time // append time
}

// Game is a catalog entry.
type Game struct {
	Name string
}
