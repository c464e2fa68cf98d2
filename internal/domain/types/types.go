// Package types contains wire shapes shared by the service and HTTP layers.
package types

import "time"

// DateLayout renders timestamps the way browsers' Date.toISOString does.
const DateLayout = "2006-01-02T15:04:05.000Z"

// Row is one leaderboard line: a score entry joined to its player's name.
type Row struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Score int64  `json:"score"`
	Game  string `json:"game"`
	Date  string `json:"date"`
}

// FormatDate renders t in UTC using DateLayout.
func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// User is the public view of a registered player.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

// Game is one entry of the arcade game catalog.
type Game struct {
	Name string `json:"name"`
}

// Submission is a score report from a game station.
type Submission struct {
	PlayerID string
	Game     string
	Score    float64

	// SubmissionID is an optional client key; resubmitting it is a no-op.
	SubmissionID string
}

// SubmitResult describes the outcome of an accepted submission.
type SubmitResult struct {
	ID        string
	Duplicate bool
}
