package repository

import "errors"

// Sentinel kinds for registry errors.
var (
	ErrNotFound           = errors.New("player not found")
	ErrInvalidInput       = errors.New("invalid player input")
	ErrInvalidCredentials = errors.New("invalid email or player id")
	ErrIDSpaceExhausted   = errors.New("player id space exhausted")
)
