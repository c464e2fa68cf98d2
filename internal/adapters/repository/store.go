// Package repository defines the player registry interface and its
// in-memory implementation.
package repository

import (
	"context"

	"github.com/okian/arcade/internal/domain/model"
)

// Store provides read/write access to registered players.
type Store interface {
	// Register issues a fresh player id and stores the profile.
	// Returns ErrInvalidInput if name or email is blank.
	Register(ctx context.Context, name, email, phone string) (model.Player, error)

	// Get returns the player with id or ErrNotFound.
	Get(ctx context.Context, id string) (model.Player, error)

	// Name resolves a player id to its display name.
	Name(ctx context.Context, id string) (string, bool)

	// Authenticate checks an email and player id pair.
	// Returns ErrInvalidCredentials when they do not match a registration.
	Authenticate(ctx context.Context, email, id string) (model.Player, error)

	// Count returns the number of registered players.
	Count(ctx context.Context) int
}
