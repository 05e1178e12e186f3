package user

import (
	"context"
)

//go:generate mockgen -source=ports.go -destination=mock_ports.go -package=user

// Store persists accounts keyed by username.
type Store interface {
	// Create returns ErrAlreadyExists when the username is taken.
	Create(ctx context.Context, u User) error
	// GetByUsername returns ErrNotFound when no account matches.
	GetByUsername(ctx context.Context, username string) (User, error)
}
