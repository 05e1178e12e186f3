package book

import (
	"context"
)

//go:generate mockgen -source=ports.go -destination=mock_ports.go -package=book

// Store defines the contract for book persistence. It is the source of
// truth; infrastructure failures are reported joined with ErrStore.
type Store interface {
	// List returns the books matching f in store order.
	List(ctx context.Context, f Filter) ([]Book, error)
	// Create persists b under the identifier the caller assigned.
	Create(ctx context.Context, b Book) (string, error)
	// GetByID returns ErrNotFound when nothing matches.
	GetByID(ctx context.Context, id string) (Book, error)
	// Update applies the present fields of p and stamps updatedAt. It
	// reports false when no record has the identifier.
	Update(ctx context.Context, id string, p Patch, updatedAt int64) (bool, error)
	// Delete reports false when no record has the identifier.
	Delete(ctx context.Context, id string) (bool, error)
}

// SnapshotCache holds full book listings under well-known keys. A Get
// returning cache.ErrMiss means the listing is unknown, not empty.
type SnapshotCache interface {
	Get(ctx context.Context, key string) ([]Book, error)
	Set(ctx context.Context, key string, books []Book) error
}
