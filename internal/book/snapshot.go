package book

import (
	"context"
	"fmt"

	"bookcatalog/internal/cache"
)

// ListingKey is the cache key holding the snapshot of every book.
const ListingKey = "books:all"

type snapshotCache struct {
	store cache.Store
}

// NewSnapshotCache stores book listings as JSON documents in store.
func NewSnapshotCache(store cache.Store) SnapshotCache {
	if store == nil {
		store = cache.Noop{}
	}
	return &snapshotCache{store: store}
}

func (c *snapshotCache) Get(ctx context.Context, key string) ([]Book, error) {
	raw, err := c.store.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	books := make([]Book, 0)
	if err := json.Unmarshal(raw, &books); err != nil {
		return nil, fmt.Errorf("decode snapshot %q: %w", key, err)
	}
	if books == nil {
		books = make([]Book, 0)
	}
	return books, nil
}

func (c *snapshotCache) Set(ctx context.Context, key string, books []Book) error {
	if books == nil {
		books = make([]Book, 0)
	}
	raw, err := json.Marshal(books)
	if err != nil {
		return fmt.Errorf("encode snapshot %q: %w", key, err)
	}
	return c.store.Set(ctx, key, raw)
}
