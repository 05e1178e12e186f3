// Package cache provides the byte-level key/value backends behind the book
// listing cache. Values are opaque; callers own the encoding.
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrMiss is returned by Get when the key holds no value. A miss means
// "unknown", never "empty".
var ErrMiss = errors.New("cache miss")

// Store is a minimal key/value cache. It may be backed by
// an in-process map, Redis, or nothing at all.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// NoExpiration keeps entries until they are overwritten or deleted.
const NoExpiration time.Duration = 0
