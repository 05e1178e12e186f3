package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

const cleanupInterval = 10 * time.Minute

var _ Store = (*Memory)(nil)

// Memory is an in-process Store shared by all requests of one replica.
type Memory struct {
	cache *gocache.Cache
	ttl   time.Duration
}

// NewMemory returns a Memory store; ttl of NoExpiration keeps entries until
// overwritten.
func NewMemory(ttl time.Duration) *Memory {
	expiration := ttl
	if expiration <= 0 {
		expiration = gocache.NoExpiration
	}
	return &Memory{
		cache: gocache.New(expiration, cleanupInterval),
		ttl:   expiration,
	}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	value, found := m.cache.Get(key)
	if !found {
		return nil, ErrMiss
	}
	b := value.([]byte)
	out := make([]byte, len(b))
	copy(out, b)
	return out, nil
}

func (m *Memory) Set(_ context.Context, key string, value []byte) error {
	b := make([]byte, len(value))
	copy(b, value)
	m.cache.Set(key, b, m.ttl)
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.cache.Delete(key)
	return nil
}

func (m *Memory) Close() error {
	m.cache.Flush()
	return nil
}
