package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var _ Store = (*Redis)(nil)

// Redis is a Store shared across replicas through a Redis server.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// NewRedis connects to the server described by opts and pings it once.
func NewRedis(ctx context.Context, opts RedisOptions) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", opts.Addr, err)
	}
	return NewRedisFromClient(client, opts.TTL), nil
}

// NewRedisFromClient wraps an existing client. The Store takes ownership
// and closes it on Close.
func NewRedisFromClient(client *redis.Client, ttl time.Duration) *Redis {
	if ttl < 0 {
		ttl = NoExpiration
	}
	return &Redis{client: client, ttl: ttl}
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrMiss
		}
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}
	return b, nil
}

func (r *Redis) Set(ctx context.Context, key string, value []byte) error {
	if err := r.client.Set(ctx, key, value, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (r *Redis) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}

func (r *Redis) Close() error {
	return r.client.Close()
}
