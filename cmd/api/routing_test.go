package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"bookcatalog/internal/auth"
	"bookcatalog/internal/book"
	"bookcatalog/internal/cache"
	"bookcatalog/internal/catalog"
	"bookcatalog/internal/config"
	"bookcatalog/internal/httpx"
	"bookcatalog/internal/testutil"
)

type pinger struct{ err error }

func (p pinger) Ping(context.Context) error { return p.err }

func testConfig() config.Config {
	var cfg config.Config
	cfg.HTTP.RateLimitRPS = 100
	cfg.HTTP.RateLimitBurst = 100
	cfg.HTTP.MaxBodyBytes = 1 << 20
	cfg.HTTP.AllowedOrigins = []string{"http://localhost:3000"}
	return cfg
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	gate, err := auth.NewGate(testutil.TestSecret, time.Hour)
	require.NoError(t, err)

	ctrl := gomock.NewController(t)
	store := book.NewMockStore(ctrl)
	store.EXPECT().List(gomock.Any(), book.Filter{}).Return([]book.Book{}, nil).AnyTimes()

	books := book.NewRepository(store, book.NewSnapshotCache(cache.Noop{}), nil)
	handler := catalog.NewHTTPHandler(catalog.NewService(books, nil, gate, nil))

	limiter := httpx.NewRateLimitMiddleware(100, 100)
	t.Cleanup(limiter.Close)
	return newRouter(testConfig(), zap.NewNop(), handler, limiter, pinger{})
}

func TestRouter(t *testing.T) {
	h := newTestRouter(t)

	tests := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodGet, "/healthz", http.StatusOK},
		{http.MethodGet, "/readyz", http.StatusOK},
		{http.MethodGet, "/books", http.StatusOK},
		{http.MethodPost, "/books", http.StatusBadRequest},
		{http.MethodDelete, "/books/abc", http.StatusUnauthorized},
		{http.MethodGet, "/me/books", http.StatusUnauthorized},
		{http.MethodPatch, "/books/abc", http.StatusMethodNotAllowed},
		{http.MethodGet, "/nope", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			h.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))
			assert.Equal(t, tt.want, w.Code)
			assert.NotEmpty(t, w.Header().Get("X-Request-Id"))
			assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
		})
	}
}

func TestRouter_NotReady(t *testing.T) {
	gate, err := auth.NewGate(testutil.TestSecret, time.Hour)
	require.NoError(t, err)
	handler := catalog.NewHTTPHandler(catalog.NewService(nil, nil, gate, nil))
	limiter := httpx.NewRateLimitMiddleware(100, 100)
	t.Cleanup(limiter.Close)

	h := newRouter(testConfig(), zap.NewNop(), handler, limiter, pinger{err: context.DeadlineExceeded})
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestBuildCache(t *testing.T) {
	ctx := context.Background()

	t.Run("memory", func(t *testing.T) {
		cfg := testConfig()
		cfg.Cache.Backend = config.CacheMemory
		store, err := buildCache(ctx, cfg)
		require.NoError(t, err)
		assert.IsType(t, &cache.Memory{}, store)
	})

	t.Run("none", func(t *testing.T) {
		cfg := testConfig()
		cfg.Cache.Backend = config.CacheNone
		store, err := buildCache(ctx, cfg)
		require.NoError(t, err)
		assert.IsType(t, cache.Noop{}, store)
	})

	t.Run("redis", func(t *testing.T) {
		mr := miniredis.RunT(t)
		cfg := testConfig()
		cfg.Cache.Backend = config.CacheRedis
		cfg.Cache.Redis.Addr = mr.Addr()
		store, err := buildCache(ctx, cfg)
		require.NoError(t, err)
		t.Cleanup(func() { _ = store.Close() })
		assert.IsType(t, &cache.Redis{}, store)
	})

	t.Run("unknown", func(t *testing.T) {
		cfg := testConfig()
		cfg.Cache.Backend = "memcached"
		_, err := buildCache(ctx, cfg)
		assert.Error(t, err)
	})
}

func TestRun_RejectsInvalidConfig(t *testing.T) {
	err := run(context.Background(), testConfig(), zap.NewNop())
	assert.ErrorIs(t, err, config.ErrMissingJWTSecret)
}
