package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"bookcatalog/internal/auth"
	"bookcatalog/internal/book"
	"bookcatalog/internal/cache"
	"bookcatalog/internal/catalog"
	"bookcatalog/internal/config"
	"bookcatalog/internal/httpx"
	"bookcatalog/internal/platform/logger"
	"bookcatalog/internal/platform/postgres"
	"bookcatalog/internal/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{Level: cfg.Log.Level, Dev: cfg.Log.Dev})
	if err != nil {
		fmt.Fprintf(os.Stderr, "build logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server stopped", zap.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, log *zap.Logger) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	pool, err := postgres.Open(ctx, cfg.Database.DSN, cfg.Database.Timeout)
	if err != nil {
		return err
	}
	defer pool.Close()
	log.Info("database connection OK", zap.String("dsn", postgres.RedactDSN(cfg.Database.DSN)))

	store, err := buildCache(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Warn("close cache", zap.Error(err))
		}
	}()
	log.Info("book cache ready", zap.String("backend", cfg.Cache.Backend))

	gate, err := auth.NewGate(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if err != nil {
		return err
	}

	books := book.NewRepository(
		book.NewPostgresRepo(pool, cfg.Database.Timeout),
		book.NewSnapshotCache(store),
		log,
	)
	accounts := user.NewService(user.NewPostgresRepo(pool, cfg.Database.Timeout), log)
	handler := catalog.NewHTTPHandler(catalog.NewService(books, accounts, gate, log))

	limiter := httpx.NewRateLimitMiddleware(cfg.HTTP.RateLimitRPS, cfg.HTTP.RateLimitBurst)
	defer limiter.Close()

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      newRouter(cfg, log, handler, limiter, pool),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("addr", cfg.Server.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn("http shutdown", zap.Error(err))
	}
	log.Info("bye")
	return nil
}

func buildCache(ctx context.Context, cfg config.Config) (cache.Store, error) {
	switch cfg.Cache.Backend {
	case config.CacheMemory:
		return cache.NewMemory(cfg.Cache.TTL), nil
	case config.CacheRedis:
		return cache.NewRedis(ctx, cache.RedisOptions{
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
			TTL:      cfg.Cache.TTL,
		})
	case config.CacheNone:
		return cache.Noop{}, nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Cache.Backend)
	}
}

func newRouter(cfg config.Config, log *zap.Logger, handler *catalog.HTTPHandler, limiter *httpx.RateLimitMiddleware, ready ...httpx.Pinger) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", httpx.HealthHandler)
	mux.HandleFunc("GET /readyz", httpx.ReadyHandler(500*time.Millisecond, ready...))
	handler.Routes(mux)

	return httpx.Chain(mux,
		httpx.RequestIDMiddleware,
		httpx.AccessLogMiddleware(log),
		httpx.RecoveryMiddleware(log),
		httpx.SecurityHeadersMiddleware(cfg.HTTP.EnableHSTS),
		httpx.CORSMiddleware(cfg.HTTP.AllowedOrigins),
		limiter.Middleware,
		httpx.RequestSizeLimitMiddleware(cfg.HTTP.MaxBodyBytes),
	)
}
