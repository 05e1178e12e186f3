package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"

	"bookcatalog/db/migrations"
	"bookcatalog/internal/config"
	"bookcatalog/internal/platform/logger"
	"bookcatalog/internal/platform/postgres"
)

var errNameRequired = errors.New("name is required for 'create' command")

func main() {
	var (
		command = flag.String("command", "up", "Migration command: up, down, status, create")
		name    = flag.String("name", "", "Name for 'create' command")
	)
	flag.Parse()

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

	if err := run(context.Background(), cfg, log, *command, *name); err != nil {
		log.Fatal("migration failed", zap.String("command", *command), zap.Error(err))
	}
}

func run(ctx context.Context, cfg config.Config, log *zap.Logger, command, name string) error {
	switch command {
	case "create":
		return create(log, migrationsDir(), name)
	case "up", "down", "status":
	default:
		return fmt.Errorf("unknown command %q, use: up, down, status, create", command)
	}

	pool, err := postgres.Open(ctx, cfg.Database.DSN, cfg.Database.Timeout)
	if err != nil {
		return err
	}
	defer pool.Close()

	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	provider, err := postgres.NewMigrationProvider(db, migrations.FS)
	if err != nil {
		return err
	}

	switch command {
	case "up":
		results, err := provider.Up(ctx)
		if err != nil {
			return err
		}
		log.Info("migrations applied", zap.Int("count", len(results)))
	case "down":
		result, err := provider.Down(ctx)
		if err != nil {
			return err
		}
		log.Info("migration rolled back", zap.Int64("version", result.Source.Version))
	case "status":
		statuses, err := provider.Status(ctx)
		if err != nil {
			return err
		}
		for _, s := range statuses {
			log.Info("migration",
				zap.Int64("version", s.Source.Version),
				zap.String("file", s.Source.Path),
				zap.String("state", string(s.State)),
			)
		}
	}
	return nil
}

func create(log *zap.Logger, dir, name string) error {
	if name == "" {
		return errNameRequired
	}
	if err := goose.Create(nil, dir, name, "sql"); err != nil {
		return fmt.Errorf("create migration: %w", err)
	}
	log.Info("migration created", zap.String("name", name), zap.String("dir", dir))
	return nil
}
