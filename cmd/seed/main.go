package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math/rand"
	"os"

	"go.uber.org/zap"

	"bookcatalog/db/migrations"
	"bookcatalog/internal/apperr"
	"bookcatalog/internal/book"
	"bookcatalog/internal/cache"
	"bookcatalog/internal/config"
	"bookcatalog/internal/platform/logger"
	"bookcatalog/internal/platform/postgres"
	"bookcatalog/internal/user"
)

type accounts interface {
	Register(ctx context.Context, username, password string) (user.User, error)
}

type books interface {
	Create(ctx context.Context, in book.Input, owner string) (book.Book, error)
}

var (
	titleWords = []string{"Silent", "River", "Empire", "Garden", "Machine", "Winter", "Atlas", "Harbor", "Signal", "Orchard"}
	authors    = []string{"Ada Park", "Bruno Lima", "Chen Wei", "Dana Okafor", "Elif Kaya", "Farid Haddad", "Greta Lund"}
	publishers = []string{"Penguin", "HarperCollins", "Oxford", "Cambridge", "MIT Press", "Springer", "Wiley"}
)

func main() {
	var (
		username = flag.String("user", "demo", "Owner of the seeded books")
		password = flag.String("password", "demo-password", "Password for the seeded user")
		count    = flag.Int("count", 50, "Number of books to create")
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

	ctx := context.Background()
	pool, err := postgres.Open(ctx, cfg.Database.DSN, cfg.Database.Timeout)
	if err != nil {
		log.Fatal("connect database", zap.Error(err))
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool, migrations.FS); err != nil {
		log.Fatal("migrate", zap.Error(err))
	}

	// Writing through the repository keeps a shared redis listing in sync.
	var snapshots cache.Store = cache.Noop{}
	if cfg.Cache.Backend == config.CacheRedis {
		r, err := cache.NewRedis(ctx, cache.RedisOptions{
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
			TTL:      cfg.Cache.TTL,
		})
		if err != nil {
			log.Fatal("connect cache", zap.Error(err))
		}
		defer r.Close()
		snapshots = r
	}

	repo := book.NewRepository(book.NewPostgresRepo(pool, cfg.Database.Timeout), book.NewSnapshotCache(snapshots), log)
	svc := user.NewService(user.NewPostgresRepo(pool, cfg.Database.Timeout), log)

	created, err := seed(ctx, svc, repo, rand.New(rand.NewSource(1)), *username, *password, *count)
	if err != nil {
		log.Fatal("seed", zap.Error(err))
	}
	log.Info("seed complete", zap.String("owner", *username), zap.Int("books", created))
}

// seed registers owner (an existing account is reused) and creates count
// books owned by it. It returns the number of books created.
func seed(ctx context.Context, acc accounts, repo books, rnd *rand.Rand, owner, password string, count int) (int, error) {
	if _, err := acc.Register(ctx, owner, password); err != nil && !errors.Is(err, apperr.ErrBadRequest) {
		return 0, fmt.Errorf("register %s: %w", owner, err)
	}

	for i := 0; i < count; i++ {
		if _, err := repo.Create(ctx, randomInput(rnd, i), owner); err != nil {
			return i, fmt.Errorf("create book %d: %w", i+1, err)
		}
	}
	return count, nil
}

func randomInput(rnd *rand.Rand, i int) book.Input {
	title := fmt.Sprintf("%s %s %d", pick(rnd, titleWords), pick(rnd, titleWords), i+1)
	in := book.Input{
		Title:     title,
		Authors:   []string{pick(rnd, authors)},
		Publisher: pick(rnd, publishers),
	}
	if rnd.Intn(3) == 0 {
		in.Authors = append(in.Authors, pick(rnd, authors))
	}
	if rnd.Intn(2) == 0 {
		desc := fmt.Sprintf("A book about the %s.", pick(rnd, titleWords))
		in.Description = &desc
	}
	return in
}

func pick(rnd *rand.Rand, words []string) string {
	return words[rnd.Intn(len(words))]
}
