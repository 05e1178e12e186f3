package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const pgUniqueViolation = "23505"

type PostgresRepo struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

func NewPostgresRepo(db *pgxpool.Pool, timeout time.Duration) *PostgresRepo {
	return &PostgresRepo{db: db, timeout: timeout}
}

func (r *PostgresRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

func (r *PostgresRepo) Create(ctx context.Context, u User) error {
	const query = `INSERT INTO users (username, password) VALUES ($1, $2)`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	if _, err := r.db.Exec(timeoutCtx, query, u.Username, u.Password); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return ErrAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *PostgresRepo) GetByUsername(ctx context.Context, username string) (User, error) {
	const query = `
	SELECT username, password
	FROM users
	WHERE username = $1
	LIMIT 1
	`
	var u User
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	if err := r.db.QueryRow(timeoutCtx, query, username).Scan(&u.Username, &u.Password); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, fmt.Errorf("select user: %w", err)
	}
	return u, nil
}
