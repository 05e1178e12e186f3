package book

import (
	"context"
	"errors"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	jsoniter "github.com/json-iterator/go"
)

const (
	dialectPostgres   = "postgres"
	tableBooks        = "books"
	colID             = "id"
	colTitle          = "title"
	colAuthors        = "authors"
	colPublisher      = "publisher"
	colDescription    = "description"
	colOwner          = "owner"
	colCreatedAt      = "created_at"
	colLastUpdatedAt  = "last_updated_at"
	castJsonb         = "?::jsonb"
	pgUniqueViolation = "23505"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var bookColumns = []any{
	colID, colTitle, colAuthors, colPublisher, colDescription, colOwner, colCreatedAt, colLastUpdatedAt,
}

// PostgresRepo is the Store backed by the books table.
type PostgresRepo struct {
	db      *pgxpool.Pool
	timeout time.Duration
	dialect goqu.DialectWrapper
}

func NewPostgresRepo(db *pgxpool.Pool, timeout time.Duration) *PostgresRepo {
	return &PostgresRepo{db: db, timeout: timeout, dialect: goqu.Dialect(dialectPostgres)}
}

func (r *PostgresRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

func (r *PostgresRepo) List(ctx context.Context, f Filter) ([]Book, error) {
	query, args, err := r.buildListQuery(f)
	if err != nil {
		return nil, errors.Join(ErrStore, err)
	}

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.db.Query(timeoutCtx, query, args...)
	if err != nil {
		return nil, errors.Join(ErrStore, err)
	}
	defer rows.Close()

	books := make([]Book, 0)
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, errors.Join(ErrStore, err)
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Join(ErrStore, err)
	}
	return books, nil
}

func (r *PostgresRepo) Create(ctx context.Context, b Book) (string, error) {
	query, args, err := r.buildInsertQuery(b)
	if err != nil {
		return "", errors.Join(ErrStore, err)
	}

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	if _, err := r.db.Exec(timeoutCtx, query, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return "", errors.Join(ErrStore, ErrDuplicateID, err)
		}
		return "", errors.Join(ErrStore, err)
	}
	return b.ID, nil
}

func (r *PostgresRepo) GetByID(ctx context.Context, id string) (Book, error) {
	query, args, err := r.buildListQuery(Filter{ID: id})
	if err != nil {
		return Book{}, errors.Join(ErrStore, err)
	}

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	b, err := scanBook(r.db.QueryRow(timeoutCtx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Book{}, ErrNotFound
		}
		return Book{}, errors.Join(ErrStore, err)
	}
	return b, nil
}

func (r *PostgresRepo) Update(ctx context.Context, id string, p Patch, updatedAt int64) (bool, error) {
	query, args, err := r.buildUpdateQuery(id, p, updatedAt)
	if err != nil {
		return false, errors.Join(ErrStore, err)
	}

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	tag, err := r.db.Exec(timeoutCtx, query, args...)
	if err != nil {
		return false, errors.Join(ErrStore, err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *PostgresRepo) Delete(ctx context.Context, id string) (bool, error) {
	query, args, err := r.dialect.Delete(tableBooks).
		Prepared(true).
		Where(goqu.C(colID).Eq(id)).
		ToSQL()
	if err != nil {
		return false, errors.Join(ErrStore, err)
	}

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	tag, err := r.db.Exec(timeoutCtx, query, args...)
	if err != nil {
		return false, errors.Join(ErrStore, err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *PostgresRepo) buildListQuery(f Filter) (string, []any, error) {
	ds := r.dialect.From(tableBooks).
		Prepared(true).
		Select(bookColumns...).
		Order(goqu.I(colCreatedAt).Asc(), goqu.I(colID).Asc())

	where := goqu.Ex{}
	if f.ID != "" {
		where[colID] = f.ID
	}
	if f.Owner != "" {
		where[colOwner] = f.Owner
	}
	if len(where) > 0 {
		ds = ds.Where(where)
	}
	return ds.ToSQL()
}

func (r *PostgresRepo) buildInsertQuery(b Book) (string, []any, error) {
	authors, err := encodeAuthors(b.Authors)
	if err != nil {
		return "", nil, err
	}
	return r.dialect.Insert(tableBooks).
		Prepared(true).
		Rows(goqu.Record{
			colID:            b.ID,
			colTitle:         b.Title,
			colAuthors:       goqu.L(castJsonb, authors),
			colPublisher:     b.Publisher,
			colDescription:   nullable(b.Description),
			colOwner:         nullable(b.Owner),
			colCreatedAt:     b.CreatedAt,
			colLastUpdatedAt: b.LastUpdatedAt,
		}).
		ToSQL()
}

func (r *PostgresRepo) buildUpdateQuery(id string, p Patch, updatedAt int64) (string, []any, error) {
	set := goqu.Record{colLastUpdatedAt: updatedAt}
	if p.Title != nil {
		set[colTitle] = *p.Title
	}
	if p.Authors != nil {
		authors, err := encodeAuthors(*p.Authors)
		if err != nil {
			return "", nil, err
		}
		set[colAuthors] = goqu.L(castJsonb, authors)
	}
	if p.Publisher != nil {
		set[colPublisher] = *p.Publisher
	}
	if p.Description != nil {
		set[colDescription] = *p.Description
	}
	return r.dialect.Update(tableBooks).
		Prepared(true).
		Set(set).
		Where(goqu.C(colID).Eq(id)).
		ToSQL()
}

func encodeAuthors(authors []string) (string, error) {
	if authors == nil {
		authors = []string{}
	}
	raw, err := json.Marshal(authors)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func nullable(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func scanBook(row pgx.Row) (Book, error) {
	var (
		b       Book
		authors []byte
	)
	if err := row.Scan(
		&b.ID,
		&b.Title,
		&authors,
		&b.Publisher,
		&b.Description,
		&b.Owner,
		&b.CreatedAt,
		&b.LastUpdatedAt,
	); err != nil {
		return Book{}, err
	}
	if err := json.Unmarshal(authors, &b.Authors); err != nil {
		return Book{}, err
	}
	if b.Authors == nil {
		b.Authors = []string{}
	}
	return b, nil
}
