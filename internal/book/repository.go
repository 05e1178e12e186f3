package book

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"bookcatalog/internal/apperr"
	"bookcatalog/internal/cache"
	"bookcatalog/internal/platform/logger"
)

const (
	msgFailCreate = "Fail to create book"
	msgFailRead   = "Fail to read book"
	msgFailUpdate = "Fail to update book"
	msgFailDelete = "Fail to delete book"
	msgFailList   = "Fail to list books"
	msgNotFound   = "Book not found"
	msgNotOwner   = "You are not owner of book"
	msgNoOwner    = "You are unauthorized."
)

// Repository composes the Store and the listing cache and is the only
// place book ownership is enforced. Every error it returns carries an
// apperr kind.
type Repository struct {
	store  Store
	cache  SnapshotCache
	logger *zap.Logger
	now    func() time.Time
	newID  func() string
}

// Option customises a Repository.
type Option func(*Repository)

// WithClock replaces time.Now for timestamps.
func WithClock(now func() time.Time) Option {
	return func(r *Repository) { r.now = now }
}

// WithIDGenerator replaces the random identifier source.
func WithIDGenerator(gen func() string) Option {
	return func(r *Repository) { r.newID = gen }
}

func NewRepository(store Store, snapshots SnapshotCache, log *zap.Logger, opts ...Option) *Repository {
	if snapshots == nil {
		snapshots = NewSnapshotCache(cache.Noop{})
	}
	r := &Repository{
		store:  store,
		cache:  snapshots,
		logger: logger.OrNop(log).Named("book"),
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ListAll serves the full listing from the cache when it holds one and
// otherwise reads the store and repopulates the cache.
func (r *Repository) ListAll(ctx context.Context) ([]Book, error) {
	books, err := r.cache.Get(ctx, ListingKey)
	if err == nil {
		return books, nil
	}
	if !errors.Is(err, cache.ErrMiss) {
		r.cacheFailure("get", err)
	}

	books, err = r.store.List(ctx, Filter{})
	if err != nil {
		r.storeFailure("list", "", err)
		return nil, apperr.Internal(msgFailList)
	}
	if books == nil {
		books = make([]Book, 0)
	}
	if err := r.cache.Set(ctx, ListingKey, books); err != nil {
		r.cacheFailure("set", err)
	}
	return books, nil
}

// ListByOwner returns the books owned by owner straight from the store.
func (r *Repository) ListByOwner(ctx context.Context, owner string) ([]Book, error) {
	if owner == "" {
		return nil, apperr.Unauthorized(msgNoOwner)
	}
	books, err := r.store.List(ctx, Filter{Owner: owner})
	if err != nil {
		r.storeFailure("list_by_owner", "", err)
		return nil, apperr.Internal(msgFailList)
	}
	if books == nil {
		books = make([]Book, 0)
	}
	return books, nil
}

// Create stores a new book owned by owner under a fresh identifier.
func (r *Repository) Create(ctx context.Context, in Input, owner string) (Book, error) {
	if owner == "" {
		return Book{}, apperr.Unauthorized(msgNoOwner)
	}

	now := r.now().Unix()
	b := Book{
		ID:            r.newID(),
		Title:         in.Title,
		Authors:       append(make([]string, 0, len(in.Authors)), in.Authors...),
		Publisher:     in.Publisher,
		Owner:         &owner,
		CreatedAt:     now,
		LastUpdatedAt: now,
	}
	if in.Description != nil {
		d := *in.Description
		b.Description = &d
	}

	if _, err := r.store.Create(ctx, b); err != nil {
		r.storeFailure("create", b.ID, err)
		return Book{}, apperr.Internal(msgFailCreate)
	}

	r.syncSnapshot(ctx, func(books []Book) []Book {
		return append(books, b)
	})
	return b, nil
}

// ReadOne returns the book with the given identifier.
func (r *Repository) ReadOne(ctx context.Context, id string) (Book, error) {
	b, err := r.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Book{}, apperr.NotFound(msgNotFound)
		}
		r.storeFailure("read", id, err)
		return Book{}, apperr.Internal(msgFailRead)
	}
	return b, nil
}

// Update applies p to the book when username owns it and returns the
// resulting book. Existence is checked before ownership and nothing is
// written unless both pass.
func (r *Repository) Update(ctx context.Context, id string, p Patch, username string) (Book, error) {
	current, err := r.authorize(ctx, "update", id, username)
	if err != nil {
		return Book{}, err
	}

	updatedAt := r.now().Unix()
	ok, err := r.store.Update(ctx, id, p, updatedAt)
	if err != nil {
		r.storeFailure("update", id, err)
		return Book{}, apperr.Internal(msgFailUpdate)
	}
	if !ok {
		return Book{}, apperr.NotFound(msgNotFound)
	}

	updated := p.Apply(current)
	updated.LastUpdatedAt = updatedAt
	r.syncSnapshot(ctx, func(books []Book) []Book {
		return append(without(books, id), updated)
	})
	return updated, nil
}

// Delete removes the book when username owns it.
func (r *Repository) Delete(ctx context.Context, id string, username string) error {
	if _, err := r.authorize(ctx, "delete", id, username); err != nil {
		return err
	}

	ok, err := r.store.Delete(ctx, id)
	if err != nil {
		r.storeFailure("delete", id, err)
		return apperr.Internal(msgFailDelete)
	}
	if !ok {
		return apperr.NotFound(msgNotFound)
	}

	r.syncSnapshot(ctx, func(books []Book) []Book {
		return without(books, id)
	})
	return nil
}

func (r *Repository) authorize(ctx context.Context, op, id, username string) (Book, error) {
	current, err := r.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Book{}, apperr.NotFound(msgNotFound)
		}
		r.storeFailure(op, id, err)
		return Book{}, apperr.Internal(msgFailRead)
	}
	if !current.OwnedBy(username) {
		return Book{}, apperr.Forbidden(msgNotOwner)
	}
	return current, nil
}

// syncSnapshot rewrites the cached listing with fn when one is cached. An
// absent listing stays absent.
func (r *Repository) syncSnapshot(ctx context.Context, fn func([]Book) []Book) {
	books, err := r.cache.Get(ctx, ListingKey)
	if err != nil {
		if !errors.Is(err, cache.ErrMiss) {
			r.cacheFailure("get", err)
		}
		return
	}
	if err := r.cache.Set(ctx, ListingKey, fn(books)); err != nil {
		r.cacheFailure("set", err)
	}
}

func (r *Repository) storeFailure(op, id string, err error) {
	fields := []zap.Field{zap.String("op", op), zap.Error(err)}
	if id != "" {
		fields = append(fields, zap.String("book_id", id))
	}
	r.logger.Error("book store failure", fields...)
}

func (r *Repository) cacheFailure(op string, err error) {
	r.logger.Warn("book cache unavailable",
		zap.String("op", op),
		zap.String("key", ListingKey),
		zap.Error(err),
	)
}

func without(books []Book, id string) []Book {
	out := make([]Book, 0, len(books))
	for _, b := range books {
		if b.ID != id {
			out = append(out, b)
		}
	}
	return out
}
