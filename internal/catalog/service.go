// Package catalog runs one use case per operation of the book catalog,
// resolving the caller's identity before any ownership-bound change.
package catalog

import (
	"context"

	"go.uber.org/zap"

	"bookcatalog/internal/apperr"
	"bookcatalog/internal/book"
	"bookcatalog/internal/platform/logger"
)

// Listing is the payload of the list operations.
type Listing struct {
	Count int         `json:"n_books"`
	Books []book.Book `json:"books"`
}

func newListing(books []book.Book) Listing {
	return Listing{Count: len(books), Books: books}
}

type Service struct {
	books    Books
	accounts Accounts
	auth     Authenticator
	logger   *zap.Logger
}

func NewService(books Books, accounts Accounts, auth Authenticator, log *zap.Logger) *Service {
	return &Service{books: books, accounts: accounts, auth: auth, logger: logger.OrNop(log).Named("catalog")}
}

func (s *Service) ListBooks(ctx context.Context) (Listing, error) {
	books, err := s.books.ListAll(ctx)
	if err != nil {
		return Listing{}, err
	}
	return newListing(books), nil
}

// ListMyBooks lists the books owned by the caller.
func (s *Service) ListMyBooks(ctx context.Context, credential string) (Listing, error) {
	username, err := s.auth.Authenticate(credential)
	if err != nil {
		return Listing{}, err
	}
	books, err := s.books.ListByOwner(ctx, username)
	if err != nil {
		return Listing{}, err
	}
	return newListing(books), nil
}

func (s *Service) CreateBook(ctx context.Context, credential string, in book.Input) (book.Book, error) {
	username, err := s.auth.Authenticate(credential)
	if err != nil {
		return book.Book{}, err
	}
	b, err := s.books.Create(ctx, in, username)
	if err != nil {
		return book.Book{}, err
	}
	s.logger.Info("book created", zap.String("book_id", b.ID), zap.String("owner", username))
	return b, nil
}

func (s *Service) ReadBook(ctx context.Context, id string) (book.Book, error) {
	return s.books.ReadOne(ctx, id)
}

func (s *Service) UpdateBook(ctx context.Context, credential, id string, p book.Patch) (book.Book, error) {
	username, err := s.auth.Authenticate(credential)
	if err != nil {
		return book.Book{}, err
	}
	if err := p.Validate(); err != nil {
		return book.Book{}, apperr.BadRequest(err.Error())
	}
	return s.books.Update(ctx, id, p, username)
}

func (s *Service) DeleteBook(ctx context.Context, credential, id string) error {
	username, err := s.auth.Authenticate(credential)
	if err != nil {
		return err
	}
	if err := s.books.Delete(ctx, id, username); err != nil {
		return err
	}
	s.logger.Info("book deleted", zap.String("book_id", id), zap.String("owner", username))
	return nil
}

func (s *Service) Register(ctx context.Context, username, password string) error {
	_, err := s.accounts.Register(ctx, username, password)
	return err
}

// Login checks the credentials and returns a token naming the user.
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	u, err := s.accounts.Authenticate(ctx, username, password)
	if err != nil {
		return "", err
	}
	token, err := s.auth.Issue(u.Username)
	if err != nil {
		s.logger.Error("issue token", zap.String("username", u.Username), zap.Error(err))
		return "", apperr.Internal("Fail to login")
	}
	return token, nil
}
