package catalog

import (
	"context"

	"bookcatalog/internal/book"
	"bookcatalog/internal/user"
)

//go:generate mockgen -source=ports.go -destination=mock_ports.go -package=catalog

// Books is the ownership-checked book repository.
type Books interface {
	ListAll(ctx context.Context) ([]book.Book, error)
	ListByOwner(ctx context.Context, owner string) ([]book.Book, error)
	Create(ctx context.Context, in book.Input, owner string) (book.Book, error)
	ReadOne(ctx context.Context, id string) (book.Book, error)
	Update(ctx context.Context, id string, p book.Patch, username string) (book.Book, error)
	Delete(ctx context.Context, id string, username string) error
}

// Accounts registers users and checks their credentials.
type Accounts interface {
	Register(ctx context.Context, username, password string) (user.User, error)
	Authenticate(ctx context.Context, username, password string) (user.User, error)
}

// Authenticator resolves bearer credentials and issues tokens.
type Authenticator interface {
	Authenticate(credential string) (string, error)
	Issue(username string) (string, error)
}
