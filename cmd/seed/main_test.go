package main

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookcatalog/internal/apperr"
	"bookcatalog/internal/book"
	"bookcatalog/internal/user"
)

type fakeAccounts struct{ err error }

func (f fakeAccounts) Register(_ context.Context, username, _ string) (user.User, error) {
	return user.User{Username: username}, f.err
}

type fakeBooks struct {
	created []book.Input
	owners  []string
	failAt  int
}

func (f *fakeBooks) Create(_ context.Context, in book.Input, owner string) (book.Book, error) {
	if f.failAt > 0 && len(f.created)+1 == f.failAt {
		return book.Book{}, apperr.Internal("Fail to create book")
	}
	f.created = append(f.created, in)
	f.owners = append(f.owners, owner)
	return book.Book{Title: in.Title}, nil
}

func TestSeed(t *testing.T) {
	repo := &fakeBooks{}
	n, err := seed(context.Background(), fakeAccounts{}, repo, rand.New(rand.NewSource(1)), "demo", "pw", 5)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	require.Len(t, repo.created, 5)
	for i, in := range repo.created {
		assert.Equal(t, "demo", repo.owners[i])
		assert.NotEmpty(t, in.Title)
		assert.NotEmpty(t, in.Authors)
		assert.NotEmpty(t, in.Publisher)
	}
}

func TestSeed_ReusesExistingUser(t *testing.T) {
	repo := &fakeBooks{}
	n, err := seed(context.Background(), fakeAccounts{err: apperr.BadRequest("Username already taken")}, repo, rand.New(rand.NewSource(1)), "demo", "pw", 2)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestSeed_RegisterFailure(t *testing.T) {
	repo := &fakeBooks{}
	_, err := seed(context.Background(), fakeAccounts{err: errors.New("db down")}, repo, rand.New(rand.NewSource(1)), "demo", "pw", 2)
	require.Error(t, err)
	assert.Empty(t, repo.created)
}

func TestSeed_StopsOnCreateFailure(t *testing.T) {
	repo := &fakeBooks{failAt: 3}
	n, err := seed(context.Background(), fakeAccounts{}, repo, rand.New(rand.NewSource(1)), "demo", "pw", 5)
	require.Error(t, err)
	assert.Equal(t, 2, n)
	assert.ErrorIs(t, err, apperr.ErrInternal)
}
