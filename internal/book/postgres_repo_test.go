package book

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookcatalog/internal/testutil"
)

func TestPostgresRepo_BuildListQuery(t *testing.T) {
	r := NewPostgresRepo(nil, time.Second)

	t.Run("no filter", func(t *testing.T) {
		query, args, err := r.buildListQuery(Filter{})
		require.NoError(t, err)
		assert.Contains(t, query, `FROM "books"`)
		assert.NotContains(t, query, "WHERE")
		assert.Contains(t, query, `ORDER BY "created_at" ASC, "id" ASC`)
		assert.Empty(t, args)
	})

	t.Run("owner filter is parameterised", func(t *testing.T) {
		query, args, err := r.buildListQuery(Filter{Owner: "alice'; DROP TABLE books; --"})
		require.NoError(t, err)
		assert.Contains(t, query, `"owner" = $1`)
		assert.NotContains(t, query, "DROP TABLE")
		assert.Equal(t, []any{"alice'; DROP TABLE books; --"}, args)
	})

	t.Run("id and owner", func(t *testing.T) {
		query, args, err := r.buildListQuery(Filter{ID: "b1", Owner: "alice"})
		require.NoError(t, err)
		assert.Contains(t, query, `"id" = $`)
		assert.Contains(t, query, `"owner" = $`)
		assert.ElementsMatch(t, []any{"b1", "alice"}, args)
	})
}

func TestPostgresRepo_BuildUpdateQuery(t *testing.T) {
	r := NewPostgresRepo(nil, time.Second)

	t.Run("only patched columns are set", func(t *testing.T) {
		query, args, err := r.buildUpdateQuery("b1", Patch{Title: strPtr("New")}, 1_700_000_000)
		require.NoError(t, err)
		assert.Contains(t, query, `UPDATE "books" SET`)
		assert.Contains(t, query, `"title"`)
		assert.Contains(t, query, `"last_updated_at"`)
		assert.NotContains(t, query, `"publisher"`)
		assert.NotContains(t, query, `"authors"`)
		assert.NotContains(t, query, `"owner"`)
		assert.NotContains(t, query, `"created_at"`)
		assert.Contains(t, args, "New")
		assert.Contains(t, args, "b1")
		assert.Contains(t, args, int64(1_700_000_000))
	})

	t.Run("authors are cast to jsonb", func(t *testing.T) {
		authors := []string{"A", "B"}
		query, args, err := r.buildUpdateQuery("b1", Patch{Authors: &authors}, 1)
		require.NoError(t, err)
		assert.Contains(t, query, "::jsonb")
		assert.Contains(t, args, `["A","B"]`)
	})
}

func TestPostgresRepo_BuildInsertQuery(t *testing.T) {
	r := NewPostgresRepo(nil, time.Second)

	query, args, err := r.buildInsertQuery(Book{ID: "b1", Title: "T", Publisher: "P", CreatedAt: 1, LastUpdatedAt: 1})
	require.NoError(t, err)
	assert.Contains(t, query, `INSERT INTO "books"`)
	assert.Contains(t, query, "::jsonb")
	assert.Contains(t, args, "[]")
	assert.Contains(t, args, "b1")
}

func TestPostgresRepo_Integration(t *testing.T) {
	db := testutil.OpenTestDB(t)
	repo := NewPostgresRepo(db, 3*time.Second)
	ctx := context.Background()

	owner := "pg-" + uuid.NewString()
	b := Book{
		ID:            uuid.NewString(),
		Title:         "Dune",
		Authors:       []string{"Frank Herbert"},
		Publisher:     "Chilton",
		Owner:         &owner,
		CreatedAt:     100,
		LastUpdatedAt: 100,
	}
	t.Cleanup(func() { _, _ = repo.Delete(context.Background(), b.ID) })

	id, err := repo.Create(ctx, b)
	require.NoError(t, err)
	assert.Equal(t, b.ID, id)

	_, err = repo.Create(ctx, b)
	assert.ErrorIs(t, err, ErrStore)
	assert.ErrorIs(t, err, ErrDuplicateID)

	got, err := repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, b, got)

	mine, err := repo.List(ctx, Filter{Owner: owner})
	require.NoError(t, err)
	assert.Equal(t, []Book{b}, mine)

	ok, err := repo.Update(ctx, b.ID, Patch{Description: strPtr("Spice")}, 200)
	require.NoError(t, err)
	assert.True(t, ok)

	got, err = repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dune", got.Title)
	assert.Equal(t, "Spice", *got.Description)
	assert.Equal(t, int64(200), got.LastUpdatedAt)

	ok, err = repo.Update(ctx, "missing-"+uuid.NewString(), Patch{Title: strPtr("x")}, 1)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = repo.Delete(ctx, b.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.Delete(ctx, b.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = repo.GetByID(ctx, b.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
