package user

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookcatalog/internal/testutil"
)

func TestPostgresRepo_CreateAndGet(t *testing.T) {
	db := testutil.OpenTestDB(t)
	repo := NewPostgresRepo(db, 3*time.Second)
	ctx := context.Background()

	username := "user-" + uuid.NewString()
	t.Cleanup(func() {
		_, _ = db.Exec(context.Background(), "DELETE FROM users WHERE username = $1", username)
	})

	require.NoError(t, repo.Create(ctx, User{Username: username, Password: "hash"}))

	got, err := repo.GetByUsername(ctx, username)
	require.NoError(t, err)
	assert.Equal(t, User{Username: username, Password: "hash"}, got)

	err = repo.Create(ctx, User{Username: username, Password: "other"})
	assert.ErrorIs(t, err, ErrAlreadyExists)

	_, err = repo.GetByUsername(ctx, "missing-"+uuid.NewString())
	assert.ErrorIs(t, err, ErrNotFound)
}
