package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codemillmatt/cosmos-db-permissions/internal/broker/domain"
	"github.com/codemillmatt/cosmos-db-permissions/internal/testutil"
)

func TestDocstoreUserRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_CreateAndGet", func(t *testing.T) {
		store := testutil.SetupDocstore(t)
		repo := NewDocstoreUserRepository(store)

		require.NoError(t, repo.Create(ctx, &domain.User{ID: "alice"}))

		user, err := repo.Get(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, "alice", user.ID)
	})

	t.Run("Success_CreateIsIdempotent", func(t *testing.T) {
		store := testutil.SetupDocstore(t)
		repo := NewDocstoreUserRepository(store)

		require.NoError(t, repo.Create(ctx, &domain.User{ID: "alice"}))
		assert.NoError(t, repo.Create(ctx, &domain.User{ID: "alice"}))
	})

	t.Run("Error_GetMissingUser", func(t *testing.T) {
		store := testutil.SetupDocstore(t)
		repo := NewDocstoreUserRepository(store)

		_, err := repo.Get(ctx, "nobody")
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})
}
