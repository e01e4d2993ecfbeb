package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codemillmatt/cosmos-db-permissions/internal/broker/domain"
	"github.com/codemillmatt/cosmos-db-permissions/internal/testutil"
)

func TestDocstorePermissionRepository(t *testing.T) {
	ctx := context.Background()

	permission := &domain.Permission{
		ID:           "alice-orders",
		UserID:       "alice",
		Mode:         domain.PermissionModeRead,
		ResourceLink: "colls/orders",
	}

	t.Run("Success_CreateAndGet", func(t *testing.T) {
		store := testutil.SetupDocstore(t)
		repo := NewDocstorePermissionRepository(store)

		created, err := repo.Create(ctx, permission)
		require.NoError(t, err)
		assert.Equal(t, permission.ID, created.ID)

		got, err := repo.Get(ctx, "alice", "alice-orders")
		require.NoError(t, err)
		assert.Equal(t, permission.UserID, got.UserID)
		assert.Equal(t, domain.PermissionModeRead, got.Mode)
		assert.Equal(t, "colls/orders", got.ResourceLink)
	})

	t.Run("Success_LostCreateRaceReturnsExistingRecord", func(t *testing.T) {
		store := testutil.SetupDocstore(t)
		repo := NewDocstorePermissionRepository(store)

		_, err := repo.Create(ctx, permission)
		require.NoError(t, err)

		// Second create under the same deterministic id converges on the
		// record already in the store.
		duplicate := &domain.Permission{
			ID:           "alice-orders",
			UserID:       "alice",
			Mode:         domain.PermissionModeRead,
			ResourceLink: "colls/orders",
		}
		got, err := repo.Create(ctx, duplicate)
		require.NoError(t, err)
		assert.Equal(t, permission.ID, got.ID)
	})

	t.Run("Error_GetMissingPermission", func(t *testing.T) {
		store := testutil.SetupDocstore(t)
		repo := NewDocstorePermissionRepository(store)

		_, err := repo.Get(ctx, "alice", "alice-orders")
		assert.ErrorIs(t, err, domain.ErrPermissionNotFound)
	})

	t.Run("Error_OtherUsersPermissionIsNotVisible", func(t *testing.T) {
		store := testutil.SetupDocstore(t)
		repo := NewDocstorePermissionRepository(store)

		_, err := repo.Create(ctx, permission)
		require.NoError(t, err)

		// Identity isolation: bob asking for alice's record gets not-found,
		// never alice's permission.
		_, err = repo.Get(ctx, "bob", "alice-orders")
		assert.ErrorIs(t, err, domain.ErrPermissionNotFound)
	})
}
