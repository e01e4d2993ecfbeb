// Package testutil provides testing utilities for document store integration tests.
//
// Store Setup:
//
//	store := testutil.SetupDocstore(t)
//
// The store is backed by the in-memory docstore driver, so each test gets
// isolated collections with no external services required. Collections are
// closed automatically when the test finishes.
package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/codemillmatt/cosmos-db-permissions/internal/docstore"
)

// SetupDocstore opens an in-memory document store with the three broker
// collections and registers cleanup with the test.
func SetupDocstore(t *testing.T) *docstore.Store {
	t.Helper()

	store, err := docstore.Open(context.Background(), docstore.Config{
		UsersURL:       "mem://users/id",
		PermissionsURL: "mem://permissions/id",
		TokenCacheURL:  "mem://tokencache/id",
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		require.NoError(t, store.Close())
	})

	return store
}
