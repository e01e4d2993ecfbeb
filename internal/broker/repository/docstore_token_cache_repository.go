package repository

import (
	"context"

	"github.com/codemillmatt/cosmos-db-permissions/internal/broker/domain"
	"github.com/codemillmatt/cosmos-db-permissions/internal/docstore"
	apperrors "github.com/codemillmatt/cosmos-db-permissions/internal/errors"
)

// DocstoreTokenCacheRepository implements CachedToken persistence on a
// document store collection keyed by the deterministic cache id.
type DocstoreTokenCacheRepository struct {
	store *docstore.Store
}

// Get retrieves a cached token by its deterministic id. Returns
// ErrCachedTokenNotFound if no cache document exists, or a wrapped store
// error if the read fails.
func (d *DocstoreTokenCacheRepository) Get(ctx context.Context, id string) (*domain.CachedToken, error) {
	token := domain.CachedToken{ID: id}

	if err := d.store.TokenCache.Get(ctx, &token); err != nil {
		if docstore.IsNotFound(err) {
			return nil, domain.ErrCachedTokenNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get cached token")
	}

	return &token, nil
}

// Upsert writes a cached token, replacing any existing document with the
// same id. Concurrent re-provisioning for one (user, resource) pair lands on
// the same id, so the last write wins and no duplicates accumulate.
func (d *DocstoreTokenCacheRepository) Upsert(ctx context.Context, token *domain.CachedToken) error {
	if err := d.store.TokenCache.Put(ctx, token); err != nil {
		return apperrors.Wrap(err, "failed to upsert cached token")
	}
	return nil
}

// NewDocstoreTokenCacheRepository creates a new document store CachedToken repository.
func NewDocstoreTokenCacheRepository(store *docstore.Store) *DocstoreTokenCacheRepository {
	return &DocstoreTokenCacheRepository{store: store}
}
