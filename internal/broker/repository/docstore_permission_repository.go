package repository

import (
	"context"

	"github.com/codemillmatt/cosmos-db-permissions/internal/broker/domain"
	"github.com/codemillmatt/cosmos-db-permissions/internal/docstore"
	apperrors "github.com/codemillmatt/cosmos-db-permissions/internal/errors"
)

// DocstorePermissionRepository implements Permission persistence on a
// document store collection keyed by the deterministic permission id.
type DocstorePermissionRepository struct {
	store *docstore.Store
}

// Get retrieves a permission by its deterministic id, scoped to the owning
// user. A record owned by a different user is reported as not found rather
// than leaked across identities.
func (d *DocstorePermissionRepository) Get(
	ctx context.Context,
	userID string,
	permissionID string,
) (*domain.Permission, error) {
	permission := domain.Permission{ID: permissionID}

	if err := d.store.Permissions.Get(ctx, &permission); err != nil {
		if docstore.IsNotFound(err) {
			return nil, domain.ErrPermissionNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get permission")
	}

	if permission.UserID != userID {
		return nil, domain.ErrPermissionNotFound
	}

	return &permission, nil
}

// Create inserts a new permission record. On a lost race against a
// concurrent provisioner the existing record is read back and returned, so
// both racers converge on the same permission.
func (d *DocstorePermissionRepository) Create(
	ctx context.Context,
	permission *domain.Permission,
) (*domain.Permission, error) {
	if err := d.store.Permissions.Create(ctx, permission); err != nil {
		if docstore.IsAlreadyExists(err) {
			return d.Get(ctx, permission.UserID, permission.ID)
		}
		return nil, apperrors.Wrap(err, "failed to create permission")
	}
	return permission, nil
}

// NewDocstorePermissionRepository creates a new document store Permission repository.
func NewDocstorePermissionRepository(store *docstore.Store) *DocstorePermissionRepository {
	return &DocstorePermissionRepository{store: store}
}
