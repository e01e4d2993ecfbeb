// Package repository implements broker persistence on top of document store
// collections. Every read maps the driver's not-found signal to the matching
// domain error so use cases can pattern-match with errors.Is; all other store
// failures are wrapped and propagated unchanged.
package repository

import (
	"context"

	"github.com/codemillmatt/cosmos-db-permissions/internal/broker/domain"
	"github.com/codemillmatt/cosmos-db-permissions/internal/docstore"
	apperrors "github.com/codemillmatt/cosmos-db-permissions/internal/errors"
)

// DocstoreUserRepository implements User persistence on a document store
// collection keyed by user id.
type DocstoreUserRepository struct {
	store *docstore.Store
}

// Get retrieves a user by id. Returns ErrUserNotFound if the user doesn't
// exist, or a wrapped store error if the read fails.
func (d *DocstoreUserRepository) Get(ctx context.Context, userID string) (*domain.User, error) {
	user := domain.User{ID: userID}

	if err := d.store.Users.Get(ctx, &user); err != nil {
		if docstore.IsNotFound(err) {
			return nil, domain.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get user")
	}

	return &user, nil
}

// Create inserts a new user record. A create racing another provisioner on
// the same id is harmless: the loser reads back the existing record.
func (d *DocstoreUserRepository) Create(ctx context.Context, user *domain.User) error {
	if err := d.store.Users.Create(ctx, user); err != nil {
		if docstore.IsAlreadyExists(err) {
			return nil
		}
		return apperrors.Wrap(err, "failed to create user")
	}
	return nil
}

// NewDocstoreUserRepository creates a new document store User repository.
func NewDocstoreUserRepository(store *docstore.Store) *DocstoreUserRepository {
	return &DocstoreUserRepository{store: store}
}
