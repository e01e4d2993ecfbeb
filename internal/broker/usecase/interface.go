// Package usecase defines the business logic of the permission broker:
// cache lookups, lazy provisioning, and token issuance orchestration.
package usecase

import (
	"context"

	"github.com/codemillmatt/cosmos-db-permissions/internal/broker/domain"
)

// UserRepository defines persistence operations for user records.
type UserRepository interface {
	// Get retrieves a user by id. Returns ErrUserNotFound if not found.
	Get(ctx context.Context, userID string) (*domain.User, error)

	// Create stores a new user record.
	Create(ctx context.Context, user *domain.User) error
}

// PermissionRepository defines persistence operations for permissions.
type PermissionRepository interface {
	// Get retrieves a permission by deterministic id, scoped to its owner.
	// Returns ErrPermissionNotFound if not found.
	Get(ctx context.Context, userID, permissionID string) (*domain.Permission, error)

	// Create stores a new permission and returns the stored record. If a
	// concurrent create already stored one under the same id, the existing
	// record is returned instead.
	Create(ctx context.Context, permission *domain.Permission) (*domain.Permission, error)
}

// TokenCacheRepository defines persistence operations for cache documents.
type TokenCacheRepository interface {
	// Get retrieves a cached token by deterministic id. Returns
	// ErrCachedTokenNotFound if not found.
	Get(ctx context.Context, id string) (*domain.CachedToken, error)

	// Upsert writes a cached token, replacing any existing document with the
	// same id.
	Upsert(ctx context.Context, token *domain.CachedToken) error
}

// TokenCache implements read-through caching of serialized permissions.
type TokenCache interface {
	// Lookup returns the cached permission for (userID, resource) if a fresh
	// entry exists. The second return is false when the entry is absent,
	// stale, or undecodable; err carries only fatal store failures.
	Lookup(ctx context.Context, userID, resource string) (*domain.Permission, bool, error)

	// Store serializes the permission, stamps the expiry, upserts the cache
	// document, and returns the serialized token.
	Store(ctx context.Context, userID, resource string, permission *domain.Permission) (string, error)
}

// Provisioner lazily materializes user and permission records in the store.
type Provisioner interface {
	// EnsureUser creates the user record on first use. Safe to call when the
	// user already exists.
	EnsureUser(ctx context.Context, userID string) error

	// EnsurePermission returns the read-only permission for (userID,
	// resource), creating the user and permission on first use. Store
	// failures other than not-found propagate unchanged.
	EnsurePermission(ctx context.Context, userID, resource string) (*domain.Permission, error)
}

// BrokerUseCase is the externally consumed entry point for token issuance.
type BrokerUseCase interface {
	// PublicToken returns one serialized read token for the public resource,
	// issued to the well-known public identity.
	PublicToken(ctx context.Context) (string, error)

	// BatchTokens returns one serialized read token per requested resource,
	// in request order. The whole batch fails on the first fatal store error.
	BatchTokens(ctx context.Context, userID string, resources []string) ([]string, error)
}
