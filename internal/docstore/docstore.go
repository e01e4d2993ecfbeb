// Package docstore opens the document store collections the broker works
// against. Collections are addressed by gocloud.dev URLs so the same code
// runs against MongoDB, Firestore, DynamoDB, or the in-memory driver used
// in tests.
package docstore

import (
	"context"
	"errors"
	"fmt"

	"gocloud.dev/docstore"
	"gocloud.dev/gcerrors"

	// Register docstore drivers for URL-based collection opening.
	_ "gocloud.dev/docstore/awsdynamodb/v2"
	_ "gocloud.dev/docstore/gcpfirestore"
	_ "gocloud.dev/docstore/memdocstore"
	_ "gocloud.dev/docstore/mongodocstore"
)

// Config holds the collection URLs for the store.
type Config struct {
	// UsersURL addresses the user collection (e.g., "mongo://brokerdb/users?id_field=id").
	UsersURL string
	// PermissionsURL addresses the permission collection.
	PermissionsURL string
	// TokenCacheURL addresses the cached token collection.
	TokenCacheURL string
}

// Store bundles the three collections the broker needs. It is constructed
// once at bootstrap and injected; the broker never opens connections itself.
type Store struct {
	Users       *docstore.Collection
	Permissions *docstore.Collection
	TokenCache  *docstore.Collection
}

// Open opens all configured collections. Returns an error if any URL is
// empty or cannot be opened.
func Open(ctx context.Context, cfg Config) (*Store, error) {
	users, err := openCollection(ctx, "users", cfg.UsersURL)
	if err != nil {
		return nil, err
	}

	permissions, err := openCollection(ctx, "permissions", cfg.PermissionsURL)
	if err != nil {
		_ = users.Close()
		return nil, err
	}

	tokenCache, err := openCollection(ctx, "token cache", cfg.TokenCacheURL)
	if err != nil {
		_ = users.Close()
		_ = permissions.Close()
		return nil, err
	}

	return &Store{
		Users:       users,
		Permissions: permissions,
		TokenCache:  tokenCache,
	}, nil
}

// Close closes all collections, returning the combined errors if any occur.
func (s *Store) Close() error {
	return errors.Join(
		s.Users.Close(),
		s.Permissions.Close(),
		s.TokenCache.Close(),
	)
}

// Ping verifies the store is reachable by reading a sentinel document from
// the users collection. A not-found result still proves connectivity.
func (s *Store) Ping(ctx context.Context) error {
	probe := map[string]interface{}{"id": "readiness-probe"}
	if err := s.Users.Get(ctx, probe); err != nil && !IsNotFound(err) {
		return fmt.Errorf("docstore ping failed: %w", err)
	}
	return nil
}

// IsNotFound reports whether err is the store's not-found signal. This is the
// single recoverable outcome of a store read; everything else is fatal for
// the operation that saw it.
func IsNotFound(err error) bool {
	return gcerrors.Code(err) == gcerrors.NotFound
}

// IsAlreadyExists reports whether err signals a create hitting an existing
// document. With deterministic ids this marks a lost provisioning race, not
// a failure.
func IsAlreadyExists(err error) bool {
	return gcerrors.Code(err) == gcerrors.AlreadyExists
}

func openCollection(ctx context.Context, name, url string) (*docstore.Collection, error) {
	if url == "" {
		return nil, fmt.Errorf("missing docstore URL for %s collection", name)
	}

	coll, err := docstore.OpenCollection(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s collection: %w", name, err)
	}

	return coll, nil
}
