package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/codemillmatt/cosmos-db-permissions/internal/broker/domain"
	brokerService "github.com/codemillmatt/cosmos-db-permissions/internal/broker/service"
	apperrors "github.com/codemillmatt/cosmos-db-permissions/internal/errors"
)

// tokenCache implements TokenCache on a cache document repository.
//
// Entries carry an absolute expiry in seconds since the reference epoch. A
// lookup treats an entry as fresh only while its expiry lies more than the
// freshness margin in the future, so a token is never handed out right
// before the store stops honoring it. Stale entries are left in place and
// superseded by the next Store call on the same deterministic id.
type tokenCache struct {
	cacheRepo  TokenCacheRepository
	serializer brokerService.PermissionSerializer
	ttl        time.Duration

	// now is swappable in tests.
	now func() time.Time
}

// NewTokenCache creates a new TokenCache with the provided dependencies.
// A non-positive ttl falls back to the contract default of one hour.
func NewTokenCache(
	cacheRepo TokenCacheRepository,
	serializer brokerService.PermissionSerializer,
	ttl time.Duration,
) TokenCache {
	if ttl <= 0 {
		ttl = domain.TokenCacheTTLSeconds * time.Second
	}
	return &tokenCache{
		cacheRepo:  cacheRepo,
		serializer: serializer,
		ttl:        ttl,
		now:        time.Now,
	}
}

// Lookup reads the cache document under the deterministic id for (userID,
// resource).
//
// Absent documents, logically expired documents, and documents whose payload
// no longer decodes are all reported as a miss: the caller re-provisions and
// the next Store overwrites the bad entry. Only unclassified store failures
// surface as errors.
func (t *tokenCache) Lookup(
	ctx context.Context,
	userID, resource string,
) (*domain.Permission, bool, error) {
	cached, err := t.cacheRepo.Get(ctx, domain.CachedTokenID(userID, resource))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}

	// Fresh only while the expiry lies more than the margin in the future.
	freshnessThreshold := domain.EpochSeconds(t.now()) + domain.FreshnessMarginSeconds
	if cached.Expires <= freshnessThreshold {
		// Logically expired. The record stays in the store until the next
		// Store call supersedes it.
		return nil, false, nil
	}

	permission, err := t.serializer.Deserialize(cached.SerializedPermission)
	if err != nil {
		if errors.Is(err, apperrors.ErrDecode) {
			return nil, false, nil
		}
		return nil, false, err
	}

	return permission, true, nil
}

// Store serializes the permission and upserts the cache document with
// expires = now + ttl. Nothing is written if serialization fails, so a
// partial cache entry can never exist.
func (t *tokenCache) Store(
	ctx context.Context,
	userID, resource string,
	permission *domain.Permission,
) (string, error) {
	serialized, err := t.serializer.Serialize(permission)
	if err != nil {
		return "", err
	}

	token := &domain.CachedToken{
		ID:                   domain.CachedTokenID(userID, resource),
		Expires:              domain.EpochSeconds(t.now().Add(t.ttl)),
		UserID:               userID,
		SerializedPermission: serialized,
		ResourceID:           resource,
	}

	if err := t.cacheRepo.Upsert(ctx, token); err != nil {
		return "", err
	}

	return serialized, nil
}
