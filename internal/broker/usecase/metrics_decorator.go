package usecase

import (
	"context"
	"time"

	"github.com/codemillmatt/cosmos-db-permissions/internal/broker/domain"
	"github.com/codemillmatt/cosmos-db-permissions/internal/metrics"
)

// brokerUseCaseWithMetrics decorates BrokerUseCase with metrics instrumentation.
type brokerUseCaseWithMetrics struct {
	next    BrokerUseCase
	metrics metrics.BusinessMetrics
}

// NewBrokerUseCaseWithMetrics wraps a BrokerUseCase with metrics recording.
func NewBrokerUseCaseWithMetrics(useCase BrokerUseCase, m metrics.BusinessMetrics) BrokerUseCase {
	return &brokerUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// PublicToken records metrics for public token issuance.
func (b *brokerUseCaseWithMetrics) PublicToken(ctx context.Context) (string, error) {
	start := time.Now()
	token, err := b.next.PublicToken(ctx)

	status := "success"
	if err != nil {
		status = "error"
	}

	b.metrics.RecordOperation(ctx, "broker", "public_token", status)
	b.metrics.RecordDuration(ctx, "broker", "public_token", time.Since(start), status)

	return token, err
}

// BatchTokens records metrics for batch token issuance.
func (b *brokerUseCaseWithMetrics) BatchTokens(
	ctx context.Context,
	userID string,
	resources []string,
) ([]string, error) {
	start := time.Now()
	tokens, err := b.next.BatchTokens(ctx, userID, resources)

	status := "success"
	if err != nil {
		status = "error"
	}

	b.metrics.RecordOperation(ctx, "broker", "batch_tokens", status)
	b.metrics.RecordDuration(ctx, "broker", "batch_tokens", time.Since(start), status)

	return tokens, err
}

// tokenCacheWithMetrics decorates TokenCache with hit/miss instrumentation.
type tokenCacheWithMetrics struct {
	next    TokenCache
	metrics metrics.BusinessMetrics
}

// NewTokenCacheWithMetrics wraps a TokenCache with cache lookup metrics.
func NewTokenCacheWithMetrics(cache TokenCache, m metrics.BusinessMetrics) TokenCache {
	return &tokenCacheWithMetrics{
		next:    cache,
		metrics: m,
	}
}

// Lookup records the hit/miss outcome of each cache lookup. Fatal lookup
// errors are not counted as misses; they fail the request instead.
func (t *tokenCacheWithMetrics) Lookup(
	ctx context.Context,
	userID, resource string,
) (*domain.Permission, bool, error) {
	permission, ok, err := t.next.Lookup(ctx, userID, resource)
	if err == nil {
		outcome := "miss"
		if ok {
			outcome = "hit"
		}
		t.metrics.RecordCacheLookup(ctx, resource, outcome)
	}
	return permission, ok, err
}

// Store delegates to the wrapped cache.
func (t *tokenCacheWithMetrics) Store(
	ctx context.Context,
	userID, resource string,
	permission *domain.Permission,
) (string, error) {
	return t.next.Store(ctx, userID, resource, permission)
}
