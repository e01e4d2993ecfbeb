package usecase

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/codemillmatt/cosmos-db-permissions/internal/broker/domain"
	brokerService "github.com/codemillmatt/cosmos-db-permissions/internal/broker/service"
	apperrors "github.com/codemillmatt/cosmos-db-permissions/internal/errors"
)

// brokerUseCase implements BrokerUseCase by orchestrating cache lookups,
// lazy provisioning, and serialization.
type brokerUseCase struct {
	cache       TokenCache
	provisioner Provisioner
	serializer  brokerService.PermissionSerializer

	// provisionConcurrency bounds parallel provisioning of cache misses
	// within one batch request.
	provisionConcurrency int
}

// NewBrokerUseCase creates a new BrokerUseCase with the provided
// dependencies. A non-positive provisionConcurrency falls back to 1,
// preserving strictly sequential provisioning.
func NewBrokerUseCase(
	cache TokenCache,
	provisioner Provisioner,
	serializer brokerService.PermissionSerializer,
	provisionConcurrency int,
) BrokerUseCase {
	if provisionConcurrency <= 0 {
		provisionConcurrency = 1
	}
	return &brokerUseCase{
		cache:                cache,
		provisioner:          provisioner,
		serializer:           serializer,
		provisionConcurrency: provisionConcurrency,
	}
}

// PublicToken issues a read token for the public resource collection via the
// same generic one-resource path as every other request, with the well-known
// public identity.
func (b *brokerUseCase) PublicToken(ctx context.Context) (string, error) {
	tokens, err := b.BatchTokens(ctx, domain.PublicUserID, []string{domain.PublicResourceAlias})
	if err != nil {
		return "", err
	}
	return tokens[0], nil
}

// BatchTokens returns one serialized read token per requested resource.
//
// Each resource is first checked against the cache; misses are provisioned
// with bounded concurrency, which is safe because deterministic ids make
// per-resource provisioning independent and idempotent. Results are
// reassembled by request position, never completion order, so the response
// always aligns with the request. The first fatal store error fails the
// whole batch; no partial result list is ever returned.
func (b *brokerUseCase) BatchTokens(
	ctx context.Context,
	userID string,
	resources []string,
) ([]string, error) {
	if userID == "" {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "user id must not be empty")
	}
	if len(resources) == 0 {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "at least one resource is required")
	}

	tokens := make([]string, len(resources))
	var misses []int

	// Partition into cache hits and misses, keeping request order.
	for i, resource := range resources {
		permission, ok, err := b.cache.Lookup(ctx, userID, resource)
		if err != nil {
			return nil, fmt.Errorf("cache lookup for resource %q: %w", resource, err)
		}
		if !ok {
			misses = append(misses, i)
			continue
		}

		token, err := b.serializer.Serialize(permission)
		if err != nil {
			return nil, fmt.Errorf("serialize cached permission for resource %q: %w", resource, err)
		}
		tokens[i] = token
	}

	if len(misses) == 0 {
		return tokens, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.provisionConcurrency)

	for _, i := range misses {
		resource := resources[i]
		g.Go(func() error {
			permission, err := b.provisioner.EnsurePermission(gctx, userID, resource)
			if err != nil {
				return fmt.Errorf("provision resource %q: %w", resource, err)
			}

			token, err := b.cache.Store(gctx, userID, resource, permission)
			if err != nil {
				return fmt.Errorf("cache resource %q: %w", resource, err)
			}

			tokens[i] = token
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return tokens, nil
}
