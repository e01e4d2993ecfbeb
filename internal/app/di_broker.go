package app

import (
	"context"
	"fmt"
	"sync"

	brokerHTTP "github.com/codemillmatt/cosmos-db-permissions/internal/broker/http"
	brokerRepository "github.com/codemillmatt/cosmos-db-permissions/internal/broker/repository"
	brokerService "github.com/codemillmatt/cosmos-db-permissions/internal/broker/service"
	brokerUseCase "github.com/codemillmatt/cosmos-db-permissions/internal/broker/usecase"
)

// brokerComponents groups the broker module wiring inside the container.
type brokerComponents struct {
	userRepo       brokerUseCase.UserRepository
	permissionRepo brokerUseCase.PermissionRepository
	tokenCacheRepo brokerUseCase.TokenCacheRepository
	serializer     brokerService.PermissionSerializer
	tokenCache     brokerUseCase.TokenCache
	provisioner    brokerUseCase.Provisioner
	useCase        brokerUseCase.BrokerUseCase
	tokenHandler   *brokerHTTP.TokenHandler

	userRepoInit       sync.Once
	permissionRepoInit sync.Once
	tokenCacheRepoInit sync.Once
	serializerInit     sync.Once
	tokenCacheInit     sync.Once
	provisionerInit    sync.Once
	useCaseInit        sync.Once
	tokenHandlerInit   sync.Once
}

// UserRepository returns the user repository instance.
func (c *Container) UserRepository(ctx context.Context) (brokerUseCase.UserRepository, error) {
	c.broker.userRepoInit.Do(func() {
		store, err := c.Store(ctx)
		if err != nil {
			c.initErrors["userRepo"] = fmt.Errorf("failed to get store for user repository: %w", err)
			return
		}
		c.broker.userRepo = brokerRepository.NewDocstoreUserRepository(store)
	})
	if storedErr, exists := c.initErrors["userRepo"]; exists {
		return nil, storedErr
	}
	return c.broker.userRepo, nil
}

// PermissionRepository returns the permission repository instance.
func (c *Container) PermissionRepository(ctx context.Context) (brokerUseCase.PermissionRepository, error) {
	c.broker.permissionRepoInit.Do(func() {
		store, err := c.Store(ctx)
		if err != nil {
			c.initErrors["permissionRepo"] = fmt.Errorf("failed to get store for permission repository: %w", err)
			return
		}
		c.broker.permissionRepo = brokerRepository.NewDocstorePermissionRepository(store)
	})
	if storedErr, exists := c.initErrors["permissionRepo"]; exists {
		return nil, storedErr
	}
	return c.broker.permissionRepo, nil
}

// TokenCacheRepository returns the cached token repository instance.
func (c *Container) TokenCacheRepository(ctx context.Context) (brokerUseCase.TokenCacheRepository, error) {
	c.broker.tokenCacheRepoInit.Do(func() {
		store, err := c.Store(ctx)
		if err != nil {
			c.initErrors["tokenCacheRepo"] = fmt.Errorf("failed to get store for token cache repository: %w", err)
			return
		}
		c.broker.tokenCacheRepo = brokerRepository.NewDocstoreTokenCacheRepository(store)
	})
	if storedErr, exists := c.initErrors["tokenCacheRepo"]; exists {
		return nil, storedErr
	}
	return c.broker.tokenCacheRepo, nil
}

// PermissionSerializer returns the permission serializer instance.
func (c *Container) PermissionSerializer() brokerService.PermissionSerializer {
	c.broker.serializerInit.Do(func() {
		c.broker.serializer = brokerService.NewPermissionSerializer()
	})
	return c.broker.serializer
}

// TokenCache returns the read-through token cache instance.
// When metrics are enabled, the cache is wrapped to record lookup outcomes.
func (c *Container) TokenCache(ctx context.Context) (brokerUseCase.TokenCache, error) {
	c.broker.tokenCacheInit.Do(func() {
		cacheRepo, err := c.TokenCacheRepository(ctx)
		if err != nil {
			c.initErrors["tokenCache"] = err
			return
		}

		tokenCache := brokerUseCase.NewTokenCache(
			cacheRepo,
			c.PermissionSerializer(),
			c.config.TokenCacheTTL,
		)

		if c.config.MetricsEnabled {
			businessMetrics, err := c.BusinessMetrics()
			if err != nil {
				c.initErrors["tokenCache"] = err
				return
			}
			tokenCache = brokerUseCase.NewTokenCacheWithMetrics(tokenCache, businessMetrics)
		}

		c.broker.tokenCache = tokenCache
	})
	if storedErr, exists := c.initErrors["tokenCache"]; exists {
		return nil, storedErr
	}
	return c.broker.tokenCache, nil
}

// Provisioner returns the user and permission provisioner instance.
func (c *Container) Provisioner(ctx context.Context) (brokerUseCase.Provisioner, error) {
	c.broker.provisionerInit.Do(func() {
		userRepo, err := c.UserRepository(ctx)
		if err != nil {
			c.initErrors["provisioner"] = err
			return
		}

		permissionRepo, err := c.PermissionRepository(ctx)
		if err != nil {
			c.initErrors["provisioner"] = err
			return
		}

		c.broker.provisioner = brokerUseCase.NewProvisioner(userRepo, permissionRepo)
	})
	if storedErr, exists := c.initErrors["provisioner"]; exists {
		return nil, storedErr
	}
	return c.broker.provisioner, nil
}

// BrokerUseCase returns the token issuance use case instance.
// When metrics are enabled, the use case is wrapped to record operations.
func (c *Container) BrokerUseCase(ctx context.Context) (brokerUseCase.BrokerUseCase, error) {
	c.broker.useCaseInit.Do(func() {
		tokenCache, err := c.TokenCache(ctx)
		if err != nil {
			c.initErrors["brokerUseCase"] = err
			return
		}

		provisioner, err := c.Provisioner(ctx)
		if err != nil {
			c.initErrors["brokerUseCase"] = err
			return
		}

		useCase := brokerUseCase.NewBrokerUseCase(
			tokenCache,
			provisioner,
			c.PermissionSerializer(),
			c.config.BatchProvisionConcurrency,
		)

		if c.config.MetricsEnabled {
			businessMetrics, err := c.BusinessMetrics()
			if err != nil {
				c.initErrors["brokerUseCase"] = err
				return
			}
			useCase = brokerUseCase.NewBrokerUseCaseWithMetrics(useCase, businessMetrics)
		}

		c.broker.useCase = useCase
	})
	if storedErr, exists := c.initErrors["brokerUseCase"]; exists {
		return nil, storedErr
	}
	return c.broker.useCase, nil
}

// TokenHandler returns the HTTP token handler instance.
func (c *Container) TokenHandler(ctx context.Context) (*brokerHTTP.TokenHandler, error) {
	c.broker.tokenHandlerInit.Do(func() {
		useCase, err := c.BrokerUseCase(ctx)
		if err != nil {
			c.initErrors["tokenHandler"] = err
			return
		}

		c.broker.tokenHandler = brokerHTTP.NewTokenHandler(useCase, c.Logger())
	})
	if storedErr, exists := c.initErrors["tokenHandler"]; exists {
		return nil, storedErr
	}
	return c.broker.tokenHandler, nil
}
