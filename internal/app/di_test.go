package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codemillmatt/cosmos-db-permissions/internal/config"
)

// testConfig returns a config backed by the in-memory docstore driver.
func testConfig() *config.Config {
	return &config.Config{
		ServerHost:                "localhost",
		ServerPort:                8080,
		DocstoreUsersURL:          "mem://users/id",
		DocstorePermissionsURL:    "mem://permissions/id",
		DocstoreTokenCacheURL:     "mem://tokencache/id",
		LogLevel:                  "info",
		TokenCacheTTL:             time.Hour,
		BatchProvisionConcurrency: 2,
		MetricsEnabled:            false,
	}
}

// TestNewContainer verifies that a new container can be created with a valid configuration.
func TestNewContainer(t *testing.T) {
	cfg := testConfig()
	container := NewContainer(cfg)

	require.NotNil(t, container)
	assert.Same(t, cfg, container.Config())
}

// TestContainerLogger verifies that the logger can be retrieved from the container.
func TestContainerLogger(t *testing.T) {
	container := NewContainer(testConfig())

	logger := container.Logger()
	require.NotNil(t, logger)

	// Calling Logger() again should return the same instance (singleton)
	assert.Same(t, logger, container.Logger())
}

// TestContainerStore verifies the document store opens against the in-memory driver.
func TestContainerStore(t *testing.T) {
	ctx := context.Background()
	container := NewContainer(testConfig())
	defer func() {
		require.NoError(t, container.Shutdown(ctx))
	}()

	store, err := container.Store(ctx)
	require.NoError(t, err)
	require.NotNil(t, store)

	// Same instance on repeated access
	again, err := container.Store(ctx)
	require.NoError(t, err)
	assert.Same(t, store, again)
}

// TestContainerStoreError verifies that an invalid collection URL surfaces on
// every access, not only the first.
func TestContainerStoreError(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig()
	cfg.DocstoreUsersURL = ""
	container := NewContainer(cfg)

	_, err := container.Store(ctx)
	require.Error(t, err)

	_, err = container.Store(ctx)
	assert.Error(t, err)
}

// TestContainerBrokerUseCase wires the full graph and issues a public token
// end to end against the in-memory store.
func TestContainerBrokerUseCase(t *testing.T) {
	ctx := context.Background()
	container := NewContainer(testConfig())
	defer func() {
		require.NoError(t, container.Shutdown(ctx))
	}()

	useCase, err := container.BrokerUseCase(ctx)
	require.NoError(t, err)

	token, err := useCase.PublicToken(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	// A second issuance is served from the cache and returns the same token
	again, err := useCase.PublicToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, token, again)
}

// TestContainerHTTPServer verifies the full HTTP server graph initializes.
func TestContainerHTTPServer(t *testing.T) {
	ctx := context.Background()
	container := NewContainer(testConfig())
	defer func() {
		require.NoError(t, container.Shutdown(ctx))
	}()

	server, err := container.HTTPServer(ctx)
	require.NoError(t, err)
	require.NotNil(t, server)
}

// TestContainerMetricsDisabled verifies metrics components degrade to no-ops.
func TestContainerMetricsDisabled(t *testing.T) {
	container := NewContainer(testConfig())

	provider, err := container.MetricsProvider()
	require.NoError(t, err)
	assert.Nil(t, provider)

	businessMetrics, err := container.BusinessMetrics()
	require.NoError(t, err)
	assert.NotNil(t, businessMetrics)

	metricsServer, err := container.MetricsServer()
	require.NoError(t, err)
	assert.Nil(t, metricsServer)
}

// TestContainerMetricsEnabled verifies the metrics graph initializes when enabled.
func TestContainerMetricsEnabled(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig()
	cfg.MetricsEnabled = true
	cfg.MetricsNamespace = "test_broker"
	cfg.MetricsPort = 8081
	container := NewContainer(cfg)
	defer func() {
		require.NoError(t, container.Shutdown(ctx))
	}()

	provider, err := container.MetricsProvider()
	require.NoError(t, err)
	require.NotNil(t, provider)

	metricsServer, err := container.MetricsServer()
	require.NoError(t, err)
	assert.NotNil(t, metricsServer)
}
