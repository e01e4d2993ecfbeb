package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/metric"

	brokerHTTP "github.com/codemillmatt/cosmos-db-permissions/internal/broker/http"
	"github.com/codemillmatt/cosmos-db-permissions/internal/docstore"
	"github.com/codemillmatt/cosmos-db-permissions/internal/metrics"
)

// Server represents the HTTP server with its dependencies.
type Server struct {
	store  *docstore.Store
	server *http.Server
	router *gin.Engine
	logger *slog.Logger
}

// RouterConfig holds the handlers and feature toggles SetupRouter wires into
// the route tree.
type RouterConfig struct {
	TokenHandler *brokerHTTP.TokenHandler

	RateLimitEnabled        bool
	RateLimitRequestsPerSec float64
	RateLimitBurst          int

	CORSEnabled      bool
	CORSAllowOrigins string

	// MeterProvider enables HTTP metrics collection when non-nil.
	MeterProvider    metric.MeterProvider
	MetricsNamespace string
}

// NewServer creates a new HTTP server instance.
func NewServer(
	store *docstore.Store,
	host string,
	port int,
	logger *slog.Logger,
) *Server {
	return &Server{
		store: store,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger: logger,
	}
}

// SetupRouter configures the Gin router with middleware and routes.
func (s *Server) SetupRouter(cfg RouterConfig) {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if cfg.MeterProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(cfg.MeterProvider, cfg.MetricsNamespace))
	}

	// Health endpoints stay outside the rate limit so orchestrators can
	// always probe them.
	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	// Token endpoints
	v1 := router.Group("/v1")
	if cfg.RateLimitEnabled {
		v1.Use(RateLimitMiddleware(cfg.RateLimitRequestsPerSec, cfg.RateLimitBurst, s.logger))
	}
	v1.GET("/public-token", cfg.TokenHandler.GetPublicTokenHandler)
	v1.POST("/tokens", cfg.TokenHandler.IssueBatchTokensHandler)

	s.router = router
}

// GetHandler returns the configured router for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// healthHandler reports basic liveness.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports whether the server can serve traffic, including
// document store connectivity.
func (s *Server) readinessHandler(c *gin.Context) {
	components := gin.H{}
	ready := true

	if s.store == nil {
		components["docstore"] = "error"
		ready = false
	} else {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := s.store.Ping(ctx); err != nil {
			s.logger.Warn("readiness probe failed", slog.Any("error", err))
			components["docstore"] = "error"
			ready = false
		} else {
			components["docstore"] = "ok"
		}
	}

	if !ready {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": components,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ready",
		"components": components,
	})
}

// Start starts the HTTP server.
func (s *Server) Start(ctx context.Context) error {
	s.server.Handler = s.router

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start http server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}
