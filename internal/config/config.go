// Package config provides application configuration through environment variables.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/allisson/go-env"
	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	// ServerHost is the host address the server will bind to.
	ServerHost string
	// ServerPort is the port number the server will listen on.
	ServerPort int

	// DocstoreUsersURL is the docstore URL for the user collection
	// (e.g., "mongo://brokerdb/users?id_field=id").
	DocstoreUsersURL string
	// DocstorePermissionsURL is the docstore URL for the permission collection.
	DocstorePermissionsURL string
	// DocstoreTokenCacheURL is the docstore URL for the cached token collection.
	DocstoreTokenCacheURL string

	// LogLevel is the logging level (e.g., "debug", "info", "warn", "error").
	LogLevel string

	// TokenCacheTTL is the duration a cached serialized permission stays servable.
	TokenCacheTTL time.Duration

	// BatchProvisionConcurrency bounds how many cache misses of one batch
	// request are provisioned in parallel.
	BatchProvisionConcurrency int

	// RateLimitEnabled indicates whether rate limiting for token endpoints is enabled.
	RateLimitEnabled bool
	// RateLimitRequestsPerSec is the number of requests allowed per second per client IP.
	RateLimitRequestsPerSec float64
	// RateLimitBurst is the burst size for token endpoint rate limiting.
	RateLimitBurst int

	// CORSEnabled indicates whether CORS is enabled.
	CORSEnabled bool
	// CORSAllowOrigins is a comma-separated list of allowed origins for CORS.
	CORSAllowOrigins string

	// MetricsEnabled indicates whether metrics collection is enabled.
	MetricsEnabled bool
	// MetricsNamespace is the namespace for the application metrics.
	MetricsNamespace string
	// MetricsPort is the port number for the metrics server.
	MetricsPort int
}

// Load loads configuration from environment variables and .env file.
func Load() *Config {
	// Try to load .env file recursively
	loadDotEnv()

	return &Config{
		// Server configuration
		ServerHost: env.GetString("SERVER_HOST", "0.0.0.0"),
		ServerPort: env.GetInt("SERVER_PORT", 8080),

		// Document store collections
		DocstoreUsersURL: env.GetString(
			"DOCSTORE_USERS_URL",
			"mem://users/id",
		),
		DocstorePermissionsURL: env.GetString(
			"DOCSTORE_PERMISSIONS_URL",
			"mem://permissions/id",
		),
		DocstoreTokenCacheURL: env.GetString(
			"DOCSTORE_TOKEN_CACHE_URL",
			"mem://tokencache/id",
		),

		// Logging
		LogLevel: env.GetString("LOG_LEVEL", "info"),

		// Token cache
		TokenCacheTTL:             env.GetDuration("TOKEN_CACHE_TTL_SECONDS", 3600, time.Second),
		BatchProvisionConcurrency: env.GetInt("BATCH_PROVISION_CONCURRENCY", 4),

		// Rate Limiting for token endpoints (IP-based, unauthenticated)
		RateLimitEnabled:        env.GetBool("RATE_LIMIT_ENABLED", true),
		RateLimitRequestsPerSec: env.GetFloat64("RATE_LIMIT_REQUESTS_PER_SEC", 10.0),
		RateLimitBurst:          env.GetInt("RATE_LIMIT_BURST", 20),

		// CORS
		CORSEnabled:      env.GetBool("CORS_ENABLED", false),
		CORSAllowOrigins: env.GetString("CORS_ALLOW_ORIGINS", ""),

		// Metrics
		MetricsEnabled:   env.GetBool("METRICS_ENABLED", true),
		MetricsNamespace: env.GetString("METRICS_NAMESPACE", "permission_broker"),
		MetricsPort:      env.GetInt("METRICS_PORT", 8081),
	}
}

// GetGinMode returns the appropriate Gin mode based on log level.
func (c *Config) GetGinMode() string {
	switch c.LogLevel {
	case "debug":
		return "debug"
	default:
		return "release"
	}
}

// loadDotEnv searches for a .env file recursively from the current directory
// up to the root directory and loads it if found.
func loadDotEnv() {
	// Get current working directory
	cwd, err := os.Getwd()
	if err != nil {
		return
	}

	// Search for .env file recursively up the directory tree
	dir := cwd
	for {
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			// .env file found, load it
			_ = godotenv.Load(envPath)
			return
		}

		// Move to parent directory
		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root directory
			break
		}
		dir = parent
	}
}
