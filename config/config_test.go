package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	t.Run("loads default values", func(t *testing.T) {
		os.Clearenv()

		cfg := Load()

		assert.Equal(t, "8080", cfg.Server.Port)
		assert.Equal(t, 100, cfg.Server.RateLimit)
		assert.Equal(t, time.Minute, cfg.Server.RateWindow)
		assert.Equal(t, 15*time.Second, cfg.Server.CheckoutTimeout)
		assert.True(t, cfg.Server.EnableIdempotency)
		assert.Equal(t, 2*time.Hour, cfg.Session.TTL)
		assert.Equal(t, 5<<20, cfg.Session.MaxUploadBytes)
		assert.Equal(t, 5*time.Minute, cfg.Pricing.TierCacheTTL)
		assert.Equal(t, "http://localhost:8081", cfg.Services.PricingURL)
		assert.Equal(t, "http://localhost:8082", cfg.Services.CartURL)
		assert.Empty(t, cfg.Services.GenerativeURL)
		assert.False(t, cfg.Auth.Enabled)
		assert.False(t, cfg.Database.Enabled)
		assert.Equal(t, "engraving_service", cfg.Database.DatabaseName)
	})

	t.Run("loads values from environment", func(t *testing.T) {
		os.Clearenv()
		_ = os.Setenv("PORT", "9090")
		_ = os.Setenv("RATE_LIMIT", "50")
		_ = os.Setenv("RATE_WINDOW", "30s")
		_ = os.Setenv("CHECKOUT_TIMEOUT", "5s")
		_ = os.Setenv("ENABLE_IDEMPOTENCY", "false")
		_ = os.Setenv("SESSION_TTL", "1h")
		_ = os.Setenv("MAX_UPLOAD_BYTES", "1048576")
		_ = os.Setenv("TIER_CACHE_TTL", "10m")
		_ = os.Setenv("PRICING_SERVICE_URL", "http://pricing:9000")
		_ = os.Setenv("CART_SERVICE_URL", "http://cart:9001")
		_ = os.Setenv("GENERATIVE_SERVICE_URL", "http://generative:9002")
		_ = os.Setenv("AUTH_ENABLED", "true")
		_ = os.Setenv("API_KEYS", "key1,key2")
		_ = os.Setenv("ADMIN_JWT_SECRET", "admin-secret")
		defer os.Clearenv()

		cfg := Load()

		assert.Equal(t, "9090", cfg.Server.Port)
		assert.Equal(t, 50, cfg.Server.RateLimit)
		assert.Equal(t, 30*time.Second, cfg.Server.RateWindow)
		assert.Equal(t, 5*time.Second, cfg.Server.CheckoutTimeout)
		assert.False(t, cfg.Server.EnableIdempotency)
		assert.Equal(t, time.Hour, cfg.Session.TTL)
		assert.Equal(t, 1048576, cfg.Session.MaxUploadBytes)
		assert.Equal(t, 10*time.Minute, cfg.Pricing.TierCacheTTL)
		assert.Equal(t, "http://pricing:9000", cfg.Services.PricingURL)
		assert.Equal(t, "http://cart:9001", cfg.Services.CartURL)
		assert.Equal(t, "http://generative:9002", cfg.Services.GenerativeURL)
		assert.True(t, cfg.Auth.Enabled)
		assert.True(t, cfg.Auth.APIKeys["key1"])
		assert.True(t, cfg.Auth.APIKeys["key2"])
		assert.Equal(t, "admin-secret", cfg.Auth.AdminJWTSecret)
	})

	t.Run("handles invalid values gracefully", func(t *testing.T) {
		os.Clearenv()
		_ = os.Setenv("RATE_LIMIT", "invalid")
		_ = os.Setenv("AUTH_ENABLED", "invalid")
		_ = os.Setenv("RATE_WINDOW", "invalid")
		_ = os.Setenv("SESSION_TTL", "invalid")
		defer os.Clearenv()

		cfg := Load()

		assert.Equal(t, 100, cfg.Server.RateLimit)
		assert.False(t, cfg.Auth.Enabled)
		assert.Equal(t, time.Minute, cfg.Server.RateWindow)
		assert.Equal(t, 2*time.Hour, cfg.Session.TTL)
	})

	t.Run("parses API keys with whitespace", func(t *testing.T) {
		os.Clearenv()
		_ = os.Setenv("API_KEYS", " key1 , key2 , key3 ")
		defer os.Clearenv()

		cfg := Load()

		assert.True(t, cfg.Auth.APIKeys["key1"])
		assert.True(t, cfg.Auth.APIKeys["key2"])
		assert.True(t, cfg.Auth.APIKeys["key3"])
	})

	t.Run("returns nil for empty API keys", func(t *testing.T) {
		os.Clearenv()

		cfg := Load()

		assert.Nil(t, cfg.Auth.APIKeys)
	})

	t.Run("includes default CORS origins", func(t *testing.T) {
		os.Clearenv()

		cfg := Load()

		assert.Contains(t, cfg.Server.CORSOrigins, "http://localhost:3000")
	})

	t.Run("appends configured CORS origins to defaults", func(t *testing.T) {
		os.Clearenv()
		_ = os.Setenv("CORS_ORIGINS", "https://shop.example.com, https://admin.example.com")
		defer os.Clearenv()

		cfg := Load()

		assert.Contains(t, cfg.Server.CORSOrigins, "http://localhost:3000")
		assert.Contains(t, cfg.Server.CORSOrigins, "https://shop.example.com")
		assert.Contains(t, cfg.Server.CORSOrigins, "https://admin.example.com")
	})

	t.Run("loads database configuration", func(t *testing.T) {
		os.Clearenv()
		_ = os.Setenv("MONGODB_ENABLED", "true")
		_ = os.Setenv("MONGODB_URI", "mongodb://db:27017")
		_ = os.Setenv("MONGODB_DATABASE", "engraving_test")
		_ = os.Setenv("MONGODB_LOGS_TTL", "168h")
		_ = os.Setenv("CIRCUIT_BREAKER_FAILURE_THRESHOLD", "3")
		defer os.Clearenv()

		cfg := Load()

		assert.True(t, cfg.Database.Enabled)
		assert.Equal(t, "mongodb://db:27017", cfg.Database.URI)
		assert.Equal(t, "engraving_test", cfg.Database.DatabaseName)
		assert.Equal(t, 168*time.Hour, cfg.Database.LogsTTL)
		assert.Equal(t, 3, cfg.Database.CircuitBreakerFailureThreshold)
	})
}
