package http

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/guttosm/engraving-service/internal/client"
	"github.com/guttosm/engraving-service/internal/metrics"
	"github.com/guttosm/engraving-service/internal/middleware"
	"github.com/guttosm/engraving-service/internal/service"
)

// RouterConfig holds router configuration options.
type RouterConfig struct {
	RateLimit         int
	RateWindow        time.Duration
	CheckoutTimeout   time.Duration
	APIKeys           map[string]bool
	EnableAuth        bool
	EnableIdempotency bool
	AdminJWTSecret    string
	CORSOrigins       []string
	SwaggerUser       string
	SwaggerPass       string
	LoggingService    service.LoggingService
	Editor            service.Editor
	Checkout          service.CheckoutService
	Catalog           service.Catalog
	TiersService      service.PriceTiersService
	TierCache         TierCacheInvalidator
	GenerativeClient  client.GenerativeClient
}

// DefaultRouterConfig returns the default router configuration.
func DefaultRouterConfig() RouterConfig {
	return RouterConfig{
		RateLimit:       100,
		RateWindow:      time.Minute,
		CheckoutTimeout: 15 * time.Second,
		EnableAuth:      false,
	}
}

// NewRouter creates and configures the Gin router for the engraving service.
func NewRouter(healthHandler *HealthHandler, cfg RouterConfig) *gin.Engine {
	router := gin.New()

	// Configure global middleware
	configureGlobalMiddleware(router, &cfg)

	// Register infrastructure routes (health, metrics, swagger)
	registerInfrastructureRoutes(router, healthHandler, &cfg)

	// Configure API routes
	api := router.Group("/api")
	configureAPIMiddleware(api, &cfg)

	editorRoutes := NewEditorRoutes(&cfg)
	editorRoutes.RegisterRoutes(api, &cfg)

	return router
}

// configureGlobalMiddleware sets up middleware applied to all routes.
func configureGlobalMiddleware(router *gin.Engine, cfg *RouterConfig) {
	// CORS configuration
	allowedOrigins := cfg.CORSOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	}
	corsConfig := cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Content-Length", "Accept-Encoding", "Accept-Language", "X-CSRF-Token", "Authorization", "accept", "Cache-Control", "X-Requested-With", "X-API-Key", "Idempotency-Key", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           86400,
	}
	router.Use(cors.New(corsConfig))

	// Core middleware stack
	router.Use(
		middleware.RequestID(),
		middleware.Recovery(),
		metrics.PrometheusMiddleware(),
		middleware.Compression(),
		middleware.RequestLogger(cfg.LoggingService),
		middleware.ErrorHandler(),
	)

	// Context setup middleware
	router.Use(func(c *gin.Context) {
		c.Set("logging_service", cfg.LoggingService)
		c.Next()
	})

	// Global rate limiting, keyed per session on editor routes
	if cfg.RateLimit > 0 {
		limiter := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)
		router.Use(limiter.SessionRateLimit())
	}
}

// registerInfrastructureRoutes registers health, metrics, and documentation routes.
func registerInfrastructureRoutes(router *gin.Engine, healthHandler *HealthHandler, cfg *RouterConfig) {
	healthHandler.Register(router)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Swagger with optional basic auth
	if cfg.SwaggerUser != "" && cfg.SwaggerPass != "" {
		authorized := router.Group("/swagger", gin.BasicAuth(gin.Accounts{
			cfg.SwaggerUser: cfg.SwaggerPass,
		}))
		authorized.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	} else {
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}
}

// configureAPIMiddleware sets up middleware for the API group.
func configureAPIMiddleware(api *gin.RouterGroup, cfg *RouterConfig) {
	// API key authentication for storefront clients
	if cfg.EnableAuth && len(cfg.APIKeys) > 0 {
		api.Use(middleware.APIKeyAuth(cfg.APIKeys))
	}

	// Idempotency for mutating requests (checkout double-submits)
	if cfg.EnableIdempotency {
		api.Use(middleware.Idempotency(middleware.DefaultIdempotencyConfig()))
	}
}
