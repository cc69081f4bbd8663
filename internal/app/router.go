// Package app provides router configuration.
package app

import (
	"github.com/guttosm/engraving-service/config"
	"github.com/guttosm/engraving-service/internal/client"
	"github.com/guttosm/engraving-service/internal/http"
	"github.com/guttosm/engraving-service/internal/service"
)

// RouterComponents holds router-related components.
type RouterComponents struct {
	HealthHandler *http.HealthHandler
	Config        http.RouterConfig
}

// InitializeRouter initializes HTTP handlers and router configuration.
func InitializeRouter(
	services *ServiceComponents,
	dbComponents *DatabaseComponents,
	cfg config.Config,
) *RouterComponents {
	var loggingService service.LoggingService
	if dbComponents != nil {
		loggingService = dbComponents.LoggingService
	}

	healthHandler := http.NewHealthHandler()

	// Register circuit breakers for health monitoring
	if dbComponents != nil {
		if dbComponents.TiersCircuitBreaker != nil {
			healthHandler.RegisterCircuitBreaker("mongodb_price_tiers", dbComponents.TiersCircuitBreaker)
		}
		if dbComponents.LogsCircuitBreaker != nil {
			healthHandler.RegisterCircuitBreaker("mongodb_logs", dbComponents.LogsCircuitBreaker)
		}
	}
	if services.PricingClient != nil {
		healthHandler.RegisterCircuitBreaker("pricing_service", services.PricingClient.Breaker())
	}
	if services.CartClient != nil {
		healthHandler.RegisterCircuitBreaker("cart_service", services.CartClient.Breaker())
	}
	if services.GenerativeClient != nil {
		healthHandler.RegisterCircuitBreaker("generative_service", services.GenerativeClient.Breaker())
	}

	var tierCache http.TierCacheInvalidator
	if services.TierCache != nil {
		tierCache = services.TierCache
	}

	var generative client.GenerativeClient
	if services.GenerativeClient != nil {
		generative = services.GenerativeClient
	}

	routerCfg := http.RouterConfig{
		RateLimit:         cfg.Server.RateLimit,
		RateWindow:        cfg.Server.RateWindow,
		CheckoutTimeout:   cfg.Server.CheckoutTimeout,
		EnableAuth:        cfg.Auth.Enabled,
		EnableIdempotency: cfg.Server.EnableIdempotency,
		APIKeys:           cfg.Auth.APIKeys,
		AdminJWTSecret:    cfg.Auth.AdminJWTSecret,
		CORSOrigins:       cfg.Server.CORSOrigins,
		SwaggerUser:       cfg.Server.SwaggerUser,
		SwaggerPass:       cfg.Server.SwaggerPass,
		LoggingService:    loggingService,
		Editor:            services.Editor,
		Checkout:          services.Checkout,
		Catalog:           services.Catalog,
		TiersService:      services.TiersService,
		TierCache:         tierCache,
		GenerativeClient:  generative,
	}

	return &RouterComponents{
		HealthHandler: healthHandler,
		Config:        routerCfg,
	}
}
