// Package app provides service initialization.
package app

import (
	"github.com/rs/zerolog/log"

	"github.com/guttosm/engraving-service/config"
	"github.com/guttosm/engraving-service/internal/canvas"
	"github.com/guttosm/engraving-service/internal/client"
	"github.com/guttosm/engraving-service/internal/middleware"
	"github.com/guttosm/engraving-service/internal/service"
)

// ServiceComponents holds business services and external service clients.
type ServiceComponents struct {
	Sessions   *service.SessionStore
	Catalog    service.Catalog
	Aggregator service.PricingAggregator
	Editor     service.Editor
	Checkout   service.CheckoutService

	TiersService service.PriceTiersService
	TierCache    *service.CachedTierProvider

	PricingClient    *client.HTTPPricingClient
	CartClient       *client.HTTPCartClient
	GenerativeClient *client.HTTPGenerativeClient
}

// InitializeServices initializes business logic services and the clients for
// the external pricing, cart and generative services.
func InitializeServices(cfg config.Config, dbComponents *DatabaseComponents) *ServiceComponents {
	components := &ServiceComponents{
		Sessions: service.NewSessionStore(cfg.Session.TTL),
	}

	// Product catalog, from file when configured
	var catalogOpts []service.CatalogOption
	if cfg.Session.CatalogFile != "" {
		catalogOpts = append(catalogOpts, service.WithCatalogFile(cfg.Session.CatalogFile))
	}
	catalog, err := service.NewCatalogService(catalogOpts...)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to load catalog file - using built-in catalog")
		catalog, _ = service.NewCatalogService()
	}
	components.Catalog = catalog

	// Buffered audit log writer, when request logs are persisted
	if dbComponents != nil && dbComponents.LoggingService != nil {
		middleware.InitAsyncLogger(dbComponents.LoggingService, middleware.DefaultAsyncLoggerConfig())
	}

	// Price tiers, backed by MongoDB when available
	if dbComponents != nil && dbComponents.TiersRepo != nil {
		components.TiersService = service.NewPriceTiersService(dbComponents.TiersRepo)
		components.TierCache = service.NewCachedTierProvider(components.TiersService, cfg.Pricing.TierCacheTTL)
	}

	var pricingOpts []service.PricingOption
	if components.TierCache != nil {
		pricingOpts = append(pricingOpts, service.WithTierProvider(components.TierCache))
	}
	components.Aggregator = service.NewPricingAggregatorService(pricingOpts...)

	// External service clients
	components.PricingClient = client.NewHTTPPricingClient(cfg.Services.PricingURL, cfg.Services.PricingAPIKey)
	components.CartClient = client.NewHTTPCartClient(cfg.Services.CartURL, cfg.Services.CartAPIKey)
	if cfg.Services.GenerativeURL != "" {
		components.GenerativeClient = client.NewHTTPGenerativeClient(cfg.Services.GenerativeURL, cfg.Services.GenerativeAPIKey)
	}

	// Editor and checkout
	components.Editor = service.NewEditorService(
		components.Sessions,
		components.Catalog,
		components.Aggregator,
		components.PricingClient,
		service.WithUploadLimit(cfg.Session.MaxUploadBytes),
	)
	components.Checkout = service.NewCheckoutService(
		components.Sessions,
		components.Aggregator,
		canvas.NewSVGRenderer(),
		components.CartClient,
		service.WithFeeVariants(cfg.Pricing.TextFeeVariantID, cfg.Pricing.ImageFeeVariantID),
	)

	return components
}
