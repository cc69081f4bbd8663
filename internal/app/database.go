// Package app provides database initialization and setup.
package app

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/guttosm/engraving-service/config"
	"github.com/guttosm/engraving-service/internal/circuitbreaker"
	"github.com/guttosm/engraving-service/internal/domain/model"
	"github.com/guttosm/engraving-service/internal/repository"
	"github.com/guttosm/engraving-service/internal/service"
)

// DatabaseComponents holds database-related components.
type DatabaseComponents struct {
	TiersRepo           repository.PriceTiersRepositoryInterface
	LoggingService      service.LoggingService
	TiersCircuitBreaker *circuitbreaker.CircuitBreaker
	LogsCircuitBreaker  *circuitbreaker.CircuitBreaker
}

// InitializeDatabase initializes MongoDB connection and creates required repositories and services.
// Returns nil if database is disabled or connection fails.
func InitializeDatabase(cfg config.DatabaseConfig) *DatabaseComponents {
	if !cfg.Enabled {
		return nil
	}

	db, err := repository.NewMongoDB(cfg.URI, cfg.DatabaseName)
	if err != nil {
		log.Error().Err(err).Msg("Failed to connect to MongoDB - continuing without database")
		return nil
	}

	log.Info().Msg("Connected to MongoDB")

	// Set TTL for logs
	ttlDays := int(cfg.LogsTTL.Hours() / 24)
	if err := db.SetLogsTTL(context.Background(), ttlDays); err != nil {
		log.Warn().Err(err).Msg("Failed to set logs TTL index (may already exist)")
	}

	// Initialize circuit breakers
	tiersCB := circuitbreaker.New(circuitbreaker.Config{
		FailureThreshold: cfg.CircuitBreakerFailureThreshold,
		SuccessThreshold: cfg.CircuitBreakerSuccessThreshold,
		Timeout:          cfg.CircuitBreakerTimeout,
		Name:             "mongodb-price-tiers",
	})

	logsCB := circuitbreaker.New(circuitbreaker.Config{
		FailureThreshold: cfg.CircuitBreakerFailureThreshold,
		SuccessThreshold: cfg.CircuitBreakerSuccessThreshold,
		Timeout:          cfg.CircuitBreakerTimeout,
		Name:             "mongodb-logs",
	})

	// Initialize repositories
	logsRepo := repository.NewLogsRepository(db)
	logsRepoWithCB := repository.NewLogsRepositoryWithCircuitBreaker(logsRepo, logsCB)
	loggingService := service.NewLoggingService(logsRepoWithCB)

	tiersRepo := repository.NewPriceTiersRepository(db)
	tiersRepoWithCB := repository.NewPriceTiersRepositoryWithCircuitBreaker(tiersRepo, tiersCB)

	// Initialize default price tiers if none exist
	if err := initializeDefaultTiers(tiersRepoWithCB); err != nil {
		log.Warn().Err(err).Msg("Failed to initialize default price tiers")
	}

	return &DatabaseComponents{
		TiersRepo:           tiersRepoWithCB,
		LoggingService:      loggingService,
		TiersCircuitBreaker: tiersCB,
		LogsCircuitBreaker:  logsCB,
	}
}

// initializeDefaultTiers creates the default tier configuration if none exists.
func initializeDefaultTiers(repo repository.PriceTiersRepositoryInterface) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	active, err := repo.GetActive(ctx)
	if err != nil {
		return err
	}

	if active == nil {
		// No active config, create default
		_, err := repo.Create(ctx, model.DefaultPriceTiers, "system")
		if err != nil {
			return err
		}
		log.Info().Int("tiers", len(model.DefaultPriceTiers)).Msg("Created default price tiers")
	}

	return nil
}
