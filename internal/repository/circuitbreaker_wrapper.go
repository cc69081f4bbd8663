// Package repository provides circuit breaker wrappers for MongoDB operations.
package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/guttosm/engraving-service/internal/circuitbreaker"
	"github.com/guttosm/engraving-service/internal/domain/model"
)

// PriceTiersRepositoryWithCircuitBreaker wraps PriceTiersRepository with circuit breaker protection.
type PriceTiersRepositoryWithCircuitBreaker struct {
	repo           *PriceTiersRepository
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewPriceTiersRepositoryWithCircuitBreaker creates a new repository wrapper with circuit breaker.
func NewPriceTiersRepositoryWithCircuitBreaker(repo *PriceTiersRepository, cb *circuitbreaker.CircuitBreaker) *PriceTiersRepositoryWithCircuitBreaker {
	return &PriceTiersRepositoryWithCircuitBreaker{
		repo:           repo,
		circuitBreaker: cb,
	}
}

// GetActive returns the active price tier configuration with circuit breaker protection.
func (r *PriceTiersRepositoryWithCircuitBreaker) GetActive(ctx context.Context) (*PriceTierConfig, error) {
	var result *PriceTierConfig
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.GetActive(ctx)
		return cbErr
	})
	if err == circuitbreaker.ErrCircuitOpen {
		// Circuit is open - return nil to use the default tier table
		return nil, nil
	}
	return result, err
}

// Create creates a new price tier configuration with circuit breaker protection.
func (r *PriceTiersRepositoryWithCircuitBreaker) Create(ctx context.Context, tiers []model.PriceTier, createdBy string) (*PriceTierConfig, error) {
	var result *PriceTierConfig
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.Create(ctx, tiers, createdBy)
		return cbErr
	})
	return result, err
}

// Update updates an existing price tier configuration with circuit breaker protection.
func (r *PriceTiersRepositoryWithCircuitBreaker) Update(ctx context.Context, id primitive.ObjectID, tiers []model.PriceTier, updatedBy string) (*PriceTierConfig, error) {
	var result *PriceTierConfig
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.Update(ctx, id, tiers, updatedBy)
		return cbErr
	})
	return result, err
}

// List returns all price tier configurations with circuit breaker protection.
func (r *PriceTiersRepositoryWithCircuitBreaker) List(ctx context.Context, limit int) ([]PriceTierConfig, error) {
	var result []PriceTierConfig
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.List(ctx, limit)
		return cbErr
	})
	return result, err
}

// GetCircuitBreaker returns the underlying circuit breaker for monitoring.
func (r *PriceTiersRepositoryWithCircuitBreaker) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.circuitBreaker
}

// LogsRepositoryWithCircuitBreaker wraps LogsRepository with circuit breaker protection.
type LogsRepositoryWithCircuitBreaker struct {
	repo           *LogsRepository
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewLogsRepositoryWithCircuitBreaker creates a new repository wrapper with circuit breaker.
func NewLogsRepositoryWithCircuitBreaker(repo *LogsRepository, cb *circuitbreaker.CircuitBreaker) *LogsRepositoryWithCircuitBreaker {
	return &LogsRepositoryWithCircuitBreaker{
		repo:           repo,
		circuitBreaker: cb,
	}
}

// Create stores a single log entry with circuit breaker protection.
// If circuit is open, silently fails (logging is non-critical).
func (r *LogsRepositoryWithCircuitBreaker) Create(ctx context.Context, entry *LogEntryDocument) error {
	err := r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.Create(ctx, entry)
	})
	if err == circuitbreaker.ErrCircuitOpen {
		// Circuit is open - silently fail (logging is non-critical)
		return nil
	}
	return err
}

// CreateMany stores multiple log entries with circuit breaker protection.
// If circuit is open, silently fails (logging is non-critical).
func (r *LogsRepositoryWithCircuitBreaker) CreateMany(ctx context.Context, entries []*LogEntryDocument) error {
	err := r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.CreateMany(ctx, entries)
	})
	if err == circuitbreaker.ErrCircuitOpen {
		// Circuit is open - silently fail (logging is non-critical)
		return nil
	}
	return err
}

// Query retrieves log entries with circuit breaker protection.
func (r *LogsRepositoryWithCircuitBreaker) Query(ctx context.Context, opts LogQueryOptions) ([]*LogEntryDocument, error) {
	var result []*LogEntryDocument
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.Query(ctx, opts)
		return cbErr
	})
	return result, err
}

// Count returns the count of log entries with circuit breaker protection.
func (r *LogsRepositoryWithCircuitBreaker) Count(ctx context.Context, opts LogQueryOptions) (int64, error) {
	var result int64
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.Count(ctx, opts)
		return cbErr
	})
	return result, err
}

// GetCircuitBreaker returns the underlying circuit breaker for monitoring.
func (r *LogsRepositoryWithCircuitBreaker) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.circuitBreaker
}
