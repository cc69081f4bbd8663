// Package repository provides interfaces for repository operations.
package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/guttosm/engraving-service/internal/domain/model"
)

// PriceTiersRepositoryInterface defines the interface for price tier repository operations.
type PriceTiersRepositoryInterface interface {
	GetActive(ctx context.Context) (*PriceTierConfig, error)
	Create(ctx context.Context, tiers []model.PriceTier, createdBy string) (*PriceTierConfig, error)
	Update(ctx context.Context, id primitive.ObjectID, tiers []model.PriceTier, updatedBy string) (*PriceTierConfig, error)
	List(ctx context.Context, limit int) ([]PriceTierConfig, error)
}

// LogsRepositoryInterface defines the interface for logs repository operations.
type LogsRepositoryInterface interface {
	Create(ctx context.Context, entry *LogEntryDocument) error
	CreateMany(ctx context.Context, entries []*LogEntryDocument) error
	Query(ctx context.Context, opts LogQueryOptions) ([]*LogEntryDocument, error)
	Count(ctx context.Context, opts LogQueryOptions) (int64, error)
}
