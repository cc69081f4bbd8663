// Package repository provides data access for price tier configurations.
package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/guttosm/engraving-service/internal/domain/model"
)

// PriceTierConfig represents a price tier configuration document. At most
// one configuration is active at a time; creating a new one deactivates
// the previous active configuration.
type PriceTierConfig struct {
	ID        primitive.ObjectID     `bson:"_id,omitempty" json:"id"`
	Tiers     []model.PriceTier      `bson:"tiers" json:"tiers"`
	Active    bool                   `bson:"active" json:"active"`
	Version   int                    `bson:"version" json:"version"`
	CreatedAt time.Time              `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time              `bson:"updated_at" json:"updated_at"`
	CreatedBy string                 `bson:"created_by,omitempty" json:"created_by,omitempty"`
	Metadata  map[string]interface{} `bson:"metadata,omitempty" json:"metadata,omitempty"`
}

// PriceTiersRepository provides methods for price tier operations.
type PriceTiersRepository struct {
	collection *mongo.Collection
}

// NewPriceTiersRepository creates a new price tiers repository.
func NewPriceTiersRepository(db *MongoDB) *PriceTiersRepository {
	return &PriceTiersRepository{
		collection: db.PriceTiers,
	}
}

// GetActive returns the active price tier configuration.
func (r *PriceTiersRepository) GetActive(ctx context.Context) (*PriceTierConfig, error) {
	var config PriceTierConfig
	err := r.collection.FindOne(ctx, bson.M{"active": true}).Decode(&config)
	if err == mongo.ErrNoDocuments {
		return nil, nil // No active config found
	}
	if err != nil {
		return nil, err
	}
	return &config, nil
}

// Create creates a new price tier configuration and activates it.
func (r *PriceTiersRepository) Create(ctx context.Context, tiers []model.PriceTier, createdBy string) (*PriceTierConfig, error) {
	_, err := r.collection.UpdateMany(
		ctx,
		bson.M{"active": true},
		bson.M{"$set": bson.M{"active": false, "updated_at": time.Now()}},
	)
	if err != nil {
		return nil, err
	}

	config := PriceTierConfig{
		ID:        primitive.NewObjectID(),
		Tiers:     tiers,
		Active:    true,
		Version:   1,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
		CreatedBy: createdBy,
		Metadata:  make(map[string]interface{}),
	}

	_, err = r.collection.InsertOne(ctx, config)
	if err != nil {
		return nil, err
	}

	return &config, nil
}

// Update updates an existing price tier configuration.
func (r *PriceTiersRepository) Update(ctx context.Context, id primitive.ObjectID, tiers []model.PriceTier, updatedBy string) (*PriceTierConfig, error) {
	var current PriceTierConfig
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&current)
	if err != nil {
		return nil, err
	}

	update := bson.M{
		"$set": bson.M{
			"tiers":      tiers,
			"updated_at": time.Now(),
			"version":    current.Version + 1,
		},
	}
	if updatedBy != "" {
		if setDoc, ok := update["$set"].(bson.M); ok {
			setDoc["updated_by"] = updatedBy
		}
	}

	var config PriceTierConfig
	err = r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&config)
	if err != nil {
		return nil, err
	}

	return &config, nil
}

// List returns all price tier configurations, newest first.
func (r *PriceTiersRepository) List(ctx context.Context, limit int) ([]PriceTierConfig, error) {
	opts := options.Find().SetSort(bson.M{"created_at": -1})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var configs []PriceTierConfig
	if err := cursor.All(ctx, &configs); err != nil {
		return nil, err
	}

	return configs, nil
}
