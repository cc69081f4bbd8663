//go:build !integration

package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/guttosm/engraving-service/config"
	"github.com/guttosm/engraving-service/internal/domain/model"
	"github.com/guttosm/engraving-service/internal/repository"
)

// stubTiersRepo is a minimal in-memory tiers repository for wiring tests.
type stubTiersRepo struct {
	active *repository.PriceTierConfig
}

func (s *stubTiersRepo) GetActive(ctx context.Context) (*repository.PriceTierConfig, error) {
	return s.active, nil
}

func (s *stubTiersRepo) Create(ctx context.Context, tiers []model.PriceTier, createdBy string) (*repository.PriceTierConfig, error) {
	s.active = &repository.PriceTierConfig{
		ID:        primitive.NewObjectID(),
		Tiers:     tiers,
		Active:    true,
		Version:   1,
		CreatedBy: createdBy,
	}
	return s.active, nil
}

func (s *stubTiersRepo) Update(ctx context.Context, id primitive.ObjectID, tiers []model.PriceTier, updatedBy string) (*repository.PriceTierConfig, error) {
	s.active.Tiers = tiers
	s.active.Version++
	return s.active, nil
}

func (s *stubTiersRepo) List(ctx context.Context, limit int) ([]repository.PriceTierConfig, error) {
	if s.active == nil {
		return nil, nil
	}
	return []repository.PriceTierConfig{*s.active}, nil
}

func TestInitializeServices(t *testing.T) {
	tests := []struct {
		name         string
		cfg          config.Config
		dbComponents *DatabaseComponents
		validate     func(*testing.T, *ServiceComponents)
	}{
		{
			name: "creates services without database",
			cfg: config.Config{
				Session: config.SessionConfig{
					TTL: time.Hour,
				},
				Services: config.ServicesConfig{
					PricingURL: "http://localhost:8081",
					CartURL:    "http://localhost:8082",
				},
			},
			dbComponents: nil,
			validate: func(t *testing.T, components *ServiceComponents) {
				assert.NotNil(t, components.Sessions)
				assert.NotNil(t, components.Catalog)
				assert.NotNil(t, components.Aggregator)
				assert.NotNil(t, components.Editor)
				assert.NotNil(t, components.Checkout)
				assert.NotNil(t, components.PricingClient)
				assert.NotNil(t, components.CartClient)
				assert.Nil(t, components.GenerativeClient)
				assert.Nil(t, components.TiersService)
				assert.Nil(t, components.TierCache)
			},
		},
		{
			name: "creates generative client when configured",
			cfg: config.Config{
				Session: config.SessionConfig{
					TTL: time.Hour,
				},
				Services: config.ServicesConfig{
					PricingURL:    "http://localhost:8081",
					CartURL:       "http://localhost:8082",
					GenerativeURL: "http://localhost:8083",
				},
			},
			dbComponents: nil,
			validate: func(t *testing.T, components *ServiceComponents) {
				assert.NotNil(t, components.GenerativeClient)
			},
		},
		{
			name: "wires tier service when database is available",
			cfg: config.Config{
				Session: config.SessionConfig{
					TTL: time.Hour,
				},
				Pricing: config.PricingConfig{
					TierCacheTTL: 5 * time.Minute,
				},
				Services: config.ServicesConfig{
					PricingURL: "http://localhost:8081",
					CartURL:    "http://localhost:8082",
				},
			},
			dbComponents: &DatabaseComponents{
				TiersRepo: &stubTiersRepo{},
			},
			validate: func(t *testing.T, components *ServiceComponents) {
				assert.NotNil(t, components.TiersService)
				assert.NotNil(t, components.TierCache)
			},
		},
		{
			name: "falls back to built-in catalog on bad catalog file",
			cfg: config.Config{
				Session: config.SessionConfig{
					TTL:         time.Hour,
					CatalogFile: "/nonexistent/catalog.json",
				},
				Services: config.ServicesConfig{
					PricingURL: "http://localhost:8081",
					CartURL:    "http://localhost:8082",
				},
			},
			dbComponents: nil,
			validate: func(t *testing.T, components *ServiceComponents) {
				assert.NotNil(t, components.Catalog)
				assert.NotEmpty(t, components.Catalog.Products())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			components := InitializeServices(tt.cfg, tt.dbComponents)
			defer components.Sessions.Stop()
			if tt.validate != nil {
				tt.validate(t, components)
			}
		})
	}
}

func TestInitializeServices_EditorWorks(t *testing.T) {
	components := InitializeServices(config.Config{
		Session: config.SessionConfig{
			TTL: time.Hour,
		},
		Services: config.ServicesConfig{
			PricingURL: "http://localhost:8081",
			CartURL:    "http://localhost:8082",
		},
	}, nil)
	defer components.Sessions.Stop()

	state, err := components.Editor.CreateSession(context.Background(), "tumbler-20oz", "")
	assert.NoError(t, err)
	assert.NotEmpty(t, state.ID)
	assert.Len(t, state.Zones, 2)
}
