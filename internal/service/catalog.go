package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/guttosm/engraving-service/internal/domain/model"
)

var (
	// ErrUnknownProduct is returned when a product id is not in the catalog.
	ErrUnknownProduct = errors.New("unknown product")
	// ErrUnknownVariation is returned when a variation id is not in the
	// product, or the variation is not customizable.
	ErrUnknownVariation = errors.New("unknown product variation")
)

// Catalog is the static, read-only product/variation/zone/material source.
type Catalog interface {
	Products() []model.Product
	Product(id string) (model.Product, bool)
	// ResolveVariation returns the variation and its material profile.
	ResolveVariation(productID, variationID string) (model.ProductVariation, model.Material, error)
	// BasePrice returns the live base price keyed by variant id.
	BasePrice(variationID string) (float64, bool)
}

// CatalogOption configures a CatalogService.
type CatalogOption func(*CatalogService)

// WithCatalogFile loads catalog data from a JSON file instead of the
// built-in defaults. Load errors fall back to the defaults.
func WithCatalogFile(path string) CatalogOption {
	return func(s *CatalogService) {
		s.filePath = path
	}
}

// catalogData is the on-disk catalog document shape.
type catalogData struct {
	Products  []model.Product  `json:"products"`
	Materials []model.Material `json:"materials"`
}

// CatalogService implements Catalog from a JSON file or built-in defaults.
type CatalogService struct {
	filePath  string
	products  []model.Product
	materials map[string]model.Material
}

// NewCatalogService creates a catalog service.
func NewCatalogService(opts ...CatalogOption) (*CatalogService, error) {
	s := &CatalogService{}
	for _, opt := range opts {
		opt(s)
	}

	data := defaultCatalog()
	if s.filePath != "" {
		loaded, err := loadCatalogFile(s.filePath)
		if err != nil {
			return nil, fmt.Errorf("load catalog %s: %w", s.filePath, err)
		}
		data = loaded
	}

	s.products = data.Products
	s.materials = make(map[string]model.Material, len(data.Materials))
	for _, m := range data.Materials {
		s.materials[m.ID] = m
	}
	return s, nil
}

// Products returns all catalog products.
func (s *CatalogService) Products() []model.Product {
	return s.products
}

// Product returns the product with the given id.
func (s *CatalogService) Product(id string) (model.Product, bool) {
	for _, p := range s.products {
		if p.ID == id {
			return p, true
		}
	}
	return model.Product{}, false
}

// ResolveVariation implements Catalog. An empty variation id resolves to
// the product's first variation, which is the storefront default.
func (s *CatalogService) ResolveVariation(productID, variationID string) (model.ProductVariation, model.Material, error) {
	product, ok := s.Product(productID)
	if !ok {
		return model.ProductVariation{}, model.Material{}, fmt.Errorf("%w: %s", ErrUnknownProduct, productID)
	}
	var variation model.ProductVariation
	if variationID == "" && len(product.Variations) > 0 {
		variation = product.Variations[0]
	} else {
		variation, ok = product.Variation(variationID)
		if !ok {
			return model.ProductVariation{}, model.Material{}, fmt.Errorf("%w: %s", ErrUnknownVariation, variationID)
		}
	}
	material, ok := s.materials[variation.MaterialID]
	if !ok {
		material = defaultMaterial()
	}
	return variation, material, nil
}

// BasePrice implements Catalog.
func (s *CatalogService) BasePrice(variationID string) (float64, bool) {
	for _, p := range s.products {
		if v, ok := p.Variation(variationID); ok {
			return v.BasePrice, true
		}
	}
	return 0, false
}

// loadCatalogFile reads and parses a catalog JSON document.
func loadCatalogFile(path string) (catalogData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return catalogData{}, err
	}
	var data catalogData
	if err := json.Unmarshal(raw, &data); err != nil {
		return catalogData{}, err
	}
	if len(data.Products) == 0 {
		return catalogData{}, errors.New("catalog has no products")
	}
	return data, nil
}

// defaultMaterial is the fallback profile when a variation references an
// unknown material id.
func defaultMaterial() model.Material {
	return model.Material{
		ID:      "engraved-default",
		Name:    "Engraved",
		Fill:    "#4a4a4a",
		Opacity: 0.9,
	}
}

// defaultCatalog provides a small built-in catalog for development and
// tests when no catalog file is configured.
func defaultCatalog() catalogData {
	brassShadow := &model.Shadow{Color: "#2b1d0e", Blur: 2, OffsetX: 1, OffsetY: 1}
	steelShadow := &model.Shadow{Color: "#1a1a1a", Blur: 1.5, OffsetX: 0.5, OffsetY: 1}

	return catalogData{
		Materials: []model.Material{
			{ID: "brass", Name: "Brass", Fill: "#8a6d1d", Opacity: 0.95, Shadow: brassShadow, Filters: []string{"sepia", "contrast"}},
			{ID: "steel", Name: "Stainless Steel", Fill: "#5c6670", Opacity: 0.9, Shadow: steelShadow, Filters: []string{"grayscale"}},
		},
		Products: []model.Product{
			{
				ID:    "tumbler-20oz",
				Title: "20oz Engraved Tumbler",
				Variations: []model.ProductVariation{
					{
						ID:         "tumbler-20oz-brass",
						Name:       "Brass",
						BasePrice:  20,
						MaterialID: "brass",
						MockupURI:  "/mockups/tumbler-brass.png",
						MockupSize: model.Rect{Width: 800, Height: 1000},
						Zones: []model.EngravingZone{
							{ID: "front", Name: "Front", Bounds: model.Rect{X: 220, Y: 300, Width: 360, Height: 280}},
							{ID: "back", Name: "Back", Bounds: model.Rect{X: 220, Y: 640, Width: 360, Height: 200}},
						},
					},
					{
						ID:         "tumbler-20oz-steel",
						Name:       "Stainless Steel",
						BasePrice:  24,
						MaterialID: "steel",
						MockupURI:  "/mockups/tumbler-steel.png",
						MockupSize: model.Rect{Width: 800, Height: 1000},
						Zones: []model.EngravingZone{
							{ID: "front", Name: "Front", Bounds: model.Rect{X: 220, Y: 300, Width: 360, Height: 280}},
							{ID: "back", Name: "Back", Bounds: model.Rect{X: 220, Y: 640, Width: 360, Height: 200}},
						},
					},
				},
			},
			{
				ID:    "plaque-walnut",
				Title: "Walnut Desk Plaque",
				Variations: []model.ProductVariation{
					{
						ID:         "plaque-walnut-std",
						Name:       "Standard",
						BasePrice:  35,
						MaterialID: "brass",
						MockupURI:  "/mockups/plaque-walnut.png",
						MockupSize: model.Rect{Width: 1200, Height: 800},
						Zones: []model.EngravingZone{
							{ID: "face", Name: "Face", Bounds: model.Rect{X: 150, Y: 150, Width: 900, Height: 500}},
						},
					},
				},
			},
		},
	}
}
