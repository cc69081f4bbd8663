package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/guttosm/engraving-service/internal/domain/model"
	"github.com/guttosm/engraving-service/internal/repository"
)

// ErrRepositoryNotConfigured is returned when the repository is not configured.
var ErrRepositoryNotConfigured = errors.New("repository not configured")

// ErrInvalidTiers is returned when a tier table fails validation.
var ErrInvalidTiers = errors.New("invalid price tiers")

// PriceTiersService provides price tier configuration operations.
type PriceTiersService interface {
	GetActive(ctx context.Context) (*repository.PriceTierConfig, error)
	Create(ctx context.Context, tiers []model.PriceTier, createdBy string) (*repository.PriceTierConfig, error)
	Update(ctx context.Context, id primitive.ObjectID, tiers []model.PriceTier, updatedBy string) (*repository.PriceTierConfig, error)
	List(ctx context.Context, limit int) ([]repository.PriceTierConfig, error)
}

// PriceTiersServiceImpl implements PriceTiersService.
type PriceTiersServiceImpl struct {
	tiersRepo repository.PriceTiersRepositoryInterface
}

// NewPriceTiersService creates a new price tiers service.
func NewPriceTiersService(tiersRepo repository.PriceTiersRepositoryInterface) PriceTiersService {
	if tiersRepo == nil {
		return &PriceTiersServiceImpl{}
	}
	return &PriceTiersServiceImpl{
		tiersRepo: tiersRepo,
	}
}

func (s *PriceTiersServiceImpl) GetActive(ctx context.Context) (*repository.PriceTierConfig, error) {
	if s.tiersRepo == nil {
		return nil, ErrRepositoryNotConfigured
	}
	return s.tiersRepo.GetActive(ctx)
}

func (s *PriceTiersServiceImpl) Create(ctx context.Context, tiers []model.PriceTier, createdBy string) (*repository.PriceTierConfig, error) {
	if s.tiersRepo == nil {
		return nil, ErrRepositoryNotConfigured
	}
	if err := ValidateTiers(tiers); err != nil {
		return nil, err
	}
	return s.tiersRepo.Create(ctx, tiers, createdBy)
}

func (s *PriceTiersServiceImpl) Update(ctx context.Context, id primitive.ObjectID, tiers []model.PriceTier, updatedBy string) (*repository.PriceTierConfig, error) {
	if s.tiersRepo == nil {
		return nil, ErrRepositoryNotConfigured
	}
	if err := ValidateTiers(tiers); err != nil {
		return nil, err
	}
	return s.tiersRepo.Update(ctx, id, tiers, updatedBy)
}

func (s *PriceTiersServiceImpl) List(ctx context.Context, limit int) ([]repository.PriceTierConfig, error) {
	if s.tiersRepo == nil {
		return nil, ErrRepositoryNotConfigured
	}
	return s.tiersRepo.List(ctx, limit)
}

// ValidateTiers checks that a tier table is usable for pricing: non-empty,
// positive ranges and prices, contiguous coverage starting at one character,
// and no overlaps.
func ValidateTiers(tiers []model.PriceTier) error {
	if len(tiers) == 0 {
		return fmt.Errorf("%w: empty table", ErrInvalidTiers)
	}

	sorted := append([]model.PriceTier(nil), tiers...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].MinChars < sorted[j].MinChars })

	if sorted[0].MinChars != 1 {
		return fmt.Errorf("%w: first tier must start at 1 character", ErrInvalidTiers)
	}

	prev := 0
	for _, t := range sorted {
		if t.MinChars > t.MaxChars {
			return fmt.Errorf("%w: tier %d-%d has inverted range", ErrInvalidTiers, t.MinChars, t.MaxChars)
		}
		if t.Price <= 0 {
			return fmt.Errorf("%w: tier %d-%d has non-positive price", ErrInvalidTiers, t.MinChars, t.MaxChars)
		}
		if t.MinChars != prev+1 {
			return fmt.Errorf("%w: gap or overlap before tier %d-%d", ErrInvalidTiers, t.MinChars, t.MaxChars)
		}
		prev = t.MaxChars
	}

	return nil
}
