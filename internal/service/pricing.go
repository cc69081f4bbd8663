package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/guttosm/engraving-service/internal/domain/model"
)

// TierProvider supplies the active price tier table.
type TierProvider interface {
	ActiveTiers() []model.PriceTier
}

// PricingAggregator recomputes the derived price from all zone states.
type PricingAggregator interface {
	// Recompute scans every zone's persisted snapshot, sums character
	// counts and cached image fees across all zones, and maps the count
	// through the tier table. Pure with respect to the states; insensitive
	// to which zone is active.
	Recompute(base float64, states map[string]*model.ZoneState) model.PriceDetails
	// TextFee maps an aggregate character count to its tier fee.
	TextFee(count int) (fee float64, tier model.PriceTier, exceeded bool)
}

// PricingOption configures a PricingAggregatorService.
type PricingOption func(*PricingAggregatorService)

// WithTierProvider sets the source of the active tier table.
func WithTierProvider(p TierProvider) PricingOption {
	return func(s *PricingAggregatorService) {
		if p != nil {
			s.tiers = p
		}
	}
}

// PricingAggregatorService implements PricingAggregator over a tier
// provider, falling back to the built-in default tiers.
type PricingAggregatorService struct {
	tiers TierProvider
}

// NewPricingAggregatorService creates a new pricing aggregator.
func NewPricingAggregatorService(opts ...PricingOption) *PricingAggregatorService {
	s := &PricingAggregatorService{tiers: staticTiers(model.DefaultPriceTiers)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Recompute implements PricingAggregator.
func (s *PricingAggregatorService) Recompute(base float64, states map[string]*model.ZoneState) model.PriceDetails {
	var charCount int
	var imageFees float64

	for zoneID, state := range states {
		zc, err := model.DecodeSnapshot(state.Serialized)
		if err != nil {
			// A corrupt snapshot must not zero the price silently.
			log.Error().Err(err).Str("zone_id", zoneID).Msg("Failed to decode zone snapshot for pricing")
			continue
		}
		for i := range zc.Objects {
			obj := &zc.Objects[i]
			if !obj.UserAdded {
				continue
			}
			charCount += obj.CharacterCount()
			if obj.Kind.IsImageLike() {
				imageFees += obj.Price
			}
		}
	}

	textFee, _, exceeded := s.TextFee(charCount)
	return model.PriceDetails{
		Base:                   base,
		Text:                   textFee,
		Images:                 imageFees,
		Total:                  base + textFee + imageFees,
		CharacterCount:         charCount,
		CharacterLimitExceeded: exceeded,
	}
}

// TextFee implements PricingAggregator. Counts above the top tier's
// maximum still charge the top tier's price; exceeded flags the overflow
// so callers can warn instead of silently under-pricing.
func (s *PricingAggregatorService) TextFee(count int) (float64, model.PriceTier, bool) {
	if count <= 0 {
		return 0, model.PriceTier{}, false
	}
	tiers := sortedTiers(s.tiers.ActiveTiers())
	if len(tiers) == 0 {
		return 0, model.PriceTier{}, false
	}
	for _, t := range tiers {
		if t.Contains(count) {
			return t.Price, t, false
		}
	}
	top := tiers[len(tiers)-1]
	if count > top.MaxChars {
		return top.Price, top, true
	}
	return 0, model.PriceTier{}, false
}

// sortedTiers returns the tiers in ascending range order.
func sortedTiers(tiers []model.PriceTier) []model.PriceTier {
	out := append([]model.PriceTier(nil), tiers...)
	sort.Slice(out, func(i, j int) bool { return out[i].MinChars < out[j].MinChars })
	return out
}

// staticTiers adapts a fixed tier slice to TierProvider.
type staticTiers []model.PriceTier

func (t staticTiers) ActiveTiers() []model.PriceTier {
	return t
}

// CachedTierProvider reads the active tier table from the tiers service
// with a short TTL cache in front, falling back to the built-in defaults
// when the service is unavailable.
type CachedTierProvider struct {
	tiersService PriceTiersService
	ttl          time.Duration

	mu        sync.Mutex
	cached    []model.PriceTier
	expiresAt time.Time
}

// NewCachedTierProvider creates a tier provider over the tiers service.
func NewCachedTierProvider(tiersService PriceTiersService, ttl time.Duration) *CachedTierProvider {
	return &CachedTierProvider{tiersService: tiersService, ttl: ttl}
}

// ActiveTiers implements TierProvider.
func (p *CachedTierProvider) ActiveTiers() []model.PriceTier {
	p.mu.Lock()
	defer p.mu.Unlock()

	if time.Now().Before(p.expiresAt) && p.cached != nil {
		return p.cached
	}

	tiers := p.fetch()
	if len(tiers) == 0 {
		tiers = model.DefaultPriceTiers
	}
	p.cached = tiers
	p.expiresAt = time.Now().Add(p.ttl)
	return tiers
}

// Invalidate clears the cache; call after tier updates.
func (p *CachedTierProvider) Invalidate() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cached = nil
	p.expiresAt = time.Time{}
}

// fetch loads the active configuration from the tiers service.
func (p *CachedTierProvider) fetch() []model.PriceTier {
	if p.tiersService == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	cfg, err := p.tiersService.GetActive(ctx)
	if err != nil || cfg == nil {
		return nil
	}
	return cfg.Tiers
}
