package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/guttosm/engraving-service/internal/canvas"
	"github.com/guttosm/engraving-service/internal/client"
	"github.com/guttosm/engraving-service/internal/domain/model"
	"github.com/guttosm/engraving-service/internal/metrics"
)

// ErrEmptyDesign is returned when checkout is attempted on a session with
// no user content in any zone.
var ErrEmptyDesign = errors.New("design has no content")

// Fallback fee merchandise ids when none are configured.
const (
	defaultTextFeeVariantID  = "fee-text-engraving"
	defaultImageFeeVariantID = "fee-image-engraving"
)

// CheckoutService turns a finished design into cart line items on the
// external cart service.
type CheckoutService interface {
	// Checkout bundles the session's design and adds the bundle's lines to
	// the cart. An empty cartID creates a new cart first.
	Checkout(ctx context.Context, sessionID, cartID string) (*model.Cart, error)
}

// CheckoutOption configures a CheckoutServiceImpl.
type CheckoutOption func(*CheckoutServiceImpl)

// WithFeeVariants sets the merchandise ids used for the fee line items.
func WithFeeVariants(textFeeID, imageFeeID string) CheckoutOption {
	return func(s *CheckoutServiceImpl) {
		if textFeeID != "" {
			s.textFeeVariantID = textFeeID
		}
		if imageFeeID != "" {
			s.imageFeeVariantID = imageFeeID
		}
	}
}

// CheckoutServiceImpl implements CheckoutService.
type CheckoutServiceImpl struct {
	sessions          *SessionStore
	aggregator        PricingAggregator
	renderer          canvas.Renderer
	cart              client.CartClient
	textFeeVariantID  string
	imageFeeVariantID string
}

// NewCheckoutService creates a new checkout service.
func NewCheckoutService(
	sessions *SessionStore,
	aggregator PricingAggregator,
	renderer canvas.Renderer,
	cart client.CartClient,
	opts ...CheckoutOption,
) *CheckoutServiceImpl {
	s := &CheckoutServiceImpl{
		sessions:          sessions,
		aggregator:        aggregator,
		renderer:          renderer,
		cart:              cart,
		textFeeVariantID:  defaultTextFeeVariantID,
		imageFeeVariantID: defaultImageFeeVariantID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Checkout implements CheckoutService. The bundle is built under the
// session lock from flushed zone states; the cart calls happen outside it.
func (s *CheckoutServiceImpl) Checkout(ctx context.Context, sessionID, cartID string) (*model.Cart, error) {
	sess, ok := s.sessions.Get(sessionID)
	if !ok {
		return nil, ErrSessionNotFound
	}

	sess.mu.Lock()
	if sess.pricingBusy {
		sess.mu.Unlock()
		metrics.RecordCheckout("pricing_in_flight")
		return nil, ErrPricingInFlight
	}
	states, err := sess.snapshotStates()
	if err != nil {
		sess.mu.Unlock()
		return nil, err
	}
	variation := sess.Variation
	price := s.aggregator.Recompute(variation.BasePrice, states)
	sess.price = price
	sess.mu.Unlock()

	bundle, err := s.BuildCartBundle(variation, price, states)
	if err != nil {
		metrics.RecordCheckout("error")
		return nil, err
	}

	if cartID == "" {
		created, err := s.cart.CreateCart(ctx)
		if err != nil {
			metrics.RecordCheckout("cart_error")
			return nil, err
		}
		cartID = created.ID
	}

	cart, err := s.cart.AddLines(ctx, cartID, bundle.LineItems)
	if err != nil {
		metrics.RecordCheckout("cart_error")
		return nil, err
	}

	metrics.RecordCheckout("success")
	log.Info().
		Str("session_id", sessionID).
		Str("cart_id", cart.ID).
		Str("bundle_id", bundle.ID).
		Int("lines", len(bundle.LineItems)).
		Float64("total", price.Total).
		Msg("Design checked out")
	return cart, nil
}

// BuildCartBundle assembles the checkout bundle from flushed zone states:
// one parent product line carrying the preview and zone list, plus at most
// one text fee line and one image fee line, all sharing a fresh bundle id.
func (s *CheckoutServiceImpl) BuildCartBundle(variation model.ProductVariation, price model.PriceDetails, states map[string]*model.ZoneState) (model.Bundle, error) {
	zoneNames, renders, err := collectZoneContent(variation, states)
	if err != nil {
		return model.Bundle{}, err
	}
	if len(zoneNames) == 0 {
		return model.Bundle{}, ErrEmptyDesign
	}

	preview, err := s.renderer.Compose(variation.MockupURI, variation.MockupSize, renders)
	if err != nil {
		return model.Bundle{}, fmt.Errorf("render preview: %w", err)
	}

	bundleID := uuid.New().String()
	previewURI := "data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString(preview)

	parentAttrs := map[string]string{
		model.AttrBundleID: bundleID,
		model.AttrZones:    strings.Join(zoneNames, ", "),
		model.AttrPreview:  previewURI,
	}
	if price.CharacterLimitExceeded {
		parentAttrs[model.AttrCharacterOverflow] = "true"
	}

	lines := []model.LineItem{{
		MerchandiseID: variation.ID,
		Quantity:      1,
		Attributes:    parentAttrs,
	}}

	if price.Text > 0 {
		_, tier, _ := s.aggregator.TextFee(price.CharacterCount)
		lines = append(lines, model.LineItem{
			MerchandiseID: s.textFeeVariantID,
			Quantity:      1,
			Attributes: map[string]string{
				model.AttrBundleID:  bundleID,
				model.AttrFeeType:   model.FeeTypeText,
				model.AttrTierLabel: fmt.Sprintf("%d-%d characters", tier.MinChars, tier.MaxChars),
				"_amount":           strconv.FormatFloat(price.Text, 'f', 2, 64),
			},
		})
	}

	if price.Images > 0 {
		lines = append(lines, model.LineItem{
			MerchandiseID: s.imageFeeVariantID,
			Quantity:      1,
			Attributes: map[string]string{
				model.AttrBundleID: bundleID,
				model.AttrFeeType:  model.FeeTypeImage,
				"_amount":          strconv.FormatFloat(price.Images, 'f', 2, 64),
			},
		})
	}

	return model.Bundle{
		ID:           bundleID,
		LineItems:    lines,
		PreviewImage: preview,
		ZoneNames:    zoneNames,
	}, nil
}

// collectZoneContent decodes every zone's persisted snapshot and returns
// the names of zones holding user content, in the variation's zone order,
// together with their render inputs.
func collectZoneContent(variation model.ProductVariation, states map[string]*model.ZoneState) ([]string, []canvas.ZoneRender, error) {
	var names []string
	var renders []canvas.ZoneRender

	for _, zone := range variation.Zones {
		state, ok := states[zone.ID]
		if !ok {
			continue
		}
		content, err := model.DecodeSnapshot(state.Serialized)
		if err != nil {
			return nil, nil, fmt.Errorf("decode zone %s: %w", zone.ID, err)
		}
		hasUser := false
		for i := range content.Objects {
			if content.Objects[i].UserAdded {
				hasUser = true
				break
			}
		}
		if !hasUser {
			continue
		}
		names = append(names, zone.Name)
		renders = append(renders, canvas.ZoneRender{Zone: zone, Content: content})
	}

	return names, renders, nil
}
