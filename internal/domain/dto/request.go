// Package dto defines Data Transfer Objects for HTTP request and response handling.
//
// DTOs are used to decouple the HTTP layer from the domain model,
// providing validation and serialization for API communication.
package dto

import (
	"github.com/guttosm/engraving-service/internal/domain/model"
)

// ValidationError represents a field validation error.
type ValidationError struct {
	Field   string
	Message string
}

// Error returns the error message for ValidationError.
func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// CreateSessionRequest starts an editing session for a product variation.
//
// @Description Request to open a design session on a customizable variation
// @Example {"product_id": "tumbler-20oz", "variation_id": "tumbler-20oz-brass"}
type CreateSessionRequest struct {
	// ProductID identifies the catalog product.
	ProductID string `json:"product_id" binding:"required" example:"tumbler-20oz"`
	// VariationID identifies the variation whose zones will be edited.
	VariationID string `json:"variation_id" binding:"required" example:"tumbler-20oz-brass"`
} // @name CreateSessionRequest

// Validate performs custom validation on the request.
func (r *CreateSessionRequest) Validate() error {
	if r.ProductID == "" {
		return &ValidationError{Field: "product_id", Message: "must not be empty"}
	}
	if r.VariationID == "" {
		return &ValidationError{Field: "variation_id", Message: "must not be empty"}
	}
	return nil
}

// SwitchZoneRequest selects a different engraving zone.
type SwitchZoneRequest struct {
	// ZoneID is the id of the zone to activate.
	ZoneID string `json:"zone_id" binding:"required" example:"back"`
} // @name SwitchZoneRequest

// AddTextRequest adds a text layer to the active zone.
//
// @Description Request to add a styled text layer
// @Example {"text": "Forever & Always"}
type AddTextRequest struct {
	// Text is the engraving text. Must not be empty.
	Text string `json:"text" binding:"required" example:"Forever & Always"`
	// FontFamily overrides the default typeface.
	FontFamily string `json:"font_family,omitempty" example:"Georgia"`
	// FontSize overrides the default size in canvas units.
	FontSize float64 `json:"font_size,omitempty" example:"24"`
	// Align is one of left, center, right.
	Align string `json:"align,omitempty" example:"center"`
} // @name AddTextRequest

// Validate performs custom validation on the request.
func (r *AddTextRequest) Validate() error {
	if r.Text == "" {
		return &ValidationError{Field: "text", Message: "must not be empty"}
	}
	if r.FontSize < 0 {
		return &ValidationError{Field: "font_size", Message: "must not be negative"}
	}
	switch r.Align {
	case "", model.AlignLeft, model.AlignCenter, model.AlignRight:
	default:
		return &ValidationError{Field: "align", Message: "must be left, center or right"}
	}
	return nil
}

// InsertImageRequest uploads an image or vector for pricing and insertion.
type InsertImageRequest struct {
	// Payload is the image as a data URI (png, jpeg or svg+xml).
	Payload string `json:"payload" binding:"required"`
	// Kind is "image" for raster uploads or "vector" for SVG artwork.
	Kind string `json:"kind,omitempty" example:"image"`
} // @name InsertImageRequest

// Validate performs custom validation on the request.
func (r *InsertImageRequest) Validate() error {
	if r.Payload == "" {
		return &ValidationError{Field: "payload", Message: "must not be empty"}
	}
	switch r.Kind {
	case "", string(model.KindImage), string(model.KindVector):
	default:
		return &ValidationError{Field: "kind", Message: "must be image or vector"}
	}
	return nil
}

// ObjectKind returns the resolved object kind, defaulting to image.
func (r *InsertImageRequest) ObjectKind() model.ObjectKind {
	if r.Kind == string(model.KindVector) {
		return model.KindVector
	}
	return model.KindImage
}

// ModifyObjectRequest is a partial property update for a design object.
// Absent fields are left untouched.
type ModifyObjectRequest struct {
	Text       *string  `json:"text,omitempty"`
	FontFamily *string  `json:"font_family,omitempty"`
	FontSize   *float64 `json:"font_size,omitempty"`
	Fill       *string  `json:"fill,omitempty"`
	Align      *string  `json:"align,omitempty"`
	Bold       *bool    `json:"bold,omitempty"`
	Italic     *bool    `json:"italic,omitempty"`
	Underline  *bool    `json:"underline,omitempty"`
	X          *float64 `json:"x,omitempty"`
	Y          *float64 `json:"y,omitempty"`
	Angle      *float64 `json:"angle,omitempty"`
	Opacity    *float64 `json:"opacity,omitempty"`
	Width      *float64 `json:"width,omitempty"`
	Height     *float64 `json:"height,omitempty"`
	ScaleX     *float64 `json:"scale_x,omitempty"`
	ScaleY     *float64 `json:"scale_y,omitempty"`
} // @name ModifyObjectRequest

// Validate performs custom validation on the request.
func (r *ModifyObjectRequest) Validate() error {
	if r.Opacity != nil && (*r.Opacity < 0 || *r.Opacity > 1) {
		return &ValidationError{Field: "opacity", Message: "must be between 0 and 1"}
	}
	if r.FontSize != nil && *r.FontSize <= 0 {
		return &ValidationError{Field: "font_size", Message: "must be positive"}
	}
	if r.Align != nil {
		switch *r.Align {
		case model.AlignLeft, model.AlignCenter, model.AlignRight:
		default:
			return &ValidationError{Field: "align", Message: "must be left, center or right"}
		}
	}
	return nil
}

// CurveRequest updates a text layer's baseline curve.
type CurveRequest struct {
	// Curve is the baseline curvature in [-100, 100]; 0 is straight.
	Curve float64 `json:"curve" example:"40"`
} // @name CurveRequest

// Validate performs custom validation on the request.
func (r *CurveRequest) Validate() error {
	if r.Curve < -100 || r.Curve > 100 {
		return &ValidationError{Field: "curve", Message: "must be between -100 and 100"}
	}
	return nil
}

// ArrangeRequest reorders an object in the zone's z-order.
type ArrangeRequest struct {
	// Direction is one of front, back, forward, backward.
	Direction string `json:"direction" binding:"required" example:"front"`
} // @name ArrangeRequest

// Validate performs custom validation on the request.
func (r *ArrangeRequest) Validate() error {
	switch r.Direction {
	case model.ArrangeFront, model.ArrangeBack, model.ArrangeForward, model.ArrangeBackward:
		return nil
	default:
		return &ValidationError{Field: "direction", Message: "must be front, back, forward or backward"}
	}
}

// CheckoutRequest bundles the design into cart line items.
type CheckoutRequest struct {
	// CartID adds the bundle to an existing cart; empty creates a new cart.
	CartID string `json:"cart_id,omitempty"`
} // @name CheckoutRequest

// UpdatePriceTiersRequest replaces the active price tier table.
type UpdatePriceTiersRequest struct {
	// Tiers is the new tier table, contiguous from one character.
	Tiers []model.PriceTier `json:"tiers" binding:"required,min=1"`
	// CreatedBy is the identifier of who created this configuration.
	CreatedBy string `json:"created_by,omitempty"`
} // @name UpdatePriceTiersRequest

// Validate performs custom validation on the request.
func (r *UpdatePriceTiersRequest) Validate() error {
	if len(r.Tiers) == 0 {
		return &ValidationError{Field: "tiers", Message: "must not be empty"}
	}
	return nil
}

// GenerateQuotesRequest asks the generative backend for quote suggestions.
type GenerateQuotesRequest struct {
	// Theme steers the suggestions (e.g. "anniversary").
	Theme string `json:"theme" binding:"required" example:"anniversary"`
	// Count is the number of suggestions, defaulting to 3.
	Count int `json:"count,omitempty" example:"3"`
} // @name GenerateQuotesRequest

// Validate performs custom validation on the request.
func (r *GenerateQuotesRequest) Validate() error {
	if r.Theme == "" {
		return &ValidationError{Field: "theme", Message: "must not be empty"}
	}
	if r.Count < 0 || r.Count > 10 {
		return &ValidationError{Field: "count", Message: "must be between 0 and 10"}
	}
	return nil
}

// GenerateImagesRequest asks the generative backend for image suggestions.
type GenerateImagesRequest struct {
	// Prompt describes the artwork to generate.
	Prompt string `json:"prompt" binding:"required" example:"mountain silhouette line art"`
	// Count is the number of suggestions, defaulting to 1.
	Count int `json:"count,omitempty" example:"1"`
} // @name GenerateImagesRequest

// Validate performs custom validation on the request.
func (r *GenerateImagesRequest) Validate() error {
	if r.Prompt == "" {
		return &ValidationError{Field: "prompt", Message: "must not be empty"}
	}
	if r.Count < 0 || r.Count > 4 {
		return &ValidationError{Field: "count", Message: "must be between 0 and 4"}
	}
	return nil
}
