package model

// Line item attribute keys shared by every item of one checkout bundle.
// The external cart consumer cascades removal of fee lines by bundle id.
const (
	AttrBundleID          = "_bundleId"
	AttrZones             = "_zones"
	AttrPreview           = "_preview"
	AttrTierLabel         = "_tier"
	AttrCharacterOverflow = "_characterOverflow"
	AttrFeeType           = "_feeType"
)

// Fee line item types.
const (
	FeeTypeText  = "text_engraving"
	FeeTypeImage = "image_engraving"
)

// LineItem is one cart line emitted at checkout.
//
// @Description Cart line item with free-form key/value attributes
type LineItem struct {
	// MerchandiseID references the product variant to add.
	MerchandiseID string `json:"merchandise_id"`
	// Quantity of the variant.
	Quantity int `json:"quantity" example:"1"`
	// Attributes are free-form key/value pairs carried on the line.
	Attributes map[string]string `json:"attributes,omitempty"`
}

// Bundle is the ephemeral checkout-time grouping of one parent product line
// and its fee lines, correlated by a shared bundle id. It is constructed
// fresh on every checkout and handed to the external Cart Service.
type Bundle struct {
	ID string `json:"id"`
	// LineItems holds the parent line first, then zero or one text fee line
	// and zero or one image fee line, all tagged with ID.
	LineItems []LineItem `json:"line_items"`
	// PreviewImage is the rendered composite preview (opaque image data).
	PreviewImage []byte `json:"-"`
	// ZoneNames lists the zones that received user content.
	ZoneNames []string `json:"zone_names"`
}

// CartLine is a line item as reported back by the external Cart Service.
type CartLine struct {
	ID            string            `json:"id"`
	MerchandiseID string            `json:"merchandise_id"`
	Quantity      int               `json:"quantity"`
	Attributes    map[string]string `json:"attributes,omitempty"`
}

// Cart mirrors the external Cart Service's cart representation.
type Cart struct {
	ID          string     `json:"id"`
	CheckoutURL string     `json:"checkout_url"`
	Lines       []CartLine `json:"lines"`
	Subtotal    float64    `json:"subtotal"`
}
