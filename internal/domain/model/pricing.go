package model

// PriceTier maps an inclusive character-count range to a flat text
// engraving fee.
//
// @Description Character-count range mapped to a flat text-engraving fee
type PriceTier struct {
	// MinChars is the inclusive lower bound of the tier.
	MinChars int `json:"min_chars" example:"1"`
	// MaxChars is the inclusive upper bound of the tier.
	MaxChars int `json:"max_chars" example:"5"`
	// Price is the flat fee charged for counts inside the range.
	Price float64 `json:"price" example:"20"`
}

// Contains reports whether the tier's range contains the given count.
func (t PriceTier) Contains(count int) bool {
	return count >= t.MinChars && count <= t.MaxChars
}

// DefaultPriceTiers is the built-in ascending, non-overlapping tier table
// used when no tier configuration is stored.
var DefaultPriceTiers = []PriceTier{
	{MinChars: 1, MaxChars: 5, Price: 20},
	{MinChars: 6, MaxChars: 10, Price: 30},
	{MinChars: 11, MaxChars: 20, Price: 40},
	{MinChars: 21, MaxChars: 40, Price: 50},
}

// PriceDetails is the derived price breakdown for a whole design. It is
// recomputed from all zone states on every content mutation, never mutated
// incrementally. Invariant: Total == Base + Text + Images.
//
// @Description Live price breakdown for the current design
type PriceDetails struct {
	// Base is the base price of the selected product variation.
	Base float64 `json:"base" example:"20"`
	// Text is the tiered fee for the aggregate character count.
	Text float64 `json:"text" example:"40"`
	// Images is the sum of fees attached to all image-like layers.
	Images float64 `json:"images" example:"8"`
	// Total is Base + Text + Images.
	Total float64 `json:"total" example:"68"`
	// CharacterCount is the aggregate character count across all zones.
	CharacterCount int `json:"character_count" example:"12"`
	// CharacterLimitExceeded is set when the count exceeds the top tier's
	// maximum; the top tier's price is still charged for display.
	CharacterLimitExceeded bool `json:"character_limit_exceeded,omitempty"`
}

// EmptyPrice returns the price details for a design with no user content.
func EmptyPrice(base float64) PriceDetails {
	return PriceDetails{Base: base, Total: base}
}
