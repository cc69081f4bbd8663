package model

// Material describes the engraving material profile applied to new layers:
// fill color, shadow parameters, opacity and the filter chain for images.
type Material struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Fill    string   `json:"fill"`
	Opacity float64  `json:"opacity"`
	Shadow  *Shadow  `json:"shadow,omitempty"`
	Filters []string `json:"filters,omitempty"`
}

// ProductVariation is one purchasable configuration of a product. Each
// variation carries its own engraving zone set and live base price.
type ProductVariation struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	BasePrice  float64         `json:"base_price"`
	MaterialID string          `json:"material_id"`
	MockupURI  string          `json:"mockup_uri,omitempty"`
	MockupSize Rect            `json:"mockup_size"`
	Zones      []EngravingZone `json:"zones"`
}

// Zone returns the zone with the given id, or false if the variation has no
// such zone.
func (v *ProductVariation) Zone(zoneID string) (EngravingZone, bool) {
	for _, z := range v.Zones {
		if z.ID == zoneID {
			return z, true
		}
	}
	return EngravingZone{}, false
}

// Product is a customizable catalog product.
type Product struct {
	ID         string             `json:"id"`
	Title      string             `json:"title"`
	Variations []ProductVariation `json:"variations"`
}

// Variation returns the variation with the given id, or false if absent.
func (p *Product) Variation(variationID string) (ProductVariation, bool) {
	for _, v := range p.Variations {
		if v.ID == variationID {
			return v, true
		}
	}
	return ProductVariation{}, false
}
