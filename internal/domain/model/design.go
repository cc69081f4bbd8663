// Package model defines the core domain entities for the engraving service.
package model

import (
	"bytes"
	"encoding/json"
	"unicode/utf8"
)

// ObjectKind discriminates the DesignObject union.
type ObjectKind string

const (
	// KindText is a text layer.
	KindText ObjectKind = "text"
	// KindImage is a raster image layer.
	KindImage ObjectKind = "image"
	// KindVector is a vector graphic layer.
	KindVector ObjectKind = "vector"
)

// IsImageLike reports whether the kind carries an engraving fee priced at
// insertion time (raster and vector layers).
func (k ObjectKind) IsImageLike() bool {
	return k == KindImage || k == KindVector
}

// Rect is an axis-aligned rectangle in mockup coordinates.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Center returns the center point of the rectangle.
func (r Rect) Center() (x, y float64) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

// EngravingZone is a named rectangular region of a product mockup where
// user content may be placed. Immutable, loaded from the product catalog.
type EngravingZone struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Bounds Rect   `json:"bounds"`
}

// Shadow holds material-derived shadow parameters applied to user layers.
type Shadow struct {
	Color   string  `json:"color"`
	Blur    float64 `json:"blur"`
	OffsetX float64 `json:"offset_x"`
	OffsetY float64 `json:"offset_y"`
}

// TextAlign values accepted for text layers.
const (
	AlignLeft   = "left"
	AlignCenter = "center"
	AlignRight  = "right"
)

// Arrange directions for z-order changes.
const (
	ArrangeFront    = "front"
	ArrangeBack     = "back"
	ArrangeForward  = "forward"
	ArrangeBackward = "backward"
)

// DesignObject is a placeable layer on an engraving zone. It is a tagged
// union over Kind: text layers use the Text* fields, image-like layers use
// Source, Filters and Price. Position is origin-centered.
//
// @Description A single user-added design layer (text or image)
type DesignObject struct {
	ID        string     `json:"id"`
	Kind      ObjectKind `json:"kind"`
	X         float64    `json:"x"`
	Y         float64    `json:"y"`
	Angle     float64    `json:"angle"`
	Opacity   float64    `json:"opacity"`
	Width     float64    `json:"width"`
	Height    float64    `json:"height"`
	ScaleX    float64    `json:"scale_x"`
	ScaleY    float64    `json:"scale_y"`
	Fill      string     `json:"fill,omitempty"`
	Shadow    *Shadow    `json:"shadow,omitempty"`
	UserAdded bool       `json:"user_added"`

	// Text variant fields.
	Text       string  `json:"text,omitempty"`
	FontFamily string  `json:"font_family,omitempty"`
	FontSize   float64 `json:"font_size,omitempty"`
	Bold       bool    `json:"bold,omitempty"`
	Italic     bool    `json:"italic,omitempty"`
	Underline  bool    `json:"underline,omitempty"`
	Align      string  `json:"align,omitempty"`
	// Curve is a signed factor in [-100, 100] driving an arc-path baseline.
	// Zero means a straight baseline.
	Curve float64 `json:"curve,omitempty"`
	// ArcRadius and ArcUp describe the rendering path derived from Curve.
	// They are a rendering side channel, not part of the bounding geometry.
	ArcRadius float64 `json:"arc_radius,omitempty"`
	ArcUp     bool    `json:"arc_up,omitempty"`

	// ImageLike variant fields.
	Source  string   `json:"source,omitempty"`
	Filters []string `json:"filters,omitempty"`
	// Price is the one-time engraving fee fixed at insertion time.
	// It is never recomputed afterwards.
	Price float64 `json:"price,omitempty"`
}

// IsText reports whether the object is a text layer.
func (o *DesignObject) IsText() bool {
	return o.Kind == KindText
}

// CharacterCount returns the number of characters a text layer contributes
// to tiered pricing. Non-text layers contribute zero.
func (o *DesignObject) CharacterCount() int {
	if !o.IsText() {
		return 0
	}
	return utf8.RuneCountInString(o.Text)
}

// Clone returns a deep copy of the object.
func (o *DesignObject) Clone() DesignObject {
	c := *o
	if o.Shadow != nil {
		s := *o.Shadow
		c.Shadow = &s
	}
	if o.Filters != nil {
		c.Filters = append([]string(nil), o.Filters...)
	}
	return c
}

// Snapshot is a full serialized representation of a zone's user content at
// one point in history.
type Snapshot []byte

// Equal reports whether two snapshots are byte-identical.
func (s Snapshot) Equal(other Snapshot) bool {
	return bytes.Equal(s, other)
}

// ZoneContent is the serializable working set of one zone: the user-added
// objects in z-order (index 0 renders at the back).
type ZoneContent struct {
	Objects []DesignObject `json:"objects"`
}

// Encode serializes the content into a Snapshot. Encoding is deterministic
// so that identical content always yields byte-identical snapshots.
func (zc ZoneContent) Encode() (Snapshot, error) {
	if zc.Objects == nil {
		zc.Objects = []DesignObject{}
	}
	return json.Marshal(zc)
}

// DecodeSnapshot deserializes a Snapshot back into zone content. A nil or
// empty snapshot decodes to empty content.
func DecodeSnapshot(s Snapshot) (ZoneContent, error) {
	if len(s) == 0 {
		return ZoneContent{Objects: []DesignObject{}}, nil
	}
	var zc ZoneContent
	if err := json.Unmarshal(s, &zc); err != nil {
		return ZoneContent{}, err
	}
	if zc.Objects == nil {
		zc.Objects = []DesignObject{}
	}
	return zc, nil
}

// EmptySnapshot returns the canonical snapshot of an empty zone.
func EmptySnapshot() Snapshot {
	s, _ := ZoneContent{Objects: []DesignObject{}}.Encode()
	return s
}

// ZoneState holds one zone's persisted content and its independent undo
// history. Invariant once initialized: 0 <= HistoryIndex < len(History),
// and History[0] is the empty-canvas snapshot.
type ZoneState struct {
	ZoneID       string     `json:"zone_id"`
	Serialized   Snapshot   `json:"serialized"`
	History      []Snapshot `json:"-"`
	HistoryIndex int        `json:"history_index"`
}

// NewZoneState creates the state for a freshly initialized zone.
func NewZoneState(zoneID string) *ZoneState {
	empty := EmptySnapshot()
	return &ZoneState{
		ZoneID:       zoneID,
		Serialized:   empty,
		History:      []Snapshot{empty},
		HistoryIndex: 0,
	}
}

// HasContent reports whether the zone's persisted snapshot contains any
// user-added objects.
func (zs *ZoneState) HasContent() bool {
	zc, err := DecodeSnapshot(zs.Serialized)
	if err != nil {
		return false
	}
	for i := range zc.Objects {
		if zc.Objects[i].UserAdded {
			return true
		}
	}
	return false
}
