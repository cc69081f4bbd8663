package service

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/guttosm/engraving-service/internal/domain/model"
)

const (
	// defaultMaxUploadBytes is the hard cap on decoded image payload size.
	defaultMaxUploadBytes = 2 << 20

	// zoneFitRatio caps freshly created objects at 80% of the smaller zone
	// dimension so new layers never overflow their zone on insertion.
	zoneFitRatio = 0.8

	// curveRadiusFactor scales the arc radius derived from a curve value:
	// radius = width * curveRadiusFactor / |curve|.
	curveRadiusFactor = 50.0

	maxCurve = 100.0

	defaultFontFamily = "Georgia"
	defaultFontSize   = 24.0
)

// ErrInvalidUpload is returned when an image payload fails validation
// before any network call is made.
var ErrInvalidUpload = errors.New("invalid upload payload")

// vectorComplexityWarnAt is the SVG path-command count above which a
// complexity warning is attached (the insert still proceeds).
const vectorComplexityWarnAt = 2000

// newTextObject creates a material-styled text layer centered in the zone.
func newTextObject(params TextParams, material model.Material, bounds model.Rect) model.DesignObject {
	if params.FontFamily == "" {
		params.FontFamily = defaultFontFamily
	}
	if params.FontSize <= 0 {
		params.FontSize = defaultFontSize
	}
	if params.Align == "" {
		params.Align = model.AlignCenter
	}

	// Nominal box from font metrics; exact glyph measurement belongs to the
	// rendering engine.
	width := params.FontSize * 0.6 * float64(len([]rune(params.Text)))
	height := params.FontSize * 1.2

	obj := model.DesignObject{
		ID:         newObjectID(),
		Kind:       model.KindText,
		Text:       params.Text,
		FontFamily: params.FontFamily,
		FontSize:   params.FontSize,
		Align:      params.Align,
		Width:      width,
		Height:     height,
	}
	finishObject(&obj, material, bounds)
	return obj
}

// newImageObject creates a material-styled image layer carrying its
// insertion-time engraving fee. The fee is preserved through styling, never
// overwritten.
func newImageObject(source string, kind model.ObjectKind, price float64, material model.Material, bounds model.Rect) model.DesignObject {
	obj := model.DesignObject{
		ID:      newObjectID(),
		Kind:    kind,
		Source:  source,
		Width:   bounds.Width / 2,
		Height:  bounds.Height / 2,
		Price:   price,
		Filters: append([]string(nil), material.Filters...),
	}
	finishObject(&obj, material, bounds)
	return obj
}

// finishObject applies the shared creation rules: center in the zone,
// material fill/shadow/opacity, the 80% size clamp, and the userAdded stamp.
func finishObject(obj *model.DesignObject, material model.Material, bounds model.Rect) {
	obj.X, obj.Y = bounds.Center()
	obj.Fill = material.Fill
	obj.Opacity = material.Opacity
	if obj.Opacity <= 0 {
		obj.Opacity = 1
	}
	if material.Shadow != nil {
		sh := *material.Shadow
		obj.Shadow = &sh
	}
	obj.ScaleX, obj.ScaleY = 1, 1
	obj.UserAdded = true
	clampToZone(obj, bounds)
}

// clampToZone uniformly scales the object down when either dimension
// exceeds 80% of the smaller zone dimension.
func clampToZone(obj *model.DesignObject, bounds model.Rect) {
	limit := zoneFitRatio * math.Min(bounds.Width, bounds.Height)
	if limit <= 0 {
		return
	}
	largest := math.Max(obj.Width, obj.Height)
	if largest <= limit {
		return
	}
	factor := limit / largest
	obj.Width *= factor
	obj.Height *= factor
	if obj.IsText() {
		obj.FontSize *= factor
	}
}

// applyPatch applies non-nil patch fields to the object, then normalizes
// text scaling: drag-handle scale factors are folded into font size and
// width and the transform reset to 1:1, so the toolbar's font size value
// does not drift under repeated resizes.
func applyPatch(obj *model.DesignObject, patch ObjectPatch) {
	if patch.Text != nil && obj.IsText() {
		obj.Text = *patch.Text
	}
	if patch.FontFamily != nil {
		obj.FontFamily = *patch.FontFamily
	}
	if patch.FontSize != nil && *patch.FontSize > 0 {
		obj.FontSize = *patch.FontSize
	}
	if patch.Fill != nil {
		obj.Fill = *patch.Fill
	}
	if patch.Align != nil {
		obj.Align = *patch.Align
	}
	if patch.Bold != nil {
		obj.Bold = *patch.Bold
	}
	if patch.Italic != nil {
		obj.Italic = *patch.Italic
	}
	if patch.Underline != nil {
		obj.Underline = *patch.Underline
	}
	if patch.X != nil {
		obj.X = *patch.X
	}
	if patch.Y != nil {
		obj.Y = *patch.Y
	}
	if patch.Angle != nil {
		obj.Angle = *patch.Angle
	}
	if patch.Opacity != nil {
		obj.Opacity = *patch.Opacity
	}
	if patch.Width != nil && *patch.Width > 0 {
		obj.Width = *patch.Width
	}
	if patch.Height != nil && *patch.Height > 0 {
		obj.Height = *patch.Height
	}
	if patch.ScaleX != nil {
		obj.ScaleX = *patch.ScaleX
	}
	if patch.ScaleY != nil {
		obj.ScaleY = *patch.ScaleY
	}

	if obj.IsText() && (obj.ScaleX != 1 || obj.ScaleY != 1) {
		obj.FontSize *= obj.ScaleY
		obj.Width *= obj.ScaleX
		obj.Height *= obj.ScaleY
		obj.ScaleX, obj.ScaleY = 1, 1
	}

	if obj.IsText() && obj.Curve != 0 {
		// Width changes feed back into the derived arc.
		applyCurve(obj, obj.Curve)
	}
}

// applyCurve stores the clamped curve value and derives the rendering arc:
// radius inversely proportional to |curve| and proportional to width,
// upward for positive values, downward for negative. Zero clears the path.
func applyCurve(obj *model.DesignObject, curve float64) {
	curve = math.Max(-maxCurve, math.Min(maxCurve, curve))
	obj.Curve = curve
	if curve == 0 {
		obj.ArcRadius = 0
		obj.ArcUp = false
		return
	}
	obj.ArcRadius = obj.Width * curveRadiusFactor / math.Abs(curve)
	obj.ArcUp = curve > 0
}

// validateUpload checks an image payload before any network call: the data
// URI scheme must be a supported image type and the decoded size within the
// hard cap. Large-but-valid payloads and complex vectors return warnings
// and proceed.
func validateUpload(payload string, kind model.ObjectKind, maxBytes int) ([]string, error) {
	if !kind.IsImageLike() {
		return nil, fmt.Errorf("%w: kind %q is not an image kind", ErrInvalidUpload, kind)
	}
	if payload == "" {
		return nil, fmt.Errorf("%w: empty payload", ErrInvalidUpload)
	}

	supported := []string{"data:image/png;base64,", "data:image/jpeg;base64,", "data:image/svg+xml"}
	matched := ""
	for _, prefix := range supported {
		if strings.HasPrefix(payload, prefix) {
			matched = prefix
			break
		}
	}
	if matched == "" {
		return nil, fmt.Errorf("%w: unsupported payload type", ErrInvalidUpload)
	}

	// Base64 expands by 4/3; approximate the decoded size without decoding.
	decoded := len(payload) * 3 / 4
	if decoded > maxBytes {
		return nil, fmt.Errorf("%w: payload exceeds %d bytes", ErrInvalidUpload, maxBytes)
	}

	var warnings []string
	if decoded > maxBytes/2 {
		warnings = append(warnings, "image is large and may engrave slowly")
	}
	if kind == model.KindVector {
		if n := strings.Count(payload, "C") + strings.Count(payload, "L") + strings.Count(payload, "c") + strings.Count(payload, "l"); n > vectorComplexityWarnAt {
			warnings = append(warnings, "vector is complex; engraving detail may be reduced")
		}
	}
	return warnings, nil
}
