package canvas

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/guttosm/engraving-service/internal/domain/model"
)

// ZoneRender pairs a zone with its user content for preview composition.
type ZoneRender struct {
	Zone    model.EngravingZone
	Content model.ZoneContent
}

// Renderer composes a single preview image from all zones' user content.
// Zones occupy disjoint regions of the mockup, so composition order across
// zones does not affect the result.
type Renderer interface {
	Compose(mockupURI string, size model.Rect, zones []ZoneRender) ([]byte, error)
}

// SVGRenderer renders the composite preview as an SVG document: the product
// mockup as background plus every user-added object of every non-empty
// zone, each zone clipped to its bounds.
type SVGRenderer struct{}

// NewSVGRenderer creates a new SVG preview renderer.
func NewSVGRenderer() *SVGRenderer {
	return &SVGRenderer{}
}

// Compose renders the composite preview document.
func (r *SVGRenderer) Compose(mockupURI string, size model.Rect, zones []ZoneRender) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" width="%g" height="%g" viewBox="0 0 %g %g">`,
		size.Width, size.Height, size.Width, size.Height)
	if mockupURI != "" {
		fmt.Fprintf(&buf, `<image href=%q width="%g" height="%g"/>`, mockupURI, size.Width, size.Height)
	}

	for _, zr := range zones {
		if len(zr.Content.Objects) == 0 {
			continue
		}
		b := zr.Zone.Bounds
		fmt.Fprintf(&buf, `<clipPath id="clip-%s"><rect x="%g" y="%g" width="%g" height="%g"/></clipPath>`,
			zr.Zone.ID, b.X, b.Y, b.Width, b.Height)
		fmt.Fprintf(&buf, `<g clip-path="url(#clip-%s)">`, zr.Zone.ID)
		for i := range zr.Content.Objects {
			r.writeObject(&buf, &zr.Content.Objects[i])
		}
		buf.WriteString(`</g>`)
	}

	buf.WriteString(`</svg>`)
	return buf.Bytes(), nil
}

// writeObject emits one design object as an SVG element.
func (r *SVGRenderer) writeObject(buf *bytes.Buffer, o *model.DesignObject) {
	transform := fmt.Sprintf(`transform="translate(%g %g) rotate(%g)"`, o.X, o.Y, o.Angle)

	switch o.Kind {
	case model.KindText:
		style := fmt.Sprintf("font-family:%s;font-size:%gpx", o.FontFamily, o.FontSize)
		if o.Bold {
			style += ";font-weight:bold"
		}
		if o.Italic {
			style += ";font-style:italic"
		}
		if o.Underline {
			style += ";text-decoration:underline"
		}
		if o.Curve != 0 && o.ArcRadius > 0 {
			// Curved baselines render via a textPath over the derived arc.
			sweep := 1
			if !o.ArcUp {
				sweep = 0
			}
			pathID := "arc-" + o.ID
			fmt.Fprintf(buf, `<path id="%s" d="M %g 0 A %g %g 0 0 %d %g 0" fill="none"/>`,
				pathID, -o.Width/2, o.ArcRadius, o.ArcRadius, sweep, o.Width/2)
			fmt.Fprintf(buf, `<text %s fill=%q opacity="%g" style=%q><textPath href="#%s">`,
				transform, o.Fill, o.Opacity, style, pathID)
			xmlEscape(buf, o.Text)
			buf.WriteString(`</textPath></text>`)
			return
		}
		fmt.Fprintf(buf, `<text %s fill=%q opacity="%g" text-anchor="middle" style=%q>`,
			transform, o.Fill, o.Opacity, style)
		xmlEscape(buf, o.Text)
		buf.WriteString(`</text>`)
	case model.KindImage, model.KindVector:
		filter := ""
		if len(o.Filters) > 0 {
			filter = fmt.Sprintf(` data-filters="%d"`, len(o.Filters))
		}
		fmt.Fprintf(buf, `<image %s href=%q x="%g" y="%g" width="%g" height="%g" opacity="%g"%s/>`,
			transform, o.Source, -o.Width/2, -o.Height/2, o.Width, o.Height, o.Opacity, filter)
	}
}

// xmlEscape writes s with XML special characters escaped.
func xmlEscape(buf *bytes.Buffer, s string) {
	_ = xml.EscapeText(buf, []byte(s))
}
