package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"

	"github.com/swatchtower/swatchtower/pkg/errors"
	"github.com/swatchtower/swatchtower/pkg/palette"
)

const clipID = "content-clip"

// DefaultPrintWidth is the output width in pixels when none is given.
const DefaultPrintWidth = 800.0

// SVGOption configures RenderSVG.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	geo        Geometry
	printWidth float64
	metadata   bool
}

// WithPrintWidth sets the output width in pixels. Height follows from the
// card's 16:9 ratio.
func WithPrintWidth(w float64) SVGOption { return func(r *svgRenderer) { r.printWidth = w } }

// WithGeometry overrides the card geometry.
func WithGeometry(g Geometry) SVGOption { return func(r *svgRenderer) { r.geo = g } }

// WithoutMetadata omits the palette data comment from the output.
func WithoutMetadata() SVGOption { return func(r *svgRenderer) { r.metadata = false } }

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{
		geo:        DefaultGeometry(),
		printWidth: DefaultPrintWidth,
		metadata:   true,
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// RenderSVG draws the palette card as an SVG document: a white rounded card,
// the photograph cropped to the image pane's ratio and embedded as a base64
// PNG, and one rectangle per slice of the allocation, colored in document
// order. The full palette document is embedded as a JSON comment so the card
// stays self-describing.
//
// counts is the slice allocation for doc's colors; it must have one entry
// per color.
func RenderSVG(doc *palette.Document, img image.Image, counts []int, opts ...SVGOption) ([]byte, error) {
	r := newSVGRenderer(opts...)

	if err := doc.Validate(); err != nil {
		return nil, err
	}
	if len(counts) != len(doc.Colors) {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"%d slice counts for %d colors", len(counts), len(doc.Colors))
	}

	crop, err := CropToRatio(img, r.geo.Image.Ratio(), doc.Center)
	if err != nil {
		return nil, err
	}
	href, err := DataURI(crop)
	if err != nil {
		return nil, err
	}
	rects, err := PositionBlocks(r.geo.Blocks, counts)
	if err != nil {
		return nil, err
	}
	colors := doc.NormalizedColors()

	var buf bytes.Buffer
	printHeight := r.printWidth * r.geo.Card.Height / r.geo.Card.Width
	fmt.Fprintf(&buf,
		`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		r.geo.Card.Width, r.geo.Card.Height, r.printWidth, printHeight)

	if r.metadata {
		if meta, err := json.Marshal(doc); err == nil {
			fmt.Fprintf(&buf, "  <!--%s-->\n", meta)
		}
	}

	outerRad := CornerRadius + Pad
	fmt.Fprintf(&buf,
		`  <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" rx="%.2f" ry="%.2f" fill="white"/>`+"\n",
		r.geo.Card.X, r.geo.Card.Y, r.geo.Card.Width, r.geo.Card.Height, outerRad, outerRad)

	buf.WriteString("  <defs>\n")
	fmt.Fprintf(&buf, `    <clipPath id=%q>`+"\n", clipID)
	fmt.Fprintf(&buf,
		`      <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" rx="%.2f" ry="%.2f"/>`+"\n",
		r.geo.Content.X, r.geo.Content.Y, r.geo.Content.Width, r.geo.Content.Height,
		CornerRadius, CornerRadius)
	buf.WriteString("    </clipPath>\n  </defs>\n")

	fmt.Fprintf(&buf, `  <g clip-path="url(#%s)">`+"\n", clipID)
	fmt.Fprintf(&buf,
		`    <image x="%.2f" y="%.2f" width="%.2f" height="%.2f" preserveAspectRatio="none" href="%s"/>`+"\n",
		r.geo.Image.X, r.geo.Image.Y, r.geo.Image.Width, r.geo.Image.Height, href)

	for i, rect := range rects {
		b := rect.Pad(-Gap / 2)
		fmt.Fprintf(&buf,
			`    <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s"/>`+"\n",
			b.X, b.Y, b.Width, b.Height, colors[i])
	}

	buf.WriteString("  </g>\n</svg>\n")
	return buf.Bytes(), nil
}
