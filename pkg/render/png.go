package render

import (
	"bytes"
	"image"
	"image/png"
	"math"

	"github.com/fogleman/gg"
	xdraw "golang.org/x/image/draw"

	"github.com/swatchtower/swatchtower/pkg/errors"
	"github.com/swatchtower/swatchtower/pkg/palette"
)

// RenderPNG rasterizes the palette card at the given output width in pixels.
// The layout matches RenderSVG exactly; only the sink differs.
func RenderPNG(doc *palette.Document, img image.Image, counts []int, printWidth float64) ([]byte, error) {
	if printWidth <= 0 {
		printWidth = DefaultPrintWidth
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	if len(counts) != len(doc.Colors) {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"%d slice counts for %d colors", len(counts), len(doc.Colors))
	}

	geo := DefaultGeometry()
	scale := printWidth / geo.Card.Width
	px := func(v float64) float64 { return v * scale }

	crop, err := CropToRatio(img, geo.Image.Ratio(), doc.Center)
	if err != nil {
		return nil, err
	}
	rects, err := PositionBlocks(geo.Blocks, counts)
	if err != nil {
		return nil, err
	}
	colors := doc.NormalizedColors()

	w := int(math.Round(px(geo.Card.Width)))
	h := int(math.Round(px(geo.Card.Height)))
	dc := gg.NewContext(w, h)

	dc.DrawRoundedRectangle(px(geo.Card.X), px(geo.Card.Y),
		px(geo.Card.Width), px(geo.Card.Height), px(CornerRadius+Pad))
	dc.SetHexColor("#ffffff")
	dc.Fill()

	dc.DrawRoundedRectangle(px(geo.Content.X), px(geo.Content.Y),
		px(geo.Content.Width), px(geo.Content.Height), px(CornerRadius))
	dc.Clip()

	dc.DrawImage(scaleImage(crop, geo.Image, scale),
		int(math.Round(px(geo.Image.X))), int(math.Round(px(geo.Image.Y))))

	for i, rect := range rects {
		b := rect.Pad(-Gap / 2)
		dc.DrawRectangle(px(b.X), px(b.Y), px(b.Width), px(b.Height))
		dc.SetHexColor(colors[i])
		dc.Fill()
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, dc.Image()); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}

// scaleImage resamples src to fill target at the given scale.
func scaleImage(src image.Image, target Rect, scale float64) image.Image {
	w := int(math.Round(target.Width * scale))
	h := int(math.Round(target.Height * scale))
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Over, nil)
	return dst
}
