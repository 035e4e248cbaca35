package pipeline

import (
	"image"

	"github.com/swatchtower/swatchtower/pkg/errors"
	"github.com/swatchtower/swatchtower/pkg/palette"
	"github.com/swatchtower/swatchtower/pkg/render"
)

// renderDoc pairs a final document with its slice allocation. Its JSON form
// is also the hash input for artifact cache keys.
type renderDoc struct {
	Doc    *palette.Document `json:"doc"`
	Counts []int             `json:"counts"`
}

// renderAll draws the palette card in every requested format.
func renderAll(doc *renderDoc, img image.Image, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		var (
			data []byte
			err  error
		)
		switch format {
		case FormatSVG:
			data, err = render.RenderSVG(doc.Doc, img, doc.Counts,
				render.WithPrintWidth(opts.PrintWidth))
		case FormatPNG:
			data, err = render.RenderPNG(doc.Doc, img, doc.Counts, opts.PrintWidth)
		default:
			err = errors.New(errors.ErrCodeUnsupported, "unsupported format %q", format)
		}
		if err != nil {
			return nil, err
		}
		artifacts[format] = data
	}
	return artifacts, nil
}
