package render

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/png"
	"math"

	"github.com/disintegration/imaging"

	"github.com/swatchtower/swatchtower/pkg/errors"
	"github.com/swatchtower/swatchtower/pkg/palette"
)

// OpenImage loads a source photograph from disk, honoring EXIF orientation.
func OpenImage(path string) (image.Image, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open image %s", path)
	}
	return img, nil
}

// SymmetricCrop crops the image to the largest rectangle centered on the
// anchor, so the anchor becomes the true center of the result. A nil anchor
// leaves the image untouched. The anchor is in proportional coordinates and
// must be strictly inside the unit square.
func SymmetricCrop(img image.Image, center *palette.Center) (image.Image, error) {
	if center == nil {
		return img, nil
	}
	if center.X <= 0 || center.X >= 1 || center.Y <= 0 || center.Y >= 1 {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"crop center (%v, %v) must be strictly inside the unit square", center.X, center.Y)
	}

	b := img.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())
	xd := math.Min(center.X, 1-center.X)
	yd := math.Min(center.Y, 1-center.Y)

	left := (center.X - xd) * w
	right := (center.X + xd) * w
	top := (center.Y - yd) * h
	bottom := (center.Y + yd) * h

	rect := image.Rect(
		b.Min.X+int(math.Round(left)),
		b.Min.Y+int(math.Round(top)),
		b.Min.X+int(math.Round(right)),
		b.Min.Y+int(math.Round(bottom)),
	)
	return imaging.Crop(img, rect), nil
}

// CropToRatio crops the image to the given width-over-height ratio around
// the anchor. It never resizes: whichever dimension is too large for the
// ratio loses an equal amount from both ends.
func CropToRatio(img image.Image, ratio float64, center *palette.Center) (image.Image, error) {
	if ratio <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "ratio must be positive, got %v", ratio)
	}
	img, err := SymmetricCrop(img, center)
	if err != nil {
		return nil, err
	}

	b := img.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())

	if w/h > ratio {
		newW := h * ratio
		left := (w - newW) / 2
		rect := image.Rect(
			b.Min.X+int(math.Round(left)),
			b.Min.Y,
			b.Min.X+int(math.Round(w-left)),
			b.Max.Y,
		)
		return imaging.Crop(img, rect), nil
	}

	newH := w / ratio
	top := (h - newH) / 2
	rect := image.Rect(
		b.Min.X,
		b.Min.Y+int(math.Round(top)),
		b.Max.X,
		b.Min.Y+int(math.Round(h-top)),
	)
	return imaging.Crop(img, rect), nil
}

// DataURI encodes the image as a base64 PNG data URI for embedding in SVG.
func DataURI(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "encode embedded png")
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
