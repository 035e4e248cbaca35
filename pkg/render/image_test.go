package render

import (
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/swatchtower/swatchtower/pkg/errors"
	"github.com/swatchtower/swatchtower/pkg/palette"
)

func testImage(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	return img
}

func TestSymmetricCrop(t *testing.T) {
	img := testImage(100, 50)

	t.Run("nil center is identity", func(t *testing.T) {
		got, err := SymmetricCrop(img, nil)
		if err != nil {
			t.Fatalf("SymmetricCrop() error = %v", err)
		}
		if got != img {
			t.Error("SymmetricCrop(nil) returned a new image")
		}
	})

	t.Run("off-center anchor trims the far side", func(t *testing.T) {
		got, err := SymmetricCrop(img, &palette.Center{X: 0.25, Y: 0.5})
		if err != nil {
			t.Fatalf("SymmetricCrop() error = %v", err)
		}
		b := got.Bounds()
		if b.Dx() != 50 || b.Dy() != 50 {
			t.Errorf("crop = %dx%d, want 50x50", b.Dx(), b.Dy())
		}
	})

	t.Run("anchor on the edge rejected", func(t *testing.T) {
		_, err := SymmetricCrop(img, &palette.Center{X: 1, Y: 0.5})
		if !errors.Is(err, errors.ErrCodeInvalidInput) {
			t.Errorf("error code = %v, want INVALID_INPUT", errors.GetCode(err))
		}
	})
}

func TestCropToRatio(t *testing.T) {
	img := testImage(100, 50)

	t.Run("too wide loses sides", func(t *testing.T) {
		got, err := CropToRatio(img, 1, nil)
		if err != nil {
			t.Fatalf("CropToRatio() error = %v", err)
		}
		b := got.Bounds()
		if b.Dx() != 50 || b.Dy() != 50 {
			t.Errorf("crop = %dx%d, want 50x50", b.Dx(), b.Dy())
		}
	})

	t.Run("too tall loses top and bottom", func(t *testing.T) {
		got, err := CropToRatio(img, 4, nil)
		if err != nil {
			t.Fatalf("CropToRatio() error = %v", err)
		}
		b := got.Bounds()
		if b.Dx() != 100 || b.Dy() != 25 {
			t.Errorf("crop = %dx%d, want 100x25", b.Dx(), b.Dy())
		}
	})

	t.Run("non-positive ratio rejected", func(t *testing.T) {
		_, err := CropToRatio(img, 0, nil)
		if !errors.Is(err, errors.ErrCodeInvalidInput) {
			t.Errorf("error code = %v, want INVALID_INPUT", errors.GetCode(err))
		}
	})
}

func TestDataURI(t *testing.T) {
	uri, err := DataURI(testImage(4, 4))
	if err != nil {
		t.Fatalf("DataURI() error = %v", err)
	}
	if !strings.HasPrefix(uri, "data:image/png;base64,") {
		t.Errorf("DataURI() = %.40q..., want data:image/png;base64, prefix", uri)
	}
}
