package render

import (
	"bytes"
	"image/png"
	"strings"
	"testing"

	"github.com/swatchtower/swatchtower/pkg/errors"
	"github.com/swatchtower/swatchtower/pkg/palette"
)

func sinkDoc() *palette.Document {
	return &palette.Document{
		ID:     "card-test",
		Source: "dunes.jpg",
		Colors: []string{"#E0B040", "203040"},
		Ratios: []float64{2, 1},
	}
}

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(sinkDoc(), testImage(64, 36), []int{7, 3})
	if err != nil {
		t.Fatalf("RenderSVG() error = %v", err)
	}
	out := string(svg)

	for _, want := range []string{
		`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 256.0 144.0" width="800" height="450">`,
		`clipPath id="content-clip"`,
		`data:image/png;base64,`,
		`fill="#e0b040"`,
		`fill="#203040"`,
		`"source":"dunes.jpg"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("RenderSVG() output missing %q", want)
		}
	}
}

func TestRenderSVG_Options(t *testing.T) {
	svg, err := RenderSVG(sinkDoc(), testImage(64, 36), []int{7, 3},
		WithPrintWidth(400), WithoutMetadata())
	if err != nil {
		t.Fatalf("RenderSVG() error = %v", err)
	}
	out := string(svg)
	if !strings.Contains(out, `width="400" height="225"`) {
		t.Error("RenderSVG() ignored WithPrintWidth")
	}
	if strings.Contains(out, "<!--") {
		t.Error("RenderSVG() emitted metadata despite WithoutMetadata")
	}
}

func TestRenderSVG_CountMismatch(t *testing.T) {
	_, err := RenderSVG(sinkDoc(), testImage(64, 36), []int{7, 2, 1})
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("error code = %v, want INVALID_INPUT", errors.GetCode(err))
	}
}

func TestRenderPNG(t *testing.T) {
	data, err := RenderPNG(sinkDoc(), testImage(64, 36), []int{7, 3}, 256)
	if err != nil {
		t.Fatalf("RenderPNG() error = %v", err)
	}
	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("DecodeConfig() error = %v", err)
	}
	if cfg.Width != 256 || cfg.Height != 144 {
		t.Errorf("png = %dx%d, want 256x144", cfg.Width, cfg.Height)
	}
}
