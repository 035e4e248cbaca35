package pipeline

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/swatchtower/swatchtower/pkg/cache"
	"github.com/swatchtower/swatchtower/pkg/colornames"
	"github.com/swatchtower/swatchtower/pkg/errors"
	"github.com/swatchtower/swatchtower/pkg/palette"
)

// writeSourceImage writes a small PNG and returns its path.
func writeSourceImage(t *testing.T) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 32, 18))
	for y := 0; y < 18; y++ {
		for x := 0; x < 32; x++ {
			img.Set(x, y, color.RGBA{R: uint8(8 * x), G: uint8(14 * y), B: 90, A: 255})
		}
	}
	path := filepath.Join(t.TempDir(), "source.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create image: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode image: %v", err)
	}
	return path
}

func pipelineDoc(t *testing.T) *palette.Document {
	return &palette.Document{
		ID:     "pipeline-test",
		Source: writeSourceImage(t),
		Colors: []string{"#aa3333", "#33aa33", "#3333aa"},
		Ratios: []float64{3, 2, 1},
	}
}

func TestOptionsValidateAndSetDefaults(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		opts := Options{Doc: &palette.Document{}}
		if err := opts.ValidateAndSetDefaults(); err != nil {
			t.Fatalf("ValidateAndSetDefaults() error = %v", err)
		}
		if opts.Items != DefaultItems {
			t.Errorf("Items = %d, want %d", opts.Items, DefaultItems)
		}
		if !slices.Equal(opts.Formats, []string{FormatSVG}) {
			t.Errorf("Formats = %v, want [svg]", opts.Formats)
		}
		if opts.PrintWidth != 800 {
			t.Errorf("PrintWidth = %v, want 800", opts.PrintWidth)
		}
	})

	t.Run("no document", func(t *testing.T) {
		opts := Options{}
		if err := opts.ValidateAndSetDefaults(); !errors.Is(err, errors.ErrCodeInvalidInput) {
			t.Errorf("error code = %v, want INVALID_INPUT", errors.GetCode(err))
		}
	})

	t.Run("bad format", func(t *testing.T) {
		opts := Options{Doc: &palette.Document{}, Formats: []string{"pdf"}}
		if err := opts.ValidateAndSetDefaults(); !errors.Is(err, errors.ErrCodeUnsupported) {
			t.Errorf("error code = %v, want UNSUPPORTED", errors.GetCode(err))
		}
	})
}

func TestFit(t *testing.T) {
	doc := &palette.Document{
		Source: "x.jpg",
		Colors: []string{"#111111", "#222222"},
		Ratios: []float64{2, 1},
	}
	counts, err := Fit(doc, Options{Items: 12, UnlimitedSlivers: true})
	if err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	if want := []int{8, 4}; !slices.Equal(counts, want) {
		t.Errorf("Fit() = %v, want %v", counts, want)
	}
}

func TestRunnerExecute(t *testing.T) {
	ctx := context.Background()
	doc := pipelineDoc(t)

	fileCache, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}
	runner := NewRunner(fileCache, nil, nil)
	defer runner.Close()

	opts := Options{
		Doc:              doc,
		Items:            12,
		UnlimitedSlivers: true,
		Formats:          []string{FormatSVG, FormatPNG},
	}

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if want := []int{6, 4, 2}; !slices.Equal(result.Counts, want) {
		t.Errorf("Counts = %v, want %v", result.Counts, want)
	}
	if result.CacheInfo.FitHit || result.CacheInfo.RenderHit {
		t.Error("first run reported cache hits")
	}
	svg := string(result.Artifacts[FormatSVG])
	if !strings.Contains(svg, "#aa3333") {
		t.Error("svg artifact missing first palette color")
	}
	if len(result.Artifacts[FormatPNG]) == 0 {
		t.Error("png artifact empty")
	}

	// Second run is served from cache.
	result, err = runner.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute() #2 error = %v", err)
	}
	if !result.CacheInfo.FitHit || !result.CacheInfo.RenderHit {
		t.Errorf("second run cache info = %+v, want hits", result.CacheInfo)
	}
}

func TestRunnerExecute_Spread(t *testing.T) {
	doc := &palette.Document{
		ID:     "spread-test",
		Source: writeSourceImage(t),
		Colors: []string{"#000001", "#000002", "#000003", "#000004", "#000005"},
		Ratios: []float64{1, 8, 9, 1, 5},
	}

	runner := NewRunner(nil, nil, nil)
	result, err := runner.Execute(context.Background(), Options{
		Doc:              doc,
		Items:            24,
		UnlimitedSlivers: true,
		Spread:           true,
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if want := []int{8, 1, 9, 1, 5}; !slices.Equal(result.Counts, want) {
		t.Errorf("Counts = %v, want %v", result.Counts, want)
	}
	// The colors follow their counts.
	want := []string{"#000002", "#000001", "#000003", "#000004", "#000005"}
	if !slices.Equal(result.Doc.Colors, want) {
		t.Errorf("Doc.Colors = %v, want %v", result.Doc.Colors, want)
	}
}

func TestRunnerExecute_Names(t *testing.T) {
	table, err := colornames.ParseCSV(strings.NewReader(
		"name,hex\nBrick,#aa3333\nLawn,#33aa33\nCobalt,#3333aa\n"))
	if err != nil {
		t.Fatalf("ParseCSV() error = %v", err)
	}

	runner := NewRunner(nil, nil, nil)
	result, err := runner.Execute(context.Background(), Options{
		Doc:              pipelineDoc(t),
		Items:            12,
		UnlimitedSlivers: true,
		Names:            table,
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if want := []string{"Brick", "Lawn", "Cobalt"}; !slices.Equal(result.Doc.Names, want) {
		t.Errorf("Doc.Names = %v, want %v", result.Doc.Names, want)
	}
}

func TestRunnerExecute_MissingImage(t *testing.T) {
	doc := pipelineDoc(t)
	doc.Source = filepath.Join(t.TempDir(), "gone.png")

	runner := NewRunner(nil, nil, nil)
	_, err := runner.Execute(context.Background(), Options{Doc: doc})
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("error code = %v, want FILE_NOT_FOUND", errors.GetCode(err))
	}
}
