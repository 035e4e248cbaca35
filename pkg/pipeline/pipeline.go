// Package pipeline runs the palette rendering pipeline.
//
// The pipeline turns a palette document into rendered artifacts in three
// stages:
//
//  1. Fit: discretize the document's color ratios into a slice allocation,
//     optionally spreading slivers apart
//  2. Name: look up human-readable names for the palette colors
//  3. Render: draw the palette card in the requested formats (SVG, PNG)
//
// A Runner executes the pipeline with caching so the CLI and the preview
// server share one code path.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    DocPath: "dunes.json",
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/swatchtower/swatchtower/pkg/cache"
	"github.com/swatchtower/swatchtower/pkg/colornames"
	"github.com/swatchtower/swatchtower/pkg/errors"
	"github.com/swatchtower/swatchtower/pkg/palette"
	"github.com/swatchtower/swatchtower/pkg/render"
)

// DefaultItems is the default slice budget for the allocation. Twenty-four
// slices are enough to tell a 2:1 ratio from a 3:2 at palette sizes while
// keeping block heights readable.
const DefaultItems = 24

// Format constants for output formats.
const (
	FormatSVG = "svg"
	FormatPNG = "png"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG: true,
	FormatPNG: true,
}

// Options contains all configuration for the palette pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Input options. Doc takes precedence over DocPath; ImagePath
	// defaults to the document's Source.
	DocPath   string            `json:"doc_path,omitempty"`
	Doc       *palette.Document `json:"-"`
	ImagePath string            `json:"image_path,omitempty"`

	// Fit options
	Items            int  `json:"items,omitempty"`
	UnlimitedSlivers bool `json:"unlimited_slivers,omitempty"`
	Spread           bool `json:"spread,omitempty"`
	Refresh          bool `json:"refresh,omitempty"`

	// Render options
	Formats    []string `json:"formats,omitempty"`
	PrintWidth float64  `json:"print_width,omitempty"`

	// Runtime options (not serialized)
	Names  *colornames.Table `json:"-"`
	Logger *log.Logger       `json:"-"`
}

// ValidateAndSetDefaults checks the options and fills in defaults.
func (o *Options) ValidateAndSetDefaults() error {
	if o.Doc == nil && o.DocPath == "" {
		return errors.New(errors.ErrCodeInvalidInput, "no palette document given")
	}
	if o.Items == 0 {
		o.Items = DefaultItems
	}
	if o.Items < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "items must be positive, got %d", o.Items)
	}
	if o.PrintWidth == 0 {
		o.PrintWidth = render.DefaultPrintWidth
	}
	if o.PrintWidth < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "print width must be positive, got %v", o.PrintWidth)
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	for _, f := range o.Formats {
		if !ValidFormats[f] {
			return errors.New(errors.ErrCodeUnsupported, "unsupported format %q", f)
		}
	}
	return nil
}

// FitKeyOpts returns the cache key options for the fit stage.
func (o *Options) FitKeyOpts() cache.FitKeyOpts {
	return cache.FitKeyOpts{
		Items:   o.Items,
		Slivers: !o.UnlimitedSlivers,
		Spread:  o.Spread,
	}
}

// ArtifactKeyOpts returns the cache key options for one rendered format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:     format,
		PrintWidth: o.PrintWidth,
	}
}

// Result is the output of a pipeline execution.
type Result struct {
	// Doc is the document as rendered: colors in final (possibly spread)
	// order, Names filled in when a colornames table was given.
	Doc *palette.Document

	// Counts is the slice allocation, parallel to Doc.Colors.
	Counts []int

	// DocHash identifies the input document for cache keys.
	DocHash string

	// Artifacts maps format to rendered bytes.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats reports per-stage wall time.
type Stats struct {
	FitTime    time.Duration `json:"fit_time"`
	RenderTime time.Duration `json:"render_time"`
}

// CacheInfo reports which stages were served from cache.
type CacheInfo struct {
	FitHit    bool `json:"fit_hit"`
	RenderHit bool `json:"render_hit"`
}
