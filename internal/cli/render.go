package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/swatchtower/swatchtower/pkg/colornames"
	"github.com/swatchtower/swatchtower/pkg/config"
	"github.com/swatchtower/swatchtower/pkg/pipeline"
	"github.com/swatchtower/swatchtower/pkg/render"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output           string   // output file (single format) or base path
	formats          []string // output formats: "svg", "png"
	image            string   // override the source image recorded in the document
	items            int      // total slices to allocate
	spread           bool     // separate adjacent sliver pairs
	unlimitedSlivers bool     // fit against the raw ratios without a sliver cap
	width            float64  // output width in pixels
	names            bool     // annotate colors with their nearest known names
	refresh          bool     // bypass the cache and recompute
	issue            bool     // record the rendered palette in the catalog
}

// newRenderCmd creates the render command for drawing palette cards.
//
// Default settings:
//   - format: svg
//   - width: 800px
//   - items: 24 slices
func newRenderCmd(flags *rootFlags) *cobra.Command {
	var formatsStr string
	opts := renderOpts{
		width: render.DefaultPrintWidth,
	}

	cmd := &cobra.Command{
		Use:   "render [palette.json]",
		Short: "Draw a palette document as an SVG or PNG card",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			return runRender(cmd.Context(), flags, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png (comma-separated)")
	cmd.Flags().StringVar(&opts.image, "image", "", "source image (defaults to the document's source)")
	cmd.Flags().IntVar(&opts.items, "items", pipeline.DefaultItems, "total number of slices to allocate")
	cmd.Flags().BoolVar(&opts.spread, "spread", false, "separate adjacent sliver pairs")
	cmd.Flags().BoolVar(&opts.unlimitedSlivers, "unlimited-slivers", false, "disable the sliver cap")
	cmd.Flags().Float64Var(&opts.width, "width", opts.width, "output width in pixels")
	cmd.Flags().BoolVar(&opts.names, "names", false, "look up color names")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render even if cached")
	cmd.Flags().BoolVar(&opts.issue, "issue", false, "record the rendered palette in the catalog")

	return cmd
}

// parseFormats parses the --format flag into a slice of output formats.
// If empty, defaults to ["svg"].
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	return strings.Split(s, ",")
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input. If output carries a
// known format extension, that extension is stripped too.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// runRender executes the full pipeline and writes one file per format.
func runRender(ctx context.Context, flags *rootFlags, path string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return err
	}
	width := opts.width
	if width == render.DefaultPrintWidth && cfg.PrintWidth > 0 {
		width = cfg.PrintWidth
	}

	c, err := openCache(ctx, cfg.Cache)
	if err != nil {
		return err
	}
	defer c.Close()

	var table *colornames.Table
	if opts.names {
		table, err = loadColornames(ctx, cfg, c, logger)
		if err != nil {
			printWarning("color names unavailable: %v", err)
		}
	}

	runner := pipeline.NewRunner(c, nil, logger)
	result, err := runner.Execute(ctx, pipeline.Options{
		DocPath:          path,
		ImagePath:        opts.image,
		Items:            opts.items,
		Spread:           opts.spread,
		UnlimitedSlivers: opts.unlimitedSlivers,
		Refresh:          opts.refresh,
		Formats:          opts.formats,
		PrintWidth:       width,
		Names:            table,
	})
	if err != nil {
		return err
	}

	base := basePath(opts.output, path)
	printSuccess("Rendered %s", StyleHighlight.Render(filepath.Base(path)))
	for _, format := range opts.formats {
		data, ok := result.Artifacts[format]
		if !ok {
			continue
		}
		outPath := base + "." + format
		if err := os.WriteFile(outPath, data, 0o644); err != nil {
			return err
		}
		printFile(outPath)
	}
	printStats(len(result.Doc.Colors), opts.items, result.CacheInfo.RenderHit)

	if opts.issue {
		store, err := openCatalog(ctx, cfg.Catalog)
		if err != nil {
			return err
		}
		defer store.Close(ctx)
		if err := store.Put(ctx, result.Doc); err != nil {
			return err
		}
		printInfo("Issued palette %s", StyleValue.Render(result.Doc.ID))
	}

	prog.done("render complete")
	return nil
}
