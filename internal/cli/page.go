package cli

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/swatchtower/swatchtower/pkg/colornames"
	"github.com/swatchtower/swatchtower/pkg/config"
	"github.com/swatchtower/swatchtower/pkg/errors"
	"github.com/swatchtower/swatchtower/pkg/pipeline"
	"github.com/swatchtower/swatchtower/pkg/render"
)

// pageOpts holds the command-line flags for the page command.
type pageOpts struct {
	output           string   // output directory (defaults to the input directory)
	formats          []string // output formats: "svg", "png"
	items            int      // total slices per palette
	spread           bool     // separate adjacent sliver pairs
	unlimitedSlivers bool     // fit against the raw ratios without a sliver cap
	width            float64  // output width in pixels
	names            bool     // annotate colors with their nearest known names
	refresh          bool     // bypass the cache and re-render everything
}

// newPageCmd creates the page command. It renders every palette document in
// a directory, showing an interactive progress view.
func newPageCmd(flags *rootFlags) *cobra.Command {
	var formatsStr string
	opts := pageOpts{
		width: render.DefaultPrintWidth,
	}

	cmd := &cobra.Command{
		Use:   "page [directory]",
		Short: "Render every palette document in a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			return runPage(cmd.Context(), flags, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output directory (defaults to the input directory)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png (comma-separated)")
	cmd.Flags().IntVar(&opts.items, "items", pipeline.DefaultItems, "total number of slices per palette")
	cmd.Flags().BoolVar(&opts.spread, "spread", false, "separate adjacent sliver pairs")
	cmd.Flags().BoolVar(&opts.unlimitedSlivers, "unlimited-slivers", false, "disable the sliver cap")
	cmd.Flags().Float64Var(&opts.width, "width", opts.width, "output width in pixels")
	cmd.Flags().BoolVar(&opts.names, "names", false, "look up color names")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render even if cached")

	return cmd
}

// runPage renders all palette documents under dir, one output file per
// document and format.
func runPage(ctx context.Context, flags *rootFlags, dir string, opts *pageOpts) error {
	logger := loggerFromContext(ctx)

	docs, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		return errors.New(errors.ErrCodeNotFound, "no palette documents in %s", dir)
	}
	sort.Strings(docs)

	outDir := opts.output
	if outDir == "" {
		outDir = dir
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}

	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return err
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

	renderCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(newPageModel(len(docs)), tea.WithContext(ctx))

	go func() {
		for _, docPath := range docs {
			if renderCtx.Err() != nil {
				return
			}
			err := renderPageDoc(renderCtx, runner, docPath, outDir, table, opts)
			p.Send(pageResultMsg{name: filepath.Base(docPath), err: err})
		}
		p.Send(pageDoneMsg{})
	}()

	final, err := p.Run()
	cancel()
	if err != nil {
		return err
	}

	m, ok := final.(pageModel)
	if !ok {
		return nil
	}
	if m.aborted {
		printWarning("Aborted after %d of %d palettes", m.done, m.total)
		return nil
	}

	if m.failed > 0 {
		printWarning("Rendered %d palettes, %d failed", m.done-m.failed, m.failed)
		for _, e := range m.errs {
			printDetail("%s", e)
		}
	} else {
		printSuccess("Rendered %d palettes", m.done)
	}
	printDetail("Output: %s", outDir)
	return nil
}

// renderPageDoc runs the pipeline for one document and writes its artifacts
// next to the others in outDir.
func renderPageDoc(ctx context.Context, runner *pipeline.Runner, docPath, outDir string, table *colornames.Table, opts *pageOpts) error {
	result, err := runner.Execute(ctx, pipeline.Options{
		DocPath:          docPath,
		Items:            opts.items,
		Spread:           opts.spread,
		UnlimitedSlivers: opts.unlimitedSlivers,
		Refresh:          opts.refresh,
		Formats:          opts.formats,
		PrintWidth:       opts.width,
		Names:            table,
	})
	if err != nil {
		return err
	}

	base := strings.TrimSuffix(filepath.Base(docPath), filepath.Ext(docPath))
	for _, format := range opts.formats {
		data, ok := result.Artifacts[format]
		if !ok {
			continue
		}
		outPath := filepath.Join(outDir, base+"."+format)
		if err := os.WriteFile(outPath, data, 0o644); err != nil {
			return err
		}
	}
	return nil
}
