package cli

import (
	"context"
	"encoding/json"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/swatchtower/swatchtower/pkg/blocks"
	"github.com/swatchtower/swatchtower/pkg/cache"
	"github.com/swatchtower/swatchtower/pkg/config"
	"github.com/swatchtower/swatchtower/pkg/palette"
	"github.com/swatchtower/swatchtower/pkg/pipeline"
)

// layoutOpts holds the command-line flags for the layout command.
type layoutOpts struct {
	items            int  // total slices to allocate across the palette
	spread           bool // redistribute slices to avoid adjacent sliver pairs
	unlimitedSlivers bool // fit against the raw ratios without a sliver cap
	names            bool // annotate colors with their nearest known names
	refresh          bool // bypass the cache and recompute
}

// newLayoutCmd creates the layout command. It computes the slice allocation
// for a palette document and prints it without rendering anything.
func newLayoutCmd(flags *rootFlags) *cobra.Command {
	var opts layoutOpts

	cmd := &cobra.Command{
		Use:   "layout [palette.json]",
		Short: "Compute the slice allocation for a palette document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLayout(cmd.Context(), flags, args[0], &opts)
		},
	}

	cmd.Flags().IntVar(&opts.items, "items", pipeline.DefaultItems, "total number of slices to allocate")
	cmd.Flags().BoolVar(&opts.spread, "spread", false, "separate adjacent sliver pairs")
	cmd.Flags().BoolVar(&opts.unlimitedSlivers, "unlimited-slivers", false, "disable the sliver cap")
	cmd.Flags().BoolVar(&opts.names, "names", false, "look up color names")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute even if cached")

	return cmd
}

// runLayout loads the document, fits it, and prints the resulting swatches.
func runLayout(ctx context.Context, flags *rootFlags, path string, opts *layoutOpts) error {
	logger := loggerFromContext(ctx)

	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return err
	}

	c, err := openCache(ctx, cfg.Cache)
	if err != nil {
		return err
	}
	defer c.Close()

	doc, err := palette.ReadFile(path)
	if err != nil {
		return err
	}

	docData, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	docHash := cache.Hash(docData)

	runner := pipeline.NewRunner(c, nil, logger)
	pOpts := pipeline.Options{
		Doc:              doc,
		Items:            opts.items,
		Spread:           opts.spread,
		UnlimitedSlivers: opts.unlimitedSlivers,
		Refresh:          opts.refresh,
	}

	counts, perm, hit, err := runner.FitWithCacheInfo(ctx, doc, docHash, pOpts)
	if err != nil {
		return err
	}
	doc = pipeline.PermuteDoc(doc, perm)

	if opts.names {
		table, err := loadColornames(ctx, cfg, c, logger)
		if err != nil {
			printWarning("color names unavailable: %v", err)
		} else if names, err := table.NearestAll(doc.NormalizedColors()); err == nil {
			doc.Names = names
		}
	}

	printInfo("Layout for %s", StyleHighlight.Render(filepath.Base(path)))
	printSwatches(doc, counts)
	printStats(len(doc.Colors), opts.items, hit)

	groups := blocks.GroupSlices(counts)
	if len(groups) < len(counts) {
		printDetail("%d colors in %d block groups (sliver pairs share a row)", len(counts), len(groups))
	}

	printNextStep("Render the card", appName+" render "+path)
	return nil
}
