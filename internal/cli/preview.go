package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/swatchtower/swatchtower/pkg/cache"
	"github.com/swatchtower/swatchtower/pkg/config"
	"github.com/swatchtower/swatchtower/pkg/palette"
	"github.com/swatchtower/swatchtower/pkg/pipeline"
)

// previewOpts holds the command-line flags for the preview command.
type previewOpts struct {
	items            int  // total slices to allocate
	spread           bool // separate adjacent sliver pairs
	unlimitedSlivers bool // fit against the raw ratios without a sliver cap
	names            bool // annotate colors with their nearest known names
}

// previewBarWidth is the character width of the color column.
const previewBarWidth = 24

// newPreviewCmd creates the preview command. It draws the palette's block
// column directly in the terminal, each color as many rows tall as its
// slice count.
func newPreviewCmd(flags *rootFlags) *cobra.Command {
	var opts previewOpts

	cmd := &cobra.Command{
		Use:   "preview [palette.json]",
		Short: "Show a palette in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPreview(cmd.Context(), flags, args[0], &opts)
		},
	}

	cmd.Flags().IntVar(&opts.items, "items", pipeline.DefaultItems, "total number of slices to allocate")
	cmd.Flags().BoolVar(&opts.spread, "spread", false, "separate adjacent sliver pairs")
	cmd.Flags().BoolVar(&opts.unlimitedSlivers, "unlimited-slivers", false, "disable the sliver cap")
	cmd.Flags().BoolVar(&opts.names, "names", false, "look up color names")

	return cmd
}

// runPreview fits the document and prints a proportional color column.
func runPreview(ctx context.Context, flags *rootFlags, path string, opts *previewOpts) error {
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

	runner := pipeline.NewRunner(c, nil, logger)
	pOpts := pipeline.Options{
		Doc:              doc,
		Items:            opts.items,
		Spread:           opts.spread,
		UnlimitedSlivers: opts.unlimitedSlivers,
	}

	counts, perm, _, err := runner.FitWithCacheInfo(ctx, doc, cache.Hash(docData), pOpts)
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

	fmt.Println(StyleTitle.Render(filepath.Base(path)))
	if doc.Comment != "" {
		fmt.Println(StyleDim.Render(doc.Comment))
	}
	fmt.Println()
	printColumn(doc, counts)
	fmt.Println()
	printDetail("Source: %s", doc.Source)
	printNextStep("Render the card", appName+" render "+path)
	return nil
}

// printColumn prints each color as a block of rows proportional to its
// slice count, mirroring the card's block column.
func printColumn(doc *palette.Document, counts []int) {
	colors := doc.NormalizedColors()
	bar := strings.Repeat(" ", previewBarWidth)
	for i, hex := range colors {
		rows := 1
		if i < len(counts) && counts[i] > 0 {
			rows = counts[i]
		}
		block := lipgloss.NewStyle().Background(lipgloss.Color(hex)).Render(bar)
		for r := 0; r < rows; r++ {
			line := "  " + block
			if r == 0 {
				line += " " + StyleValue.Render(hex)
				if i < len(doc.Names) {
					line += " " + StyleDim.Render(doc.Names[i])
				}
			}
			fmt.Println(line)
		}
	}
}
