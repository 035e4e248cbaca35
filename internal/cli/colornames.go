package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/swatchtower/swatchtower/pkg/cache"
	"github.com/swatchtower/swatchtower/pkg/colornames"
	"github.com/swatchtower/swatchtower/pkg/config"
	"github.com/swatchtower/swatchtower/pkg/palette"
)

// newColornamesCmd creates the colornames command. Without arguments it
// reports the size of the name table; with hex arguments it prints the
// nearest known name for each color.
func newColornamesCmd(flags *rootFlags) *cobra.Command {
	var refresh bool

	cmd := &cobra.Command{
		Use:   "colornames [hex...]",
		Short: "Look up names for colors",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runColornames(cmd.Context(), flags, args, refresh)
		},
	}

	cmd.Flags().BoolVar(&refresh, "refresh", false, "re-download the name table")

	return cmd
}

// runColornames loads the name table and resolves each hex argument.
func runColornames(ctx context.Context, flags *rootFlags, hexes []string, refresh bool) error {
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

	if refresh {
		url := cfg.Colornames.URL
		if url == "" {
			url = colornames.DefaultURL
		}
		key := cache.NewDefaultKeyer().HTTPKey("colornames", url)
		if err := c.Delete(ctx, key); err != nil {
			logger.Debug("drop cached colornames", "error", err)
		}
	}

	sp := newSpinnerWithContext(ctx, "loading color names...")
	sp.Start()
	table, err := loadColornames(ctx, cfg, c, logger)
	sp.Stop()
	if err != nil {
		return err
	}

	if len(hexes) == 0 {
		printSuccess("Loaded %d color names", table.Len())
		printNextStep("Look up a color", appName+" colornames '#dc143c'")
		return nil
	}

	for _, hex := range hexes {
		name, err := table.Nearest(hex)
		if err != nil {
			printError("%s: %v", hex, err)
			continue
		}
		swatch := lipgloss.NewStyle().
			Background(lipgloss.Color(palette.NormalizeHex(hex))).
			Render(strings.Repeat(" ", 4))
		fmt.Println("  " + swatch + " " + StyleValue.Render(palette.NormalizeHex(hex)) + " " + StyleHighlight.Render(name))
	}
	return nil
}
