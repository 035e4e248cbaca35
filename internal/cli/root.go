package cli

import (
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/swatchtower/swatchtower/pkg/buildinfo"
)

// appName is the application name used for directories and display.
const appName = "swatchtower"

// rootFlags holds the persistent flags shared by every command.
type rootFlags struct {
	verbose    bool
	configPath string
}

// Execute runs the swatchtower CLI and returns an error if any command fails.
// This is the main entry point for the CLI application.
//
// The function sets up the root command with all subcommands, configures
// logging based on the --verbose flag, and executes the command tree.
//
// Logging:
//   - Default: info level (logs to stderr)
//   - With --verbose (-v): debug level
//
// The logger is attached to the context and accessible to all commands via
// loggerFromContext.
func Execute(ctx context.Context) error {
	var flags rootFlags

	root := &cobra.Command{
		Use:          appName,
		Short:        "Swatchtower renders palette images from palette documents",
		Long:         `Swatchtower turns palette documents (a source photograph, palette colors, and their relative weights) into palette cards: the cropped photograph beside a column of color blocks whose heights encode the weights.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if flags.verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&flags.configPath, "config", "", "path to swatchtower.toml")

	root.AddCommand(newLayoutCmd(&flags))
	root.AddCommand(newRenderCmd(&flags))
	root.AddCommand(newPageCmd(&flags))
	root.AddCommand(newPreviewCmd(&flags))
	root.AddCommand(newServeCmd(&flags))
	root.AddCommand(newCacheCmd(&flags))
	root.AddCommand(newColornamesCmd(&flags))
	root.AddCommand(newCompletionCmd())

	return root.ExecuteContext(ctx)
}
