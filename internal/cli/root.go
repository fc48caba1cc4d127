// Package cli provides the Cobra command structure for mdtree.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdtree/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root mdtree command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var noConfig bool
	var color string

	rootCmd := &cobra.Command{
		Use:   "mdtree",
		Short: "Convert Markdown into a typed syntax tree or HTML",
		Long: `mdtree parses CommonMark and GitHub Flavored Markdown into a typed
syntax tree.

The tree can be printed as JSON, YAML or an indented outline, or the
document can be rendered to HTML. Extensions, parse behavior and rendering
are controlled by one flat option record that can be set from config
files, MDTREE_* environment variables or flags.`,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
			cmd.SetContext(logging.WithLogger(cmd.Context(), logging.Default()))
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().BoolVar(&noConfig, "no-config", false, "ignore user and project config files")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	// Add subcommands.
	rootCmd.AddCommand(newASTCommand())
	rootCmd.AddCommand(newHTMLCommand())
	rootCmd.AddCommand(newBatchCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newConfigCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	// Apply styled help formatting.
	helpFormatter := NewHelpFormatter(color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}
