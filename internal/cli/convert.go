package cli

import (
	"fmt"
	"io"
	"path/filepath"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdtree/internal/configloader"
	"github.com/yaklabco/mdtree/internal/logging"
	"github.com/yaklabco/mdtree/internal/ui/pretty"
	"github.com/yaklabco/mdtree/pkg/config"
	"github.com/yaklabco/mdtree/pkg/exchange"
	"github.com/yaklabco/mdtree/pkg/fsutil"
	"github.com/yaklabco/mdtree/pkg/markdown"
)

// stdinArg names standard input as the command argument.
const stdinArg = "-"

// astFlags are the command-level settings accepted by "mdtree ast".
//
//nolint:gochecknoglobals // Read-only flag table.
var astFlags = []settingFlag{
	{"format", "format", flagString, "output format: json, yaml, tree"},
}

func newASTCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "ast [file|-]",
		Short: "Print the syntax tree of a Markdown document",
		Long: `Parse a Markdown document and print its syntax tree.

The tree is printed in the exchange encoding: every node is a tag, a map
of fields and an ordered list of children. Reads standard input when no
file is given or the file is "-".

Examples:
  mdtree ast README.md                 # JSON tree on stdout
  mdtree ast --format yaml README.md   # YAML tree
  mdtree ast --format tree README.md   # Indented outline for reading
  cat doc.md | mdtree ast --preset gfm # GFM extensions, from stdin`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAST(cmd, args, output)
		},
	}

	addSettingFlags(cmd.Flags(), astFlags)
	addMarkdownFlags(cmd.Flags())
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to a file instead of stdout")

	return cmd
}

func runAST(cmd *cobra.Command, args []string, output string) error {
	loaded, err := loadSettings(cmd, astFlags, markdownFlags)
	if err != nil {
		return err
	}
	settings := loaded.Settings

	source, name, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	ctx := logging.WithSource(cmd.Context(), name)
	value, err := markdown.ToAST(ctx, source, settings.Markdown)
	if err != nil {
		return fmt.Errorf("convert %s: %w", name, err)
	}

	var content []byte
	if settings.Format == config.FormatTree {
		styles := pretty.NewStyles(output == "" && colorEnabled(settings, cmd.OutOrStdout()))
		content = []byte(styles.FormatTree(value))
	} else {
		content, err = exchange.Marshal(value, settings.Format)
		if err != nil {
			return fmt.Errorf("encode %s: %w", name, err)
		}
	}

	logging.FromContext(ctx).Debug("converted",
		logging.FieldFormat, settings.Format,
		logging.FieldBytes, len(content),
	)
	return writeOutput(cmd, output, content)
}

func newHTMLCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "html [file|-]",
		Short: "Render a Markdown document to HTML",
		Long: `Render a Markdown document to an HTML fragment.

Reads standard input when no file is given or the file is "-".

Examples:
  mdtree html README.md
  mdtree html --preset gfm --unsafe README.md -o README.html
  echo '*hi*' | mdtree html`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHTML(cmd, args, output)
		},
	}

	addMarkdownFlags(cmd.Flags())
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to a file instead of stdout")

	return cmd
}

func runHTML(cmd *cobra.Command, args []string, output string) error {
	loaded, err := loadSettings(cmd, markdownFlags)
	if err != nil {
		return err
	}

	source, name, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	html, err := markdown.ToHTML(logging.WithSource(cmd.Context(), name), source, loaded.Settings.Markdown)
	if err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	return writeOutput(cmd, output, []byte(html))
}

// readInput returns the document named by args and a display name for it.
func readInput(cmd *cobra.Command, args []string) (string, string, error) {
	var (
		content []byte
		name    string
	)

	if len(args) == 0 || args[0] == stdinArg {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", "", fmt.Errorf("read stdin: %w", err)
		}
		content, name = data, "<stdin>"
	} else {
		src, err := fsutil.ReadSource(cmd.Context(), args[0])
		if err != nil {
			return "", "", err
		}
		content, name = src.Content, args[0]
	}

	if !utf8.Valid(content) {
		return "", "", usageError(fmt.Errorf("%s: input is not valid UTF-8", name))
	}
	return string(content), name, nil
}

// writeOutput writes content to path, or to the command's stdout when path
// is empty.
func writeOutput(cmd *cobra.Command, path string, content []byte) error {
	if path == "" {
		if _, err := cmd.OutOrStdout().Write(content); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		return nil
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}
	if err := fsutil.WriteAtomic(cmd.Context(), abs, content, fsutil.DefaultFileMode); err != nil {
		return err
	}
	logging.FromContext(cmd.Context()).Debug("wrote output", logging.FieldOutput, abs)
	return nil
}

// colorEnabled resolves the configured color mode against w.
func colorEnabled(settings configloader.Settings, w io.Writer) bool {
	return pretty.IsColorEnabled(settings.Color, w)
}
