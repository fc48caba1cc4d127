package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/mdtree/internal/logging"
	"github.com/yaklabco/mdtree/pkg/config"
	"github.com/yaklabco/mdtree/pkg/fsutil"
)

// errInitAborted is returned when the user declines to overwrite.
var errInitAborted = errors.New("init aborted")

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	preset string
	format string
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new mdtree configuration file",
		Long: `Create a new .mdtree.yml configuration file in the current directory
listing every option with its documentation and default value.

When the file exists and standard input is a terminal, asks before
overwriting it. With --force the existing file is copied to a .bak backup
and replaced without asking.

Examples:
  mdtree init                      Create .mdtree.yml
  mdtree init --preset gfm         Start from the GFM extensions
  mdtree init --format json        Create .mdtree.json instead
  mdtree init --output custom.yml  Write to a custom file path`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite an existing file, keeping a .bak backup")
	cmd.Flags().StringVar(&flags.preset, "preset", "default", "Starting values: default or gfm")
	cmd.Flags().StringVar(&flags.format, "format", "yaml", "Output format: yaml or json")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output file path (default: .mdtree.yml or .mdtree.json)")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	ctx := cmd.Context()
	logger := logging.FromContext(ctx)

	if flags.format != "yaml" && flags.format != "json" {
		return usageError(fmt.Errorf("invalid format %q: must be yaml or json", flags.format))
	}

	outputPath := flags.output
	if outputPath == "" {
		if flags.format == "json" {
			outputPath = ".mdtree.json"
		} else {
			outputPath = ".mdtree.yml"
		}
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	content, err := config.GenerateTemplate(config.TemplateOptions{
		Format: flags.format,
		Preset: flags.preset,
	})
	if err != nil {
		return usageError(fmt.Errorf("generate template: %w", err))
	}

	if fsutil.Exists(absPath) {
		if !flags.force {
			if !isInteractive() {
				return usageError(fmt.Errorf("file %q already exists; use --force to overwrite", outputPath))
			}
			ok, err := confirm(cmd.InOrStdin(), cmd.ErrOrStderr(), fmt.Sprintf("Overwrite %s?", outputPath))
			if err != nil {
				return err
			}
			if !ok {
				return errInitAborted
			}
		}

		backup, err := fsutil.Backup(ctx, absPath)
		if err != nil {
			return fmt.Errorf("back up existing config: %w", err)
		}
		logger.Warn("overwriting existing file", logging.FieldPath, outputPath, "backup", backup)
	}

	if err := fsutil.WriteAtomic(ctx, absPath, content, fsutil.DefaultFileMode); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)
	logger.Info("customize your configuration by editing the file")
	logger.Info("run 'mdtree config show' to see the resolved settings")

	return nil
}

// isInteractive returns true if stdin is a terminal.
func isInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// confirm asks a yes/no question. Anything but y or yes is a no.
func confirm(in io.Reader, out io.Writer, question string) (bool, error) {
	if _, err := fmt.Fprintf(out, "%s [y/N] ", question); err != nil {
		return false, fmt.Errorf("write prompt: %w", err)
	}

	response, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("read response: %w", err)
	}

	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}
