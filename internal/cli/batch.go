package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdtree/internal/logging"
	"github.com/yaklabco/mdtree/pkg/config"
	"github.com/yaklabco/mdtree/pkg/reporter"
	"github.com/yaklabco/mdtree/pkg/runner"
)

// batchSettingFlags are the command-level settings accepted by "mdtree batch".
//
//nolint:gochecknoglobals // Read-only flag table.
var batchSettingFlags = []settingFlag{
	{"format", "format", flagString, "tree encoding in ast mode: json, yaml"},
	{"jobs", "jobs", flagInt, "number of parallel workers (0 = auto)"},
	{"exclude", "exclude", flagList, "glob patterns to skip"},
}

type batchFlags struct {
	mode           string
	include        []string
	write          bool
	outDir         string
	followSymlinks bool
	report         string
	verbose        bool
	compact        bool
}

func newBatchCommand() *cobra.Command {
	flags := &batchFlags{}

	cmd := &cobra.Command{
		Use:   "batch [paths...]",
		Short: "Convert many Markdown files in parallel",
		Long:  batchLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd, args, flags)
		},
	}

	addBatchFlags(cmd, flags)

	return cmd
}

const batchLongDescription = `Convert every Markdown file under the given paths.

By default, converts all .md and .markdown files in the current directory
and subdirectories. Each file is converted independently; a file that fails
does not stop the others. Without --write the run only checks that every
file converts.

Examples:
  mdtree batch                               # Check the current directory
  mdtree batch docs/ --write                 # Write docs/*.json next to sources
  mdtree batch --mode html --out-dir site/   # Mirror the tree as HTML under site/
  mdtree batch --format yaml --write         # YAML trees
  mdtree batch --report json                 # Machine-readable report`

func runBatch(cmd *cobra.Command, args []string, flags *batchFlags) error {
	ctx := cmd.Context()
	logger := logging.FromContext(ctx)

	loaded, err := loadSettings(cmd, batchSettingFlags, markdownFlags)
	if err != nil {
		return err
	}
	settings := loaded.Settings

	// A tree format from config files suits "mdtree ast" only.
	format := settings.Format
	if format == config.FormatTree && !cmd.Flags().Changed("format") {
		format = config.FormatJSON
	}

	reportFormat, err := reporter.ParseFormat(flags.report)
	if err != nil {
		return usageError(err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	write := flags.write || flags.outDir != ""
	runOpts := runner.Options{
		Paths:          args,
		WorkingDir:     workDir,
		Extensions:     runner.DefaultExtensions(),
		IncludeGlobs:   flags.include,
		ExcludeGlobs:   settings.Exclude,
		FollowSymlinks: flags.followSymlinks,
		Jobs:           settings.EffectiveJobs(),
		Mode:           runner.Mode(flags.mode),
		Format:         format,
		Markdown:       settings.Markdown,
		Write:          write,
		OutDir:         flags.outDir,
	}

	logger.Debug("starting batch run",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldWorkingDir, runOpts.WorkingDir,
		logging.FieldJobs, runOpts.Jobs,
		logging.FieldMode, runOpts.Mode,
	)

	result, err := runner.Run(ctx, runOpts)
	if err != nil {
		return fmt.Errorf("batch run failed: %w", err)
	}

	rep, err := reporter.New(reporter.Options{
		Writer:     cmd.OutOrStdout(),
		Format:     reportFormat,
		Color:      settings.Color,
		Verbose:    flags.verbose,
		Compact:    flags.compact,
		WorkingDir: workDir,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if err := rep.Report(ctx, result); err != nil {
		logger.Error("report failed", logging.FieldError, err)
		return fmt.Errorf("report results: %w", err)
	}

	if ExitCodeFromResult(result) != ExitSuccess {
		return ErrConversionFailed
	}
	return nil
}

func addBatchFlags(cmd *cobra.Command, flags *batchFlags) {
	cmd.Flags().StringVar(&flags.mode, "mode", string(runner.ModeAST), "conversion: ast or html")
	cmd.Flags().StringSliceVar(&flags.include, "include", nil, "only convert files matching these globs")
	cmd.Flags().BoolVarP(&flags.write, "write", "w", false, "write outputs next to each source")
	cmd.Flags().StringVar(&flags.outDir, "out-dir", "", "write outputs under this directory, mirroring the source tree")
	cmd.Flags().BoolVar(&flags.followSymlinks, "follow-symlinks", false, "follow symlinked directories")
	cmd.Flags().StringVar(&flags.report, "report", "text", "report format: text, json, summary")
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "list every file in the text report")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "minified JSON report")

	addSettingFlags(cmd.Flags(), batchSettingFlags)
	addMarkdownFlags(cmd.Flags())
}
