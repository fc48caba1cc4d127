package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yaklabco/mdtree/internal/configloader"
	"github.com/yaklabco/mdtree/internal/logging"
)

// flagKind is the pflag type backing a settings flag.
type flagKind int

const (
	flagBool flagKind = iota
	flagString
	flagUint
	flagInt
	flagList
)

// settingFlag binds a command-line flag to a configuration key. Flags that
// are set on the command line form the highest-precedence layer.
type settingFlag struct {
	name  string
	key   string
	kind  flagKind
	usage string
}

// markdownFlags cover the option record. Every conversion command takes them.
//
//nolint:gochecknoglobals // Read-only flag table.
var markdownFlags = []settingFlag{
	{"preset", "preset", flagString, "start from a preset: default or gfm"},

	{"strikethrough", "strikethrough", flagBool, "enable ~~strikethrough~~"},
	{"tagfilter", "tagfilter", flagBool, "escape the GFM disallowed raw HTML tags"},
	{"table", "table", flagBool, "enable GFM tables"},
	{"autolink", "autolink", flagBool, "link bare URLs and www. addresses"},
	{"tasklist", "tasklist", flagBool, "enable [ ] and [x] task items"},
	{"superscript", "superscript", flagBool, "enable ^superscript^"},
	{"footnotes", "footnotes", flagBool, "enable [^name] footnotes"},
	{"description-lists", "description_lists", flagBool, "enable term / \": details\" lists"},
	{"header-ids", "header_ids", flagString, "add heading ids with this prefix (\"~\" disables)"},
	{"front-matter", "front_matter_delimiter", flagString, "strip front matter fenced by this delimiter (\"~\" disables)"},

	{"smart", "smart", flagBool, "use typographic quotes, dashes and ellipses"},
	{"default-info-string", "default_info_string", flagString, "info string for fenced code without one"},
	{"relaxed-tasklist-matching", "relaxed_tasklist_matching", flagBool, "accept any character inside task brackets"},
	{"relaxed-autolinks", "relaxed_autolinks", flagBool, "autolink additional URL schemes"},

	{"hardbreaks", "hardbreaks", flagBool, "render soft line breaks as <br />"},
	{"github-pre-lang", "github_pre_lang", flagBool, "put the code language on <pre lang=...>"},
	{"full-info-string", "full_info_string", flagBool, "keep info string metadata in data-meta"},
	{"width", "width", flagUint, "wrap column for text output (0 = no wrapping)"},
	{"unsafe", "unsafe", flagBool, "pass raw HTML and dangerous links through"},
	{"escape", "escape", flagBool, "escape raw HTML instead of omitting it"},
	{"list-style", "list_style", flagString, "bullet glyph for text output: dash, plus, star"},
	{"sourcepos", "sourcepos", flagBool, "annotate blocks with data-sourcepos"},
}

// addSettingFlags registers flags on cmd. Defaults are zero values; only
// flags the user sets reach the configuration.
func addSettingFlags(flags *pflag.FlagSet, table []settingFlag) {
	for _, f := range table {
		switch f.kind {
		case flagBool:
			flags.Bool(f.name, false, f.usage)
		case flagUint:
			flags.Uint(f.name, 0, f.usage)
		case flagInt:
			flags.Int(f.name, 0, f.usage)
		case flagList:
			flags.StringSlice(f.name, nil, f.usage)
		default:
			flags.String(f.name, "", f.usage)
		}
	}
}

// addMarkdownFlags registers the option flags and marks them for help.
func addMarkdownFlags(flags *pflag.FlagSet) {
	addSettingFlags(flags, markdownFlags)
	for _, f := range markdownFlags {
		flags.Lookup(f.name).Annotations = map[string][]string{optionAnnotation: {f.key}}
	}
}

// flagLayer collects the changed flags of cmd into a configuration layer.
func flagLayer(cmd *cobra.Command, tables ...[]settingFlag) (*configloader.Layer, error) {
	layer := configloader.NewLayer(configloader.SourceFlags)
	flags := cmd.Flags()

	if flags.Changed("color") {
		color, err := flags.GetString("color")
		if err != nil {
			return nil, fmt.Errorf("get color flag: %w", err)
		}
		if err := layer.Set("color", color); err != nil {
			return nil, usageError(err)
		}
	}

	for _, table := range tables {
		for _, f := range table {
			if !flags.Changed(f.name) {
				continue
			}
			raw, err := flagValue(flags, f)
			if err != nil {
				return nil, err
			}
			if err := layer.Set(f.key, raw); err != nil {
				return nil, usageError(fmt.Errorf("--%s: %w", f.name, err))
			}
		}
	}
	return layer, nil
}

func flagValue(flags *pflag.FlagSet, f settingFlag) (string, error) {
	if f.kind == flagList {
		list, err := flags.GetStringSlice(f.name)
		if err != nil {
			return "", fmt.Errorf("get %s flag: %w", f.name, err)
		}
		return strings.Join(list, ","), nil
	}
	return flags.Lookup(f.name).Value.String(), nil
}

// loadSettings resolves the configuration for cmd: files, environment and
// the flags in tables.
func loadSettings(cmd *cobra.Command, tables ...[]settingFlag) (*configloader.LoadResult, error) {
	ctx := cmd.Context()
	logger := logging.FromContext(ctx)

	layer, err := flagLayer(cmd, tables...)
	if err != nil {
		return nil, err
	}

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}
	noConfig, err := cmd.Flags().GetBool("no-config")
	if err != nil {
		return nil, fmt.Errorf("get no-config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	result, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:          workDir,
		ExplicitPath:        configPath,
		IgnoreUserConfig:    noConfig,
		IgnoreProjectConfig: noConfig,
		Flags:               layer,
	})
	if err != nil {
		return nil, errors.Join(errors.New("failed to load configuration"), err)
	}

	for _, warning := range result.Warnings {
		logger.Warn(warning)
	}
	if len(result.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldFiles, result.LoadedFrom)
	}
	logger.Debug("configuration loaded",
		logging.FieldFormat, result.Settings.Format,
		logging.FieldJobs, result.Settings.Jobs,
		"escape", result.Settings.Markdown.Escape,
		"width", result.Settings.Markdown.Width,
	)

	return result, nil
}
