package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdtree/internal/configloader"
	"github.com/yaklabco/mdtree/pkg/config"
)

// settingsDocument is the file layout of resolved settings. Its output is
// itself a valid configuration file.
type settingsDocument struct {
	config.Options `yaml:",inline"`

	Format  config.OutputFormat `yaml:"format"`
	Jobs    int                 `yaml:"jobs"`
	Exclude []string            `yaml:"exclude"`
	Color   string              `yaml:"color"`
}

func newConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the resolved configuration",
		Long: `Inspect how mdtree resolves its settings.

Settings are merged from, lowest to highest precedence: defaults, the user
config ($XDG_CONFIG_HOME/mdtree/config.yaml), the project config
(.mdtree.yml found by searching upward), the --config file, MDTREE_*
environment variables and command-line flags.`,
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigEnvCommand())
	cmd.AddCommand(newConfigPathCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the resolved settings as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			loaded, err := loadSettings(cmd, markdownFlags)
			if err != nil {
				return err
			}

			content, err := marshalSettings(loaded.Settings)
			if err != nil {
				return err
			}
			return writeOutput(cmd, "", content)
		},
	}

	addMarkdownFlags(cmd.Flags())

	return cmd
}

func marshalSettings(s configloader.Settings) ([]byte, error) {
	doc := settingsDocument{
		Options: s.Markdown,
		Format:  s.Format,
		Jobs:    s.Jobs,
		Exclude: s.Exclude,
		Color:   s.Color,
	}
	content, err := config.MarshalYAML(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal settings: %w", err)
	}
	return content, nil
}

func newConfigEnvCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "env",
		Short: "List the supported environment variables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			names := configloader.ListEnvVars()
			return writeOutput(cmd, "", []byte(strings.Join(names, "\n")+"\n"))
		},
	}
}

func newConfigPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the configuration files that would be loaded",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			loaded, err := loadSettings(cmd)
			if err != nil {
				return err
			}

			var b strings.Builder
			for _, path := range loaded.LoadedFrom {
				b.WriteString(path)
				b.WriteString("\n")
			}
			return writeOutput(cmd, "", []byte(b.String()))
		},
	}
}
