package cli_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/yaklabco/mdtree/internal/cli"
)

func testInfo() cli.BuildInfo {
	return cli.BuildInfo{
		Version: "test",
		Commit:  "test",
		Date:    "test",
	}
}

func TestNewRootCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())

	if cmd == nil {
		t.Fatal("NewRootCommand returned nil")
	}

	if cmd.Use != "mdtree" {
		t.Errorf("expected Use to be 'mdtree', got %q", cmd.Use)
	}

	if cmd.Short == "" {
		t.Error("expected Short description to be set")
	}

	if cmd.Long == "" {
		t.Error("expected Long description to be set")
	}
}

func TestRootCommandHasSubcommands(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())

	expectedSubcommands := []string{"ast", "html", "batch", "init", "config", "version"}

	for _, name := range expectedSubcommands {
		subCmd, _, err := cmd.Find([]string{name})
		if err != nil {
			t.Errorf("expected subcommand %q to exist, got error: %v", name, err)
			continue
		}

		if subCmd.Name() != name {
			t.Errorf("expected subcommand name %q, got %q", name, subCmd.Name())
		}
	}
}

func TestConversionCommandFlags(t *testing.T) {
	t.Parallel()

	markdownFlags := []string{
		"preset", "strikethrough", "tagfilter", "table", "autolink", "tasklist",
		"superscript", "footnotes", "description-lists", "header-ids", "front-matter",
		"smart", "default-info-string", "relaxed-tasklist-matching", "relaxed-autolinks",
		"hardbreaks", "github-pre-lang", "full-info-string", "width", "unsafe",
		"escape", "list-style", "sourcepos",
	}

	tests := []struct {
		command string
		extra   []string
	}{
		{command: "ast", extra: []string{"format", "output"}},
		{command: "html", extra: []string{"output"}},
		{command: "batch", extra: []string{
			"format", "jobs", "exclude", "include", "mode", "write", "out-dir",
			"follow-symlinks", "report", "verbose", "compact",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.command, func(t *testing.T) {
			t.Parallel()

			cmd := cli.NewRootCommand(testInfo())
			sub, _, err := cmd.Find([]string{tt.command})
			if err != nil {
				t.Fatalf("%s command not found: %v", tt.command, err)
			}

			for _, name := range append(markdownFlags, tt.extra...) {
				if sub.Flags().Lookup(name) == nil {
					t.Errorf("expected flag %q to exist on %s command", name, tt.command)
				}
			}
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())

	expectedFlags := []string{"debug", "config", "no-config", "color"}

	for _, flagName := range expectedFlags {
		flag := cmd.PersistentFlags().Lookup(flagName)
		if flag == nil {
			t.Errorf("expected global flag %q to exist", flagName)
		}
	}
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	info := cli.BuildInfo{
		Version: "1.2.3",
		Commit:  "abc123",
		Date:    "2024-01-01",
	}

	cmd := cli.NewRootCommand(info)
	cmd.SetArgs([]string{"version"})

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("version command failed: %v", err)
	}

	if !bytes.Contains(out.Bytes(), []byte("1.2.3")) {
		t.Errorf("expected version in output, got %q", out.String())
	}
}

func TestBatchCommandAcceptsArbitraryArgs(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	batchCmd, _, err := cmd.Find([]string{"batch"})
	if err != nil {
		t.Fatalf("batch command not found: %v", err)
	}

	err = batchCmd.Args(batchCmd, []string{"file1.md", "file2.md", "docs/"})
	if err != nil {
		t.Errorf("batch command should accept arbitrary args, got error: %v", err)
	}
}

func TestASTCommandRejectsExtraArgs(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	astCmd, _, err := cmd.Find([]string{"ast"})
	if err != nil {
		t.Fatalf("ast command not found: %v", err)
	}

	if err := astCmd.Args(astCmd, []string{"a.md", "b.md"}); err == nil {
		t.Error("ast command should reject two inputs")
	}
}

func TestHelpGroupsMarkdownOptions(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	cmd.SetArgs([]string{"ast", "--help"})

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("help failed: %v", err)
	}

	help := out.String()
	flagsAt := strings.Index(help, "Flags:")
	optionsAt := strings.Index(help, "Markdown Options:")
	globalAt := strings.Index(help, "Global Flags:")
	if flagsAt < 0 || optionsAt < 0 || globalAt < 0 {
		t.Fatalf("missing help sections in:\n%s", help)
	}

	// The long description mentions flags too, so search from the sections.
	formatAt := flagsAt + strings.Index(help[flagsAt:], "--format")
	smartAt := flagsAt + strings.Index(help[flagsAt:], "--smart")
	if formatAt < flagsAt || formatAt > optionsAt {
		t.Errorf("--format should be listed under Flags")
	}
	if smartAt < optionsAt || smartAt > globalAt {
		t.Errorf("--smart should be listed under Markdown Options")
	}
}
