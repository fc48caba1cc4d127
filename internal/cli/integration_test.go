package cli_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdtree/internal/cli"
	"github.com/yaklabco/mdtree/internal/configloader"
	"github.com/yaklabco/mdtree/pkg/fsutil"
)

// execute runs the root command with stdin and returns stdout and the error.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	cmd := cli.NewRootCommand(testInfo())

	var stdout, stderr bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--no-config", "--color", "never"}, args...))

	err := cmd.Execute()
	return stdout.String(), err
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "mdtree.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestIntegration_ASTFromStdin(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "# Hi\n", "ast")
	require.NoError(t, err)

	assert.Contains(t, out, `"tag": "Document"`)
	assert.Contains(t, out, `"tag": "Heading"`)
	assert.Contains(t, out, `"level": 1`)
	assert.True(t, strings.HasSuffix(out, "\n"))
}

func TestIntegration_ASTFormats(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "tree",
			args: []string{"ast", "--format", "tree", "-"},
			want: "Document\n" +
				"└── Heading level=1 setext=false\n" +
				"    └── Text text=\"Hi\"\n",
		},
		{
			name: "yaml",
			args: []string{"ast", "--format", "yaml"},
			want: "tag: Document\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out, err := execute(t, "# Hi\n", tt.args...)
			require.NoError(t, err)

			if tt.name == "tree" {
				assert.Equal(t, tt.want, out)
			} else {
				assert.True(t, strings.HasPrefix(out, tt.want), out)
			}
		})
	}
}

func TestIntegration_PresetFlag(t *testing.T) {
	t.Parallel()

	plain, err := execute(t, "~~gone~~\n", "ast")
	require.NoError(t, err)
	assert.NotContains(t, plain, "Strikethrough")

	gfm, err := execute(t, "~~gone~~\n", "ast", "--preset", "gfm")
	require.NoError(t, err)
	assert.Contains(t, gfm, `"tag": "Strikethrough"`)
}

func TestIntegration_HTML(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "*hi*\n", "html")
	require.NoError(t, err)
	assert.Equal(t, "<p><em>hi</em></p>\n", out)
}

func TestIntegration_HTMLToFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "doc.md")
	dst := filepath.Join(dir, "out", "doc.html")
	require.NoError(t, os.WriteFile(src, []byte("# Title\n"), 0o644))

	out, err := execute(t, "", "html", src, "-o", dst)
	require.NoError(t, err)
	assert.Empty(t, out)

	content, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "<h1>Title</h1>\n", string(content))
}

func TestIntegration_ConfigPrecedence(t *testing.T) {
	t.Parallel()

	cfg := writeConfig(t, "smart: true\ntable: true\n")
	table := "| a |\n|---|\n| b |\n"

	out, err := execute(t, `"quoted"`+"\n", "html", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "&ldquo;quoted&rdquo;")

	out, err = execute(t, table, "html", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "<table>")

	out, err = execute(t, table, "html", "--config", cfg, "--table=false")
	require.NoError(t, err)
	assert.NotContains(t, out, "<table>", "flags override the config file")
}

func TestIntegration_InvalidConfig(t *testing.T) {
	t.Parallel()

	cfg := writeConfig(t, "width: -4\n")

	_, err := execute(t, "x\n", "ast", "--config", cfg)
	require.Error(t, err)
	assert.Equal(t, cli.ExitConfigError, cli.ExitCode(err))
}

func TestIntegration_ASTMissingFile(t *testing.T) {
	t.Parallel()

	_, err := execute(t, "", "ast", filepath.Join(t.TempDir(), "missing.md"))
	require.Error(t, err)
	assert.Equal(t, cli.ExitIOError, cli.ExitCode(err))
}

func TestIntegration_ASTInvalidUTF8(t *testing.T) {
	t.Parallel()

	_, err := execute(t, "caf\xe9\n", "ast")
	require.Error(t, err)
	assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCode(err))
}

func TestIntegration_Batch(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.md"), []byte("# A\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sub", "b.md"), []byte("b\n"), 0o644))

	out, err := execute(t, "", "batch", "--write", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Converted 2 files")
	assert.Contains(t, out, "2 written")

	assert.FileExists(t, filepath.Join(dir, "a.json"))
	assert.FileExists(t, filepath.Join(dir, "sub", "b.json"))

	out, err = execute(t, "", "batch", "--write", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "2 unchanged")
}

func TestIntegration_BatchFailure(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ok.md"), []byte("fine\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "dl.md"), []byte("Term\n: details\n"), 0o644))

	out, err := execute(t, "", "batch", "--description-lists", "--report", "json", dir)
	require.Error(t, err)
	assert.ErrorIs(t, err, cli.ErrConversionFailed)
	assert.Equal(t, cli.ExitConversionFailed, cli.ExitCode(err))
	assert.Contains(t, out, `"filesFailed": 1`)
}

func TestIntegration_BatchRejectsTreeFormat(t *testing.T) {
	t.Parallel()

	_, err := execute(t, "", "batch", "--format", "tree", t.TempDir())
	require.Error(t, err)
	assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCode(err))
}

func TestIntegration_Init(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), ".mdtree.yml")

	_, err := execute(t, "", "init", "--preset", "gfm", "--output", path)
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "table: true")

	// Generated files load cleanly.
	_, err = execute(t, "x\n", "ast", "--config", path)
	require.NoError(t, err)

	_, err = execute(t, "", "init", "--output", path)
	require.Error(t, err, "existing files are kept without --force")

	_, err = execute(t, "", "init", "--output", path, "--force")
	require.NoError(t, err)
	assert.FileExists(t, path+fsutil.BackupSuffix)

	content, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "table: false")
}

func TestIntegration_ConfigShow(t *testing.T) {
	t.Parallel()

	cfg := writeConfig(t, "preset: gfm\nheader_ids: sec-\n")

	out, err := execute(t, "", "config", "show", "--config", cfg, "--width", "72")
	require.NoError(t, err)

	assert.Contains(t, out, "strikethrough: true")
	assert.Contains(t, out, "header_ids: sec-")
	assert.Contains(t, out, "width: 72")
	assert.Contains(t, out, "format: json")

	// The printed settings are a loadable config file.
	again := writeConfig(t, out)
	out2, err := execute(t, "", "config", "show", "--config", again)
	require.NoError(t, err)
	assert.Equal(t, out, out2)
}

func TestIntegration_ConfigEnv(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "", "config", "env")
	require.NoError(t, err)
	assert.Contains(t, out, "MDTREE_SMART\n")
	assert.Contains(t, out, "MDTREE_FRONT_MATTER_DELIMITER\n")
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: cli.ExitSuccess},
		{name: "conversion", err: fmt.Errorf("run: %w", cli.ErrConversionFailed), want: cli.ExitConversionFailed},
		{name: "config", err: &configloader.ValidationError{Field: "width"}, want: cli.ExitConfigError},
		{name: "io", err: fmt.Errorf("x: %w", fsutil.ErrPermissionDenied), want: cli.ExitIOError},
		{name: "cancelled", err: context.Canceled, want: cli.ExitInterrupted},
		{name: "other", err: errors.New("boom"), want: cli.ExitConversionFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, cli.ExitCode(tt.err))
		})
	}
}
