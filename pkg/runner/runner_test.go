package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdtree/pkg/config"
	"github.com/yaklabco/mdtree/pkg/exchange"
	"github.com/yaklabco/mdtree/pkg/runner"
)

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		p := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
}

func paths(result *runner.Result) []string {
	out := make([]string, 0, len(result.Files))
	for _, f := range result.Files {
		out = append(out, filepath.Base(f.Path))
	}
	return out
}

func TestOptions_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		opts    runner.Options
		wantErr bool
	}{
		{name: "defaults", opts: runner.Options{}},
		{name: "yaml ast", opts: runner.Options{Mode: runner.ModeAST, Format: config.FormatYAML}},
		{name: "html", opts: runner.Options{Mode: runner.ModeHTML}},
		{name: "tree format", opts: runner.Options{Format: config.FormatTree}, wantErr: true},
		{name: "unknown mode", opts: runner.Options{Mode: "pdf"}, wantErr: true},
		{name: "out dir without write", opts: runner.Options{OutDir: "out"}, wantErr: true},
		{name: "out dir with write", opts: runner.Options{OutDir: "out", Write: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.opts.Validate()
			if tt.wantErr {
				require.ErrorIs(t, err, runner.ErrInvalidOptions)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestRun_NoFiles(t *testing.T) {
	t.Parallel()

	result, err := runner.Run(context.Background(), runner.Options{WorkingDir: t.TempDir()})
	require.NoError(t, err)
	assert.Empty(t, result.Files)
	assert.Equal(t, 0, result.Stats.FilesDiscovered)
	assert.False(t, result.HasFailures())
}

func TestRun_AST(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"b.md":      "Hello\n",
		"a.md":      "# Title\n",
		"docs/c.md": "",
	})

	result, err := runner.Run(context.Background(), runner.Options{
		WorkingDir: dir,
		Markdown:   config.Default(),
		Jobs:       2,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"a.md", "b.md", "c.md"}, paths(result))
	assert.Equal(t, 3, result.Stats.FilesDiscovered)
	assert.Equal(t, 3, result.Stats.FilesConverted)
	assert.Equal(t, 0, result.Stats.FilesWritten)

	v, err := exchange.Unmarshal(result.Files[0].Output, config.FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, "Document", v.Tag)
	require.Len(t, v.Children, 1)
	assert.Equal(t, "Heading", v.Children[0].Tag)
	assert.Equal(t, 3, result.Files[0].Nodes)

	// Empty document is a bare root.
	assert.Equal(t, 1, result.Files[2].Nodes)
	assert.Equal(t, 7, result.Stats.Nodes)
	assert.Empty(t, result.Files[0].OutputPath)
}

func TestRun_DeterministicAcrossJobs(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	files := map[string]string{}
	for _, name := range []string{"e", "d", "c", "b", "a", "f", "g", "h"} {
		files[name+".md"] = "# " + name + "\n\n*" + name + "*\n"
	}
	writeFiles(t, dir, files)

	var baseline *runner.Result
	for _, jobs := range []int{1, 3, 8} {
		result, err := runner.Run(context.Background(), runner.Options{
			WorkingDir: dir,
			Markdown:   config.Default(),
			Jobs:       jobs,
		})
		require.NoError(t, err)

		if baseline == nil {
			baseline = result
			continue
		}
		require.Len(t, result.Files, len(baseline.Files))
		for i := range result.Files {
			assert.Equal(t, baseline.Files[i].Path, result.Files[i].Path)
			assert.Equal(t, baseline.Files[i].Output, result.Files[i].Output)
		}
		assert.Equal(t, baseline.Stats, result.Stats)
	}
}

func TestRun_HTMLWritesNextToSource(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"docs/guide.md": "**bold**\n"})

	opts := runner.Options{
		WorkingDir: dir,
		Mode:       runner.ModeHTML,
		Markdown:   config.Default(),
		Write:      true,
	}

	result, err := runner.Run(context.Background(), opts)
	require.NoError(t, err)
	require.Len(t, result.Files, 1)

	out := filepath.Join(dir, "docs", "guide.html")
	assert.Equal(t, out, result.Files[0].OutputPath)
	assert.True(t, result.Files[0].Written)

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "<p><strong>bold</strong></p>\n", string(got))

	// A second run finds the output current.
	result, err = runner.Run(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Stats.FilesWritten)
	assert.Equal(t, 1, result.Stats.FilesUnchanged)
}

func TestRun_OutDirMirrorsTree(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"a.md":        "a\n",
		"docs/b.md":   "b\n",
		"site/out.md": "ignored\n",
	})

	result, err := runner.Run(context.Background(), runner.Options{
		WorkingDir:   dir,
		Format:       config.FormatYAML,
		Markdown:     config.Default(),
		Write:        true,
		OutDir:       "site",
		ExcludeGlobs: []string{"site/**"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Stats.FilesWritten)

	data, err := os.ReadFile(filepath.Join(dir, "site", "docs", "b.yaml"))
	require.NoError(t, err)

	v, err := exchange.Unmarshal(data, config.FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, "Document", v.Tag)
	assert.FileExists(t, filepath.Join(dir, "site", "a.yaml"))
}

func TestRun_PerFileFailure(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"ok.md":    "fine\n",
		"terms.md": "Term\n: Details\n",
	})

	opts := config.Default()
	opts.DescriptionLists = true

	result, err := runner.Run(context.Background(), runner.Options{
		WorkingDir: dir,
		Markdown:   opts,
	})
	require.NoError(t, err)

	assert.True(t, result.HasFailures())
	assert.Equal(t, 1, result.Stats.FilesConverted)
	assert.Equal(t, 1, result.Stats.FilesFailed)

	failed := result.Failures()
	require.Len(t, failed, 1)
	assert.Equal(t, "terms.md", filepath.Base(failed[0].Path))
	assert.Empty(t, failed[0].Output)
}

func TestRun_Cancelled(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"a.md": "a\n"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runner.Run(ctx, runner.Options{WorkingDir: dir})
	require.ErrorIs(t, err, context.Canceled)
}

func TestRun_InvalidOptions(t *testing.T) {
	t.Parallel()

	_, err := runner.Run(context.Background(), runner.Options{Mode: "pdf"})
	require.ErrorIs(t, err, runner.ErrInvalidOptions)
}
