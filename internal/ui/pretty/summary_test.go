package pretty_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/mdtree/internal/ui/pretty"
	"github.com/yaklabco/mdtree/pkg/runner"
)

func TestFormatSummaryOneLine(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	tests := []struct {
		name  string
		stats runner.Stats
		want  string
	}{
		{
			name: "nothing found",
			want: "No Markdown files found\n",
		},
		{
			name:  "single file",
			stats: runner.Stats{FilesDiscovered: 1, FilesConverted: 1},
			want:  "Converted 1 file\n",
		},
		{
			name:  "failures and writes",
			stats: runner.Stats{FilesDiscovered: 4, FilesConverted: 3, FilesFailed: 1, FilesWritten: 2, FilesUnchanged: 1},
			want:  "Converted 3 files, 1 failed, 2 written, 1 unchanged\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, styles.FormatSummaryOneLine(tt.stats))
		})
	}
}

func TestFormatSummary(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	ok := styles.FormatSummary(runner.Stats{FilesDiscovered: 2, FilesConverted: 2, BytesRead: 40, Nodes: 9})
	assert.Contains(t, ok, "Summary")
	assert.Contains(t, ok, "Files converted:")
	assert.Contains(t, ok, "Tree nodes:")
	assert.Contains(t, ok, "Conversion succeeded")
	assert.NotContains(t, ok, "Files failed")

	failed := styles.FormatSummary(runner.Stats{FilesDiscovered: 2, FilesConverted: 1, FilesFailed: 1})
	assert.Contains(t, failed, "Files failed:")
	assert.Contains(t, failed, "Conversion finished with failures")
}

func TestFormatOutcome(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	assert.Equal(t, "a.md\n", styles.FormatOutcome("a.md", runner.FileOutcome{}))
	assert.Equal(t, "a.md -> a.json\n",
		styles.FormatOutcome("a.md", runner.FileOutcome{OutputPath: "a.json", Written: true}))
	assert.Equal(t, "a.md -> a.json (unchanged)\n",
		styles.FormatOutcome("a.md", runner.FileOutcome{OutputPath: "a.json"}))
	assert.Equal(t, "a.md: error: boom\n",
		styles.FormatOutcome("a.md", runner.FileOutcome{Error: errors.New("boom")}))
}
