package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/mdtree/pkg/runner"
)

// reportVersion is the schema version of JSONOutput.
const reportVersion = "1.0.0"

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string           `json:"version"`
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult represents a single file's outcome.
type JSONFileResult struct {
	Path       string `json:"path"`
	OutputPath string `json:"outputPath,omitempty"`
	Bytes      int    `json:"bytes"`
	Nodes      int    `json:"nodes,omitempty"`
	Written    bool   `json:"written,omitempty"`
	Error      string `json:"error,omitempty"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesDiscovered int `json:"filesDiscovered"`
	FilesConverted  int `json:"filesConverted"`
	FilesFailed     int `json:"filesFailed"`
	FilesWritten    int `json:"filesWritten"`
	FilesUnchanged  int `json:"filesUnchanged"`
	BytesRead       int `json:"bytesRead"`
	BytesProduced   int `json:"bytesProduced"`
	Nodes           int `json:"nodes"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(r.buildOutput(result)); err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}
	return nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version: reportVersion,
		Files:   make([]JSONFileResult, 0),
	}
	if result == nil {
		return output
	}

	output.Files = make([]JSONFileResult, 0, len(result.Files))
	for _, file := range result.Files {
		entry := JSONFileResult{
			Path:       displayPath(file.Path, r.opts.WorkingDir),
			OutputPath: displayPath(file.OutputPath, r.opts.WorkingDir),
			Bytes:      file.Bytes,
			Nodes:      file.Nodes,
			Written:    file.Written,
		}
		if file.Error != nil {
			entry.Error = file.Error.Error()
		}
		output.Files = append(output.Files, entry)
	}

	s := result.Stats
	output.Summary = JSONSummary{
		FilesDiscovered: s.FilesDiscovered,
		FilesConverted:  s.FilesConverted,
		FilesFailed:     s.FilesFailed,
		FilesWritten:    s.FilesWritten,
		FilesUnchanged:  s.FilesUnchanged,
		BytesRead:       s.BytesRead,
		BytesProduced:   s.BytesProduced,
		Nodes:           s.Nodes,
	}
	return output
}
