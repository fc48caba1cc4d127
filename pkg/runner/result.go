package runner

// FileOutcome is the conversion result for one source file.
type FileOutcome struct {
	// Path is the absolute source path.
	Path string

	// OutputPath is where the output was written. Empty unless writing.
	OutputPath string

	// Output is the converted form of the file.
	Output []byte

	// Bytes is the size of the source.
	Bytes int

	// Nodes is the number of tree nodes. Zero in ModeHTML.
	Nodes int

	// Written is set when OutputPath was created or changed.
	Written bool

	// Error is set if the file could not be converted or written.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the number of files found during discovery.
	FilesDiscovered int

	// FilesConverted is the number of files converted without error.
	FilesConverted int

	// FilesFailed is the number of files whose conversion or write failed.
	FilesFailed int

	// FilesWritten is the number of outputs created or changed on disk.
	FilesWritten int

	// FilesUnchanged is the number of outputs already up to date.
	FilesUnchanged int

	// BytesRead is the total size of converted sources.
	BytesRead int

	// BytesProduced is the total size of produced outputs.
	BytesProduced int

	// Nodes is the total number of tree nodes across converted files.
	Nodes int
}

// Result is the overall runner result.
type Result struct {
	// Files holds one outcome per discovered file in sorted path order.
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats
}

// HasFailures reports whether any file failed.
func (r *Result) HasFailures() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesFailed > 0
}

// Failures returns the outcomes that carry an error.
func (r *Result) Failures() []FileOutcome {
	if r == nil {
		return nil
	}
	var failed []FileOutcome
	for _, f := range r.Files {
		if f.Error != nil {
			failed = append(failed, f)
		}
	}
	return failed
}

// accumulate records one outcome.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesFailed++
		return
	}

	r.Stats.FilesConverted++
	r.Stats.BytesRead += outcome.Bytes
	r.Stats.BytesProduced += len(outcome.Output)
	r.Stats.Nodes += outcome.Nodes

	switch {
	case outcome.Written:
		r.Stats.FilesWritten++
	case outcome.OutputPath != "":
		r.Stats.FilesUnchanged++
	}
}
