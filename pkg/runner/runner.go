package runner

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/yaklabco/mdtree/internal/logging"
	"github.com/yaklabco/mdtree/pkg/exchange"
	"github.com/yaklabco/mdtree/pkg/fsutil"
	"github.com/yaklabco/mdtree/pkg/markdown"
)

// Runner converts the files selected by its options.
type Runner struct {
	opts Options
}

// New validates opts and creates a Runner.
func New(opts Options) (*Runner, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Runner{opts: opts}, nil
}

// Run validates opts and runs a single batch.
func Run(ctx context.Context, opts Options) (*Result, error) {
	r, err := New(opts)
	if err != nil {
		return nil, err
	}
	return r.Run(ctx)
}

// Run discovers files and converts them concurrently.
//
// Each file is an independent conversion: a failure is recorded on that
// file's outcome and the others proceed. Outcomes are returned in sorted
// path order whatever the completion order. Only discovery failures and
// cancellation fail the run as a whole; on cancellation the outcomes
// gathered so far are returned with the error.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	logger := logging.FromContext(ctx)
	start := time.Now()

	files, err := Discover(ctx, r.opts)
	if err != nil {
		return nil, err
	}

	result := &Result{Files: make([]FileOutcome, 0, len(files))}
	result.Stats.FilesDiscovered = len(files)
	logger.Debug("discovered files", logging.FieldFilesDiscovered, len(files))

	if len(files) == 0 {
		return result, nil
	}

	// Discover succeeded, so the working directory resolves.
	workDir, _ := resolveWorkDir(r.opts.WorkingDir)
	outDir := r.opts.OutDir
	if outDir != "" && !filepath.IsAbs(outDir) {
		outDir = filepath.Join(workDir, outDir)
	}

	jobs := r.opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))

	workCh := make(chan string)
	outCh := make(chan FileOutcome)

	var wg sync.WaitGroup
	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range workCh {
				outcome := r.convertFile(ctx, path, workDir, outDir)
				select {
				case <-ctx.Done():
					return
				case outCh <- outcome:
				}
			}
		}()
	}

	go func() {
		defer close(workCh)
		for _, path := range files {
			select {
			case <-ctx.Done():
				return
			case workCh <- path:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	outcomes := make(map[string]FileOutcome, len(files))
	for outcome := range outCh {
		outcomes[outcome.Path] = outcome
	}

	for _, path := range files {
		if outcome, ok := outcomes[path]; ok {
			result.accumulate(outcome)
		}
	}

	logger.Debug("batch finished",
		logging.FieldJobs, jobs,
		logging.FieldFilesConverted, result.Stats.FilesConverted,
		logging.FieldFilesFailed, result.Stats.FilesFailed,
		logging.FieldFilesWritten, result.Stats.FilesWritten,
		"duration", time.Since(start),
	)

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("run cancelled: %w", err)
	}
	return result, nil
}

// convertFile reads, converts and optionally writes one file.
func (r *Runner) convertFile(ctx context.Context, path, workDir, outDir string) FileOutcome {
	outcome := FileOutcome{Path: path}
	ctx = logging.WithSource(ctx, path)

	src, err := fsutil.ReadSource(ctx, path)
	if err != nil {
		outcome.Error = err
		return outcome
	}
	outcome.Bytes = len(src.Content)

	switch r.opts.mode() {
	case ModeHTML:
		html, err := markdown.ToHTML(ctx, string(src.Content), r.opts.Markdown)
		if err != nil {
			outcome.Error = err
			return outcome
		}
		outcome.Output = []byte(html)
	default:
		value, err := markdown.ToAST(ctx, string(src.Content), r.opts.Markdown)
		if err != nil {
			outcome.Error = err
			return outcome
		}
		data, err := exchange.Marshal(value, r.opts.format())
		if err != nil {
			outcome.Error = err
			return outcome
		}
		outcome.Output = data
		outcome.Nodes = value.Len()
	}

	if !r.opts.Write {
		return outcome
	}

	target, err := fsutil.OutputPath(path, workDir, outDir, r.opts.outputExtension())
	if err != nil {
		outcome.Error = err
		return outcome
	}
	outcome.OutputPath = target

	written, err := fsutil.WriteIfChanged(ctx, target, outcome.Output, 0)
	if err != nil {
		outcome.Error = fmt.Errorf("write %s: %w", target, err)
		return outcome
	}
	outcome.Written = written

	logging.FromContext(ctx).Debug("converted file",
		logging.FieldOutput, target,
		logging.FieldBytes, outcome.Bytes,
		"written", written,
	)
	return outcome
}
