package cli

import (
	"context"
	"errors"

	"github.com/yaklabco/mdtree/internal/configloader"
	"github.com/yaklabco/mdtree/pkg/fsutil"
	"github.com/yaklabco/mdtree/pkg/mdast"
	"github.com/yaklabco/mdtree/pkg/runner"
)

// Exit codes for mdtree.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitConversionFailed indicates a command ran but at least one input
	// could not be converted.
	ExitConversionFailed = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74

	// ExitInterrupted indicates the command was cancelled.
	ExitInterrupted = 130
)

// ErrConversionFailed is returned when a batch run has failed files.
var ErrConversionFailed = errors.New("conversion failed")

// errUsage marks errors caused by invalid flags or arguments.
var errUsage = errors.New("invalid usage")

func usageError(err error) error {
	return errors.Join(errUsage, err)
}

// ExitCode maps a command error to a process exit code.
func ExitCode(err error) int {
	var verr *configloader.ValidationError

	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrConversionFailed):
		return ExitConversionFailed
	case errors.Is(err, context.Canceled):
		return ExitInterrupted
	case errors.Is(err, errUsage), errors.Is(err, runner.ErrInvalidOptions):
		return ExitInvalidUsage
	case errors.As(err, &verr):
		return ExitConfigError
	case errors.Is(err, fsutil.ErrNotFound),
		errors.Is(err, fsutil.ErrPermissionDenied),
		errors.Is(err, fsutil.ErrIsDirectory):
		return ExitIOError
	case errors.Is(err, mdast.ErrTaxonomyDrift), errors.Is(err, mdast.ErrInvalidTree):
		return ExitInternalError
	default:
		return ExitConversionFailed
	}
}

// ExitCodeFromResult determines the exit code of a batch run.
func ExitCodeFromResult(result *runner.Result) int {
	if result == nil || !result.HasFailures() {
		return ExitSuccess
	}
	return ExitConversionFailed
}
