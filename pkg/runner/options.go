// Package runner converts many Markdown files concurrently.
package runner

import (
	"errors"
	"fmt"

	"github.com/yaklabco/mdtree/pkg/config"
)

// ErrInvalidOptions is returned by Validate for unusable option sets.
var ErrInvalidOptions = errors.New("invalid runner options")

// Mode selects what each file is converted into.
type Mode string

const (
	// ModeAST encodes each file's syntax tree in Options.Format.
	ModeAST Mode = "ast"

	// ModeHTML renders each file to HTML.
	ModeHTML Mode = "html"
)

// Options controls a batch conversion.
type Options struct {
	// Paths are the files or directories to convert. Empty means the
	// working directory.
	Paths []string

	// WorkingDir resolves relative Paths and OutDir and is the root that
	// OutDir mirrors. Empty means the process working directory.
	WorkingDir string

	// Extensions are the lowercase file extensions, with leading dot,
	// treated as Markdown. Empty means DefaultExtensions.
	Extensions []string

	// IncludeGlobs, when set, restrict discovery to matching paths.
	IncludeGlobs []string

	// ExcludeGlobs skip matching files and directories.
	ExcludeGlobs []string

	// FollowSymlinks walks into symlinked directories.
	FollowSymlinks bool

	// Jobs bounds the worker pool. 0 or negative means runtime.NumCPU().
	Jobs int

	// Mode is ModeAST or ModeHTML. Empty means ModeAST.
	Mode Mode

	// Format is the serialization used in ModeAST: json or yaml. Empty
	// means json.
	Format config.OutputFormat

	// Markdown is the option record applied to every file.
	Markdown config.Options

	// Write stores each output on disk. Without it outputs are only kept
	// in the result.
	Write bool

	// OutDir, when set with Write, receives outputs in a tree mirroring
	// WorkingDir. Otherwise outputs are written next to their sources.
	OutDir string
}

// DefaultExtensions returns the default set of Markdown file extensions.
func DefaultExtensions() []string {
	return []string{".md", ".markdown"}
}

// Validate checks the mode and format combination.
func (o Options) Validate() error {
	switch o.mode() {
	case ModeAST:
		if f := o.format(); f != config.FormatJSON && f != config.FormatYAML {
			return fmt.Errorf("%w: format %q cannot be written in batch mode", ErrInvalidOptions, f)
		}
	case ModeHTML:
	default:
		return fmt.Errorf("%w: unknown mode %q", ErrInvalidOptions, o.Mode)
	}
	if o.OutDir != "" && !o.Write {
		return fmt.Errorf("%w: an output directory requires writing", ErrInvalidOptions)
	}
	return nil
}

func (o Options) mode() Mode {
	if o.Mode == "" {
		return ModeAST
	}
	return o.Mode
}

func (o Options) format() config.OutputFormat {
	if o.Format == "" {
		return config.FormatJSON
	}
	return o.Format
}

// outputExtension is the file extension of written outputs.
func (o Options) outputExtension() string {
	if o.mode() == ModeHTML {
		return ".html"
	}
	return o.format().Extension()
}

func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions()
	}
	return o.Extensions
}

func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
