// Package fsutil provides the file system primitives used by mdtree: reading
// Markdown sources, deriving output paths, and writing results atomically.
package fsutil

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Sentinel errors for error categorization via errors.Is.
var (
	// ErrNotFound indicates the file does not exist.
	ErrNotFound = errors.New("file not found")

	// ErrPermissionDenied indicates a permission error.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrIsDirectory indicates the path is a directory, not a file.
	ErrIsDirectory = errors.New("path is a directory")

	// ErrOutsideRoot indicates a source path that does not live under the
	// root used to mirror it into an output directory.
	ErrOutsideRoot = errors.New("path outside root")
)

// Source is a Markdown file read from disk.
type Source struct {
	// Path is the path the file was read from.
	Path string

	// Content is the raw file content.
	Content []byte

	// Mode is the file's permission bits.
	Mode os.FileMode

	// Digest is the SHA-256 of Content.
	Digest [32]byte
}

// ReadSource reads a file and classifies the common failures.
func ReadSource(ctx context.Context, path string) (*Source, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("read source: %w", err)
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, classify(path, err)
	}
	if stat.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, classify(path, err)
	}

	return &Source{
		Path:    path,
		Content: content,
		Mode:    stat.Mode().Perm(),
		Digest:  sha256.Sum256(content),
	}, nil
}

func classify(path string, err error) error {
	switch {
	case os.IsNotExist(err):
		return fmt.Errorf("%w: %s: %w", ErrNotFound, path, err)
	case os.IsPermission(err):
		return fmt.Errorf("%w: %s: %w", ErrPermissionDenied, path, err)
	default:
		return fmt.Errorf("read %s: %w", path, err)
	}
}

// OutputPath derives where the converted form of src is written.
//
// With an empty outDir the output sits next to the source with its
// extension replaced by ext. Otherwise the source's path relative to root
// is mirrored under outDir.
func OutputPath(src, root, outDir, ext string) (string, error) {
	stem := strings.TrimSuffix(src, filepath.Ext(src)) + ext
	if outDir == "" {
		return stem, nil
	}

	rel, err := filepath.Rel(root, stem)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrOutsideRoot, src, err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrOutsideRoot, src)
	}
	return filepath.Join(outDir, rel), nil
}
