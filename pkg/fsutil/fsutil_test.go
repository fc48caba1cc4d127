package fsutil_test

import (
	"context"
	"crypto/sha256"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/yaklabco/mdtree/pkg/fsutil"
)

func TestReadSource(t *testing.T) {
	t.Parallel()

	t.Run("reads content and digest", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "doc.md")
		if err := os.WriteFile(path, []byte("# Title\n"), 0o600); err != nil {
			t.Fatalf("setup: %v", err)
		}

		src, err := fsutil.ReadSource(context.Background(), path)
		if err != nil {
			t.Fatalf("ReadSource() error = %v", err)
		}
		if string(src.Content) != "# Title\n" {
			t.Errorf("Content = %q", src.Content)
		}
		if src.Digest != sha256.Sum256([]byte("# Title\n")) {
			t.Error("Digest does not match content")
		}
		if src.Mode != 0o600 {
			t.Errorf("Mode = %v, want 0600", src.Mode)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := fsutil.ReadSource(context.Background(), filepath.Join(t.TempDir(), "nope.md"))
		if !errors.Is(err, fsutil.ErrNotFound) {
			t.Errorf("error = %v, want ErrNotFound", err)
		}
	})

	t.Run("directory", func(t *testing.T) {
		t.Parallel()

		_, err := fsutil.ReadSource(context.Background(), t.TempDir())
		if !errors.Is(err, fsutil.ErrIsDirectory) {
			t.Errorf("error = %v, want ErrIsDirectory", err)
		}
	})

	t.Run("cancelled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := fsutil.ReadSource(ctx, "doc.md")
		if !errors.Is(err, context.Canceled) {
			t.Errorf("error = %v, want context.Canceled", err)
		}
	})
}

func TestOutputPath(t *testing.T) {
	t.Parallel()

	root := filepath.FromSlash("/work")

	tests := []struct {
		name    string
		src     string
		outDir  string
		ext     string
		want    string
		wantErr error
	}{
		{
			name: "next to source",
			src:  "/work/docs/guide.md",
			ext:  ".json",
			want: "/work/docs/guide.json",
		},
		{
			name: "markdown extension replaced",
			src:  "/work/notes.markdown",
			ext:  ".html",
			want: "/work/notes.html",
		},
		{
			name:   "mirrored under out dir",
			src:    "/work/docs/guide.md",
			outDir: "/out",
			ext:    ".yaml",
			want:   "/out/docs/guide.yaml",
		},
		{
			name:    "outside root",
			src:     "/elsewhere/guide.md",
			outDir:  "/out",
			ext:     ".json",
			wantErr: fsutil.ErrOutsideRoot,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			outDir := tt.outDir
			if outDir != "" {
				outDir = filepath.FromSlash(outDir)
			}
			got, err := fsutil.OutputPath(filepath.FromSlash(tt.src), root, outDir, tt.ext)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("OutputPath() error = %v", err)
			}
			if got != filepath.FromSlash(tt.want) {
				t.Errorf("OutputPath() = %q, want %q", got, tt.want)
			}
		})
	}
}
