package fsutil_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/yaklabco/mdtree/pkg/fsutil"
)

func TestWriteAtomic(t *testing.T) {
	t.Parallel()

	t.Run("writes new file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "doc.json")
		if err := fsutil.WriteAtomic(context.Background(), path, []byte(`{"tag":"Document"}`), 0); err != nil {
			t.Fatalf("WriteAtomic() error = %v", err)
		}

		got, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("read back: %v", err)
		}
		if string(got) != `{"tag":"Document"}` {
			t.Errorf("content = %q", got)
		}

		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("stat: %v", err)
		}
		if info.Mode().Perm() != fsutil.DefaultFileMode {
			t.Errorf("mode = %v, want %v", info.Mode().Perm(), fsutil.DefaultFileMode)
		}
	})

	t.Run("creates parent directories", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "out", "docs", "guide.html")
		if err := fsutil.WriteAtomic(context.Background(), path, []byte("<p>x</p>\n"), 0o600); err != nil {
			t.Fatalf("WriteAtomic() error = %v", err)
		}
		if !fsutil.Exists(path) {
			t.Fatal("output not written")
		}
	})

	t.Run("leaves no temp files", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "doc.yaml")
		for range 3 {
			if err := fsutil.WriteAtomic(context.Background(), path, []byte("tag: Document\n"), 0); err != nil {
				t.Fatalf("WriteAtomic() error = %v", err)
			}
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			t.Fatalf("read dir: %v", err)
		}
		if len(entries) != 1 {
			t.Errorf("dir has %d entries, want 1", len(entries))
		}
	})

	t.Run("cancelled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		path := filepath.Join(t.TempDir(), "doc.json")
		err := fsutil.WriteAtomic(ctx, path, []byte("{}"), 0)
		if !errors.Is(err, context.Canceled) {
			t.Errorf("error = %v, want context.Canceled", err)
		}
		if fsutil.Exists(path) {
			t.Error("file written despite cancellation")
		}
	})
}

func TestWriteIfChanged(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "doc.html")

	written, err := fsutil.WriteIfChanged(ctx, path, []byte("<p>a</p>\n"), 0)
	if err != nil || !written {
		t.Fatalf("first write = %v, %v", written, err)
	}

	written, err = fsutil.WriteIfChanged(ctx, path, []byte("<p>a</p>\n"), 0)
	if err != nil || written {
		t.Fatalf("unchanged write = %v, %v", written, err)
	}

	written, err = fsutil.WriteIfChanged(ctx, path, []byte("<p>b</p>\n"), 0)
	if err != nil || !written {
		t.Fatalf("changed write = %v, %v", written, err)
	}
}
