package fsutil

import (
	"context"
	"fmt"
	"os"
)

// BackupSuffix is appended to a file's path to name its backup copy.
const BackupSuffix = ".bak"

// Backup copies the file at path to path+BackupSuffix, replacing any older
// backup, and returns the backup path. A missing file is not an error and
// yields an empty path.
func Backup(ctx context.Context, path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("read %s for backup: %w", path, err)
	}

	mode := DefaultFileMode
	if stat, statErr := os.Stat(path); statErr == nil {
		mode = stat.Mode().Perm()
	}

	backupPath := path + BackupSuffix
	if err := WriteAtomic(ctx, backupPath, content, mode); err != nil {
		return "", fmt.Errorf("write backup: %w", err)
	}
	return backupPath, nil
}

// Exists reports whether path names an existing file or directory.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
