package repository

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// FileSystemRepository defines the interface for filesystem operations.
type FileSystemRepository interface {
	afero.Fs
}

// NewFileSystemRepository returns a filesystem rooted at the repository root,
// so every path handed to it is repository relative.
func NewFileSystemRepository(root string) FileSystemRepository {
	return afero.NewBasePathFs(afero.NewOsFs(), root)
}

// WriteFileAtomic replaces path with data through a temporary file in the same
// directory, then restores the original mode and modification time.
func WriteFileAtomic(fs afero.Fs, path string, data []byte) error {
	info, err := fs.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}
	tmp, err := afero.TempFile(fs, filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() {
		if removeErr := fs.Remove(tmpName); removeErr != nil && !os.IsNotExist(removeErr) {
			fmt.Fprintf(os.Stderr, "warning: failed to remove temp file: %v\n", removeErr)
		}
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := fs.Chmod(tmpName, info.Mode().Perm()); err != nil {
		cleanup()
		return fmt.Errorf("failed to copy file mode: %w", err)
	}
	if err := fs.Rename(tmpName, path); err != nil {
		cleanup()
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	if err := fs.Chtimes(path, info.ModTime(), info.ModTime()); err != nil {
		return fmt.Errorf("failed to restore timestamps on %s: %w", path, err)
	}
	return nil
}
