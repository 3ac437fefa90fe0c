// Package fileutils provides common file operations used throughout the application.
package fileutils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// DirPermission is the mode used for directories the application creates.
const DirPermission os.FileMode = 0750

// DirectoryExists checks if a directory exists
func DirectoryExists(dirPath string) bool {
	info, err := os.Stat(dirPath)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// EnsureDirectoryExists creates a directory if it doesn't exist
func EnsureDirectoryExists(dirPath string) error {
	if !DirectoryExists(dirPath) {
		if err := os.MkdirAll(dirPath, DirPermission); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	return nil
}

// StagedFile is content written to a temporary file beside its target,
// waiting for Commit to move it into place.
type StagedFile struct {
	target string
	tmp    string
}

// StageFile streams write's output into a temporary file next to filePath.
// filePath itself is untouched until Commit. Parent directories are created
// as needed.
func StageFile(filePath string, perm os.FileMode, write func(w io.Writer) error) (_ *StagedFile, err error) {
	dir := filepath.Dir(filePath)
	if err := EnsureDirectoryExists(dir); err != nil {
		return nil, err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(filePath)+".*.tmp")
	if err != nil {
		return nil, fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmpName)
		}
	}()

	if err = write(tmp); err != nil {
		_ = tmp.Close()
		return nil, err
	}
	if err = tmp.Chmod(perm); err != nil {
		_ = tmp.Close()
		return nil, fmt.Errorf("failed to set file mode: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return nil, fmt.Errorf("failed to close temporary file: %w", err)
	}
	return &StagedFile{target: filePath, tmp: tmpName}, nil
}

// Path returns the file the staged content is destined for.
func (s *StagedFile) Path() string {
	return s.target
}

// Commit renames the staged content onto its target.
func (s *StagedFile) Commit() error {
	if err := os.Rename(s.tmp, s.target); err != nil {
		s.Discard()
		return fmt.Errorf("failed to move file into place: %w", err)
	}
	return nil
}

// Discard removes the staged content. It is a no-op after Commit.
func (s *StagedFile) Discard() {
	_ = os.Remove(s.tmp)
}

// WriteFileAtomic stages write's output and commits it at once. A reader
// of filePath sees either the previous content or the complete new content.
func WriteFileAtomic(filePath string, perm os.FileMode, write func(w io.Writer) error) error {
	staged, err := StageFile(filePath, perm, write)
	if err != nil {
		return err
	}
	return staged.Commit()
}
