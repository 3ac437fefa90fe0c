package fileutils_test

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"budget-recon/internal/fileutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirectoryExists(t *testing.T) {
	tmpDir := t.TempDir()

	assert.True(t, fileutils.DirectoryExists(tmpDir))
	assert.False(t, fileutils.DirectoryExists(filepath.Join(tmpDir, "nonexistent")))

	testFile := filepath.Join(tmpDir, "test.txt")
	err := os.WriteFile(testFile, []byte("test"), 0600)
	assert.NoError(t, err)
	assert.False(t, fileutils.DirectoryExists(testFile))
}

func TestEnsureDirectoryExists(t *testing.T) {
	tmpDir := t.TempDir()

	newDir := filepath.Join(tmpDir, "new", "nested", "dir")
	err := fileutils.EnsureDirectoryExists(newDir)
	assert.NoError(t, err)
	assert.True(t, fileutils.DirectoryExists(newDir))

	// Idempotent
	err = fileutils.EnsureDirectoryExists(newDir)
	assert.NoError(t, err)
}

func TestWriteFileAtomic(t *testing.T) {
	tmpDir := t.TempDir()
	target := filepath.Join(tmpDir, "out", "report.csv")

	err := fileutils.WriteFileAtomic(target, 0644, func(w io.Writer) error {
		_, err := io.WriteString(w, "first\n")
		return err
	})
	require.NoError(t, err)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "first\n", string(data))

	info, err := os.Stat(target)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0644), info.Mode().Perm())

	entries, err := os.ReadDir(filepath.Dir(target))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary files left behind")
}

func TestWriteFileAtomic_FailureKeepsPrevious(t *testing.T) {
	tmpDir := t.TempDir()
	target := filepath.Join(tmpDir, "report.csv")
	require.NoError(t, os.WriteFile(target, []byte("previous\n"), 0600))

	boom := errors.New("boom")
	err := fileutils.WriteFileAtomic(target, 0644, func(w io.Writer) error {
		_, _ = io.WriteString(w, "partial")
		return boom
	})
	assert.ErrorIs(t, err, boom)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "previous\n", string(data))

	entries, err := os.ReadDir(tmpDir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestStageFile_CommitAndDiscard(t *testing.T) {
	tmpDir := t.TempDir()
	kept := filepath.Join(tmpDir, "kept.csv")
	dropped := filepath.Join(tmpDir, "dropped.csv")

	write := func(w io.Writer) error {
		_, err := io.WriteString(w, "staged\n")
		return err
	}
	a, err := fileutils.StageFile(kept, 0644, write)
	require.NoError(t, err)
	b, err := fileutils.StageFile(dropped, 0644, write)
	require.NoError(t, err)
	assert.Equal(t, kept, a.Path())

	_, statErr := os.Stat(kept)
	assert.True(t, os.IsNotExist(statErr), "target untouched before commit")

	require.NoError(t, a.Commit())
	b.Discard()
	a.Discard()

	data, err := os.ReadFile(kept)
	require.NoError(t, err)
	assert.Equal(t, "staged\n", string(data))

	entries, err := os.ReadDir(tmpDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "kept.csv", entries[0].Name())
}
