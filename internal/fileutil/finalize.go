// Package fileutil replaces file contents atomically: the new content is written to a temporary
// file in the same directory, synced, and renamed over the original.
package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

const (
	// TempPrefix and TempSuffix bracket the names of temporary files created during a rewrite.
	TempPrefix = ".encryptf-"
	TempSuffix = ".tmp"
)

// IsTempName reports whether name looks like a temporary file left by an interrupted rewrite.
func IsTempName(name string) bool {
	base := filepath.Base(name)

	return strings.HasPrefix(base, TempPrefix) && strings.HasSuffix(base, TempSuffix)
}

// TempContext holds state for an atomic file write operation.
type TempContext struct {
	fs      afero.Fs
	SrcInfo os.FileInfo
	TmpFile afero.File
	TmpName string
}

// NewTempContext creates a temp file next to path for atomic writing.
// Caller must defer CleanupOnError.
func NewTempContext(fsys afero.Fs, path string, info os.FileInfo) (*TempContext, error) {
	tmpFile, err := afero.TempFile(fsys, filepath.Dir(path), TempPrefix+"*"+TempSuffix)
	if err != nil {
		return nil, err //nolint:wrapcheck // wrapped by the caller with the path
	}

	return &TempContext{
		fs:      fsys,
		SrcInfo: info,
		TmpFile: tmpFile,
		TmpName: tmpFile.Name(),
	}, nil
}

// CleanupOnError closes the temp file and removes it if the write failed.
func (tc *TempContext) CleanupOnError(errp *error) {
	tc.TmpFile.Close() //nolint:errcheck,gosec // best-effort cleanup

	if *errp != nil {
		tc.fs.Remove(tc.TmpName) //nolint:errcheck,gosec // best-effort cleanup
	}
}

// Commit syncs and closes the temp file, applies the source's permissions
// (and optionally timestamps), then renames it over path.
func (tc *TempContext) Commit(path string, preserveTimestamps bool) error {
	if err := tc.TmpFile.Sync(); err != nil {
		return newFileError(OpSync, path, err)
	}

	if err := tc.TmpFile.Close(); err != nil {
		return newFileError(OpClose, path, err)
	}

	if err := tc.fs.Chmod(tc.TmpName, tc.SrcInfo.Mode().Perm()); err != nil {
		return newFileError(OpChmod, path, err)
	}

	if preserveTimestamps {
		modTime := tc.SrcInfo.ModTime()

		if err := tc.fs.Chtimes(tc.TmpName, modTime, modTime); err != nil {
			return newFileError(OpChtimes, path, fmt.Errorf("preserving timestamps: %w", err))
		}
	}

	if err := tc.fs.Rename(tc.TmpName, path); err != nil {
		return newFileError(OpRename, path, err)
	}

	return nil
}
