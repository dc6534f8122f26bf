package fileutil

import (
	"github.com/spf13/afero"
)

// Transform maps the old content of a file to its new content.
type Transform func([]byte) ([]byte, error)

// Options tunes Rewrite.
type Options struct {
	// PreserveTimestamps copies the modification time of the original onto the new content.
	PreserveTimestamps bool
}

// Result describes a successful rewrite.
type Result struct {
	Path       string
	InputSize  int64
	OutputSize int64
}

// Rewrite replaces the content of path with transform(content).
//
// The whole file is read into memory and transformed before anything is written.
// The result goes to a temporary file in the same directory, which is synced and then
// renamed over path, so observers see either the old or the new content.
// On any error the original is untouched and the temporary file is removed.
// A symlink is refused with ErrNotRegular, since the rename would replace the link and not its target.
func Rewrite(fsys afero.Fs, path string, transform Transform, opts Options) (res Result, err error) {
	info, err := Lstat(fsys, path)
	if err != nil {
		return Result{}, newFileError(OpStat, path, err)
	}

	if !info.Mode().IsRegular() {
		return Result{}, newFileError(OpStat, path, ErrNotRegular)
	}

	input, err := afero.ReadFile(fsys, path)
	if err != nil {
		return Result{}, newFileError(OpRead, path, err)
	}

	output, err := transform(input)
	if err != nil {
		return Result{}, newFileError(OpTransform, path, err)
	}

	tc, err := NewTempContext(fsys, path, info)
	if err != nil {
		return Result{}, newFileError(OpCreate, path, err)
	}

	defer tc.CleanupOnError(&err)

	if _, err := tc.TmpFile.Write(output); err != nil {
		return Result{}, newFileError(OpWrite, path, err)
	}

	if err := tc.Commit(path, opts.PreserveTimestamps); err != nil {
		return Result{}, err
	}

	return Result{
		Path:       path,
		InputSize:  int64(len(input)),
		OutputSize: int64(len(output)),
	}, nil
}
