package fileutil

import (
	"os"

	"github.com/spf13/afero"
)

// Lstat returns the FileInfo of path without following a final symlink,
// falling back to Stat on filesystems that cannot tell links apart.
func Lstat(fsys afero.Fs, path string) (os.FileInfo, error) {
	if lstater, ok := fsys.(afero.Lstater); ok {
		info, _, err := lstater.LstatIfPossible(path)

		return info, err //nolint:wrapcheck // wrapped by the caller
	}

	return fsys.Stat(path) //nolint:wrapcheck // wrapped by the caller
}
