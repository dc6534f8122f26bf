package fileutil

import (
	"errors"
	"fmt"
	"io/fs"
)

// Op names the step of a rewrite that failed.
type Op string

// Steps of a rewrite, in order.
const (
	OpStat      Op = "stat"
	OpRead      Op = "read"
	OpTransform Op = "transform"
	OpCreate    Op = "create"
	OpWrite     Op = "write"
	OpSync      Op = "sync"
	OpClose     Op = "close"
	OpChmod     Op = "chmod"
	OpChtimes   Op = "chtimes"
	OpRename    Op = "rename"
)

// ErrNotRegular is returned when the target is a directory, symlink or special file.
var ErrNotRegular = errors.New("not a regular file")

// FileError reports a failed rewrite of one file. The original file is unchanged.
type FileError struct {
	Op   Op
	Path string
	Err  error
}

func newFileError(op Op, path string, err error) *FileError {
	return &FileError{Op: op, Path: path, Err: err}
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Op, e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err means the file did not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

// IsPermission reports whether err means access was denied.
func IsPermission(err error) bool {
	return errors.Is(err, fs.ErrPermission)
}

// IsTransform reports whether err came from the transform rather than the filesystem.
func IsTransform(err error) bool {
	var fe *FileError

	return errors.As(err, &fe) && fe.Op == OpTransform
}
