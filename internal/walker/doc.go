// Package walker applies a per-file operation to every regular file below a directory.
//
// Files are collected first and processed afterwards, so files created by the operation
// (such as temporary files) are never visited. Symbolic links and special files are skipped.
//
// A failing file is recorded in the Report and the batch continues. Each file is replaced
// atomically on its own, but there is no atomicity across the directory: an interrupted
// batch leaves some files transformed and the rest untouched.
package walker
