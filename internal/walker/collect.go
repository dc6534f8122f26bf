package walker

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/idelchi/encryptf/internal/fileutil"
)

// Matcher decides whether a file, given by its slash-separated path relative to the root,
// takes part in the run. *filter.Filter satisfies it.
type Matcher interface {
	Match(rel string) bool
}

// Candidate is a regular file selected for processing.
type Candidate struct {
	Path string
	Size int64
}

// Listing is the result of scanning a directory tree.
type Listing struct {
	Files    []Candidate
	Skipped  []string
	Failed   []Outcome
	Scanned  int
	Excluded int
}

// Collect walks root and returns the regular files that pass matcher.
// A nil matcher selects every file.
// An unreadable root is an error; unreadable subdirectories are recorded in Listing.Failed.
func Collect(fsys afero.Fs, root string, matcher Matcher) (Listing, error) {
	var listing Listing

	info, err := fileutil.Lstat(fsys, root)
	if err != nil {
		return Listing{}, fmt.Errorf("reading %q: %w", root, err)
	}

	if !info.IsDir() {
		return Listing{}, fmt.Errorf("reading %q: %w", root, ErrNotDirectory)
	}

	err = afero.Walk(fsys, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if path == root {
				return err
			}

			listing.Failed = append(listing.Failed, Outcome{Path: path, Err: err})

			if info != nil && info.IsDir() {
				return filepath.SkipDir
			}

			return nil
		}

		if info.IsDir() {
			return nil
		}

		if !info.Mode().IsRegular() || fileutil.IsTempName(path) {
			listing.Skipped = append(listing.Skipped, path)

			return nil
		}

		listing.Scanned++

		if matcher != nil && !matcher.Match(relative(root, path)) {
			listing.Excluded++

			return nil
		}

		listing.Files = append(listing.Files, Candidate{Path: path, Size: info.Size()})

		return nil
	})
	if err != nil {
		return Listing{}, fmt.Errorf("walking %q: %w", root, err)
	}

	return listing, nil
}

func relative(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = path
	}

	return filepath.ToSlash(rel)
}
