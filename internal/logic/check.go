package logic

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/idelchi/encryptf/internal/config"
	"github.com/idelchi/encryptf/internal/filter"
	"github.com/idelchi/encryptf/internal/safety"
	"github.com/idelchi/encryptf/internal/walker"
)

// ErrNoPatterns is returned by Check when there is nothing to check.
var ErrNoPatterns = errors.New("no include or exclude patterns to check")

// ErrUnmatchedPatterns is returned by Check when a pattern selects no file.
var ErrUnmatchedPatterns = errors.New("pattern(s) matched no files")

// Check validates that every include/exclude pattern matches at least one file below the directory.
func (r *Runner) Check(cfg *config.Config) error {
	includes, excludes, err := filter.Sources{
		Include:     cfg.Include,
		Exclude:     cfg.Exclude,
		IncludeFrom: cfg.IncludeFrom,
		ExcludeFrom: cfg.ExcludeFrom,
	}.Load(r.Fs)
	if err != nil {
		return err //nolint:wrapcheck // already descriptive
	}

	if len(includes) == 0 && len(excludes) == 0 {
		return ErrNoPatterns
	}

	root, err := safety.Resolve(cfg.Directory)
	if err != nil {
		return err //nolint:wrapcheck // already names the directory
	}

	listing, err := walker.Collect(r.Fs, root, nil)
	if err != nil {
		return fmt.Errorf("directory %q: %w", cfg.Directory, err)
	}

	candidates := make([]string, 0, len(listing.Files))

	for _, file := range listing.Files {
		rel, err := filepath.Rel(root, file.Path)
		if err != nil {
			return fmt.Errorf("relative path of %q: %w", file.Path, err)
		}

		candidates = append(candidates, filepath.ToSlash(rel))
	}

	var failures int

	failures += r.checkPatterns("include", includes, candidates, cfg.Quiet)
	failures += r.checkPatterns("exclude", excludes, candidates, cfg.Quiet)

	if failures > 0 {
		return fmt.Errorf("%d %w", failures, ErrUnmatchedPatterns)
	}

	return nil
}

// checkPatterns tests each pattern individually against candidates.
// Returns the number of patterns that are invalid or matched zero files.
func (r *Runner) checkPatterns(kind string, patterns, candidates []string, quiet bool) int {
	var failures int

	for _, pattern := range patterns {
		flt, err := filter.New([]string{pattern}, nil)
		if err != nil {
			r.Log.Errorw("invalid pattern", "kind", kind, "pattern", pattern, "error", err)

			failures++

			continue
		}

		var count int

		for _, rel := range candidates {
			if flt.Match(rel) {
				count++
			}
		}

		if count == 0 {
			r.Log.Errorw("pattern matched no files", "kind", kind, "pattern", pattern)

			failures++
		} else if !quiet {
			r.Log.Infow("pattern", "kind", kind, "pattern", pattern, "files", count)
		}
	}

	return failures
}
