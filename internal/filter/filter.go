// Package filter selects files of a directory run by include/exclude glob patterns.
//
// Patterns use doublestar syntax and are matched against the slash-separated path of a file
// relative to the walked directory. A pattern without a "/" is also tried against the base name,
// so "*.txt" selects text files at any depth.
package filter

import (
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// ErrBadPattern is returned for malformed glob patterns.
var ErrBadPattern = errors.New("invalid pattern")

// Filter selects files based on include/exclude patterns.
// Empty includes means "match all". Excludes always win.
// A nil *Filter matches everything.
type Filter struct {
	includes []string
	excludes []string
}

// New validates the patterns and returns a reusable filter.
func New(includes, excludes []string) (*Filter, error) {
	inc, err := normalize(includes)
	if err != nil {
		return nil, fmt.Errorf("compiling include patterns: %w", err)
	}

	exc, err := normalize(excludes)
	if err != nil {
		return nil, fmt.Errorf("compiling exclude patterns: %w", err)
	}

	return &Filter{includes: inc, excludes: exc}, nil
}

// Match reports whether the relative path rel should be processed.
func (f *Filter) Match(rel string) bool {
	if f == nil {
		return true
	}

	included := len(f.includes) == 0 || MatchAny(f.includes, rel)

	return included && !MatchAny(f.excludes, rel)
}

// MatchAny reports whether rel matches any of the patterns.
// Patterns are expected to be valid; an invalid one never matches.
func MatchAny(patterns []string, rel string) bool {
	rel = strings.TrimPrefix(path.Clean(rel), "./")
	base := path.Base(rel)

	for _, pattern := range patterns {
		if doublestar.MatchUnvalidated(pattern, rel) {
			return true
		}

		if !strings.Contains(pattern, "/") && doublestar.MatchUnvalidated(pattern, base) {
			return true
		}
	}

	return false
}

// Validate reports an error for a malformed pattern.
func Validate(pattern string) error {
	if pattern == "" || !doublestar.ValidatePattern(pattern) {
		return fmt.Errorf("%w: %q", ErrBadPattern, pattern)
	}

	return nil
}

// normalize strips a leading "./" so patterns match cleaned relative paths, and validates them.
func normalize(patterns []string) ([]string, error) {
	out := make([]string, 0, len(patterns))

	for _, p := range patterns {
		p = strings.TrimPrefix(strings.TrimSpace(p), "./")

		if err := Validate(p); err != nil {
			return nil, err
		}

		out = append(out, p)
	}

	return out, nil
}
