package filter

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/afero"
	"github.com/tidwall/jsonc"
)

// LoadPatterns reads a JSONC file holding an array of glob patterns.
func LoadPatterns(fsys afero.Fs, path string) ([]string, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("reading patterns file %q: %w", path, err)
	}

	clean := jsonc.ToJSONInPlace(data)

	var patterns []string
	if err := json.Unmarshal(clean, &patterns); err != nil {
		return nil, fmt.Errorf("parsing patterns file %q: %w", path, err)
	}

	return patterns, nil
}

// Sources lists where the patterns of a run come from.
type Sources struct {
	Include     []string
	Exclude     []string
	IncludeFrom string
	ExcludeFrom string
}

// Load merges the inline patterns with those from the pattern files.
func (s Sources) Load(fsys afero.Fs) (includes, excludes []string, err error) {
	includes = append(includes, s.Include...)
	excludes = append(excludes, s.Exclude...)

	if s.IncludeFrom != "" {
		patterns, err := LoadPatterns(fsys, s.IncludeFrom)
		if err != nil {
			return nil, nil, fmt.Errorf("loading include patterns: %w", err)
		}

		includes = append(includes, patterns...)
	}

	if s.ExcludeFrom != "" {
		patterns, err := LoadPatterns(fsys, s.ExcludeFrom)
		if err != nil {
			return nil, nil, fmt.Errorf("loading exclude patterns: %w", err)
		}

		excludes = append(excludes, patterns...)
	}

	return includes, excludes, nil
}

// Build loads all patterns and compiles them into a Filter.
func (s Sources) Build(fsys afero.Fs) (*Filter, error) {
	includes, excludes, err := s.Load(fsys)
	if err != nil {
		return nil, err
	}

	return New(includes, excludes)
}
