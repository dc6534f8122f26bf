// Package safety refuses bulk operations on directories whose loss would be catastrophic.
package safety

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
)

// ErrUnsafeDirectory is returned for the home directory, filesystem or volume roots,
// and protected paths.
var ErrUnsafeDirectory = errors.New("refusing to operate on unsafe directory")

// volumeRoot matches drive roots such as "C:", "C:\" and "c:/" regardless of the host OS.
var volumeRoot = regexp.MustCompile(`^[A-Za-z]:[\\/]?$`)

// Gate vetoes dangerous targets of a directory run.
type Gate struct {
	Home      string
	Protected []string
}

// New returns a gate protecting the current user's home directory and the extra paths.
// A home directory that cannot be determined is left unset.
func New(extra ...string) *Gate {
	home, _ := os.UserHomeDir() //nolint:errcheck // roots and protected paths are still enforced

	return &Gate{Home: home, Protected: extra}
}

// Resolve returns the absolute path with symbolic links evaluated.
// A path that does not exist is returned cleaned and absolute.
func Resolve(path string) (string, error) {
	if volumeRoot.MatchString(path) {
		return path, nil
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving %q: %w", path, err)
	}

	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved, nil
	}

	return abs, nil
}

// IsSafe reports whether path may be the target of a directory run.
func (g *Gate) IsSafe(path string) (bool, error) {
	if volumeRoot.MatchString(path) {
		return false, nil
	}

	resolved, err := Resolve(path)
	if err != nil {
		return false, err
	}

	if isRoot(resolved) {
		return false, nil
	}

	for _, unsafe := range g.unsafe() {
		if sameFile(resolved, unsafe) {
			return false, nil
		}
	}

	return true, nil
}

// Check returns ErrUnsafeDirectory if path is not safe.
func (g *Gate) Check(path string) error {
	safe, err := g.IsSafe(path)
	if err != nil {
		return err
	}

	if !safe {
		return fmt.Errorf("%w: %q", ErrUnsafeDirectory, path)
	}

	return nil
}

func (g *Gate) unsafe() []string {
	paths := make([]string, 0, len(g.Protected)+1)

	if g.Home != "" {
		paths = append(paths, g.Home)
	}

	for _, p := range g.Protected {
		if p == "" {
			continue
		}

		resolved, err := Resolve(p)
		if err != nil {
			continue
		}

		paths = append(paths, resolved)
	}

	return paths
}

func isRoot(path string) bool {
	if volumeRoot.MatchString(path) {
		return true
	}

	clean := filepath.Clean(path)

	return clean == string(filepath.Separator) || clean == filepath.VolumeName(clean)+string(filepath.Separator)
}

func sameFile(a, b string) bool {
	if resolved, err := Resolve(b); err == nil {
		b = resolved
	}

	a, b = filepath.Clean(a), filepath.Clean(b)

	if runtime.GOOS == "windows" {
		return strings.EqualFold(a, b)
	}

	return a == b
}
