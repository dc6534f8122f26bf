// Package config holds the runtime configuration of encryptf and the fixed cryptographic parameters.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/idelchi/gogen/pkg/validator"
)

// DefaultKeyName is the key file name used when no --key is given, relative to the home directory.
const DefaultKeyName = ".encryption_key"

// Config holds the options shared by all subcommands.
type Config struct {
	// Key material
	Key      string `label:"--key"      mapstructure:"key"      validate:"exclusive=--password"`
	Password bool   `label:"--password" mapstructure:"password"`

	// Passphrase is read from ENCRYPTF_PASSPHRASE or prompted for, never taken from a flag.
	Passphrase string `json:"-" label:"-" mapstructure:"passphrase"`

	// Targets
	File      string `label:"--file"      mapstructure:"file"      validate:"either=--directory,exclusive=--directory"`
	Directory string `label:"--directory" mapstructure:"directory"`

	// Filtering of directory runs
	Include     []string `mapstructure:"include"`
	Exclude     []string `mapstructure:"exclude"`
	IncludeFrom string   `mapstructure:"include-from"`
	ExcludeFrom string   `mapstructure:"exclude-from"`

	// Behavior
	Yes                bool     `mapstructure:"yes"`
	Dry                bool     `mapstructure:"dry"`
	Stats              bool     `mapstructure:"stats"`
	Quiet              bool     `mapstructure:"quiet"`
	Parallel           int      `label:"--parallel"   mapstructure:"parallel"   validate:"min=1"`
	PreserveTimestamps bool     `mapstructure:"preserve-timestamps"`
	Iterations         int      `label:"--iterations" mapstructure:"iterations" validate:"omitempty,min=100000"`
	Protect            []string `mapstructure:"protect"`

	// Show prints the configuration instead of running.
	Show bool `mapstructure:"show"`

	// Set by the subcommand, not by the user.
	Decrypt bool `mapstructure:"-"`
}

// KeyPath returns the configured key file, falling back to ~/.encryption_key.
func (c *Config) KeyPath() (string, error) {
	if c.Key != "" {
		return expandHome(c.Key)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving default key path: %w", err)
	}

	return filepath.Join(home, DefaultKeyName), nil
}

// Target returns the file or directory the run operates on.
func (c *Config) Target() string {
	if c.Directory != "" {
		return c.Directory
	}

	return c.File
}

// Params builds the cryptographic parameters for this run.
func (c *Config) Params() Params {
	params := DefaultParams()

	if c.Iterations != 0 {
		params.Iterations = c.Iterations
	}

	return params
}

// Display reports whether the configuration should be printed instead of run.
func (c *Config) Display() bool {
	return c.Show
}

// Validate validates config against its struct tags, and the cryptographic parameters of c.
func (c *Config) Validate(config any) error {
	validator := validator.NewValidator()

	if err := registerValidations(validator); err != nil {
		return err
	}

	if errs := validator.Validate(config); len(errs) > 0 {
		slices.SortFunc(errs, func(a, b error) int { return strings.Compare(a.Error(), b.Error()) })

		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}

	return c.Params().Validate()
}

// ErrInvalidConfig is returned for conflicting or missing options.
var ErrInvalidConfig = errors.New("invalid configuration")

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("expanding %q: %w", path, err)
	}

	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
