package logic

import (
	"fmt"

	"github.com/idelchi/encryptf/internal/config"
	"github.com/idelchi/encryptf/internal/keys"
)

// Keygen creates a new key file at the configured key path and returns the path.
func (r *Runner) Keygen(cfg *config.Config) (string, error) {
	path, err := cfg.KeyPath()
	if err != nil {
		return "", err //nolint:wrapcheck // already descriptive
	}

	key, err := keys.Generate(r.Fs, path)
	if err != nil {
		return "", fmt.Errorf("generating key: %w", err)
	}

	keys.Wipe(key)

	r.Log.Infow("key generated", "path", path)

	return path, nil
}
