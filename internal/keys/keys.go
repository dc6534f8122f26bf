// Package keys generates, loads and derives the 256-bit keys used by the cipher engine.
//
// Key files hold the key as 64 hexadecimal characters followed by a newline.
// Files containing exactly 32 raw bytes are accepted on load as well.
package keys

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/awnumar/memguard"
	"github.com/spf13/afero"
	"golang.org/x/crypto/pbkdf2"

	"github.com/idelchi/encryptf/internal/config"
	"github.com/idelchi/gogen/pkg/key"
)

var (
	// ErrKeyNotFound is returned when the key file does not exist.
	ErrKeyNotFound = errors.New("key file not found")
	// ErrKeyAlreadyExists is returned when generating a key would overwrite an existing file.
	ErrKeyAlreadyExists = errors.New("key file already exists")
	// ErrKeyCorrupt is returned when a key file does not decode to exactly 32 bytes.
	ErrKeyCorrupt = errors.New("key file is corrupt")
	// ErrEmptyPassword is returned when deriving a key from an empty password.
	ErrEmptyPassword = errors.New("password cannot be empty")
	// ErrInvalidSalt is returned when the salt does not have the expected size.
	ErrInvalidSalt = errors.New("invalid salt size")
)

const (
	keyFilePerm = 0o600
	keyDirPerm  = 0o700
)

// Generate creates a fresh random key and stores it at path.
// Parent directories are created as needed; an existing file is never overwritten.
func Generate(fsys afero.Fs, path string) (_ []byte, err error) {
	if err := fsys.MkdirAll(filepath.Dir(path), keyDirPerm); err != nil {
		return nil, fmt.Errorf("creating key directory: %w", err)
	}

	generated, err := key.New(config.KeySize)
	if err != nil {
		return nil, fmt.Errorf("generating key: %w", err)
	}

	file, err := fsys.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, keyFilePerm)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return nil, fmt.Errorf("%w: %q", ErrKeyAlreadyExists, path)
		}

		return nil, fmt.Errorf("creating key file: %w", err)
	}

	defer func() {
		if err != nil {
			file.Close()       //nolint:errcheck,gosec // best-effort cleanup
			fsys.Remove(path) //nolint:errcheck,gosec // best-effort cleanup
		}
	}()

	if _, err := file.WriteString(generated.AsHex() + "\n"); err != nil {
		return nil, fmt.Errorf("writing key file: %w", err)
	}

	if err := file.Sync(); err != nil {
		return nil, fmt.Errorf("syncing key file: %w", err)
	}

	if err := file.Close(); err != nil {
		return nil, fmt.Errorf("closing key file: %w", err)
	}

	return generated, nil
}

// Load reads and decodes the key stored at path.
func Load(fsys afero.Fs, path string) ([]byte, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %q", ErrKeyNotFound, path)
		}

		return nil, fmt.Errorf("reading key file: %w", err)
	}

	defer memguard.WipeBytes(data)

	if len(data) == config.KeySize {
		return bytes.Clone(data), nil
	}

	decoded, err := key.FromHex(string(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrKeyCorrupt, path, err)
	}

	if len(decoded) != config.KeySize {
		Wipe(decoded)

		return nil, fmt.Errorf("%w: %q: decoded %d bytes, want %d", ErrKeyCorrupt, path, len(decoded), config.KeySize)
	}

	return decoded, nil
}

// DeriveFromPassword runs PBKDF2-HMAC-SHA256 over password and salt.
// The same inputs always produce the same key.
func DeriveFromPassword(password, salt []byte, params config.Params) ([]byte, error) {
	if len(password) == 0 {
		return nil, ErrEmptyPassword
	}

	if len(salt) != params.SaltSize {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidSalt, len(salt), params.SaltSize)
	}

	if err := params.Validate(); err != nil {
		return nil, err
	}

	return pbkdf2.Key(password, salt, params.Iterations, params.KeySize, sha256.New), nil
}

// NewSalt returns a fresh random salt.
func NewSalt(params config.Params) ([]byte, error) {
	salt, err := key.New(params.SaltSize)
	if err != nil {
		return nil, fmt.Errorf("generating salt: %w", err)
	}

	return salt, nil
}

// Wipe zeroes key material once it is no longer needed.
func Wipe(key []byte) {
	memguard.WipeBytes(key)
}
