package encryption

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/idelchi/encryptf/internal/config"
	"github.com/idelchi/encryptf/internal/keys"
)

// Transform converts one buffer into another, e.g. plaintext into a blob.
type Transform func([]byte) ([]byte, error)

// Engine encrypts and decrypts buffers with key material fixed at construction.
// It holds its own copy of the key or password; Close wipes it.
type Engine struct {
	mode   Mode
	params config.Params

	// key is set in ModeRawKey.
	key []byte

	// password is set in ModePassword; a key is derived per blob from its salt.
	password []byte
}

// NewRawEngine creates an engine for a stored 32-byte key.
func NewRawEngine(key []byte, params config.Params) (*Engine, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	if len(key) != params.KeySize {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidKey, len(key), params.KeySize)
	}

	return &Engine{
		mode:   ModeRawKey,
		params: params,
		key:    bytes.Clone(key),
	}, nil
}

// NewPasswordEngine creates an engine that derives a key from password for every blob.
// Each encrypted blob carries its own salt, so files can be decrypted independently.
func NewPasswordEngine(password []byte, params config.Params) (*Engine, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	if len(password) == 0 {
		return nil, keys.ErrEmptyPassword
	}

	return &Engine{
		mode:     ModePassword,
		params:   params,
		password: bytes.Clone(password),
	}, nil
}

// Mode reports the engine's key mode.
func (e *Engine) Mode() Mode {
	return e.mode
}

// Encrypt encrypts plaintext into an encoded blob.
func (e *Engine) Encrypt(plaintext []byte) ([]byte, error) {
	if e.mode == ModeRawKey {
		return Encrypt(plaintext, e.key)
	}

	salt, err := keys.NewSalt(e.params)
	if err != nil {
		return nil, err
	}

	key, err := keys.DeriveFromPassword(e.password, salt, e.params)
	if err != nil {
		return nil, fmt.Errorf("deriving key: %w", err)
	}

	defer keys.Wipe(key)

	return EncryptWithSalt(plaintext, key, salt)
}

// Decrypt decrypts an encoded blob produced by Encrypt in the same mode.
func (e *Engine) Decrypt(blob []byte) ([]byte, error) {
	if e.mode == ModeRawKey {
		return Decrypt(blob, e.key)
	}

	raw, err := decode(blob)
	if err != nil {
		return nil, err
	}

	salt, rest, err := splitSalt(raw)
	if err != nil {
		return nil, err
	}

	key, err := keys.DeriveFromPassword(e.password, salt, e.params)
	if err != nil {
		return nil, fmt.Errorf("deriving key: %w", err)
	}

	defer keys.Wipe(key)

	return openCBC(key, rest)
}

// Transform returns Encrypt or Decrypt depending on direction.
func (e *Engine) Transform(decrypt bool) Transform {
	if decrypt {
		return e.Decrypt
	}

	return e.Encrypt
}

// Close wipes the engine's key material. The engine must not be used afterwards.
func (e *Engine) Close() {
	keys.Wipe(e.key)
	keys.Wipe(e.password)

	e.key, e.password = nil, nil
}

// IsWrongKeyOrCorrupt reports whether err means the blob could not be decrypted.
func IsWrongKeyOrCorrupt(err error) bool {
	return errors.Is(err, ErrInvalidCiphertext)
}
