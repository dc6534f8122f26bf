package encryption

import (
	"bytes"
	"fmt"

	"github.com/idelchi/encryptf/internal/config"
	"github.com/idelchi/encryptf/internal/keys"
)

// Encrypt encrypts plaintext under key and returns base64(iv || ciphertext).
// Every call uses a fresh IV, so equal inputs give different blobs.
func Encrypt(plaintext, key []byte) ([]byte, error) {
	raw, err := sealCBC(key, plaintext)
	if err != nil {
		return nil, err
	}

	return encode(raw), nil
}

// Decrypt reverses Encrypt. A wrong key is reported as ErrInvalidCiphertext.
func Decrypt(blob, key []byte) ([]byte, error) {
	raw, err := decode(blob)
	if err != nil {
		return nil, err
	}

	return openCBC(key, raw)
}

// EncryptWithSalt encrypts plaintext under a key derived by the caller from salt,
// and returns base64(salt || iv || ciphertext).
func EncryptWithSalt(plaintext, key, salt []byte) ([]byte, error) {
	if len(salt) != config.SaltSize {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", keys.ErrInvalidSalt, len(salt), config.SaltSize)
	}

	sealed, err := sealCBC(key, plaintext)
	if err != nil {
		return nil, err
	}

	raw := make([]byte, 0, len(salt)+len(sealed))
	raw = append(raw, salt...)
	raw = append(raw, sealed...)

	return encode(raw), nil
}

func splitSalt(raw []byte) (salt, rest []byte, err error) {
	if len(raw) < ModePassword.headerSize()+config.BlockSize {
		return nil, nil, fmt.Errorf("%w: %d bytes", ErrTruncated, len(raw))
	}

	return bytes.Clone(raw[:config.SaltSize]), raw[config.SaltSize:], nil
}
