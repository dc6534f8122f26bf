package encryption

import "github.com/idelchi/encryptf/internal/config"

// Mode selects how the key is obtained and therefore the blob layout.
type Mode byte

const (
	// ModeRawKey uses a stored key; blobs are iv || ciphertext.
	ModeRawKey Mode = iota
	// ModePassword derives a key per blob from a password and a fresh salt;
	// blobs are salt || iv || ciphertext.
	ModePassword
)

// String returns the name of the mode.
func (m Mode) String() string {
	switch m {
	case ModeRawKey:
		return "raw-key"
	case ModePassword:
		return "password"
	default:
		return "unknown"
	}
}

// headerSize returns the number of bytes before the ciphertext in a decoded blob.
func (m Mode) headerSize() int {
	if m == ModePassword {
		return config.SaltSize + config.IVSize
	}

	return config.IVSize
}
