package config

import (
	"errors"
	"fmt"
)

const (
	// KeySize is the AES-256 key size in bytes.
	KeySize = 32
	// BlockSize is the AES block size in bytes.
	BlockSize = 16
	// IVSize is the CBC initialization vector size in bytes.
	IVSize = BlockSize
	// SaltSize is the PBKDF2 salt size in bytes.
	SaltSize = 16
	// MinIterations is the lowest accepted PBKDF2 iteration count.
	MinIterations = 100_000
)

// ErrInvalidParams is returned when Params do not match the fixed cipher layout.
var ErrInvalidParams = errors.New("invalid cryptographic parameters")

// Params carries the sizes and work factor shared by key derivation and the cipher engine.
// It is built once per run and passed by value.
type Params struct {
	KeySize    int
	IVSize     int
	SaltSize   int
	BlockSize  int
	Iterations int
}

// DefaultParams returns the parameters of the on-disk format.
func DefaultParams() Params {
	return Params{
		KeySize:    KeySize,
		IVSize:     IVSize,
		SaltSize:   SaltSize,
		BlockSize:  BlockSize,
		Iterations: MinIterations,
	}
}

// Validate checks that the sizes match the format and the work factor is high enough.
// The sizes are not tunable: blobs written with other values could not be read back.
func (p Params) Validate() error {
	switch {
	case p.KeySize != KeySize:
		return fmt.Errorf("%w: key size %d, want %d", ErrInvalidParams, p.KeySize, KeySize)
	case p.IVSize != IVSize:
		return fmt.Errorf("%w: iv size %d, want %d", ErrInvalidParams, p.IVSize, IVSize)
	case p.SaltSize != SaltSize:
		return fmt.Errorf("%w: salt size %d, want %d", ErrInvalidParams, p.SaltSize, SaltSize)
	case p.BlockSize != BlockSize:
		return fmt.Errorf("%w: block size %d, want %d", ErrInvalidParams, p.BlockSize, BlockSize)
	case p.Iterations < MinIterations:
		return fmt.Errorf("%w: %d iterations, want at least %d", ErrInvalidParams, p.Iterations, MinIterations)
	}

	return nil
}
