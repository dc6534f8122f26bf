package encryption

import (
	"errors"
	"fmt"
)

// ErrInvalidCiphertext is returned for any blob that cannot be decrypted: bad encoding,
// truncated or misaligned data, or padding that does not verify. With CBC and PKCS#7 the
// latter is also how a wrong key shows up.
var ErrInvalidCiphertext = errors.New("invalid ciphertext")

var (
	// ErrInvalidPadding is returned when PKCS#7 padding is malformed.
	ErrInvalidPadding = fmt.Errorf("%w: invalid padding", ErrInvalidCiphertext)
	// ErrInvalidBlockSize is returned when encrypted data length is not aligned with AES block size.
	ErrInvalidBlockSize = fmt.Errorf("%w: ciphertext is not a multiple of block size", ErrInvalidCiphertext)
	// ErrTruncated is returned when a blob is shorter than its header plus one block.
	ErrTruncated = fmt.Errorf("%w: data too short", ErrInvalidCiphertext)
	// ErrEncoding is returned when the base64 text encoding of a blob is malformed.
	ErrEncoding = fmt.Errorf("%w: malformed encoding", ErrInvalidCiphertext)
)

// ErrInvalidKey is returned when a key is not exactly 32 bytes.
var ErrInvalidKey = errors.New("invalid key size")
