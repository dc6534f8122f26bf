package encryption

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"
	"io"

	"github.com/idelchi/encryptf/internal/config"
)

// newBlock creates the AES-256 block cipher for key.
func newBlock(key []byte) (cipher.Block, error) {
	if len(key) != config.KeySize {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidKey, len(key), config.KeySize)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("creating cipher: %w", err)
	}

	return block, nil
}

// sealCBC pads and encrypts plaintext under a fresh IV and returns iv || ciphertext.
func sealCBC(key, plaintext []byte) ([]byte, error) {
	block, err := newBlock(key)
	if err != nil {
		return nil, err
	}

	padded := pkcs7Pad(plaintext, aes.BlockSize)

	out := make([]byte, config.IVSize+len(padded))
	iv := out[:config.IVSize]

	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return nil, fmt.Errorf("generating IV: %w", err)
	}

	cipher.NewCBCEncrypter(block, iv).CryptBlocks(out[config.IVSize:], padded)

	return out, nil
}

// openCBC decrypts iv || ciphertext and strips the padding.
func openCBC(key, data []byte) ([]byte, error) {
	block, err := newBlock(key)
	if err != nil {
		return nil, err
	}

	if len(data) < ModeRawKey.headerSize()+aes.BlockSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrTruncated, len(data))
	}

	iv := data[:config.IVSize]
	ciphertext := data[config.IVSize:]

	if len(ciphertext)%aes.BlockSize != 0 {
		return nil, ErrInvalidBlockSize
	}

	plaintext := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plaintext, ciphertext)

	return pkcs7Unpad(plaintext, aes.BlockSize)
}
