package encryption_test

import (
	"bytes"
	"crypto/rand"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idelchi/encryptf/internal/config"
	"github.com/idelchi/encryptf/internal/encryption"
	"github.com/idelchi/encryptf/internal/keys"
)

func randomKey(t *testing.T) []byte {
	t.Helper()

	key := make([]byte, config.KeySize)
	_, err := rand.Read(key)
	require.NoError(t, err)

	return key
}

func TestKnownScenario(t *testing.T) {
	t.Parallel()

	key := make([]byte, config.KeySize)
	plaintext := []byte("This is a test file.")

	blob, err := encryption.Encrypt(plaintext, key)
	require.NoError(t, err)

	n, err := encryption.DecodedLen(blob)
	require.NoError(t, err)
	assert.Equal(t, config.IVSize+32, n)

	got, err := encryption.Decrypt(blob, key)
	require.NoError(t, err)
	assert.Equal(t, plaintext, got)
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	key := randomKey(t)

	for _, size := range []int{0, 1, 15, 16, 17, 31, 32, 33, 1000, 4096} {
		plaintext := bytes.Repeat([]byte{'x'}, size)

		blob, err := encryption.Encrypt(plaintext, key)
		require.NoError(t, err)

		n, err := encryption.DecodedLen(blob)
		require.NoError(t, err)

		// A full block of padding is always added.
		assert.Equal(t, config.IVSize+(size/config.BlockSize+1)*config.BlockSize, n, "size %d", size)

		got, err := encryption.Decrypt(blob, key)
		require.NoError(t, err)
		assert.Equal(t, plaintext, got, "size %d", size)
	}
}

func TestEncryptIsNotDeterministic(t *testing.T) {
	t.Parallel()

	key := randomKey(t)
	plaintext := []byte("same input twice")

	first, err := encryption.Encrypt(plaintext, key)
	require.NoError(t, err)

	second, err := encryption.Encrypt(plaintext, key)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)

	for _, blob := range [][]byte{first, second} {
		got, err := encryption.Decrypt(blob, key)
		require.NoError(t, err)
		assert.Equal(t, plaintext, got)
	}
}

func TestWrongKey(t *testing.T) {
	t.Parallel()

	plaintext := []byte("Secret message")

	const trials = 200

	var failures int

	for range trials {
		blob, err := encryption.Encrypt(plaintext, randomKey(t))
		require.NoError(t, err)

		got, err := encryption.Decrypt(blob, randomKey(t))
		if err != nil {
			require.ErrorIs(t, err, encryption.ErrInvalidCiphertext)

			failures++

			continue
		}

		// Padding verified by chance: the plaintext is still never the original.
		assert.NotEqual(t, plaintext, got)
	}

	assert.GreaterOrEqual(t, failures, trials*9/10)
}

func TestDecryptInvalidInput(t *testing.T) {
	t.Parallel()

	key := randomKey(t)

	// 20 bytes of plaintext: iv | c1 | c2, the last block holding 12 bytes of padding.
	valid, err := encryption.Encrypt([]byte("This is a test file."), key)
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(string(valid))
	require.NoError(t, err)
	require.Len(t, raw, config.IVSize+2*config.BlockSize)

	// Flipping the last byte of c1 flips the last padding byte of the final plaintext block.
	tampered := bytes.Clone(raw)
	tampered[config.IVSize+config.BlockSize-1] ^= 0xff

	tests := []struct {
		name    string
		blob    []byte
		wantErr error
	}{
		{name: "not base64", blob: []byte("this is plain text!"), wantErr: encryption.ErrEncoding},
		{name: "empty", blob: nil, wantErr: encryption.ErrTruncated},
		{name: "iv only", blob: []byte(base64.StdEncoding.EncodeToString(raw[:config.IVSize])), wantErr: encryption.ErrTruncated},
		{name: "misaligned", blob: []byte(base64.StdEncoding.EncodeToString(raw[:len(raw)-1])), wantErr: encryption.ErrInvalidBlockSize},
		{name: "tampered padding", blob: []byte(base64.StdEncoding.EncodeToString(tampered)), wantErr: encryption.ErrInvalidPadding},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := encryption.Decrypt(tt.blob, key)
			require.ErrorIs(t, err, tt.wantErr)
			require.ErrorIs(t, err, encryption.ErrInvalidCiphertext)
			assert.True(t, encryption.IsWrongKeyOrCorrupt(err))
		})
	}
}

func TestDecryptToleratesTrailingNewline(t *testing.T) {
	t.Parallel()

	key := randomKey(t)

	blob, err := encryption.Encrypt([]byte("hello"), key)
	require.NoError(t, err)

	got, err := encryption.Decrypt(append(blob, '\n'), key)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), got)
}

func TestInvalidKeySize(t *testing.T) {
	t.Parallel()

	_, err := encryption.Encrypt([]byte("x"), make([]byte, 16))
	require.ErrorIs(t, err, encryption.ErrInvalidKey)

	_, err = encryption.NewRawEngine(make([]byte, 31), config.DefaultParams())
	require.ErrorIs(t, err, encryption.ErrInvalidKey)
}

func TestSaltLayout(t *testing.T) {
	t.Parallel()

	key := randomKey(t)
	salt := []byte("testsalt12345678")

	blob, err := encryption.EncryptWithSalt([]byte("This is a test file."), key, salt)
	require.NoError(t, err)

	n, err := encryption.DecodedLen(blob)
	require.NoError(t, err)
	assert.Equal(t, config.SaltSize+config.IVSize+32, n)

	gotSalt, err := encryption.Salt(blob)
	require.NoError(t, err)
	assert.Equal(t, salt, gotSalt)

	got, err := encryption.DecryptWithSalt(blob, key)
	require.NoError(t, err)
	assert.Equal(t, []byte("This is a test file."), got)

	_, err = encryption.EncryptWithSalt([]byte("x"), key, salt[:8])
	require.ErrorIs(t, err, keys.ErrInvalidSalt)
}
