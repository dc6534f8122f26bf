package keys_test

import (
	"bytes"
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idelchi/encryptf/internal/config"
	"github.com/idelchi/encryptf/internal/keys"
)

func TestGenerateAndLoad(t *testing.T) {
	t.Parallel()

	fsys := afero.NewMemMapFs()
	path := filepath.Join("/home/user", "nested", "dir", "key")

	generated, err := keys.Generate(fsys, path)
	require.NoError(t, err)
	require.Len(t, generated, config.KeySize)

	info, err := fsys.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	content, err := afero.ReadFile(fsys, path)
	require.NoError(t, err)
	assert.Equal(t, hex.EncodeToString(generated)+"\n", string(content))

	loaded, err := keys.Load(fsys, path)
	require.NoError(t, err)
	assert.Equal(t, generated, loaded)
}

func TestGenerateRefusesOverwrite(t *testing.T) {
	t.Parallel()

	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/key", []byte("existing"), 0o600))

	_, err := keys.Generate(fsys, "/key")
	require.ErrorIs(t, err, keys.ErrKeyAlreadyExists)

	content, err := afero.ReadFile(fsys, "/key")
	require.NoError(t, err)
	assert.Equal(t, "existing", string(content))
}

func TestGenerateOnDisk(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "a", "b", "key")

	_, err := keys.Generate(afero.NewOsFs(), path)
	require.NoError(t, err)

	_, err = keys.Generate(afero.NewOsFs(), path)
	require.ErrorIs(t, err, keys.ErrKeyAlreadyExists)
}

func TestLoad(t *testing.T) {
	t.Parallel()

	raw := bytes.Repeat([]byte{0xab}, config.KeySize)

	tests := []struct {
		name    string
		content []byte
		want    []byte
		wantErr error
	}{
		{name: "hex with newline", content: []byte(hex.EncodeToString(raw) + "\n"), want: raw},
		{name: "hex with surrounding spaces", content: []byte("  " + hex.EncodeToString(raw) + " \r\n"), want: raw},
		{name: "raw bytes", content: raw, want: raw},
		{name: "short hex", content: []byte(hex.EncodeToString(raw[:20])), wantErr: keys.ErrKeyCorrupt},
		{name: "long hex", content: []byte(hex.EncodeToString(append(raw, raw...))), wantErr: keys.ErrKeyCorrupt},
		{name: "not hex", content: []byte("this is definitely not a key file"), wantErr: keys.ErrKeyCorrupt},
		{name: "empty", content: nil, wantErr: keys.ErrKeyCorrupt},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fsys := afero.NewMemMapFs()
			require.NoError(t, afero.WriteFile(fsys, "/key", tt.content, 0o600))

			got, err := keys.Load(fsys, "/key")
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadMissing(t *testing.T) {
	t.Parallel()

	_, err := keys.Load(afero.NewMemMapFs(), "/nope")
	require.ErrorIs(t, err, keys.ErrKeyNotFound)
}

func TestDeriveFromPassword(t *testing.T) {
	t.Parallel()

	params := config.DefaultParams()
	salt := []byte("testsalt12345678")

	first, err := keys.DeriveFromPassword([]byte("strongpassword"), salt, params)
	require.NoError(t, err)
	require.Len(t, first, config.KeySize)

	second, err := keys.DeriveFromPassword([]byte("strongpassword"), salt, params)
	require.NoError(t, err)
	assert.Equal(t, first, second, "derivation must be deterministic")

	otherSalt := []byte("testsalt12345679")

	third, err := keys.DeriveFromPassword([]byte("strongpassword"), otherSalt, params)
	require.NoError(t, err)
	assert.NotEqual(t, first, third, "different salts must yield different keys")

	fourth, err := keys.DeriveFromPassword([]byte("strongpassworD"), salt, params)
	require.NoError(t, err)
	assert.NotEqual(t, first, fourth)
}

func TestDeriveFromPasswordErrors(t *testing.T) {
	t.Parallel()

	params := config.DefaultParams()

	_, err := keys.DeriveFromPassword(nil, make([]byte, config.SaltSize), params)
	require.ErrorIs(t, err, keys.ErrEmptyPassword)

	_, err = keys.DeriveFromPassword([]byte("pw"), make([]byte, 8), params)
	require.ErrorIs(t, err, keys.ErrInvalidSalt)

	params.Iterations = 10
	_, err = keys.DeriveFromPassword([]byte("pw"), make([]byte, config.SaltSize), params)
	require.ErrorIs(t, err, config.ErrInvalidParams)
}

func TestNewSaltAndWipe(t *testing.T) {
	t.Parallel()

	params := config.DefaultParams()

	a, err := keys.NewSalt(params)
	require.NoError(t, err)
	b, err := keys.NewSalt(params)
	require.NoError(t, err)

	assert.Len(t, a, config.SaltSize)
	assert.NotEqual(t, a, b)

	keys.Wipe(a)
	assert.Equal(t, make([]byte, config.SaltSize), a)
}
