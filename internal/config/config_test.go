package config_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idelchi/encryptf/internal/config"
	"github.com/idelchi/gogen/pkg/validator"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     config.Config
		wantErr string
	}{
		{
			name: "file target",
			cfg:  config.Config{File: "a.txt", Parallel: 1},
		},
		{
			name: "directory target with password",
			cfg:  config.Config{Directory: "dir", Password: true, Parallel: 4},
		},
		{
			name:    "no target",
			cfg:     config.Config{Parallel: 1},
			wantErr: "one of --file or --directory is required",
		},
		{
			name:    "file and directory",
			cfg:     config.Config{File: "a.txt", Directory: "dir", Parallel: 1},
			wantErr: "--file and --directory are mutually exclusive",
		},
		{
			name:    "key and password",
			cfg:     config.Config{File: "a.txt", Key: "k", Password: true, Parallel: 1},
			wantErr: "--key and --password are mutually exclusive",
		},
		{
			name:    "low iteration count",
			cfg:     config.Config{File: "a.txt", Parallel: 1, Iterations: 1000},
			wantErr: "--iterations must be 100",
		},
		{
			name:    "no workers",
			cfg:     config.Config{File: "a.txt"},
			wantErr: "--parallel must be 1 or greater",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.cfg.Validate(&tt.cfg)
			if tt.wantErr == "" {
				require.NoError(t, err)

				return
			}

			require.ErrorIs(t, err, config.ErrInvalidConfig)
			require.ErrorIs(t, err, validator.ErrValidation)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateReportsEveryViolation(t *testing.T) {
	t.Parallel()

	cfg := config.Config{Key: "k", Password: true, Iterations: 10}

	err := cfg.Validate(&cfg)
	require.ErrorIs(t, err, config.ErrInvalidConfig)

	for _, want := range []string{
		"--key and --password are mutually exclusive",
		"one of --file or --directory is required",
		"--parallel must be 1 or greater",
		"--iterations must be 100",
	} {
		assert.Contains(t, err.Error(), want)
	}
}

func TestDisplay(t *testing.T) {
	t.Parallel()

	assert.False(t, (&config.Config{}).Display())
	assert.True(t, (&config.Config{Show: true}).Display())
}

func TestParams(t *testing.T) {
	t.Parallel()

	require.NoError(t, config.DefaultParams().Validate())

	params := config.DefaultParams()
	params.IVSize = 12
	require.ErrorIs(t, params.Validate(), config.ErrInvalidParams)

	cfg := config.Config{Iterations: 250_000}
	assert.Equal(t, 250_000, cfg.Params().Iterations)
	assert.Equal(t, config.KeySize, cfg.Params().KeySize)
}

func TestKeyPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg := config.Config{}

	path, err := cfg.KeyPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, config.DefaultKeyName), path)

	cfg.Key = "~/keys/k"

	path, err = cfg.KeyPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "keys", "k"), path)

	cfg.Key = "relative/key"

	path, err = cfg.KeyPath()
	require.NoError(t, err)
	assert.Equal(t, "relative/key", path)
}
