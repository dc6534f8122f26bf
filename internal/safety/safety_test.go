package safety_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idelchi/encryptf/internal/safety"
)

func TestIsSafe(t *testing.T) {
	t.Parallel()

	home := t.TempDir()
	protected := t.TempDir()
	sub := filepath.Join(home, "project")
	require.NoError(t, os.MkdirAll(sub, 0o700))

	gate := &safety.Gate{Home: home, Protected: []string{protected}}

	tests := []struct {
		name string
		path string
		safe bool
	}{
		{name: "home", path: home, safe: false},
		{name: "home with trailing separator", path: home + string(filepath.Separator), safe: false},
		{name: "home via dot segments", path: filepath.Join(sub, ".."), safe: false},
		{name: "filesystem root", path: string(filepath.Separator), safe: false},
		{name: "drive root", path: `C:\`, safe: false},
		{name: "bare drive", path: "D:", safe: false},
		{name: "drive root forward slash", path: "c:/", safe: false},
		{name: "protected", path: protected, safe: false},
		{name: "subdirectory of home", path: sub, safe: true},
		{name: "missing subdirectory", path: filepath.Join(sub, "not-yet"), safe: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			safe, err := gate.IsSafe(tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.safe, safe)

			err = gate.Check(tt.path)
			if tt.safe {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, safety.ErrUnsafeDirectory)
			}
		})
	}
}

func TestIsSafeFollowsSymlinks(t *testing.T) {
	t.Parallel()

	home := t.TempDir()
	link := filepath.Join(t.TempDir(), "home-link")

	if err := os.Symlink(home, link); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	gate := &safety.Gate{Home: home}

	safe, err := gate.IsSafe(link)
	require.NoError(t, err)
	assert.False(t, safe)
}

func TestNewUsesUserHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	gate := safety.New("/srv/data")

	assert.Equal(t, home, gate.Home)
	assert.Equal(t, []string{"/srv/data"}, gate.Protected)
	require.ErrorIs(t, gate.Check(home), safety.ErrUnsafeDirectory)
}
