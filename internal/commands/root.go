package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/idelchi/encryptf/internal/config"
	"github.com/idelchi/encryptf/internal/logic"
	"github.com/idelchi/gogen/pkg/cobraext"
)

// EnvPrefix is prepended to every environment variable read by encryptf.
// It is derived from the root command name.
const EnvPrefix = "ENCRYPTF"

// NewRootCommand creates the root command with common configuration.
// It sets up environment variable binding and flag handling.
func NewRootCommand(version string) *cobra.Command {
	root := cobraext.NewDefaultRootCommand(version, readConfig)

	root.Use = "encryptf [flags] command [flags]"
	root.Short = "Encrypt and decrypt files in place"
	root.Long = `Encrypt and decrypt files in place with AES-256-CBC.

The key is either a random key stored in a key file (see 'keygen') or derived from a password.
In password mode the PBKDF2 iteration count is not stored in the file: a file encrypted with
--iterations N must be decrypted with the same --iterations N.

Every file is replaced atomically on its own. A directory run is not atomic as a whole:
if it is interrupted, some files are transformed and the rest are untouched.

Every flag can also be set through an ENCRYPTF_<FLAG> environment variable,
with dashes replaced by underscores.`

	root.PersistentFlags().StringP("key", "k", "", "Path to the key file (default ~/"+config.DefaultKeyName+")")
	root.PersistentFlags().BoolP("quiet", "q", false, "Suppress non-error output")
	root.PersistentFlags().String("config", "", "Path to a config file (YAML, TOML or JSON)")

	root.AddCommand(
		NewKeygenCommand(),
		NewEncryptCommand(),
		NewDecryptCommand(),
		NewCheckCommand(),
	)

	return root
}

// readConfig binds the passphrase variable and merges the optional config file.
// Flags and environment variables take precedence over the file.
func readConfig(_ *cobra.Command, _ []string) error {
	if err := viper.BindEnv("passphrase"); err != nil {
		return fmt.Errorf("binding environment: %w", err)
	}

	path := viper.GetString("config")
	if path == "" {
		return nil
	}

	viper.SetConfigFile(path)

	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("reading config file %q: %w", path, err)
	}

	return nil
}

func newRunner(cmd *cobra.Command, cfg *config.Config) *logic.Runner {
	runner := logic.NewRunner(logic.NewLogger(cmd.ErrOrStderr(), cfg.Quiet), cfg.Protect...)
	runner.Out = cmd.ErrOrStderr()

	return runner
}
