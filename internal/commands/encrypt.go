package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/idelchi/encryptf/internal/config"
	"github.com/idelchi/gogen/pkg/cobraext"
)

// NewEncryptCommand creates a new cobra command for the encrypt subcommand.
func NewEncryptCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "encrypt [flags] (--file PATH | --directory DIR)",
		Aliases: []string{"enc"},
		Short:   "Encrypt a file or every file below a directory",
		Args:    cobra.NoArgs,
	}

	return transform(cmd, false)
}

// transform completes an encrypt or decrypt command: flags, validation and execution.
func transform(cmd *cobra.Command, decrypt bool) *cobra.Command {
	cfg := &config.Config{Decrypt: decrypt}

	cmd.PreRunE = func(_ *cobra.Command, _ []string) error {
		return cobraext.Validate(cfg, cfg) //nolint:wrapcheck // already descriptive
	}

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		prompt := newPrompter(cmd.InOrStdin(), cmd.ErrOrStderr())

		if cfg.Password && cfg.Passphrase == "" {
			passphrase, err := prompt.Password(!decrypt)
			if err != nil {
				return err
			}

			cfg.Passphrase = passphrase
		}

		runner := newRunner(cmd, cfg)
		runner.Confirm = prompt.Confirm

		if err := runner.Run(cmd.Context(), cfg); err != nil {
			return fmt.Errorf("%s: %w", cmd.Name(), err)
		}

		return nil
	}

	flags := cmd.Flags()

	flags.BoolP("password", "p", false, "Derive the key from a password (prompted, or $"+EnvPrefix+"_PASSPHRASE)")
	flags.StringP("file", "f", "", "File to process")
	flags.StringP("directory", "d", "", "Directory to process recursively")
	flags.BoolP("yes", "y", false, "Do not ask for confirmation before a directory run")
	flags.IntP("parallel", "j", 1, "Number of files processed at once")
	flags.StringSlice("include", nil, "Only process files matching these glob patterns (directory runs)")
	flags.StringSlice("exclude", nil, "Skip files matching these glob patterns (directory runs)")
	flags.String("include-from", "", "JSONC file with an array of include patterns")
	flags.String("exclude-from", "", "JSONC file with an array of exclude patterns")
	flags.BoolP("dry", "n", false, "List the files that would be processed and exit")
	flags.Bool("stats", false, "Print a summary after the run")
	flags.Bool("preserve-timestamps", false, "Keep the modification time of each file")
	flags.Int("iterations", config.MinIterations,
		"PBKDF2 iterations for password mode; not stored in the file, so decrypt needs the same value")
	flags.StringSlice("protect", nil, "Additional directories that must never be processed")
	flags.BoolP("show", "s", false, "Show the configuration and exit")

	cmd.MarkFlagsMutuallyExclusive("file", "directory")

	return cmd
}
