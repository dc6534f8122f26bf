package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/idelchi/encryptf/internal/config"
	"github.com/idelchi/gogen/pkg/cobraext"
)

// NewKeygenCommand creates a new cobra command for the keygen subcommand.
func NewKeygenCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "keygen [--key PATH]",
		Aliases: []string{"gen"},
		Short:   "Generate a new key file",
		Long: `Generate a random 256-bit key and store it hex-encoded with mode 0600.
An existing key file is never overwritten.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := &config.Config{}
			if err := cobraext.Validate(cfg); err != nil {
				return err //nolint:wrapcheck // already descriptive
			}

			path, err := newRunner(cmd, cfg).Keygen(cfg)
			if err != nil {
				return err //nolint:wrapcheck // already descriptive
			}

			fmt.Fprintln(cmd.OutOrStdout(), path)

			return nil
		},
	}
}
