package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/idelchi/encryptf/internal/config"
	"github.com/idelchi/gogen/pkg/cobraext"
)

// NewCheckCommand creates a new cobra command for the check subcommand.
func NewCheckCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [flags] --directory DIR",
		Short: "Validate that include/exclude patterns match files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := &config.Config{}
			if err := cobraext.Validate(cfg); err != nil {
				return err //nolint:wrapcheck // already descriptive
			}

			if cfg.Directory == "" {
				return fmt.Errorf("%w: --directory is required", config.ErrInvalidConfig)
			}

			return newRunner(cmd, cfg).Check(cfg) //nolint:wrapcheck // already descriptive
		},
	}

	cmd.Flags().StringP("directory", "d", "", "Directory whose files the patterns are checked against")
	cmd.Flags().StringSlice("include", nil, "Include glob patterns to check")
	cmd.Flags().StringSlice("exclude", nil, "Exclude glob patterns to check")
	cmd.Flags().String("include-from", "", "JSONC file with an array of include patterns")
	cmd.Flags().String("exclude-from", "", "JSONC file with an array of exclude patterns")

	return cmd
}
