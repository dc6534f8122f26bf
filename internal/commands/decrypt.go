package commands

import (
	"github.com/spf13/cobra"
)

// NewDecryptCommand creates a new cobra command for the decrypt subcommand.
func NewDecryptCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "decrypt [flags] (--file PATH | --directory DIR)",
		Aliases: []string{"dec"},
		Short:   "Decrypt a file or every file below a directory",
		Args:    cobra.NoArgs,
	}

	return transform(cmd, true)
}
