package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/terraincognita07/emerald/internal/security"
)

func newKeygenCommand(_ *cliState) *cobra.Command {
	var length int

	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Print a random value for EMERALD_ENCRYPTION_KEY",
		Long: `Print a random value for EMERALD_ENCRYPTION_KEY.

Changing the key makes entries written under the old key unreadable; export a
backup first and import it after switching.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := security.GenerateKey(length)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), key)
			return err
		},
	}

	cmd.Flags().IntVar(&length, "length", security.DefaultKeyLength, "key length in characters")
	return cmd
}
