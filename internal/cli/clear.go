package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var errClearNotConfirmed = errors.New("refusing to clear without --yes")

func newClearCommand(state *cliState) *cobra.Command {
	var confirmed bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every entry under the storage prefix",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirmed {
				return errClearNotConfirmed
			}
			rt, err := state.openRuntime()
			if err != nil {
				return err
			}
			defer closeRuntime(rt, state.logger)

			keys, err := rt.Store.Keys()
			if err != nil {
				return err
			}
			if err := rt.Store.Clear(); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Removed %d entries with prefix %q\n", len(keys), rt.Store.Prefix())
			return err
		},
	}

	cmd.Flags().BoolVarP(&confirmed, "yes", "y", false, "confirm deletion")
	return cmd
}
