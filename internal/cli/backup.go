package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/terraincognita07/emerald/internal/backup"
	"go.uber.org/zap"
)

const stdStream = "-"

func newBackupCommand(state *cliState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Export or import an encrypted copy of every entry",
		Long: `Backups hold the stored envelopes verbatim, sealed with a key derived
from a passphrase (argon2id + XChaCha20-Poly1305). Importing needs the same
EMERALD_ENCRYPTION_KEY that wrote the entries to read them afterwards.`,
	}
	cmd.AddCommand(newBackupExportCommand(state), newBackupImportCommand(state))
	return cmd
}

func newBackupExportCommand(state *cliState) *cobra.Command {
	var (
		outPath    string
		passphrase string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write an encrypted backup",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			secret, err := resolvePassphrase(passphrase, state.options, true)
			if err != nil {
				return err
			}
			rt, err := state.openRuntime()
			if err != nil {
				return err
			}
			defer closeRuntime(rt, state.logger)

			sealed, count, err := backup.Export(rt.Store, secret, state.options.Now())
			if err != nil {
				return fmt.Errorf("export: %w", err)
			}
			if outPath == stdStream {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), sealed)
				return err
			}
			if err := os.WriteFile(outPath, []byte(sealed+"\n"), 0o600); err != nil {
				return fmt.Errorf("write backup: %w", err)
			}
			state.logger.Info("backup exported", zap.String("path", outPath), zap.Int("entries", count))
			fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d entries to %s\n", count, outPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", stdStream, `backup file, "-" for stdout`)
	cmd.Flags().StringVar(&passphrase, "passphrase", "", "backup passphrase (default $"+PassphraseEnv+" or prompt)")
	return cmd
}

func newBackupImportCommand(state *cliState) *cobra.Command {
	var (
		inPath     string
		passphrase string
	)

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Restore entries from an encrypted backup",
		Long: `Restore entries from an encrypted backup. Entries in the backup overwrite
stored entries with the same key; other entries are left alone.

Entries are written one at a time in key order. If a write fails the import
stops, and the entries listed as restored stay overwritten.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			options := state.options
			if inPath == stdStream {
				// stdin carries the backup itself.
				options.PromptPassphrase = func(string) (string, error) { return "", errNotTerminal }
			}
			secret, err := resolvePassphrase(passphrase, options, false)
			if err != nil {
				return err
			}
			sealed, err := readBackup(cmd, inPath)
			if err != nil {
				return err
			}

			rt, err := state.openRuntime()
			if err != nil {
				return err
			}
			defer closeRuntime(rt, state.logger)

			restored, err := backup.Import(rt.Store, sealed, secret)
			var partial *backup.PartialRestoreError
			if errors.As(err, &partial) {
				state.logger.Error("backup import stopped partway",
					zap.String("path", inPath),
					zap.Strings("restored", partial.Restored),
					zap.String("failed", partial.Failed),
					zap.Error(partial.Err),
				)
				fmt.Fprintf(cmd.ErrOrStderr(), "Partial restore: %d entries overwritten before %s failed: %s\n",
					len(partial.Restored), partial.Failed, strings.Join(partial.Restored, ", "))
			}
			if err != nil {
				return fmt.Errorf("import: %w", err)
			}
			state.logger.Info("backup imported", zap.String("path", inPath), zap.Int("entries", len(restored)))
			fmt.Fprintf(cmd.ErrOrStderr(), "Restored %d entries\n", len(restored))
			return nil
		},
	}

	cmd.Flags().StringVarP(&inPath, "in", "i", stdStream, `backup file, "-" for stdin`)
	cmd.Flags().StringVar(&passphrase, "passphrase", "", "backup passphrase (default $"+PassphraseEnv+" or prompt)")
	return cmd
}

func readBackup(cmd *cobra.Command, path string) (string, error) {
	var (
		content []byte
		err     error
	)
	if path == stdStream {
		content, err = io.ReadAll(cmd.InOrStdin())
	} else {
		content, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("read backup: %w", err)
	}
	return strings.TrimSpace(string(content)), nil
}
