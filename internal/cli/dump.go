package cli

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/spf13/cobra"
	"github.com/terraincognita07/emerald/internal/storage"
	"go.uber.org/zap"
)

type dumpedEntry struct {
	Status    string          `json:"status"`
	Encrypted bool            `json:"encrypted"`
	Timestamp int64           `json:"timestamp,omitempty"`
	Value     json.RawMessage `json:"value,omitempty"`
	Error     string          `json:"error,omitempty"`
}

func newDumpCommand(state *cliState) *cobra.Command {
	return &cobra.Command{
		Use:   "dump",
		Short: "Print every stored entry decoded as JSON",
		Long: `Print every entry under the storage prefix with its payload decoded.
Entries that cannot be decoded are listed with status "corrupt".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := state.openRuntime()
			if err != nil {
				return err
			}
			defer closeRuntime(rt, state.logger)

			dump, err := dumpEntries(rt.Store)
			if err != nil {
				return err
			}
			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			return encoder.Encode(dump)
		},
	}
}

func dumpEntries(store *storage.Store) (map[string]dumpedEntry, error) {
	keys, err := store.Keys()
	if err != nil {
		return nil, err
	}
	sort.Strings(keys)

	dump := make(map[string]dumpedEntry, len(keys))
	for _, key := range keys {
		result := store.Get(key)
		entry := dumpedEntry{
			Status:    result.Status.String(),
			Encrypted: result.Envelope.Encrypted,
			Timestamp: result.Envelope.Timestamp,
		}
		switch result.Status {
		case storage.StatusFound:
			entry.Value = result.Payload
		case storage.StatusFailed:
			return nil, fmt.Errorf("dump %s: %w", key, result.Err)
		case storage.StatusCorrupt:
			entry.Error = result.Err.Error()
		case storage.StatusAbsent:
			continue
		}
		dump[key] = entry
	}
	return dump, nil
}

func closeRuntime(rt *Runtime, logger *zap.Logger) {
	if err := rt.Close(); err != nil {
		logger.Warn("closing storage failed", zap.Error(err))
	}
}
