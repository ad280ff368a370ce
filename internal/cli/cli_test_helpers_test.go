package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/terraincognita07/emerald/internal/config"
	"github.com/terraincognita07/emerald/internal/models"
	"github.com/terraincognita07/emerald/internal/storage"
	"go.uber.org/zap"
)

var testNow = time.Date(2025, time.February, 1, 10, 0, 0, 0, time.UTC)

func testConfig() *config.Config {
	return &config.Config{
		AppEnv:          "test",
		LogLevel:        "info",
		Port:            "0",
		TZ:              "UTC",
		StorageBackend:  config.BackendMemory,
		StoragePrefix:   storage.DefaultPrefix,
		EncryptionKey:   "test-obfuscation-key",
		EncryptLogs:     true,
		ShutdownTimeout: time.Second,
	}
}

// cliHarness runs commands against one shared in-memory medium.
type cliHarness struct {
	cfg     *config.Config
	medium  *storage.MemoryMedium
	env     map[string]string
	prompts []string
	// failWriteKey makes command writes to this medium key fail.
	failWriteKey string
}

type failingWriteMedium struct {
	*storage.MemoryMedium
	failKey string
}

func (medium failingWriteMedium) SetString(key string, value string) error {
	if key == medium.failKey {
		return errors.New("disk full")
	}
	return medium.MemoryMedium.SetString(key, value)
}

func (h *cliHarness) commandMedium() storage.Medium {
	if h.failWriteKey == "" {
		return h.medium
	}
	return failingWriteMedium{MemoryMedium: h.medium, failKey: h.failWriteKey}
}

func newHarness(t *testing.T) *cliHarness {
	t.Helper()
	return &cliHarness{
		cfg:    testConfig(),
		medium: storage.NewMemoryMedium(),
		env:    map[string]string{},
	}
}

func (h *cliHarness) options() Options {
	return Options{
		LoadConfig: func() (*config.Config, error) { return h.cfg, nil },
		NewLogger:  func(*config.Config) (*zap.Logger, error) { return zap.NewNop(), nil },
		OpenRuntime: func(cfg *config.Config, logger *zap.Logger) (*Runtime, error) {
			return NewRuntime(cfg, logger, time.UTC, h.commandMedium())
		},
		LookupEnv: func(key string) (string, bool) {
			value, ok := h.env[key]
			return value, ok
		},
		PromptPassphrase: func(string) (string, error) {
			if len(h.prompts) == 0 {
				return "", errNotTerminal
			}
			next := h.prompts[0]
			h.prompts = h.prompts[1:]
			return next, nil
		},
		Now: func() time.Time { return testNow },
	}
}

// runtime opens a Runtime over the shared medium for seeding and assertions.
func (h *cliHarness) runtime(t *testing.T) *Runtime {
	t.Helper()
	rt, err := NewRuntime(h.cfg, zap.NewNop(), time.UTC, h.medium)
	require.NoError(t, err)
	return rt
}

func (h *cliHarness) run(stdin string, args ...string) (string, string, error) {
	cmd := NewRootCommand(h.options())
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func (h *cliHarness) seed(t *testing.T) {
	t.Helper()
	rt := h.runtime(t)
	start := time.Date(2025, time.January, 20, 0, 0, 0, 0, time.UTC)
	_, err := rt.Tracker.LogPeriod(start, 5)
	require.NoError(t, err)
	_, err = rt.Symptoms.Toggle(start, "Cramps")
	require.NoError(t, err)
}

func (h *cliHarness) periodKeys(t *testing.T) []string {
	t.Helper()
	periodLog, err := h.runtime(t).Tracker.PeriodLog()
	require.NoError(t, err)
	return periodLog.Keys()
}

func dayKey(year int, month time.Month, day int) string {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Format(models.DayLayout)
}
