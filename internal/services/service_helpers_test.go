package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/terraincognita07/emerald/internal/storage"
	"go.uber.org/zap"
)

type testServices struct {
	medium   *storage.MemoryMedium
	store    *storage.Store
	settings *SettingsService
	symptoms *SymptomService
	health   *HealthLogService
	tracker  *TrackerService
	stats    *StatsService
}

func newTestServices(t *testing.T, logger *zap.Logger) testServices {
	t.Helper()
	if logger == nil {
		logger = zap.NewNop()
	}

	medium := storage.NewMemoryMedium()
	store, err := storage.New(medium, storage.Options{
		Key:    storage.DefaultObfuscationKey,
		Logger: logger,
		Now:    func() time.Time { return time.Date(2025, time.January, 20, 9, 30, 0, 0, time.UTC) },
	})
	require.NoError(t, err)

	options := StoreOptions{Encrypt: true, Location: time.UTC, Logger: logger}
	settings := NewSettingsService(store, options)
	symptoms := NewSymptomService(store, options)
	tracker := NewTrackerService(store, settings, symptoms, options)
	return testServices{
		medium:   medium,
		store:    store,
		settings: settings,
		symptoms: symptoms,
		health:   NewHealthLogService(store, options),
		tracker:  tracker,
		stats:    NewStatsService(tracker, symptoms),
	}
}
