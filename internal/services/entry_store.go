package services

import (
	"time"

	"github.com/terraincognita07/emerald/internal/storage"
	"go.uber.org/zap"
)

// Keys the services persist under, before the store's namespace prefix.
const (
	PeriodDatesKey    = "period_dates"
	CycleSettingsKey  = "cycle_settings"
	HealthLogsKey     = "health_logs"
	SymptomsByDateKey = "symptoms_by_date"
)

type EntryStore interface {
	Put(key string, value any, encrypt bool) error
	Load(key string, target any) (bool, error)
	Remove(key string) error
}

// StoreOptions is shared by every store-backed service.
type StoreOptions struct {
	// Encrypt obfuscates health data on write. Settings are always stored plain.
	Encrypt  bool
	Location *time.Location
	Logger   *zap.Logger
}

func (options StoreOptions) normalized() StoreOptions {
	if options.Location == nil {
		options.Location = time.UTC
	}
	if options.Logger == nil {
		options.Logger = zap.NewNop()
	}
	return options
}

// loadEntry decodes key into target. Corrupt data is logged and reported as
// absent so one bad entry never locks the user out; medium failures are returned.
// Callers must not use target when found is false.
func loadEntry(store EntryStore, logger *zap.Logger, key string, target any) (bool, error) {
	found, err := store.Load(key, target)
	if err == nil {
		return found, nil
	}
	if storage.IsCorrupt(err) {
		logger.Warn("discarding corrupt entry", zap.String("key", key), zap.Error(err))
		return false, nil
	}
	return false, err
}
