package services

import (
	"fmt"
	"sync"

	"github.com/terraincognita07/emerald/internal/models"
)

type SettingsService struct {
	store   EntryStore
	options StoreOptions
	mu      sync.Mutex
}

func NewSettingsService(store EntryStore, options StoreOptions) *SettingsService {
	return &SettingsService{store: store, options: options.normalized()}
}

// Get returns the stored settings normalized into range, or the defaults when
// nothing usable is stored.
func (service *SettingsService) Get() (models.CycleSettings, error) {
	settings := models.DefaultCycleSettings()
	found, err := loadEntry(service.store, service.options.Logger, CycleSettingsKey, &settings)
	if err != nil {
		return models.CycleSettings{}, fmt.Errorf("load cycle settings: %w", err)
	}
	if !found {
		return models.DefaultCycleSettings(), nil
	}
	return NormalizeCycleSettings(settings), nil
}

// Update clamps settings and persists them immediately. A zero field keeps the
// stored value.
func (service *SettingsService) Update(update models.CycleSettings) (models.CycleSettings, error) {
	service.mu.Lock()
	defer service.mu.Unlock()

	current, err := service.Get()
	if err != nil {
		return models.CycleSettings{}, err
	}
	if update.CycleLength != 0 {
		current.CycleLength = ClampCycleLength(update.CycleLength)
	}
	if update.PeriodLength != 0 {
		current.PeriodLength = ClampPeriodLength(update.PeriodLength)
	}
	if err := service.store.Put(CycleSettingsKey, current, false); err != nil {
		return models.CycleSettings{}, fmt.Errorf("save cycle settings: %w", err)
	}
	return current, nil
}

// Reset drops the stored settings so defaults apply again.
func (service *SettingsService) Reset() error {
	service.mu.Lock()
	defer service.mu.Unlock()
	return service.store.Remove(CycleSettingsKey)
}
