package services

import (
	"fmt"
	"sync"
	"time"

	"github.com/terraincognita07/emerald/internal/models"
)

// TrackerService persists the period log and derives cycle views from it.
type TrackerService struct {
	store    EntryStore
	settings *SettingsService
	symptoms *SymptomService
	options  StoreOptions
	mu       sync.Mutex
}

func NewTrackerService(store EntryStore, settings *SettingsService, symptoms *SymptomService, options StoreOptions) *TrackerService {
	return &TrackerService{
		store:    store,
		settings: settings,
		symptoms: symptoms,
		options:  options.normalized(),
	}
}

func (service *TrackerService) Location() *time.Location {
	return service.options.Location
}

// PeriodLog loads the logged days. Unparseable day keys are logged and skipped.
func (service *TrackerService) PeriodLog() (*models.PeriodLog, error) {
	var keys []string
	found, err := loadEntry(service.store, service.options.Logger, PeriodDatesKey, &keys)
	if err != nil {
		return nil, fmt.Errorf("load period dates: %w", err)
	}
	if !found {
		keys = nil
	}
	periodLog, invalid := models.ParsePeriodLog(keys, service.options.Location)
	if len(invalid) > 0 {
		service.options.Logger.Sugar().Warnw("skipping invalid period dates", "count", len(invalid))
	}
	return periodLog, nil
}

func (service *TrackerService) savePeriodLog(periodLog *models.PeriodLog) error {
	if err := service.store.Put(PeriodDatesKey, periodLog.Keys(), service.options.Encrypt); err != nil {
		return fmt.Errorf("save period dates: %w", err)
	}
	return nil
}

// LogPeriod merges durationDays days starting at start into the log and reports
// how many were new.
func (service *TrackerService) LogPeriod(start time.Time, durationDays int) (int, error) {
	return service.mutatePeriodLog(start, durationDays, MergePeriodRange)
}

// RemovePeriod deletes a logged range and reports how many days were removed.
func (service *TrackerService) RemovePeriod(start time.Time, durationDays int) (int, error) {
	return service.mutatePeriodLog(start, durationDays, RemovePeriodRange)
}

func (service *TrackerService) mutatePeriodLog(start time.Time, durationDays int, mutate func(*models.PeriodLog, time.Time, int) (int, error)) (int, error) {
	service.mu.Lock()
	defer service.mu.Unlock()

	periodLog, err := service.PeriodLog()
	if err != nil {
		return 0, err
	}
	changed, err := mutate(periodLog, DateAtLocation(start, service.options.Location), durationDays)
	if err != nil {
		return 0, err
	}
	if changed == 0 {
		return 0, nil
	}
	if err := service.savePeriodLog(periodLog); err != nil {
		return 0, err
	}
	return changed, nil
}

func (service *TrackerService) Overview(now time.Time) (CycleOverview, error) {
	periodLog, err := service.PeriodLog()
	if err != nil {
		return CycleOverview{}, err
	}
	settings, err := service.settings.Get()
	if err != nil {
		return CycleOverview{}, err
	}
	return BuildCycleOverview(periodLog, settings, now, service.options.Location), nil
}

// Calendar builds the day grid for the month containing month.
func (service *TrackerService) Calendar(month time.Time, now time.Time) ([]CalendarDayState, bool, error) {
	periodLog, err := service.PeriodLog()
	if err != nil {
		return nil, false, err
	}
	settings, err := service.settings.Get()
	if err != nil {
		return nil, false, err
	}
	symptoms, err := service.symptoms.All()
	if err != nil {
		return nil, false, err
	}
	days := BuildCalendarDayStates(month, periodLog, symptoms, settings, now, service.options.Location)
	return days, periodLog.Len() > 0, nil
}
