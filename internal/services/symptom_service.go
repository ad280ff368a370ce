package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/terraincognita07/emerald/internal/models"
)

var ErrInvalidSymptomTag = errors.New("invalid symptom tag")

const maxSymptomTagLength = 80

type SymptomService struct {
	store   EntryStore
	options StoreOptions
	mu      sync.Mutex
}

func NewSymptomService(store EntryStore, options StoreOptions) *SymptomService {
	return &SymptomService{store: store, options: options.normalized()}
}

// All returns every annotated day. Stored days with no tags are dropped.
func (service *SymptomService) All() (models.SymptomsByDate, error) {
	var byDate models.SymptomsByDate
	found, err := loadEntry(service.store, service.options.Logger, SymptomsByDateKey, &byDate)
	if err != nil {
		return nil, fmt.Errorf("load symptoms: %w", err)
	}
	if !found || byDate == nil {
		byDate = models.SymptomsByDate{}
	}
	for key, tags := range byDate {
		if len(tags) == 0 {
			delete(byDate, key)
		}
	}
	return byDate, nil
}

// ForDay returns the tags for day and whether anything was recorded.
func (service *SymptomService) ForDay(day time.Time) ([]string, bool, error) {
	byDate, err := service.All()
	if err != nil {
		return nil, false, err
	}
	tags, ok := byDate[DateAtLocation(day, service.options.Location).Format(models.DayLayout)]
	return tags, ok, nil
}

// Toggle flips tag for day and returns the day's new tags. Removing the last tag
// removes the day.
func (service *SymptomService) Toggle(day time.Time, tag string) ([]string, error) {
	tag = strings.TrimSpace(tag)
	if tag == "" || len(tag) > maxSymptomTagLength {
		return nil, ErrInvalidSymptomTag
	}

	service.mu.Lock()
	defer service.mu.Unlock()

	byDate, err := service.All()
	if err != nil {
		return nil, err
	}
	key := DateAtLocation(day, service.options.Location).Format(models.DayLayout)
	tags := ToggleSymptom(byDate[key], tag)
	if len(tags) == 0 {
		delete(byDate, key)
	} else {
		byDate[key] = tags
	}

	if err := service.store.Put(SymptomsByDateKey, byDate, service.options.Encrypt); err != nil {
		return nil, fmt.Errorf("save symptoms: %w", err)
	}
	return tags, nil
}

// Days lists the annotated day keys in ascending order.
func (service *SymptomService) Days() ([]string, error) {
	byDate, err := service.All()
	if err != nil {
		return nil, err
	}
	days := make([]string, 0, len(byDate))
	for key := range byDate {
		days = append(days, key)
	}
	sort.Strings(days)
	return days, nil
}
