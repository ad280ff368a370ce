package services

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/terraincognita07/emerald/internal/models"
)

var (
	ErrHealthLogEntryNotFound = errors.New("health log entry not found")
	ErrInvalidMood            = errors.New("invalid mood")
	ErrHealthLogNoteTooLong   = errors.New("health log note too long")
)

const maxHealthLogNoteLength = 4000

// HealthLogInput is the user-editable part of an entry.
type HealthLogInput struct {
	Mood     string
	Symptoms []string
	Note     string
}

type HealthLogService struct {
	store   EntryStore
	options StoreOptions
	newID   func() string
	mu      sync.Mutex
}

func NewHealthLogService(store EntryStore, options StoreOptions) *HealthLogService {
	return &HealthLogService{
		store:   store,
		options: options.normalized(),
		newID:   uuid.NewString,
	}
}

func normalizeHealthLogInput(input HealthLogInput) (HealthLogInput, error) {
	input.Mood = strings.TrimSpace(input.Mood)
	if !models.IsValidMood(input.Mood) {
		return HealthLogInput{}, ErrInvalidMood
	}
	if len(input.Note) > maxHealthLogNoteLength {
		return HealthLogInput{}, ErrHealthLogNoteTooLong
	}

	symptoms := make([]string, 0, len(input.Symptoms))
	for _, tag := range input.Symptoms {
		if tag = strings.TrimSpace(tag); tag != "" {
			symptoms = append(symptoms, tag)
		}
	}
	input.Symptoms = uniqueStrings(symptoms)
	return input, nil
}

// List returns entries in append order, oldest first.
func (service *HealthLogService) List() ([]models.HealthLogEntry, error) {
	var entries []models.HealthLogEntry
	found, err := loadEntry(service.store, service.options.Logger, HealthLogsKey, &entries)
	if err != nil {
		return nil, fmt.Errorf("load health logs: %w", err)
	}
	if !found || entries == nil {
		entries = make([]models.HealthLogEntry, 0)
	}
	return entries, nil
}

// ListRecentFirst returns entries newest first, the order they are displayed in.
func (service *HealthLogService) ListRecentFirst() ([]models.HealthLogEntry, error) {
	entries, err := service.List()
	if err != nil {
		return nil, err
	}
	for left, right := 0, len(entries)-1; left < right; left, right = left+1, right-1 {
		entries[left], entries[right] = entries[right], entries[left]
	}
	return entries, nil
}

func (service *HealthLogService) save(entries []models.HealthLogEntry) error {
	if err := service.store.Put(HealthLogsKey, entries, service.options.Encrypt); err != nil {
		return fmt.Errorf("save health logs: %w", err)
	}
	return nil
}

func (service *HealthLogService) Append(input HealthLogInput, now time.Time) (models.HealthLogEntry, error) {
	input, err := normalizeHealthLogInput(input)
	if err != nil {
		return models.HealthLogEntry{}, err
	}

	service.mu.Lock()
	defer service.mu.Unlock()

	entries, err := service.List()
	if err != nil {
		return models.HealthLogEntry{}, err
	}
	entry := models.HealthLogEntry{
		ID:       service.newID(),
		Date:     now.UTC().Truncate(time.Millisecond),
		Mood:     input.Mood,
		Symptoms: input.Symptoms,
		Note:     input.Note,
	}
	if err := service.save(append(entries, entry)); err != nil {
		return models.HealthLogEntry{}, err
	}
	return entry, nil
}

// Update replaces the editable fields of the entry with id, keeping its date.
func (service *HealthLogService) Update(id string, input HealthLogInput) (models.HealthLogEntry, error) {
	input, err := normalizeHealthLogInput(input)
	if err != nil {
		return models.HealthLogEntry{}, err
	}

	service.mu.Lock()
	defer service.mu.Unlock()

	entries, err := service.List()
	if err != nil {
		return models.HealthLogEntry{}, err
	}
	index := indexOfHealthLogEntry(entries, id)
	if index < 0 {
		return models.HealthLogEntry{}, ErrHealthLogEntryNotFound
	}
	entries[index].Mood = input.Mood
	entries[index].Symptoms = input.Symptoms
	entries[index].Note = input.Note
	if err := service.save(entries); err != nil {
		return models.HealthLogEntry{}, err
	}
	return entries[index], nil
}

func (service *HealthLogService) Delete(id string) error {
	service.mu.Lock()
	defer service.mu.Unlock()

	entries, err := service.List()
	if err != nil {
		return err
	}
	index := indexOfHealthLogEntry(entries, id)
	if index < 0 {
		return ErrHealthLogEntryNotFound
	}
	return service.save(append(entries[:index], entries[index+1:]...))
}

// DeleteMatching removes the oldest entry structurally equal to target. It serves
// entries stored without an ID; identical duplicates are removed one at a time.
func (service *HealthLogService) DeleteMatching(target models.HealthLogEntry) error {
	service.mu.Lock()
	defer service.mu.Unlock()

	entries, err := service.List()
	if err != nil {
		return err
	}
	for index, entry := range entries {
		if entry.SameContent(target) {
			return service.save(append(entries[:index], entries[index+1:]...))
		}
	}
	return ErrHealthLogEntryNotFound
}

func indexOfHealthLogEntry(entries []models.HealthLogEntry, id string) int {
	if id == "" {
		return -1
	}
	for index, entry := range entries {
		if entry.ID == id {
			return index
		}
	}
	return -1
}
