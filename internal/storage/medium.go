package storage

import (
	"sort"
	"strings"
	"sync"
)

// Medium is the synchronous string key-value backend the store writes envelopes to.
// Implementations give single-key atomicity only; concurrent writers race and the
// last one wins.
type Medium interface {
	GetString(key string) (string, bool, error)
	SetString(key string, value string) error
	RemoveKey(key string) error
	ListKeys() ([]string, error)
}

// PrefixLister is implemented by media that can list keys under a prefix without
// walking the whole keyspace.
type PrefixLister interface {
	ListKeysWithPrefix(prefix string) ([]string, error)
}

// MemoryMedium keeps entries in process memory.
type MemoryMedium struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemoryMedium() *MemoryMedium {
	return &MemoryMedium{values: make(map[string]string)}
}

func (medium *MemoryMedium) GetString(key string) (string, bool, error) {
	medium.mu.RLock()
	defer medium.mu.RUnlock()
	value, ok := medium.values[key]
	return value, ok, nil
}

func (medium *MemoryMedium) SetString(key string, value string) error {
	medium.mu.Lock()
	defer medium.mu.Unlock()
	medium.values[key] = value
	return nil
}

func (medium *MemoryMedium) RemoveKey(key string) error {
	medium.mu.Lock()
	defer medium.mu.Unlock()
	delete(medium.values, key)
	return nil
}

func (medium *MemoryMedium) ListKeys() ([]string, error) {
	medium.mu.RLock()
	defer medium.mu.RUnlock()
	keys := make([]string, 0, len(medium.values))
	for key := range medium.values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys, nil
}

func (medium *MemoryMedium) ListKeysWithPrefix(prefix string) ([]string, error) {
	medium.mu.RLock()
	defer medium.mu.RUnlock()
	keys := make([]string, 0)
	for key := range medium.values {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys, nil
}
