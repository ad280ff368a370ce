package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"go.uber.org/zap"
)

// DefaultPrefix namespaces every key the store writes.
const DefaultPrefix = "emerald_app_"

var (
	ErrNilMedium   = errors.New("storage medium is required")
	ErrKeyNotFound = errors.New("storage key not found")
	ErrEmptyKey    = errors.New("storage key is empty")
)

type Status int

const (
	StatusAbsent Status = iota
	StatusFound
	StatusCorrupt
	StatusFailed
)

func (status Status) String() string {
	switch status {
	case StatusFound:
		return "found"
	case StatusCorrupt:
		return "corrupt"
	case StatusFailed:
		return "failed"
	default:
		return "absent"
	}
}

// Result tells a read's outcome apart: nothing stored, a usable value, a stored
// value that could not be decoded, or a medium failure.
type Result struct {
	Status   Status
	Payload  json.RawMessage
	Envelope Envelope
	Err      error
}

func (result Result) Found() bool {
	return result.Status == StatusFound
}

// Decode unmarshals the payload into target, which must be a non-nil pointer.
// Target is only assigned when the whole payload decodes. Non-found results return
// their error, or ErrKeyNotFound when absent.
func (result Result) Decode(target any) error {
	switch result.Status {
	case StatusFound:
		targetValue := reflect.ValueOf(target)
		if targetValue.Kind() != reflect.Pointer || targetValue.IsNil() {
			return fmt.Errorf("decode payload: target %T is not a non-nil pointer", target)
		}
		fresh := reflect.New(targetValue.Elem().Type())
		if err := json.Unmarshal(result.Payload, fresh.Interface()); err != nil {
			return fmt.Errorf("%w: decode payload: %v", ErrCorruptEnvelope, err)
		}
		targetValue.Elem().Set(fresh.Elem())
		return nil
	case StatusAbsent:
		return ErrKeyNotFound
	default:
		return result.Err
	}
}

type Options struct {
	Prefix string
	Key    string
	Now    func() time.Time
	Logger *zap.Logger
}

// Store persists JSON values in envelopes under a namespace prefix, optionally
// obfuscated. Obfuscation is not encryption; see Obfuscator.
type Store struct {
	medium     Medium
	prefix     string
	obfuscator *Obfuscator
	now        func() time.Time
	logger     *zap.Logger
}

func New(medium Medium, options Options) (*Store, error) {
	if medium == nil {
		return nil, ErrNilMedium
	}
	obfuscator, err := NewObfuscator(options.Key)
	if err != nil {
		return nil, err
	}

	prefix := options.Prefix
	if prefix == "" {
		prefix = DefaultPrefix
	}
	now := options.Now
	if now == nil {
		now = time.Now
	}
	logger := options.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Store{
		medium:     medium,
		prefix:     prefix,
		obfuscator: obfuscator,
		now:        now,
		logger:     logger,
	}, nil
}

func (store *Store) Prefix() string {
	return store.prefix
}

func (store *Store) storageKey(key string) string {
	return store.prefix + key
}

// Put serializes value, obfuscates it when encrypt is set, wraps it in an envelope
// and overwrites whatever was stored under key.
func (store *Store) Put(key string, value any, encrypt bool) error {
	if key == "" {
		return ErrEmptyKey
	}
	serialized, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("serialize %s: %w", key, err)
	}

	data := string(serialized)
	if encrypt {
		data, err = store.obfuscator.Obfuscate(escapeNonLatin1(data))
		if err != nil {
			return fmt.Errorf("obfuscate %s: %w", key, err)
		}
	}

	raw, err := encodeEnvelope(Envelope{
		Timestamp: store.now().UnixMilli(),
		Encrypted: encrypt,
		Data:      data,
	})
	if err != nil {
		return err
	}
	if err := store.medium.SetString(store.storageKey(key), raw); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

// Get reads and unwraps the value stored under key.
func (store *Store) Get(key string) Result {
	raw, ok, err := store.medium.GetString(store.storageKey(key))
	if err != nil {
		return Result{Status: StatusFailed, Err: fmt.Errorf("read %s: %w", key, err)}
	}
	if !ok || raw == "" {
		return Result{Status: StatusAbsent}
	}
	return store.unwrap(key, raw)
}

func (store *Store) unwrap(key string, raw string) Result {
	envelope, err := decodeEnvelope(raw)
	if err != nil {
		return Result{Status: StatusCorrupt, Err: fmt.Errorf("%s: %w", key, err)}
	}

	payload := envelope.Data
	if envelope.Encrypted {
		payload, err = store.obfuscator.Deobfuscate(envelope.Data)
		if err != nil {
			return Result{Status: StatusCorrupt, Envelope: envelope, Err: fmt.Errorf("%s: %w", key, err)}
		}
	}
	if !json.Valid([]byte(payload)) {
		return Result{
			Status:   StatusCorrupt,
			Envelope: envelope,
			Err:      fmt.Errorf("%s: %w: payload is not valid json", key, ErrCorruptEnvelope),
		}
	}
	return Result{Status: StatusFound, Payload: json.RawMessage(payload), Envelope: envelope}
}

// Load decodes the value under key into target. It reports false with a nil error
// when nothing is stored.
func (store *Store) Load(key string, target any) (bool, error) {
	result := store.Get(key)
	if result.Status == StatusAbsent {
		return false, nil
	}
	if err := result.Decode(target); err != nil {
		return false, err
	}
	return true, nil
}

func (store *Store) Remove(key string) error {
	if err := store.medium.RemoveKey(store.storageKey(key)); err != nil {
		return fmt.Errorf("remove %s: %w", key, err)
	}
	return nil
}

// listNamespaced returns the full medium keys under the store prefix. Media that
// can filter server side are asked for the prefix only.
func (store *Store) listNamespaced() ([]string, error) {
	var (
		keys []string
		err  error
	)
	if lister, ok := store.medium.(PrefixLister); ok {
		keys, err = lister.ListKeysWithPrefix(store.prefix)
	} else {
		keys, err = store.medium.ListKeys()
	}
	if err != nil {
		return nil, fmt.Errorf("list keys: %w", err)
	}
	namespaced := make([]string, 0, len(keys))
	for _, key := range keys {
		if strings.HasPrefix(key, store.prefix) {
			namespaced = append(namespaced, key)
		}
	}
	return namespaced, nil
}

// Clear removes every namespaced entry and leaves other keys in the medium alone.
func (store *Store) Clear() error {
	keys, err := store.listNamespaced()
	if err != nil {
		return err
	}
	var errs []error
	for _, key := range keys {
		if err := store.medium.RemoveKey(key); err != nil {
			errs = append(errs, fmt.Errorf("remove %s: %w", key, err))
		}
	}
	return errors.Join(errs...)
}

// Keys lists the namespaced keys with the prefix stripped.
func (store *Store) Keys() ([]string, error) {
	keys, err := store.listNamespaced()
	if err != nil {
		return nil, err
	}
	for index, key := range keys {
		keys[index] = strings.TrimPrefix(key, store.prefix)
	}
	return keys, nil
}

// RawEntries returns the stored envelope strings keyed by unprefixed key.
func (store *Store) RawEntries() (map[string]string, error) {
	keys, err := store.Keys()
	if err != nil {
		return nil, err
	}
	entries := make(map[string]string, len(keys))
	for _, key := range keys {
		raw, ok, err := store.medium.GetString(store.storageKey(key))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", key, err)
		}
		if ok {
			entries[key] = raw
		}
	}
	return entries, nil
}

// PutRaw writes an envelope string verbatim.
func (store *Store) PutRaw(key string, raw string) error {
	if key == "" {
		return ErrEmptyKey
	}
	if err := store.medium.SetString(store.storageKey(key), raw); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

// SetItem is Put with failures logged instead of returned. A failed write is only
// observable through a later read, so it must not guard anything that matters.
func (store *Store) SetItem(key string, value any, encrypt bool) {
	if err := store.Put(key, value, encrypt); err != nil {
		store.logger.Warn("storage write failed",
			zap.String("key", store.storageKey(key)),
			zap.Bool("encrypted", encrypt),
			zap.Error(err),
		)
	}
}

// GetItem is Load with corrupt or unreadable entries reported as absent.
func (store *Store) GetItem(key string, target any) bool {
	found, err := store.Load(key, target)
	if err != nil {
		store.logger.Warn("storage read failed",
			zap.String("key", store.storageKey(key)),
			zap.Error(err),
		)
		return false
	}
	return found
}

// IsCorrupt reports whether err came from undecodable stored data rather than
// from the medium.
func IsCorrupt(err error) bool {
	return errors.Is(err, ErrCorruptEnvelope) || errors.Is(err, ErrDeobfuscate)
}
