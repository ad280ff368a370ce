// Package backup seals a raw copy of every stored entry under a passphrase.
//
// A snapshot holds the envelope strings exactly as the medium stores them, so
// restoring one reproduces the original timestamps and obfuscation flags.
package backup

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/terraincognita07/emerald/internal/security"
	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"
)

// FormatPrefix marks the sealed file format version.
const FormatPrefix = "emerald-backup.v1."

const (
	saltSize       = 16
	argonTime      = 3
	argonMemoryKiB = 64 * 1024
	argonThreads   = 2
	minPassphrase  = 8
)

var (
	ErrPassphraseTooShort = fmt.Errorf("passphrase must be at least %d characters", minPassphrase)
	ErrUnknownFormat      = errors.New("not an emerald backup")
	ErrDecrypt            = errors.New("backup cannot be opened with this passphrase")
)

// Snapshot is the plaintext content of a sealed backup.
type Snapshot struct {
	CreatedAt time.Time         `json:"created_at"`
	Prefix    string            `json:"prefix"`
	Entries   map[string]string `json:"entries"`
}

// EntrySource lists raw namespaced entries by unprefixed key.
type EntrySource interface {
	Prefix() string
	RawEntries() (map[string]string, error)
}

// EntrySink writes raw envelope strings back verbatim.
type EntrySink interface {
	PutRaw(key string, raw string) error
}

func deriveKey(passphrase string, salt []byte) []byte {
	return argon2.IDKey([]byte(passphrase), salt, argonTime, argonMemoryKiB, argonThreads, chacha20poly1305.KeySize)
}

// Seal encrypts snapshot with XChaCha20-Poly1305 under a key derived from
// passphrase and returns the text form.
func Seal(snapshot Snapshot, passphrase string) (string, error) {
	if len(passphrase) < minPassphrase {
		return "", ErrPassphraseTooShort
	}
	plaintext, err := json.Marshal(snapshot)
	if err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}

	salt, err := security.RandomBytes(saltSize)
	if err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	aead, err := chacha20poly1305.NewX(deriveKey(passphrase, salt))
	if err != nil {
		return "", err
	}
	nonce, err := security.RandomBytes(aead.NonceSize())
	if err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}

	sealed := make([]byte, 0, saltSize+len(nonce)+len(plaintext)+aead.Overhead())
	sealed = append(sealed, salt...)
	sealed = append(sealed, nonce...)
	sealed = aead.Seal(sealed, nonce, plaintext, []byte(FormatPrefix))
	return FormatPrefix + base64.RawURLEncoding.EncodeToString(sealed), nil
}

// Open reverses Seal. A wrong passphrase and a tampered file are reported the
// same way.
func Open(sealedText string, passphrase string) (Snapshot, error) {
	sealedText = strings.TrimSpace(sealedText)
	if !strings.HasPrefix(sealedText, FormatPrefix) {
		return Snapshot{}, ErrUnknownFormat
	}
	raw, err := base64.RawURLEncoding.DecodeString(strings.TrimPrefix(sealedText, FormatPrefix))
	if err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", ErrUnknownFormat, err)
	}
	if len(raw) < saltSize+chacha20poly1305.NonceSizeX {
		return Snapshot{}, ErrUnknownFormat
	}

	salt := raw[:saltSize]
	nonce := raw[saltSize : saltSize+chacha20poly1305.NonceSizeX]
	ciphertext := raw[saltSize+chacha20poly1305.NonceSizeX:]

	aead, err := chacha20poly1305.NewX(deriveKey(passphrase, salt))
	if err != nil {
		return Snapshot{}, err
	}
	plaintext, err := aead.Open(nil, nonce, ciphertext, []byte(FormatPrefix))
	if err != nil {
		return Snapshot{}, ErrDecrypt
	}

	var snapshot Snapshot
	if err := json.Unmarshal(plaintext, &snapshot); err != nil {
		return Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	if snapshot.Entries == nil {
		snapshot.Entries = map[string]string{}
	}
	return snapshot, nil
}

// Export captures every namespaced entry of source and seals it.
func Export(source EntrySource, passphrase string, now time.Time) (string, int, error) {
	entries, err := source.RawEntries()
	if err != nil {
		return "", 0, fmt.Errorf("read entries: %w", err)
	}
	sealed, err := Seal(Snapshot{
		CreatedAt: now.UTC(),
		Prefix:    source.Prefix(),
		Entries:   entries,
	}, passphrase)
	if err != nil {
		return "", 0, err
	}
	return sealed, len(entries), nil
}

// PartialRestoreError reports an import that stopped after writing some entries.
// Restored entries stay written; the sink has no transaction to roll back.
type PartialRestoreError struct {
	Restored []string
	Failed   string
	Err      error
}

func (err *PartialRestoreError) Error() string {
	return fmt.Sprintf("restore %s after %d restored entries: %v", err.Failed, len(err.Restored), err.Err)
}

func (err *PartialRestoreError) Unwrap() error {
	return err.Err
}

// Import opens sealedText and overwrites the matching entries in sink in key
// order, returning the keys written. Entries already in sink that the snapshot
// does not mention are left alone. A failed write returns *PartialRestoreError.
func Import(sink EntrySink, sealedText string, passphrase string) ([]string, error) {
	snapshot, err := Open(sealedText, passphrase)
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(snapshot.Entries))
	for key := range snapshot.Entries {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	restored := make([]string, 0, len(keys))
	for _, key := range keys {
		if err := sink.PutRaw(key, snapshot.Entries[key]); err != nil {
			return restored, &PartialRestoreError{Restored: restored, Failed: key, Err: err}
		}
		restored = append(restored, key)
	}
	return restored, nil
}
