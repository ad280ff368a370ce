package security

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
)

// KeyAlphabet avoids characters that are easy to confuse when a key is copied by
// hand. Every character is ASCII so the key stays usable by the obfuscation layer.
const KeyAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz23456789-_"

const (
	DefaultKeyLength = 32
	MinKeyLength     = 16
)

var (
	errNegativeLength = errors.New("length must be non-negative")
	errBadAlphabet    = errors.New("alphabet must hold 1 to 256 bytes")
	ErrKeyTooShort    = fmt.Errorf("key must be at least %d characters", MinKeyLength)
)

// RandomString draws length characters uniformly from alphabet using crypto/rand.
// Random bytes at or above the largest multiple of len(alphabet) are discarded
// so no character is favoured.
func RandomString(length int, alphabet string) (string, error) {
	switch {
	case length < 0:
		return "", errNegativeLength
	case length == 0:
		return "", nil
	case len(alphabet) == 0 || len(alphabet) > 256:
		return "", errBadAlphabet
	}

	size := len(alphabet)
	ceiling := 256 - 256%size
	out := make([]byte, 0, length)
	buf := make([]byte, length)
	for len(out) < length {
		if _, err := io.ReadFull(rand.Reader, buf); err != nil {
			return "", err
		}
		for _, b := range buf {
			if int(b) >= ceiling {
				continue
			}
			out = append(out, alphabet[int(b)%size])
			if len(out) == length {
				break
			}
		}
	}
	return string(out), nil
}

// GenerateKey returns a random obfuscation key drawn from KeyAlphabet.
func GenerateKey(length int) (string, error) {
	if length < MinKeyLength {
		return "", ErrKeyTooShort
	}
	return RandomString(length, KeyAlphabet)
}

// RandomBytes fills a new slice of size n from crypto/rand.
func RandomBytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, errNegativeLength
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(rand.Reader, buf); err != nil {
		return nil, err
	}
	return buf, nil
}
