package storage

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"unicode/utf16"
)

// DefaultObfuscationKey is the key shipped with the browser build. Data written
// with it is readable by anyone holding the source.
const DefaultObfuscationKey = "emerald-secret-key-2025"

var (
	ErrEmptyObfuscationKey   = errors.New("obfuscation key is empty")
	ErrInvalidObfuscationKey = errors.New("obfuscation key must only contain latin-1 characters")
	ErrObfuscateRange        = errors.New("obfuscated code unit does not fit in one byte")
	ErrDeobfuscate           = errors.New("deobfuscate payload")
)

// Obfuscator applies a repeating-key XOR over UTF-16 code units and base64
// encodes one byte per unit. It hides text from a casual glance at the medium and
// nothing more: the key repeats, is not secret, and there is no integrity check.
type Obfuscator struct {
	key []uint16
}

func NewObfuscator(key string) (*Obfuscator, error) {
	if key == "" {
		return nil, ErrEmptyObfuscationKey
	}
	units := utf16.Encode([]rune(key))
	for _, unit := range units {
		if unit > 0xFF {
			return nil, ErrInvalidObfuscationKey
		}
	}
	return &Obfuscator{key: units}, nil
}

func (obfuscator *Obfuscator) xor(units []uint16) {
	for index := range units {
		units[index] ^= obfuscator.key[index%len(obfuscator.key)]
	}
}

// Obfuscate fails with ErrObfuscateRange when plain holds a code unit above 0xFF;
// callers escape such characters first.
func (obfuscator *Obfuscator) Obfuscate(plain string) (string, error) {
	units := utf16.Encode([]rune(plain))
	obfuscator.xor(units)

	raw := make([]byte, len(units))
	for index, unit := range units {
		if unit > 0xFF {
			return "", fmt.Errorf("%w at offset %d", ErrObfuscateRange, index)
		}
		raw[index] = byte(unit)
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

func (obfuscator *Obfuscator) Deobfuscate(encoded string) (string, error) {
	raw, err := decodeBase64Lenient(encoded)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDeobfuscate, err)
	}

	units := make([]uint16, len(raw))
	for index, value := range raw {
		units[index] = uint16(value)
	}
	obfuscator.xor(units)
	return string(utf16.Decode(units)), nil
}

// decodeBase64Lenient accepts what browsers' atob accepts: ASCII whitespace and
// missing padding.
func decodeBase64Lenient(encoded string) ([]byte, error) {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\f', '\r':
			return -1
		}
		return r
	}, encoded)
	return base64.RawStdEncoding.DecodeString(strings.TrimRight(cleaned, "="))
}

// escapeNonLatin1 rewrites every code unit above 0xFF in a JSON text as a \uXXXX
// escape. Such characters only occur inside JSON strings, so the result parses to
// the same value.
func escapeNonLatin1(jsonText string) string {
	var builder strings.Builder
	builder.Grow(len(jsonText))
	for _, r := range jsonText {
		if r <= 0xFF {
			builder.WriteRune(r)
			continue
		}
		for _, unit := range utf16.Encode([]rune{r}) {
			fmt.Fprintf(&builder, `\u%04x`, unit)
		}
	}
	return builder.String()
}
