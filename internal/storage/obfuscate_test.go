package storage

import (
	"errors"
	"testing"
)

func TestObfuscateMatchesBrowserEncoding(t *testing.T) {
	t.Parallel()

	obfuscator, err := NewObfuscator(DefaultObfuscationKey)
	if err != nil {
		t.Fatalf("NewObfuscator returned error: %v", err)
	}

	cases := []struct {
		name  string
		plain string
		want  string
	}{
		{name: "ascii object", plain: `{"a":1}`, want: "Hk8EUFtdGQ=="},
		{name: "latin-1 string", plain: `"é"`, want: "R4RH"},
		{name: "empty", plain: "", want: ""},
	}

	for _, testCase := range cases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			got, err := obfuscator.Obfuscate(testCase.plain)
			if err != nil {
				t.Fatalf("Obfuscate(%q) returned error: %v", testCase.plain, err)
			}
			if got != testCase.want {
				t.Fatalf("Obfuscate(%q) = %q, want %q", testCase.plain, got, testCase.want)
			}

			back, err := obfuscator.Deobfuscate(got)
			if err != nil {
				t.Fatalf("Deobfuscate(%q) returned error: %v", got, err)
			}
			if back != testCase.plain {
				t.Fatalf("Deobfuscate(%q) = %q, want %q", got, back, testCase.plain)
			}
		})
	}
}

func TestObfuscateRejectsWideCodeUnits(t *testing.T) {
	t.Parallel()

	obfuscator, err := NewObfuscator(DefaultObfuscationKey)
	if err != nil {
		t.Fatalf("NewObfuscator returned error: %v", err)
	}
	if _, err := obfuscator.Obfuscate("月"); !errors.Is(err, ErrObfuscateRange) {
		t.Fatalf("expected ErrObfuscateRange, got %v", err)
	}
	if _, err := obfuscator.Obfuscate(escapeNonLatin1(`"月🌙"`)); err != nil {
		t.Fatalf("expected escaped text to obfuscate, got %v", err)
	}
}

func TestNewObfuscatorValidatesKey(t *testing.T) {
	t.Parallel()

	if _, err := NewObfuscator(""); !errors.Is(err, ErrEmptyObfuscationKey) {
		t.Fatalf("expected ErrEmptyObfuscationKey, got %v", err)
	}
	if _, err := NewObfuscator("ключ"); !errors.Is(err, ErrInvalidObfuscationKey) {
		t.Fatalf("expected ErrInvalidObfuscationKey, got %v", err)
	}
}

func TestDeobfuscateAcceptsMissingPaddingAndWhitespace(t *testing.T) {
	t.Parallel()

	obfuscator, err := NewObfuscator(DefaultObfuscationKey)
	if err != nil {
		t.Fatalf("NewObfuscator returned error: %v", err)
	}
	got, err := obfuscator.Deobfuscate("Hk8E UFtd\nGQ")
	if err != nil {
		t.Fatalf("Deobfuscate returned error: %v", err)
	}
	if got != `{"a":1}` {
		t.Fatalf("Deobfuscate = %q, want %q", got, `{"a":1}`)
	}
}

func TestDeobfuscateRejectsMalformedBase64(t *testing.T) {
	t.Parallel()

	obfuscator, err := NewObfuscator(DefaultObfuscationKey)
	if err != nil {
		t.Fatalf("NewObfuscator returned error: %v", err)
	}
	if _, err := obfuscator.Deobfuscate("%%%not-base64"); !errors.Is(err, ErrDeobfuscate) {
		t.Fatalf("expected ErrDeobfuscate, got %v", err)
	}
}

func TestEscapeNonLatin1(t *testing.T) {
	t.Parallel()

	got := escapeNonLatin1(`{"note":"café 月 🌙"}`)
	want := `{"note":"café \u6708 \ud83c\udf19"}`
	if got != want {
		t.Fatalf("escapeNonLatin1 = %q, want %q", got, want)
	}
}
