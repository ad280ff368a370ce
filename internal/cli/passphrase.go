package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// PassphraseEnv supplies the backup passphrase to non-interactive runs.
const PassphraseEnv = "EMERALD_BACKUP_PASSPHRASE"

var (
	errNotTerminal         = errors.New("stdin is not a terminal")
	errPassphraseRequired  = errors.New("backup passphrase required: use --passphrase, set " + PassphraseEnv + " or run in a terminal")
	errPassphrasesMismatch = errors.New("passphrases do not match")
)

func readPromptLine(reader io.Reader) (string, error) {
	line, err := bufio.NewReader(reader).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// promptPassphrase asks on stderr and reads stdin without echo.
func promptPassphrase(label string) (string, error) {
	fmt.Fprintf(os.Stderr, "%s: ", label)
	value, err := readPassphraseNoEcho(os.Stdin)
	fmt.Fprintln(os.Stderr)
	return value, err
}

// resolvePassphrase takes the flag value first, then the environment, then an
// interactive prompt. With confirm set the prompt asks twice.
func resolvePassphrase(flagValue string, options Options, confirm bool) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if value, ok := options.LookupEnv(PassphraseEnv); ok && value != "" {
		return value, nil
	}

	value, err := options.PromptPassphrase("Backup passphrase")
	if errors.Is(err, errNotTerminal) {
		return "", errPassphraseRequired
	}
	if err != nil {
		return "", fmt.Errorf("read passphrase: %w", err)
	}
	if !confirm {
		return value, nil
	}

	repeated, err := options.PromptPassphrase("Repeat passphrase")
	if err != nil {
		return "", fmt.Errorf("read passphrase: %w", err)
	}
	if repeated != value {
		return "", errPassphrasesMismatch
	}
	return value, nil
}
