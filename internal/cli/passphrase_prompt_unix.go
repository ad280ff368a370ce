//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package cli

import (
	"os"

	"golang.org/x/sys/unix"
)

// readPassphraseNoEcho reads one line from a terminal with echo switched off.
// Anything that is not a terminal reports errNotTerminal.
func readPassphraseNoEcho(stdin *os.File) (string, error) {
	if stdin == nil {
		return "", errNotTerminal
	}

	fd := int(stdin.Fd())
	current, err := unix.IoctlGetTermios(fd, termiosReadRequest)
	if err != nil {
		return "", errNotTerminal
	}
	restore := *current
	silent := restore
	silent.Lflag &^= unix.ECHO

	if err := unix.IoctlSetTermios(fd, termiosWriteRequest, &silent); err != nil {
		return "", err
	}
	defer func() {
		_ = unix.IoctlSetTermios(fd, termiosWriteRequest, &restore)
	}()

	return readPromptLine(stdin)
}
