//go:build windows

package cli

import (
	"os"

	"golang.org/x/sys/windows"
)

func readPassphraseNoEcho(stdin *os.File) (string, error) {
	if stdin == nil {
		return "", errNotTerminal
	}

	handle := windows.Handle(stdin.Fd())
	var restore uint32
	if err := windows.GetConsoleMode(handle, &restore); err != nil {
		return "", errNotTerminal
	}
	if err := windows.SetConsoleMode(handle, restore&^windows.ENABLE_ECHO_INPUT); err != nil {
		return "", err
	}
	defer func() {
		_ = windows.SetConsoleMode(handle, restore)
	}()

	return readPromptLine(stdin)
}
